package main

import (
	"context"
	"os"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
