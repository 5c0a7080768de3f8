package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// dbFromContext prefers a transaction carried by the unit of work over the
// repository's root handle.
func dbFromContext(ctx context.Context, root *gorm.DB) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return root.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

// storeErr maps driver failures onto the port taxonomy. A missing table is a
// store problem, never an empty result.
func storeErr(err error, msg string) error {
	if err == nil {
		return nil
	}

	lowered := strings.ToLower(err.Error())
	if strings.Contains(lowered, "no such table") ||
		strings.Contains(lowered, "does not exist") ||
		strings.Contains(lowered, "connection refused") {
		return fmt.Errorf("%s: %w: %s", msg, ports.ErrStoreUnavailable, err.Error())
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func unmarshalStrings(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lowered := strings.ToLower(err.Error())
	return strings.Contains(lowered, "unique constraint") || strings.Contains(lowered, "duplicate key")
}
