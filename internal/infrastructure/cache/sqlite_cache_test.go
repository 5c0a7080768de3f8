package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
)

func setupCache(t *testing.T) *SQLiteCache {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "cache.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ReliabilityKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewSQLiteCache(db)
}

func TestSQLiteCacheSetGetDelete(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "fleet:org-1", `{"failures":3}`, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, found, err := c.Get(ctx, "fleet:org-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || value != `{"failures":3}` {
		t.Fatalf("get = %q, %v", value, found)
	}

	// Overwrite through upsert.
	if err := c.Set(ctx, "fleet:org-1", `{"failures":4}`, time.Minute); err != nil {
		t.Fatalf("set again: %v", err)
	}
	value, _, err = c.Get(ctx, "fleet:org-1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if value != `{"failures":4}` {
		t.Fatalf("value = %q", value)
	}

	if err := c.Delete(ctx, "fleet:org-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "fleet:org-1"); found {
		t.Fatal("deleted key still found")
	}
}

func TestSQLiteCacheExpiry(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "fleet:org-1", "stale", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found, err := c.Get(ctx, "fleet:org-1"); err != nil || found {
		t.Fatalf("expired entry still served (found=%v err=%v)", found, err)
	}

	// The expired read purges the row.
	var remaining int64
	if err := c.db.Model(&model.ReliabilityKV{}).Where("key = ?", "fleet:org-1").Count(&remaining).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expired row still stored (count=%d)", remaining)
	}
}
