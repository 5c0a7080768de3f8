package reliability

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/uow"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{data: make(map[string]string)}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func setupServiceWithDB(t *testing.T) (*Service, *testCache, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "reliability.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(
		&model.FailureCode{},
		&model.RootCause{},
		&model.ActionTaken{},
		&model.FailureRecord{},
		&model.Analysis{},
		&model.ReliabilityKV{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	fixedNow := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	cache := newTestCache()
	svc := NewService(
		sqliterepo.NewFailureRepository(db),
		sqliterepo.NewAnalysisRepository(db),
		sqliterepo.NewTaxonomyRepository(db),
		sqliteuow.NewUnitOfWork(db),
		cache,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc, cache, db
}

func setupService(t *testing.T) (*Service, *testCache) {
	t.Helper()
	svc, cache, _ := setupServiceWithDB(t)
	return svc, cache
}

func seedFailureCode(t *testing.T, svc *Service, org, id, code string) {
	t.Helper()
	_, err := svc.taxonomy.CreateFailureCode(context.Background(), ports.FailureCode{
		FailureCodeID: id,
		OrgID:         org,
		Code:          code,
		Name:          "Bearing Failure",
		Category:      "mechanical",
		Severity:      "major",
		IsActive:      true,
		CreatedAt:     "2026-01-01T00:00:00Z",
		UpdatedAt:     "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("seed failure code: %v", err)
	}
}

func reportBasicFailure(t *testing.T, svc *Service, org, equipment, date string, downtime, repair float64) ports.FailureRecord {
	t.Helper()
	created, err := svc.ReportFailure(context.Background(), ReportFailureInput{
		OrgID:         org,
		EquipmentID:   equipment,
		EquipmentName: "Pump " + equipment,
		FailureCodeID: "fc-1",
		FailureDate:   date,
		ReportedBy:    "tech-1",
		Description:   "unexpected stop",
		DowntimeHours: downtime,
		RepairHours:   repair,
	})
	if err != nil {
		t.Fatalf("report failure: %v", err)
	}
	return created
}
