package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

func setupDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedFailure(t *testing.T, repo *FailureRepository, id, org, equipment, codeID, date string, recurring bool) ports.FailureRecord {
	t.Helper()

	record, err := repo.Create(context.Background(), ports.FailureRecord{
		FailureRecordID: id,
		OrgID:           org,
		EquipmentID:     equipment,
		EquipmentName:   "unit " + equipment,
		FailureCodeID:   codeID,
		FailureCode:     "CODE-" + codeID,
		FailureDate:     date,
		ReportedBy:      "tech-1",
		Description:     "seed",
		DowntimeHours:   2,
		RepairHours:     1,
		IsRecurring:     recurring,
		CreatedAt:       date,
		UpdatedAt:       date,
	})
	if err != nil {
		t.Fatalf("create failure %s: %v", id, err)
	}
	return record
}

func TestFailureRepositoryListFiltersAndOrder(t *testing.T) {
	repo := NewFailureRepository(setupDB(t))
	ctx := context.Background()

	seedFailure(t, repo, "fr-1", "org-1", "eq-1", "fc-1", "2026-05-01T00:00:00Z", false)
	seedFailure(t, repo, "fr-2", "org-1", "eq-1", "fc-2", "2026-07-01T00:00:00Z", true)
	seedFailure(t, repo, "fr-3", "org-1", "eq-2", "fc-1", "2026-06-01T00:00:00Z", false)
	seedFailure(t, repo, "fr-4", "org-2", "eq-1", "fc-1", "2026-06-15T00:00:00Z", false)

	all, err := repo.List(ctx, "org-1", ports.FailureFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3 (org scoped)", len(all))
	}
	if all[0].FailureRecordID != "fr-2" || all[2].FailureRecordID != "fr-1" {
		t.Fatalf("order = %s..%s, want failure_date desc", all[0].FailureRecordID, all[2].FailureRecordID)
	}

	byEquipment, err := repo.List(ctx, "org-1", ports.FailureFilter{EquipmentID: "eq-1"})
	if err != nil {
		t.Fatalf("list by equipment: %v", err)
	}
	if len(byEquipment) != 2 {
		t.Fatalf("len(byEquipment) = %d, want 2", len(byEquipment))
	}

	recurring := true
	flagged, err := repo.List(ctx, "org-1", ports.FailureFilter{Recurring: &recurring})
	if err != nil {
		t.Fatalf("list recurring: %v", err)
	}
	if len(flagged) != 1 || flagged[0].FailureRecordID != "fr-2" {
		t.Fatalf("flagged = %+v", flagged)
	}

	ranged, err := repo.List(ctx, "org-1", ports.FailureFilter{From: "2026-05-15", To: "2026-06-30"})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].FailureRecordID != "fr-3" {
		t.Fatalf("ranged = %+v", ranged)
	}
}

func TestFailureRepositoryUpdatePartial(t *testing.T) {
	repo := NewFailureRepository(setupDB(t))
	ctx := context.Background()

	seedFailure(t, repo, "fr-1", "org-1", "eq-1", "fc-1", "2026-05-01T00:00:00Z", false)

	rootCause := "rc-9"
	whys := []string{"seal worn", "missed inspection"}
	updated, err := repo.Update(ctx, "org-1", "fr-1", ports.FailureUpdate{
		RootCauseID: &rootCause,
		FiveWhys:    &whys,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RootCauseID != "rc-9" {
		t.Fatalf("RootCauseID = %q", updated.RootCauseID)
	}
	if len(updated.FiveWhys) != 2 || updated.FiveWhys[0] != "seal worn" {
		t.Fatalf("FiveWhys = %#v", updated.FiveWhys)
	}
	if updated.EquipmentID != "eq-1" || updated.DowntimeHours != 2 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	if _, err := repo.Update(ctx, "org-1", "missing", ports.FailureUpdate{RootCauseID: &rootCause}); !errors.Is(err, ports.ErrFailureRecordNotFound) {
		t.Fatalf("error = %v, want ErrFailureRecordNotFound", err)
	}
}

func TestFailureRepositoryGetScopesByOrg(t *testing.T) {
	repo := NewFailureRepository(setupDB(t))
	ctx := context.Background()

	seedFailure(t, repo, "fr-1", "org-1", "eq-1", "fc-1", "2026-05-01T00:00:00Z", false)

	if _, err := repo.Get(ctx, "org-2", "fr-1"); !errors.Is(err, ports.ErrFailureRecordNotFound) {
		t.Fatalf("error = %v, want ErrFailureRecordNotFound for foreign org", err)
	}
}

func TestFailureRepositoryMissingTableIsStoreUnavailable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "empty.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo := NewFailureRepository(db)

	_, err = repo.List(context.Background(), "org-1", ports.FailureFilter{})
	if !errors.Is(err, ports.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}
}

func TestFailureRepositoryCountByFailureCode(t *testing.T) {
	repo := NewFailureRepository(setupDB(t))
	ctx := context.Background()

	seedFailure(t, repo, "fr-1", "org-1", "eq-1", "fc-1", "2026-05-01T00:00:00Z", false)
	seedFailure(t, repo, "fr-2", "org-1", "eq-2", "fc-1", "2026-05-02T00:00:00Z", false)
	seedFailure(t, repo, "fr-3", "org-1", "eq-2", "fc-2", "2026-05-03T00:00:00Z", false)

	count, err := repo.CountByFailureCode(ctx, "org-1", "fc-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
