package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

func TestTaxonomyRepositoryFailureCodes(t *testing.T) {
	repo := NewTaxonomyRepository(setupDB(t))
	ctx := context.Background()

	created, err := repo.CreateFailureCode(ctx, ports.FailureCode{
		FailureCodeID:    "fc-1",
		OrgID:            "org-1",
		Code:             "BRG-WEAR",
		Name:             "Bearing wear",
		Description:      "progressive bearing degradation",
		Category:         "mechanical",
		Severity:         "major",
		CommonCauses:     []string{"misalignment", "lubrication gap"},
		SuggestedActions: []string{"replace bearing"},
		MTTRHours:        4,
		IsActive:         true,
		CreatedAt:        "2026-01-01T00:00:00Z",
		UpdatedAt:        "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("create failure code: %v", err)
	}

	got, err := repo.GetFailureCode(ctx, "org-1", created.FailureCodeID)
	if err != nil {
		t.Fatalf("get failure code: %v", err)
	}
	if len(got.CommonCauses) != 2 || got.CommonCauses[0] != "misalignment" {
		t.Fatalf("CommonCauses = %#v", got.CommonCauses)
	}

	_, err = repo.CreateFailureCode(ctx, ports.FailureCode{
		FailureCodeID: "fc-2",
		OrgID:         "org-1",
		Code:          "BRG-WEAR",
		Name:          "duplicate",
		Category:      "mechanical",
		Severity:      "minor",
		CreatedAt:     "2026-01-01T00:00:00Z",
		UpdatedAt:     "2026-01-01T00:00:00Z",
	})
	if !errors.Is(err, ports.ErrDuplicateCode) {
		t.Fatalf("error = %v, want ErrDuplicateCode", err)
	}

	// Same code under another org is fine.
	if _, err := repo.CreateFailureCode(ctx, ports.FailureCode{
		FailureCodeID: "fc-3",
		OrgID:         "org-2",
		Code:          "BRG-WEAR",
		Name:          "other org",
		Category:      "mechanical",
		Severity:      "minor",
		CreatedAt:     "2026-01-01T00:00:00Z",
		UpdatedAt:     "2026-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("cross-org create: %v", err)
	}

	if err := repo.SetFailureCodeActive(ctx, "org-1", "fc-1", false, "2026-02-01T00:00:00Z"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := repo.ListFailureCodes(ctx, "org-1", true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active = %+v, want none", active)
	}
	all, err := repo.ListFailureCodes(ctx, "org-1", false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("all = %+v, want 1", all)
	}
}

func TestTaxonomyRepositoryRootCausesAndActions(t *testing.T) {
	repo := NewTaxonomyRepository(setupDB(t))
	ctx := context.Background()

	if _, err := repo.CreateRootCause(ctx, ports.RootCause{
		RootCauseID: "rc-1",
		OrgID:       "org-1",
		Code:        "LUBE-MISS",
		Name:        "Missed lubrication",
		Category:    "process",
		CreatedAt:   "2026-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("create root cause: %v", err)
	}

	causes, err := repo.ListRootCauses(ctx, "org-1")
	if err != nil {
		t.Fatalf("list root causes: %v", err)
	}
	if len(causes) != 1 || causes[0].Code != "LUBE-MISS" {
		t.Fatalf("causes = %+v", causes)
	}

	if _, err := repo.CreateActionTaken(ctx, ports.ActionTaken{
		ActionTakenID: "at-1",
		OrgID:         "org-1",
		Code:          "REPL",
		Name:          "Component replaced",
		Category:      "repair",
		CreatedAt:     "2026-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("create action taken: %v", err)
	}

	actions, err := repo.ListActionTaken(ctx, "org-1")
	if err != nil {
		t.Fatalf("list actions taken: %v", err)
	}
	if len(actions) != 1 || actions[0].Code != "REPL" {
		t.Fatalf("actions = %+v", actions)
	}

	if _, err := repo.GetRootCause(ctx, "org-2", "rc-1"); !errors.Is(err, ports.ErrRootCauseNotFound) {
		t.Fatalf("error = %v, want ErrRootCauseNotFound", err)
	}
}
