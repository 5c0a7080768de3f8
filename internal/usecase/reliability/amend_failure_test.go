package reliability

import (
	"context"
	"errors"
	"testing"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

func TestAmendFailurePartialUpdate(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")
	created := reportBasicFailure(t, svc, "org-1", "eq-1", "2026-08-10T08:00:00Z", 12, 3)

	desc := "seal blew under load"
	downtime := 16.0
	updated, err := svc.AmendFailure(context.Background(), AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: created.FailureRecordID,
		Description:     &desc,
		DowntimeHours:   &downtime,
	})
	if err != nil {
		t.Fatalf("amend failure: %v", err)
	}
	if updated.Description != desc || updated.DowntimeHours != 16 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.RepairHours != 3 {
		t.Fatalf("untouched field changed: %+v", updated)
	}
	if updated.UpdatedAt == created.UpdatedAt {
		t.Fatal("expected updated_at to advance")
	}
}

func TestAmendFailureDateKeepsRecurrenceOrdered(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")
	ctx := context.Background()

	first := reportBasicFailure(t, svc, "org-1", "eq-1", "2026-03-01T08:00:00Z", 4, 2)
	second, err := svc.ReportFailure(ctx, ReportFailureInput{
		OrgID: "org-1", EquipmentID: "eq-1", FailureCodeID: "fc-1",
		FailureDate: "2026-04-01T08:00:00Z", ReportedBy: "tech-1",
		PreviousFailureID: first.FailureRecordID,
	})
	if err != nil {
		t.Fatalf("report recurrence: %v", err)
	}

	// Moving the date before the linked predecessor reverses the chain.
	backdated := "2026-02-01T08:00:00Z"
	_, err = svc.AmendFailure(ctx, AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: second.FailureRecordID,
		FailureDate:     &backdated,
	})
	if !errors.Is(err, domainrel.ErrRecurrenceOrder) {
		t.Fatalf("expected ErrRecurrenceOrder, got %v", err)
	}

	// A date still after the predecessor is accepted.
	forwarded := "2026-03-15T08:00:00Z"
	updated, err := svc.AmendFailure(ctx, AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: second.FailureRecordID,
		FailureDate:     &forwarded,
	})
	if err != nil {
		t.Fatalf("amend date: %v", err)
	}
	if updated.FailureDate != forwarded || updated.PreviousFailureID != first.FailureRecordID {
		t.Fatalf("unexpected record after amend: %+v", updated)
	}
}

func TestAmendFailureLockedFieldsAfterAnalysis(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")
	created := reportBasicFailure(t, svc, "org-1", "eq-1", "2026-08-10T08:00:00Z", 12, 3)
	ctx := context.Background()

	if _, err := svc.StartAnalysis(ctx, StartAnalysisInput{
		OrgID:           "org-1",
		FailureRecordID: created.FailureRecordID,
		PerformedBy:     "eng-1",
	}); err != nil {
		t.Fatalf("start analysis: %v", err)
	}

	downtime := 20.0
	_, err := svc.AmendFailure(ctx, AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: created.FailureRecordID,
		DowntimeHours:   &downtime,
	})
	if !errors.Is(err, ErrRecordLockedByAnalysis) {
		t.Fatalf("expected locked error for downtime, got %v", err)
	}

	equipment := "eq-2"
	_, err = svc.AmendFailure(ctx, AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: created.FailureRecordID,
		EquipmentID:     &equipment,
	})
	if !errors.Is(err, ErrRecordLockedByAnalysis) {
		t.Fatalf("expected locked error for equipment, got %v", err)
	}

	// Narrative fields stay editable.
	desc := "bearing seized after lubrication lapse"
	if _, err := svc.AmendFailure(ctx, AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: created.FailureRecordID,
		Description:     &desc,
	}); err != nil {
		t.Fatalf("amend description: %v", err)
	}
}

func TestAmendFailureUnknownRecord(t *testing.T) {
	svc, _ := setupService(t)
	desc := "x"
	_, err := svc.AmendFailure(context.Background(), AmendFailureInput{
		OrgID:           "org-1",
		FailureRecordID: "missing",
		Description:     &desc,
	})
	if !errors.Is(err, ports.ErrFailureRecordNotFound) {
		t.Fatalf("expected ErrFailureRecordNotFound, got %v", err)
	}
}

func TestDeleteFailureProtectedByAnalysis(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")
	created := reportBasicFailure(t, svc, "org-1", "eq-1", "2026-08-10T08:00:00Z", 12, 3)
	ctx := context.Background()

	if _, err := svc.StartAnalysis(ctx, StartAnalysisInput{
		OrgID:           "org-1",
		FailureRecordID: created.FailureRecordID,
		PerformedBy:     "eng-1",
	}); err != nil {
		t.Fatalf("start analysis: %v", err)
	}

	err := svc.DeleteFailure(ctx, "org-1", created.FailureRecordID, false)
	if !errors.Is(err, ports.ErrFailureRecordHasAnalysis) {
		t.Fatalf("expected ErrFailureRecordHasAnalysis, got %v", err)
	}

	if err := svc.DeleteFailure(ctx, "org-1", created.FailureRecordID, true); err != nil {
		t.Fatalf("forced delete: %v", err)
	}

	if _, err := svc.GetFailure(ctx, "org-1", created.FailureRecordID); !errors.Is(err, ports.ErrFailureRecordNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
	analyses, err := svc.ListAnalysesForFailure(ctx, "org-1", created.FailureRecordID)
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(analyses) != 0 {
		t.Fatalf("expected cascaded analyses removal, got %d", len(analyses))
	}
}

func TestListFailuresEmptyOrgShortCircuits(t *testing.T) {
	svc, _ := setupService(t)
	records, err := svc.ListFailures(context.Background(), "  ", ports.FailureFilter{})
	if err != nil {
		t.Fatalf("list failures: %v", err)
	}
	if records != nil {
		t.Fatalf("expected nil result for empty org, got %v", records)
	}
}
