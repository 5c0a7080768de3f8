package reliability

import (
	"context"
	"errors"
	"testing"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

func TestReportFailureSnapshotsCodeAndPersists(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")

	created := reportBasicFailure(t, svc, "org-1", "eq-1", "2026-08-10T08:00:00Z", 12, 3)
	if created.FailureRecordID == "" {
		t.Fatal("expected generated record id")
	}
	if created.FailureCode != "BRG-01" {
		t.Fatalf("expected snapshotted code BRG-01, got %q", created.FailureCode)
	}

	loaded, err := svc.GetFailure(context.Background(), "org-1", created.FailureRecordID)
	if err != nil {
		t.Fatalf("get failure: %v", err)
	}
	if loaded.EquipmentName != "Pump eq-1" || loaded.DowntimeHours != 12 {
		t.Fatalf("unexpected stored record: %+v", loaded)
	}
}

func TestReportFailureRejectsInvalidInputBeforeWrite(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")
	ctx := context.Background()

	cases := []struct {
		name  string
		input ReportFailureInput
		want  error
	}{
		{
			name: "missing equipment",
			input: ReportFailureInput{
				OrgID: "org-1", FailureCodeID: "fc-1",
				FailureDate: "2026-08-10T08:00:00Z", ReportedBy: "tech-1",
			},
			want: domainrel.ErrEquipmentRequired,
		},
		{
			name: "future date",
			input: ReportFailureInput{
				OrgID: "org-1", EquipmentID: "eq-1", FailureCodeID: "fc-1",
				FailureDate: "2027-01-01T00:00:00Z", ReportedBy: "tech-1",
			},
			want: domainrel.ErrFutureFailureDate,
		},
		{
			name: "negative downtime",
			input: ReportFailureInput{
				OrgID: "org-1", EquipmentID: "eq-1", FailureCodeID: "fc-1",
				FailureDate: "2026-08-10T08:00:00Z", ReportedBy: "tech-1",
				DowntimeHours: -1,
			},
			want: domainrel.ErrNegativeMeasure,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ReportFailure(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	records, err := svc.ListFailures(ctx, "org-1", ports.FailureFilter{})
	if err != nil {
		t.Fatalf("list failures: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no rows after rejected reports, got %d", len(records))
	}
}

func TestReportFailureUnknownCodeRejected(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.ReportFailure(context.Background(), ReportFailureInput{
		OrgID: "org-1", EquipmentID: "eq-1", FailureCodeID: "missing",
		FailureDate: "2026-08-10T08:00:00Z", ReportedBy: "tech-1",
	})
	if !errors.Is(err, ports.ErrFailureCodeNotFound) {
		t.Fatalf("expected ErrFailureCodeNotFound, got %v", err)
	}
}

func TestReportFailureRecurrenceChain(t *testing.T) {
	svc, _ := setupService(t)
	seedFailureCode(t, svc, "org-1", "fc-1", "BRG-01")
	ctx := context.Background()

	first := reportBasicFailure(t, svc, "org-1", "eq-1", "2026-05-01T00:00:00Z", 4, 2)

	second, err := svc.ReportFailure(ctx, ReportFailureInput{
		OrgID: "org-1", EquipmentID: "eq-1", FailureCodeID: "fc-1",
		FailureDate: "2026-07-01T00:00:00Z", ReportedBy: "tech-1",
		PreviousFailureID: first.FailureRecordID,
	})
	if err != nil {
		t.Fatalf("report recurrence: %v", err)
	}
	if !second.IsRecurring || second.PreviousFailureID != first.FailureRecordID {
		t.Fatalf("expected recurring link, got %+v", second)
	}

	// A back-reference to a later failure violates the backward-only chain.
	_, err = svc.ReportFailure(ctx, ReportFailureInput{
		OrgID: "org-1", EquipmentID: "eq-1", FailureCodeID: "fc-1",
		FailureDate: "2026-04-01T00:00:00Z", ReportedBy: "tech-1",
		PreviousFailureID: first.FailureRecordID,
	})
	if !errors.Is(err, domainrel.ErrRecurrenceOrder) {
		t.Fatalf("expected ErrRecurrenceOrder, got %v", err)
	}
}

func TestReportFailureRequiresOrg(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.ReportFailure(context.Background(), ReportFailureInput{
		EquipmentID: "eq-1", FailureCodeID: "fc-1",
		FailureDate: "2026-08-10T08:00:00Z", ReportedBy: "tech-1",
	})
	if !errors.Is(err, errOrgRequired) {
		t.Fatalf("expected org required error, got %v", err)
	}
}
