package reliability

import (
	"fmt"
	"strings"
	"time"
)

// FailureDraft carries the fields checked before a failure record write.
// Dates are RFC 3339 strings; storage keeps them as text.
type FailureDraft struct {
	EquipmentID   string
	FailureCodeID string
	FailureDate   string
	ReportedBy    string
	DowntimeHours float64
	RepairHours   float64
	PartsCost     float64
	LaborCost     float64
}

// RecurrenceLink describes a backward reference to an earlier failure.
type RecurrenceLink struct {
	EquipmentID         string
	FailureDate         string
	PreviousEquipmentID string
	PreviousFailureDate string
}

// ValidateFailureDraft enforces the create-time invariants: required
// identifiers, non-negative measures, and no future-dated failures.
func ValidateFailureDraft(draft FailureDraft, now time.Time) error {
	if strings.TrimSpace(draft.EquipmentID) == "" {
		return ErrEquipmentRequired
	}
	if strings.TrimSpace(draft.FailureCodeID) == "" {
		return ErrFailureCodeRequired
	}
	if strings.TrimSpace(draft.ReportedBy) == "" {
		return ErrReporterRequired
	}
	if strings.TrimSpace(draft.FailureDate) == "" {
		return ErrFailureDateRequired
	}

	failedAt, err := ParseFailureDate(draft.FailureDate)
	if err != nil {
		return err
	}
	if failedAt.After(now) {
		return fmt.Errorf("%w: %s", ErrFutureFailureDate, draft.FailureDate)
	}

	measures := []struct {
		name  string
		value float64
	}{
		{"downtime_hours", draft.DowntimeHours},
		{"repair_hours", draft.RepairHours},
		{"parts_cost", draft.PartsCost},
		{"labor_cost", draft.LaborCost},
	}
	for _, measure := range measures {
		if measure.value < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeMeasure, measure.name)
		}
	}
	return nil
}

// ValidateRecurrenceLink checks that a recurrence back-reference points to an
// earlier failure of the same equipment. Chains only ever point backward.
func ValidateRecurrenceLink(link RecurrenceLink) error {
	if link.PreviousEquipmentID != link.EquipmentID {
		return fmt.Errorf("%w: equipment mismatch", ErrRecurrenceOrder)
	}

	current, err := ParseFailureDate(link.FailureDate)
	if err != nil {
		return err
	}
	previous, err := ParseFailureDate(link.PreviousFailureDate)
	if err != nil {
		return err
	}
	if !previous.Before(current) {
		return fmt.Errorf("%w: %s is not before %s", ErrRecurrenceOrder, link.PreviousFailureDate, link.FailureDate)
	}
	return nil
}

// ParseFailureDate accepts RFC 3339 timestamps and plain dates.
func ParseFailureDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrFailureDateRequired
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFailureDate, value)
}

// MonthKey returns the YYYY-MM bucket prefix of a failure date.
func MonthKey(failureDate string) string {
	trimmed := strings.TrimSpace(failureDate)
	if len(trimmed) < 7 {
		return trimmed
	}
	return trimmed[:7]
}
