package ports

import (
	"context"
	"errors"
)

var (
	ErrFailureRecordNotFound = errors.New("failure record not found")

	// ErrFailureRecordHasAnalysis blocks deletes of records referenced by a
	// root cause analysis unless the caller forces the cascade.
	ErrFailureRecordHasAnalysis = errors.New("failure record is referenced by an analysis")

	// ErrStoreUnavailable marks the backing store as unreachable or its
	// schema absent. Distinct from an empty result set on purpose.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// FailureRecord is the stored shape of a discrete failure event. Equipment
// name and failure code string are denormalized snapshots taken at write
// time and are not refreshed when the canonical entity is renamed.
type FailureRecord struct {
	FailureRecordID string
	OrgID           string
	WorkOrderID     string
	WorkOrderNumber string
	EquipmentID     string
	EquipmentName   string
	FailureCodeID   string
	FailureCode     string
	FailureDate     string
	ReportedBy      string
	ReportedByName  string
	Description     string
	DowntimeHours   float64
	RepairHours     float64
	PartsCost       float64
	LaborCost       float64
	RootCauseID     string
	RootCauseCode   string
	ActionTakenID   string
	ActionTakenCode string
	FiveWhys        []string

	// Inline quick-view investigation notes. The richer structured RCA
	// lives in Analysis; the two write paths stay independent.
	CorrectiveActions []string
	PreventiveActions []string

	IsRecurring       bool
	PreviousFailureID string
	CreatedAt         string
	UpdatedAt         string
}

// FailureFilter narrows List queries. Zero values mean "no constraint".
type FailureFilter struct {
	EquipmentID   string
	FailureCodeID string
	From          string
	To            string
	Recurring     *bool
	Limit         int
}

// FailureUpdate is a partial update; nil fields are left untouched.
type FailureUpdate struct {
	EquipmentID       *string
	EquipmentName     *string
	FailureDate       *string
	Description       *string
	DowntimeHours     *float64
	RepairHours       *float64
	PartsCost         *float64
	LaborCost         *float64
	RootCauseID       *string
	RootCauseCode     *string
	ActionTakenID     *string
	ActionTakenCode   *string
	FiveWhys          *[]string
	CorrectiveActions *[]string
	PreventiveActions *[]string
	IsRecurring       *bool
	PreviousFailureID *string
	UpdatedAt         *string
}

type FailureRepository interface {
	Create(ctx context.Context, record FailureRecord) (FailureRecord, error)
	Get(ctx context.Context, orgID string, failureRecordID string) (FailureRecord, error)
	Update(ctx context.Context, orgID string, failureRecordID string, update FailureUpdate) (FailureRecord, error)
	Delete(ctx context.Context, orgID string, failureRecordID string) error
	List(ctx context.Context, orgID string, filter FailureFilter) ([]FailureRecord, error)
	CountByFailureCode(ctx context.Context, orgID string, failureCodeID string) (int64, error)
}
