package ports

import (
	"context"
	"errors"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

// ActionItem is one corrective or preventive action inside an analysis.
// Items are addressed by position within their ordered list.
type ActionItem struct {
	Action        string
	Responsible   string
	DueDate       string
	Status        string
	CompletedDate string
}

// Analysis is the structured root cause analysis attached to one failure
// record. Equipment fields are denormalized snapshots.
type Analysis struct {
	AnalysisID           string
	OrgID                string
	FailureRecordID      string
	EquipmentID          string
	EquipmentName        string
	AnalysisDate         string
	PerformedBy          string
	ProblemStatement     string
	RootCauseCategory    string
	RootCauseID          string
	FiveWhys             []string
	ContributingFactors  []string
	CorrectiveActions    []ActionItem
	PreventiveActions    []ActionItem
	VerificationRequired bool
	VerificationDate     string
	VerifiedBy           string
	Status               string
	CreatedAt            string
	UpdatedAt            string
}

type AnalysisRepository interface {
	Create(ctx context.Context, analysis Analysis) (Analysis, error)
	Get(ctx context.Context, orgID string, analysisID string) (Analysis, error)
	Update(ctx context.Context, analysis Analysis) (Analysis, error)
	List(ctx context.Context, orgID string) ([]Analysis, error)
	ListByFailureRecord(ctx context.Context, orgID string, failureRecordID string) ([]Analysis, error)
	CountByFailureRecord(ctx context.Context, orgID string, failureRecordID string) (int64, error)
	DeleteByFailureRecord(ctx context.Context, orgID string, failureRecordID string) error
}
