package ports

import (
	"context"
	"errors"
)

var (
	ErrFailureCodeNotFound = errors.New("failure code not found")
	ErrRootCauseNotFound   = errors.New("root cause not found")
	ErrActionTakenNotFound = errors.New("action taken not found")
	ErrDuplicateCode       = errors.New("code already exists")

	// ErrFailureCodeInUse blocks deletes of codes referenced by failure
	// records without the force flag.
	ErrFailureCodeInUse = errors.New("failure code is referenced by failure records")
)

type FailureCode struct {
	FailureCodeID    string
	OrgID            string
	Code             string
	Name             string
	Description      string
	Category         string
	Severity         string
	CommonCauses     []string
	SuggestedActions []string
	MTTRHours        float64
	IsActive         bool
	CreatedAt        string
	UpdatedAt        string
}

type RootCause struct {
	RootCauseID string
	OrgID       string
	Code        string
	Name        string
	Description string
	Category    string
	CreatedAt   string
}

type ActionTaken struct {
	ActionTakenID string
	OrgID         string
	Code          string
	Name          string
	Description   string
	Category      string
	CreatedAt     string
}

type TaxonomyRepository interface {
	CreateFailureCode(ctx context.Context, code FailureCode) (FailureCode, error)
	GetFailureCode(ctx context.Context, orgID string, failureCodeID string) (FailureCode, error)
	ListFailureCodes(ctx context.Context, orgID string, activeOnly bool) ([]FailureCode, error)
	SetFailureCodeActive(ctx context.Context, orgID string, failureCodeID string, active bool, updatedAt string) error
	DeleteFailureCode(ctx context.Context, orgID string, failureCodeID string) error

	CreateRootCause(ctx context.Context, cause RootCause) (RootCause, error)
	GetRootCause(ctx context.Context, orgID string, rootCauseID string) (RootCause, error)
	ListRootCauses(ctx context.Context, orgID string) ([]RootCause, error)

	CreateActionTaken(ctx context.Context, action ActionTaken) (ActionTaken, error)
	GetActionTaken(ctx context.Context, orgID string, actionTakenID string) (ActionTaken, error)
	ListActionTaken(ctx context.Context, orgID string) ([]ActionTaken, error)
}
