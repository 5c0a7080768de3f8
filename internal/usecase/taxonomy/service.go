package taxonomy

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

var (
	errOrgRequired  = errors.New("organization id is required")
	errCodeRequired = errors.New("code is required")
	errNameRequired = errors.New("name is required")
)

// Service manages the failure code, root cause, and action taken catalogs.
type Service struct {
	repo     ports.TaxonomyRepository
	failures ports.FailureRepository
	uow      ports.UnitOfWork

	now func() time.Time
}

// NewService wires taxonomy usecases with the catalog repository. The
// failure repository backs the referential delete check.
func NewService(repo ports.TaxonomyRepository, failures ports.FailureRepository, uow ports.UnitOfWork) *Service {
	return &Service{
		repo:     repo,
		failures: failures,
		uow:      uow,
		now:      time.Now,
	}
}

func (s *Service) nowUTCString() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func (s *Service) checkCtx(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	return nil
}

type CreateFailureCodeInput struct {
	OrgID            string
	Code             string
	Name             string
	Description      string
	Category         string
	Severity         string
	CommonCauses     []string
	SuggestedActions []string
	MTTRHours        float64
}

// CreateFailureCode registers a new failure code. Category and severity are
// validated against the closed vocabularies; the code is unique per
// organization.
func (s *Service) CreateFailureCode(ctx context.Context, input CreateFailureCodeInput) (ports.FailureCode, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.FailureCode{}, err
	}
	if s.repo == nil {
		return ports.FailureCode{}, errors.New("taxonomy repository is required")
	}

	orgID := strings.TrimSpace(input.OrgID)
	if orgID == "" {
		return ports.FailureCode{}, errOrgRequired
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return ports.FailureCode{}, errCodeRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ports.FailureCode{}, errNameRequired
	}

	category, err := domainrel.NormalizeFailureCategory(input.Category)
	if err != nil {
		return ports.FailureCode{}, err
	}
	severity, err := domainrel.NormalizeSeverity(input.Severity)
	if err != nil {
		return ports.FailureCode{}, err
	}
	if input.MTTRHours < 0 {
		return ports.FailureCode{}, domainrel.ErrNegativeMeasure
	}

	now := s.nowUTCString()
	return s.repo.CreateFailureCode(ctx, ports.FailureCode{
		FailureCodeID:    uuid.NewString(),
		OrgID:            orgID,
		Code:             code,
		Name:             name,
		Description:      strings.TrimSpace(input.Description),
		Category:         category,
		Severity:         severity,
		CommonCauses:     input.CommonCauses,
		SuggestedActions: input.SuggestedActions,
		MTTRHours:        input.MTTRHours,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

// GetFailureCode loads one failure code within the organization scope.
func (s *Service) GetFailureCode(ctx context.Context, orgID, failureCodeID string) (ports.FailureCode, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.FailureCode{}, err
	}
	if s.repo == nil {
		return ports.FailureCode{}, errors.New("taxonomy repository is required")
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return ports.FailureCode{}, ports.ErrFailureCodeNotFound
	}
	return s.repo.GetFailureCode(ctx, orgID, strings.TrimSpace(failureCodeID))
}

// ListFailureCodes returns the organization's codes, optionally active only.
func (s *Service) ListFailureCodes(ctx context.Context, orgID string, activeOnly bool) ([]ports.FailureCode, error) {
	if err := s.checkCtx(ctx); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, errors.New("taxonomy repository is required")
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, nil
	}
	return s.repo.ListFailureCodes(ctx, orgID, activeOnly)
}

// DeactivateFailureCode retires a code from new reports without touching
// historical records that reference it.
func (s *Service) DeactivateFailureCode(ctx context.Context, orgID, failureCodeID string) error {
	return s.setFailureCodeActive(ctx, orgID, failureCodeID, false)
}

// ReactivateFailureCode returns a retired code to service.
func (s *Service) ReactivateFailureCode(ctx context.Context, orgID, failureCodeID string) error {
	return s.setFailureCodeActive(ctx, orgID, failureCodeID, true)
}

func (s *Service) setFailureCodeActive(ctx context.Context, orgID, failureCodeID string, active bool) error {
	if err := s.checkCtx(ctx); err != nil {
		return err
	}
	if s.repo == nil {
		return errors.New("taxonomy repository is required")
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return errOrgRequired
	}
	return s.repo.SetFailureCodeActive(ctx, orgID, strings.TrimSpace(failureCodeID), active, s.nowUTCString())
}

// DeleteFailureCode removes a code from the catalog. Codes referenced by
// failure records are protected; force hard-deletes the code while records
// keep their denormalized code string.
func (s *Service) DeleteFailureCode(ctx context.Context, orgID, failureCodeID string, force bool) error {
	if err := s.checkCtx(ctx); err != nil {
		return err
	}
	if s.repo == nil || s.failures == nil {
		return errors.New("taxonomy and failure repositories are required")
	}
	if s.uow == nil {
		return errors.New("unit of work is required")
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return errOrgRequired
	}
	codeID := strings.TrimSpace(failureCodeID)

	return s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetFailureCode(txCtx, orgID, codeID); err != nil {
			return err
		}
		count, err := s.failures.CountByFailureCode(txCtx, orgID, codeID)
		if err != nil {
			return err
		}
		if count > 0 && !force {
			return ports.ErrFailureCodeInUse
		}
		return s.repo.DeleteFailureCode(txCtx, orgID, codeID)
	})
}

type CreateRootCauseInput struct {
	OrgID       string
	Code        string
	Name        string
	Description string
	Category    string
}

// CreateRootCause registers a canonical root cause.
func (s *Service) CreateRootCause(ctx context.Context, input CreateRootCauseInput) (ports.RootCause, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.RootCause{}, err
	}
	if s.repo == nil {
		return ports.RootCause{}, errors.New("taxonomy repository is required")
	}

	orgID := strings.TrimSpace(input.OrgID)
	if orgID == "" {
		return ports.RootCause{}, errOrgRequired
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return ports.RootCause{}, errCodeRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ports.RootCause{}, errNameRequired
	}
	category, err := domainrel.NormalizeRootCauseCategory(input.Category)
	if err != nil {
		return ports.RootCause{}, err
	}

	return s.repo.CreateRootCause(ctx, ports.RootCause{
		RootCauseID: uuid.NewString(),
		OrgID:       orgID,
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		CreatedAt:   s.nowUTCString(),
	})
}

// ListRootCauses returns the organization's root cause catalog.
func (s *Service) ListRootCauses(ctx context.Context, orgID string) ([]ports.RootCause, error) {
	if err := s.checkCtx(ctx); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, errors.New("taxonomy repository is required")
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, nil
	}
	return s.repo.ListRootCauses(ctx, orgID)
}

type CreateActionTakenInput struct {
	OrgID       string
	Code        string
	Name        string
	Description string
	Category    string
}

// CreateActionTaken registers a canonical repair action.
func (s *Service) CreateActionTaken(ctx context.Context, input CreateActionTakenInput) (ports.ActionTaken, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.ActionTaken{}, err
	}
	if s.repo == nil {
		return ports.ActionTaken{}, errors.New("taxonomy repository is required")
	}

	orgID := strings.TrimSpace(input.OrgID)
	if orgID == "" {
		return ports.ActionTaken{}, errOrgRequired
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return ports.ActionTaken{}, errCodeRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ports.ActionTaken{}, errNameRequired
	}

	return s.repo.CreateActionTaken(ctx, ports.ActionTaken{
		ActionTakenID: uuid.NewString(),
		OrgID:         orgID,
		Code:          code,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Category:      strings.TrimSpace(input.Category),
		CreatedAt:     s.nowUTCString(),
	})
}

// ListActionTaken returns the organization's repair action catalog.
func (s *Service) ListActionTaken(ctx context.Context, orgID string) ([]ports.ActionTaken, error) {
	if err := s.checkCtx(ctx); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, errors.New("taxonomy repository is required")
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, nil
	}
	return s.repo.ListActionTaken(ctx, orgID)
}

// FailureCategories lists the closed failure category vocabulary.
func (s *Service) FailureCategories() []string {
	return domainrel.FailureCategories()
}

// Severities lists the closed severity vocabulary.
func (s *Service) Severities() []string {
	return domainrel.Severities()
}

// RootCauseCategories lists the closed root cause category vocabulary.
func (s *Service) RootCauseCategories() []string {
	return domainrel.RootCauseCategories()
}
