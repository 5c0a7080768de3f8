package reliability

import (
	"context"
	"errors"
	"strings"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// GetFailure loads one failure record within the organization scope.
func (s *Service) GetFailure(ctx context.Context, orgID, failureRecordID string) (ports.FailureRecord, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.FailureRecord{}, err
	}
	if s.failures == nil {
		return ports.FailureRecord{}, errors.New("failure repository is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return ports.FailureRecord{}, ports.ErrFailureRecordNotFound
	}
	recordID := strings.TrimSpace(failureRecordID)
	if recordID == "" {
		return ports.FailureRecord{}, errRecordIDRequired
	}
	return s.failures.Get(ctx, orgID, recordID)
}

// ListFailures returns records for the organization, newest failure first.
// An empty organization scope yields an empty result, not an error: a read
// for nobody is a question with an empty answer.
func (s *Service) ListFailures(ctx context.Context, orgID string, filter ports.FailureFilter) ([]ports.FailureRecord, error) {
	if err := s.checkCtx(ctx); err != nil {
		return nil, err
	}
	if s.failures == nil {
		return nil, errors.New("failure repository is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return nil, nil
	}
	return s.failures.List(ctx, orgID, filter)
}

// ListEquipmentFailures returns the failure history of one equipment unit.
func (s *Service) ListEquipmentFailures(ctx context.Context, orgID, equipmentID string) ([]ports.FailureRecord, error) {
	return s.ListFailures(ctx, orgID, ports.FailureFilter{EquipmentID: strings.TrimSpace(equipmentID)})
}

// ListRecurringFailures returns only records linked to a previous failure.
func (s *Service) ListRecurringFailures(ctx context.Context, orgID string) ([]ports.FailureRecord, error) {
	recurring := true
	return s.ListFailures(ctx, orgID, ports.FailureFilter{Recurring: &recurring})
}
