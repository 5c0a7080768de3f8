package reliability

import (
	"context"
	"errors"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// FailureCodeStats groups the organization's failures by failure code with
// per-code totals, ordered by occurrence count.
func (s *Service) FailureCodeStats(ctx context.Context, orgID string) ([]domainrel.CodeStats, error) {
	events, err := s.orgEvents(ctx, orgID)
	if err != nil || events == nil {
		return nil, err
	}
	return domainrel.GroupByFailureCode(events), nil
}

// EquipmentStats groups the organization's failures by equipment unit with
// per-unit totals and the dominant failure code.
func (s *Service) EquipmentStats(ctx context.Context, orgID string) ([]domainrel.EquipmentStats, error) {
	events, err := s.orgEvents(ctx, orgID)
	if err != nil || events == nil {
		return nil, err
	}
	return domainrel.GroupByEquipment(events), nil
}

// FleetOverview builds the fleet dashboard: pooled totals plus the best and
// worst performing units under the configured ranking strategy.
func (s *Service) FleetOverview(ctx context.Context, orgID string) (*domainrel.FleetOverview, error) {
	events, err := s.orgEvents(ctx, orgID)
	if err != nil || events == nil {
		return nil, err
	}
	return domainrel.BuildFleetOverview(events, s.Policy(), s.rankingStrategy()), nil
}

func (s *Service) orgEvents(ctx context.Context, orgID string) ([]domainrel.FailureEvent, error) {
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
	records, err := s.failures.List(ctx, orgID, ports.FailureFilter{})
	if err != nil {
		return nil, err
	}
	return failureEvents(records), nil
}
