package reliability

import (
	"context"
	"errors"
	"strings"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

const defaultTrendMonths = 6

// MonthlyTrend buckets an equipment unit's failures by calendar month over
// the trailing window and computes per-month reliability figures. Months
// without failures are omitted. A non-positive window falls back to six
// months.
func (s *Service) MonthlyTrend(ctx context.Context, orgID, equipmentID string, windowMonths int) ([]domainrel.MonthlyTrendPoint, error) {
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
	equipmentID = strings.TrimSpace(equipmentID)
	if equipmentID == "" {
		return nil, errors.New("equipment id is required")
	}
	if windowMonths <= 0 {
		windowMonths = defaultTrendMonths
	}

	records, err := s.failures.List(ctx, orgID, ports.FailureFilter{EquipmentID: equipmentID})
	if err != nil {
		return nil, err
	}
	return domainrel.ComputeMonthlyTrend(failureEvents(records), s.Policy(), windowMonths, s.now().UTC()), nil
}
