package reliability

import (
	"context"
	"errors"
	"strings"
	"time"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

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

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func strPtr(v string) *string {
	return &v
}

// failureEvents maps stored failure records into the inputs the pure
// reliability calculators consume.
func failureEvents(records []ports.FailureRecord) []domainrel.FailureEvent {
	if len(records) == 0 {
		return nil
	}
	events := make([]domainrel.FailureEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, domainrel.FailureEvent{
			EquipmentID:   rec.EquipmentID,
			EquipmentName: rec.EquipmentName,
			FailureCodeID: rec.FailureCodeID,
			FailureCode:   rec.FailureCode,
			FailureDate:   rec.FailureDate,
			DowntimeHours: rec.DowntimeHours,
			RepairHours:   rec.RepairHours,
			PartsCost:     rec.PartsCost,
			LaborCost:     rec.LaborCost,
		})
	}
	return events
}

func fleetMetricsCacheKey(orgID string) string {
	return "fleet_metrics:" + orgID
}

func (s *Service) setCacheBestEffort(ctx context.Context, key, value string, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, ttl)
}

func (s *Service) invalidateFleetCache(ctx context.Context, orgID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, fleetMetricsCacheKey(orgID))
}

func trimmedOrg(orgID string) string {
	return strings.TrimSpace(orgID)
}
