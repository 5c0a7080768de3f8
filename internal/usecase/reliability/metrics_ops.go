package reliability

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// EquipmentMetrics computes MTBF, MTTR, and availability for one equipment
// unit over the rolling yearly window. A nil result means no recorded
// failures: "no data" is not the same claim as "perfectly reliable".
func (s *Service) EquipmentMetrics(ctx context.Context, orgID, equipmentID string) (*domainrel.EquipmentMetrics, error) {
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

	records, err := s.failures.List(ctx, orgID, ports.FailureFilter{EquipmentID: equipmentID})
	if err != nil {
		return nil, err
	}
	return domainrel.ComputeEquipmentMetrics(failureEvents(records), s.Policy()), nil
}

// FleetMetrics pools every failure in the organization into fleet-level
// aggregates. The result is memoized for a minute; any write through this
// service invalidates the entry early.
func (s *Service) FleetMetrics(ctx context.Context, orgID string) (*domainrel.FleetMetrics, error) {
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

	if s.cache != nil {
		if raw, found, err := s.cache.Get(ctx, fleetMetricsCacheKey(orgID)); err == nil && found {
			var cached domainrel.FleetMetrics
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	records, err := s.failures.List(ctx, orgID, ports.FailureFilter{})
	if err != nil {
		return nil, err
	}
	metrics := domainrel.ComputeFleetMetrics(failureEvents(records), s.Policy())
	if metrics == nil {
		return nil, nil
	}

	if encoded, err := json.Marshal(metrics); err == nil {
		s.setCacheBestEffort(ctx, fleetMetricsCacheKey(orgID), string(encoded), fleetMetricsCacheTTL)
	}
	return metrics, nil
}
