package reliability

import (
	"errors"
	"sync"
	"time"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

var (
	errOrgRequired      = errors.New("organization id is required")
	errRecordIDRequired = errors.New("failure record id is required")

	// ErrRecordLockedByAnalysis rejects edits to equipment linkage, failure
	// date, or downtime once any root cause analysis references the record.
	ErrRecordLockedByAnalysis = errors.New("failure record is referenced by analyses and the requested fields are locked")

	// ErrAnalysisImmutable rejects edits to an analysis that reached a
	// terminal status.
	ErrAnalysisImmutable = errors.New("analysis is terminal and can no longer change")
)

const fleetMetricsCacheTTL = 60 * time.Second

// Service drives failure reporting, reliability metrics, and root cause
// analysis workflows on top of the persistence ports.
type Service struct {
	failures ports.FailureRepository
	analyses ports.AnalysisRepository
	taxonomy ports.TaxonomyRepository
	uow      ports.UnitOfWork
	cache    ports.Cache

	mu      sync.RWMutex
	policy  domainrel.OperatingHoursPolicy
	ranking domainrel.RankingStrategy

	now func() time.Time
}

// NewService wires reliability usecases with repositories and optional cache.
func NewService(failures ports.FailureRepository, analyses ports.AnalysisRepository, taxonomy ports.TaxonomyRepository, uow ports.UnitOfWork, cache ports.Cache) *Service {
	return &Service{
		failures: failures,
		analyses: analyses,
		taxonomy: taxonomy,
		uow:      uow,
		cache:    cache,
		policy:   domainrel.DefaultOperatingHoursPolicy(),
		ranking:  domainrel.AvailabilityRanking{Limit: 5},
		now:      time.Now,
	}
}

// Policy returns the operating hours policy currently in effect.
func (s *Service) Policy() domainrel.OperatingHoursPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// SetPolicy swaps the operating hours policy after validation.
func (s *Service) SetPolicy(policy domainrel.OperatingHoursPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()
	return nil
}

// SetRanking swaps the fleet ranking strategy. Nil restores the default.
func (s *Service) SetRanking(strategy domainrel.RankingStrategy) {
	s.mu.Lock()
	if strategy == nil {
		strategy = domainrel.AvailabilityRanking{Limit: 5}
	}
	s.ranking = strategy
	s.mu.Unlock()
}

func (s *Service) rankingStrategy() domainrel.RankingStrategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ranking
}
