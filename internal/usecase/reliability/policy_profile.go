package reliability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
)

type operatingHoursConfig struct {
	HoursPerYear  float64 `toml:"hours_per_year"`
	HoursPerMonth float64 `toml:"hours_per_month"`
}

type rankingConfig struct {
	Limit int `toml:"limit"`
}

type reliabilityProfile struct {
	OperatingHours operatingHoursConfig `toml:"operating_hours"`
	Ranking        rankingConfig        `toml:"ranking"`
}

func loadReliabilityProfile(profileFile string) (reliabilityProfile, error) {
	path := strings.TrimSpace(profileFile)
	if path == "" {
		return reliabilityProfile{}, errors.New("profile file is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return reliabilityProfile{}, err
	}

	var profile reliabilityProfile
	if err := toml.Unmarshal(raw, &profile); err != nil {
		return reliabilityProfile{}, err
	}
	return profile, nil
}

// ApplyProfile loads the reliability profile from a TOML file and swaps the
// operating hours policy and ranking strategy. Omitted sections keep their
// defaults.
func (s *Service) ApplyProfile(profileFile string) error {
	profile, err := loadReliabilityProfile(profileFile)
	if err != nil {
		return err
	}

	policy := domainrel.DefaultOperatingHoursPolicy()
	if profile.OperatingHours.HoursPerYear > 0 {
		policy.HoursPerYear = profile.OperatingHours.HoursPerYear
	}
	if profile.OperatingHours.HoursPerMonth > 0 {
		policy.HoursPerMonth = profile.OperatingHours.HoursPerMonth
	}
	if err := s.SetPolicy(policy); err != nil {
		return err
	}

	limit := profile.Ranking.Limit
	if limit <= 0 {
		limit = 5
	}
	s.SetRanking(domainrel.AvailabilityRanking{Limit: limit})
	return nil
}

// WatchProfile re-applies the profile whenever the file changes on disk.
// The watch sits on the parent directory so editors that replace the file
// by rename keep triggering. Blocks until ctx is done.
func (s *Service) WatchProfile(ctx context.Context, profileFile string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	path := strings.TrimSpace(profileFile)
	if path == "" {
		return errors.New("profile file is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.ApplyProfile(path); err != nil {
				logger.Warn("reload reliability profile", "path", path, "err", err)
				continue
			}
			logger.Info("reliability profile reloaded", "path", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("profile watcher", "err", err)
		}
	}
}
