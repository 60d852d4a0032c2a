// Package catalog aggregates stations from every enabled source into one
// deduplicated set.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dlamsal/airwave/internal/domain"
)

// Service fans out to the enabled station sources and merges their
// results. The enabled set is always passed in by the caller as a
// snapshot; the service holds no settings state of its own.
type Service struct {
	sources []domain.StationSource
	logger  *slog.Logger

	// generation guards the cached set against out-of-order fetches: a
	// refresh only publishes its result if no newer refresh started while
	// it was in flight.
	generation atomic.Uint64

	mu       sync.RWMutex
	stations []domain.Station
}

// NewService creates a catalog service over the given sources.
func NewService(sources []domain.StationSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sources: sources, logger: logger}
}

// Stations returns the last published aggregate set.
func (s *Service) Stations() []domain.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stations
}

// Refresh fetches from every enabled source concurrently, merges and
// publishes the result, and returns it. With zero enabled sources it
// publishes an empty set and returns domain.ErrNoSourcesEnabled so the
// caller can tell "nothing configured" from "nothing found".
//
// A refresh that was overtaken by a newer one still returns its own
// result but does not publish it.
func (s *Service) Refresh(ctx context.Context, enabled []string) ([]domain.Station, error) {
	gen := s.generation.Add(1)

	sources := s.enabledSources(enabled)
	if len(sources) == 0 {
		s.logger.Warn("no station sources enabled")
		s.publish(gen, nil)
		return nil, domain.ErrNoSourcesEnabled
	}

	results := s.fetchAll(ctx, sources)
	merged := Dedupe(results)

	s.publish(gen, merged)
	s.logger.Info("catalog refreshed", "sources", len(sources), "stations", len(merged))
	return merged, nil
}

// Search queries every enabled source. Sources with a native search
// endpoint are asked directly; the rest are fetched and filtered locally
// by name. Results merge under the same dedup rule as Refresh but are
// never published as the aggregate set.
func (s *Service) Search(ctx context.Context, enabled []string, query string) ([]domain.Station, error) {
	sources := s.enabledSources(enabled)
	if len(sources) == 0 {
		return nil, domain.ErrNoSourcesEnabled
	}

	results := make([][]domain.Station, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.StationSource) {
			defer wg.Done()

			if searcher, ok := src.(domain.StationSearcher); ok {
				stations, err := searcher.SearchStations(ctx, query)
				if err != nil {
					s.logger.Error("source search failed", "source", src.ID(), "error", err)
					return
				}
				results[i] = stations
				return
			}

			// No native search: fetch and filter locally.
			stations, err := src.FetchStations(ctx)
			if err != nil {
				s.logger.Error("source fetch failed", "source", src.ID(), "error", err)
				return
			}
			needle := strings.ToLower(query)
			var matched []domain.Station
			for _, st := range stations {
				if strings.Contains(strings.ToLower(st.Name), needle) {
					matched = append(matched, st)
				}
			}
			results[i] = matched
		}(i, src)
	}
	wg.Wait()

	return Dedupe(results), nil
}

// Countries returns the union of every enabled source's country list,
// in source order. Sources without the capability contribute nothing.
func (s *Service) Countries(ctx context.Context, enabled []string) []string {
	var countries []string
	seen := make(map[string]bool)

	for _, src := range s.enabledSources(enabled) {
		lister, ok := src.(domain.CountryLister)
		if !ok {
			continue
		}
		names, err := lister.FetchCountries(ctx)
		if err != nil {
			s.logger.Error("source country list failed", "source", src.ID(), "error", err)
			continue
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				countries = append(countries, name)
			}
		}
	}
	return countries
}

// fetchAll queries the given sources concurrently and waits for all of
// them. A source failure is logged and contributes an empty slice; it
// never aborts the other fetches.
func (s *Service) fetchAll(ctx context.Context, sources []domain.StationSource) [][]domain.Station {
	results := make([][]domain.Station, len(sources))
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.StationSource) {
			defer wg.Done()
			stations, err := src.FetchStations(ctx)
			if err != nil {
				s.logger.Error("source fetch failed", "source", src.ID(), "error", err)
				return
			}
			results[i] = stations
		}(i, src)
	}

	wg.Wait()
	return results
}

// publish installs the merged set unless a newer refresh has started.
// The generation check must happen under the mutex: checked outside, a
// stale refresh could pass it and then take the lock after a newer
// refresh already published, overwriting the newer result.
func (s *Service) publish(gen uint64, stations []domain.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation.Load() != gen {
		s.logger.Debug("discarding stale catalog refresh", "generation", gen)
		return
	}
	s.stations = stations
}

// enabledSources filters the registered sources to the enabled ids,
// preserving registration order so the dedup rule stays deterministic.
func (s *Service) enabledSources(enabled []string) []domain.StationSource {
	set := make(map[string]bool, len(enabled))
	for _, id := range enabled {
		set[id] = true
	}

	var out []domain.StationSource
	for _, src := range s.sources {
		if set[src.ID()] {
			out = append(out, src)
		}
	}
	return out
}

// Dedupe concatenates per-source results and collapses duplicate ids.
// A station keeps the position of its first occurrence, but a later
// source's record overwrites an earlier one, so the last adapter wins.
func Dedupe(results [][]domain.Station) []domain.Station {
	var merged []domain.Station
	index := make(map[string]int)

	for _, stations := range results {
		for _, st := range stations {
			if at, ok := index[st.ID]; ok {
				merged[at] = st
				continue
			}
			index[st.ID] = len(merged)
			merged = append(merged, st)
		}
	}
	return merged
}
