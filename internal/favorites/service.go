// Package favorites holds the user's favorited stations with their play
// statistics, plus the bounded recently-played list. This is the only
// persisted domain state besides settings.
package favorites

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
)

const (
	defaultRankLimit   = 5
	defaultRecentLimit = 10
	recentCap          = 20
)

// Service manages favorites and the recently-played list over the
// persistent store. A store read failure degrades to an empty collection;
// it is logged, never surfaced.
type Service struct {
	store  domain.Store
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]domain.FavoriteEntry
	recent  []domain.Station

	now func() time.Time
}

// NewService loads persisted state and returns the service.
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		store:   store,
		logger:  logger,
		entries: make(map[string]domain.FavoriteEntry),
		now:     time.Now,
	}

	// A persisted envelope can carry a null stations field; never adopt a
	// nil map or the first Add would panic.
	if entries, ok := store.GetFavorites(); ok && entries != nil {
		s.entries = entries
	}
	if recent, ok := store.GetRecent(); ok {
		s.recent = recent
	}

	return s
}

// === Favorites ===

// Add creates (or overwrites) the favorite entry for a station with a
// fresh AddedAt and zero play count.
func (s *Service) Add(station domain.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[station.ID] = domain.FavoriteEntry{
		Station: station,
		AddedAt: s.now(),
	}
	s.persistFavorites()
}

// Remove deletes the favorite entry if present. Removing an unknown id is
// a no-op, not an error.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	s.persistFavorites()
}

// Toggle adds the station when absent and removes it when present,
// reporting whether it is a favorite afterwards.
func (s *Service) Toggle(station domain.Station) bool {
	if s.IsFavorite(station.ID) {
		s.Remove(station.ID)
		return false
	}
	s.Add(station)
	return true
}

// RecordPlay bumps the play statistics of an already-favorited station.
// Playing a station that is not favorited records nothing here.
func (s *Service) RecordPlay(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return
	}

	played := s.now()
	entry.LastPlayedAt = &played
	entry.PlayCount++
	s.entries[id] = entry
	s.persistFavorites()
}

// IsFavorite reports membership.
func (s *Service) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

// Entry returns the favorite entry for a station id.
func (s *Service) Entry(id string) (domain.FavoriteEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

// Count returns the number of favorited stations.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ListFavorites returns the subset of candidates that are favorited,
// preserving the candidates' order.
func (s *Service) ListFavorites(candidates []domain.Station) []domain.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Station
	for _, st := range candidates {
		if _, ok := s.entries[st.ID]; ok {
			out = append(out, st)
		}
	}
	return out
}

// MostPlayed returns favorite ids ranked by play count, descending.
// A non-positive limit selects the default of 5.
func (s *Service) MostPlayed(limit int) []string {
	return s.rank(limit, func(a, b domain.FavoriteEntry) bool {
		return a.PlayCount > b.PlayCount
	})
}

// RecentlyAdded returns favorite ids ranked by AddedAt, newest first.
// A non-positive limit selects the default of 5.
func (s *Service) RecentlyAdded(limit int) []string {
	return s.rank(limit, func(a, b domain.FavoriteEntry) bool {
		return a.AddedAt.After(b.AddedAt)
	})
}

func (s *Service) rank(limit int, less func(a, b domain.FavoriteEntry) bool) []string {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	s.mu.RLock()
	entries := make([]domain.FavoriteEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Station.ID
	}
	return ids
}

// === Recently played ===

// RecordRecentPlay moves the station to the front of the recently-played
// list, deduplicating by id and evicting beyond the cap of 20.
func (s *Service) RecordRecentPlay(station domain.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]domain.Station, 0, len(s.recent)+1)
	updated = append(updated, station)
	for _, st := range s.recent {
		if st.ID != station.ID {
			updated = append(updated, st)
		}
	}
	if len(updated) > recentCap {
		updated = updated[:recentCap]
	}
	s.recent = updated

	if err := s.store.SaveRecent(s.recent); err != nil {
		s.logger.Error("failed to save recently played", "error", err)
	}
}

// ListRecent returns the most recent plays, newest first. A non-positive
// limit selects the default of 10.
func (s *Service) ListRecent(limit int) []domain.Station {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.recent) < limit {
		limit = len(s.recent)
	}
	out := make([]domain.Station, limit)
	copy(out, s.recent[:limit])
	return out
}

// ClearRecent empties the recently-played list.
func (s *Service) ClearRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = nil
	if err := s.store.SaveRecent(nil); err != nil {
		s.logger.Error("failed to clear recently played", "error", err)
	}
}

// persistFavorites writes the favorites map back. Callers hold s.mu.
func (s *Service) persistFavorites() {
	if err := s.store.SaveFavorites(s.entries); err != nil {
		s.logger.Error("failed to save favorites", "error", err)
	}
}
