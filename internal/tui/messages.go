package tui

import (
	"time"

	"github.com/dlamsal/airwave/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StationsLoadedMsg signals that the aggregate catalog has been refreshed
type StationsLoadedMsg struct {
	Stations  []domain.Station
	NoSources bool // every source disabled; empty by configuration
}

// SearchResultsMsg signals that source-side search results are ready
type SearchResultsMsg struct {
	Results []domain.Station
	Query   string
}

// CountriesLoadedMsg signals that the country facet list is ready
type CountriesLoadedMsg struct {
	Countries []string
}

// StatusTickMsg drives the periodic playback status poll
type StatusTickMsg time.Time
