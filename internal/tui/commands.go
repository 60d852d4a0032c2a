package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlamsal/airwave/internal/catalog"
	"github.com/dlamsal/airwave/internal/domain"
)

// Command factories for async operations

const fetchTimeout = 30 * time.Second

// RefreshStationsCmd refreshes the aggregate catalog from the enabled sources
func RefreshStationsCmd(svc *catalog.Service, enabled []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		stations, err := svc.Refresh(ctx, enabled)
		if err != nil {
			if errors.Is(err, domain.ErrNoSourcesEnabled) {
				return StationsLoadedMsg{NoSources: true}
			}
			return ErrMsg{Err: err, Context: "loading stations"}
		}
		return StationsLoadedMsg{Stations: stations}
	}
}

// SearchStationsCmd queries the enabled sources' search capability
func SearchStationsCmd(svc *catalog.Service, enabled []string, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		results, err := svc.Search(ctx, enabled, query)
		if err != nil {
			if errors.Is(err, domain.ErrNoSourcesEnabled) {
				return StationsLoadedMsg{NoSources: true}
			}
			return ErrMsg{Err: err, Context: "searching stations"}
		}
		return SearchResultsMsg{Results: results, Query: query}
	}
}

// LoadCountriesCmd fetches the country facet list from capable sources
func LoadCountriesCmd(svc *catalog.Service, enabled []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return CountriesLoadedMsg{Countries: svc.Countries(ctx, enabled)}
	}
}

// statusTickCmd schedules the next playback status poll. The controller
// emits no events; the UI re-reads its status on a short interval.
func statusTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return StatusTickMsg(t)
	})
}
