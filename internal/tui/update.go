package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlamsal/airwave/internal/config"
	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/filter"
	"github.com/dlamsal/airwave/internal/source"
)

// Update handles all incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case StatusTickMsg:
		m.status = m.controller.Status()
		return m, statusTickCmd()

	case StationsLoadedMsg:
		m.loading = false
		m.noSources = msg.NoSources
		m.errText = ""
		m.allStations = msg.Stations
		m.provinces = filter.Provinces(m.allStations)
		if len(m.countries) == 0 {
			m.countries = filter.Countries(m.allStations)
		}
		m.repage()
		return m, nil

	case SearchResultsMsg:
		m.loading = false
		m.view = viewDeepSearch
		m.searchResults = msg.Results
		m.searchQuery = msg.Query
		m.repage()
		return m, nil

	case CountriesLoadedMsg:
		if len(msg.Countries) > 0 {
			m.countries = msg.Countries
		}
		return m, nil

	case ErrMsg:
		m.loading = false
		m.errText = msg.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search input is focused it swallows everything except
	// commit/dismiss keys.
	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.controller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.view != viewHelp {
			m.lastView = m.view
			m.view = viewHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		return m.handleEscape()

	case key.Matches(msg, m.keys.Settings):
		if m.view != viewSettings {
			m.lastView = m.view
			m.view = viewSettings
			m.settingsCursor = 0
		}
		return m, nil
	}

	switch m.view {
	case viewSettings:
		return m.handleSettingsKey(msg)
	case viewHelp:
		return m, nil
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil

	case "enter":
		// Commit the query into the filter criteria (local, substring
		// semantics) and blur.
		criteria := m.pager.Criteria()
		criteria.Search = m.searchInput.Value()
		m.setCriteria(criteria)
		m.searchInput.Blur()
		return m, nil

	case "ctrl+f":
		// Deep search: ask the sources themselves.
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.loading = true
		m.searchInput.Blur()
		return m, tea.Batch(m.spin.Tick, SearchStationsCmd(m.catalogSvc, m.cfg.Sources.Enabled, query))
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewHelp, viewSettings:
		m.view = m.lastView
	case viewDeepSearch:
		m.view = viewBrowse
		m.searchResults = nil
		m.searchQuery = ""
		m.repage()
	case viewFavorites:
		m.view = viewBrowse
	default:
		// Clear the committed search, if any.
		criteria := m.pager.Criteria()
		if criteria.Search != "" {
			criteria.Search = ""
			m.setCriteria(criteria)
		}
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.currentList()

	switch {
	case key.Matches(msg, m.keys.Up):
		if c := m.cursorFor(); c > 0 {
			m.setCursor(c - 1)
		}

	case key.Matches(msg, m.keys.Down):
		if c := m.cursorFor(); c < len(list)-1 {
			m.setCursor(c + 1)
		} else if m.hasMore && m.view != viewFavorites {
			// Walking off the bottom pulls in the next page.
			m.pager.LoadMore()
			m.repage()
			m.setCursor(c + 1)
		}

	case key.Matches(msg, m.keys.Home):
		m.setCursor(0)

	case key.Matches(msg, m.keys.End):
		m.setCursor(len(list) - 1)

	case key.Matches(msg, m.keys.PageUp):
		c := m.cursorFor() - filter.PageSize
		if c < 0 {
			c = 0
		}
		m.setCursor(c)

	case key.Matches(msg, m.keys.PageDown):
		c := m.cursorFor() + filter.PageSize
		if c > len(list)-1 {
			c = len(list) - 1
		}
		m.setCursor(c)

	case key.Matches(msg, m.keys.Enter):
		if st, ok := m.selectedStation(); ok {
			m.controller.Play(st)
		}

	case key.Matches(msg, m.keys.TogglePlay):
		m.controller.TogglePlay()

	case key.Matches(msg, m.keys.Favorite):
		if st, ok := m.selectedStation(); ok {
			m.favs.Toggle(st)
		}

	case key.Matches(msg, m.keys.VolumeUp):
		m.controller.AdjustVolume(m.controller.Volume() + 0.05)

	case key.Matches(msg, m.keys.VolumeDown):
		m.controller.AdjustVolume(m.controller.Volume() - 0.05)

	case key.Matches(msg, m.keys.NextStn):
		m.controller.Next(m.visible)

	case key.Matches(msg, m.keys.PrevStn):
		m.controller.Previous(m.visible)

	case key.Matches(msg, m.keys.Filter):
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.cycleSort()

	case key.Matches(msg, m.keys.Country):
		m.cycleCountry()

	case key.Matches(msg, m.keys.Province):
		m.cycleProvince()

	case key.Matches(msg, m.keys.LoadMore):
		if m.hasMore {
			m.pager.LoadMore()
			m.repage()
		}

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.spin.Tick, RefreshStationsCmd(m.catalogSvc, m.cfg.Sources.Enabled))

	case key.Matches(msg, m.keys.Favorites):
		if m.view == viewFavorites {
			m.view = viewBrowse
		} else {
			m.view = viewFavorites
			m.favCursor = 0
		}

	case key.Matches(msg, m.keys.ClearRecent):
		if m.view == viewFavorites {
			m.favs.ClearRecent()
		}
	}

	return m, nil
}

func (m *Model) cycleSort() {
	sorts := m.availableSorts()
	criteria := m.pager.Criteria()

	next := sorts[0]
	for i, s := range sorts {
		if s == criteria.SortBy {
			next = sorts[(i+1)%len(sorts)]
			break
		}
	}
	criteria.SortBy = next
	m.setCriteria(criteria)
}

func (m *Model) cycleCountry() {
	// "" (all countries) -> each facet value -> back to all.
	options := append([]string{""}, m.countries...)
	criteria := m.pager.Criteria()

	next := options[0]
	for i, c := range options {
		if c == criteria.Country {
			next = options[(i+1)%len(options)]
			break
		}
	}
	criteria.Country = next
	m.setCriteria(criteria)
}

func (m *Model) cycleProvince() {
	options := append([]int{0}, m.provinces...)
	criteria := m.pager.Criteria()

	next := options[0]
	for i, p := range options {
		if p == criteria.Province {
			next = options[(i+1)%len(options)]
			break
		}
	}
	criteria.Province = next
	m.setCriteria(criteria)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	infos := source.Available()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.settingsCursor < len(infos)-1 {
			m.settingsCursor++
		}

	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.TogglePlay):
		id := infos[m.settingsCursor].ID
		m.cfg.ToggleSource(id)
		if err := config.SaveConfig(m.cfg); err != nil {
			m.errText = "failed to save settings: " + err.Error()
		}
		// Changed source set: refetch and reset pagination.
		m.loading = true
		m.setCriteria(m.resetCriteriaForSources())
		return m, tea.Batch(
			m.spin.Tick,
			RefreshStationsCmd(m.catalogSvc, m.cfg.Sources.Enabled),
			LoadCountriesCmd(m.catalogSvc, m.cfg.Sources.Enabled),
		)
	}

	return m, nil
}

// resetCriteriaForSources drops criteria the new source set cannot honor.
func (m *Model) resetCriteriaForSources() domain.FilterState {
	criteria := m.pager.Criteria()

	valid := false
	for _, s := range m.availableSorts() {
		if s == criteria.SortBy {
			valid = true
			break
		}
	}
	if !valid {
		criteria.SortBy = domain.SortByName
	}
	return criteria
}
