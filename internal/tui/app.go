package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlamsal/airwave/internal/catalog"
	"github.com/dlamsal/airwave/internal/config"
	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/favorites"
	"github.com/dlamsal/airwave/internal/filter"
	"github.com/dlamsal/airwave/internal/player"
	"github.com/dlamsal/airwave/internal/source"
	"github.com/dlamsal/airwave/internal/tui/styles"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// viewMode represents the current screen of the application
type viewMode int

const (
	viewBrowse viewMode = iota
	viewDeepSearch
	viewFavorites
	viewSettings
	viewHelp
)

// Model is the main Bubble Tea model for the application
type Model struct {
	cfg        *config.Config
	catalogSvc *catalog.Service
	favs       *favorites.Service
	controller *player.Controller

	keys        KeyMap
	help        help.Model
	searchInput textinput.Model
	spin        spinner.Model

	view     viewMode
	lastView viewMode // where Escape returns to from help/settings

	pager       *filter.Pager
	allStations []domain.Station
	visible     []domain.Station
	hasMore     bool
	provinces   []int
	countries   []string

	// deep search results replace the browse list until dismissed
	searchResults []domain.Station
	searchQuery   string

	cursor         int
	settingsCursor int
	favCursor      int

	loading   bool
	noSources bool
	errText   string

	status player.Status

	width  int
	height int
}

// NewModel creates the main TUI model
func NewModel(
	cfg *config.Config,
	catalogSvc *catalog.Service,
	favs *favorites.Service,
	controller *player.Controller,
) Model {
	styles.ApplyTheme(cfg.Preferences.Theme)

	input := textinput.New()
	input.Placeholder = "search stations..."
	input.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.AccentStyle

	criteria := domain.FilterState{
		SortBy:  domain.SortByName,
		Country: cfg.Preferences.Country,
	}

	return Model{
		cfg:         cfg,
		catalogSvc:  catalogSvc,
		favs:        favs,
		controller:  controller,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		searchInput: input,
		spin:        spin,
		pager:       filter.NewPager(criteria),
		loading:     true,
	}
}

// Init starts the initial catalog refresh and the status poll
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		RefreshStationsCmd(m.catalogSvc, m.cfg.Sources.Enabled),
		LoadCountriesCmd(m.catalogSvc, m.cfg.Sources.Enabled),
		statusTickCmd(),
	)
}

// repage recomputes the visible window from the full set and the pager.
// Deep search asks the sources across all locations, so the committed
// country and province predicates are relaxed while its results show.
func (m *Model) repage() {
	criteria := m.pager.Criteria()
	if m.view == viewDeepSearch {
		criteria.Country = ""
		criteria.Province = 0
	}
	m.visible, m.hasMore = m.pager.PageWith(m.stationSet(), criteria)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// stationSet returns the list the browse view paginates over: deep search
// results while they are active, the aggregate catalog otherwise.
func (m *Model) stationSet() []domain.Station {
	if m.view == viewDeepSearch {
		return m.searchResults
	}
	return m.allStations
}

// setCriteria pushes new filter criteria into the pager. The pager resets
// its watermark when they differ.
func (m *Model) setCriteria(criteria domain.FilterState) {
	m.pager.SetCriteria(criteria)
	m.repage()
}

// liveFiltered applies the as-you-type query on top of the committed
// criteria: substring matches first, fuzzy matches as fallback so typos
// still land near the right station.
func (m *Model) liveFiltered() []domain.Station {
	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		return m.visible
	}

	criteria := m.pager.Criteria()
	criteria.Search = query
	matched := filter.Apply(m.stationSet(), criteria)
	if len(matched) > 0 {
		return matched
	}

	// No substring hits; rank by fuzzy match over names.
	names := make([]string, len(m.visible))
	for i, st := range m.visible {
		names[i] = st.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	var out []domain.Station
	for _, r := range ranks {
		out = append(out, m.visible[r.OriginalIndex])
	}
	return out
}

// availableSorts returns the sort options the enabled sources can honor:
// frequency only exists in the default catalog, votes and bitrate only in
// the radio-browser directory.
func (m *Model) availableSorts() []domain.SortOption {
	sorts := []domain.SortOption{domain.SortByName}
	if m.cfg.IsSourceEnabled(source.SourceYoRadio) {
		sorts = append(sorts, domain.SortByFrequency)
	}
	if m.cfg.IsSourceEnabled(source.SourceRadioBrowser) {
		sorts = append(sorts, domain.SortByVotes, domain.SortByBitrate)
	}
	return sorts
}

// selectedStation returns the station under the cursor, if any
func (m *Model) selectedStation() (domain.Station, bool) {
	list := m.currentList()
	if m.cursorFor() < 0 || m.cursorFor() >= len(list) {
		return domain.Station{}, false
	}
	return list[m.cursorFor()], true
}

// currentList returns the station list the cursor moves over
func (m *Model) currentList() []domain.Station {
	switch m.view {
	case viewFavorites:
		return m.favs.ListFavorites(m.allStations)
	default:
		if m.searchInput.Focused() {
			return m.liveFiltered()
		}
		return m.visible
	}
}

func (m *Model) cursorFor() int {
	if m.view == viewFavorites {
		return m.favCursor
	}
	return m.cursor
}

func (m *Model) setCursor(v int) {
	if m.view == viewFavorites {
		m.favCursor = v
	} else {
		m.cursor = v
	}
}
