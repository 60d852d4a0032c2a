package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dlamsal/airwave/internal/domain"
	"github.com/dlamsal/airwave/internal/player"
	"github.com/dlamsal/airwave/internal/source"
	"github.com/dlamsal/airwave/internal/tui/styles"
)

// View renders the current screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.view {
	case viewSettings:
		b.WriteString(m.renderSettings())
	case viewHelp:
		b.WriteString(m.renderHelp())
	case viewFavorites:
		b.WriteString(m.renderFavorites())
	default:
		b.WriteString(m.renderBrowse())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("airwave")
	if name := m.cfg.Preferences.Username; name != "" {
		return title + styles.DimStyle.Render("  ·  tuned in as "+name)
	}
	return title
}

func (m Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + " loading stations...\n")
		return b.String()
	}

	if m.noSources {
		b.WriteString(styles.ErrorStyle.Render("No radio sources enabled.") + "\n")
		b.WriteString(styles.DimStyle.Render("Press S to open settings and enable one.") + "\n")
		return b.String()
	}

	if m.errText != "" {
		b.WriteString(styles.ErrorStyle.Render(m.errText) + "\n\n")
	}

	list := m.currentList()
	if len(list) == 0 {
		b.WriteString(styles.DimStyle.Render("No stations match the current filters.") + "\n")
		return b.String()
	}

	for i, st := range list {
		b.WriteString(m.renderStationRow(st, i == m.cursorFor()))
		b.WriteString("\n")
	}

	if m.hasMore && !m.searchInput.Focused() {
		b.WriteString(styles.DimStyle.Render("  … press m for more") + "\n")
	}

	return b.String()
}

func (m Model) renderFilterBar() string {
	criteria := m.pager.Criteria()
	var parts []string

	if m.searchInput.Focused() {
		parts = append(parts, m.searchInput.View())
	} else if criteria.Search != "" {
		parts = append(parts, styles.AccentStyle.Render("search:")+" "+criteria.Search)
	} else {
		parts = append(parts, styles.DimStyle.Render("/ to search"))
	}

	if m.view == viewDeepSearch {
		parts = append(parts, styles.AccentStyle.Render("sources:")+" "+m.searchQuery)
	}

	country := criteria.Country
	if country == "" {
		country = "all"
	}
	parts = append(parts, styles.DimStyle.Render("country:")+" "+country)

	if criteria.Province != 0 {
		parts = append(parts, styles.DimStyle.Render("province:")+" "+fmt.Sprintf("%d", criteria.Province))
	}

	parts = append(parts, styles.DimStyle.Render("sort:")+" "+string(sortOrDefault(criteria.SortBy)))

	filtered := len(m.currentList())
	parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("%d/%d stations", filtered, len(m.stationSet()))))

	return strings.Join(parts, styles.DimStyle.Render("  │  "))
}

func sortOrDefault(s domain.SortOption) domain.SortOption {
	if s == "" {
		return domain.SortByName
	}
	return s
}

func (m Model) renderStationRow(st domain.Station, selected bool) string {
	marker := "  "
	if m.status.Station != nil && m.status.Station.ID == st.ID {
		switch m.status.State {
		case player.StatePlaying, player.StateLoading:
			marker = styles.AccentStyle.Render(styles.PlayingChar) + " "
		case player.StatePaused:
			marker = styles.DimStyle.Render(styles.PausedChar) + " "
		}
	}

	heart := "  "
	if m.favs.IsFavorite(st.ID) {
		heart = styles.ErrorStyle.Render(styles.FavoriteChar) + " "
	}

	meta := st.DisplayFrequency()
	if meta == "" && st.Bitrate > 0 {
		meta = fmt.Sprintf("%d kbps", st.Bitrate)
	}
	if loc := st.Location(); loc != "" {
		if meta != "" {
			meta += "  "
		}
		meta += loc
	}

	name := st.Name
	line := fmt.Sprintf("%s%s%-40s %s", marker, heart, truncate(name, 40), styles.DimStyle.Render(meta))

	if selected {
		return styles.HighlightStyle.Render(truncate(line, m.width-2))
	}
	return line
}

func (m Model) renderFavorites() string {
	var b strings.Builder

	favs := m.favs.ListFavorites(m.allStations)
	b.WriteString(styles.TitleStyle.Render("Favorites") +
		styles.DimStyle.Render(fmt.Sprintf("  (%d)", m.favs.Count())) + "\n\n")

	if len(favs) == 0 {
		b.WriteString(styles.DimStyle.Render("No favorites yet. Press f on a station to add one.") + "\n")
	}
	for i, st := range favs {
		row := m.renderStationRow(st, i == m.favCursor)
		if entry, ok := m.favs.Entry(st.ID); ok && entry.PlayCount > 0 {
			row += styles.DimStyle.Render(fmt.Sprintf("  ×%d", entry.PlayCount))
		}
		b.WriteString(row + "\n")
	}

	if ids := m.favs.MostPlayed(0); len(ids) > 0 {
		b.WriteString("\n" + styles.TitleStyle.Render("Most played") + "\n\n")
		for _, id := range ids {
			if entry, ok := m.favs.Entry(id); ok {
				b.WriteString(fmt.Sprintf("    %-40s %s\n",
					truncate(entry.Station.Name, 40),
					styles.DimStyle.Render(fmt.Sprintf("×%d", entry.PlayCount))))
			}
		}
	}

	recent := m.favs.ListRecent(0)
	if len(recent) > 0 {
		b.WriteString("\n" + styles.TitleStyle.Render("Recently played") +
			styles.DimStyle.Render("  (x clears)") + "\n\n")
		for _, st := range recent {
			b.WriteString("    " + truncate(st.Name, 40) + "\n")
		}
	}

	return b.String()
}

func (m Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Sources") + "\n\n")

	for i, info := range source.Available() {
		mark := "[ ]"
		if m.cfg.IsSourceEnabled(info.ID) {
			mark = styles.SuccessStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s  %s", mark, info.Name, styles.DimStyle.Render(info.Description))
		if i == m.settingsCursor {
			line = styles.HighlightStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + styles.DimStyle.Render("enter/space toggles · esc returns") + "\n")
	return b.String()
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"j/k, ↓/↑", "move"},
		{"enter", "play station"},
		{"space", "play/pause"},
		{"f", "toggle favorite"},
		{"F", "favorites view"},
		{"x", "clear recently played (favorites view)"},
		{"/", "search (enter commits, ctrl+f asks sources)"},
		{"s / c / v", "cycle sort / country / province"},
		{"m", "load more stations"},
		{"n / p", "next / previous station"},
		{"+ / -", "volume"},
		{"r", "refresh catalog"},
		{"S", "settings"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys") + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.AccentStyle.Render(fmt.Sprintf("%-10s", row[0])),
			row[1]))
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	switch m.status.State {
	case player.StateIdle:
		parts = append(parts, "nothing playing")
	case player.StateLoading:
		parts = append(parts, m.spin.View()+" connecting to "+stationName(m.status.Station))
	case player.StatePlaying:
		parts = append(parts, styles.PlayingChar+" "+stationName(m.status.Station))
	case player.StatePaused:
		parts = append(parts, styles.PausedChar+" "+stationName(m.status.Station))
	case player.StateErrored:
		parts = append(parts, styles.ErrorStyle.Render(m.status.Message))
		if m.status.Station != nil {
			parts = append(parts, styles.DimStyle.Render(stationName(m.status.Station)))
		}
	}

	parts = append(parts, fmt.Sprintf("vol %3.0f%%", m.status.Volume*100))
	parts = append(parts, styles.DimStyle.Render("? help"))

	bar := strings.Join(parts, "  │  ")
	if m.width > 0 {
		return styles.StatusBarStyle.Width(m.width).Render(bar)
	}
	return styles.StatusBarStyle.Render(bar)
}

func stationName(st *domain.Station) string {
	if st == nil {
		return ""
	}
	return st.Name
}

func truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
