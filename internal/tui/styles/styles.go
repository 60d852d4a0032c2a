package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Accent     = lipgloss.Color("#F59E0B")
	SlateDark  = lipgloss.Color("#1F2937")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// ApplyTheme switches the accent color by theme name. Unknown themes keep
// the default.
func ApplyTheme(theme string) {
	switch theme {
	case "ocean":
		Accent = Blue
	case "forest":
		Accent = Green
	case "crimson":
		Accent = Red
	}
	rebuild()
}

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
	StatusBarStyle lipgloss.Style
)

// Indicator characters (unstyled)
const (
	FavoriteChar = "♥"
	PlayingChar  = "▶"
	PausedChar   = "⏸"
	OfflineChar  = "○"
)

func rebuild() {
	TitleStyle = lipgloss.NewStyle().Foreground(White).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(LightGray)
	DimStyle = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	HighlightStyle = lipgloss.NewStyle().Foreground(White).Background(Accent).Padding(0, 1)
	StatusBarStyle = lipgloss.NewStyle().Foreground(LightGray).Background(SlateDark).Padding(0, 1)
}

func init() {
	rebuild()
}
