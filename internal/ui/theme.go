package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the palette for the upload form.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string
	FocusBg    string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Width(labelWidth),

		FocusedLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Width(labelWidth),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 2),

		FocusedButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header        lipgloss.Style
	Footer        lipgloss.Style
	Logo          lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Button        lipgloss.Style
	FocusedButton lipgloss.Style
	Panel         lipgloss.Style
	FocusedPanel  lipgloss.Style
}

// LevelStyle returns the style for a slog level name.
func (s Styles) LevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return s.DangerText
	case "WARN":
		return s.WarningText
	case "DEBUG":
		return s.FaintText
	default:
		return s.InfoText
	}
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24",
		Surface:     "#192330",
		SurfaceAlt:  "#212e3f",
		FocusBg:     "#29394f",
		Border:      "#39506d",
		BorderFocus: "#719cd6",
		Text:        "#cdcecf",
		Muted:       "#738091",
		Faint:       "#71839b",
		Accent:      "#719cd6",
		Success:     "#81b29a",
		Warning:     "#dbc074",
		Danger:      "#c94f6d",
		Info:        "#63cdcf",
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:        "Kanagawa",
		Background:  "#16161D",
		Surface:     "#1F1F28",
		SurfaceAlt:  "#2A2A37",
		FocusBg:     "#2A2A37",
		Border:      "#54546D",
		BorderFocus: "#7E9CD8",
		Text:        "#DCD7BA",
		Muted:       "#C8C093",
		Faint:       "#727169",
		Accent:      "#7E9CD8",
		Success:     "#98BB6C",
		Warning:     "#E6C384",
		Danger:      "#E46876",
		Info:        "#7FB4CA",
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky
	return Theme{
		Name:        "Slate",
		Background:  "#020617",
		Surface:     "#0f172a",
		SurfaceAlt:  "#1e293b",
		FocusBg:     "#283548",
		Border:      "#334155",
		BorderFocus: "#38bdf8",
		Text:        "#f1f5f9",
		Muted:       "#94a3b8",
		Faint:       "#64748b",
		Accent:      "#38bdf8",
		Success:     "#22c55e",
		Warning:     "#f59e0b",
		Danger:      "#ef4444",
		Info:        "#06b6d4",
	}
}
