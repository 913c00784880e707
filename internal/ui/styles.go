package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color palette for one theme
type Theme struct {
	Primary    string
	Secondary  string
	Subtle     string
	Background string
	Error      string
	Success    string
	Warning    string
}

// Themes maps theme names to their palettes
var Themes = map[string]Theme{
	"default": {
		Primary:    "#7D56F4",
		Secondary:  "#04B575",
		Subtle:     "#737373",
		Background: "#1A1A2E",
		Error:      "#FF5555",
		Success:    "#04B575",
		Warning:    "#F1FA8C",
	},
	"catppuccin": {
		Primary:    "#CBA6F7",
		Secondary:  "#94E2D5",
		Subtle:     "#6C7086",
		Background: "#1E1E2E",
		Error:      "#F38BA8",
		Success:    "#A6E3A1",
		Warning:    "#F9E2AF",
	},
	"dracula": {
		Primary:    "#BD93F9",
		Secondary:  "#8BE9FD",
		Subtle:     "#6272A4",
		Background: "#282A36",
		Error:      "#FF5555",
		Success:    "#50FA7B",
		Warning:    "#F1FA8C",
	},
	"nord": {
		Primary:    "#88C0D0",
		Secondary:  "#A3BE8C",
		Subtle:     "#4C566A",
		Background: "#2E3440",
		Error:      "#BF616A",
		Success:    "#A3BE8C",
		Warning:    "#EBCB8B",
	},
	"gruvbox": {
		Primary:    "#FE8019",
		Secondary:  "#B8BB26",
		Subtle:     "#928374",
		Background: "#282828",
		Error:      "#FB4934",
		Success:    "#B8BB26",
		Warning:    "#FABD2F",
	},
}

// GetThemeNames returns the available theme names in stable order
func GetThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Styles holds all the UI styles
type Styles struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Normal    lipgloss.Style
	Label     lipgloss.Style
	Help      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Badge     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// NewStyles builds a style set from a theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)).
			PaddingTop(1).
			PaddingBottom(1),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Secondary)),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Subtle)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Secondary)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Primary)).
			Foreground(lipgloss.Color("#FFFFFF")),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)),
	}
}

// DefaultStyles returns the default style set
func DefaultStyles() Styles {
	return NewStyles(Themes["default"])
}
