// Package tui implements the terminal user interface using Bubble Tea.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - dark streetwear tones with neon accents
var (
	colorChalk     = lipgloss.Color("#F5F5F0")
	colorInk       = lipgloss.Color("#0D0D0F")
	colorViolet    = lipgloss.Color("#9D6BFF")
	colorSlate     = lipgloss.Color("#6E6E80")
	colorCyan      = lipgloss.Color("#4DE5FF")
	colorHighlight = lipgloss.Color("#FF3FA4")
	colorSuccess   = lipgloss.Color("#4CAF50")
	colorWarning   = lipgloss.Color("#FFC107")
	colorError     = lipgloss.Color("#F44336")
	colorMuted     = lipgloss.Color("#9E9E9E")
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// App container
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHelp  lipgloss.Style

	// List styles
	ListTitle        lipgloss.Style
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemDesc     lipgloss.Style

	// Product details
	ProductName        lipgloss.Style
	ProductPrice       lipgloss.Style
	ProductSalePrice   lipgloss.Style
	ProductDescription lipgloss.Style
	ProductAvailable   lipgloss.Style
	ProductSoldOut     lipgloss.Style

	// Option picker
	OptionsTitle   lipgloss.Style
	OptionsSummary lipgloss.Style

	// General
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Box       lipgloss.Style
	HelpBar   lipgloss.Style
}

// DefaultStyles returns the default TUI styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSlate).
			MarginBottom(1).
			Padding(0, 1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true),

		HeaderHelp: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),

		ListTitle: lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true).
			MarginBottom(1),

		ListItem: lipgloss.NewStyle().
			Foreground(colorChalk).
			PaddingLeft(2),

		ListItemSelected: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			PaddingLeft(1).
			SetString("▸ "),

		ListItemDesc: lipgloss.NewStyle().
			Foreground(colorMuted),

		ProductName: lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true).
			MarginBottom(1),

		ProductPrice: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),

		ProductSalePrice: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),

		ProductDescription: lipgloss.NewStyle().
			Foreground(colorChalk).
			MarginTop(1).
			MarginBottom(1),

		ProductAvailable: lipgloss.NewStyle().
			Foreground(colorSuccess),

		ProductSoldOut: lipgloss.NewStyle().
			Foreground(colorError),

		OptionsTitle: lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true).
			MarginBottom(1),

		OptionsSummary: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSlate).
			Padding(1, 2).
			MarginTop(1),

		Subtle: lipgloss.NewStyle().
			Foreground(colorMuted),

		Highlight: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSlate).
			Padding(1, 2),

		HelpBar: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
	}
}
