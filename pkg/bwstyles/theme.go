// Package bwstyles centralizes the lipgloss color and style definitions
// used by pkg/bwconsole, trimmed down from a much larger theme palette to
// the handful of semantic colors a diagnostics/list renderer needs:
// severity colors, file paths, line numbers, and table/tree borders.
//
// Colors are lipgloss.AdaptiveColor so they read well on both light and
// dark terminal backgrounds (dark variants follow the Dracula palette).
package bwstyles

import "github.com/charmbracelet/lipgloss"

var (
	ColorError = lipgloss.AdaptiveColor{
		Light: "#D73737",
		Dark:  "#FF5555",
	}

	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#E67E22",
		Dark:  "#FFB86C",
	}

	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#27AE60",
		Dark:  "#50FA7B",
	}

	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2980B9",
		Dark:  "#8BE9FD",
	}

	ColorPurple = lipgloss.AdaptiveColor{
		Light: "#8E44AD",
		Dark:  "#BD93F9",
	}

	ColorComment = lipgloss.AdaptiveColor{
		Light: "#6C7A89",
		Dark:  "#6272A4",
	}

	ColorForeground = lipgloss.AdaptiveColor{
		Light: "#2C3E50",
		Dark:  "#F8F8F2",
	}

	ColorBackground = lipgloss.AdaptiveColor{
		Light: "#ECF0F1",
		Dark:  "#282A36",
	}

	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#BDC3C7",
		Dark:  "#44475A",
	}

	ColorTableAltRow = lipgloss.AdaptiveColor{
		Light: "#F5F5F5",
		Dark:  "#1A1A1A",
	}
)

// RoundedBorder is used for tables.
var RoundedBorder = lipgloss.RoundedBorder()

var Error = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
var Warning = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
var Success = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
var Info = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

var FilePath = lipgloss.NewStyle().Bold(true).Foreground(ColorPurple)
var LineNumber = lipgloss.NewStyle().Foreground(ColorComment)
var ContextLine = lipgloss.NewStyle().Foreground(ColorForeground)

var Highlight = lipgloss.NewStyle().
	Background(ColorError).
	Foreground(ColorBackground)

var TableHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorComment)
var TableCell = lipgloss.NewStyle().Foreground(ColorForeground)
var TableBorder = lipgloss.NewStyle().Foreground(ColorBorder)

var TreeEnumerator = lipgloss.NewStyle().Foreground(ColorBorder)
var TreeNode = lipgloss.NewStyle().Foreground(ColorForeground)

var Header = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess).MarginBottom(1)
