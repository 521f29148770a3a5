package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SetColorMode applies an output.color setting. "never" strips all styling
// and "always" forces ANSI colors even when output is piped. "auto" keeps
// lipgloss' own terminal detection.
func SetColorMode(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// DisableColors switches to monochrome output (for --no-color).
func DisableColors() {
	SetColorMode("never")
}

// ColorsEnabled reports whether styled output will carry color codes.
func ColorsEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// SuccessStyle renders confirmations.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle renders failures.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// MutedStyle renders secondary text.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// KindStyle colors a ledger entry kind ("wallet", "account", "address").
func KindStyle(kind string) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch kind {
	case "wallet":
		return s.Foreground(ColorWallet).Bold(true)
	case "account":
		return s.Foreground(ColorAccount)
	case "address":
		return s.Foreground(ColorAddress)
	default:
		return s.Bold(true)
	}
}
