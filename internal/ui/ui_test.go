package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "pads", in: "ab", width: 5, want: "ab   "},
		{name: "exact", in: "abcde", width: 5, want: "abcde"},
		{name: "truncates", in: "abcdefgh", width: 5, want: "abcd…"},
		{name: "zero width", in: "abc", width: 0, want: ""},
		{name: "multibyte runes", in: "₿₿", width: 3, want: "₿₿ "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.Equal(t, tt.width, lipgloss.Width(got))
			}
		})
	}
}

func TestFitRight(t *testing.T) {
	assert.Equal(t, "   42", FitRight("42", 5))
	assert.Equal(t, "1234…", FitRight("123456", 5))
	assert.Equal(t, "", FitRight("x", -1))
}

func TestFit_IgnoresANSI(t *testing.T) {
	original := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(original)
	lipgloss.SetColorProfile(termenv.ANSI)

	styled := lipgloss.NewStyle().Foreground(ColorError).Render("err")
	got := Fit(styled, 6)
	assert.Equal(t, 6, lipgloss.Width(got))
	assert.Contains(t, got, "err")
}

func TestSetColorMode(t *testing.T) {
	original := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(original)

	SetColorMode("always")
	assert.True(t, ColorsEnabled())
	assert.Contains(t, ErrorStyle().Render("x"), "\x1b[")

	DisableColors()
	assert.False(t, ColorsEnabled())
	assert.Equal(t, "x", ErrorStyle().Render("x"))

	SetColorMode("auto")
	assert.False(t, ColorsEnabled(), "auto leaves the current profile alone")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Column", Width: 10},
		{Title: "Width", Width: 6},
	}
	out := RenderSimpleTable(columns, [][]string{{"label", "32"}, {"balance", "16"}})

	assert.Contains(t, out, "Column")
	assert.Contains(t, out, "Width")
	assert.Contains(t, out, "label")
	assert.Contains(t, out, "balance")

	assert.Empty(t, RenderSimpleTable(columns, nil))
}
