package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/ui"
	"github.com/rileyhilliard/ltree/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")

	if len(m.lines) == 0 {
		b.WriteString(ui.MutedStyle().Render("  (empty ledger)"))
		b.WriteString("\n")
	}
	end := min(len(m.lines), m.offset+m.bodyHeight())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderLine(m.lines[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) renderTitle() string {
	if m.tree.root == nil {
		return titleStyle.Render("ltree")
	}
	arrow := "↑"
	if m.desc {
		arrow = "↓"
	}
	info := fmt.Sprintf("  %s · sort: %s %s", util.Count(m.tree.root.Size()-1, "entry", "entries"), m.sort, arrow)
	return titleStyle.Render(m.tree.root.Artifact().Label) + ui.MutedStyle().Render(info)
}

func (m Model) renderColumnHeader() string {
	cells := make([]string, len(m.columns))
	for i, c := range m.columns {
		title := strings.ToUpper(c.Key)
		if c.Key == config.ColumnBalance || c.Key == config.ColumnChildren {
			cells[i] = ui.FitRight(title, c.Width)
		} else {
			cells[i] = ui.Fit(title, c.Width)
		}
	}
	return columnHeaderStyle.Render(strings.Join(cells, " "))
}

// renderLine renders one tree row. The selected row is drawn without cell
// styles so the reverse highlight covers it evenly, and gets a cursor mark
// when output is monochrome.
func (m Model) renderLine(l line, selected bool) string {
	row := l.node.Artifact()
	style := func(s lipgloss.Style, text string) string {
		if selected {
			return text
		}
		return s.Render(text)
	}

	cells := make([]string, 0, len(m.columns))
	for _, c := range m.columns {
		switch c.Key {
		case config.ColumnLabel:
			cells = append(cells, ui.Fit(l.labelCell(), c.Width))
		case config.ColumnKind:
			cells = append(cells, style(ui.KindStyle(string(row.Kind)), ui.Fit(string(row.Kind), c.Width)))
		case config.ColumnBalance:
			cells = append(cells, ui.FitRight(row.BalanceText(), c.Width))
		case config.ColumnChildren:
			count := ""
			if n := l.node.Len(); n > 0 {
				count = strconv.Itoa(n)
			}
			cells = append(cells, style(ui.MutedStyle(), ui.FitRight(count, c.Width)))
		case config.ColumnNote:
			cells = append(cells, style(ui.MutedStyle(), ui.Fit(row.Note, c.Width)))
		}
	}

	out := strings.Join(cells, " ")
	if selected {
		if !ui.ColorsEnabled() {
			// Reverse video is stripped along with color.
			out += " " + ui.SymbolCursor
		}
		return selectedStyle.Render(out)
	}
	return out
}

func (m Model) renderStatus() string {
	if m.lastErr != nil {
		return ui.ErrorStyle().Render(ui.SymbolFail + " " + firstLine(m.lastErr.Error()))
	}
	if m.lastReload.IsZero() {
		return ""
	}
	return ui.MutedStyle().Render(fmt.Sprintf("%s reloaded %s (%s)",
		ui.SymbolSuccess, humanize.Time(m.lastReload), m.lastStats))
}

func (m Model) renderHelpOverlay() string {
	h := m.help
	h.ShowAll = true
	box := helpBoxStyle.Render(titleStyle.Render("Keyboard Shortcuts") + "\n\n" + h.View(keys) +
		"\n\n" + ui.MutedStyle().Render("Press ? to close"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// firstLine returns the first non-empty line of s without a leading status
// symbol. Structured errors render over several lines.
func firstLine(s string) string {
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), ui.SymbolFail))
		if l != "" {
			return l
		}
	}
	return ""
}
