package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.env.Config.Product.Name+" Configuration Wizard") + "\n")
	b.WriteString(m.renderTabs() + "\n")
	b.WriteString(m.renderStatus() + "\n\n")

	switch m.tab {
	case tabProfiles:
		b.WriteString(m.renderProfiles())
	case tabChain:
		b.WriteString(m.renderChain())
	case tabAdvanced:
		b.WriteString(m.renderAdvanced())
	case tabPreview:
		b.WriteString(m.renderPreview())
	}
	b.WriteString("\n")

	if m.mode != editNone {
		b.WriteString(m.renderEditor() + "\n")
	}
	if notices := m.board.View(); notices != "" {
		b.WriteString(notices + "\n")
	}
	if m.mode != editNone {
		b.WriteString(m.help.View(m.editorKeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
			continue
		}
		tabs = append(tabs, tabStyle.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatus() string {
	profile := m.state.Profile
	if profile == "" {
		profile = "custom"
	}
	return dimStyle.Render("profile: " + profile + "  chain: " + m.state.Chain)
}

func marker(selected bool) string {
	if selected {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func (m Model) renderProfiles() string {
	ids := m.cat.ProfileIDs()
	if len(ids) == 0 {
		return dimStyle.Render("no profiles")
	}
	c := m.cursors[tabProfiles]

	var lines []string
	for i, p := range m.cat.Profiles() {
		line := marker(i == c) + p.Name
		if p.ID == m.state.Profile {
			line += " " + currentStyle.Render("(selected)")
		}
		lines = append(lines, line)
	}

	if c >= 0 && c < len(ids) {
		p, err := m.cat.Profile(ids[c])
		if err == nil {
			lines = append(lines, "", sectionStyle.Render(p.Name), dimStyle.Render(p.Description))
			for _, s := range p.Specs {
				lines = append(lines, "  "+s.Label+": "+s.Value)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderChain() string {
	rows := m.chainRows()
	c := m.cursors[tabChain]

	var lines []string
	params := false
	for i, row := range rows {
		if row.chain != "" {
			line := marker(i == c) + row.label
			if row.chain == m.state.Chain {
				line += " " + currentStyle.Render("(selected)")
			}
			lines = append(lines, line)
			continue
		}
		if !params {
			lines = append(lines, "", sectionStyle.Render("Chain parameters"))
			params = true
		}
		value := row.preset
		suffix := dimStyle.Render(" (preset)")
		if v, ok := m.state.ChainParam(row.param); ok {
			value, suffix = v, ""
		}
		lines = append(lines, marker(i == c)+row.param+" = "+value+suffix+"  "+dimStyle.Render(row.label))
	}
	return window(lines, chainCursorLine(rows, c), m.bodyHeight())
}

// chainCursorLine maps a row index to its line in renderChain output.
func chainCursorLine(rows []chainRow, c int) int {
	if c < len(rows) && rows[c].param != "" {
		return c + 2
	}
	return c
}

func (m Model) renderAdvanced() string {
	c := m.cursors[tabAdvanced]

	var (
		lines      []string
		section    string
		cursorLine int
	)
	for i, r := range m.fields {
		if r.section != section {
			if section != "" {
				lines = append(lines, "")
			}
			lines = append(lines, sectionStyle.Render(r.section))
			section = r.section
		}
		v, set := m.fieldValue(r.field)
		value := v.Text()
		if !set {
			value += dimStyle.Render(" (default)")
		}
		if i == c {
			cursorLine = len(lines)
		}
		lines = append(lines, marker(i == c)+r.field.Label+": "+value+"  "+dimStyle.Render(r.field.Key))
	}

	if c >= 0 && c < len(m.fields) {
		f := m.fields[c].field
		desc := dimStyle.Render(f.Description)
		if len(f.Options) > 0 {
			desc += dimStyle.Render(" [" + strings.Join(f.Options, ", ") + "]")
		}
		return window(lines, cursorLine, m.bodyHeight()-1) + "\n" + desc
	}
	return window(lines, cursorLine, m.bodyHeight())
}

func (m Model) renderPreview() string {
	title := "Configuration"
	if m.previewChain {
		title = "Chain configuration"
	}
	return sectionStyle.Render(title) + dimStyle.Render("  (v to toggle)") + "\n" + m.preview.View()
}

func (m Model) renderEditor() string {
	title := "Import file"
	switch m.mode {
	case editField, editChainParam:
		title = "Edit " + m.editKey
	}
	return editorStyle.Render(sectionStyle.Render(title) + "\n" + m.input.View())
}

func (m Model) bodyHeight() int {
	if m.height == 0 {
		return 20
	}
	return max(m.height-chromeHeight, 3)
}

// window returns at most height lines, keeping the cursor line visible.
func window(lines []string, cursor, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n")
}
