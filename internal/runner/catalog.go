package runner

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Catalog listing kinds.
const (
	ListProfiles = "profiles"
	ListChains   = "chains"
	ListFields   = "fields"
)

// Catalog listing formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	cellStyle   = lipgloss.NewStyle()
)

// Catalog prints one of the static tables.
func Catalog(opts *Options, kind, format string) int {
	env, err := Load(opts)
	if err != nil {
		writeErr(stderrOf(opts), "fukuiiconf: %v\n", err)
		return ExitError
	}
	out, err := env.ListCatalog(kind, format)
	if err != nil {
		return env.Fail(err)
	}
	writeOut(env.stdout, out)
	return ExitOK
}

// ListCatalog renders the named table.
func (e *Env) ListCatalog(kind, format string) (string, error) {
	var (
		doc  any
		rows [][]string
	)
	switch kind {
	case ListProfiles:
		doc = e.Catalog.Profiles()
		rows = append(rows, []string{"ID", "NAME", "KEYS", "DESCRIPTION"})
		for _, p := range e.Catalog.Profiles() {
			rows = append(rows, []string{p.ID, p.Name, strconv.Itoa(p.Config.Len()), p.Description})
		}
	case ListChains:
		doc = e.Catalog.Chains()
		rows = append(rows, []string{"ID", "NAME", "NETWORK ID", "CHAIN ID", "FORKS"})
		for _, c := range e.Catalog.Chains() {
			rows = append(rows, []string{c.ID, c.Name, strconv.Itoa(c.NetworkID), c.ChainID, strconv.Itoa(len(c.Forks))})
		}
	case ListFields:
		doc = e.Catalog.Sections()
		rows = append(rows, []string{"SECTION", "KEY", "TYPE", "DEFAULT"})
		for _, s := range e.Catalog.Sections() {
			for _, f := range s.Fields {
				rows = append(rows, []string{s.ID, f.Key, string(f.Type), f.Default.Text()})
			}
		}
	default:
		return "", oops.In("runner").Errorf("unknown catalog %q: expected profiles, chains or fields", kind)
	}

	switch format {
	case "", FormatTable:
		return table(rows), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", oops.In("runner").Wrapf(err, "encoding %s", kind)
		}
		return string(out), nil
	default:
		return "", oops.In("runner").Errorf("unknown format %q: expected table or yaml", format)
	}
}

// table lays out rows in padded columns. The first row is the header.
func table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		style := cellStyle
		if r == 0 {
			style = headerStyle
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = style.Render(cell)
				continue
			}
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteByte('\n')
	}
	return b.String()
}
