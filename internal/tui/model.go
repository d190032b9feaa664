// Package tui is the interactive configuration wizard.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/oops"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
	"github.com/donaldgifford/fukuiiconf/internal/formatter"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
	"github.com/donaldgifford/fukuiiconf/internal/notify"
	"github.com/donaldgifford/fukuiiconf/internal/runner"
	"github.com/donaldgifford/fukuiiconf/internal/wizard"
)

type tab int

const (
	tabProfiles tab = iota
	tabChain
	tabAdvanced
	tabPreview
	tabCount
)

var tabNames = [tabCount]string{"Profiles", "Chain", "Advanced", "Preview"}

type editMode int

const (
	editNone editMode = iota
	editField
	editChainParam
	editImport
)

// chromeHeight is the number of lines around the tab body.
const chromeHeight = 8

type fieldRow struct {
	section string
	field   catalog.Field
}

// chainRow is either a selectable chain or an editable chain parameter.
type chainRow struct {
	chain  string
	param  string
	label  string
	preset string
}

type (
	expireMsg     struct{}
	importReadMsg struct {
		name string
		data []byte
		err  error
	}
	writeDoneMsg struct {
		what string
		path string
		err  error
	}
)

// Model is the wizard's bubbletea model. The session it edits is owned
// by the model for the lifetime of the program.
type Model struct {
	env   *runner.Env
	cat   *catalog.Catalog
	state *wizard.State
	board *notify.Board

	keys       keyMap
	editorKeys editorKeys
	help       help.Model

	tab     tab
	cursors [tabCount]int
	fields  []fieldRow

	mode    editMode
	editKey string
	input   textinput.Model

	preview      viewport.Model
	previewChain bool

	width  int
	height int
}

// New returns a model editing st.
func New(env *runner.Env, st *wizard.State) Model {
	var fields []fieldRow
	for _, s := range env.Catalog.Sections() {
		for _, f := range s.Fields {
			fields = append(fields, fieldRow{section: s.Title, field: f})
		}
	}

	in := textinput.New()
	in.Prompt = "> "

	m := Model{
		env:        env,
		cat:        env.Catalog,
		state:      st,
		board:      notify.NewBoard(env.Now),
		keys:       newKeyMap(),
		editorKeys: newEditorKeys(),
		help:       help.New(),
		fields:     fields,
		input:      in,
		preview:    viewport.New(80, 20),
	}
	if st.Profile != "" {
		for i, id := range env.Catalog.ProfileIDs() {
			if id == st.Profile {
				m.cursors[tabProfiles] = i
			}
		}
	}
	m.refreshPreview()
	return m
}

// Run starts the wizard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, env *runner.Env, st *wizard.State) error {
	logging.For("tui").Info().Str("session", st.SessionID.String()).Msg("tui_started")
	p := tea.NewProgram(New(env, st), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return oops.In("tui").Wrapf(err, "running wizard")
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-chromeHeight, 3)
		return m, nil
	case expireMsg:
		m.board.Active()
		return m, nil
	case importReadMsg:
		return m.handleImport(msg)
	case writeDoneMsg:
		if msg.err != nil {
			return m, m.notify(notify.Error, msg.err.Error())
		}
		return m, m.notify(notify.Success, msg.what+" written to "+msg.path)
	case tea.KeyMsg:
		if m.mode != editNone {
			return m.updateEditor(msg)
		}
		return m.updateKeys(msg)
	}

	if m.tab == tabPreview {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.refreshPreview()
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.refreshPreview()
		return m, nil
	case key.Matches(msg, m.keys.Import):
		cmd := m.startEdit(editImport, "", "")
		return m, cmd
	case key.Matches(msg, m.keys.Write):
		return m, m.writeConfig()
	case key.Matches(msg, m.keys.WriteChain):
		return m, m.writeChain()
	case key.Matches(msg, m.keys.TogglePreview):
		m.previewChain = !m.previewChain
		m.refreshPreview()
		return m, nil
	}

	if m.tab == tabPreview {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Select):
		return m.activate()
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editorKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.editorKeys.Cancel):
		m.closeEditor()
		return m, nil
	case key.Matches(msg, m.editorKeys.Submit):
		return m.submitEdit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) rowCount() int {
	switch m.tab {
	case tabProfiles:
		return len(m.cat.ProfileIDs())
	case tabChain:
		return len(m.chainRows())
	case tabAdvanced:
		return len(m.fields)
	}
	return 0
}

func (m *Model) move(delta int) {
	n := m.rowCount()
	if n == 0 {
		return
	}
	m.cursors[m.tab] = min(max(m.cursors[m.tab]+delta, 0), n-1)
}

// cursor returns the clamped cursor of the current tab.
func (m *Model) cursor() int {
	n := m.rowCount()
	c := min(m.cursors[m.tab], n-1)
	if c < 0 {
		c = 0
	}
	m.cursors[m.tab] = c
	return c
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabProfiles:
		ids := m.cat.ProfileIDs()
		if len(ids) == 0 {
			return m, nil
		}
		id := ids[m.cursor()]
		if err := m.state.SelectProfile(m.cat, id); err != nil {
			return m, m.notify(notify.Error, err.Error())
		}
		p, _ := m.cat.Profile(id)
		m.refreshPreview()
		return m, m.notify(notify.Info, "Profile selected: "+p.Name)

	case tabChain:
		rows := m.chainRows()
		row := rows[m.cursor()]
		if row.chain != "" {
			if err := m.state.SelectChain(m.cat, row.chain); err != nil {
				return m, m.notify(notify.Error, err.Error())
			}
			m.refreshPreview()
			return m, m.notify(notify.Info, "Chain selected: "+row.label)
		}
		value := row.preset
		if v, ok := m.state.ChainParam(row.param); ok {
			value = v
		}
		cmd := m.startEdit(editChainParam, row.param, value)
		return m, cmd

	case tabAdvanced:
		if len(m.fields) == 0 {
			return m, nil
		}
		f := m.fields[m.cursor()].field
		cur, _ := m.fieldValue(f)
		switch f.Type {
		case catalog.TypeBoolean:
			b, _ := cur.AsBool()
			m.state.Set(f.Key, confmap.Bool(!b))
			m.refreshPreview()
			return m, nil
		case catalog.TypeSelect:
			if len(f.Options) > 0 {
				m.state.Set(f.Key, confmap.String(nextOption(f.Options, cur.Text())))
				m.refreshPreview()
				return m, nil
			}
		}
		cmd := m.startEdit(editField, f.Key, cur.Text())
		return m, cmd
	}
	return m, nil
}

func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabChain:
		row := m.chainRows()[m.cursor()]
		if row.param == "" {
			return m, nil
		}
		m.state.ChainOverrides.Delete(row.param)
		m.refreshPreview()
		return m, m.notify(notify.Info, "Reset "+row.param)
	case tabAdvanced:
		if len(m.fields) == 0 {
			return m, nil
		}
		k := m.fields[m.cursor()].field.Key
		m.state.Unset(k)
		m.refreshPreview()
		return m, m.notify(notify.Info, "Reset "+k)
	}
	return m, nil
}

func (m *Model) startEdit(mode editMode, k, value string) tea.Cmd {
	m.mode, m.editKey = mode, k
	m.input.SetValue(value)
	m.input.CursorEnd()
	if mode == editImport {
		m.input.Placeholder = "path/to/fukuii.conf"
	} else {
		m.input.Placeholder = ""
	}
	return m.input.Focus()
}

func (m *Model) closeEditor() {
	m.mode, m.editKey = editNone, ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	mode, k := m.mode, m.editKey
	value := m.input.Value()
	m.closeEditor()

	switch mode {
	case editField:
		if strings.TrimSpace(value) == "" {
			m.state.Unset(k)
		} else {
			m.state.SetField(m.cat, k, value)
		}
	case editChainParam:
		if strings.TrimSpace(value) == "" {
			m.state.ChainOverrides.Delete(k)
		} else {
			m.state.SetChainParam(k, value)
		}
	case editImport:
		path := strings.TrimSpace(value)
		if path == "" {
			return m, nil
		}
		return m, readFileCmd(path)
	}
	m.refreshPreview()
	return m, nil
}

func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			err = oops.In("tui").With("path", path).Wrapf(err, "reading %s", path)
		}
		return importReadMsg{name: filepath.Base(path), data: data, err: err}
	}
}

func (m Model) handleImport(msg importReadMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.notify(notify.Error, "Failed to parse configuration: "+msg.err.Error())
	}
	res := m.state.Import(m.cat, string(msg.data))

	cmds := []tea.Cmd{m.notify(notify.Success, "Successfully loaded configuration from "+msg.name)}
	for _, w := range res.Warnings {
		cmds = append(cmds, m.notify(notify.Warning, w))
	}
	if res.Detected {
		for i, id := range m.cat.ProfileIDs() {
			if id == res.Profile {
				m.cursors[tabProfiles] = i
			}
		}
	}
	m.tab = tabAdvanced
	m.refreshPreview()
	return m, tea.Batch(cmds...)
}

func (m Model) writeConfig() tea.Cmd {
	content := formatter.RenderConfiguration(m.state, m.env.FormatOptions())
	name := formatter.ConfigFileName(m.env.Config.Product.Namespace, m.state.Chain, m.env.Now())
	return writeCmd(m.env.Config.Output.Dir, name, content, "Configuration")
}

func (m Model) writeChain() tea.Cmd {
	content, err := formatter.RenderChainConfiguration(m.state, m.cat, m.env.FormatOptions())
	if err != nil {
		return m.notify(notify.Error, err.Error())
	}
	name := formatter.ChainFileName(m.state.Chain, m.env.Now())
	return writeCmd(m.env.Config.Output.Dir, name, content, "Chain configuration")
}

func writeCmd(dir, name, content, what string) tea.Cmd {
	return func() tea.Msg {
		path, err := runner.WriteFile(dir, name, content)
		return writeDoneMsg{what: what, path: path, err: err}
	}
}

// notify posts a notice and schedules a redraw for when it expires.
func (m Model) notify(level notify.Level, msg string) tea.Cmd {
	m.board.Add(level, msg)
	return tea.Tick(notify.TTL, func(time.Time) tea.Msg { return expireMsg{} })
}

func (m *Model) refreshPreview() {
	var content string
	if m.previewChain {
		out, err := formatter.RenderChainConfiguration(m.state, m.cat, m.env.FormatOptions())
		if err != nil {
			out = err.Error()
		}
		content = out
	} else {
		content = formatter.RenderConfiguration(m.state, m.env.FormatOptions())
	}
	m.preview.SetContent(content)
	m.preview.GotoTop()
}

func (m Model) fieldValue(f catalog.Field) (confmap.Value, bool) {
	if v, ok := m.state.Custom.Get(f.Key); ok {
		return v, true
	}
	return f.Default, false
}

func (m Model) chainRows() []chainRow {
	var rows []chainRow
	for _, c := range m.cat.Chains() {
		rows = append(rows, chainRow{chain: c.ID, label: c.Name})
	}
	ch, err := m.cat.Chain(m.state.Chain)
	if err != nil {
		return rows
	}
	rows = append(rows,
		chainRow{param: wizard.ParamNetworkID, label: "Network ID", preset: strconv.Itoa(ch.NetworkID)},
		chainRow{param: wizard.ParamChainID, label: "Chain ID", preset: ch.ChainID},
	)
	for _, f := range ch.Forks {
		rows = append(rows, chainRow{param: f.Name, label: f.Label, preset: f.Value})
	}
	return rows
}
