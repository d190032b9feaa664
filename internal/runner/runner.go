// Package runner orchestrates the session -> render -> output pipelines
// behind the fukuiiconf commands.
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/config"
	"github.com/donaldgifford/fukuiiconf/internal/formatter"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
	"github.com/donaldgifford/fukuiiconf/internal/notify"
	_ "github.com/donaldgifford/fukuiiconf/internal/rules" // Register quote rules via init().
	"github.com/donaldgifford/fukuiiconf/internal/version"
	"github.com/donaldgifford/fukuiiconf/internal/wizard"
	"github.com/donaldgifford/fukuiiconf/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// StdioName is the path that selects stdin or stdout.
const StdioName = "-"

// Options configures the runner environment shared by all commands.
type Options struct {
	ConfigPath string
	// LogLevel overrides log.level from the config file when set.
	LogLevel string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	// Now is the render clock. Defaults to time.Now.
	Now func() time.Time
	// Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog
}

// Env is a loaded runner environment.
type Env struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Version string

	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
	notices notify.Printer

	// onRender observes each watch render.
	onRender func(code int)
}

// Load reads the tool configuration and sets up logging.
func Load(opts *Options) (*Env, error) {
	if opts == nil {
		opts = &Options{}
	}
	env := &Env{
		Catalog: opts.Catalog,
		stdin:   opts.Stdin,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		now:     opts.Now,
	}
	if env.stdin == nil {
		env.stdin = os.Stdin
	}
	if env.stdout == nil {
		env.stdout = os.Stdout
	}
	if env.stderr == nil {
		env.stderr = os.Stderr
	}
	if env.now == nil {
		env.now = time.Now
	}
	if env.Catalog == nil {
		env.Catalog = catalog.Default()
	}
	env.notices = notify.Printer{W: env.stderr}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := logging.Setup(env.stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	env.Config = cfg
	env.Version = version.Resolve(cfg)

	logging.For("runner").Debug().
		Str("config", config.Used(opts.ConfigPath)).
		Str("version", env.Version).
		Msg("runner_loaded")
	return env, nil
}

// FormatOptions returns the render options derived from the config.
func (e *Env) FormatOptions() *formatter.Options {
	return &formatter.Options{
		Namespace: e.Config.Product.Namespace,
		Product:   e.Config.Product.Name,
		Version:   e.Version,
		Include:   e.Config.Wizard.Include,
		Now:       e.now,
	}
}

// Now returns the current time from the environment clock.
func (e *Env) Now() time.Time { return e.now() }

// Notify prints a notice on stderr.
func (e *Env) Notify(level notify.Level, msg string) {
	e.notices.Print(level, msg)
}

// Fail reports err as an error notice and returns ExitError.
func (e *Env) Fail(err error) int {
	e.Notify(notify.Error, err.Error())
	return ExitError
}

// SessionRequest describes how to build a session from flags.
type SessionRequest struct {
	// StateFile is a YAML state file path, or "-" for stdin.
	StateFile string
	Profile   string
	Chain     string
	// Sets are key=value edits applied with field coercion.
	Sets []string
	// Forks are name=value chain overrides.
	Forks     []string
	NetworkID string
	ChainID   string
}

// Session builds a wizard session. Flags win over the state file.
func (e *Env) Session(req *SessionRequest) (*wizard.State, error) {
	sf := &wizard.StateFile{}
	if req.StateFile != "" {
		data, err := e.readInput(req.StateFile)
		if err != nil {
			return nil, err
		}
		decoded, warnings, err := wizard.DecodeStateFile(data)
		if err != nil {
			return nil, oops.In("runner").With("path", req.StateFile).Wrapf(err, "reading state file %s", req.StateFile)
		}
		for _, w := range warnings {
			e.Notify(notify.Warning, req.StateFile+": "+w)
		}
		sf = decoded
	}
	if req.Profile != "" {
		sf.Profile = req.Profile
	}
	if req.Chain != "" {
		sf.Chain = req.Chain
	}

	st, err := sf.Apply(e.Catalog, e.Config.Wizard.DefaultChain)
	if err != nil {
		return nil, err
	}

	for _, kv := range req.Sets {
		key, raw, err := splitAssignment(kv)
		if err != nil {
			return nil, err
		}
		st.SetField(e.Catalog, key, raw)
	}
	for _, kv := range req.Forks {
		key, raw, err := splitAssignment(kv)
		if err != nil {
			return nil, err
		}
		st.SetChainParam(key, raw)
	}
	if req.NetworkID != "" {
		st.SetChainParam(wizard.ParamNetworkID, req.NetworkID)
	}
	if req.ChainID != "" {
		st.SetChainParam(wizard.ParamChainID, req.ChainID)
	}
	return st, nil
}

func splitAssignment(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", oops.In("runner").Errorf("invalid assignment %q: expected key=value", kv)
	}
	return key, value, nil
}

func (e *Env) readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == StdioName {
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, oops.In("runner").With("path", path).Wrapf(err, "reading %s", path)
	}
	return data, nil
}

// OutputRequest says what to do with a rendered document.
type OutputRequest struct {
	// Stdout prints the document instead of writing a file.
	Stdout bool
	// Check compares against this file and reports a difference.
	Check string
	// Diff prints a unified diff against this file.
	Diff string
	// OutDir overrides output.dir.
	OutDir string
	// Quiet suppresses success notices.
	Quiet bool
}

// Emit delivers rendered content per req. name is the file name used
// when writing to the output directory; what names the document in
// notices.
func (e *Env) Emit(req *OutputRequest, content, name, what string) int {
	switch {
	case req.Check != "":
		existing, err := e.readInput(req.Check)
		if err != nil {
			return e.Fail(err)
		}
		if diff.Equal(string(existing), content, compareOptions(req.Check)) {
			return ExitOK
		}
		if !req.Quiet {
			writeErr(e.stderr, "%s\n", req.Check)
		}
		return ExitFormatDiff

	case req.Diff != "":
		existing, err := e.readInput(req.Diff)
		if err != nil {
			return e.Fail(err)
		}
		d := diff.Unified(string(existing), content, compareOptions(req.Diff))
		if d == "" {
			return ExitOK
		}
		writeOut(e.stdout, d)
		return ExitFormatDiff

	case req.Stdout:
		writeOut(e.stdout, content)
		return ExitOK
	}

	dir := req.OutDir
	if dir == "" {
		dir = e.Config.Output.Dir
	}
	path, err := WriteFile(dir, name, content)
	if err != nil {
		return e.Fail(err)
	}
	if !req.Quiet {
		e.Notify(notify.Success, what+" written to "+path)
	}
	return ExitOK
}

// WriteFile writes content to dir/name, creating dir if needed.
func WriteFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", oops.In("runner").With("dir", dir).Wrapf(err, "creating %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", oops.In("runner").With("path", path).Wrapf(err, "writing %s", path)
	}
	logging.For("runner").Debug().Str("path", path).Int("bytes", len(content)).Msg("file_written")
	return path, nil
}

// compareOptions ignores the generated-on header line, which changes on
// every render.
func compareOptions(path string) diff.Options {
	return diff.Options{
		OldLabel: path,
		NewLabel: path + " (rendered)",
		Normalize: func(line string) string {
			if strings.HasPrefix(line, formatter.GeneratedPrefix) {
				return formatter.GeneratedPrefix
			}
			return line
		},
	}
}

func stderrOf(opts *Options) io.Writer {
	if opts == nil || opts.Stderr == nil {
		return os.Stderr
	}
	return opts.Stderr
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
