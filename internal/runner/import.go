package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/donaldgifford/fukuiiconf/internal/formatter"
	"github.com/donaldgifford/fukuiiconf/internal/notify"
	"github.com/donaldgifford/fukuiiconf/internal/wizard"
)

// ImportRequest configures the import command.
type ImportRequest struct {
	// Files are imported in order. Empty reads stdin.
	Files []string
	// Profile and Chain seed the session before importing.
	Profile string
	Chain   string
	// EmitState writes the resulting session as a state file; "-" is
	// stdout.
	EmitState string
	// Render prints the re-rendered configuration on stdout.
	Render bool
}

// Import merges existing configuration files into a session.
func Import(opts *Options, req *ImportRequest) int {
	env, err := Load(opts)
	if err != nil {
		writeErr(stderrOf(opts), "fukuiiconf: %v\n", err)
		return ExitError
	}
	return env.Import(req)
}

// Import runs the import pipeline on a loaded environment.
func (e *Env) Import(req *ImportRequest) int {
	st, err := e.Session(&SessionRequest{Profile: req.Profile, Chain: req.Chain})
	if err != nil {
		return e.Fail(err)
	}

	files := req.Files
	if len(files) == 0 {
		files = []string{StdioName}
	}
	for _, path := range files {
		if code := e.importOne(st, path); code != ExitOK {
			return code
		}
	}

	if st.Profile != "" {
		e.Notify(notify.Info, "Profile: "+st.Profile)
	} else {
		e.Notify(notify.Info, "No matching profile detected")
	}

	switch {
	case req.EmitState != "":
		data, err := st.Snapshot(e.Catalog).Encode()
		if err != nil {
			return e.Fail(err)
		}
		if req.EmitState == StdioName {
			writeOut(e.stdout, string(data))
		} else if _, err := WriteFile(filepath.Dir(req.EmitState), filepath.Base(req.EmitState), string(data)); err != nil {
			return e.Fail(err)
		}
		if req.Render {
			writeOut(e.stdout, formatter.RenderConfiguration(st, e.FormatOptions()))
		}
	case req.Render:
		writeOut(e.stdout, formatter.RenderConfiguration(st, e.FormatOptions()))
	default:
		writeOut(e.stdout, listValues(st))
	}
	return ExitOK
}

func (e *Env) importOne(st *wizard.State, path string) int {
	var (
		r    io.Reader
		name = path
	)
	if path == StdioName {
		r, name = e.stdin, "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			e.Notify(notify.Error, "Failed to parse configuration: "+err.Error())
			return ExitError
		}
		defer f.Close()
		r, name = f, filepath.Base(path)
	}

	res, err := st.ImportReader(e.Catalog, r)
	if err != nil {
		e.Notify(notify.Error, err.Error())
		return ExitError
	}
	e.Notify(notify.Success, "Successfully loaded configuration from "+name)
	for _, w := range res.Warnings {
		e.Notify(notify.Warning, w)
	}
	e.Notify(notify.Info, fmt.Sprintf("%d keys imported", res.Parsed.Len()))
	return ExitOK
}

// listValues prints the session's custom values, one assignment per line.
func listValues(st *wizard.State) string {
	var b bytes.Buffer
	for _, k := range st.Custom.Keys() {
		v, _ := st.Custom.Get(k)
		fmt.Fprintf(&b, "%s = %s\n", k, formatter.FormatValue(v, nil))
	}
	return b.String()
}
