package runner

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"

	"github.com/donaldgifford/fukuiiconf/internal/formatter"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
	"github.com/donaldgifford/fukuiiconf/internal/notify"
)

// RenderRequest configures the render and chain commands.
type RenderRequest struct {
	Session SessionRequest
	Output  OutputRequest
	// Watch re-renders whenever the state file changes until the context
	// is cancelled.
	Watch bool
}

type renderFunc func(e *Env, req *RenderRequest) int

// Render renders the main configuration document.
func Render(ctx context.Context, opts *Options, req *RenderRequest) int {
	return run(ctx, opts, req, (*Env).RenderConfig)
}

// Chain renders the chain document.
func Chain(ctx context.Context, opts *Options, req *RenderRequest) int {
	return run(ctx, opts, req, (*Env).RenderChain)
}

func run(ctx context.Context, opts *Options, req *RenderRequest, fn renderFunc) int {
	env, err := Load(opts)
	if err != nil {
		writeErr(stderrOf(opts), "fukuiiconf: %v\n", err)
		return ExitError
	}
	if req.Watch {
		return env.Watch(ctx, req, fn)
	}
	return fn(env, req)
}

// RenderConfig builds the session and emits the main document.
func (e *Env) RenderConfig(req *RenderRequest) int {
	st, err := e.Session(&req.Session)
	if err != nil {
		return e.Fail(err)
	}
	out := formatter.RenderConfiguration(st, e.FormatOptions())
	name := formatter.ConfigFileName(e.Config.Product.Namespace, st.Chain, e.now())
	return e.Emit(&req.Output, out, name, "Configuration")
}

// RenderChain builds the session and emits the chain document.
func (e *Env) RenderChain(req *RenderRequest) int {
	st, err := e.Session(&req.Session)
	if err != nil {
		return e.Fail(err)
	}
	out, err := formatter.RenderChainConfiguration(st, e.Catalog, e.FormatOptions())
	if err != nil {
		return e.Fail(err)
	}
	return e.Emit(&req.Output, out, formatter.ChainFileName(st.Chain, e.now()), "Chain configuration")
}

// Watch renders once, then again on every change to the state file. It
// returns when ctx is done.
func (e *Env) Watch(ctx context.Context, req *RenderRequest, fn renderFunc) int {
	path := req.Session.StateFile
	if path == "" || path == StdioName {
		return e.Fail(oops.In("runner").Errorf("watch requires a --state file"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return e.Fail(oops.In("runner").Wrapf(err, "resolving %s", path))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return e.Fail(oops.In("runner").Wrapf(err, "starting watcher"))
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return e.Fail(oops.In("runner").With("path", abs).Wrapf(err, "watching %s", path))
	}

	e.rendered(fn(e, req))
	e.Notify(notify.Info, "watching "+path+" for changes")

	for {
		select {
		case <-ctx.Done():
			return ExitOK
		case event, ok := <-watcher.Events:
			if !ok {
				return ExitOK
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logging.For("runner").Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("state_file_changed")
			e.rendered(fn(e, req))
		case err, ok := <-watcher.Errors:
			if !ok {
				return ExitOK
			}
			e.Notify(notify.Warning, "watcher: "+err.Error())
		}
	}
}

func (e *Env) rendered(code int) {
	if e.onRender != nil {
		e.onRender(code)
	}
}
