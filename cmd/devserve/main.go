// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.astrophena.name/devserve/internal/cli"
	"go.astrophena.name/devserve/internal/cli/envflag"
	"go.astrophena.name/devserve/internal/logger"
	"go.astrophena.name/devserve/internal/web"
)

func main() { cli.Main(new(engine)) }

// logBufferLines is how many log lines are kept for /debug/log.
const logBufferLines = 1000

type engine struct {
	init  sync.Once
	files http.Handler

	// configuration
	addr        *string
	shell       *string
	debug       bool
	noColor     bool
	execTimeout time.Duration

	fs     fs.FS
	log    *logger.Logger
	stream logger.Streamer

	// used in tests
	noServerStart bool
}

func (e *engine) EnvFlags(fs *flag.FlagSet, getenv func(string) string) {
	e.addr = envflag.Value("addr", "DEVSERVE_ADDR", ":8000", "Listen on `host:port`.", fs, getenv)
	e.shell = envflag.Value("shell", "DEVSERVE_SHELL", defaultShell(),
		"Run commands by passing them as the last argument of shell `invocation`.", fs, getenv)
}

func (e *engine) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&e.debug, "debug", false, "Register debug endpoints (/health, /debug/pprof/, /debug/log).")
	fs.BoolVar(&e.noColor, "no-color", false, "Disable colors in log output.")
	fs.DurationVar(&e.execTimeout, "exec-timeout", 0, "Kill commands running longer than `duration` (0 means no timeout).")
}

func (e *engine) Run(ctx context.Context, env *cli.Env) error {
	if len(env.Args) > 1 {
		return fmt.Errorf("%w: expected at most one argument, the directory to serve", cli.ErrInvalidArgs)
	}
	var dir string
	if len(env.Args) == 1 {
		dir = env.Args[0]
	}
	if realdir, err := filepath.Abs(dir); err == nil {
		dir = realdir
	}
	if e.fs == nil {
		e.fs = os.DirFS(dir)
	}

	if e.log == nil {
		color := !e.noColor && env.Getenv("NO_COLOR") == ""
		e.stream = logger.NewStreamer(logBufferLines)
		e.log = logger.New(io.MultiWriter(env.Stderr, e.stream), color)
	}

	e.init.Do(e.doInit)

	mux := http.NewServeMux()
	mux.Handle("/", e)
	if e.debug && e.stream != nil {
		mux.Handle("/debug/log", e.stream)
	}

	e.log.Infof("Serving %s on %s.", dir, *e.addr)

	if e.noServerStart {
		return nil
	}

	return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
		Addr:       *e.addr,
		Mux:        mux,
		Logf:       e.log.Infof,
		Debuggable: e.debug,
	})
}

func (e *engine) doInit() {
	// Serve by default from current directory.
	if e.fs == nil {
		e.fs = os.DirFS(".")
	}
	// Flags are not parsed when the engine is constructed directly in tests.
	if e.addr == nil {
		addr := ":8000"
		e.addr = &addr
	}
	if e.shell == nil {
		shell := defaultShell()
		e.shell = &shell
	}
	// No logger set up? Throw all logs away.
	if e.log == nil {
		e.log = logger.New(io.Discard, false)
	}
	e.files = http.FileServer(http.FS(e.fs))
}
