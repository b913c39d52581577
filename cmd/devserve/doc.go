// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Devserve is a local development HTTP server for WebAssembly projects.

It serves static files from a directory with correct MIME types for .wasm,
.js and .mjs assets and cache-busting headers, so freshly rebuilt assets are
never served stale. It also exposes POST /exec, which runs a shell command on
the host and returns its captured stdout, stderr and exit code as JSON.

# Usage

	$ devserve [flags...] [dir]

If dir is omitted, devserve serves the current directory.

The /exec endpoint accepts a JSON body {"cmd": "go build ./..."} and responds
with {"stdout": "...", "stderr": "...", "returncode": 0}. An empty cmd is
rejected with HTTP 400. There is no timeout by default: a hanging command
hangs the request (see -exec-timeout).

Devserve binds to all interfaces and performs no authentication: /exec runs
arbitrary commands for anyone who can reach the port. Use it only on trusted
local networks.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/devserve/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
