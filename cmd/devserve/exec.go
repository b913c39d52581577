// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"unicode/utf8"

	"go.astrophena.name/devserve/internal/web"

	"github.com/google/shlex"
)

// maxExecBody bounds /exec request bodies. Command output is not bounded.
const maxExecBody = 1 << 20 // 1 MiB

type execRequest struct {
	Cmd string `json:"cmd"`
}

type execResponse struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	Returncode int    `json:"returncode"`
}

func (e *engine) handleExec(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxExecBody))
	if err != nil {
		e.log.Errf("exec: reading request body: %v", err)
		web.RespondJSONError(w, r, fmt.Errorf("reading request body: %w", err))
		return
	}

	// An empty body is treated as {}.
	var req execRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			e.log.Errf("exec: parsing request body: %v", err)
			web.RespondJSONError(w, r, fmt.Errorf("parsing request body: %w", err))
			return
		}
	}

	if req.Cmd == "" {
		e.log.Warnf("exec: missing cmd")
		web.RespondJSONError(w, r, web.StatusErrf(web.ErrBadRequest, "missing cmd"))
		return
	}

	e.log.Infof("exec: %s", truncateCmd(req.Cmd))

	res, err := e.runCommand(req.Cmd)
	if err != nil {
		e.log.Errf("exec: %v", err)
		web.RespondJSONError(w, r, err)
		return
	}

	e.log.Infof("exec: exit code %d, stdout %d bytes, stderr %d bytes",
		res.Returncode, len(res.Stdout), len(res.Stderr))
	web.RespondJSON(w, res)
}

// runCommand passes command as the last argument to the configured shell
// invocation and waits for it to finish, capturing output. A non-zero exit
// code is not an error: it is reported in the response.
func (e *engine) runCommand(command string) (*execResponse, error) {
	argv, err := shlex.Split(*e.shell)
	if err != nil {
		return nil, fmt.Errorf("parsing shell invocation %q: %w", *e.shell, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty shell invocation")
	}
	argv = append(argv, command)

	// The command is deliberately not tied to the request context: a client
	// that goes away doesn't kill a build it started.
	ctx := context.Background()
	cancel := context.CancelFunc(func() {})
	if e.execTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.execTimeout)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("command timed out after %v", e.execTimeout)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("running %q: %w", argv[0], err)
	}

	return &execResponse{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		Returncode: cmd.ProcessState.ExitCode(),
	}, nil
}

func truncateCmd(cmd string) string {
	const max = 50
	if utf8.RuneCountInString(cmd) <= max {
		return cmd
	}
	return string([]rune(cmd)[:max]) + "..."
}

// defaultShell returns the non-interactive shell invocation commands are
// passed to: PowerShell in no-profile mode on Windows, the POSIX shell
// elsewhere.
func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "powershell -NoProfile -NonInteractive -Command"
	}
	return "/bin/sh -c"
}
