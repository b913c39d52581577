// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"net/http"
	"path"
	"strings"
)

// contentTypes overrides the platform MIME database for asset types that
// browsers require to be served with an exact content type.
var contentTypes = map[string]string{
	".wasm": "application/wasm",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
}

// setNoCacheHeaders marks a response as non-cacheable, so locally rebuilt
// assets are never served stale.
func setNoCacheHeaders(h http.Header) {
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// ServeHTTP implements the [http.Handler] interface. It is the whole request
// pipeline: header injection, request logging, then routing.
func (e *engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.init.Do(e.doInit)

	setNoCacheHeaders(w.Header())
	e.log.Reqf("%s %s", r.Method, r.URL.Path)

	switch {
	case r.Method == http.MethodGet || r.Method == http.MethodHead:
		e.serveFile(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/exec":
		e.handleExec(w, r)
	default:
		e.log.Errf("%s %s: not found", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func (e *engine) serveFile(w http.ResponseWriter, r *http.Request) {
	if ctype, ok := contentTypes[strings.ToLower(path.Ext(r.URL.Path))]; ok {
		w.Header().Set("Content-Type", ctype)
	}
	sw := &statusWriter{ResponseWriter: w}
	e.files.ServeHTTP(sw, r)
	if sw.status >= 400 {
		e.log.Errf("%s %s: %d %s", r.Method, r.URL.Path, sw.status, http.StatusText(sw.status))
	}
}

// statusWriter records the status code written to an [http.ResponseWriter].
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}
