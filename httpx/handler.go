// Package httpx implements the per-request pipeline: snapshot the request,
// synthesize the response, render it on the shared console, and hand it to
// the capture layer.
package httpx

import (
	"log"
	"net/http"

	"httpsnare/capture"
	"httpsnare/console"
	"httpsnare/request"
)

// Options fix the handler's behavior at startup.
type Options struct {
	// NonGetMessage is returned with status 200 for every request the file
	// server does not handle.
	NonGetMessage string
	// ServeDir is the directory served on GET/HEAD; empty disables serving.
	ServeDir string
	// IgnoreParam names the query parameter whose presence suppresses both
	// display and capture for a request.
	IgnoreParam string
	// ProxyHops selects the client address from X-Forwarded-For when > 0.
	ProxyHops int
	// CORS enables permissive cross-origin headers on every response.
	CORS bool
}

// Handler is the middleware pipeline around the file-serving core: CORS
// injector first, then the observer wrapping response synthesis.
type Handler struct {
	opts     Options
	console  *console.Console
	recorder *capture.Recorder
	files    http.Handler
	logger   *log.Logger
}

func NewHandler(opts Options, cons *console.Console, rec *capture.Recorder, logger *log.Logger) *Handler {
	h := &Handler{opts: opts, console: cons, recorder: rec, logger: logger}
	if opts.ServeDir != "" {
		h.files = http.FileServer(http.Dir(opts.ServeDir))
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The body must be consumed before the response is written.
	snap := request.FromHTTP(r, h.opts.ProxyHops)
	ignored := request.HasParam(snap.Query, h.opts.IgnoreParam)

	if h.opts.CORS {
		setCORSHeaders(w.Header(), r)
	}

	rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	if h.files != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		h.files.ServeHTTP(rw, r)
	} else {
		// Every other method gets the configured message at 200, so scanners
		// cannot fingerprint which methods the tool distinguishes.
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte(h.opts.NonGetMessage))
	}
	snap.Status = rw.status

	if ignored {
		return
	}
	h.console.PrintRequest(snap, h.recorder != nil)

	// Capture I/O runs outside the console lock; failures never fail the
	// HTTP response.
	if _, err := h.recorder.Create(snap); err != nil {
		h.logger.Printf("capture failed: %v", err)
	}
}

// statusRecorder observes the status code the file server picks without
// altering the response.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
