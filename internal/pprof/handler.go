package pprof

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"strings"
)

// Handler serves the runtime profiles and the expvar counters of the process
// (the link checker publishes its "remote" statistics there) under a prefix.
type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string) *Handler {
	prefix = strings.TrimSuffix(prefix, "/")

	routes := map[string]http.Handler{
		"GET /":        http.HandlerFunc(pprof.Index),
		"GET /cmdline": http.HandlerFunc(pprof.Cmdline),
		"GET /profile": http.HandlerFunc(pprof.Profile),
		"GET /trace":   http.HandlerFunc(pprof.Trace),
		"GET /symbol":  http.HandlerFunc(pprof.Symbol),
		"POST /symbol": http.HandlerFunc(pprof.Symbol),
		"GET /vars":    expvar.Handler(),
		"GET /{name}":  http.HandlerFunc(profile),
	}

	mux := http.NewServeMux()

	for route, handler := range routes {
		method, path, _ := strings.Cut(route, " ")
		mux.Handle(method+" "+prefix+path, handler)
	}

	return &Handler{mux}
}

// profile serves a named runtime profile (heap, goroutine, ...).
func profile(w http.ResponseWriter, r *http.Request) {
	pprof.Handler(r.PathValue("name")).ServeHTTP(w, r)
}

var _ http.Handler = &Handler{}
