package preview

import (
	"net/http"
	"sync/atomic"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/pkg/site"
)

// State is the site being previewed along with its latest validation report.
type State struct {
	Site   *site.Site
	Loader *page.Loader
	Report *check.Report
}

type Handler struct {
	state atomic.Pointer[State]
	mux   *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Swap replaces the previewed site. Pages are reloaded from the given loader.
func (h *Handler) Swap(s *site.Site, loader *page.Loader, report *check.Report) {
	h.state.Store(&State{
		Site:   s,
		Loader: loader,
		Report: report,
	})
}

func (h *Handler) State() *State {
	return h.state.Load()
}

func NewHandler(s *site.Site, loader *page.Loader, report *check.Report) *Handler {
	handler := &Handler{
		mux: &http.ServeMux{},
	}

	handler.Swap(s, loader, report)

	handler.mux.HandleFunc("GET /_site.json", handler.serveSite)
	handler.mux.HandleFunc("GET /_report", handler.serveReport)
	handler.mux.HandleFunc("GET /{path...}", handler.servePage)

	return handler
}

var _ http.Handler = &Handler{}
