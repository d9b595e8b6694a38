package preview

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/solite-docs/internal/ui"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/pkg/errors"
)

func (h *Handler) serveReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := h.State()

	data := ReportTemplateData{
		HeadTemplateData:   ui.HeadTemplateData{PageTitle: "Validation report"},
		NavbarTemplateData: ui.NewNavbarTemplateData(state.Site, nil),
		Report:             state.Report,
	}

	if err := templates.ExecuteTemplate(w, "report", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		return
	}
}

func (h *Handler) serveSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := h.State()

	w.Header().Set("Content-Type", "application/json")

	if err := site.Encode(w, site.FormatJSON, state.Site); err != nil {
		slog.ErrorContext(ctx, "could not encode site", log.Error(errors.WithStack(err)))
		return
	}
}
