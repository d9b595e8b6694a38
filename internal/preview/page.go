package preview

import (
	"io/fs"
	"log/slog"
	"net/http"
	"slices"

	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/internal/ui"
	"github.com/bornholm/solite-docs/pkg/log"
	"github.com/bornholm/solite-docs/pkg/site"
	"github.com/pkg/errors"
)

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := h.State()

	link := "/" + r.PathValue("path")

	p, err := state.Loader.Resolve(ctx, link)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.ErrorContext(ctx, "could not load page", log.Error(errors.WithStack(err)), slog.String("link", link))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	isActive := func(target string) bool {
		if p == nil || site.Classify(target) != site.LinkInternal {
			return false
		}
		return slices.Contains(page.Candidates(state.Loader.BasePath(), target), p.Name)
	}

	data := PageTemplateData{
		HeadTemplateData:   ui.HeadTemplateData{},
		NavbarTemplateData: ui.NewNavbarTemplateData(state.Site, isActive),
		Sidebar:            make([]SidebarSectionTemplateData, 0, len(state.Site.ThemeConfig.Sidebar)),
		Page:               p,
		Path:               link,
	}

	for _, section := range state.Site.ThemeConfig.Sidebar {
		sectionData := SidebarSectionTemplateData{
			Text:  section.Text,
			Items: make([]SidebarItemTemplateData, 0, len(section.Items)),
		}

		for _, item := range section.Items {
			sectionData.Items = append(sectionData.Items, SidebarItemTemplateData{
				Text:   item.Text,
				Link:   item.Link,
				Active: isActive(item.Link),
			})
		}

		data.Sidebar = append(data.Sidebar, sectionData)
	}

	if state.Report != nil {
		data.Errors = state.Report.Errors()
		data.Warns = state.Report.Warnings()
	}

	templateName := "page"

	if p == nil {
		data.PageTitle = "Page not found"
		templateName = "not-found"
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
	} else {
		data.PageTitle = p.Title
	}

	if err := templates.ExecuteTemplate(w, templateName, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		return
	}
}
