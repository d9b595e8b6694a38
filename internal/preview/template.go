package preview

import (
	"embed"
	"html/template"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/bornholm/solite-docs/internal/page"
	"github.com/bornholm/solite-docs/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

type SidebarItemTemplateData struct {
	Text   string
	Link   string
	Active bool
}

type SidebarSectionTemplateData struct {
	Text  string
	Items []SidebarItemTemplateData
}

// PageTemplateData contains the data needed to render a documentation page
type PageTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Sidebar []SidebarSectionTemplateData
	Page    *page.Page
	Path    string
	Errors  int
	Warns   int
}

type ReportTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Report *check.Report
}
