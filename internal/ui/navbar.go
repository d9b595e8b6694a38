package ui

import (
	"github.com/bornholm/solite-docs/pkg/site"
)

// NavbarItem represents an item in the navigation bar
type NavbarItem struct {
	Label    string
	URL      string
	Icon     string
	Position string // "left" or "right"
	Active   bool
}

type NavbarTemplateData struct {
	SiteTitle   string
	NavbarItems []NavbarItem
}

var NavbarItemReport = NavbarItem{
	Label:    "Report",
	URL:      "/_report",
	Icon:     "fa-clipboard-check",
	Position: "right",
}

// NewNavbarTemplateData maps the site navigation and social links to navbar items.
// isActive reports whether a link targets the page being rendered.
func NewNavbarTemplateData(s *site.Site, isActive func(link string) bool) NavbarTemplateData {
	items := make([]NavbarItem, 0, len(s.ThemeConfig.Nav)+len(s.ThemeConfig.SocialLinks)+1)

	for _, n := range s.ThemeConfig.Nav {
		items = append(items, NavbarItem{
			Label:    n.Text,
			URL:      n.Link,
			Position: "left",
			Active:   isActive != nil && isActive(n.Link),
		})
	}

	for _, social := range s.ThemeConfig.SocialLinks {
		items = append(items, NavbarItem{
			Label:    social.Icon,
			URL:      social.Link,
			Icon:     "fa-brands fa-" + social.Icon,
			Position: "right",
		})
	}

	items = append(items, NavbarItemReport)

	return NavbarTemplateData{
		SiteTitle:   s.Title,
		NavbarItems: items,
	}
}
