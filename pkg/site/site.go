// Package site describes the configuration object consumed by the external
// documentation-site builder: a site descriptor plus its theme navigation.
package site

// Site is the top-level site descriptor.
type Site struct {
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	ThemeConfig ThemeConfig `yaml:"themeConfig" json:"themeConfig"`
}

type ThemeConfig struct {
	Nav         []NavItem        `yaml:"nav" json:"nav"`
	Sidebar     []SidebarSection `yaml:"sidebar" json:"sidebar"`
	SocialLinks []SocialLink     `yaml:"socialLinks" json:"socialLinks"`
}

// NavItem is a (label, link) pair pointing to a documentation page or URL.
type NavItem struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// SidebarSection is a named, ordered group of navigation entries.
type SidebarSection struct {
	Text  string    `yaml:"text" json:"text"`
	Items []NavItem `yaml:"items" json:"items"`
}

type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

// normalized returns a copy of s whose lists are never nil, so that they
// are encoded as empty lists instead of null.
func (s *Site) normalized() *Site {
	copy := *s

	copy.ThemeConfig.Nav = nonNil(s.ThemeConfig.Nav)
	copy.ThemeConfig.SocialLinks = nonNil(s.ThemeConfig.SocialLinks)
	copy.ThemeConfig.Sidebar = make([]SidebarSection, len(s.ThemeConfig.Sidebar))

	for idx, section := range s.ThemeConfig.Sidebar {
		section.Items = nonNil(section.Items)
		copy.ThemeConfig.Sidebar[idx] = section
	}

	return &copy
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
