package site

import (
	"fmt"
	"iter"
	"net/url"
	"strings"
)

type LinkKind string

const (
	LinkInternal LinkKind = "internal"
	LinkAnchor   LinkKind = "anchor"
	LinkExternal LinkKind = "external"
	LinkMailto   LinkKind = "mailto"
	LinkInvalid  LinkKind = "invalid"
)

type RefKind string

const (
	RefNav     RefKind = "nav"
	RefSidebar RefKind = "sidebar"
	RefSocial  RefKind = "social"
)

// LinkRef is a link found somewhere in the site object.
type LinkRef struct {
	Kind RefKind
	// Section is the sidebar section title, empty for nav and social links.
	Section string
	Index   int
	// Text is the display text, or the icon identifier for social links.
	Text     string
	Link     string
	Location string
}

// Links yields every link of the site: nav entries, then sidebar items
// section by section, then social links.
func (s *Site) Links() iter.Seq[LinkRef] {
	return func(yield func(LinkRef) bool) {
		for idx, item := range s.ThemeConfig.Nav {
			ref := LinkRef{
				Kind:     RefNav,
				Index:    idx,
				Text:     item.Text,
				Link:     item.Link,
				Location: fmt.Sprintf("$.themeConfig.nav[%d]", idx),
			}
			if !yield(ref) {
				return
			}
		}

		for sectionIdx, section := range s.ThemeConfig.Sidebar {
			for idx, item := range section.Items {
				ref := LinkRef{
					Kind:     RefSidebar,
					Section:  section.Text,
					Index:    idx,
					Text:     item.Text,
					Link:     item.Link,
					Location: fmt.Sprintf("$.themeConfig.sidebar[%d].items[%d]", sectionIdx, idx),
				}
				if !yield(ref) {
					return
				}
			}
		}

		for idx, social := range s.ThemeConfig.SocialLinks {
			ref := LinkRef{
				Kind:     RefSocial,
				Index:    idx,
				Text:     social.Icon,
				Link:     social.Link,
				Location: fmt.Sprintf("$.themeConfig.socialLinks[%d]", idx),
			}
			if !yield(ref) {
				return
			}
		}
	}
}

func Classify(link string) LinkKind {
	link = strings.TrimSpace(link)
	if link == "" {
		return LinkInvalid
	}

	if strings.HasPrefix(link, "#") {
		if len(link) == 1 {
			return LinkInvalid
		}
		return LinkAnchor
	}

	u, err := url.Parse(link)
	if err != nil {
		return LinkInvalid
	}

	switch strings.ToLower(u.Scheme) {
	case "":
		if u.Host != "" {
			// Protocol-relative URLs are not supported by the builder.
			return LinkInvalid
		}
		return LinkInternal
	case "http", "https":
		if u.Host == "" {
			return LinkInvalid
		}
		return LinkExternal
	case "mailto":
		if u.Opaque == "" {
			return LinkInvalid
		}
		return LinkMailto
	default:
		return LinkInvalid
	}
}

// SplitFragment separates an internal link from its fragment. Query strings are dropped.
func SplitFragment(link string) (string, string) {
	path, fragment, _ := strings.Cut(link, "#")
	path, _, _ = strings.Cut(path, "?")
	return path, fragment
}
