package check

import (
	"github.com/bornholm/solite-docs/pkg/site"
)

// Rule is a user-defined lint rule evaluated against every link of the site.
type Rule interface {
	Name() string
	Severity() Severity
	Message() string
	Match(env RuleEnv) (bool, error)
}

// RuleEnv is the set of variables a rule is evaluated with.
type RuleEnv struct {
	Kind     string
	Section  string
	Text     string
	Link     string
	Path     string
	Fragment string
	Internal bool
	External bool
	Index    int
	Location string
}

func NewRuleEnv(ref site.LinkRef) RuleEnv {
	path, fragment := site.SplitFragment(ref.Link)
	kind := site.Classify(ref.Link)

	return RuleEnv{
		Kind:     string(ref.Kind),
		Section:  ref.Section,
		Text:     ref.Text,
		Link:     ref.Link,
		Path:     path,
		Fragment: fragment,
		Internal: kind == site.LinkInternal,
		External: kind == site.LinkExternal,
		Index:    ref.Index,
		Location: ref.Location,
	}
}

func (e RuleEnv) Map() map[string]any {
	return map[string]any{
		"kind":     e.Kind,
		"section":  e.Section,
		"text":     e.Text,
		"link":     e.Link,
		"path":     e.Path,
		"fragment": e.Fragment,
		"internal": e.Internal,
		"external": e.External,
		"index":    e.Index,
		"location": e.Location,
	}
}
