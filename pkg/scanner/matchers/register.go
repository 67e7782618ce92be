package matchers

import (
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/scanner"
)

// Default priorities follow registration order. Lower wins ties.
const (
	PriorityEmphasis = iota + 1
	PriorityHeading
	PriorityBulletList
	PriorityOrderedList
	PriorityInlineMath
)

// RegisterAll registers all built-in matchers with the given registry.
func RegisterAll(registry *scanner.Registry) {
	registry.Register(NewEmphasisMatcher())    // GM001
	registry.Register(NewHeadingMatcher())     // GM002
	registry.Register(NewBulletListMatcher())  // GM003
	registry.Register(NewOrderedListMatcher()) // GM004
	registry.Register(NewInlineMathMatcher())  // GM005
}

// RegisterAliases registers short alternative names.
func RegisterAliases(registry *scanner.Registry) {
	registry.RegisterAlias("bold", "GM001")
	registry.RegisterAlias("italic", "GM001")
	registry.RegisterAlias("header", "GM002")
	registry.RegisterAlias("ul", "GM003")
	registry.RegisterAlias("ol", "GM004")
	registry.RegisterAlias("math", "GM005")
}

// NewRegistry returns a fresh registry holding the built-in matchers.
func NewRegistry() *scanner.Registry {
	registry := scanner.NewRegistry()
	RegisterAll(registry)
	RegisterAliases(registry)
	return registry
}

// Infos describes the matchers of registry for config templates.
func Infos(registry *scanner.Registry) []config.MatcherInfo {
	matchers := registry.Matchers()
	infos := make([]config.MatcherInfo, 0, len(matchers))
	for _, m := range matchers {
		infos = append(infos, config.MatcherInfo{
			ID:          m.ID(),
			Name:        m.Name(),
			Description: m.Description(),
			Priority:    m.Priority(),
			Enabled:     m.DefaultEnabled(),
		})
	}
	return infos
}

func init() {
	RegisterAll(scanner.DefaultRegistry)
	RegisterAliases(scanner.DefaultRegistry)
	config.DefaultMatcherInfoProvider = func() []config.MatcherInfo {
		return Infos(scanner.DefaultRegistry)
	}
}
