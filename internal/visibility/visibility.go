// Package visibility decides whether a viewer may see a panel. Decisions are
// tri-state: an unresolved audience check is Pending, which is neither shown
// nor treated as hidden.
package visibility

import (
	"sync"

	"github.com/hugo-lorenzo-mato/hypertabs/internal/panel"
)

// Visibility is the outcome of an audience check.
type Visibility int

const (
	// Visible means the panel content may render.
	Visible Visibility = iota
	// Hidden means the viewer is not in the panel's audience.
	Hidden
	// Pending means the decision is not known yet.
	Pending
)

// String returns the string representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Evaluator answers audience checks for panels.
type Evaluator interface {
	Evaluate(p panel.Panel) Visibility
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(p panel.Panel) Visibility

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(p panel.Panel) Visibility { return f(p) }

// AllowAll shows every panel.
var AllowAll Evaluator = EvaluatorFunc(func(panel.Panel) Visibility { return Visible })

// Groups evaluates audience targets against the viewer's group membership.
// Until the membership is resolved, targeted panels are Pending.
type Groups struct {
	mu       sync.RWMutex
	resolved bool
	groups   map[string]bool
}

// NewGroups creates an evaluator. A nil groups slice leaves membership
// unresolved.
func NewGroups(groups []string) *Groups {
	g := &Groups{}
	if groups != nil {
		g.Resolve(groups)
	}
	return g
}

// Resolve sets the viewer's group membership.
func (g *Groups) Resolve(groups []string) {
	set := make(map[string]bool, len(groups))
	for _, name := range groups {
		set[name] = true
	}

	g.mu.Lock()
	g.groups = set
	g.resolved = true
	g.mu.Unlock()
}

// Resolved reports whether membership is known.
func (g *Groups) Resolved() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.resolved
}

// Evaluate implements Evaluator.
func (g *Groups) Evaluate(p panel.Panel) Visibility {
	target := p.AudienceTarget
	if !target.Enabled || len(target.Groups) == 0 {
		return Visible
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.resolved {
		return Pending
	}
	for _, name := range target.Groups {
		if g.groups[name] {
			return Visible
		}
	}
	return Hidden
}
