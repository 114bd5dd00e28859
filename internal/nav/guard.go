package nav

import "github.com/realahmed45/future-bali-frontend/internal/domain"

// TokenChecker reports whether a session token is held
type TokenChecker interface {
	Token() (string, bool)
}

// Decision is the outcome of a guard check
type Decision struct {
	Allowed  bool             `json:"allowed"`
	Redirect string           `json:"redirect,omitempty"`
	From     *domain.Location `json:"from,omitempty"`
}

// Guard gates protected routes on local token presence only. It never calls the backend.
type Guard struct {
	graph  *Graph
	tokens TokenChecker
}

func NewGuard(graph *Graph, tokens TokenChecker) *Guard {
	return &Guard{graph: graph, tokens: tokens}
}

// Check decides whether loc may be entered. A refused location is handed back in From
// so login can resume there.
func (g *Guard) Check(loc domain.Location) Decision {
	if !g.graph.IsProtected(loc.Path) {
		return Decision{Allowed: true}
	}
	if _, ok := g.tokens.Token(); ok {
		return Decision{Allowed: true}
	}
	from := loc
	if loc.State != nil {
		st := loc.State.Clone()
		from.State = &st
	}
	return Decision{Redirect: LoginPath, From: &from}
}
