// Package nav holds the checkout route graph and the guard for protected routes.
package nav

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/realahmed45/future-bali-frontend/pkg/errors"
)

//go:embed routes.yaml
var routesYAML []byte

const (
	HomePath        = "/"
	LoginPath       = "/login"
	PackagePath     = "/package1"
	CartPath        = "/package1-cart"
	ReviewOrderPath = "/review-order"
	UserInfoPath    = "/review_order1_2"
	InheritancePath = "/review_order1_3"
	EmergencyPath   = "/Emergency-details"
	PlaceOrderPath  = "/place-order"
	PaymentPath     = "/payment"
)

// Route is one navigable path
type Route struct {
	Path      string `yaml:"path" json:"path"`
	Protected bool   `yaml:"protected" json:"protected"`
	Next      string `yaml:"next,omitempty" json:"next,omitempty"`
}

// Graph is the directed "next route" graph
type Graph struct {
	routes []Route
	byPath map[string]Route
}

// LoadGraph parses the embedded route definition
func LoadGraph() (*Graph, error) {
	return ParseGraph(routesYAML)
}

// ParseGraph parses a route definition. Every "next" must name a known route.
func ParseGraph(data []byte) (*Graph, error) {
	var doc struct {
		Routes []Route `yaml:"routes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse routes: %w", err)
	}

	g := &Graph{byPath: make(map[string]Route, len(doc.Routes))}
	for _, r := range doc.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route path %q must start with /", r.Path)
		}
		if _, dup := g.byPath[r.Path]; dup {
			return nil, fmt.Errorf("duplicate route %q", r.Path)
		}
		g.byPath[r.Path] = r
		g.routes = append(g.routes, r)
	}
	for _, r := range g.routes {
		if r.Next == "" {
			continue
		}
		if _, ok := g.byPath[r.Next]; !ok {
			return nil, fmt.Errorf("route %q forwards to unknown route %q", r.Path, r.Next)
		}
	}
	return g, nil
}

// Route looks up path
func (g *Graph) Route(path string) (Route, error) {
	r, ok := g.byPath[path]
	if !ok {
		return Route{}, &apperrors.ErrNotFound{Resource: "route", ID: path}
	}
	return r, nil
}

// Next returns the route a successful step on path forwards to
func (g *Graph) Next(path string) (string, error) {
	r, err := g.Route(path)
	if err != nil {
		return "", err
	}
	if r.Next == "" {
		return "", fmt.Errorf("route %q has no next step", path)
	}
	return r.Next, nil
}

// IsProtected reports whether path requires a session token. Unknown paths are not protected.
func (g *Graph) IsProtected(path string) bool {
	return g.byPath[path].Protected
}

// Routes returns all routes in definition order
func (g *Graph) Routes() []Route {
	return append([]Route(nil), g.routes...)
}
