package registry

import (
	"errors"
	"strings"
	"sync"
)

// Route is anything that can claim references by determinator tokens.
type Route interface {
	// Name returns the route's unique identifier.
	Name() string

	// Determinator returns the tokens (URI schemes, domains) that identify
	// references belonging to this route.
	Determinator() []string
}

type entry struct {
	route  Route
	tokens []string
}

// Registry manages registered routes in a thread-safe manner.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]*entry
	// Order preserving list for Match to maintain registration order
	ordered []*entry
}

// New creates a new Registry instance.
func New() *Registry {
	return &Registry{
		routes:  make(map[string]*entry),
		ordered: make([]*entry, 0),
	}
}

// Register adds a route to the registry.
// Returns an error if the route is nil, has an empty name, declares no usable
// determinator token, or is already registered.
func (r *Registry) Register(route Route) error {
	if route == nil {
		return errors.New("route cannot be nil")
	}

	name := route.Name()
	if name == "" {
		return errors.New("route name cannot be empty")
	}

	tokens := normalizeTokens(route.Determinator())
	if len(tokens) == 0 {
		return errors.New("route has no determinator: " + name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[name]; exists {
		return errors.New("route already registered: " + name)
	}

	e := &entry{route: route, tokens: tokens}
	r.routes[name] = e
	r.ordered = append(r.ordered, e)

	return nil
}

// GetAll returns all registered routes in registration order.
// The returned slice is a copy and safe for concurrent use.
func (r *Registry) GetAll() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Route, 0, len(r.ordered))
	for _, e := range r.ordered {
		result = append(result, e.route)
	}
	return result
}

// Match finds the first route whose determinator token occurs in ref.
// Matching is case-insensitive. Returns the matched token, the route and true
// on success. Routes are checked in registration order.
func (r *Registry) Match(ref string) (string, Route, bool) {
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return "", nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.ordered {
		for _, token := range e.tokens {
			if strings.Contains(needle, token) {
				return token, e.route, true
			}
		}
	}

	return "", nil, false
}

func normalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}
