package adaptor

import (
	"context"
	"fmt"
	"sync"

	"github.com/myply/myply-go/host/adaptor/registry"
)

// Manager provides a registry for multiple adaptor implementations and routes
// incoming references to them through their determinators.
type Manager struct {
	registry *registry.Registry
	mu       sync.RWMutex
	adaptors map[string]Adaptor
	meta     map[string]Meta
}

// NewManager creates a manager with a fresh registry.
func NewManager() *Manager {
	return NewManagerWithRegistry(registry.New())
}

// NewManagerWithRegistry creates a manager with a custom registry.
// This is useful for testing or isolated instances.
func NewManagerWithRegistry(reg *registry.Registry) *Manager {
	return &Manager{
		registry: reg,
		adaptors: make(map[string]Adaptor),
		meta:     make(map[string]Meta),
	}
}

// Register adds an adaptor. Names are unique; a second adaptor with the same
// name, or one without determinator tokens, is rejected.
func (m *Manager) Register(a Adaptor) error {
	if a == nil {
		return fmt.Errorf("adaptor cannot be nil")
	}
	name := normalizeName(a.Name())
	if name == "" {
		return fmt.Errorf("adaptor name cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.adaptors[name]; exists {
		return fmt.Errorf("adaptor already registered: %s", name)
	}
	if err := m.registry.Register(&routeWrapper{adaptor: a}); err != nil {
		return err
	}
	m.adaptors[name] = a
	m.meta[name] = buildMeta(a)
	return nil
}

// Get retrieves an adaptor by name. Returns nil if none is registered.
func (m *Manager) Get(name string) Adaptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adaptors[normalizeName(name)]
}

// GetAdaptor retrieves an adaptor by name and returns ErrUnknownAdaptor if not found.
func (m *Manager) GetAdaptor(name string) (Adaptor, error) {
	a := m.Get(name)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAdaptor, name)
	}
	return a, nil
}

// List returns all registered adaptor names in registration order.
func (m *Manager) List() []string {
	routes := m.registry.GetAll()
	names := make([]string, 0, len(routes))
	for _, r := range routes {
		names = append(names, r.Name())
	}
	return names
}

// Match returns the first adaptor whose determinator matches uri.
func (m *Manager) Match(uri string) (Adaptor, bool) {
	_, route, ok := m.registry.Match(uri)
	if !ok {
		return nil, false
	}
	w, ok := route.(*routeWrapper)
	if !ok {
		return nil, false
	}
	return w.adaptor, true
}

// Meta returns metadata for an adaptor name.
func (m *Manager) Meta(name string) (Meta, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	meta, ok := m.meta[normalizeName(name)]
	return meta, ok
}

// ListMeta returns metadata for all registered adaptors in registration order.
func (m *Manager) ListMeta() []Meta {
	names := m.List()
	metas := make([]Meta, 0, len(names))
	for _, name := range names {
		if meta, ok := m.Meta(name); ok {
			metas = append(metas, meta)
		}
	}
	return metas
}

// FetchPlaylist routes uri to its adaptor and reads the playlist.
// It combines Match and Adaptor.GetPlaylistContent into a single call.
func (m *Manager) FetchPlaylist(ctx context.Context, uri string) (string, *Playlist, error) {
	a, ok := m.Match(uri)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrNoRoute, uri)
	}
	playlist, err := a.GetPlaylistContent(ctx, uri)
	if err != nil {
		return a.Name(), nil, err
	}
	return a.Name(), playlist, nil
}

// ResolveSong is a convenience method that retrieves an adaptor and resolves a song.
func (m *Manager) ResolveSong(ctx context.Context, name string, song Song) (string, error) {
	a, err := m.GetAdaptor(name)
	if err != nil {
		return "", err
	}
	return a.FindSongID(ctx, song)
}

// GenerateURL is a convenience method that retrieves an adaptor and builds its link.
func (m *Manager) GenerateURL(ctx context.Context, name string, playlist *Playlist) (string, error) {
	a, err := m.GetAdaptor(name)
	if err != nil {
		return "", err
	}
	return a.GenerateURL(ctx, playlist)
}

// routeWrapper adapts an Adaptor to registry.Route.
type routeWrapper struct {
	adaptor Adaptor
}

// Name implements registry.Route.
func (w *routeWrapper) Name() string {
	return normalizeName(w.adaptor.Name())
}

// Determinator implements registry.Route.
func (w *routeWrapper) Determinator() []string {
	return w.adaptor.Determinator()
}
