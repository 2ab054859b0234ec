package git

import (
	"sync"
	"sync/atomic"
	"time"
)

// Manager manages git repositories.
type Manager struct {
	mu     sync.Mutex
	repos  map[string]*Repository
	closed atomic.Bool

	statusCacheTTL time.Duration
}

// ManagerConfig configures a git manager.
type ManagerConfig struct {
	// StatusCacheTTL is how long to cache status results.
	// Defaults to 1 second.
	StatusCacheTTL time.Duration
}

// NewManager creates a new git manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.StatusCacheTTL <= 0 {
		cfg.StatusCacheTTL = time.Second
	}

	return &Manager{
		repos:          make(map[string]*Repository),
		statusCacheTTL: cfg.StatusCacheTTL,
	}
}

// Open opens a repository at the given path.
// The path must be the repository root (containing .git).
func (m *Manager) Open(path string) (*Repository, error) {
	if m.closed.Load() {
		return nil, ErrManagerClosed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if repo, ok := m.repos[path]; ok {
		return repo, nil
	}

	repo, err := openRepository(path, m.statusCacheTTL)
	if err != nil {
		return nil, err
	}

	m.repos[path] = repo
	return repo, nil
}

// Discover finds and opens the repository containing the given path.
// It walks up the directory tree looking for a .git directory.
func (m *Manager) Discover(path string) (*Repository, error) {
	if m.closed.Load() {
		return nil, ErrManagerClosed
	}

	root, err := discoverRepository(path)
	if err != nil {
		return nil, err
	}

	return m.Open(root)
}

// Close closes the manager and all open repositories.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, repo := range m.repos {
		repo.close()
	}
	m.repos = make(map[string]*Repository)

	return nil
}
