package connection

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yndnr/reefdb-go/pkg/driver"
)

// Manager holds the CLI's open connections by name. The most recently
// added or switched-to connection is current; commands that need a server
// go through Current. Safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	conns   map[string]*driver.Connection
	current string
}

// NewManager creates an empty connection manager.
func NewManager() *Manager {
	return &Manager{
		conns: make(map[string]*driver.Connection),
	}
}

// Add registers an open connection under name and makes it current. A
// previous connection with the same name is stopped first.
func (m *Manager) Add(ctx context.Context, name string, c *driver.Connection) error {
	m.mu.Lock()
	old := m.conns[name]
	m.conns[name] = c
	m.current = name
	m.mu.Unlock()

	if old != nil {
		if err := old.Stop(ctx); err != nil {
			return fmt.Errorf("stop replaced connection %q: %w", name, err)
		}
	}
	return nil
}

// Current returns the selected connection. When none is open it returns
// driver.ErrNotConnected.
func (m *Manager) Current() (*driver.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[m.current]
	if !ok {
		return nil, driver.ErrNotConnected
	}
	return c, nil
}

// CurrentName returns the name of the selected connection, empty when
// none is open.
func (m *Manager) CurrentName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conns[m.current]; !ok {
		return ""
	}
	return m.current
}

// Get returns the named connection.
func (m *Manager) Get(name string) (*driver.Connection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.conns[name]
	return c, ok
}

// Switch makes the named connection current.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conns[name]; !ok {
		return fmt.Errorf("no connection named %q", name)
	}
	m.current = name
	return nil
}

// Remove stops the named connection and drops it. When the removed
// connection was current, another open one (if any) becomes current.
func (m *Manager) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	c, ok := m.conns[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("no connection named %q", name)
	}
	delete(m.conns, name)
	if m.current == name {
		m.current = ""
		for other := range m.conns {
			m.current = other
			break
		}
	}
	m.mu.Unlock()

	return c.Stop(ctx)
}

// Names returns the names of all open connections, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.conns))
	for name := range m.conns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of open connections.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// StopAll stops every open connection and clears the manager. It keeps
// going past individual failures and returns the last error.
func (m *Manager) StopAll(ctx context.Context) error {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[string]*driver.Connection)
	m.current = ""
	m.mu.Unlock()

	var last error
	for name, c := range conns {
		if err := c.Stop(ctx); err != nil {
			last = fmt.Errorf("stop %q: %w", name, err)
		}
	}
	return last
}
