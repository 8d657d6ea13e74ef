package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
)

// Memory is an in-process Store, the default backend and the one used in tests
type Memory struct {
	mu     sync.RWMutex
	graphs map[string][]graph.Statement
	closed bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{graphs: make(map[string][]graph.Statement)}
}

func (m *Memory) check(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapTransient(err, "Memory", method, "context check")
	}
	if m.closed {
		return errors.WrapFatal(errors.ErrStorageUnavailable, "Memory", method, "store closed")
	}
	return nil
}

// Save replaces the statements under name
func (m *Memory) Save(ctx context.Context, name string, statements []graph.Statement) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "Save"); err != nil {
		return err
	}
	m.graphs[name] = slices.Clone(statements)
	return nil
}

// Load returns a copy of the statements under name
func (m *Memory) Load(ctx context.Context, name string) ([]graph.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(ctx, "Load"); err != nil {
		return nil, err
	}
	statements, ok := m.graphs[name]
	if !ok {
		return nil, NotFound("Memory", name)
	}
	return slices.Clone(statements), nil
}

// Delete removes name
func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "Delete"); err != nil {
		return err
	}
	delete(m.graphs, name)
	return nil
}

// List returns the names starting with prefix
func (m *Memory) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(ctx, "List"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.graphs))
	for name := range m.graphs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Close releases the store; later calls fail with ErrStorageUnavailable
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.graphs = nil
	return nil
}
