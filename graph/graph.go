package graph

import (
	"iter"
	"sync"

	"github.com/c360/ontograph/errors"
)

// Reader is the read-only view of a statement graph
type Reader interface {
	// Find yields every statement matching the pattern; Any is a wildcard.
	Find(subject, predicate, object Term) iter.Seq[Statement]
	// Objects returns the objects of all statements with the given subject and predicate.
	Objects(subject, predicate Term) []Term
	// Contains reports whether the statement is in the graph.
	Contains(st Statement) bool
	// HasBlank reports whether an anonymous node with the label occurs in the graph.
	HasBlank(label string) bool
	// Len returns the number of statements.
	Len() int
	// Closed reports whether the graph has been released.
	Closed() bool
}

// Graph is an in-memory, duplicate-free statement graph.
//
// Statements are kept in insertion order and indexed by subject, predicate and resource
// object. Iteration takes a snapshot of the matching index bucket under a read lock, so a
// concurrent writer can never expose a partially written triple; callers coordinating
// reads with writes use the lock package on top of this.
type Graph struct {
	mu          sync.RWMutex
	statements  map[Statement]struct{}
	order       []Statement
	bySubject   map[Term][]Statement
	byPredicate map[Term][]Statement
	byObject    map[Term][]Statement
	blanks      map[string]int
	version     uint64
	closed      bool
}

// New creates an empty graph, optionally seeded with statements.
// Invalid seed statements are skipped.
func New(statements ...Statement) *Graph {
	g := &Graph{
		statements:  make(map[Statement]struct{}),
		bySubject:   make(map[Term][]Statement),
		byPredicate: make(map[Term][]Statement),
		byObject:    make(map[Term][]Statement),
		blanks:      make(map[string]int),
	}
	for _, st := range statements {
		if st.Valid() {
			g.addUnsafe(st)
		}
	}
	return g
}

// Add inserts statements and returns how many were new.
// If any statement is invalid nothing is added and an ErrInvalidArgument is returned.
func (g *Graph) Add(statements ...Statement) (int, error) {
	for _, st := range statements {
		if !st.Valid() {
			return 0, errors.InvalidArgument("Graph", "Add", "malformed statement %s", st)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, errors.WrapFatal(errors.ErrGraphClosed, "Graph", "Add", "statement insert")
	}

	added := 0
	for _, st := range statements {
		if g.addUnsafe(st) {
			added++
		}
	}
	if added > 0 {
		g.version++
	}
	return added, nil
}

// Remove deletes statements and returns how many were present
func (g *Graph) Remove(statements ...Statement) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, errors.WrapFatal(errors.ErrGraphClosed, "Graph", "Remove", "statement delete")
	}

	removed := 0
	for _, st := range statements {
		if g.removeUnsafe(st) {
			removed++
		}
	}
	if removed > 0 {
		g.version++
	}
	return removed, nil
}

// addUnsafe must be called with the write lock held
func (g *Graph) addUnsafe(st Statement) bool {
	if _, exists := g.statements[st]; exists {
		return false
	}
	g.statements[st] = struct{}{}
	g.order = append(g.order, st)
	g.bySubject[st.Subject] = append(g.bySubject[st.Subject], st)
	g.byPredicate[st.Predicate] = append(g.byPredicate[st.Predicate], st)
	if st.Object.IsResource() {
		g.byObject[st.Object] = append(g.byObject[st.Object], st)
	}
	g.trackBlanks(st, 1)
	return true
}

// removeUnsafe must be called with the write lock held
func (g *Graph) removeUnsafe(st Statement) bool {
	if _, exists := g.statements[st]; !exists {
		return false
	}
	delete(g.statements, st)
	g.order = without(g.order, st)
	dropFromIndex(g.bySubject, st.Subject, st)
	dropFromIndex(g.byPredicate, st.Predicate, st)
	if st.Object.IsResource() {
		dropFromIndex(g.byObject, st.Object, st)
	}
	g.trackBlanks(st, -1)
	return true
}

func (g *Graph) trackBlanks(st Statement, delta int) {
	for _, t := range [...]Term{st.Subject, st.Object} {
		if !t.IsBlank() {
			continue
		}
		n := g.blanks[t.Value] + delta
		if n <= 0 {
			delete(g.blanks, t.Value)
		} else {
			g.blanks[t.Value] = n
		}
	}
}

func dropFromIndex(index map[Term][]Statement, key Term, st Statement) {
	rest := without(index[key], st)
	if len(rest) == 0 {
		delete(index, key)
		return
	}
	index[key] = rest
}

// without returns a new slice so snapshots taken by iterators stay intact
func without(list []Statement, st Statement) []Statement {
	out := make([]Statement, 0, len(list))
	for _, s := range list {
		if s != st {
			out = append(out, s)
		}
	}
	return out
}

// Find yields the statements matching the pattern in insertion order.
// The sequence is restartable: each range over it rescans the current graph.
func (g *Graph) Find(subject, predicate, object Term) iter.Seq[Statement] {
	pattern := Statement{Subject: subject, Predicate: predicate, Object: object}
	return func(yield func(Statement) bool) {
		for _, st := range g.snapshot(pattern) {
			if !st.Matches(pattern) {
				continue
			}
			if !yield(st) {
				return
			}
		}
	}
}

// snapshot returns the smallest index bucket covering the pattern. Buckets are never
// mutated in place, so returning the slice header under the read lock is enough.
func (g *Graph) snapshot(pattern Statement) []Statement {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		return nil
	}
	switch {
	case !pattern.Subject.IsAny():
		return g.bySubject[pattern.Subject]
	case !pattern.Object.IsAny() && pattern.Object.IsResource():
		return g.byObject[pattern.Object]
	case !pattern.Predicate.IsAny():
		return g.byPredicate[pattern.Predicate]
	default:
		return g.order
	}
}

// Objects returns the objects of all statements with the given subject and predicate
func (g *Graph) Objects(subject, predicate Term) []Term {
	var out []Term
	for st := range g.Find(subject, predicate, Any) {
		out = append(out, st.Object)
	}
	return out
}

// Contains reports whether the statement is in the graph
func (g *Graph) Contains(st Statement) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.statements[st]
	return ok && !g.closed
}

// HasBlank reports whether an anonymous node with the label occurs in the graph
func (g *Graph) HasBlank(label string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !g.closed && g.blanks[label] > 0
}

// BlankLabels returns the labels of all anonymous nodes in first-seen order
func (g *Graph) BlankLabels() []string {
	seen := make(map[string]struct{})
	var labels []string
	for st := range g.Find(Any, Any, Any) {
		for _, t := range [...]Term{st.Subject, st.Object} {
			if label, ok := t.BlankLabel(); ok {
				if _, dup := seen[label]; !dup {
					seen[label] = struct{}{}
					labels = append(labels, label)
				}
			}
		}
	}
	return labels
}

// Statements returns a copy of all statements in insertion order
func (g *Graph) Statements() []Statement {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return nil
	}
	out := make([]Statement, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of statements
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.statements)
}

// Version increases on every mutation that changed the graph
func (g *Graph) Version() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.version
}

// Close releases the graph. Afterwards it is empty, rejects writes, and every anonymous
// identity that belonged to it becomes unresolvable.
func (g *Graph) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.statements = make(map[Statement]struct{})
	g.order = nil
	g.bySubject = make(map[Term][]Statement)
	g.byPredicate = make(map[Term][]Statement)
	g.byObject = make(map[Term][]Statement)
	g.blanks = make(map[string]int)
}

// Closed reports whether the graph has been released
func (g *Graph) Closed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.closed
}
