package manager

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360/ontograph/axiom"
	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/health"
	"github.com/c360/ontograph/identity"
	"github.com/c360/ontograph/lock"
	"github.com/c360/ontograph/metric"
	"github.com/c360/ontograph/pkg/cache"
	"github.com/c360/ontograph/pkg/retry"
	"github.com/c360/ontograph/search"
	"github.com/c360/ontograph/storage"
)

// Manager owns one graph and every view derived from it.
//
// Mutations run in write sections and queries in read sections of the manager's lock.
// A non-concurrent manager uses a no-op lock, so it must only be used from one goroutine.
type Manager struct {
	cfg        Config
	logger     *slog.Logger
	registry   *metric.MetricsRegistry
	metrics    *metric.Metrics
	store      storage.Store
	searchers  *search.Registry
	lock       lock.Lock
	retry      retry.Config
	graph      *graph.Graph
	identities *identity.Registry
	translator *axiom.Translator
	cache      cache.Cache[axiom.ClassExpression]
	closeOnce  sync.Once
}

// Stats is a snapshot of the manager state
type Stats struct {
	Statements  int                 `json:"statements"`
	Individuals int                 `json:"individuals"`
	Version     uint64              `json:"version"`
	Concurrent  bool                `json:"concurrent"`
	Closed      bool                `json:"closed"`
	Cache       *cache.StatsSummary `json:"cache,omitempty"`
}

// New creates a manager over an empty graph
func New(cfg Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:       cfg,
		logger:    slog.Default(),
		searchers: search.DefaultRegistry(),
		lock:      lock.New(cfg.Concurrent),
		retry:     cfg.Retry.ToRetryConfig(),
		graph:     graph.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	base := m.logger
	m.logger = base.With("component", "manager")

	var cacheOpts []cache.Option[axiom.ClassExpression]
	if m.registry != nil {
		m.metrics = m.registry.CoreMetrics()
		cacheOpts = append(cacheOpts, cache.WithMetrics[axiom.ClassExpression](m.registry, "translation"))
	}
	c, err := cache.NewFromConfig(cfg.Cache, cacheOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "manager", "New", "create translation cache")
	}
	m.cache = c

	m.identities = identity.NewRegistry(m.graph)
	m.translator = axiom.NewTranslator(axiom.WithCache(c), axiom.WithLogger(base))

	m.logger.Debug("Manager created",
		"concurrent", cfg.Concurrent,
		"lock_timeout", cfg.LockTimeout,
		"searchers", m.searchers.Kinds(),
		"cache_enabled", cfg.Cache.Enabled)
	return m, nil
}

// section runs fn under the lock, retrying lock timeouts, and records lock and
// operation metrics
func (m *Manager) section(ctx context.Context, mode lock.Mode, operation string, fn func() error) error {
	start := time.Now()
	defer m.metrics.ObserveOperation(operation, start)

	err := lock.Section(ctx, m.lock, mode, m.cfg.LockTimeout, m.retry, func() error {
		m.metrics.ObserveLockWait(string(mode), time.Since(start), false)
		return fn()
	})
	if errors.IsLockTimeout(err) {
		m.metrics.ObserveLockWait(string(mode), time.Since(start), true)
		m.logger.Warn("Lock wait exhausted", "operation", operation, "mode", mode, "waited", time.Since(start))
	}
	return err
}

func (m *Manager) checkOpen(method string) error {
	if m.graph.Closed() {
		return errors.WrapFatal(errors.ErrGraphClosed, "manager", method, "graph access")
	}
	return nil
}

// Add inserts statements in a write section and returns how many were new
func (m *Manager) Add(ctx context.Context, statements ...graph.Statement) (int, error) {
	var added int
	err := m.section(ctx, lock.Write, "add", func() error {
		var err error
		added, err = m.graph.Add(statements...)
		m.metrics.SetGraphSize(m.graph.Len())
		return err
	})
	return added, err
}

// Remove deletes statements in a write section and returns how many were present
func (m *Manager) Remove(ctx context.Context, statements ...graph.Statement) (int, error) {
	var removed int
	err := m.section(ctx, lock.Write, "remove", func() error {
		var err error
		removed, err = m.graph.Remove(statements...)
		m.metrics.SetGraphSize(m.graph.Len())
		return err
	})
	return removed, err
}

// Load decodes an N-Quads document and adds its statements. Parsing happens before the
// write section; blank labels follow the configured policy.
func (m *Manager) Load(ctx context.Context, r io.Reader) (int, error) {
	statements, err := codec.Decode(ctx, r,
		codec.WithBlankPolicy(m.cfg.BlankPolicy), codec.WithLogger(m.logger))
	if err != nil {
		return 0, errors.Wrap(err, "manager", "Load", "decode document")
	}

	added, err := m.Add(ctx, statements...)
	if err != nil {
		return 0, err
	}
	m.logger.Info("Document loaded", "statements", len(statements), "added", added)
	return added, nil
}

// Restore adds the statements persisted under name. Stored labels are kept, so
// anonymous identities equal those of the graph that was persisted.
func (m *Manager) Restore(ctx context.Context, name string) (int, error) {
	if m.store == nil {
		return 0, errors.InvalidArgument("manager", "Restore", "no store configured")
	}
	statements, err := m.store.Load(ctx, name)
	if err != nil {
		return 0, err
	}

	added, err := m.Add(ctx, statements...)
	if err != nil {
		return 0, err
	}
	m.logger.Info("Graph restored", "name", name, "statements", len(statements), "added", added)
	return added, nil
}

// snapshot copies the graph statements in a read section
func (m *Manager) snapshot(ctx context.Context, operation string) ([]graph.Statement, error) {
	var statements []graph.Statement
	err := m.section(ctx, lock.Read, operation, func() error {
		if err := m.checkOpen(operation); err != nil {
			return err
		}
		statements = m.graph.Statements()
		return nil
	})
	return statements, err
}

// Save writes the graph as N-Quads
func (m *Manager) Save(ctx context.Context, w io.Writer) error {
	statements, err := m.snapshot(ctx, "save")
	if err != nil {
		return err
	}
	return codec.Encode(w, statements)
}

// Persist stores the graph under name
func (m *Manager) Persist(ctx context.Context, name string) error {
	if m.store == nil {
		return errors.InvalidArgument("manager", "Persist", "no store configured")
	}
	statements, err := m.snapshot(ctx, "persist")
	if err != nil {
		return err
	}
	if err := m.store.Save(ctx, name, statements); err != nil {
		return err
	}
	m.logger.Info("Graph persisted", "name", name, "statements", len(statements))
	return nil
}

// ImplicitStatements lists the statements the searcher of kind treats as implicit axioms
func (m *Manager) ImplicitStatements(ctx context.Context, kind search.Kind) ([]graph.Statement, error) {
	s, ok := m.searchers.Get(kind)
	if !ok {
		return nil, errors.InvalidArgument("manager", "ImplicitStatements", "no searcher registered for %s", kind)
	}

	var out []graph.Statement
	err := m.section(ctx, lock.Read, "implicit_statements", func() error {
		if err := m.checkOpen("ImplicitStatements"); err != nil {
			return err
		}
		out = slices.Collect(s.ListImplicitStatements(m.graph))
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.metrics.AddImplicit(kind.String(), len(out))
	return out, nil
}

// Axioms returns the axioms of kind: the direct translation merged with the axioms lifted
// from every registered searcher's implicit statements. Each axiom appears once.
func (m *Manager) Axioms(ctx context.Context, kind axiom.Kind) ([]axiom.Axiom, error) {
	var out []axiom.Axiom
	err := m.section(ctx, lock.Read, "axioms", func() error {
		if err := m.checkOpen("Axioms"); err != nil {
			return err
		}
		set, err := m.axiomsUnsafe(ctx, kind)
		if err != nil {
			return err
		}
		out = set.Axioms()
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.metrics.AddAxioms(kind.String(), len(out))
	return out, nil
}

// axiomsUnsafe must run inside a read section
func (m *Manager) axiomsUnsafe(ctx context.Context, kind axiom.Kind) (*axiom.Set, error) {
	direct, err := m.translator.Translate(m.graph, kind)
	if err != nil {
		return nil, err
	}
	set := axiom.NewSet(direct...)

	// Implicit statements only ever encode class expressions, which surface in these kinds
	if kind != axiom.KindSubClassOf && kind != axiom.KindClassAssertion {
		return set, nil
	}

	searchers := m.searchers.Searchers()
	lifted := make([][]axiom.Axiom, len(searchers))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range searchers {
		g.Go(func() error {
			seen := make(map[graph.Term]struct{})
			for st := range s.ListImplicitStatements(m.graph) {
				if err := gctx.Err(); err != nil {
					return errors.WrapTransient(err, "manager", "Axioms", "implicit listing")
				}
				if _, dup := seen[st.Subject]; dup {
					continue
				}
				seen[st.Subject] = struct{}{}

				using, err := m.translator.AxiomsUsing(m.graph, st.Subject)
				if err != nil {
					return err
				}
				for _, ax := range using {
					if ax.Kind() == kind {
						lifted[i] = append(lifted[i], ax)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, axs := range lifted {
		set.Add(axs...)
	}
	return set, nil
}

// ReferencingAxioms returns every axiom whose explicit signature contains entity
func (m *Manager) ReferencingAxioms(ctx context.Context, entity axiom.Entity) ([]axiom.Axiom, error) {
	var out []axiom.Axiom
	err := m.section(ctx, lock.Read, "referencing_axioms", func() error {
		if err := m.checkOpen("ReferencingAxioms"); err != nil {
			return err
		}
		for _, kind := range axiom.Kinds() {
			set, err := m.axiomsUnsafe(ctx, kind)
			if err != nil {
				return err
			}
			for ax := range set.All() {
				if axiom.Mentions(ax, entity) {
					out = append(out, ax)
				}
			}
		}
		return nil
	})
	return out, err
}

// CardinalityAxioms returns the axioms using a data cardinality restriction whose
// filler, explicit or implicit, is datatype. Restrictions are found through the
// datatype searcher, so they need no explicit restriction typing.
func (m *Manager) CardinalityAxioms(ctx context.Context, datatype string) ([]axiom.Axiom, error) {
	s, ok := m.searchers.Get(search.KindDatatype)
	if !ok {
		return nil, errors.InvalidArgument("manager", "CardinalityAxioms", "no datatype searcher registered")
	}
	if datatype == "" {
		return nil, errors.InvalidArgument("manager", "CardinalityAxioms", "empty datatype")
	}

	var out []axiom.Axiom
	err := m.section(ctx, lock.Read, "cardinality_axioms", func() error {
		if err := m.checkOpen("CardinalityAxioms"); err != nil {
			return err
		}
		set := axiom.NewSet()
		for st := range s.ListImplicitStatements(m.graph) {
			using, err := m.translator.AxiomsUsing(m.graph, st.Subject)
			if err != nil {
				return err
			}
			for _, ax := range using {
				if restrictsDatatype(ax, datatype) {
					set.Add(ax)
				}
			}
		}
		out = set.Axioms()
		return nil
	})
	return out, err
}

func restrictsDatatype(ax axiom.Axiom, datatype string) bool {
	var exprs []axiom.ClassExpression
	switch a := ax.(type) {
	case axiom.SubClassOf:
		exprs = []axiom.ClassExpression{a.Sub, a.Super}
	case axiom.ClassAssertion:
		exprs = []axiom.ClassExpression{a.Class}
	}
	for _, e := range exprs {
		if cr, ok := e.(axiom.CardinalityRestriction); ok && cr.Kind.IsData() && cr.ImplicitFiller().IRI == datatype {
			return true
		}
	}
	return false
}

// Individual converts any anonymous node representation; it never fails
func (m *Manager) Individual(source any) identity.AnonymousIndividual {
	return m.identities.Individual(source)
}

// Resolve returns the individual for a label of the graph. After Close every label
// fails with ErrMissingIdentity.
func (m *Manager) Resolve(ctx context.Context, label string) (identity.AnonymousIndividual, error) {
	var ind identity.AnonymousIndividual
	err := m.section(ctx, lock.Read, "resolve", func() error {
		var err error
		ind, err = m.identities.Resolve(label)
		return err
	})
	switch {
	case err == nil:
		m.metrics.RecordResolution("resolved")
	case errors.IsMissingIdentity(err):
		m.metrics.RecordResolution("missing")
	}
	return ind, err
}

// Individuals lists the anonymous individuals of the graph in first-seen order
func (m *Manager) Individuals(ctx context.Context) ([]identity.AnonymousIndividual, error) {
	var out []identity.AnonymousIndividual
	err := m.section(ctx, lock.Read, "individuals", func() error {
		out = m.identities.Individuals()
		return nil
	})
	return out, err
}

// Stats returns a snapshot of the manager state
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := m.section(ctx, lock.Read, "stats", func() error {
		st = Stats{
			Statements:  m.graph.Len(),
			Individuals: len(m.graph.BlankLabels()),
			Version:     m.graph.Version(),
			Concurrent:  m.lock.Concurrent(),
			Closed:      m.graph.Closed(),
		}
		if s := m.cache.Stats(); s != nil {
			summary := s.Summary()
			st.Cache = &summary
		}
		return nil
	})
	return st, err
}

// Close releases the graph once every running section has finished. Later writes fail
// with ErrGraphClosed and later resolutions with ErrMissingIdentity. The store is owned
// by the caller and stays open.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.lock.Lock()
		m.graph.Close()
		m.lock.Unlock()

		m.metrics.SetGraphSize(0)
		err = m.cache.Close()
		m.logger.Debug("Manager closed")
	})
	return err
}

// Health reports the graph and store state. A graph whose read lock cannot be taken
// within the lock timeout is degraded rather than unhealthy.
func (m *Manager) Health(ctx context.Context) health.Status {
	subs := []health.Status{m.graphHealth(ctx)}

	if m.store == nil {
		subs = append(subs, health.NewHealthy("store", "persistence disabled"))
	} else if names, err := m.store.List(ctx, ""); err != nil {
		subs = append(subs, health.FromError("store", err))
	} else {
		subs = append(subs, health.NewHealthy("store", fmt.Sprintf("%d graphs stored", len(names))))
	}

	return health.Aggregate("manager", subs)
}

func (m *Manager) graphHealth(ctx context.Context) health.Status {
	if m.graph.Closed() {
		return health.NewUnhealthy("graph", "graph closed")
	}
	if err := lock.Acquire(ctx, m.lock, lock.Read, m.cfg.LockTimeout); err != nil {
		return health.NewDegraded("graph", "read lock unavailable")
	}
	defer lock.Release(m.lock, lock.Read)
	return health.NewHealthy("graph", fmt.Sprintf("%d statements", m.graph.Len()))
}
