package manager

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontograph/axiom"
	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/metric"
	"github.com/c360/ontograph/search"
	"github.com/c360/ontograph/storage"
	"github.com/c360/ontograph/testutil"
	"github.com/c360/ontograph/vocabulary"
)

func newManager(t *testing.T, cfg Config, opts ...Option) *Manager {
	t.Helper()
	m, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func loadedManager(t *testing.T, concurrent bool, opts ...Option) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Concurrent = concurrent
	m := newManager(t, cfg, opts...)
	added, err := m.Add(context.Background(), testutil.Ontology()...)
	require.NoError(t, err)
	require.Equal(t, len(testutil.Ontology()), added)
	return m
}

func keys(axioms []axiom.Axiom) []string {
	out := make([]string, 0, len(axioms))
	for _, a := range axioms {
		out = append(out, a.Key())
	}
	return out
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LockTimeout = -time.Second
	_, err := New(cfg)
	assert.True(t, errors.IsInvalid(err))

	cfg = DefaultConfig()
	cfg.BlankPolicy = "recycle"
	_, err = New(cfg)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestManager_ImplicitStatements(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		kind     search.Kind
		subjects []string
	}{
		{search.KindClass, []string{testutil.FriendsRestriction}},
		{search.KindDatatype, []string{testutil.TopRestriction, testutil.AgeRestriction}},
		{search.KindObjectProperty, nil},
		{search.KindDataProperty, []string{testutil.TopRestriction}},
	}

	for _, concurrent := range []bool{true, false} {
		m := loadedManager(t, concurrent)
		for _, tt := range tests {
			t.Run(tt.kind.String(), func(t *testing.T) {
				got, err := m.ImplicitStatements(ctx, tt.kind)
				require.NoError(t, err)

				var subjects []string
				for _, st := range got {
					label, ok := st.Subject.BlankLabel()
					require.True(t, ok)
					subjects = append(subjects, label)
				}
				assert.ElementsMatch(t, tt.subjects, subjects)
			})
		}
	}
}

func TestManager_ImplicitStatements_UnregisteredKind(t *testing.T) {
	reg, err := search.NewRegistry(search.ClassTop{})
	require.NoError(t, err)
	m := newManager(t, DefaultConfig(), WithSearchers(reg))

	_, err = m.ImplicitStatements(context.Background(), search.KindDatatype)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = m.CardinalityAxioms(context.Background(), vocabulary.RdfsLiteral)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestManager_Axioms(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)

	counts := map[axiom.Kind]int{
		axiom.KindDeclaration:             6,
		axiom.KindSubClassOf:              5,
		axiom.KindClassAssertion:          2,
		axiom.KindObjectPropertyAssertion: 1,
	}
	for kind, want := range counts {
		t.Run(kind.String(), func(t *testing.T) {
			got, err := m.Axioms(ctx, kind)
			require.NoError(t, err)
			assert.Len(t, got, want, "implicit axioms merge without duplicates: %v", keys(got))
			for _, a := range got {
				assert.Equal(t, kind, a.Kind())
			}
		})
	}
}

func TestManager_Axioms_ImplicitOnly(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, DefaultConfig())

	// A restriction reachable only through rdf:type, with no owl:Restriction typing
	r := graph.Blank("r")
	_, err := m.Add(ctx,
		graph.NewStatement(testutil.ExIRI("hasAge"), graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlDatatypeProperty)),
		graph.NewStatement(r, graph.IRI(vocabulary.OwlOnProperty), testutil.ExIRI("hasAge")),
		graph.NewStatement(r, graph.IRI(vocabulary.OwlMaxCardinality), graph.TypedLiteral("2", vocabulary.XsdNonNegativeInteger)),
		graph.NewStatement(testutil.ExIRI("carol"), graph.IRI(vocabulary.RdfType), r),
	)
	require.NoError(t, err)

	got, err := m.Axioms(ctx, axiom.KindClassAssertion)
	require.NoError(t, err)
	require.Len(t, got, 1)

	ca, ok := got[0].(axiom.ClassAssertion)
	require.True(t, ok)
	cr, ok := ca.Class.(axiom.CardinalityRestriction)
	require.True(t, ok)
	assert.Equal(t, axiom.DataMaxCardinality, cr.Kind)
	assert.Equal(t, uint64(2), cr.Cardinality)
}

func TestManager_CardinalityAxioms(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)

	got, err := m.CardinalityAxioms(ctx, vocabulary.RdfsLiteral)
	require.NoError(t, err)
	require.Len(t, got, 2, "%v", keys(got))
	for _, a := range got {
		sc, ok := a.(axiom.SubClassOf)
		require.True(t, ok)
		cr, ok := sc.Super.(axiom.CardinalityRestriction)
		require.True(t, ok)
		assert.True(t, cr.Kind.IsData())
	}

	none, err := m.CardinalityAxioms(ctx, vocabulary.XsdString)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = m.CardinalityAxioms(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestManager_ReferencingAxioms(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)

	hasAge := axiom.Entity{Kind: axiom.DataProperty, IRI: testutil.Ex + "hasAge"}
	got, err := m.ReferencingAxioms(ctx, hasAge)
	require.NoError(t, err)
	assert.Len(t, got, 2, "%v", keys(got))

	person := axiom.Entity{Kind: axiom.Class, IRI: testutil.Ex + "Person"}
	got, err = m.ReferencingAxioms(ctx, person)
	require.NoError(t, err)
	assert.Len(t, got, 6, "%v", keys(got))
}

func TestManager_Identity(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)

	bob, err := m.Resolve(ctx, testutil.Bob)
	require.NoError(t, err)
	assert.True(t, bob.Equal(graph.Blank(testutil.Bob)))
	assert.True(t, bob.Equal(m.Individual("_:"+testutil.Bob)))
	assert.Equal(t, bob.Hash(), m.Individual(graph.Blank(testutil.Bob)).Hash())

	_, err = m.Resolve(ctx, "nobody")
	assert.True(t, errors.IsMissingIdentity(err))

	_, err = m.Resolve(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))

	individuals, err := m.Individuals(ctx)
	require.NoError(t, err)
	assert.Len(t, individuals, 5)
}

func TestManager_Close(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err := m.Resolve(ctx, testutil.Bob)
	assert.True(t, errors.IsMissingIdentity(err))

	_, err = m.Add(ctx, testutil.Ontology()[0])
	assert.ErrorIs(t, err, errors.ErrGraphClosed)
	assert.True(t, errors.IsFatal(err))

	_, err = m.Axioms(ctx, axiom.KindDeclaration)
	assert.ErrorIs(t, err, errors.ErrGraphClosed)

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.Closed)
	assert.Zero(t, stats.Statements)
}

func TestManager_LoadBlankPolicy(t *testing.T) {
	ctx := context.Background()

	keep := newManager(t, DefaultConfig())
	for range 2 {
		_, err := keep.Load(ctx, strings.NewReader(testutil.OntologyNQuads))
		require.NoError(t, err)
	}
	stats, err := keep.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, stats.Statements, "identical labels merge")

	cfg := DefaultConfig()
	cfg.BlankPolicy = codec.FreshLabels
	fresh := newManager(t, cfg)
	for range 2 {
		_, err := fresh.Load(ctx, strings.NewReader(testutil.OntologyNQuads))
		require.NoError(t, err)
	}
	stats, err = fresh.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26+18, stats.Statements, "only statements with blank nodes are duplicated")
	assert.Equal(t, 10, stats.Individuals)

	_, err = fresh.Load(ctx, strings.NewReader("<a> <b> .\n"))
	assert.True(t, errors.IsInvalid(err))
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)

	var buf bytes.Buffer
	require.NoError(t, m.Save(ctx, &buf))

	other := newManager(t, DefaultConfig())
	_, err := other.Load(ctx, &buf)
	require.NoError(t, err)

	bob, err := other.Resolve(ctx, testutil.Bob)
	require.NoError(t, err)
	orig, err := m.Resolve(ctx, testutil.Bob)
	require.NoError(t, err)
	assert.True(t, orig.Equal(bob))
}

func TestManager_PersistRestore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	m := loadedManager(t, true, WithStore(store))

	require.NoError(t, m.Persist(ctx, "fixture"))

	restored := newManager(t, DefaultConfig(), WithStore(store))
	added, err := restored.Restore(ctx, "fixture")
	require.NoError(t, err)
	assert.Equal(t, 26, added)

	_, err = restored.Resolve(ctx, testutil.Bob)
	assert.NoError(t, err)

	_, err = restored.Restore(ctx, "missing")
	assert.True(t, storage.IsNotFound(err))

	bare := newManager(t, DefaultConfig())
	assert.True(t, errors.IsInvalidArgument(bare.Persist(ctx, "x")))
	_, err = bare.Restore(ctx, "x")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestManager_RemoveInvalidatesIdentity(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, false)

	var withBob []graph.Statement
	for _, st := range testutil.Ontology() {
		if st.Subject == graph.Blank(testutil.Bob) || st.Object == graph.Blank(testutil.Bob) {
			withBob = append(withBob, st)
		}
	}
	removed, err := m.Remove(ctx, withBob...)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = m.Resolve(ctx, testutil.Bob)
	assert.True(t, errors.IsMissingIdentity(err))
}

func TestManager_LockTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LockTimeout = 10 * time.Millisecond
	cfg.Retry.MaxRetries = 1
	cfg.Retry.InitialDelay = time.Millisecond
	cfg.Retry.MaxDelay = time.Millisecond

	reg := metric.NewMetricsRegistry()
	m := newManager(t, cfg, WithMetrics(reg))

	m.lock.RLock()
	_, err := m.Add(context.Background(), testutil.Ontology()[0])
	m.lock.RUnlock()

	require.Error(t, err)
	assert.True(t, errors.IsLockTimeout(err))
	assert.True(t, errors.IsTransient(err))
	assert.Equal(t, float64(1), promtest.ToFloat64(reg.CoreMetrics().LockTimeouts.WithLabelValues("write")))

	_, err = m.Add(context.Background(), testutil.Ontology()[0])
	assert.NoError(t, err, "succeeds once the reader is gone")
}

func TestManager_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := metric.NewMetricsRegistry()
	m := loadedManager(t, true, WithMetrics(reg))
	core := reg.CoreMetrics()

	assert.Equal(t, float64(26), promtest.ToFloat64(core.GraphStatements))

	_, err := m.ImplicitStatements(ctx, search.KindDatatype)
	require.NoError(t, err)
	assert.Equal(t, float64(2), promtest.ToFloat64(core.ImplicitStatements.WithLabelValues("datatype")))

	_, err = m.Axioms(ctx, axiom.KindSubClassOf)
	require.NoError(t, err)
	assert.Equal(t, float64(5), promtest.ToFloat64(core.AxiomsTranslated.WithLabelValues("SubClassOf")))

	_, _ = m.Resolve(ctx, testutil.Bob)
	_, _ = m.Resolve(ctx, "ghost")
	assert.Equal(t, float64(1), promtest.ToFloat64(core.IdentityResolutions.WithLabelValues("resolved")))
	assert.Equal(t, float64(1), promtest.ToFloat64(core.IdentityResolutions.WithLabelValues("missing")))

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	require.NotNil(t, stats.Cache)
	assert.Positive(t, stats.Cache.Sets)
}

func TestManager_ConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()
	m := loadedManager(t, true)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if i%2 == 0 {
					_, err := m.Axioms(ctx, axiom.KindSubClassOf)
					assert.NoError(t, err)
					continue
				}
				st := graph.NewStatement(testutil.ExIRI("x"), graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlClass))
				_, err := m.Add(ctx, st)
				assert.NoError(t, err)
				_, err = m.Remove(ctx, st)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, stats.Statements)
	assert.True(t, stats.Concurrent)
}

func TestManager_Health(t *testing.T) {
	ctx := context.Background()

	m := loadedManager(t, true, WithStore(storage.NewMemory()))
	st := m.Health(ctx)
	assert.True(t, st.IsHealthy(), "%+v", st)
	require.Len(t, st.SubStatuses, 2)
	assert.Equal(t, "26 statements", st.SubStatuses[0].Message)

	cfg := DefaultConfig()
	cfg.LockTimeout = 5 * time.Millisecond
	busy := newManager(t, cfg)
	busy.lock.Lock()
	st = busy.Health(ctx)
	busy.lock.Unlock()
	assert.True(t, st.IsDegraded())

	closedStore := storage.NewMemory()
	require.NoError(t, closedStore.Close())
	broken := newManager(t, DefaultConfig(), WithStore(closedStore))
	assert.True(t, broken.Health(ctx).IsUnhealthy())

	require.NoError(t, m.Close())
	assert.True(t, m.Health(ctx).IsUnhealthy())
}

func TestManager_AxiomsRepeatableWithoutCache(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	m := newManager(t, cfg)

	r := graph.Blank("r")
	_, err := m.Add(ctx,
		graph.NewStatement(testutil.ExIRI("C"), graph.IRI(vocabulary.RdfsSubClassOf), r),
		graph.NewStatement(r, graph.IRI(vocabulary.OwlMinQualifiedCardinality), graph.Literal("2")),
		graph.NewStatement(r, graph.IRI(vocabulary.OwlOnClass), testutil.ExIRI("D")),
	)
	require.NoError(t, err)

	first, err := m.Axioms(ctx, axiom.KindSubClassOf)
	require.NoError(t, err)
	second, err := m.Axioms(ctx, axiom.KindSubClassOf)
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Contains(t, first[0].Key(), vocabulary.ErrorNamespace)
	assert.Equal(t, keys(first), keys(second))
}

func TestManager_TranslatorLogsUnderOwnComponent(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newManager(t, DefaultConfig(), WithLogger(logger))

	r := graph.Blank("r")
	_, err := m.Add(ctx,
		graph.NewStatement(testutil.ExIRI("C"), graph.IRI(vocabulary.RdfsSubClassOf), r),
		graph.NewStatement(r, graph.IRI(vocabulary.OwlMinQualifiedCardinality), graph.Literal("2")),
		graph.NewStatement(r, graph.IRI(vocabulary.OwlOnClass), testutil.ExIRI("D")),
	)
	require.NoError(t, err)
	_, err = m.Axioms(ctx, axiom.KindSubClassOf)
	require.NoError(t, err)

	var translatorLines int
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "component=translator") {
			translatorLines++
			assert.NotContains(t, line, "component=manager")
		}
	}
	assert.Positive(t, translatorLines)
}
