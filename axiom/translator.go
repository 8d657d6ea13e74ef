package axiom

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/identity"
	"github.com/c360/ontograph/pkg/cache"
	"github.com/c360/ontograph/vocabulary"
)

// Translator turns graph content into axioms.
//
// Restriction nodes are translated once per distinct content: the resulting class
// expression is cached under a hash of the node's outgoing statements with blank labels
// erased, so two documents encoding the same restriction under different labels share
// one entry.
type Translator struct {
	cache  cache.Cache[ClassExpression]
	logger *slog.Logger
}

// TranslatorOption configures a Translator
type TranslatorOption func(*Translator)

// WithCache sets the class expression cache
func WithCache(c cache.Cache[ClassExpression]) TranslatorOption {
	return func(t *Translator) {
		if c != nil {
			t.cache = c
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator creates a translator; without WithCache nothing is cached
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{
		cache:  cache.NewNoop[ClassExpression](),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "translator")
	return t
}

// Translate returns the axioms of one kind that the graph encodes directly
func (t *Translator) Translate(r graph.Reader, kind Kind) ([]Axiom, error) {
	if r.Closed() {
		return nil, errors.WrapFatal(errors.ErrGraphClosed, "Translator", "Translate", "graph read")
	}

	switch kind {
	case KindDeclaration:
		return t.declarations(r), nil
	case KindSubClassOf:
		return t.subClassAxioms(r)
	case KindClassAssertion:
		return t.classAssertions(r)
	case KindObjectPropertyAssertion:
		return t.propertyAssertions(r)
	default:
		return nil, errors.InvalidArgument("Translator", "Translate", "unsupported axiom kind %s", kind)
	}
}

func (t *Translator) declarations(r graph.Reader) []Axiom {
	var out []Axiom
	for st := range r.Find(graph.Any, graph.IRI(vocabulary.RdfType), graph.Any) {
		if !st.Subject.IsIRI() || !st.Object.IsIRI() {
			continue
		}
		if k, ok := KindOfDeclaration(st.Object.Value); ok {
			out = append(out, Declaration{Entity: Entity{Kind: k, IRI: st.Subject.Value}})
		}
	}
	return out
}

func (t *Translator) subClassAxioms(r graph.Reader) ([]Axiom, error) {
	var out []Axiom
	for st := range r.Find(graph.Any, graph.IRI(vocabulary.RdfsSubClassOf), graph.Any) {
		ax, ok, err := t.subClassOf(r, st)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ax)
		}
	}
	return out, nil
}

func (t *Translator) subClassOf(r graph.Reader, st graph.Statement) (Axiom, bool, error) {
	sub, ok, err := t.Expression(r, st.Subject)
	if err != nil || !ok {
		return nil, false, err
	}
	super, ok, err := t.Expression(r, st.Object)
	if err != nil || !ok {
		return nil, false, err
	}
	return SubClassOf{Sub: sub, Super: super}, true, nil
}

func (t *Translator) classAssertions(r graph.Reader) ([]Axiom, error) {
	var out []Axiom
	for st := range r.Find(graph.Any, graph.IRI(vocabulary.RdfType), graph.Any) {
		ax, ok, err := t.classAssertion(r, st)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ax)
		}
	}
	return out, nil
}

func (t *Translator) classAssertion(r graph.Reader, st graph.Statement) (Axiom, bool, error) {
	if st.Object.IsIRI() && isBuiltinType(st.Object.Value) {
		return nil, false, nil
	}
	class, ok, err := t.Expression(r, st.Object)
	if err != nil || !ok {
		return nil, false, err
	}
	ind, err := individualOf(r, st.Subject)
	if err != nil {
		return nil, false, err
	}
	return ClassAssertion{Class: class, Individual: ind}, true, nil
}

// isBuiltinType reports whether an rdf:type object belongs to the mapping vocabulary
// itself (declarations, owl:Restriction, owl:Ontology ...) rather than to the ontology.
func isBuiltinType(iri string) bool {
	if _, ok := KindOfDeclaration(iri); ok {
		return true
	}
	return (strings.HasPrefix(iri, vocabulary.OwlNamespace) && iri != vocabulary.OwlThing) ||
		strings.HasPrefix(iri, vocabulary.RdfNamespace) ||
		strings.HasPrefix(iri, vocabulary.RdfsNamespace)
}

func (t *Translator) propertyAssertions(r graph.Reader) ([]Axiom, error) {
	var out []Axiom
	for decl := range r.Find(graph.Any, graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlObjectProperty)) {
		if !decl.Subject.IsIRI() {
			continue
		}
		prop := Entity{Kind: ObjectProperty, IRI: decl.Subject.Value}
		for st := range r.Find(graph.Any, decl.Subject, graph.Any) {
			if !st.Object.IsResource() {
				continue
			}
			subject, err := individualOf(r, st.Subject)
			if err != nil {
				return nil, err
			}
			object, err := individualOf(r, st.Object)
			if err != nil {
				return nil, err
			}
			out = append(out, ObjectPropertyAssertion{Property: prop, Subject: subject, Object: object})
		}
	}
	return out, nil
}

// individualOf resolves blank nodes through the graph's identity registry so a node the
// graph no longer holds surfaces as ErrMissingIdentity.
func individualOf(r graph.Reader, t graph.Term) (Individual, error) {
	if t.IsIRI() {
		return NamedIndividualOf(t.Value), nil
	}
	a, err := identity.NewRegistry(r).ResolveTerm(t)
	if err != nil {
		return Individual{}, err
	}
	return AnonymousIndividualOf(a), nil
}

// AxiomsUsing returns the SubClassOf and ClassAssertion axioms in which node appears as a
// class expression. It lifts an implicit restriction statement to the axioms that use the
// restriction.
func (t *Translator) AxiomsUsing(r graph.Reader, node graph.Term) ([]Axiom, error) {
	if r.Closed() {
		return nil, errors.WrapFatal(errors.ErrGraphClosed, "Translator", "AxiomsUsing", "graph read")
	}

	var out []Axiom
	collect := func(ax Axiom, ok bool, err error) error {
		if err == nil && ok {
			out = append(out, ax)
		}
		return err
	}

	subClass := graph.IRI(vocabulary.RdfsSubClassOf)
	for st := range r.Find(graph.Any, graph.Any, node) {
		var err error
		switch st.Predicate.Value {
		case vocabulary.RdfsSubClassOf:
			err = collect(t.subClassOf(r, st))
		case vocabulary.RdfType:
			err = collect(t.classAssertion(r, st))
		}
		if err != nil {
			return nil, err
		}
	}
	for st := range r.Find(node, subClass, graph.Any) {
		if err := collect(t.subClassOf(r, st)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Expression translates a class term. Named classes translate directly; blank nodes are
// translated as restrictions. ok is false when the term encodes no supported expression.
func (t *Translator) Expression(r graph.Reader, term graph.Term) (ClassExpression, bool, error) {
	switch {
	case term.IsIRI():
		return NamedClass{IRI: term.Value}, true, nil
	case term.IsBlank():
		kind := ClassifyRestriction(r, term)
		if kind == RestrictionNone {
			t.logger.Debug("Skipping unsupported class expression", "node", term.String())
			return nil, false, nil
		}
		key := fragmentKey(r, term)
		expr, err := cache.GetOrCompute(t.cache, key, func() (ClassExpression, error) {
			return t.restriction(r, term, kind, key)
		})
		if err != nil {
			return nil, false, errors.Wrap(err, "Translator", "Expression", "restriction translation")
		}
		return expr, expr != nil, nil
	default:
		return nil, false, nil
	}
}

// restriction builds the expression of node. key is its fragment key; a missing
// owl:onProperty is replaced by an error marker derived from it, so the same fragment
// always yields the same marker.
func (t *Translator) restriction(r graph.Reader, node graph.Term, kind RestrictionKind, key string) (ClassExpression, error) {
	propKind := ObjectProperty
	if kind.IsData() {
		propKind = DataProperty
	}

	var property Entity
	if prop, ok := OnProperty(r, node); ok && prop.IsIRI() {
		property = Entity{Kind: propKind, IRI: prop.Value}
	} else {
		marker, err := vocabulary.ErrorMarker(markerSuffix(key))
		if err != nil {
			return nil, err
		}
		t.logger.Warn("Restriction without owl:onProperty, substituting error marker",
			"node", node.String(), "marker", marker)
		property = Entity{Kind: propKind, IRI: marker}
	}

	if kind == ObjectHasSelf {
		return HasSelfRestriction{Property: property}, nil
	}

	card, ok := CardinalityOf(r, node)
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Translator", "restriction",
			"cardinality lookup for "+node.String())
	}
	expr := CardinalityRestriction{Kind: kind, Property: property, Cardinality: card.Value}
	if card.Qualified {
		filler, ok := fillerOf(r, node, kind)
		if !ok {
			return nil, nil
		}
		expr.Filler = &filler
	}
	return expr, nil
}

func markerSuffix(key string) int {
	sum, err := strconv.ParseUint(key, 16, 64)
	if err != nil {
		sum = xxhash.Sum64String(key)
	}
	return int(sum & math.MaxInt32)
}

func fillerOf(r graph.Reader, node graph.Term, kind RestrictionKind) (Entity, bool) {
	pred, fillerKind := vocabulary.OwlOnClass, Class
	if kind.IsData() {
		pred, fillerKind = vocabulary.OwlOnDataRange, Datatype
	}
	for _, o := range r.Objects(node, graph.IRI(pred)) {
		if o.IsIRI() {
			return Entity{Kind: fillerKind, IRI: o.Value}, true
		}
	}
	return Entity{}, false
}

// fragmentKey hashes the outgoing statements of node with blank labels erased, together
// with the declared kinds of the restricted property, which the classification depends on.
func fragmentKey(r graph.Reader, node graph.Term) string {
	var parts []string
	for st := range r.Find(node, graph.Any, graph.Any) {
		obj := st.Object.String()
		if st.Object.IsBlank() {
			obj = "_:"
		}
		parts = append(parts, st.Predicate.String()+" "+obj)
		if st.Predicate.Value == vocabulary.OwlOnProperty && st.Object.IsIRI() {
			for _, k := range DeclaredKinds(r, st.Object.Value) {
				parts = append(parts, "kind "+k.String())
			}
		}
	}
	slices.Sort(parts)
	parts = slices.Compact(parts)

	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
