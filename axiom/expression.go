package axiom

import (
	"fmt"
)

// ClassExpression is a named class or a restriction built from a graph fragment.
// The set of implementations is closed.
type ClassExpression interface {
	// Key identifies the expression by content
	Key() string
	// Signature lists the entities the expression mentions explicitly
	Signature() []Entity
	String() string
	isClassExpression()
}

// NamedClass is a class referenced by IRI
type NamedClass struct {
	IRI string
}

func (c NamedClass) Key() string         { return "<" + c.IRI + ">" }
func (c NamedClass) Signature() []Entity { return []Entity{{Kind: Class, IRI: c.IRI}} }
func (c NamedClass) String() string      { return c.Key() }
func (NamedClass) isClassExpression()    {}

// CardinalityRestriction bounds the number of values of Property.
// A nil Filler means the restriction is unqualified; its filler is then the top of the
// restriction's side (owl:Thing or rdfs:Literal), which is implicit and not part of the
// signature.
type CardinalityRestriction struct {
	Kind        RestrictionKind
	Property    Entity
	Cardinality uint64
	Filler      *Entity
}

func (c CardinalityRestriction) Key() string {
	filler := "-"
	if c.Filler != nil {
		filler = c.Filler.IRI
	}
	return fmt.Sprintf("%s(%d <%s> %s)", c.Kind, c.Cardinality, c.Property.IRI, filler)
}

func (c CardinalityRestriction) Signature() []Entity {
	sig := []Entity{c.Property}
	if c.Filler != nil {
		sig = append(sig, *c.Filler)
	}
	return sig
}

func (c CardinalityRestriction) String() string   { return c.Key() }
func (CardinalityRestriction) isClassExpression() {}

// Qualified reports whether the restriction names an explicit filler
func (c CardinalityRestriction) Qualified() bool { return c.Filler != nil }

// ImplicitFiller returns the filler as an entity, substituting the top of the
// restriction's side when it is unqualified.
func (c CardinalityRestriction) ImplicitFiller() Entity {
	if c.Filler != nil {
		return *c.Filler
	}
	if c.Kind.IsData() {
		return Entity{Kind: Datatype, IRI: topDatatype}
	}
	return Entity{Kind: Class, IRI: topClass}
}

// HasSelfRestriction is the class of individuals related to themselves by Property
type HasSelfRestriction struct {
	Property Entity
}

func (h HasSelfRestriction) Key() string         { return fmt.Sprintf("ObjectHasSelf(<%s>)", h.Property.IRI) }
func (h HasSelfRestriction) Signature() []Entity { return []Entity{h.Property} }
func (h HasSelfRestriction) String() string      { return h.Key() }
func (HasSelfRestriction) isClassExpression()    {}
