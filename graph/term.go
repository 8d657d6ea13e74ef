// Package graph provides the statement graph: RDF terms, statements, an in-memory
// duplicate-free graph with pattern queries, and the predicate index used by searchers.
package graph

import (
	"strconv"
	"strings"
)

// TermKind identifies the lexical category of a Term
type TermKind int

const (
	// KindAny is the zero kind; a Term of this kind is a wildcard in patterns
	KindAny TermKind = iota
	// KindIRI is a named resource
	KindIRI
	// KindBlank is an anonymous node identified by a label scoped to its graph
	KindBlank
	// KindLiteral is a literal value, optionally typed or language-tagged
	KindLiteral
)

// String returns the string representation of TermKind
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "any"
	}
}

// Term is a node of the graph: a named resource, an anonymous node or a literal.
// Terms are comparable values and can be used as map keys.
type Term struct {
	Kind     TermKind `json:"kind"`
	Value    string   `json:"value"`
	Datatype string   `json:"datatype,omitempty"`
	Lang     string   `json:"lang,omitempty"`
}

// Any matches every term when used in a pattern.
var Any = Term{}

// IRI returns a named resource term
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank returns an anonymous node term. A leading "_:" is stripped from the label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// Literal returns a plain literal term
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// TypedLiteral returns a literal with a datatype IRI
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// IsAny reports whether the term is the wildcard
func (t Term) IsAny() bool { return t.Kind == KindAny }

// IsIRI reports whether the term is a named resource
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether the term is an anonymous node
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether the term is a literal
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsResource reports whether the term can be a statement subject
func (t Term) IsResource() bool { return t.Kind == KindIRI || t.Kind == KindBlank }

// BlankLabel returns the label of an anonymous node.
// It lets any Term prove whether it denotes a given blank node.
func (t Term) BlankLabel() (string, bool) {
	if t.Kind != KindBlank {
		return "", false
	}
	return t.Value, true
}

// Matches reports whether t satisfies the pattern term p
func (t Term) Matches(p Term) bool {
	return p.IsAny() || t == p
}

// String renders the term in N-Triples syntax
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := strconv.Quote(t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return "*"
	}
}
