package graph

import "strings"

// Statement is an ordered (subject, predicate, object) triple.
type Statement struct {
	Subject   Term `json:"subject"`
	Predicate Term `json:"predicate"`
	Object    Term `json:"object"`
}

// NewStatement builds a statement from its three terms
func NewStatement(subject, predicate, object Term) Statement {
	return Statement{Subject: subject, Predicate: predicate, Object: object}
}

// Valid reports whether the statement is a well-formed triple: the subject is a named or
// anonymous resource, the predicate is named, and the object is any concrete term.
func (s Statement) Valid() bool {
	return s.Subject.IsResource() && s.Predicate.IsIRI() && !s.Object.IsAny()
}

// Matches reports whether the statement satisfies a pattern where Any is a wildcard
func (s Statement) Matches(pattern Statement) bool {
	return s.Subject.Matches(pattern.Subject) &&
		s.Predicate.Matches(pattern.Predicate) &&
		s.Object.Matches(pattern.Object)
}

// String renders the statement as an N-Triples line without the trailing newline
func (s Statement) String() string {
	var b strings.Builder
	b.WriteString(s.Subject.String())
	b.WriteByte(' ')
	b.WriteString(s.Predicate.String())
	b.WriteByte(' ')
	b.WriteString(s.Object.String())
	b.WriteString(" .")
	return b.String()
}
