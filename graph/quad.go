package graph

import (
	"github.com/cayleygraph/quad"

	"github.com/c360/ontograph/errors"
)

// ToValue converts a term to its cayley quad representation.
// The wildcard converts to nil.
func ToValue(t Term) quad.Value {
	switch t.Kind {
	case KindIRI:
		return quad.IRI(t.Value)
	case KindBlank:
		return quad.BNode(t.Value)
	case KindLiteral:
		if t.Lang != "" {
			return quad.LangString{Value: quad.String(t.Value), Lang: t.Lang}
		}
		if t.Datatype != "" {
			return quad.TypedString{Value: quad.String(t.Value), Type: quad.IRI(t.Datatype)}
		}
		return quad.String(t.Value)
	default:
		return nil
	}
}

// FromValue converts a cayley quad value to a term.
// Native values (ints, bools, times) are rendered through their typed-string form.
func FromValue(v quad.Value) (Term, error) {
	switch v := v.(type) {
	case nil:
		return Any, nil
	case quad.IRI:
		return IRI(string(v.Full())), nil
	case quad.BNode:
		return Blank(string(v)), nil
	case quad.String:
		return Literal(string(v)), nil
	case quad.LangString:
		return LangLiteral(string(v.Value), v.Lang), nil
	case quad.TypedString:
		return TypedLiteral(string(v.Value), string(v.Type.Full())), nil
	case quad.TypedStringer:
		ts := v.TypedString()
		return TypedLiteral(string(ts.Value), string(ts.Type.Full())), nil
	default:
		return Term{}, errors.WrapInvalid(errors.ErrUnsupportedKind, "graph", "FromValue",
			"convert quad value "+v.String())
	}
}

// ToQuad converts a statement to a cayley quad in the default graph
func ToQuad(st Statement) quad.Quad {
	return quad.Quad{
		Subject:   ToValue(st.Subject),
		Predicate: ToValue(st.Predicate),
		Object:    ToValue(st.Object),
	}
}

// FromQuad converts a cayley quad to a statement. The quad label is ignored.
func FromQuad(q quad.Quad) (Statement, error) {
	var st Statement
	var err error
	if st.Subject, err = FromValue(q.Subject); err != nil {
		return Statement{}, err
	}
	if st.Predicate, err = FromValue(q.Predicate); err != nil {
		return Statement{}, err
	}
	if st.Object, err = FromValue(q.Object); err != nil {
		return Statement{}, err
	}
	if !st.Valid() {
		return Statement{}, errors.WrapInvalid(errors.ErrInvalidData, "graph", "FromQuad",
			"malformed quad "+q.String())
	}
	return st, nil
}
