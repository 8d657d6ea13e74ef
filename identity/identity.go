// Package identity maps blank-node labels to anonymous individuals and back.
//
// An AnonymousID is an immutable value wrapping a label; two IDs are equal iff their
// labels are equal, so the same label always yields the same identity for the lifetime
// of its graph. Persisting the label string is enough to rebuild an equal identity.
package identity

import (
	"encoding/hex"
	"reflect"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cespare/xxhash/v2"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
)

// AnonymousID is the identity of one anonymous node.
// The zero value is not a valid identity; build IDs with ParseID or DeriveID.
type AnonymousID struct {
	label string
}

// ParseID builds the identity for a label. A leading "_:" is accepted and stripped.
// An empty label fails with ErrInvalidArgument.
func ParseID(label string) (AnonymousID, error) {
	label = strings.TrimPrefix(strings.TrimSpace(label), "_:")
	if label == "" {
		return AnonymousID{}, errors.InvalidArgument("identity", "ParseID", "empty blank node label")
	}
	return AnonymousID{label: label}, nil
}

// DeriveID deterministically derives an identity from an external string identifier.
// Identifiers that already look like labels ("_:b0" or "b0") keep their label; anything
// unusable as a label is hashed into "genid-<hex>". DeriveID never fails.
func DeriveID(identifier string) AnonymousID {
	trimmed := strings.TrimPrefix(strings.TrimSpace(identifier), "_:")
	if isLabel(trimmed) {
		return AnonymousID{label: trimmed}
	}
	var buf [8]byte
	sum := xxhash.Sum64String(identifier)
	for i := range buf {
		buf[i] = byte(sum >> (56 - 8*i))
	}
	return AnonymousID{label: "genid-" + hex.EncodeToString(buf[:])}
}

// isLabel accepts the N-Triples BLANK_NODE_LABEL shape, restricted to ASCII
func isLabel(s string) bool {
	if s == "" || s[len(s)-1] == '.' {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		case i > 0 && (r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Label returns the bare label, without the "_:" prefix
func (id AnonymousID) Label() string { return id.label }

// IsZero reports whether the identity was never initialized
func (id AnonymousID) IsZero() bool { return id.label == "" }

// String renders the identity as a blank node, "_:label"
func (id AnonymousID) String() string { return "_:" + id.label }

// Hash returns a stable hash of the identity, consistent with equality
func (id AnonymousID) Hash() uint64 { return xxhash.Sum64String(id.label) }

// Term returns the blank node term for this identity
func (id AnonymousID) Term() graph.Term { return graph.Blank(id.label) }

// BlankLabel implements NodeRef
func (id AnonymousID) BlankLabel() (string, bool) { return id.label, id.label != "" }

// MarshalText persists only the label
func (id AnonymousID) MarshalText() ([]byte, error) {
	return []byte(id.label), nil
}

// UnmarshalText rebuilds the identity through ParseID
func (id *AnonymousID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NodeRef is implemented by any value able to prove which blank node it denotes.
// graph.Term, AnonymousID and AnonymousIndividual implement it.
type NodeRef interface {
	BlankLabel() (string, bool)
}

// labelOf extracts the blank label from every representation that carries one natively
func labelOf(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case AnonymousIndividual:
		return v.id.BlankLabel()
	case *AnonymousIndividual:
		if v == nil {
			return "", false
		}
		return v.id.BlankLabel()
	case quad.BNode:
		return strings.TrimPrefix(string(v), "_:"), v != ""
	case NodeRef:
		if isNilPointer(v) {
			return "", false
		}
		return v.BlankLabel()
	default:
		return "", false
	}
}

// isNilPointer catches typed nil pointers whose value methods would dereference nil
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
