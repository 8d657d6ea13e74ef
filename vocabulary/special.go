package vocabulary

import (
	"fmt"

	"github.com/c360/ontograph/errors"
)

// SpecialKind is the restriction kind implied by a datatype that the structural
// signature leaves out.
type SpecialKind int

const (
	// SpecialNone means no special mapping applies; use normal typed-restriction detection.
	SpecialNone SpecialKind = iota
	// SpecialHasSelf marks a has-self restriction (xsd:boolean).
	SpecialHasSelf
	// SpecialCardinality marks a generic cardinality restriction (xsd:nonNegativeInteger).
	SpecialCardinality
)

// String returns the string representation of the kind
func (k SpecialKind) String() string {
	switch k {
	case SpecialHasSelf:
		return "has-self"
	case SpecialCardinality:
		return "cardinality-restriction"
	default:
		return "none"
	}
}

// SpecialDatatypeOf returns the restriction kind a builtin datatype stands for when it
// appears on a restriction node. xsd:boolean and xsd:nonNegativeInteger are excluded from
// the structural signature but still decide has-self and cardinality restrictions.
// Every other input, including empty or malformed strings, yields SpecialNone.
func SpecialDatatypeOf(iri string) SpecialKind {
	switch iri {
	case XsdBoolean:
		return SpecialHasSelf
	case XsdNonNegativeInteger:
		return SpecialCardinality
	default:
		return SpecialNone
	}
}

// ErrorNamespace holds the diagnostic resources substituted for broken graph fragments.
const ErrorNamespace = "urn:ontograph:error#"

// ErrorMarker names the n-th diagnostic error resource, e.g. "urn:ontograph:error#Error3".
// A negative n fails with ErrInvalidArgument.
func ErrorMarker(n int) (string, error) {
	if n < 0 {
		return "", errors.InvalidArgument("vocabulary", "ErrorMarker", "negative error marker suffix %d", n)
	}
	return fmt.Sprintf("%sError%d", ErrorNamespace, n), nil
}
