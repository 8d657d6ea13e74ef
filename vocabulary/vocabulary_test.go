package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ontograph/errors"
)

func TestSpecialDatatypeOf(t *testing.T) {
	tests := []struct {
		name     string
		iri      string
		expected SpecialKind
	}{
		{"boolean is has-self", XsdBoolean, SpecialHasSelf},
		{"non-negative integer is cardinality", XsdNonNegativeInteger, SpecialCardinality},
		{"string has no mapping", XsdString, SpecialNone},
		{"integer has no mapping", XsdInteger, SpecialNone},
		{"empty input", "", SpecialNone},
		{"malformed input", "::not an iri::", SpecialNone},
		{"negative looking input", "-1", SpecialNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SpecialDatatypeOf(tt.iri))
		})
	}
}

func TestSpecialKind_String(t *testing.T) {
	assert.Equal(t, "has-self", SpecialHasSelf.String())
	assert.Equal(t, "cardinality-restriction", SpecialCardinality.String())
	assert.Equal(t, "none", SpecialNone.String())
}

func TestErrorMarker(t *testing.T) {
	iri, err := ErrorMarker(0)
	require.NoError(t, err)
	assert.Equal(t, "urn:ontograph:error#Error0", iri)

	iri, err = ErrorMarker(42)
	require.NoError(t, err)
	assert.Equal(t, "urn:ontograph:error#Error42", iri)

	_, err = ErrorMarker(-1)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, errors.ErrorInvalid, errors.Classify(err))
}

func TestStandardTermsExpanded(t *testing.T) {
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", RdfType)
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#subClassOf", RdfsSubClassOf)
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#Literal", RdfsLiteral)
}

func TestCardinalityPredicates(t *testing.T) {
	assert.Equal(t, []string{OwlCardinality, OwlMaxCardinality, OwlMinCardinality}, CardinalityPredicates())
	assert.Len(t, QualifiedCardinalityPredicates(), 3)
}
