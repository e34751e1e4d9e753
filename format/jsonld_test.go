package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/correlator-io/curies"
	"github.com/correlator-io/curies/format"
)

func TestParseJSONLD_StringBindings(t *testing.T) {
	data := []byte(`{
		"@context": {
			"DOID": "http://purl.obolibrary.org/obo/DOID_",
			"OBO": "http://purl.obolibrary.org/obo/"
		}
	}`)

	records, err := format.ParseJSONLD(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	conv := curies.NewConverter()
	require.NoError(t, format.LoadInto(conv, records))

	got, err := conv.Compress("http://purl.obolibrary.org/obo/DOID_1234")
	require.NoError(t, err)
	assert.Equal(t, "DOID:1234", got)
}

func TestParseJSONLD_ObjectBindingWithTrailingDelimiter(t *testing.T) {
	data := []byte(`{
		"@context": {
			"DOID": {"@id": "http://purl.obolibrary.org/obo/DOID_"}
		}
	}`)

	records, err := format.ParseJSONLD(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "http://purl.obolibrary.org/obo/DOID_", records[0].URIPrefix)
}

func TestParseJSONLD_ObjectBindingWithoutDelimiterSkipped(t *testing.T) {
	data := []byte(`{
		"@context": {
			"DOID": {"@id": "http://purl.obolibrary.org/obo/DOID"}
		}
	}`)

	records, err := format.ParseJSONLD(data)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseJSONLD_NonBindingShapesSkipped(t *testing.T) {
	data := []byte(`{
		"@context": {
			"@vocab": "http://example.org/",
			"label": {"@id": "http://www.w3.org/2000/01/rdf-schema#label", "@type": "@id"},
			"nested": {"@context": {"x": "http://example.org/x/"}}
		}
	}`)

	records, err := format.ParseJSONLD(data)
	require.NoError(t, err)

	// "@vocab" has a string value so it parses as a plain string binding;
	// "label" has an @id ending in "l", not a URI delimiter, so it is
	// skipped; "nested" has neither a string value nor an @id and is skipped.
	assert.Len(t, records, 1)
}

func TestParseJSONLD_MissingContextRejected(t *testing.T) {
	_, err := format.ParseJSONLD([]byte(`{"foo": "bar"}`))
	assert.ErrorIs(t, err, format.ErrParse)
}

func TestParseJSONLD_Malformed(t *testing.T) {
	_, err := format.ParseJSONLD([]byte(`not json`))
	assert.ErrorIs(t, err, format.ErrParse)
}

func TestWriteJSONLD_RoundTrips(t *testing.T) {
	records := []curies.Record{
		{Prefix: "DOID", URIPrefix: "http://purl.obolibrary.org/obo/DOID_"},
		{Prefix: "OBO", URIPrefix: "http://purl.obolibrary.org/obo/"},
	}

	out, err := format.WriteJSONLD(records)
	require.NoError(t, err)

	roundTripped, err := format.ParseJSONLD(out)
	require.NoError(t, err)
	assert.ElementsMatch(t, records, roundTripped)
}
