package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/correlator-io/curies"
	"github.com/correlator-io/curies/format"
)

func TestParseExtendedPrefixMap_SynonymsRoundTrip(t *testing.T) {
	data := []byte(`[
		{
			"prefix": "DOID",
			"prefix_synonyms": ["doid"],
			"uri_prefix": "http://purl.obolibrary.org/obo/DOID_",
			"uri_prefix_synonyms": ["http://bioregistry.io/DOID:"]
		}
	]`)

	records, err := format.ParseExtendedPrefixMap(data)
	require.NoError(t, err)
	require.Len(t, records, 1)

	conv := curies.NewConverter()
	require.NoError(t, format.LoadInto(conv, records))

	got, err := conv.Compress("http://bioregistry.io/DOID:1234")
	require.NoError(t, err)
	assert.Equal(t, "DOID:1234", got)

	got, err = conv.Expand("doid:1234")
	require.NoError(t, err)
	assert.Equal(t, "http://purl.obolibrary.org/obo/DOID_1234", got)
}

func TestParseExtendedPrefixMap_UnknownFieldsIgnored(t *testing.T) {
	data := []byte(`[{"prefix": "DOID", "uri_prefix": "http://a/", "extra": "ignored"}]`)

	records, err := format.ParseExtendedPrefixMap(data)
	require.NoError(t, err)
	assert.Equal(t, "DOID", records[0].Prefix)
}

func TestParseExtendedPrefixMap_MissingRequiredFields(t *testing.T) {
	_, err := format.ParseExtendedPrefixMap([]byte(`[{"uri_prefix": "http://a/"}]`))
	assert.ErrorIs(t, err, format.ErrParse)

	_, err = format.ParseExtendedPrefixMap([]byte(`[{"prefix": "DOID"}]`))
	assert.ErrorIs(t, err, format.ErrParse)
}

func TestParseExtendedPrefixMap_InvalidPattern(t *testing.T) {
	data := []byte(`[{"prefix": "DOID", "uri_prefix": "http://a/", "pattern": "("}]`)

	_, err := format.ParseExtendedPrefixMap(data)
	assert.ErrorIs(t, err, format.ErrParse)
}

func TestParseExtendedPrefixMap_DuplicatesDeferredToConverter(t *testing.T) {
	data := []byte(`[
		{"prefix": "DOID", "uri_prefix": "http://a/"},
		{"prefix": "DOID", "uri_prefix": "http://b/"}
	]`)

	records, err := format.ParseExtendedPrefixMap(data)
	require.NoError(t, err)

	conv := curies.NewConverter()
	err = format.LoadInto(conv, records)
	assert.ErrorIs(t, err, curies.ErrDuplicatePrefix)

	conv = curies.NewConverter()
	require.NoError(t, format.LoadInto(conv, records, curies.WithMerge()))
	assert.Len(t, conv.Records(), 1)
}

func TestWriteExtendedPrefixMap_RoundTripsSynonymsAndPattern(t *testing.T) {
	records, err := format.ParseExtendedPrefixMap([]byte(`[
		{
			"prefix": "DOID",
			"prefix_synonyms": ["doid", "aoid"],
			"uri_prefix": "http://purl.obolibrary.org/obo/DOID_",
			"uri_prefix_synonyms": ["http://bioregistry.io/DOID:"],
			"pattern": "^[0-9]+$"
		}
	]`))
	require.NoError(t, err)

	out, err := format.WriteExtendedPrefixMap(records)
	require.NoError(t, err)

	roundTripped, err := format.ParseExtendedPrefixMap(out)
	require.NoError(t, err)
	require.Len(t, roundTripped, 1)

	assert.Equal(t, []string{"aoid", "doid"}, roundTripped[0].PrefixSynonyms)
	assert.Equal(t, "^[0-9]+$", roundTripped[0].Pattern.String())
}
