package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOBOConverter_OfflineUsesEmbeddedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineOnly = true

	conv, err := GetOBOConverter(context.Background(), cfg)
	require.NoError(t, err)

	got, err := conv.Expand("DOID:1234")
	require.NoError(t, err)
	assert.Equal(t, "http://purl.obolibrary.org/obo/DOID_1234", got)
}

func TestGetGOConverter_OfflineUsesEmbeddedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineOnly = true

	conv, err := GetGOConverter(context.Background(), cfg)
	require.NoError(t, err)

	got, err := conv.Compress("http://purl.obolibrary.org/obo/GO_0008150")
	require.NoError(t, err)
	assert.Equal(t, "GO:0008150", got)
}

func TestGetMonarchConverter_OfflineUsesEmbeddedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineOnly = true

	conv, err := GetMonarchConverter(context.Background(), cfg)
	require.NoError(t, err)

	got, err := conv.Expand("MONDO:0005148")
	require.NoError(t, err)
	assert.Equal(t, "http://purl.obolibrary.org/obo/MONDO_0005148", got)
}

func TestGetBioregistryConverter_OfflineUsesEmbeddedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineOnly = true

	conv, err := GetBioregistryConverter(context.Background(), cfg)
	require.NoError(t, err)

	got, err := conv.Expand("doid:1234")
	require.NoError(t, err)
	assert.Equal(t, "https://bioregistry.io/DOID:1234", got)
}

func TestBuildConverter_NilConfigDefaultsToOnline(t *testing.T) {
	// With a nil config and no network in the test sandbox, the fetch will
	// fail and buildConverter must fall back to the embedded seed rather
	// than returning an error.
	conv, err := GetOBOConverter(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, conv.Records())
}
