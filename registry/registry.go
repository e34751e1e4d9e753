package registry

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/correlator-io/curies"
	"github.com/correlator-io/curies/format"
)

//go:embed seeds/*.json
var seeds embed.FS

// wellKnownSource describes one canned converter: the authoritative URL to
// load from (an extended prefix map) and the embedded seed used when the
// fetch is skipped (Config.OfflineOnly) or fails.
type wellKnownSource struct {
	name     string
	url      string
	seedPath string
}

var (
	oboSource = wellKnownSource{
		name:     "obo",
		url:      "https://raw.githubusercontent.com/biopragmatics/bioregistry/main/exports/contexts/obo.epm.json",
		seedPath: "seeds/obo.json",
	}
	goSource = wellKnownSource{
		name:     "go",
		url:      "https://raw.githubusercontent.com/geneontology/go-site/master/metadata/go-context.epm.json",
		seedPath: "seeds/go.json",
	}
	monarchSource = wellKnownSource{
		name:     "monarch",
		url:      "https://raw.githubusercontent.com/monarch-initiative/monarch-ingest/main/monarch.epm.json",
		seedPath: "seeds/monarch.json",
	}
	bioregistrySource = wellKnownSource{
		name:     "bioregistry",
		url:      "https://bioregistry.io/api/context.epm.json",
		seedPath: "seeds/bioregistry.json",
	}
)

// GetOBOConverter returns a Converter built from the OBO Foundry's
// published extended prefix map, falling back to an embedded seed when the
// registry is offline-only or the fetch fails.
func GetOBOConverter(ctx context.Context, cfg *Config) (*curies.Converter, error) {
	return buildConverter(ctx, cfg, oboSource)
}

// GetGOConverter returns a Converter built from the Gene Ontology's
// published extended prefix map.
func GetGOConverter(ctx context.Context, cfg *Config) (*curies.Converter, error) {
	return buildConverter(ctx, cfg, goSource)
}

// GetMonarchConverter returns a Converter built from the Monarch
// Initiative's published extended prefix map.
func GetMonarchConverter(ctx context.Context, cfg *Config) (*curies.Converter, error) {
	return buildConverter(ctx, cfg, monarchSource)
}

// GetBioregistryConverter returns a Converter built from Bioregistry's own
// extended prefix map, the closest thing to a union of the above.
func GetBioregistryConverter(ctx context.Context, cfg *Config) (*curies.Converter, error) {
	return buildConverter(ctx, cfg, bioregistrySource)
}

func buildConverter(ctx context.Context, cfg *Config, source wellKnownSource) (*curies.Converter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	requestID := uuid.New().String()
	logger := slog.With(slog.String("request_id", requestID), slog.String("source", source.name))

	if cfg.OfflineOnly {
		logger.Debug("registry offline_only set, loading embedded seed")

		return loadSeed(source)
	}

	fetcher := newCachingFetcher(newHTTPFetcher(cfg.RequestTimeout, cfg.RequestsPerSecond), cfg.CacheTTL)

	logger.Debug("fetching well-known prefix map", slog.String("url", source.url), slog.String("cache_key", cacheKeyHex(source.url)))

	records, err := format.LoadExtendedPrefixMapFromURL(ctx, fetcher, source.url)
	if err != nil {
		logger.Warn("fetch failed, falling back to embedded seed", slog.String("error", err.Error()))

		return loadSeed(source)
	}

	conv := curies.NewConverter()
	if err := format.LoadInto(conv, records); err != nil {
		return nil, fmt.Errorf("registry: building %s converter: %w", source.name, err)
	}

	return conv, nil
}

func loadSeed(source wellKnownSource) (*curies.Converter, error) {
	data, err := seeds.ReadFile(source.seedPath)
	if err != nil {
		return nil, fmt.Errorf("registry: reading embedded seed %s: %w", source.seedPath, err)
	}

	records, err := format.ParseExtendedPrefixMap(data)
	if err != nil {
		return nil, fmt.Errorf("registry: parsing embedded seed %s: %w", source.seedPath, err)
	}

	conv := curies.NewConverter()
	if err := format.LoadInto(conv, records); err != nil {
		return nil, fmt.Errorf("registry: building %s converter from seed: %w", source.name, err)
	}

	return conv, nil
}
