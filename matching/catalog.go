// Package matching - catalog sources
package matching

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CatalogSource returns the canonical catalog, either whole or as a filtered
// subset for a free-text query.
type CatalogSource interface {
	All(ctx context.Context) ([]model.CandidateMapping, error)
	Search(ctx context.Context, query string) ([]model.CandidateMapping, error)
}

// MappingSource looks up custom legacy-to-WinGet mappings. Any of the keys may
// be empty. A missing mapping is returned as nil without error.
type MappingSource interface {
	FindSccmMapping(ctx context.Context, normalizedName, productCode, ciID string) (*model.SccmWingetMapping, error)
}

type catalogFile struct {
	Packages []model.CandidateMapping `yaml:"packages"`
}

// ParseCatalog decodes a YAML catalog document. Entries without an id or
// without aliases are rejected.
func ParseCatalog(data []byte) ([]model.CandidateMapping, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	catalog := make([]model.CandidateMapping, 0, len(file.Packages))
	for i, entry := range file.Packages {
		if util.IsEmpty(entry.WingetID) {
			return nil, fmt.Errorf("catalog entry %d: winget_id is required", i+1)
		}
		if len(entry.Aliases) == 0 {
			return nil, fmt.Errorf("catalog entry %s: at least one alias is required", entry.WingetID)
		}
		entry.Key = util.SanitizeKey(entry.WingetID)
		entry.Ordinal = i
		entry.ObjType = "CandidateMapping"
		catalog = append(catalog, entry)
	}
	return catalog, nil
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) ([]model.CandidateMapping, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// DefaultCatalogDocument returns the YAML document bundled with the binary.
func DefaultCatalogDocument() []byte {
	return append([]byte(nil), defaultCatalogYAML...)
}

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() []model.CandidateMapping {
	catalog, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return catalog
}

// StaticCatalog is an in-memory CatalogSource.
type StaticCatalog struct {
	entries []model.CandidateMapping
}

// NewStaticCatalog wraps entries as a CatalogSource.
func NewStaticCatalog(entries []model.CandidateMapping) *StaticCatalog {
	return &StaticCatalog{entries: entries}
}

// All returns every catalog entry.
func (s *StaticCatalog) All(_ context.Context) ([]model.CandidateMapping, error) {
	return s.entries, nil
}

// Search returns the entries whose id contains query, or that have an alias
// containing or contained in query, case-insensitively.
func (s *StaticCatalog) Search(_ context.Context, query string) ([]model.CandidateMapping, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.CandidateMapping{}, nil
	}

	results := make([]model.CandidateMapping, 0)
	for _, entry := range s.entries {
		if strings.Contains(strings.ToLower(entry.WingetID), q) {
			results = append(results, entry)
			continue
		}
		for _, alias := range entry.Aliases {
			a := strings.ToLower(alias)
			if strings.Contains(a, q) || strings.Contains(q, a) {
				results = append(results, entry)
				break
			}
		}
	}
	return results, nil
}
