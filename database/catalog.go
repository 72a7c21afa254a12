package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
	"github.com/arangodb/go-driver/v2/arangodb"
)

// CatalogRepo serves the canonical package catalog from the catalog collection.
type CatalogRepo struct {
	db arangodb.Database
}

// NewCatalogRepo creates a catalog repository on an initialized connection
func NewCatalogRepo(conn DBConnection) *CatalogRepo {
	return &CatalogRepo{db: conn.Database}
}

var _ matching.CatalogSource = (*CatalogRepo)(nil)

// All returns the whole catalog in document order
func (r *CatalogRepo) All(ctx context.Context) ([]model.CandidateMapping, error) {
	query := `
		FOR c IN catalog
			SORT c.ordinal, c._key
			RETURN c
	`
	entries, err := readAll[model.CandidateMapping](ctx, r.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return entries, nil
}

// Search returns entries whose id contains the query, or with an alias that
// contains or is contained in the query
func (r *CatalogRepo) Search(ctx context.Context, q string) ([]model.CandidateMapping, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []model.CandidateMapping{}, nil
	}

	query := `
		FOR c IN catalog
			LET aliasHits = (
				FOR a IN c.aliases
					FILTER CONTAINS(LOWER(a), @q) OR CONTAINS(@q, LOWER(a))
					LIMIT 1
					RETURN 1
			)
			FILTER CONTAINS(LOWER(c.winget_id), @q) OR LENGTH(aliasHits) > 0
			SORT c.ordinal, c._key
			RETURN c
	`
	entries, err := readAll[model.CandidateMapping](ctx, r.db, query, map[string]interface{}{"q": q})
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return entries, nil
}

// ImportCatalog loads a YAML catalog document into the catalog collection.
// The import is skipped when the same document was already imported from
// source. It reports whether anything was written.
func (r *CatalogRepo) ImportCatalog(ctx context.Context, source string, data []byte) (bool, error) {
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	last, err := util.GetLastCatalogImport(ctx, r.db, source)
	if err != nil {
		return false, err
	}
	if last != nil && last.Checksum == checksum {
		logger.Sugar().Infof("Catalog %s unchanged since %s, skipping import", source, last.ImportedAt)
		return false, nil
	}

	entries, err := matching.ParseCatalog(data)
	if err != nil {
		return false, err
	}

	query := `
		FOR e IN @entries
			UPSERT { _key: e._key }
			INSERT e
			REPLACE e
			IN catalog
			RETURN NEW._key
	`
	n, err := exec(ctx, r.db, query, map[string]interface{}{"entries": entries})
	if err != nil {
		return false, fmt.Errorf("failed to import catalog: %w", err)
	}

	if err := util.SaveCatalogImport(ctx, r.db, source, checksum, n); err != nil {
		return false, fmt.Errorf("failed to record catalog import: %w", err)
	}

	logger.Sugar().Infof("Imported %d catalog entries from %s", n, source)
	return true, nil
}
