// Package util provides utility functions for the backend.
//
//revive:disable-next-line:var-naming
package util

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
)

// SanitizeKey ensures the database key is valid for ArangoDB
// ArangoDB keys cannot contain spaces, slashes, or brackets
func SanitizeKey(key string) string {
	key = strings.TrimSpace(key)

	replacer := strings.NewReplacer(
		" ", "-",
		"/", "-",
		"\\", "-",
		"[", "",
		"]", "",
		"(", "",
		")", "",
		"{", "",
		"}", "",
	)

	return replacer.Replace(key)
}

// CatalogImport records the last catalog file loaded into the catalog collection
type CatalogImport struct {
	Key        string `json:"_key"`        // e.g., "catalog.yaml"
	Checksum   string `json:"checksum"`    // sha256 of the imported file
	ImportedAt string `json:"imported_at"` // RFC3339 Timestamp
	Entries    int    `json:"entries"`
	Type       string `json:"type"` // "catalog_import"
}

// GetLastCatalogImport retrieves the last import record for a catalog source.
// A missing record is returned as nil without error.
func GetLastCatalogImport(ctx context.Context, db arangodb.Database, source string) (*CatalogImport, error) {
	key := SanitizeKey(source)
	if key == "" {
		return nil, nil
	}

	query := `RETURN DOCUMENT("metadata", @key)`
	bindVars := map[string]interface{}{"key": key}

	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog import metadata: %w", err)
	}
	defer cursor.Close()

	var meta *CatalogImport
	if _, err := cursor.ReadDocument(ctx, &meta); err != nil {
		return nil, nil
	}
	return meta, nil
}

// SaveCatalogImport updates the import record after a successful catalog load
func SaveCatalogImport(ctx context.Context, db arangodb.Database, source, checksum string, entries int) error {
	key := SanitizeKey(source)

	if key == "" {
		return fmt.Errorf("cannot save catalog import for empty source key (original: %s)", source)
	}

	query := `
		UPSERT { _key: @key }
		INSERT { _key: @key, checksum: @checksum, imported_at: @time, entries: @entries, type: "catalog_import" }
		UPDATE { checksum: @checksum, imported_at: @time, entries: @entries }
		IN metadata
	`

	bindVars := map[string]interface{}{
		"key":      key,
		"checksum": checksum,
		"time":     time.Now().UTC().Format(time.RFC3339),
		"entries":  entries,
	}

	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return err
	}
	return cursor.Close()
}
