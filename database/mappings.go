package database

import (
	"context"
	"fmt"

	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
	"github.com/arangodb/go-driver/v2/arangodb"
)

// MappingRepo serves custom legacy-to-WinGet mappings
type MappingRepo struct {
	db arangodb.Database
}

// NewMappingRepo creates a mapping repository on an initialized connection
func NewMappingRepo(conn DBConnection) *MappingRepo {
	return &MappingRepo{db: conn.Database}
}

var _ matching.MappingSource = (*MappingRepo)(nil)

// FindSccmMapping returns the best mapping matching any of the non-empty keys,
// preferring verified mappings. A missing mapping is returned as nil.
func (r *MappingRepo) FindSccmMapping(ctx context.Context, normalizedName, productCode, ciID string) (*model.SccmWingetMapping, error) {
	if normalizedName == "" && productCode == "" && ciID == "" {
		return nil, nil
	}

	query := `
		FOR m IN sccm_mapping
			FILTER (@name != "" AND m.sccm_display_name_normalized == @name)
			    OR (@code != "" AND m.sccm_product_code == @code)
			    OR (@ci != "" AND m.sccm_ci_id == @ci)
			SORT m.is_verified DESC, m.confidence DESC
			LIMIT 1
			RETURN m
	`
	bindVars := map[string]interface{}{
		"name": normalizedName,
		"code": productCode,
		"ci":   ciID,
	}

	mapping, err := readOne[model.SccmWingetMapping](ctx, r.db, query, bindVars)
	if err != nil {
		return nil, fmt.Errorf("failed to find sccm mapping: %w", err)
	}
	return mapping, nil
}

// SaveSccmMapping creates or replaces a mapping. The key is derived from the
// tenant and the CI id or display name when not set.
func (r *MappingRepo) SaveSccmMapping(ctx context.Context, mapping model.SccmWingetMapping) (string, error) {
	if mapping.Key == "" {
		source := util.GetStringOrDefault(mapping.SccmCiID, mapping.SccmDisplayNameNormalized)
		mapping.Key = util.SanitizeKey(util.GetStringOrDefault(mapping.TenantID, "global") + "-" + source)
	}
	mapping.ObjType = "SccmWingetMapping"

	query := `
		UPSERT { _key: @doc._key }
		INSERT @doc
		REPLACE @doc
		IN sccm_mapping
		RETURN NEW._key
	`
	if _, err := exec(ctx, r.db, query, map[string]interface{}{"doc": mapping}); err != nil {
		return "", fmt.Errorf("failed to save sccm mapping: %w", err)
	}
	return mapping.Key, nil
}
