// Package matching - legacy (SCCM) application matching
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
	"go.uber.org/zap"
)

// defaultPriority is used for deployment types that do not declare a priority.
const defaultPriority = 999

var unsupportedTechnologies = []model.DeploymentTechnology{
	model.TechnologyAppV,
	model.TechnologyMacOS,
}

// enterpriseNameNormalizations maps a canonical product name to the display
// name variants enterprises use for it. Each group is checked against the
// result of the groups before it.
var enterpriseNameNormalizations = []struct {
	canonical  string
	variations []string
}{
	{"Microsoft 365", []string{
		"Microsoft 365 Apps for enterprise",
		"Microsoft 365 Apps for business",
		"Office 365 ProPlus",
		"Office 365 Business",
		"Microsoft Office 365",
	}},
	{"Adobe Creative Cloud", []string{
		"Adobe Creative Cloud All Apps",
		"Adobe CC",
		"Creative Cloud Desktop",
	}},
	{"Cisco AnyConnect", []string{
		"Cisco AnyConnect Secure Mobility Client",
		"Cisco Secure Client",
		"AnyConnect VPN",
	}},
}

// ProgressFunc is called while a batch of legacy applications is matched.
type ProgressFunc func(processed, total int, current string)

// Matcher runs the matching strategies against injected sources.
type Matcher struct {
	catalog  CatalogSource
	mappings MappingSource
	logger   *zap.Logger
}

// NewMatcher creates a Matcher. mappings may be nil when no custom legacy
// mappings exist; a nil logger discards output.
func NewMatcher(catalog CatalogSource, mappings MappingSource, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{catalog: catalog, mappings: mappings, logger: logger}
}

// Match classifies one observed name against the full catalog.
func (m *Matcher) Match(ctx context.Context, name, publisher string) (model.MatchResult, error) {
	catalog, err := m.catalog.All(ctx)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	return Match(name, publisher, catalog), nil
}

// NormalizeSccmAppName applies the enterprise naming conventions before the
// standard name normalization.
func NormalizeSccmAppName(name string) string {
	normalized := name
	for _, group := range enterpriseNameNormalizations {
		for _, variation := range group.variations {
			if strings.Contains(strings.ToLower(normalized), strings.ToLower(variation)) {
				normalized = group.canonical
				break
			}
		}
	}
	return util.NormalizeAppName(normalized)
}

// ExtractProductCode returns the first MSI product code found in the
// detection clauses of any deployment type, or "" when there is none.
func ExtractProductCode(app model.SccmApplication) string {
	for _, dt := range app.DeploymentTypes {
		for _, clause := range dt.DetectionClauses {
			if clause.Type == model.ClauseTypeMSI && clause.ProductCode != "" {
				return clause.ProductCode
			}
		}
	}
	return ""
}

// IsSupportedTechnology reports whether a deployment technology can be
// migrated. Unknown technologies are treated as supported.
func IsSupportedTechnology(technology model.DeploymentTechnology) bool {
	for _, t := range unsupportedTechnologies {
		if t == technology {
			return false
		}
	}
	return true
}

// PrimaryDeploymentType returns the deployment type with the lowest priority.
// Types without a priority rank last; ties keep export order.
func PrimaryDeploymentType(app model.SccmApplication) *model.DeploymentType {
	var primary *model.DeploymentType
	best := 0
	for i := range app.DeploymentTypes {
		dt := &app.DeploymentTypes[i]
		priority := defaultPriority
		if dt.Priority != nil {
			priority = *dt.Priority
		}
		if primary == nil || priority < best {
			primary = dt
			best = priority
		}
	}
	return primary
}

// MatchSccmApp runs the legacy strategy chain for one application:
// unsupported technology, custom mapping, exact alias, catalog search and
// finally scoring of the whole catalog.
func (m *Matcher) MatchSccmApp(ctx context.Context, app model.SccmApplication, tenantID string) (model.SccmMatchResult, error) {
	if primary := PrimaryDeploymentType(app); primary != nil && !IsSupportedTechnology(primary.Technology) {
		return sccmResult(model.UnmatchedResult(), nil), nil
	}

	if tenantID != "" && m.mappings != nil {
		result, ok, err := m.checkSccmMapping(ctx, app, tenantID)
		if err != nil {
			return model.SccmMatchResult{}, err
		}
		if ok {
			return result, nil
		}
	}

	catalog, err := m.catalog.All(ctx)
	if err != nil {
		return model.SccmMatchResult{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	normalizedName := NormalizeSccmAppName(app.LocalizedDisplayName)
	normalizedPublisher := util.NormalizePublisher(app.Manufacturer)

	if result, ok := exactMatch(normalizedName, catalog); ok {
		return sccmResult(result, matchedBy(model.MatchedByAuto)), nil
	}

	// A failed search only skips the curated strategy.
	curated, err := m.catalog.Search(ctx, normalizedName)
	if err != nil {
		m.logger.Warn("Catalog search failed, scoring full catalog",
			zap.String("app", app.LocalizedDisplayName), zap.Error(err))
	} else if ranked := rankCandidates(normalizedName, normalizedPublisher, curated); len(ranked) > 0 {
		return sccmResult(classify(ranked), matchedBy(model.MatchedByCurated)), nil
	}

	result := classify(rankCandidates(normalizedName, normalizedPublisher, catalog))
	if result.Status == model.MatchStatusUnmatched {
		return sccmResult(result, nil), nil
	}
	return sccmResult(result, matchedBy(model.MatchedByAuto)), nil
}

// checkSccmMapping looks up a custom mapping by display name, product code or
// CI id. Mappings owned by another tenant are ignored.
func (m *Matcher) checkSccmMapping(ctx context.Context, app model.SccmApplication, tenantID string) (model.SccmMatchResult, bool, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(app.LocalizedDisplayName))
	productCode := ExtractProductCode(app)

	mapping, err := m.mappings.FindSccmMapping(ctx, normalizedName, productCode, app.CiID)
	if err != nil {
		return model.SccmMatchResult{}, false, fmt.Errorf("failed to look up sccm mapping: %w", err)
	}
	if mapping == nil {
		return model.SccmMatchResult{}, false, nil
	}
	if mapping.TenantID != "" && mapping.TenantID != tenantID {
		return model.SccmMatchResult{}, false, nil
	}

	id := mapping.WingetPackageID
	name := util.GetStringOrDefault(mapping.WingetPackageName, util.WingetShortName(id))

	by := model.MatchedByMapping
	if mapping.SccmProductCode != "" && productCode != "" {
		by = model.MatchedByProductCode
	}

	return model.SccmMatchResult{
		MatchResult: model.MatchResult{
			Status:       model.MatchStatusMatched,
			WingetID:     &id,
			WingetName:   &name,
			Confidence:   mapping.Confidence,
			Alternatives: []model.PartialMatch{},
		},
		MatchedBy: &by,
		MappingID: mapping.Key,
	}, true, nil
}

// MatchSccmApps matches a batch of legacy applications keyed by CI id.
// onProgress may be nil.
func (m *Matcher) MatchSccmApps(ctx context.Context, apps []model.SccmApplication, tenantID string, onProgress ProgressFunc) (map[string]model.SccmMatchResult, error) {
	results := make(map[string]model.SccmMatchResult, len(apps))

	for i, app := range apps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if onProgress != nil {
			onProgress(i, len(apps), app.LocalizedDisplayName)
		}

		result, err := m.MatchSccmApp(ctx, app, tenantID)
		if err != nil {
			return results, fmt.Errorf("failed to match %s: %w", app.CiID, err)
		}
		results[app.CiID] = result
	}

	if onProgress != nil {
		onProgress(len(apps), len(apps), "Complete")
	}
	return results, nil
}

func matchedBy(by model.MatchedBy) *model.MatchedBy {
	return &by
}

func sccmResult(result model.MatchResult, by *model.MatchedBy) model.SccmMatchResult {
	return model.SccmMatchResult{MatchResult: result, MatchedBy: by}
}
