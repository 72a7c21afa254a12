// Package model defines the data structures used by the migration backend,
// including catalog mappings, legacy deployment types, target detection rules
// and auto-update tracking records.
package model

import "errors"

// ErrNotFound is returned by record stores when a requested document does not exist.
var ErrNotFound = errors.New("record not found")

// MatchStatus classifies how well an observed application name matched the catalog.
type MatchStatus string

const (
	// MatchStatusMatched means a candidate scored at or above the match threshold.
	MatchStatusMatched MatchStatus = "matched"
	// MatchStatusPartial means at least one candidate survived the floor but none reached the threshold.
	MatchStatusPartial MatchStatus = "partial"
	// MatchStatusUnmatched means no candidate survived the floor.
	MatchStatusUnmatched MatchStatus = "unmatched"
	// MatchStatusPending is used by callers for apps that have not been matched yet.
	MatchStatusPending MatchStatus = "pending"
)

// MatchedBy records which strategy produced a legacy application match.
type MatchedBy string

const (
	MatchedByAuto        MatchedBy = "auto"
	MatchedByMapping     MatchedBy = "mapping"
	MatchedByProductCode MatchedBy = "product_code"
	MatchedByCurated     MatchedBy = "curated"
)

// CandidateMapping is one entry of the canonical package catalog.
// The first alias is the canonical display name. Ordinal is the entry's
// position in the catalog document, which stored catalogs are read back in.
type CandidateMapping struct {
	Key       string   `json:"_key,omitempty" yaml:"-"`
	WingetID  string   `json:"winget_id" yaml:"winget_id"`
	Aliases   []string `json:"aliases" yaml:"aliases"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Ordinal   int      `json:"ordinal" yaml:"-"`
	ObjType   string   `json:"objtype,omitempty" yaml:"-"`
}

// NewCandidateMapping creates a catalog entry with default values
func NewCandidateMapping(wingetID string, aliases ...string) *CandidateMapping {
	return &CandidateMapping{
		WingetID: wingetID,
		Aliases:  aliases,
		ObjType:  "CandidateMapping",
	}
}

// DisplayName returns the canonical display name of the candidate.
func (c CandidateMapping) DisplayName() string {
	if len(c.Aliases) > 0 {
		return c.Aliases[0]
	}
	return c.WingetID
}

// PartialMatch is a runner-up candidate reported alongside a MatchResult.
type PartialMatch struct {
	WingetID   string  `json:"winget_id"`
	Name       string  `json:"name"`
	Publisher  string  `json:"publisher"`
	Version    *string `json:"version"`
	Confidence float64 `json:"confidence"`
	Purl       string  `json:"purl,omitempty"`
}

// MatchResult is the classification of one observed application name.
type MatchResult struct {
	Status       MatchStatus    `json:"status"`
	WingetID     *string        `json:"winget_id"`
	WingetName   *string        `json:"winget_name"`
	Confidence   float64        `json:"confidence"`
	Alternatives []PartialMatch `json:"alternatives"`
}

// UnmatchedResult returns the canonical unmatched result.
func UnmatchedResult() MatchResult {
	return MatchResult{
		Status:       MatchStatusUnmatched,
		Confidence:   0,
		Alternatives: []PartialMatch{},
	}
}

// SccmMatchResult extends MatchResult with the strategy that produced it.
type SccmMatchResult struct {
	MatchResult
	MatchedBy *MatchedBy `json:"matched_by"`
	MappingID string     `json:"mapping_id,omitempty"`
}

// SccmWingetMapping is a custom, optionally tenant-scoped mapping from a legacy
// application to a WinGet package.
type SccmWingetMapping struct {
	Key                       string  `json:"_key,omitempty"`
	SccmDisplayNameNormalized string  `json:"sccm_display_name_normalized"`
	SccmProductCode           string  `json:"sccm_product_code,omitempty"`
	SccmCiID                  string  `json:"sccm_ci_id,omitempty"`
	WingetPackageID           string  `json:"winget_package_id"`
	WingetPackageName         string  `json:"winget_package_name,omitempty"`
	Confidence                float64 `json:"confidence"`
	IsVerified                bool    `json:"is_verified"`
	TenantID                  string  `json:"tenant_id,omitempty"`
	ObjType                   string  `json:"objtype,omitempty"`
}

// DiscoveredApp is an application observed on managed devices.
type DiscoveredApp struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Publisher   string `json:"publisher,omitempty"`
	Version     string `json:"version,omitempty"`
	DeviceCount int    `json:"device_count"`
}

// MatchStats summarises a set of match results.
type MatchStats struct {
	Total     int     `json:"total"`
	Matched   int     `json:"matched"`
	Partial   int     `json:"partial"`
	Unmatched int     `json:"unmatched"`
	MatchRate float64 `json:"match_rate"`
}
