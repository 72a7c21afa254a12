// Package model - API types for combining models in API requests/responses
package model

// MatchRequest asks for one observed application name to be matched.
type MatchRequest struct {
	Name      string `json:"name"`
	Publisher string `json:"publisher,omitempty"`
}

// BatchMatchRequest carries discovered applications to match in one call.
type BatchMatchRequest struct {
	Apps              []DiscoveredApp `json:"apps"`
	ExcludeSystemApps bool            `json:"exclude_system_apps,omitempty"`
}

// BatchMatchItem is one discovered application together with its match.
type BatchMatchItem struct {
	DiscoveredApp
	MatchResult MatchResult `json:"match_result"`
}

// BatchMatchResponse returns ordered match results for a batch.
type BatchMatchResponse struct {
	Items []BatchMatchItem `json:"items"`
	Stats MatchStats       `json:"stats"`
}

// SccmMatchRequest asks for legacy applications to be matched for a tenant.
type SccmMatchRequest struct {
	TenantID          string            `json:"tenant_id,omitempty"`
	Applications      []SccmApplication `json:"applications"`
	ExcludeSystemApps bool              `json:"exclude_system_apps,omitempty"`
}

// SccmMatchItem is one legacy application together with its match.
type SccmMatchItem struct {
	CiID            string          `json:"ci_id"`
	DisplayName     string          `json:"display_name"`
	IsDeployed      bool            `json:"is_deployed"`
	DeploymentCount int             `json:"deployment_count"`
	MatchResult     SccmMatchResult `json:"match_result"`
}

// SccmMatchResponse returns match results for legacy applications.
type SccmMatchResponse struct {
	Items []SccmMatchItem `json:"items"`
	Stats MatchStats      `json:"stats"`
}

// RequirementRulesRequest asks for existence-gating requirement rules.
type RequirementRulesRequest struct {
	DisplayName   string `json:"display_name"`
	InstallerType string `json:"installer_type"`
	ProductCode   string `json:"product_code,omitempty"`
}

// JobTerminalRequest reports that a packaging job reached a terminal outcome.
type JobTerminalRequest struct {
	Outcome      JobOutcome `json:"outcome"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// JobTerminalResponse returns the policy mutation applied, if any.
type JobTerminalResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Mutation *PolicyMutation `json:"mutation,omitempty"`
}

// ConvertResponse returns converted application settings with their validation.
type ConvertResponse struct {
	Result     AppConversionResult `json:"result"`
	Validation ValidationResult    `json:"validation"`
}

// ValidateRequest carries a finished detection rule list.
type ValidateRequest struct {
	DetectionRules []DetectionRule `json:"detectionRules"`
}

// RequirementRulesResponse returns generated requirement rules.
type RequirementRulesResponse struct {
	Rules []RequirementRule `json:"rules"`
}
