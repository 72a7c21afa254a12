// Package model - target cloud app-management (Intune Win32) rule and settings types
package model

// RuleType is the discriminator of a target detection rule.
type RuleType string

const (
	RuleTypeMSI      RuleType = "msi"
	RuleTypeFile     RuleType = "file"
	RuleTypeRegistry RuleType = "registry"
	RuleTypeScript   RuleType = "script"
)

// DetectionOperator is the target comparison vocabulary.
type DetectionOperator string

const (
	OperatorEqual              DetectionOperator = "equal"
	OperatorNotEqual           DetectionOperator = "notEqual"
	OperatorGreaterThan        DetectionOperator = "greaterThan"
	OperatorLessThan           DetectionOperator = "lessThan"
	OperatorGreaterThanOrEqual DetectionOperator = "greaterThanOrEqual"
	OperatorLessThanOrEqual    DetectionOperator = "lessThanOrEqual"
)

// DetectionType is the kind of check a file or registry rule performs.
type DetectionType string

const (
	DetectionExists       DetectionType = "exists"
	DetectionNotExists    DetectionType = "notExists"
	DetectionVersion      DetectionType = "version"
	DetectionDateModified DetectionType = "dateModified"
	DetectionDateCreated  DetectionType = "dateCreated"
	DetectionSizeInMB     DetectionType = "sizeInMB"
	DetectionString       DetectionType = "string"
	DetectionInteger      DetectionType = "integer"
)

// DetectionRule is one target detection rule. Type selects which of the
// remaining fields are meaningful; optional fields are omitted when unset.
type DetectionRule struct {
	Type RuleType `json:"type" yaml:"type"`

	// msi
	ProductCode            string             `json:"productCode,omitempty" yaml:"productCode,omitempty"`
	ProductVersionOperator *DetectionOperator `json:"productVersionOperator,omitempty" yaml:"productVersionOperator,omitempty"`
	ProductVersion         *string            `json:"productVersion,omitempty" yaml:"productVersion,omitempty"`

	// file
	Path             string `json:"path,omitempty" yaml:"path,omitempty"`
	FileOrFolderName string `json:"fileOrFolderName,omitempty" yaml:"fileOrFolderName,omitempty"`

	// registry
	KeyPath   string  `json:"keyPath,omitempty" yaml:"keyPath,omitempty"`
	ValueName *string `json:"valueName,omitempty" yaml:"valueName,omitempty"`

	// file and registry
	DetectionType        DetectionType      `json:"detectionType,omitempty" yaml:"detectionType,omitempty"`
	Check32BitOn64System *bool              `json:"check32BitOn64System,omitempty" yaml:"check32BitOn64System,omitempty"`
	Operator             *DetectionOperator `json:"operator,omitempty" yaml:"operator,omitempty"`
	DetectionValue       *string            `json:"detectionValue,omitempty" yaml:"detectionValue,omitempty"`

	// script
	ScriptContent         string `json:"scriptContent,omitempty" yaml:"scriptContent,omitempty"`
	EnforceSignatureCheck *bool  `json:"enforceSignatureCheck,omitempty" yaml:"enforceSignatureCheck,omitempty"`
	RunAs32Bit            *bool  `json:"runAs32Bit,omitempty" yaml:"runAs32Bit,omitempty"`
}

// InstallBehavior is the target install context.
type InstallBehavior string

const (
	InstallMachine InstallBehavior = "machine"
	InstallUser    InstallBehavior = "user"
)

// RebootBehavior is the target device restart policy.
type RebootBehavior string

const (
	RebootAllow             RebootBehavior = "allow"
	RebootSuppress          RebootBehavior = "suppress"
	RebootForce             RebootBehavior = "force"
	RebootBasedOnReturnCode RebootBehavior = "basedOnReturnCode"
)

// DeploymentSettings is the target-ready result of converting a legacy deployment type.
type DeploymentSettings struct {
	InstallCommand      *string         `json:"installCommand"`
	UninstallCommand    *string         `json:"uninstallCommand"`
	InstallBehavior     InstallBehavior `json:"installBehavior"`
	RebootBehavior      RebootBehavior  `json:"rebootBehavior"`
	DetectionRules      []DetectionRule `json:"detectionRules"`
	MaxRunTimeInMinutes int             `json:"maxRunTimeInMinutes"`
}

// ConversionResult pairs converted settings with the advisory warnings
// collected while converting.
type ConversionResult struct {
	Settings DeploymentSettings `json:"settings"`
	Warnings []string           `json:"warnings"`
}

// AppConversionResult is the application-level conversion result.
type AppConversionResult struct {
	DisplayName string  `json:"displayName"`
	Publisher   *string `json:"publisher"`
	Version     *string `json:"version"`
	DeploymentSettings
	Warnings []string `json:"warnings"`
}

// ValidationResult reports whether a finished rule list is deployment-ready.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// RequirementRule is a pre-install gating rule in the target format.
type RequirementRule struct {
	ODataType             string `json:"@odata.type"`
	RuleType              string `json:"ruleType"`
	KeyPath               string `json:"keyPath,omitempty"`
	DisplayName           string `json:"displayName,omitempty"`
	ScriptContent         string `json:"scriptContent,omitempty"`
	EnforceSignatureCheck *bool  `json:"enforceSignatureCheck,omitempty"`
	RunAs32Bit            *bool  `json:"runAs32Bit,omitempty"`
	RunAsAccount          string `json:"runAsAccount,omitempty"`
	Check32BitOn64System  *bool  `json:"check32BitOn64System,omitempty"`
	OperationType         string `json:"operationType"`
	Operator              string `json:"operator,omitempty"`
	ComparisonValue       string `json:"comparisonValue,omitempty"`
}
