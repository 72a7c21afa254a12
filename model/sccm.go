// Package model - legacy endpoint-management (SCCM) application export types
package model

// ClauseType is the discriminator of a legacy detection clause.
type ClauseType string

const (
	ClauseTypeFile     ClauseType = "File"
	ClauseTypeRegistry ClauseType = "Registry"
	ClauseTypeMSI      ClauseType = "MSI"
	ClauseTypeScript   ClauseType = "Script"
)

// ScriptLanguage is the language a legacy detection script is written in.
type ScriptLanguage string

const (
	ScriptLanguagePowerShell ScriptLanguage = "PowerShell"
	ScriptLanguageVBScript   ScriptLanguage = "VBScript"
	ScriptLanguageJScript    ScriptLanguage = "JScript"
)

// DeploymentTechnology is the installer technology of a legacy deployment type.
type DeploymentTechnology string

const (
	// TechnologyMSI represents a Windows Installer package.
	TechnologyMSI DeploymentTechnology = "MSI"
	// TechnologyScript represents a script installer.
	TechnologyScript DeploymentTechnology = "Script"
	// TechnologyMSIX represents an MSIX/AppX package.
	TechnologyMSIX DeploymentTechnology = "MSIX"
	// TechnologyAppV represents an App-V virtualised package.
	TechnologyAppV DeploymentTechnology = "AppV"
	// TechnologyDeeplink represents a web or store link.
	TechnologyDeeplink DeploymentTechnology = "Deeplink"
	// TechnologyWinGetApp represents a WinGet application.
	TechnologyWinGetApp DeploymentTechnology = "WinGetApp"
	// TechnologyMacOS represents a macOS application.
	TechnologyMacOS DeploymentTechnology = "MacOS"
	// TechnologyUnknown is used when the export did not name a technology.
	TechnologyUnknown DeploymentTechnology = "Unknown"
)

// DetectionClause is one legacy detection clause. Type selects which of the
// remaining fields are meaningful.
type DetectionClause struct {
	Type ClauseType `json:"type" yaml:"type"`

	// File
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`

	// Registry
	Hive      string `json:"hive,omitempty" yaml:"hive,omitempty"`
	KeyPath   string `json:"keyPath,omitempty" yaml:"keyPath,omitempty"`
	ValueName string `json:"valueName,omitempty" yaml:"valueName,omitempty"`

	// MSI
	ProductCode string `json:"productCode,omitempty" yaml:"productCode,omitempty"`

	// Script
	ScriptLanguage ScriptLanguage `json:"scriptLanguage,omitempty" yaml:"scriptLanguage,omitempty"`
	ScriptContent  string         `json:"scriptContent,omitempty" yaml:"scriptContent,omitempty"`
	RunAs32Bit     *bool          `json:"runAs32Bit,omitempty" yaml:"runAs32Bit,omitempty"`

	// Shared by File, Registry and MSI
	Is64Bit            *bool  `json:"is64Bit,omitempty" yaml:"is64Bit,omitempty"`
	PropertyType       string `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	ExpressionOperator string `json:"expressionOperator,omitempty" yaml:"expressionOperator,omitempty"`
	ExpectedValue      string `json:"expectedValue,omitempty" yaml:"expectedValue,omitempty"`
	Value2             string `json:"value2,omitempty" yaml:"value2,omitempty"`

	SettingLogicalName string `json:"settingLogicalName,omitempty" yaml:"settingLogicalName,omitempty"`
	DataType           string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
}

// Requirement is a legacy requirement rule.
type Requirement struct {
	Type               string `json:"type" yaml:"type"`
	Operator           string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value              string `json:"value,omitempty" yaml:"value,omitempty"`
	ExpressionOperator string `json:"expressionOperator,omitempty" yaml:"expressionOperator,omitempty"`
	Value2             string `json:"value2,omitempty" yaml:"value2,omitempty"`
}

// ReturnCode is a legacy return code definition.
type ReturnCode struct {
	ReturnCode     int    `json:"returnCode" yaml:"returnCode"`
	Name           string `json:"name" yaml:"name"`
	RebootRequired bool   `json:"rebootRequired" yaml:"rebootRequired"`
	Success        bool   `json:"success" yaml:"success"`
}

// DeploymentType describes how a legacy application is installed and detected.
type DeploymentType struct {
	Name       string               `json:"name" yaml:"name"`
	Technology DeploymentTechnology `json:"technology" yaml:"technology"`
	Priority   *int                 `json:"priority,omitempty" yaml:"priority,omitempty"`

	InstallCommand   *string `json:"installCommand" yaml:"installCommand"`
	UninstallCommand *string `json:"uninstallCommand" yaml:"uninstallCommand"`
	RepairCommand    *string `json:"repairCommand,omitempty" yaml:"repairCommand,omitempty"`

	ContentLocation string `json:"contentLocation,omitempty" yaml:"contentLocation,omitempty"`

	DetectionClauses  []DetectionClause `json:"detectionClauses" yaml:"detectionClauses"`
	RequirementsRules []Requirement     `json:"requirementsRules,omitempty" yaml:"requirementsRules,omitempty"`

	InstallBehavior        string `json:"installBehavior" yaml:"installBehavior"`
	LogonRequirement       string `json:"logonRequirement,omitempty" yaml:"logonRequirement,omitempty"`
	RequireUserInteraction bool   `json:"requireUserInteraction,omitempty" yaml:"requireUserInteraction,omitempty"`
	MaxExecuteTime         int    `json:"maxExecuteTime,omitempty" yaml:"maxExecuteTime,omitempty"`
	EstimatedExecuteTime   int    `json:"estimatedExecuteTime,omitempty" yaml:"estimatedExecuteTime,omitempty"`

	RebootBehavior string       `json:"rebootBehavior" yaml:"rebootBehavior"`
	ReturnCodes    []ReturnCode `json:"returnCodes,omitempty" yaml:"returnCodes,omitempty"`
}

// SccmApplication is a legacy application with its deployment types.
type SccmApplication struct {
	CiID                 string           `json:"ci_id" yaml:"ci_id"`
	LocalizedDisplayName string           `json:"localizedDisplayName" yaml:"localizedDisplayName"`
	LocalizedDescription string           `json:"localizedDescription,omitempty" yaml:"localizedDescription,omitempty"`
	Manufacturer         string           `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	SoftwareVersion      string           `json:"softwareVersion,omitempty" yaml:"softwareVersion,omitempty"`
	DeploymentTypes      []DeploymentType `json:"deploymentTypes" yaml:"deploymentTypes"`
	AdminCategories      []string         `json:"adminCategories,omitempty" yaml:"adminCategories,omitempty"`
	IsDeployed           bool             `json:"isDeployed" yaml:"isDeployed"`
	DeploymentCount      int              `json:"deploymentCount,omitempty" yaml:"deploymentCount,omitempty"`
}
