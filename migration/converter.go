package migration

import (
	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
)

const defaultMaxRunTimeInMinutes = 60

// Conversion warnings
const (
	WarnAppV              = "App-V packages are not supported in Intune. Consider repackaging as Win32."
	WarnMacOS             = "macOS applications cannot be deployed as Win32 apps in Intune."
	WarnRulesNotConverted = "Some detection rules could not be converted. Manual review recommended."
	WarnNonPowerShell     = "VBScript/JScript detection scripts must be converted to PowerShell manually."
	WarnNoDeploymentType  = "No deployment type found in SCCM application"
)

// MapInstallBehavior maps the legacy install context. Only per-user installs
// map to user; system and hybrid contexts install for the machine.
func MapInstallBehavior(behavior string) model.InstallBehavior {
	if behavior == "InstallForUser" {
		return model.InstallUser
	}
	return model.InstallMachine
}

// MapRebootBehavior maps the legacy restart policy.
func MapRebootBehavior(behavior string) model.RebootBehavior {
	switch behavior {
	case "NoAction":
		return model.RebootSuppress
	case "ProgramReboot":
		return model.RebootAllow
	case "ForceReboot":
		return model.RebootForce
	}
	return model.RebootBasedOnReturnCode
}

// ConvertDeploymentType converts a legacy deployment type into target
// settings. It never fails; anything that needs a human is reported as a
// warning.
func ConvertDeploymentType(dt model.DeploymentType) model.ConversionResult {
	warnings := []string{}

	switch dt.Technology {
	case model.TechnologyAppV:
		warnings = append(warnings, WarnAppV)
	case model.TechnologyMacOS:
		warnings = append(warnings, WarnMacOS)
	}

	rules := ConvertDetectionRules(dt.DetectionClauses)
	if len(rules) == 0 && len(dt.DetectionClauses) > 0 {
		warnings = append(warnings, WarnRulesNotConverted)
	}

	for _, clause := range dt.DetectionClauses {
		if clause.Type == model.ClauseTypeScript && clause.ScriptLanguage != model.ScriptLanguagePowerShell {
			warnings = append(warnings, WarnNonPowerShell)
			break
		}
	}

	maxRunTime := dt.MaxExecuteTime
	if maxRunTime <= 0 {
		maxRunTime = defaultMaxRunTimeInMinutes
	}

	return model.ConversionResult{
		Settings: model.DeploymentSettings{
			InstallCommand:      dt.InstallCommand,
			UninstallCommand:    dt.UninstallCommand,
			InstallBehavior:     MapInstallBehavior(dt.InstallBehavior),
			RebootBehavior:      MapRebootBehavior(dt.RebootBehavior),
			DetectionRules:      rules,
			MaxRunTimeInMinutes: maxRunTime,
		},
		Warnings: warnings,
	}
}

// ConvertAppSettings converts an application through its primary deployment
// type (lowest priority value).
func ConvertAppSettings(app model.SccmApplication) model.AppConversionResult {
	result := model.AppConversionResult{
		DisplayName: app.LocalizedDisplayName,
		Publisher:   util.StringPtr(app.Manufacturer),
		Version:     util.StringPtr(app.SoftwareVersion),
	}

	primary := matching.PrimaryDeploymentType(app)
	if primary == nil {
		result.DeploymentSettings = model.DeploymentSettings{
			InstallBehavior:     model.InstallMachine,
			RebootBehavior:      model.RebootBasedOnReturnCode,
			DetectionRules:      []model.DetectionRule{},
			MaxRunTimeInMinutes: defaultMaxRunTimeInMinutes,
		}
		result.Warnings = []string{WarnNoDeploymentType}
		return result
	}

	converted := ConvertDeploymentType(*primary)
	result.DeploymentSettings = converted.Settings
	result.Warnings = converted.Warnings
	return result
}
