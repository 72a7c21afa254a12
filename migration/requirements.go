package migration

import (
	"encoding/base64"
	"strings"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
)

// OData types of the generated requirement rules
const (
	RegistryRuleODataType = "#microsoft.graph.win32LobAppRegistryRule"
	ScriptRuleODataType   = "#microsoft.graph.win32LobAppPowerShellScriptRule"
)

const uninstallKey = `HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\`

// GenerateRequirementRules builds requirement rules that only pass on devices
// where the application is already installed, so a required assignment acts
// as an update. Windows Installer packages with a known product code check
// their uninstall key; everything else searches the uninstall registry by
// display name.
func GenerateRequirementRules(displayName, installerType, productCode string) []model.RequirementRule {
	installerType = strings.ToLower(installerType)
	if (installerType == "msi" || installerType == "wix") && productCode != "" {
		return []model.RequirementRule{msiRequirementRule(productCode)}
	}
	return []model.RequirementRule{uninstallScriptRequirementRule(displayName)}
}

func msiRequirementRule(productCode string) model.RequirementRule {
	return model.RequirementRule{
		ODataType:            RegistryRuleODataType,
		RuleType:             "requirement",
		KeyPath:              uninstallKey + productCode,
		Check32BitOn64System: util.BoolPtr(false),
		OperationType:        "exists",
	}
}

func uninstallScriptRequirementRule(displayName string) model.RequirementRule {
	escaped := strings.ReplaceAll(displayName, "'", "''")

	lines := []string{
		"# Requirement rule: Check if app is already installed on this device",
		"# App: " + displayName,
		`$ErrorActionPreference = "SilentlyContinue"`,
		"",
		"$uninstallPaths = @(",
		`    "HKLM:\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\*",`,
		`    "HKLM:\SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall\*",`,
		`    "HKCU:\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\*"`,
		")",
		"",
		"foreach ($path in $uninstallPaths) {",
		"    $apps = Get-ItemProperty $path -ErrorAction SilentlyContinue |",
		"        Where-Object { $_.DisplayName -like '*" + escaped + "*' }",
		"    if ($apps) {",
		`        Write-Output "True"`,
		"        exit 0",
		"    }",
		"}",
		"",
		`Write-Output "False"`,
		"exit 0",
	}
	script := strings.Join(lines, "\r\n")

	return model.RequirementRule{
		ODataType:             ScriptRuleODataType,
		RuleType:              "requirement",
		DisplayName:           "Check if " + displayName + " is installed",
		ScriptContent:         base64.StdEncoding.EncodeToString([]byte(script)),
		EnforceSignatureCheck: util.BoolPtr(false),
		RunAs32Bit:            util.BoolPtr(false),
		RunAsAccount:          "system",
		OperationType:         "boolean",
		Operator:              "equal",
		ComparisonValue:       "True",
	}
}
