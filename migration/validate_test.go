package migration

import (
	"testing"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
	"github.com/stretchr/testify/assert"
)

func TestValidateDetectionRulesEmpty(t *testing.T) {
	result := ValidateDetectionRules(nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"At least one detection rule is required"}, result.Errors)
	assert.NotNil(t, result.Warnings)
}

func TestValidateDetectionRules(t *testing.T) {
	tests := []struct {
		name     string
		rules    []model.DetectionRule
		errors   []string
		warnings []string
	}{
		{
			name:  "valid msi",
			rules: []model.DetectionRule{{Type: model.RuleTypeMSI, ProductCode: "{23170F69-40C1-2702-2301-000001000000}"}},
		},
		{
			name:   "msi without product code",
			rules:  []model.DetectionRule{{Type: model.RuleTypeMSI}},
			errors: []string{"Rule 1: MSI product code is required"},
		},
		{
			name:     "msi product code shape",
			rules:    []model.DetectionRule{{Type: model.RuleTypeMSI, ProductCode: "23170F69-40C1"}},
			warnings: []string{"Rule 1: MSI product code format may be invalid"},
		},
		{
			name: "msi product version",
			rules: []model.DetectionRule{{
				Type:           model.RuleTypeMSI,
				ProductCode:    "{23170F69-40C1-2702-2301-000001000000}",
				ProductVersion: util.StringPtr("latest"),
			}},
			warnings: []string{"Rule 1: MSI product version is not a recognizable version"},
		},
		{
			name:   "file without path or name",
			rules:  []model.DetectionRule{{Type: model.RuleTypeFile}},
			errors: []string{"Rule 1: File path is required", "Rule 1: File or folder name is required"},
		},
		{
			name: "file version value",
			rules: []model.DetectionRule{{
				Type:             model.RuleTypeFile,
				Path:             `C:\Acme`,
				FileOrFolderName: "acme.exe",
				DetectionType:    model.DetectionVersion,
				DetectionValue:   util.StringPtr("four"),
			}},
			warnings: []string{"Rule 1: File version comparison value is not a recognizable version"},
		},
		{
			name: "four part file version",
			rules: []model.DetectionRule{{
				Type:             model.RuleTypeFile,
				Path:             `C:\Acme`,
				FileOrFolderName: "acme.exe",
				DetectionType:    model.DetectionVersion,
				DetectionValue:   util.StringPtr("23.1.0.4"),
			}},
		},
		{
			name: "registry without key path, second rule",
			rules: []model.DetectionRule{
				{Type: model.RuleTypeRegistry, KeyPath: `HKEY_LOCAL_MACHINE\SOFTWARE\Acme`},
				{Type: model.RuleTypeRegistry},
			},
			errors: []string{"Rule 2: Registry key path is required"},
		},
		{
			name:   "blank script",
			rules:  []model.DetectionRule{{Type: model.RuleTypeScript, ScriptContent: " \n\t "}},
			errors: []string{"Rule 1: Script content is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDetectionRules(tt.rules)

			assert.Equal(t, len(tt.errors) == 0, result.Valid)
			if tt.errors == nil {
				assert.Empty(t, result.Errors)
			} else {
				assert.Equal(t, tt.errors, result.Errors)
			}
			if tt.warnings == nil {
				assert.Empty(t, result.Warnings)
			} else {
				assert.Equal(t, tt.warnings, result.Warnings)
			}
		})
	}
}

func TestValidateConvertedRules(t *testing.T) {
	rules := ConvertDetectionRules([]model.DetectionClause{
		{Type: model.ClauseTypeFile, Path: "%ProgramFiles%/Acme", FileName: "acme.exe", PropertyType: "Version", ExpressionOperator: "GreaterEquals", ExpectedValue: "2.1"},
		{Type: model.ClauseTypeRegistry, Hive: "LocalMachine", KeyPath: `SOFTWARE\Acme`, PropertyType: "Exists"},
		{Type: model.ClauseTypeScript, ScriptLanguage: model.ScriptLanguagePowerShell, ScriptContent: "Test-Path C:\\Acme"},
	})

	result := ValidateDetectionRules(rules)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}
