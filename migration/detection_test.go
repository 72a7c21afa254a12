package migration

import (
	"strings"
	"testing"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opPtr(op model.DetectionOperator) *model.DetectionOperator {
	return &op
}

func TestConvertMsiDetection(t *testing.T) {
	exists := ConvertMsiDetection(model.DetectionClause{
		Type:          model.ClauseTypeMSI,
		ProductCode:   "{23170F69-40C1-2702-2301-000001000000}",
		PropertyType:  "Exists",
		ExpectedValue: "23.01",
	})
	assert.Equal(t, model.DetectionRule{
		Type:        model.RuleTypeMSI,
		ProductCode: "{23170F69-40C1-2702-2301-000001000000}",
	}, exists)

	versioned := ConvertMsiDetection(model.DetectionClause{
		Type:               model.ClauseTypeMSI,
		ProductCode:        "{23170F69-40C1-2702-2301-000001000000}",
		PropertyType:       "ProductVersion",
		ExpressionOperator: "GreaterEquals",
		ExpectedValue:      "23.01",
	})
	require.NotNil(t, versioned.ProductVersionOperator)
	assert.Equal(t, model.OperatorGreaterThanOrEqual, *versioned.ProductVersionOperator)
	require.NotNil(t, versioned.ProductVersion)
	assert.Equal(t, "23.01", *versioned.ProductVersion)

	// no expected value means no version comparison
	bare := ConvertMsiDetection(model.DetectionClause{Type: model.ClauseTypeMSI, ProductCode: "{X}", PropertyType: "ProductVersion"})
	assert.Nil(t, bare.ProductVersionOperator)
	assert.Nil(t, bare.ProductVersion)
}

func TestConvertFileDetection(t *testing.T) {
	got := ConvertFileDetection(model.DetectionClause{
		Type:               model.ClauseTypeFile,
		Path:               "%programfiles%/Acme/",
		FileName:           "acme.exe",
		Is64Bit:            util.BoolPtr(true),
		PropertyType:       "Version",
		ExpressionOperator: "GreaterEquals",
		ExpectedValue:      "1.2.3",
	})

	want := model.DetectionRule{
		Type:                 model.RuleTypeFile,
		Path:                 `%ProgramFiles%\Acme`,
		FileOrFolderName:     "acme.exe",
		DetectionType:        model.DetectionVersion,
		Check32BitOn64System: util.BoolPtr(false),
		Operator:             opPtr(model.OperatorGreaterThanOrEqual),
		DetectionValue:       util.StringPtr("1.2.3"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("file rule mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertFileDetectionTypes(t *testing.T) {
	tests := []struct {
		propertyType string
		operator     string
		want         model.DetectionType
	}{
		{"Version", "Equals", model.DetectionVersion},
		{"ProductVersion", "Equals", model.DetectionVersion},
		{"FileVersion", "Equals", model.DetectionVersion},
		{"DateModified", "GreaterThan", model.DetectionDateModified},
		{"DateCreated", "LessThan", model.DetectionDateCreated},
		{"Size", "GreaterEquals", model.DetectionSizeInMB},
		{"", "", model.DetectionExists},
		{"Attributes", "Equals", model.DetectionExists},
		{"Version", "NotExists", model.DetectionNotExists},
	}
	for _, tt := range tests {
		t.Run(tt.propertyType+"/"+tt.operator, func(t *testing.T) {
			rule := ConvertFileDetection(model.DetectionClause{
				Type:               model.ClauseTypeFile,
				Path:               `C:\Acme`,
				FileName:           "acme.exe",
				PropertyType:       tt.propertyType,
				ExpressionOperator: tt.operator,
				ExpectedValue:      "1",
			})
			assert.Equal(t, tt.want, rule.DetectionType)
			if tt.want == model.DetectionExists || tt.want == model.DetectionNotExists {
				assert.Nil(t, rule.Operator)
				assert.Nil(t, rule.DetectionValue)
			} else {
				assert.NotNil(t, rule.Operator)
				assert.NotNil(t, rule.DetectionValue)
			}
		})
	}
}

func TestConvertFileDetectionBitness(t *testing.T) {
	undeclared := ConvertFileDetection(model.DetectionClause{Type: model.ClauseTypeFile, Path: `C:\A`, FileName: "a.exe"})
	require.NotNil(t, undeclared.Check32BitOn64System)
	assert.True(t, *undeclared.Check32BitOn64System)

	declared32 := ConvertFileDetection(model.DetectionClause{Type: model.ClauseTypeFile, Path: `C:\A`, FileName: "a.exe", Is64Bit: util.BoolPtr(false)})
	assert.True(t, *declared32.Check32BitOn64System)

	declared64 := ConvertFileDetection(model.DetectionClause{Type: model.ClauseTypeFile, Path: `C:\A`, FileName: "a.exe", Is64Bit: util.BoolPtr(true)})
	assert.False(t, *declared64.Check32BitOn64System)
}

func TestConvertRegistryDetection(t *testing.T) {
	base := model.DetectionClause{
		Type:               model.ClauseTypeRegistry,
		Hive:               "LocalMachine",
		KeyPath:            `SOFTWARE\Acme`,
		ValueName:          "Version",
		PropertyType:       "Value",
		ExpressionOperator: "Equals",
	}

	tests := []struct {
		name     string
		expected string
		operator string
		want     model.DetectionType
	}{
		{"integer", "5", "Equals", model.DetectionInteger},
		{"version", "1.2.3", "GreaterEquals", model.DetectionVersion},
		{"two part version", "10.0", "Equals", model.DetectionVersion},
		{"string", "enterprise", "Equals", model.DetectionString},
		{"no expected value", "", "Equals", model.DetectionExists},
		{"not exists", "5", "NotExists", model.DetectionNotExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause := base
			clause.ExpectedValue = tt.expected
			clause.ExpressionOperator = tt.operator

			rule := ConvertRegistryDetection(clause)
			assert.Equal(t, model.RuleTypeRegistry, rule.Type)
			assert.Equal(t, `HKEY_LOCAL_MACHINE\SOFTWARE\Acme`, rule.KeyPath)
			require.NotNil(t, rule.ValueName)
			assert.Equal(t, "Version", *rule.ValueName)
			assert.Equal(t, tt.want, rule.DetectionType)
		})
	}
}

func TestConvertRegistryDetectionKeyOnly(t *testing.T) {
	rule := ConvertRegistryDetection(model.DetectionClause{
		Type:         model.ClauseTypeRegistry,
		Hive:         "CurrentUser",
		KeyPath:      `Software\Acme`,
		PropertyType: "Exists",
		Is64Bit:      util.BoolPtr(true),
	})

	want := model.DetectionRule{
		Type:                 model.RuleTypeRegistry,
		KeyPath:              `HKEY_CURRENT_USER\Software\Acme`,
		DetectionType:        model.DetectionExists,
		Check32BitOn64System: util.BoolPtr(false),
	}
	if diff := cmp.Diff(want, rule); diff != "" {
		t.Errorf("registry rule mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertScriptDetection(t *testing.T) {
	for _, lang := range []model.ScriptLanguage{model.ScriptLanguageVBScript, model.ScriptLanguageJScript, ""} {
		assert.Nil(t, ConvertScriptDetection(model.DetectionClause{
			Type:           model.ClauseTypeScript,
			ScriptLanguage: lang,
			ScriptContent:  "WScript.Echo True",
		}), string(lang))
	}

	rule := ConvertScriptDetection(model.DetectionClause{
		Type:           model.ClauseTypeScript,
		ScriptLanguage: model.ScriptLanguagePowerShell,
		ScriptContent:  "Test-Path 'C:\\Acme\\acme.exe'",
	})
	require.NotNil(t, rule)
	assert.Equal(t, model.RuleTypeScript, rule.Type)
	assert.Contains(t, rule.ScriptContent, "        Test-Path 'C:\\Acme\\acme.exe'")
	assert.False(t, *rule.EnforceSignatureCheck)
	assert.False(t, *rule.RunAs32Bit)

	rule = ConvertScriptDetection(model.DetectionClause{
		Type:           model.ClauseTypeScript,
		ScriptLanguage: model.ScriptLanguagePowerShell,
		ScriptContent:  "exit 0",
		RunAs32Bit:     util.BoolPtr(true),
	})
	require.NotNil(t, rule)
	assert.Equal(t, "exit 0", rule.ScriptContent)
	assert.True(t, *rule.RunAs32Bit)
}

func TestWrapScriptForIntunePassThrough(t *testing.T) {
	scripts := []string{
		"if (Test-Path C:\\a) { exit 0 }\nexit 1",
		"EXIT 1",
		"Exit   2",
	}
	for _, script := range scripts {
		assert.Equal(t, script, WrapScriptForIntune(script))
	}
}

func TestWrapScriptForIntune(t *testing.T) {
	wrapped := WrapScriptForIntune("$p = Test-Path C:\\a\n$p")

	assert.True(t, strings.HasPrefix(wrapped, "# Converted from SCCM detection script\n"))
	assert.Contains(t, wrapped, "    $result = & {\n        $p = Test-Path C:\\a\n        $p\n    }")
	assert.Contains(t, wrapped, "exit 0  # Application detected")
	assert.Contains(t, wrapped, "exit 1  # Application not detected")
	assert.True(t, strings.HasSuffix(wrapped, "exit 1  # Error = not detected\n}"))

	// the wrapped form already reports through exit codes
	assert.Equal(t, wrapped, WrapScriptForIntune(wrapped))

	// a word that merely starts with exit does not count
	assert.NotEqual(t, "Write-Host 'exiting 3'", WrapScriptForIntune("Write-Host 'exiting 3'"))
}

func TestConvertDetectionClauseUnknownType(t *testing.T) {
	assert.Nil(t, ConvertDetectionClause(model.DetectionClause{Type: "WMI"}))
	assert.Nil(t, ConvertDetectionClause(model.DetectionClause{}))
}

func TestConvertDetectionRulesDropsUntranslatable(t *testing.T) {
	clauses := []model.DetectionClause{
		{Type: model.ClauseTypeMSI, ProductCode: "{A}"},
		{Type: model.ClauseTypeScript, ScriptLanguage: model.ScriptLanguageVBScript, ScriptContent: "x"},
		{Type: "WMI"},
		{Type: model.ClauseTypeFile, Path: `C:\A`, FileName: "a.exe"},
	}

	rules := ConvertDetectionRules(clauses)
	require.Len(t, rules, 2)
	assert.Equal(t, model.RuleTypeMSI, rules[0].Type)
	assert.Equal(t, model.RuleTypeFile, rules[1].Type)

	assert.NotNil(t, ConvertDetectionRules(nil))
	assert.Empty(t, ConvertDetectionRules(nil))
}
