package migration

import (
	"regexp"
	"strings"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
)

var (
	exitStatement = regexp.MustCompile(`(?i)\bexit\s+\d`)
	integerValue  = regexp.MustCompile(`^\d+$`)
	versionValue  = regexp.MustCompile(`^\d+\.\d+(\.\d+)*$`)
	scriptIndent  = strings.Repeat(" ", 8)
)

const notExistsValue = "NotExists"

const scriptWrapperHead = `# Converted from SCCM detection script
# Original SCCM script returned $true/$false, Intune expects exit code

try {
    # Original SCCM detection logic
    $result = & {
`

const scriptWrapperTail = `
    }

    # Convert SCCM boolean result to Intune exit code
    if ($result -eq $true) {
        exit 0  # Application detected
    } else {
        exit 1  # Application not detected
    }
} catch {
    Write-Error $_.Exception.Message
    exit 1  # Error = not detected
}`

// ConvertMsiDetection converts an MSI product code clause. A version check is
// carried over when the clause compares the product version.
func ConvertMsiDetection(clause model.DetectionClause) model.DetectionRule {
	rule := model.DetectionRule{
		Type:        model.RuleTypeMSI,
		ProductCode: clause.ProductCode,
	}

	if clause.ExpectedValue != "" && clause.PropertyType != "Exists" {
		op := ConvertOperator(clause.ExpressionOperator)
		rule.ProductVersionOperator = &op
		rule.ProductVersion = util.StringPtr(clause.ExpectedValue)
	}
	return rule
}

func fileDetectionType(clause model.DetectionClause) model.DetectionType {
	if clause.ExpressionOperator == notExistsValue {
		return model.DetectionNotExists
	}
	switch clause.PropertyType {
	case "Version", "ProductVersion", "FileVersion":
		return model.DetectionVersion
	case "DateModified":
		return model.DetectionDateModified
	case "DateCreated":
		return model.DetectionDateCreated
	case "Size":
		return model.DetectionSizeInMB
	}
	return model.DetectionExists
}

func registryDetectionType(clause model.DetectionClause) model.DetectionType {
	if clause.ExpressionOperator == notExistsValue {
		return model.DetectionNotExists
	}
	if clause.PropertyType != "Value" || clause.ExpectedValue == "" {
		return model.DetectionExists
	}
	switch {
	case integerValue.MatchString(clause.ExpectedValue):
		return model.DetectionInteger
	case versionValue.MatchString(clause.ExpectedValue):
		return model.DetectionVersion
	}
	return model.DetectionString
}

// check32Bit is the inverse of the declared bitness. Undeclared bitness
// checks the 32-bit view.
func check32Bit(is64Bit *bool) *bool {
	return util.BoolPtr(is64Bit == nil || !*is64Bit)
}

func isExistenceCheck(t model.DetectionType) bool {
	return t == model.DetectionExists || t == model.DetectionNotExists
}

// ConvertFileDetection converts a file or folder clause.
func ConvertFileDetection(clause model.DetectionClause) model.DetectionRule {
	rule := model.DetectionRule{
		Type:                 model.RuleTypeFile,
		Path:                 ConvertPath(clause.Path),
		FileOrFolderName:     clause.FileName,
		DetectionType:        fileDetectionType(clause),
		Check32BitOn64System: check32Bit(clause.Is64Bit),
	}

	if !isExistenceCheck(rule.DetectionType) {
		op := ConvertOperator(clause.ExpressionOperator)
		rule.Operator = &op
		value := clause.ExpectedValue
		rule.DetectionValue = &value
	}
	return rule
}

// ConvertRegistryDetection converts a registry clause. The value type of a
// value comparison is inferred from the expected value.
func ConvertRegistryDetection(clause model.DetectionClause) model.DetectionRule {
	rule := model.DetectionRule{
		Type:                 model.RuleTypeRegistry,
		KeyPath:              ConvertHive(clause.Hive) + `\` + clause.KeyPath,
		ValueName:            util.StringPtr(clause.ValueName),
		DetectionType:        registryDetectionType(clause),
		Check32BitOn64System: check32Bit(clause.Is64Bit),
	}

	if !isExistenceCheck(rule.DetectionType) {
		op := ConvertOperator(clause.ExpressionOperator)
		rule.Operator = &op
		value := clause.ExpectedValue
		rule.DetectionValue = &value
	}
	return rule
}

// ConvertScriptDetection converts a PowerShell detection script. Scripts in
// any other language cannot run on the target and yield nil.
func ConvertScriptDetection(clause model.DetectionClause) *model.DetectionRule {
	if clause.ScriptLanguage != model.ScriptLanguagePowerShell {
		return nil
	}

	runAs32Bit := clause.RunAs32Bit != nil && *clause.RunAs32Bit
	return &model.DetectionRule{
		Type:                  model.RuleTypeScript,
		ScriptContent:         WrapScriptForIntune(clause.ScriptContent),
		EnforceSignatureCheck: util.BoolPtr(false),
		RunAs32Bit:            util.BoolPtr(runAs32Bit),
	}
}

// WrapScriptForIntune turns a script that returns $true/$false into one that
// reports through its exit code (0 detected, 1 not detected or error).
// Scripts that already exit with a code are returned unchanged.
func WrapScriptForIntune(script string) string {
	if exitStatement.MatchString(script) {
		return script
	}

	lines := strings.Split(script, "\n")
	for i, line := range lines {
		lines[i] = scriptIndent + line
	}

	var b strings.Builder
	b.WriteString(scriptWrapperHead)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString(scriptWrapperTail)
	return b.String()
}

// ConvertDetectionClause converts one clause, or returns nil when the clause
// has no target equivalent.
func ConvertDetectionClause(clause model.DetectionClause) *model.DetectionRule {
	var rule model.DetectionRule
	switch clause.Type {
	case model.ClauseTypeMSI:
		rule = ConvertMsiDetection(clause)
	case model.ClauseTypeFile:
		rule = ConvertFileDetection(clause)
	case model.ClauseTypeRegistry:
		rule = ConvertRegistryDetection(clause)
	case model.ClauseTypeScript:
		return ConvertScriptDetection(clause)
	default:
		return nil
	}
	return &rule
}

// ConvertDetectionRules converts every clause and drops the ones that have no
// target equivalent. Callers report the drop as a warning.
func ConvertDetectionRules(clauses []model.DetectionClause) []model.DetectionRule {
	rules := make([]model.DetectionRule, 0, len(clauses))
	for _, clause := range clauses {
		if rule := ConvertDetectionClause(clause); rule != nil {
			rules = append(rules, *rule)
		}
	}
	return rules
}
