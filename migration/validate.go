package migration

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/appbridge/migration-backend/model"
	"github.com/appbridge/migration-backend/util"
)

var productCodeShape = regexp.MustCompile(`^\{[0-9A-Fa-f-]{36}\}$`)

// ValidateDetectionRules checks that a finished rule list can be deployed.
// Errors block deployment, warnings do not.
func ValidateDetectionRules(rules []model.DetectionRule) model.ValidationResult {
	errs := []string{}
	warnings := []string{}

	if len(rules) == 0 {
		errs = append(errs, "At least one detection rule is required")
	}

	for i, rule := range rules {
		prefix := fmt.Sprintf("Rule %d", i+1)

		switch rule.Type {
		case model.RuleTypeMSI:
			if rule.ProductCode == "" {
				errs = append(errs, prefix+": MSI product code is required")
			} else if !productCodeShape.MatchString(rule.ProductCode) {
				warnings = append(warnings, prefix+": MSI product code format may be invalid")
			}
			if rule.ProductVersion != nil && !util.IsVersionString(*rule.ProductVersion) {
				warnings = append(warnings, prefix+": MSI product version is not a recognizable version")
			}

		case model.RuleTypeFile:
			if rule.Path == "" {
				errs = append(errs, prefix+": File path is required")
			}
			if rule.FileOrFolderName == "" {
				errs = append(errs, prefix+": File or folder name is required")
			}
			if rule.DetectionType == model.DetectionVersion && rule.DetectionValue != nil &&
				!util.IsVersionString(*rule.DetectionValue) {
				warnings = append(warnings, prefix+": File version comparison value is not a recognizable version")
			}

		case model.RuleTypeRegistry:
			if rule.KeyPath == "" {
				errs = append(errs, prefix+": Registry key path is required")
			}

		case model.RuleTypeScript:
			if strings.TrimSpace(rule.ScriptContent) == "" {
				errs = append(errs, prefix+": Script content is required")
			}
		}
	}

	return model.ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
