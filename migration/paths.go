// Package migration translates legacy (SCCM) deployment types and detection
// clauses into target (Intune Win32) deployment settings and detection rules.
package migration

import (
	"regexp"
	"strings"

	"github.com/appbridge/migration-backend/model"
)

type pathToken struct {
	pattern     *regexp.Regexp
	replacement string
}

func newPathToken(token, replacement string) pathToken {
	return pathToken{
		pattern:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token)),
		replacement: replacement,
	}
}

// Legacy environment tokens and their target casing, applied in order.
var pathTokens = []pathToken{
	newPathToken("%windir%", "%SystemRoot%"),
	newPathToken("%systemroot%", "%SystemRoot%"),
	newPathToken("%programfiles%", "%ProgramFiles%"),
	newPathToken("%programfiles(x86)%", "%ProgramFiles(x86)%"),
	newPathToken("%commonprogramfiles%", "%CommonProgramFiles%"),
	newPathToken("%commonprogramfiles(x86)%", "%CommonProgramFiles(x86)%"),
	newPathToken("%programdata%", "%ProgramData%"),
	newPathToken("%appdata%", "%AppData%"),
	newPathToken("%localappdata%", "%LocalAppData%"),
	newPathToken("%userprofile%", "%UserProfile%"),
	newPathToken("%systemdrive%", "%SystemDrive%"),
	newPathToken("%temp%", "%Temp%"),
	newPathToken("%tmp%", "%Temp%"),
}

var operators = map[string]model.DetectionOperator{
	"Equals":        model.OperatorEqual,
	"NotEquals":     model.OperatorNotEqual,
	"GreaterThan":   model.OperatorGreaterThan,
	"LessThan":      model.OperatorLessThan,
	"GreaterEquals": model.OperatorGreaterThanOrEqual,
	"LessEquals":    model.OperatorLessThanOrEqual,
}

var hives = map[string]string{
	"ClassesRoot":   "HKEY_CLASSES_ROOT",
	"CurrentConfig": "HKEY_CURRENT_CONFIG",
	"CurrentUser":   "HKEY_CURRENT_USER",
	"LocalMachine":  "HKEY_LOCAL_MACHINE",
	"Users":         "HKEY_USERS",
}

// ConvertPath rewrites legacy environment tokens to the target spelling,
// switches forward slashes to backslashes and drops a trailing backslash
// unless the path is a bare drive root.
func ConvertPath(path string) string {
	converted := path
	for _, token := range pathTokens {
		converted = token.pattern.ReplaceAllLiteralString(converted, token.replacement)
	}

	converted = strings.ReplaceAll(converted, "/", `\`)

	if len(converted) > 3 && strings.HasSuffix(converted, `\`) {
		converted = converted[:len(converted)-1]
	}
	return converted
}

// ConvertOperator maps a legacy comparison operator. Empty or unknown
// operators become equal.
func ConvertOperator(op string) model.DetectionOperator {
	if converted, ok := operators[op]; ok {
		return converted
	}
	return model.OperatorEqual
}

// ConvertHive maps a legacy registry hive name to its full key prefix.
// Unknown hives resolve to HKEY_LOCAL_MACHINE.
func ConvertHive(hive string) string {
	if converted, ok := hives[hive]; ok {
		return converted
	}
	return "HKEY_LOCAL_MACHINE"
}
