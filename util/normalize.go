// Package util - application and publisher name normalization
package util

import (
	"regexp"
	"strings"
)

// Applied in order by NormalizeAppName.
var appNameRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	// architecture markers in parentheses
	{regexp.MustCompile(`(?i)\s*\(x64\)|\s*\(x86\)|\s*\(64-bit\)|\s*\(32-bit\)`), ""},
	// bare architecture markers
	{regexp.MustCompile(`(?i)\s*x64|\s*x86|\s*64-bit|\s*32-bit`), ""},
	// version numbers such as " 23.01", " v1.2.3" or " 365"
	{regexp.MustCompile(`\s+v?\d+(\.\d+)*(\.\d+)?`), ""},
	// generic trailing suffixes
	{regexp.MustCompile(`(?i)\s+(desktop|client|app|application|setup|installer|portable)$`), ""},
	// trademark symbols and punctuation
	{regexp.MustCompile(`[^\w\s-]`), ""},
	{regexp.MustCompile(`\s+`), " "},
}

var publisherRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i),?\s*(inc\.?|llc|ltd\.?|corp\.?|corporation|gmbh|ag|sa|bv|plc)$`), ""},
	{regexp.MustCompile(`[^\w\s-]`), ""},
	{regexp.MustCompile(`\s+`), " "},
}

// NormalizeAppName canonicalizes a free-text application name for comparison.
// Example: "Google Chrome (x64)" -> "google chrome"
func NormalizeAppName(name string) string {
	normalized := strings.ToLower(name)
	for _, rule := range appNameRules {
		normalized = rule.pattern.ReplaceAllString(normalized, rule.repl)
	}
	return strings.TrimSpace(normalized)
}

// NormalizePublisher canonicalizes a publisher name, dropping legal-entity suffixes.
// Example: "Mozilla Corporation" -> "mozilla"
func NormalizePublisher(publisher string) string {
	if publisher == "" {
		return ""
	}
	normalized := strings.ToLower(publisher)
	for _, rule := range publisherRules {
		normalized = rule.pattern.ReplaceAllString(normalized, rule.repl)
	}
	return strings.TrimSpace(normalized)
}
