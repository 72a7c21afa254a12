// Package util - WinGet package URLs
package util

import (
	"fmt"
	"strings"

	"github.com/package-url/packageurl-go"
)

// PurlTypeWinget is the package URL type used for WinGet packages.
const PurlTypeWinget = "winget"

// WingetPURL builds a package URL for a WinGet package identifier, e.g.
// ("Google.Chrome", "") -> "pkg:winget/Google.Chrome".
// An empty version produces a versionless PURL.
func WingetPURL(wingetID, version string) string {
	if wingetID == "" {
		return ""
	}
	p := packageurl.NewPackageURL(PurlTypeWinget, "", wingetID, version, nil, "")
	return p.ToString()
}

// ParseWingetPURL returns the WinGet identifier and version of a winget PURL.
func ParseWingetPURL(purlStr string) (string, string, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return "", "", err
	}
	if !strings.EqualFold(parsed.Type, PurlTypeWinget) {
		return "", "", fmt.Errorf("not a winget purl: %s", purlStr)
	}
	name := parsed.Name
	if parsed.Namespace != "" {
		name = parsed.Namespace + "/" + parsed.Name
	}
	return name, parsed.Version, nil
}

// WingetPublisher returns the publisher segment of a WinGet identifier
// ("Mozilla.Firefox" -> "Mozilla").
func WingetPublisher(wingetID string) string {
	publisher, _, _ := strings.Cut(wingetID, ".")
	return publisher
}

// WingetShortName returns the last segment of a WinGet identifier
// ("Microsoft.VisualStudioCode" -> "VisualStudioCode").
func WingetShortName(wingetID string) string {
	if idx := strings.LastIndex(wingetID, "."); idx >= 0 && idx < len(wingetID)-1 {
		return wingetID[idx+1:]
	}
	return wingetID
}
