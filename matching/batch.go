// Package matching - batch matching and triage helpers
package matching

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/appbridge/migration-backend/model"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 8

// Frameworks, runtimes and updates that should not be claimed as user apps.
var systemAppPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)microsoft visual c\+\+`),
	regexp.MustCompile(`(?i)\.net framework`),
	regexp.MustCompile(`(?i)\.net runtime`),
	regexp.MustCompile(`(?i)\.net desktop runtime`),
	regexp.MustCompile(`(?i)microsoft\.net`),
	regexp.MustCompile(`(?i)windows sdk`),
	regexp.MustCompile(`(?i)windows kit`),
	regexp.MustCompile(`(?i)microsoft update`),
	regexp.MustCompile(`(?i)security update`),
	regexp.MustCompile(`(?i)hotfix`),
	regexp.MustCompile(`(?i)cumulative update`),
	regexp.MustCompile(`(?i)service pack`),
	regexp.MustCompile(`(?i)redistributable`),
	regexp.MustCompile(`(?i)runtime.*library`),
	regexp.MustCompile(`(?i)microsoft asp\.net`),
	regexp.MustCompile(`(?i)microsoft edge webview`),
	regexp.MustCompile(`(?i)microsoft intune`),
	regexp.MustCompile(`(?i)management extension`),
	regexp.MustCompile(`(?i)intune management`),
}

// Management agents that only exist on legacy-managed devices.
var sccmSystemAppPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sccm client`),
	regexp.MustCompile(`(?i)configuration manager client`),
	regexp.MustCompile(`(?i)microsoft endpoint`),
}

var statusOrder = map[model.MatchStatus]int{
	model.MatchStatusMatched:   0,
	model.MatchStatusPartial:   1,
	model.MatchStatusUnmatched: 2,
	model.MatchStatusPending:   3,
}

// MatchDiscoveredApps matches a batch of discovered applications against the
// catalog, preserving input order. The catalog is loaded once.
func (m *Matcher) MatchDiscoveredApps(ctx context.Context, apps []model.DiscoveredApp) ([]model.BatchMatchItem, error) {
	catalog, err := m.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := make([]model.BatchMatchItem, len(apps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, app := range apps {
		i, app := i, app
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = model.BatchMatchItem{
				DiscoveredApp: app,
				MatchResult:   Match(app.DisplayName, app.Publisher, catalog),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// IsSystemApp reports whether a discovered application is a framework,
// runtime or update that should not be claimed.
func IsSystemApp(app model.DiscoveredApp) bool {
	return matchesAny(systemAppPatterns, app.DisplayName)
}

// FilterUserApps drops system applications.
func FilterUserApps(apps []model.DiscoveredApp) []model.DiscoveredApp {
	filtered := make([]model.DiscoveredApp, 0, len(apps))
	for _, app := range apps {
		if !IsSystemApp(app) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

// IsSccmSystemApp reports whether a legacy application is a framework,
// runtime, update or management agent.
func IsSccmSystemApp(app model.SccmApplication) bool {
	return matchesAny(systemAppPatterns, app.LocalizedDisplayName) ||
		matchesAny(sccmSystemAppPatterns, app.LocalizedDisplayName)
}

// FilterUserSccmApps drops legacy system applications.
func FilterUserSccmApps(apps []model.SccmApplication) []model.SccmApplication {
	filtered := make([]model.SccmApplication, 0, len(apps))
	for _, app := range apps {
		if !IsSccmSystemApp(app) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

// SortByClaimPriority returns a copy of items ordered by match status and then
// by device count, highest first.
func SortByClaimPriority(items []model.BatchMatchItem) []model.BatchMatchItem {
	sorted := append([]model.BatchMatchItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if d := statusOrder[a.MatchResult.Status] - statusOrder[b.MatchResult.Status]; d != 0 {
			return d < 0
		}
		return a.DeviceCount > b.DeviceCount
	})
	return sorted
}

// SortByMigrationPriority returns a copy of items with deployed applications
// first, then by match status, then by deployment count, highest first.
func SortByMigrationPriority(items []model.SccmMatchItem) []model.SccmMatchItem {
	sorted := append([]model.SccmMatchItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsDeployed != b.IsDeployed {
			return a.IsDeployed
		}
		if d := statusOrder[a.MatchResult.Status] - statusOrder[b.MatchResult.Status]; d != 0 {
			return d < 0
		}
		return a.DeploymentCount > b.DeploymentCount
	})
	return sorted
}

// CalculateMatchStats counts statuses. MatchRate is (matched+partial)/total,
// or 0 for an empty set.
func CalculateMatchStats(statuses []model.MatchStatus) model.MatchStats {
	stats := model.MatchStats{Total: len(statuses)}
	for _, s := range statuses {
		switch s {
		case model.MatchStatusMatched:
			stats.Matched++
		case model.MatchStatusPartial:
			stats.Partial++
		case model.MatchStatusUnmatched:
			stats.Unmatched++
		}
	}
	if stats.Total > 0 {
		stats.MatchRate = float64(stats.Matched+stats.Partial) / float64(stats.Total)
	}
	return stats
}
