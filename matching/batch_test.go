package matching

import (
	"context"
	"testing"

	"github.com/appbridge/migration-backend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDiscoveredAppsKeepsOrder(t *testing.T) {
	m := NewMatcher(NewStaticCatalog(testCatalog()), nil, nil)

	apps := []model.DiscoveredApp{
		{ID: "a", DisplayName: "Google Chrome", DeviceCount: 3},
		{ID: "b", DisplayName: "Contoso Payroll", DeviceCount: 1},
		{ID: "c", DisplayName: "Chrome", DeviceCount: 7},
	}
	for i := 0; i < 20; i++ {
		apps = append(apps, model.DiscoveredApp{ID: "x", DisplayName: "Microsoft Edge"})
	}

	items, err := m.MatchDiscoveredApps(context.Background(), apps)
	require.NoError(t, err)
	require.Len(t, items, len(apps))

	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, model.MatchStatusMatched, items[0].MatchResult.Status)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, model.MatchStatusUnmatched, items[1].MatchResult.Status)
	assert.Equal(t, "c", items[2].ID)
	assert.Equal(t, model.MatchStatusPartial, items[2].MatchResult.Status)
	for _, item := range items[3:] {
		assert.Equal(t, "Microsoft.Edge", *item.MatchResult.WingetID)
	}
}

func TestIsSystemApp(t *testing.T) {
	system := []string{
		"Microsoft Visual C++ 2019 Redistributable (x64)",
		"Microsoft .NET Framework 4.8",
		"Microsoft .NET Runtime 6.0.15",
		"Microsoft Intune Management Extension",
		"Security Update for Windows",
		"Microsoft Edge WebView2 Runtime",
	}
	for _, name := range system {
		assert.True(t, IsSystemApp(model.DiscoveredApp{DisplayName: name}), name)
	}

	user := []string{"Google Chrome", "Adobe Acrobat Reader DC", "Slack"}
	for _, name := range user {
		assert.False(t, IsSystemApp(model.DiscoveredApp{DisplayName: name}), name)
	}

	// legacy management agents only count for legacy apps
	assert.False(t, IsSystemApp(model.DiscoveredApp{DisplayName: "Configuration Manager Client"}))
	assert.True(t, IsSccmSystemApp(model.SccmApplication{LocalizedDisplayName: "Configuration Manager Client"}))
}

func TestFilterUserApps(t *testing.T) {
	apps := []model.DiscoveredApp{
		{DisplayName: "Google Chrome"},
		{DisplayName: "Microsoft Visual C++ 2019"},
		{DisplayName: "Adobe Reader"},
		{DisplayName: ".NET Framework 4.8"},
	}

	filtered := FilterUserApps(apps)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Google Chrome", filtered[0].DisplayName)
	assert.Equal(t, "Adobe Reader", filtered[1].DisplayName)
}

func TestFilterUserSccmApps(t *testing.T) {
	apps := []model.SccmApplication{
		{LocalizedDisplayName: "Microsoft Visual C++"},
		{LocalizedDisplayName: ".NET Runtime"},
	}
	assert.Empty(t, FilterUserSccmApps(apps))

	apps = []model.SccmApplication{
		{LocalizedDisplayName: "Google Chrome"},
		{LocalizedDisplayName: "Mozilla Firefox"},
	}
	assert.Len(t, FilterUserSccmApps(apps), 2)
}

func TestSortByClaimPriority(t *testing.T) {
	items := []model.BatchMatchItem{
		{DiscoveredApp: model.DiscoveredApp{ID: "unmatched", DeviceCount: 500}, MatchResult: model.MatchResult{Status: model.MatchStatusUnmatched}},
		{DiscoveredApp: model.DiscoveredApp{ID: "partial", DeviceCount: 10}, MatchResult: model.MatchResult{Status: model.MatchStatusPartial}},
		{DiscoveredApp: model.DiscoveredApp{ID: "matched-small", DeviceCount: 2}, MatchResult: model.MatchResult{Status: model.MatchStatusMatched}},
		{DiscoveredApp: model.DiscoveredApp{ID: "matched-large", DeviceCount: 40}, MatchResult: model.MatchResult{Status: model.MatchStatusMatched}},
		{DiscoveredApp: model.DiscoveredApp{ID: "pending", DeviceCount: 900}, MatchResult: model.MatchResult{Status: model.MatchStatusPending}},
	}

	sorted := SortByClaimPriority(items)

	ids := make([]string, 0, len(sorted))
	for _, item := range sorted {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"matched-large", "matched-small", "partial", "unmatched", "pending"}, ids)
	assert.Equal(t, "unmatched", items[0].ID, "input must not be reordered")
}

func TestSortByMigrationPriority(t *testing.T) {
	items := []model.SccmMatchItem{
		{CiID: "not-deployed", IsDeployed: false, DeploymentCount: 100, MatchResult: model.SccmMatchResult{MatchResult: model.MatchResult{Status: model.MatchStatusMatched}}},
		{CiID: "partial", IsDeployed: true, DeploymentCount: 100, MatchResult: model.SccmMatchResult{MatchResult: model.MatchResult{Status: model.MatchStatusPartial}}},
		{CiID: "matched-5", IsDeployed: true, DeploymentCount: 5, MatchResult: model.SccmMatchResult{MatchResult: model.MatchResult{Status: model.MatchStatusMatched}}},
		{CiID: "matched-100", IsDeployed: true, DeploymentCount: 100, MatchResult: model.SccmMatchResult{MatchResult: model.MatchResult{Status: model.MatchStatusMatched}}},
	}

	sorted := SortByMigrationPriority(items)

	ids := make([]string, 0, len(sorted))
	for _, item := range sorted {
		ids = append(ids, item.CiID)
	}
	assert.Equal(t, []string{"matched-100", "matched-5", "partial", "not-deployed"}, ids)
}

func TestCalculateMatchStats(t *testing.T) {
	stats := CalculateMatchStats([]model.MatchStatus{
		model.MatchStatusMatched,
		model.MatchStatusMatched,
		model.MatchStatusPartial,
		model.MatchStatusUnmatched,
	})
	assert.Equal(t, model.MatchStats{Total: 4, Matched: 2, Partial: 1, Unmatched: 1, MatchRate: 0.75}, stats)

	assert.Equal(t, model.MatchStats{}, CalculateMatchStats(nil))

	all := CalculateMatchStats([]model.MatchStatus{model.MatchStatusMatched, model.MatchStatusMatched})
	assert.Equal(t, 1.0, all.MatchRate)
}
