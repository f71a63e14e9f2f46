package insight_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/materials-commons/mcinsight/pkg/generator"
	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/materials-commons/mcinsight/pkg/insightdb"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/materials-commons/mcinsight/pkg/tutil"
	"github.com/stretchr/testify/require"
)

// newFixture builds:
//
//	t1: users u1, u2, u3 (deleted); models m1, m2, m3 (deleted)
//	t2: users u4, u5 (lazy); model m4
//	t3 (deleted): user u6 (deleted)
//
// u3 authors the most revisions in t1 but is deleted, leaving u1 and u2 tied.
func newFixture(t *testing.T) *tutil.Fixture {
	f := tutil.NewFixture(t)

	f.Tenant("t1", "bright-purple-cat", false).
		Tenant("t2", "icy-green-dog", false).
		Tenant("t3", "dusty-purple-axe", true)

	f.User("u1", "t1", false).
		User("u2", "t1", false).
		User("u3", "t1", true).
		User("u4", "t2", false).
		User("u5", "t2", false).
		User("u6", "t3", true)

	f.Model("m1", "t1", "alpha", false).
		Model("m2", "t1", "Beta", false).
		Model("m3", "t1", "gamma", true).
		Model("m4", "t2", "delta", false)

	f.Revision("r1", "m1", "u1", 0, 100, false).
		Revision("r2", "m1", "u1", 1, 180, false).
		Revision("r3", "m1", "u2", 2, 250, true).
		Revision("r4", "m2", "u3", 0, 120, false).
		Revision("r5", "m2", "u3", 1, 190, false).
		Revision("r6", "m2", "u3", 2, 240, false).
		Revision("r7", "m3", "u2", 0, 400, true).
		Revision("r8", "m4", "u4", 0, 90, false)

	return f
}

func TestTenantQueries(t *testing.T) {
	f := newFixture(t)

	purple, err := insight.GetPurpleTenantsCount(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, int64(2), purple)

	active, err := insight.GetActiveTenants(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, []string{"t1", "t2"}, active)

	largest, err := insight.GetLargestTenants(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, []insight.TenantCount{{TenantID: "t1", Total: 2}, {TenantID: "t2", Total: 2}}, largest)

	// t1 wins the tie and its deleted model m3 is still counted.
	modelCount, err := insight.GetModelCountOfLargestTenant(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, int64(3), modelCount)

	heaviest, err := insight.GetRevisionHeaviestTenant(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, "t1", heaviest)

	title, err := insight.GetRevisionHeaviestTenantLatestModelTitle(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, "Beta", title)
}

func TestRevisionHeaviestTenantTieGoesToLowestID(t *testing.T) {
	f := tutil.NewFixture(t)

	// tb is written first and both tenants own two live revisions.
	f.Tenant("tb", "n", false).
		Tenant("ta", "n", false).
		User("ub", "tb", false).
		User("ua", "ta", false).
		Model("mb", "tb", "from-b", false).
		Model("ma1", "ta", "older-a", false).
		Model("ma2", "ta", "newer-a", false).
		Model("ma3", "ta", "deleted-a", true)

	f.Revision("rb1", "mb", "ub", 0, 10, false).
		Revision("rb2", "mb", "ub", 1, 900, false).
		Revision("rb3", "mb", "ub", 2, 950, true).
		Revision("ra1", "ma1", "ua", 0, 20, false).
		Revision("ra2", "ma2", "ua", 0, 30, false).
		Revision("ra3", "ma1", "ua", 1, 40, true).
		Revision("ra4", "ma3", "ua", 0, 50, true)

	heaviest, err := insight.GetRevisionHeaviestTenant(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, "ta", heaviest)

	title, err := insight.GetRevisionHeaviestTenantLatestModelTitle(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, "newer-a", title)
}

func TestUserQueries(t *testing.T) {
	f := newFixture(t)

	lazy, err := insight.GetLazyUsers(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, []string{"u5"}, lazy)

	users, err := insight.GetMostActiveUsers(f.DBPath, "t1")
	require.NoError(t, err)
	require.Equal(t, []imodel.User{
		{ID: "u1", FirstName: "first-u1", LastName: "last-u1"},
		{ID: "u2", FirstName: "first-u2", LastName: "last-u2"},
	}, users)

	users, err = insight.GetMostActiveUsers(f.DBPath, "t2")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "u4", users[0].ID)

	users, err = insight.GetMostActiveUsers(f.DBPath, "no-such-tenant")
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestLazyUserWithOnlyDeletedRevision(t *testing.T) {
	f := tutil.NewFixture(t)
	f.Tenant("t1", "n", false).
		User("u1", "t1", false).
		User("u2", "t1", false).
		Model("m1", "t1", "m", false).
		Revision("r1", "m1", "u1", 0, 10, true)

	lazy, err := insight.GetLazyUsers(f.DBPath)
	require.NoError(t, err)
	require.Equal(t, []string{"u2"}, lazy)
}

func TestModelQueries(t *testing.T) {
	f := newFixture(t)

	revisions, err := insight.GetChronologicalModelRevisions(f.DBPath, "m2")
	require.NoError(t, err)
	require.Len(t, revisions, 3)
	for i, id := range []string{"r4", "r5", "r6"} {
		require.Equal(t, id, revisions[i].ID)
	}

	revisions, err = insight.GetChronologicalModelRevisions(f.DBPath, "no-such-model")
	require.NoError(t, err)
	require.NotNil(t, revisions)
	require.Empty(t, revisions)

	titles, err := insight.GetOrderedActiveModelTitles(f.DBPath, "t1", false)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "Beta"}, titles)

	titles, err = insight.GetOrderedActiveModelTitles(f.DBPath, "t3", true)
	require.NoError(t, err)
	require.Empty(t, titles)
}

func TestOrderedActiveModelTitles(t *testing.T) {
	f := tutil.NewFixture(t)
	f.Tenant("t1", "n", false).
		Model("m1", "t1", "beta", false).
		Model("m2", "t1", "Beta", false).
		Model("m3", "t1", "alpha", false).
		Model("m4", "t1", "BETA", false).
		Model("m5", "t1", "Alpha", true)

	titles, err := insight.GetOrderedActiveModelTitles(f.DBPath, "t1", true)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "BETA", "Beta", "beta"}, titles)

	titles, err = insight.GetOrderedActiveModelTitles(f.DBPath, "t1", false)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "Beta", "BETA"}, titles)
}

func TestForecastQuery(t *testing.T) {
	f := newFixture(t)

	forecast, err := insight.GetForecastedModelRevisionGrowthRate(f.DBPath, 100, 4)
	require.NoError(t, err)
	require.Len(t, forecast, 4)
	for _, ratio := range forecast {
		require.GreaterOrEqual(t, ratio, 1.0)
	}

	_, err = insight.GetForecastedModelRevisionGrowthRate(f.DBPath, 0, 4)
	require.ErrorIs(t, err, insight.ErrInvalidArgument)

	_, err = insight.GetForecastedModelRevisionGrowthRate(f.DBPath, 1000, 4)
	require.ErrorIs(t, err, insight.ErrDivisionByZero)
}

func TestQueriesOverEmptyDatabase(t *testing.T) {
	_, dbPath := tutil.NewTestDB(t)

	active, err := insight.GetActiveTenants(dbPath)
	require.NoError(t, err)
	require.Empty(t, active)

	lazy, err := insight.GetLazyUsers(dbPath)
	require.NoError(t, err)
	require.Empty(t, lazy)

	count, err := insight.GetModelCountOfLargestTenant(dbPath)
	require.NoError(t, err)
	require.Zero(t, count)

	heaviest, err := insight.GetRevisionHeaviestTenant(dbPath)
	require.NoError(t, err)
	require.Empty(t, heaviest)

	title, err := insight.GetRevisionHeaviestTenantLatestModelTitle(dbPath)
	require.NoError(t, err)
	require.Empty(t, title)

	_, err = insight.GetForecastedModelRevisionGrowthRate(dbPath, 10, 3)
	require.ErrorIs(t, err, insight.ErrDivisionByZero)

	forecast, err := insight.GetForecastedModelRevisionGrowthRate(dbPath, 10, 0)
	require.NoError(t, err)
	require.Empty(t, forecast)
}

func TestQueriesRequireExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	_, err := insight.GetActiveTenants(dbPath)
	require.Error(t, err)

	_, err = insight.GetForecastedModelRevisionGrowthRate(dbPath, 10, 3)
	require.Error(t, err)
}

// generatedData holds every row of a generated database so answers can be
// recomputed without going through the stors.
type generatedData struct {
	objects   map[string]imodel.Object
	users     []imodel.User
	models    map[string]imodel.Model
	revisions []imodel.ModelRevision
}

func loadGenerated(t *testing.T, dbPath string) *generatedData {
	db, err := insightdb.OpenExistingSqliteFile(dbPath)
	require.NoError(t, err)
	defer func() { _ = insightdb.Close(db) }()

	var objects []imodel.Object
	require.NoError(t, db.Find(&objects).Error)

	data := &generatedData{objects: make(map[string]imodel.Object, len(objects))}
	for _, obj := range objects {
		data.objects[obj.ID] = obj
	}

	require.NoError(t, db.Order("id").Find(&data.users).Error)

	var models []imodel.Model
	require.NoError(t, db.Find(&models).Error)
	data.models = make(map[string]imodel.Model, len(models))
	for _, m := range models {
		data.models[m.ID] = m
	}
	require.NoError(t, db.Find(&data.revisions).Error)

	return data
}

func TestQueriesAgainstGeneratedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "insight.db")
	_, err := generator.GenerateDatabase(context.Background(), dbPath,
		generator.Options{ScalingFactor: 1, LazyUserScalingFactor: 1, Seed: 2024})
	require.NoError(t, err)

	data := loadGenerated(t, dbPath)

	authored := make(map[string]int)
	authoredInTenant := make(map[string]map[string]int)
	revisionsByModel := make(map[string]int)
	for _, r := range data.revisions {
		authored[r.AuthorID]++
		revisionsByModel[r.ModelID]++
		tenant := data.objects[r.ID].Tenant
		if authoredInTenant[tenant] == nil {
			authoredInTenant[tenant] = make(map[string]int)
		}
		authoredInTenant[tenant][r.AuthorID]++
	}

	expectedLazy := []string{}
	activeTenantSet := make(map[string]bool)
	for _, u := range data.users {
		obj := data.objects[u.ID]
		if obj.MarkedForDeletion {
			continue
		}
		activeTenantSet[obj.Tenant] = true
		if authored[u.ID] == 0 {
			expectedLazy = append(expectedLazy, u.ID)
		}
	}

	expectedActive := make([]string, 0, len(activeTenantSet))
	for tenantID := range activeTenantSet {
		expectedActive = append(expectedActive, tenantID)
	}
	sort.Strings(expectedActive)

	active, err := insight.GetActiveTenants(dbPath)
	require.NoError(t, err)
	require.Equal(t, expectedActive, active)

	lazy, err := insight.GetLazyUsers(dbPath)
	require.NoError(t, err)
	require.Equal(t, expectedLazy, lazy)

	for _, tenantID := range active {
		most := 0
		for userID, count := range authoredInTenant[tenantID] {
			if !data.objects[userID].MarkedForDeletion && count > most {
				most = count
			}
		}

		users, err := insight.GetMostActiveUsers(dbPath, tenantID)
		require.NoError(t, err)
		for _, u := range users {
			require.False(t, data.objects[u.ID].MarkedForDeletion)
			require.Equal(t, most, authoredInTenant[tenantID][u.ID], "tenant %s user %s", tenantID, u.ID)
		}

		tied := 0
		for userID, count := range authoredInTenant[tenantID] {
			if !data.objects[userID].MarkedForDeletion && count == most && most > 0 {
				tied++
			}
		}
		require.Len(t, users, tied)
	}

	checked := 0
	for modelID, count := range revisionsByModel {
		revisions, err := insight.GetChronologicalModelRevisions(dbPath, modelID)
		require.NoError(t, err)
		require.Len(t, revisions, count)
		for i := 1; i < len(revisions); i++ {
			require.GreaterOrEqual(t, revisions[i].CreationDate, revisions[i-1].CreationDate)
		}

		if checked++; checked == 25 {
			break
		}
	}

	expectedHeaviest, expectedTitle := heaviestTenantAndLatestTitle(data)

	heaviest, err := insight.GetRevisionHeaviestTenant(dbPath)
	require.NoError(t, err)
	require.Equal(t, expectedHeaviest, heaviest)

	title, err := insight.GetRevisionHeaviestTenantLatestModelTitle(dbPath)
	require.NoError(t, err)
	require.Equal(t, expectedTitle, title)

	forecast, err := insight.GetForecastedModelRevisionGrowthRate(dbPath, 10000, 5)
	require.NoError(t, err)
	require.Len(t, forecast, 5)
}

// heaviestTenantAndLatestTitle recomputes, from raw rows, the tenant with the
// most live revisions (lowest id on ties) and the title of its live model
// holding the newest live revision (lowest model id on ties).
func heaviestTenantAndLatestTitle(data *generatedData) (string, string) {
	live := make(map[string]int)
	for _, r := range data.revisions {
		obj := data.objects[r.ID]
		if !obj.MarkedForDeletion {
			live[obj.Tenant]++
		}
	}

	heaviest := ""
	for tenantID, count := range live {
		if heaviest == "" || count > live[heaviest] || (count == live[heaviest] && tenantID < heaviest) {
			heaviest = tenantID
		}
	}

	if heaviest == "" {
		return "", ""
	}

	var (
		latestModel string
		latestDate  int64
	)
	for _, r := range data.revisions {
		model := data.objects[r.ModelID]
		if data.objects[r.ID].MarkedForDeletion || model.MarkedForDeletion || model.Tenant != heaviest {
			continue
		}

		if latestModel == "" || r.CreationDate > latestDate || (r.CreationDate == latestDate && r.ModelID < latestModel) {
			latestModel, latestDate = r.ModelID, r.CreationDate
		}
	}

	if latestModel == "" {
		return heaviest, ""
	}

	return heaviest, data.models[latestModel].Title
}
