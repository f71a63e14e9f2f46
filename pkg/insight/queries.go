package insight

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
)

// withQuerier opens the database file at dbPath, runs fn against it and closes
// the file whatever fn returns.
func withQuerier[T any](dbPath string, fn func(q *Querier) (T, error)) (T, error) {
	db, err := insightdb.OpenExistingSqliteFile(dbPath)
	if err != nil {
		var zero T
		return zero, err
	}
	defer func() { _ = insightdb.Close(db) }()

	return fn(NewQuerier(db))
}

// GetPurpleTenantsCount counts the tenants with "purple" in their name.
func GetPurpleTenantsCount(dbPath string) (int64, error) {
	return withQuerier(dbPath, func(q *Querier) (int64, error) {
		return q.PurpleTenantsCount()
	})
}

func GetActiveTenants(dbPath string) ([]string, error) {
	return withQuerier(dbPath, func(q *Querier) ([]string, error) {
		return q.ActiveTenants()
	})
}

func GetModelCountOfLargestTenant(dbPath string) (int64, error) {
	return withQuerier(dbPath, func(q *Querier) (int64, error) {
		return q.ModelCountOfLargestTenant()
	})
}

func GetLargestTenants(dbPath string) ([]TenantCount, error) {
	return withQuerier(dbPath, func(q *Querier) ([]TenantCount, error) {
		return q.LargestTenants()
	})
}

func GetRevisionHeaviestTenant(dbPath string) (string, error) {
	return withQuerier(dbPath, func(q *Querier) (string, error) {
		return q.RevisionHeaviestTenant()
	})
}

func GetRevisionHeaviestTenantLatestModelTitle(dbPath string) (string, error) {
	return withQuerier(dbPath, func(q *Querier) (string, error) {
		return q.RevisionHeaviestTenantLatestModelTitle()
	})
}

func GetLazyUsers(dbPath string) ([]string, error) {
	return withQuerier(dbPath, func(q *Querier) ([]string, error) {
		return q.LazyUsers()
	})
}

func GetMostActiveUsers(dbPath, tenantID string) ([]imodel.User, error) {
	return withQuerier(dbPath, func(q *Querier) ([]imodel.User, error) {
		return q.MostActiveUsers(tenantID)
	})
}

func GetChronologicalModelRevisions(dbPath, modelID string) ([]imodel.ModelRevision, error) {
	return withQuerier(dbPath, func(q *Querier) ([]imodel.ModelRevision, error) {
		return q.ChronologicalModelRevisions(modelID)
	})
}

func GetOrderedActiveModelTitles(dbPath, tenantID string, caseSensitive bool) ([]string, error) {
	return withQuerier(dbPath, func(q *Querier) ([]string, error) {
		return q.OrderedActiveModelTitles(tenantID, caseSensitive)
	})
}

func GetForecastedModelRevisionGrowthRate(dbPath string, intervalWidth int64, intervals int) ([]float64, error) {
	return withQuerier(dbPath, func(q *Querier) ([]float64, error) {
		return q.ForecastedModelRevisionGrowthRate(intervalWidth, intervals)
	})
}
