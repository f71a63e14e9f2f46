package insightapi

import (
	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
)

// Querier is the set of questions the API answers. *insight.Querier
// implements it.
type Querier interface {
	PurpleTenantsCount() (int64, error)
	ActiveTenants() ([]string, error)
	LargestTenants() ([]insight.TenantCount, error)
	ModelCountOfLargestTenant() (int64, error)
	RevisionHeaviestTenant() (string, error)
	RevisionHeaviestTenantLatestModelTitle() (string, error)
	LazyUsers() ([]string, error)
	MostActiveUsers(tenantID string) ([]imodel.User, error)
	ChronologicalModelRevisions(modelID string) ([]imodel.ModelRevision, error)
	OrderedActiveModelTitles(tenantID string, caseSensitive bool) ([]string, error)
	ForecastedModelRevisionGrowthRate(intervalWidth int64, intervals int) ([]float64, error)
}
