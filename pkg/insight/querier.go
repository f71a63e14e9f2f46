package insight

import (
	"github.com/apex/log"
	"github.com/materials-commons/mcinsight/pkg/clog"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/materials-commons/mcinsight/pkg/insightdb/stor"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PurpleFragment is the name fragment GetPurpleTenantsCount looks for.
const PurpleFragment = "purple"

// TenantCount is a tenant id with the number of things counted for it.
type TenantCount = stor.TenantCount

// Querier answers the analytical questions over a database that is already
// open. The package level functions open a database file, use a Querier and
// close the file again.
type Querier struct {
	stors *stor.Stors
	log   *log.Entry

	// ForecastWindow is the number of trailing growth ratios the forecast fits
	// its trend to. Zero means DefaultForecastWindow.
	ForecastWindow int
}

func NewQuerier(db *gorm.DB) *Querier {
	return NewQuerierWithStors(stor.NewGormStors(db))
}

func NewQuerierWithStors(stors *stor.Stors) *Querier {
	return &Querier{
		stors: stors,
		log:   clog.UsingCtx(clog.QueryCtx),
	}
}

func (q *Querier) PurpleTenantsCount() (int64, error) {
	count, err := q.stors.TenantStor.CountTenantsWithNameContaining(PurpleFragment)
	if err != nil {
		return 0, errors.Wrap(err, "counting purple tenants")
	}

	return count, nil
}

// ActiveTenants returns the ids of tenants with at least one user that is not
// marked for deletion.
func (q *Querier) ActiveTenants() ([]string, error) {
	tenantIDs, err := q.stors.TenantStor.ListActiveTenantIDs()
	if err != nil {
		return nil, errors.Wrap(err, "listing active tenants")
	}

	return nonNil(tenantIDs), nil
}

// LargestTenants returns every tenant tied for the most users not marked for
// deletion, in tenant id order.
func (q *Querier) LargestTenants() ([]TenantCount, error) {
	counts, err := q.stors.TenantStor.CountActiveUsersPerTenant()
	if err != nil {
		return nil, errors.Wrap(err, "counting users per tenant")
	}

	return topTied(counts), nil
}

// ModelCountOfLargestTenant counts all models, deleted or not, of the largest
// tenant. Ties go to the lowest tenant id. With no active tenants the count
// is 0.
func (q *Querier) ModelCountOfLargestTenant() (int64, error) {
	largest, err := q.LargestTenants()
	if err != nil || len(largest) == 0 {
		return 0, err
	}

	q.log.Debugf("Largest tenant is %s with %d users", largest[0].TenantID, largest[0].Total)
	count, err := q.stors.ModelStor.CountModelsForTenant(largest[0].TenantID)
	if err != nil {
		return 0, errors.Wrapf(err, "counting models of tenant %s", largest[0].TenantID)
	}

	return count, nil
}

// RevisionHeaviestTenant returns the tenant owning the most revisions not marked
// for deletion. Ties go to the lowest tenant id. It returns "" when there are no
// such revisions.
func (q *Querier) RevisionHeaviestTenant() (string, error) {
	counts, err := q.stors.TenantStor.CountActiveRevisionsPerTenant()
	if err != nil {
		return "", errors.Wrap(err, "counting revisions per tenant")
	}

	if len(counts) == 0 {
		return "", nil
	}

	return counts[0].TenantID, nil
}

// RevisionHeaviestTenantLatestModelTitle returns the title of the revision
// heaviest tenant's model with the newest revision. Deleted models and deleted
// revisions are ignored.
func (q *Querier) RevisionHeaviestTenantLatestModelTitle() (string, error) {
	tenantID, err := q.RevisionHeaviestTenant()
	if err != nil || tenantID == "" {
		return "", err
	}

	model, err := q.stors.ModelStor.GetLatestRevisedActiveModelForTenant(tenantID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil
	case err != nil:
		return "", errors.Wrapf(err, "finding latest model of tenant %s", tenantID)
	default:
		return model.Title, nil
	}
}

// LazyUsers returns the ids of users not marked for deletion that never authored
// a revision.
func (q *Querier) LazyUsers() ([]string, error) {
	userIDs, err := q.stors.UserStor.ListLazyUserIDs()
	if err != nil {
		return nil, errors.Wrap(err, "listing lazy users")
	}

	return nonNil(userIDs), nil
}

// MostActiveUsers returns the users of tenantID, not marked for deletion, tied
// for the most revisions authored in that tenant.
func (q *Querier) MostActiveUsers(tenantID string) ([]imodel.User, error) {
	activity, err := q.stors.UserStor.ListActiveUserActivityForTenant(tenantID)
	if err != nil {
		return nil, errors.Wrapf(err, "counting revisions per user of tenant %s", tenantID)
	}

	users := []imodel.User{}
	for _, a := range activity {
		if a.Revisions != activity[0].Revisions {
			break
		}
		users = append(users, a.User())
	}

	return users, nil
}

func (q *Querier) ChronologicalModelRevisions(modelID string) ([]imodel.ModelRevision, error) {
	revisions, err := q.stors.ModelRevisionStor.ListRevisionsForModel(modelID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing revisions of model %s", modelID)
	}

	if revisions == nil {
		revisions = []imodel.ModelRevision{}
	}

	return revisions, nil
}

func (q *Querier) OrderedActiveModelTitles(tenantID string, caseSensitive bool) ([]string, error) {
	titles, err := q.stors.ModelStor.ListActiveModelTitlesForTenant(tenantID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing model titles of tenant %s", tenantID)
	}

	return SortStrings(titles, caseSensitive), nil
}

// ForecastedModelRevisionGrowthRate forecasts the growth ratio of models plus
// revisions for the next intervals intervals of width intervalWidth. See
// ForecastGrowthRates.
func (q *Querier) ForecastedModelRevisionGrowthRate(intervalWidth int64, intervals int) ([]float64, error) {
	if intervalWidth <= 0 || intervals < 0 {
		return ForecastGrowthRates(nil, intervalWidth, intervals, q.ForecastWindow)
	}

	modelDates, err := q.stors.ModelStor.ListModelCreationDates()
	if err != nil {
		return nil, errors.Wrap(err, "listing model creation dates")
	}

	revisionDates, err := q.stors.ModelRevisionStor.ListRevisionCreationDates()
	if err != nil {
		return nil, errors.Wrap(err, "listing revision creation dates")
	}

	q.log.Debugf("Forecasting from %d models and %d revisions", len(modelDates), len(revisionDates))
	return ForecastGrowthRates(append(modelDates, revisionDates...), intervalWidth, intervals, q.ForecastWindow)
}

// topTied returns the leading entries of counts that share the first entry's
// total. counts must be sorted largest first.
func topTied(counts []TenantCount) []TenantCount {
	tied := []TenantCount{}
	for _, c := range counts {
		if c.Total != counts[0].Total {
			break
		}
		tied = append(tied, c)
	}

	return tied
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
