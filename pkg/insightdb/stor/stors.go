package stor

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"gorm.io/gorm"
)

// TenantCount pairs a tenant with a count of something it owns.
type TenantCount struct {
	TenantID string `gorm:"column:tenant_id" json:"tenant_id"`
	Total    int64  `gorm:"column:total" json:"total"`
}

// UserActivity is a user together with the number of revisions they authored.
type UserActivity struct {
	ID        string `gorm:"column:id" json:"id"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`
	Revisions int64  `gorm:"column:revisions" json:"revisions"`
}

func (a UserActivity) User() imodel.User {
	return imodel.User{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName}
}

type TenantStor interface {
	CreateTenants(objects []imodel.Object, tenants []imodel.Tenant) error
	GetTenantByID(tenantID string) (*imodel.Tenant, error)
	CountTenantsWithNameContaining(fragment string) (int64, error)
	ListActiveTenantIDs() ([]string, error)
	CountActiveUsersPerTenant() ([]TenantCount, error)
	CountActiveRevisionsPerTenant() ([]TenantCount, error)
}

type UserStor interface {
	CreateUsers(objects []imodel.Object, users []imodel.User) error
	ListLazyUserIDs() ([]string, error)
	ListActiveUserActivityForTenant(tenantID string) ([]UserActivity, error)
}

type ModelStor interface {
	CreateModels(objects []imodel.Object, models []imodel.Model) error
	CountModelsForTenant(tenantID string) (int64, error)
	ListActiveModelTitlesForTenant(tenantID string) ([]string, error)
	GetLatestRevisedActiveModelForTenant(tenantID string) (*imodel.Model, error)
	ListModelCreationDates() ([]int64, error)
}

type ModelRevisionStor interface {
	CreateModelRevisions(objects []imodel.Object, revisions []imodel.ModelRevision) error
	ListRevisionsForModel(modelID string) ([]imodel.ModelRevision, error)
	ListRevisionCreationDates() ([]int64, error)
}

type Stors struct {
	TenantStor        TenantStor
	UserStor          UserStor
	ModelStor         ModelStor
	ModelRevisionStor ModelRevisionStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		TenantStor:        NewGormTenantStor(db),
		UserStor:          NewGormUserStor(db),
		ModelStor:         NewGormModelStor(db),
		ModelRevisionStor: NewGormModelRevisionStor(db),
	}
}
