package stor

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"gorm.io/gorm"
)

type GormTenantStor struct {
	db *gorm.DB
}

func NewGormTenantStor(db *gorm.DB) *GormTenantStor {
	return &GormTenantStor{db: db}
}

func (s *GormTenantStor) CreateTenants(objects []imodel.Object, tenants []imodel.Tenant) error {
	return createWithObjects(s.db, imodel.ObjectTypeTenant, objects, tenants, func(t imodel.Tenant) string { return t.ID })
}

func (s *GormTenantStor) GetTenantByID(tenantID string) (*imodel.Tenant, error) {
	var tenant imodel.Tenant
	if err := s.db.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		return nil, err
	}

	return &tenant, nil
}

func (s *GormTenantStor) CountTenantsWithNameContaining(fragment string) (int64, error) {
	var count int64
	err := s.db.Model(&imodel.Tenant{}).Where("name LIKE ?", "%"+fragment+"%").Count(&count).Error
	return count, err
}

// ListActiveTenantIDs returns, in id order, the tenants that have at least one
// user not marked for deletion.
func (s *GormTenantStor) ListActiveTenantIDs() ([]string, error) {
	var tenantIDs []string
	err := s.db.Table("Objects AS o").
		Joins("JOIN Users AS u ON u.id = o.id").
		Joins("JOIN Tenants AS t ON t.id = o.tenant").
		Where("o.object_type = ? AND o.marked_for_deletion = ?", imodel.ObjectTypeUser, false).
		Group("o.tenant").
		Order("o.tenant").
		Pluck("o.tenant", &tenantIDs).Error
	return tenantIDs, err
}

// CountActiveUsersPerTenant returns the number of users not marked for deletion
// for each tenant that has any, largest first and then by tenant id.
func (s *GormTenantStor) CountActiveUsersPerTenant() ([]TenantCount, error) {
	var counts []TenantCount
	err := s.db.Table("Objects AS o").
		Select("o.tenant AS tenant_id, COUNT(*) AS total").
		Joins("JOIN Users AS u ON u.id = o.id").
		Joins("JOIN Tenants AS t ON t.id = o.tenant").
		Where("o.object_type = ? AND o.marked_for_deletion = ?", imodel.ObjectTypeUser, false).
		Group("o.tenant").
		Order("total DESC, o.tenant").
		Scan(&counts).Error
	return counts, err
}

// CountActiveRevisionsPerTenant returns the number of revisions not marked for
// deletion for each tenant that has any, largest first and then by tenant id.
func (s *GormTenantStor) CountActiveRevisionsPerTenant() ([]TenantCount, error) {
	var counts []TenantCount
	err := s.db.Table("ModelRevisions AS r").
		Select("o.tenant AS tenant_id, COUNT(*) AS total").
		Joins("JOIN Objects AS o ON o.id = r.id").
		Joins("JOIN Tenants AS t ON t.id = o.tenant").
		Where("o.marked_for_deletion = ?", false).
		Group("o.tenant").
		Order("total DESC, o.tenant").
		Scan(&counts).Error
	return counts, err
}
