package stor

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"gorm.io/gorm"
)

type GormModelStor struct {
	db *gorm.DB
}

func NewGormModelStor(db *gorm.DB) *GormModelStor {
	return &GormModelStor{db: db}
}

func (s *GormModelStor) CreateModels(objects []imodel.Object, models []imodel.Model) error {
	return createWithObjects(s.db, imodel.ObjectTypeModel, objects, models, func(m imodel.Model) string { return m.ID })
}

// CountModelsForTenant counts every model of the tenant, including models marked
// for deletion.
func (s *GormModelStor) CountModelsForTenant(tenantID string) (int64, error) {
	var count int64
	err := s.db.Table("Models AS m").
		Joins("JOIN Objects AS o ON o.id = m.id").
		Where("o.tenant = ?", tenantID).
		Count(&count).Error
	return count, err
}

// ListActiveModelTitlesForTenant returns the titles of the tenant's models that
// are not marked for deletion, in model id order.
func (s *GormModelStor) ListActiveModelTitlesForTenant(tenantID string) ([]string, error) {
	var titles []string
	err := s.db.Table("Models AS m").
		Joins("JOIN Objects AS o ON o.id = m.id").
		Where("o.tenant = ? AND o.marked_for_deletion = ?", tenantID, false).
		Order("m.id").
		Pluck("m.title", &titles).Error
	return titles, err
}

// GetLatestRevisedActiveModelForTenant returns the tenant's model, not marked for
// deletion, that owns the newest revision not marked for deletion. It returns
// gorm.ErrRecordNotFound when there is no such model.
func (s *GormModelStor) GetLatestRevisedActiveModelForTenant(tenantID string) (*imodel.Model, error) {
	var models []imodel.Model
	err := s.db.Table("ModelRevisions AS r").
		Select("m.id AS id, m.title AS title").
		Joins("JOIN Objects AS ro ON ro.id = r.id").
		Joins("JOIN Models AS m ON m.id = r.model").
		Joins("JOIN Objects AS mo ON mo.id = m.id").
		Where("mo.tenant = ? AND mo.marked_for_deletion = ?", tenantID, false).
		Where("ro.marked_for_deletion = ?", false).
		Order("r.creation_date DESC, m.id").
		Limit(1).
		Scan(&models).Error
	switch {
	case err != nil:
		return nil, err
	case len(models) == 0:
		return nil, gorm.ErrRecordNotFound
	default:
		return &models[0], nil
	}
}

// ListModelCreationDates returns, for every model with revisions, the creation
// date of its earliest revision. Models count as created at that moment.
func (s *GormModelStor) ListModelCreationDates() ([]int64, error) {
	var dates []int64
	err := s.db.Model(&imodel.ModelRevision{}).
		Group("model").
		Order("MIN(creation_date)").
		Pluck("MIN(creation_date)", &dates).Error
	return dates, err
}
