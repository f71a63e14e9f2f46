package stor

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"gorm.io/gorm"
)

type GormModelRevisionStor struct {
	db *gorm.DB
}

func NewGormModelRevisionStor(db *gorm.DB) *GormModelRevisionStor {
	return &GormModelRevisionStor{db: db}
}

func (s *GormModelRevisionStor) CreateModelRevisions(objects []imodel.Object, revisions []imodel.ModelRevision) error {
	return createWithObjects(s.db, imodel.ObjectTypeRevision, objects, revisions,
		func(r imodel.ModelRevision) string { return r.ID })
}

// ListRevisionsForModel returns every revision of the model, oldest first.
func (s *GormModelRevisionStor) ListRevisionsForModel(modelID string) ([]imodel.ModelRevision, error) {
	var revisions []imodel.ModelRevision
	err := s.db.Where("model = ?", modelID).
		Order("creation_date, revision_number, id").
		Find(&revisions).Error
	return revisions, err
}

func (s *GormModelRevisionStor) ListRevisionCreationDates() ([]int64, error) {
	var dates []int64
	err := s.db.Model(&imodel.ModelRevision{}).
		Order("creation_date").
		Pluck("creation_date", &dates).Error
	return dates, err
}
