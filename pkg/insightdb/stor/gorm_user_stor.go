package stor

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

func (s *GormUserStor) CreateUsers(objects []imodel.Object, users []imodel.User) error {
	return createWithObjects(s.db, imodel.ObjectTypeUser, objects, users, func(u imodel.User) string { return u.ID })
}

// ListLazyUserIDs returns the users not marked for deletion that never authored
// a revision. Revisions marked for deletion still count as authored.
func (s *GormUserStor) ListLazyUserIDs() ([]string, error) {
	var userIDs []string
	err := s.db.Table("Users AS u").
		Joins("JOIN Objects AS o ON o.id = u.id").
		Where("o.marked_for_deletion = ?", false).
		Where("NOT EXISTS (SELECT 1 FROM ModelRevisions AS r WHERE r.author = u.id)").
		Order("u.id").
		Pluck("u.id", &userIDs).Error
	return userIDs, err
}

// ListActiveUserActivityForTenant counts the revisions of tenantID authored by
// each of its users that is not marked for deletion. Users that authored nothing
// are left out. The most active users come first.
func (s *GormUserStor) ListActiveUserActivityForTenant(tenantID string) ([]UserActivity, error) {
	var activity []UserActivity
	err := s.db.Table("ModelRevisions AS r").
		Select("u.id AS id, u.first_name AS first_name, u.last_name AS last_name, COUNT(*) AS revisions").
		Joins("JOIN Objects AS ro ON ro.id = r.id").
		Joins("JOIN Users AS u ON u.id = r.author").
		Joins("JOIN Objects AS uo ON uo.id = u.id").
		Where("uo.marked_for_deletion = ?", false).
		Where("uo.tenant = ? AND ro.tenant = ?", tenantID, tenantID).
		Group("u.id, u.first_name, u.last_name").
		Order("revisions DESC, u.id").
		Scan(&activity).Error
	return activity, err
}
