package imodel

// ModelRevision is one numbered snapshot of a model. RevisionNumber starts at 0
// and follows CreationDate order within a model.
type ModelRevision struct {
	ID             string `gorm:"column:id;primaryKey;type:varchar(32)" json:"id"`
	ModelID        string `gorm:"column:model;type:varchar(32);index" json:"model"`
	AuthorID       string `gorm:"column:author;type:varchar(32);index" json:"author"`
	RevisionNumber int    `gorm:"column:revision_number" json:"revision_number"`
	CreationDate   int64  `gorm:"column:creation_date" json:"creation_date"`
}

func (ModelRevision) TableName() string {
	return "ModelRevisions"
}
