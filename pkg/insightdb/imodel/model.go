package imodel

// Model is a named artifact owned by a tenant. Its tenant and deletion flag live
// on the matching Object row.
type Model struct {
	ID    string `gorm:"column:id;primaryKey;type:varchar(32)" json:"id"`
	Title string `gorm:"column:title;type:varchar(255)" json:"title"`
}

func (Model) TableName() string {
	return "Models"
}
