package imodel

type Tenant struct {
	ID   string `gorm:"column:id;primaryKey;type:varchar(32)" json:"id"`
	Name string `gorm:"column:name;type:varchar(255)" json:"name"`
}

func (Tenant) TableName() string {
	return "Tenants"
}
