package imodel

type User struct {
	ID        string `gorm:"column:id;primaryKey;type:varchar(32)" json:"id"`
	FirstName string `gorm:"column:first_name;type:varchar(255)" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:varchar(255)" json:"last_name"`
}

func (User) TableName() string {
	return "Users"
}
