package imodel

// Object types stored in Objects.object_type.
const (
	ObjectTypeTenant   = "tenant"
	ObjectTypeUser     = "user"
	ObjectTypeModel    = "model"
	ObjectTypeRevision = "revision"
)

// Object is the identity row every tenant, user, model and revision has. The
// tenant of a tenant Object is its own id.
type Object struct {
	ID                string `gorm:"column:id;primaryKey;type:varchar(32)" json:"id"`
	ObjectType        string `gorm:"column:object_type;type:varchar(255)" json:"object_type"`
	Tenant            string `gorm:"column:tenant;type:varchar(32);index" json:"tenant"`
	MarkedForDeletion bool   `gorm:"column:marked_for_deletion;default:false" json:"marked_for_deletion"`
}

func (Object) TableName() string {
	return "Objects"
}
