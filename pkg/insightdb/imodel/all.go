package imodel

// All lists every table model in the order the tables must be created.
func All() []interface{} {
	return []interface{}{
		&Object{},
		&Tenant{},
		&User{},
		&Model{},
		&ModelRevision{},
	}
}
