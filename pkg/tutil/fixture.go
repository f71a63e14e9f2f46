package tutil

import (
	"testing"

	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/materials-commons/mcinsight/pkg/insightdb/stor"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fixture builds small, hand written datasets. Child rows take their tenant from
// the parent they are attached to, so fixtures always satisfy the tenant
// hierarchy.
type Fixture struct {
	T      *testing.T
	DB     *gorm.DB
	DBPath string
	Stors  *stor.Stors

	modelTenants map[string]string
}

func NewFixture(t *testing.T) *Fixture {
	db, dbPath := NewTestDB(t)
	return &Fixture{
		T:            t,
		DB:           db,
		DBPath:       dbPath,
		Stors:        stor.NewGormStors(db),
		modelTenants: make(map[string]string),
	}
}

func (f *Fixture) Tenant(id, name string, deleted bool) *Fixture {
	f.T.Helper()
	obj := imodel.Object{ID: id, ObjectType: imodel.ObjectTypeTenant, Tenant: id, MarkedForDeletion: deleted}
	err := f.Stors.TenantStor.CreateTenants([]imodel.Object{obj}, []imodel.Tenant{{ID: id, Name: name}})
	require.NoErrorf(f.T, err, "Failed creating tenant %s: %s", id, err)
	return f
}

func (f *Fixture) User(id, tenantID string, deleted bool) *Fixture {
	f.T.Helper()
	obj := imodel.Object{ID: id, ObjectType: imodel.ObjectTypeUser, Tenant: tenantID, MarkedForDeletion: deleted}
	user := imodel.User{ID: id, FirstName: "first-" + id, LastName: "last-" + id}
	err := f.Stors.UserStor.CreateUsers([]imodel.Object{obj}, []imodel.User{user})
	require.NoErrorf(f.T, err, "Failed creating user %s: %s", id, err)
	return f
}

func (f *Fixture) Model(id, tenantID, title string, deleted bool) *Fixture {
	f.T.Helper()
	obj := imodel.Object{ID: id, ObjectType: imodel.ObjectTypeModel, Tenant: tenantID, MarkedForDeletion: deleted}
	err := f.Stors.ModelStor.CreateModels([]imodel.Object{obj}, []imodel.Model{{ID: id, Title: title}})
	require.NoErrorf(f.T, err, "Failed creating model %s: %s", id, err)
	f.modelTenants[id] = tenantID
	return f
}

// Revision adds a revision of modelID authored by authorID. The model must have
// been added to the fixture first.
func (f *Fixture) Revision(id, modelID, authorID string, number int, creationDate int64, deleted bool) *Fixture {
	f.T.Helper()
	tenantID, ok := f.modelTenants[modelID]
	require.Truef(f.T, ok, "Revision %s references unknown model %s", id, modelID)

	obj := imodel.Object{ID: id, ObjectType: imodel.ObjectTypeRevision, Tenant: tenantID, MarkedForDeletion: deleted}
	revision := imodel.ModelRevision{
		ID:             id,
		ModelID:        modelID,
		AuthorID:       authorID,
		RevisionNumber: number,
		CreationDate:   creationDate,
	}
	err := f.Stors.ModelRevisionStor.CreateModelRevisions([]imodel.Object{obj}, []imodel.ModelRevision{revision})
	require.NoErrorf(f.T, err, "Failed creating revision %s: %s", id, err)
	return f
}

