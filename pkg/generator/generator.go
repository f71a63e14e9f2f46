package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/apex/log"
	"github.com/materials-commons/mcinsight/pkg/clog"
	"github.com/materials-commons/mcinsight/pkg/insightdb"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/materials-commons/mcinsight/pkg/insightdb/stor"
	"github.com/pkg/errors"
)

const (
	DefaultScalingFactor         = 23
	DefaultLazyUserScalingFactor = 2
)

// Revision timestamps. Each model starts somewhere in [firstStartDate, lastStartDate]
// and revision n lands in the n-th slot of revisionSpacing after that start.
const (
	firstStartDate  = 21414
	lastStartDate   = 352145
	revisionSpacing = 73
	minRevisions    = 3
	maxRevisions    = 12
)

// Rows written per transaction.
const flushEvery = 5000

var ErrInvalidScalingFactor = errors.New("scaling factor must be at least 1")

type Options struct {
	// ScalingFactor sizes the tenant, user and model populations.
	ScalingFactor int

	// LazyUserScalingFactor sizes the users added after all revisions exist,
	// so none of them ever author anything.
	LazyUserScalingFactor int

	// Seed for the random source. Zero seeds from the clock.
	Seed int64

	// Logger receives progress messages. Defaults to the generator clog context.
	Logger *log.Entry
}

func DefaultOptions() Options {
	return Options{
		ScalingFactor:         DefaultScalingFactor,
		LazyUserScalingFactor: DefaultLazyUserScalingFactor,
	}
}

// Summary reports how many rows of each kind Populate wrote.
type Summary struct {
	Tenants   int `json:"tenants"`
	Users     int `json:"users"`
	Models    int `json:"models"`
	Revisions int `json:"revisions"`
	LazyUsers int `json:"lazy_users"`
}

type tenantRef struct {
	id      string
	deleted bool
}

type userRef struct {
	id            string
	tenantID      string
	tenantDeleted bool
}

type modelRef struct {
	id       string
	tenantID string
	deleted  bool
}

// Generator fills an empty, migrated database with random but consistent data.
// Parents are always written before their children.
type Generator struct {
	stors *stor.Stors
	opts  Options
	rng   *rand.Rand
	log   *log.Entry

	tenants       []tenantRef
	users         []userRef
	usersByTenant map[string][]string
	models        []modelRef
}

func New(stors *stor.Stors, opts Options) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = clog.UsingCtx(clog.GeneratorCtx)
	}

	return &Generator{
		stors:         stors,
		opts:          opts,
		rng:           rand.New(rand.NewSource(seed)),
		log:           logger,
		usersByTenant: make(map[string][]string),
	}
}

// GenerateDatabase replaces whatever is at dbPath with a freshly populated and
// optimized database.
func GenerateDatabase(ctx context.Context, dbPath string, opts Options) (*Summary, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	db, err := insightdb.RecreateDatabaseFile(dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = insightdb.Close(db) }()

	g := New(stor.NewGormStors(db), opts)
	summary, err := g.Populate(ctx)
	if err != nil {
		return nil, err
	}

	g.log.Infof("Optimizing database %s", dbPath)
	if err := insightdb.Optimize(db); err != nil {
		return nil, errors.Wrapf(err, "unable to optimize %s", dbPath)
	}

	return summary, nil
}

func validate(opts Options) error {
	if opts.ScalingFactor < 1 {
		return ErrInvalidScalingFactor
	}

	if opts.LazyUserScalingFactor < 0 {
		return fmt.Errorf("lazy user scaling factor must not be negative, got %d", opts.LazyUserScalingFactor)
	}

	return nil
}

// Populate writes tenants, users, models, revisions and finally the lazy users.
func (g *Generator) Populate(ctx context.Context) (*Summary, error) {
	if err := validate(g.opts); err != nil {
		return nil, err
	}

	var (
		summary Summary
		err     error
	)

	sf := g.opts.ScalingFactor

	if summary.Tenants, err = g.generateTenants(ctx, g.between(sf*3, sf*9)); err != nil {
		return nil, errors.Wrap(err, "generating tenants")
	}
	g.log.WithField("count", summary.Tenants).Info("Created tenants")

	if summary.Users, err = g.generateUsers(ctx, g.between(sf*50, sf*150)); err != nil {
		return nil, errors.Wrap(err, "generating users")
	}
	g.log.WithField("count", summary.Users).Info("Created users")

	if summary.Models, err = g.generateModels(ctx, g.between(sf*100, sf*300)); err != nil {
		return nil, errors.Wrap(err, "generating models")
	}
	g.log.WithField("count", summary.Models).Info("Created models")

	if summary.Revisions, err = g.generateRevisions(ctx); err != nil {
		return nil, errors.Wrap(err, "generating revisions")
	}
	g.log.WithField("count", summary.Revisions).Info("Created revisions")

	lsf := g.opts.LazyUserScalingFactor
	if summary.LazyUsers, err = g.generateUsers(ctx, g.between(lsf*50, lsf*150)); err != nil {
		return nil, errors.Wrap(err, "generating lazy users")
	}
	g.log.WithField("count", summary.LazyUsers).Info("Created lazy users")

	return &summary, nil
}

func (g *Generator) generateTenants(ctx context.Context, count int) (int, error) {
	var (
		objects []imodel.Object
		tenants []imodel.Tenant
	)

	flush := func() error {
		err := g.stors.TenantStor.CreateTenants(objects, tenants)
		objects, tenants = objects[:0], tenants[:0]
		return err
	}

	for i := 0; i < count; i++ {
		id, err := newID(g.rng)
		if err != nil {
			return i, err
		}

		deleted := g.between(0, 50) <= 42
		objects = append(objects, imodel.Object{
			ID:                id,
			ObjectType:        imodel.ObjectTypeTenant,
			Tenant:            id,
			MarkedForDeletion: deleted,
		})
		tenants = append(tenants, imodel.Tenant{ID: id, Name: randomName(g.rng)})
		g.tenants = append(g.tenants, tenantRef{id: id, deleted: deleted})

		if len(objects) >= flushEvery {
			if err := g.flushChecked(ctx, flush); err != nil {
				return i, err
			}
		}
	}

	return count, g.flushChecked(ctx, flush)
}

func (g *Generator) generateUsers(ctx context.Context, count int) (int, error) {
	var (
		objects []imodel.Object
		users   []imodel.User
	)

	if count > 0 && len(g.tenants) == 0 {
		return 0, fmt.Errorf("cannot create %d users without tenants", count)
	}

	flush := func() error {
		err := g.stors.UserStor.CreateUsers(objects, users)
		objects, users = objects[:0], users[:0]
		return err
	}

	for i := 0; i < count; i++ {
		id, err := newID(g.rng)
		if err != nil {
			return i, err
		}

		tenant := g.tenants[g.rng.Intn(len(g.tenants))]
		deleted := g.between(0, 50) >= 48 || tenant.deleted
		objects = append(objects, imodel.Object{
			ID:                id,
			ObjectType:        imodel.ObjectTypeUser,
			Tenant:            tenant.id,
			MarkedForDeletion: deleted,
		})
		users = append(users, imodel.User{ID: id, FirstName: randomName(g.rng), LastName: randomName(g.rng)})
		g.users = append(g.users, userRef{id: id, tenantID: tenant.id, tenantDeleted: tenant.deleted})
		g.usersByTenant[tenant.id] = append(g.usersByTenant[tenant.id], id)

		if len(objects) >= flushEvery {
			if err := g.flushChecked(ctx, flush); err != nil {
				return i, err
			}
		}
	}

	return count, g.flushChecked(ctx, flush)
}

func (g *Generator) generateModels(ctx context.Context, count int) (int, error) {
	var (
		objects []imodel.Object
		models  []imodel.Model
	)

	if count > 0 && len(g.users) == 0 {
		return 0, fmt.Errorf("cannot create %d models without users", count)
	}

	flush := func() error {
		err := g.stors.ModelStor.CreateModels(objects, models)
		objects, models = objects[:0], models[:0]
		return err
	}

	for i := 0; i < count; i++ {
		id, err := newID(g.rng)
		if err != nil {
			return i, err
		}

		// A model lands on the tenant of a random user, so tenants with more
		// users end up with more models.
		user := g.users[g.rng.Intn(len(g.users))]
		deleted := g.between(0, 50) >= 36 || user.tenantDeleted
		objects = append(objects, imodel.Object{
			ID:                id,
			ObjectType:        imodel.ObjectTypeModel,
			Tenant:            user.tenantID,
			MarkedForDeletion: deleted,
		})
		models = append(models, imodel.Model{ID: id, Title: randomName(g.rng)})
		g.models = append(g.models, modelRef{id: id, tenantID: user.tenantID, deleted: deleted})

		if len(objects) >= flushEvery {
			if err := g.flushChecked(ctx, flush); err != nil {
				return i, err
			}
		}
	}

	return count, g.flushChecked(ctx, flush)
}

func (g *Generator) generateRevisions(ctx context.Context) (int, error) {
	var (
		objects   []imodel.Object
		revisions []imodel.ModelRevision
		total     int
	)

	flush := func() error {
		err := g.stors.ModelRevisionStor.CreateModelRevisions(objects, revisions)
		objects, revisions = objects[:0], revisions[:0]
		return err
	}

	for _, model := range g.models {
		authors := g.usersByTenant[model.tenantID]
		count := g.between(minRevisions, maxRevisions)
		startDate := int64(g.between(firstStartDate, lastStartDate))

		for revisionNumber := 0; revisionNumber < count; revisionNumber++ {
			id, err := newID(g.rng)
			if err != nil {
				return total, err
			}

			deleted := g.between(0, 50) >= 49 || model.deleted
			objects = append(objects, imodel.Object{
				ID:                id,
				ObjectType:        imodel.ObjectTypeRevision,
				Tenant:            model.tenantID,
				MarkedForDeletion: deleted,
			})
			revisions = append(revisions, imodel.ModelRevision{
				ID:             id,
				ModelID:        model.id,
				AuthorID:       authors[g.rng.Intn(len(authors))],
				RevisionNumber: revisionNumber,
				CreationDate:   startDate + int64(revisionNumber*revisionSpacing+g.between(1, revisionSpacing-1)),
			})
			total++
		}

		if len(objects) >= flushEvery {
			if err := g.flushChecked(ctx, flush); err != nil {
				return total, err
			}
		}
	}

	return total, g.flushChecked(ctx, flush)
}

// flushChecked runs flush unless ctx has been cancelled.
func (g *Generator) flushChecked(ctx context.Context, flush func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return flush()
}

// between returns a random int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
