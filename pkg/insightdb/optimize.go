package insightdb

import (
	"github.com/materials-commons/mcinsight/pkg/insightdb/dbconfig"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Optimize rewrites the Objects and ModelRevisions tables in id order so rows
// that are read together are stored together. On sqlite the file is then
// vacuumed and its statistics refreshed.
func Optimize(db *gorm.DB) error {
	batchSize := dbconfig.GetInsertBatchSize()

	err := db.Transaction(func(tx *gorm.DB) error {
		var objects []imodel.Object
		if err := rewriteInIDOrder(tx, &imodel.Object{}, &objects, batchSize); err != nil {
			return errors.Wrap(err, "rewriting Objects")
		}

		var revisions []imodel.ModelRevision
		if err := rewriteInIDOrder(tx, &imodel.ModelRevision{}, &revisions, batchSize); err != nil {
			return errors.Wrap(err, "rewriting ModelRevisions")
		}

		return nil
	})

	if err != nil {
		return err
	}

	if db.Dialector.Name() != SqliteDriver {
		return nil
	}

	if err := db.Exec("VACUUM").Error; err != nil {
		return errors.Wrap(err, "vacuum failed")
	}

	return db.Exec("ANALYZE").Error
}

// rewriteInIDOrder loads every row of model's table into rows, empties the
// table and inserts the rows back sorted by id.
func rewriteInIDOrder[T any](tx *gorm.DB, model interface{}, rows *[]T, batchSize int) error {
	if err := tx.Model(model).Order("id").Find(rows).Error; err != nil {
		return err
	}

	if len(*rows) == 0 {
		return nil
	}

	if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}

	return tx.CreateInBatches(*rows, batchSize).Error
}
