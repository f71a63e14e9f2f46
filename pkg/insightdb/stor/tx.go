package stor

import (
	"fmt"

	"github.com/materials-commons/mcinsight/pkg/insightdb/dbconfig"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"gorm.io/gorm"
)

func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := dbconfig.GetTxRetry()

	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil {
			break
		}
	}

	return err
}

// createWithObjects inserts the Object rows and the type specific rows that
// reference them in a single transaction. objects[i] must be the Object of rows[i].
func createWithObjects[T any](db *gorm.DB, objectType string, objects []imodel.Object, rows []T, idOf func(T) string) error {
	if len(objects) != len(rows) {
		return fmt.Errorf("%d objects given for %d %s rows", len(objects), len(rows), objectType)
	}

	if len(rows) == 0 {
		return nil
	}

	for i := range rows {
		switch {
		case objects[i].ObjectType != objectType:
			return fmt.Errorf("object %s has type '%s', expected '%s'", objects[i].ID, objects[i].ObjectType, objectType)
		case objects[i].ID != idOf(rows[i]):
			return fmt.Errorf("object %s does not match %s row %s", objects[i].ID, objectType, idOf(rows[i]))
		}
	}

	batchSize := dbconfig.GetInsertBatchSize()

	return WithTxRetry(db, func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(objects, batchSize).Error; err != nil {
			return err
		}

		return tx.CreateInBatches(rows, batchSize).Error
	})
}
