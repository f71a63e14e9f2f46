package dbconfig

import (
	"github.com/materials-commons/mcinsight/pkg/config"
)

const (
	minTxRetry             = 3
	defaultInsertBatchSize = 500
)

// GetTxRetry returns how many times a failed transaction is attempted. It is
// never less than 3.
func GetTxRetry() int {
	txRetry := config.GetIntKeyWithDefault(config.TxRetryKey, minTxRetry)
	if txRetry < minTxRetry {
		return minTxRetry
	}

	return txRetry
}

// GetInsertBatchSize returns the number of rows written per insert statement
// when populating tables.
func GetInsertBatchSize() int {
	batchSize := config.GetIntKeyWithDefault(config.InsertBatchSizeKey, defaultInsertBatchSize)
	if batchSize < 1 {
		return defaultInsertBatchSize
	}

	return batchSize
}
