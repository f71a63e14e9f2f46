package config

// Configer is implemented by every configuration source mcinsight can read
// its settings from.
type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
	GetBoolKeyWithDefault(key string, defaultValue bool) bool
}

// Keys understood by mcinsight.
const (
	DBPathKey          = "MCINSIGHT_DB_PATH"
	DBDriverKey        = "MCINSIGHT_DB_DRIVER"
	DBDSNKey           = "MCINSIGHT_DB_DSN"
	ListenKey          = "MCINSIGHT_LISTEN"
	LogLevelKey        = "MCINSIGHT_LOG_LEVEL"
	TxRetryKey         = "MCINSIGHT_TX_RETRY"
	InsertBatchSizeKey = "MCINSIGHT_INSERT_BATCH_SIZE"
	DotenvPathKey      = "MCINSIGHT_DOTENV_PATH"
	RuntimeMetricsKey  = "MCINSIGHT_RUNTIME_METRICS"
)
