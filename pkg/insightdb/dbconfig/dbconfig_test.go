package dbconfig

import (
	"testing"

	"github.com/materials-commons/mcinsight/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestGetTxRetry(t *testing.T) {
	defer config.SetConfig(config.GetConfig())

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "unset", value: "", expected: 3},
		{name: "below minimum", value: "1", expected: 3},
		{name: "above minimum", value: "8", expected: 8},
		{name: "garbage", value: "many", expected: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config.SetConfig(config.NewMapConfig(map[string]string{config.TxRetryKey: test.value}))
			require.Equal(t, test.expected, GetTxRetry())
		})
	}
}

func TestGetInsertBatchSize(t *testing.T) {
	defer config.SetConfig(config.GetConfig())

	config.SetConfig(config.NewMapConfig(map[string]string{}))
	require.Equal(t, 500, GetInsertBatchSize())

	config.SetConfig(config.NewMapConfig(map[string]string{config.InsertBatchSizeKey: "0"}))
	require.Equal(t, 500, GetInsertBatchSize())

	config.SetConfig(config.NewMapConfig(map[string]string{config.InsertBatchSizeKey: "25"}))
	require.Equal(t, 25, GetInsertBatchSize())
}
