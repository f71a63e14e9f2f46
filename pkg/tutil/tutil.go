package tutil

import (
	"os"
	"strings"
)

// IsIntegrationTest is true when MC_TEST=integration. Tests that generate full
// sized databases only run then.
func IsIntegrationTest() bool {
	testType := os.Getenv("MC_TEST")
	return strings.ToLower(testType) == "integration"
}
