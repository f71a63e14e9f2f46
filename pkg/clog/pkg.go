package clog

import (
	"os"

	"github.com/apex/log"
)

var clogger = NewContextLogger(os.Stderr)

// SetGlobalLoggerLevelFromString sets the level of the global logger from names
// such as "debug" or "warn".
func SetGlobalLoggerLevelFromString(s string) error {
	return clogger.SetLevelFromString(GlobalLoggerCtx, s)
}

func UsingCtx(ctx string) *log.Entry {
	return clogger.UsingCtx(ctx)
}
