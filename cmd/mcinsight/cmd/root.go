/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/materials-commons/mcinsight/pkg/clog"
	"github.com/materials-commons/mcinsight/pkg/config"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDBPath = "~/.mcinsight/insight.db"

// Viper keys. Each is bound to a flag and to the MCINSIGHT_* environment
// variable in config.
const (
	dotenvKey   = "dotenv"
	logLevelKey = "log_level"
	dbKey       = "db"
	listenKey   = "listen"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcinsight",
	Short: "Generate and query a tenant/model insight database",
	Long: `mcinsight populates a database of tenants, users, models and model
revisions with random data and answers analytical questions over it, either
from the command line or over an HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dotenv", "", "dotenv file to load settings from")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db", "", "path to the insight database (default "+defaultDBPath+")")

	bindFlag(rootCmd, dotenvKey, "dotenv", config.DotenvPathKey)
	bindFlag(rootCmd, logLevelKey, "log-level", config.LogLevelKey)
	bindFlag(rootCmd, dbKey, "db", config.DBPathKey)
}

// bindFlag binds a persistent or local flag of cmd and an environment variable
// to key. The flag wins when both are set.
func bindFlag(cmd *cobra.Command, key, flagName, envVar string) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(flagName)
	}

	_ = viper.BindPFlag(key, flag)
	_ = viper.BindEnv(key, envVar)
}

// initConfig loads the dotenv file, when one is given, before anything reads
// the environment and then sets the log level.
func initConfig() error {
	if dotenvPath := viper.GetString(dotenvKey); dotenvPath != "" {
		if err := config.LoadFromPath(dotenvPath); err != nil {
			return errors.Wrapf(err, "failed loading configuration file %s", dotenvPath)
		}
	}

	if err := clog.SetGlobalLoggerLevelFromString(viper.GetString(logLevelKey)); err != nil {
		return errors.Wrapf(err, "invalid log level")
	}

	return nil
}

// dbPath returns the database path with ~ expanded.
func dbPath() (string, error) {
	path := viper.GetString(dbKey)
	if path == "" {
		path = defaultDBPath
	}

	return homedir.Expand(path)
}
