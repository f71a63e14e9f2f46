/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/materials-commons/mcinsight/pkg/clog"
	"github.com/materials-commons/mcinsight/pkg/generator"
	"github.com/spf13/cobra"
)

var generateOpts = generator.DefaultOptions()

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a new insight database filled with random data",
	Long: `Create a new insight database filled with random tenants, users, models and
model revisions. Any existing database at the path is replaced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := dbPath()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := clog.UsingCtx(clog.GeneratorCtx)
		logger.Infof("Generating %s with scaling factor %d", path, generateOpts.ScalingFactor)

		summary, err := generator.GenerateDatabase(ctx, path, generateOpts)
		if err != nil {
			return err
		}

		logger.WithFields(log.Fields{
			"tenants":    summary.Tenants,
			"users":      summary.Users,
			"models":     summary.Models,
			"revisions":  summary.Revisions,
			"lazy_users": summary.LazyUsers,
		}).Infof("Generated %s", path)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&generateOpts.ScalingFactor, "scaling-factor", generator.DefaultScalingFactor, "scales the number of tenants, users and models")
	generateCmd.Flags().IntVar(&generateOpts.LazyUserScalingFactor, "lazy-scaling-factor", generator.DefaultLazyUserScalingFactor, "scales the number of users that author nothing")
	generateCmd.Flags().Int64Var(&generateOpts.Seed, "seed", 0, "random seed, 0 seeds from the clock")
}
