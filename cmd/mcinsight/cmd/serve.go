/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/materials-commons/mcinsight/pkg/clog"
	"github.com/materials-commons/mcinsight/pkg/config"
	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/materials-commons/mcinsight/pkg/insightapi"
	"github.com/materials-commons/mcinsight/pkg/insightapi/apimiddleware"
	"github.com/materials-commons/mcinsight/pkg/insightdb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const (
	defaultListen   = ":1353"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the insight questions over HTTP",
	Long: `Serve the insight questions as a read only JSON API under /api, with
prometheus metrics under /metrics. The database is the sqlite file given by
--db unless MCINSIGHT_DB_DSN names another database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := clog.UsingCtx(clog.APICtx)

		db, err := openServeDB()
		if err != nil {
			return err
		}
		defer func() { _ = insightdb.Close(db) }()

		metrics := apimiddleware.NewHTTPMetrics(insightapi.ServiceName)
		if config.GetBoolKeyWithDefault(config.RuntimeMetricsKey, true) {
			metrics.WithRuntimeMetrics()
		}

		e := insightapi.NewServer(insightapi.RouteOpts{
			Querier: insight.NewQuerier(db),
			Metrics: metrics,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		listen := viper.GetString(listenKey)
		go func() {
			logger.Infof("Listening on %s", listen)
			if err := e.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("Unable to start server: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Infof("Shutting down")
		return e.Shutdown(shutdownCtx)
	},
}

// openServeDB connects through MCINSIGHT_DB_DSN when it is set and otherwise
// opens the existing sqlite file.
func openServeDB() (*gorm.DB, error) {
	if config.GetKey(config.DBDSNKey) != "" {
		return insightdb.MustConnectToDB(), nil
	}

	path, err := dbPath()
	if err != nil {
		return nil, err
	}

	return insightdb.OpenExistingSqliteFile(path)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", defaultListen, "address to listen on")
	bindFlag(serveCmd, listenKey, "listen", config.ListenKey)
}
