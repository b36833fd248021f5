package cmd

import (
	"os"
	"time"

	"github.com/quantpulse/riskscore/config"
	"github.com/quantpulse/riskscore/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCMD = &cobra.Command{
	Use:   "riskscore",
	Short: "Daily instrument risk scoring engine",
	Long: `riskscore combines realized price volatility with news-sentiment trend
into one daily risk score per instrument. Prices and news are ingested from
external providers, features are computed per instrument, normalized
cross-sectionally per date and persisted as an idempotent time series.`,
}

func Execute() {
	if err := rootCMD.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCMD.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to the YAML config file")
}

// boot loads configuration, wires the global logger and connects the
// database. Every subcommand starts here.
func boot() error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	lvl, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(lvl)

	return database.InitDB(cfg.Database)
}
