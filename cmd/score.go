package cmd

import (
	"context"

	"github.com/quantpulse/riskscore/database"
	"github.com/quantpulse/riskscore/engine"
	"github.com/quantpulse/riskscore/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var scoreCMD = &cobra.Command{
	Use:   "score",
	Short: "Compute and persist risk scores for the configured universe",
	Long: `Run one batch pass of the feature and scoring engine: rolling volatility
and sentiment trend per instrument, cross-sectional normalization per date,
and a reconciling upsert into the risk score series. Safe to re-run over
overlapping date ranges.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := boot(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize")
		}
		if err := runScoreBatch(cmd.Context()); err != nil {
			log.Fatal().Err(err).Msg("scoring batch failed")
		}
	},
}

func runScoreBatch(ctx context.Context) error {
	st := store.New(database.DB)
	eng := engine.New(engine.Params{
		VolWindow:      cfg.Engine.VolWindow,
		SentWindowDays: cfg.Engine.SentWindowDays,
		VolWeight:      cfg.Engine.VolWeight,
		SentWeight:     cfg.Engine.SentWeight,
	}, st, st, log.Logger)

	_, err := eng.Run(ctx, cfg.Universe)
	return err
}

func init() {
	rootCMD.AddCommand(scoreCMD)
}
