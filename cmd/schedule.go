package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var scheduleCMD = &cobra.Command{
	Use:   "schedule",
	Short: "Run the scoring batch on a cron schedule",
	Long: `Keep the process alive and run one scoring batch pass on every tick of
the configured cron expression. A failed pass is logged and the schedule
keeps going; the batch is idempotent, so the next tick reconciles.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := boot(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize")
		}

		c := cron.New()
		_, err := c.AddFunc(cfg.Schedule, func() {
			if err := runScoreBatch(context.Background()); err != nil {
				log.Error().Err(err).Msg("scheduled scoring batch failed")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Schedule).Msg("invalid cron expression")
		}

		c.Start()
		log.Info().Str("schedule", cfg.Schedule).Msg("scheduler running")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Info().Msg("shutting down scheduler")
		<-c.Stop().Done()
	},
}

func init() {
	rootCMD.AddCommand(scheduleCMD)
}
