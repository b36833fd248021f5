package cmd

import (
	"fmt"

	"github.com/quantpulse/riskscore/api"
	"github.com/quantpulse/riskscore/database"
	"github.com/quantpulse/riskscore/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API over the persisted risk score series",
	Run: func(cmd *cobra.Command, args []string) {
		if err := boot(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize")
		}

		r := api.SetupRoutes(store.New(database.DB))

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("starting server")
		if err := r.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	},
}

func init() {
	rootCMD.AddCommand(serverCMD)
}
