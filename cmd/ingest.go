package cmd

import (
	"github.com/quantpulse/riskscore/database"
	"github.com/quantpulse/riskscore/ingest"
	"github.com/quantpulse/riskscore/provider"
	"github.com/quantpulse/riskscore/sentiment"
	"github.com/quantpulse/riskscore/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var ingestCMD = &cobra.Command{
	Use:   "ingest",
	Short: "Run provider ETL for the configured universe",
}

var ingestPricesCMD = &cobra.Command{
	Use:   "prices",
	Short: "Fetch and persist daily price bars",
	Run: func(cmd *cobra.Command, args []string) {
		if err := boot(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize")
		}
		p := newProcessor()
		n, err := p.IngestPrices(cmd.Context(), cfg.Universe, store.New(database.DB))
		if err != nil {
			log.Fatal().Err(err).Msg("price ingestion failed")
		}
		log.Info().Int64("inserted", n).Msg("price ingestion complete")
	},
}

var ingestNewsCMD = &cobra.Command{
	Use:   "news",
	Short: "Fetch, score and persist news headlines",
	Run: func(cmd *cobra.Command, args []string) {
		if err := boot(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize")
		}
		p := newProcessor()
		n, err := p.IngestNews(cmd.Context(), cfg.Universe, store.New(database.DB))
		if err != nil {
			log.Fatal().Err(err).Msg("news ingestion failed")
		}
		log.Info().Int64("inserted", n).Msg("news ingestion complete")
	},
}

func newProcessor() *ingest.Processor {
	return ingest.NewProcessor(
		provider.NewAlphaVantage(cfg.AlphaVantage, log.Logger),
		provider.NewMarketaux(cfg.Marketaux, cfg.Ingest.NewsLimit, log.Logger),
		sentiment.NewLexiconScorer(),
		cfg.Ingest.Workers,
		log.Logger,
	)
}

func init() {
	ingestCMD.AddCommand(ingestPricesCMD, ingestNewsCMD)
	rootCMD.AddCommand(ingestCMD)
}
