package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediacue/cuesheet/internal/domain/catalog"
	"github.com/mediacue/cuesheet/internal/domain/quote"
	"github.com/mediacue/cuesheet/internal/infrastructure/config"
	"github.com/mediacue/cuesheet/internal/infrastructure/logging"
	"github.com/mediacue/cuesheet/internal/render"
)

func newQuoteCmd() *cobra.Command {
	var (
		configPath  string
		requestPath string
		csvPath     string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a cue sheet from a quote request",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadOrEnv(configPath)
			logger := logging.NewLogger(cfg.Observability.Logging)

			cat, discounts, err := catalog.Load(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			req, err := config.LoadRequest(requestPath)
			if err != nil {
				return err
			}

			engine := quote.NewEngine(cat, discounts, quote.Config{
				ProductionFee:    cfg.Pricing.ProductionFee,
				VATPercent:       cfg.Pricing.VATPercent,
				SurchargePercent: cfg.Pricing.SurchargePercent,
				EvenParity:       cfg.Pricing.EvenSpots,
			}, logger)

			q, err := engine.Build(*req)
			if err != nil {
				return err
			}

			for _, w := range q.Warnings {
				logger.Warn(w.Message, slog.String("code", w.Code))
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv: %w", err)
				}
				defer f.Close()
				if err := render.WriteCSV(f, q); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
				logger.Info("cue sheet exported", slog.String("path", csvPath), slog.Int("lines", len(q.Lines)))
			}

			return render.CueSheet(os.Stdout, q)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	cmd.Flags().StringVarP(&requestPath, "request", "r", "request.yaml", "path to quote request file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also export the cue sheet as CSV")
	return cmd
}
