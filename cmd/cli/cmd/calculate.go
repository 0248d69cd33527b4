// Package cmd - calculate command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netcost/adapters/graphml"
	ratecardloader "netcost/adapters/ratecard"
	"netcost/core/cost"
	"netcost/core/output"
)

var (
	rateCardName string
	outputFormat string
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate <graph-file> <rate-cards-file>",
	Short: "Calculate network build costs",
	Long: `Price every route of the topology graph against the loaded rate cards.

The graph file is GraphML; the rate card file is JSON or HCL (by extension).
By default every rate card is evaluated; --rate-card restricts the run to a
single card.

Examples:
  netcost calculate network.graphml rate_cards.json
  netcost calculate --rate-card rate_card_a network.graphml rate_cards.json`,
	Args: cobra.ExactArgs(2),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&rateCardName, "rate-card", "r", "", "calculate a single rate card by name")
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	// Errors are reported here; keep cobra from printing usage on top.
	cmd.SilenceUsage = true

	ctx := context.Background()
	graphPath, cardsPath := args[0], args[1]

	g, err := graphml.Load(graphPath)
	if err != nil {
		return err
	}
	logger.Info("loaded network graph",
		zap.String("path", graphPath),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()))

	cards, err := ratecardloader.Load(cardsPath, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded rate cards",
		zap.String("path", cardsPath),
		zap.Int("rate_cards", cards.Len()))

	engine := cost.New(g, cards, logger, cost.WithWorkers(cfg.Engine.Workers))

	var result cost.Result
	if rateCardName != "" {
		result, err = engine.TotalCost(ctx, rateCardName)
		if err != nil {
			return err
		}
	} else {
		batch := engine.ProcessAll(ctx)
		result = batch.Results
		for cardKey, cardErr := range batch.Errors {
			fmt.Fprintf(os.Stderr, "rate card %s failed: %v\n", cardKey, cardErr)
		}
		if len(batch.Errors) > 0 && len(result) == 0 {
			return fmt.Errorf("all %d rate cards failed", len(batch.Errors))
		}
	}

	format := output.Format(outputFormat)
	if outputFormat == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, result)
}
