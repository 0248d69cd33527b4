// Package cmd provides the CLI commands for netcost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netcost/internal/config"
	"netcost/internal/logging"
)

var (
	cfgFile string
	verbose bool

	// Set up once in initConfig and handed to the components that need them.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "netcost",
	Short: "Calculate the build cost of a physical network",
	Long: `netcost prices a network topology against one or more rate cards.

For every edge of the topology graph, the build cost is the price of the
node type at each endpoint plus the edge length times the per-meter trench
rate for the edge's material. Costs roll up per route and per rate card.

Examples:
  netcost calculate network.graphml rate_cards.json
  netcost calculate --rate-card "Rate Card A" network.graphml rate_cards.json
  netcost calculate --format cli network.graphml rate_cards.hcl`,
}

// Execute runs the CLI
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	cfg = config.Default()
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// LOG_LEVEL overrides the configured verbosity; -v overrides both.
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("netcost version 0.1.0")
	},
}
