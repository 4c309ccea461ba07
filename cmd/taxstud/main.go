package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taxstud/internal/config"
	"taxstud/internal/logging"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger

	// Loaded workspace config
	cfg *config.Config

	// Correlation ID for this invocation, threaded into category logs
	opID string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "taxstud",
	Short: "taxstud - hybrid taxonomy browser and validator",
	Long: `taxstud manages hybrid taxonomies: a classical genus/species hierarchy
crossed with faceted dimensions, applied to a collection of catalog items.

Data lives in plain JSON files. A data file references its schema file by
relative path; loading always runs schema conformance and domain validation,
so invalid data never reaches the query engine.

Filtering Logic:
  - Multiple --genus values are combined with OR
  - Multiple --facet values for the SAME facet name are combined with OR
  - Different filter types (genus vs facets) are combined with AND
  - Different facet names are combined with AND`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(workspace)
		if err != nil {
			return err
		}

		if err := logging.Initialize(workspace); err != nil {
			logger.Warn("category logging disabled", zap.Error(err))
		}

		opID = strings.SplitN(uuid.NewString(), "-", 2)[0]
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory for config and logs")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(fmtCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
