package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zetasbox/config"
	"zetasbox/logging"
)

// globalFlags override the environment configuration when set.
type globalFlags struct {
	DataDir    string
	InMemory   bool
	LogLevel   string
	LogFile    string
	Idempotent bool
}

var (
	flags  globalFlags
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "zetasbox",
	Short:         "Crowdfunding settlement ledger",
	Long:          "zetasbox runs tokenized crowdfunding campaigns: pledges, pool seeding, claims and refunds.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		pf := cmd.Flags()
		if pf.Changed("data-dir") {
			cfg.DataDir = flags.DataDir
		}
		if pf.Changed("in-memory") {
			cfg.InMemory = flags.InMemory
		}
		if pf.Changed("log-level") {
			cfg.LogLevel = flags.LogLevel
		}
		if pf.Changed("log-file") {
			cfg.LogFile = flags.LogFile
		}
		if pf.Changed("idempotent") {
			cfg.IdempotentSettlement = flags.Idempotent
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogFile)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the command line and exits non zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.DataDir, "data-dir", "", "badger directory (env ZETASBOX_DATA_DIR)")
	pf.BoolVar(&flags.InMemory, "in-memory", false, "keep state in memory only (env ZETASBOX_IN_MEMORY)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "debug|info|warn|error (env ZETASBOX_LOG_LEVEL)")
	pf.StringVar(&flags.LogFile, "log-file", "", "rotate logs into this file instead of stderr (env ZETASBOX_LOG_FILE)")
	pf.BoolVar(&flags.Idempotent, "idempotent", false, "replayed settlements succeed with zero payout (env ZETASBOX_IDEMPOTENT_SETTLEMENT)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(donorCmd)
	rootCmd.AddCommand(platformCmd)
	rootCmd.AddCommand(exportCmd)
}
