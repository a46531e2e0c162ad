package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/platform"
)

type RootOptions struct {
	ListenAddr   string
	CLIBinary    string
	IndexPath    string
	SyncInterval int
	VerifyWindow int
	JSONOutput   bool
	LogLevel     string
	LogFormat    string
}

func newRootCmd() *cobra.Command {
	opts := &RootOptions{
		ListenAddr:   envDefault("RELAYD_LISTEN", ":3000"),
		CLIBinary:    envDefault("RELAYD_CLI_BINARY", "multichain-cli"),
		IndexPath:    envDefault("RELAYD_INDEX_PATH", "data/activity.db"),
		SyncInterval: envIntDefault("RELAYD_SYNC_INTERVAL_MINUTES", 5),
		VerifyWindow: envIntDefault("RELAYD_VERIFY_WINDOW", 6),
		LogLevel:     envDefault("RELAYD_LOG_LEVEL", "info"),
		LogFormat:    envDefault("RELAYD_LOG_FORMAT", "text"),
	}
	cmd := &cobra.Command{
		Use:           "relayd",
		Short:         "Cross-ledger relay and coordination daemon",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.CLIBinary, "cli-binary", opts.CLIBinary, "Chain CLI binary used to reach the ledger nodes")
	cmd.PersistentFlags().StringVar(&opts.IndexPath, "index-path", opts.IndexPath, "Path to the local activity index database")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "Emit JSON output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")

	cmd.AddCommand(
		newServeCmd(opts),
		newSyncCmd(opts),
		newVerifyCmd(opts),
		newTransferCmd(opts),
		newRulesCmd(opts),
	)

	return cmd
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envIntDefault(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
