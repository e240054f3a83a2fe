// Command rbroadlink discovers, authenticates, and controls Broadlink
// IR/RF blasters and HVAC controllers over the local network.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"hermannm.dev/devlog"

	"github.com/barnettlynn/rbroadlink-go/internal/config"
)

var (
	flagLocalIP    string
	flagBcastAddr  string
	flagVerbose    bool
	flagLogFormat  string
	flagConfigPath string

	logLevel slog.LevelVar
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rbroadlink",
		Short:         "Control Broadlink IR/RF blasters and HVAC controllers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	root.PersistentFlags().StringVar(&flagLocalIP, "local-ip", "", "local IPv4 address to advertise (default: autodetect)")
	root.PersistentFlags().StringVar(&flagBcastAddr, "broadcast-addr", "255.255.255.255", "subnet broadcast address for discovery")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log output format: text, json, or pretty")
	root.PersistentFlags().StringVar(&flagConfigPath, "config", config.DefaultPath(), "path to YAML config file")

	root.AddCommand(
		newListCommand(),
		newInfoCommand(),
		newBlastCommand(),
		newLearnCommand(),
		newConnectCommand(),
		newHvacCommand(),
	)
	return root
}

// setupLogging installs the process-wide default slog logger according to
// the resolved --log-format/--verbose flags (config file values fill in
// anything left unset on the command line).
func setupLogging(cmd *cobra.Command) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	format := flagLogFormat
	if format == "" && cfg.LogFormat != nil {
		format = *cfg.LogFormat
	}
	if format == "" {
		format = "text"
	}

	verbose := flagVerbose
	if !cmd.Flags().Changed("verbose") && cfg.Verbose != nil {
		verbose = *cfg.Verbose
	}
	logLevel.Set(slog.LevelInfo)
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel})
	case "pretty":
		handler = devlog.NewHandler(os.Stderr, &devlog.Options{Level: &logLevel})
	case "text":
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel})
	default:
		return fmt.Errorf("unknown --log-format %q: must be text, json, or pretty", format)
	}

	slog.SetDefault(slog.New(handler))

	if flagLocalIP == "" && cfg.LocalIP != nil {
		flagLocalIP = *cfg.LocalIP
	}
	if cfg.BroadcastAddr != nil && !cmd.Flags().Changed("broadcast-addr") {
		flagBcastAddr = *cfg.BroadcastAddr
	}
	return nil
}
