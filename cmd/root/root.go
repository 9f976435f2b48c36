// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/bankcap-etl/internal/config"
	"fjacquet/bankcap-etl/internal/container"
	"fjacquet/bankcap-etl/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	InputDir   string
	Output     string
	Currency   string
	RatesFile  string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bankcap-etl",
		Short: "A CLI tool to convert bank market capitalizations from USD into another currency.",
		Long: `bankcap-etl is a CLI tool that extracts bank market capitalizations from JSON files,
converts them from USD with a rate read from exchange_rates.csv and loads the result into a CSV file.
Every phase of the job is recorded in logfile.txt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bankcap-etl!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initializeApp,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default searches $HOME/.bankcap-etl, .bankcap-etl and .)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.InputDir, "input-dir", "i", ".", "Directory holding the *bank_market_cap_1.json files")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "bank_market_cap_gbp.csv", "Output CSV file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Currency, "currency", "GBP", "Target currency code")
	Cmd.PersistentFlags().StringVar(&SharedFlags.RatesFile, "rates-file", "exchange_rates.csv", "Exchange rate CSV file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// initializeApp loads the configuration and wires the container. Flags only
// override configuration values when they are set explicitly.
func initializeApp(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	flags := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	flags.AddFlagSet(cmd.Root().PersistentFlags())
	flags.AddFlagSet(cmd.Flags())

	cfg, err := config.Load(SharedFlags.ConfigFile, flags)
	if err != nil {
		Log.WithError(err).Error("Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		Log.WithError(err).Error("Failed to initialize container")
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer returns the application container, or nil before initialization.
func GetContainer() *container.Container {
	return AppContainer
}
