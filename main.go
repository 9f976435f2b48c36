package main

import (
	"os"
	"strings"

	"fjacquet/bankcap-etl/cmd/config"
	"fjacquet/bankcap-etl/cmd/rates"
	"fjacquet/bankcap-etl/cmd/root"
	"fjacquet/bankcap-etl/cmd/run"
	appconfig "fjacquet/bankcap-etl/internal/config"
	"fjacquet/bankcap-etl/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	appconfig.LoadEnv()

	// 2. Honor LOG_LEVEL before the configuration is read
	root.Log = logging.NewLogrusAdapter(logLevelFromEnv(), "text")

	// 3. Initialize root command flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(rates.Cmd)
	root.Cmd.AddCommand(config.Cmd)
}

// logLevelFromEnv returns LOG_LEVEL when it names a valid level, info otherwise.
func logLevelFromEnv() string {
	level := strings.ToLower(appconfig.GetEnv("LOG_LEVEL", "info"))
	if _, err := logrus.ParseLevel(level); err != nil {
		return "info"
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.WithError(err).Error("bankcap-etl failed")
		os.Exit(1)
	}
}
