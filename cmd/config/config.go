// Package config handles the configuration display command
package config

import (
	"fmt"

	"fjacquet/bankcap-etl/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, config file, environment and flags are applied, as YAML.`,
	Args:  cobra.NoArgs,
	RunE:  configFunc,
}

func configFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("application is not initialized")
	}

	out, err := cfg.ToYAML()
	if err != nil {
		root.Log.WithError(err).Error("Error serializing configuration")
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
