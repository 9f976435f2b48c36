package config

import (
	"bytes"
	"testing"

	"fjacquet/bankcap-etl/cmd/root"
	appconfig "fjacquet/bankcap-etl/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand_Metadata(t *testing.T) {
	assert.Equal(t, "config", Cmd.Use)
	assert.Equal(t, "Print the effective configuration", Cmd.Short)
	assert.NotNil(t, Cmd.RunE)
}

func TestConfigFunc(t *testing.T) {
	cfg := &appconfig.Config{}
	cfg.ETL.TargetCurrency = "GBP"
	cfg.ETL.Precision = 3
	cfg.CSV.Delimiter = ";"

	original := root.AppConfig
	root.AppConfig = cfg
	defer func() { root.AppConfig = original }()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, configFunc(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "target_currency: GBP")
	assert.Contains(t, out, "precision: 3")
	assert.Regexp(t, `delimiter: .?;`, out)
}

func TestConfigFunc_NotInitialized(t *testing.T) {
	original := root.AppConfig
	root.AppConfig = nil
	defer func() { root.AppConfig = original }()

	err := configFunc(&cobra.Command{}, nil)
	require.Error(t, err)
}
