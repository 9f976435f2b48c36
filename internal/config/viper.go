package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fjacquet/bankcap-etl/internal/currencyutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BANKCAP_ETL_TARGET_CURRENCY.
const EnvPrefix = "BANKCAP"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	ETL struct {
		InputDir       string `mapstructure:"input_dir" yaml:"input_dir"`
		InputPattern   string `mapstructure:"input_pattern" yaml:"input_pattern"`
		RatesFile      string `mapstructure:"rates_file" yaml:"rates_file"`
		RateColumn     string `mapstructure:"rate_column" yaml:"rate_column"`
		TargetCurrency string `mapstructure:"target_currency" yaml:"target_currency"`
		OutputFile     string `mapstructure:"output_file" yaml:"output_file"`
		LogFile        string `mapstructure:"log_file" yaml:"log_file"`
		Precision      int    `mapstructure:"precision" yaml:"precision"`
		Rounding       string `mapstructure:"rounding" yaml:"rounding"`
	} `mapstructure:"etl" yaml:"etl"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"input-dir":  "etl.input_dir",
	"output":     "etl.output_file",
	"currency":   "etl.target_currency",
	"rates-file": "etl.rates_file",
}

// InitializeConfig loads the configuration from defaults, the optional
// config.yaml and the environment.
func InitializeConfig() (*Config, error) {
	return Load("", nil)
}

// Load builds the configuration with this precedence, lowest first: defaults,
// config file, environment, command-line flags. When configFile is empty the
// standard locations are searched and a missing file is not an error.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.bankcap-etl")
		v.AddConfigPath(".bankcap-etl")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("etl.input_dir", ".")
	v.SetDefault("etl.input_pattern", "*bank_market_cap_1.json")
	v.SetDefault("etl.rates_file", "exchange_rates.csv")
	v.SetDefault("etl.rate_column", "Rates")
	v.SetDefault("etl.target_currency", "GBP")
	v.SetDefault("etl.output_file", "bank_market_cap_gbp.csv")
	v.SetDefault("etl.log_file", "logfile.txt")
	v.SetDefault("etl.precision", 3)
	v.SetDefault("etl.rounding", string(currencyutils.RoundHalfEven))
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}
	if d := config.CSV.Delimiter; d == "\"" || d == "\r" || d == "\n" {
		return fmt.Errorf("CSV delimiter cannot be %q", d)
	}

	if !isCurrencyCode(config.ETL.TargetCurrency) {
		return fmt.Errorf("etl.target_currency must be a three-letter upper-case code, got: %q", config.ETL.TargetCurrency)
	}

	if _, err := filepath.Match(config.ETL.InputPattern, ""); err != nil || config.ETL.InputPattern == "" {
		return fmt.Errorf("invalid etl.input_pattern: %q", config.ETL.InputPattern)
	}

	for key, value := range map[string]string{
		"etl.rates_file":  config.ETL.RatesFile,
		"etl.rate_column": config.ETL.RateColumn,
		"etl.output_file": config.ETL.OutputFile,
		"etl.log_file":    config.ETL.LogFile,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if config.ETL.Precision < 0 || config.ETL.Precision > 12 {
		return fmt.Errorf("etl.precision must be between 0 and 12, got: %d", config.ETL.Precision)
	}

	if _, err := currencyutils.ParseRoundingMode(config.ETL.Rounding); err != nil {
		return fmt.Errorf("invalid etl.rounding: %w", err)
	}

	return nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// RoundingMode returns the parsed rounding mode.
func (c *Config) RoundingMode() currencyutils.RoundingMode {
	mode, err := currencyutils.ParseRoundingMode(c.ETL.Rounding)
	if err != nil {
		return currencyutils.RoundHalfEven
	}
	return mode
}

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
