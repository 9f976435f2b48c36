// Package rates handles the exchange rate listing command
package rates

import (
	"fmt"
	"strings"

	"fjacquet/bankcap-etl/cmd/common"
	"fjacquet/bankcap-etl/cmd/root"
	"fjacquet/bankcap-etl/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the rates command
var Cmd = &cobra.Command{
	Use:   "rates [CODE...]",
	Short: "Print the exchange rates",
	Long: `Print the exchange rates read from the configured rate file. With currency
codes as arguments only those rates are printed; an unknown code is an error.`,
	RunE: ratesFunc,
}

func ratesFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application is not initialized")
	}
	cfg := c.GetConfig()

	codes := make([]string, 0, len(args))
	for _, arg := range args {
		codes = append(codes, strings.ToUpper(strings.TrimSpace(arg)))
	}

	table, err := c.GetRateProvider().LoadFile(cfg.ETL.RatesFile)
	if err != nil {
		root.Log.WithError(err).Error("Error reading exchange rates")
		return err
	}

	if err := common.RenderRates(cmd.OutOrStdout(), table, codes); err != nil {
		root.Log.WithError(err).Error("Error printing exchange rates")
		return err
	}

	root.Log.Debug("Exchange rates printed",
		logging.Field{Key: logging.FieldFile, Value: cfg.ETL.RatesFile},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})
	return nil
}
