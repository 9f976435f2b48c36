// Package run handles the ETL job command
package run

import (
	"fmt"

	"fjacquet/bankcap-etl/cmd/common"
	"fjacquet/bankcap-etl/cmd/root"
	"fjacquet/bankcap-etl/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bank market-cap ETL job",
	Long: `Extract every *bank_market_cap_1.json file of the input directory, convert the
market capitalizations into the target currency and write the result as CSV.
Phase transitions are appended to the job log.`,
	Args: cobra.NoArgs,
	RunE: runFunc,
}

func runFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application is not initialized")
	}
	cfg := c.GetConfig()

	root.Log.Info("ETL run command called",
		logging.Field{Key: logging.FieldInputFile, Value: cfg.ETL.InputDir},
		logging.Field{Key: logging.FieldOutputFile, Value: cfg.ETL.OutputFile},
		logging.Field{Key: logging.FieldCurrency, Value: cfg.ETL.TargetCurrency})

	pipeline, err := c.NewPipeline()
	if err != nil {
		root.Log.WithError(err).Error("Error preparing ETL job")
		return err
	}

	if _, err := common.ProcessJob(pipeline, root.Log); err != nil {
		return err
	}
	return nil
}
