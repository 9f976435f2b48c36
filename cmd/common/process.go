// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/bankcap-etl/internal/etl"
	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/parsererror"
	"fjacquet/bankcap-etl/internal/rates"

	"github.com/jedib0t/go-pretty/v6/table"
)

// JobRunner runs one ETL job.
type JobRunner interface {
	Run() (*etl.Result, error)
}

// ProcessJob runs the job and logs its outcome. The error is returned
// unchanged so that the caller decides the exit status.
func ProcessJob(runner JobRunner, log logging.Logger) (*etl.Result, error) {
	log.Info("Starting ETL job")

	result, err := runner.Run()
	if err != nil {
		entry := log.WithError(err)
		var phaseErr *parsererror.PhaseError
		if errors.As(err, &phaseErr) {
			entry = entry.WithField(logging.FieldPhase, phaseErr.Phase)
		}
		entry.Error("ETL job failed")
		return nil, err
	}

	log.Info("ETL job completed successfully!",
		logging.Field{Key: logging.FieldRunID, Value: result.RunID},
		logging.Field{Key: logging.FieldCount, Value: result.Rows},
		logging.Field{Key: logging.FieldOutputFile, Value: result.OutputFile},
		logging.Field{Key: logging.FieldDuration, Value: result.Duration.String()})
	return result, nil
}

// RenderRates writes the rates of codes as a table. With no codes every rate
// is listed in file order.
func RenderRates(w io.Writer, rt *rates.RateTable, codes []string) error {
	if len(codes) == 0 {
		codes = rt.Codes()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Currency", "Rate"})

	for _, code := range codes {
		rate, err := rt.Lookup(code)
		if err != nil {
			return fmt.Errorf("failed to look up rate: %w", err)
		}
		t.AppendRow(table.Row{code, rate.String()})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
