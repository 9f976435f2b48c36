// Package loader writes transformed tables to CSV.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/bankcap-etl/internal/currencyutils"
	"fjacquet/bankcap-etl/internal/fileutils"
	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/models"

	"github.com/gocarina/gocsv"
)

// Loader writes a TransformedTable as CSV: the column headers, then one line
// per row, without an index column.
type Loader struct {
	delimiter rune
	logger    logging.Logger
}

// New creates a Loader. A zero delimiter selects ','.
func New(delimiter rune, logger logging.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Loader{
		delimiter: delimiter,
		logger:    logger.WithField(logging.FieldComponent, "loader"),
	}
}

// Load writes table to path, replacing any existing file.
func (l *Loader) Load(path string, table models.TransformedTable) error {
	l.logger.Info("Writing market caps to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})

	file, err := fileutils.CreateFile(path)
	if err != nil {
		l.logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}

	if err := l.Write(file, table); err != nil {
		_ = file.Close()
		l.logger.WithError(err).Error("Failed to write CSV file")
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing CSV file: %w", err)
	}

	l.logger.Info("Successfully wrote CSV file", logging.Field{Key: logging.FieldOutputFile, Value: path})
	return nil
}

// Write renders table as CSV to w.
func (l *Loader) Write(w io.Writer, table models.TransformedTable) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = l.delimiter
	writer := gocsv.NewSafeCSVWriter(csvWriter)

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range table.Rows {
		record := []string{row.Name, currencyutils.FormatAmount(row.MarketCap)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
