// Package extractor reads bank market-cap tables from JSON files.
//
// Three layouts are accepted, the common orientations of a table dumped to JSON:
//
//	records: [{"Name": "A", "Market Cap (US$ Billion)": "1.5"}, ...]
//	columns: {"Name": {"0": "A"}, "Market Cap (US$ Billion)": {"0": "1.5"}}
//	index:   {"0": {"Name": "A", "Market Cap (US$ Billion)": "1.5"}}
//
// Values are kept as text; numeric coercion happens in the transformer.
package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/models"
	"fjacquet/bankcap-etl/internal/parsererror"
)

const expectedFormat = "JSON table in records, columns or index orientation"

// Extractor parses JSON files into an ExtractedTable.
type Extractor struct {
	logger logging.Logger
}

// New creates an Extractor.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Extractor{
		logger: logger.WithField(logging.FieldComponent, "extractor"),
	}
}

// Extract parses every file in order and concatenates their rows. An empty
// path list yields an empty table.
func (e *Extractor) Extract(paths []string) (models.ExtractedTable, error) {
	table := models.NewExtractedTable()
	for _, path := range paths {
		rows, err := e.ExtractFile(path)
		if err != nil {
			return models.ExtractedTable{}, err
		}
		table.Append(rows...)
	}

	e.logger.Info("Extracted market cap table",
		logging.Field{Key: "files", Value: len(paths)},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})
	return table, nil
}

// ExtractFile parses a single JSON file.
func (e *Extractor) ExtractFile(path string) ([]models.RawRecord, error) {
	e.logger.Debug("Parsing JSON file", logging.Field{Key: logging.FieldFile, Value: path})

	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.WithError(err).Error("Failed to read JSON file", logging.Field{Key: logging.FieldFile, Value: path})
		return nil, fmt.Errorf("error reading JSON file: %w", err)
	}

	rows, err := e.Parse(bytes.NewReader(data), path)
	if err != nil {
		e.logger.WithError(err).Error("Failed to parse JSON file", logging.Field{Key: logging.FieldFile, Value: path})
		return nil, err
	}
	return rows, nil
}

// Parse reads one JSON document from r. source names the input in errors.
func (e *Extractor) Parse(r io.Reader, source string) ([]models.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: expectedFormat,
			Msg:            "malformed JSON",
			Err:            err,
		}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: expectedFormat,
			Msg:            "trailing data after JSON document",
		}
	}

	switch v := doc.(type) {
	case []interface{}:
		return parseRecords(source, v)
	case map[string]interface{}:
		if col, ok := v[models.ColumnName].(map[string]interface{}); ok {
			return parseColumns(source, col, v)
		}
		return parseIndex(source, v)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: expectedFormat,
			Msg:            fmt.Sprintf("unexpected top-level %T", doc),
		}
	}
}

func parseRecords(source string, items []interface{}) ([]models.RawRecord, error) {
	rows := make([]models.RawRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       source,
				ExpectedFormat: expectedFormat,
				Msg:            fmt.Sprintf("record %d is not an object", i),
			}
		}
		row, err := recordFromObject(source, strconv.Itoa(i), obj)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseIndex(source string, doc map[string]interface{}) ([]models.RawRecord, error) {
	keys := sortedIndex(doc)
	rows := make([]models.RawRecord, 0, len(keys))
	for _, key := range keys {
		obj, ok := doc[key].(map[string]interface{})
		if !ok {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       source,
				ExpectedFormat: expectedFormat,
				Msg:            fmt.Sprintf("entry %q is not an object", key),
			}
		}
		row, err := recordFromObject(source, key, obj)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseColumns(source string, names map[string]interface{}, doc map[string]interface{}) ([]models.RawRecord, error) {
	caps, ok := doc[models.ColumnMarketCapUSD].(map[string]interface{})
	if !ok {
		return nil, &parsererror.DataExtractionError{
			FilePath:  source,
			FieldName: models.ColumnMarketCapUSD,
			Reason:    "column missing or not an object",
			Msg:       "columns-oriented table",
		}
	}

	union := make(map[string]interface{}, len(names))
	for key := range names {
		union[key] = nil
	}
	for key := range caps {
		union[key] = nil
	}

	keys := sortedIndex(union)
	rows := make([]models.RawRecord, 0, len(keys))
	for _, key := range keys {
		obj := make(map[string]interface{}, 2)
		if v, ok := names[key]; ok {
			obj[models.ColumnName] = v
		}
		if v, ok := caps[key]; ok {
			obj[models.ColumnMarketCapUSD] = v
		}
		row, err := recordFromObject(source, key, obj)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func recordFromObject(source, row string, obj map[string]interface{}) (models.RawRecord, error) {
	var rec models.RawRecord
	for _, column := range []string{models.ColumnName, models.ColumnMarketCapUSD} {
		raw, ok := obj[column]
		if !ok {
			return models.RawRecord{}, &parsererror.DataExtractionError{
				FilePath:  source,
				FieldName: column,
				Reason:    "column missing",
				Msg:       fmt.Sprintf("row %s", row),
			}
		}
		text, err := cellText(source, column, row, raw)
		if err != nil {
			return models.RawRecord{}, err
		}
		if column == models.ColumnName {
			rec.Name = text
		} else {
			rec.MarketCap = text
		}
	}
	return rec, nil
}

// cellText renders a scalar JSON value as text. Numbers keep their literal
// form. A null becomes the empty string, so a null name is written as an empty
// cell rather than a "None" or "nan" placeholder; a null market cap is then
// rejected by the transformer.
func cellText(source, column, row string, v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", &parsererror.DataExtractionError{
			FilePath:  source,
			FieldName: column,
			Reason:    fmt.Sprintf("unsupported %T value", v),
			Msg:       fmt.Sprintf("row %s", row),
		}
	}
}

// sortedIndex orders row index keys numerically when both keys are
// integers, lexically otherwise.
func sortedIndex(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}
