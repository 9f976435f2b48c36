// Package rates loads exchange rates from a CSV file whose first column holds
// currency codes, e.g.
//
//	,Rates
//	GBP,0.8
//	EUR,0.9
package rates

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"fjacquet/bankcap-etl/internal/currencyutils"
	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// DefaultRateColumn is the header of the rate column in exchange_rates.csv.
const DefaultRateColumn = "Rates"

// RateTable maps currency codes to rates, remembering file order. Rows that
// could not be used are kept as per-code errors so that one bad row only fails
// the lookups of its own code.
type RateTable struct {
	source  string
	codes   []string
	rates   map[string]decimal.Decimal
	invalid map[string]error
}

// NewRateTable creates an empty table. source is used in lookup errors.
func NewRateTable(source string) *RateTable {
	return &RateTable{
		source:  source,
		rates:   make(map[string]decimal.Decimal),
		invalid: make(map[string]error),
	}
}

// Set adds or replaces the rate for code.
func (t *RateTable) Set(code string, rate decimal.Decimal) {
	delete(t.invalid, code)
	if _, exists := t.rates[code]; !exists {
		t.codes = append(t.codes, code)
	}
	t.rates[code] = rate
}

// Invalidate marks code as unusable; Lookup of code returns err.
func (t *RateTable) Invalidate(code string, err error) {
	if _, exists := t.rates[code]; exists {
		delete(t.rates, code)
		for i, c := range t.codes {
			if c == code {
				t.codes = append(t.codes[:i], t.codes[i+1:]...)
				break
			}
		}
	}
	t.invalid[code] = err
}

// Lookup returns the rate for code. Codes are matched exactly.
func (t *RateTable) Lookup(code string) (decimal.Decimal, error) {
	if err, bad := t.invalid[code]; bad {
		return decimal.Zero, err
	}
	rate, ok := t.rates[code]
	if !ok {
		return decimal.Zero, &parsererror.RateNotFoundError{Currency: code, FilePath: t.source}
	}
	return rate, nil
}

// Invalid returns the codes whose rows could not be used, sorted.
func (t *RateTable) Invalid() []string {
	out := make([]string, 0, len(t.invalid))
	for code := range t.invalid {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Codes returns the usable currency codes in file order.
func (t *RateTable) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// Len returns the number of usable currencies.
func (t *RateTable) Len() int {
	return len(t.codes)
}

// Provider reads rate tables from CSV files.
type Provider struct {
	rateColumn string
	logger     logging.Logger
}

// NewProvider creates a Provider reading the named rate column. An empty name
// selects DefaultRateColumn.
func NewProvider(rateColumn string, logger logging.Logger) *Provider {
	if rateColumn == "" {
		rateColumn = DefaultRateColumn
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Provider{
		rateColumn: rateColumn,
		logger:     logger.WithField(logging.FieldComponent, "rates"),
	}
}

// LoadFile reads the rate table at path.
func (p *Provider) LoadFile(path string) (*RateTable, error) {
	p.logger.Info("Reading exchange rates", logging.Field{Key: logging.FieldFile, Value: path})

	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.WithError(err).Error("Failed to open exchange rate file")
		return nil, fmt.Errorf("error opening exchange rate file: %w", err)
	}

	table, err := p.Parse(bytes.NewReader(data), path)
	if err != nil {
		p.logger.WithError(err).Error("Failed to parse exchange rate file")
		return nil, err
	}

	p.logger.Info("Successfully read exchange rates", logging.Field{Key: logging.FieldCount, Value: table.Len()})
	return table, nil
}

// Parse reads a rate table from r. source names the input in errors.
func (p *Provider) Parse(r io.Reader, source string) (*RateTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading exchange rates: %w", err)
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: "CSV with a header row",
			Msg:            "cannot read header",
			Err:            err,
		}
	}
	indexColumn := header[0]
	if indexColumn == p.rateColumn || !containsColumn(header[1:], p.rateColumn) {
		return nil, &parsererror.DataExtractionError{
			FilePath:  source,
			FieldName: p.rateColumn,
			Reason:    "column missing",
			Msg:       "header " + strings.Join(header, ","),
		}
	}

	rows, err := gocsv.CSVToMaps(bytes.NewReader(data))
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: "CSV with one rate per currency",
			Msg:            "malformed CSV",
			Err:            err,
		}
	}

	table := NewRateTable(source)
	for i, row := range rows {
		code := strings.TrimSpace(row[indexColumn])
		if code == "" {
			p.logger.Warn("Skipping exchange rate row without currency code",
				logging.Field{Key: logging.FieldFile, Value: source},
				logging.Field{Key: logging.FieldRow, Value: i})
			continue
		}

		_, seen := table.rates[code]
		_, seenInvalid := table.invalid[code]
		if seen || seenInvalid {
			err := &parsererror.InvalidFormatError{
				FilePath:       source,
				ExpectedFormat: "one rate per currency",
				Msg:            fmt.Sprintf("duplicate currency code %s", code),
			}
			p.logger.WithError(err).Warn("Ambiguous exchange rate",
				logging.Field{Key: logging.FieldCurrency, Value: code})
			table.Invalidate(code, err)
			continue
		}

		rate, err := currencyutils.ParseAmount(row[p.rateColumn])
		if err != nil {
			parseErr := &parsererror.ParseError{
				Parser: "rates",
				Field:  p.rateColumn,
				Value:  row[p.rateColumn],
				Row:    i,
				Err:    err,
			}
			p.logger.WithError(parseErr).Warn("Unusable exchange rate",
				logging.Field{Key: logging.FieldCurrency, Value: code})
			table.Invalidate(code, parseErr)
			continue
		}
		table.Set(code, rate)
	}
	return table, nil
}

// LookupFile loads path and returns the rate for code in one step.
func (p *Provider) LookupFile(path, code string) (decimal.Decimal, error) {
	table, err := p.LoadFile(path)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := table.Lookup(code)
	if err != nil {
		return decimal.Zero, err
	}
	p.logger.Info("Resolved exchange rate",
		logging.Field{Key: logging.FieldCurrency, Value: code},
		logging.Field{Key: logging.FieldRate, Value: rate.String()})
	return rate, nil
}

func containsColumn(header []string, column string) bool {
	for _, h := range header {
		if h == column {
			return true
		}
	}
	return false
}
