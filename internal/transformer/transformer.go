// Package transformer converts the extracted USD market caps into the target
// currency.
package transformer

import (
	"fjacquet/bankcap-etl/internal/currencyutils"
	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/models"
	"fjacquet/bankcap-etl/internal/parsererror"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places kept after conversion.
const DefaultPrecision int32 = 3

// Options configures a Transformer.
type Options struct {
	// Currency is the target currency code, used for the output column name.
	Currency string
	// Rate multiplies every USD amount.
	Rate decimal.Decimal
	// Precision is the number of decimal places kept.
	Precision int32
	// Rounding resolves ties when rounding to Precision.
	Rounding currencyutils.RoundingMode
}

// Transformer coerces, converts and renames the market-cap column.
type Transformer struct {
	opts   Options
	logger logging.Logger
}

// New creates a Transformer. The rate is fixed for the transformer's lifetime.
func New(opts Options, logger logging.Logger) *Transformer {
	if opts.Rounding == "" {
		opts.Rounding = currencyutils.RoundHalfEven
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Transformer{
		opts: opts,
		logger: logger.WithFields(
			logging.Field{Key: logging.FieldComponent, Value: "transformer"},
			logging.Field{Key: logging.FieldCurrency, Value: opts.Currency}),
	}
}

// Transform returns a new table with every market cap multiplied by the rate
// and rounded. Rows keep their count and order; the input is not modified.
func (t *Transformer) Transform(table models.ExtractedTable) (models.TransformedTable, error) {
	typed, err := Coerce(table)
	if err != nil {
		t.logger.WithError(err).Error("Failed to coerce market cap values")
		return models.TransformedTable{}, err
	}

	for i := range typed {
		typed[i].MarketCap = currencyutils.Convert(typed[i].MarketCap, t.opts.Rate, t.opts.Precision, t.opts.Rounding)
	}

	out := models.TransformedTable{
		Columns:  []string{models.ColumnName, models.MarketCapColumn(t.opts.Currency)},
		Currency: t.opts.Currency,
		Rows:     typed,
	}

	t.logger.Info("Converted market caps",
		logging.Field{Key: logging.FieldRate, Value: t.opts.Rate.String()},
		logging.Field{Key: logging.FieldCount, Value: out.Len()})
	return out, nil
}

// Coerce parses every raw market cap into a decimal. The first value that is
// not a number fails the whole table with a ParseError.
func Coerce(table models.ExtractedTable) ([]models.BankMarketCap, error) {
	typed := make([]models.BankMarketCap, len(table.Rows))
	for i, row := range table.Rows {
		amount, err := currencyutils.ParseAmount(row.MarketCap)
		if err != nil {
			return nil, &parsererror.ParseError{
				Parser: "transformer",
				Field:  models.ColumnMarketCapUSD,
				Value:  row.MarketCap,
				Row:    i,
				Err:    err,
			}
		}
		typed[i] = models.BankMarketCap{Name: row.Name, MarketCap: amount}
	}
	return typed, nil
}
