package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Column headers of the bank market-cap tables.
const (
	ColumnName         = "Name"
	ColumnMarketCapUSD = "Market Cap (US$ Billion)"
)

// MarketCapColumn returns the market-cap header for the given currency code,
// e.g. "Market Cap (GBP$ Billion)".
func MarketCapColumn(currency string) string {
	return fmt.Sprintf("Market Cap (%s$ Billion)", currency)
}

// RawRecord is a bank row as read from the source files. MarketCap keeps the
// literal text of the source value; it is only coerced during transform.
type RawRecord struct {
	Name      string
	MarketCap string
}

// ExtractedTable is the ordered accumulation of every extracted row.
type ExtractedTable struct {
	Columns []string
	Rows    []RawRecord
}

// NewExtractedTable returns an empty table with the extraction columns.
func NewExtractedTable() ExtractedTable {
	return ExtractedTable{
		Columns: []string{ColumnName, ColumnMarketCapUSD},
		Rows:    []RawRecord{},
	}
}

// Append adds rows at the end of the table, preserving their order.
func (t *ExtractedTable) Append(rows ...RawRecord) {
	t.Rows = append(t.Rows, rows...)
}

// Len returns the number of rows.
func (t ExtractedTable) Len() int {
	return len(t.Rows)
}

// BankMarketCap is a typed row with the market cap expressed in billions of
// the table currency.
type BankMarketCap struct {
	Name      string
	MarketCap decimal.Decimal
}

// TransformedTable holds the converted rows. Currency is the code the market
// cap column is expressed in.
type TransformedTable struct {
	Columns  []string
	Currency string
	Rows     []BankMarketCap
}

// Len returns the number of rows.
func (t TransformedTable) Len() int {
	return len(t.Rows)
}
