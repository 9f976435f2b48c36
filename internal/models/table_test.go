package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtractedTable(t *testing.T) {
	table := NewExtractedTable()

	assert.Equal(t, []string{"Name", "Market Cap (US$ Billion)"}, table.Columns)
	assert.NotNil(t, table.Rows)
	assert.Equal(t, 0, table.Len())
}

func TestExtractedTable_AppendPreservesOrder(t *testing.T) {
	table := NewExtractedTable()
	table.Append(RawRecord{Name: "A", MarketCap: "1"})
	table.Append(RawRecord{Name: "B", MarketCap: "2"}, RawRecord{Name: "C", MarketCap: "3"})

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "A", table.Rows[0].Name)
	assert.Equal(t, "C", table.Rows[2].Name)
}

func TestMarketCapColumn(t *testing.T) {
	assert.Equal(t, "Market Cap (GBP$ Billion)", MarketCapColumn("GBP"))
	assert.Equal(t, ColumnMarketCapUSD, MarketCapColumn("US"))
}
