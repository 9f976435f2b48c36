package loader

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/bankcap-etl/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gbpTable(rows ...models.BankMarketCap) models.TransformedTable {
	return models.TransformedTable{
		Columns:  []string{models.ColumnName, models.MarketCapColumn("GBP")},
		Currency: "GBP",
		Rows:     rows,
	}
}

func TestLoad_ExactOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_market_cap_gbp.csv")
	table := gbpTable(models.BankMarketCap{Name: "Bank A", MarketCap: decimal.RequireFromString("80.000")})

	require.NoError(t, New(0, nil).Load(path, table))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Market Cap (GBP$ Billion)\nBank A,80.0\n", string(content))
}

func TestLoad_NoIndexColumnAndQuoting(t *testing.T) {
	table := gbpTable(
		models.BankMarketCap{Name: "Industrial and Commercial Bank of China", MarketCap: decimal.RequireFromString("173.557")},
		models.BankMarketCap{Name: "Mitsubishi UFJ, Financial", MarketCap: decimal.RequireFromString("0.5")},
	)

	var buf bytes.Buffer
	require.NoError(t, New(0, nil).Write(&buf, table))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, record := range records {
		assert.Len(t, record, 2)
	}
	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, []string{"Mitsubishi UFJ, Financial", "0.5"}, records[2])
}

func TestLoad_EmptyTableWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(0, nil).Write(&buf, gbpTable()))
	assert.Equal(t, "Name,Market Cap (GBP$ Billion)\n", buf.String())
}

func TestLoad_CustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	table := gbpTable(models.BankMarketCap{Name: "Bank A", MarketCap: decimal.RequireFromString("1.25")})
	require.NoError(t, New(';', nil).Write(&buf, table))
	assert.Equal(t, "Name;Market Cap (GBP$ Billion)\nBank A;1.25\n", buf.String())
}

func TestLoad_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,content\nmore,lines\nand,more\n"), 0600))

	require.NoError(t, New(0, nil).Load(path, gbpTable()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Market Cap (GBP$ Billion)\n", string(content))
}

func TestLoad_UnwritablePath(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0600))

	err := New(0, nil).Load(filepath.Join(parent, "out.csv"), gbpTable())
	assert.Error(t, err)
}
