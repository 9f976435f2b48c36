package transformer

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"fjacquet/bankcap-etl/internal/currencyutils"
	"fjacquet/bankcap-etl/internal/models"
	"fjacquet/bankcap-etl/internal/parsererror"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gbpTransformer(rate string) *Transformer {
	return New(Options{
		Currency:  "GBP",
		Rate:      decimal.RequireFromString(rate),
		Precision: DefaultPrecision,
	}, nil)
}

func extracted(rows ...models.RawRecord) models.ExtractedTable {
	table := models.NewExtractedTable()
	table.Append(rows...)
	return table
}

func TestTransform_SingleRow(t *testing.T) {
	out, err := gbpTransformer("0.8").Transform(extracted(models.RawRecord{Name: "Bank A", MarketCap: "100"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Market Cap (GBP$ Billion)"}, out.Columns)
	assert.Equal(t, "GBP", out.Currency)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Bank A", out.Rows[0].Name)
	assert.Equal(t, "80.0", currencyutils.FormatAmount(out.Rows[0].MarketCap))
}

func TestTransform_RoundsToThreePlaces(t *testing.T) {
	tests := []struct {
		value    string
		rate     string
		expected string
	}{
		{"390.934", "0.732398", "286.319"},
		{"1", "0.3333333", "0.333"},
		{" 2.5 ", "1", "2.5"},
		{"1.0005", "1", "1"},
		{"1.0015", "1", "1.002"},
		{"-10", "0.8", "-8"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s*%s", tc.value, tc.rate), func(t *testing.T) {
			out, err := gbpTransformer(tc.rate).Transform(extracted(models.RawRecord{Name: "X", MarketCap: tc.value}))
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(out.Rows[0].MarketCap),
				"got %s", out.Rows[0].MarketCap)
		})
	}
}

func TestTransform_HalfUpRounding(t *testing.T) {
	tr := New(Options{
		Currency:  "GBP",
		Rate:      decimal.NewFromInt(1),
		Precision: 3,
		Rounding:  currencyutils.RoundHalfUp,
	}, nil)

	out, err := tr.Transform(extracted(models.RawRecord{Name: "X", MarketCap: "1.0005"}))
	require.NoError(t, err)
	assert.Equal(t, "1.001", out.Rows[0].MarketCap.String())
}

func TestTransform_PreservesCountAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			in := models.NewExtractedTable()
			for i := 0; i < n; i++ {
				in.Append(models.RawRecord{Name: fmt.Sprintf("Bank %03d", i), MarketCap: fmt.Sprintf("%d.5", i)})
			}

			out, err := gbpTransformer("0.5").Transform(in)
			require.NoError(t, err)
			require.Equal(t, n, out.Len())

			for i, row := range out.Rows {
				assert.Equal(t, in.Rows[i].Name, row.Name)
				want := currencyutils.Convert(decimal.RequireFromString(in.Rows[i].MarketCap),
					decimal.RequireFromString("0.5"), 3, currencyutils.RoundHalfEven)
				assert.True(t, want.Equal(row.MarketCap))
			}
			assert.NotContains(t, out.Columns, models.ColumnMarketCapUSD)
		})
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	in := extracted(models.RawRecord{Name: "Bank A", MarketCap: "100"})
	before := extracted(models.RawRecord{Name: "Bank A", MarketCap: "100"})

	_, err := gbpTransformer("0.8").Transform(in)
	require.NoError(t, err)

	if diff := cmp.Diff(before, in); diff != "" {
		t.Errorf("input table changed (-before +after):\n%s", diff)
	}
}

func TestTransform_RejectsNonNumeric(t *testing.T) {
	in := extracted(
		models.RawRecord{Name: "Bank A", MarketCap: "100"},
		models.RawRecord{Name: "Bank B", MarketCap: "n/a"},
	)

	_, err := gbpTransformer("0.8").Transform(in)
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Row)
	assert.Equal(t, "n/a", parseErr.Value)
}

func TestCoerce_RejectsEmpty(t *testing.T) {
	_, err := Coerce(extracted(models.RawRecord{Name: "Bank A", MarketCap: ""}))
	assert.Error(t, err)
}

func TestTransform_RejectsOutOfRangeAmount(t *testing.T) {
	in := extracted(models.RawRecord{Name: "Bank A", MarketCap: "1e50000000"})

	start := time.Now()
	_, err := gbpTransformer("0.8").Transform(in)

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 0, parseErr.Row)
	assert.Contains(t, parseErr.Error(), "out of range")
	assert.Less(t, time.Since(start), time.Second)
}
