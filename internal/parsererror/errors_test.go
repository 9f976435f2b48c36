package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	originalErr := errors.New("can't convert abc to decimal")
	err := &ParseError{
		Parser: "transformer",
		Field:  "Market Cap (US$ Billion)",
		Value:  "abc",
		Row:    2,
		Err:    originalErr,
	}

	assert.Equal(t, "transformer: failed to parse Market Cap (US$ Billion)='abc' at row 2: can't convert abc to decimal", err.Error())
	assert.True(t, errors.Is(err, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name: "without cause",
			err: &InvalidFormatError{
				FilePath:       "a.json",
				ExpectedFormat: "JSON table",
				Msg:            "unexpected top-level value",
			},
			expected: "invalid format in file 'a.json': unexpected top-level value. Expected: JSON table",
		},
		{
			name: "with cause",
			err: &InvalidFormatError{
				FilePath:       "a.json",
				ExpectedFormat: "JSON table",
				Msg:            "malformed JSON",
				Err:            errors.New("unexpected EOF"),
			},
			expected: "invalid format in file 'a.json': malformed JSON. Expected: JSON table: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDataExtractionError(t *testing.T) {
	err := &DataExtractionError{
		FilePath:  "banks.json",
		FieldName: "Name",
		Reason:    "column missing",
		Msg:       "row 0",
	}
	assert.Equal(t, "data extraction failed in file 'banks.json' for field 'Name': row 0. Reason: column missing", err.Error())
}

func TestRateNotFoundError(t *testing.T) {
	assert.Equal(t, "exchange rate for 'XYZ' not found", (&RateNotFoundError{Currency: "XYZ"}).Error())
	assert.Equal(t, "exchange rate for 'XYZ' not found in 'rates.csv'",
		(&RateNotFoundError{Currency: "XYZ", FilePath: "rates.csv"}).Error())
}

func TestPhaseError_Unwrap(t *testing.T) {
	inner := &RateNotFoundError{Currency: "GBP"}
	wrapped := fmt.Errorf("lookup: %w", inner)
	err := &PhaseError{Phase: "Transform", Err: wrapped}

	assert.Equal(t, "Transform phase failed: lookup: exchange rate for 'GBP' not found", err.Error())

	var target *RateNotFoundError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "GBP", target.Currency)
}
