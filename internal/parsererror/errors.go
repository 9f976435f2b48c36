// Package parsererror defines the typed errors returned by the ETL components.
package parsererror

import "fmt"

// ParseError represents a value that could not be coerced to its target type.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Row    int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s' at row %d: %v",
		e.Parser, e.Field, e.Value, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s: %v",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents an error where specific required data could not be extracted
// from a file, even if the file format itself is valid.
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
	Msg       string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s",
		e.FilePath, e.FieldName, e.Msg, e.Reason)
}

// RateNotFoundError is returned when a currency code is not present in a rate table.
type RateNotFoundError struct {
	Currency string
	FilePath string
}

func (e *RateNotFoundError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("exchange rate for '%s' not found", e.Currency)
	}
	return fmt.Sprintf("exchange rate for '%s' not found in '%s'", e.Currency, e.FilePath)
}

// PhaseError attaches the ETL phase that failed to the underlying error.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
