package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldComponent  = "component"
	FieldPhase      = "phase"
	FieldRunID      = "run_id"
	FieldCurrency   = "currency"
	FieldRate       = "rate"
	FieldRow        = "row"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldPattern    = "pattern"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
