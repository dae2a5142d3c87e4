package model

import "fmt"

// ConfigurationError reports invalid parameters: non-positive capital,
// out-of-range rates, or a strategy whose required indicator column is
// missing from the series. It is always raised before a simulation starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// DataIntegrityError reports a malformed input series. Index identifies the
// offending bar. A run that hits one returns no partial result.
type DataIntegrityError struct {
	Index  int
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: bar %d: %s", e.Index, e.Reason)
}
