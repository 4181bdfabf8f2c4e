package domain

import "fmt"

// SchemaError reports a structurally unusable input table, e.g. no date
// column or no recognized AOD channel columns. It is the only fatal
// error class in the transform; row- and site-level problems are
// recovered locally and surfaced through the QualityReport counters.
type SchemaError struct {
	Missing string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input schema mismatch: missing %s", e.Missing)
}
