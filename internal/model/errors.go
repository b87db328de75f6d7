package model

import "errors"

// Sentinel errors for this package. Callers match them with errors.Is.
var (
	// ErrSchemaMismatch reports a parameter set with a missing, unknown or
	// non-finite field.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnknownMetric reports a metric name outside the vGUPPI catalogue.
	ErrUnknownMetric = errors.New("unknown metric")
)
