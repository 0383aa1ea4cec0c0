package store

import "database/sql"

// nullToFloatPtr converts an aggregate that may be NULL.
// NULL (no rows) stays distinguishable from a real 0.0.
func nullToFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
