// Package records provides the row types shared by the gradebook packages.
//
// This package contains type definitions only. The store, demo and cli
// packages import records; records imports nothing internal.
//
// Key design constraints:
//   - Calendar dates are Date values, persisted as YYYY-MM-DD text so that
//     lexical comparison in SQL equals calendar comparison
//   - Aggregates that can be undefined (no rows) are pointers, never 0.0
//   - All JSON tags use snake_case
package records
