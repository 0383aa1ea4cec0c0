// Package demo runs scripted sequences of grade store operations and
// renders each result to the console.
//
// A Scenario is an ordered list of steps. A step is either a section
// heading or one store operation with its arguments. Scenarios load from
// YAML or CUE. The default scenario is embedded: it adds sample data, then
// reads, joins, aggregates, filters, updates and deletes grades.
//
// Constraint violations are reported inline and the run continues. Any
// other store error stops the run and is returned to the caller.
package demo
