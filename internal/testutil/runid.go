package testutil

// FixedRunIDGenerator generates the same run ID every time.
//
// Runs that share a FixedRunIDGenerator log byte-identical run_id values,
// which keeps golden output stable.
//
// Stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a fixed run ID generator.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
