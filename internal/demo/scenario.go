package demo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/gradebook/internal/records"
)

//go:embed scenarios/original.yaml
var defaultScenarioYAML []byte

//go:embed scenario.cue
var scenarioSchemaCUE []byte

// Operation names accepted in a step's op field.
const (
	OpInitialize       = "initialize"
	OpAddStudent       = "add_student"
	OpAddCourse        = "add_course"
	OpAddGrade         = "add_grade"
	OpListStudents     = "list_students"
	OpStudentCourses   = "student_courses"
	OpUpdateStudentGPA = "update_student_gpa"
	OpUpdateGrade      = "update_grade"
	OpDeleteStudent    = "delete_student"
	OpDeleteGrade      = "delete_grade"
	OpAverageGPA       = "average_gpa"
	OpCourseStats      = "course_stats"
	OpGradesInRange    = "grades_in_range"
)

// Scenario is a named, ordered list of steps.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Step is either a section heading or one operation.
// Exactly one of Section and Op is set.
type Step struct {
	Section string `yaml:"section,omitempty" json:"section,omitempty"`
	Op      string `yaml:"op,omitempty" json:"op,omitempty"`
	Args    Args   `yaml:"args,omitempty" json:"args,omitempty"`
}

// Args holds the arguments of every operation; each op reads the fields
// it needs and ignores the rest. Missing values are passed through as
// zero values so the store's own constraints decide.
type Args struct {
	Name      string       `yaml:"name,omitempty" json:"name,omitempty"`
	Email     string       `yaml:"email,omitempty" json:"email,omitempty"`
	Date      records.Date `yaml:"date,omitempty" json:"date,omitempty"`
	Code      string       `yaml:"code,omitempty" json:"code,omitempty"`
	Credits   *int         `yaml:"credits,omitempty" json:"credits,omitempty"`
	StudentID int64        `yaml:"student_id,omitempty" json:"student_id,omitempty"`
	CourseID  int64        `yaml:"course_id,omitempty" json:"course_id,omitempty"`
	Grade     string       `yaml:"grade,omitempty" json:"grade,omitempty"`
	Score     float64      `yaml:"score,omitempty" json:"score,omitempty"`
	GPA       float64      `yaml:"gpa,omitempty" json:"gpa,omitempty"`
	Start     records.Date `yaml:"start,omitempty" json:"start,omitempty"`
	End       records.Date `yaml:"end,omitempty" json:"end,omitempty"`
}

// DefaultScenario returns the embedded demonstration scenario.
func DefaultScenario() (*Scenario, error) {
	sc, err := ParseYAML(defaultScenarioYAML)
	if err != nil {
		return nil, fmt.Errorf("default scenario: %w", err)
	}
	return sc, nil
}

// LoadScenario reads a scenario file, choosing the format by extension:
// .yaml/.yml or .cue.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, filepath.Base(path))
	default:
		return nil, fmt.Errorf("unsupported scenario format %q: want .yaml, .yml or .cue", filepath.Ext(path))
	}
}

// ParseYAML parses a YAML scenario. Unknown fields are rejected.
func ParseYAML(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// ParseCUE compiles a CUE scenario, unifies it with the #Scenario schema
// and decodes the concrete result. filename is used in error positions.
func ParseCUE(data []byte, filename string) (*Scenario, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(scenarioSchemaCUE, cue.Filename("scenario.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling scenario schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}

	value = schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	raw, err := value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting CUE: %w", err)
	}

	var sc Scenario
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decoding CUE scenario: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

var knownOps = map[string]bool{
	OpInitialize:       true,
	OpAddStudent:       true,
	OpAddCourse:        true,
	OpAddGrade:         true,
	OpListStudents:     true,
	OpStudentCourses:   true,
	OpUpdateStudentGPA: true,
	OpUpdateGrade:      true,
	OpDeleteStudent:    true,
	OpDeleteGrade:      true,
	OpAverageGPA:       true,
	OpCourseStats:      true,
	OpGradesInRange:    true,
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch {
		case step.Section != "" && step.Op != "":
			return fmt.Errorf("step %d: section and op are mutually exclusive", i+1)
		case step.Section == "" && step.Op == "":
			return fmt.Errorf("step %d: one of section or op is required", i+1)
		case step.Op != "" && !knownOps[step.Op]:
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
	}

	return nil
}
