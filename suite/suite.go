// Package suite defines expectation suites: named collections of assertions
// about tabular data, and their evaluation against a ge.DataFrame.
package suite

import (
	"io"
	"io/ioutil"
	"regexp"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// The implemented expectation types.
const (
	ColumnToExist               = "expect_column_to_exist"
	TableRowCountToBeBetween    = "expect_table_row_count_to_be_between"
	TableColumnCountToBeBetween = "expect_table_column_count_to_be_between"
	ColumnValuesToNotBeNull     = "expect_column_values_to_not_be_null"
	ColumnValuesToBeBetween     = "expect_column_values_to_be_between"
	ColumnValuesToBeInSet       = "expect_column_values_to_be_in_set"
	ColumnValuesToBeUnique      = "expect_column_values_to_be_unique"
	ColumnValuesToMatchRegex    = "expect_column_values_to_match_regex"
	ColumnMeanToBeBetween       = "expect_column_mean_to_be_between"
)

// Kwargs are the per-expectation parameters. Which fields apply depends on
// the expectation type.
type Kwargs struct {
	Column   string        `yaml:"column,omitempty" json:"column,omitempty"`
	MinValue *float64      `yaml:"min_value,omitempty" json:"min_value,omitempty"`
	MaxValue *float64      `yaml:"max_value,omitempty" json:"max_value,omitempty"`
	ValueSet []interface{} `yaml:"value_set,omitempty" json:"value_set,omitempty"`
	Regex    string        `yaml:"regex,omitempty" json:"regex,omitempty"`
	// Mostly is the minimum fraction of values that must meet the
	// expectation, in [0, 1]. Nil means all of them.
	Mostly *float64 `yaml:"mostly,omitempty" json:"mostly,omitempty"`
}

// Expectation is a single assertion.
type Expectation struct {
	Type   string `yaml:"expectation_type" json:"expectation_type"`
	Kwargs Kwargs `yaml:"kwargs" json:"kwargs"`
}

// Suite is a named collection of expectations.
type Suite struct {
	Name         string        `yaml:"expectation_suite_name" json:"expectation_suite_name"`
	Expectations []Expectation `yaml:"expectations" json:"expectations"`
}

// columnKinds lists which expectation types require a column kwarg.
var columnKinds = map[string]bool{
	ColumnToExist:            true,
	ColumnValuesToNotBeNull:  true,
	ColumnValuesToBeBetween:  true,
	ColumnValuesToBeInSet:    true,
	ColumnValuesToBeUnique:   true,
	ColumnValuesToMatchRegex: true,
	ColumnMeanToBeBetween:    true,
}

var tableKinds = map[string]bool{
	TableRowCountToBeBetween:    true,
	TableColumnCountToBeBetween: true,
}

// Parse decodes a suite document and validates it.
func Parse(doc []byte) (*Suite, error) {
	var s Suite
	if err := yaml.UnmarshalStrict(doc, &s); err != nil {
		return nil, errors.Wrap(err, "decoding suite document")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Read decodes a suite document from r.
func Read(r io.Reader) (*Suite, error) {
	doc, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading suite document")
	}
	return Parse(doc)
}

// Marshal renders the suite as YAML.
func (s *Suite) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(s)
	return out, errors.Wrap(err, "encoding suite document")
}

// Validate checks structural invariants: known expectation types, required
// kwargs per type, compilable regexes, mostly in [0, 1].
func (s *Suite) Validate() error {
	if s.Name == "" {
		return errors.New("suite has no expectation_suite_name")
	}
	for i, exp := range s.Expectations {
		if !columnKinds[exp.Type] && !tableKinds[exp.Type] {
			return errors.Errorf("expectation %d: unknown expectation_type '%s'", i, exp.Type)
		}
		if columnKinds[exp.Type] && exp.Kwargs.Column == "" {
			return errors.Errorf("expectation %d (%s): column kwarg is required", i, exp.Type)
		}
		if m := exp.Kwargs.Mostly; m != nil && (*m < 0 || *m > 1) {
			return errors.Errorf("expectation %d (%s): mostly must be in [0, 1], got %v", i, exp.Type, *m)
		}
		switch exp.Type {
		case TableRowCountToBeBetween, TableColumnCountToBeBetween,
			ColumnValuesToBeBetween, ColumnMeanToBeBetween:
			if exp.Kwargs.MinValue == nil && exp.Kwargs.MaxValue == nil {
				return errors.Errorf("expectation %d (%s): min_value or max_value is required", i, exp.Type)
			}
		case ColumnValuesToBeInSet:
			if len(exp.Kwargs.ValueSet) == 0 {
				return errors.Errorf("expectation %d (%s): value_set is required", i, exp.Type)
			}
		case ColumnValuesToMatchRegex:
			if exp.Kwargs.Regex == "" {
				return errors.Errorf("expectation %d (%s): regex is required", i, exp.Type)
			}
			if _, err := regexp.Compile(exp.Kwargs.Regex); err != nil {
				return errors.Wrapf(err, "expectation %d (%s): compiling regex", i, exp.Type)
			}
		}
	}
	return nil
}
