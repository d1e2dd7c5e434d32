package checkpoint_test

import (
	"strings"
	"testing"

	ge "github.com/kokes/great-expectations"
	"github.com/kokes/great-expectations/checkpoint"
)

func TestParse(t *testing.T) {
	raw := `
validation_operator_name: action_list_operator
batches:
  - batch_kwargs:
      path: /data/users.csv
      reader_method: csv
    expectation_suite_names:
      - users.basic
      - users.strict
`
	cp, err := checkpoint.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parsing checkpoint: %v", err)
	}
	if cp.ValidationOperatorName != "action_list_operator" {
		t.Fatalf("operator: %s", cp.ValidationOperatorName)
	}
	if len(cp.Batches) != 1 {
		t.Fatalf("batches: %d", len(cp.Batches))
	}
	b := cp.Batches[0]
	if b.BatchKwargs.Path != "/data/users.csv" || b.BatchKwargs.ReaderMethod != "csv" {
		t.Fatalf("kwargs: %v", b.BatchKwargs)
	}
	if len(b.ExpectationSuiteNames) != 2 || b.ExpectationSuiteNames[1] != "users.strict" {
		t.Fatalf("suites: %v", b.ExpectationSuiteNames)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown field", "batches: []\nnot_a_field: 1\n"},
		{"no batches", "validation_operator_name: action_list_operator\n"},
		{"no kwargs", "batches:\n  - expectation_suite_names: [users.basic]\n"},
		{"no suites", "batches:\n  - batch_kwargs:\n      path: /data/users.csv\n"},
		{"empty suite name", "batches:\n  - batch_kwargs:\n      path: /data/users.csv\n    expectation_suite_names: ['']\n"},
	}
	for _, test := range tests {
		if _, err := checkpoint.Parse([]byte(test.raw)); err == nil {
			t.Fatalf("%s: expected error", test.name)
		}
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	cp := checkpoint.Template(ge.BatchKwargs{S3: "s3://bucket/users.csv"}, "users.basic")
	out, err := cp.Marshal()
	if err != nil {
		t.Fatalf("marshaling checkpoint: %v", err)
	}
	got, err := checkpoint.Parse(out)
	if err != nil {
		t.Fatalf("reparsing checkpoint: %v", err)
	}
	if got.ValidationOperatorName != checkpoint.DefaultOperator {
		t.Fatalf("operator: %s", got.ValidationOperatorName)
	}
	if got.Batches[0].BatchKwargs.S3 != "s3://bucket/users.csv" {
		t.Fatalf("kwargs: %v", got.Batches[0].BatchKwargs)
	}
}

func TestScript(t *testing.T) {
	src, err := checkpoint.Script("daily_users")
	if err != nil {
		t.Fatalf("rendering script: %v", err)
	}
	for _, want := range []string{
		"package main",
		`"github.com/kokes/great-expectations/project"`,
		`RunCheckpoint("daily_users", os.Stdout)`,
		"Validation Failed!",
	} {
		if !strings.Contains(string(src), want) {
			t.Fatalf("script missing %q:\n%s", want, src)
		}
	}
}
