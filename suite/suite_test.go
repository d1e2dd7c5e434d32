package suite_test

import (
	"strings"
	"testing"

	ge "github.com/kokes/great-expectations"
	"github.com/kokes/great-expectations/suite"
)

const suiteDoc = `
expectation_suite_name: npi
expectations:
  - expectation_type: expect_column_to_exist
    kwargs:
      column: id
  - expectation_type: expect_column_values_to_not_be_null
    kwargs:
      column: id
  - expectation_type: expect_column_values_to_be_between
    kwargs:
      column: age
      min_value: 0
      max_value: 120
      mostly: 0.9
`

func TestParse(t *testing.T) {
	s, err := suite.Parse([]byte(suiteDoc))
	if err != nil {
		t.Fatalf("parsing suite: %v", err)
	}
	if s.Name != "npi" {
		t.Fatalf("wrong name: %s", s.Name)
	}
	if len(s.Expectations) != 3 {
		t.Fatalf("wrong expectation count: %d", len(s.Expectations))
	}
	if m := s.Expectations[2].Kwargs.Mostly; m == nil || *m != 0.9 {
		t.Fatalf("mostly not decoded: %v", m)
	}
}

func TestParseRejectsBadDocs(t *testing.T) {
	docs := map[string]string{
		"unknown type": `
expectation_suite_name: x
expectations:
  - expectation_type: expect_magic
    kwargs: {column: a}
`,
		"missing column": `
expectation_suite_name: x
expectations:
  - expectation_type: expect_column_values_to_be_unique
    kwargs: {}
`,
		"bad regex": `
expectation_suite_name: x
expectations:
  - expectation_type: expect_column_values_to_match_regex
    kwargs: {column: a, regex: "(["}
`,
		"mostly out of range": `
expectation_suite_name: x
expectations:
  - expectation_type: expect_column_values_to_not_be_null
    kwargs: {column: a, mostly: 1.5}
`,
		"no bounds": `
expectation_suite_name: x
expectations:
  - expectation_type: expect_table_row_count_to_be_between
    kwargs: {}
`,
		"no name": `
expectations: []
`,
		"unknown field": `
expectation_suite_name: x
surprise: true
expectations: []
`,
	}
	for name, doc := range docs {
		if _, err := suite.Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s, err := suite.Parse([]byte(suiteDoc))
	if err != nil {
		t.Fatalf("parsing suite: %v", err)
	}
	out, err := s.Marshal()
	if err != nil {
		t.Fatalf("marshaling suite: %v", err)
	}
	again, err := suite.Parse(out)
	if err != nil {
		t.Fatalf("reparsing suite: %v", err)
	}
	if again.Name != s.Name || len(again.Expectations) != len(s.Expectations) {
		t.Fatalf("round trip changed the suite: %+v", again)
	}
}

func TestRead(t *testing.T) {
	s, err := suite.Read(strings.NewReader(suiteDoc))
	if err != nil {
		t.Fatalf("reading suite: %v", err)
	}
	if s.Name != "npi" {
		t.Fatalf("wrong name: %s", s.Name)
	}
}

func testFrame(t *testing.T) *ge.DataFrame {
	t.Helper()
	df, err := ge.NewDataFrame(
		ge.Column{Name: "id", Values: []ge.Value{ge.Int(1), ge.Int(2), ge.Int(3), ge.Int(2)}},
		ge.Column{Name: "age", Values: []ge.Value{ge.Int(33), ge.Null(), ge.Int(150), ge.Int(40)}},
		ge.Column{Name: "name", Values: []ge.Value{ge.String("ann"), ge.String("bob"), ge.String("cyd"), ge.Null()}},
	)
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}
	return df
}

func evalOne(t *testing.T, df *ge.DataFrame, exp suite.Expectation) suite.Result {
	t.Helper()
	s := &suite.Suite{Name: "t", Expectations: []suite.Expectation{exp}}
	if err := s.Validate(); err != nil {
		t.Fatalf("validating suite: %v", err)
	}
	return suite.Evaluate(s, df).Results[0]
}

func f64(f float64) *float64 { return &f }

func TestEvaluateColumnToExist(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{Type: suite.ColumnToExist, Kwargs: suite.Kwargs{Column: "id"}})
	if !res.Success {
		t.Fatalf("id should exist: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{Type: suite.ColumnToExist, Kwargs: suite.Kwargs{Column: "zip"}})
	if res.Success {
		t.Fatal("zip should not exist")
	}
}

func TestEvaluateRowCount(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{
		Type:   suite.TableRowCountToBeBetween,
		Kwargs: suite.Kwargs{MinValue: f64(1), MaxValue: f64(10)},
	})
	if !res.Success {
		t.Fatalf("row count should pass: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{
		Type:   suite.TableRowCountToBeBetween,
		Kwargs: suite.Kwargs{MinValue: f64(5)},
	})
	if res.Success {
		t.Fatal("row count should fail with min 5")
	}
}

func TestEvaluateNotNull(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{Type: suite.ColumnValuesToNotBeNull, Kwargs: suite.Kwargs{Column: "id"}})
	if !res.Success {
		t.Fatalf("id has no nulls: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{Type: suite.ColumnValuesToNotBeNull, Kwargs: suite.Kwargs{Column: "age"}})
	if res.Success || res.UnexpectedCount != 1 {
		t.Fatalf("age has one null: %+v", res)
	}
	// mostly 0.75 tolerates the single null out of four rows
	res = evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToNotBeNull,
		Kwargs: suite.Kwargs{Column: "age", Mostly: f64(0.75)},
	})
	if !res.Success {
		t.Fatalf("mostly should tolerate the null: %+v", res)
	}
}

func TestEvaluateBetweenSkipsNulls(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToBeBetween,
		Kwargs: suite.Kwargs{Column: "age", MinValue: f64(0), MaxValue: f64(120)},
	})
	if res.Success {
		t.Fatalf("150 is out of bounds: %+v", res)
	}
	if res.ElementCount != 3 {
		t.Fatalf("nulls should not count as elements: %+v", res)
	}
	if res.UnexpectedCount != 1 || len(res.PartialUnexpectedList) != 1 || res.PartialUnexpectedList[0] != "150" {
		t.Fatalf("unexpected sample wrong: %+v", res)
	}
}

func TestEvaluateInSet(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToBeInSet,
		Kwargs: suite.Kwargs{Column: "id", ValueSet: []interface{}{1, 2, 3}},
	})
	if !res.Success {
		t.Fatalf("ids are all in set: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToBeInSet,
		Kwargs: suite.Kwargs{Column: "name", ValueSet: []interface{}{"ann", "bob"}},
	})
	if res.Success || res.UnexpectedCount != 1 {
		t.Fatalf("cyd is not in set: %+v", res)
	}
}

func TestEvaluateUnique(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{Type: suite.ColumnValuesToBeUnique, Kwargs: suite.Kwargs{Column: "id"}})
	if res.Success || res.UnexpectedCount != 2 {
		t.Fatalf("both 2s should be flagged: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{Type: suite.ColumnValuesToBeUnique, Kwargs: suite.Kwargs{Column: "name"}})
	if !res.Success {
		t.Fatalf("names are unique (nulls skipped): %+v", res)
	}
}

func TestEvaluateRegex(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToMatchRegex,
		Kwargs: suite.Kwargs{Column: "name", Regex: "^[a-z]{3}$"},
	})
	if !res.Success {
		t.Fatalf("names match: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToMatchRegex,
		Kwargs: suite.Kwargs{Column: "name", Regex: "^a"},
	})
	if res.Success || res.UnexpectedCount != 2 {
		t.Fatalf("only ann starts with a: %+v", res)
	}
}

func TestEvaluateMean(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnMeanToBeBetween,
		Kwargs: suite.Kwargs{Column: "id", MinValue: f64(1), MaxValue: f64(3)},
	})
	if !res.Success {
		t.Fatalf("mean of ids is 2: %+v", res)
	}
	res = evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnMeanToBeBetween,
		Kwargs: suite.Kwargs{Column: "name", MinValue: f64(0)},
	})
	if res.Success {
		t.Fatal("mean over strings should fail")
	}
}

func TestEvaluateMissingColumnFailsExpectation(t *testing.T) {
	df := testFrame(t)
	res := evalOne(t, df, suite.Expectation{Type: suite.ColumnValuesToNotBeNull, Kwargs: suite.Kwargs{Column: "zip"}})
	if res.Success {
		t.Fatal("missing column should fail the expectation")
	}
}

func TestEvaluateEmptyColumnIsVacuous(t *testing.T) {
	df, err := ge.NewDataFrame(ge.Column{Name: "a", Values: nil})
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}
	res := evalOne(t, df, suite.Expectation{
		Type:   suite.ColumnValuesToBeBetween,
		Kwargs: suite.Kwargs{Column: "a", MinValue: f64(0)},
	})
	if !res.Success {
		t.Fatalf("empty column should be vacuously true: %+v", res)
	}
}

func TestEvaluateStatistics(t *testing.T) {
	df := testFrame(t)
	s := &suite.Suite{Name: "stats", Expectations: []suite.Expectation{
		{Type: suite.ColumnToExist, Kwargs: suite.Kwargs{Column: "id"}},
		{Type: suite.ColumnToExist, Kwargs: suite.Kwargs{Column: "zip"}},
	}}
	out := suite.Evaluate(s, df)
	if out.Success {
		t.Fatal("one failing expectation should fail the suite")
	}
	st := out.Statistics
	if st.EvaluatedExpectations != 2 || st.SuccessfulExpectations != 1 || st.UnsuccessfulExpectations != 1 {
		t.Fatalf("bad statistics: %+v", st)
	}
	if st.SuccessPercent != 50 {
		t.Fatalf("bad success percent: %v", st.SuccessPercent)
	}
}
