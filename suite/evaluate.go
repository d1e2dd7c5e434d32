package suite

import (
	"fmt"
	"regexp"

	ge "github.com/kokes/great-expectations"
)

// sampleSize caps how many unexpected values a Result carries.
const sampleSize = 5

// Result is the outcome of one expectation against one frame.
type Result struct {
	ExpectationType       string   `json:"expectation_type"`
	Column                string   `json:"column,omitempty"`
	Success               bool     `json:"success"`
	ElementCount          int      `json:"element_count"`
	UnexpectedCount       int      `json:"unexpected_count"`
	PartialUnexpectedList []string `json:"partial_unexpected_list,omitempty"`
	ObservedValue         string   `json:"observed_value,omitempty"`
	Message               string   `json:"message,omitempty"`
}

// Statistics aggregates the results of one suite evaluation.
type Statistics struct {
	EvaluatedExpectations    int     `json:"evaluated_expectations"`
	SuccessfulExpectations   int     `json:"successful_expectations"`
	UnsuccessfulExpectations int     `json:"unsuccessful_expectations"`
	SuccessPercent           float64 `json:"success_percent"`
}

// SuiteResult is the outcome of one suite against one frame.
type SuiteResult struct {
	SuiteName  string     `json:"expectation_suite_name"`
	Success    bool       `json:"success"`
	Results    []Result   `json:"results"`
	Statistics Statistics `json:"statistics"`
}

// Evaluate runs every expectation in the suite against the frame.
func Evaluate(s *Suite, df *ge.DataFrame) SuiteResult {
	out := SuiteResult{SuiteName: s.Name, Success: true}
	for _, exp := range s.Expectations {
		res := evaluateOne(exp, df)
		out.Results = append(out.Results, res)
		out.Statistics.EvaluatedExpectations++
		if res.Success {
			out.Statistics.SuccessfulExpectations++
		} else {
			out.Statistics.UnsuccessfulExpectations++
			out.Success = false
		}
	}
	if out.Statistics.EvaluatedExpectations > 0 {
		out.Statistics.SuccessPercent = 100 * float64(out.Statistics.SuccessfulExpectations) /
			float64(out.Statistics.EvaluatedExpectations)
	}
	return out
}

func evaluateOne(exp Expectation, df *ge.DataFrame) Result {
	switch exp.Type {
	case ColumnToExist:
		return columnToExist(exp, df)
	case TableRowCountToBeBetween:
		return countBetween(exp, df.NumRows(), "row count")
	case TableColumnCountToBeBetween:
		return countBetween(exp, df.NumColumns(), "column count")
	case ColumnValuesToNotBeNull:
		return valuesCheck(exp, df, false, func(v ge.Value) bool {
			return !v.IsNull()
		})
	case ColumnValuesToBeBetween:
		return valuesCheck(exp, df, true, func(v ge.Value) bool {
			f, ok := v.AsFloat()
			if !ok {
				return false
			}
			return inBounds(f, exp.Kwargs.MinValue, exp.Kwargs.MaxValue)
		})
	case ColumnValuesToBeInSet:
		set := make([]ge.Value, 0, len(exp.Kwargs.ValueSet))
		for _, raw := range exp.Kwargs.ValueSet {
			set = append(set, fromYAMLScalar(raw))
		}
		return valuesCheck(exp, df, true, func(v ge.Value) bool {
			for _, member := range set {
				if v.Equal(member) {
					return true
				}
			}
			return false
		})
	case ColumnValuesToBeUnique:
		return valuesUnique(exp, df)
	case ColumnValuesToMatchRegex:
		re, err := regexp.Compile(exp.Kwargs.Regex)
		if err != nil {
			return failure(exp, fmt.Sprintf("compiling regex: %v", err))
		}
		return valuesCheck(exp, df, true, func(v ge.Value) bool {
			return v.Kind() == ge.KindString && re.MatchString(v.StringVal())
		})
	case ColumnMeanToBeBetween:
		return meanBetween(exp, df)
	}
	return failure(exp, fmt.Sprintf("unknown expectation_type '%s'", exp.Type))
}

func failure(exp Expectation, msg string) Result {
	return Result{
		ExpectationType: exp.Type,
		Column:          exp.Kwargs.Column,
		Success:         false,
		Message:         msg,
	}
}

func columnToExist(exp Expectation, df *ge.DataFrame) Result {
	res := Result{ExpectationType: exp.Type, Column: exp.Kwargs.Column}
	if df.HasColumn(exp.Kwargs.Column) {
		res.Success = true
		return res
	}
	res.Message = fmt.Sprintf("column '%s' not found in %v", exp.Kwargs.Column, df.Columns())
	return res
}

func countBetween(exp Expectation, observed int, what string) Result {
	res := Result{
		ExpectationType: exp.Type,
		ObservedValue:   fmt.Sprintf("%d", observed),
	}
	if inBounds(float64(observed), exp.Kwargs.MinValue, exp.Kwargs.MaxValue) {
		res.Success = true
		return res
	}
	res.Message = fmt.Sprintf("%s %d outside [%s, %s]",
		what, observed, boundString(exp.Kwargs.MinValue), boundString(exp.Kwargs.MaxValue))
	return res
}

// valuesCheck is the harness for value-level expectations. When skipNulls is
// set, null cells do not count as elements (original semantics: only
// not-be-null looks at nulls). The mostly kwarg relaxes the required success
// fraction; an empty column is vacuously successful.
func valuesCheck(exp Expectation, df *ge.DataFrame, skipNulls bool, pred func(ge.Value) bool) Result {
	res := Result{ExpectationType: exp.Type, Column: exp.Kwargs.Column}
	col, ok := df.Column(exp.Kwargs.Column)
	if !ok {
		res.Message = fmt.Sprintf("column '%s' not found", exp.Kwargs.Column)
		return res
	}
	for _, v := range col.Values {
		if skipNulls && v.IsNull() {
			continue
		}
		res.ElementCount++
		if !pred(v) {
			res.UnexpectedCount++
			if len(res.PartialUnexpectedList) < sampleSize {
				res.PartialUnexpectedList = append(res.PartialUnexpectedList, v.String())
			}
		}
	}
	res.Success = mostlySatisfied(res.ElementCount, res.UnexpectedCount, exp.Kwargs.Mostly)
	if !res.Success {
		res.Message = fmt.Sprintf("%d of %d values unexpected", res.UnexpectedCount, res.ElementCount)
	}
	return res
}

func valuesUnique(exp Expectation, df *ge.DataFrame) Result {
	res := Result{ExpectationType: exp.Type, Column: exp.Kwargs.Column}
	col, ok := df.Column(exp.Kwargs.Column)
	if !ok {
		res.Message = fmt.Sprintf("column '%s' not found", exp.Kwargs.Column)
		return res
	}
	// Two passes: count occurrences of each rendering, then flag every value
	// whose rendering occurs more than once.
	counts := make(map[string]int)
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		counts[v.String()]++
	}
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		res.ElementCount++
		if counts[v.String()] > 1 {
			res.UnexpectedCount++
			if len(res.PartialUnexpectedList) < sampleSize {
				res.PartialUnexpectedList = append(res.PartialUnexpectedList, v.String())
			}
		}
	}
	res.Success = mostlySatisfied(res.ElementCount, res.UnexpectedCount, exp.Kwargs.Mostly)
	if !res.Success {
		res.Message = fmt.Sprintf("%d of %d values duplicated", res.UnexpectedCount, res.ElementCount)
	}
	return res
}

func meanBetween(exp Expectation, df *ge.DataFrame) Result {
	res := Result{ExpectationType: exp.Type, Column: exp.Kwargs.Column}
	col, ok := df.Column(exp.Kwargs.Column)
	if !ok {
		res.Message = fmt.Sprintf("column '%s' not found", exp.Kwargs.Column)
		return res
	}
	var sum float64
	var n int
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		f, numeric := v.AsFloat()
		if !numeric {
			res.Message = fmt.Sprintf("column '%s' contains non-numeric value %q", exp.Kwargs.Column, v.String())
			return res
		}
		sum += f
		n++
	}
	if n == 0 {
		res.Success = true // vacuous
		return res
	}
	mean := sum / float64(n)
	res.ElementCount = n
	res.ObservedValue = fmt.Sprintf("%g", mean)
	if inBounds(mean, exp.Kwargs.MinValue, exp.Kwargs.MaxValue) {
		res.Success = true
		return res
	}
	res.Message = fmt.Sprintf("mean %g outside [%s, %s]",
		mean, boundString(exp.Kwargs.MinValue), boundString(exp.Kwargs.MaxValue))
	return res
}

func mostlySatisfied(elements, unexpected int, mostly *float64) bool {
	if elements == 0 {
		return true
	}
	required := 1.0
	if mostly != nil {
		required = *mostly
	}
	successRatio := float64(elements-unexpected) / float64(elements)
	return successRatio >= required
}

func inBounds(f float64, min, max *float64) bool {
	if min != nil && f < *min {
		return false
	}
	if max != nil && f > *max {
		return false
	}
	return true
}

func boundString(b *float64) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *b)
}

// fromYAMLScalar converts a scalar as decoded by yaml (or json) into a
// ge.Value for comparisons.
func fromYAMLScalar(raw interface{}) ge.Value {
	switch x := raw.(type) {
	case nil:
		return ge.Null()
	case bool:
		return ge.Bool(x)
	case int:
		return ge.Int(int64(x))
	case int64:
		return ge.Int(x)
	case float64:
		return ge.Float(x)
	case string:
		return ge.String(x)
	}
	return ge.String(fmt.Sprintf("%v", raw))
}
