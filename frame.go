// Copyright 2020 the great-expectations authors.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package ge

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Kind enumerates the scalar types a DataFrame cell can hold.
type Kind int

// The supported cell kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a single typed cell. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an int Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Time returns a time Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t.UTC()} }

// Kind reports the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolVal returns the underlying bool. It is only meaningful for KindBool.
func (v Value) BoolVal() bool { return v.b }

// IntVal returns the underlying int64. It is only meaningful for KindInt.
func (v Value) IntVal() int64 { return v.i }

// FloatVal returns the underlying float64. It is only meaningful for KindFloat.
func (v Value) FloatVal() float64 { return v.f }

// StringVal returns the underlying string. It is only meaningful for KindString.
func (v Value) StringVal() string { return v.s }

// TimeVal returns the underlying time. It is only meaningful for KindTime.
func (v Value) TimeVal() time.Time { return v.t }

// AsFloat coerces numeric values to float64. ok is false for anything that
// isn't an int or a float.
func (v Value) AsFloat() (f float64, ok bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Equal compares two values. Ints and floats compare across kinds so that
// Int(3) equals Float(3.0), mirroring how value sets behave in suite
// definitions read back from YAML.
func (v Value) Equal(o Value) bool {
	if (v.kind == KindInt || v.kind == KindFloat) && (o.kind == KindInt || o.kind == KindFloat) {
		vf, _ := v.AsFloat()
		of, _ := o.AsFloat()
		return vf == of
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindTime:
		return v.t.Equal(o.t)
	}
	return false
}

// String renders the value for messages and fingerprinting. The rendering is
// canonical per kind, so equal values render identically.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindTime:
		return v.t.UTC().Format(time.RFC3339Nano)
	}
	return ""
}

// Column is a named, ordered list of values.
type Column struct {
	Name   string
	Values []Value
}

// DataFrame is the uniform in-memory representation of one batch of tabular
// data. Columns are ordered and names are unique; every column has the same
// length.
type DataFrame struct {
	cols  []Column
	index map[string]int
}

// NewDataFrame builds a DataFrame from columns, enforcing unique names and
// equal column lengths.
func NewDataFrame(cols ...Column) (*DataFrame, error) {
	df := &DataFrame{
		cols:  cols,
		index: make(map[string]int, len(cols)),
	}
	rows := -1
	for i, col := range cols {
		if col.Name == "" {
			return nil, errors.Errorf("column %d has an empty name", i)
		}
		if prev, exists := df.index[col.Name]; exists {
			return nil, errors.Errorf("column '%s' appears at both %d and %d", col.Name, prev, i)
		}
		df.index[col.Name] = i
		if rows == -1 {
			rows = len(col.Values)
		} else if len(col.Values) != rows {
			return nil, errors.Errorf("column '%s' has %d values, want %d", col.Name, len(col.Values), rows)
		}
	}
	return df, nil
}

// NumRows returns the number of rows.
func (df *DataFrame) NumRows() int {
	if len(df.cols) == 0 {
		return 0
	}
	return len(df.cols[0].Values)
}

// NumColumns returns the number of columns.
func (df *DataFrame) NumColumns() int { return len(df.cols) }

// Columns returns the column names in order.
func (df *DataFrame) Columns() []string {
	names := make([]string, len(df.cols))
	for i, col := range df.cols {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.index[name]
	return ok
}

// Column returns the named column.
func (df *DataFrame) Column(name string) (Column, bool) {
	i, ok := df.index[name]
	if !ok {
		return Column{}, false
	}
	return df.cols[i], true
}

// Head returns a frame containing at most n rows. n < 0 returns the frame
// unchanged.
func (df *DataFrame) Head(n int) *DataFrame {
	if n < 0 || n >= df.NumRows() {
		return df
	}
	cols := make([]Column, len(df.cols))
	for i, col := range df.cols {
		cols[i] = Column{Name: col.Name, Values: col.Values[:n]}
	}
	out, _ := NewDataFrame(cols...) // invariants already hold
	return out
}

// ApproxMemoryBytes estimates the in-memory size of the frame. It is a rough
// accounting used to decide whether fingerprinting is affordable, not an
// exact measurement.
func (df *DataFrame) ApproxMemoryBytes() int64 {
	var total int64
	for _, col := range df.cols {
		total += int64(len(col.Name))
		for _, v := range col.Values {
			total += 16
			if v.kind == KindString {
				total += int64(len(v.s))
			}
		}
	}
	return total
}
