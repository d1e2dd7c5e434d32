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
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Parser represents a single method for parsing a string field to a Value.
type Parser interface {
	Parse(string) (Value, error)
}

// IntParser is a parser for integer fields.
type IntParser struct{}

// FloatParser is a parser for float fields.
type FloatParser struct{}

// BoolParser is a parser for boolean fields.
type BoolParser struct{}

// TimeParser is a parser for timestamps.
type TimeParser struct {
	Layout string
}

// StringParser is an identity parser for string fields.
type StringParser struct{}

// Parse parses an integer string to an int Value.
func (p IntParser) Parse(field string) (Value, error) {
	i, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return Null(), err
	}
	return Int(i), nil
}

// Parse parses a float string to a float Value.
func (p FloatParser) Parse(field string) (Value, error) {
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return Null(), err
	}
	return Float(f), nil
}

// Parse parses "true"/"false" to a bool Value.
func (p BoolParser) Parse(field string) (Value, error) {
	b, err := strconv.ParseBool(field)
	if err != nil {
		return Null(), err
	}
	return Bool(b), nil
}

// Parse parses a timestamp string to a time Value.
func (p TimeParser) Parse(field string) (Value, error) {
	t, err := time.Parse(p.Layout, field)
	if err != nil {
		return Null(), err
	}
	return Time(t), nil
}

// Parse wraps the field in a string Value.
func (p StringParser) Parse(field string) (Value, error) {
	return String(field), nil
}

// inferenceChain is the order in which column types are attempted. String
// always succeeds, so it terminates the chain.
var inferenceChain = []Parser{
	IntParser{},
	FloatParser{},
	BoolParser{},
	TimeParser{Layout: time.RFC3339},
	StringParser{},
}

// InferColumn builds a typed Column from raw string cells. The whole column
// is parsed with the first parser in the chain that accepts every non-empty
// cell; empty cells become null.
func InferColumn(name string, cells []string) Column {
	col := Column{Name: name, Values: make([]Value, len(cells))}
	for _, parser := range inferenceChain {
		ok := true
		for i, cell := range cells {
			if cell == "" {
				col.Values[i] = Null()
				continue
			}
			v, err := parser.Parse(cell)
			if err != nil {
				ok = false
				break
			}
			col.Values[i] = v
		}
		if ok {
			return col
		}
	}
	return col // unreachable: StringParser never fails
}

// FrameFromRecords builds a DataFrame from a header and rows of raw string
// cells, inferring a type per column. Rows shorter than the header are
// padded with nulls; longer rows are an error.
func FrameFromRecords(header []string, rows [][]string) (*DataFrame, error) {
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, errors.Errorf("row %d has %d fields, header has %d", i, len(row), len(header))
		}
	}
	cols := make([]Column, len(header))
	for j, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				cells[i] = row[j]
			}
		}
		cols[j] = InferColumn(name, cells)
	}
	return NewDataFrame(cols...)
}
