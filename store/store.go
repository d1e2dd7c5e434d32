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

// Package store persists validation results. Two embedded key-value
// backends implement the same interface; the project configuration picks
// one.
package store

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get for unknown keys.
var ErrNotFound = errors.New("validation record not found")

// Record is one persisted validation result.
type Record struct {
	RunID   string          `json:"run_id"`
	Suite   string          `json:"expectation_suite_name"`
	RunTime string          `json:"run_time"`
	Success bool            `json:"success"`
	Details json.RawMessage `json:"details,omitempty"`
}

// Key identifies the record within a store: one record per suite per run.
func (r Record) Key() string {
	return r.RunID + "/" + r.Suite
}

// Encode renders the record for storage.
func (r Record) Encode() ([]byte, error) {
	out, err := json.Marshal(r)
	return out, errors.Wrap(err, "encoding validation record")
}

// Decode parses a stored record.
func Decode(raw []byte) (Record, error) {
	var r Record
	err := json.Unmarshal(raw, &r)
	return r, errors.Wrap(err, "decoding validation record")
}

// Store is a validation-result store.
type Store interface {
	// Put writes the record under its Key, overwriting any previous value.
	Put(rec Record) error
	// Get returns the record stored under key, or ErrNotFound.
	Get(key string) (Record, error)
	// List returns all stored keys in lexicographic order.
	List() ([]string, error)
	// Close releases the underlying database.
	Close() error
}
