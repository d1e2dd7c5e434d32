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

// Package termstat collects validation run counters and prints them to the
// terminal. It is a lightweight stand-in for an actual metrics collector
// writing to an external tool.
package termstat

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Counter names used by the validation operator.
const (
	StatRowsValidated         = "rows_validated"
	StatExpectationsEvaluated = "expectations_evaluated"
	StatExpectationsFailed    = "expectations_failed"
	StatSuitesRun             = "suites_run"
)

// Collector accumulates named counters and prints them on demand. The zero
// value is not usable; use NewCollector.
type Collector struct {
	lock    sync.Mutex
	indexes map[string]int
	names   []string
	stats   []int64
	out     io.Writer
}

// NewCollector returns a Collector writing its summaries to out.
func NewCollector(out io.Writer) *Collector {
	return &Collector{
		indexes: make(map[string]int),
		out:     out,
	}
}

// Count adds value to the named counter. Counters appear in the summary in
// the order they were first counted.
func (t *Collector) Count(name string, value int64) {
	t.lock.Lock()
	defer t.lock.Unlock()

	idx, ok := t.indexes[name]
	if !ok {
		idx = len(t.stats)
		t.stats = append(t.stats, 0)
		t.names = append(t.names, name)
		t.indexes[name] = idx
	}
	t.stats[idx] += value
}

// Value returns the current value of the named counter, zero if never
// counted.
func (t *Collector) Value(name string) int64 {
	t.lock.Lock()
	defer t.lock.Unlock()
	idx, ok := t.indexes[name]
	if !ok {
		return 0
	}
	return t.stats[idx]
}

// Flush prints a one-line summary of all counters and resets them.
func (t *Collector) Flush() {
	t.lock.Lock()
	defer t.lock.Unlock()
	if len(t.stats) == 0 {
		return
	}
	sb := strings.Builder{}
	for i := 0; i < len(t.stats); i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s: %d", t.names[i], t.stats[i])
	}
	fmt.Fprintln(t.out, sb.String())
	t.indexes = make(map[string]int)
	t.names = t.names[:0]
	t.stats = t.stats[:0]
}
