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
	"strings"
	"time"
)

// LoadTimeLayout is the timestamp layout recorded in batch markers.
const LoadTimeLayout = "20060102T150405.000000Z"

// Marker keys set by the datasource layer.
const (
	MarkerLoadTime    = "ge_load_time"
	MarkerFingerprint = "data_fingerprint"
)

// BatchKwargs describes where and how to load one batch of data. Exactly one
// of Path, S3 or Dataset is expected to be set.
type BatchKwargs struct {
	// Path is a local file path or an http(s) URL.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// S3 is an s3://bucket/key URL.
	S3 string `yaml:"s3,omitempty" json:"s3,omitempty"`
	// Dataset is an already-loaded in-memory frame. It is never persisted.
	Dataset *DataFrame `yaml:"-" json:"-"`

	ReaderMethod  string                 `yaml:"reader_method,omitempty" json:"reader_method,omitempty"`
	ReaderOptions map[string]interface{} `yaml:"reader_options,omitempty" json:"reader_options,omitempty"`
	Limit         int                    `yaml:"limit,omitempty" json:"limit,omitempty"`

	// InMemory and BatchID are provenance markers set by the datasource when
	// wrapping a Dataset; they are kept so persisted kwargs still identify
	// the batch after the frame itself is stripped.
	InMemory bool   `yaml:"in_memory_frame,omitempty" json:"in_memory_frame,omitempty"`
	BatchID  string `yaml:"ge_batch_id,omitempty" json:"ge_batch_id,omitempty"`
}

// String renders the kwargs for user-facing messages.
func (k BatchKwargs) String() string {
	parts := []string{}
	if k.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", k.Path))
	}
	if k.S3 != "" {
		parts = append(parts, fmt.Sprintf("s3=%s", k.S3))
	}
	if k.Dataset != nil || k.InMemory {
		parts = append(parts, "in_memory_frame=true")
	}
	if k.ReaderMethod != "" {
		parts = append(parts, fmt.Sprintf("reader_method=%s", k.ReaderMethod))
	}
	if len(k.ReaderOptions) > 0 {
		// fmt prints maps with sorted keys, so the rendering is stable
		parts = append(parts, fmt.Sprintf("reader_options=%v", k.ReaderOptions))
	}
	if k.Limit != 0 {
		parts = append(parts, fmt.Sprintf("limit=%d", k.Limit))
	}
	if k.BatchID != "" {
		parts = append(parts, fmt.Sprintf("ge_batch_id=%s", k.BatchID))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// BatchMarkers records provenance about how a batch was loaded.
type BatchMarkers map[string]string

// NewBatchMarkers returns markers stamped with the current load time.
func NewBatchMarkers(now time.Time) BatchMarkers {
	return BatchMarkers{
		MarkerLoadTime: now.UTC().Format(LoadTimeLayout),
	}
}

// Batch pairs one loaded frame with the kwargs that produced it and the
// markers recorded while loading.
type Batch struct {
	DatasourceName string
	Kwargs         BatchKwargs
	Markers        BatchMarkers
	Data           *DataFrame
}
