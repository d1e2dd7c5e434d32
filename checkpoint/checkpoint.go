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

// Package checkpoint defines the checkpoint document: a named bundle of
// batches, each paired with the expectation suites to validate it against.
package checkpoint

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	ge "github.com/kokes/great-expectations"
)

// DefaultOperator is the validation operator run for checkpoints that do not
// name one.
const DefaultOperator = "action_list_operator"

// Batch pairs batch kwargs with the suites that must pass against the batch.
type Batch struct {
	BatchKwargs           ge.BatchKwargs `yaml:"batch_kwargs"`
	ExpectationSuiteNames []string       `yaml:"expectation_suite_names"`
}

// Checkpoint is one checkpoint document.
type Checkpoint struct {
	ValidationOperatorName string  `yaml:"validation_operator_name"`
	Batches                []Batch `yaml:"batches"`
}

// Template returns a minimal checkpoint for one batch and one suite, the
// shape written out by `checkpoint new`.
func Template(kwargs ge.BatchKwargs, suiteName string) Checkpoint {
	return Checkpoint{
		ValidationOperatorName: DefaultOperator,
		Batches: []Batch{
			{BatchKwargs: kwargs, ExpectationSuiteNames: []string{suiteName}},
		},
	}
}

// Parse decodes and validates a checkpoint document. Unknown fields are
// rejected.
func Parse(raw []byte) (Checkpoint, error) {
	var cp Checkpoint
	if err := yaml.UnmarshalStrict(raw, &cp); err != nil {
		return Checkpoint{}, errors.Wrap(err, "unmarshaling checkpoint")
	}
	if err := cp.Validate(); err != nil {
		return Checkpoint{}, err
	}
	return cp, nil
}

// Read loads a checkpoint from a file.
func Read(path string) (Checkpoint, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return Checkpoint{}, errors.Wrapf(err, "reading checkpoint at %s", path)
	}
	cp, err := Parse(raw)
	return cp, errors.Wrapf(err, "parsing checkpoint at %s", path)
}

// Marshal renders the checkpoint as YAML.
func (c Checkpoint) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	return out, errors.Wrap(err, "marshaling checkpoint")
}

// Validate checks the checkpoint is runnable: at least one batch, and every
// batch has kwargs and at least one suite.
func (c Checkpoint) Validate() error {
	if len(c.Batches) == 0 {
		return errors.New("checkpoint has no batches")
	}
	for i, b := range c.Batches {
		k := b.BatchKwargs
		if k.Path == "" && k.S3 == "" && k.Dataset == nil {
			return errors.Errorf("batch %d has no batch_kwargs", i)
		}
		if len(b.ExpectationSuiteNames) == 0 {
			return errors.Errorf("batch %v has no expectation_suite_names", b.BatchKwargs)
		}
		for _, name := range b.ExpectationSuiteNames {
			if name == "" {
				return errors.Errorf("batch %v has an empty suite name", b.BatchKwargs)
			}
		}
	}
	return nil
}
