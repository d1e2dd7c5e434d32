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

// Package project locates and manages a project directory: the
// great_expectations.yml config, the expectation suites, the checkpoints and
// the validation store.
package project

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	s3 "github.com/kokes/great-expectations/aws/s3"
	"github.com/kokes/great-expectations/checkpoint"
	"github.com/kokes/great-expectations/datasource"
	"github.com/kokes/great-expectations/store"
	"github.com/kokes/great-expectations/store/boltstore"
	"github.com/kokes/great-expectations/store/levelstore"
	"github.com/kokes/great-expectations/suite"
)

// Context is a loaded project.
type Context struct {
	root string
	cfg  Config
}

// Root returns the project's root directory.
func (c *Context) Root() string { return c.root }

// Config returns the parsed project config.
func (c *Context) Config() Config { return c.cfg }

// Load opens the project rooted at dir. With an empty dir it walks up from
// the current working directory looking for great_expectations.yml.
func Load(dir string) (*Context, error) {
	var err error
	if dir == "" {
		dir, err = FindRoot()
		if err != nil {
			return nil, err
		}
	}
	raw, err := ioutil.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "no project at %s", dir)
	}
	cfg, err := parseConfig(raw)
	if err != nil {
		return nil, err
	}
	return &Context{root: dir, cfg: cfg}, nil
}

// FindRoot walks up from the current working directory until it finds a
// directory containing great_expectations.yml.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Errorf("no %s found here or in any parent directory; run 'ge init' first", ConfigFileName)
		}
		dir = parent
	}
}

// Init scaffolds a new project at dir: the config file and the standard
// directories. It refuses to overwrite an existing project.
func Init(dir string) (*Context, error) {
	cfgPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil, errors.Errorf("a project already exists at %s", dir)
	}
	for _, sub := range []string{ExpectationsDir, CheckpointsDir, UncommittedDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, errors.Wrapf(err, "creating %s", sub)
		}
	}
	cfg := DefaultConfig()
	raw, err := cfg.marshal()
	if err != nil {
		return nil, err
	}
	if err := ioutil.WriteFile(cfgPath, raw, 0644); err != nil {
		return nil, errors.Wrap(err, "writing project config")
	}
	return &Context{root: dir, cfg: cfg}, nil
}

// CheckpointPath returns where the named checkpoint lives on disk.
func (c *Context) CheckpointPath(name string) string {
	return filepath.Join(c.root, CheckpointsDir, name+".yml")
}

// ListCheckpoints returns the names of all checkpoints, sorted.
func (c *Context) ListCheckpoints() ([]string, error) {
	return listYAML(filepath.Join(c.root, CheckpointsDir))
}

// GetCheckpoint loads the named checkpoint.
func (c *Context) GetCheckpoint(name string) (checkpoint.Checkpoint, error) {
	path := c.CheckpointPath(name)
	if _, err := os.Stat(path); err != nil {
		return checkpoint.Checkpoint{}, errors.Errorf("could not find checkpoint '%s'", name)
	}
	return checkpoint.Read(path)
}

// SaveCheckpoint writes a new checkpoint. It refuses to overwrite an
// existing one.
func (c *Context) SaveCheckpoint(name string, cp checkpoint.Checkpoint) error {
	path := c.CheckpointPath(name)
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("a checkpoint named '%s' already exists, please choose a new name", name)
	}
	raw, err := cp.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating checkpoints directory")
	}
	return errors.Wrapf(ioutil.WriteFile(path, raw, 0644), "writing checkpoint '%s'", name)
}

// ScriptCheckpoint renders a standalone runner program for the named
// checkpoint into uncommitted/ and returns its path. It refuses to overwrite
// an existing script.
func (c *Context) ScriptCheckpoint(name string) (string, error) {
	if _, err := c.GetCheckpoint(name); err != nil {
		return "", err
	}
	path := filepath.Join(c.root, UncommittedDir, "run_"+name+".go")
	if _, err := os.Stat(path); err == nil {
		return "", errors.Errorf("a script for checkpoint '%s' already exists at %s", name, path)
	}
	src, err := checkpoint.Script(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, "creating uncommitted directory")
	}
	if err := ioutil.WriteFile(path, src, 0644); err != nil {
		return "", errors.Wrapf(err, "writing script for checkpoint '%s'", name)
	}
	return path, nil
}

// ListSuites returns the names of all expectation suites, sorted.
func (c *Context) ListSuites() ([]string, error) {
	return listYAML(filepath.Join(c.root, ExpectationsDir))
}

// GetSuite loads the named expectation suite.
func (c *Context) GetSuite(name string) (*suite.Suite, error) {
	path := filepath.Join(c.root, ExpectationsDir, name+".yml")
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("could not find expectation suite '%s'", name)
	}
	defer f.Close()
	s, err := suite.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading suite '%s'", name)
	}
	return s, nil
}

// Datasource builds the project's datasource from the config, wiring an S3
// fetcher for s3:// batch kwargs.
func (c *Context) Datasource() (*datasource.Datasource, error) {
	dsCfg := c.cfg.Datasource
	opts := []datasource.Option{}
	if dsCfg.Name != "" {
		opts = append(opts, datasource.OptName(dsCfg.Name))
	}
	if dsCfg.ReaderMethod != "" {
		opts = append(opts, datasource.OptReaderMethod(dsCfg.ReaderMethod))
	}
	if len(dsCfg.ReaderOptions) > 0 {
		opts = append(opts, datasource.OptReaderOptions(dsCfg.ReaderOptions))
	}
	if dsCfg.Limit > 0 {
		opts = append(opts, datasource.OptLimit(dsCfg.Limit))
	}
	clientOpts := []s3.ClientOption{}
	if dsCfg.AWSRegion != "" {
		clientOpts = append(clientOpts, s3.OptRegion(dsCfg.AWSRegion))
	}
	client, err := s3.NewClient(clientOpts...)
	if err != nil {
		return nil, err
	}
	opts = append(opts, datasource.OptFetcher(client))
	return datasource.New(opts...), nil
}

// OpenValidationStore opens the validation store picked by the config.
func (c *Context) OpenValidationStore() (store.Store, error) {
	stCfg := c.cfg.Stores.Validations
	backend := stCfg.Backend
	if backend == "" {
		backend = BackendBolt
	}
	path := stCfg.Path
	if path == "" {
		path = UncommittedDir + "/validations.db"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.root, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}
	switch backend {
	case BackendBolt:
		return boltstore.Open(path)
	case BackendLevelDB:
		return levelstore.Open(path)
	default:
		return nil, errors.Errorf("unknown store backend '%s'", backend)
	}
}

func listYAML(dir string) ([]string, error) {
	infos, err := ioutil.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var names []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		if strings.HasSuffix(name, ".yml") {
			names = append(names, strings.TrimSuffix(name, ".yml"))
		}
	}
	sort.Strings(names)
	return names, nil
}
