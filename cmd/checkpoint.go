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

package cmd

import (
	"fmt"
	"io"

	"github.com/jaffee/commandeer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ge "github.com/kokes/great-expectations"
	"github.com/kokes/great-expectations/checkpoint"
	"github.com/kokes/great-expectations/project"
)

// ErrValidationFailed is returned by `checkpoint run` when the data did not
// meet its expectations, so main can exit non-zero.
var ErrValidationFailed = errors.New("validation failed")

// CheckpointNewMain is wrapped by newCheckpointNewCommand and only exported
// for testing purposes.
type CheckpointNewMain struct {
	Dir       string `flag:"-"`
	Name      string `flag:"-"`
	Suite     string `flag:"-"`
	BatchPath string `help:"Local path or http(s) URL to the batch data."`
	BatchS3   string `help:"s3://bucket/key URL to the batch data."`

	stdout io.Writer
}

// NewCheckpointNewMain returns a CheckpointNewMain with default values.
func NewCheckpointNewMain() *CheckpointNewMain {
	return &CheckpointNewMain{}
}

// Run creates the checkpoint.
func (m *CheckpointNewMain) Run() error {
	if (m.BatchPath == "") == (m.BatchS3 == "") {
		return errors.New("exactly one of --batch-path and --batch-s3 must be given")
	}
	ctx, err := project.Load(m.Dir)
	if err != nil {
		return err
	}
	if _, err := ctx.GetSuite(m.Suite); err != nil {
		return err
	}
	kwargs := ge.BatchKwargs{Path: m.BatchPath, S3: m.BatchS3}
	cp := checkpoint.Template(kwargs, m.Suite)
	if err := ctx.SaveCheckpoint(m.Name, cp); err != nil {
		return err
	}
	fmt.Fprintf(m.stdout, "A checkpoint named '%s' was added to your project!\n", m.Name)
	fmt.Fprintf(m.stdout, "  - To run it, use `ge checkpoint run %s`\n", m.Name)
	return nil
}

// CheckpointListMain is wrapped by newCheckpointListCommand and only exported
// for testing purposes.
type CheckpointListMain struct {
	Dir string `flag:"-"`

	stdout io.Writer
}

// NewCheckpointListMain returns a CheckpointListMain with default values.
func NewCheckpointListMain() *CheckpointListMain {
	return &CheckpointListMain{}
}

// Run prints the checkpoints in the project.
func (m *CheckpointListMain) Run() error {
	ctx, err := project.Load(m.Dir)
	if err != nil {
		return err
	}
	names, err := ctx.ListCheckpoints()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(m.stdout, "No checkpoints found.")
		fmt.Fprintln(m.stdout, "Use the command `ge checkpoint new` to create one.")
		return nil
	}
	fmt.Fprintf(m.stdout, "Found %d checkpoint(s).\n", len(names))
	for _, name := range names {
		fmt.Fprintf(m.stdout, " - %s\n", name)
	}
	return nil
}

// CheckpointRunMain is wrapped by newCheckpointRunCommand and only exported
// for testing purposes.
type CheckpointRunMain struct {
	Dir  string `flag:"-"`
	Name string `flag:"-"`

	stdout io.Writer
}

// NewCheckpointRunMain returns a CheckpointRunMain with default values.
func NewCheckpointRunMain() *CheckpointRunMain {
	return &CheckpointRunMain{}
}

// Run runs the checkpoint and reports the outcome.
func (m *CheckpointRunMain) Run() error {
	ctx, err := project.Load(m.Dir)
	if err != nil {
		return err
	}
	result, err := ctx.RunCheckpoint(m.Name, m.stdout)
	if err != nil {
		return err
	}
	if !result.Success {
		fmt.Fprintln(m.stdout, "Validation Failed!")
		return ErrValidationFailed
	}
	fmt.Fprintln(m.stdout, "Validation Succeeded!")
	return nil
}

// CheckpointScriptMain is wrapped by newCheckpointScriptCommand and only
// exported for testing purposes.
type CheckpointScriptMain struct {
	Dir  string `flag:"-"`
	Name string `flag:"-"`

	stdout io.Writer
}

// NewCheckpointScriptMain returns a CheckpointScriptMain with default values.
func NewCheckpointScriptMain() *CheckpointScriptMain {
	return &CheckpointScriptMain{}
}

// Run writes a standalone runner program for the checkpoint.
func (m *CheckpointScriptMain) Run() error {
	ctx, err := project.Load(m.Dir)
	if err != nil {
		return err
	}
	path, err := ctx.ScriptCheckpoint(m.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.stdout, "A script was created that runs the checkpoint named: '%s'\n", m.Name)
	fmt.Fprintf(m.stdout, "  - The script is located in '%s'\n", path)
	fmt.Fprintf(m.stdout, "  - The script can be run with 'go run %s'\n", path)
	return nil
}

// NewCheckpointCommand returns the parent `checkpoint` command with its
// subcommands attached.
func NewCheckpointCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cpCommand := &cobra.Command{
		Use:   "checkpoint",
		Short: "checkpoint - manage and run checkpoints",
		Long:  `A checkpoint bundles batches of data with the expectation suites to validate them against.`,
	}
	cpCommand.AddCommand(newCheckpointNewCommand(stdout))
	cpCommand.AddCommand(newCheckpointListCommand(stdout))
	cpCommand.AddCommand(newCheckpointRunCommand(stdout))
	cpCommand.AddCommand(newCheckpointScriptCommand(stdout))
	return cpCommand
}

func newCheckpointNewCommand(stdout io.Writer) *cobra.Command {
	main := NewCheckpointNewMain()
	main.stdout = stdout
	com := &cobra.Command{
		Use:   "new NAME SUITE",
		Short: "new - create a new checkpoint for a suite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			main.Name, main.Suite = args[0], args[1]
			return main.Run()
		},
	}
	flags := com.Flags()
	if err := commandeer.Flags(flags, main); err != nil {
		panic(err)
	}
	flags.StringVarP(&main.Dir, "directory", "d", "", "Project directory. Defaults to searching upward for "+project.ConfigFileName+".")
	return com
}

func newCheckpointListCommand(stdout io.Writer) *cobra.Command {
	main := NewCheckpointListMain()
	main.stdout = stdout
	com := &cobra.Command{
		Use:   "list",
		Short: "list - list the checkpoints in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return main.Run()
		},
	}
	com.Flags().StringVarP(&main.Dir, "directory", "d", "", "Project directory. Defaults to searching upward for "+project.ConfigFileName+".")
	return com
}

func newCheckpointRunCommand(stdout io.Writer) *cobra.Command {
	main := NewCheckpointRunMain()
	main.stdout = stdout
	com := &cobra.Command{
		Use:   "run NAME",
		Short: "run - validate the checkpoint's batches against its suites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			main.Name = args[0]
			return main.Run()
		},
	}
	com.Flags().StringVarP(&main.Dir, "directory", "d", "", "Project directory. Defaults to searching upward for "+project.ConfigFileName+".")
	return com
}

func newCheckpointScriptCommand(stdout io.Writer) *cobra.Command {
	main := NewCheckpointScriptMain()
	main.stdout = stdout
	com := &cobra.Command{
		Use:   "script NAME",
		Short: "script - generate a standalone program that runs the checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			main.Name = args[0]
			return main.Run()
		},
	}
	com.Flags().StringVarP(&main.Dir, "directory", "d", "", "Project directory. Defaults to searching upward for "+project.ConfigFileName+".")
	return com
}

func init() {
	subcommandFns["checkpoint"] = NewCheckpointCommand
}
