package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kokes/great-expectations/project"
)

// SuiteListMain is wrapped by NewSuiteCommand and only exported for testing
// purposes.
type SuiteListMain struct {
	Dir string `flag:"-"`

	stdout io.Writer
}

// NewSuiteListMain returns a SuiteListMain with default values.
func NewSuiteListMain() *SuiteListMain {
	return &SuiteListMain{}
}

// Run prints the expectation suites in the project.
func (m *SuiteListMain) Run() error {
	ctx, err := project.Load(m.Dir)
	if err != nil {
		return err
	}
	names, err := ctx.ListSuites()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(m.stdout, "No expectation suites found.")
		return nil
	}
	fmt.Fprintf(m.stdout, "Found %d expectation suite(s).\n", len(names))
	for _, name := range names {
		fmt.Fprintf(m.stdout, " - %s\n", name)
	}
	return nil
}

// NewSuiteCommand returns the parent `suite` command with its subcommands
// attached.
func NewSuiteCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	suiteCommand := &cobra.Command{
		Use:   "suite",
		Short: "suite - manage expectation suites",
	}

	main := NewSuiteListMain()
	main.stdout = stdout
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "list - list the expectation suites in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return main.Run()
		},
	}
	listCommand.Flags().StringVarP(&main.Dir, "directory", "d", "", "Project directory. Defaults to searching upward for "+project.ConfigFileName+".")
	suiteCommand.AddCommand(listCommand)
	return suiteCommand
}

func init() {
	subcommandFns["suite"] = NewSuiteCommand
}
