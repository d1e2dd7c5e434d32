package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kokes/great-expectations/project"
)

// InitMain is wrapped by NewInitCommand and only exported for testing
// purposes.
type InitMain struct {
	Dir string `flag:"-"`

	stdout io.Writer
}

// NewInitMain returns an InitMain with default values.
func NewInitMain() *InitMain {
	return &InitMain{Dir: "."}
}

// Run scaffolds a new project.
func (m *InitMain) Run() error {
	ctx, err := project.Init(m.Dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.stdout, "A new project was scaffolded at %s\n", ctx.Root())
	fmt.Fprintf(m.stdout, "  - put expectation suites in %s/\n", project.ExpectationsDir)
	fmt.Fprintf(m.stdout, "  - put checkpoints in %s/\n", project.CheckpointsDir)
	return nil
}

// NewInitCommand returns a new cobra command wrapping InitMain.
func NewInitCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	main := NewInitMain()
	main.stdout = stdout
	initCommand := &cobra.Command{
		Use:   "init",
		Short: "init - scaffold a new project in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return main.Run()
		},
	}
	initCommand.Flags().StringVarP(&main.Dir, "directory", "d", ".", "Directory to scaffold the project in.")
	return initCommand
}

func init() {
	subcommandFns["init"] = NewInitCommand
}
