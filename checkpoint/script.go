package checkpoint

import (
	"bytes"
	"go/format"
	"text/template"

	"github.com/pkg/errors"
)

// scriptTmpl is the standalone runner emitted by `checkpoint script`. The
// generated program loads the surrounding project and exits non-zero when
// validation fails, so it can drop into cron or an orchestrator as-is.
var scriptTmpl = template.Must(template.New("script").Parse(`// Code generated by "ge checkpoint script {{.Name}}"; edit as needed.

package main

import (
	"fmt"
	"os"

	"github.com/kokes/great-expectations/project"
)

func main() {
	ctx, err := project.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	result, err := ctx.RunCheckpoint({{printf "%q" .Name}}, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !result.Success {
		fmt.Println("Validation Failed!")
		os.Exit(1)
	}
	fmt.Println("Validation Succeeded!")
}
`))

// Script renders a gofmt'd standalone program that runs the named
// checkpoint.
func Script(name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return nil, errors.Wrap(err, "rendering checkpoint script")
	}
	src, err := format.Source(buf.Bytes())
	return src, errors.Wrap(err, "formatting checkpoint script")
}
