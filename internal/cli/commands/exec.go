package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/nail/internal/engine"
	"github.com/leapstack-labs/nail/pkg/parser"
	"github.com/leapstack-labs/nail/pkg/token"
)

// Diagnostic is a parse or runtime error located in a script.
type Diagnostic struct {
	File string
	Pos  token.Position
	Err  error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Pos.Line, d.Pos.Column, d.Message())
}

// Message describes the error without its location.
func (d *Diagnostic) Message() string {
	var pe *parser.ParseError
	if errors.As(d.Err, &pe) {
		return pe.Message()
	}
	return d.Err.Error()
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// parseDiagnostic locates a parse error.
func parseDiagnostic(file string, err error) *Diagnostic {
	d := &Diagnostic{File: file, Err: err}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		d.Pos = pe.Span.Start
	}
	return d
}

// script is a named source text.
type script struct {
	Name string
	Src  []byte
}

// execute parses and runs s against db, rendering each result as it is
// produced. Parse and runtime errors are reported on the status writer;
// unless continueOnError is set the first one stops the script. A non-nil
// error means output could not be written.
func (cc *CommandContext) execute(db *engine.Database, s script, continueOnError bool) ([]*Diagnostic, error) {
	var diags []*Diagnostic
	report := func(d *Diagnostic) bool {
		diags = append(diags, d)
		cc.Renderer.Error(d.Error())
		return continueOnError
	}

	for cmd, err := range parser.NewParser(s.Src).Commands() {
		if err != nil {
			if !report(parseDiagnostic(s.Name, err)) {
				break
			}
			continue
		}

		out, err := db.Run(cmd)
		if err != nil {
			d := &Diagnostic{File: s.Name, Pos: cmd.GetSpan().Start, Err: err}
			if !report(d) {
				break
			}
			continue
		}
		if err := cc.Renderer.RenderOutput(out); err != nil {
			return diags, fmt.Errorf("failed to write output: %w", err)
		}
	}

	if len(diags) > 0 {
		cc.Logger.Debug("script finished with errors", "script", s.Name, "errors", len(diags))
	}
	return diags, nil
}
