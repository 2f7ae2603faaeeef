package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/nail/internal/cli/output"
	"github.com/leapstack-labs/nail/pkg/parser"
)

// checkReport is the machine-readable form of one syntax error.
type checkReport struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Message string `json:"message" yaml:"message"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Check scripts for syntax errors",
		Long: `Parse scripts without executing them and report every syntax error.

Files are parsed concurrently. The command exits with a non-zero status
when any error is found.`,
		Example: `  nail check *.nail
  nail check -o json schema.nail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	scripts, err := readScripts(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	diags, err := checkScripts(cmd, scripts)
	if err != nil {
		return err
	}

	total := 0
	for _, d := range diags {
		total += len(d)
	}
	cc.Logger.Debug("check finished", "files", len(scripts), "errors", total)

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		reports := make([]checkReport, 0, total)
		for _, fileDiags := range diags {
			for _, d := range fileDiags {
				reports = append(reports, checkReport{
					File:    d.File,
					Line:    d.Pos.Line,
					Column:  d.Pos.Column,
					Message: d.Message(),
				})
			}
		}
		if r.EffectiveMode() == output.ModeJSON {
			err = r.JSON(reports)
		} else {
			err = r.YAML(reports)
		}
		if err != nil {
			return err
		}
	default:
		for _, fileDiags := range diags {
			for _, d := range fileDiags {
				r.Println(d.Error())
			}
		}
		if total == 0 {
			r.Success(fmt.Sprintf("%d file(s) OK", len(scripts)))
		}
	}

	if total > 0 {
		return fmt.Errorf("%d syntax error(s) in %d file(s)", total, countNonEmpty(diags))
	}
	return nil
}

// checkScripts parses every script concurrently. The result holds one
// slice of diagnostics per script, in input order.
func checkScripts(cmd *cobra.Command, scripts []script) ([][]*Diagnostic, error) {
	diags := make([][]*Diagnostic, len(scripts))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range scripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, errs := parser.Parse(s.Src)
			for _, err := range errs {
				diags[i] = append(diags[i], parseDiagnostic(s.Name, err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return diags, nil
}

func countNonEmpty(diags [][]*Diagnostic) int {
	n := 0
	for _, d := range diags {
		if len(d) > 0 {
			n++
		}
	}
	return n
}
