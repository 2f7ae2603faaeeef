package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/nail/internal/cli/output"
	"github.com/leapstack-labs/nail/internal/engine"
	"github.com/leapstack-labs/nail/pkg/parser"
	"github.com/leapstack-labs/nail/pkg/token"
)

// continuationPrompt is shown while a statement spans several lines.
const continuationPrompt = "  ...> "

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session against an in-memory database.

Statements may span several lines and run once a top-level ';' is
entered. Type .help for the list of dot commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunREPL(cmd)
		},
	}

	cmd.Flags().String("history-file", "", "Path of the history file (empty disables history)")
	cmd.Flags().String("prompt", "", "Prompt shown for a new statement")

	return cmd
}

// lineReader is the part of *readline.Instance the session loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// RunREPL runs an interactive session on the command's streams.
func RunREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	db := cc.NewDatabase()

	rlConfig := &readline.Config{
		Prompt:          cc.Cfg.Prompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    newCompleter(db),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	}
	// readline wraps os.Stdin itself so that Close can interrupt a read.
	if in := cmd.InOrStdin(); in != os.Stdin {
		rlConfig.Stdin = io.NopCloser(in)
	}
	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Renderer.Println("nail interactive session")
	cc.Renderer.Println("Type .help for commands, .quit to exit")
	cc.Renderer.Println("")

	s := &session{cc: cc, db: db, in: rl, prompt: cc.Cfg.Prompt}
	return s.loop()
}

// session is one interactive REPL session.
type session struct {
	cc     *CommandContext
	db     *engine.Database
	in     lineReader
	prompt string

	buf   strings.Builder
	count int // statements entered, used to name them in diagnostics
}

func (s *session) loop() error {
	for {
		line, err := s.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if s.buf.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if quit := s.dotCommand(trimmed); quit {
					return nil
				}
				continue
			}
		}

		s.buf.WriteString(line)
		s.buf.WriteByte('\n')
		if !statementComplete([]byte(s.buf.String())) {
			s.in.SetPrompt(continuationPrompt)
			continue
		}

		s.count++
		src := []byte(s.buf.String())
		s.reset()
		if _, err := s.cc.execute(s.db, script{Name: fmt.Sprintf("<input %d>", s.count), Src: src}, true); err != nil {
			return err
		}
	}
}

func (s *session) reset() {
	s.buf.Reset()
	s.in.SetPrompt(s.prompt)
}

// statementComplete reports whether src ends with a ';' outside any
// braces. Input inside an unterminated string is incomplete.
func statementComplete(src []byte) bool {
	depth := 0
	last := token.EOF
	for tok, err := range parser.NewLexer(src).Tokens() {
		if err != nil {
			var lexErr *parser.LexError
			if errors.As(err, &lexErr) && lexErr.Kind == parser.NonTerminatedStr {
				return false
			}
			last = token.EOF
			continue
		}
		switch tok.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
		last = tok.Type
	}
	return last == token.SEMICOLON && depth <= 0
}

// dotCommand handles a session command and reports whether to quit.
func (s *session) dotCommand(line string) bool {
	r := s.cc.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".tables":
		names := s.db.Tables()
		if len(names) == 0 {
			r.Muted("(no tables)")
			return false
		}
		for _, name := range names {
			t, _ := s.db.Table(name)
			r.Printf("%s  %s\n", name, r.Styles().Muted.Render(fmt.Sprintf("(%d rows)", t.Len())))
		}

	case ".schema":
		if len(parts) < 2 {
			r.Error("Usage: .schema <table>")
			return false
		}
		t, ok := s.db.Table(parts[1])
		if !ok {
			r.Error(fmt.Sprintf("no such table %q", parts[1]))
			return false
		}
		renderSchema(r, t)

	case ".clear":
		r.Printf("\033[H\033[2J")

	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

// renderSchema prints the columns of t.
func renderSchema(r *output.Renderer, t *engine.Table) {
	r.Header(2, "Table: "+t.Name)

	tw := table.NewWriter()
	tw.SetOutputMirror(r.Writer())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Column", "Type", "Optional"})
	for _, c := range t.Columns() {
		optional := "NO"
		if c.Optional {
			optional = "YES"
		}
		tw.AppendRow(table.Row{c.Name, c.Ty.String(), optional})
	}
	tw.Render()
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List all tables
  .schema <name>  Show the columns of a table
  .clear          Clear the screen
  .quit / .exit   Exit the session

Tips:
  - Statements end with a semicolon (;) and may span several lines
  - Use arrow keys to navigate history
  - Tab completion works for keywords and table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newCompleter completes keywords, dot commands and the names of the
// tables currently in db.
func newCompleter(db *engine.Database) *readline.PrefixCompleter {
	tables := func(string) []string { return db.Tables() }

	return readline.NewPrefixCompleter(
		readline.PcItem("new", readline.PcItem("table")),
		readline.PcItem("insert", readline.PcItemDynamic(tables)),
		readline.PcItem("get", readline.PcItemDynamic(tables,
			readline.PcItem("select"),
			readline.PcItem("where"),
		)),
		readline.PcItem("remove", readline.PcItemDynamic(tables,
			readline.PcItem("where"),
		)),
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".schema", readline.PcItemDynamic(tables)),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
