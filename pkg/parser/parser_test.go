package parser_test

import (
	"errors"
	"io"
	"testing"

	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/leapstack-labs/nail/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOne parses src and requires exactly one command without errors.
func parseOne(t *testing.T, src string) core.Command {
	t.Helper()
	cmds, errs := parser.Parse([]byte(src))
	require.Empty(t, errs)
	require.Len(t, cmds, 1)
	return cmds[0]
}

// parseFilter parses "get T where <expr>;" and returns the filter.
func parseFilter(t *testing.T, expr string) core.Expr {
	t.Helper()
	get, ok := parseOne(t, "get T where "+expr+";").(*core.Get)
	require.True(t, ok)
	require.NotNil(t, get.Filter)
	return get.Filter
}

// ---------- new ----------

func TestParseNew(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *core.New
	}{
		{
			name: "no columns",
			src:  "new table Empty;",
			want: &core.New{Table: "Empty"},
		},
		{
			name: "typed columns",
			src:  "new table Person Name: str, Age: int, Height: float?, KnowsKungFu: bool;",
			want: &core.New{
				Table: "Person",
				Definitions: []core.ColumnDefinition{
					{Name: "Name", Ty: core.TyStr},
					{Name: "Age", Ty: core.TyInt},
					{Name: "Height", Ty: core.TyFloat, Optional: true},
					{Name: "KnowsKungFu", Ty: core.TyBool},
				},
			},
		},
		{
			name: "quoted names",
			src:  `new table "my table" "first name": str, "where": int?;`,
			want: &core.New{
				Table: "my table",
				Definitions: []core.ColumnDefinition{
					{Name: "first name", Ty: core.TyStr},
					{Name: "where", Ty: core.TyInt, Optional: true},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseOne(t, tt.src).(*core.New)
			require.True(t, ok)
			assert.Equal(t, tt.want.Table, got.Table)
			assert.Equal(t, tt.want.Definitions, got.Definitions)
		})
	}
}

func TestParseNew_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"missing table keyword", "new Person;", "'table'"},
		{"missing name", "new table;", "table name"},
		{"bad type", "new table T x: string;", "column type (str / int / float / bool)"},
		{"nil type", "new table T x: nil;", "column type (str / int / float / bool)"},
		{"missing colon", "new table T x int;", "':'"},
		{"duplicate column", "new table T x: int, x: str;", "distinct column names"},
		{"reserved id", "new table T Id: int;", "column name other than Id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, errs := parser.Parse([]byte(tt.src))
			assert.Empty(t, cmds)
			require.Len(t, errs, 1)

			var parseErr *parser.ParseError
			require.True(t, errors.As(errs[0], &parseErr))
			assert.Equal(t, tt.expected, parseErr.Expected)
		})
	}
}

// ---------- insert ----------

func TestParseInsert(t *testing.T) {
	t.Run("single record", func(t *testing.T) {
		got, ok := parseOne(t, `insert Person Name: "Neo", Age: 37;`).(*core.Insert)
		require.True(t, ok)
		assert.Equal(t, "Person", got.Table)
		require.Len(t, got.Records, 1)

		record := got.Records[0]
		require.Len(t, record, 2)
		assert.Equal(t, "Name", record[0].Column)
		assert.Equal(t, `"Neo"`, record[0].Expr.String())
		assert.Equal(t, "Age", record[1].Column)
		assert.Equal(t, "37", record[1].Expr.String())

		expr, found := record.Lookup("Age")
		assert.True(t, found)
		assert.Equal(t, &core.Literal{Value: core.Int(37)}, expr)
		_, found = record.Lookup("Missing")
		assert.False(t, found)
	})

	t.Run("empty record", func(t *testing.T) {
		got, ok := parseOne(t, "insert T;").(*core.Insert)
		require.True(t, ok)
		require.Len(t, got.Records, 1)
		assert.Empty(t, got.Records[0])
	})

	t.Run("brace batch", func(t *testing.T) {
		got, ok := parseOne(t, "insert P { a: 1, b: 2; a: 3; a: 4 + 1; };").(*core.Insert)
		require.True(t, ok)
		require.Len(t, got.Records, 3)
		assert.Len(t, got.Records[0], 2)
		assert.Len(t, got.Records[1], 1)
		assert.Equal(t, "4 + 1", got.Records[2][0].Expr.String())
	})

	t.Run("brace batch without trailing separator", func(t *testing.T) {
		got, ok := parseOne(t, "insert P { a: 1; a: 2 };").(*core.Insert)
		require.True(t, ok)
		assert.Len(t, got.Records, 2)
	})

	t.Run("empty braces", func(t *testing.T) {
		got, ok := parseOne(t, "insert P {};").(*core.Insert)
		require.True(t, ok)
		assert.Empty(t, got.Records)
	})
}

func TestParseInsert_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"duplicate assignment", "insert T a: 1, a: 2;", "distinct column names"},
		{"missing expression", "insert T a: ;", "expression"},
		{"empty record in braces", "insert T { ; };", "column name"},
		{"unclosed braces", "insert T { a: 1 a: 2 };", "';' or '}'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parser.Parse([]byte(tt.src))
			require.Len(t, errs, 1)

			var parseErr *parser.ParseError
			require.True(t, errors.As(errs[0], &parseErr))
			assert.Equal(t, tt.expected, parseErr.Expected)
		})
	}
}

// ---------- get ----------

func TestParseGet(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		selections []core.Selection
		filter     string
	}{
		{
			name: "bare",
			src:  "get T;",
		},
		{
			name: "selections with aliases",
			src:  `get T select Name as n, *, @id, @id as "row id";`,
			selections: []core.Selection{
				&core.ColumnSelection{Column: "Name", Alias: "n"},
				&core.AllSelection{},
				&core.AttributeSelection{Attribute: core.AttrID},
				&core.AttributeSelection{Attribute: core.AttrID, Alias: "row id"},
			},
		},
		{
			name:   "filter only",
			src:    "get T where Age > 30;",
			filter: "Age > 30",
		},
		{
			name: "selection and filter",
			src:  "get T select Name where KnowsKungFu;",
			selections: []core.Selection{
				&core.ColumnSelection{Column: "Name"},
			},
			filter: "KnowsKungFu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseOne(t, tt.src).(*core.Get)
			require.True(t, ok)
			assert.Equal(t, "T", got.Table)
			assert.Equal(t, tt.selections, got.Selections)
			if tt.filter == "" {
				assert.Nil(t, got.Filter)
			} else {
				require.NotNil(t, got.Filter)
				assert.Equal(t, tt.filter, got.Filter.String())
			}
		})
	}
}

func TestParseGet_UnknownAttribute(t *testing.T) {
	_, errs := parser.Parse([]byte("get T select @rowid;"))
	require.Len(t, errs, 1)

	var parseErr *parser.ParseError
	require.True(t, errors.As(errs[0], &parseErr))
	assert.Equal(t, "row attribute", parseErr.Expected)
	assert.Contains(t, parseErr.Error(), `expected row attribute, found identifier "rowid"`)
}

// ---------- remove ----------

func TestParseRemove(t *testing.T) {
	got, ok := parseOne(t, "remove Person where Age < 18 || Name == \"Smith\";").(*core.Remove)
	require.True(t, ok)
	assert.Equal(t, "Person", got.Table)
	assert.Equal(t, `(Age < 18) || (Name == "Smith")`, got.Filter.String())
}

func TestParseRemove_RequiresWhere(t *testing.T) {
	_, errs := parser.Parse([]byte("remove Person;"))
	require.Len(t, errs, 1)

	var parseErr *parser.ParseError
	require.True(t, errors.As(errs[0], &parseErr))
	assert.Equal(t, "'where'", parseErr.Expected)
	assert.Equal(t, "';'", parseErr.Found)
}

// ---------- expressions ----------

func TestParseExpression_Precedence(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"a + b * c", "a + (b * c)"},
		{"a * b + c", "(a * b) + c"},
		{"a == b && c == d", "(a == b) && (c == d)"},
		{"a - b - c", "(a - b) - c"},
		{"a / b * c", "(a / b) * c"},
		{"a + b * c - d", "(a + (b * c)) - d"},
		{"a < b + 1 || c", "(a < (b + 1)) || c"},
		{"a && b || c", "(a && b) || c"},
		{"(a + b) * c", "(a + b) * c"},
		{"x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFilter(t, tt.expr).String())
		})
	}
}

func TestParseExpression_Tree(t *testing.T) {
	got := parseFilter(t, "a + b * c")

	want := &core.BinaryExpr{
		Left: &core.Identifier{Name: "a"},
		Op:   core.OpAdd,
		Right: &core.BinaryExpr{
			Left:  &core.Identifier{Name: "b"},
			Op:    core.OpMul,
			Right: &core.Identifier{Name: "c"},
		},
	}
	assert.Equal(t, want, got)
}

func TestParseExpression_EnclosedIsOpaque(t *testing.T) {
	got := parseFilter(t, "(a + b) * c")

	bin, ok := got.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, core.OpMul, bin.Op)
	enclosed, ok := bin.Left.(*core.Enclosed)
	require.True(t, ok)
	assert.Equal(t, "a + b", enclosed.Expr.String())
}

func TestParseExpression_Literals(t *testing.T) {
	tests := []struct {
		expr string
		want core.Value
	}{
		{"42", core.Int(42)},
		{"2.5", core.Float(2.5)},
		{`"text"`, core.Str("text")},
		{"true", core.Bool(true)},
		{"false", core.Bool(false)},
		{"nil", core.Nil{}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, &core.Literal{Value: tt.want}, parseFilter(t, tt.expr))
		})
	}
}

// ---------- errors and recovery ----------

func TestParse_MissingSemicolon(t *testing.T) {
	cmds, errs := parser.Parse([]byte("get T"))
	assert.Empty(t, cmds)
	require.Len(t, errs, 1)

	var parseErr *parser.ParseError
	require.True(t, errors.As(errs[0], &parseErr))
	assert.Equal(t, "';'", parseErr.Expected)
	assert.Equal(t, "end of input", parseErr.Found)
}

func TestParse_UnknownCommand(t *testing.T) {
	_, errs := parser.Parse([]byte("select * from T;"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "expected command (new / insert / get / remove)")
}

func TestParse_LexErrorIsWrapped(t *testing.T) {
	cmds, errs := parser.Parse([]byte("get T where a = 1;\nget U;"))
	require.Len(t, errs, 1)
	require.Len(t, cmds, 1)
	assert.Equal(t, "U", cmds[0].(*core.Get).Table)

	var lexErr *parser.LexError
	require.True(t, errors.As(errs[0], &lexErr))
	assert.Equal(t, parser.UnexpectedCharacter, lexErr.Kind)
	assert.Equal(t, 1, lexErr.Span.Start.Line)
	assert.Equal(t, 15, lexErr.Span.Start.Column)
	assert.Contains(t, errs[0].Error(), "unexpected character")
}

func TestParse_IntLiteralOverflow(t *testing.T) {
	_, errs := parser.Parse([]byte("insert T a: 99999999999;"))
	require.Len(t, errs, 1)

	var lexErr *parser.LexError
	require.True(t, errors.As(errs[0], &lexErr))
	assert.Equal(t, parser.InvalidIntLiteral, lexErr.Kind)
}

func TestParse_Recovery(t *testing.T) {
	src := `
new table T x: int;
get T where ;
insert T { x: 1; x: ; x: 3 };
insert T x: 2;
get T;
`
	cmds, errs := parser.Parse([]byte(src))
	require.Len(t, errs, 2)
	require.Len(t, cmds, 3)

	assert.IsType(t, &core.New{}, cmds[0])
	assert.IsType(t, &core.Insert{}, cmds[1])
	assert.IsType(t, &core.Get{}, cmds[2])

	var first, second *parser.ParseError
	require.True(t, errors.As(errs[0], &first))
	require.True(t, errors.As(errs[1], &second))
	assert.Equal(t, 3, first.Span.Start.Line)
	assert.Equal(t, 4, second.Span.Start.Line)
}

func TestParse_RecoveryStrayBrace(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tables []string
	}{
		{"brace in where", "get T where {;\nget T;\nget U;\n", []string{"T", "U"}},
		{"brace after table", "remove T {;\nget U;\n", []string{"U"}},
		{"brace in select", "get T select {, a;\nget U;\n", []string{"U"}},
		{"stray brace inside block", "insert T { a: {; a: 1 };\nget U;\n", []string{"U"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, errs := parser.Parse([]byte(tt.src))
			require.Len(t, errs, 1)

			var tables []string
			for _, cmd := range cmds {
				tables = append(tables, cmd.(*core.Get).Table)
			}
			assert.Equal(t, tt.tables, tables)
		})
	}
}

func TestParser_Next(t *testing.T) {
	p := parser.NewParser([]byte("# comment\nget A; get B;"))

	cmd, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", cmd.(*core.Get).Table)

	cmd, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, "B", cmd.(*core.Get).Table)

	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)

	require.Len(t, p.Comments(), 1)
	assert.Equal(t, "# comment", p.Comments()[0].Text)
}

func TestParser_CommandSpan(t *testing.T) {
	cmds, errs := parser.Parse([]byte("get A;\n  remove B where x;"))
	require.Empty(t, errs)
	require.Len(t, cmds, 2)

	span := cmds[1].GetSpan()
	assert.Equal(t, 2, span.Start.Line)
	assert.Equal(t, 3, span.Start.Column)
	assert.Equal(t, len("remove B where x;"), span.Len())
}

func TestParser_CommandsStopsEarly(t *testing.T) {
	p := parser.NewParser([]byte("get A; get B; get C;"))

	var tables []string
	for cmd, err := range p.Commands() {
		require.NoError(t, err)
		tables = append(tables, cmd.(*core.Get).Table)
		if len(tables) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, tables)

	cmd, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "C", cmd.(*core.Get).Table)
}
