package format

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid is a row-major Grid for tests.
type grid struct {
	names []string
	rows  [][]core.Value
}

func (g grid) ColumnNames() []string { return g.names }
func (g grid) NumRows() int { return len(g.rows) }
func (g grid) Value(row, col int) core.Value { return g.rows[row][col] }

func TestTableString(t *testing.T) {
	tests := []struct {
		name     string
		grid     grid
		expected string
	}{
		{
			name: "header only",
			grid: grid{names: []string{"Id", "Name"}},
			expected: "" +
				" Id | Name \n" +
				"----+------\n",
		},
		{
			name: "values wider than headers",
			grid: grid{
				names: []string{"Id", "x", "y"},
				rows: [][]core.Value{
					{core.Int(0), core.Int(1), core.Nil{}},
					{core.Int(1), core.Int(2), core.Str("a")},
				},
			},
			expected: "" +
				" Id | x | y   \n" +
				"----+---+-----\n" +
				" 0  | 1 | nil \n" +
				" 1  | 2 | \"a\" \n",
		},
		{
			name: "mixed types",
			grid: grid{
				names: []string{"Score", "Ok"},
				rows: [][]core.Value{
					{core.Float(1.5), core.Bool(true)},
					{core.Float(-20), core.Bool(false)},
				},
			},
			expected: "" +
				" Score | Ok    \n" +
				"-------+-------\n" +
				" 1.5   | true  \n" +
				" -20   | false \n",
		},
		{
			name: "wide characters",
			grid: grid{
				names: []string{"名前"},
				rows:  [][]core.Value{{core.Str("a")}},
			},
			expected: "" +
				" 名前 \n" +
				"------\n" +
				" \"a\"  \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TableString(tt.grid))
		})
	}
}

func TestTable_WritesToWriter(t *testing.T) {
	g := grid{names: []string{"a"}, rows: [][]core.Value{{core.Int(7)}}}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, g))
	assert.Equal(t, TableString(g), buf.String())
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 0, DisplayWidth(""))
	assert.Equal(t, 5, DisplayWidth("hello"))
	assert.Equal(t, 5, DisplayWidth("größe"))
	assert.Equal(t, 4, DisplayWidth("名前"))
	assert.Equal(t, 2, DisplayWidth("ＡＢ"[:3]))
}
