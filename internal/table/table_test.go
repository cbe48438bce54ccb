package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRow_ExtendsColumns(t *testing.T) {
	tab := New("a", "b")
	tab.AppendRow(Row{"a": "1", "b": "2"})
	tab.AppendRow(Row{"a": "3", "c": "4"})

	assert.Equal(t, []string{"a", "b", "c"}, tab.Columns())
	assert.Equal(t, 2, tab.Len())
}

func TestAddDerived_ReplacesExisting(t *testing.T) {
	tab := New("n")
	tab.AppendRow(Row{"n": "5"})

	tab.AddDerived("double", func(r Row) any {
		f, _ := AsFloat(r["n"])
		return f * 2
	})
	require.True(t, tab.HasColumn("double"))
	assert.Equal(t, 10.0, tab.Rows()[0]["double"])

	// Re-deriving overwrites rather than duplicating the column.
	tab.AddDerived("double", func(r Row) any { return 0.0 })
	assert.Equal(t, []string{"n", "double"}, tab.Columns())
	assert.Equal(t, 0.0, tab.Rows()[0]["double"])
}

func TestClone_Independent(t *testing.T) {
	tab := New("a")
	tab.AppendRow(Row{"a": "x"})

	cp := tab.Clone()
	cp.Rows()[0]["a"] = "mutated"
	cp.AppendRow(Row{"a": "y", "b": "z"})

	assert.Equal(t, "x", tab.Rows()[0]["a"])
	assert.Equal(t, 1, tab.Len())
	assert.Equal(t, []string{"a"}, tab.Columns())
}

func TestClone_Nil(t *testing.T) {
	var tab *Table
	assert.Nil(t, tab.Clone())
	assert.True(t, tab.Empty())
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "abc", AsString("abc"))
	assert.Equal(t, "1001", AsString(1001.0))
	assert.Equal(t, "1001.5", AsString(1001.5))
	assert.Equal(t, "7", AsString(7))
}

func TestAsFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"500", 500, true},
		{" 1,250.75 ", 1250.75, true},
		{"$9,000", 9000, true},
		{42, 42, true},
		{3.14, 3.14, true},
		{"", 0, false},
		{"pending", 0, false},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := AsFloat(c.in)
		assert.Equal(t, c.ok, ok, "input %v", c.in)
		assert.Equal(t, c.want, got, "input %v", c.in)
	}
}
