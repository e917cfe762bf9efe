package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vtable"
)

func init() {
	color.NoColor = true
}

func numbered(n int) []*vtable.Record {
	recs := make([]*vtable.Record, n)
	for i := range recs {
		recs[i] = vtable.NewRecord("n", i, "label", fmt.Sprintf("row-%d", i))
	}
	return recs
}

func TestDump_PrintsVisibleRows(t *testing.T) {
	tv := vtable.NewTableView(vtable.Options{Data: numbered(100), Height: 150})
	var out bytes.Buffer

	require.NoError(t, Dump(&out, tv, DumpOptions{Offset: 300, ScrollTo: -1, MaxWidth: 200}))
	s := out.String()

	assert.Contains(t, s, "row-10")
	assert.Contains(t, s, "row-14")
	assert.NotContains(t, s, "row-15")
	assert.NotContains(t, s, "row-9\n")
	assert.Contains(t, s, "rows 11-15 of 100")

	lines := strings.Split(strings.TrimSpace(s), "\n")
	assert.Len(t, lines, 1+5+1)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
}

func TestDump_ScrollToAndWidth(t *testing.T) {
	tv := vtable.NewTableView(vtable.Options{Data: numbered(100), Height: 90})
	var out bytes.Buffer

	// Only the index column fits in 30 characters.
	require.NoError(t, Dump(&out, tv, DumpOptions{ScrollTo: 50, MaxWidth: 30}))
	s := out.String()
	assert.Contains(t, s, "51")
	assert.NotContains(t, s, "row-50")
	assert.Contains(t, s, "rows 51-53 of 100")
}

func TestDump_EmptyAndRaw(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Dump(&out, vtable.NewTableView(vtable.Options{}), DumpOptions{ScrollTo: -1}))
	assert.Equal(t, vtable.DefaultEmptyDescription+"\n", out.String())

	out.Reset()
	tv := vtable.NewTableView(vtable.Options{Data: numbered(3)})
	require.NoError(t, Dump(&out, tv, DumpOptions{ScrollTo: -1, Raw: true}))
	assert.Contains(t, out.String(), "LayoutKey")
}

func TestLoadTable_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(data, []byte("name,age\nann,31\nbo,25\n"), 0o644))
	conf := filepath.Join(dir, "table.toml")
	require.NoError(t, os.WriteFile(conf, []byte(`
theme = "light"

[[sort]]
column = "name"
direction = "asc"

[[columns]]
id = "age"
width = 150
`), 0o644))

	tbl, err := LoadTable(context.Background(), &Flags{
		ConfigFile: conf,
		Sort:       []string{"age:desc"},
		ServerSide: true,
	}, []string{data})
	require.NoError(t, err)

	assert.Len(t, tbl.Options.Data, 2)
	assert.Equal(t, []vtable.SortCriterion{{ColumnID: "age", Direction: vtable.SortDescending}}, tbl.Options.SortBy)
	assert.Equal(t, vtable.ServerSide, tbl.Options.SortMode)
	assert.Equal(t, vtable.LightStyle(), tbl.Style)
	require.Len(t, tbl.Options.Columns, 1)

	tv := vtable.NewTableView(tbl.Options)
	tbl.Setup(tv)
	assert.Equal(t, 150, tv.Widths().Width("age"))

	_, err = LoadTable(context.Background(), &Flags{Sort: []string{":up"}}, []string{data})
	assert.Error(t, err)
}

func TestLoadTable_SortFlagSortsClientSide(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(data, []byte("name,age\nann,31\nbo,25\ncy,40\n"), 0o644))

	tbl, err := LoadTable(context.Background(), &Flags{Sort: []string{"age:desc"}}, []string{data})
	require.NoError(t, err)

	tv := vtable.NewTableView(tbl.Options)
	var out bytes.Buffer
	require.NoError(t, Dump(&out, tv, DumpOptions{ScrollTo: -1, MaxWidth: 200}))

	s := out.String()
	cy, ann, bo := strings.Index(s, "cy"), strings.Index(s, "ann"), strings.Index(s, "bo")
	assert.True(t, cy < ann && ann < bo, "rows not sorted by age desc:\n%s", s)
	assert.Equal(t, vtable.SortDescending, tv.Sort().DirectionFor("age"))
}
