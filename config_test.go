package vtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
table_id = "orders"
height = 420
row_height = 24
sort_mode = "server-side"
theme = "light"

[[sort]]
column = "age"
direction = "desc"

[[columns]]
id = "price"
header = "Price"
width = 140
format = { kind = "Currency", currency_symbol = "€" }

[[columns]]
id = "Orders.createdAt.day"
full_title = "Created at"
sortable = false

[[messages]]
type = "warning"
text = "partial data"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.TableID)
	assert.Equal(t, ServerSide, cfg.SortMode)
	assert.Equal(t, []SortCriterion{desc("age")}, cfg.Sort)
	require.Len(t, cfg.Columns, 2)
	assert.Equal(t, FormatCurrency, cfg.Columns[0].Format.Kind)
	assert.Equal(t, "€", cfg.Columns[0].Format.CurrencySymbol)
	assert.Equal(t, LightStyle(), cfg.Style())
}

func TestConfig_Apply(t *testing.T) {
	cfg, err := ParseConfig(sampleConfig)
	require.NoError(t, err)

	opts := Options{Width: 800, Height: 100}
	cfg.Apply(&opts)

	assert.Equal(t, "orders", opts.TableID)
	assert.Equal(t, float32(800), opts.Width)
	assert.Equal(t, float32(420), opts.Height)
	assert.Equal(t, float32(24), opts.RowHeight)
	assert.Equal(t, ServerSide, opts.SortMode)
	assert.Equal(t, []SortCriterion{desc("age")}, opts.SortBy)
	assert.Equal(t, []Message{{Type: MessageWarning, Text: "partial data"}}, opts.Messages)

	require.Len(t, opts.Columns, 2)
	assert.True(t, opts.Columns[0].Sortable)
	assert.False(t, opts.Columns[1].Sortable)
	assert.Equal(t, "Created at", opts.Columns[1].Tooltip())

	cw := NewColumnWidths(nil, nil, nil)
	cfg.ApplyWidths(cw)
	assert.Equal(t, 140, cw.Width("price"))
	assert.Equal(t, DefaultColumnWidth, cw.Width("Orders.createdAt.day"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 420, cfg.Height)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad sort direction": "[[sort]]\ncolumn = \"a\"\ndirection = \"up\"\n",
		"missing direction":  "[[sort]]\ncolumn = \"a\"\n",
		"missing column id":  "[[columns]]\nheader = \"x\"\n",
		"duplicate column":   "[[columns]]\nid = \"a\"\n[[columns]]\nid = \"a\"\n",
		"bad sort mode":      "sort_mode = \"sideways\"\n",
		"syntax":             "height = \n",
	}
	for name, data := range cases {
		_, err := ParseConfig(data)
		assert.Error(t, err, name)
	}
}
