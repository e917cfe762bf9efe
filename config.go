package vtable

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is a table description read from a TOML file:
//
//	height = 420
//	sort_mode = "client-side"
//	theme = "light"
//
//	[[sort]]
//	column = "age"
//	direction = "desc"
//
//	[[columns]]
//	id = "price"
//	header = "Price"
//	width = 140
//	format = { kind = "currency", currency_symbol = "€" }
type Config struct {
	TableID      string `toml:"table_id"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	HeaderHeight int    `toml:"header_height"`
	RowHeight    int    `toml:"row_height"`
	Overscan     int    `toml:"overscan"`
	Theme        string `toml:"theme"` // "dark" (default) or "light"

	SortMode     SortMode        `toml:"sort_mode"`
	SortDisabled bool            `toml:"sort_disabled"`
	Sort         []SortCriterion `toml:"sort"`

	HideIndexColumn    bool   `toml:"hide_index_column"`
	HideAutoSizeButton bool   `toml:"hide_auto_size_button"`
	EmptyDescription   string `toml:"empty_description"`

	Columns  []ColumnConfig `toml:"columns"`
	Messages []Message      `toml:"messages"`
}

// ColumnConfig describes one explicit column.
type ColumnConfig struct {
	ID        string     `toml:"id"`
	Header    string     `toml:"header"`
	FullTitle string     `toml:"full_title"`
	Format    FormatSpec `toml:"format"`
	Sortable  *bool      `toml:"sortable"` // defaults to true
	Width     int        `toml:"width"`    // initial width, 0 = default
}

// LoadConfig reads a TOML table description.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.check(md); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// ParseConfig decodes a TOML table description from a string.
func ParseConfig(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.check(md); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) check(md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		defaultLogger.Warn("ignoring unknown config keys", "keys", strings.Join(keys, ","))
	}

	seen := make(map[string]bool, len(c.Columns))
	for i, col := range c.Columns {
		if col.ID == "" {
			return errors.Errorf("column %d has no id", i)
		}
		if seen[col.ID] {
			return errors.Errorf("duplicate column id %q", col.ID)
		}
		seen[col.ID] = true
	}
	for i, s := range c.Sort {
		if s.ColumnID == "" {
			return errors.Errorf("sort entry %d has no column", i)
		}
		if s.Direction == SortNone {
			return errors.Errorf("sort entry %q has no direction", s.ColumnID)
		}
	}
	return nil
}

// Apply copies the configured fields onto opts. Fields left unset in the
// file keep the values already in opts.
func (c *Config) Apply(opts *Options) {
	if c.TableID != "" {
		opts.TableID = c.TableID
	}
	if c.Width > 0 {
		opts.Width = float32(c.Width)
	}
	if c.Height > 0 {
		opts.Height = float32(c.Height)
	}
	if c.HeaderHeight > 0 {
		opts.HeaderHeight = float32(c.HeaderHeight)
	}
	if c.RowHeight > 0 {
		opts.RowHeight = float32(c.RowHeight)
	}
	if c.Overscan > 0 {
		opts.Overscan = c.Overscan
	}
	if c.SortMode != ClientSide {
		opts.SortMode = c.SortMode
	}
	opts.SortDisabled = opts.SortDisabled || c.SortDisabled
	if len(c.Sort) > 0 {
		opts.SortBy = append(opts.SortBy[:0:0], c.Sort...)
	}
	opts.HideIndexColumn = opts.HideIndexColumn || c.HideIndexColumn
	opts.HideAutoSizeButton = opts.HideAutoSizeButton || c.HideAutoSizeButton
	if c.EmptyDescription != "" {
		opts.EmptyDescription = c.EmptyDescription
	}
	if len(c.Messages) > 0 {
		opts.Messages = append(opts.Messages, c.Messages...)
	}
	if len(c.Columns) > 0 {
		opts.Columns = c.columns()
	}
}

func (c *Config) columns() []Column {
	cols := make([]Column, len(c.Columns))
	for i, cc := range c.Columns {
		sortable := true
		if cc.Sortable != nil {
			sortable = *cc.Sortable
		}
		cols[i] = Column{
			ID:        cc.ID,
			Header:    cc.Header,
			FullTitle: cc.FullTitle,
			Format:    cc.Format,
			Sortable:  sortable,
		}
	}
	return cols
}

// ApplyWidths seeds the configured column widths.
func (c *Config) ApplyWidths(cw *ColumnWidths) {
	for _, cc := range c.Columns {
		if cc.Width > 0 {
			cw.Set(cc.ID, cc.Width)
		}
	}
}

// Style returns the configured theme.
func (c *Config) Style() Style {
	if strings.EqualFold(c.Theme, "light") {
		return LightStyle()
	}
	return DefaultStyle()
}
