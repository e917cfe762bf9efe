// Package cli holds the pieces of the vtable command that do not need a
// window: flag handling, table loading and the text dump.
package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/internal/dataset"
)

// Flags are the options shared by every subcommand.
type Flags struct {
	Debug      bool
	ConfigFile string
	Format     string
	Sort       []string
	ServerSide bool
	NoSort     bool
	Theme      string
}

// Table is everything a frontend needs to build a view.
type Table struct {
	Options vtable.Options
	Style   vtable.Style
	file    *vtable.Config
}

// Setup seeds configured column widths on a fresh view.
func (t *Table) Setup(tv *vtable.TableView) {
	if t.file != nil {
		t.file.ApplyWidths(tv.Widths())
	}
}

// LoadTable reads the data files and folds the config file and the flags
// into table options. Flags win over the config file.
func LoadTable(ctx context.Context, cfg *Flags, paths []string) (*Table, error) {
	t := &Table{Style: vtable.DefaultStyle()}

	if cfg.ConfigFile != "" {
		file, err := vtable.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		t.file = file
		t.Style = file.Style()
	}
	if strings.EqualFold(cfg.Theme, "light") {
		t.Style = vtable.LightStyle()
	}

	format := dataset.FormatUnknown
	if cfg.Format != "" {
		f, err := dataset.ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	recs, err := dataset.Load(ctx, format, paths...)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "files", len(paths), "records", len(recs))

	t.Options.Data = recs
	if t.file != nil {
		t.file.Apply(&t.Options)
	}

	if len(cfg.Sort) > 0 {
		t.Options.SortBy = t.Options.SortBy[:0:0]
		for _, s := range cfg.Sort {
			c, err := vtable.ParseSortCriterion(s)
			if err != nil {
				return nil, errors.Wrap(err, "--sort")
			}
			t.Options.SortBy = append(t.Options.SortBy, c)
		}
	}
	if cfg.ServerSide {
		t.Options.SortMode = vtable.ServerSide
	}
	t.Options.SortDisabled = t.Options.SortDisabled || cfg.NoSort
	t.Options.OnSortUpdate = func(seq []vtable.SortCriterion) {
		slog.Info("sort changed", "order", sortString(seq))
	}
	return t, nil
}

func sortString(seq []vtable.SortCriterion) string {
	parts := make([]string, len(seq))
	for i, c := range seq {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
