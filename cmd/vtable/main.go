// Command vtable browses tabular JSON, NDJSON and CSV files with the
// virtualized table engine: in a GL window, in the terminal or as a plain
// dump of one window of rows.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/internal/cli"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var cfg cli.Flags

	rootCmd := &cobra.Command{
		Use:   "vtable",
		Short: "Virtualized table viewer",
		Long: `vtable loads records from JSON, NDJSON or CSV files (optionally .lz4
compressed) and shows them through a windowed table that only materializes
the rows in view.`,
		Example: `  # Open a GL window
  vtable view orders.json

  # Browse in the terminal, sorted by age then name
  vtable tui people.csv --sort age:desc --sort name

  # Print the rows visible at a scroll offset
  vtable dump events.ndjson.lz4 --offset 3000 --height 300`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cfg.Debug)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "TOML table description")
	flags.StringVarP(&cfg.Format, "format", "f", "", "Input format (json, ndjson, csv); detected from the file name by default")
	flags.StringArrayVarP(&cfg.Sort, "sort", "s", nil, "Initial sort as column[:asc|desc], repeatable")
	flags.BoolVar(&cfg.ServerSide, "server-side", false, "Report sort changes without reordering rows")
	flags.BoolVar(&cfg.NoSort, "no-sort", false, "Disable sorting")
	flags.StringVar(&cfg.Theme, "theme", "", "Color theme (dark or light)")

	rootCmd.AddCommand(viewCmd(&cfg), tuiCmd(&cfg), dumpCmd(&cfg), packCmd())

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	vtable.SetVerbose(debug)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
