package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/backend/opengl"
	"github.com/go-theft-auto/vtable/backend/term"
	"github.com/go-theft-auto/vtable/internal/cli"
	"github.com/go-theft-auto/vtable/internal/dataset"
)

func viewCmd(cfg *cli.Flags) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "view FILE...",
		Short: "Show the table in a GL window",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := cli.LoadTable(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			return opengl.Run(cmd.Context(), t.Options, opengl.Config{
				Title:  "vtable - " + filepath.Base(args[0]),
				Width:  width,
				Height: height,
				Style:  t.Style,
				Setup:  t.Setup,
			})
		},
	}
	cmd.Flags().IntVar(&width, "window-width", 1024, "Window width")
	cmd.Flags().IntVar(&height, "window-height", 768, "Window height")
	return cmd
}

func tuiCmd(cfg *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui FILE...",
		Short: "Browse the table in the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := cli.LoadTable(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			m := term.New(t.Options,
				term.WithStyles(term.StylesFrom(t.Style)),
				term.WithSetup(t.Setup),
			)
			return term.Run(m)
		},
	}
}

func dumpCmd(cfg *cli.Flags) *cobra.Command {
	var d cli.DumpOptions
	var height float32
	cmd := &cobra.Command{
		Use:   "dump FILE...",
		Short: "Print the rows visible at a scroll offset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := cli.LoadTable(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			if height > 0 {
				t.Options.Height = height
			}
			tv := vtable.NewTableView(t.Options, vtable.WithClipboard(&vtable.MemoryClipboard{}))
			defer tv.Close()
			t.Setup(tv)
			return cli.Dump(cmd.OutOrStdout(), tv, d)
		},
	}
	cmd.Flags().Float32Var(&d.Offset, "offset", 0, "Scroll offset in pixels")
	cmd.Flags().IntVar(&d.ScrollTo, "scroll-to", -1, "Bring a row index into view first")
	cmd.Flags().Float32Var(&height, "height", 0, "Viewport height in pixels")
	cmd.Flags().BoolVar(&d.AutoSize, "autosize", false, "Auto-size columns before printing")
	cmd.Flags().BoolVar(&d.Raw, "raw", false, "Dump the composed frame structure")
	cmd.Flags().IntVar(&d.MaxWidth, "max-width", 0, "Output width in characters; the terminal width by default")
	return cmd
}

func packCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack SRC DST",
		Short: "Compress a dataset file with lz4",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(args[0])
			if err != nil {
				return errors.WithStack(err)
			}
			defer src.Close()

			dst, err := os.Create(args[1])
			if err != nil {
				return errors.WithStack(err)
			}
			if err := dataset.Compress(dst, src); err != nil {
				dst.Close()
				return err
			}
			return errors.WithStack(dst.Close())
		},
	}
}
