package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/go-theft-auto/vtable"
)

// DumpOptions control what Dump prints.
type DumpOptions struct {
	Offset   float32 // Scroll offset in pixels
	ScrollTo int     // Row brought into view first, -1 for none
	AutoSize bool
	Raw      bool // Print the composed frame structure instead
	MaxWidth int  // 0 uses the terminal width
}

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	indexColor  = color.New(color.FgHiBlack)
	linkColor   = color.New(color.FgBlue, color.Underline)
	strongColor = color.New(color.Bold)
	noteColor   = color.New(color.FgYellow)
)

// outputWidth picks the dump width: the flag, then the terminal, then 120.
func outputWidth(d DumpOptions) int {
	if d.MaxWidth > 0 {
		return d.MaxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

// Dump composes one frame and prints its visible rows as text, one
// character per vtable.PxPerChar pixels of column width.
func Dump(w io.Writer, tv *vtable.TableView, d DumpOptions) error {
	if d.AutoSize {
		tv.AutoSizeColumns()
	}
	if d.ScrollTo >= 0 {
		o := tv.Options()
		o.ScrollToIndex = d.ScrollTo
		tv.SetOptions(o)
	} else {
		tv.Scroll(d.Offset)
	}

	f := tv.Compose()
	if d.Raw {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(w, f)
		return nil
	}

	if f.Empty {
		_, err := noteColor.Fprintln(w, f.EmptyDescription)
		return err
	}

	width := outputWidth(d)
	for _, m := range f.Messages {
		fmt.Fprintf(w, "%s %s\n", noteColor.Sprintf("[%s]", m.Type), m.Text)
	}

	var hdr strings.Builder
	used := 0
	for _, h := range f.Header {
		n := max(1, int(h.Width)/vtable.PxPerChar)
		if used+n > width {
			break
		}
		label := h.Label
		if h.Direction != vtable.SortNone {
			label += " " + h.Direction.String()
		}
		hdr.WriteString(headerColor.Sprint(vtable.PadText(vtable.TruncateText(label, n-1), n)))
		used += n
	}
	fmt.Fprintln(w, hdr.String())

	if f.NoRows {
		_, err := noteColor.Fprintln(w, vtable.NoRowsText)
		return err
	}

	first, last := -1, -1
	for _, row := range f.Rows {
		if row.Y < 0 || row.Y >= f.Height {
			continue
		}
		if first < 0 {
			first = row.Index
		}
		last = row.Index

		var b strings.Builder
		used := 0
		for _, c := range row.Cells {
			n := max(1, int(c.Width)/vtable.PxPerChar)
			if used+n > width {
				break
			}
			text := vtable.PadText(vtable.TruncateText(c.Content.String(), n-1), n)
			switch {
			case c.Index:
				text = indexColor.Sprint(text)
			case c.Content.Kind == vtable.ContentLink || c.Content.Kind == vtable.ContentImage:
				text = linkColor.Sprint(text)
			case c.Content.Kind == vtable.ContentEmphasis:
				text = strongColor.Sprint(text)
			}
			b.WriteString(text)
			used += n
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	_, err := noteColor.Fprintf(w, "rows %d-%d of %d (materialized %d-%d)\n",
		first+1, last+1, f.TotalRows, f.Window.Start+1, f.Window.End)
	return err
}
