package vtable

import "strconv"

// Frame is the renderer-agnostic result of one compose pass.
// Coordinates are relative to the table's top-left corner; body rows are
// positioned relative to the top of the body (below the header).
type Frame struct {
	TableID   string
	LayoutKey string // Changes whenever the layout must be rebuilt

	Loading    bool
	LoadingTip string

	// Empty is set when there are neither columns nor rows. Only the
	// placeholder is shown then.
	Empty            bool
	EmptyDescription string

	// NoRows is set when columns exist but there is nothing to list.
	NoRows bool

	ShowAutoSize bool
	Messages     []Message

	Width        float32 // Summed column widths
	Height       float32 // Body viewport height
	HeaderHeight float32
	RowHeight    float32

	Header []HeaderCell
	Rows   []FrameRow

	Window        Window
	TotalRows     int
	ScrollOffset  float32
	ContentHeight float32
}

// HeaderCell is one header cell.
type HeaderCell struct {
	ColumnID  string
	SortKey   string
	Label     string // Truncated to fit
	FullLabel string
	Tooltip   string
	X, Width  float32

	Index     bool // Row-number column
	Sortable  bool // Sort affordance shown
	Direction Direction
	Resizable bool
	Resizing  bool // Drag in progress on this column
}

// FrameRow is one materialized row.
type FrameRow struct {
	Index   int     // Position in display order
	Y       float32 // Relative to the top of the body
	Striped bool
	Cells   []FrameCell
}

// FrameCell is one materialized cell.
type FrameCell struct {
	ColumnID string
	X, Width float32
	Index    bool
	Content  CellContent
}

func indexLabel(rowIndex int) string {
	return strconv.Itoa(rowIndex + 1)
}

// headerLabelCells returns how many characters of a label fit a header cell.
func headerLabelCells(width int, sortable bool) int {
	affordance := HeaderExtra / 2 // resize handle
	if sortable {
		affordance = HeaderExtra
	}
	return (width - HeaderPadding - affordance) / PxPerChar
}

// Compose resolves the current state into a Frame and hands the sorted rows
// to the footer hook.
func (tv *TableView) Compose() Frame {
	o := tv.opts
	f := Frame{
		TableID:          o.TableID,
		Loading:          o.Loading,
		LoadingTip:       o.LoadingTip,
		EmptyDescription: o.EmptyDescription,
		HeaderHeight:     o.HeaderHeight,
		RowHeight:        o.RowHeight,
		Height:           o.Height,
	}

	if len(tv.columns) == 0 && len(o.Data) == 0 {
		f.Empty = true
		return f
	}

	tv.resort()
	showIndex := !o.HideIndexColumn

	total := tv.widths.Total(tv.columns, showIndex)
	f.Width = float32(total)
	f.LayoutKey = tv.widths.LayoutKey(total)
	f.ShowAutoSize = !o.HideAutoSizeButton
	f.Messages = o.Messages
	f.Header = tv.composeHeader(showIndex)

	win := tv.viewport.Compute(len(tv.rows))
	f.Window = win
	f.TotalRows = len(tv.rows)
	f.ScrollOffset = tv.viewport.ScrollOffset()
	f.ContentHeight = tv.viewport.ContentHeight(len(tv.rows))
	f.NoRows = len(tv.rows) == 0

	f.Rows = make([]FrameRow, 0, win.Len())
	for i := win.Start; i < win.End; i++ {
		f.Rows = append(f.Rows, tv.composeRow(tv.rows[i], f.Header))
	}

	if o.Footer != nil {
		o.Footer(tv.rows)
	}
	return f
}

func (tv *TableView) composeHeader(showIndex bool) []HeaderCell {
	cells := make([]HeaderCell, 0, len(tv.columns)+1)
	x := float32(0)

	if showIndex {
		cells = append(cells, HeaderCell{
			ColumnID:  IndexColumnID,
			Label:     IndexColumnID,
			FullLabel: IndexColumnID,
			Tooltip:   IndexColumnID,
			Width:     IndexColumnWidth,
			Index:     true,
		})
		x += IndexColumnWidth
	}

	resizing, _ := tv.widths.Resizing()
	for _, col := range tv.columns {
		w := tv.widths.Width(col.ID)
		sortable := !tv.opts.SortDisabled && col.Sortable
		label := col.Label()
		cell := HeaderCell{
			ColumnID:  col.ID,
			SortKey:   col.SortKey(),
			Label:     TruncateText(label, headerLabelCells(w, sortable)),
			FullLabel: label,
			Tooltip:   col.Tooltip(),
			X:         x,
			Width:     float32(w),
			Sortable:  sortable,
			Resizable: true,
			Resizing:  resizing == col.ID,
		}
		if sortable {
			cell.Direction = tv.sort.DirectionFor(col.SortKey())
		}
		cells = append(cells, cell)
		x += float32(w)
	}
	return cells
}

func (tv *TableView) composeRow(row Row, header []HeaderCell) FrameRow {
	fr := FrameRow{
		Index:   row.Index,
		Y:       tv.viewport.RowY(row.Index, 0),
		Striped: row.Index%2 == 1,
		Cells:   make([]FrameCell, 0, len(header)),
	}

	ci := 0
	for _, h := range header {
		if h.Index {
			label := indexLabel(row.Index)
			fr.Cells = append(fr.Cells, FrameCell{
				ColumnID: IndexColumnID,
				X:        h.X,
				Width:    h.Width,
				Index:    true,
				Content:  CellContent{Kind: ContentText, Text: label, Title: label},
			})
			continue
		}
		col := tv.columns[ci]
		ci++
		fr.Cells = append(fr.Cells, FrameCell{
			ColumnID: col.ID,
			X:        h.X,
			Width:    h.Width,
			Content:  formatCell(tv.logger, col.ID, col.Value(row.Original), col.Format),
		})
	}
	return fr
}
