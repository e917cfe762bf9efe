package vtable

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// IndexColumnID identifies the row-number column in frames.
const IndexColumnID = "#"

// TableView composes a virtualized table from data, columns and the
// interactive state it owns (sort order, column widths, scroll position).
//
// Usage:
//
//	tv := vtable.NewTableView(opts, vtable.WithClipboard(cb), vtable.WithNotifier(toasts))
//	defer tv.Close()
//	tv.Scroll(offsetFromHost)
//	frame := tv.Compose()
type TableView struct {
	opts    Options
	columns []Column
	schema  []string
	rows    []Row

	widths   *ColumnWidths
	sort     *SortManager
	viewport *Viewport

	lastScrollTo int
	sortDirty    bool

	clipboard ClipboardProvider
	notifier  Notifier
	pointer   PointerService
	logger    *slog.Logger
}

// NewTableView creates a table view.
func NewTableView(opts Options, options ...TableOption) *TableView {
	tv := &TableView{}
	for _, opt := range options {
		opt(tv)
	}
	if tv.pointer == nil {
		tv.pointer = NewPointerHub(nil)
	}

	tableID := opts.TableID
	if tableID == "" {
		tableID = uuid.NewString()
		opts.TableID = tableID
	}
	if tv.logger == nil {
		tv.logger = defaultLogger
	}
	tv.logger = tv.logger.With("table", tableID)

	tv.widths = NewColumnWidths(tv.pointer, tv.notifier, tv.logger)
	tv.sort = NewSortManager(opts.SortMode, tv.logger)
	tv.viewport = NewViewport(DefaultRowHeight, DefaultHeight)

	tv.SetOptions(opts)
	return tv
}

// SetOptions reconfigures the view. Sort state and column widths survive
// unless the set of column ids changes.
func (tv *TableView) SetOptions(opts Options) {
	if opts.TableID == "" {
		opts.TableID = tv.opts.TableID
	}
	opts = opts.withDefaults()
	tv.opts = opts

	if opts.Columns != nil {
		tv.columns = slices.Clone(opts.Columns)
	} else {
		tv.columns = DeriveColumns(opts.Data)
	}

	schema := columnIDs(tv.columns)
	if tv.schema != nil && !slices.Equal(schema, tv.schema) {
		tv.logger.Debug("column schema changed, resetting table state", "columns", len(schema))
		tv.widths.Reset()
		tv.sort.Reset()
	}
	tv.schema = schema

	tv.sort.SetMode(opts.SortMode)
	tv.sort.SetBaseline(opts.SortBy)
	tv.sort.OnUpdate(opts.OnSortUpdate)

	tv.viewport.RowHeight = opts.RowHeight
	tv.viewport.ViewportHeight = opts.Height
	tv.viewport.Overscan = opts.Overscan
	if opts.ScrollToIndex != tv.lastScrollTo {
		tv.lastScrollTo = opts.ScrollToIndex
		tv.viewport.ScrollToIndex(opts.ScrollToIndex)
	}

	tv.sortDirty = true
}

// Options returns the effective options.
func (tv *TableView) Options() Options {
	return tv.opts
}

// Columns returns the resolved columns.
func (tv *TableView) Columns() []Column {
	return tv.columns
}

// Rows returns all rows in display order.
func (tv *TableView) Rows() []Row {
	tv.resort()
	return tv.rows
}

// Widths returns the column width manager.
func (tv *TableView) Widths() *ColumnWidths {
	return tv.widths
}

// Sort returns the sort state manager.
func (tv *TableView) Sort() *SortManager {
	return tv.sort
}

// Viewport returns the windowing engine.
func (tv *TableView) Viewport() *Viewport {
	return tv.viewport
}

func (tv *TableView) resort() {
	if !tv.sortDirty {
		return
	}
	tv.rows = SortRows(tv.opts.Data, tv.columns, tv.sort.Effective(), tv.opts.OrderFunc)
	tv.sortDirty = false
}

// Scroll records the scroll position reported by the host.
func (tv *TableView) Scroll(offset float32) {
	tv.viewport.SetScrollOffset(offset)
	tv.reportScroll()
}

// ScrollBy moves the scroll position by delta, clamped to the content.
func (tv *TableView) ScrollBy(delta float32) {
	tv.viewport.ScrollBy(delta, len(tv.opts.Data))
	tv.reportScroll()
}

func (tv *TableView) reportScroll() {
	if tv.opts.OnScroll == nil {
		return
	}
	tv.opts.OnScroll(ScrollInfo{
		ScrollTop:    tv.viewport.ScrollOffset(),
		ClientHeight: tv.opts.Height,
		ScrollHeight: tv.viewport.ContentHeight(len(tv.opts.Data)),
		RowHeight:    tv.opts.RowHeight,
	})
}

// column looks a column up by ID or sort key.
func (tv *TableView) column(id string) (Column, bool) {
	return findSortColumn(tv.columns, id)
}

// SetDirection applies a sort action from a column's header. Unknown and
// non-sortable columns, and tables with sorting disabled, are ignored.
func (tv *TableView) SetDirection(columnID string, dir Direction) {
	if tv.opts.SortDisabled {
		return
	}
	col, ok := tv.column(columnID)
	if !ok || !col.Sortable {
		tv.logger.Debug("sort on unknown or non-sortable column ignored", "column", columnID)
		return
	}
	tv.sort.SetDirection(col.SortKey(), dir)
	tv.sortDirty = true
}

// CycleSort advances a column through none, ascending and descending.
func (tv *TableView) CycleSort(columnID string) {
	col, ok := tv.column(columnID)
	if !ok {
		return
	}
	tv.SetDirection(columnID, NextDirection(tv.sort.DirectionFor(col.SortKey())))
}

// BeginColumnResize starts dragging a column's right edge.
func (tv *TableView) BeginColumnResize(columnID string, pointerX float32) {
	if !slices.Contains(tv.schema, columnID) {
		return
	}
	tv.widths.BeginResize(columnID, pointerX)
}

// AutoSizeColumns sizes every column from its header and data.
func (tv *TableView) AutoSizeColumns() {
	tv.widths.AutoSize(tv.columns, tv.opts.Data)
}

// CellText returns the displayed value of a cell. rowIndex is the position
// in display order.
func (tv *TableView) CellText(rowIndex int, columnID string) (string, bool) {
	tv.resort()
	if rowIndex < 0 || rowIndex >= len(tv.rows) {
		return "", false
	}
	if columnID == IndexColumnID {
		return indexLabel(rowIndex), true
	}
	col, ok := tv.findColumn(columnID)
	if !ok {
		return "", false
	}
	content := formatCell(tv.logger, col.ID, col.Value(tv.rows[rowIndex].Original), col.Format)
	return content.Title, true
}

// CopyCell copies a cell's displayed value to the clipboard and announces it
// on success. Unknown cells are ignored.
func (tv *TableView) CopyCell(rowIndex int, columnID string) error {
	text, ok := tv.CellText(rowIndex, columnID)
	if !ok {
		return nil
	}
	if err := copyText(tv.clipboard, text); err != nil {
		tv.logger.Warn("copy failed", "column", columnID, "err", err)
		return err
	}
	if tv.notifier != nil {
		tv.notifier.Success(CopiedMessage)
	}
	return nil
}

func (tv *TableView) findColumn(id string) (Column, bool) {
	for _, c := range tv.columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Close releases any pointer capture held by an unfinished resize.
func (tv *TableView) Close() {
	tv.widths.Close()
}
