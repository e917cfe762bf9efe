package vtable

import (
	"log/slog"
	"math"
	"strconv"
	"unicode/utf8"
)

// Width heuristics in pixels.
const (
	DefaultColumnWidth = 200
	IndexColumnWidth   = 70
	MinColumnWidth     = 100
	PxPerChar          = 8
	HeaderPadding      = 32
	HeaderExtra        = 48 // room for the sort and resize affordances
	MaxMeasuredChars   = 100

	emptyHeaderGrowthPct = 115
)

// AutoSizedMessage is the success notice shown after auto-sizing.
const AutoSizedMessage = "Columns auto-sized"

// activeResize is the drag in progress, if any.
type activeResize struct {
	columnID   string
	startX     float32
	startWidth int
}

// ColumnWidths owns the per-column pixel widths of a table.
// Widths change through a pointer drag on a header handle or through
// AutoSize; either way the layout token is bumped so renderers rebuild.
type ColumnWidths struct {
	widths  map[string]int
	token   int
	drag    *activeResize
	release func()

	pointer  PointerService
	notifier Notifier
	logger   *slog.Logger
}

// NewColumnWidths creates an empty width map.
func NewColumnWidths(pointer PointerService, notifier Notifier, logger *slog.Logger) *ColumnWidths {
	if pointer == nil {
		pointer = NewPointerHub(nil)
	}
	if logger == nil {
		logger = defaultLogger
	}
	return &ColumnWidths{
		widths:   make(map[string]int),
		pointer:  pointer,
		notifier: notifier,
		logger:   logger,
	}
}

// Width returns the effective width of a column, never below MinColumnWidth.
func (cw *ColumnWidths) Width(columnID string) int {
	w, ok := cw.widths[columnID]
	if !ok {
		w = DefaultColumnWidth
	}
	return max(MinColumnWidth, w)
}

// Set stores an explicit width, floored at MinColumnWidth.
func (cw *ColumnWidths) Set(columnID string, width int) {
	cw.widths[columnID] = max(MinColumnWidth, width)
	cw.token++
}

// BeginResize starts a drag of columnID's right edge at pointerX.
// A drag left over from an earlier gesture is dropped first.
func (cw *ColumnWidths) BeginResize(columnID string, pointerX float32) {
	if cw.drag != nil {
		cw.logger.Debug("dropping stale column resize", "column", cw.drag.columnID)
		cw.releaseCapture()
	}
	cw.drag = &activeResize{
		columnID:   columnID,
		startX:     pointerX,
		startWidth: cw.Width(columnID),
	}
	cw.release = cw.pointer.Capture(CursorColumnResize, cw)
	cw.logger.Debug("column resize started", "column", columnID, "width", cw.drag.startWidth)
}

// PointerMove updates the dragged column. Ignored when no drag is active.
func (cw *ColumnWidths) PointerMove(x, _ float32) {
	if cw.drag == nil {
		return
	}
	delta := int(math.Round(float64(x - cw.drag.startX)))
	cw.widths[cw.drag.columnID] = max(MinColumnWidth, cw.drag.startWidth+delta)
}

// PointerUp implements PointerHandler.
func (cw *ColumnWidths) PointerUp(_, _ float32) {
	cw.EndResize()
}

// EndResize finishes the drag and bumps the layout token.
// Does nothing when no drag is active.
func (cw *ColumnWidths) EndResize() {
	if cw.drag == nil {
		return
	}
	cw.logger.Debug("column resize finished", "column", cw.drag.columnID, "width", cw.Width(cw.drag.columnID))
	cw.drag = nil
	cw.releaseCapture()
	cw.token++
}

// Resizing returns the column being dragged, if any.
func (cw *ColumnWidths) Resizing() (string, bool) {
	if cw.drag == nil {
		return "", false
	}
	return cw.drag.columnID, true
}

// AutoSize replaces all widths with ones measured from headers and rows.
//
//	header = len(label)*PxPerChar + HeaderPadding + HeaderExtra
//	data   = max over rows of min(len(cell), MaxMeasuredChars)*PxPerChar + HeaderPadding
//
// With rows the width is max(header, data); without rows it is header grown
// by 15%. Widths never go below MinColumnWidth. No-op without columns.
func (cw *ColumnWidths) AutoSize(columns []Column, rows []*Record) {
	if len(columns) == 0 {
		return
	}

	next := make(map[string]int, len(columns))
	for _, col := range columns {
		headerWidth := utf8.RuneCountInString(col.Label())*PxPerChar + HeaderPadding + HeaderExtra

		target := ceilPercent(headerWidth, emptyHeaderGrowthPct)
		if len(rows) > 0 {
			dataWidth := 0
			for _, rec := range rows {
				n := min(utf8.RuneCountInString(displayValue(cw.logger, col.ID, col.Value(rec))), MaxMeasuredChars)
				dataWidth = max(dataWidth, n*PxPerChar+HeaderPadding)
			}
			target = max(headerWidth, dataWidth)
		}
		next[col.ID] = max(MinColumnWidth, target)
	}

	cw.widths = next
	cw.token++
	if cw.notifier != nil {
		cw.notifier.Success(AutoSizedMessage)
	}
}

// ceilPercent returns ceil(v * pct / 100) without float rounding surprises.
func ceilPercent(v, pct int) int {
	return (v*pct + 99) / 100
}

// Total returns the summed width of columns plus the index column when shown.
func (cw *ColumnWidths) Total(columns []Column, withIndex bool) int {
	total := 0
	for _, col := range columns {
		total += cw.Width(col.ID)
	}
	if withIndex {
		total += IndexColumnWidth
	}
	return total
}

// Token returns the layout refresh counter.
func (cw *ColumnWidths) Token() int {
	return cw.token
}

// LayoutKey combines the table width and layout token. It changes whenever
// the rendered layout has to be rebuilt.
func (cw *ColumnWidths) LayoutKey(totalWidth int) string {
	return strconv.Itoa(totalWidth) + "-" + strconv.Itoa(cw.token)
}

// Reset forgets every width and any drag in progress.
func (cw *ColumnWidths) Reset() {
	cw.Close()
	cw.widths = make(map[string]int)
	cw.token++
}

// Close releases a capture held by an unfinished drag.
func (cw *ColumnWidths) Close() {
	cw.drag = nil
	cw.releaseCapture()
}

func (cw *ColumnWidths) releaseCapture() {
	if cw.release != nil {
		cw.release()
		cw.release = nil
	}
}
