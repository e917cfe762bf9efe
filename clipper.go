package vtable

import "math"

// DefaultOverscan is the number of extra rows materialized above and below the
// visible edge to mask scroll-induced popping.
const DefaultOverscan = 3

// ComputeVisibleRange returns the half-open row range [start, end) to materialize.
//
//	start = max(0, floor(scrollOffset/rowHeight) - overscan)
//	end   = min(totalRows, start + ceil(viewportHeight/rowHeight) + 2*overscan)
//
// The result only depends on its arguments and never decreases as scrollOffset
// grows. Degenerate input (no rows, non-positive row height) yields [0, 0).
func ComputeVisibleRange(scrollOffset, rowHeight, viewportHeight float32, overscan, totalRows int) (start, end int) {
	if totalRows <= 0 || rowHeight <= 0 {
		return 0, 0
	}
	if overscan < 0 {
		overscan = 0
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}

	first := int(math.Floor(float64(scrollOffset) / float64(rowHeight)))
	start = max(0, first-overscan)

	visibleCount := int(math.Ceil(float64(viewportHeight) / float64(rowHeight)))
	end = min(totalRows, start+visibleCount+2*overscan)

	// Scrolled past the content: nothing left to draw.
	if start > end {
		start = end
	}
	return start, end
}

// Window is the result of one windowing pass.
type Window struct {
	ScrollOffset float32 // Offset the range was computed for
	Start        int     // First materialized row (inclusive)
	End          int     // Last materialized row (exclusive)
	Overscan     int     // Overscan the range was computed with
}

// Len returns the number of materialized rows.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains returns true if row idx is materialized.
func (w Window) Contains(idx int) bool {
	return idx >= w.Start && idx < w.End
}

// Viewport tracks the scroll position of a virtualized row list and computes
// which rows to materialize.
//
// Usage:
//
//	vp := NewViewport(30, 300)
//	vp.SetScrollOffset(offsetFromHost)
//	win := vp.Compute(len(rows))
//	for i := win.Start; i < win.End; i++ {
//	    y := vp.RowY(i, baseY)
//	    // Draw row at y
//	}
type Viewport struct {
	RowHeight      float32 // Height of each row
	ViewportHeight float32 // Height of the visible area (excluding header)
	Overscan       int     // Rows rendered beyond each visible edge

	scrollOffset float32
	scrollTarget int  // Row requested by ScrollToIndex
	hasTarget    bool // True if scrollTarget is pending
	last         Window
}

// NewViewport creates a viewport with DefaultOverscan.
func NewViewport(rowHeight, viewportHeight float32) *Viewport {
	return &Viewport{
		RowHeight:      rowHeight,
		ViewportHeight: viewportHeight,
		Overscan:       DefaultOverscan,
	}
}

// SetScrollOffset records the scroll position reported by the host.
func (v *Viewport) SetScrollOffset(offset float32) {
	if offset < 0 {
		offset = 0
	}
	v.scrollOffset = offset
}

// ScrollOffset returns the current scroll position.
func (v *Viewport) ScrollOffset() float32 {
	return v.scrollOffset
}

// ScrollToIndex requests that row idx is brought into view on the next Compute.
// The row is aligned to the top of the viewport where the content allows it.
func (v *Viewport) ScrollToIndex(idx int) {
	if idx < 0 {
		v.hasTarget = false
		return
	}
	v.scrollTarget = idx
	v.hasTarget = true
}

// Compute applies any pending scroll target and returns the materialized window.
func (v *Viewport) Compute(totalRows int) Window {
	if v.hasTarget {
		v.hasTarget = false
		if v.scrollTarget < totalRows && v.RowHeight > 0 {
			offset := float32(v.scrollTarget) * v.RowHeight
			v.scrollOffset = clampf(offset, 0, v.MaxScroll(totalRows))
		}
	}
	// The data may have shrunk since the host last scrolled.
	v.scrollOffset = min(v.scrollOffset, v.MaxScroll(totalRows))

	start, end := ComputeVisibleRange(v.scrollOffset, v.RowHeight, v.ViewportHeight, v.Overscan, totalRows)
	v.last = Window{
		ScrollOffset: v.scrollOffset,
		Start:        start,
		End:          end,
		Overscan:     v.Overscan,
	}
	return v.last
}

// Last returns the window produced by the most recent Compute.
func (v *Viewport) Last() Window {
	return v.last
}

// ShouldRender returns true if row idx falls inside the last computed window.
func (v *Viewport) ShouldRender(idx int) bool {
	return v.last.Contains(idx)
}

// RowY calculates the Y position for a row relative to the visible area.
func (v *Viewport) RowY(idx int, baseY float32) float32 {
	return baseY + float32(idx)*v.RowHeight - v.scrollOffset
}

// ContentHeight returns the total content height (for scrollbar calculations).
func (v *Viewport) ContentHeight(totalRows int) float32 {
	return float32(totalRows) * v.RowHeight
}

// MaxScroll returns the maximum valid scroll offset.
func (v *Viewport) MaxScroll(totalRows int) float32 {
	return max(0, v.ContentHeight(totalRows)-v.ViewportHeight)
}

// ScrollBy moves the scroll position by delta, clamped to the content.
func (v *Viewport) ScrollBy(delta float32, totalRows int) {
	v.scrollOffset = clampf(v.scrollOffset+delta, 0, v.MaxScroll(totalRows))
}
