package vtable

// AutoSizeLabel is the caption of the toolbar button.
const AutoSizeLabel = "Auto-size columns"

// wheelRows is how many rows one mouse wheel notch scrolls.
const wheelRows = 3

// FrameLayout holds the screen rectangles of a drawn frame.
type FrameLayout struct {
	Messages []Rect
	Toolbar  Rect
	AutoSize Rect // Zero when the button is hidden
	Header   Rect
	Body     Rect
}

// LayoutFrame positions the parts of a frame at origin.
// Banners stack on top, then the toolbar, the header and the body.
func LayoutFrame(f Frame, origin Vec2, style Style) FrameLayout {
	var l FrameLayout
	y := origin.Y

	for range f.Messages {
		l.Messages = append(l.Messages, Rect{X: origin.X, Y: y, W: f.Width, H: style.MessageHeight})
		y += style.MessageHeight
	}

	if f.ShowAutoSize {
		l.Toolbar = Rect{X: origin.X, Y: y, W: f.Width, H: style.ToolbarHeight}
		btnW := float32(TextWidth(AutoSizeLabel))*style.charW() + style.CellPaddingX*2
		l.AutoSize = Rect{X: origin.X, Y: y + 2, W: btnW, H: style.ToolbarHeight - 4}
		y = l.Toolbar.Bottom()
	}

	l.Header = Rect{X: origin.X, Y: y, W: f.Width, H: f.HeaderHeight}
	l.Body = l.Header.Below(f.Height)
	return l
}

// HitKind classifies what lies under a pointer position.
type HitKind int

const (
	HitNone HitKind = iota
	HitAutoSize
	HitHeader
	HitSortIndicator
	HitResizeHandle
	HitCell
)

// Hit is the result of a hit test.
type Hit struct {
	Kind     HitKind
	ColumnID string
	RowIndex int // Position in display order, HitCell only
}

// sortIndicatorRect returns the clickable sort affordance of a header cell.
func sortIndicatorRect(h HeaderCell, header Rect) Rect {
	return header.Column(h.X+h.Width-HeaderExtra, HeaderExtra/2)
}

// resizeHandleRect returns the drag handle at a header cell's right edge.
func resizeHandleRect(h HeaderCell, header Rect, style Style) Rect {
	return header.Column(h.X+h.Width-style.ResizeHandleW, style.ResizeHandleW)
}

// HitTest finds the frame element under pos.
func HitTest(f Frame, l FrameLayout, style Style, pos Vec2) Hit {
	if f.Empty {
		return Hit{}
	}
	if l.AutoSize.Contains(pos) {
		return Hit{Kind: HitAutoSize}
	}

	if l.Header.Contains(pos) {
		for _, h := range f.Header {
			if !l.Header.Column(h.X, h.Width).Contains(pos) {
				continue
			}
			if h.Resizable && resizeHandleRect(h, l.Header, style).Contains(pos) {
				return Hit{Kind: HitResizeHandle, ColumnID: h.ColumnID}
			}
			if h.Sortable && sortIndicatorRect(h, l.Header).Contains(pos) {
				return Hit{Kind: HitSortIndicator, ColumnID: h.ColumnID}
			}
			return Hit{Kind: HitHeader, ColumnID: h.ColumnID}
		}
		return Hit{}
	}

	if l.Body.Contains(pos) {
		for _, r := range f.Rows {
			band := Rect{X: l.Body.X, Y: l.Body.Y + r.Y, W: l.Body.W, H: f.RowHeight}
			if !band.Contains(pos) {
				continue
			}
			for _, c := range r.Cells {
				if band.Column(c.X, c.Width).Contains(pos) {
					return Hit{Kind: HitCell, ColumnID: c.ColumnID, RowIndex: r.Index}
				}
			}
		}
	}
	return Hit{}
}

// HandleInput applies one frame of pointer input to a table view: wheel
// scrolling, sort clicks, resize drags, the auto-size button and
// double-click copy. Resize drags continue through the view's pointer hub.
func HandleInput(tv *TableView, f Frame, l FrameLayout, style Style, input *InputState) {
	if input == nil {
		return
	}
	pos := Vec2{X: input.MouseX, Y: input.MouseY}

	if hub, ok := tv.pointer.(*PointerHub); ok && hub.Captured() {
		hub.Feed(input)
		return
	}

	if input.MouseWheelY != 0 && l.Header.Extend(l.Body).Contains(pos) {
		tv.ScrollBy(-input.MouseWheelY * f.RowHeight * wheelRows)
	}
	HandleKeys(tv, input)
	if input.ModCtrl && input.KeyPressed(KeyC) {
		if hit := HitTest(f, l, style, pos); hit.Kind == HitCell {
			_ = tv.CopyCell(hit.RowIndex, hit.ColumnID)
		}
	}

	if input.MouseDoubleClicked() {
		if hit := HitTest(f, l, style, pos); hit.Kind == HitCell {
			_ = tv.CopyCell(hit.RowIndex, hit.ColumnID)
		}
		return
	}

	if !input.MouseClicked(MouseButtonLeft) {
		return
	}
	hit := HitTest(f, l, style, pos)
	switch hit.Kind {
	case HitAutoSize:
		tv.AutoSizeColumns()
	case HitSortIndicator:
		tv.CycleSort(hit.ColumnID)
	case HitResizeHandle:
		tv.BeginColumnResize(hit.ColumnID, pos.X)
	}
}

// HandleKeys applies keyboard navigation: arrows scroll one row, page keys
// one viewport, Home and End jump to the ends and Ctrl+A auto-sizes.
func HandleKeys(tv *TableView, input *InputState) {
	o := tv.Options()
	switch {
	case input.KeyPressed(KeyUp):
		tv.ScrollBy(-o.RowHeight)
	case input.KeyPressed(KeyDown):
		tv.ScrollBy(o.RowHeight)
	case input.KeyPressed(KeyPageUp):
		tv.ScrollBy(-o.Height)
	case input.KeyPressed(KeyPageDown):
		tv.ScrollBy(o.Height)
	case input.KeyPressed(KeyHome):
		tv.Scroll(0)
	case input.KeyPressed(KeyEnd):
		tv.Scroll(tv.Viewport().MaxScroll(len(o.Data)))
	case input.ModCtrl && input.KeyPressed(KeyA):
		tv.AutoSizeColumns()
	}
}

// DrawTable renders a frame into dl at origin.
func DrawTable(dl *DrawList, f Frame, origin Vec2, style Style) FrameLayout {
	l := LayoutFrame(f, origin, style)
	text := func(x, y float32, s string, color uint32) {
		dl.AddText(x, y, s, color, style.FontScale, style.CharWidth, style.CharHeight)
	}
	// Vertically centered text baseline for a band of height h.
	mid := func(y, h float32) float32 {
		return y + (h-style.charH())/2
	}

	if f.Empty {
		w := float32(TextWidth(f.EmptyDescription)) * style.charW()
		text(origin.X+(DefaultWidth-w)/2, origin.Y+DefaultHeight/2, f.EmptyDescription, style.TextDisabledColor)
		drawLoading(dl, f, Rect{X: origin.X, Y: origin.Y, W: DefaultWidth, H: DefaultHeight}, style)
		return l
	}

	for i, m := range f.Messages {
		r := l.Messages[i]
		dl.AddRect(r.X, r.Y, r.W, r.H, messageColor(style, m.Type))
		text(r.X+style.CellPaddingX, mid(r.Y, r.H), FitText(m.Text, r.W-style.CellPaddingX*2, style.charW()), style.TextColor)
	}

	if f.ShowAutoSize {
		b := l.AutoSize
		dl.AddRect(b.X, b.Y, b.W, b.H, style.ToolbarButtonColor)
		dl.AddRectOutline(b.X, b.Y, b.W, b.H, style.BorderColor, 1)
		text(b.X+style.CellPaddingX, mid(b.Y, b.H), AutoSizeLabel, style.TextColor)
	}

	table := l.Header.Extend(l.Body)
	dl.AddRect(table.X, table.Y, table.W, table.H, style.BgColor)
	drawHeader(dl, f, l.Header, style, text, mid)
	drawBody(dl, f, l.Body, style, text, mid)
	drawLoading(dl, f, table, style)
	return l
}

func drawHeader(dl *DrawList, f Frame, r Rect, style Style, text func(x, y float32, s string, c uint32), mid func(y, h float32) float32) {
	dl.AddRect(r.X, r.Y, r.W, r.H, style.HeaderBgColor)

	for _, h := range f.Header {
		x := r.X + h.X
		text(x+style.CellPaddingX, mid(r.Y, r.H), h.Label, style.headerText())

		if h.Sortable {
			c := sortIndicatorRect(h, r).Center()
			cx, cy := c.X, c.Y
			switch h.Direction {
			case SortAscending:
				dl.AddTriangle(cx-4, cy+3, cx+4, cy+3, cx, cy-4, style.SortIndicatorColor)
			case SortDescending:
				dl.AddTriangle(cx-4, cy-3, cx+4, cy-3, cx, cy+4, style.SortIndicatorColor)
			default:
				for i := range 3 {
					dl.AddRect(cx-1, cy-5+float32(i)*4, 2, 2, style.TextDisabledColor)
				}
			}
		}

		if h.Resizable {
			handle := resizeHandleRect(h, r, style)
			color := style.ResizeHandleColor
			if h.Resizing {
				color = style.ResizeHandleActive
			}
			dl.AddRect(handle.X+handle.W/2-1, handle.Y+4, 2, handle.H-8, color)
		}

		dl.AddLine(x+h.Width, r.Y, x+h.Width, r.Y+r.H, style.BorderColor, 1)
	}
	dl.AddLine(r.X, r.Bottom(), r.Right(), r.Bottom(), style.BorderColor, 1)
}

func drawBody(dl *DrawList, f Frame, r Rect, style Style, text func(x, y float32, s string, c uint32), mid func(y, h float32) float32) {
	dl.PushClip(r)
	defer dl.PopClipRect()

	if f.NoRows {
		w := float32(TextWidth(NoRowsText)) * style.charW()
		text(r.X+(r.W-w)/2, mid(r.Y, f.RowHeight), NoRowsText, style.TextDisabledColor)
		return
	}

	for _, row := range f.Rows {
		y := r.Y + row.Y
		if row.Striped {
			dl.AddRect(r.X, y, r.W, f.RowHeight, style.RowBgAltColor)
		}
		for _, c := range row.Cells {
			x := r.X + c.X + style.CellPaddingX
			avail := c.Width - style.CellPaddingX*2
			shown := FitText(c.Content.String(), avail, style.charW())
			ty := mid(y, f.RowHeight)

			switch {
			case c.Index:
				text(x, ty, shown, style.indexText())
			case c.Content.Kind == ContentLink:
				text(x, ty, shown, style.LinkColor)
				dl.AddLine(x, ty+style.charH()+1, x+float32(TextWidth(shown))*style.charW(), ty+style.charH()+1, style.LinkColor, 1)
			case c.Content.Kind == ContentImage:
				dl.AddRectOutline(x, y+3, f.RowHeight-6, f.RowHeight-6, style.LinkColor, 1)
				text(x+f.RowHeight, ty, FitText(shown, avail-f.RowHeight, style.charW()), style.LinkColor)
			case c.Content.Kind == ContentEmphasis:
				text(x, ty, shown, style.EmphasisColor)
			default:
				text(x, ty, shown, style.TextColor)
			}
		}
	}

	if f.ContentHeight > f.Height && f.ContentHeight > 0 {
		sb := style.ScrollbarSize
		x := r.Right() - sb
		dl.AddRect(x, r.Y, sb, r.H, style.ScrollbarBgColor)
		grabH := max(sb, r.H*f.Height/f.ContentHeight)
		maxScroll := f.ContentHeight - f.Height
		grabY := r.Y + (r.H-grabH)*clampf(f.ScrollOffset/maxScroll, 0, 1)
		dl.AddRect(x+2, grabY, sb-4, grabH, style.ScrollbarGrabColor)
	}
}

func drawLoading(dl *DrawList, f Frame, r Rect, style Style) {
	if !f.Loading {
		return
	}
	dl.AddRect(r.X, r.Y, r.W, r.H, RGBA(0, 0, 0, 120))
	tip := f.LoadingTip
	if tip == "" {
		tip = "..."
	}
	w := float32(TextWidth(tip)) * style.charW()
	c := r.Center()
	dl.AddText(c.X-w/2, c.Y, tip, style.TextColor, style.FontScale, style.CharWidth, style.CharHeight)
}

func messageColor(style Style, t MessageType) uint32 {
	switch t {
	case MessageWarning:
		return style.MessageWarningColor
	case MessageError:
		return style.MessageErrorColor
	case MessageSuccess:
		return style.ToastSuccessColor
	default:
		return style.MessageInfoColor
	}
}
