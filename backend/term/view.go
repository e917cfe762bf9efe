package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/vtable"
)

// Styles are the lipgloss styles used to draw a table.
type Styles struct {
	Header    lipgloss.Style
	Indicator lipgloss.Style
	Index     lipgloss.Style
	Cell      lipgloss.Style
	Striped   lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Link      lipgloss.Style
	Emphasis  lipgloss.Style
	Rule      lipgloss.Style
	Status    lipgloss.Style
	Muted     lipgloss.Style
	Message   map[vtable.MessageType]lipgloss.Style
}

// hex converts a packed vtable color to a lipgloss color.
func hex(c uint32) lipgloss.Color {
	r, g, b, _ := vtable.UnpackRGBA(c)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// StylesFrom derives terminal styles from a vtable theme.
func StylesFrom(s vtable.Style) Styles {
	header := s.HeaderTextColor
	if header == 0 {
		header = s.TextColor
	}
	index := s.IndexTextColor
	if index == 0 {
		index = s.TextDisabledColor
	}

	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(hex(header)).Background(hex(s.HeaderBgColor)),
		Indicator: lipgloss.NewStyle().Foreground(hex(s.SortIndicatorColor)).Background(hex(s.HeaderBgColor)),
		Index:     lipgloss.NewStyle().Foreground(hex(index)),
		Cell:      lipgloss.NewStyle().Foreground(hex(s.TextColor)),
		Striped:   lipgloss.NewStyle().Background(hex(s.RowBgAltColor)),
		Cursor:    lipgloss.NewStyle().Background(hex(s.ToolbarButtonActive)),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Link:      lipgloss.NewStyle().Foreground(hex(s.LinkColor)).Underline(true),
		Emphasis:  lipgloss.NewStyle().Foreground(hex(s.EmphasisColor)).Bold(true),
		Rule:      lipgloss.NewStyle().Foreground(hex(s.BorderColor)),
		Status:    lipgloss.NewStyle().Foreground(hex(s.TextColor)),
		Muted:     lipgloss.NewStyle().Foreground(hex(s.TextDisabledColor)),
		Message: map[vtable.MessageType]lipgloss.Style{
			vtable.MessageInfo:    lipgloss.NewStyle().Background(hex(s.MessageInfoColor)),
			vtable.MessageSuccess: lipgloss.NewStyle().Background(hex(s.ToastSuccessColor)),
			vtable.MessageWarning: lipgloss.NewStyle().Background(hex(s.MessageWarningColor)),
			vtable.MessageError:   lipgloss.NewStyle().Background(hex(s.MessageErrorColor)),
		},
	}
}

// DefaultStyles returns styles for the default dark theme.
func DefaultStyles() Styles {
	return StylesFrom(vtable.DefaultStyle())
}

const toolbarHint = "[a] auto-size  [s] sort  [+/-] width  [y] copy  [q] quit"

// View implements tea.Model.
func (m *Model) View() string {
	f := m.tv.Compose()
	var b strings.Builder
	line := func(s string) {
		if m.width > 0 {
			s = lipgloss.NewStyle().MaxWidth(m.width).Render(s)
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}

	if f.Empty {
		line(m.styles.Muted.Render(f.EmptyDescription))
		line(m.status(f))
		return b.String()
	}

	for _, msg := range f.Messages {
		st, ok := m.styles.Message[msg.Type]
		if !ok {
			st = m.styles.Cell
		}
		line(st.Render(" " + msg.Text + " "))
	}
	if f.ShowAutoSize {
		line(m.styles.Muted.Render(toolbarHint))
	}

	cells := m.visibleCells(f.Header)
	line(m.renderHeader(f.Header, cells))
	line(m.styles.Rule.Render(strings.Repeat("─", max(1, m.lineWidth(f.Header, cells)))))

	if f.NoRows {
		line(m.styles.Muted.Render(vtable.NoRowsText))
	} else {
		for _, row := range f.Rows {
			// Overscan rows stay unprinted; the terminal has no off-screen area.
			if row.Y < 0 || row.Y+f.RowHeight > f.Height {
				continue
			}
			line(m.renderRow(row, cells))
		}
	}

	line(m.status(f))
	return b.String()
}

// visibleCells returns indexes into header of the cells drawn, honoring
// the horizontal column offset.
func (m *Model) visibleCells(header []vtable.HeaderCell) []int {
	var out []int
	data := 0
	for i, h := range header {
		if h.Index {
			out = append(out, i)
			continue
		}
		if data >= m.colOffset {
			out = append(out, i)
		}
		data++
	}
	return out
}

func cellsFor(width float32) int {
	return max(1, int(width)/vtable.PxPerChar)
}

func (m *Model) lineWidth(header []vtable.HeaderCell, cells []int) int {
	w := 0
	for _, i := range cells {
		w += cellsFor(header[i].Width)
	}
	return w
}

func indicator(d vtable.Direction) string {
	switch d {
	case vtable.SortAscending:
		return "▲"
	case vtable.SortDescending:
		return "▼"
	default:
		return "·"
	}
}

func (m *Model) renderHeader(header []vtable.HeaderCell, cells []int) string {
	var b strings.Builder
	for _, i := range cells {
		h := header[i]
		n := cellsFor(h.Width)
		if !h.Sortable {
			b.WriteString(m.styles.Header.Render(vtable.PadText(vtable.TruncateText(h.Label, n-1), n-1) + "│"))
			continue
		}
		label := vtable.PadText(vtable.TruncateText(h.Label, n-3), n-3)
		b.WriteString(m.styles.Header.Render(label + " "))
		b.WriteString(m.styles.Indicator.Render(indicator(h.Direction)))
		b.WriteString(m.styles.Header.Render("│"))
	}
	return b.String()
}

func (m *Model) renderRow(row vtable.FrameRow, cells []int) string {
	selectedID, _ := m.currentColumn()
	isCursor := row.Index == m.cursor

	var b strings.Builder
	for _, i := range cells {
		c := row.Cells[i]
		n := cellsFor(c.Width)
		text := vtable.PadText(vtable.TruncateText(c.Content.String(), n-1), n)

		var st lipgloss.Style
		switch {
		case c.Index:
			st = m.styles.Index
		case c.Content.Kind == vtable.ContentLink || c.Content.Kind == vtable.ContentImage:
			st = m.styles.Link
		case c.Content.Kind == vtable.ContentEmphasis:
			st = m.styles.Emphasis
		default:
			st = m.styles.Cell
		}
		switch {
		case isCursor && c.ColumnID == selectedID:
			st = st.Inherit(m.styles.Selected)
		case isCursor:
			st = st.Inherit(m.styles.Cursor)
		case row.Striped:
			st = st.Inherit(m.styles.Striped)
		}
		b.WriteString(st.Render(text))
	}
	return b.String()
}

// status is the bottom line: a toast when one is active, otherwise the
// position and the sort order.
func (m *Model) status(f vtable.Frame) string {
	if f.Loading {
		tip := f.LoadingTip
		if tip == "" {
			tip = "Loading"
		}
		return m.styles.Muted.Render("⟳ " + tip)
	}
	if t, ok := m.toasts.Latest(); ok {
		return m.styles.Status.Render(t.Message)
	}
	if f.Empty {
		return ""
	}

	pos := fmt.Sprintf("row %d/%d", min(m.cursor+1, f.TotalRows), f.TotalRows)
	var sorts []string
	for _, c := range m.tv.Sort().Criteria() {
		sorts = append(sorts, c.String())
	}
	if len(sorts) > 0 {
		pos += "  sort " + strings.Join(sorts, ", ")
	}
	return m.styles.Muted.Render(pos)
}
