package term

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vtable"
)

func people() []*vtable.Record {
	return []*vtable.Record{
		vtable.NewRecord("name", "carol", "age", 30),
		vtable.NewRecord("name", "alice", "age", 25),
		vtable.NewRecord("name", "bob", "age", 41),
	}
}

func keys(m *Model, ks ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range ks {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func sized(t *testing.T, opts vtable.Options, w, h int, options ...Option) *Model {
	t.Helper()
	m := New(opts, options...)
	t.Cleanup(m.TableView().Close)
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

func TestModel_SortAndCopy(t *testing.T) {
	cb := &vtable.MemoryClipboard{}
	m := sized(t, vtable.Options{Data: people()}, 80, 20, WithClipboard(cb))

	keys(m, "j", "s", "y")
	assert.Equal(t, vtable.SortAscending, m.TableView().Sort().DirectionFor("name"))
	assert.Equal(t, "bob", cb.Text)

	view := m.View()
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "▲")
	assert.Contains(t, view, vtable.CopiedMessage)
}

func TestModel_FailedCopyIsNotAnnounced(t *testing.T) {
	failing := vtable.ClipboardFunc(func(string) error { return errors.New("no display") })
	m := sized(t, vtable.Options{Data: people()}, 80, 20, WithClipboard(failing))

	keys(m, "y")
	_, shown := m.toasts.Latest()
	assert.False(t, shown)
	assert.NotContains(t, m.View(), vtable.CopiedMessage)
	assert.NotContains(t, m.View(), "no display")
}

func TestModel_ResizeThroughPointerHub(t *testing.T) {
	m := sized(t, vtable.Options{Data: people()}, 80, 20)

	keys(m, "+")
	assert.Equal(t, vtable.DefaultColumnWidth+resizeStep, m.TableView().Widths().Width("name"))
	keys(m, "-", "-")
	assert.Equal(t, vtable.DefaultColumnWidth-resizeStep, m.TableView().Widths().Width("name"))
	assert.False(t, m.hub.Captured())

	keys(m, "l", "-", "-", "-", "-", "-", "-", "-", "-")
	assert.Equal(t, vtable.MinColumnWidth, m.TableView().Widths().Width("age"))
}

func TestModel_CursorFollowsScroll(t *testing.T) {
	recs := make([]*vtable.Record, 100)
	for i := range recs {
		recs[i] = vtable.NewRecord("n", i, "label", fmt.Sprintf("row-%d", i))
	}
	m := sized(t, vtable.Options{Data: recs}, 80, 10)

	// 10 lines minus toolbar, header, rule and status leave 6 body lines.
	require.Equal(t, float32(6*vtable.DefaultRowHeight), m.TableView().Options().Height)

	keys(m, "G")
	assert.Equal(t, 99, m.cursor)
	assert.Equal(t, float32(99*30+30-180), m.TableView().Viewport().ScrollOffset())

	view := m.View()
	assert.Contains(t, view, "row-99")
	assert.Contains(t, view, "row-94")
	assert.NotContains(t, view, "row-93")
	assert.Contains(t, view, "row 100/100")

	keys(m, "g")
	assert.Equal(t, float32(0), m.TableView().Viewport().ScrollOffset())
}

func TestModel_HeaderClickSorts(t *testing.T) {
	m := sized(t, vtable.Options{Data: people()}, 80, 20)

	// Line 0 is the toolbar, line 1 the header; "name" spans columns 8..32.
	m.Update(tea.MouseMsg{X: 10, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, vtable.SortAscending, m.TableView().Sort().DirectionFor("name"))

	m.Update(tea.MouseMsg{X: 40, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, 1, m.col)
}

func TestModel_EmptyAndQuit(t *testing.T) {
	m := sized(t, vtable.Options{}, 80, 20)
	assert.Contains(t, m.View(), vtable.DefaultEmptyDescription)

	cmd := keys(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStylesFrom(t *testing.T) {
	assert.Equal(t, "#f9f9f9", string(hex(vtable.LightStyle().RowBgAltColor)))
	s := StylesFrom(vtable.LightStyle())
	assert.Len(t, s.Message, 4)
}
