// Package term shows a vtable.TableView in a terminal with bubbletea.
//
// One terminal line stands for one table row and one terminal column for
// vtable.PxPerChar pixels, so widths, windowing and sorting behave exactly
// as in the GL viewer.
package term

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/vtable"
)

// resizeStep is how far one key press widens or narrows a column.
const resizeStep = 2 * vtable.PxPerChar

// tickInterval drives the status line timers.
const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

// SystemClipboard writes to the OS clipboard.
var SystemClipboard = vtable.ClipboardFunc(clipboard.WriteAll)

// Model is the bubbletea model wrapping a table view.
type Model struct {
	tv     *vtable.TableView
	hub    *vtable.PointerHub
	toasts *vtable.ToastState
	styles Styles
	logger *slog.Logger

	width, height int
	cursor        int // Row in display order
	col           int // Index into the view's columns
	colOffset     int // First data column drawn
}

// Option configures a Model.
type Option func(*modelConfig)

type modelConfig struct {
	clipboard vtable.ClipboardProvider
	styles    Styles
	logger    *slog.Logger
	setup     func(*vtable.TableView)
}

// WithClipboard replaces the system clipboard.
func WithClipboard(cp vtable.ClipboardProvider) Option {
	return func(c *modelConfig) { c.clipboard = cp }
}

// WithStyles sets the terminal styles.
func WithStyles(s Styles) Option {
	return func(c *modelConfig) { c.styles = s }
}

// WithLogger sets the logger handed to the table view.
func WithLogger(l *slog.Logger) Option {
	return func(c *modelConfig) { c.logger = l }
}

// WithSetup runs fn on the table view once it exists.
func WithSetup(fn func(*vtable.TableView)) Option {
	return func(c *modelConfig) { c.setup = fn }
}

// New creates a model for a table built from opts.
func New(opts vtable.Options, options ...Option) *Model {
	cfg := modelConfig{
		clipboard: SystemClipboard,
		styles:    DefaultStyles(),
		logger:    slog.Default(),
	}
	for _, o := range options {
		o(&cfg)
	}

	m := &Model{
		hub:    vtable.NewPointerHub(nil),
		toasts: &vtable.ToastState{},
		styles: cfg.styles,
		logger: cfg.logger,
	}
	m.tv = vtable.NewTableView(opts,
		vtable.WithClipboard(cfg.clipboard),
		vtable.WithNotifier(m.toasts),
		vtable.WithPointerService(m.hub),
		vtable.WithLogger(cfg.logger),
	)
	if cfg.setup != nil {
		cfg.setup(m.tv)
	}
	return m
}

// TableView returns the wrapped view.
func (m *Model) TableView() *vtable.TableView {
	return m.tv
}

// Run starts a full-screen program and blocks until it quits.
func Run(m *Model) error {
	defer m.tv.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tickMsg:
		m.toasts.Update(tickInterval)
		return m, tick()

	case tea.MouseMsg:
		m.mouse(msg)

	case tea.KeyMsg:
		return m, m.key(msg.String())
	}
	return m, nil
}

// chromeLines counts the lines drawn around the body.
func (m *Model) chromeLines() int {
	o := m.tv.Options()
	n := len(o.Messages) + 3 // header, rule, status
	if !o.HideAutoSizeButton {
		n++
	}
	return n
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	o := m.tv.Options()
	body := max(1, height-m.chromeLines())
	o.Height = float32(body) * o.RowHeight
	o.Width = float32(width * vtable.PxPerChar)
	m.tv.SetOptions(o)
	m.follow()
}

func (m *Model) rowCount() int {
	return len(m.tv.Rows())
}

func (m *Model) key(k string) tea.Cmd {
	o := m.tv.Options()
	page := max(1, int(o.Height/o.RowHeight))

	switch k {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup", "ctrl+b":
		m.moveCursor(-page)
	case "pgdown", "ctrl+f", " ":
		m.moveCursor(page)
	case "home", "g":
		m.moveCursor(-m.rowCount())
	case "end", "G":
		m.moveCursor(m.rowCount())
	case "left", "h":
		m.moveColumn(-1)
	case "right", "l":
		m.moveColumn(1)
	case "s", "enter":
		if id, ok := m.currentColumn(); ok {
			m.tv.CycleSort(id)
		}
	case "+", "=":
		m.resizeColumn(resizeStep)
	case "-", "_":
		m.resizeColumn(-resizeStep)
	case "a":
		m.tv.AutoSizeColumns()
	case "y", "c":
		m.copyCell()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	n := m.rowCount()
	if n == 0 {
		return
	}
	m.cursor = min(max(0, m.cursor+delta), n-1)
	m.follow()
}

// follow scrolls the view so the cursor row is visible.
func (m *Model) follow() {
	o := m.tv.Options()
	top := float32(m.cursor) * o.RowHeight
	scroll := m.tv.Viewport().ScrollOffset()
	switch {
	case top < scroll:
		m.tv.Scroll(top)
	case top+o.RowHeight > scroll+o.Height:
		m.tv.Scroll(top + o.RowHeight - o.Height)
	}
}

func (m *Model) moveColumn(delta int) {
	cols := m.tv.Columns()
	if len(cols) == 0 {
		return
	}
	m.col = min(max(0, m.col+delta), len(cols)-1)
	if m.col < m.colOffset {
		m.colOffset = m.col
	}
	// Drop leading columns until the cursor column fits.
	for m.colOffset < m.col && m.columnsWidth(m.colOffset, m.col) > m.width {
		m.colOffset++
	}
}

// columnsWidth returns the terminal width of columns from..to inclusive,
// plus the index column when shown.
func (m *Model) columnsWidth(from, to int) int {
	cols := m.tv.Columns()
	w := 0
	if !m.tv.Options().HideIndexColumn {
		w += vtable.IndexColumnWidth / vtable.PxPerChar
	}
	for i := from; i <= to && i < len(cols); i++ {
		w += m.tv.Widths().Width(cols[i].ID) / vtable.PxPerChar
	}
	return w
}

func (m *Model) currentColumn() (string, bool) {
	cols := m.tv.Columns()
	if m.col < 0 || m.col >= len(cols) {
		return "", false
	}
	return cols[m.col].ID, true
}

// resizeColumn drags the current column's edge by delta pixels through the
// pointer hub, the same path a mouse drag takes.
func (m *Model) resizeColumn(delta float32) {
	id, ok := m.currentColumn()
	if !ok {
		return
	}
	m.tv.BeginColumnResize(id, 0)
	m.hub.Move(delta, 0)
	m.hub.Up(delta, 0)
}

func (m *Model) copyCell() {
	id, ok := m.currentColumn()
	if !ok || m.rowCount() == 0 {
		return
	}
	// A failed copy is logged by the table view and simply not announced.
	_ = m.tv.CopyCell(m.cursor, id)
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-3)
	case tea.MouseButtonWheelDown:
		m.moveCursor(3)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		m.click(msg.X, msg.Y)
	}
}

// click sorts by a header cell or moves the cursor to a body cell.
func (m *Model) click(x, y int) {
	header := m.headerLine()
	idx, ok := m.columnAt(x)
	if !ok {
		return
	}

	switch {
	case y == header:
		m.tv.CycleSort(m.tv.Columns()[idx].ID)
	case y > header+1:
		line := y - header - 2
		first := int(m.tv.Viewport().ScrollOffset() / m.tv.Options().RowHeight)
		if row := first + line; row < m.rowCount() {
			m.cursor = row
			m.col = idx
		}
	}
}

// headerLine is the screen line of the header row.
func (m *Model) headerLine() int {
	return m.chromeLines() - 3
}

// columnAt maps a terminal column to a data column index.
func (m *Model) columnAt(x int) (int, bool) {
	cols := m.tv.Columns()
	edge := 0
	if !m.tv.Options().HideIndexColumn {
		edge = vtable.IndexColumnWidth / vtable.PxPerChar
	}
	if x < edge {
		return 0, false
	}
	for i := m.colOffset; i < len(cols); i++ {
		edge += m.tv.Widths().Width(cols[i].ID) / vtable.PxPerChar
		if x < edge {
			return i, true
		}
	}
	return 0, false
}
