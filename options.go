package vtable

import "log/slog"

// Default geometry in pixels.
const (
	DefaultWidth        = 300
	DefaultHeight       = 300
	DefaultHeaderHeight = 30
	DefaultRowHeight    = 30
)

// DefaultEmptyDescription is shown when a table has neither columns nor rows.
const DefaultEmptyDescription = "No Data"

// NoRowsText is shown in place of the body when columns exist but rows don't.
const NoRowsText = "No rows"

// CopiedMessage is the success notice shown after copying a cell.
const CopiedMessage = "Column value copied to the clipboard"

// MessageType classifies a banner shown above the grid.
type MessageType string

const (
	MessageInfo    MessageType = "info"
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
)

// Message is a banner passed through to the frame unchanged.
type Message struct {
	Type MessageType `toml:"type" json:"type"`
	Text string      `toml:"text" json:"text"`
}

// ScrollInfo is reported to Options.OnScroll after every scroll change.
type ScrollInfo struct {
	ScrollTop    float32
	ClientHeight float32
	ScrollHeight float32
	RowHeight    float32
}

// Options configures a TableView. Zero geometry fields take the defaults.
type Options struct {
	Data    []*Record
	Columns []Column // nil derives one column per field of the first record

	Width        float32
	Height       float32
	HeaderHeight float32
	RowHeight    float32
	Overscan     int // <= 0 uses DefaultOverscan

	SortBy       []SortCriterion // Baseline order supplied by the host
	SortMode     SortMode
	SortDisabled bool
	OrderFunc    OrderFunc

	HideIndexColumn    bool
	HideAutoSizeButton bool
	ScrollToIndex      int // Applied whenever it changes; the initial 0 is the natural top

	Loading          bool
	LoadingTip       string
	EmptyDescription string
	Messages         []Message
	TableID          string

	OnSortUpdate func([]SortCriterion)
	OnScroll     func(ScrollInfo)
	Footer       func([]Row)
}

// withDefaults fills zero geometry fields.
func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = DefaultHeaderHeight
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Overscan <= 0 {
		o.Overscan = DefaultOverscan
	}
	if o.EmptyDescription == "" {
		o.EmptyDescription = DefaultEmptyDescription
	}
	return o
}

// TableOption configures the collaborators of a TableView.
type TableOption func(*TableView)

// WithClipboard sets the clipboard used by CopyCell.
func WithClipboard(cp ClipboardProvider) TableOption {
	return func(tv *TableView) {
		tv.clipboard = cp
	}
}

// WithNotifier sets the notifier for copy and auto-size notices.
func WithNotifier(n Notifier) TableOption {
	return func(tv *TableView) {
		tv.notifier = n
	}
}

// WithPointerService sets the pointer service column resizing captures from.
func WithPointerService(ps PointerService) TableOption {
	return func(tv *TableView) {
		tv.pointer = ps
	}
}

// WithLogger sets the logger. The table id is attached to every record.
func WithLogger(l *slog.Logger) TableOption {
	return func(tv *TableView) {
		tv.logger = l
	}
}
