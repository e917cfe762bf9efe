package vtable

// Style defines the visual appearance of a drawn table.
type Style struct {
	// Text colors
	TextColor         uint32
	TextDisabledColor uint32
	LinkColor         uint32
	EmphasisColor     uint32

	// Table colors
	BgColor         uint32 // Table background
	BorderColor     uint32 // Grid lines
	HeaderBgColor   uint32 // Header background
	HeaderTextColor uint32 // Header text (0 = use TextColor)
	RowBgAltColor   uint32 // Background of every other visible row
	IndexTextColor  uint32 // Index column text (0 = use TextDisabledColor)

	// Header affordances
	SortIndicatorColor  uint32
	ResizeHandleColor   uint32
	ResizeHandleActive  uint32
	ToolbarButtonColor  uint32
	ToolbarButtonActive uint32

	// Scrollbar
	ScrollbarBgColor   uint32
	ScrollbarGrabColor uint32

	// Message banners
	MessageInfoColor    uint32
	MessageWarningColor uint32
	MessageErrorColor   uint32

	// Toast notification colors
	ToastInfoColor    uint32
	ToastSuccessColor uint32
	ToastErrorColor   uint32

	// Sizing
	FontScale     float32
	CharWidth     float32
	CharHeight    float32
	CellPaddingX  float32
	ResizeHandleW float32 // Grab width at a header's right edge
	ScrollbarSize float32
	ToolbarHeight float32
	MessageHeight float32
}

// DefaultStyle returns the default dark style.
func DefaultStyle() Style {
	return Style{
		TextColor:         ColorWhite,
		TextDisabledColor: ColorGray,
		LinkColor:         RGBA(90, 160, 255, 255),
		EmphasisColor:     RGBA(200, 200, 140, 255),

		BgColor:         RGBA(25, 25, 25, 255),
		BorderColor:     RGBA(80, 80, 80, 255),
		HeaderBgColor:   RGBA(40, 40, 40, 255),
		HeaderTextColor: 0, // Use TextColor
		RowBgAltColor:   RGBA(35, 35, 35, 255),
		IndexTextColor:  0, // Use TextDisabledColor

		SortIndicatorColor:  RGBA(0, 180, 255, 255),
		ResizeHandleColor:   RGBA(110, 110, 110, 255),
		ResizeHandleActive:  RGBA(100, 255, 255, 255),
		ToolbarButtonColor:  RGBA(50, 50, 50, 255),
		ToolbarButtonActive: RGBA(90, 90, 90, 255),

		ScrollbarBgColor:   RGBA(30, 30, 30, 255),
		ScrollbarGrabColor: RGBA(80, 80, 80, 255),

		MessageInfoColor:    RGBA(50, 100, 150, 230),
		MessageWarningColor: RGBA(180, 130, 40, 230),
		MessageErrorColor:   RGBA(180, 60, 60, 230),

		ToastInfoColor:    RGBA(50, 100, 150, 230),
		ToastSuccessColor: RGBA(50, 130, 80, 230),
		ToastErrorColor:   RGBA(180, 60, 60, 230),

		FontScale:     1.0,
		CharWidth:     PxPerChar,
		CharHeight:    8,
		CellPaddingX:  HeaderPadding / 2,
		ResizeHandleW: 6,
		ScrollbarSize: 12,
		ToolbarHeight: 24,
		MessageHeight: 22,
	}
}

// LightStyle returns a light theme with faint grey striping.
func LightStyle() Style {
	s := DefaultStyle()
	s.TextColor = RGBA(20, 20, 20, 255)
	s.TextDisabledColor = RGBA(150, 150, 150, 255)
	s.LinkColor = RGBA(0, 100, 200, 255)
	s.EmphasisColor = RGBA(60, 60, 60, 255)
	s.BgColor = ColorWhite
	s.BorderColor = RGBA(200, 200, 200, 255)
	s.HeaderBgColor = RGBA(230, 230, 230, 255)
	s.HeaderTextColor = RGBA(20, 20, 20, 255)
	s.RowBgAltColor = RGBA(249, 249, 249, 255)
	s.ResizeHandleColor = RGBA(170, 170, 170, 255)
	s.ResizeHandleActive = RGBA(0, 120, 215, 255)
	s.ToolbarButtonColor = RGBA(220, 220, 220, 255)
	s.ToolbarButtonActive = RGBA(180, 180, 180, 255)
	s.ScrollbarBgColor = RGBA(240, 240, 240, 255)
	s.ScrollbarGrabColor = RGBA(180, 180, 180, 255)
	return s
}

// headerText returns the header text color.
func (s Style) headerText() uint32 {
	if s.HeaderTextColor != 0 {
		return s.HeaderTextColor
	}
	return s.TextColor
}

// indexText returns the index column text color.
func (s Style) indexText() uint32 {
	if s.IndexTextColor != 0 {
		return s.IndexTextColor
	}
	return s.TextDisabledColor
}

// charW returns the scaled advance of one character cell.
func (s Style) charW() float32 {
	return s.CharWidth * s.FontScale
}

// charH returns the scaled height of one character cell.
func (s Style) charH() float32 {
	return s.CharHeight * s.FontScale
}
