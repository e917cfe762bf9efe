package vtable

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FormatKind selects how a cell value is presented.
type FormatKind int

const (
	FormatDefault FormatKind = iota
	FormatLink
	FormatCurrency
	FormatImageURL
	FormatPercent
	FormatID
)

var formatKindNames = map[FormatKind]string{
	FormatDefault:  "default",
	FormatLink:     "link",
	FormatCurrency: "currency",
	FormatImageURL: "imageUrl",
	FormatPercent:  "percent",
	FormatID:       "id",
}

// String returns the canonical tag of the kind.
func (k FormatKind) String() string {
	if name, ok := formatKindNames[k]; ok {
		return name
	}
	return "default"
}

// ParseFormatKind matches a free-form format tag case-insensitively.
// Unknown or empty tags map to FormatDefault.
func ParseFormatKind(tag string) FormatKind {
	tag = strings.TrimSpace(tag)
	for kind, name := range formatKindNames {
		if strings.EqualFold(tag, name) {
			return kind
		}
	}
	return FormatDefault
}

// UnmarshalText lets a FormatKind be read straight from config files.
func (k *FormatKind) UnmarshalText(b []byte) error {
	*k = ParseFormatKind(string(b))
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k FormatKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DefaultCurrencySymbol prefixes currency cells without an explicit symbol.
const DefaultCurrencySymbol = "$"

// FormatSpec describes the presentation of a column's cells.
type FormatSpec struct {
	Kind           FormatKind `toml:"kind"`
	Label          string     `toml:"label"`           // link text override
	CurrencySymbol string     `toml:"currency_symbol"` // currency prefix override
}

// ContentKind is the shape of a formatted cell.
type ContentKind int

const (
	ContentText ContentKind = iota
	ContentLink
	ContentImage
	ContentEmphasis
)

// CellContent is the renderer-agnostic result of formatting one cell.
type CellContent struct {
	Kind   ContentKind
	Text   string // Visible text (link label, raw value, ...)
	Prefix string // Rendered before Text (currency symbol)
	Suffix string // Rendered after Text (percent sign)
	Href   string // Link target for ContentLink and ContentImage
	Src    string // Image source for ContentImage
	Alt    string // Image alt text for ContentImage

	// Title is the hover text: the displayed value without decoration.
	Title string
}

// String returns the displayed value.
func (c CellContent) String() string {
	if c.Kind == ContentImage {
		return c.Alt
	}
	return c.Prefix + c.Text + c.Suffix
}

// Stringify renders a raw value the way cells display it.
// Strings, numbers and booleans are printed directly, nil is empty and
// everything else is encoded as JSON.
func Stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case fmt.Stringer:
		return val.String(), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrapf(err, "stringify %T", v)
	}
	return string(b), nil
}

// displayValue stringifies raw and falls back to fmt.Sprint when encoding fails.
func displayValue(logger *slog.Logger, columnID string, raw any) string {
	s, err := Stringify(raw)
	if err != nil {
		logger.Warn("can't stringify cell value", "column", columnID, "err", err)
		return fmt.Sprint(raw)
	}
	return s
}

// FormatCell dispatches a raw value on the format kind.
func FormatCell(raw any, spec FormatSpec) CellContent {
	return formatCell(defaultLogger, "", raw, spec)
}

func formatCell(logger *slog.Logger, columnID string, raw any, spec FormatSpec) CellContent {
	text := displayValue(logger, columnID, raw)

	switch spec.Kind {
	case FormatLink:
		label := text
		if spec.Label != "" {
			label = spec.Label
		}
		return CellContent{Kind: ContentLink, Text: label, Href: text, Title: text}

	case FormatCurrency:
		c := CellContent{Kind: ContentText, Text: text, Title: text}
		if text != "" {
			c.Prefix = spec.CurrencySymbol
			if c.Prefix == "" {
				c.Prefix = DefaultCurrencySymbol
			}
		}
		return c

	case FormatImageURL:
		return CellContent{Kind: ContentImage, Href: text, Src: text, Alt: text, Title: text}

	case FormatPercent:
		c := CellContent{Kind: ContentText, Text: text, Title: text}
		if text != "" {
			c.Suffix = "%"
		}
		return c

	case FormatID:
		return CellContent{Kind: ContentEmphasis, Text: text, Title: text}
	}

	return CellContent{Kind: ContentText, Text: text, Title: text}
}
