package vtable

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatKind(t *testing.T) {
	cases := map[string]FormatKind{
		"link":      FormatLink,
		"LINK":      FormatLink,
		"Currency":  FormatCurrency,
		"imageUrl":  FormatImageURL,
		"imageurl":  FormatImageURL,
		"IMAGEURL":  FormatImageURL,
		"percent":   FormatPercent,
		"id":        FormatID,
		" Id ":      FormatID,
		"":          FormatDefault,
		"number":    FormatDefault,
		"something": FormatDefault,
	}
	for tag, want := range cases {
		assert.Equal(t, want, ParseFormatKind(tag), "tag %q", tag)
	}
}

func TestFormatKind_TextRoundTrip(t *testing.T) {
	var k FormatKind
	require.NoError(t, k.UnmarshalText([]byte("ImageURL")))
	assert.Equal(t, FormatImageURL, k)

	b, err := k.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "imageUrl", string(b))
}

func TestFormatCell_Currency(t *testing.T) {
	c := FormatCell(12.5, FormatSpec{Kind: FormatCurrency})
	assert.Equal(t, "$12.5", c.String())

	c = FormatCell("7", FormatSpec{Kind: FormatCurrency, CurrencySymbol: "€"})
	assert.Equal(t, "€7", c.String())

	c = FormatCell("", FormatSpec{Kind: FormatCurrency})
	assert.Equal(t, "", c.String())
	assert.Empty(t, c.Prefix)
}

func TestFormatCell_Percent(t *testing.T) {
	c := FormatCell("42", FormatSpec{Kind: FormatPercent})
	assert.Equal(t, "42%", c.String())

	c = FormatCell(nil, FormatSpec{Kind: FormatPercent})
	assert.Equal(t, "", c.String())
	assert.Empty(t, c.Suffix)
}

func TestFormatCell_Link(t *testing.T) {
	c := FormatCell("https://example.com", FormatSpec{Kind: FormatLink})
	assert.Equal(t, ContentLink, c.Kind)
	assert.Equal(t, "https://example.com", c.Href)
	assert.Equal(t, "https://example.com", c.Text)

	c = FormatCell("https://example.com", FormatSpec{Kind: FormatLink, Label: "open"})
	assert.Equal(t, "open", c.Text)
	assert.Equal(t, "https://example.com", c.Href)
}

func TestFormatCell_Image(t *testing.T) {
	c := FormatCell("https://example.com/a.png", FormatSpec{Kind: ParseFormatKind("imageUrl")})
	assert.Equal(t, ContentImage, c.Kind)
	assert.Equal(t, "https://example.com/a.png", c.Src)
	assert.Equal(t, "https://example.com/a.png", c.Alt)
	assert.Equal(t, "https://example.com/a.png", c.Href)
}

func TestFormatCell_IDAndDefault(t *testing.T) {
	c := FormatCell(17, FormatSpec{Kind: FormatID})
	assert.Equal(t, ContentEmphasis, c.Kind)
	assert.Equal(t, "17", c.Text)

	c = FormatCell(true, FormatSpec{})
	assert.Equal(t, ContentText, c.Kind)
	assert.Equal(t, "true", c.String())
	assert.Equal(t, "true", c.Title)
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{json.Number("1.50"), "1.50"},
		{3, "3"},
		{int64(-4), "-4"},
		{2.25, "2.25"},
		{false, "false"},
		{map[string]any{"a": 1}, `{"a":1}`},
		{[]any{1, "x"}, `[1,"x"]`},
	}
	for _, tc := range cases {
		got, err := Stringify(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatCell_SerializationFailureFallsBack(t *testing.T) {
	raw := map[string]any{"x": math.NaN()}

	_, err := Stringify(raw)
	require.Error(t, err)

	c := FormatCell(raw, FormatSpec{})
	assert.Equal(t, "map[x:NaN]", c.String())
}
