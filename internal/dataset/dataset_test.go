package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetect(t *testing.T) {
	cases := []struct {
		path       string
		format     Format
		compressed bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/b.JSONL", FormatNDJSON, false},
		{"c.ndjson.lz4", FormatNDJSON, true},
		{"d.csv", FormatCSV, false},
		{"e.txt", FormatUnknown, false},
	}
	for _, tc := range cases {
		f, c := Detect(tc.path)
		assert.Equal(t, tc.format, f, tc.path)
		assert.Equal(t, tc.compressed, c, tc.path)
	}
}

func TestRead_JSON(t *testing.T) {
	recs, err := Read(strings.NewReader(`[{"b": 1, "a": "x"}, {"b": 2}]`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"b", "a"}, recs[0].Keys())
	assert.Equal(t, json.Number("2"), recs[1].Get("b"))

	recs, err = Read(strings.NewReader(`{"data": [{"id": 7}], "total": 1}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, json.Number("7"), recs[0].Get("id"))

	_, err = Read(strings.NewReader(`{"rows": []}`), FormatJSON)
	assert.Error(t, err)
}

func TestRead_NDJSON(t *testing.T) {
	recs, err := Read(strings.NewReader("{\"a\": 1}\n\n{\"a\": 2}\n"), FormatNDJSON)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	_, err = Read(strings.NewReader("{\"a\": 1}\nnot json\n"), FormatNDJSON)
	assert.ErrorContains(t, err, "line 2")
}

func TestRead_CSV(t *testing.T) {
	recs, err := Read(strings.NewReader("name,age,note\nann,31,\nbo,x7,hi\n"), FormatCSV)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, []string{"name", "age", "note"}, recs[0].Keys())
	assert.Equal(t, json.Number("31"), recs[0].Get("age"))
	assert.Nil(t, recs[0].Get("note"))
	assert.Equal(t, "x7", recs[1].Get("age"))

	recs, err = Read(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoad_ConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()

	var packed bytes.Buffer
	require.NoError(t, Compress(&packed, strings.NewReader("{\"n\": 3}\n{\"n\": 4}\n")))
	lz := filepath.Join(dir, "c.ndjson.lz4")
	require.NoError(t, os.WriteFile(lz, packed.Bytes(), 0o644))

	paths := []string{
		write(t, dir, "a.json", `[{"n": 1}]`),
		write(t, dir, "b.csv", "n\n2\n"),
		lz,
	}

	recs, err := Load(context.Background(), FormatUnknown, paths...)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	for i, rec := range recs {
		assert.Equal(t, json.Number(string(rune('1'+i))), rec.Get("n"))
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), FormatUnknown, write(t, dir, "x.txt", "hi"))
	assert.ErrorContains(t, err, "cannot tell the format")

	_, err = Load(context.Background(), FormatJSON, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	// An explicit format overrides the extension.
	recs, err := Load(context.Background(), FormatNDJSON, write(t, dir, "y.txt", "{\"a\": 1}\n"))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSONL")
	require.NoError(t, err)
	assert.Equal(t, FormatNDJSON, f)
	assert.Equal(t, "ndjson", f.String())

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
