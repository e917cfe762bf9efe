// Package dataset loads table records from JSON, NDJSON and CSV files,
// optionally lz4 compressed.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/go-theft-auto/vtable"
)

// Format identifies a file layout.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON           // A top-level array of objects, or {"data": [...]}
	FormatNDJSON         // One object per line
	FormatCSV            // Header row then values
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatNDJSON:
		return "ndjson"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return FormatUnknown, errors.Errorf("unknown dataset format %q", s)
}

// Detect infers the format and compression from a file name.
func Detect(path string) (Format, bool) {
	name := strings.ToLower(filepath.Base(path))
	compressed := strings.HasSuffix(name, ".lz4")
	name = strings.TrimSuffix(name, ".lz4")

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, compressed
	case ".ndjson", ".jsonl":
		return FormatNDJSON, compressed
	case ".csv":
		return FormatCSV, compressed
	}
	return FormatUnknown, compressed
}

// Read decodes records in the given format from r.
func Read(r io.Reader, format Format) ([]*vtable.Record, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatNDJSON:
		return readNDJSON(r)
	case FormatCSV:
		return readCSV(r)
	}
	return nil, errors.Errorf("unsupported format %s", format)
}

func readJSON(r io.Reader) ([]*vtable.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading json")
	}
	data = bytes.TrimSpace(data)

	// {"data": [...]} envelopes are unwrapped.
	if len(data) > 0 && data[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, errors.Wrap(err, "decoding json envelope")
		}
		if env.Data == nil {
			return nil, errors.New("json object has no data array")
		}
		data = env.Data
	}

	var recs []*vtable.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrap(err, "decoding json records")
	}
	return recs, nil
}

func readNDJSON(r io.Reader) ([]*vtable.Record, error) {
	var recs []*vtable.Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		rec := &vtable.Record{}
		if err := json.Unmarshal(b, rec); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		recs = append(recs, rec)
	}
	return recs, errors.Wrap(sc.Err(), "reading ndjson")
}

func readCSV(r io.Reader) ([]*vtable.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	var recs []*vtable.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}
		rec := vtable.NewRecord()
		for i, name := range header {
			var v any
			if i < len(row) {
				v = csvValue(row[i])
			}
			rec.Set(name, v)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// csvValue keeps numeric-looking fields numeric so they sort as numbers.
func csvValue(s string) any {
	if s == "" {
		return nil
	}
	if json.Valid([]byte(s)) {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return json.Number(s)
		}
	}
	return s
}

// LoadFile reads one file, choosing the format from its name unless
// format is set.
func LoadFile(path string, format Format) ([]*vtable.Record, error) {
	detected, compressed := Detect(path)
	if format == FormatUnknown {
		format = detected
	}
	if format == FormatUnknown {
		return nil, errors.Errorf("cannot tell the format of %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		r = lz4.NewReader(f)
	}
	recs, err := Read(r, format)
	return recs, errors.Wrapf(err, "loading %s", path)
}

// Load reads several files concurrently and concatenates their records in
// argument order.
func Load(ctx context.Context, format Format, paths ...string) ([]*vtable.Record, error) {
	parts := make([][]*vtable.Record, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := LoadFile(p, format)
			parts[i] = recs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*vtable.Record
	for _, part := range parts {
		all = append(all, part...)
	}
	return all, nil
}

// Compress writes src to dst as an lz4 frame.
func Compress(dst io.Writer, src io.Reader) error {
	zw := lz4.NewWriter(dst)
	if _, err := io.Copy(zw, src); err != nil {
		return errors.Wrap(err, "compressing")
	}
	return errors.Wrap(zw.Close(), "closing lz4 frame")
}
