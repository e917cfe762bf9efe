package vtable

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Record is one input row. Field order follows the source object.
type Record struct {
	fields OrderedMap[string, any]
}

// NewRecord creates a record from alternating key/value pairs.
// Non-string keys are ignored.
func NewRecord(pairs ...any) *Record {
	r := &Record{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if k, ok := pairs[i].(string); ok {
			r.Set(k, pairs[i+1])
		}
	}
	return r
}

// Get returns the value of a field, nil when absent.
func (r *Record) Get(key string) any {
	if r == nil {
		return nil
	}
	v, _ := r.fields.Get(key)
	return v
}

// Set stores a field, keeping the position of an existing key.
func (r *Record) Set(key string, value any) {
	r.fields.Put(key, value)
}

// Keys returns the field names in source order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return r.fields.Keys()
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return r.fields.Len()
}

// UnmarshalJSON decodes an object while preserving key order.
// Numbers are kept as json.Number so large ids survive unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "read record")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("record must be a JSON object, got %v", tok)
	}

	r.fields = OrderedMap[string, any]{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "read record key")
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("unexpected record key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(err, "decode field %q", key)
		}
		r.fields.Put(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "close record")
	}
	return nil
}

// MarshalJSON encodes the record with its fields in source order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Get(k))
		if err != nil {
			return nil, errors.Wrapf(err, "encode field %q", k)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Column describes one data column.
type Column struct {
	ID        string            // Unique id; joins widths, sort criteria and cells
	Header    string            // Header label (ID when empty)
	FullTitle string            // Tooltip override
	Accessor  func(*Record) any // Cell value getter (field ID when nil)
	Format    FormatSpec        // Cell presentation
	Sortable  bool              // Shows the sort affordance
}

// Label returns the header text.
func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// Value extracts the cell value for rec.
func (c Column) Value(rec *Record) any {
	if c.Accessor != nil {
		return c.Accessor(rec)
	}
	return rec.Get(c.ID)
}

// SortKey returns the id sort criteria are stored under.
// Time dimensions are addressed as cube.field.granularity and sort as cube.field.
func (c Column) SortKey() string {
	parts := strings.Split(c.ID, ".")
	if len(parts) >= 3 {
		return parts[0] + "." + parts[1]
	}
	return c.ID
}

// Granularity returns the granularity segment of a time dimension id.
func (c Column) Granularity() string {
	parts := strings.Split(c.ID, ".")
	if len(parts) >= 3 {
		return parts[2]
	}
	return ""
}

// Tooltip returns the header hover text.
func (c Column) Tooltip() string {
	if c.FullTitle != "" {
		return c.FullTitle
	}
	if g := c.Granularity(); g != "" {
		return c.Label() + " (by " + g + ")"
	}
	return c.Label()
}

// Row is a record placed in the current sort order.
type Row struct {
	Index    int // Position in the sorted order
	Original *Record
}

// DeriveColumns builds one sortable column per field of the first record.
func DeriveColumns(records []*Record) []Column {
	if len(records) == 0 {
		return nil
	}
	keys := records[0].Keys()
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{ID: k, Header: k, Sortable: true})
	}
	return cols
}

// columnIDs returns the ids of cols in order.
func columnIDs(cols []Column) []string {
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return ids
}
