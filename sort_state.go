package vtable

import (
	"cmp"
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Direction is the sort direction of one column.
type Direction int

const (
	SortNone Direction = iota
	SortAscending
	SortDescending
)

// String returns "asc", "desc" or "none".
func (d Direction) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// ParseDirection accepts asc/ascending, desc/descending and none/"".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	case "", "none":
		return SortNone, nil
	}
	return SortNone, errors.Errorf("unknown sort direction %q", s)
}

// UnmarshalText lets a Direction be read from config files.
func (d *Direction) UnmarshalText(b []byte) error {
	dir, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// SortCriterion orders rows by one column.
type SortCriterion struct {
	ColumnID  string    `toml:"column"`
	Direction Direction `toml:"direction"`
}

// Desc reports whether the criterion sorts descending.
func (c SortCriterion) Desc() bool {
	return c.Direction == SortDescending
}

// String formats the criterion the way ParseSortCriterion reads it.
func (c SortCriterion) String() string {
	return c.ColumnID + ":" + c.Direction.String()
}

// ParseSortCriterion parses "column:asc" or "column:desc". A bare column
// name sorts ascending.
func ParseSortCriterion(s string) (SortCriterion, error) {
	id, dir, found := strings.Cut(s, ":")
	if id == "" {
		return SortCriterion{}, errors.Errorf("sort criterion %q has no column", s)
	}
	if !found {
		return SortCriterion{ColumnID: id, Direction: SortAscending}, nil
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return SortCriterion{}, err
	}
	if d == SortNone {
		return SortCriterion{}, errors.Errorf("sort criterion %q has no direction", s)
	}
	return SortCriterion{ColumnID: id, Direction: d}, nil
}

// DedupKeepLatest drops every criterion whose column appears again later in
// seq. Survivors keep their relative order, so re-adding a column moves it
// to the lowest precedence:
//
//	[A asc, B desc, A desc] -> [B desc, A desc]
func DedupKeepLatest(seq []SortCriterion) []SortCriterion {
	seen := make(map[string]struct{}, len(seq))
	drop := make([]bool, len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		if _, ok := seen[seq[i].ColumnID]; ok {
			drop[i] = true
			continue
		}
		seen[seq[i].ColumnID] = struct{}{}
	}

	out := make([]SortCriterion, 0, len(seen))
	for i, c := range seq {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// SortMode selects who executes the sort.
type SortMode int

const (
	// ClientSide sorts rows locally and owns the sort state.
	ClientSide SortMode = iota
	// ServerSide only reports the requested order; the host re-queries.
	ServerSide
)

// String returns "client-side" or "server-side".
func (m SortMode) String() string {
	if m == ServerSide {
		return "server-side"
	}
	return "client-side"
}

// ParseSortMode accepts "client-side" and "server-side".
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "client-side", "client":
		return ClientSide, nil
	case "server-side", "server":
		return ServerSide, nil
	}
	return ClientSide, errors.Errorf("unknown sort mode %q", s)
}

// UnmarshalText lets a SortMode be read from config files.
func (m *SortMode) UnmarshalText(b []byte) error {
	mode, err := ParseSortMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// SortManager holds the multi-column sort state of a table.
//
// In ClientSide mode the manager owns the live state and every change
// re-sorts the rows locally. In ServerSide mode changes are computed against
// the baseline supplied by the host, reported through the update hook and
// otherwise discarded; the host is expected to feed the new order back as
// the next baseline.
type SortManager struct {
	mode     SortMode
	baseline []SortCriterion
	live     OrderedMap[string, Direction]
	onUpdate func([]SortCriterion)
	logger   *slog.Logger
}

// NewSortManager creates a manager with an empty state.
func NewSortManager(mode SortMode, logger *slog.Logger) *SortManager {
	if logger == nil {
		logger = defaultLogger
	}
	return &SortManager{mode: mode, logger: logger}
}

// Mode returns the sort mode.
func (sm *SortManager) Mode() SortMode {
	return sm.mode
}

// SetMode switches the sort mode. The live state is kept.
func (sm *SortManager) SetMode(mode SortMode) {
	sm.mode = mode
}

// SetBaseline stores the externally supplied order. The slice is copied
// as-is, duplicates included. In ClientSide mode a changed baseline becomes
// the initial live order; passing the same baseline again leaves the
// user's sort alone.
func (sm *SortManager) SetBaseline(seq []SortCriterion) {
	changed := !slices.Equal(seq, sm.baseline)
	sm.baseline = slices.Clone(seq)
	if changed && sm.mode == ClientSide {
		sm.setLive(DedupKeepLatest(sm.baseline))
	}
}

// Baseline returns the externally supplied order.
func (sm *SortManager) Baseline() []SortCriterion {
	return sm.baseline
}

// OnUpdate registers the hook receiving every computed order.
func (sm *SortManager) OnUpdate(fn func([]SortCriterion)) {
	sm.onUpdate = fn
}

// SetDirection applies a sort action on columnID and returns the new order.
// A direction appends the column with the lowest precedence, replacing an
// earlier entry for it. SortNone removes the column.
func (sm *SortManager) SetDirection(columnID string, dir Direction) []SortCriterion {
	var working []SortCriterion
	if sm.mode == ClientSide {
		working = sm.Criteria()
	} else {
		working = slices.Clone(sm.baseline)
	}

	if dir != SortNone {
		working = append(working, SortCriterion{ColumnID: columnID, Direction: dir})
		working = DedupKeepLatest(working)
	} else {
		working = slices.DeleteFunc(working, func(c SortCriterion) bool {
			return c.ColumnID == columnID
		})
	}

	sm.logger.Debug("sort changed", "column", columnID, "direction", dir.String(), "mode", sm.mode.String(), "criteria", len(working))

	if sm.onUpdate != nil {
		sm.onUpdate(slices.Clone(working))
	}

	if sm.mode == ClientSide {
		sm.setLive(working)
	}
	return working
}

func (sm *SortManager) setLive(seq []SortCriterion) {
	sm.live = OrderedMap[string, Direction]{}
	for _, c := range seq {
		sm.live.Set(c.ColumnID, c.Direction)
	}
}

// Criteria returns the live order, primary first.
func (sm *SortManager) Criteria() []SortCriterion {
	out := make([]SortCriterion, 0, sm.live.Len())
	sm.live.Each(func(id string, d Direction) bool {
		out = append(out, SortCriterion{ColumnID: id, Direction: d})
		return true
	})
	return out
}

// Effective returns the order rows are displayed in: the live order in
// ClientSide mode, nothing in ServerSide mode since the host sorted already.
func (sm *SortManager) Effective() []SortCriterion {
	if sm.mode == ServerSide {
		return nil
	}
	return sm.Criteria()
}

// DirectionFor returns the header indicator of a column. In ServerSide
// mode the host's baseline is consulted before the live state; in
// ClientSide mode only the live state counts.
func (sm *SortManager) DirectionFor(columnID string) Direction {
	if sm.mode == ServerSide {
		for _, c := range sm.baseline {
			if c.ColumnID == columnID {
				return c.Direction
			}
		}
	}
	if d, ok := sm.live.Get(columnID); ok {
		return d
	}
	return SortNone
}

// Reset clears the live state and forgets the baseline, so the next
// SetBaseline seeds a ClientSide table again.
func (sm *SortManager) Reset() {
	sm.live = OrderedMap[string, Direction]{}
	sm.baseline = nil
}

// NextDirection cycles none -> ascending -> descending -> none.
func NextDirection(d Direction) Direction {
	switch d {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// OrderFunc compares two records on one column. It returns a negative
// number when a sorts before b in ascending order. Descending criteria
// invert the result.
type OrderFunc func(a, b *Record, columnID string) int

// SortRows orders records by criteria with a stable multi-key sort and
// assigns each row its position. Criteria refer to columns by ID or SortKey;
// unknown ids read the record field of the same name. A nil order uses
// CompareValues.
func SortRows(records []*Record, columns []Column, criteria []SortCriterion, order OrderFunc) []Row {
	sorted := slices.Clone(records)

	if len(criteria) > 0 {
		type key struct {
			col  Column
			id   string
			desc bool
		}
		keys := make([]key, 0, len(criteria))
		for _, c := range criteria {
			col, ok := findSortColumn(columns, c.ColumnID)
			if !ok {
				col = Column{ID: c.ColumnID}
			}
			keys = append(keys, key{col: col, id: c.ColumnID, desc: c.Desc()})
		}

		slices.SortStableFunc(sorted, func(a, b *Record) int {
			for _, k := range keys {
				var r int
				if order != nil {
					r = order(a, b, k.id)
				} else {
					r = CompareValues(k.col.Value(a), k.col.Value(b))
				}
				if r == 0 {
					continue
				}
				if k.desc {
					return -r
				}
				return r
			}
			return 0
		})
	}

	rows := make([]Row, len(sorted))
	for i, rec := range sorted {
		rows[i] = Row{Index: i, Original: rec}
	}
	return rows
}

func findSortColumn(columns []Column, id string) (Column, bool) {
	for _, col := range columns {
		if col.ID == id {
			return col, true
		}
	}
	for _, col := range columns {
		if col.SortKey() == id {
			return col, true
		}
	}
	return Column{}, false
}

// CompareValues orders two cell values. nil sorts first; numbers (including
// numeric strings) compare numerically; everything else compares by its
// displayed text.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	fa, aok := numericValue(a)
	fb, bok := numericValue(b)
	if aok && bok {
		return cmp.Compare(fa, fb)
	}

	sa, _ := Stringify(a)
	sb, _ := Stringify(b)
	return strings.Compare(sa, sb)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}
