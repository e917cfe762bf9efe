package vtable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asc(id string) SortCriterion  { return SortCriterion{ColumnID: id, Direction: SortAscending} }
func desc(id string) SortCriterion { return SortCriterion{ColumnID: id, Direction: SortDescending} }

func TestDedupKeepLatest(t *testing.T) {
	got := DedupKeepLatest([]SortCriterion{asc("A"), desc("B"), desc("A")})
	assert.Equal(t, []SortCriterion{desc("B"), desc("A")}, got)
}

func TestDedupKeepLatest_Invariant(t *testing.T) {
	seq := []SortCriterion{asc("a"), asc("b"), desc("c"), desc("a"), asc("c"), asc("d"), desc("b")}
	got := DedupKeepLatest(seq)

	seen := map[string]bool{}
	for _, c := range got {
		require.False(t, seen[c.ColumnID], "duplicate %s", c.ColumnID)
		seen[c.ColumnID] = true
	}
	assert.Equal(t, []SortCriterion{desc("a"), asc("c"), asc("d"), desc("b")}, got)

	assert.Empty(t, DedupKeepLatest(nil))
}

func TestSortManager_CycleOnColumn(t *testing.T) {
	sm := NewSortManager(ClientSide, nil)

	var updates [][]SortCriterion
	sm.OnUpdate(func(seq []SortCriterion) { updates = append(updates, seq) })

	sm.SetDirection("age", SortAscending)
	assert.Equal(t, SortAscending, sm.DirectionFor("age"))
	assert.Equal(t, []SortCriterion{asc("age")}, sm.Criteria())

	sm.SetDirection("age", SortDescending)
	assert.Equal(t, SortDescending, sm.DirectionFor("age"))
	assert.Equal(t, []SortCriterion{desc("age")}, sm.Criteria())

	sm.SetDirection("age", SortNone)
	assert.Equal(t, SortNone, sm.DirectionFor("age"))
	assert.Empty(t, sm.Criteria())

	require.Len(t, updates, 3)
	assert.Empty(t, updates[2])
}

func TestSortManager_ReAddMovesToEnd(t *testing.T) {
	sm := NewSortManager(ClientSide, nil)

	sm.SetDirection("A", SortAscending)
	sm.SetDirection("B", SortDescending)
	got := sm.SetDirection("A", SortDescending)

	assert.Equal(t, []SortCriterion{desc("B"), desc("A")}, got)
	assert.Equal(t, got, sm.Criteria())
}

func TestSortManager_ServerSide(t *testing.T) {
	sm := NewSortManager(ServerSide, nil)
	sm.SetBaseline([]SortCriterion{asc("name")})

	var reported []SortCriterion
	sm.OnUpdate(func(seq []SortCriterion) { reported = seq })

	sm.SetDirection("age", SortDescending)
	assert.Equal(t, []SortCriterion{asc("name"), desc("age")}, reported)

	// Live state untouched, nothing sorted locally.
	assert.Empty(t, sm.Criteria())
	assert.Nil(t, sm.Effective())
	assert.Equal(t, SortAscending, sm.DirectionFor("name"))
	assert.Equal(t, SortNone, sm.DirectionFor("age"))
}

func TestSortManager_ServerSideRemoveKeepsOtherDuplicates(t *testing.T) {
	sm := NewSortManager(ServerSide, nil)
	sm.SetBaseline([]SortCriterion{asc("a"), asc("b"), desc("a")})

	got := sm.SetDirection("b", SortNone)
	assert.Equal(t, []SortCriterion{asc("a"), desc("a")}, got)
}

func TestSortManager_ClientSideBaselineSeedsLiveOrder(t *testing.T) {
	sm := NewSortManager(ClientSide, nil)
	sm.SetBaseline([]SortCriterion{desc("age"), asc("name"), asc("age")})

	assert.Equal(t, []SortCriterion{asc("name"), asc("age")}, sm.Criteria())
	assert.Equal(t, sm.Criteria(), sm.Effective())
	assert.Equal(t, SortAscending, sm.DirectionFor("age"))

	// Cycling works on the live order, not on the stale baseline.
	sm.SetDirection("age", NextDirection(sm.DirectionFor("age")))
	assert.Equal(t, SortDescending, sm.DirectionFor("age"))
	sm.SetDirection("age", NextDirection(sm.DirectionFor("age")))
	assert.Equal(t, SortNone, sm.DirectionFor("age"))
	assert.Equal(t, []SortCriterion{asc("name")}, sm.Criteria())

	// Re-supplying the same baseline keeps the user's changes.
	sm.SetBaseline([]SortCriterion{desc("age"), asc("name"), asc("age")})
	assert.Equal(t, []SortCriterion{asc("name")}, sm.Criteria())

	// A new baseline replaces them.
	sm.SetBaseline([]SortCriterion{desc("name")})
	assert.Equal(t, []SortCriterion{desc("name")}, sm.Criteria())
}

func TestSortManager_ServerSideBaselineDrivesIndicator(t *testing.T) {
	sm := NewSortManager(ServerSide, nil)
	sm.SetBaseline([]SortCriterion{desc("x")})

	assert.Equal(t, SortDescending, sm.DirectionFor("x"))
	assert.Empty(t, sm.Criteria())
}

func TestParseSortCriterion(t *testing.T) {
	c, err := ParseSortCriterion("age:desc")
	require.NoError(t, err)
	assert.Equal(t, desc("age"), c)
	assert.Equal(t, "age:desc", c.String())

	c, err = ParseSortCriterion("name")
	require.NoError(t, err)
	assert.Equal(t, asc("name"), c)

	_, err = ParseSortCriterion("age:sideways")
	assert.Error(t, err)

	_, err = ParseSortCriterion(":asc")
	assert.Error(t, err)
}

func TestSortRows_MultiKeyStable(t *testing.T) {
	recs := []*Record{
		NewRecord("name", "carol", "age", 30),
		NewRecord("name", "alice", "age", 25),
		NewRecord("name", "bob", "age", 30),
		NewRecord("name", "dave", "age", 25),
	}

	rows := SortRows(recs, nil, []SortCriterion{desc("age")}, nil)
	names := make([]string, len(rows))
	for i, r := range rows {
		assert.Equal(t, i, r.Index)
		names[i] = r.Original.Get("name").(string)
	}
	// Ties keep input order.
	assert.Equal(t, []string{"carol", "bob", "alice", "dave"}, names)

	rows = SortRows(recs, nil, []SortCriterion{asc("age"), asc("name")}, nil)
	names = names[:0]
	for _, r := range rows {
		names = append(names, r.Original.Get("name").(string))
	}
	assert.Equal(t, []string{"alice", "dave", "bob", "carol"}, names)
}

func TestSortRows_NumericAndNil(t *testing.T) {
	recs := []*Record{
		NewRecord("v", json.Number("10")),
		NewRecord("v", "9"),
		NewRecord("v", nil),
		NewRecord("v", 2.5),
	}

	rows := SortRows(recs, nil, []SortCriterion{asc("v")}, nil)
	got := make([]any, len(rows))
	for i, r := range rows {
		got[i] = r.Original.Get("v")
	}
	assert.Equal(t, []any{nil, 2.5, "9", json.Number("10")}, got)
}

func TestSortRows_OrderFunc(t *testing.T) {
	recs := []*Record{
		NewRecord("s", "bb"),
		NewRecord("s", "a"),
		NewRecord("s", "ccc"),
	}
	byLen := func(a, b *Record, id string) int {
		return len(a.Get(id).(string)) - len(b.Get(id).(string))
	}

	rows := SortRows(recs, nil, []SortCriterion{desc("s")}, byLen)
	assert.Equal(t, "ccc", rows[0].Original.Get("s"))
	assert.Equal(t, "a", rows[2].Original.Get("s"))
}

func TestSortRows_GranularityColumn(t *testing.T) {
	cols := []Column{{ID: "Orders.createdAt.day"}}
	recs := []*Record{
		NewRecord("Orders.createdAt.day", "2024-02-01"),
		NewRecord("Orders.createdAt.day", "2024-01-01"),
	}

	rows := SortRows(recs, cols, []SortCriterion{asc("Orders.createdAt")}, nil)
	assert.Equal(t, "2024-01-01", rows[0].Original.Get("Orders.createdAt.day"))
}

func TestNextDirection(t *testing.T) {
	assert.Equal(t, SortAscending, NextDirection(SortNone))
	assert.Equal(t, SortDescending, NextDirection(SortAscending))
	assert.Equal(t, SortNone, NextDirection(SortDescending))
}
