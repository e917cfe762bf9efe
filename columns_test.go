package vtable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalKeepsOrder(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{"zeta": 1, "alpha": "x", "mid": {"n": [1, 2]}, "big": 12345678901234567890}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "big"}, rec.Keys())
	assert.Equal(t, json.Number("1"), rec.Get("zeta"))
	assert.Equal(t, json.Number("12345678901234567890"), rec.Get("big"))
	assert.Equal(t, map[string]any{"n": []any{json.Number("1"), json.Number("2")}}, rec.Get("mid"))
}

func TestRecord_UnmarshalRejectsNonObject(t *testing.T) {
	var rec Record
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &rec))
}

func TestRecord_MarshalKeepsOrder(t *testing.T) {
	rec := NewRecord("b", 1, "a", "two")
	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":1,"a":"two"}`, string(b))
	assert.Equal(t, `{"b":1,"a":"two"}`, string(b))
}

func TestRecord_NilSafe(t *testing.T) {
	var rec *Record
	assert.Nil(t, rec.Get("x"))
	assert.Empty(t, rec.Keys())
	assert.Equal(t, 0, rec.Len())
}

func TestDeriveColumns(t *testing.T) {
	recs := []*Record{
		NewRecord("id", 1, "name", "a"),
		NewRecord("other", true),
	}

	cols := DeriveColumns(recs)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].ID)
	assert.Equal(t, "id", cols[0].Label())
	assert.True(t, cols[0].Sortable)
	assert.Equal(t, "name", cols[1].ID)

	assert.Nil(t, DeriveColumns(nil))
}

func TestColumn_SortKeyAndGranularity(t *testing.T) {
	plain := Column{ID: "age"}
	assert.Equal(t, "age", plain.SortKey())
	assert.Equal(t, "", plain.Granularity())
	assert.Equal(t, "age", plain.Tooltip())

	member := Column{ID: "Users.age"}
	assert.Equal(t, "Users.age", member.SortKey())

	timeDim := Column{ID: "Orders.createdAt.month", Header: "Created"}
	assert.Equal(t, "Orders.createdAt", timeDim.SortKey())
	assert.Equal(t, "month", timeDim.Granularity())
	assert.Equal(t, "Created (by month)", timeDim.Tooltip())

	timeDim.FullTitle = "Orders Created At"
	assert.Equal(t, "Orders Created At", timeDim.Tooltip())
}

func TestColumn_Accessor(t *testing.T) {
	col := Column{ID: "full", Accessor: func(r *Record) any {
		return r.Get("first").(string) + " " + r.Get("last").(string)
	}}
	assert.Equal(t, "ada lovelace", col.Value(NewRecord("first", "ada", "last", "lovelace")))
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string, int](4)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	m.Set("a", 10)
	assert.Equal(t, []string{"b", "c", "a"}, m.Keys())

	m.Put("b", 20)
	assert.Equal(t, []string{"b", "c", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	assert.True(t, m.Delete("c"))
	assert.False(t, m.Delete("c"))
	assert.False(t, m.Has("c"))
	assert.Equal(t, 2, m.Len())

	var visited []string
	m.Each(func(k string, _ int) bool {
		visited = append(visited, k)
		return false
	})
	assert.Equal(t, []string{"b"}, visited)
}
