package vtable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastState_ExpiresAndCaps(t *testing.T) {
	var ts ToastState
	ts.Success("Columns auto-sized")
	ts.Toast("short", ToastTypeInfo, time.Second)

	ts.Update(1500 * time.Millisecond)
	require.Len(t, ts.Toasts, 1)
	latest, ok := ts.Latest()
	require.True(t, ok)
	assert.Equal(t, "Columns auto-sized", latest.Message)
	assert.Equal(t, ToastTypeSuccess, latest.Type)

	ts.Update(2 * time.Second)
	_, ok = ts.Latest()
	assert.False(t, ok)

	for range ToastMaxVisible + 3 {
		ts.Error("copy failed")
	}
	assert.Len(t, ts.Toasts, ToastMaxVisible)
}

func TestToastNotification_Opacity(t *testing.T) {
	n := ToastNotification{TTL: time.Second}
	assert.Equal(t, float32(0), n.opacity())

	n.Age = 500 * time.Millisecond
	assert.Equal(t, float32(1), n.opacity())

	n.Age = 850 * time.Millisecond
	assert.InDelta(t, 0.5, n.opacity(), 0.01)

	n.Age = 2 * time.Second
	assert.Equal(t, float32(0), n.opacity())
}

func TestDrawToasts_SkipsInvisible(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	ts := &ToastState{}
	ts.Success("Copied to clipboard")
	DrawToasts(dl, ts, Vec2{X: 800, Y: 600}, DefaultStyle())
	assert.Empty(t, dl.VtxBuffer, "a notice fades in from zero")

	ts.Update(time.Second)
	DrawToasts(dl, ts, Vec2{X: 800, Y: 600}, DefaultStyle())
	assert.NotEmpty(t, dl.VtxBuffer)
}
