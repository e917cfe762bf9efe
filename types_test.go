package vtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Bands(t *testing.T) {
	header := Rect{X: 10, Y: 20, W: 300, H: 30}
	body := header.Below(120)

	assert.Equal(t, Rect{X: 10, Y: 50, W: 300, H: 120}, body)
	assert.Equal(t, Rect{X: 10, Y: 20, W: 300, H: 150}, header.Extend(body))
	assert.Equal(t, Rect{X: 80, Y: 20, W: 200, H: 30}, header.Column(70, 200))
	assert.Equal(t, Vec2{X: 160, Y: 35}, header.Center())
	assert.Equal(t, float32(310), header.Right())
	assert.Equal(t, float32(170), body.Bottom())

	// Right and bottom edges belong to the neighbour.
	assert.True(t, header.Contains(Vec2{X: 10, Y: 20}))
	assert.False(t, header.Contains(Vec2{X: 310, Y: 30}))
	assert.False(t, header.Contains(Vec2{X: 100, Y: 50}))
	assert.True(t, body.Contains(Vec2{X: 100, Y: 50}))
}

func TestRGBA_RoundTrip(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	assert.Equal(t, uint32(0x78563412), c)
	r, g, b, a := UnpackRGBA(c)
	assert.Equal(t, [4]uint8{0x12, 0x34, 0x56, 0x78}, [4]uint8{r, g, b, a})
}
