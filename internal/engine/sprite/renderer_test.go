package sprite

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertexAt(v []float32, i int) []float32 {
	return v[i*floatsPerVertex : (i+1)*floatsPerVertex]
}

func TestQuadVertices(t *testing.T) {
	c := mgl32.Vec4{0.1, 0.2, 0.3, 1}
	v := QuadVertices(-1, -0.5, 2, 0.25, 0, 1, 1, 0, c)
	require.Len(t, v, 6*floatsPerVertex)

	assert.Equal(t, []float32{-1, -0.5, 0, 1, 0.1, 0.2, 0.3, 1}, vertexAt(v, 0))
	assert.Equal(t, []float32{1, -0.25, 1, 0, 0.1, 0.2, 0.3, 1}, vertexAt(v, 2))
	assert.Equal(t, []float32{-1, -0.25, 0, 0, 0.1, 0.2, 0.3, 1}, vertexAt(v, 5))
}

func TestSourceUV(t *testing.T) {
	u0, v0, u1, v1 := SourceUV(image.Rect(64, 0, 128, 64), 192, 64)
	assert.InDelta(t, 1.0/3, u0, 1e-6)
	assert.InDelta(t, 0, v0, 1e-6)
	assert.InDelta(t, 2.0/3, u1, 1e-6)
	assert.InDelta(t, 1, v1, 1e-6)

	u0, v0, u1, v1 = SourceUV(image.Rect(0, 0, 1, 1), 0, 0)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, [4]float32{u0, v0, u1, v1})
}

func TestLineVertices(t *testing.T) {
	c := mgl32.Vec4{1, 1, 1, 1}
	v := LineVertices(0, 0, 10, 0, 2, c)
	require.Len(t, v, 6*floatsPerVertex)

	ys := map[float32]bool{}
	for i := 0; i < 6; i++ {
		ys[vertexAt(v, i)[1]] = true
	}
	assert.Equal(t, map[float32]bool{1: true, -1: true}, ys)

	assert.Nil(t, LineVertices(3, 3, 3, 3, 1, c))
}

func TestCircleVertices(t *testing.T) {
	v := CircleVertices(1, 2, 0.5, 8, mgl32.Vec4{1, 0, 0, 1})
	require.Len(t, v, 8*3*floatsPerVertex)

	for i := 0; i < 8*3; i++ {
		p := vertexAt(v, i)
		d := mgl32.Vec2{p[0] - 1, p[1] - 2}.Len()
		if i%3 == 0 {
			assert.InDelta(t, 0, d, 1e-6)
		} else {
			assert.InDelta(t, 0.5, d, 1e-5)
		}
	}
}

func TestLayoutHandles(t *testing.T) {
	assert.Equal(t, uniformProjection, Layout.Index("uProjection"))
	assert.Equal(t, uniformTexture, Layout.Index("uTexture"))
}
