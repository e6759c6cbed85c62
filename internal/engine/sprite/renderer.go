// Package sprite draws batched 2D quads, shapes and animated sprite sheets.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lantern/internal/engine/camera"
	"github.com/Faultbox/lantern/internal/engine/shader"
	"github.com/Faultbox/lantern/internal/engine/texture"
)

// Uniform handles in Layout.
const (
	uniformProjection = iota
	uniformTexture
)

// Layout is the uniform layout the sprite shaders must expose.
var Layout = shader.Layout{
	uniformProjection: {Name: "uProjection", Type: shader.Mat4},
	uniformTexture:    {Name: "uTexture", Type: shader.Sampler2D},
}

// floatsPerVertex is position (2), texcoord (2), color (4).
const floatsPerVertex = 8

// maxBatchQuads bounds the vertex buffer; larger batches flush early.
const maxBatchQuads = 1024

const circleSegments = 32

// Renderer batches colored and textured quads drawn through a Camera2D.
// Call Begin, issue draws, then End. A texture change flushes the batch.
type Renderer struct {
	program *shader.Program
	white   *texture.Texture

	vao uint32
	vbo uint32

	vertices []float32
	boundTex uint32
}

// NewRenderer compiles the sprite shaders and creates the vertex buffer.
func NewRenderer(vertSrc, fragSrc string) (*Renderer, error) {
	program, err := shader.NewProgram(vertSrc, fragSrc, Layout)
	if err != nil {
		return nil, fmt.Errorf("sprite shader: %w", err)
	}

	px := image.NewRGBA(image.Rect(0, 0, 1, 1))
	px.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	white, err := texture.Upload(px)
	if err != nil {
		program.Destroy()
		return nil, fmt.Errorf("white texture: %w", err)
	}

	r := &Renderer{
		program:  program,
		white:    white,
		vertices: make([]float32, 0, maxBatchQuads*6*floatsPerVertex),
	}
	r.createBuffers()
	return r, nil
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, cap(r.vertices)*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Begin starts a batch drawn through cam.
func (r *Renderer) Begin(cam camera.Camera2D) {
	r.vertices = r.vertices[:0]
	r.boundTex = r.white.ID

	r.program.Use()
	r.program.SetMat4(uniformProjection, cam.Projection())
	r.program.SetInt(uniformTexture, 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// End flushes the batch and unbinds the program.
func (r *Renderer) End() {
	r.flush()
	gl.UseProgram(0)
}

// Rect draws an axis-aligned rectangle with its bottom-left corner at (x, y).
func (r *Renderer) Rect(x, y, w, h float32, c mgl32.Vec4) {
	r.useTexture(r.white.ID)
	r.push(QuadVertices(x, y, w, h, 0, 0, 1, 1, c))
}

// Circle draws a filled circle.
func (r *Renderer) Circle(cx, cy, radius float32, c mgl32.Vec4) {
	r.useTexture(r.white.ID)
	r.push(CircleVertices(cx, cy, radius, circleSegments, c))
}

// Line draws a segment of the given thickness.
func (r *Renderer) Line(x1, y1, x2, y2, thickness float32, c mgl32.Vec4) {
	r.useTexture(r.white.ID)
	r.push(LineVertices(x1, y1, x2, y2, thickness, c))
}

// DrawParams controls how Texture maps a sheet region onto a world rect.
type DrawParams struct {
	Source image.Rectangle // Zero means the whole texture
	FlipX  bool
	Tint   mgl32.Vec4
}

// Texture draws a region of tex into the world rect with bottom-left (x, y).
func (r *Renderer) Texture(tex *texture.Texture, x, y, w, h float32, p DrawParams) {
	src := p.Source
	if src.Empty() {
		src = image.Rect(0, 0, tex.Width, tex.Height)
	}
	u0, v0, u1, v1 := SourceUV(src, tex.Width, tex.Height)
	if p.FlipX {
		u0, u1 = u1, u0
	}

	r.useTexture(tex.ID)
	// Texture rows are top-down, so the quad's bottom edge samples v1.
	r.push(QuadVertices(x, y, w, h, u0, v1, u1, v0, p.Tint))
}

func (r *Renderer) useTexture(id uint32) {
	if id == r.boundTex {
		return
	}
	r.flush()
	r.boundTex = id
}

func (r *Renderer) push(v []float32) {
	if len(r.vertices)+len(v) > cap(r.vertices) {
		r.flush()
	}
	r.vertices = append(r.vertices, v...)
}

func (r *Renderer) flush() {
	if len(r.vertices) == 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.boundTex)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.vertices)*4, gl.Ptr(r.vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.vertices)/floatsPerVertex))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.vertices = r.vertices[:0]
}

// Destroy releases all resources.
func (r *Renderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.white != nil {
		r.white.Destroy()
	}
	if r.program != nil {
		r.program.Destroy()
	}
}

// SourceUV converts a pixel rect of a w x h texture into texture coordinates.
func SourceUV(src image.Rectangle, w, h int) (u0, v0, u1, v1 float32) {
	if w <= 0 || h <= 0 {
		return 0, 0, 1, 1
	}
	fw, fh := float32(w), float32(h)
	return float32(src.Min.X) / fw, float32(src.Min.Y) / fh,
		float32(src.Max.X) / fw, float32(src.Max.Y) / fh
}

// QuadVertices returns two triangles covering (x, y)-(x+w, y+h).
// (u0, v0) maps to the bottom-left corner and (u1, v1) to the top-right.
func QuadVertices(x, y, w, h, u0, v0, u1, v1 float32, c mgl32.Vec4) []float32 {
	x1, y1 := x+w, y+h
	return []float32{
		x, y, u0, v0, c[0], c[1], c[2], c[3],
		x1, y, u1, v0, c[0], c[1], c[2], c[3],
		x1, y1, u1, v1, c[0], c[1], c[2], c[3],
		x, y, u0, v0, c[0], c[1], c[2], c[3],
		x1, y1, u1, v1, c[0], c[1], c[2], c[3],
		x, y1, u0, v1, c[0], c[1], c[2], c[3],
	}
}

// CircleVertices returns a triangle fan, expanded to triangles.
func CircleVertices(cx, cy, radius float32, segments int, c mgl32.Vec4) []float32 {
	out := make([]float32, 0, segments*3*floatsPerVertex)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a0, a1 := step*float64(i), step*float64(i+1)
		x0 := cx + radius*float32(math.Cos(a0))
		y0 := cy + radius*float32(math.Sin(a0))
		x1 := cx + radius*float32(math.Cos(a1))
		y1 := cy + radius*float32(math.Sin(a1))
		out = append(out,
			cx, cy, 0.5, 0.5, c[0], c[1], c[2], c[3],
			x0, y0, 0.5, 0.5, c[0], c[1], c[2], c[3],
			x1, y1, 0.5, 0.5, c[0], c[1], c[2], c[3],
		)
	}
	return out
}

// LineVertices returns a quad of the given thickness centered on the segment.
// A zero-length segment produces no vertices.
func LineVertices(x1, y1, x2, y2, thickness float32, c mgl32.Vec4) []float32 {
	d := mgl32.Vec2{x2 - x1, y2 - y1}
	if d.Len() == 0 {
		return nil
	}
	n := mgl32.Vec2{-d.Y(), d.X()}.Normalize().Mul(thickness / 2)

	ax, ay := x1+n.X(), y1+n.Y()
	bx, by := x1-n.X(), y1-n.Y()
	cx, cy := x2-n.X(), y2-n.Y()
	dx, dy := x2+n.X(), y2+n.Y()
	return []float32{
		ax, ay, 0, 0, c[0], c[1], c[2], c[3],
		bx, by, 0, 0, c[0], c[1], c[2], c[3],
		cx, cy, 0, 0, c[0], c[1], c[2], c[3],
		ax, ay, 0, 0, c[0], c[1], c[2], c[3],
		cx, cy, 0, 0, c[0], c[1], c[2], c[3],
		dx, dy, 0, 0, c[0], c[1], c[2], c[3],
	}
}
