// Package compositor runs the full-screen lighting pass over the scene target.
package compositor

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lantern/internal/engine/lighting"
	"github.com/Faultbox/lantern/internal/engine/shader"
	"github.com/Faultbox/lantern/internal/logger"
)

// Fixed handles in the lighting layout. Per-light handles follow.
const (
	uniformTexture = iota
	uniformDims
	firstLightUniform
)

// Layout returns the uniform layout of the lighting shader:
// Texture, dims, then pos_rad and color for every light slot.
func Layout() shader.Layout {
	l := make(shader.Layout, 0, firstLightUniform+2*lighting.MaxLights)
	l = append(l,
		shader.UniformDesc{Name: "Texture", Type: shader.Sampler2D},
		shader.UniformDesc{Name: "dims", Type: shader.Float2},
	)
	for i := 0; i < lighting.MaxLights; i++ {
		l = append(l,
			shader.UniformDesc{Name: shader.ElementName("lights", i, "pos_rad"), Type: shader.Float3},
			shader.UniformDesc{Name: shader.ElementName("lights", i, "color"), Type: shader.Float3},
		)
	}
	return l
}

// posRadHandle and colorHandle index the layout for light slot i.
func posRadHandle(i int) int { return firstLightUniform + 2*i }
func colorHandle(i int) int  { return firstLightUniform + 2*i + 1 }

// Defines returns the preprocessor values injected into the lighting
// fragment source so its light array matches MaxLights.
func Defines() map[string]string {
	return map[string]string{"MAX_LIGHTS": strconv.Itoa(lighting.MaxLights)}
}

// Compositor draws a texture over the whole viewport through the lighting
// shader. It keeps no state between frames besides the uploaded uniforms.
type Compositor struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	dims    mgl32.Vec2
}

// New compiles the lighting shader with MAX_LIGHTS injected, validates its
// uniforms against Layout and builds the full-screen quad.
func New(vertSrc, fragSrc string) (*Compositor, error) {
	program, err := shader.NewProgram(
		shader.Define(vertSrc, Defines()),
		shader.Define(fragSrc, Defines()),
		Layout(),
	)
	if err != nil {
		return nil, fmt.Errorf("lighting shader: %w", err)
	}

	c := &Compositor{program: program}
	c.createQuad()

	logger.Debug("compositor ready",
		zap.Uint32("program", program.ID()),
		zap.Int("uniforms", len(program.Layout())),
		zap.Int("max_lights", lighting.MaxLights),
	)
	return c, nil
}

func (c *Compositor) createQuad() {
	// NDC positions; the vertex shader derives UVs from them.
	vertices := []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, -1,
		1, 1,
		-1, 1,
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// SetDims records the viewport size uploaded as dims. Call it at startup
// and whenever the drawable size changes.
func (c *Compositor) SetDims(width, height int) {
	c.dims = mgl32.Vec2{float32(width), float32(height)}
}

// Draw binds the lighting program, uploads dims and every light slot, and
// draws src over the current viewport. The default program is restored
// afterwards so later overlay draws are unaffected.
func (c *Compositor) Draw(src uint32, u *lighting.Uniforms) {
	c.program.Use()

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, src)
	c.program.SetInt(uniformTexture, 0)

	dims := u.Dims
	if dims == (mgl32.Vec2{}) {
		dims = c.dims
	}
	c.program.SetVec2(uniformDims, dims)
	for i := 0; i < lighting.MaxLights; i++ {
		c.program.SetVec3(posRadHandle(i), u.PosRad[i])
		c.program.SetVec3(colorHandle(i), u.Color[i])
	}

	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// DrawLights builds the uniforms for reg and draws src.
func (c *Compositor) DrawLights(src uint32, reg *lighting.Registry, xf lighting.Transform) {
	u := lighting.BuildUniforms(reg, xf, int(c.dims.X()), int(c.dims.Y()))
	c.Draw(src, &u)
}

// Destroy releases all resources.
func (c *Compositor) Destroy() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
	if c.program != nil {
		c.program.Destroy()
	}
}
