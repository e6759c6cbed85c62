package shader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with a validated uniform layout.
// Uniform locations are resolved once; setters take layout indices.
type Program struct {
	id     uint32
	layout Layout
	locs   []int32
}

// NewProgram compiles and links the sources, then checks the linked
// uniforms against layout. A mismatch is an error wrapping
// ErrLayoutMismatch and the program is released.
func NewProgram(vertexSrc, fragmentSrc string, layout Layout) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}

	if err := layout.Validate(activeUniforms(id)); err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}

	p := &Program{
		id:     id,
		layout: layout,
		locs:   make([]int32, len(layout)),
	}
	for i, u := range layout {
		p.locs[i] = gl.GetUniformLocation(id, gl.Str(u.Name+"\x00"))
		if p.locs[i] < 0 {
			gl.DeleteProgram(id)
			return nil, fmt.Errorf("%w: uniform %q has no location", ErrLayoutMismatch, u.Name)
		}
	}
	return p, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Layout returns the layout the program was validated against.
func (p *Program) Layout() Layout {
	return p.layout
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(handle int, v int32) {
	gl.Uniform1i(p.locs[handle], v)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(handle int, v mgl32.Vec2) {
	gl.Uniform2f(p.locs[handle], v.X(), v.Y())
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(handle int, v mgl32.Vec3) {
	gl.Uniform3f(p.locs[handle], v.X(), v.Y(), v.Z())
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(handle int, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.locs[handle], 1, false, &m[0])
}

// Destroy releases the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Define injects "#define name value" lines right after the #version
// directive of src, or at the top if there is none. Keys are emitted in
// sorted order.
func Define(src string, defines map[string]string) string {
	if len(defines) == 0 {
		return src
	}

	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(defines)) {
		fmt.Fprintf(&b, "#define %s %s\n", k, defines[k])
	}
	block := b.String()

	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, "#version") {
		return block + src
	}
	offset := len(src) - len(trimmed)
	end := strings.IndexByte(trimmed, '\n')
	if end < 0 {
		return src + "\n" + block
	}
	cut := offset + end + 1
	return src[:cut] + block + src[cut:]
}
