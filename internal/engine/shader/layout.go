package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrLayoutMismatch is returned when a linked program's uniforms disagree
// with the layout it was created with.
var ErrLayoutMismatch = errors.New("uniform layout mismatch")

// UniformType is the GL type enum of a uniform.
type UniformType uint32

// Uniform types used by the renderer.
const (
	Int       UniformType = gl.INT
	Float     UniformType = gl.FLOAT
	Float2    UniformType = gl.FLOAT_VEC2
	Float3    UniformType = gl.FLOAT_VEC3
	Float4    UniformType = gl.FLOAT_VEC4
	Mat4      UniformType = gl.FLOAT_MAT4
	Sampler2D UniformType = gl.SAMPLER_2D
)

func (t UniformType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Float2:
		return "vec2"
	case Float3:
		return "vec3"
	case Float4:
		return "vec4"
	case Mat4:
		return "mat4"
	case Sampler2D:
		return "sampler2D"
	default:
		return fmt.Sprintf("0x%x", uint32(t))
	}
}

// UniformDesc declares one uniform of a program.
type UniformDesc struct {
	Name string
	Type UniformType
}

// Layout is the ordered uniform set of a program. A uniform's index in the
// layout is its handle for Program setters.
type Layout []UniformDesc

// ElementName returns the GL name of a field of an array-of-struct
// uniform, e.g. ElementName("lights", 2, "color") = "lights[2].color".
func ElementName(array string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", array, index, field)
}

// Index returns the handle of the named uniform, or -1.
func (l Layout) Index(name string) int {
	for i, u := range l {
		if u.Name == name {
			return i
		}
	}
	return -1
}

// ActiveUniform is a uniform as reported by the linked program.
type ActiveUniform struct {
	Name string
	Type UniformType
	Size int32
}

// Validate checks that active matches the layout exactly: every declared
// uniform present with the declared type, and nothing else. All problems
// are reported in one error wrapping ErrLayoutMismatch.
func (l Layout) Validate(active []ActiveUniform) error {
	byName := make(map[string]ActiveUniform, len(active))
	for _, a := range active {
		byName[a.Name] = a
	}

	var problems []string
	declared := make(map[string]bool, len(l))
	for _, u := range l {
		if declared[u.Name] {
			problems = append(problems, fmt.Sprintf("uniform %q declared twice", u.Name))
			continue
		}
		declared[u.Name] = true

		a, ok := byName[u.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("uniform %q not found in program", u.Name))
			continue
		}
		if a.Type != u.Type {
			problems = append(problems, fmt.Sprintf("uniform %q is %s, declared %s", u.Name, a.Type, u.Type))
		}
		if a.Size != 1 {
			problems = append(problems, fmt.Sprintf("uniform %q has array size %d, declared 1", u.Name, a.Size))
		}
	}
	for _, a := range active {
		if !declared[a.Name] {
			problems = append(problems, fmt.Sprintf("uniform %q in program but not declared", a.Name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrLayoutMismatch, strings.Join(problems, "; "))
	}
	return nil
}
