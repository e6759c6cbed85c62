package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() Layout {
	return Layout{
		{"Texture", Sampler2D},
		{"dims", Float2},
		{ElementName("lights", 0, "pos_rad"), Float3},
		{ElementName("lights", 0, "color"), Float3},
	}
}

func activeFor(l Layout) []ActiveUniform {
	out := make([]ActiveUniform, len(l))
	for i, u := range l {
		out[i] = ActiveUniform{Name: u.Name, Type: u.Type, Size: 1}
	}
	return out
}

func TestElementName(t *testing.T) {
	assert.Equal(t, "lights[0].pos_rad", ElementName("lights", 0, "pos_rad"))
	assert.Equal(t, "lights[3].color", ElementName("lights", 3, "color"))
}

func TestLayoutIndex(t *testing.T) {
	l := testLayout()
	assert.Equal(t, 1, l.Index("dims"))
	assert.Equal(t, 3, l.Index("lights[0].color"))
	assert.Equal(t, -1, l.Index("lights[1].color"))
}

func TestValidateExactMatch(t *testing.T) {
	l := testLayout()
	active := activeFor(l)
	// Linkers report uniforms in any order.
	active[0], active[3] = active[3], active[0]
	assert.NoError(t, l.Validate(active))
}

func TestValidateMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]ActiveUniform) []ActiveUniform
		want   string
	}{
		{
			name:   "missing uniform",
			mutate: func(a []ActiveUniform) []ActiveUniform { return a[:3] },
			want:   `"lights[0].color" not found`,
		},
		{
			name: "extra light slot",
			mutate: func(a []ActiveUniform) []ActiveUniform {
				return append(a, ActiveUniform{Name: "lights[1].pos_rad", Type: Float3, Size: 1})
			},
			want: `"lights[1].pos_rad" in program but not declared`,
		},
		{
			name: "wrong type",
			mutate: func(a []ActiveUniform) []ActiveUniform {
				a[1].Type = Float3
				return a
			},
			want: `"dims" is vec3, declared vec2`,
		},
		{
			name: "array uniform",
			mutate: func(a []ActiveUniform) []ActiveUniform {
				a[1].Size = 4
				return a
			},
			want: `"dims" has array size 4`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayout()
			err := l.Validate(tt.mutate(activeFor(l)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLayoutMismatch))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	l := testLayout()
	err := l.Validate([]ActiveUniform{{Name: "Texture", Type: Sampler2D, Size: 1}})
	require.Error(t, err)
	assert.Equal(t, 3, strings.Count(err.Error(), "not found"))
}

func TestValidateDuplicateDeclaration(t *testing.T) {
	l := append(testLayout(), UniformDesc{"dims", Float2})
	err := l.Validate(activeFor(testLayout()))
	require.ErrorIs(t, err, ErrLayoutMismatch)
	assert.Contains(t, err.Error(), `"dims" declared twice`)
}

func TestDefine(t *testing.T) {
	src := "#version 410 core\nuniform vec2 dims;\n"
	got := Define(src, map[string]string{"MAX_LIGHTS": "4", "A": "1"})
	assert.Equal(t, "#version 410 core\n#define A 1\n#define MAX_LIGHTS 4\nuniform vec2 dims;\n", got)
}

func TestDefineWithoutVersion(t *testing.T) {
	got := Define("void main() {}\n", map[string]string{"N": "2"})
	assert.Equal(t, "#define N 2\nvoid main() {}\n", got)
}

func TestDefineLeadingWhitespace(t *testing.T) {
	got := Define("\n  #version 330 core\nvoid main() {}", map[string]string{"N": "2"})
	assert.Equal(t, "\n  #version 330 core\n#define N 2\nvoid main() {}", got)
}

func TestDefineNoDefines(t *testing.T) {
	src := "#version 410 core\n"
	assert.Equal(t, src, Define(src, nil))
}

func TestUniformTypeString(t *testing.T) {
	assert.Equal(t, "vec3", Float3.String())
	assert.Equal(t, "sampler2D", Sampler2D.String())
	assert.Equal(t, "0x1", UniformType(1).String())
}
