package glrender

import (
	"errors"
	"fmt"
)

// ErrSetup marks a failure while creating GPU resources. It only stops the
// slideshow that hit it.
var ErrSetup = errors.New("glrender: setup failed")

const vertexShaderSrc = `#version 120
attribute vec2 position;
varying vec2 v_texCoord;

void main() {
    gl_Position = vec4(position, 0.0, 1.0);
    // image rows run top to bottom
    v_texCoord = vec2((position.x + 1.0) * 0.5, 1.0 - (position.y + 1.0) * 0.5);
}
`

const fragmentShaderSrc = `#version 120
varying vec2 v_texCoord;
uniform sampler2D u_image0;
uniform sampler2D u_image1;
uniform float u_mix;

void main() {
    vec4 color0 = texture2D(u_image0, v_texCoord);
    vec4 color1 = texture2D(u_image1, v_texCoord);
    gl_FragColor = mix(color0, color1, u_mix);
}
`

// ShaderProgram is the linked cross-fade program with its locations resolved.
type ShaderProgram struct {
	dev Device
	id  Program

	position int32
	image0   int32
	image1   int32
	mix      int32
}

// NewShaderProgram compiles the cross-fade shaders. The returned error wraps
// ErrSetup.
func NewShaderProgram(dev Device) (*ShaderProgram, error) {
	id, err := dev.NewProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	p := &ShaderProgram{
		dev:      dev,
		id:       id,
		position: dev.AttribLocation(id, "position"),
		image0:   dev.UniformLocation(id, "u_image0"),
		image1:   dev.UniformLocation(id, "u_image1"),
		mix:      dev.UniformLocation(id, "u_mix"),
	}
	if p.position < 0 {
		dev.DeleteProgram(id)
		return nil, fmt.Errorf("%w: attribute position not found", ErrSetup)
	}

	dev.UseProgram(id)
	dev.Uniform1i(p.image0, 0)
	dev.Uniform1i(p.image1, 1)
	return p, nil
}

// Use makes the program current and sets the blend factor.
func (p *ShaderProgram) Use(mix float32) {
	p.dev.UseProgram(p.id)
	p.dev.Uniform1f(p.mix, mix)
}

func (p *ShaderProgram) Release() {
	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
		p.id = 0
	}
}
