// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"github.com/devblok/glscenes/gfx"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var _ gfx.Resource = (*ShaderProgram)(nil)

type program struct {
	id        uint32
	names     []string
	locations []int32
}

// ShaderProgram owns a linked program and the locations of the
// uniforms it was asked to resolve.
type ShaderProgram struct {
	noCopy noCopy

	ctx   *Context
	state *program
}

// NewShaderProgram compiles every stage in sources, links them into one
// program and resolves the uniforms in the given order. A uniform the
// linked program does not have resolves to -1.
//
// Stages are compiled in pipeline order. A *CompileError or *LinkError is
// returned on failure, after every handle created so far was deleted. A
// program or stage the driver could not create gives an *AllocationError.
func NewShaderProgram(ctx *Context, sources map[ShaderStage]string, uniforms []string) (*ShaderProgram, error) {
	if len(sources) == 0 {
		panic("glr: shader program needs at least one stage")
	}

	api := ctx.api
	stages := maps.Keys(sources)
	slices.SortFunc(stages, func(a, b ShaderStage) int {
		return a.order() - b.order()
	})

	id := api.CreateProgram()
	if id == 0 {
		return nil, &AllocationError{Object: "shader program"}
	}

	shaders := make([]uint32, 0, len(stages))
	deleteShaders := func() {
		for _, sid := range shaders {
			api.DeleteShader(sid)
		}
	}

	for _, stage := range stages {
		sid, err := compileShader(api, stage, sources[stage])
		if err != nil {
			deleteShaders()
			api.DeleteProgram(id)
			return nil, err
		}
		api.AttachShader(id, sid)
		shaders = append(shaders, sid)
	}

	api.LinkProgram(id)

	// stage objects are not needed once the program is linked
	deleteShaders()

	if !api.ProgramLinked(id) {
		msg := api.ProgramInfoLog(id)
		api.DeleteProgram(id)
		return nil, &LinkError{Log: msg}
	}

	state := &program{
		id:        id,
		names:     append([]string(nil), uniforms...),
		locations: make([]int32, len(uniforms)),
	}
	for i, name := range uniforms {
		state.locations[i] = api.UniformLocation(id, name)
	}

	track(ctx, state, "shader program", func(p *program) map[handleKind][]uint32 {
		return map[handleKind][]uint32{programHandle: {p.id}}
	})

	return &ShaderProgram{
		ctx:   ctx,
		state: state,
	}, nil
}

func compileShader(api API, stage ShaderStage, source string) (uint32, error) {
	sid := api.CreateShader(stage)
	if sid == 0 {
		return 0, &AllocationError{Object: stage.String() + " shader"}
	}
	api.ShaderSource(sid, source)
	api.CompileShader(sid)

	if !api.ShaderCompiled(sid) {
		msg := api.ShaderInfoLog(sid)
		api.DeleteShader(sid)
		return 0, &CompileError{Stage: stage, Log: msg}
	}
	return sid, nil
}

// Ready implements gfx.Resource
func (p *ShaderProgram) Ready() bool {
	return p != nil && p.state != nil
}

// ID returns the program handle, 0 when empty.
func (p *ShaderProgram) ID() uint32 {
	if !p.Ready() {
		return 0
	}
	return p.state.id
}

// Uniforms returns the resolved uniform locations in the order
// their names were given.
func (p *ShaderProgram) Uniforms() []int32 {
	if !p.Ready() {
		return nil
	}
	return append([]int32(nil), p.state.locations...)
}

// Uniform returns the location resolved for name, or -1 if name was
// not among the requested uniforms.
func (p *ShaderProgram) Uniform(name string) int32 {
	if !p.Ready() {
		return -1
	}
	for i, n := range p.state.names {
		if n == name {
			return p.state.locations[i]
		}
	}
	return -1
}

// Use makes the program active for following draw calls.
func (p *ShaderProgram) Use() error {
	if !p.Ready() {
		return ErrNotReady
	}
	p.ctx.api.UseProgram(p.state.id)
	return nil
}

// Unload implements gfx.Resource
func (p *ShaderProgram) Unload() {
	if !p.Ready() {
		return
	}
	untrack(p.state)
	if p.state.id != 0 {
		p.ctx.api.DeleteProgram(p.state.id)
	}
	p.state = nil
}

// Move hands the program over to a new owner and leaves p empty.
func (p *ShaderProgram) Move() *ShaderProgram {
	if p == nil {
		return &ShaderProgram{}
	}
	moved := &ShaderProgram{ctx: p.ctx, state: p.state}
	p.state = nil
	return moved
}

// Assign releases whatever p owns and takes over the program of src,
// leaving src empty.
func (p *ShaderProgram) Assign(src *ShaderProgram) {
	if p == src {
		return
	}
	p.Unload()
	if src == nil {
		return
	}
	p.ctx, p.state = src.ctx, src.state
	src.state = nil
}
