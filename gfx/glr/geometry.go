// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"unsafe"

	"github.com/devblok/glscenes/gfx"
)

var _ gfx.Resource = (*GeometryBuffer)(nil)

// VertexAttribute describes how a shader input is read from a vertex.
type VertexAttribute struct {
	// Location of the input in the vertex shader
	Location uint32

	// Components is the number of components, 3 for a vec3
	Components int32

	Type      ComponentType
	Normalize bool

	// Offset of the attribute in the vertex in bytes
	Offset uintptr
}

type geometry struct {
	vbo, ebo, vao uint32
	stride        int32
	vertices      int32
	indices       int32
	attributes    []VertexAttribute
}

// GeometryBuffer owns a vertex buffer, an index buffer and the vertex
// array object that describes their layout.
type GeometryBuffer struct {
	noCopy noCopy

	ctx   *Context
	state *geometry
}

// NewGeometryBuffer uploads vertices and indices once and records the
// vertex layout. The stride is the size of V, so attribute offsets are
// usually taken with unsafe.Offsetof on V's fields.
//
// Empty vertices or indices are a programming error and panic. A driver
// that hands out no buffer or vertex array panics with an
// *AllocationError after the handles created so far were deleted.
func NewGeometryBuffer[V any](ctx *Context, vertices []V, indices []uint32, attributes []VertexAttribute) *GeometryBuffer {
	if len(vertices) == 0 {
		panic("glr: geometry requires at least one vertex")
	}
	if len(indices) == 0 {
		panic("glr: geometry requires at least one index")
	}

	var vertex V
	stride := int32(unsafe.Sizeof(vertex))
	if stride == 0 {
		panic("glr: geometry vertex type has zero size")
	}

	api := ctx.api
	state := &geometry{
		stride:     stride,
		vertices:   int32(len(vertices)),
		indices:    int32(len(indices)),
		attributes: append([]VertexAttribute(nil), attributes...),
	}

	state.vbo = api.GenBuffer()
	state.ebo = api.GenBuffer()
	state.vao = api.GenVertexArray()
	if state.vbo == 0 || state.ebo == 0 || state.vao == 0 {
		object := "vertex array"
		if state.vbo == 0 || state.ebo == 0 {
			object = "buffer"
		}
		for _, id := range []uint32{state.vbo, state.ebo} {
			if id != 0 {
				api.DeleteBuffers(id)
			}
		}
		if state.vao != 0 {
			api.DeleteVertexArrays(state.vao)
		}
		panic(&AllocationError{Object: object})
	}

	api.BindVertexArray(state.vao)

	api.BindBuffer(ArrayBuffer, state.vbo)
	api.BufferData(ArrayBuffer, sliceBytes(vertices), StaticDraw)

	// the element buffer binding is recorded by the vertex array
	api.BindBuffer(ElementArrayBuffer, state.ebo)
	api.BufferData(ElementArrayBuffer, sliceBytes(indices), StaticDraw)

	for _, a := range state.attributes {
		api.VertexAttribPointer(a.Location, a.Components, a.Type, a.Normalize, stride, a.Offset)
		api.EnableVertexAttribArray(a.Location)
	}

	api.BindVertexArray(0)

	track(ctx, state, "geometry buffer", func(g *geometry) map[handleKind][]uint32 {
		return map[handleKind][]uint32{
			bufferHandle:      {g.vbo, g.ebo},
			vertexArrayHandle: {g.vao},
		}
	})

	return &GeometryBuffer{
		ctx:   ctx,
		state: state,
	}
}

// sliceBytes reslices s into its raw bytes without copying.
func sliceBytes[T any](s []T) []byte {
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// Ready implements gfx.Resource
func (g *GeometryBuffer) Ready() bool {
	return g != nil && g.state != nil
}

// VBO returns the vertex buffer handle.
func (g *GeometryBuffer) VBO() uint32 {
	if !g.Ready() {
		return 0
	}
	return g.state.vbo
}

// EBO returns the index buffer handle.
func (g *GeometryBuffer) EBO() uint32 {
	if !g.Ready() {
		return 0
	}
	return g.state.ebo
}

// VAO returns the vertex array handle.
func (g *GeometryBuffer) VAO() uint32 {
	if !g.Ready() {
		return 0
	}
	return g.state.vao
}

// VertexCount returns the number of uploaded vertices.
func (g *GeometryBuffer) VertexCount() int32 {
	if !g.Ready() {
		return 0
	}
	return g.state.vertices
}

// IndexCount returns the number of uploaded indices.
func (g *GeometryBuffer) IndexCount() int32 {
	if !g.Ready() {
		return 0
	}
	return g.state.indices
}

// Stride returns the size of one vertex in bytes.
func (g *GeometryBuffer) Stride() int32 {
	if !g.Ready() {
		return 0
	}
	return g.state.stride
}

// Attributes returns the vertex layout.
func (g *GeometryBuffer) Attributes() []VertexAttribute {
	if !g.Ready() {
		return nil
	}
	return append([]VertexAttribute(nil), g.state.attributes...)
}

// Bind makes the vertex array active.
func (g *GeometryBuffer) Bind() error {
	if !g.Ready() {
		return ErrNotReady
	}
	g.ctx.api.BindVertexArray(g.state.vao)
	return nil
}

// Draw binds the vertex array and draws every index as triangles.
func (g *GeometryBuffer) Draw() error {
	if err := g.Bind(); err != nil {
		return err
	}
	g.ctx.api.DrawElements(g.state.indices)
	return nil
}

// Unload implements gfx.Resource
func (g *GeometryBuffer) Unload() {
	if !g.Ready() {
		return
	}
	untrack(g.state)

	api := g.ctx.api
	if g.state.vbo != 0 {
		api.DeleteBuffers(g.state.vbo)
	}
	if g.state.ebo != 0 {
		api.DeleteBuffers(g.state.ebo)
	}
	if g.state.vao != 0 {
		api.DeleteVertexArrays(g.state.vao)
	}
	g.state = nil
}

// Move hands the buffers over to a new owner and leaves g empty.
func (g *GeometryBuffer) Move() *GeometryBuffer {
	if g == nil {
		return &GeometryBuffer{}
	}
	moved := &GeometryBuffer{ctx: g.ctx, state: g.state}
	g.state = nil
	return moved
}

// Assign releases whatever g owns and takes over the buffers of src,
// leaving src empty.
func (g *GeometryBuffer) Assign(src *GeometryBuffer) {
	if g == src {
		return
	}
	g.Unload()
	if src == nil {
		return
	}
	g.ctx, g.state = src.ctx, src.state
	src.state = nil
}
