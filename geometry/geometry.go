// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package geometry generates simple meshes and describes their
// vertex layout for the graphics context.
package geometry

import (
	"unsafe"

	"github.com/devblok/glscenes/gfx/glr"
	glm "github.com/go-gl/mathgl/mgl32"
)

// Attr is a set of vertex attributes.
type Attr uint

// Vertex attributes
const (
	Position Attr = 1 << iota
	UV
	Normal
	Color

	All = Position | UV | Normal | Color
)

// Has reports whether every attribute of o is in a.
func (a Attr) Has(o Attr) bool {
	return a&o == o
}

// Vertex holds every attribute a generated mesh can carry. Attributes
// that were not requested are left zero.
type Vertex struct {
	Position glm.Vec3
	UV       glm.Vec2
	Normal   glm.Vec3
	Color    glm.Vec3
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Attrs    Attr
}

// Layout describes the attributes in attrs at consecutive shader
// locations, in the order position, uv, normal, color.
func Layout(attrs Attr) []glr.VertexAttribute {
	var (
		layout   []glr.VertexAttribute
		location uint32
	)
	add := func(attr Attr, components int32, offset uintptr) {
		if !attrs.Has(attr) {
			return
		}
		layout = append(layout, glr.VertexAttribute{
			Location:   location,
			Components: components,
			Type:       glr.Float,
			Offset:     offset,
		})
		location++
	}

	add(Position, 3, unsafe.Offsetof(Vertex{}.Position))
	add(UV, 2, unsafe.Offsetof(Vertex{}.UV))
	add(Normal, 3, unsafe.Offsetof(Vertex{}.Normal))
	add(Color, 3, unsafe.Offsetof(Vertex{}.Color))
	return layout
}

// Upload creates a geometry buffer holding m.
func (m Mesh) Upload(ctx *glr.Context) *glr.GeometryBuffer {
	return glr.NewGeometryBuffer(ctx, m.Vertices, m.Indices, Layout(m.Attrs))
}

var (
	faceUVs = [4]glm.Vec2{
		{0, 0},
		{0, 1},
		{1, 1},
		{1, 0},
	}
	cornerColors = [4]glm.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 0},
	}
	faceIndices = [6]uint32{0, 1, 2, 2, 3, 0}
)

func face(corners [4]glm.Vec3, normal glm.Vec3, attrs Attr) []Vertex {
	vertices := make([]Vertex, 4)
	for i := range vertices {
		if attrs.Has(Position) {
			vertices[i].Position = corners[i]
		}
		if attrs.Has(UV) {
			vertices[i].UV = faceUVs[i]
		}
		if attrs.Has(Normal) {
			vertices[i].Normal = normal
		}
		if attrs.Has(Color) {
			vertices[i].Color = cornerColors[i]
		}
	}
	return vertices
}

// Quad returns a square of the given side length facing the viewer,
// centered on the origin.
func Quad(size float32, attrs Attr) Mesh {
	h := size / 2
	corners := [4]glm.Vec3{
		{-h, -h, 0},
		{-h, h, 0},
		{h, h, 0},
		{h, -h, 0},
	}
	return Mesh{
		Vertices: face(corners, glm.Vec3{0, 0, 1}, attrs),
		Indices:  append([]uint32(nil), faceIndices[:]...),
		Attrs:    attrs,
	}
}

// Cube returns a cube of the given side length centered on the origin.
// Each face has its own four vertices so normals and texture
// coordinates stay per face.
func Cube(size float32, attrs Attr) Mesh {
	h := size / 2
	faces := []struct {
		corners [4]glm.Vec3
		normal  glm.Vec3
	}{
		{[4]glm.Vec3{{-h, -h, h}, {-h, h, h}, {h, h, h}, {h, -h, h}}, glm.Vec3{0, 0, 1}},
		{[4]glm.Vec3{{h, -h, h}, {h, h, h}, {h, h, -h}, {h, -h, -h}}, glm.Vec3{1, 0, 0}},
		{[4]glm.Vec3{{h, -h, -h}, {h, h, -h}, {-h, h, -h}, {-h, -h, -h}}, glm.Vec3{0, 0, -1}},
		{[4]glm.Vec3{{-h, -h, -h}, {-h, h, -h}, {-h, h, h}, {-h, -h, h}}, glm.Vec3{-1, 0, 0}},
		{[4]glm.Vec3{{-h, h, h}, {-h, h, -h}, {h, h, -h}, {h, h, h}}, glm.Vec3{0, 1, 0}},
		{[4]glm.Vec3{{-h, -h, -h}, {-h, -h, h}, {h, -h, h}, {h, -h, -h}}, glm.Vec3{0, -1, 0}},
	}

	mesh := Mesh{Attrs: attrs}
	for i, f := range faces {
		mesh.Vertices = append(mesh.Vertices, face(f.corners, f.normal, attrs)...)
		for _, idx := range faceIndices {
			mesh.Indices = append(mesh.Indices, uint32(4*i)+idx)
		}
	}
	return mesh
}
