// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene

import (
	"time"
	"unsafe"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/gfx"
	"github.com/devblok/glscenes/gfx/glr"
	glm "github.com/go-gl/mathgl/mgl32"
)

// colorVertex is a position with a color.
type colorVertex struct {
	Position glm.Vec3
	Color    glm.Vec3
}

var colorVertexLayout = []glr.VertexAttribute{
	{Location: 0, Components: 3, Type: glr.Float, Offset: unsafe.Offsetof(colorVertex{}.Position)},
	{Location: 1, Components: 3, Type: glr.Float, Offset: unsafe.Offsetof(colorVertex{}.Color)},
}

// newColorTriangle uploads a triangle with a red, a green and a blue corner.
func newColorTriangle(ctx *glr.Context) *glr.GeometryBuffer {
	return glr.NewGeometryBuffer(ctx, []colorVertex{
		{glm.Vec3{-1, -1, 0}, glm.Vec3{1, 0, 0}},
		{glm.Vec3{0, 1, 0}, glm.Vec3{0, 1, 0}},
		{glm.Vec3{1, -1, 0}, glm.Vec3{0, 0, 1}},
	}, []uint32{0, 1, 2}, colorVertexLayout)
}

// Triangle draws a single colored triangle without any uniforms.
type Triangle struct {
	shader   *glr.ShaderProgram
	geometry *glr.GeometryBuffer
}

// Name implements Scene
func (t *Triangle) Name() string {
	return "triangle"
}

// Load implements Scene
func (t *Triangle) Load(env Environment) error {
	shader, err := content.LoadProgram(env.Context, env.Content, "shaders/triangle", nil)
	if err != nil {
		return err
	}
	t.shader = shader
	t.geometry = newColorTriangle(env.Context)
	return nil
}

// Update implements Scene
func (t *Triangle) Update(time.Duration) {}

// Render implements Scene
func (t *Triangle) Render() {
	if err := t.shader.Use(); err != nil {
		return
	}
	t.geometry.Draw()
}

// Unload implements Scene
func (t *Triangle) Unload() {
	gfx.UnloadAll(t.shader, t.geometry)
}
