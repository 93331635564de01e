// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene

import (
	"errors"
	"io/fs"
	"time"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/geometry"
	"github.com/devblok/glscenes/gfx"
	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/model"
	glm "github.com/go-gl/mathgl/mgl32"
)

// CubeModel is the model drawn by the uniforms scene. A procedural cube
// is used when the content has none.
const CubeModel = "models/cube.dae"

// Placement is where the uniforms scene puts one of its objects.
type Placement struct {
	Position glm.Vec3
	Scale    float32

	// Angle in degrees and the speed it changes with, per second.
	Angle float32
	Speed float32
}

// Uniforms draws one mesh twice, each with its own transform uniform.
type Uniforms struct {
	Placements [2]Placement

	api      glr.API
	shader   *glr.ShaderProgram
	geometry *glr.GeometryBuffer
	objects  [2]*model.Model
	uniform  model.Uniform
	aspect   float32

	transform, projection int32
}

// NewUniforms creates the scene with two rotating objects side by side.
func NewUniforms() *Uniforms {
	return &Uniforms{
		Placements: [2]Placement{
			{Position: glm.Vec3{-0.75, 0, 0}, Scale: 0.5, Speed: 45},
			{Position: glm.Vec3{0.75, 0, 0}, Scale: 0.5, Speed: -30},
		},
		aspect: 1,
	}
}

// Name implements Scene
func (u *Uniforms) Name() string {
	return "uniforms"
}

// loadMesh imports the cube model, coloring every face by its normal.
func loadMesh(src content.Source) (geometry.Mesh, error) {
	data, err := content.LoadBytes(src, CubeModel)
	if errors.Is(err, fs.ErrNotExist) {
		return geometry.Cube(1, geometry.Position|geometry.Color), nil
	} else if err != nil {
		return geometry.Mesh{}, err
	}

	imported, err := model.ImportCollada(data)
	if err != nil {
		return geometry.Mesh{}, err
	}
	mesh := imported.Mesh()
	if mesh.Attrs.Has(geometry.Normal) {
		for i, v := range mesh.Vertices {
			mesh.Vertices[i].Color = glm.Vec3{abs(v.Normal[0]), abs(v.Normal[1]), abs(v.Normal[2])}
		}
	}
	return mesh, nil
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Load implements Scene
func (u *Uniforms) Load(env Environment) error {
	mesh, err := loadMesh(env.Content)
	if err != nil {
		return err
	}

	shader, err := content.LoadProgram(env.Context, env.Content, "shaders/uniforms", []string{"transform", "projection"})
	if err != nil {
		return err
	}
	u.api = env.Context.API()
	u.shader = shader
	locations := shader.Uniforms()
	u.transform, u.projection = locations[0], locations[1]

	// the shader reads positions and colors only
	mesh.Attrs = geometry.Position | geometry.Color
	u.geometry = mesh.Upload(env.Context)
	for i := range u.objects {
		u.objects[i] = model.New(mesh)
	}

	u.Resize(env.Width, env.Height)
	u.Update(0)
	return nil
}

// Resize implements Resizer
func (u *Uniforms) Resize(width, height int32) {
	u.aspect = Environment{Width: width, Height: height}.Aspect()
}

// Update implements Scene
func (u *Uniforms) Update(delta time.Duration) {
	u.uniform.Projection = glm.Ortho(-2*u.aspect, 2*u.aspect, -2, 2, -10, 10)

	axis := glm.Vec3{1, 1, 0}.Normalize()
	for i := range u.Placements {
		p := &u.Placements[i]
		p.Angle += p.Speed * float32(delta.Seconds())
		for p.Angle >= 360 {
			p.Angle -= 360
		}
		for p.Angle <= -360 {
			p.Angle += 360
		}

		if u.objects[i] == nil {
			continue
		}
		u.objects[i].SetPosition(glm.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
			Mul4(glm.Scale3D(p.Scale, p.Scale, p.Scale)))
		u.objects[i].SetRotation(glm.HomogRotate3D(glm.DegToRad(p.Angle), axis))
	}
}

// Render implements Scene
func (u *Uniforms) Render() {
	if err := u.shader.Use(); err != nil {
		return
	}
	api := u.api
	api.Enable(glr.DepthTest)
	defer api.Disable(glr.DepthTest)

	for _, obj := range u.objects {
		u.uniform.Model = obj.Transform()
		api.UniformMatrix4f(u.projection, u.uniform.Projection)
		api.UniformMatrix4f(u.transform, u.uniform.Model)
		u.geometry.Draw()
	}
}

// Unload implements Scene
func (u *Uniforms) Unload() {
	gfx.UnloadAll(u.shader, u.geometry)
	u.objects = [2]*model.Model{}
}
