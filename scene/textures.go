// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"time"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/geometry"
	"github.com/devblok/glscenes/gfx"
	"github.com/devblok/glscenes/gfx/glr"
	glm "github.com/go-gl/mathgl/mgl32"
)

// TextureFiles are sampled by the two quads of the textures scene.
var TextureFiles = [2]string{"textures/box_1.png", "textures/box_2.png"}

// UVMapping transforms the texture coordinates of one quad.
type UVMapping struct {
	Offset glm.Vec2
	Scale  glm.Vec2

	// Angle in degrees and the speed it changes with, per second.
	Angle float32
	Speed float32
}

// Matrix returns the mapping as a homogeneous 2D transform, scaling
// first and rotating last.
func (m UVMapping) Matrix() glm.Mat3 {
	return glm.HomogRotate2D(glm.DegToRad(m.Angle)).
		Mul3(glm.Translate2D(m.Offset[0], m.Offset[1])).
		Mul3(glm.Scale2D(m.Scale[0], m.Scale[1]))
}

// Textures draws two textured quads with animated texture coordinates.
type Textures struct {
	Mappings [2]UVMapping

	api        glr.API
	shader     *glr.ShaderProgram
	geometry   *glr.GeometryBuffer
	textures   [2]*glr.Texture2D
	transforms [2]glm.Mat4
	projection glm.Mat4
	aspect     float32

	uniforms struct {
		transform, projection, mapping, sampler int32
	}
}

// NewTextures creates the scene with the second quad slowly rotating
// its texture.
func NewTextures() *Textures {
	return &Textures{
		Mappings: [2]UVMapping{
			{Scale: glm.Vec2{1, 1}},
			{Scale: glm.Vec2{2, 2}, Speed: 20},
		},
		transforms: [2]glm.Mat4{
			glm.Translate3D(-1.25, 0, 0),
			glm.Translate3D(1.25, 0, 0),
		},
		aspect: 1,
	}
}

// Name implements Scene
func (t *Textures) Name() string {
	return "textures"
}

// Checker returns a checkerboard of size by size cells.
func Checker(size, cell int, a, b color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

// Load implements Scene
func (t *Textures) Load(env Environment) (err error) {
	defer func() {
		if err != nil {
			t.Unload()
		}
	}()

	t.api = env.Context.API()
	t.shader, err = content.LoadProgram(env.Context, env.Content, "shaders/textures",
		[]string{"transform", "projection", "texture_mapping", "texture_sampler"})
	if err != nil {
		return err
	}
	t.uniforms.transform = t.shader.Uniform("transform")
	t.uniforms.projection = t.shader.Uniform("projection")
	t.uniforms.mapping = t.shader.Uniform("texture_mapping")
	t.uniforms.sampler = t.shader.Uniform("texture_sampler")

	loader := content.TextureLoader{
		Context: env.Context,
		Source:  env.Content,
		Filter:  glr.LinearMipmapLinear,
		Space:   glr.SpaceRGBA,
		Mips:    true,
	}
	fallback := [2]image.Image{
		Checker(64, 8, color.White, color.Black),
		Checker(64, 16, color.NRGBA{200, 60, 60, 255}, color.NRGBA{60, 60, 200, 255}),
	}
	for i, name := range TextureFiles {
		tex, err := loader.LoadTexture(name)
		if errors.Is(err, fs.ErrNotExist) {
			tex = glr.NewTexture2DFromImage(env.Context, fallback[i], loader.Filter, loader.Space, loader.Mips)
		} else if err != nil {
			return err
		}
		t.textures[i] = tex
	}

	t.geometry = geometry.Quad(2, geometry.Position|geometry.UV).Upload(env.Context)

	t.Resize(env.Width, env.Height)
	return nil
}

// Resize implements Resizer
func (t *Textures) Resize(width, height int32) {
	t.aspect = Environment{Width: width, Height: height}.Aspect()
	t.projection = glm.Ortho2D(-2*t.aspect, 2*t.aspect, -2, 2)
}

// Update implements Scene
func (t *Textures) Update(delta time.Duration) {
	for i := range t.Mappings {
		m := &t.Mappings[i]
		m.Angle += m.Speed * float32(delta.Seconds())
		for m.Angle >= 360 {
			m.Angle -= 360
		}
	}
}

// Render implements Scene
func (t *Textures) Render() {
	if err := t.shader.Use(); err != nil {
		return
	}
	t.api.UniformMatrix4f(t.uniforms.projection, t.projection)
	for i, tex := range t.textures {
		unit := uint32(i)
		if err := tex.Bind(unit); err != nil {
			continue
		}
		t.api.UniformMatrix4f(t.uniforms.transform, t.transforms[i])
		t.api.UniformMatrix3f(t.uniforms.mapping, t.Mappings[i].Matrix())
		t.api.Uniform1i(t.uniforms.sampler, int32(unit))
		t.geometry.Draw()

		t.api.ActiveTexture(unit)
		t.api.BindTexture(0)
	}
}

// Unload implements Scene
func (t *Textures) Unload() {
	gfx.UnloadAll(t.shader, t.geometry, t.textures[0], t.textures[1])
}
