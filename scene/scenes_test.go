// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/gfx/glr/gltest"
	"github.com/devblok/glscenes/scene"
)

// hidden is a source without the files under prefix.
type hidden struct {
	content.Source
	prefix string
}

func (h hidden) Open(name string) (io.ReadCloser, error) {
	if strings.HasPrefix(name, h.prefix) {
		return nil, &content.FileNotFoundError{Name: name}
	}
	return h.Source.Open(name)
}

func assertNoLeaks(c *qt.C, api *gltest.API) {
	c.Helper()
	c.Assert(api.LiveTotal(), qt.Equals, 0)
	c.Assert(api.DoubleFrees(), qt.HasLen, 0)
}

func TestAllScenes(t *testing.T) {
	draws := map[string]int{
		"triangle": 1,
		"uniforms": 2,
		"textures": 2,
		"passes":   2,
	}

	for _, s := range scene.All() {
		s := s
		t.Run(s.Name(), func(t *testing.T) {
			c := qt.New(t)
			env, api := newEnvironment(content.Dir("../assets"))

			c.Assert(s.Load(env), qt.IsNil)
			c.Assert(api.LiveTotal() > 0, qt.IsTrue)

			s.Update(16 * time.Millisecond)
			s.Render()
			c.Assert(api.Draws(), qt.HasLen, draws[s.Name()])

			s.Unload()
			assertNoLeaks(c, api)

			// scenes can be loaded again after unloading
			c.Assert(s.Load(env), qt.IsNil)
			s.Unload()
			assertNoLeaks(c, api)
		})
	}
}

func TestAllScenesFromBox(t *testing.T) {
	c := qt.New(t)
	for _, s := range scene.All() {
		env, api := newEnvironment(scene.Assets)
		c.Assert(s.Load(env), qt.IsNil, qt.Commentf("scene %s", s.Name()))
		s.Unload()
		assertNoLeaks(c, api)
	}
}

func TestTriangleDraw(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))

	s := &scene.Triangle{}
	c.Assert(s.Load(env), qt.IsNil)
	defer s.Unload()

	s.Render()
	draw := api.Draws()[0]
	c.Assert(draw.Count, qt.Equals, int32(3))
	c.Assert(draw.Framebuffer, qt.Equals, uint32(0))
	c.Assert(api.EnabledAttributes(draw.VertexArray), qt.Equals, 2)
}

func TestTriangleMissingShader(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(hidden{content.Dir("../assets"), "shaders/triangle"})

	s := &scene.Triangle{}
	err := s.Load(env)
	var notFound *content.FileNotFoundError
	c.Assert(errors.As(err, &notFound), qt.IsTrue)
	assertNoLeaks(c, api)
}

func TestUniforms(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))

	s := scene.NewUniforms()
	c.Assert(s.Load(env), qt.IsNil)
	defer s.Unload()

	s.Update(time.Second)
	c.Assert(s.Placements[0].Angle, qt.Equals, float32(45))
	c.Assert(s.Placements[1].Angle, qt.Equals, float32(-30))

	s.Render()
	draws := api.Draws()
	c.Assert(draws, qt.HasLen, 2)
	for _, d := range draws {
		c.Assert(d.Count, qt.Equals, int32(36))
	}
	c.Assert(api.Enabled(glr.DepthTest), qt.IsFalse)

	program := draws[1].Program
	transform, ok := api.UniformValue(program, 0)
	c.Assert(ok, qt.IsTrue)
	c.Assert(transform.(glm.Mat4).Col(3), qt.Equals, glm.Vec4{0.75, 0, 0, 1})
}

func TestUniformsWithoutModel(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(hidden{content.Dir("../assets"), "models/"})

	s := scene.NewUniforms()
	c.Assert(s.Load(env), qt.IsNil)
	s.Render()
	c.Assert(api.Draws()[0].Count, qt.Equals, int32(36))
	s.Unload()
	assertNoLeaks(c, api)
}

func TestTextures(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))

	s := scene.NewTextures()
	c.Assert(s.Load(env), qt.IsNil)
	defer s.Unload()

	c.Assert(api.Live(gltest.Texture), qt.Equals, 2)

	s.Update(time.Second)
	c.Assert(s.Mappings[1].Angle, qt.Equals, float32(20))

	s.Render()
	draws := api.Draws()
	c.Assert(draws, qt.HasLen, 2)
	c.Assert(draws[0].Count, qt.Equals, int32(6))

	sampler, ok := api.UniformValue(draws[1].Program, 3)
	c.Assert(ok, qt.IsTrue)
	c.Assert(sampler, qt.Equals, int32(1))

	mapping, ok := api.UniformValue(draws[1].Program, 2)
	c.Assert(ok, qt.IsTrue)
	c.Assert(mapping, qt.Equals, s.Mappings[1].Matrix())
}

func TestTexturesFallback(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(hidden{content.Dir("../assets"), "textures/"})

	s := scene.NewTextures()
	c.Assert(s.Load(env), qt.IsNil)
	c.Assert(api.Live(gltest.Texture), qt.Equals, 2)
	s.Unload()
	assertNoLeaks(c, api)
}

func TestUVMapping(t *testing.T) {
	c := qt.New(t)

	identity := scene.UVMapping{Scale: glm.Vec2{1, 1}}
	c.Assert(identity.Matrix(), qt.Equals, glm.Ident3())

	m := scene.UVMapping{Offset: glm.Vec2{0.5, 0}, Scale: glm.Vec2{2, 2}}
	uv := m.Matrix().Mul3x1(glm.Vec3{1, 1, 1})
	c.Assert(uv, qt.Equals, glm.Vec3{2.5, 2, 1})
}

func TestPasses(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))

	s := scene.NewPasses()
	c.Assert(s.Load(env), qt.IsNil)
	defer s.Unload()

	c.Assert(s.Resolution(), qt.Equals, "800x600")
	frame := s.Frame().ID()

	s.Render()
	draws := api.Draws()
	c.Assert(draws, qt.HasLen, 2)
	c.Assert(draws[0].Framebuffer, qt.Equals, frame)
	c.Assert(draws[0].Count, qt.Equals, int32(3))
	c.Assert(draws[1].Framebuffer, qt.Equals, uint32(0))
	c.Assert(draws[1].Count, qt.Equals, int32(6))
	c.Assert(api.ViewportState(), qt.Equals, [4]int32{0, 0, 800, 600})

	tex, ok := api.Texture(s.Frame().Texture(0))
	c.Assert(ok, qt.IsTrue)
	c.Assert(tex.Params[glr.TextureMagFilter], qt.Equals, int32(glr.Nearest))

	s.SetFiltering(true)
	s.Render()
	tex, _ = api.Texture(s.Frame().Texture(0))
	c.Assert(tex.Params[glr.TextureMagFilter], qt.Equals, int32(glr.Linear))
}

func TestPassesRebuild(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))

	s := scene.NewPasses()
	c.Assert(s.Load(env), qt.IsNil)
	old := s.Frame().ID()

	c.Assert(s.SetScale(2), qt.IsNil)
	c.Assert(s.Scale(), qt.Equals, float32(0.5))
	c.Assert(s.Resolution(), qt.Equals, "400x300")
	c.Assert(api.IsLive(gltest.Framebuffer, old), qt.IsFalse)
	c.Assert(api.Live(gltest.Framebuffer), qt.Equals, 1)

	s.Resize(1000, 500)
	c.Assert(s.Resolution(), qt.Equals, "500x250")
	c.Assert(api.Live(gltest.Framebuffer), qt.Equals, 1)
	c.Assert(api.Live(gltest.Renderbuffer), qt.Equals, 1)

	c.Assert(s.SetScale(len(scene.PassScales)), qt.IsNotNil)

	s.Unload()
	assertNoLeaks(c, api)
}

func TestPassesIncompleteFrameBuffer(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))
	api.FramebufferStatus = glr.FramebufferUnsupported

	s := scene.NewPasses()
	err := s.Load(env)
	var incomplete *glr.IncompleteFrameBufferError
	c.Assert(errors.As(err, &incomplete), qt.IsTrue)
	c.Assert(incomplete.Status, qt.Equals, glr.FramebufferUnsupported)
	assertNoLeaks(c, api)
}

func TestPassesResizeFailureStopsRendering(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))

	s := scene.NewPasses()
	c.Assert(s.Load(env), qt.IsNil)
	defer s.Unload()

	api.FramebufferStatus = glr.FramebufferUnsupported
	s.Resize(640, 480)
	c.Assert(s.Frame().Ready(), qt.IsFalse)

	s.Render()
	c.Assert(api.Draws(), qt.HasLen, 0)

	api.FramebufferStatus = 0
	s.Resize(320, 240)
	s.Render()
	c.Assert(api.Draws(), qt.HasLen, 2)
}

func TestPassesMinimizedAtLoad(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))
	env.Width, env.Height = 0, 0

	s := scene.NewPasses()
	c.Assert(s.Load(env), qt.IsNil)
	c.Assert(s.Frame().Ready(), qt.IsFalse)
	c.Assert(api.Live(gltest.Framebuffer), qt.Equals, 0)

	s.Render()
	c.Assert(api.Draws(), qt.HasLen, 0)

	s.Resize(800, 600)
	c.Assert(s.Resolution(), qt.Equals, "800x600")
	s.Render()
	c.Assert(api.Draws(), qt.HasLen, 2)

	s.Unload()
	assertNoLeaks(c, api)
}

func TestSceneProgramError(t *testing.T) {
	c := qt.New(t)
	env, api := newEnvironment(content.Dir("../assets"))
	api.CompileFailure = func(stage glr.ShaderStage, source string) string {
		if strings.Contains(source, "frame_texture") {
			return "0:1(1): error: broken sampler"
		}
		return ""
	}

	s := scene.NewPasses()
	err := s.Load(env)
	var compile *glr.CompileError
	c.Assert(errors.As(err, &compile), qt.IsTrue)
	c.Assert(compile.Stage, qt.Equals, glr.FragmentStage)
	assertNoLeaks(c, api)
}
