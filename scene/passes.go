// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene

import (
	"fmt"
	"time"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/geometry"
	"github.com/devblok/glscenes/gfx"
	"github.com/devblok/glscenes/gfx/glr"
	log "github.com/sirupsen/logrus"
)

// PassScales are the offscreen resolutions the passes scene offers,
// relative to the window.
var PassScales = []float32{1.0, 0.75, 0.5, 0.25, 0.1}

// Passes renders a triangle into an offscreen framebuffer and then
// draws that framebuffer over the whole window.
type Passes struct {
	api  glr.API
	ctx  *glr.Context
	size [2]int32

	primary, secondary              *glr.ShaderProgram
	primaryGeometry, fullscreenQuad *glr.GeometryBuffer
	frame                           *glr.FrameBuffer
	frameTexture                    int32

	scale     int
	filtering bool
	render    bool
}

// NewPasses creates the scene rendering at full resolution.
func NewPasses() *Passes {
	return &Passes{
		frame: &glr.FrameBuffer{},
	}
}

// Name implements Scene
func (p *Passes) Name() string {
	return "passes"
}

// Load implements Scene
func (p *Passes) Load(env Environment) (err error) {
	defer func() {
		if err != nil {
			p.Unload()
		}
	}()

	p.api, p.ctx = env.Context.API(), env.Context
	p.size = [2]int32{env.Width, env.Height}

	p.primary, err = content.LoadProgram(env.Context, env.Content, "shaders/primary", nil)
	if err != nil {
		return err
	}
	p.secondary, err = content.LoadProgram(env.Context, env.Content, "shaders/secondary", []string{"frame_texture"})
	if err != nil {
		return err
	}
	p.frameTexture = p.secondary.Uniform("frame_texture")

	p.primaryGeometry = newColorTriangle(env.Context)
	p.fullscreenQuad = geometry.Quad(2, geometry.Position|geometry.UV).Upload(env.Context)

	return p.rebuild()
}

// Scale returns the offscreen resolution relative to the window.
func (p *Passes) Scale() float32 {
	return PassScales[p.scale]
}

// SetScale selects one of PassScales and rebuilds the framebuffer.
func (p *Passes) SetScale(i int) error {
	if i < 0 || i >= len(PassScales) {
		return fmt.Errorf("SetScale(%d): no such scale", i)
	}
	if i == p.scale {
		return nil
	}
	p.scale = i
	if p.ctx == nil {
		return nil
	}
	return p.rebuild()
}

// Filtering reports whether the offscreen image is sampled linearly.
func (p *Passes) Filtering() bool {
	return p.filtering
}

// SetFiltering switches between linear and nearest sampling of the
// offscreen image.
func (p *Passes) SetFiltering(on bool) {
	p.filtering = on
}

// Resolution returns the size of the offscreen framebuffer.
func (p *Passes) Resolution() string {
	return fmt.Sprintf("%dx%d", p.frame.Width(), p.frame.Height())
}

// Frame returns the offscreen framebuffer.
func (p *Passes) Frame() *glr.FrameBuffer {
	return p.frame
}

// Resize implements Resizer
func (p *Passes) Resize(width, height int32) {
	if p.size == [2]int32{width, height} {
		return
	}
	p.size = [2]int32{width, height}
	if err := p.rebuild(); err != nil {
		log.WithError(err).WithField("scene", p.Name()).Error("offscreen framebuffer not rebuilt")
	}
}

// rebuild replaces the offscreen framebuffer with one matching the
// current window size and scale. Rendering stops until it succeeds. A
// window too small for any pixel at this scale, a minimized one for
// example, leaves rendering off until the next resize.
func (p *Passes) rebuild() error {
	p.render = false
	if p.frame == nil {
		p.frame = &glr.FrameBuffer{}
	}
	p.frame.Unload()

	scale := PassScales[p.scale]
	width := int32(float32(p.size[0]) * scale)
	height := int32(float32(p.size[1]) * scale)
	if width <= 0 || height <= 0 {
		return nil
	}

	frame, err := glr.NewFrameBuffer(p.ctx, width, height,
		[]glr.TextureAttachment{glr.DefaultTextureAttachment()},
		[]glr.RenderTargetAttachment{glr.DefaultRenderTargetAttachment()})
	if err != nil {
		return fmt.Errorf("rebuild(): %w", err)
	}
	p.frame.Assign(frame)
	p.render = p.frame.Ready()
	return nil
}

// Update implements Scene
func (p *Passes) Update(time.Duration) {}

// Render implements Scene
func (p *Passes) Render() {
	if !p.render {
		return
	}

	p.frame.Bind()
	p.api.Clear(glr.ColorBufferBit | glr.DepthBufferBit)
	p.primary.Use()
	p.primaryGeometry.Draw()

	p.api.BindFramebuffer(0)
	p.api.Viewport(0, 0, p.size[0], p.size[1])
	p.api.Clear(glr.ColorBufferBit | glr.DepthBufferBit)

	p.frame.BindTexture(0, 0)
	filter := glr.Nearest
	if p.filtering {
		filter = glr.Linear
	}
	p.api.TexParameteri(glr.TextureMinFilter, int32(filter))
	p.api.TexParameteri(glr.TextureMagFilter, int32(filter))

	p.secondary.Use()
	p.api.Uniform1i(p.frameTexture, 0)
	p.fullscreenQuad.Draw()

	p.api.ActiveTexture(0)
	p.api.BindTexture(0)
}

// Unload implements Scene
func (p *Passes) Unload() {
	p.render = false
	gfx.UnloadAll(p.primary, p.secondary, p.primaryGeometry, p.fullscreenQuad, p.frame)
}
