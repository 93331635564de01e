// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"github.com/devblok/glscenes/gfx"
)

var _ gfx.Resource = (*FrameBuffer)(nil)

// TextureAttachment describes a texture the framebuffer renders into
// and that shaders can sample afterwards.
type TextureAttachment struct {
	InternalFormat InternalFormat
	Format         PixelFormat
	Binding        Attachment
	Filter         Filter
}

// DefaultTextureAttachment returns an RGBA color attachment at binding 0.
func DefaultTextureAttachment() TextureAttachment {
	return TextureAttachment{
		InternalFormat: RGBA,
		Format:         RGBAPixels,
		Binding:        ColorAttachment0,
		Filter:         Nearest,
	}
}

// RenderTargetAttachment describes write-only storage, typically
// depth and stencil.
type RenderTargetAttachment struct {
	InternalFormat InternalFormat
	Binding        Attachment
}

// DefaultRenderTargetAttachment returns a combined depth stencil target.
func DefaultRenderTargetAttachment() RenderTargetAttachment {
	return RenderTargetAttachment{
		InternalFormat: Depth32FStencil8,
		Binding:        DepthStencilAttachment,
	}
}

type framebuffer struct {
	id            uint32
	width, height int32

	textures        []uint32
	textureBindings []Attachment
	targets         []uint32
	targetBindings  []Attachment
}

func (f *framebuffer) handles() map[handleKind][]uint32 {
	return map[handleKind][]uint32{
		textureHandle:      f.textures,
		renderbufferHandle: f.targets,
		framebufferHandle:  {f.id},
	}
}

func (f *framebuffer) release(api API) {
	if len(f.textures) > 0 {
		api.DeleteTextures(f.textures...)
	}
	if len(f.targets) > 0 {
		api.DeleteRenderbuffers(f.targets...)
	}
	if f.id != 0 {
		api.DeleteFramebuffers(f.id)
	}
}

// FrameBuffer owns an offscreen framebuffer together with every
// attachment it created.
type FrameBuffer struct {
	noCopy noCopy

	ctx   *Context
	state *framebuffer
}

// NewFrameBuffer creates a framebuffer of the given size with one texture
// per entry of textures and one renderbuffer per entry of targets. Draw
// buffers are set to the texture bindings in order.
//
// With both lists empty nothing is allocated and the returned
// FrameBuffer is not ready. If the driver reports the result as
// incomplete, everything is released again and an
// *IncompleteFrameBufferError is returned. A handle the driver could not
// allocate gives an *AllocationError the same way.
func NewFrameBuffer(ctx *Context, width, height int32, textures []TextureAttachment, targets []RenderTargetAttachment) (*FrameBuffer, error) {
	if len(textures) == 0 && len(targets) == 0 {
		return &FrameBuffer{ctx: ctx}, nil
	}

	api := ctx.api
	state := &framebuffer{
		width:  width,
		height: height,
	}

	state.id = api.GenFramebuffer()
	if state.id == 0 {
		return nil, &AllocationError{Object: "framebuffer"}
	}
	api.BindFramebuffer(state.id)

	fail := func(object string) (*FrameBuffer, error) {
		api.BindTexture(0)
		api.BindRenderbuffer(0)
		api.BindFramebuffer(0)
		state.release(api)
		return nil, &AllocationError{Object: object}
	}

	for _, t := range textures {
		tex := api.GenTexture()
		if tex == 0 {
			return fail("framebuffer texture")
		}
		api.BindTexture(tex)
		api.TexImage2D(t.InternalFormat, width, height, t.Format, FloatData, nil)
		api.TexParameteri(TextureMinFilter, int32(t.Filter))
		api.TexParameteri(TextureMagFilter, int32(t.Filter))
		api.TexParameteri(TextureWrapS, int32(ClampToEdge))
		api.TexParameteri(TextureWrapT, int32(ClampToEdge))
		api.FramebufferTexture2D(t.Binding, tex)

		state.textures = append(state.textures, tex)
		state.textureBindings = append(state.textureBindings, t.Binding)
	}
	api.BindTexture(0)

	for _, t := range targets {
		rb := api.GenRenderbuffer()
		if rb == 0 {
			return fail("renderbuffer")
		}
		api.BindRenderbuffer(rb)
		api.RenderbufferStorage(t.InternalFormat, width, height)
		api.FramebufferRenderbuffer(t.Binding, rb)

		state.targets = append(state.targets, rb)
		state.targetBindings = append(state.targetBindings, t.Binding)
	}
	api.BindRenderbuffer(0)

	api.DrawBuffers(state.textureBindings)

	status := api.CheckFramebufferStatus()
	api.BindFramebuffer(0)

	if status != FramebufferComplete {
		state.release(api)

		formats := make([]InternalFormat, 0, len(textures)+len(targets))
		for _, t := range textures {
			formats = append(formats, t.InternalFormat)
		}
		for _, t := range targets {
			formats = append(formats, t.InternalFormat)
		}
		return nil, &IncompleteFrameBufferError{
			Status:  status,
			Width:   width,
			Height:  height,
			Formats: formats,
		}
	}

	track(ctx, state, "framebuffer", (*framebuffer).handles)

	return &FrameBuffer{
		ctx:   ctx,
		state: state,
	}, nil
}

// Ready implements gfx.Resource
func (f *FrameBuffer) Ready() bool {
	return f != nil && f.state != nil
}

// ID returns the framebuffer handle.
func (f *FrameBuffer) ID() uint32 {
	if !f.Ready() {
		return 0
	}
	return f.state.id
}

// Width returns the width of every attachment.
func (f *FrameBuffer) Width() int32 {
	if !f.Ready() {
		return 0
	}
	return f.state.width
}

// Height returns the height of every attachment.
func (f *FrameBuffer) Height() int32 {
	if !f.Ready() {
		return 0
	}
	return f.state.height
}

// TextureAttachments returns the texture handles in creation order.
func (f *FrameBuffer) TextureAttachments() []uint32 {
	if !f.Ready() {
		return nil
	}
	return append([]uint32(nil), f.state.textures...)
}

// RenderTargetAttachments returns the renderbuffer handles in
// creation order.
func (f *FrameBuffer) RenderTargetAttachments() []uint32 {
	if !f.Ready() {
		return nil
	}
	return append([]uint32(nil), f.state.targets...)
}

// DrawBuffers returns the attachments fragment outputs are written to.
func (f *FrameBuffer) DrawBuffers() []Attachment {
	if !f.Ready() {
		return nil
	}
	return append([]Attachment(nil), f.state.textureBindings...)
}

// Texture returns the handle of the i-th texture attachment.
func (f *FrameBuffer) Texture(i int) uint32 {
	if !f.Ready() || i < 0 || i >= len(f.state.textures) {
		return 0
	}
	return f.state.textures[i]
}

// BindTexture binds the i-th texture attachment to a texture unit
// for sampling in a later pass.
func (f *FrameBuffer) BindTexture(i int, unit uint32) error {
	tex := f.Texture(i)
	if tex == 0 {
		return ErrNotReady
	}
	f.ctx.api.ActiveTexture(unit)
	f.ctx.api.BindTexture(tex)
	return nil
}

// Bind makes the framebuffer the render target and sets the viewport
// to its size.
func (f *FrameBuffer) Bind() error {
	if !f.Ready() {
		return ErrNotReady
	}
	f.ctx.api.BindFramebuffer(f.state.id)
	f.ctx.api.Viewport(0, 0, f.state.width, f.state.height)
	return nil
}

// Unload implements gfx.Resource
func (f *FrameBuffer) Unload() {
	if !f.Ready() {
		return
	}
	untrack(f.state)
	f.state.release(f.ctx.api)
	f.state = nil
}

// Move hands the framebuffer over to a new owner and leaves f empty.
func (f *FrameBuffer) Move() *FrameBuffer {
	if f == nil {
		return &FrameBuffer{}
	}
	moved := &FrameBuffer{ctx: f.ctx, state: f.state}
	f.state = nil
	return moved
}

// Assign releases whatever f owns and takes over the framebuffer of src,
// leaving src empty.
func (f *FrameBuffer) Assign(src *FrameBuffer) {
	if f == src {
		return
	}
	f.Unload()
	if src == nil {
		return
	}
	f.ctx, f.state = src.ctx, src.state
	src.state = nil
}
