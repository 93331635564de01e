// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/gfx/glr/gltest"
)

func TestFrameBufferNoAttachments(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	fb, err := glr.NewFrameBuffer(ctx, 640, 480, nil, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(fb.Ready(), qt.IsFalse)
	c.Assert(fb.ID(), qt.Equals, uint32(0))
	c.Assert(fb.Bind(), qt.Equals, glr.ErrNotReady)
	c.Assert(api.Created(gltest.Framebuffer), qt.Equals, 0)

	fb.Unload()
	c.Assert(api.CallCount("DeleteFramebuffers"), qt.Equals, 0)
}

func TestFrameBufferColorAndDepth(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	fb, err := glr.NewFrameBuffer(ctx, 640, 480,
		[]glr.TextureAttachment{glr.DefaultTextureAttachment()},
		[]glr.RenderTargetAttachment{glr.DefaultRenderTargetAttachment()})
	c.Assert(err, qt.IsNil)
	defer fb.Unload()

	c.Assert(fb.Ready(), qt.IsTrue)
	c.Assert(fb.Width(), qt.Equals, int32(640))
	c.Assert(fb.Height(), qt.Equals, int32(480))
	c.Assert(fb.TextureAttachments(), qt.HasLen, 1)
	c.Assert(fb.RenderTargetAttachments(), qt.HasLen, 1)
	c.Assert(fb.DrawBuffers(), qt.DeepEquals, []glr.Attachment{glr.ColorAttachment0})

	state, ok := api.Framebuffer(fb.ID())
	c.Assert(ok, qt.IsTrue)
	c.Assert(state.DrawBuffers, qt.DeepEquals, []glr.Attachment{glr.ColorAttachment0})
	c.Assert(state.Textures[glr.ColorAttachment0], qt.Equals, fb.Texture(0))
	c.Assert(state.Renderbuffers[glr.DepthStencilAttachment], qt.Equals, fb.RenderTargetAttachments()[0])

	tex, _ := api.Texture(fb.Texture(0))
	c.Assert(tex.Internal, qt.Equals, glr.RGBA)
	c.Assert(tex.DataType, qt.Equals, glr.FloatData)
	c.Assert(tex.Pixels, qt.Equals, 0)
	c.Assert(tex.Params[glr.TextureMinFilter], qt.Equals, int32(glr.Nearest))
	c.Assert(tex.Params[glr.TextureWrapS], qt.Equals, int32(glr.ClampToEdge))
	c.Assert(tex.Params[glr.TextureWrapT], qt.Equals, int32(glr.ClampToEdge))

	rb, _ := api.Renderbuffer(fb.RenderTargetAttachments()[0])
	c.Assert(rb.Internal, qt.Equals, glr.Depth32FStencil8)
	c.Assert(rb.Width, qt.Equals, int32(640))

	// construction leaves the default framebuffer bound
	c.Assert(api.BoundFramebuffer(), qt.Equals, uint32(0))

	c.Assert(fb.Bind(), qt.IsNil)
	c.Assert(api.BoundFramebuffer(), qt.Equals, fb.ID())
	c.Assert(api.ViewportState(), qt.Equals, [4]int32{0, 0, 640, 480})
}

func TestFrameBufferDrawBuffersFollowTextures(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	textures := []glr.TextureAttachment{
		{InternalFormat: glr.RGBA16F, Format: glr.RGBAPixels, Binding: glr.ColorAttachment(0), Filter: glr.Linear},
		{InternalFormat: glr.RGBA16F, Format: glr.RGBAPixels, Binding: glr.ColorAttachment(2), Filter: glr.Linear},
		{InternalFormat: glr.RGBA8, Format: glr.RGBAPixels, Binding: glr.ColorAttachment(1), Filter: glr.Nearest},
	}
	fb, err := glr.NewFrameBuffer(ctx, 32, 32, textures, nil)
	c.Assert(err, qt.IsNil)

	want := []glr.Attachment{glr.ColorAttachment(0), glr.ColorAttachment(2), glr.ColorAttachment(1)}
	c.Assert(fb.DrawBuffers(), qt.DeepEquals, want)
	c.Assert(fb.TextureAttachments(), qt.HasLen, 3)
	c.Assert(fb.RenderTargetAttachments(), qt.HasLen, 0)

	fb.Unload()
	c.Assert(api.LiveTotal(), qt.Equals, 0)

	// the three textures go in a single batched call
	c.Assert(api.CallCount("DeleteTextures"), qt.Equals, 1)
}

func TestFrameBufferIncomplete(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()
	api.FramebufferStatus = glr.FramebufferUnsupported

	fb, err := glr.NewFrameBuffer(ctx, 16, 8,
		[]glr.TextureAttachment{glr.DefaultTextureAttachment()},
		[]glr.RenderTargetAttachment{glr.DefaultRenderTargetAttachment()})
	c.Assert(fb, qt.IsNil)

	var incomplete *glr.IncompleteFrameBufferError
	c.Assert(errors.As(err, &incomplete), qt.IsTrue)
	c.Assert(incomplete.Status, qt.Equals, glr.FramebufferUnsupported)
	c.Assert(incomplete.Formats, qt.DeepEquals, []glr.InternalFormat{glr.RGBA, glr.Depth32FStencil8})
	c.Assert(err, qt.ErrorMatches, `glr: framebuffer 16x8 \[.*\] is incomplete: .*`)

	c.Assert(api.LiveTotal(), qt.Equals, 0)
	c.Assert(api.DoubleFrees(), qt.HasLen, 0)
}

func TestFrameBufferAllocationFailure(t *testing.T) {
	c := qt.New(t)

	for _, test := range []struct {
		kind   gltest.Kind
		n      int
		object string
	}{
		{gltest.Framebuffer, 1, "framebuffer"},
		{gltest.Texture, 2, "framebuffer texture"},
		{gltest.Renderbuffer, 1, "renderbuffer"},
	} {
		c.Run(test.object, func(c *qt.C) {
			ctx, api := newContext()
			api.FailAllocation(test.kind, test.n)

			fb, err := glr.NewFrameBuffer(ctx, 16, 8,
				[]glr.TextureAttachment{glr.DefaultTextureAttachment(), glr.DefaultTextureAttachment()},
				[]glr.RenderTargetAttachment{glr.DefaultRenderTargetAttachment()})
			c.Assert(fb, qt.IsNil)

			var alloc *glr.AllocationError
			c.Assert(errors.As(err, &alloc), qt.IsTrue)
			c.Assert(alloc.Object, qt.Equals, test.object)
			c.Assert(api.BoundFramebuffer(), qt.Equals, uint32(0))
			c.Assert(api.LiveTotal(), qt.Equals, 0)
			c.Assert(api.DoubleFrees(), qt.HasLen, 0)
		})
	}
}

func TestFrameBufferSampleAttachment(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	fb, err := glr.NewFrameBuffer(ctx, 8, 8, []glr.TextureAttachment{glr.DefaultTextureAttachment()}, nil)
	c.Assert(err, qt.IsNil)
	defer fb.Unload()

	c.Assert(fb.BindTexture(0, 1), qt.IsNil)
	unit, tex := api.BoundTexture()
	c.Assert(unit, qt.Equals, uint32(1))
	c.Assert(tex, qt.Equals, fb.Texture(0))

	c.Assert(fb.BindTexture(1, 1), qt.Equals, glr.ErrNotReady)
}

func TestFrameBufferMoveAndAssign(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	attach := []glr.TextureAttachment{glr.DefaultTextureAttachment()}
	a, err := glr.NewFrameBuffer(ctx, 100, 100, attach, nil)
	c.Assert(err, qt.IsNil)
	id := a.ID()

	b := a.Move()
	c.Assert(a.Ready(), qt.IsFalse)
	c.Assert(a.TextureAttachments(), qt.HasLen, 0)
	c.Assert(b.ID(), qt.Equals, id)
	c.Assert(b.Width(), qt.Equals, int32(100))

	// resizing replaces the framebuffer in place
	resized, err := glr.NewFrameBuffer(ctx, 200, 150, attach, nil)
	c.Assert(err, qt.IsNil)
	b.Assign(resized)
	c.Assert(b.Width(), qt.Equals, int32(200))
	c.Assert(api.IsLive(gltest.Framebuffer, id), qt.IsFalse)
	c.Assert(api.Live(gltest.Texture), qt.Equals, 1)

	b.Unload()
	b.Unload()
	resized.Unload()
	c.Assert(api.LiveTotal(), qt.Equals, 0)
	c.Assert(api.DoubleFrees(), qt.HasLen, 0)
}
