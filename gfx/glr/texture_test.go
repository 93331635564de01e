// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr_test

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/glscenes/gfx"
	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/gfx/glr/gltest"
)

func TestTexture2DZeroValue(t *testing.T) {
	c := qt.New(t)

	var tex glr.Texture2D
	c.Assert(tex.Ready(), qt.IsFalse)
	c.Assert(tex.ID(), qt.Equals, uint32(0))
	c.Assert(tex.Bind(0), qt.Equals, glr.ErrNotReady)
	tex.Unload()
}

func TestTexture2DColorSpaces(t *testing.T) {
	tests := []struct {
		space    glr.ColorSpace
		internal glr.InternalFormat
		format   glr.PixelFormat
	}{
		{glr.SpaceGrayscale, glr.Red, glr.RedPixels},
		{glr.SpaceGrayscaleAlpha, glr.RG, glr.RGPixels},
		{glr.SpaceRGB, glr.RGB, glr.RGBPixels},
		{glr.SpaceRGBA, glr.RGBA, glr.RGBAPixels},
		{glr.SpaceSRGB, glr.SRGB, glr.RGBPixels},
		{glr.SpaceSRGBAlpha, glr.SRGBAlpha, glr.RGBAPixels},
	}

	for _, test := range tests {
		t.Run(test.space.String(), func(t *testing.T) {
			c := qt.New(t)
			ctx, api := newContext()

			tex := glr.NewTexture2D(ctx, make([]byte, 16), 2, 2, glr.Nearest, test.space, false)
			defer tex.Unload()

			state, ok := api.Texture(tex.ID())
			c.Assert(ok, qt.IsTrue)
			c.Assert(state.Internal, qt.Equals, test.internal)
			c.Assert(state.Format, qt.Equals, test.format)
			c.Assert(state.DataType, qt.Equals, glr.UnsignedByteData)
			c.Assert(state.Width, qt.Equals, int32(2))
			c.Assert(state.Height, qt.Equals, int32(2))
			c.Assert(state.Mipmapped, qt.IsFalse)
		})
	}
}

func TestTexture2DTrilinearWithoutMips(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	pixels := make([]byte, 4*4*4)
	linear := glr.NewTexture2D(ctx, pixels, 4, 4, glr.Linear, glr.SpaceRGBA, false)
	downgraded := glr.NewTexture2D(ctx, pixels, 4, 4, glr.LinearMipmapLinear, glr.SpaceRGBA, false)
	defer gfx.UnloadAll(linear, downgraded)

	a, _ := api.Texture(linear.ID())
	b, _ := api.Texture(downgraded.ID())
	c.Assert(b.Params, qt.DeepEquals, a.Params)
	c.Assert(b.Params[glr.TextureMinFilter], qt.Equals, int32(glr.Linear))
	c.Assert(b.Params[glr.TextureMagFilter], qt.Equals, int32(glr.Linear))
}

func TestTexture2DMipmaps(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	tex := glr.NewTexture2D(ctx, make([]byte, 64), 4, 4, glr.LinearMipmapLinear, glr.SpaceRGBA, true)
	defer tex.Unload()

	c.Assert(tex.Mipmapped(), qt.IsTrue)
	state, _ := api.Texture(tex.ID())
	c.Assert(state.Mipmapped, qt.IsTrue)
	c.Assert(state.Params[glr.TextureMinFilter], qt.Equals, int32(glr.LinearMipmapLinear))
	c.Assert(state.Params[glr.TextureMagFilter], qt.Equals, int32(glr.Linear))
	c.Assert(api.CallCount("GenerateMipmap"), qt.Equals, 1)
}

func TestTexture2DDataType(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	tex := glr.NewTexture2D(ctx, make([]byte, 4*4), 1, 1, glr.Nearest, glr.SpaceRGBA, false, glr.WithDataType(glr.FloatData))
	defer tex.Unload()

	state, _ := api.Texture(tex.ID())
	c.Assert(state.DataType, qt.Equals, glr.FloatData)
}

func TestTexture2DInvalidInput(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	c.Assert(func() {
		glr.NewTexture2D(ctx, nil, 1, 1, glr.Nearest, glr.SpaceRGBA, false)
	}, qt.PanicMatches, "glr: texture requires pixel data")
	c.Assert(func() {
		glr.NewTexture2D(ctx, []byte{1}, 0, 1, glr.Nearest, glr.SpaceGrayscale, false)
	}, qt.PanicMatches, "glr: invalid texture size 0x1")
	c.Assert(func() {
		glr.NewTexture2D(ctx, []byte{1}, 1, 1, glr.Nearest, glr.ColorSpace(42), false)
	}, qt.PanicMatches, "glr: unknown color space 42")
	c.Assert(api.LiveTotal(), qt.Equals, 0)
}

func TestTexture2DFromImage(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 128})

	// bottom row first
	c.Assert(glr.Pixels(img), qt.DeepEquals, []byte{
		0, 0, 0, 0, 0, 0, 255, 128,
		255, 0, 0, 255, 0, 0, 0, 0,
	})
	c.Assert(glr.PixelsIn(img, glr.SpaceGrayscaleAlpha), qt.DeepEquals, []byte{
		0, 0, 0, 128,
		255, 255, 0, 0,
	})

	tex := glr.NewTexture2DFromImage(ctx, img, glr.Linear, glr.SpaceSRGB, false)
	defer tex.Unload()

	state, _ := api.Texture(tex.ID())
	c.Assert(state.Internal, qt.Equals, glr.SRGB)
	c.Assert(state.Pixels, qt.Equals, 2*2*3)
	c.Assert(tex.Width(), qt.Equals, int32(2))

	// 6 byte RGB rows need byte alignment
	alignment, ok := api.PixelStore(glr.UnpackAlignment)
	c.Assert(ok, qt.IsTrue)
	c.Assert(alignment, qt.Equals, int32(1))
}

func TestTexture2DAllocationFailure(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()
	api.FailAllocation(gltest.Texture, 1)

	var tex *glr.Texture2D
	c.Assert(func() {
		tex = glr.NewTexture2D(ctx, []byte{1, 2, 3, 4}, 1, 1, glr.Nearest, glr.SpaceRGBA, false)
	}, qt.PanicMatches, "glr: failed to allocate texture")
	c.Assert(tex, qt.IsNil)
	c.Assert(api.LiveTotal(), qt.Equals, 0)
	c.Assert(api.CallCount("TexImage2D"), qt.Equals, 0)
}

func TestTexture2DBind(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	tex := glr.NewTexture2D(ctx, make([]byte, 4), 1, 1, glr.Nearest, glr.SpaceRGBA, false)
	defer tex.Unload()

	c.Assert(tex.Bind(3), qt.IsNil)
	unit, bound := api.BoundTexture()
	c.Assert(unit, qt.Equals, uint32(3))
	c.Assert(bound, qt.Equals, tex.ID())
}

func TestTexture2DMoveAndAssign(t *testing.T) {
	c := qt.New(t)
	ctx, api := newContext()

	a := glr.NewTexture2D(ctx, make([]byte, 4), 1, 1, glr.Nearest, glr.SpaceRGBA, false)
	id := a.ID()

	b := a.Move()
	c.Assert(a.Ready(), qt.IsFalse)
	c.Assert(a.Width(), qt.Equals, int32(0))
	c.Assert(b.ID(), qt.Equals, id)
	c.Assert(b.Width(), qt.Equals, int32(1))

	other := glr.NewTexture2D(ctx, make([]byte, 16), 2, 2, glr.Nearest, glr.SpaceRGBA, false)
	b.Assign(other)
	c.Assert(api.IsLive(gltest.Texture, id), qt.IsFalse)
	c.Assert(b.Width(), qt.Equals, int32(2))
	c.Assert(other.Ready(), qt.IsFalse)

	gfx.UnloadAll(a, b, other)
	b.Unload()
	c.Assert(api.LiveTotal(), qt.Equals, 0)
	c.Assert(api.DoubleFrees(), qt.HasLen, 0)
}
