// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"fmt"
	"image"

	"github.com/devblok/glscenes/gfx"
	"github.com/disintegration/imaging"
)

var _ gfx.Resource = (*Texture2D)(nil)

// ColorSpace is the color layout of texture data.
type ColorSpace uint

// Color spaces
const (
	SpaceGrayscale ColorSpace = iota
	SpaceGrayscaleAlpha
	SpaceRGB
	SpaceRGBA
	SpaceSRGB
	SpaceSRGBAlpha
)

func (c ColorSpace) String() string {
	switch c {
	case SpaceGrayscale:
		return "GRAYSCALE"
	case SpaceGrayscaleAlpha:
		return "GRAYSCALE_ALPHA"
	case SpaceRGB:
		return "RGB"
	case SpaceRGBA:
		return "RGB_ALPHA"
	case SpaceSRGB:
		return "SRGB"
	case SpaceSRGBAlpha:
		return "SRGB_ALPHA"
	}
	return fmt.Sprintf("ColorSpace(%d)", uint(c))
}

// colorSpaceFormats maps a color space to its storage format and the
// layout of the data read or written by shaders.
var colorSpaceFormats = map[ColorSpace]struct {
	internal InternalFormat
	format   PixelFormat
}{
	SpaceGrayscale:      {Red, RedPixels},
	SpaceGrayscaleAlpha: {RG, RGPixels},
	SpaceRGB:            {RGB, RGBPixels},
	SpaceRGBA:           {RGBA, RGBAPixels},
	SpaceSRGB:           {SRGB, RGBPixels},
	SpaceSRGBAlpha:      {SRGBAlpha, RGBAPixels},
}

// Formats returns the internal and pixel formats used for c.
func (c ColorSpace) Formats() (InternalFormat, PixelFormat, bool) {
	f, ok := colorSpaceFormats[c]
	return f.internal, f.format, ok
}

// TextureOption changes optional texture parameters.
type TextureOption func(*textureOptions)

type textureOptions struct {
	dataType DataType
}

// WithDataType sets the channel type of the pixel data,
// UnsignedByteData by default.
func WithDataType(t DataType) TextureOption {
	return func(o *textureOptions) {
		o.dataType = t
	}
}

type texture struct {
	id            uint32
	width, height int32
	mips          bool
}

// Texture2D owns a single two dimensional texture.
type Texture2D struct {
	noCopy noCopy

	ctx   *Context
	state *texture
}

// TextureFilters returns the min and mag filters a texture ends up with.
// Trilinear filtering needs mip levels, without them it falls back to
// plain linear filtering. Magnification never samples mip levels, so the
// mag filter drops the mipmap part of the request.
func TextureFilters(filter Filter, mips bool) (min, mag Filter) {
	if !mips && filter == LinearMipmapLinear {
		filter = Linear
	}
	switch filter {
	case NearestMipmapNearest, NearestMipmapLinear:
		return filter, Nearest
	case LinearMipmapNearest, LinearMipmapLinear:
		return filter, Linear
	}
	return filter, filter
}

// NewTexture2D uploads pixels into a new texture. With mips set the
// mip levels are generated once, here.
//
// Empty pixels or a non-positive size are a programming error and panic.
// So is a driver that hands out no texture, the panic value is an
// *AllocationError then.
func NewTexture2D(ctx *Context, pixels []byte, width, height int32, filter Filter, space ColorSpace, mips bool, opts ...TextureOption) *Texture2D {
	if len(pixels) == 0 {
		panic("glr: texture requires pixel data")
	}
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("glr: invalid texture size %dx%d", width, height))
	}
	internal, format, ok := space.Formats()
	if !ok {
		panic(fmt.Sprintf("glr: unknown color space %d", uint(space)))
	}

	options := textureOptions{dataType: UnsignedByteData}
	for _, opt := range opts {
		opt(&options)
	}

	api := ctx.api
	state := &texture{
		width:  width,
		height: height,
		mips:   mips,
	}

	state.id = api.GenTexture()
	if state.id == 0 {
		panic(&AllocationError{Object: "texture"})
	}
	api.BindTexture(state.id)

	// rows of RED, RG and RGB pixels are tightly packed
	api.PixelStorei(UnpackAlignment, 1)

	min, mag := TextureFilters(filter, mips)
	api.TexParameteri(TextureMinFilter, int32(min))
	api.TexParameteri(TextureMagFilter, int32(mag))

	api.TexImage2D(internal, width, height, format, options.dataType, pixels)

	if mips {
		api.GenerateMipmap()
	}

	api.BindTexture(0)

	track(ctx, state, "texture", func(t *texture) map[handleKind][]uint32 {
		return map[handleKind][]uint32{textureHandle: {t.id}}
	})

	return &Texture2D{
		ctx:   ctx,
		state: state,
	}
}

// NewTexture2DFromImage uploads img in the given color space. Rows are
// flipped so the first row of img ends up at the top when sampled with
// the usual texture coordinates.
func NewTexture2DFromImage(ctx *Context, img image.Image, filter Filter, space ColorSpace, mips bool) *Texture2D {
	bounds := img.Bounds()
	return NewTexture2D(ctx, PixelsIn(img, space), int32(bounds.Dx()), int32(bounds.Dy()), filter, space, mips)
}

// Pixels returns img as tightly packed, non premultiplied RGBA rows,
// bottom row first.
func Pixels(img image.Image) []byte {
	return imaging.FlipV(img).Pix
}

// PixelsIn returns img like Pixels does, keeping only the channels the
// pixel format of space reads.
func PixelsIn(img image.Image, space ColorSpace) []byte {
	rgba := Pixels(img)
	_, format, ok := space.Formats()
	if !ok {
		panic(fmt.Sprintf("glr: unknown color space %d", uint(space)))
	}

	var keep []int
	switch format {
	case RGBAPixels:
		return rgba
	case RGBPixels:
		keep = []int{0, 1, 2}
	case RGPixels:
		keep = []int{0, 3}
	case RedPixels:
		keep = []int{0}
	}

	out := make([]byte, 0, len(rgba)/4*len(keep))
	for i := 0; i < len(rgba); i += 4 {
		for _, c := range keep {
			out = append(out, rgba[i+c])
		}
	}
	return out
}

// Ready implements gfx.Resource
func (t *Texture2D) Ready() bool {
	return t != nil && t.state != nil
}

// ID returns the texture handle.
func (t *Texture2D) ID() uint32 {
	if !t.Ready() {
		return 0
	}
	return t.state.id
}

// Width returns the texture width.
func (t *Texture2D) Width() int32 {
	if !t.Ready() {
		return 0
	}
	return t.state.width
}

// Height returns the texture height.
func (t *Texture2D) Height() int32 {
	if !t.Ready() {
		return 0
	}
	return t.state.height
}

// Mipmapped reports whether mip levels were generated.
func (t *Texture2D) Mipmapped() bool {
	return t.Ready() && t.state.mips
}

// Bind binds the texture to the given texture unit.
func (t *Texture2D) Bind(unit uint32) error {
	if !t.Ready() {
		return ErrNotReady
	}
	t.ctx.api.ActiveTexture(unit)
	t.ctx.api.BindTexture(t.state.id)
	return nil
}

// Unload implements gfx.Resource
func (t *Texture2D) Unload() {
	if !t.Ready() {
		return
	}
	untrack(t.state)
	if t.state.id != 0 {
		t.ctx.api.DeleteTextures(t.state.id)
	}
	t.state = nil
}

// Move hands the texture over to a new owner and leaves t empty.
func (t *Texture2D) Move() *Texture2D {
	if t == nil {
		return &Texture2D{}
	}
	moved := &Texture2D{ctx: t.ctx, state: t.state}
	t.state = nil
	return moved
}

// Assign releases whatever t owns and takes over the texture of src,
// leaving src empty.
func (t *Texture2D) Assign(src *Texture2D) {
	if t == src {
		return
	}
	t.Unload()
	if src == nil {
		return
	}
	t.ctx, t.state = src.ctx, src.state
	src.state = nil
}
