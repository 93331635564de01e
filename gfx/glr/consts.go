// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import "fmt"

// The values below mirror the OpenGL 4.1 core enumerants so that
// a backend can pass them to the driver without translation.

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint32

// Shader stages, in the order they run in the pipeline.
const (
	VertexStage         ShaderStage = 0x8B31
	TessControlStage    ShaderStage = 0x8E88
	TessEvaluationStage ShaderStage = 0x8E87
	GeometryStage       ShaderStage = 0x8DD9
	FragmentStage       ShaderStage = 0x8B30
)

// Stages lists every shader stage in pipeline order.
var Stages = []ShaderStage{VertexStage, TessControlStage, TessEvaluationStage, GeometryStage, FragmentStage}

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case TessControlStage:
		return "tess control"
	case TessEvaluationStage:
		return "tess evaluation"
	case GeometryStage:
		return "geometry"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%X)", uint32(s))
}

// order ranks the stage by its position in the pipeline.
func (s ShaderStage) order() int {
	switch s {
	case VertexStage:
		return 0
	case TessControlStage:
		return 1
	case TessEvaluationStage:
		return 2
	case GeometryStage:
		return 3
	case FragmentStage:
		return 4
	}
	return 5 + int(s)
}

// BufferTarget is a buffer binding point.
type BufferTarget uint32

// Buffer targets
const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

// BufferUsage hints how the buffer store will be accessed.
type BufferUsage uint32

// Buffer usages
const (
	StaticDraw BufferUsage = 0x88E4
)

// ComponentType is the type of a single vertex attribute component.
type ComponentType uint32

// Component types
const (
	Byte          ComponentType = 0x1400
	UnsignedByte  ComponentType = 0x1401
	Short         ComponentType = 0x1402
	UnsignedShort ComponentType = 0x1403
	Int           ComponentType = 0x1404
	UnsignedInt   ComponentType = 0x1405
	Float         ComponentType = 0x1406
)

// DataType is the type of a pixel channel in client memory.
type DataType uint32

// Pixel channel types
const (
	UnsignedByteData DataType = 0x1401
	FloatData        DataType = 0x1406
)

// Filter is a texture sampling filter.
type Filter int32

// Filters
const (
	Nearest              Filter = 0x2600
	Linear               Filter = 0x2601
	NearestMipmapNearest Filter = 0x2700
	LinearMipmapNearest  Filter = 0x2701
	NearestMipmapLinear  Filter = 0x2702
	LinearMipmapLinear   Filter = 0x2703
)

// Wrap is a texture coordinate wrapping mode.
type Wrap int32

// Wrap modes
const (
	Repeat      Wrap = 0x2901
	ClampToEdge Wrap = 0x812F
)

// TextureParameter names a texture parameter set through TexParameteri.
type TextureParameter uint32

// Texture parameters
const (
	TextureMagFilter TextureParameter = 0x2800
	TextureMinFilter TextureParameter = 0x2801
	TextureWrapS     TextureParameter = 0x2802
	TextureWrapT     TextureParameter = 0x2803
)

// PixelStoreParameter names a pixel storage mode set through PixelStorei.
type PixelStoreParameter uint32

// Pixel storage modes
const (
	UnpackAlignment PixelStoreParameter = 0x0CF5
)

// InternalFormat is the storage format of a texture or render target.
type InternalFormat int32

// Internal formats
const (
	Red               InternalFormat = 0x1903
	RG                InternalFormat = 0x8227
	RGB               InternalFormat = 0x1907
	RGBA              InternalFormat = 0x1908
	RGBA8             InternalFormat = 0x8058
	RGBA16F           InternalFormat = 0x881A
	RGBA32F           InternalFormat = 0x8814
	RGB16F            InternalFormat = 0x881B
	SRGB              InternalFormat = 0x8C40
	SRGBAlpha         InternalFormat = 0x8C42
	DepthComponent24  InternalFormat = 0x81A6
	Depth24Stencil8   InternalFormat = 0x88F0
	Depth32FStencil8  InternalFormat = 0x8CAD
	DepthComponent32F InternalFormat = 0x8CAC
)

func (f InternalFormat) String() string {
	switch f {
	case Red:
		return "RED"
	case RG:
		return "RG"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case RGBA8:
		return "RGBA8"
	case RGBA16F:
		return "RGBA16F"
	case RGBA32F:
		return "RGBA32F"
	case RGB16F:
		return "RGB16F"
	case SRGB:
		return "SRGB"
	case SRGBAlpha:
		return "SRGB_ALPHA"
	case DepthComponent24:
		return "DEPTH_COMPONENT24"
	case Depth24Stencil8:
		return "DEPTH24_STENCIL8"
	case Depth32FStencil8:
		return "DEPTH32F_STENCIL8"
	case DepthComponent32F:
		return "DEPTH_COMPONENT32F"
	}
	return fmt.Sprintf("format(0x%X)", int32(f))
}

// PixelFormat is the channel layout of pixel data in client memory.
type PixelFormat uint32

// Pixel formats
const (
	RedPixels          PixelFormat = 0x1903
	RGPixels           PixelFormat = 0x8227
	RGBPixels          PixelFormat = 0x1907
	RGBAPixels         PixelFormat = 0x1908
	DepthPixels        PixelFormat = 0x1902
	DepthStencilPixels PixelFormat = 0x84F9
)

// Attachment is a framebuffer binding point.
type Attachment uint32

// Framebuffer binding points
const (
	ColorAttachment0       Attachment = 0x8CE0
	DepthAttachment        Attachment = 0x8D00
	StencilAttachment      Attachment = 0x8D20
	DepthStencilAttachment Attachment = 0x821A
)

// ColorAttachment returns the i-th color binding point.
func ColorAttachment(i int) Attachment {
	return ColorAttachment0 + Attachment(i)
}

func (a Attachment) String() string {
	switch {
	case a >= ColorAttachment0 && a < ColorAttachment0+32:
		return fmt.Sprintf("COLOR_ATTACHMENT%d", a-ColorAttachment0)
	case a == DepthAttachment:
		return "DEPTH_ATTACHMENT"
	case a == StencilAttachment:
		return "STENCIL_ATTACHMENT"
	case a == DepthStencilAttachment:
		return "DEPTH_STENCIL_ATTACHMENT"
	}
	return fmt.Sprintf("attachment(0x%X)", uint32(a))
}

// FramebufferStatus is the result of a framebuffer completeness check.
type FramebufferStatus uint32

// Framebuffer statuses
const (
	FramebufferComplete                    FramebufferStatus = 0x8CD5
	FramebufferUndefined                   FramebufferStatus = 0x8219
	FramebufferIncompleteAttachment        FramebufferStatus = 0x8CD6
	FramebufferIncompleteMissingAttachment FramebufferStatus = 0x8CD7
	FramebufferIncompleteDrawBuffer        FramebufferStatus = 0x8CDB
	FramebufferIncompleteReadBuffer        FramebufferStatus = 0x8CDC
	FramebufferUnsupported                 FramebufferStatus = 0x8CDD
	FramebufferIncompleteMultisample       FramebufferStatus = 0x8D56
)

func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferComplete:
		return "complete"
	case FramebufferUndefined:
		return "undefined"
	case FramebufferIncompleteAttachment:
		return "incomplete attachment"
	case FramebufferIncompleteMissingAttachment:
		return "missing attachment"
	case FramebufferIncompleteDrawBuffer:
		return "incomplete draw buffer"
	case FramebufferIncompleteReadBuffer:
		return "incomplete read buffer"
	case FramebufferUnsupported:
		return "unsupported"
	case FramebufferIncompleteMultisample:
		return "incomplete multisample"
	}
	return fmt.Sprintf("status(0x%X)", uint32(s))
}

// ClearMask selects the buffers cleared by Clear.
type ClearMask uint32

// Clear bits
const (
	DepthBufferBit   ClearMask = 0x00000100
	StencilBufferBit ClearMask = 0x00000400
	ColorBufferBit   ClearMask = 0x00004000
)

// Capability is a server-side capability toggled with Enable/Disable.
type Capability uint32

// Capabilities
const (
	DepthTest       Capability = 0x0B71
	CullFace        Capability = 0x0B44
	ScissorTest     Capability = 0x0C11
	FramebufferSRGB Capability = 0x8DB9
)

// StringName selects a driver string returned by GetString.
type StringName uint32

// Driver strings
const (
	Vendor                 StringName = 0x1F00
	Renderer               StringName = 0x1F01
	Version                StringName = 0x1F02
	ShadingLanguageVersion StringName = 0x8B8C
)

func (n StringName) String() string {
	switch n {
	case Vendor:
		return "vendor"
	case Renderer:
		return "renderer"
	case Version:
		return "version"
	case ShadingLanguageVersion:
		return "shading language version"
	}
	return fmt.Sprintf("StringName(0x%X)", uint32(n))
}
