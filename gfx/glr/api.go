// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import glm "github.com/go-gl/mathgl/mgl32"

// API is the part of the native graphics API the resource wrappers and
// scenes rely on. Implementations are bound to a single context and must
// only be called from the thread that has that context current.
//
// Handle generating calls return 0 only when the driver fails to allocate.
// Bind calls operate on the 2D texture, framebuffer and renderbuffer
// targets, which are the only ones used here.
type API interface {
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)
	DeleteBuffers(buffers ...uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	VertexAttribPointer(location uint32, components int32, xtype ComponentType, normalize bool, stride int32, offset uintptr)
	EnableVertexAttribArray(location uint32)
	DeleteVertexArrays(vaos ...uint32)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	TexParameteri(param TextureParameter, value int32)
	PixelStorei(param PixelStoreParameter, value int32)
	TexImage2D(internal InternalFormat, width, height int32, format PixelFormat, xtype DataType, pixels []byte)
	GenerateMipmap()
	DeleteTextures(textures ...uint32)

	GenRenderbuffer() uint32
	BindRenderbuffer(renderbuffer uint32)
	RenderbufferStorage(internal InternalFormat, width, height int32)
	DeleteRenderbuffers(renderbuffers ...uint32)

	GenFramebuffer() uint32
	BindFramebuffer(framebuffer uint32)
	FramebufferTexture2D(attachment Attachment, texture uint32)
	FramebufferRenderbuffer(attachment Attachment, renderbuffer uint32)
	DrawBuffers(attachments []Attachment)
	CheckFramebufferStatus() FramebufferStatus
	DeleteFramebuffers(framebuffers ...uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(capability Capability)
	Disable(capability Capability)
	DrawElements(count int32)

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix3f(location int32, m glm.Mat3)
	UniformMatrix4f(location int32, m glm.Mat4)

	GetString(name StringName) string
}
