// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glcore implements glr.API on top of the OpenGL 4.1 core profile.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/devblok/glscenes/gfx/glr"
	"github.com/go-gl/gl/v4.1-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"
)

// API forwards every call to the current OpenGL context.
type API struct{}

var _ glr.API = API{}

// New loads the OpenGL function pointers of the current context.
// A context must be current on the calling thread.
func New() (API, error) {
	if err := gl.Init(); err != nil {
		return API{}, fmt.Errorf("New(): %s", err)
	}
	return API{}, nil
}

func cstr(s string) (*uint8, func()) {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	strs, free := gl.Strs(s)
	return *strs, free
}

func infoLog(length int32, read func(int32, *uint8)) string {
	if length <= 1 {
		return ""
	}
	log := make([]uint8, length)
	read(length, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// CreateShader implements glr.API
func (API) CreateShader(stage glr.ShaderStage) uint32 {
	return gl.CreateShader(uint32(stage))
}

// ShaderSource implements glr.API
func (API) ShaderSource(shader uint32, source string) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

// CompileShader implements glr.API
func (API) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

// ShaderCompiled implements glr.API
func (API) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog implements glr.API
func (API) ShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	return infoLog(length, func(n int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, n, nil, buf)
	})
}

// DeleteShader implements glr.API
func (API) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

// CreateProgram implements glr.API
func (API) CreateProgram() uint32 {
	return gl.CreateProgram()
}

// AttachShader implements glr.API
func (API) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

// LinkProgram implements glr.API
func (API) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

// ProgramLinked implements glr.API
func (API) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramInfoLog implements glr.API
func (API) ProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	return infoLog(length, func(n int32, buf *uint8) {
		gl.GetProgramInfoLog(program, n, nil, buf)
	})
}

// UniformLocation implements glr.API
func (API) UniformLocation(program uint32, name string) int32 {
	cname, free := cstr(name)
	defer free()
	return gl.GetUniformLocation(program, cname)
}

// UseProgram implements glr.API
func (API) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// DeleteProgram implements glr.API
func (API) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// GenBuffer implements glr.API
func (API) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

// BindBuffer implements glr.API
func (API) BindBuffer(target glr.BufferTarget, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

// BufferData implements glr.API
func (API) BufferData(target glr.BufferTarget, data []byte, usage glr.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

// DeleteBuffers implements glr.API
func (API) DeleteBuffers(buffers ...uint32) {
	if len(buffers) > 0 {
		gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	}
}

// GenVertexArray implements glr.API
func (API) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

// BindVertexArray implements glr.API
func (API) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

// VertexAttribPointer implements glr.API
func (API) VertexAttribPointer(location uint32, components int32, xtype glr.ComponentType, normalize bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(location, components, uint32(xtype), normalize, stride, offset)
}

// EnableVertexAttribArray implements glr.API
func (API) EnableVertexAttribArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

// DeleteVertexArrays implements glr.API
func (API) DeleteVertexArrays(vaos ...uint32) {
	if len(vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(vaos)), &vaos[0])
	}
}

// GenTexture implements glr.API
func (API) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

// ActiveTexture implements glr.API
func (API) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

// BindTexture implements glr.API
func (API) BindTexture(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

// TexParameteri implements glr.API
func (API) TexParameteri(param glr.TextureParameter, value int32) {
	gl.TexParameteri(gl.TEXTURE_2D, uint32(param), value)
}

// PixelStorei implements glr.API
func (API) PixelStorei(param glr.PixelStoreParameter, value int32) {
	gl.PixelStorei(uint32(param), value)
}

// TexImage2D implements glr.API
func (API) TexImage2D(internal glr.InternalFormat, width, height int32, format glr.PixelFormat, xtype glr.DataType, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(internal), width, height, 0, uint32(format), uint32(xtype), ptr)
}

// GenerateMipmap implements glr.API
func (API) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

// DeleteTextures implements glr.API
func (API) DeleteTextures(textures ...uint32) {
	if len(textures) > 0 {
		gl.DeleteTextures(int32(len(textures)), &textures[0])
	}
}

// GenRenderbuffer implements glr.API
func (API) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

// BindRenderbuffer implements glr.API
func (API) BindRenderbuffer(renderbuffer uint32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, renderbuffer)
}

// RenderbufferStorage implements glr.API
func (API) RenderbufferStorage(internal glr.InternalFormat, width, height int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(internal), width, height)
}

// DeleteRenderbuffers implements glr.API
func (API) DeleteRenderbuffers(renderbuffers ...uint32) {
	if len(renderbuffers) > 0 {
		gl.DeleteRenderbuffers(int32(len(renderbuffers)), &renderbuffers[0])
	}
}

// GenFramebuffer implements glr.API
func (API) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

// BindFramebuffer implements glr.API
func (API) BindFramebuffer(framebuffer uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
}

// FramebufferTexture2D implements glr.API
func (API) FramebufferTexture2D(attachment glr.Attachment, texture uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, uint32(attachment), gl.TEXTURE_2D, texture, 0)
}

// FramebufferRenderbuffer implements glr.API
func (API) FramebufferRenderbuffer(attachment glr.Attachment, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, uint32(attachment), gl.RENDERBUFFER, renderbuffer)
}

// DrawBuffers implements glr.API
func (API) DrawBuffers(attachments []glr.Attachment) {
	if len(attachments) == 0 {
		none := uint32(gl.NONE)
		gl.DrawBuffers(1, &none)
		return
	}
	bufs := make([]uint32, len(attachments))
	for i, a := range attachments {
		bufs[i] = uint32(a)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

// CheckFramebufferStatus implements glr.API
func (API) CheckFramebufferStatus() glr.FramebufferStatus {
	return glr.FramebufferStatus(gl.CheckFramebufferStatus(gl.FRAMEBUFFER))
}

// DeleteFramebuffers implements glr.API
func (API) DeleteFramebuffers(framebuffers ...uint32) {
	if len(framebuffers) > 0 {
		gl.DeleteFramebuffers(int32(len(framebuffers)), &framebuffers[0])
	}
}

// Viewport implements glr.API
func (API) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// ClearColor implements glr.API
func (API) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear implements glr.API
func (API) Clear(mask glr.ClearMask) {
	gl.Clear(uint32(mask))
}

// Enable implements glr.API
func (API) Enable(capability glr.Capability) {
	gl.Enable(uint32(capability))
}

// Disable implements glr.API
func (API) Disable(capability glr.Capability) {
	gl.Disable(uint32(capability))
}

// DrawElements implements glr.API
func (API) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

// Uniform1i implements glr.API
func (API) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

// Uniform1f implements glr.API
func (API) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

// Uniform3f implements glr.API
func (API) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

// UniformMatrix3f implements glr.API
func (API) UniformMatrix3f(location int32, m glm.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

// UniformMatrix4f implements glr.API
func (API) UniformMatrix4f(location int32, m glm.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// GetString implements glr.API
func (API) GetString(name glr.StringName) string {
	return gl.GoStr(gl.GetString(uint32(name)))
}
