// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gltest provides an in-memory glr.API for tests. It hands out
// handles, keeps track of which of them are alive and records enough
// state to assert what the resource wrappers did to the driver.
package gltest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/devblok/glscenes/gfx/glr"
	glm "github.com/go-gl/mathgl/mgl32"
)

// Kind is the kind of a native handle.
type Kind int

// Handle kinds
const (
	Shader Kind = iota
	Program
	Buffer
	VertexArray
	Texture
	Renderbuffer
	Framebuffer
)

var kindNames = [...]string{"shader", "program", "buffer", "vertex array", "texture", "renderbuffer", "framebuffer"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var uniformPattern = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

// TextureState is what the fake knows about a texture.
type TextureState struct {
	Internal  glr.InternalFormat
	Format    glr.PixelFormat
	DataType  glr.DataType
	Width     int32
	Height    int32
	Pixels    int
	Mipmapped bool
	Params    map[glr.TextureParameter]int32
}

// FramebufferState is what the fake knows about a framebuffer.
type FramebufferState struct {
	Textures      map[glr.Attachment]uint32
	Renderbuffers map[glr.Attachment]uint32
	DrawBuffers   []glr.Attachment
}

// RenderbufferState is what the fake knows about a renderbuffer.
type RenderbufferState struct {
	Internal      glr.InternalFormat
	Width, Height int32
}

// Draw is a recorded indexed draw call.
type Draw struct {
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
	Count       int32
}

type shader struct {
	stage    glr.ShaderStage
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms map[string]int32
}

type vertexArray struct {
	elements   uint32
	attributes map[uint32]bool
}

// API is a recording glr.API. The zero value is not usable, use New.
type API struct {
	// CompileFailure, when set, is asked for the info log of every
	// compiled shader. A non empty log fails the compilation. Sources
	// without a main function always fail.
	CompileFailure func(stage glr.ShaderStage, source string) string

	// LinkFailure fails every link with the given log when non empty.
	LinkFailure string

	// FramebufferStatus is reported for every framebuffer with at least
	// one attachment. Zero means complete.
	FramebufferStatus glr.FramebufferStatus

	// Strings answers GetString.
	Strings map[glr.StringName]string

	// AllocationFailure, when set, is asked before every handle is
	// created. Returning true makes the call return 0.
	AllocationFailure func(kind Kind) bool

	next    uint32
	live    map[Kind]map[uint32]bool
	created map[Kind]int
	doubles []string
	calls   []string

	shaders       map[uint32]*shader
	programs      map[uint32]*program
	buffers       map[uint32][]byte
	vertexArrays  map[uint32]*vertexArray
	textures      map[uint32]*TextureState
	renderbuffers map[uint32]*RenderbufferState
	framebuffers  map[uint32]*FramebufferState

	currentProgram     uint32
	boundBuffers       map[glr.BufferTarget]uint32
	boundVertexArray   uint32
	boundTexture       uint32
	boundRenderbuffer  uint32
	boundFramebuffer   uint32
	activeTexture      uint32
	pixelStore         map[glr.PixelStoreParameter]int32
	viewport           [4]int32
	clearColor         [4]float32
	capabilities       map[glr.Capability]bool
	draws              []Draw
	uniforms           map[uint32]map[int32]interface{}
	vertexAttribStride map[uint32]int32
}

var _ glr.API = (*API)(nil)

// New returns an empty fake with no live handles.
func New() *API {
	return &API{
		live:               make(map[Kind]map[uint32]bool),
		created:            make(map[Kind]int),
		shaders:            make(map[uint32]*shader),
		programs:           make(map[uint32]*program),
		buffers:            make(map[uint32][]byte),
		vertexArrays:       make(map[uint32]*vertexArray),
		textures:           make(map[uint32]*TextureState),
		renderbuffers:      make(map[uint32]*RenderbufferState),
		framebuffers:       make(map[uint32]*FramebufferState),
		boundBuffers:       make(map[glr.BufferTarget]uint32),
		capabilities:       make(map[glr.Capability]bool),
		uniforms:           make(map[uint32]map[int32]interface{}),
		vertexAttribStride: make(map[uint32]int32),
		pixelStore:         make(map[glr.PixelStoreParameter]int32),
	}
}

func (a *API) record(format string, args ...interface{}) {
	a.calls = append(a.calls, fmt.Sprintf(format, args...))
}

func (a *API) alloc(kind Kind) uint32 {
	if a.AllocationFailure != nil && a.AllocationFailure(kind) {
		return 0
	}
	a.next++
	if a.live[kind] == nil {
		a.live[kind] = make(map[uint32]bool)
	}
	a.live[kind][a.next] = true
	a.created[kind]++
	return a.next
}

// free releases id and reports whether it was alive. Zero is ignored
// like the driver does.
func (a *API) free(kind Kind, id uint32) bool {
	if id == 0 {
		return false
	}
	if !a.live[kind][id] {
		a.doubles = append(a.doubles, fmt.Sprintf("%s %d", kind, id))
		return false
	}
	delete(a.live[kind], id)
	return true
}

// FailAllocation makes the n-th next allocation of kind return 0,
// counting from 1.
func (a *API) FailAllocation(kind Kind, n int) {
	a.AllocationFailure = func(k Kind) bool {
		if k != kind {
			return false
		}
		n--
		return n == 0
	}
}

// Live returns the number of live handles of kind.
func (a *API) Live(kind Kind) int {
	return len(a.live[kind])
}

// LiveTotal returns the number of live handles of every kind.
func (a *API) LiveTotal() int {
	var n int
	for _, ids := range a.live {
		n += len(ids)
	}
	return n
}

// IsLive reports whether id is a live handle of kind.
func (a *API) IsLive(kind Kind, id uint32) bool {
	return a.live[kind][id]
}

// Created returns how many handles of kind were ever allocated.
func (a *API) Created(kind Kind) int {
	return a.created[kind]
}

// DoubleFrees lists every deletion of a handle that was not alive.
func (a *API) DoubleFrees() []string {
	return append([]string(nil), a.doubles...)
}

// Calls returns the recorded calls in order.
func (a *API) Calls() []string {
	return append([]string(nil), a.calls...)
}

// CallCount returns how often a call with the given name was made.
func (a *API) CallCount(name string) int {
	var n int
	for _, c := range a.calls {
		if c == name || strings.HasPrefix(c, name+"(") {
			n++
		}
	}
	return n
}

// Texture returns the state of a live texture.
func (a *API) Texture(id uint32) (TextureState, bool) {
	t, ok := a.textures[id]
	if !ok {
		return TextureState{}, false
	}
	return *t, true
}

// Framebuffer returns the state of a live framebuffer.
func (a *API) Framebuffer(id uint32) (FramebufferState, bool) {
	f, ok := a.framebuffers[id]
	if !ok {
		return FramebufferState{}, false
	}
	return *f, true
}

// Renderbuffer returns the state of a live renderbuffer.
func (a *API) Renderbuffer(id uint32) (RenderbufferState, bool) {
	r, ok := a.renderbuffers[id]
	if !ok {
		return RenderbufferState{}, false
	}
	return *r, true
}

// Buffer returns the data uploaded into a buffer.
func (a *API) Buffer(id uint32) ([]byte, bool) {
	b, ok := a.buffers[id]
	return b, ok
}

// ElementBuffer returns the index buffer recorded by a vertex array.
func (a *API) ElementBuffer(vao uint32) uint32 {
	if v, ok := a.vertexArrays[vao]; ok {
		return v.elements
	}
	return 0
}

// EnabledAttributes returns the number of enabled attributes of a
// vertex array.
func (a *API) EnabledAttributes(vao uint32) int {
	if v, ok := a.vertexArrays[vao]; ok {
		return len(v.attributes)
	}
	return 0
}

// AttributeStride returns the stride last set for an attribute location.
func (a *API) AttributeStride(location uint32) int32 {
	return a.vertexAttribStride[location]
}

// Draws returns the recorded draw calls.
func (a *API) Draws() []Draw {
	return append([]Draw(nil), a.draws...)
}

// ViewportState returns the last viewport.
func (a *API) ViewportState() [4]int32 {
	return a.viewport
}

// PixelStore returns the value last set for a pixel storage mode.
func (a *API) PixelStore(param glr.PixelStoreParameter) (int32, bool) {
	v, ok := a.pixelStore[param]
	return v, ok
}

// ClearColorValue returns the last clear color.
func (a *API) ClearColorValue() [4]float32 {
	return a.clearColor
}

// Enabled reports whether a capability is enabled.
func (a *API) Enabled(c glr.Capability) bool {
	return a.capabilities[c]
}

// UniformValue returns the value last set on a uniform of a program.
func (a *API) UniformValue(program uint32, location int32) (interface{}, bool) {
	v, ok := a.uniforms[program][location]
	return v, ok
}

// BoundFramebuffer returns the bound framebuffer.
func (a *API) BoundFramebuffer() uint32 {
	return a.boundFramebuffer
}

// CurrentProgram returns the program in use.
func (a *API) CurrentProgram() uint32 {
	return a.currentProgram
}

// CreateShader implements glr.API
func (a *API) CreateShader(stage glr.ShaderStage) uint32 {
	id := a.alloc(Shader)
	if id != 0 {
		a.shaders[id] = &shader{stage: stage}
	}
	a.record("CreateShader(%s)", stage)
	return id
}

// ShaderSource implements glr.API
func (a *API) ShaderSource(id uint32, source string) {
	if s, ok := a.shaders[id]; ok {
		s.source = source
	}
	a.record("ShaderSource(%d)", id)
}

// CompileShader implements glr.API
func (a *API) CompileShader(id uint32) {
	a.record("CompileShader(%d)", id)
	s, ok := a.shaders[id]
	if !ok {
		return
	}
	s.compiled, s.log = true, ""
	if !strings.Contains(s.source, "void main") {
		s.compiled, s.log = false, "0:1(1): error: function `main' is not defined\n"
		return
	}
	if a.CompileFailure != nil {
		if msg := a.CompileFailure(s.stage, s.source); msg != "" {
			s.compiled, s.log = false, msg
		}
	}
}

// ShaderCompiled implements glr.API
func (a *API) ShaderCompiled(id uint32) bool {
	s, ok := a.shaders[id]
	return ok && s.compiled
}

// ShaderInfoLog implements glr.API
func (a *API) ShaderInfoLog(id uint32) string {
	if s, ok := a.shaders[id]; ok {
		return s.log
	}
	return ""
}

// DeleteShader implements glr.API
func (a *API) DeleteShader(id uint32) {
	a.record("DeleteShader(%d)", id)
	if a.free(Shader, id) {
		delete(a.shaders, id)
	}
}

// CreateProgram implements glr.API
func (a *API) CreateProgram() uint32 {
	id := a.alloc(Program)
	if id != 0 {
		a.programs[id] = &program{uniforms: make(map[string]int32)}
	}
	a.record("CreateProgram")
	return id
}

// AttachShader implements glr.API
func (a *API) AttachShader(programID, shaderID uint32) {
	if p, ok := a.programs[programID]; ok {
		p.shaders = append(p.shaders, shaderID)
	}
	a.record("AttachShader(%d, %d)", programID, shaderID)
}

// LinkProgram implements glr.API
func (a *API) LinkProgram(id uint32) {
	a.record("LinkProgram(%d)", id)
	p, ok := a.programs[id]
	if !ok {
		return
	}
	p.linked, p.log = false, ""
	switch {
	case a.LinkFailure != "":
		p.log = a.LinkFailure
		return
	case len(p.shaders) == 0:
		p.log = "error: no shaders attached"
		return
	}

	var next int32
	for _, sid := range p.shaders {
		s, ok := a.shaders[sid]
		if !ok || !s.compiled {
			p.log = fmt.Sprintf("error: shader %d is not compiled", sid)
			return
		}
		for _, m := range uniformPattern.FindAllStringSubmatch(s.source, -1) {
			if _, seen := p.uniforms[m[1]]; !seen {
				p.uniforms[m[1]] = next
				next++
			}
		}
	}
	p.linked = true
}

// ProgramLinked implements glr.API
func (a *API) ProgramLinked(id uint32) bool {
	p, ok := a.programs[id]
	return ok && p.linked
}

// ProgramInfoLog implements glr.API
func (a *API) ProgramInfoLog(id uint32) string {
	if p, ok := a.programs[id]; ok {
		return p.log
	}
	return ""
}

// UniformLocation implements glr.API
func (a *API) UniformLocation(id uint32, name string) int32 {
	p, ok := a.programs[id]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// UseProgram implements glr.API
func (a *API) UseProgram(id uint32) {
	a.currentProgram = id
	a.record("UseProgram(%d)", id)
}

// DeleteProgram implements glr.API
func (a *API) DeleteProgram(id uint32) {
	a.record("DeleteProgram(%d)", id)
	if a.free(Program, id) {
		delete(a.programs, id)
		delete(a.uniforms, id)
	}
}

// GenBuffer implements glr.API
func (a *API) GenBuffer() uint32 {
	id := a.alloc(Buffer)
	if id != 0 {
		a.buffers[id] = nil
	}
	a.record("GenBuffer")
	return id
}

// BindBuffer implements glr.API
func (a *API) BindBuffer(target glr.BufferTarget, id uint32) {
	a.boundBuffers[target] = id
	if target == glr.ElementArrayBuffer {
		if v, ok := a.vertexArrays[a.boundVertexArray]; ok {
			v.elements = id
		}
	}
	a.record("BindBuffer(%d)", id)
}

// BufferData implements glr.API
func (a *API) BufferData(target glr.BufferTarget, data []byte, usage glr.BufferUsage) {
	id := a.boundBuffers[target]
	if _, ok := a.buffers[id]; ok {
		a.buffers[id] = append([]byte(nil), data...)
	}
	a.record("BufferData(%d, %d)", id, len(data))
}

// DeleteBuffers implements glr.API
func (a *API) DeleteBuffers(ids ...uint32) {
	a.record("DeleteBuffers(%v)", ids)
	for _, id := range ids {
		if a.free(Buffer, id) {
			delete(a.buffers, id)
		}
	}
}

// GenVertexArray implements glr.API
func (a *API) GenVertexArray() uint32 {
	id := a.alloc(VertexArray)
	if id != 0 {
		a.vertexArrays[id] = &vertexArray{attributes: make(map[uint32]bool)}
	}
	a.record("GenVertexArray")
	return id
}

// BindVertexArray implements glr.API
func (a *API) BindVertexArray(id uint32) {
	a.boundVertexArray = id
	a.record("BindVertexArray(%d)", id)
}

// VertexAttribPointer implements glr.API
func (a *API) VertexAttribPointer(location uint32, components int32, xtype glr.ComponentType, normalize bool, stride int32, offset uintptr) {
	a.vertexAttribStride[location] = stride
	a.record("VertexAttribPointer(%d, %d, %d)", location, components, offset)
}

// EnableVertexAttribArray implements glr.API
func (a *API) EnableVertexAttribArray(location uint32) {
	if v, ok := a.vertexArrays[a.boundVertexArray]; ok {
		v.attributes[location] = true
	}
	a.record("EnableVertexAttribArray(%d)", location)
}

// DeleteVertexArrays implements glr.API
func (a *API) DeleteVertexArrays(ids ...uint32) {
	a.record("DeleteVertexArrays(%v)", ids)
	for _, id := range ids {
		if a.free(VertexArray, id) {
			delete(a.vertexArrays, id)
		}
	}
}

// GenTexture implements glr.API
func (a *API) GenTexture() uint32 {
	id := a.alloc(Texture)
	if id != 0 {
		a.textures[id] = &TextureState{Params: make(map[glr.TextureParameter]int32)}
	}
	a.record("GenTexture")
	return id
}

// ActiveTexture implements glr.API
func (a *API) ActiveTexture(unit uint32) {
	a.activeTexture = unit
	a.record("ActiveTexture(%d)", unit)
}

// BindTexture implements glr.API
func (a *API) BindTexture(id uint32) {
	a.boundTexture = id
	a.record("BindTexture(%d)", id)
}

// TexParameteri implements glr.API
func (a *API) TexParameteri(param glr.TextureParameter, value int32) {
	if t, ok := a.textures[a.boundTexture]; ok {
		t.Params[param] = value
	}
	a.record("TexParameteri(%d, %d)", param, value)
}

// PixelStorei implements glr.API
func (a *API) PixelStorei(param glr.PixelStoreParameter, value int32) {
	a.pixelStore[param] = value
	a.record("PixelStorei(%d, %d)", param, value)
}

// TexImage2D implements glr.API
func (a *API) TexImage2D(internal glr.InternalFormat, width, height int32, format glr.PixelFormat, xtype glr.DataType, pixels []byte) {
	if t, ok := a.textures[a.boundTexture]; ok {
		t.Internal, t.Format, t.DataType = internal, format, xtype
		t.Width, t.Height, t.Pixels = width, height, len(pixels)
	}
	a.record("TexImage2D(%s, %d, %d)", internal, width, height)
}

// GenerateMipmap implements glr.API
func (a *API) GenerateMipmap() {
	if t, ok := a.textures[a.boundTexture]; ok {
		t.Mipmapped = true
	}
	a.record("GenerateMipmap")
}

// DeleteTextures implements glr.API
func (a *API) DeleteTextures(ids ...uint32) {
	a.record("DeleteTextures(%v)", ids)
	for _, id := range ids {
		if a.free(Texture, id) {
			delete(a.textures, id)
		}
	}
}

// GenRenderbuffer implements glr.API
func (a *API) GenRenderbuffer() uint32 {
	id := a.alloc(Renderbuffer)
	if id != 0 {
		a.renderbuffers[id] = &RenderbufferState{}
	}
	a.record("GenRenderbuffer")
	return id
}

// BindRenderbuffer implements glr.API
func (a *API) BindRenderbuffer(id uint32) {
	a.boundRenderbuffer = id
	a.record("BindRenderbuffer(%d)", id)
}

// RenderbufferStorage implements glr.API
func (a *API) RenderbufferStorage(internal glr.InternalFormat, width, height int32) {
	if r, ok := a.renderbuffers[a.boundRenderbuffer]; ok {
		r.Internal, r.Width, r.Height = internal, width, height
	}
	a.record("RenderbufferStorage(%s, %d, %d)", internal, width, height)
}

// DeleteRenderbuffers implements glr.API
func (a *API) DeleteRenderbuffers(ids ...uint32) {
	a.record("DeleteRenderbuffers(%v)", ids)
	for _, id := range ids {
		if a.free(Renderbuffer, id) {
			delete(a.renderbuffers, id)
		}
	}
}

// GenFramebuffer implements glr.API
func (a *API) GenFramebuffer() uint32 {
	id := a.alloc(Framebuffer)
	if id != 0 {
		a.framebuffers[id] = &FramebufferState{
			Textures:      make(map[glr.Attachment]uint32),
			Renderbuffers: make(map[glr.Attachment]uint32),
		}
	}
	a.record("GenFramebuffer")
	return id
}

// BindFramebuffer implements glr.API
func (a *API) BindFramebuffer(id uint32) {
	a.boundFramebuffer = id
	a.record("BindFramebuffer(%d)", id)
}

// FramebufferTexture2D implements glr.API
func (a *API) FramebufferTexture2D(attachment glr.Attachment, texture uint32) {
	if f, ok := a.framebuffers[a.boundFramebuffer]; ok {
		f.Textures[attachment] = texture
	}
	a.record("FramebufferTexture2D(%s, %d)", attachment, texture)
}

// FramebufferRenderbuffer implements glr.API
func (a *API) FramebufferRenderbuffer(attachment glr.Attachment, renderbuffer uint32) {
	if f, ok := a.framebuffers[a.boundFramebuffer]; ok {
		f.Renderbuffers[attachment] = renderbuffer
	}
	a.record("FramebufferRenderbuffer(%s, %d)", attachment, renderbuffer)
}

// DrawBuffers implements glr.API
func (a *API) DrawBuffers(attachments []glr.Attachment) {
	if f, ok := a.framebuffers[a.boundFramebuffer]; ok {
		f.DrawBuffers = append([]glr.Attachment(nil), attachments...)
	}
	a.record("DrawBuffers(%v)", attachments)
}

// CheckFramebufferStatus implements glr.API
func (a *API) CheckFramebufferStatus() glr.FramebufferStatus {
	a.record("CheckFramebufferStatus")
	f, ok := a.framebuffers[a.boundFramebuffer]
	if !ok {
		return glr.FramebufferUndefined
	}
	if len(f.Textures) == 0 && len(f.Renderbuffers) == 0 {
		return glr.FramebufferIncompleteMissingAttachment
	}
	if a.FramebufferStatus != 0 {
		return a.FramebufferStatus
	}
	return glr.FramebufferComplete
}

// DeleteFramebuffers implements glr.API
func (a *API) DeleteFramebuffers(ids ...uint32) {
	a.record("DeleteFramebuffers(%v)", ids)
	for _, id := range ids {
		if a.free(Framebuffer, id) {
			delete(a.framebuffers, id)
			if a.boundFramebuffer == id {
				a.boundFramebuffer = 0
			}
		}
	}
}

// Viewport implements glr.API
func (a *API) Viewport(x, y, width, height int32) {
	a.viewport = [4]int32{x, y, width, height}
	a.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

// ClearColor implements glr.API
func (a *API) ClearColor(r, g, b, alpha float32) {
	a.clearColor = [4]float32{r, g, b, alpha}
	a.record("ClearColor")
}

// Clear implements glr.API
func (a *API) Clear(mask glr.ClearMask) {
	a.record("Clear(%d)", mask)
}

// Enable implements glr.API
func (a *API) Enable(c glr.Capability) {
	a.capabilities[c] = true
	a.record("Enable(%d)", c)
}

// Disable implements glr.API
func (a *API) Disable(c glr.Capability) {
	delete(a.capabilities, c)
	a.record("Disable(%d)", c)
}

// DrawElements implements glr.API
func (a *API) DrawElements(count int32) {
	a.draws = append(a.draws, Draw{
		Program:     a.currentProgram,
		VertexArray: a.boundVertexArray,
		Framebuffer: a.boundFramebuffer,
		Count:       count,
	})
	a.record("DrawElements(%d)", count)
}

func (a *API) setUniform(location int32, v interface{}) {
	if location < 0 {
		return
	}
	if a.uniforms[a.currentProgram] == nil {
		a.uniforms[a.currentProgram] = make(map[int32]interface{})
	}
	a.uniforms[a.currentProgram][location] = v
}

// Uniform1i implements glr.API
func (a *API) Uniform1i(location int32, v int32) {
	a.setUniform(location, v)
	a.record("Uniform1i(%d)", location)
}

// Uniform1f implements glr.API
func (a *API) Uniform1f(location int32, v float32) {
	a.setUniform(location, v)
	a.record("Uniform1f(%d)", location)
}

// Uniform3f implements glr.API
func (a *API) Uniform3f(location int32, x, y, z float32) {
	a.setUniform(location, glm.Vec3{x, y, z})
	a.record("Uniform3f(%d)", location)
}

// UniformMatrix3f implements glr.API
func (a *API) UniformMatrix3f(location int32, m glm.Mat3) {
	a.setUniform(location, m)
	a.record("UniformMatrix3f(%d)", location)
}

// UniformMatrix4f implements glr.API
func (a *API) UniformMatrix4f(location int32, m glm.Mat4) {
	a.setUniform(location, m)
	a.record("UniformMatrix4f(%d)", location)
}

// GetString implements glr.API
func (a *API) GetString(name glr.StringName) string {
	if s, ok := a.Strings[name]; ok {
		return s
	}
	return "gltest " + name.String()
}

// BoundTexture returns the active texture unit and the texture bound to it.
func (a *API) BoundTexture() (unit, texture uint32) {
	return a.activeTexture, a.boundTexture
}
