// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glr implements OpenGL resources with exclusive ownership.
//
// Every resource owns its native handles until Unload is called or the
// ownership is handed over with Move or Assign. Handles are never shared
// between two owners and are deleted exactly once. The zero value of each
// resource is empty and safe to Unload.
//
// All calls must happen on the thread the graphics context is current on.
package glr

import (
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	loggerMu sync.RWMutex
	logger   log.FieldLogger = log.StandardLogger().WithField("component", "glr")
)

// SetLogger replaces the logger used to report leaked resources.
// Pass nil to restore the default.
func SetLogger(l log.FieldLogger) {
	if l == nil {
		l = log.StandardLogger().WithField("component", "glr")
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func currentLogger() log.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// noCopy makes go vet report resources that are copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// handleKind tells the collector which delete call a handle needs.
type handleKind int

const (
	programHandle handleKind = iota
	bufferHandle
	vertexArrayHandle
	textureHandle
	renderbufferHandle
	framebufferHandle
)

// garbage holds handles of resources that were collected by the Go
// runtime without being unloaded. Finalizers run on their own goroutine,
// so the handles wait here until the context thread deletes them.
type garbage struct {
	sync.Mutex
	handles map[handleKind][]uint32
}

func (g *garbage) add(kind handleKind, ids ...uint32) {
	g.Lock()
	defer g.Unlock()
	if g.handles == nil {
		g.handles = make(map[handleKind][]uint32)
	}
	for _, id := range ids {
		if id != 0 {
			g.handles[kind] = append(g.handles[kind], id)
		}
	}
}

func (g *garbage) take() map[handleKind][]uint32 {
	g.Lock()
	defer g.Unlock()
	h := g.handles
	g.handles = nil
	return h
}

// Context binds resources to the native API they are created with.
type Context struct {
	api   API
	trash garbage
}

// NewContext creates a Context over api.
func NewContext(api API) *Context {
	if api == nil {
		panic("glr: nil API")
	}
	return &Context{api: api}
}

// API returns the native API of the context.
func (c *Context) API() API {
	return c.api
}

// CollectGarbage deletes the handles of resources that became
// unreachable while still owning them. It returns the number of
// deleted handles and must be called on the context thread.
func (c *Context) CollectGarbage() int {
	handles := c.trash.take()
	var n int
	for kind, ids := range handles {
		n += len(ids)
		switch kind {
		case programHandle:
			for _, id := range ids {
				c.api.DeleteProgram(id)
			}
		case bufferHandle:
			c.api.DeleteBuffers(ids...)
		case vertexArrayHandle:
			c.api.DeleteVertexArrays(ids...)
		case textureHandle:
			c.api.DeleteTextures(ids...)
		case renderbufferHandle:
			c.api.DeleteRenderbuffers(ids...)
		case framebufferHandle:
			c.api.DeleteFramebuffers(ids...)
		}
	}
	return n
}

// track arms a finalizer on state that hands its handles to the
// collector if the owner is dropped without being unloaded.
func track[T any](c *Context, state *T, what string, handles func(*T) map[handleKind][]uint32) {
	runtime.SetFinalizer(state, func(s *T) {
		leaked := handles(s)
		var n int
		for kind, ids := range leaked {
			c.trash.add(kind, ids...)
			n += len(ids)
		}
		currentLogger().WithField("resource", what).WithField("handles", n).
			Warn("resource was not unloaded, handles queued for collection")
	})
}

// untrack disarms the finalizer installed by track.
func untrack[T any](state *T) {
	runtime.SetFinalizer(state, nil)
}
