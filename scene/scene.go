// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package scene drives a set of small OpenGL scenes. Each scene owns its
// GPU resources between Load and Unload.
package scene

import (
	"time"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/gfx/glr"
)

// Environment is what every scene is loaded with.
type Environment struct {
	Context *glr.Context
	Content content.Source

	// Width and Height of the default framebuffer.
	Width, Height int32
}

// Aspect returns the width to height ratio of the default framebuffer.
func (e Environment) Aspect() float32 {
	if e.Height == 0 {
		return 1
	}
	return float32(e.Width) / float32(e.Height)
}

// Scene is a self contained demonstration.
type Scene interface {
	// Name is shown to the user and used to select the scene.
	Name() string

	// Load creates every resource of the scene. When it fails, whatever
	// was created is released before returning.
	Load(env Environment) error

	// Update advances the scene by delta.
	Update(delta time.Duration)

	// Render issues the draw calls. The default framebuffer is bound
	// and cleared already.
	Render()

	// Unload releases every resource of the scene.
	Unload()
}

// Resizer is implemented by scenes that depend on the size of the
// default framebuffer.
type Resizer interface {
	Resize(width, height int32)
}

// All returns a fresh instance of every scene, in presentation order.
func All() []Scene {
	return []Scene{
		&Triangle{},
		NewUniforms(),
		NewTextures(),
		NewPasses(),
	}
}
