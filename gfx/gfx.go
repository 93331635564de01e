// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines rendering related features that renderers must implement.
package gfx

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Unload releases memory occupied by the implementing structure.
	// Calling it on an already released item does nothing.
	Unload()
}

// Resource describes a rendering resource that owns native handles.
// A Resource is either ready for use or empty, there is no other state.
type Resource interface {
	Releasable

	// Ready reports whether the resource was fully constructed
	// and has not been released since.
	Ready() bool
}

// Loader describes a resource loader mechanism.
type Loader interface {

	// Load tries to find and load the resource
	// asociated with the provided name.
	Load(name string) (Resource, error)
}

// UnloadAll releases every given resource, skipping nil ones.
func UnloadAll(resources ...Releasable) {
	for _, r := range resources {
		if r != nil {
			r.Unload()
		}
	}
}
