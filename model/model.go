// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model holds imported models together with their placement.
package model

import (
	"sync"

	"github.com/devblok/glscenes/geometry"
	glm "github.com/go-gl/mathgl/mgl32"
)

// Object represents the engine supported model
type Object interface {

	// SetPosition sets the object's current position in space.
	// Has to be thread-safe
	SetPosition(glm.Mat4)

	// Position gets the object's current position in space.
	// Has to be thread-safe
	Position() glm.Mat4

	// SetRotation sets the object's rotation matrix.
	// Has to be thread-safe
	SetRotation(glm.Mat4)

	// Rotation gets the object's rotation matrix.
	// Has to be thread-safe
	Rotation() glm.Mat4

	// Transform is the model matrix, rotation applied first.
	Transform() glm.Mat4

	// Mesh returns the vertices and indices ready for upload.
	Mesh() geometry.Mesh
}

// Uniform defines a model-view-projection object
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

var _ Object = (*Model)(nil)

// Model is a mesh held in memory together with its placement.
type Model struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4

	mesh geometry.Mesh
}

// New places mesh at the origin without rotation.
func New(mesh geometry.Mesh) *Model {
	return &Model{
		position: glm.Ident4(),
		rotation: glm.Ident4(),
		mesh:     mesh,
	}
}

// SetPosition implements interface
func (m *Model) SetPosition(pos glm.Mat4) {
	m.mutex.Lock()
	m.position = pos
	m.mutex.Unlock()
}

// Position implements interface
func (m *Model) Position() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position
}

// SetRotation implements interface
func (m *Model) SetRotation(rot glm.Mat4) {
	m.mutex.Lock()
	m.rotation = rot
	m.mutex.Unlock()
}

// Rotation implements interface
func (m *Model) Rotation() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.rotation
}

// Transform implements interface
func (m *Model) Transform() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position.Mul4(m.rotation)
}

// Mesh implements interface
func (m *Model) Mesh() geometry.Mesh {
	return m.mesh
}
