// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"errors"
	"fmt"
	"strings"
)

// package errors
var (
	ErrNotReady = errors.New("glr: resource is not ready")
)

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glr: %s shader compile error: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "glr: shader linking error: " + strings.TrimSpace(e.Log)
}

// IncompleteFrameBufferError is returned when the driver reports a
// framebuffer as incomplete after all attachments were added.
type IncompleteFrameBufferError struct {
	Status        FramebufferStatus
	Width, Height int32

	// Formats lists the internal formats of the texture attachments
	// followed by those of the render target attachments.
	Formats []InternalFormat
}

func (e *IncompleteFrameBufferError) Error() string {
	formats := make([]string, len(e.Formats))
	for i, f := range e.Formats {
		formats[i] = f.String()
	}
	return fmt.Sprintf("glr: framebuffer %dx%d [%s] is incomplete: %s",
		e.Width, e.Height, strings.Join(formats, ", "), e.Status)
}

// AllocationError reports a driver call that returned no handle.
type AllocationError struct {
	// Object names what was being created, "buffer" or "texture" for
	// example.
	Object string
}

func (e *AllocationError) Error() string {
	return "glr: failed to allocate " + e.Object
}
