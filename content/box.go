// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"bytes"
	"io"

	"github.com/gobuffalo/packr"
)

// Box is a Source over a packr box, content that is either read from
// disk during development or embedded into the binary.
type Box struct {
	box packr.Box
}

// NewBox wraps b.
func NewBox(b packr.Box) Box {
	return Box{box: b}
}

// Open implements Source
func (b Box) Open(name string) (io.ReadCloser, error) {
	if !b.box.Has(name) {
		return nil, &FileNotFoundError{Name: name}
	}
	data, err := b.box.Find(name)
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// List returns the names of every file in the box.
func (b Box) List() []string {
	return b.box.List()
}
