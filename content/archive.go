// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"io"

	"github.com/devblok/glscenes/utility/kar"
)

// Archive is a Source over a kar archive.
type Archive struct {
	archive *kar.Archive
}

// NewArchive wraps ar.
func NewArchive(ar *kar.Archive) Archive {
	return Archive{archive: ar}
}

// Open implements Source
func (a Archive) Open(name string) (io.ReadCloser, error) {
	r, err := a.archive.Open(name)
	if err != nil {
		return nil, openError(name, err)
	}
	return io.NopCloser(r), nil
}
