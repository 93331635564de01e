// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"io"
	"os"
	"path/filepath"
)

// Dir is a Source reading files below a directory. Names use forward
// slashes.
type Dir string

// Open implements Source
func (d Dir) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, openError(name, err)
	}
	return f, nil
}

// Path returns the file system path of name.
func (d Dir) Path(name string) string {
	return filepath.Join(string(d), filepath.FromSlash(name))
}
