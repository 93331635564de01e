// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// File is an Archive backed by a memory mapped file.
type File struct {
	*Archive

	mapped *mmap.ReaderAt
}

// OpenFile memory maps the archive at path.
func OpenFile(path string) (*File, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("OpenFile(): %w", err)
	}
	ar, err := Open(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &File{
		Archive: ar,
		mapped:  r,
	}, nil
}

// Close unmaps the file. Readers opened from it must not be used
// afterwards.
func (f *File) Close() error {
	return f.mapped.Close()
}
