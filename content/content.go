// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package content loads scene content, shader sources, images and raw
// bytes, from a directory, a packr box or a kar archive.
package content

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Source opens named content. Missing content is reported with an
// error matching fs.ErrNotExist.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// FileNotFoundError is returned when the named content does not exist.
type FileNotFoundError struct {
	Name string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("content: cannot open %q: file not found", e.Name)
}

// Unwrap makes the error match fs.ErrNotExist.
func (e *FileNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ReadError is returned when content exists but could not be read.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("content: cannot read %q: %s", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func openError(name string, err error) error {
	var notFound *FileNotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &FileNotFoundError{Name: name}
	}
	return &ReadError{Name: name, Err: err}
}

// LoadBytes returns the whole content of name.
func LoadBytes(src Source, name string) ([]byte, error) {
	r, err := src.Open(name)
	if err != nil {
		return nil, openError(name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	return data, nil
}

// LoadText returns the content of name as a string.
func LoadText(src Source, name string) (string, error) {
	data, err := LoadBytes(src, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
