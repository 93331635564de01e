// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"bytes"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru"
)

// Cached keeps the content of the most recently used names of a
// Source in memory.
type Cached struct {
	src   Source
	cache *lru.Cache
}

// NewCached caches up to size entries of src.
func NewCached(src Source, size int) (*Cached, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("NewCached(): %s", err)
	}
	return &Cached{
		src:   src,
		cache: cache,
	}, nil
}

// Open implements Source
func (c *Cached) Open(name string) (io.ReadCloser, error) {
	if data, ok := c.cache.Get(name); ok {
		return io.NopCloser(bytes.NewReader(data.([]byte))), nil
	}
	data, err := LoadBytes(c.src, name)
	if err != nil {
		return nil, err
	}
	c.cache.Add(name, data)
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Forget drops the cached content of name, the next Open reads it
// from the underlying Source again.
func (c *Cached) Forget(name string) {
	c.cache.Remove(name)
}

// Purge drops all cached content.
func (c *Cached) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.Len()
}
