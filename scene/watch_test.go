// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/glscenes/scene"
)

func TestWatch(t *testing.T) {
	c := qt.New(t)
	root := t.TempDir()
	c.Assert(os.Mkdir(filepath.Join(root, "shaders"), 0o755), qt.IsNil)

	w, err := scene.Watch(root)
	c.Assert(err, qt.IsNil)

	path := filepath.Join(root, "shaders", "triangle.frag")
	c.Assert(os.WriteFile(path, []byte("void main() {}\n"), 0o644), qt.IsNil)

	select {
	case name := <-w.Changes():
		c.Assert(name, qt.Equals, "shaders/triangle.frag")
	case <-time.After(5 * time.Second):
		c.Fatal("no change reported")
	}

	c.Assert(w.Close(), qt.IsNil)
	for range w.Changes() {
	}
}

func TestWatchMissingRoot(t *testing.T) {
	_, err := scene.Watch(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("watching a missing directory succeeded")
	}
}
