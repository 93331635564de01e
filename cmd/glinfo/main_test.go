// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/gfx/glr/gltest"
)

func TestDescribe(t *testing.T) {
	c := qt.New(t)
	api := gltest.New()
	api.Strings = map[glr.StringName]string{
		glr.Vendor:  "devblok",
		glr.Version: "4.1 core",
	}

	info := Describe(api)
	c.Assert(info.Vendor, qt.Equals, "devblok")
	c.Assert(info.Version, qt.Equals, "4.1 core")
	c.Assert(info.Renderer, qt.Equals, "gltest "+glr.Renderer.String())

	bytes, err := json.Marshal(info)
	c.Assert(err, qt.IsNil)
	c.Assert(string(bytes), qt.Contains, `"vendor":"devblok"`)
}
