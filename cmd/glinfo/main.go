// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command glinfo prints what the OpenGL driver reports about itself.
package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/gfx/glr/glcore"
)

func init() {
	runtime.LockOSThread()
}

// Info is the driver description printed as JSON.
type Info struct {
	Vendor                 string `json:"vendor"`
	Renderer               string `json:"renderer"`
	Version                string `json:"version"`
	ShadingLanguageVersion string `json:"shading_language_version"`
}

// Describe asks api for every driver string.
func Describe(api glr.API) Info {
	return Info{
		Vendor:                 api.GetString(glr.Vendor),
		Renderer:               api.GetString(glr.Renderer),
		Version:                api.GetString(glr.Version),
		ShadingLanguageVersion: api.GetString(glr.ShadingLanguageVersion),
	}
}

func main() {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	window, err := sdl.CreateWindow("glinfo", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		1, 1, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()

	glContext, err := window.GLCreateContext()
	if err != nil {
		log.Fatal(err)
	}
	defer sdl.GLDeleteContext(glContext)

	api, err := glcore.New()
	if err != nil {
		log.Fatal(err)
	}

	if bytes, err := json.Marshal(Describe(api)); err == nil {
		fmt.Printf("%s\n", bytes)
	} else {
		log.Fatal(err)
	}
}
