// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command glscenes opens a window and shows the scenes one at a time.
//
// Keys: left and right switch scenes, R reloads the current one. In the
// passes scene 1 to 5 pick the offscreen scale and F toggles filtering.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/core"
	"github.com/devblok/glscenes/gfx/glr"
	"github.com/devblok/glscenes/gfx/glr/glcore"
	"github.com/devblok/glscenes/scene"
	"github.com/devblok/glscenes/utility/kar"
)

func init() {
	runtime.LockOSThread()
}

var (
	configFile = flag.String("config", "", "TOML configuration file")
	dumpConfig = flag.Bool("dump-config", false, "Print the effective configuration and exit")
)

func newWindow(cfg core.WindowConfiguration) (*sdl.Window, sdl.GLContext, error) {
	for attr, value := range map[sdl.GLattr]int{
		sdl.GL_CONTEXT_MAJOR_VERSION: 4,
		sdl.GL_CONTEXT_MINOR_VERSION: 1,
		sdl.GL_CONTEXT_PROFILE_MASK:  sdl.GL_CONTEXT_PROFILE_CORE,
		sdl.GL_CONTEXT_FLAGS:         sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG,
		sdl.GL_DOUBLEBUFFER:          1,
		sdl.GL_DEPTH_SIZE:            24,
		sdl.GL_STENCIL_SIZE:          8,
	} {
		if err := sdl.GLSetAttribute(attr, value); err != nil {
			return nil, nil, err
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		cfg.Width,
		cfg.Height,
		flags)
	if err != nil {
		return nil, nil, err
	}

	glContext, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.WithError(err).Warn("swap interval not set")
	}
	return window, glContext, nil
}

// openContent picks the content source: an archive, a directory or the
// assets built into the binary, in that order.
func openContent(cfg core.ContentConfiguration) (src content.Source, closer func(), err error) {
	closer = func() {}
	switch {
	case cfg.Archive != "":
		ar, err := kar.OpenFile(cfg.Archive)
		if err != nil {
			return nil, nil, err
		}
		src, closer = content.NewArchive(ar.Archive), func() { ar.Close() }
		log.WithField("archive", cfg.Archive).Info("content from archive")
	case cfg.Directory != "":
		src = content.Dir(cfg.Directory)
		log.WithField("directory", cfg.Directory).Info("content from directory")
	default:
		src = scene.Assets
		log.Info("built in content")
	}

	if cfg.CacheSize > 0 {
		cached, err := content.NewCached(src, cfg.CacheSize)
		if err != nil {
			closer()
			return nil, nil, err
		}
		src = cached
	}
	return src, closer, nil
}

func main() {
	flag.Parse()

	configuration, err := core.LoadConfiguration(*configFile, ".env")
	if err != nil {
		log.Fatal(err)
	}
	if *dumpConfig {
		if err := core.WriteConfiguration(os.Stdout, configuration); err != nil {
			log.Fatal(err)
		}
		return
	}
	level, _ := configuration.Level()
	log.SetLevel(level)

	if err := run(configuration); err != nil {
		log.Fatal(err)
	}
}

func run(configuration core.Configuration) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	window, glContext, err := newWindow(configuration.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()
	defer sdl.GLDeleteContext(glContext)

	api, err := glcore.New()
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"vendor":   api.GetString(glr.Vendor),
		"renderer": api.GetString(glr.Renderer),
		"version":  api.GetString(glr.Version),
	}).Info("OpenGL context created")
	glr.SetLogger(log.WithField("component", "glr"))

	src, closeContent, err := openContent(configuration.Content)
	if err != nil {
		return err
	}
	defer closeContent()

	var changes <-chan string
	if configuration.Content.Watch && configuration.Content.Directory != "" {
		watcher, err := scene.Watch(configuration.Content.Directory)
		if err != nil {
			return err
		}
		defer watcher.Close()
		changes = watcher.Changes()
	}

	width, height := window.GLGetDrawableSize()
	driver := scene.NewDriver(scene.Environment{
		Context: glr.NewContext(api),
		Content: src,
		Width:   width,
		Height:  height,
	}, log.StandardLogger(), scene.All()...)
	defer driver.Close()

	if err := driver.SelectByName(configuration.Scene); err != nil {
		log.WithError(err).Warn("starting with the first scene")
		driver.Select(0)
	}
	updateTitle(window, configuration.Window.Title, driver)

	time := core.NewTime(configuration.Time)
	defer time.Stop()

EventLoop:
	for {
		select {
		case name, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if cached, ok := src.(*content.Cached); ok {
				cached.Forget(name)
			}
			log.WithField("file", name).Info("content changed")
			driver.Reload()
		case <-time.FpsTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.QuitEvent:
					break EventLoop
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
						driver.Resize(window.GLGetDrawableSize())
						updateTitle(window, configuration.Window.Title, driver)
					}
				case *sdl.KeyboardEvent:
					if et.Type != sdl.KEYDOWN {
						continue
					}
					if et.Keysym.Sym == sdl.K_ESCAPE {
						break EventLoop
					}
					handleKey(driver, et.Keysym.Sym)
					updateTitle(window, configuration.Window.Title, driver)
				}
			}

			driver.Update(time.Frame())
			driver.Render()
			window.GLSwap()
		}
	}

	log.Println("Event loop exited")
	return nil
}

func handleKey(driver *scene.Driver, key sdl.Keycode) {
	switch key {
	case sdl.K_RIGHT:
		driver.Next()
		return
	case sdl.K_LEFT:
		driver.Previous()
		return
	case sdl.K_r:
		driver.Reload()
		return
	}

	passes, ok := driver.Current().(*scene.Passes)
	if !ok || !driver.Loaded() {
		return
	}
	switch {
	case key == sdl.K_f:
		passes.SetFiltering(!passes.Filtering())
	case key >= sdl.K_1 && key < sdl.K_1+sdl.Keycode(len(scene.PassScales)):
		if err := passes.SetScale(int(key - sdl.K_1)); err != nil {
			log.WithError(err).Error("offscreen scale not changed")
		}
	}
}

func updateTitle(window *sdl.Window, title string, driver *scene.Driver) {
	current := driver.Current()
	if current == nil {
		window.SetTitle(title)
		return
	}
	text := fmt.Sprintf("%s - %s", title, current.Name())
	if passes, ok := current.(*scene.Passes); ok && driver.Loaded() {
		text += fmt.Sprintf(" (%s, filtering %t)", passes.Resolution(), passes.Filtering())
	}
	if !driver.Loaded() {
		text += " (failed to load)"
	}
	window.SetTitle(text)
}
