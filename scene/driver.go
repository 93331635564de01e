// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/devblok/glscenes/gfx/glr"
	log "github.com/sirupsen/logrus"
)

// ErrUnknownScene is returned when selecting a scene that does not exist.
var ErrUnknownScene = errors.New("unknown scene")

// ClearColor fills the default framebuffer before every frame.
var ClearColor = [4]float32{0.1, 0.1, 0.1, 1.0}

// Driver runs one scene at a time through its Load, Update, Render and
// Unload lifecycle. All methods must be called on the GL thread.
type Driver struct {
	env     Environment
	scenes  []Scene
	current int
	loaded  bool
	log     log.FieldLogger
}

// NewDriver creates a driver over scenes. Nothing is loaded until
// Select is called.
func NewDriver(env Environment, logger log.FieldLogger, scenes ...Scene) *Driver {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Driver{
		env:     env,
		scenes:  scenes,
		current: -1,
		log:     logger.WithField("component", "scene"),
	}
}

// Scenes returns the scenes of the driver.
func (d *Driver) Scenes() []Scene {
	return d.scenes
}

// Current returns the selected scene, nil before the first Select.
func (d *Driver) Current() Scene {
	if d.current < 0 {
		return nil
	}
	return d.scenes[d.current]
}

// Loaded reports whether the selected scene loaded successfully.
func (d *Driver) Loaded() bool {
	return d.loaded
}

// Select unloads the current scene and loads the i-th one. A scene that
// fails to load stays selected but is neither updated nor rendered.
func (d *Driver) Select(i int) error {
	if i < 0 || i >= len(d.scenes) {
		return fmt.Errorf("Select(%d): %w", i, ErrUnknownScene)
	}
	d.unload()
	d.current = i
	return d.load()
}

// SelectByName selects the scene with the given name.
func (d *Driver) SelectByName(name string) error {
	for i, s := range d.scenes {
		if s.Name() == name {
			return d.Select(i)
		}
	}
	return fmt.Errorf("SelectByName(%s): %w", name, ErrUnknownScene)
}

// Next selects the scene after the current one, wrapping around.
func (d *Driver) Next() error {
	if len(d.scenes) == 0 {
		return ErrUnknownScene
	}
	return d.Select((d.current + 1) % len(d.scenes))
}

// Previous selects the scene before the current one, wrapping around.
func (d *Driver) Previous() error {
	if len(d.scenes) == 0 {
		return ErrUnknownScene
	}
	i := d.current - 1
	if i < 0 {
		i = len(d.scenes) - 1
	}
	return d.Select(i)
}

// Reload unloads and loads the current scene again, picking up changed
// content.
func (d *Driver) Reload() error {
	if d.current < 0 {
		return nil
	}
	d.unload()
	d.log.WithField("scene", d.scenes[d.current].Name()).Info("reloading scene")
	return d.load()
}

// Resize records the new size of the default framebuffer and passes it
// to the current scene.
func (d *Driver) Resize(width, height int32) {
	d.env.Width, d.env.Height = width, height
	if !d.loaded {
		return
	}
	if r, ok := d.scenes[d.current].(Resizer); ok {
		r.Resize(width, height)
	}
}

// Update advances the current scene.
func (d *Driver) Update(delta time.Duration) {
	if d.loaded {
		d.scenes[d.current].Update(delta)
	}
}

// Render clears the default framebuffer and renders the current scene.
// Handles of resources that were dropped without being unloaded are
// deleted afterwards.
func (d *Driver) Render() {
	api := d.env.Context.API()
	api.BindFramebuffer(0)
	api.Viewport(0, 0, d.env.Width, d.env.Height)
	api.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	api.Clear(glr.ColorBufferBit | glr.DepthBufferBit)

	if d.loaded {
		d.scenes[d.current].Render()
	}

	if n := d.env.Context.CollectGarbage(); n > 0 {
		d.log.WithField("handles", n).Debug("collected leaked handles")
	}
}

// Close unloads the current scene.
func (d *Driver) Close() {
	d.unload()
	d.env.Context.CollectGarbage()
}

func (d *Driver) load() error {
	s := d.scenes[d.current]
	logger := d.log.WithField("scene", s.Name())
	if err := s.Load(d.env); err != nil {
		logger.WithError(err).Error("scene failed to load")
		return fmt.Errorf("load %s: %w", s.Name(), err)
	}
	d.loaded = true
	logger.Info("scene loaded")
	return nil
}

func (d *Driver) unload() {
	if !d.loaded {
		return
	}
	d.scenes[d.current].Unload()
	d.loaded = false
	d.log.WithField("scene", d.scenes[d.current].Name()).Debug("scene unloaded")
}
