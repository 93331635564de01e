// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core holds the configuration and time services shared by the
// glscenes commands.
package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "GLSCENES_"

// Configuration defines a global configuration setting
type Configuration struct {
	Time     TimeConfiguration    `toml:"time"`
	Window   WindowConfiguration  `toml:"window"`
	Content  ContentConfiguration `toml:"content"`
	LogLevel string               `toml:"log_level"`

	// Scene is the name of the scene shown first.
	Scene string `toml:"scene"`
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int `toml:"frames_per_second"`

	// EventPollDelay is the delay between event polls in milliseconds.
	EventPollDelay int `toml:"event_poll_delay"`
}

// WindowConfiguration is used to configure the window and its GL context
type WindowConfiguration struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
}

// ContentConfiguration tells where shaders, textures and models come from.
// An Archive takes precedence over Directory, with neither set the
// content built into the binary is used.
type ContentConfiguration struct {
	Directory string `toml:"directory"`
	Archive   string `toml:"archive"`
	CacheSize int    `toml:"cache_size"`

	// Watch reloads the current scene when files in Directory change.
	Watch bool `toml:"watch"`
}

// DefaultConfiguration is used when nothing else is given
var DefaultConfiguration = Configuration{
	Time: TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  10,
	},
	Window: WindowConfiguration{
		Title:  "glscenes",
		Width:  800,
		Height: 600,
		VSync:  true,
	},
	Content: ContentConfiguration{
		CacheSize: 64,
	},
	LogLevel: "info",
	Scene:    "triangle",
}

// ErrInvalidConfiguration is returned for values that can not be used.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// LoadConfiguration starts from DefaultConfiguration, decodes the TOML
// file at path over it and then applies GLSCENES_* overrides from the
// environment and the given .env files. An empty path skips the file,
// missing .env files are ignored.
func LoadConfiguration(path string, envFiles ...string) (Configuration, error) {
	cfg := DefaultConfiguration
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("LoadConfiguration(): %w", err)
		}
	}

	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return cfg, fmt.Errorf("LoadConfiguration(): %s: %w", file, err)
		}
		for key, value := range values {
			envy.Set(key, value)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, fmt.Errorf("LoadConfiguration(): %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Configuration) applyEnv() error {
	str := func(name string, dst *string) {
		if v := envy.Get(EnvPrefix+name, ""); v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v := envy.Get(EnvPrefix+name, "")
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v := envy.Get(EnvPrefix+name, "")
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("TITLE", &c.Window.Title)
	str("CONTENT_DIR", &c.Content.Directory)
	str("ARCHIVE", &c.Content.Archive)
	str("LOG_LEVEL", &c.LogLevel)
	str("SCENE", &c.Scene)

	width, height := int(c.Window.Width), int(c.Window.Height)
	for name, dst := range map[string]*int{
		"FPS":              &c.Time.FramesPerSecond,
		"EVENT_POLL_DELAY": &c.Time.EventPollDelay,
		"WIDTH":            &width,
		"HEIGHT":           &height,
		"CACHE_SIZE":       &c.Content.CacheSize,
	} {
		if err := integer(name, dst); err != nil {
			return err
		}
	}
	c.Window.Width, c.Window.Height = int32(width), int32(height)

	for name, dst := range map[string]*bool{
		"VSYNC":      &c.Window.VSync,
		"FULLSCREEN": &c.Window.Fullscreen,
		"WATCH":      &c.Content.Watch,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports values the commands can not run with.
func (c Configuration) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfiguration, c.Window.Width, c.Window.Height)
	case c.Time.FramesPerSecond < 0:
		return fmt.Errorf("%w: frames per second %d", ErrInvalidConfiguration, c.Time.FramesPerSecond)
	case c.Time.EventPollDelay < 0:
		return fmt.Errorf("%w: event poll delay %d", ErrInvalidConfiguration, c.Time.EventPollDelay)
	case c.Content.CacheSize < 0:
		return fmt.Errorf("%w: cache size %d", ErrInvalidConfiguration, c.Content.CacheSize)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	return nil
}

// Level returns the configured log level.
func (c Configuration) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// WriteConfiguration encodes cfg as TOML.
func WriteConfiguration(w io.Writer, cfg Configuration) error {
	return toml.NewEncoder(w).Encode(cfg)
}
