// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"github.com/devblok/glscenes/gfx"
	"github.com/devblok/glscenes/gfx/glr"
)

// TextureLoader loads images from a Source into textures.
type TextureLoader struct {
	Context *glr.Context
	Source  Source

	Filter glr.Filter
	Space  glr.ColorSpace
	Mips   bool
}

var _ gfx.Loader = (*TextureLoader)(nil)

// Load implements gfx.Loader
func (l *TextureLoader) Load(name string) (gfx.Resource, error) {
	tex, err := l.LoadTexture(name)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// LoadTexture decodes name and uploads it as a texture.
func (l *TextureLoader) LoadTexture(name string) (*glr.Texture2D, error) {
	img, err := LoadImage(l.Source, name)
	if err != nil {
		return nil, err
	}
	return glr.NewTexture2DFromImage(l.Context, img, l.Filter, l.Space, l.Mips), nil
}
