// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package scene

import (
	"github.com/gobuffalo/packr"

	"github.com/devblok/glscenes/content"
)

// Assets holds the shaders, textures and models every scene needs.
// They are read from the assets directory during development and
// embedded by the packr tool for release builds.
var Assets = content.NewBox(packr.NewBox("../assets"))
