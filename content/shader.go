// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/devblok/glscenes/gfx/glr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ShaderSuffixes maps a file suffix to the stage it holds.
var ShaderSuffixes = map[string]glr.ShaderStage{
	".vert": glr.VertexStage,
	".tesc": glr.TessControlStage,
	".tese": glr.TessEvaluationStage,
	".geom": glr.GeometryStage,
	".frag": glr.FragmentStage,
}

// StageOf returns the stage held by a shader file.
func StageOf(name string) (glr.ShaderStage, bool) {
	stage, ok := ShaderSuffixes[filepath.Ext(name)]
	return stage, ok
}

// LoadStages reads every stage stored as base plus a shader suffix,
// for example "triangle.vert" and "triangle.frag" for "triangle".
// Stages are read in pipeline order and the first failure is returned.
// Stages that are not present are skipped, a program with no stage at
// all gives a *FileNotFoundError for the vertex stage.
func LoadStages(src Source, base string) (map[glr.ShaderStage]string, error) {
	sources := make(map[glr.ShaderStage]string)
	for _, suffix := range pipelineSuffixes() {
		stage := ShaderSuffixes[suffix]
		text, err := LoadText(src, base+suffix)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return nil, err
		}
		sources[stage] = text
	}
	if len(sources) == 0 {
		return nil, &FileNotFoundError{Name: base + ".vert"}
	}
	return sources, nil
}

// pipelineSuffixes returns the keys of ShaderSuffixes ordered by the
// position of their stage in the pipeline.
func pipelineSuffixes() []string {
	suffixes := maps.Keys(ShaderSuffixes)
	slices.SortFunc(suffixes, func(a, b string) int {
		ra := slices.Index(glr.Stages, ShaderSuffixes[a])
		rb := slices.Index(glr.Stages, ShaderSuffixes[b])
		if ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	return suffixes
}

// LoadProgram reads the stages of base and builds a program from them.
func LoadProgram(ctx *glr.Context, src Source, base string, uniforms []string) (*glr.ShaderProgram, error) {
	sources, err := LoadStages(src, base)
	if err != nil {
		return nil, err
	}
	program, err := glr.NewShaderProgram(ctx, sources, uniforms)
	if err != nil {
		return nil, fmt.Errorf("LoadProgram(%s): %w", base, err)
	}
	return program, nil
}

// ShaderFiles get the list of shader files below dir. The name of
// the file is the name of the program, the suffix is the stage.
func ShaderFiles(dir string) ([]string, []glr.ShaderStage, error) {
	var (
		shaders     []string
		shaderTypes []glr.ShaderStage
	)
	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() || strings.Count(f.Name(), ".") != 1 {
			return nil
		}
		if stage, ok := StageOf(f.Name()); ok {
			shaders = append(shaders, path)
			shaderTypes = append(shaderTypes, stage)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}
	return shaders, shaderTypes, nil
}
