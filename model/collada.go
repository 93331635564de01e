// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/devblok/glscenes/geometry"
	"github.com/devblok/glscenes/util/collada"
	glm "github.com/go-gl/mathgl/mgl32"
)

// package errors
var (
	ErrNoGeometry     = errors.New("collada document has no geometry")
	ErrSourceNotFound = errors.New("source type not found")
	ErrBadIndex       = errors.New("triangle index out of range")
)

// DefaultColor is given to every imported vertex.
var DefaultColor = glm.Vec3{1.0, 1.0, 0.0}

// ImportCollada reads given file and converts the first Collada
// geometry to engine's internal object. Vertices that share position,
// normal and texture coordinates are merged.
func ImportCollada(fileContents []byte) (*Model, error) {
	var colladaModel collada.Collada
	if err := xml.Unmarshal(fileContents, &colladaModel); err != nil {
		return nil, err
	}
	if len(colladaModel.Geometries) == 0 {
		return nil, ErrNoGeometry
	}

	mesh := colladaModel.Geometries[0].Mesh
	triangles := mesh.Triangles
	stride := triangles.Stride()
	if stride == 0 {
		return nil, fmt.Errorf("ImportCollada(): %w: triangles have no inputs", ErrSourceNotFound)
	}

	type input struct {
		source collada.Source
		offset int
	}
	var positions, normals, uvs *input
	for _, in := range triangles.Inputs {
		switch in.Semantic {
		case "VERTEX":
			source, err := vertexSource(mesh, in.Source)
			if err != nil {
				return nil, err
			}
			positions = &input{source, int(in.Offset)}
		case "NORMAL":
			if source, ok := mesh.FindSource(in.Source); ok {
				normals = &input{source, int(in.Offset)}
			}
		case "TEXCOORD":
			if uvs == nil {
				if source, ok := mesh.FindSource(in.Source); ok {
					uvs = &input{source, int(in.Offset)}
				}
			}
		}
	}
	if positions == nil {
		return nil, fmt.Errorf("ImportCollada(): %w: positions", ErrSourceNotFound)
	}

	result := geometry.Mesh{Attrs: geometry.Position | geometry.Color}
	if normals != nil {
		result.Attrs |= geometry.Normal
	}
	if uvs != nil {
		result.Attrs |= geometry.UV
	}

	merged := make(map[[3]int]uint32)
	for idx := 0; idx+stride <= len(triangles.Index); idx += stride {
		indices := triangles.Index[idx : idx+stride]

		key := [3]int{indices[positions.offset], -1, -1}
		if normals != nil {
			key[1] = indices[normals.offset]
		}
		if uvs != nil {
			key[2] = indices[uvs.offset]
		}
		if existing, ok := merged[key]; ok {
			result.Indices = append(result.Indices, existing)
			continue
		}

		vert := geometry.Vertex{Color: DefaultColor}
		pos, ok := positions.source.Element(key[0], 3)
		if !ok {
			return nil, ErrBadIndex
		}
		vert.Position = glm.Vec3{pos[0], pos[1], pos[2]}
		if normals != nil {
			n, ok := normals.source.Element(key[1], 3)
			if !ok {
				return nil, ErrBadIndex
			}
			vert.Normal = glm.Vec3{n[0], n[1], n[2]}
		}
		if uvs != nil {
			uv, ok := uvs.source.Element(key[2], 2)
			if !ok {
				return nil, ErrBadIndex
			}
			vert.UV = glm.Vec2{uv[0], uv[1]}
		}

		merged[key] = uint32(len(result.Vertices))
		result.Indices = append(result.Indices, uint32(len(result.Vertices)))
		result.Vertices = append(result.Vertices, vert)
	}

	return New(result), nil
}

// vertexSource resolves a VERTEX input through the <vertices> element
// to the source holding the positions.
func vertexSource(mesh collada.Mesh, ref string) (collada.Source, error) {
	if strings.TrimPrefix(ref, "#") == mesh.Vertices.ID {
		for _, in := range mesh.Vertices.Inputs {
			if in.Semantic != "POSITION" {
				continue
			}
			if source, ok := mesh.FindSource(in.Source); ok {
				return source, nil
			}
		}
	}
	return findSource(mesh.Source, "positions")
}

func findSource(sources []collada.Source, dataType string) (collada.Source, error) {
	for _, s := range sources {
		if strings.HasSuffix(s.ID, fmt.Sprintf("-%s", dataType)) {
			return s, nil
		}
	}
	return collada.Source{}, ErrSourceNotFound
}
