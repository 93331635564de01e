// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"testing"
)

func TestGarbageSkipsZeroHandles(t *testing.T) {
	var g garbage
	g.add(textureHandle, 0, 3, 0, 4)
	g.add(framebufferHandle, 0)

	handles := g.take()
	if len(handles[textureHandle]) != 2 {
		t.Fatalf("expected 2 textures, got %v", handles[textureHandle])
	}
	if _, ok := handles[framebufferHandle]; ok {
		t.Error("zero framebuffer handle was queued")
	}
	if again := g.take(); len(again) != 0 {
		t.Errorf("take did not empty the queue: %v", again)
	}
}

func TestShaderStageOrder(t *testing.T) {
	stages := []ShaderStage{VertexStage, TessControlStage, TessEvaluationStage, GeometryStage, FragmentStage}
	for i := 1; i < len(stages); i++ {
		if stages[i-1].order() >= stages[i].order() {
			t.Errorf("%s must come before %s", stages[i-1], stages[i])
		}
	}
}

func TestTextureFilters(t *testing.T) {
	tests := []struct {
		filter   Filter
		mips     bool
		min, mag Filter
	}{
		{Nearest, false, Nearest, Nearest},
		{Linear, true, Linear, Linear},
		{LinearMipmapLinear, false, Linear, Linear},
		{LinearMipmapLinear, true, LinearMipmapLinear, Linear},
		{NearestMipmapNearest, true, NearestMipmapNearest, Nearest},
	}
	for _, test := range tests {
		min, mag := TextureFilters(test.filter, test.mips)
		if min != test.min || mag != test.mag {
			t.Errorf("TextureFilters(%#x, %v) = %#x, %#x", test.filter, test.mips, min, mag)
		}
	}
}
