// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package fixedfunction

import (
	"strings"
	"testing"

	"dx8gl/d3d8"
)

func TestHashStableForEqualState(t *testing.T) {
	a := &State{Lighting: true, NLight: 1, LightType: [d3d8.NLight]d3d8.LightType{d3d8.LightDirectional}}
	b := &State{Lighting: true, NLight: 1, LightType: [d3d8.NLight]d3d8.LightType{d3d8.LightDirectional}}
	if a.Hash() != b.Hash() {
		t.Fatal("equal states hashed differently")
	}
}

func TestHashDiffersForDifferentState(t *testing.T) {
	a := &State{Lighting: true}
	b := &State{Lighting: false}
	if a.Hash() == b.Hash() {
		t.Fatal("different states hashed the same")
	}
}

func TestGenerateUnlitPassthrough(t *testing.T) {
	s := &State{NStage: 1, ColorOp: [d3d8.NTextureStage]d3d8.TextureOp{d3d8.TOPModulate},
		ColorArg1: [d3d8.NTextureStage]d3d8.TextureArg{d3d8.ArgTexture},
		ColorArg2: [d3d8.NTextureStage]d3d8.TextureArg{d3d8.ArgCurrent},
		AlphaOp:   [d3d8.NTextureStage]d3d8.TextureOp{d3d8.TOPSelectArg1},
		AlphaArg1: [d3d8.NTextureStage]d3d8.TextureArg{d3d8.ArgTexture},
		Bound:     [d3d8.NTextureStage]bool{true},
	}
	vs, fs := Generate(s)
	if !strings.Contains(vs, "gl_Position = worldViewProj * v0;") {
		t.Fatalf("vertex shader missing transform:\n%s", vs)
	}
	if !strings.Contains(fs, "uniform sampler2D sampler0;") {
		t.Fatalf("fragment shader missing bound sampler:\n%s", fs)
	}
	if !strings.Contains(fs, "fragColor = current;") {
		t.Fatalf("fragment shader missing output assignment:\n%s", fs)
	}
}

func TestGenerateLitVertex(t *testing.T) {
	s := &State{Lighting: true, NLight: 2, SpecularEnable: true, NormalizeNormals: true}
	vs, _ := Generate(s)
	if strings.Count(vs, "float ndotl") != 2 {
		t.Fatalf("expected 2 lighting terms, got:\n%s", vs)
	}
	if !strings.Contains(vs, "oD1 = matSpecular;") {
		t.Fatalf("expected specular output, got:\n%s", vs)
	}
}
