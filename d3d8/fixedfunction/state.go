// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package fixedfunction generates vertex and fragment shader source
// for D3D8's fixed-function transform/lighting/texture pipeline —
// the path taken when an application has no programmable vertex or
// pixel shader bound and instead drives the device purely through
// render state (lighting, material, texture-stage combiners).
//
// It shares package program's compiled-pipeline cache rather than
// its bytecode-keyed one: a State (the set of render-state bits that
// affect fixed-function code generation) hashes to a key the same
// way a (vs_hash, ps_hash) pair does, so the two code paths converge
// on one pipeline cache and one eviction policy.
package fixedfunction

import (
	"hash/fnv"

	"dx8gl/d3d8"
)

// State is the render-state subset that changes fixed-function
// shader source: everything about it that SM1.x bytecode would
// otherwise encode as instructions. Two States that compare equal
// produce byte-identical generated source.
type State struct {
	Lighting     bool
	NLight       int
	LightType    [d3d8.NLight]d3d8.LightType
	ColorVertex  bool
	SpecularEnable bool
	NormalizeNormals bool
	FogMode      d3d8.FogMode
	VertexFog    bool

	NStage    int
	ColorOp   [d3d8.NTextureStage]d3d8.TextureOp
	ColorArg1 [d3d8.NTextureStage]d3d8.TextureArg
	ColorArg2 [d3d8.NTextureStage]d3d8.TextureArg
	AlphaOp   [d3d8.NTextureStage]d3d8.TextureOp
	AlphaArg1 [d3d8.NTextureStage]d3d8.TextureArg
	AlphaArg2 [d3d8.NTextureStage]d3d8.TextureArg
	Bound     [d3d8.NTextureStage]bool // whether a texture is bound at this stage

	AlphaTestEnable bool
	AlphaFunc       d3d8.CmpFunc
}

// Hash returns a content hash of s, used as the fixed-function half
// of the pipeline cache key (package program's Key.VS/Key.PS are
// bytecode hashes; for a fixed-function pipeline this hash fills
// Key.VS and Key.PS stays zero, so the two paths share one Key type).
func (s *State) Hash() uint64 {
	h := fnv.New64a()
	w := func(b byte) { h.Write([]byte{b}) }
	wb := func(v bool) {
		if v {
			w(1)
		} else {
			w(0)
		}
	}
	wb(s.Lighting)
	w(byte(s.NLight))
	for i := 0; i < s.NLight; i++ {
		w(byte(s.LightType[i]))
	}
	wb(s.ColorVertex)
	wb(s.SpecularEnable)
	wb(s.NormalizeNormals)
	w(byte(s.FogMode))
	wb(s.VertexFog)
	w(byte(s.NStage))
	for i := 0; i < s.NStage; i++ {
		w(byte(s.ColorOp[i]))
		w(byte(s.ColorArg1[i]))
		w(byte(s.ColorArg2[i]))
		w(byte(s.AlphaOp[i]))
		w(byte(s.AlphaArg1[i]))
		w(byte(s.AlphaArg2[i]))
		wb(s.Bound[i])
	}
	wb(s.AlphaTestEnable)
	w(byte(s.AlphaFunc))
	return h.Sum64()
}
