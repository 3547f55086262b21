// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package state

import (
	"fmt"
	"hash/fnv"

	"dx8gl/d3d8"
	"dx8gl/d3d8/fixedfunction"
	"dx8gl/driver"
	"dx8gl/linear"
)

// Transform holds the transform-state registers D3D8 exposes
// (D3DTRANSFORMSTATETYPE) plus the world-view and world-view-proj
// products derived from them. The products are computed on demand:
// setting World, View or Projection only marks them stale, and the
// accessors recompute and cache the result the first time it is
// asked for after a change.
type Transform struct {
	World      linear.M4RowMajor
	View       linear.M4RowMajor
	Projection linear.M4RowMajor

	worldView     linear.M4RowMajor
	worldViewProj linear.M4RowMajor
	wvDirty       bool
	wvpDirty      bool
}

// NewTransform returns a Transform with all three matrices set to
// identity.
func NewTransform() Transform {
	id := linear.M4RowMajor{}
	id.I()
	return Transform{World: id, View: id, Projection: id, wvDirty: true, wvpDirty: true}
}

// SetWorld replaces the world matrix and invalidates both derived
// products.
func (t *Transform) SetWorld(m linear.M4RowMajor) {
	t.World = m
	t.wvDirty = true
	t.wvpDirty = true
}

// SetView replaces the view matrix and invalidates both derived
// products.
func (t *Transform) SetView(m linear.M4RowMajor) {
	t.View = m
	t.wvDirty = true
	t.wvpDirty = true
}

// SetProjection replaces the projection matrix and invalidates the
// world-view-projection product (the world-view product does not
// depend on it).
func (t *Transform) SetProjection(m linear.M4RowMajor) {
	t.Projection = m
	t.wvpDirty = true
}

// WorldView returns World * View, recomputing it only if either
// input changed since the last call.
func (t *Transform) WorldView() linear.M4RowMajor {
	if t.wvDirty {
		var m linear.M4RowMajor
		m.Mul(&t.World, &t.View)
		t.worldView = m
		t.wvDirty = false
	}
	return t.worldView
}

// WorldViewProj returns World * View * Projection, recomputing it
// only if any of the three inputs changed since the last call.
func (t *Transform) WorldViewProj() linear.M4RowMajor {
	if t.wvpDirty {
		wv := t.WorldView()
		var m linear.M4RowMajor
		m.Mul(&wv, &t.Projection)
		t.worldViewProj = m
		t.wvpDirty = false
	}
	return t.worldViewProj
}

// RenderState mirrors the subset of D3DRENDERSTATETYPE that the
// Manager tracks directly (texture-stage state lives in Stages
// instead, since it is indexed separately by the D3D8 API).
type RenderState struct {
	Lighting         bool
	Ambient          [4]float32
	FogEnable        bool
	FogMode          d3d8.FogMode
	FogColor         [4]float32
	FogStart, FogEnd float32
	FogDensity       float32
	ColorVertex      bool
	SpecularEnable   bool
	NormalizeNormals bool

	CullMode d3d8.CullMode
	FillMode d3d8.FillMode

	ZEnable    bool
	ZWriteEnable bool
	ZFunc      d3d8.CmpFunc

	AlphaTestEnable bool
	AlphaFunc       d3d8.CmpFunc
	AlphaRef        float32

	AlphaBlendEnable bool
	SrcBlend         d3d8.BlendFactor
	DestBlend        d3d8.BlendFactor
	BlendOp          d3d8.BlendOp

	StencilEnable    bool
	StencilFunc      d3d8.CmpFunc
	StencilFail      d3d8.StencilOp
	StencilZFail     d3d8.StencilOp
	StencilPass      d3d8.StencilOp
	StencilRef       uint32
	StencilMask      uint32
	StencilWriteMask uint32

	ColorWriteEnable uint32 // bit 0..3: R,G,B,A (D3DCOLORWRITEENABLE_*)
}

// defaultRenderState returns the D3D8 device's documented initial
// render-state values.
func defaultRenderState() RenderState {
	return RenderState{
		Ambient:          [4]float32{0, 0, 0, 0},
		FogColor:         [4]float32{0, 0, 0, 0},
		FogStart:         0,
		FogEnd:           1,
		FogDensity:       1,
		CullMode:         d3d8.CullCCW,
		FillMode:         d3d8.FillSolid,
		ZEnable:          true,
		ZWriteEnable:     true,
		ZFunc:            d3d8.CmpLessEqual,
		AlphaFunc:        d3d8.CmpAlways,
		SrcBlend:         d3d8.BlendOne,
		DestBlend:        d3d8.BlendZero,
		BlendOp:          d3d8.BlendOpAdd,
		StencilFunc:      d3d8.CmpAlways,
		StencilFail:      d3d8.StencilKeep,
		StencilZFail:     d3d8.StencilKeep,
		StencilPass:      d3d8.StencilKeep,
		StencilMask:      0xffffffff,
		StencilWriteMask: 0xffffffff,
		ColorWriteEnable: 0xf,
	}
}

// Manager owns the device's shadow copy of every piece of D3D8
// state a draw call can observe: transforms, lights, material,
// viewport/scissor, clip planes, texture-stage setup and the scalar
// render states above. It never talks to the backend directly —
// RasterState, DSState and BlendState derive the driver-facing
// states from the current snapshot, and the caller (package render)
// is responsible for deciding, via PipelineDirty or
// PipelineStateHash, whether a new driver.Pipeline needs to be
// looked up.
type Manager struct {
	Transform Transform
	Render    RenderState

	Lights    [d3d8.NLight]d3d8.Light
	LightOn   [d3d8.NLight]bool
	Material  d3d8.Material

	Viewport d3d8.Viewport
	Scissor  d3d8.Scissor
	Clip     [d3d8.NClipPlane]d3d8.ClipPlane
	ClipOn   uint32 // bitmask of enabled clip planes

	Stages [d3d8.NTextureStage]d3d8.TextureStage
	Bound  [d3d8.NTextureStage]bool

	pipelineDirty bool
	lastPipeline  uint64
}

// NewManager returns a Manager initialized to D3D8's documented
// device-creation defaults.
func NewManager(vp d3d8.Viewport) *Manager {
	m := &Manager{
		Transform: NewTransform(),
		Render:    defaultRenderState(),
		Viewport:  vp,
		Material:  d3d8.Material{},
	}
	m.pipelineDirty = true
	return m
}

// Validate reports every invariant violation in the current
// snapshot: malformed lights (per d3d8.Light.Validate) and an
// out-of-range viewport. It does not touch texture-stage or blend
// state, which D3D8 clamps rather than rejects.
func (m *Manager) Validate() []string {
	var errs []string
	for i := range m.Lights {
		if !m.LightOn[i] {
			continue
		}
		for _, e := range m.Lights[i].Validate() {
			errs = append(errs, fmt.Sprintf("light %d: %s", i, e))
		}
	}
	if s := m.Viewport.Validate(); s != "" {
		errs = append(errs, s)
	}
	return errs
}

// pipelineHash folds every state bit that feeds RasterState/DSState/
// BlendState into one FNV-64a value, used as an extra component of
// the program cache key alongside the (vs, ps) or fixed-function
// hash — see package program. Two Managers with identical hashes are
// guaranteed to derive identical Raster/DS/Blend.
func (m *Manager) pipelineHash() uint64 {
	h := fnv.New64a()
	w := func(b byte) { h.Write([]byte{b}) }
	wb := func(v bool) {
		if v {
			w(1)
		} else {
			w(0)
		}
	}
	r := &m.Render
	w(byte(r.CullMode))
	w(byte(r.FillMode))
	wb(r.ZEnable)
	wb(r.ZWriteEnable)
	w(byte(r.ZFunc))
	wb(r.AlphaBlendEnable)
	w(byte(r.SrcBlend))
	w(byte(r.DestBlend))
	w(byte(r.BlendOp))
	wb(r.StencilEnable)
	w(byte(r.StencilFunc))
	w(byte(r.StencilFail))
	w(byte(r.StencilZFail))
	w(byte(r.StencilPass))
	w(byte(r.ColorWriteEnable))
	for _, v := range [2]uint32{r.StencilMask, r.StencilWriteMask} {
		h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
	}
	return h.Sum64()
}

// PipelineStateHash returns the current pipelineHash(), for callers
// (package render) that fold it into a program cache key alongside a
// shader bytecode or fixed-function hash.
func (m *Manager) PipelineStateHash() uint64 { return m.pipelineHash() }

// PipelineDirty reports whether any state affecting the derived
// Raster/DS/Blend pipeline state has changed since the last call to
// ClearPipelineDirty.
func (m *Manager) PipelineDirty() bool {
	return m.pipelineDirty || m.pipelineHash() != m.lastPipeline
}

// ClearPipelineDirty acknowledges the current pipeline-affecting
// state as applied, caching its hash so PipelineDirty returns false
// until something changes again.
func (m *Manager) ClearPipelineDirty() {
	m.pipelineDirty = false
	m.lastPipeline = m.pipelineHash()
}

// RasterState derives a driver.RasterState from the current render
// state.
func (m *Manager) RasterState() driver.RasterState {
	cull, cw := translateCullMode(m.Render.CullMode)
	return driver.RasterState{
		Clockwise: cw,
		Cull:      cull,
		Fill:      translateFillMode(m.Render.FillMode),
		PointSize: 1,
	}
}

func stencilT(fail, zfail, pass d3d8.StencilOp, cmp d3d8.CmpFunc, readMask, writeMask uint32) driver.StencilT {
	return driver.StencilT{
		DSFail:    [2]driver.StencilOp{translateStencilOp(fail), translateStencilOp(zfail)},
		Pass:      translateStencilOp(pass),
		ReadMask:  readMask,
		WriteMask: writeMask,
		Cmp:       translateCmpFunc(cmp),
	}
}

// DSState derives a driver.DSState from the current render state.
// D3D8 has no concept of independent front/back stencil faces (that
// is a later API addition), so both faces mirror the same settings.
func (m *Manager) DSState() driver.DSState {
	r := &m.Render
	st := stencilT(r.StencilFail, r.StencilZFail, r.StencilPass, r.StencilFunc, r.StencilMask, r.StencilWriteMask)
	return driver.DSState{
		DepthTest:   r.ZEnable,
		DepthWrite:  r.ZWriteEnable,
		DepthCmp:    translateCmpFunc(r.ZFunc),
		StencilTest: r.StencilEnable,
		Front:       st,
		Back:        st,
	}
}

// BlendState derives a driver.BlendState from the current render
// state. D3D8 exposes one global blend setup (no independent
// per-target blending), so the result always has a single entry and
// IndependentBlend is false.
func (m *Manager) BlendState() driver.BlendState {
	r := &m.Render
	mask := driver.ColorMask(0)
	if r.ColorWriteEnable&1 != 0 {
		mask |= driver.CRed
	}
	if r.ColorWriteEnable&2 != 0 {
		mask |= driver.CGreen
	}
	if r.ColorWriteEnable&4 != 0 {
		mask |= driver.CBlue
	}
	if r.ColorWriteEnable&8 != 0 {
		mask |= driver.CAlpha
	}
	op := translateBlendOp(r.BlendOp)
	src := translateBlendFactor(r.SrcBlend)
	dst := translateBlendFactor(r.DestBlend)
	return driver.BlendState{
		Color: []driver.ColorBlend{{
			Blend:     r.AlphaBlendEnable,
			WriteMask: mask,
			Op:        [2]driver.BlendOp{op, op},
			SrcFac:    [2]driver.BlendFac{src, src},
			DstFac:    [2]driver.BlendFac{dst, dst},
		}},
	}
}

// DriverViewport translates the D3D8 viewport into the driver package's
// equivalent.
func (m *Manager) DriverViewport() driver.Viewport {
	return driver.Viewport{
		X:      float32(m.Viewport.X),
		Y:      float32(m.Viewport.Y),
		Width:  float32(m.Viewport.Width),
		Height: float32(m.Viewport.Height),
		Znear:  m.Viewport.MinZ,
		Zfar:   m.Viewport.MaxZ,
	}
}

// FixedFunctionState builds the fixedfunction.State describing the
// currently-bound texture stages and lighting setup, for use when no
// programmable vertex/pixel shader is bound.
func (m *Manager) FixedFunctionState() *fixedfunction.State {
	s := &fixedfunction.State{
		Lighting:         m.Render.Lighting,
		ColorVertex:      m.Render.ColorVertex,
		SpecularEnable:   m.Render.SpecularEnable,
		NormalizeNormals: m.Render.NormalizeNormals,
		FogMode:          m.Render.FogMode,
		VertexFog:        m.Render.FogEnable,
		AlphaTestEnable:  m.Render.AlphaTestEnable,
		AlphaFunc:        m.Render.AlphaFunc,
	}
	n := 0
	for i := range m.Lights {
		if !m.LightOn[i] {
			continue
		}
		s.LightType[n] = m.Lights[i].Type
		n++
	}
	s.NLight = n

	nStage := 0
	for i := range m.Stages {
		st := &m.Stages[i]
		if st.ColorOp == d3d8.TOPDisable {
			break
		}
		s.ColorOp[i] = st.ColorOp
		s.ColorArg1[i] = st.ColorArg1
		s.ColorArg2[i] = st.ColorArg2
		s.AlphaOp[i] = st.AlphaOp
		s.AlphaArg1[i] = st.AlphaArg1
		s.AlphaArg2[i] = st.AlphaArg2
		s.Bound[i] = m.Bound[i]
		nStage++
	}
	s.NStage = nStage
	return s
}
