// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package state

import (
	"testing"

	"dx8gl/d3d8"
	"dx8gl/driver"
	"dx8gl/linear"
)

func TestTransformLazyRecompute(t *testing.T) {
	tr := NewTransform()
	wvp1 := tr.WorldViewProj()

	var world linear.M4RowMajor
	world.I()
	world[0][3] = 5
	tr.SetWorld(world)
	wvp2 := tr.WorldViewProj()
	if wvp1 == wvp2 {
		t.Fatal("expected world-view-projection to change after SetWorld")
	}

	// A second read with no intervening state change must return the
	// cached value rather than recomputing.
	wvp3 := tr.WorldViewProj()
	if wvp2 != wvp3 {
		t.Fatal("expected cached world-view-projection to be stable")
	}
}

func TestDefaultRenderStateMatchesD3D8(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	if !m.Render.ZEnable || !m.Render.ZWriteEnable {
		t.Fatal("expected depth test and depth write enabled by default")
	}
	if m.Render.CullMode != d3d8.CullCCW {
		t.Fatalf("default cull mode = %v, want CullCCW", m.Render.CullMode)
	}
	if m.Render.SrcBlend != d3d8.BlendOne || m.Render.DestBlend != d3d8.BlendZero {
		t.Fatal("default blend factors must be src=one, dst=zero")
	}
}

func TestPipelineDirtyTracksRenderStateChanges(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	if !m.PipelineDirty() {
		t.Fatal("expected a freshly created manager to report dirty pipeline state")
	}
	m.ClearPipelineDirty()
	if m.PipelineDirty() {
		t.Fatal("expected pipeline state to be clean after ClearPipelineDirty")
	}

	m.Render.CullMode = d3d8.CullCW
	if !m.PipelineDirty() {
		t.Fatal("expected changing cull mode to mark pipeline state dirty")
	}
}

func TestValidateReportsInvalidLight(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.Lights[0] = d3d8.Light{Type: d3d8.LightSpot, Theta: 1, Phi: 0.5}
	m.LightOn[0] = true
	errs := m.Validate()
	if len(errs) == 0 {
		t.Fatal("expected a validation error for phi < theta")
	}
}

func TestBlendStateReflectsColorWriteMask(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.Render.ColorWriteEnable = 0x3 // R and G only
	bs := m.BlendState()
	if len(bs.Color) != 1 {
		t.Fatalf("expected exactly one ColorBlend entry, got %d", len(bs.Color))
	}
	mask := bs.Color[0].WriteMask
	if mask != driver.CRed|driver.CGreen {
		t.Fatalf("WriteMask = %#x, want CRed|CGreen", mask)
	}
}

func TestFixedFunctionStateStopsAtDisabledStage(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.Stages[0] = d3d8.TextureStage{ColorOp: d3d8.TOPModulate, ColorArg1: d3d8.ArgTexture, ColorArg2: d3d8.ArgCurrent}
	m.Stages[1] = d3d8.TextureStage{ColorOp: d3d8.TOPDisable}
	ffs := m.FixedFunctionState()
	if ffs.NStage != 1 {
		t.Fatalf("NStage = %d, want 1", ffs.NStage)
	}
}
