// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dx8gl/d3d8"
	"dx8gl/linear"
)

func TestCaptureApplyAllRestoresEveryField(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.Render.CullMode = d3d8.CullCW
	m.Stages[0].ColorOp = d3d8.TOPModulate
	m.Material.Power = 4

	b := m.Capture(d3d8.SBTAll)

	m.Render.CullMode = d3d8.CullCCW
	m.Stages[0].ColorOp = d3d8.TOPDisable
	m.Material.Power = 99

	m.Apply(b)

	if m.Render.CullMode != d3d8.CullCW {
		t.Fatalf("Render.CullMode = %v, want %v", m.Render.CullMode, d3d8.CullCW)
	}
	if m.Stages[0].ColorOp != d3d8.TOPModulate {
		t.Fatalf("Stages[0].ColorOp = %v, want %v", m.Stages[0].ColorOp, d3d8.TOPModulate)
	}
	if m.Material.Power != 4 {
		t.Fatalf("Material.Power = %v, want 4", m.Material.Power)
	}
}

func TestCaptureApplyPreservesFullMaterialAndStage(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	wantMaterial := d3d8.Material{
		Ambient: [4]float32{0.1, 0.2, 0.3, 1},
		Diffuse: [4]float32{0.4, 0.5, 0.6, 1},
		Power:   16,
	}
	wantStage := d3d8.TextureStage{
		ColorOp:   d3d8.TOPModulate,
		ColorArg1: d3d8.ArgTexture,
		MinFilter: d3d8.FilterLinear,
	}
	m.Material = wantMaterial
	m.Stages[0] = wantStage

	b := m.Capture(d3d8.SBTAll)

	m.Material = d3d8.Material{}
	m.Stages[0] = d3d8.TextureStage{}
	m.Apply(b)

	if diff := cmp.Diff(wantMaterial, m.Material); diff != "" {
		t.Fatalf("Material mismatch after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantStage, m.Stages[0]); diff != "" {
		t.Fatalf("Stages[0] mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestCaptureVertexStateLeavesPixelStateUntouched(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.Material.Power = 4
	m.Stages[0].ColorOp = d3d8.TOPModulate

	b := m.Capture(d3d8.SBTVertexState)

	m.Material.Power = 99
	m.Stages[0].ColorOp = d3d8.TOPDisable

	m.Apply(b)

	if m.Material.Power != 4 {
		t.Fatalf("Material.Power = %v, want 4 (captured by SBTVertexState)", m.Material.Power)
	}
	if m.Stages[0].ColorOp != d3d8.TOPDisable {
		t.Fatalf("Stages[0].ColorOp = %v, want %v (SBTVertexState must not touch texture-stage state)",
			m.Stages[0].ColorOp, d3d8.TOPDisable)
	}
}

func TestCapturePixelStateLeavesTransformUntouched(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.Stages[0].ColorOp = d3d8.TOPModulate
	world := m.Transform.World

	b := m.Capture(d3d8.SBTPixelState)

	m.Stages[0].ColorOp = d3d8.TOPDisable
	m.Transform.SetWorld(linear.M4RowMajor{{2, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 2, 0}, {0, 0, 0, 1}})

	m.Apply(b)

	if m.Stages[0].ColorOp != d3d8.TOPModulate {
		t.Fatalf("Stages[0].ColorOp = %v, want %v", m.Stages[0].ColorOp, d3d8.TOPModulate)
	}
	if m.Transform.World == world {
		t.Fatal("SBTPixelState Apply unexpectedly restored transform state")
	}
}

func TestApplyMarksPipelineDirty(t *testing.T) {
	m := NewManager(d3d8.Viewport{Width: 640, Height: 480, MaxZ: 1})
	m.ClearPipelineDirty()

	b := m.Capture(d3d8.SBTAll)
	m.Apply(b)

	if !m.PipelineDirty() {
		t.Fatal("Apply did not mark the pipeline dirty")
	}
}
