// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"testing"

	"dx8gl/d3d8"
	"dx8gl/d3d8/bytecode"
	"dx8gl/d3d8/shader"
)

func simpleVSTokens() []bytecode.Token {
	a := bytecode.NewAssembler(bytecode.Version{Major: 1, Minor: 1})
	a.Add(bytecode.OpMov,
		bytecode.Dest{Type: bytecode.RegRastOut, Num: 0, Mask: bytecode.FullMask},
		bytecode.Src{Type: bytecode.RegInput, Num: 0, Swiz: bytecode.Identity})
	return bytecode.Encode(a.End())
}

func simplePSTokens() []bytecode.Token {
	a := bytecode.NewAssembler(bytecode.Version{Major: 1, Minor: 1, Pixel: true})
	a.Add(bytecode.OpMov,
		bytecode.Dest{Type: bytecode.RegColorOut, Num: 0, Mask: bytecode.FullMask},
		bytecode.Src{Type: bytecode.RegInput, Num: 0, Swiz: bytecode.Identity})
	return bytecode.Encode(a.End())
}

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	vp := d3d8.Viewport{X: 0, Y: 0, Width: 640, Height: 480, MinZ: 0, MaxZ: 1}
	d, err := NewDevice("null", vp, Options{Dialect: shader.ES300, PipelineCache: 8})
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestNewDeviceOpensNullBackend(t *testing.T) {
	d := newTestDevice(t)
	if d.State() == nil || d.VSConstants() == nil || d.PSConstants() == nil || d.Queue() == nil || d.Registry() == nil {
		t.Fatal("NewDevice left a subsystem unwired")
	}
}

func TestResolvePipelineFixedFunctionByDefault(t *testing.T) {
	d := newTestDevice(t)
	e, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}
	if e.Pipeline == nil {
		t.Fatal("resolvePipeline returned an entry with a nil pipeline")
	}
}

func TestResolvePipelineCachesRepeatCalls(t *testing.T) {
	d := newTestDevice(t)
	e1, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}
	e2, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}
	if e1 != e2 {
		t.Fatal("resolvePipeline recompiled an unchanged shader/state combination")
	}
}

func TestResolvePipelineChangesWithRenderState(t *testing.T) {
	d := newTestDevice(t)
	e1, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}

	d.stateMu.Lock()
	d.state.Render.CullMode = d3d8.CullCW
	d.stateMu.Unlock()

	e2, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}
	if e1 == e2 {
		t.Fatal("resolvePipeline reused a pipeline after a raster-affecting state change")
	}
}

func TestSetVertexAndPixelShaderSelectsProgrammablePath(t *testing.T) {
	d := newTestDevice(t)
	ff, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}

	d.SetVertexShader(simpleVSTokens())
	d.SetPixelShader(simplePSTokens())

	prog, err := d.resolvePipeline()
	if err != nil {
		t.Fatalf("resolvePipeline: %v", err)
	}
	if prog == ff {
		t.Fatal("resolvePipeline did not switch pipelines when shaders were bound")
	}
}

func TestStateBlockCaptureApplyRoundTrip(t *testing.T) {
	d := newTestDevice(t)

	d.stateMu.Lock()
	d.state.Render.CullMode = d3d8.CullCW
	d.stateMu.Unlock()

	b := d.CreateStateBlock(d3d8.SBTAll)

	d.stateMu.Lock()
	d.state.Render.CullMode = d3d8.CullCCW
	d.stateMu.Unlock()

	d.ApplyStateBlock(b)

	d.stateMu.Lock()
	got := d.state.Render.CullMode
	d.stateMu.Unlock()
	if got != d3d8.CullCW {
		t.Fatalf("CullMode after ApplyStateBlock = %v, want %v", got, d3d8.CullCW)
	}
}

func TestBeginEndStateBlockWithoutMatchingBeginFails(t *testing.T) {
	d := newTestDevice(t)
	if _, err := d.EndStateBlock(); err == nil {
		t.Fatal("EndStateBlock without a matching BeginStateBlock returned nil error")
	}
}

func TestBeginStateBlockTwiceFails(t *testing.T) {
	d := newTestDevice(t)
	if err := d.BeginStateBlock(d3d8.SBTAll); err != nil {
		t.Fatalf("BeginStateBlock: %v", err)
	}
	defer d.EndStateBlock()
	if err := d.BeginStateBlock(d3d8.SBTAll); err == nil {
		t.Fatal("nested BeginStateBlock returned nil error")
	}
}
