// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"testing"

	"dx8gl/d3d8"
	"dx8gl/driver"
	"dx8gl/driver/null"
)

func newTestFrame(t *testing.T, d *Device) (*Frame, *null.CmdBuffer) {
	t.Helper()
	rp, err := d.ctxt.GPU().NewRenderPass(nil, nil)
	if err != nil {
		t.Fatalf("NewRenderPass: %v", err)
	}
	fb, err := rp.NewFB(nil, 640, 480, 1)
	if err != nil {
		t.Fatalf("NewFB: %v", err)
	}
	f, err := d.BeginFrame(rp, fb, nil)
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	return f, f.cb.(*null.CmdBuffer)
}

func TestFrameDrawPrimitiveRecordsExpectedOrder(t *testing.T) {
	d := newTestDevice(t)
	f, cb := newTestFrame(t, d)

	if err := f.DrawPrimitive(d3d8.PrimTriangleList, 0, 1); err != nil {
		t.Fatalf("DrawPrimitive: %v", err)
	}
	if err := f.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}
	d.Queue().WaitIdle()

	var ops []null.Op
	for _, r := range cb.Records {
		ops = append(ops, r.Op)
	}
	want := []null.Op{
		null.OpBeginPass,
		null.OpSetPipeline,
		null.OpSetDescTableGraph,
		null.OpSetViewport,
		null.OpDraw,
		null.OpEndPass,
	}
	if len(ops) != len(want) {
		t.Fatalf("recorded ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("recorded ops = %v, want %v", ops, want)
		}
	}
}

func TestFrameDrawIndexedPrimitiveRecordsDrawIndexed(t *testing.T) {
	d := newTestDevice(t)
	f, cb := newTestFrame(t, d)

	if err := f.DrawIndexedPrimitive(d3d8.PrimTriangleList, 0, 0, 1); err != nil {
		t.Fatalf("DrawIndexedPrimitive: %v", err)
	}
	if err := f.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}
	d.Queue().WaitIdle()

	found := false
	for _, r := range cb.Records {
		if r.Op == null.OpDrawIndexed {
			found = true
		}
	}
	if !found {
		t.Fatal("DrawIndexedPrimitive did not record OpDrawIndexed")
	}
}

func TestFrameEndIsIdempotent(t *testing.T) {
	d := newTestDevice(t)
	f, _ := newTestFrame(t, d)

	if err := f.DrawPrimitive(d3d8.PrimTriangleList, 0, 1); err != nil {
		t.Fatalf("DrawPrimitive: %v", err)
	}
	if err := f.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := f.End(nil); err != nil {
		t.Fatalf("second End: %v", err)
	}
}

var _ driver.CmdBuffer = (*null.CmdBuffer)(nil)
