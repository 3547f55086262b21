package null_test

import (
	"testing"

	"dx8gl/driver"
	"dx8gl/driver/null"
)

func open(t *testing.T) driver.GPU {
	t.Helper()
	gpu, err := (&null.Driver{}).Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return gpu
}

func TestNameRegistered(t *testing.T) {
	for _, d := range driver.Drivers() {
		if d.Name() == "null" {
			return
		}
	}
	t.Fatal("null driver did not register itself on init")
}

func TestCmdBufferRecordsDrawOrder(t *testing.T) {
	gpu := open(t)
	cb, err := gpu.NewCmdBuffer()
	if err != nil {
		t.Fatalf("NewCmdBuffer: %v", err)
	}
	nb := cb.(*null.CmdBuffer)
	if err := cb.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	cb.BeginPass(nil, nil, nil)
	cb.Draw(3, 1, 0, 0)
	cb.DrawIndexed(6, 1, 0, 0, 0)
	cb.EndPass()
	if err := cb.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	wantOps := []null.Op{null.OpBeginPass, null.OpDraw, null.OpDrawIndexed, null.OpEndPass}
	if len(nb.Records) != len(wantOps) {
		t.Fatalf("Records length = %d, want %d", len(nb.Records), len(wantOps))
	}
	for i, op := range wantOps {
		if nb.Records[i].Op != op {
			t.Errorf("Records[%d].Op = %v, want %v", i, nb.Records[i].Op, op)
		}
	}
	draw := nb.Records[1].Args.(null.DrawArgs)
	if draw.VertCount != 3 {
		t.Errorf("Draw VertCount = %d, want 3", draw.VertCount)
	}
}

func TestCommitReportsBrokenBuffer(t *testing.T) {
	gpu := open(t)
	cb, _ := gpu.NewCmdBuffer()
	nb := cb.(*null.CmdBuffer)
	cb.Begin()
	cb.CopyBuffer(&driver.BufferCopy{Size: -1})
	cb.End()
	_ = nb
	ch := make(chan error, 1)
	gpu.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err == nil {
		t.Fatal("Commit: expected error for broken command buffer")
	}
}

func TestBufferBytes(t *testing.T) {
	gpu := open(t)
	buf, err := gpu.NewBuffer(16, true, driver.UShaderConst)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	if !buf.Visible() {
		t.Fatal("Visible: want true")
	}
	if len(buf.Bytes()) != 16 {
		t.Fatalf("Bytes length = %d, want 16", len(buf.Bytes()))
	}
}
