// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"encoding/binary"
	"math"

	"dx8gl/d3d8/constant"
	"dx8gl/driver"
)

// constBufSize is the byte size of one shader stage's float constant
// register file: NFloat registers of 4 float32 lanes each. It is a
// multiple of 256, the alignment driver.DescHeap.SetBuffer requires
// of every buffer range.
const constBufSize = constant.NFloat * 4 * 4

// constDesc builds the device's constant-register descriptor heap and
// table: one DConstant descriptor per shader stage, each bound to a
// dedicated host-visible buffer that mirrors that stage's
// constant.Manager float file byte for byte. Package program's pipeline
// cache is given the resulting table (Cache.SetDescTable) so every
// pipeline it compiles declares the same binding, and Frame.applyPipeline
// uploads dirty registers into the buffers and binds the table before
// each draw.
type constDesc struct {
	vsBuf driver.Buffer
	psBuf driver.Buffer
	heap  driver.DescHeap
	table driver.DescTable
}

// newConstDesc creates the constant-register buffers, heap and table
// against gpu. The caller owns the returned constDesc and must Destroy
// its heap when the device closes; the buffers are destroyed with it
// since DescHeap.Destroy does not reach into buffers it merely points at.
func newConstDesc(gpu driver.GPU) (*constDesc, error) {
	vsBuf, err := gpu.NewBuffer(constBufSize, true, driver.UShaderConst)
	if err != nil {
		return nil, err
	}
	psBuf, err := gpu.NewBuffer(constBufSize, true, driver.UShaderConst)
	if err != nil {
		vsBuf.Destroy()
		return nil, err
	}
	heap, err := gpu.NewDescHeap([]driver.Descriptor{
		{Type: driver.DConstant, Stages: driver.SVertex, Nr: 0, Len: 1},
		{Type: driver.DConstant, Stages: driver.SFragment, Nr: 1, Len: 1},
	})
	if err != nil {
		vsBuf.Destroy()
		psBuf.Destroy()
		return nil, err
	}
	if err := heap.New(1); err != nil {
		heap.Destroy()
		vsBuf.Destroy()
		psBuf.Destroy()
		return nil, err
	}
	heap.SetBuffer(0, 0, 0, []driver.Buffer{vsBuf}, []int64{0}, []int64{constBufSize})
	heap.SetBuffer(0, 1, 0, []driver.Buffer{psBuf}, []int64{0}, []int64{constBufSize})

	table, err := gpu.NewDescTable([]driver.DescHeap{heap})
	if err != nil {
		heap.Destroy()
		vsBuf.Destroy()
		psBuf.Destroy()
		return nil, err
	}
	return &constDesc{vsBuf: vsBuf, psBuf: psBuf, heap: heap, table: table}, nil
}

// upload writes every dirty register vs/ps report into the
// corresponding buffer, in the order a batch covers. It is a no-op for
// a buffer that is not host visible, which cannot happen for buffers
// newConstDesc created but is checked anyway since constDesc has no
// other way to report the condition.
func (cd *constDesc) upload(vs, ps *constant.Manager) {
	writeBatches(cd.vsBuf, vs.UploadDirtyFloat())
	writeBatches(cd.psBuf, ps.UploadDirtyFloat())
}

func writeBatches(buf driver.Buffer, batches []constant.Batch) {
	if len(batches) == 0 {
		return
	}
	bs := buf.Bytes()
	if bs == nil {
		return
	}
	for _, b := range batches {
		off := b.Start * 16
		for i, reg := range b.Data {
			p := bs[off+i*16:]
			for lane := 0; lane < 4; lane++ {
				binary.LittleEndian.PutUint32(p[lane*4:], math.Float32bits(reg[lane]))
			}
		}
	}
}

func (cd *constDesc) Destroy() {
	if cd.heap != nil {
		cd.heap.Destroy()
	}
	if cd.vsBuf != nil {
		cd.vsBuf.Destroy()
	}
	if cd.psBuf != nil {
		cd.psBuf.Destroy()
	}
}
