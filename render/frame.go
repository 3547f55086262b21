// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"dx8gl/d3d8"
	"dx8gl/driver"
)

// Frame is one BeginScene/EndScene pair: a command buffer being
// recorded on the app thread against a single render pass. Its
// Draw* methods resolve the device's current pipeline (compiling it
// if this is the first draw to see this shader/state combination)
// and record a draw command; nothing is submitted to the render
// thread until End.
type Frame struct {
	device *Device
	cb     driver.CmdBuffer
	ended  bool
}

// BeginFrame starts recording a new command buffer against pass/fb,
// clearing the attachments listed in clear.
func (d *Device) BeginFrame(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) (*Frame, error) {
	cb, err := d.ctxt.GPU().NewCmdBuffer()
	if err != nil {
		return nil, err
	}
	if err := cb.Begin(); err != nil {
		return nil, err
	}
	cb.BeginPass(pass, fb, clear)
	return &Frame{device: d, cb: cb}, nil
}

// SetVertexBuffers binds buf[i] at stream start+i, with byte offset
// off[i].
func (f *Frame) SetVertexBuffers(start int, buf []driver.Buffer, off []int64) {
	f.cb.SetVertexBuf(start, buf, off)
}

// SetIndexBuffer binds buf as the current index buffer.
func (f *Frame) SetIndexBuffer(format driver.IndexFmt, buf driver.Buffer, off int64) {
	f.cb.SetIndexBuf(format, buf, off)
}

// applyPipeline resolves and binds the current pipeline, plus the
// viewport and scissor derived from the state manager, ahead of a
// draw command.
func (f *Frame) applyPipeline() error {
	entry, err := f.device.resolvePipeline()
	if err != nil {
		return err
	}
	f.cb.SetPipeline(entry.Pipeline)

	f.device.consts.upload(f.device.vsConst, f.device.psConst)
	f.cb.SetDescTableGraph(f.device.consts.table, 0, []int{0})

	f.device.stateMu.Lock()
	vp := f.device.state.DriverViewport()
	scissor := f.device.state.Scissor
	f.device.stateMu.Unlock()

	f.cb.SetViewport([]driver.Viewport{vp})
	if scissor.Enabled {
		f.cb.SetScissor([]driver.Scissor{{X: scissor.X, Y: scissor.Y, Width: scissor.Width, Height: scissor.Height}})
	}
	return nil
}

// DrawPrimitive draws primCount primitives of kind prim, reading
// non-indexed vertex data starting at startVertex.
func (f *Frame) DrawPrimitive(prim d3d8.Primitive, startVertex, primCount int) error {
	if err := f.applyPipeline(); err != nil {
		return err
	}
	f.cb.Draw(prim.VertexCount(primCount), 1, startVertex, 0)
	return nil
}

// DrawIndexedPrimitive draws primCount primitives of kind prim,
// reading vertex indices starting at startIndex and adding
// baseVertex to every index before using it to fetch vertex data.
func (f *Frame) DrawIndexedPrimitive(prim d3d8.Primitive, baseVertex, startIndex, primCount int) error {
	if err := f.applyPipeline(); err != nil {
		return err
	}
	f.cb.DrawIndexed(prim.VertexCount(primCount), 1, startIndex, baseVertex, 0)
	return nil
}

// End finishes recording and submits the command buffer to the
// render thread. done, if non-nil, is invoked from the render thread
// once the buffer has executed (or failed). Calling any method on f
// after End is invalid.
func (f *Frame) End(done func(error)) error {
	if f.ended {
		return nil
	}
	f.ended = true
	f.cb.EndPass()
	if err := f.cb.End(); err != nil {
		return err
	}
	f.device.stateMu.Lock()
	f.device.state.ClearPipelineDirty()
	f.device.stateMu.Unlock()
	f.device.queue.Submit(f.cb, done)
	return nil
}
