package null

import (
	"errors"

	"dx8gl/driver"
)

// Op identifies a single recorded command, for test introspection.
type Op int

// Recorded command kinds.
const (
	OpBeginPass Op = iota
	OpNextSubpass
	OpEndPass
	OpBeginWork
	OpEndWork
	OpBeginBlit
	OpEndBlit
	OpSetPipeline
	OpSetViewport
	OpSetScissor
	OpSetBlendColor
	OpSetStencilRef
	OpSetVertexBuf
	OpSetIndexBuf
	OpSetDescTableGraph
	OpSetDescTableComp
	OpDraw
	OpDrawIndexed
	OpDispatch
	OpCopyBuffer
	OpCopyImage
	OpCopyBufToImg
	OpCopyImgToBuf
	OpFill
	OpBarrier
	OpTransition
)

// Record is a single entry in a CmdBuffer's command log.
type Record struct {
	Op   Op
	Args any
}

// DrawArgs records the arguments of a Draw call.
type DrawArgs struct{ VertCount, InstCount, BaseVert, BaseInst int }

// DrawIndexedArgs records the arguments of a DrawIndexed call.
type DrawIndexedArgs struct{ IdxCount, InstCount, BaseIdx, VertOff, BaseInst int }

// CmdBuffer implements driver.CmdBuffer by appending every recorded
// command to a log (Records) instead of talking to a GPU. Tests for
// the render thread and state manager inspect Records to assert on
// command ordering (spec.md §5's "strictly in submit order" property).
type CmdBuffer struct {
	recording bool
	broken    bool
	Records   []Record
}

var errNotRecording = errors.New("null: command buffer is not recording")

// Begin implements driver.CmdBuffer.
func (c *CmdBuffer) Begin() error {
	c.recording = true
	c.broken = false
	c.Records = c.Records[:0]
	return nil
}

func (c *CmdBuffer) append(op Op, args any) {
	c.Records = append(c.Records, Record{Op: op, Args: args})
}

// BeginPass implements driver.CmdBuffer.
func (c *CmdBuffer) BeginPass(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) {
	c.append(OpBeginPass, clear)
}

// NextSubpass implements driver.CmdBuffer.
func (c *CmdBuffer) NextSubpass() { c.append(OpNextSubpass, nil) }

// EndPass implements driver.CmdBuffer.
func (c *CmdBuffer) EndPass() { c.append(OpEndPass, nil) }

// BeginWork implements driver.CmdBuffer.
func (c *CmdBuffer) BeginWork(wait bool) { c.append(OpBeginWork, wait) }

// EndWork implements driver.CmdBuffer.
func (c *CmdBuffer) EndWork() { c.append(OpEndWork, nil) }

// BeginBlit implements driver.CmdBuffer.
func (c *CmdBuffer) BeginBlit(wait bool) { c.append(OpBeginBlit, wait) }

// EndBlit implements driver.CmdBuffer.
func (c *CmdBuffer) EndBlit() { c.append(OpEndBlit, nil) }

// SetPipeline implements driver.CmdBuffer.
func (c *CmdBuffer) SetPipeline(pl driver.Pipeline) { c.append(OpSetPipeline, pl) }

// SetViewport implements driver.CmdBuffer.
func (c *CmdBuffer) SetViewport(vp []driver.Viewport) { c.append(OpSetViewport, vp) }

// SetScissor implements driver.CmdBuffer.
func (c *CmdBuffer) SetScissor(sciss []driver.Scissor) { c.append(OpSetScissor, sciss) }

// SetBlendColor implements driver.CmdBuffer.
func (c *CmdBuffer) SetBlendColor(r, g, b, a float32) {
	c.append(OpSetBlendColor, [4]float32{r, g, b, a})
}

// SetStencilRef implements driver.CmdBuffer.
func (c *CmdBuffer) SetStencilRef(value uint32) { c.append(OpSetStencilRef, value) }

// SetVertexBuf implements driver.CmdBuffer.
func (c *CmdBuffer) SetVertexBuf(start int, buf []driver.Buffer, off []int64) {
	c.append(OpSetVertexBuf, start)
}

// SetIndexBuf implements driver.CmdBuffer.
func (c *CmdBuffer) SetIndexBuf(format driver.IndexFmt, buf driver.Buffer, off int64) {
	c.append(OpSetIndexBuf, format)
}

// SetDescTableGraph implements driver.CmdBuffer.
func (c *CmdBuffer) SetDescTableGraph(table driver.DescTable, start int, heapCopy []int) {
	c.append(OpSetDescTableGraph, start)
}

// SetDescTableComp implements driver.CmdBuffer.
func (c *CmdBuffer) SetDescTableComp(table driver.DescTable, start int, heapCopy []int) {
	c.append(OpSetDescTableComp, start)
}

// Draw implements driver.CmdBuffer.
func (c *CmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int) {
	c.append(OpDraw, DrawArgs{vertCount, instCount, baseVert, baseInst})
}

// DrawIndexed implements driver.CmdBuffer.
func (c *CmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {
	c.append(OpDrawIndexed, DrawIndexedArgs{idxCount, instCount, baseIdx, vertOff, baseInst})
}

// Dispatch implements driver.CmdBuffer.
func (c *CmdBuffer) Dispatch(grpCountX, grpCountY, grpCountZ int) {
	c.append(OpDispatch, [3]int{grpCountX, grpCountY, grpCountZ})
}

// CopyBuffer implements driver.CmdBuffer.
func (c *CmdBuffer) CopyBuffer(param *driver.BufferCopy) {
	if param.Size < 0 {
		c.broken = true
		return
	}
	from, to := param.From.(*Buffer), param.To.(*Buffer)
	copy(to.data[param.ToOff:param.ToOff+param.Size], from.data[param.FromOff:param.FromOff+param.Size])
	c.append(OpCopyBuffer, *param)
}

// CopyImage implements driver.CmdBuffer.
func (c *CmdBuffer) CopyImage(param *driver.ImageCopy) { c.append(OpCopyImage, *param) }

// CopyBufToImg implements driver.CmdBuffer.
func (c *CmdBuffer) CopyBufToImg(param *driver.BufImgCopy) { c.append(OpCopyBufToImg, *param) }

// CopyImgToBuf implements driver.CmdBuffer.
func (c *CmdBuffer) CopyImgToBuf(param *driver.BufImgCopy) { c.append(OpCopyImgToBuf, *param) }

// Fill implements driver.CmdBuffer.
func (c *CmdBuffer) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	b := buf.(*Buffer)
	for i := off; i < off+size; i++ {
		b.data[i] = value
	}
	c.append(OpFill, value)
}

// Barrier implements driver.CmdBuffer.
func (c *CmdBuffer) Barrier(b []driver.Barrier) { c.append(OpBarrier, b) }

// Transition implements driver.CmdBuffer.
func (c *CmdBuffer) Transition(t []driver.Transition) { c.append(OpTransition, t) }

// End implements driver.CmdBuffer.
func (c *CmdBuffer) End() error {
	if !c.recording {
		return errNotRecording
	}
	c.recording = false
	return nil
}

// Reset implements driver.CmdBuffer.
func (c *CmdBuffer) Reset() error {
	c.recording = false
	c.broken = false
	c.Records = nil
	return nil
}

// Destroy implements driver.Destroyer.
func (c *CmdBuffer) Destroy() {}
