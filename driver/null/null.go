// Package null implements a software driver.Driver that executes every
// command synchronously against host memory.
//
// It exists to exercise the backend abstraction seam (driver.GPU and
// friends) without a real GL/GLES/WebGPU context: the render package,
// program cache and context tests in this module run against it.
package null

import (
	"errors"
	"sync"
)

import "dx8gl/driver"

func init() {
	driver.Register(&Driver{})
}

// Driver implements driver.Driver.
type Driver struct {
	mu   sync.Mutex
	open bool
	gpu  *GPU
}

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		d.gpu = &GPU{drv: d}
		d.open = true
	}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return "null" }

// Close implements driver.Driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.gpu = nil
}

// GPU implements driver.GPU over host memory. All resources are kept
// alive for the lifetime of the GPU; Destroy is a no-op bookkeeping
// call (there is no real device memory to reclaim).
type GPU struct {
	drv    *Driver
	limits driver.Limits
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// Commit implements driver.GPU.
//
// Every recorded command already executed at record time (this backend
// has no separate execution phase), so Commit only has to report
// completion on ch, matching the asynchronous contract callers expect.
func (g *GPU) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	for _, b := range cb {
		if c, ok := b.(*CmdBuffer); ok && c.broken {
			if ch != nil {
				ch <- errBroken
			}
			return
		}
	}
	if ch != nil {
		ch <- nil
	}
}

var errBroken = errors.New("null: command buffer recorded an invalid command")

// NewCmdBuffer implements driver.GPU.
func (g *GPU) NewCmdBuffer() (driver.CmdBuffer, error) { return &CmdBuffer{}, nil }

// NewRenderPass implements driver.GPU.
func (g *GPU) NewRenderPass(att []driver.Attachment, sub []driver.Subpass) (driver.RenderPass, error) {
	return &RenderPass{att: att, sub: sub}, nil
}

// NewShaderCode implements driver.GPU.
//
// The null backend does not compile anything; it stores the source
// bytes verbatim so that tests can assert on what the shader
// translator handed it.
func (g *GPU) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &ShaderCode{src: cp}, nil
}

// NewDescHeap implements driver.GPU.
func (g *GPU) NewDescHeap(ds []driver.Descriptor) (driver.DescHeap, error) {
	return &DescHeap{descs: ds}, nil
}

// NewDescTable implements driver.GPU.
func (g *GPU) NewDescTable(dh []driver.DescHeap) (driver.DescTable, error) {
	return &DescTable{heaps: dh}, nil
}

// NewPipeline implements driver.GPU.
func (g *GPU) NewPipeline(state any) (driver.Pipeline, error) {
	switch s := state.(type) {
	case *driver.GraphState:
		return &Pipeline{graph: s}, nil
	case *driver.CompState:
		return &Pipeline{comp: s}, nil
	}
	return nil, errors.New("null: NewPipeline: unknown state type")
}

// NewBuffer implements driver.GPU. Buffers are always host-visible
// (there is no discrete device memory to distinguish).
func (g *GPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	if size <= 0 {
		return nil, errors.New("null: NewBuffer: size must be positive")
	}
	return &Buffer{data: make([]byte, size), visible: true, usage: usg}, nil
}

// NewImage implements driver.GPU.
func (g *GPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	if layers < 1 {
		layers = 1
	}
	if levels < 1 {
		levels = 1
	}
	n := size.Width * size.Height * size.Depth * layers * levels * pf.Size()
	if n < 0 {
		n = 0
	}
	return &Image{fmt: pf, size: size, layers: layers, levels: levels, data: make([]byte, n)}, nil
}

// NewSampler implements driver.GPU.
func (g *GPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	cp := *spln
	return &Sampler{s: cp}, nil
}

// Limits implements driver.GPU with generous, D3D8-compatible values
// (8 texture stages, 8 simultaneous lights, etc.).
func (g *GPU) Limits() driver.Limits {
	return driver.Limits{
		MaxImage1D:        4096,
		MaxImage2D:        4096,
		MaxImageCube:      4096,
		MaxImage3D:        2048,
		MaxLayers:         2048,
		MaxDescHeaps:      4,
		MaxDBuffer:        4,
		MaxDImage:         4,
		MaxDConstant:      12,
		MaxDTexture:       16,
		MaxDSampler:       16,
		MaxDBufferRange:   1 << 28,
		MaxDConstantRange: 1 << 14,
		MaxColorTargets:   8,
		MaxFBSize:         [2]int{4096, 4096},
		MaxFBLayers:       2048,
		MaxPointSize:      256,
		MaxViewports:      16,
		MaxVertexIn:       16,
		MaxFragmentIn:     16,
		MaxDispatch:       [3]int{65535, 65535, 65535},
	}
}
