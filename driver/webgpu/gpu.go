// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package webgpu

import (
	"github.com/gogpu/wgpu/core"

	"dx8gl/driver"
)

// GPU implements driver.GPU over a single gogpu/wgpu device and
// queue. Resource-creation methods the teacher's Vulkan backend
// implemented with C bindings (images, pipelines, descriptor tables)
// are not yet backed by a real wgpu call here; they return
// errNotImplemented.
type GPU struct {
	drv     *Driver
	adapter core.AdapterID
	device  core.DeviceID
	queue   core.QueueID
	limits  driver.Limits
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// Limits implements driver.GPU.
func (g *GPU) Limits() driver.Limits { return g.limits }

// Commit implements driver.GPU. Submission through core.QueueID is
// not wired up by this skeleton.
func (g *GPU) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	if ch != nil {
		ch <- errNotImplemented
	}
}

// NewCmdBuffer implements driver.GPU.
func (g *GPU) NewCmdBuffer() (driver.CmdBuffer, error) { return nil, errNotImplemented }

// NewRenderPass implements driver.GPU.
func (g *GPU) NewRenderPass(att []driver.Attachment, sub []driver.Subpass) (driver.RenderPass, error) {
	return nil, errNotImplemented
}

// NewShaderCode implements driver.GPU.
func (g *GPU) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	return nil, errNotImplemented
}

// NewDescHeap implements driver.GPU.
func (g *GPU) NewDescHeap(ds []driver.Descriptor) (driver.DescHeap, error) {
	return nil, errNotImplemented
}

// NewDescTable implements driver.GPU.
func (g *GPU) NewDescTable(dh []driver.DescHeap) (driver.DescTable, error) {
	return nil, errNotImplemented
}

// NewPipeline implements driver.GPU.
func (g *GPU) NewPipeline(state any) (driver.Pipeline, error) { return nil, errNotImplemented }

// NewBuffer implements driver.GPU.
func (g *GPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	return nil, errNotImplemented
}

// NewImage implements driver.GPU.
func (g *GPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	return nil, errNotImplemented
}

// NewSampler implements driver.GPU.
func (g *GPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	return nil, errNotImplemented
}

// deviceLimits queries device's limits through gogpu/wgpu and
// translates the handful of fields it reports (CheckDeviceLimits in
// the teacher pack's backend/wgpu logs exactly these two) into
// driver.Limits, leaving every field wgpu does not report at the same
// conservative defaults driver/null uses.
func deviceLimits(device core.DeviceID) (driver.Limits, error) {
	wl, err := core.GetDeviceLimits(device)
	if err != nil {
		return driver.Limits{}, err
	}
	l := driver.Limits{
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
	if wl.MaxTextureDimension2D > 0 {
		l.MaxImage2D = int(wl.MaxTextureDimension2D)
	}
	if wl.MaxBufferSize > 0 {
		l.MaxDBufferRange = int64(wl.MaxBufferSize)
	}
	return l, nil
}
