// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package webgpu adapts github.com/gogpu/wgpu's pure-Go WebGPU
// implementation to the driver.Driver/driver.GPU seam.
//
// It is a skeleton, not a complete backend: it proves that a real
// WebGPU device (instance -> adapter -> device -> queue, the sequence
// gogpu/wgpu's own backends follow) can be opened and closed through
// the same seam driver/null exercises in tests, but it does not
// implement shader compilation, pipeline creation or resource upload.
// Those calls return errNotImplemented rather than touching the wire
// format, since wiring a full WebGPU pipeline is outside dx8gl's
// translation-layer core; driver/null remains the backend every test
// in this module runs against.
package webgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
	wgputypes "github.com/gogpu/wgpu/types"

	"dx8gl/driver"
)

func init() {
	driver.Register(&Driver{})
}

// errNotImplemented is returned by every GPU method this skeleton does
// not back with a real gogpu/wgpu call. It wraps driver.ErrFatal so
// callers that only check for that sentinel (the way the rest of the
// seam reports an unrecoverable driver condition) still see one.
var errNotImplemented = fmt.Errorf("webgpu: not implemented by this skeleton: %w", driver.ErrFatal)

// Driver implements driver.Driver over a gogpu/wgpu instance.
type Driver struct {
	instance *core.Instance
	gpu      *GPU
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return "webgpu" }

// Open implements driver.Driver. It creates a gogpu/wgpu instance,
// requests a high-performance adapter, and opens a device and queue
// against it, following the same instance/adapter/device/queue
// sequence gogpu/gg's native backend uses.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu != nil {
		return d.gpu, nil
	}
	d.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	})
	adapter, err := d.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		d.instance = nil
		return nil, errors.Join(driver.ErrNoDevice, err)
	}
	device, err := createDevice(adapter, "dx8gl-webgpu-device")
	if err != nil {
		_ = core.AdapterDrop(adapter)
		d.instance = nil
		return nil, err
	}
	queue, err := core.GetDeviceQueue(device)
	if err != nil {
		_ = core.DeviceDrop(device)
		_ = core.AdapterDrop(adapter)
		d.instance = nil
		return nil, err
	}
	limits, err := deviceLimits(device)
	if err != nil {
		_ = core.DeviceDrop(device)
		_ = core.AdapterDrop(adapter)
		d.instance = nil
		return nil, err
	}
	d.gpu = &GPU{drv: d, adapter: adapter, device: device, queue: queue, limits: limits}
	return d.gpu, nil
}

// Close implements driver.Driver.
func (d *Driver) Close() {
	if d.gpu == nil {
		return
	}
	_ = core.DeviceDrop(d.gpu.device)
	_ = core.AdapterDrop(d.gpu.adapter)
	d.gpu = nil
	d.instance = nil
}

// createDevice requests a logical device from adapter, with default
// limits and no optional features.
func createDevice(adapter core.AdapterID, label string) (core.DeviceID, error) {
	desc := &wgputypes.DeviceDescriptor{
		Label:          label,
		RequiredLimits: wgputypes.DefaultLimits(),
	}
	return core.RequestDevice(adapter, desc)
}
