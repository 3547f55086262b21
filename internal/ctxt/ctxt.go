// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package ctxt resolves and holds the driver.GPU a device instance
// runs against. Unlike a package-global driver selection, a Ctxt is
// constructed per device: dx8gl exposes multiple independent D3D8
// devices within one process (each a distinct COM-style object in
// the original API), and each may target a different backend
// (GL3, GLES3, WebGPU, or the null backend under test).
package ctxt

import (
	"errors"
	"strings"

	"dx8gl/driver"
)

var errNoDriver = errors.New("ctxt: no driver matches the requested name")

// Ctxt binds one device instance to the driver.GPU it was opened
// against.
type Ctxt struct {
	drv    driver.Driver
	gpu    driver.GPU
	limits driver.Limits
}

// Open loads the first registered driver whose name contains name
// (case-sensitive) and opens it. An empty name matches the first
// registered driver, letting callers that do not care about backend
// choice (tests, the null fallback path) omit it.
func Open(name string) (*Ctxt, error) {
	for _, d := range driver.Drivers() {
		if !strings.Contains(d.Name(), name) {
			continue
		}
		gpu, err := d.Open()
		if err != nil {
			continue
		}
		return &Ctxt{drv: d, gpu: gpu, limits: gpu.Limits()}, nil
	}
	return nil, errNoDriver
}

// Driver returns the bound driver.Driver.
func (c *Ctxt) Driver() driver.Driver { return c.drv }

// GPU returns the bound driver.GPU.
func (c *Ctxt) GPU() driver.GPU { return c.gpu }

// Limits returns the bound GPU's capabilities, fetched once at Open
// time. The caller must not mutate the returned value.
func (c *Ctxt) Limits() *driver.Limits { return &c.limits }

// Close releases the underlying driver.Driver.
func (c *Ctxt) Close() { c.drv.Close() }
