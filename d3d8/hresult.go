// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package d3d8 defines the D3D8 type and enum vocabulary that the
// rest of this module translates to a modern backend: render states,
// HRESULT values, the data-model aggregates from the fixed-function
// and transform pipelines (lights, material, viewport, clip planes).
// The shader bytecode token layout lives in package d3d8/bytecode.
//
// It has no dependency on package driver: every field here is named
// and valued the way D3D8 defines it, independent of how a backend
// eventually consumes it.
package d3d8

// Result is the 32-bit status word returned by every D3D8 entry
// point. Negative values (high bit set) are failures.
type Result uint32

// OK reports whether r represents success.
func (r Result) OK() bool { return int32(r) >= 0 }

// Bit-exact HRESULT values used throughout this module.
const (
	SOK                  Result = 0x00000000
	EFail                Result = 0x80004005
	ErrInvalidCall       Result = 0x8876086C
	ErrOutOfVideoMemory  Result = 0x88760005
	ErrDeviceLost        Result = 0x88760868
	ErrNotAvailable      Result = 0x8876086A
	ErrNotFound          Result = 0x88760866
)
