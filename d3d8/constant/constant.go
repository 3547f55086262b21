// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package constant implements the D3D8 shader constant register
// files (float4, int4, bool) and tracks which registers have been
// written since the last upload, so that package program only
// re-uploads the registers a draw call actually touched.
package constant

import (
	"sync"

	"dx8gl/internal/bitvec"
	"dx8gl/linear"
)

// Capacities of the three constant register files. These are sized
// to the union of what vs_1_1..vs_1_4 and ps_1_1..ps_1_4 bytecode can
// reference (float constants dominate; int/bool registers only ever
// appear in loop-control and predicate instructions this module's
// shader translator does not emit, but the files still exist so a
// DEFI/DEFB literal has somewhere to land).
const (
	NFloat = 96
	NInt   = 16
	NBool  = 16
)

// Manager owns the three live constant register files for one
// device. All registers start dirty, so the first Upload after
// construction uploads everything.
type Manager struct {
	mu sync.Mutex

	float      [NFloat][4]float32
	integer    [NInt][4]int32
	boolean    [NBool]bool
	floatDirty bitvec.V[uint32]
	intDirty   bitvec.V[uint32]
	boolDirty  bitvec.V[uint32]
}

// NewManager returns a Manager with every register marked dirty.
func NewManager() *Manager {
	m := &Manager{}
	m.floatDirty.Grow(1 + NFloat/32)
	m.intDirty.Grow(1 + NInt/32)
	m.boolDirty.Grow(1 + NBool/32)
	for i := 0; i < NFloat; i++ {
		m.floatDirty.Set(i)
	}
	for i := 0; i < NInt; i++ {
		m.intDirty.Set(i)
	}
	for i := 0; i < NBool; i++ {
		m.boolDirty.Set(i)
	}
	return m
}

// SetFloat writes a contiguous run of float4 registers starting at
// reg, marking each dirty.
func (m *Manager) SetFloat(reg int, v ...[4]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range v {
		m.float[reg+i] = x
		m.floatDirty.Set(reg + i)
	}
}

// SetInt writes a contiguous run of int4 registers starting at reg.
func (m *Manager) SetInt(reg int, v ...[4]int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range v {
		m.integer[reg+i] = x
		m.intDirty.Set(reg + i)
	}
}

// SetBool writes a contiguous run of bool registers starting at reg.
func (m *Manager) SetBool(reg int, v ...bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range v {
		m.boolean[reg+i] = x
		m.boolDirty.Set(reg + i)
	}
}

// SetMatrix writes a 4x4 matrix as four consecutive float4 registers
// starting at reg, the convention D3D8 applications rely on when
// they set a matrix via four SetVertexShaderConstant calls or a
// single SetTransform. When transpose is true (D3DSPD_TRANSPOSE,
// used by some shader compilers so the vertex shader can use a
// straightforward row·matrix multiply against a column-major-filled
// constant), mat is transposed on the CPU before it lands in the
// register file.
func (m *Manager) SetMatrix(reg int, mat *[4][4]float32, transpose bool) {
	rows := *mat
	if transpose {
		src := linear.M4{linear.V4(mat[0]), linear.V4(mat[1]), linear.V4(mat[2]), linear.V4(mat[3])}
		var dst linear.M4
		dst.Transpose(&src)
		rows = [4][4]float32{[4]float32(dst[0]), [4]float32(dst[1]), [4]float32(dst[2]), [4]float32(dst[3])}
	}
	m.SetFloat(reg, rows[0], rows[1], rows[2], rows[3])
}

// Float returns the float constant register file's current values,
// for readback (GetVertexShaderConstant) and state-block capture.
func (m *Manager) Float() [NFloat][4]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.float
}

// Batch is one contiguous run of dirty registers ready for upload.
type Batch struct {
	Start int
	Data  [][4]float32
}

// UploadDirtyFloat returns the current dirty float registers grouped
// into contiguous runs, and clears their dirty bits. Grouping
// adjacent dirty registers into one Batch lets package program issue
// one driver.CmdBuffer.SetConstants-style call per run instead of one
// per register.
func (m *Manager) UploadDirtyFloat() []Batch {
	m.mu.Lock()
	defer m.mu.Unlock()
	batches := dirtyRuns(&m.floatDirty, NFloat, func(i int) [4]float32 { return m.float[i] })
	return batches
}

func dirtyRuns(bv *bitvec.V[uint32], n int, at func(int) [4]float32) []Batch {
	var batches []Batch
	var cur *Batch
	for i, dirty := range bv.All() {
		if i >= n {
			break
		}
		if dirty {
			if cur == nil {
				batches = append(batches, Batch{Start: i})
				cur = &batches[len(batches)-1]
			}
			cur.Data = append(cur.Data, at(i))
			bv.Unset(i)
		} else {
			cur = nil
		}
	}
	return batches
}

// AnyDirty reports whether any register in any of the three files
// has been written since the last upload, letting package render
// skip the constant-upload step entirely on an unchanged draw.
func (m *Manager) AnyDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.floatDirty.Rem() != m.floatDirty.Len() ||
		m.intDirty.Rem() != m.intDirty.Len() ||
		m.boolDirty.Rem() != m.boolDirty.Len()
}
