// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerStartsFullyDirty(t *testing.T) {
	m := NewManager()
	if !m.AnyDirty() {
		t.Fatal("freshly constructed manager should be fully dirty")
	}
	batches := m.UploadDirtyFloat()
	total := 0
	for _, b := range batches {
		total += len(b.Data)
	}
	if total != NFloat {
		t.Fatalf("uploaded %d float registers, want %d", total, NFloat)
	}
	if m.AnyDirty() {
		t.Fatal("manager should be clean after uploading every register")
	}
}

func TestSetFloatMarksOnlyWrittenRegistersDirty(t *testing.T) {
	m := NewManager()
	m.UploadDirtyFloat() // clear the initial all-dirty state

	m.SetFloat(4, [4]float32{1, 2, 3, 4})
	m.SetFloat(5, [4]float32{5, 6, 7, 8})
	m.SetFloat(40, [4]float32{9, 9, 9, 9})

	batches := m.UploadDirtyFloat()
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2 (one run at 4..5, one singleton at 40): %+v", len(batches), batches)
	}
	if batches[0].Start != 4 || len(batches[0].Data) != 2 {
		t.Fatalf("batch 0 = %+v, want start 4 len 2", batches[0])
	}
	if batches[1].Start != 40 || len(batches[1].Data) != 1 {
		t.Fatalf("batch 1 = %+v, want start 40 len 1", batches[1])
	}
	if m.AnyDirty() {
		t.Fatal("manager should be clean after upload")
	}
}

func TestSetMatrixWritesFourConsecutiveRegisters(t *testing.T) {
	m := NewManager()
	m.UploadDirtyFloat()

	mat := [4][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	m.SetMatrix(10, &mat, false)
	batches := m.UploadDirtyFloat()
	require.Len(t, batches, 1, "want single run starting at 10")
	assert.Equal(t, 10, batches[0].Start)
	assert.Equal(t, mat[:], batches[0].Data)
}

func TestSetMatrixTransposePermutesRows(t *testing.T) {
	m := NewManager()
	m.UploadDirtyFloat()

	mat := [4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	m.SetMatrix(0, &mat, true)
	batches := m.UploadDirtyFloat()
	require.Len(t, batches, 1, "want single run starting at 0")
	assert.Equal(t, 0, batches[0].Start)
	want := [4][4]float32{
		{1, 5, 9, 13},
		{2, 6, 10, 14},
		{3, 7, 11, 15},
		{4, 8, 12, 16},
	}
	assert.Equal(t, want[:], batches[0].Data)
}
