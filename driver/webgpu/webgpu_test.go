// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package webgpu

import (
	"errors"
	"testing"

	"dx8gl/driver"
)

func TestDriverName(t *testing.T) {
	d := &Driver{}
	if d.Name() != "webgpu" {
		t.Fatalf("Name() = %q, want %q", d.Name(), "webgpu")
	}
}

func TestDriverRegistered(t *testing.T) {
	for _, d := range driver.Drivers() {
		if d.Name() == "webgpu" {
			return
		}
	}
	t.Fatal("webgpu driver did not register itself via init")
}

func TestUnbackedGPUMethodsReportNotImplemented(t *testing.T) {
	g := &GPU{}
	if _, err := g.NewCmdBuffer(); err != errNotImplemented {
		t.Fatalf("NewCmdBuffer err = %v, want errNotImplemented", err)
	}
	if _, err := g.NewBuffer(256, true, driver.UShaderConst); err != errNotImplemented {
		t.Fatalf("NewBuffer err = %v, want errNotImplemented", err)
	}
	if _, err := g.NewPipeline(&driver.GraphState{}); err != errNotImplemented {
		t.Fatalf("NewPipeline err = %v, want errNotImplemented", err)
	}
	if _, err := g.NewCmdBuffer(); !errors.Is(err, driver.ErrFatal) {
		t.Fatalf("NewCmdBuffer err = %v, want wrapping driver.ErrFatal", err)
	}
}
