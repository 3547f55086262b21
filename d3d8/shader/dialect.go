// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package shader translates disassembled D3D8 shader bytecode
// (package bytecode) into GLSL source, targeting either desktop GL3
// core profile or GLES3/WebGPU's GLSL ES dialect. Unsupported or
// malformed instruction sequences fail translation with a typed
// error rather than emitting wrong-looking code; callers (package
// program) fall back to a stub shader in that case.
package shader

import "fmt"

// Dialect selects the GLSL variant to emit.
type Dialect struct {
	// ES selects GLSL ES (GLES3/WebGPU-via-ANGLE); otherwise desktop
	// GLSL core is emitted.
	ES bool
	// Version is the #version directive's number (e.g. 300 for ES,
	// 150 for desktop core).
	Version int
}

// Core is desktop GLSL 1.50 core profile (GL 3.2+).
var Core = Dialect{ES: false, Version: 150}

// ES300 is GLSL ES 3.00 (GLES3, and WebGPU backends that compile
// through an ANGLE-style GLSL ES front end).
var ES300 = Dialect{ES: true, Version: 300}

func (d Dialect) versionLine() string {
	v := d.Version
	if d.ES {
		if v == 0 {
			v = 300
		}
		return fmt.Sprintf("#version %d es\nprecision highp float;\n", v)
	}
	if v == 0 {
		v = 150
	}
	return fmt.Sprintf("#version %d\n", v)
}
