// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package program

// Stub sources stand in for a shader pair that failed translation
// (an opcode or modifier package shader does not implement). They
// keep the draw call alive — rendering the offending primitive in
// solid magenta — instead of failing the whole frame.
const (
	stubVertexGLSL = `#version 150
in vec4 v0;
void main() { gl_Position = v0; }
`
	stubPixelGLSL = `#version 150
out vec4 fragColor;
void main() { fragColor = vec4(1.0, 0.0, 1.0, 1.0); }
`
)
