// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package fixedfunction

import (
	"fmt"
	"strings"

	"dx8gl/d3d8"
)

// Generate produces the vertex and fragment GLSL source for s. Both
// shaders declare individual named uniforms (worldViewProj, world,
// normalMatrix, material and per-light colors, textureFactor,
// samplers, alphaRef); the generator only needs State to decide
// which terms of the lighting/texturing equations to emit. Package
// render does not set these uniforms: it uploads only the shader
// constant register files.
func Generate(s *State) (vs, fs string) {
	return generateVertex(s), generateFragment(s)
}

func generateVertex(s *State) string {
	var b strings.Builder
	b.WriteString("#version 150\n")
	b.WriteString("in vec4 v0;\n") // position
	b.WriteString("in vec3 v1;\n") // normal
	b.WriteString("in vec4 v2;\n") // diffuse
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "in vec4 vTex%d;\n", i)
		fmt.Fprintf(&b, "out vec4 oT%d;\n", i)
	}
	b.WriteString("out vec4 oD0;\n")
	b.WriteString("out vec4 oD1;\n")
	b.WriteString("uniform mat4 worldViewProj;\n")
	b.WriteString("uniform mat4 world;\n")
	b.WriteString("uniform mat3 normalMatrix;\n")
	b.WriteString("uniform vec4 matAmbient;\n")
	b.WriteString("uniform vec4 matDiffuse;\n")
	b.WriteString("uniform vec4 matSpecular;\n")
	b.WriteString("uniform vec4 matEmissive;\n")
	b.WriteString("uniform vec4 globalAmbient;\n")
	if s.Lighting {
		for i := 0; i < s.NLight; i++ {
			fmt.Fprintf(&b, "uniform vec4 lightDiffuse%d;\n", i)
			fmt.Fprintf(&b, "uniform vec4 lightPosition%d;\n", i)
		}
	}

	b.WriteString("void main() {\n")
	b.WriteString("\tgl_Position = worldViewProj * v0;\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "\toT%d = vTex%d;\n", i, i)
	}

	if s.Lighting {
		b.WriteString("\tvec3 n = normalMatrix * v1;\n")
		if s.NormalizeNormals {
			b.WriteString("\tn = normalize(n);\n")
		}
		b.WriteString("\tvec4 diffuseAccum = matEmissive + globalAmbient * matAmbient;\n")
		for i := 0; i < s.NLight; i++ {
			fmt.Fprintf(&b, "\t{\n")
			fmt.Fprintf(&b, "\t\tvec3 ldir = normalize(lightPosition%d.xyz - (world * v0).xyz);\n", i)
			fmt.Fprintf(&b, "\t\tfloat ndotl = max(dot(n, ldir), 0.0);\n")
			fmt.Fprintf(&b, "\t\tdiffuseAccum += lightDiffuse%d * matDiffuse * ndotl;\n", i)
			fmt.Fprintf(&b, "\t}\n")
		}
		b.WriteString("\toD0 = clamp(diffuseAccum, 0.0, 1.0);\n")
		if s.SpecularEnable {
			b.WriteString("\toD1 = matSpecular;\n")
		} else {
			b.WriteString("\toD1 = vec4(0.0);\n")
		}
	} else if s.ColorVertex {
		b.WriteString("\toD0 = v2;\n")
		b.WriteString("\toD1 = vec4(0.0);\n")
	} else {
		b.WriteString("\toD0 = matDiffuse;\n")
		b.WriteString("\toD1 = vec4(0.0);\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// stageInput renders one texture-stage combiner argument as a GLSL
// expression, given the running "current" value computed by the
// previous stage.
func stageInput(arg d3d8.TextureArg, stage int, alpha bool, current string) string {
	comp := ""
	if alpha {
		comp = ".a"
	}
	var expr string
	switch arg.Source() {
	case d3d8.ArgDiffuse:
		expr = "vD0"
	case d3d8.ArgSpecular:
		expr = "vD1"
	case d3d8.ArgTexture:
		expr = fmt.Sprintf("texture(sampler%d, oT%d.xy)", stage, stage)
	case d3d8.ArgTFactor:
		expr = "textureFactor"
	case d3d8.ArgCurrent, d3d8.ArgTemp:
		return current + comp
	default:
		expr = "vD0"
	}
	out := expr + comp
	if arg&d3d8.ArgComplement != 0 {
		out = "(1.0 - " + out + ")"
	}
	return out
}

func combine(op d3d8.TextureOp, a0, a1, a2 string) string {
	switch op {
	case d3d8.TOPDisable:
		return a1
	case d3d8.TOPSelectArg1:
		return a1
	case d3d8.TOPSelectArg2:
		return a2
	case d3d8.TOPModulate:
		return fmt.Sprintf("(%s * %s)", a1, a2)
	case d3d8.TOPModulate2X:
		return fmt.Sprintf("(2.0 * %s * %s)", a1, a2)
	case d3d8.TOPModulate4X:
		return fmt.Sprintf("(4.0 * %s * %s)", a1, a2)
	case d3d8.TOPAdd:
		return fmt.Sprintf("(%s + %s)", a1, a2)
	case d3d8.TOPAddSigned:
		return fmt.Sprintf("(%s + %s - 0.5)", a1, a2)
	case d3d8.TOPAddSigned2X:
		return fmt.Sprintf("(2.0 * (%s + %s - 0.5))", a1, a2)
	case d3d8.TOPSubtract:
		return fmt.Sprintf("(%s - %s)", a1, a2)
	case d3d8.TOPAddSmooth:
		return fmt.Sprintf("(%s + %s - %s * %s)", a1, a2, a1, a2)
	case d3d8.TOPBlendDiffuseAlpha:
		return fmt.Sprintf("mix(%s, %s, vD0.a)", a2, a1, )
	case d3d8.TOPBlendTextureAlpha:
		return fmt.Sprintf("mix(%s, %s, %s)", a2, a1, a0)
	case d3d8.TOPBlendCurrentAlpha:
		return fmt.Sprintf("mix(%s, %s, current.a)", a2, a1)
	case d3d8.TOPDotProduct3:
		return fmt.Sprintf("vec4(dot(2.0*%s.rgb-1.0, 2.0*%s.rgb-1.0))", a1, a2)
	case d3d8.TOPLerp:
		return fmt.Sprintf("mix(%s, %s, %s)", a2, a1, a0)
	}
	return a1
}

func generateFragment(s *State) string {
	var b strings.Builder
	b.WriteString("#version 150\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "in vec4 oT%d;\n", i)
	}
	b.WriteString("in vec4 oD0;\n")
	b.WriteString("in vec4 oD1;\n")
	b.WriteString("out vec4 fragColor;\n")
	b.WriteString("uniform vec4 textureFactor;\n")
	for i := 0; i < s.NStage; i++ {
		if s.Bound[i] {
			fmt.Fprintf(&b, "uniform sampler2D sampler%d;\n", i)
		}
	}
	if s.AlphaTestEnable {
		b.WriteString("uniform float alphaRef;\n")
	}

	b.WriteString("void main() {\n")
	b.WriteString("\tvec4 vD0 = oD0;\n\tvec4 vD1 = oD1;\n")
	b.WriteString("\tvec4 current = vD0;\n")
	for i := 0; i < s.NStage; i++ {
		if s.ColorOp[i] == d3d8.TOPDisable {
			break
		}
		a1c := stageInput(s.ColorArg1[i], i, false, "current")
		a2c := stageInput(s.ColorArg2[i], i, false, "current")
		a1a := stageInput(s.AlphaArg1[i], i, true, "current")
		colorExpr := combine(s.ColorOp[i], "", a1c, a2c)
		alphaExpr := combine(s.AlphaOp[i], "", a1a, stageInput(s.AlphaArg2[i], i, true, "current"))
		fmt.Fprintf(&b, "\tcurrent = vec4((%s).rgb, (%s));\n", colorExpr, alphaExpr)
	}
	b.WriteString("\tfragColor = current;\n")
	if s.AlphaTestEnable {
		fmt.Fprintf(&b, "\tif (!(%s)) discard;\n", alphaTestExpr(s.AlphaFunc))
	}
	b.WriteString("}\n")
	return b.String()
}

func alphaTestExpr(f d3d8.CmpFunc) string {
	switch f {
	case d3d8.CmpNever:
		return "false"
	case d3d8.CmpLess:
		return "fragColor.a < alphaRef"
	case d3d8.CmpEqual:
		return "fragColor.a == alphaRef"
	case d3d8.CmpLessEqual:
		return "fragColor.a <= alphaRef"
	case d3d8.CmpGreater:
		return "fragColor.a > alphaRef"
	case d3d8.CmpNotEqual:
		return "fragColor.a != alphaRef"
	case d3d8.CmpGreaterEqual:
		return "fragColor.a >= alphaRef"
	case d3d8.CmpAlways:
		return "true"
	}
	return "true"
}
