// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"fmt"
	"strings"

	"dx8gl/d3d8/bytecode"
)

// Translate converts a disassembled program into GLSL source for the
// given dialect. It returns UnsupportedOpcode or VersionMismatch when
// the program cannot be translated; callers should fall back to a
// stub shader in that case rather than submit partially-translated
// source to a backend. It does not check register files or numbers
// against the shader version, so it never returns InvalidRegister.
func Translate(prog bytecode.Program, d Dialect) (string, error) {
	if prog.Version.Major != 1 || prog.Version.Minor < 1 || prog.Version.Minor > 4 {
		return "", &VersionMismatch{Got: prog.Version.String()}
	}
	tr := &translator{prog: prog, dialect: d, pixel: prog.Version.Pixel}
	return tr.run()
}

type translator struct {
	prog    bytecode.Program
	dialect Dialect
	pixel   bool

	body     strings.Builder
	inputs   map[string]bool // varying/attribute reads (in vars)
	outputs  map[string]bool // vertex-shader varying writes (out vars); unused for pixel shaders
	uniforms map[string]bool
	temps    map[string]bool // plain locals: r#, a0, aL, oPos, oC#, oDepth, oFog, oPSize
	samplers map[int]bool
}

func (t *translator) run() (string, error) {
	t.inputs = map[string]bool{}
	t.outputs = map[string]bool{}
	t.uniforms = map[string]bool{}
	t.temps = map[string]bool{}
	t.samplers = map[int]bool{}

	for i, ins := range t.prog.Instructions {
		if err := t.translateOne(i, ins); err != nil {
			return "", err
		}
	}
	return t.assemble(), nil
}

func (t *translator) translateOne(idx int, ins bytecode.Instruction) error {
	switch ins.Op {
	case bytecode.OpComment, bytecode.OpPhase:
		return nil
	case bytecode.OpDef:
		t.uniforms[regName(t.pixel, bytecode.RegConst, ins.Dest.Num)] = true
		fmt.Fprintf(&t.body, "\t// DEF %s = vec4(%g, %g, %g, %g) folded into uniform upload\n",
			regName(t.pixel, bytecode.RegConst, ins.Dest.Num),
			ins.DefFloat[0], ins.DefFloat[1], ins.DefFloat[2], ins.DefFloat[3])
		return nil
	case bytecode.OpDefI, bytecode.OpDefB, bytecode.OpDcl:
		return nil
	case bytecode.OpNop:
		return nil
	case bytecode.OpRet, bytecode.OpEnd:
		return nil
	}

	fn, ok := emitters[ins.Op]
	if !ok {
		return &UnsupportedOpcode{Index: idx, Op: opName(ins.Op)}
	}
	if err := fn(t, ins); err != nil {
		if uo, ok := err.(*UnsupportedOpcode); ok {
			uo.Index = idx
		}
		return err
	}
	return nil
}

func (t *translator) destStr(dst bytecode.Dest) (string, int, error) {
	name := regName(t.pixel, dst.Type, dst.Num)
	t.declare(dst.Type, name)
	comps := maskComponents(dst.Mask)
	if len(comps) == 4 {
		return name, 4, nil
	}
	return name + dst.Mask.String(), len(comps), nil
}

func (t *translator) srcStr(s bytecode.Src, nComp int) (string, error) {
	name := regName(t.pixel, s.Type, s.Num)
	t.declare(s.Type, name)
	sw := srcSwizzleFor(s.Swiz, nComp)
	expr := name + sw
	switch s.Mod {
	case bytecode.SrcModNone:
	case bytecode.SrcModNeg:
		expr = "(-" + expr + ")"
	case bytecode.SrcModAbs:
		expr = "abs(" + expr + ")"
	case bytecode.SrcModAbsNeg:
		expr = "(-abs(" + expr + "))"
	case bytecode.SrcModX2:
		expr = "(2.0 * " + expr + ")"
	case bytecode.SrcModX2Neg:
		expr = "(-2.0 * " + expr + ")"
	case bytecode.SrcModBias:
		expr = "(" + expr + " - 0.5)"
	case bytecode.SrcModBiasNeg:
		expr = "(-(" + expr + " - 0.5))"
	case bytecode.SrcModSign:
		expr = "(2.0 * " + expr + " - 1.0)"
	case bytecode.SrcModSignNeg:
		expr = "(-(2.0 * " + expr + " - 1.0))"
	case bytecode.SrcModComp:
		expr = "(1.0 - " + expr + ")"
	case bytecode.SrcModNot:
		expr = "(!" + expr + ")"
	default:
		return "", &UnsupportedOpcode{Op: fmt.Sprintf("source modifier %d", s.Mod)}
	}
	return expr, nil
}

// declare records name's role (input varying, output varying,
// uniform, or plain local) so assemble can emit the right
// declaration. gl_Position and fragColor are GLSL built-ins/implicit
// outputs, so RegRastOut/RegColorOut/RegDepthOut are plain locals,
// not declared as shader I/O. At the end of main, oPos is copied to
// gl_Position and oC0 to fragColor; the other locals of these files
// (oFog, oPSize, oDepth, oC1 and up) are not copied anywhere.
func (t *translator) declare(rt bytecode.RegType, name string) {
	switch rt {
	case bytecode.RegTemp, bytecode.RegRastOut, bytecode.RegColorOut, bytecode.RegDepthOut, bytecode.RegLoop:
		t.temps[name] = true
	case bytecode.RegInput:
		t.inputs[name] = true
	case bytecode.RegTexCrdOut, bytecode.RegAttrOut:
		if t.pixel {
			t.inputs[name] = true
		} else {
			t.outputs[name] = true
		}
	case bytecode.RegAddr:
		if t.pixel {
			t.inputs[name] = true
		} else {
			t.temps[name] = true
		}
	case bytecode.RegConst, bytecode.RegConstInt, bytecode.RegConstBool, bytecode.RegSampler:
		t.uniforms[name] = true
	}
}

func (t *translator) assemble() string {
	var b strings.Builder
	b.WriteString(t.dialect.versionLine())

	for name := range t.uniforms {
		if strings.HasPrefix(name, "s_") {
			fmt.Fprintf(&b, "uniform sampler2D %s;\n", name)
		} else {
			fmt.Fprintf(&b, "uniform vec4 %s;\n", name)
		}
	}
	inOut := "varying"
	if t.dialect.ES || t.dialect.Version >= 150 {
		inOut = "in"
	}
	outKind := "varying"
	if t.dialect.ES || t.dialect.Version >= 150 {
		outKind = "out"
	}
	if t.pixel {
		for name := range t.inputs {
			fmt.Fprintf(&b, "%s vec4 %s;\n", inOut, name)
		}
		fmt.Fprintf(&b, "%s vec4 fragColor;\n", outKind)
	} else {
		for name := range t.inputs {
			fmt.Fprintf(&b, "in vec4 %s;\n", name)
		}
		for name := range t.outputs {
			fmt.Fprintf(&b, "%s vec4 %s;\n", outKind, name)
		}
	}
	for name := range t.temps {
		fmt.Fprintf(&b, "vec4 %s = vec4(0.0);\n", name)
	}

	b.WriteString("void main() {\n")
	b.WriteString(t.body.String())
	if t.pixel {
		b.WriteString("\tfragColor = oC0;\n")
	} else {
		b.WriteString("\tgl_Position = oPos;\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func maskComponents(m bytecode.WriteMask) []int {
	var c []int
	for i := 0; i < 4; i++ {
		if m == 0 || m&(1<<uint(i)) != 0 {
			c = append(c, i)
		}
	}
	return c
}

// srcSwizzleFor returns the swizzle suffix selecting the first
// nComp components that a destination write mask picked, following
// s's per-component source mapping.
func srcSwizzleFor(s bytecode.Swizzle, nComp int) string {
	if nComp == 4 {
		return s.String()
	}
	const names = "xyzw"
	var b strings.Builder
	b.WriteByte('.')
	for i := 0; i < nComp; i++ {
		b.WriteByte(names[s.Comp(i)])
	}
	return b.String()
}

func opName(op bytecode.Opcode) string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("opcode(%#x)", uint16(op))
}
