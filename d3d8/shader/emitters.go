// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"fmt"

	"dx8gl/d3d8/bytecode"
)

type emitFn func(t *translator, ins bytecode.Instruction) error

var emitters map[bytecode.Opcode]emitFn

func init() {
	emitters = map[bytecode.Opcode]emitFn{
		bytecode.OpMov:      emitUnary("%s"),
		bytecode.OpAbs:      emitUnary("abs(%s)"),
		bytecode.OpFrc:      emitUnary("fract(%s)"),
		bytecode.OpAdd:      emitBinary("(%s + %s)"),
		bytecode.OpSub:      emitBinary("(%s - %s)"),
		bytecode.OpMul:      emitBinary("(%s * %s)"),
		bytecode.OpMin:      emitBinary("min(%s, %s)"),
		bytecode.OpMax:      emitBinary("max(%s, %s)"),
		bytecode.OpSlt:      emitBinary("vec4(lessThan(%s, %s))"),
		bytecode.OpSge:      emitBinary("vec4(greaterThanEqual(%s, %s))"),
		bytecode.OpCrs:      emitCrs,
		bytecode.OpMad:      emitMad,
		bytecode.OpLrp:      emitLrp,
		bytecode.OpCmp:      emitCmp,
		bytecode.OpDp2Add:   emitDp2Add,
		bytecode.OpDp3:      emitDot(3),
		bytecode.OpDp4:      emitDot(4),
		bytecode.OpRcp:      emitRcp,
		bytecode.OpRsq:      emitRsq,
		bytecode.OpPow:      emitPow,
		bytecode.OpNrm:      emitNrm,
		bytecode.OpMova:     emitUnary("%s"),
		bytecode.OpTexCoord: emitTexCoord,
		bytecode.OpTex:      emitTex,
		bytecode.OpTexKill:  emitTexKill,
	}
}

func (t *translator) emitAssign(dst bytecode.Dest, rhs string) error {
	name, _, err := t.destStr(dst)
	if err != nil {
		return err
	}
	if dst.Mod&bytecode.DestModSat != 0 {
		rhs = fmt.Sprintf("clamp(%s, 0.0, 1.0)", rhs)
	}
	fmt.Fprintf(&t.body, "\t%s = %s;\n", name, rhs)
	return nil
}

func broadcast(n int, scalar string) string {
	if n == 1 {
		return scalar
	}
	return fmt.Sprintf("vec%d(%s)", n, scalar)
}

func emitUnary(format string) emitFn {
	return func(t *translator, ins bytecode.Instruction) error {
		_, n, err := t.destStr(ins.Dest)
		if err != nil {
			return err
		}
		a, err := t.srcStr(ins.Srcs[0], n)
		if err != nil {
			return err
		}
		return t.emitAssign(ins.Dest, fmt.Sprintf(format, a))
	}
}

func emitBinary(format string) emitFn {
	return func(t *translator, ins bytecode.Instruction) error {
		_, n, err := t.destStr(ins.Dest)
		if err != nil {
			return err
		}
		a, err := t.srcStr(ins.Srcs[0], n)
		if err != nil {
			return err
		}
		b, err := t.srcStr(ins.Srcs[1], n)
		if err != nil {
			return err
		}
		return t.emitAssign(ins.Dest, fmt.Sprintf(format, a, b))
	}
}

func emitMad(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], n)
	if err != nil {
		return err
	}
	b, err := t.srcStr(ins.Srcs[1], n)
	if err != nil {
		return err
	}
	c, err := t.srcStr(ins.Srcs[2], n)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("(%s * %s + %s)", a, b, c))
}

func emitLrp(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	f, err := t.srcStr(ins.Srcs[0], n)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[1], n)
	if err != nil {
		return err
	}
	b, err := t.srcStr(ins.Srcs[2], n)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("mix(%s, %s, %s)", b, a, f))
}

func emitCmp(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	cond, err := t.srcStr(ins.Srcs[0], n)
	if err != nil {
		return err
	}
	gte, err := t.srcStr(ins.Srcs[1], n)
	if err != nil {
		return err
	}
	lt, err := t.srcStr(ins.Srcs[2], n)
	if err != nil {
		return err
	}
	// D3D8's CMP compares each component of src0 against 0: >= 0 takes
	// src1, otherwise src2.
	return t.emitAssign(ins.Dest, fmt.Sprintf("mix(%s, %s, lessThan(%s, %s))",
		gte, lt, cond, broadcast(n, "0.0")))
}

func emitDp2Add(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], 2)
	if err != nil {
		return err
	}
	b, err := t.srcStr(ins.Srcs[1], 2)
	if err != nil {
		return err
	}
	c, err := t.srcStr(ins.Srcs[2], n)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("(dot(%s, %s) + %s)", a, b, c))
}

func emitDot(width int) emitFn {
	return func(t *translator, ins bytecode.Instruction) error {
		_, n, err := t.destStr(ins.Dest)
		if err != nil {
			return err
		}
		a, err := t.srcStr(ins.Srcs[0], width)
		if err != nil {
			return err
		}
		b, err := t.srcStr(ins.Srcs[1], width)
		if err != nil {
			return err
		}
		return t.emitAssign(ins.Dest, broadcast(n, fmt.Sprintf("dot(%s, %s)", a, b)))
	}
}

func emitCrs(t *translator, ins bytecode.Instruction) error {
	_, _, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], 3)
	if err != nil {
		return err
	}
	b, err := t.srcStr(ins.Srcs[1], 3)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("cross(%s, %s)", a, b))
}

func emitRcp(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], n)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("(1.0 / (%s))", a))
}

func emitRsq(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], n)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("inversesqrt(abs(%s))", a))
}

func emitPow(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], n)
	if err != nil {
		return err
	}
	b, err := t.srcStr(ins.Srcs[1], n)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, fmt.Sprintf("pow(abs(%s), %s)", a, b))
}

func emitNrm(t *translator, ins bytecode.Instruction) error {
	_, n, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	a, err := t.srcStr(ins.Srcs[0], 3)
	if err != nil {
		return err
	}
	return t.emitAssign(ins.Dest, broadcast(n, fmt.Sprintf("length(%s)", a)))
}

func emitTexCoord(t *translator, ins bytecode.Instruction) error {
	name, _, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	src := regName(t.pixel, bytecode.RegTexCrdOut, ins.Dest.Num)
	t.inputs[src] = true
	fmt.Fprintf(&t.body, "\t%s = %s;\n", name, src)
	return nil
}

func emitTex(t *translator, ins bytecode.Instruction) error {
	name, _, err := t.destStr(ins.Dest)
	if err != nil {
		return err
	}
	stage := ins.Dest.Num
	sampler := regName(t.pixel, bytecode.RegSampler, stage)
	t.samplers[stage] = true
	t.uniforms[sampler] = true
	coord := regName(t.pixel, bytecode.RegTexCrdOut, stage)
	t.inputs[coord] = true
	fmt.Fprintf(&t.body, "\t%s = texture(%s, %s.xy);\n", name, sampler, coord)
	return nil
}

func emitTexKill(t *translator, ins bytecode.Instruction) error {
	name := regName(t.pixel, ins.Dest.Type, ins.Dest.Num)
	t.inputs[name] = true
	fmt.Fprintf(&t.body, "\tif (any(lessThan(%s.xyz, vec3(0.0)))) discard;\n", name)
	return nil
}
