// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"fmt"

	"dx8gl/d3d8/bytecode"
)

// regName maps a bytecode register reference to the GLSL identifier
// this package emits for it. The same register file can mean
// different things in a vertex vs. a pixel shader (D3DSPR_ADDR is the
// vertex address register a0 but the pixel-shader texture register
// t#), hence the pixel flag.
func regName(pixel bool, t bytecode.RegType, num int) string {
	switch t {
	case bytecode.RegTemp:
		return fmt.Sprintf("r%d", num)
	case bytecode.RegInput:
		return fmt.Sprintf("v%d", num)
	case bytecode.RegConst:
		return fmt.Sprintf("c%d", num)
	case bytecode.RegConstInt:
		return fmt.Sprintf("i%d", num)
	case bytecode.RegConstBool:
		return fmt.Sprintf("b%d", num)
	case bytecode.RegAddr:
		if pixel {
			return fmt.Sprintf("t%d", num)
		}
		return "a0"
	case bytecode.RegRastOut:
		switch num {
		case 0:
			return "oPos"
		case 1:
			return "oFog"
		case 2:
			return "oPSize"
		}
		return fmt.Sprintf("oRast%d", num)
	case bytecode.RegAttrOut:
		return fmt.Sprintf("oD%d", num)
	case bytecode.RegTexCrdOut:
		if pixel {
			return fmt.Sprintf("t%d", num)
		}
		return fmt.Sprintf("oT%d", num)
	case bytecode.RegColorOut:
		return fmt.Sprintf("oC%d", num)
	case bytecode.RegDepthOut:
		return "oDepth"
	case bytecode.RegSampler:
		return fmt.Sprintf("s_%d", num)
	case bytecode.RegLoop:
		return "aL"
	}
	return fmt.Sprintf("reg%d_%d", t, num)
}

var opNames = map[bytecode.Opcode]string{
	bytecode.OpNop: "nop", bytecode.OpMov: "mov", bytecode.OpAdd: "add",
	bytecode.OpSub: "sub", bytecode.OpMad: "mad", bytecode.OpMul: "mul",
	bytecode.OpRcp: "rcp", bytecode.OpRsq: "rsq", bytecode.OpDp3: "dp3",
	bytecode.OpDp4: "dp4", bytecode.OpMin: "min", bytecode.OpMax: "max",
	bytecode.OpSlt: "slt", bytecode.OpSge: "sge", bytecode.OpExp: "exp",
	bytecode.OpLog: "log", bytecode.OpLit: "lit", bytecode.OpDst: "dst",
	bytecode.OpLrp: "lrp", bytecode.OpFrc: "frc", bytecode.OpM4x4: "m4x4",
	bytecode.OpM4x3: "m4x3", bytecode.OpM3x4: "m3x4", bytecode.OpM3x3: "m3x3",
	bytecode.OpM3x2: "m3x2", bytecode.OpCrs: "crs", bytecode.OpAbs: "abs",
	bytecode.OpNrm: "nrm", bytecode.OpPow: "pow", bytecode.OpCnd: "cnd",
	bytecode.OpCmp: "cmp", bytecode.OpDp2Add: "dp2add",
	bytecode.OpTex: "tex", bytecode.OpTexCoord: "texcoord",
	bytecode.OpTexKill: "texkill", bytecode.OpTexM3x2Pad: "texm3x2pad",
	bytecode.OpTexM3x2Tex: "texm3x2tex", bytecode.OpTexM3x3Pad: "texm3x3pad",
	bytecode.OpTexM3x3Tex: "texm3x3tex", bytecode.OpTexM3x3Spec: "texm3x3spec",
	bytecode.OpTexM3x3VSpec: "texm3x3vspec", bytecode.OpTexReg2AR: "texreg2ar",
	bytecode.OpTexReg2GB: "texreg2gb", bytecode.OpTexBem: "texbem",
	bytecode.OpTexBemL: "texbeml", bytecode.OpTexDp3: "texdp3",
	bytecode.OpTexDp3Tex: "texdp3tex", bytecode.OpSinCos: "sincos",
	bytecode.OpMova: "mova", bytecode.OpCall: "call", bytecode.OpCallNZ: "callnz",
	bytecode.OpLoop: "loop", bytecode.OpEndLoop: "endloop",
	bytecode.OpIf: "if", bytecode.OpIfC: "ifc", bytecode.OpElse: "else",
	bytecode.OpEndIf: "endif", bytecode.OpBreak: "break", bytecode.OpBreakC: "breakc",
	bytecode.OpLabel: "label",
}
