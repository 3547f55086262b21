// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package bytecode

import (
	"fmt"
	"math"
)

// MalformedBytecode reports a structural problem in a token stream
// that prevents disassembly: a truncated instruction, an opcode with
// no known operand shape, or a stream missing its version/END
// bookends.
type MalformedBytecode struct {
	Offset int
	Reason string
}

func (e *MalformedBytecode) Error() string {
	return fmt.Sprintf("bytecode: malformed at token %d: %s", e.Offset, e.Reason)
}

// opShape describes how many destination and source parameter tokens
// follow an instruction token, for opcodes that carry neither an
// inline literal (DEF/DEFI/DEFB) nor a variable comment payload.
type opShape struct {
	dest bool
	nSrc int
}

var shapes = map[Opcode]opShape{
	OpNop:     {false, 0},
	OpMov:     {true, 1},
	OpAdd:     {true, 2},
	OpSub:     {true, 2},
	OpMad:     {true, 3},
	OpMul:     {true, 2},
	OpRcp:     {true, 1},
	OpRsq:     {true, 1},
	OpDp3:     {true, 2},
	OpDp4:     {true, 2},
	OpMin:     {true, 2},
	OpMax:     {true, 2},
	OpSlt:     {true, 2},
	OpSge:     {true, 2},
	OpExp:     {true, 1},
	OpLog:     {true, 1},
	OpLit:     {true, 1},
	OpDst:     {true, 2},
	OpLrp:     {true, 3},
	OpFrc:     {true, 1},
	OpM4x4:    {true, 2},
	OpM4x3:    {true, 2},
	OpM3x4:    {true, 2},
	OpM3x3:    {true, 2},
	OpM3x2:    {true, 2},
	OpCall:    {false, 1},
	OpCallNZ:  {false, 2},
	OpLoop:    {false, 2},
	OpRet:     {false, 0},
	OpEndLoop: {false, 0},
	OpLabel:   {false, 1},
	OpPow:     {true, 2},
	OpCrs:     {true, 2},
	OpSgn:     {true, 1},
	OpAbs:     {true, 1},
	OpNrm:     {true, 1},
	OpSinCos:  {true, 1},
	OpRep:     {false, 1},
	OpEndRep:  {false, 0},
	OpIf:      {false, 1},
	OpIfC:     {false, 2},
	OpElse:    {false, 0},
	OpEndIf:   {false, 0},
	OpBreak:   {false, 0},
	OpBreakC:  {false, 2},
	OpMova:    {true, 1},

	OpTexCoord:     {true, 0},
	OpTexKill:      {true, 0},
	OpTex:          {true, 0},
	OpTexBem:       {true, 0},
	OpTexBemL:      {true, 0},
	OpTexReg2AR:    {true, 0},
	OpTexReg2GB:    {true, 0},
	OpTexM3x2Pad:   {true, 0},
	OpTexM3x2Tex:   {true, 0},
	OpTexM3x3Pad:   {true, 0},
	OpTexM3x3Tex:   {true, 0},
	OpTexM3x3Spec:  {true, 1},
	OpTexM3x3VSpec: {true, 0},
	OpExpP:         {true, 1},
	OpLogP:         {true, 1},
	OpCnd:          {true, 3},
	OpTexReg2Rgb:   {true, 0},
	OpTexDp3Tex:    {true, 0},
	OpTexM3x2Depth: {true, 0},
	OpTexDp3:       {true, 0},
	OpTexM3x3:      {true, 0},
	OpTexDepth:     {true, 0},
	OpCmp:          {true, 3},
	OpBem:          {true, 2},
	OpDp2Add:       {true, 3},
	OpDsx:          {true, 1},
	OpDsy:          {true, 1},
	OpTexLdd:       {true, 4},
	OpSetP:         {true, 2},
	OpTexLdl:       {true, 2},
	OpBreakP:       {false, 1},
}

// Disassemble parses a full D3D8 bytecode token stream (leading
// version token through the trailing END token) into a Program.
func Disassemble(toks []Token) (Program, error) {
	if len(toks) == 0 {
		return Program{}, &MalformedBytecode{0, "empty token stream"}
	}
	v, err := DecodeVersion(toks[0])
	if err != nil {
		return Program{}, &MalformedBytecode{0, err.Error()}
	}
	prog := Program{Version: v}
	i := 1
	for i < len(toks) {
		op := decodeOpcode(toks[i])
		if op == OpEnd {
			return prog, nil
		}
		ins, consumed, err := disassembleOne(toks, i)
		if err != nil {
			return Program{}, err
		}
		prog.Instructions = append(prog.Instructions, ins)
		i += consumed
	}
	return Program{}, &MalformedBytecode{i, "stream ended without an END token"}
}

func disassembleOne(toks []Token, i int) (Instruction, int, error) {
	op := decodeOpcode(toks[i])

	switch op {
	case OpComment:
		n := commentLen(toks[i])
		if i+1+n > len(toks) {
			return Instruction{}, 0, &MalformedBytecode{i, "comment runs past end of stream"}
		}
		return Instruction{Op: OpComment, Comment: decodeCommentWords(toks[i+1 : i+1+n])}, 1 + n, nil

	case OpPhase:
		return Instruction{Op: OpPhase, Phase: true}, 1, nil

	case OpDef:
		if i+6 > len(toks) {
			return Instruction{}, 0, &MalformedBytecode{i, "DEF runs past end of stream"}
		}
		d := DecodeDest(toks[i+1])
		lit := [4]float32{
			math.Float32frombits(uint32(toks[i+2])),
			math.Float32frombits(uint32(toks[i+3])),
			math.Float32frombits(uint32(toks[i+4])),
			math.Float32frombits(uint32(toks[i+5])),
		}
		return Instruction{Op: OpDef, Dest: d, HasDest: true, DefFloat: lit}, 6, nil

	case OpDefI:
		if i+6 > len(toks) {
			return Instruction{}, 0, &MalformedBytecode{i, "DEFI runs past end of stream"}
		}
		d := DecodeDest(toks[i+1])
		lit := [4]int32{int32(toks[i+2]), int32(toks[i+3]), int32(toks[i+4]), int32(toks[i+5])}
		return Instruction{Op: OpDefI, Dest: d, HasDest: true, DefInt: lit}, 6, nil

	case OpDefB:
		if i+3 > len(toks) {
			return Instruction{}, 0, &MalformedBytecode{i, "DEFB runs past end of stream"}
		}
		d := DecodeDest(toks[i+1])
		return Instruction{Op: OpDefB, Dest: d, HasDest: true, DefBool: toks[i+2] != 0}, 3, nil

	case OpDcl:
		if i+3 > len(toks) {
			return Instruction{}, 0, &MalformedBytecode{i, "DCL runs past end of stream"}
		}
		d := DecodeDest(toks[i+2])
		return Instruction{Op: OpDcl, Dest: d, HasDest: true, DeclUsage: uint32(toks[i+1])}, 3, nil
	}

	sh, ok := shapes[op]
	if !ok {
		return Instruction{}, 0, &MalformedBytecode{i, fmt.Sprintf("unrecognized opcode %#x", uint16(op))}
	}
	n := 1 + sh.nSrc
	if sh.dest {
		n++
	}
	if i+n > len(toks) {
		return Instruction{}, 0, &MalformedBytecode{i, "instruction runs past end of stream"}
	}
	ins := Instruction{Op: op}
	j := i + 1
	if sh.dest {
		ins.Dest = DecodeDest(toks[j])
		ins.HasDest = true
		j++
	}
	for k := 0; k < sh.nSrc; k++ {
		ins.Srcs = append(ins.Srcs, DecodeSrc(toks[j]))
		j++
	}
	return ins, n, nil
}

func decodeCommentWords(words []Token) string {
	b := make([]byte, 0, len(words)*4)
	for _, w := range words {
		b = append(b, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Hash returns a content hash of the raw token stream, used by
// package program to key the compiled-shader cache on (vertex
// bytecode, pixel bytecode) pairs without retaining the bytecode
// itself.
func Hash(toks []Token) uint64 {
	// FNV-1a over the little-endian token bytes.
	const offset, prime = 14695981039346656037, 1099511628211
	h := uint64(offset)
	for _, t := range toks {
		v := uint32(t)
		for i := 0; i < 4; i++ {
			h ^= uint64(byte(v >> (8 * i)))
			h *= prime
		}
	}
	return h
}
