// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package bytecode

import "math"

// Instruction is one decoded or to-be-encoded shader instruction.
// Dest and Srcs are both omitted (zero-valued/nil) for opcodes that
// carry neither (END, the various control-flow markers); DefFloat/
// DefInt/DefBool carry DEF/DEFI/DEFB's inline literal instead of
// reading it off a source register.
type Instruction struct {
	Op       Opcode
	Dest     Dest
	HasDest  bool
	Srcs     []Src
	DefFloat [4]float32
	DefInt   [4]int32
	DefBool  bool
	Comment  string // only set for OpComment
	Phase    bool   // true for the synthetic phase marker (ps_1_4 "phase")
	DeclUsage uint32 // DCL's usage/sampler-type token
}

// Program is an assembled (or disassembled) shader: its version and
// its ordered instruction list.
type Program struct {
	Version      Version
	Instructions []Instruction
}

// Assembler builds a Program incrementally, the way a front end that
// compiles D3D8 HLSL-lite assembly (or re-emits a disassembled
// program) would drive it.
type Assembler struct {
	prog Program
	done bool
}

// NewAssembler starts assembling a program targeting v.
func NewAssembler(v Version) *Assembler {
	return &Assembler{prog: Program{Version: v}}
}

// Add appends a plain instruction (no inline literal).
func (a *Assembler) Add(op Opcode, dest Dest, srcs ...Src) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{
		Op: op, Dest: dest, HasDest: true, Srcs: srcs,
	})
}

// AddNoDest appends an instruction with no destination (RET, CALL,
// LOOP and similar control-flow ops).
func (a *Assembler) AddNoDest(op Opcode, srcs ...Src) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{Op: op, Srcs: srcs})
}

// AddDef appends a DEF instruction, defining a constant register's
// literal value inline in the bytecode.
func (a *Assembler) AddDef(reg int, x, y, z, w float32) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{
		Op:       OpDef,
		Dest:     Dest{Type: RegConst, Num: reg, Mask: FullMask},
		HasDest:  true,
		DefFloat: [4]float32{x, y, z, w},
	})
}

// AddDefI appends a DEFI instruction (integer constant literal).
func (a *Assembler) AddDefI(reg int, x, y, z, w int32) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{
		Op:      OpDefI,
		Dest:    Dest{Type: RegConstInt, Num: reg, Mask: FullMask},
		HasDest: true,
		DefInt:  [4]int32{x, y, z, w},
	})
}

// AddDefB appends a DEFB instruction (boolean constant literal).
func (a *Assembler) AddDefB(reg int, v bool) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{
		Op:      OpDefB,
		Dest:    Dest{Type: RegConstBool, Num: reg, Mask: FullMask},
		HasDest: true,
		DefBool: v,
	})
}

// AddDcl appends a DCL instruction, declaring a vertex-shader input
// semantic or a pixel-shader sampler's texture type.
func (a *Assembler) AddDcl(dest Dest, usage uint32) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{
		Op: OpDcl, Dest: dest, HasDest: true, DeclUsage: usage,
	})
}

// AddComment appends a comment instruction, carried through
// assembly/disassembly but never affecting execution.
func (a *Assembler) AddComment(s string) {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{Op: OpComment, Comment: s})
}

// AddPhase appends ps_1_4's "phase" marker, separating the texture
// phase from the color phase.
func (a *Assembler) AddPhase() {
	a.prog.Instructions = append(a.prog.Instructions, Instruction{Op: OpPhase, Phase: true})
}

// End finalizes the program (appends the implicit END token on
// encode) and returns it. The assembler must not be reused
// afterwards.
func (a *Assembler) End() Program {
	a.done = true
	return a.prog
}

// Encode renders prog as its D3D8 bytecode token stream, including
// the leading version token and trailing END token.
func Encode(prog Program) []Token {
	out := []Token{prog.Version.Encode()}
	for _, ins := range prog.Instructions {
		out = append(out, encodeInstruction(ins)...)
	}
	out = append(out, Token(OpEnd))
	return out
}

func encodeInstruction(ins Instruction) []Token {
	if ins.Op == OpComment {
		words := encodeCommentWords(ins.Comment)
		out := make([]Token, 0, 1+len(words))
		out = append(out, commentToken(len(words)))
		out = append(out, words...)
		return out
	}
	if ins.Op == OpPhase {
		return []Token{instructionToken(OpPhase)}
	}
	if ins.Op == OpDcl {
		return []Token{instructionToken(OpDcl), Token(ins.DeclUsage), ins.Dest.Encode()}
	}

	out := []Token{instructionToken(ins.Op)}
	if ins.HasDest {
		out = append(out, ins.Dest.Encode())
	}
	switch ins.Op {
	case OpDef:
		out = append(out,
			Token(math.Float32bits(ins.DefFloat[0])),
			Token(math.Float32bits(ins.DefFloat[1])),
			Token(math.Float32bits(ins.DefFloat[2])),
			Token(math.Float32bits(ins.DefFloat[3])),
		)
		return out
	case OpDefI:
		out = append(out,
			Token(ins.DefInt[0]), Token(ins.DefInt[1]), Token(ins.DefInt[2]), Token(ins.DefInt[3]),
		)
		return out
	case OpDefB:
		v := Token(0)
		if ins.DefBool {
			v = 1
		}
		out = append(out, v)
		return out
	}
	for _, s := range ins.Srcs {
		out = append(out, s.Encode())
	}
	return out
}

// encodeCommentWords packs s's bytes (little-endian, NUL-padded to a
// DWORD boundary) as D3D8 comment tokens do.
func encodeCommentWords(s string) []Token {
	b := []byte(s)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]Token, len(b)/4)
	for i := range words {
		words[i] = Token(uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24)
	}
	return words
}
