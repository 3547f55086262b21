// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package bytecode

import "testing"

func TestVersionRoundTrip(t *testing.T) {
	for _, v := range []Version{
		{Pixel: false, Major: 1, Minor: 1},
		{Pixel: true, Major: 1, Minor: 4},
	} {
		got, err := DecodeVersion(v.Encode())
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("round trip = %+v, want %+v", got, v)
		}
	}
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	a := NewAssembler(Version{Major: 1, Minor: 1})
	a.AddDef(0, 1, 2, 3, 4)
	a.AddComment("generated")
	a.Add(OpMov, Dest{Type: RegTexCrdOut, Num: 0, Mask: FullMask},
		Src{Type: RegInput, Num: 0, Swiz: Identity})
	a.Add(OpMad, Dest{Type: RegTemp, Num: 0, Mask: FullMask},
		Src{Type: RegInput, Num: 1, Swiz: Identity},
		Src{Type: RegConst, Num: 0, Swiz: Identity},
		Src{Type: RegTemp, Num: 0, Swiz: Identity, Mod: SrcModNeg})
	a.Add(OpTexKill, Dest{Type: RegTexCrdOut, Num: 0, Mask: FullMask})
	prog := a.End()

	toks := Encode(prog)
	got, err := Disassemble(toks)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != prog.Version {
		t.Fatalf("version mismatch: %+v vs %+v", got.Version, prog.Version)
	}
	if len(got.Instructions) != len(prog.Instructions) {
		t.Fatalf("got %d instructions, want %d", len(got.Instructions), len(prog.Instructions))
	}
	for i := range prog.Instructions {
		w, g := prog.Instructions[i], got.Instructions[i]
		if w.Op != g.Op {
			t.Fatalf("instr %d: op %v vs %v", i, g.Op, w.Op)
		}
		if w.HasDest != g.HasDest || w.Dest != g.Dest {
			t.Fatalf("instr %d: dest %+v vs %+v", i, g.Dest, w.Dest)
		}
		if len(w.Srcs) != len(g.Srcs) {
			t.Fatalf("instr %d: %d srcs vs %d", i, len(g.Srcs), len(w.Srcs))
		}
		for j := range w.Srcs {
			if w.Srcs[j] != g.Srcs[j] {
				t.Fatalf("instr %d src %d: %+v vs %+v", i, j, g.Srcs[j], w.Srcs[j])
			}
		}
		if w.Op == OpDef && w.DefFloat != g.DefFloat {
			t.Fatalf("instr %d: DEF literal %v vs %v", i, g.DefFloat, w.DefFloat)
		}
		if w.Op == OpComment && w.Comment != g.Comment {
			t.Fatalf("instr %d: comment %q vs %q", i, g.Comment, w.Comment)
		}
	}
}

func TestDisassembleTruncatedStream(t *testing.T) {
	toks := []Token{Version{Major: 1, Minor: 1}.Encode(), Token(OpMov)}
	if _, err := Disassemble(toks); err == nil {
		t.Fatal("expected error for truncated MOV instruction")
	}
}

func TestDisassembleMissingEnd(t *testing.T) {
	toks := []Token{Version{Major: 1, Minor: 1}.Encode()}
	if _, err := Disassemble(toks); err == nil {
		t.Fatal("expected error for stream with no END token")
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	toks := []Token{Version{Major: 1, Minor: 1}.Encode(), Token(0x3F1), Token(OpEnd)}
	if _, err := Disassemble(toks); err == nil {
		t.Fatal("expected error for unrecognized opcode")
	}
}

func TestSwizzleIdentityString(t *testing.T) {
	if Identity.String() != "" {
		t.Fatalf("identity swizzle should stringify empty, got %q", Identity.String())
	}
	s := Swizzle(0) // all x
	if got := s.String(); got != ".xxxx" {
		t.Fatalf("got %q, want .xxxx", got)
	}
}

func TestHashDeterministic(t *testing.T) {
	a := NewAssembler(Version{Major: 1, Minor: 1})
	a.Add(OpMov, Dest{Type: RegTexCrdOut, Mask: FullMask}, Src{Type: RegInput, Swiz: Identity})
	toks := Encode(a.End())
	if Hash(toks) != Hash(toks) {
		t.Fatal("Hash is not deterministic")
	}
	toks2 := append([]Token(nil), toks...)
	toks2[1] = toks2[1] ^ 1
	if Hash(toks) == Hash(toks2) {
		t.Fatal("Hash did not change for different bytecode")
	}
}
