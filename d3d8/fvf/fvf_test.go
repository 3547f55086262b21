// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package fvf

import "testing"

func TestDecodeXYZDiffuseTex1(t *testing.T) {
	code := XYZ | Diffuse | (1 << TexCountShift)
	attrs, stride, err := Decode(code)
	if err != nil {
		t.Fatal(err)
	}
	want := []Attr{
		{Kind: AttrPosition, Offset: 0, Size: 12},
		{Kind: AttrDiffuse, Offset: 12, Size: 4},
		{Kind: AttrTexCoord, Offset: 16, Size: 8, Stage: 0, NComp: 2},
	}
	if len(attrs) != len(want) {
		t.Fatalf("got %d attrs, want %d: %+v", len(attrs), len(want), attrs)
	}
	for i := range attrs {
		if attrs[i] != want[i] {
			t.Fatalf("attr %d = %+v, want %+v", i, attrs[i], want[i])
		}
	}
	if stride != 24 {
		t.Fatalf("stride = %d, want 24", stride)
	}
}

func TestDecodeXYZB1(t *testing.T) {
	attrs, stride, err := Decode(XYZB1)
	if err != nil {
		t.Fatal(err)
	}
	if len(attrs) != 2 {
		t.Fatalf("got %d attrs, want 2: %+v", len(attrs), attrs)
	}
	if attrs[0].Kind != AttrPosition || attrs[0].Size != 16 {
		t.Fatalf("position attr = %+v", attrs[0])
	}
	if attrs[1].Kind != AttrBlendWeight || attrs[1].NComp != 1 || attrs[1].Size != 4 {
		t.Fatalf("blend attr = %+v, want 1 component", attrs[1])
	}
	if stride != 20 {
		t.Fatalf("stride = %d, want 20", stride)
	}
}

func TestDecodeXYZB5(t *testing.T) {
	attrs, stride, err := Decode(XYZB5)
	if err != nil {
		t.Fatal(err)
	}
	if attrs[1].NComp != 5 {
		t.Fatalf("blend weight count = %d, want 5", attrs[1].NComp)
	}
	if stride != 16+20 {
		t.Fatalf("stride = %d, want %d", stride, 16+20)
	}
}

func TestDecodeXYZRHWNoBlend(t *testing.T) {
	attrs, stride, err := Decode(XYZRHW)
	if err != nil {
		t.Fatal(err)
	}
	if len(attrs) != 1 || !attrs[0].RHW {
		t.Fatalf("attrs = %+v, want single RHW position", attrs)
	}
	if stride != 16 {
		t.Fatalf("stride = %d, want 16", stride)
	}
}

func TestDecodeNoPositionIsError(t *testing.T) {
	if _, _, err := Decode(Diffuse); err == nil {
		t.Fatal("expected error for code with no position bits")
	}
}

func TestDecodeTexCoordSizeEncoding(t *testing.T) {
	// Per-stage size bits are non-monotonic: 0->2, 1->4, 2->1, 3->3.
	code := XYZ | (4 << TexCountShift)
	code |= 1 << (TexCoordSizeShift0 + 2*0) // stage 0: 4 components
	code |= 2 << (TexCoordSizeShift0 + 2*1) // stage 1: 1 component
	code |= 3 << (TexCoordSizeShift0 + 2*2) // stage 2: 3 components
	// stage 3 left at 0: 2 components (default)
	attrs, _, err := Decode(code)
	if err != nil {
		t.Fatal(err)
	}
	tex := attrs[len(attrs)-4:]
	wantComp := []int{4, 1, 3, 2}
	for i, a := range tex {
		if a.NComp != wantComp[i] {
			t.Fatalf("stage %d: NComp = %d, want %d", i, a.NComp, wantComp[i])
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		pos      Code
		nBlend   int
		normal   bool
		diffuse  bool
		specular bool
		tex      []int
	}{
		{pos: XYZ, diffuse: true, tex: []int{2}},
		{pos: XYZRHW, nBlend: 3, normal: true, tex: []int{4, 1, 3}},
		{pos: XYZRHW, nBlend: 0, specular: true},
	}
	for _, c := range cases {
		code, err := Encode(c.pos, c.nBlend, c.normal, false, c.diffuse, c.specular, c.tex)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", c, err)
		}
		attrs, _, err := Decode(code)
		if err != nil {
			t.Fatalf("Decode(%#x): %v", code, err)
		}
		var gotTex []int
		for _, a := range attrs {
			if a.Kind == AttrTexCoord {
				gotTex = append(gotTex, a.NComp)
			}
		}
		if len(gotTex) != len(c.tex) {
			t.Fatalf("case %+v: got %d tex attrs, want %d", c, len(gotTex), len(c.tex))
		}
		for i := range gotTex {
			if gotTex[i] != c.tex[i] {
				t.Fatalf("case %+v: tex[%d] = %d, want %d", c, i, gotTex[i], c.tex[i])
			}
		}
	}
}

func TestDecodeTooManyTexStages(t *testing.T) {
	code := XYZ | Code(9)<<TexCountShift
	if _, _, err := Decode(code); err == nil {
		t.Fatal("expected error for 9 texture stages")
	}
}
