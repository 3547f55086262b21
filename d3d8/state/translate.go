// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package state owns the device's shadow copy of every D3D8 render
// state, transform, light, material and texture-stage setting, and
// translates them into driver.RasterState/DSState/BlendState (and
// the matching D3D8-to-driver enum tables) only when something that
// affects the backend pipeline actually changed — the lazy-apply
// discipline spec.md §4 describes for the state manager.
package state

import (
	"dx8gl/d3d8"
	"dx8gl/driver"
)

// translateCmpFunc converts a d3d8.CmpFunc to its driver.CmpFunc
// equivalent. Both enumerations are 1-based in package d3d8
// (matching D3DCMP_* bit-exact values) and 0-based in package driver.
func translateCmpFunc(f d3d8.CmpFunc) driver.CmpFunc {
	switch f {
	case d3d8.CmpNever:
		return driver.CNever
	case d3d8.CmpLess:
		return driver.CLess
	case d3d8.CmpEqual:
		return driver.CEqual
	case d3d8.CmpLessEqual:
		return driver.CLessEqual
	case d3d8.CmpGreater:
		return driver.CGreater
	case d3d8.CmpNotEqual:
		return driver.CNotEqual
	case d3d8.CmpGreaterEqual:
		return driver.CGreaterEqual
	case d3d8.CmpAlways:
		return driver.CAlways
	}
	return driver.CAlways
}

func translateStencilOp(op d3d8.StencilOp) driver.StencilOp {
	switch op {
	case d3d8.StencilKeep:
		return driver.SKeep
	case d3d8.StencilZero:
		return driver.SZero
	case d3d8.StencilReplace:
		return driver.SReplace
	case d3d8.StencilIncrSat:
		return driver.SIncClamp
	case d3d8.StencilDecrSat:
		return driver.SDecClamp
	case d3d8.StencilInvert:
		return driver.SInvert
	case d3d8.StencilIncr:
		return driver.SIncWrap
	case d3d8.StencilDecr:
		return driver.SDecWrap
	}
	return driver.SKeep
}

func translateCullMode(c d3d8.CullMode) (cull driver.CullMode, clockwise bool) {
	switch c {
	case d3d8.CullNone:
		return driver.CNone, true
	case d3d8.CullCW:
		return driver.CBack, true
	case d3d8.CullCCW:
		return driver.CFront, true
	}
	return driver.CNone, true
}

func translateFillMode(f d3d8.FillMode) driver.FillMode {
	switch f {
	case d3d8.FillPoint, d3d8.FillWireframe:
		return driver.FWireframe
	case d3d8.FillSolid:
		return driver.FFill
	}
	return driver.FFill
}

func translateBlendFactor(b d3d8.BlendFactor) driver.BlendFac {
	switch b {
	case d3d8.BlendZero:
		return driver.BZero
	case d3d8.BlendOne:
		return driver.BOne
	case d3d8.BlendSrcColor:
		return driver.BSrcColor
	case d3d8.BlendInvSrcColor:
		return driver.BInvSrcColor
	case d3d8.BlendSrcAlpha:
		return driver.BSrcAlpha
	case d3d8.BlendInvSrcAlpha:
		return driver.BInvSrcAlpha
	case d3d8.BlendDestColor:
		return driver.BDstColor
	case d3d8.BlendInvDestColor:
		return driver.BInvDstColor
	case d3d8.BlendDestAlpha:
		return driver.BDstAlpha
	case d3d8.BlendInvDestAlpha:
		return driver.BInvDstAlpha
	case d3d8.BlendSrcAlphaSat:
		return driver.BSrcAlphaSaturated
	case d3d8.BlendBothSrcAlpha:
		return driver.BSrcAlpha
	case d3d8.BlendBothInvSrcAlpha:
		return driver.BInvSrcAlpha
	}
	return driver.BOne
}

func translateBlendOp(op d3d8.BlendOp) driver.BlendOp {
	switch op {
	case d3d8.BlendOpAdd:
		return driver.BAdd
	case d3d8.BlendOpSubtract:
		return driver.BSubtract
	case d3d8.BlendOpRevSubtract:
		return driver.BRevSubtract
	case d3d8.BlendOpMin:
		return driver.BMin
	case d3d8.BlendOpMax:
		return driver.BMax
	}
	return driver.BAdd
}

// translateAddrMode converts a d3d8.AddrMode to its driver.AddrMode
// equivalent. The driver package has no border-color or
// mirror-once address mode, so both fall back to clamp-to-edge —
// close enough for the D3D8 content this runtime targets, and a
// backend that does add a true border mode can refine this later.
func translateAddrMode(a d3d8.AddrMode) driver.AddrMode {
	switch a {
	case d3d8.AddrWrap:
		return driver.AWrap
	case d3d8.AddrMirror:
		return driver.AMirror
	case d3d8.AddrClamp:
		return driver.AClamp
	case d3d8.AddrBorder:
		return driver.AClamp
	case d3d8.AddrMirrorOnce:
		return driver.AClamp
	}
	return driver.AWrap
}

func translateFilter(f d3d8.TexFilter) driver.Filter {
	switch f {
	case d3d8.FilterNone, d3d8.FilterPoint:
		return driver.FNearest
	case d3d8.FilterLinear, d3d8.FilterAnisotropic:
		return driver.FLinear
	}
	return driver.FNearest
}

func translatePrimitive(p d3d8.Primitive) driver.Topology {
	switch p {
	case d3d8.PrimPointList:
		return driver.TPoint
	case d3d8.PrimLineList:
		return driver.TLine
	case d3d8.PrimLineStrip:
		return driver.TLnStrip
	case d3d8.PrimTriangleList:
		return driver.TTriangle
	case d3d8.PrimTriangleStrip:
		return driver.TTriStrip
	case d3d8.PrimTriangleFan:
		return driver.TTriFan
	}
	return driver.TTriangle
}
