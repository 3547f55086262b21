// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package d3d8

// BlendFactor is the type of alpha-blend source/destination factors
// (D3DBLEND_*).
type BlendFactor int

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDestColor
	BlendInvDestColor
	BlendDestAlpha
	BlendInvDestAlpha
	BlendSrcAlphaSat
	BlendBothSrcAlpha
	BlendBothInvSrcAlpha
)

// BlendOp is the type of alpha-blend equations (D3DBLENDOP_*).
type BlendOp int

// Blend operations.
const (
	BlendOpAdd BlendOp = iota + 1
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

// CmpFunc is the type of comparison functions (D3DCMP_*), used by
// the depth test, alpha test and stencil test.
type CmpFunc int

// Comparison functions.
const (
	CmpNever CmpFunc = iota + 1
	CmpLess
	CmpEqual
	CmpLessEqual
	CmpGreater
	CmpNotEqual
	CmpGreaterEqual
	CmpAlways
)

// StencilOp is the type of stencil operations (D3DSTENCILOP_*).
type StencilOp int

// Stencil operations.
const (
	StencilKeep StencilOp = iota + 1
	StencilZero
	StencilReplace
	StencilIncrSat
	StencilDecrSat
	StencilInvert
	StencilIncr
	StencilDecr
)

// CullMode is the type of primitive culling modes (D3DCULL_*).
type CullMode int

// Cull modes.
const (
	CullNone CullMode = iota + 1
	CullCW
	CullCCW
)

// FillMode is the type of polygon fill modes (D3DFILL_*).
type FillMode int

// Fill modes.
const (
	FillPoint FillMode = iota + 1
	FillWireframe
	FillSolid
)

// AddrMode is the type of texture address modes (D3DTADDRESS_*).
type AddrMode int

// Address modes.
const (
	AddrWrap AddrMode = iota + 1
	AddrMirror
	AddrClamp
	AddrBorder
	AddrMirrorOnce
)

// TexFilter is the type of texture-stage minification/magnification/
// mip filters (D3DTEXF_*).
type TexFilter int

// Texture filters.
const (
	FilterNone TexFilter = iota
	FilterPoint
	FilterLinear
	FilterAnisotropic
)

// TextureOp is the type of texture-stage color/alpha combiner
// operations (D3DTOP_*).
type TextureOp int

// Texture-stage operations. The fixed-function generator in package
// fixedfunction has a combiner rule for some of them; for
// BlendFactorAlpha, BlendTextureAlphaPM, PreModulate, the four
// Modulate*Add* ops and the two BumpEnvMap ops it selects arg1.
const (
	TOPDisable TextureOp = iota + 1
	TOPSelectArg1
	TOPSelectArg2
	TOPModulate
	TOPModulate2X
	TOPModulate4X
	TOPAdd
	TOPAddSigned
	TOPAddSigned2X
	TOPSubtract
	TOPAddSmooth
	TOPBlendDiffuseAlpha
	TOPBlendTextureAlpha
	TOPBlendFactorAlpha
	TOPBlendTextureAlphaPM
	TOPBlendCurrentAlpha
	TOPPreModulate
	TOPModulateAlphaAddColor
	TOPModulateColorAddAlpha
	TOPModulateInvAlphaAddColor
	TOPModulateInvColorAddAlpha
	TOPBumpEnvMap
	TOPBumpEnvMapLuminance
	TOPDotProduct3
	TOPLerp
)

// TextureArg identifies the input of a texture-stage combiner
// argument (D3DTA_*). The low bits select the source; Complement
// and AlphaReplicate are modifier flags applied on top.
type TextureArg int

// Texture-stage argument sources.
const (
	ArgDiffuse TextureArg = iota
	ArgCurrent
	ArgTexture
	ArgTFactor
	ArgSpecular
	ArgTemp
)

// Texture-stage argument modifiers, ORed with a TextureArg source.
const (
	ArgComplement      TextureArg = 1 << 4
	ArgAlphaReplicate  TextureArg = 1 << 5
)

// Source returns a's source selector with modifier bits masked off.
func (a TextureArg) Source() TextureArg { return a &^ (ArgComplement | ArgAlphaReplicate) }

// LightType is the type of a light source (D3DLIGHT_*).
type LightType int

// Light types.
const (
	LightPoint LightType = iota + 1
	LightSpot
	LightDirectional
)

// MaterialColorSource selects where vertex lighting reads diffuse
// and specular material colors from (D3DMCS_*), consumed by the
// fixed-function vertex-lighting body (§4.6).
type MaterialColorSource int

// Material color sources.
const (
	MCSMaterial MaterialColorSource = iota
	MCSColor1
	MCSColor2
)

// FogMode selects the vertex or pixel fog falloff equation
// (D3DFOG_*).
type FogMode int

// Fog modes.
const (
	FogNone FogMode = iota
	FogExp
	FogExp2
	FogLinear
)

// Primitive topology, shared with driver.Topology by the state
// manager's draw-primitive path. Kept distinct from driver.Topology
// so this package has no dependency on package driver.
type Primitive int

// Primitive types (D3DPT_*).
const (
	PrimPointList Primitive = iota + 1
	PrimLineList
	PrimLineStrip
	PrimTriangleList
	PrimTriangleStrip
	PrimTriangleFan
)

// VertexCount returns the number of vertices needed to draw primCount
// primitives of kind p, per the table in spec.md §4.8.
func (p Primitive) VertexCount(primCount int) int {
	switch p {
	case PrimPointList:
		return primCount
	case PrimLineList:
		return 2 * primCount
	case PrimLineStrip:
		return primCount + 1
	case PrimTriangleList:
		return 3 * primCount
	case PrimTriangleStrip, PrimTriangleFan:
		return primCount + 2
	}
	return 0
}
