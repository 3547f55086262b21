// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package d3d8

// NTextureStage is the number of texture-combiner stages D3D8
// exposes per device.
const NTextureStage = 8

// NLight is the number of simultaneously defined lights D3D8
// exposes per device.
const NLight = 8

// NClipPlane is the number of user clip planes D3D8 exposes per
// device.
const NClipPlane = 6

// NTexture is the number of texture-sampler bindings, one per
// texture stage.
const NTexture = NTextureStage

// NStream is the number of vertex stream-source bindings.
const NStream = 16

// TextureStage is the per-stage texture-combiner and sampler state
// described in spec.md §3 ("render state vector").
type TextureStage struct {
	ColorOp   TextureOp
	ColorArg0 TextureArg
	ColorArg1 TextureArg
	ColorArg2 TextureArg
	AlphaOp   TextureOp
	AlphaArg0 TextureArg
	AlphaArg1 TextureArg
	AlphaArg2 TextureArg

	MinFilter TexFilter
	MagFilter TexFilter
	MipFilter TexFilter
	AddrU     AddrMode
	AddrV     AddrMode
	AddrW     AddrMode

	// BumpEnvMat is the 2x2 bump-environment matrix used by
	// D3DTOP_BUMPENVMAP[LUMINANCE].
	BumpEnvMat    [4]float32
	BumpEnvLScale float32
	BumpEnvLOffs  float32

	LODBias     float32
	MaxAniso    int
	TexCoordIdx int
	// TransformFlags selects how many components of the texture
	// coordinate are transformed by the stage's texture matrix, and
	// whether the result is projected (divided by the last
	// component) before use.
	TransformFlags TexTransformFlags
	// Wrap holds the D3DRS_WRAP0..7 seam-wrapping bits for this
	// stage's texture coordinate index.
	Wrap uint32
}

// defaultTextureStage0 is the documented default for stage 0.
func defaultTextureStage0() TextureStage {
	return TextureStage{
		ColorOp: TOPModulate, ColorArg1: ArgTexture, ColorArg2: ArgCurrent,
		AlphaOp: TOPSelectArg1, AlphaArg1: ArgTexture, AlphaArg2: ArgCurrent,
		MinFilter: FilterPoint, MagFilter: FilterPoint, MipFilter: FilterNone,
		AddrU: AddrWrap, AddrV: AddrWrap, AddrW: AddrWrap,
		MaxAniso: 1, TexCoordIdx: 0,
	}
}

// defaultTextureStageN is the documented default for stages 1..7.
func defaultTextureStageN() TextureStage {
	s := defaultTextureStage0()
	s.ColorOp = TOPDisable
	s.AlphaOp = TOPDisable
	s.TexCoordIdx = 0
	return s
}

// TexTransformFlags selects the texture-coordinate transform
// applied by a stage (D3DTTFF_*).
type TexTransformFlags int

// Texture transform flags.
const (
	TTFFDisable TexTransformFlags = iota
	TTFFCount1
	TTFFCount2
	TTFFCount3
	TTFFCount4
	// TTFFProjected is ORed with one of the counts above to request
	// a projective (divide-by-last-component) transform.
	TTFFProjected TexTransformFlags = 1 << 8
)

// Light is a single light-source record (spec.md §3 "Light array").
type Light struct {
	Type      LightType
	Diffuse   [4]float32
	Specular  [4]float32
	Ambient   [4]float32
	Position  [3]float32
	Direction [3]float32
	Range     float32
	Falloff   float32
	Atten0    float32
	Atten1    float32
	Atten2    float32
	Theta     float32
	Phi       float32
	Enabled   bool
}

// Validate reports the violations in l per spec.md §3's light
// invariants. It never mutates l.
func (l *Light) Validate() []string {
	var v []string
	switch l.Type {
	case LightPoint, LightSpot, LightDirectional:
	default:
		v = append(v, "light type outside {point, spot, directional}")
	}
	if l.Type == LightSpot && l.Phi < l.Theta {
		v = append(v, "spot light: phi < theta")
	}
	if l.Type == LightPoint || l.Type == LightSpot {
		if l.Range < 0 {
			v = append(v, "point/spot light: negative range")
		}
		if l.Atten0 == 0 && l.Atten1 == 0 && l.Atten2 == 0 {
			v = append(v, "point/spot light: all attenuation factors are zero")
		}
	}
	if l.Type == LightDirectional {
		if l.Direction == [3]float32{} {
			v = append(v, "directional light: zero direction")
		}
	}
	return v
}

// Material is the single active material record (spec.md §3
// "material").
type Material struct {
	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32
	Emissive [4]float32
	Power    float32
}

// Viewport is the device's single active viewport (spec.md §3).
type Viewport struct {
	X, Y, Width, Height int
	MinZ, MaxZ          float32
}

// Validate reports the violation, if any, in v ("" if none).
func (v *Viewport) Validate() string {
	if v.MinZ > v.MaxZ {
		return "viewport: zmin > zmax"
	}
	if v.MinZ < 0 || v.MinZ > 1 || v.MaxZ < 0 || v.MaxZ > 1 {
		return "viewport: z range outside [0,1]"
	}
	return ""
}

// Scissor is the device's single active scissor rectangle.
type Scissor struct {
	X, Y, Width, Height int
	Enabled             bool
}

// ClipPlane is one of the six user clip planes (spec.md §3).
type ClipPlane struct {
	A, B, C, D float32
	Enabled    bool
}

// StateBlockType selects the subset of state a state block captures
// (spec.md §3 "State block").
type StateBlockType int

// State block types.
const (
	SBTAll StateBlockType = iota + 1
	SBTPixelState
	SBTVertexState
)
