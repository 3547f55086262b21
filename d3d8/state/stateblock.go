// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package state

import "dx8gl/d3d8"

// StateBlock is a captured snapshot of a category of Manager fields,
// D3D8's CreateStateBlock/ApplyStateBlock unit. Unlike real D3D8,
// which records only the states actually touched between
// BeginStateBlock and EndStateBlock and replays just those, a
// StateBlock here snapshots every field in its category up front —
// simpler, and observably equivalent for Apply (re-applying an
// untouched field is a no-op), at the cost of one full category copy
// per Capture rather than a sparse diff. See DESIGN.md.
type StateBlock struct {
	Type d3d8.StateBlockType

	transform Transform
	lights    [d3d8.NLight]d3d8.Light
	lightOn   [d3d8.NLight]bool
	material  d3d8.Material

	stages [d3d8.NTextureStage]d3d8.TextureStage
	bound  [d3d8.NTextureStage]bool

	render RenderState
}

// Capture snapshots the fields named by typ from m.
func (m *Manager) Capture(typ d3d8.StateBlockType) *StateBlock {
	b := &StateBlock{Type: typ}
	switch typ {
	case d3d8.SBTVertexState:
		b.transform = m.Transform
		b.lights = m.Lights
		b.lightOn = m.LightOn
		b.material = m.Material
		b.render = m.Render
	case d3d8.SBTPixelState:
		b.stages = m.Stages
		b.bound = m.Bound
		b.render = m.Render
	default: // d3d8.SBTAll and any unrecognized value capture everything
		b.transform = m.Transform
		b.lights = m.Lights
		b.lightOn = m.LightOn
		b.material = m.Material
		b.stages = m.Stages
		b.bound = m.Bound
		b.render = m.Render
	}
	return b
}

// Apply restores b's captured fields into m, leaving every
// uncaptured field (per b.Type) untouched.
func (m *Manager) Apply(b *StateBlock) {
	switch b.Type {
	case d3d8.SBTVertexState:
		m.Transform = b.transform
		m.Lights = b.lights
		m.LightOn = b.lightOn
		m.Material = b.material
		m.Render = b.render
	case d3d8.SBTPixelState:
		m.Stages = b.stages
		m.Bound = b.bound
		m.Render = b.render
	default:
		m.Transform = b.transform
		m.Lights = b.lights
		m.LightOn = b.lightOn
		m.Material = b.material
		m.Stages = b.stages
		m.Bound = b.bound
		m.Render = b.render
	}
	m.pipelineDirty = true
}
