// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"errors"

	"dx8gl/d3d8"
	"dx8gl/d3d8/state"
)

var errNotRecording = errors.New("render: EndStateBlock called without a matching BeginStateBlock")
var errAlreadyRecording = errors.New("render: BeginStateBlock called while already recording")

// BeginStateBlock starts recording state-block type typ. Since
// state.StateBlock captures a full category snapshot rather than a
// sparse diff (see state.StateBlock's doc comment), Begin only
// remembers which category EndStateBlock should snapshot; the
// snapshot itself is taken at End time, after the app's setters have
// run.
func (d *Device) BeginStateBlock(typ d3d8.StateBlockType) error {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	if d.recording != nil {
		return errAlreadyRecording
	}
	t := typ
	d.recording = &t
	return nil
}

// EndStateBlock captures the current state of the category named by
// the matching BeginStateBlock and returns it as a token to be
// passed to ApplyStateBlock later.
func (d *Device) EndStateBlock() (*state.StateBlock, error) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	if d.recording == nil {
		return nil, errNotRecording
	}
	b := d.state.Capture(*d.recording)
	d.recording = nil
	return b, nil
}

// CreateStateBlock immediately captures the current state of
// category typ, without a Begin/End recording window.
func (d *Device) CreateStateBlock(typ d3d8.StateBlockType) *state.StateBlock {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return d.state.Capture(typ)
}

// ApplyStateBlock restores b's captured fields into the device's
// state manager.
func (d *Device) ApplyStateBlock(b *state.StateBlock) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	d.state.Apply(b)
}
