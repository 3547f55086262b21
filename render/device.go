// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"sync"

	"go.uber.org/zap"

	"dx8gl/d3d8"
	"dx8gl/d3d8/bytecode"
	"dx8gl/d3d8/constant"
	"dx8gl/d3d8/program"
	"dx8gl/d3d8/shader"
	"dx8gl/d3d8/state"
	"dx8gl/internal/ctxt"
	"dx8gl/internal/diskcache"
)

// Device is the app-thread-facing handle to one D3D8 device
// instance: its state shadow, shader constant files, pipeline cache
// and render thread. Every exported method is safe to call from the
// app thread; only Frame's Draw* methods record into the in-flight
// command buffer, which is submitted to the render thread at
// Frame.End.
type Device struct {
	ctxt *ctxt.Ctxt
	log  *zap.SugaredLogger

	queue    *Queue
	registry *Registry

	stateMu   sync.Mutex
	state     *state.Manager
	recording *d3d8.StateBlockType

	vsConst *constant.Manager
	psConst *constant.Manager
	consts  *constDesc

	programs *program.Cache

	shaderMu  sync.Mutex
	boundVS   []bytecode.Token
	boundPS   []bytecode.Token
	haveVS    bool
	havePS    bool
}

// Options configures NewDevice. Every field is optional.
type Options struct {
	Dialect       shader.Dialect
	PipelineCache int
	Disk          *diskcache.Cache
	Log           *zap.SugaredLogger
}

// NewDevice opens a backend named by driverName (see internal/ctxt)
// and wires up the state manager, constant managers, pipeline cache
// and render thread around it.
func NewDevice(driverName string, vp d3d8.Viewport, opts Options) (*Device, error) {
	c, err := ctxt.Open(driverName)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var zlog *zap.Logger
	if log != nil {
		zlog = log.Desugar()
	}
	consts, err := newConstDesc(c.GPU())
	if err != nil {
		c.Close()
		return nil, err
	}
	d := &Device{
		ctxt:     c,
		log:      log,
		queue:    NewQueue(c.GPU(), log),
		registry: NewRegistry(),
		state:    state.NewManager(vp),
		vsConst:  constant.NewManager(),
		psConst:  constant.NewManager(),
		consts:   consts,
		programs: program.NewCache(c.GPU(), opts.Dialect, opts.PipelineCache, opts.Disk, zlog),
	}
	d.programs.SetDescTable(consts.table)
	return d, nil
}

// State returns the device's state manager. Callers must hold no
// assumption about concurrent access beyond what Manager itself
// documents: its own mutex-free design assumes single-app-thread
// access, matching D3D8's single-threaded device contract.
func (d *Device) State() *state.Manager { return d.state }

// VSConstants returns the vertex shader constant manager.
func (d *Device) VSConstants() *constant.Manager { return d.vsConst }

// PSConstants returns the pixel shader constant manager.
func (d *Device) PSConstants() *constant.Manager { return d.psConst }

// Queue returns the render thread's command queue.
func (d *Device) Queue() *Queue { return d.queue }

// Registry returns the device's resource registry.
func (d *Device) Registry() *Registry { return d.registry }

// SetVertexShader binds toks as the current vertex shader bytecode.
// Passing nil unbinds it. A bound vertex shader is used only while a
// pixel shader is also bound; otherwise both stages use the
// fixed-function pipeline.
func (d *Device) SetVertexShader(toks []bytecode.Token) {
	d.shaderMu.Lock()
	defer d.shaderMu.Unlock()
	d.boundVS = toks
	d.haveVS = toks != nil
}

// SetPixelShader binds toks as the current pixel shader bytecode.
// Passing nil unbinds it. A bound pixel shader is used only while a
// vertex shader is also bound; otherwise both stages use the
// fixed-function pipeline.
func (d *Device) SetPixelShader(toks []bytecode.Token) {
	d.shaderMu.Lock()
	defer d.shaderMu.Unlock()
	d.boundPS = toks
	d.havePS = toks != nil
}

// resolvePipeline looks up (compiling if necessary) the pipeline for
// the device's current shader bindings and render state. Unless both
// a vertex and a pixel shader are bound, it generates and compiles a
// fixed-function pipeline for both stages from the state manager's
// texture-stage/lighting snapshot instead; a lone bound shader is
// not used.
func (d *Device) resolvePipeline() (*program.Entry, error) {
	d.stateMu.Lock()
	rs := d.state.RasterState()
	ds := d.state.DSState()
	bs := d.state.BlendState()
	stateHash := d.state.PipelineStateHash()
	ffState := d.state.FixedFunctionState()
	d.stateMu.Unlock()

	d.shaderMu.Lock()
	haveVS, havePS := d.haveVS, d.havePS
	vs, ps := d.boundVS, d.boundPS
	d.shaderMu.Unlock()

	if haveVS && havePS {
		return d.programs.GetState(vs, ps, stateHash, rs, ds, bs)
	}

	ffHash := ffState.Hash()
	vsSrc, psSrc := fixedFunctionSource(ffState)
	return d.programs.GetFixedFunction(ffHash, vsSrc, psSrc, stateHash, rs, ds, bs)
}

// Close flushes the queue, releasing its render thread, and closes
// the underlying backend context.
func (d *Device) Close() {
	d.queue.Stop()
	d.consts.Destroy()
	d.ctxt.Close()
}
