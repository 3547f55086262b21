// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package program compiles disassembled D3D8 vertex/pixel shader
// pairs into backend pipelines and caches the result, keyed on the
// pair's bytecode hash. A translation failure in either stage falls
// back to a stub pipeline that renders solid magenta rather than
// failing the draw outright.
package program

import (
	"container/list"
	"sync"

	"go.uber.org/zap"

	"dx8gl/d3d8/bytecode"
	"dx8gl/d3d8/shader"
	"dx8gl/driver"
	"dx8gl/internal/diskcache"
)

// Key identifies a compiled pipeline by the content hash of its
// vertex and pixel bytecode, plus a hash of every other render-state
// bit that driver.GraphState bakes into the pipeline at creation
// (raster/depth-stencil/blend). D3D8 lets an application change that
// state per draw without rebinding shaders, but the backend's
// Pipeline object is immutable once created, so State folds the
// would-be-dynamic state into the cache key instead: a render-state
// change that does not affect Raster/DS/Blend never produces a new
// Key, and one that does simply looks up (or compiles) a different
// cached Pipeline for the same shader pair.
type Key struct {
	VS, PS, State uint64
}

// Entry is one cached, ready-to-bind pipeline.
type Entry struct {
	Key      Key
	Pipeline driver.Pipeline
	VSCode   driver.ShaderCode
	PSCode   driver.ShaderCode
	Stub     bool
}

func (e *Entry) destroy() {
	if d, ok := e.Pipeline.(driver.Destroyer); ok && d != nil {
		d.Destroy()
	}
	if d, ok := e.VSCode.(driver.Destroyer); ok && d != nil {
		d.Destroy()
	}
	if d, ok := e.PSCode.(driver.Destroyer); ok && d != nil {
		d.Destroy()
	}
}

// Cache is the in-memory, most-recently-used-ordered pipeline cache
// for one device. Eviction follows an intrusive doubly-linked list
// (container/list), the same shape an LRU built over a hash map
// takes regardless of language: map for O(1) lookup, list for O(1)
// move-to-front and evict-from-back.
type Cache struct {
	mu       sync.Mutex
	gpu      driver.GPU
	dialect  shader.Dialect
	capacity int
	disk     *diskcache.Cache // nil disables the on-disk source tier
	log      *zap.Logger

	entries map[Key]*list.Element // Value is *Entry
	order   *list.List

	desc driver.DescTable // nil until SetDescTable is called
}

// SetDescTable binds t as the descriptor table every pipeline this
// Cache compiles from now on is created with (driver.GraphState.Desc).
// Package render calls this once, right after NewCache, with the
// table that binds the device's vertex/pixel shader constant buffers
// to the stage slots the translated GLSL's constant block expects.
// It does not affect pipelines already compiled.
func (c *Cache) SetDescTable(t driver.DescTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.desc = t
}

// NewCache returns a Cache that compiles through gpu using dialect.
// disk may be nil. log may be nil (zap.NewNop() is substituted).
func NewCache(gpu driver.GPU, dialect shader.Dialect, capacity int, disk *diskcache.Cache, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		gpu: gpu, dialect: dialect, capacity: capacity, disk: disk, log: log,
		entries: map[Key]*list.Element{},
		order:   list.New(),
	}
}

// Get returns the pipeline compiled from vsToks/psToks, compiling and
// inserting it first if this is the first time the pair is seen. The
// returned pipeline always uses default Raster/DS/Blend state; use
// GetState to key in the caller's current render state as well.
func (c *Cache) Get(vsToks, psToks []bytecode.Token) (*Entry, error) {
	key := Key{VS: bytecode.Hash(vsToks), PS: bytecode.Hash(psToks)}
	return c.getOrCompile(key, vsToks, psToks, driver.RasterState{}, driver.DSState{}, driver.BlendState{})
}

// GetState is Get, but also keys the cache on stateHash (the caller's
// Manager.pipelineHash(), or a fixedfunction.State hash combined with
// it) and bakes raster/ds/blend into the compiled driver.GraphState.
func (c *Cache) GetState(vsToks, psToks []bytecode.Token, stateHash uint64, raster driver.RasterState, ds driver.DSState, blend driver.BlendState) (*Entry, error) {
	key := Key{VS: bytecode.Hash(vsToks), PS: bytecode.Hash(psToks), State: stateHash}
	return c.getOrCompile(key, vsToks, psToks, raster, ds, blend)
}

// GetFixedFunction returns the pipeline compiled from vsSrc/psSrc,
// pre-translated GLSL produced by package fixedfunction rather than
// disassembled bytecode. ffHash identifies the fixedfunction.State
// that produced the source (fixedfunction.State.Hash()); stateHash
// and the raster/ds/blend triple play the same role as in GetState.
// The two code paths share this Cache and its eviction policy, since
// ffHash and a bytecode hash occupy the same uint64 key space.
func (c *Cache) GetFixedFunction(ffHash uint64, vsSrc, psSrc string, stateHash uint64, raster driver.RasterState, ds driver.DSState, blend driver.BlendState) (*Entry, error) {
	key := Key{VS: ffHash, PS: 0, State: stateHash}
	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*Entry)
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	entry, err := c.compileSource(key, vsSrc, psSrc, raster, ds, blend)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		entry.destroy()
		return elem.Value.(*Entry), nil
	}
	elem := c.order.PushFront(entry)
	c.entries[key] = elem
	c.evictLocked()
	return entry, nil
}

func (c *Cache) compileSource(key Key, vsSrc, psSrc string, raster driver.RasterState, ds driver.DSState, blend driver.BlendState) (*Entry, error) {
	vsCode, err := c.gpu.NewShaderCode([]byte(vsSrc))
	if err != nil {
		return nil, err
	}
	psCode, err := c.gpu.NewShaderCode([]byte(psSrc))
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	desc := c.desc
	c.mu.Unlock()
	state := &driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: vsCode, Name: "main"},
		FragFunc: driver.ShaderFunc{Code: psCode, Name: "main"},
		Desc:     desc,
		Raster:   raster,
		DS:       ds,
		Blend:    blend,
	}
	pipe, err := c.gpu.NewPipeline(state)
	if err != nil {
		return nil, err
	}
	return &Entry{Key: key, Pipeline: pipe, VSCode: vsCode, PSCode: psCode}, nil
}

func (c *Cache) getOrCompile(key Key, vsToks, psToks []bytecode.Token, raster driver.RasterState, ds driver.DSState, blend driver.BlendState) (*Entry, error) {
	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*Entry)
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	entry, err := c.compile(key, vsToks, psToks, raster, ds, blend)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have raced us to the same key.
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		entry.destroy()
		return elem.Value.(*Entry), nil
	}
	elem := c.order.PushFront(entry)
	c.entries[key] = elem
	c.evictLocked()
	return entry, nil
}

func (c *Cache) evictLocked() {
	for len(c.entries) > c.capacity {
		back := c.order.Back()
		if back == nil {
			return
		}
		e := back.Value.(*Entry)
		c.order.Remove(back)
		delete(c.entries, e.Key)
		e.destroy()
	}
}

func (c *Cache) compile(key Key, vsToks, psToks []bytecode.Token, raster driver.RasterState, ds driver.DSState, blend driver.BlendState) (*Entry, error) {
	vsSrc, vsErr := c.translatedSource(key.VS, vsToks)
	psSrc, psErr := c.translatedSource(key.PS, psToks)

	stub := false
	if vsErr != nil || psErr != nil {
		c.log.Warn("shader translation failed, falling back to stub pipeline",
			zap.Uint64("vs_hash", key.VS), zap.Uint64("ps_hash", key.PS),
			zap.Error(firstErr(vsErr, psErr)))
		vsSrc, psSrc = stubVertexGLSL, stubPixelGLSL
		stub = true
	}

	vsCode, err := c.gpu.NewShaderCode([]byte(vsSrc))
	if err != nil {
		return nil, err
	}
	psCode, err := c.gpu.NewShaderCode([]byte(psSrc))
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	desc := c.desc
	c.mu.Unlock()
	state := &driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: vsCode, Name: "main"},
		FragFunc: driver.ShaderFunc{Code: psCode, Name: "main"},
		Desc:     desc,
		Raster:   raster,
		DS:       ds,
		Blend:    blend,
	}
	pipe, err := c.gpu.NewPipeline(state)
	if err != nil {
		return nil, err
	}
	return &Entry{Key: key, Pipeline: pipe, VSCode: vsCode, PSCode: psCode, Stub: stub}, nil
}

// translatedSource returns the GLSL translation of toks, consulting
// the on-disk cache first and populating it on a miss.
func (c *Cache) translatedSource(hash uint64, toks []bytecode.Token) (string, error) {
	if c.disk != nil {
		if data, ok := c.disk.Load(hash); ok {
			return string(data), nil
		}
	}
	prog, err := bytecode.Disassemble(toks)
	if err != nil {
		return "", err
	}
	src, err := shader.Translate(prog, c.dialect)
	if err != nil {
		return "", err
	}
	if c.disk != nil {
		_ = c.disk.Store(hash, []byte(src))
	}
	return src, nil
}

func firstErr(a, b error) error {
	if a != nil {
		return a
	}
	return b
}

// Len returns the number of pipelines currently cached in memory.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
