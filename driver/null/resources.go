package null

import "dx8gl/driver"

// RenderPass implements driver.RenderPass.
type RenderPass struct {
	att []driver.Attachment
	sub []driver.Subpass
}

// NewFB implements driver.RenderPass.
func (r *RenderPass) NewFB(iv []driver.ImageView, width, height, layers int) (driver.Framebuf, error) {
	return &Framebuf{iv: iv, width: width, height: height, layers: layers}, nil
}

// Destroy implements driver.Destroyer.
func (r *RenderPass) Destroy() {}

// Framebuf implements driver.Framebuf.
type Framebuf struct {
	iv                    []driver.ImageView
	width, height, layers int
}

// Destroy implements driver.Destroyer.
func (f *Framebuf) Destroy() {}

// ShaderCode implements driver.ShaderCode.
// Src exposes the bytes given to GPU.NewShaderCode for assertions in
// program-cache tests; it is not part of the driver.ShaderCode
// interface.
type ShaderCode struct {
	src []byte
}

// Src returns the shader source bytes recorded at creation time.
func (s *ShaderCode) Src() []byte { return s.src }

// Destroy implements driver.Destroyer.
func (s *ShaderCode) Destroy() {}

// DescHeap implements driver.DescHeap.
type DescHeap struct {
	descs []driver.Descriptor
	count int
}

// New implements driver.DescHeap.
func (h *DescHeap) New(n int) error {
	if n < 0 {
		n = 0
	}
	h.count = n
	return nil
}

// SetBuffer implements driver.DescHeap.
func (h *DescHeap) SetBuffer(cpy, nr, start int, buf []driver.Buffer, off, size []int64) {}

// SetImage implements driver.DescHeap.
func (h *DescHeap) SetImage(cpy, nr, start int, iv []driver.ImageView) {}

// SetSampler implements driver.DescHeap.
func (h *DescHeap) SetSampler(cpy, nr, start int, splr []driver.Sampler) {}

// Count implements driver.DescHeap.
func (h *DescHeap) Count() int { return h.count }

// Destroy implements driver.Destroyer.
func (h *DescHeap) Destroy() {}

// DescTable implements driver.DescTable.
type DescTable struct {
	heaps []driver.DescHeap
}

// Destroy implements driver.Destroyer.
func (t *DescTable) Destroy() {}

// Pipeline implements driver.Pipeline.
// Graph exposes the graphics state the pipeline was created from, which
// the fixed-function generator and program cache tests use to assert
// that the expected GraphState reached the seam.
type Pipeline struct {
	graph *driver.GraphState
	comp  *driver.CompState
}

// Graph returns the graphics state the pipeline was created from, or
// nil for a compute pipeline.
func (p *Pipeline) Graph() *driver.GraphState { return p.graph }

// Destroy implements driver.Destroyer.
func (p *Pipeline) Destroy() {}

// Buffer implements driver.Buffer.
type Buffer struct {
	data    []byte
	visible bool
	usage   driver.Usage
}

// Visible implements driver.Buffer.
func (b *Buffer) Visible() bool { return b.visible }

// Bytes implements driver.Buffer.
func (b *Buffer) Bytes() []byte {
	if !b.visible {
		return nil
	}
	return b.data
}

// Cap implements driver.Buffer.
func (b *Buffer) Cap() int64 { return int64(len(b.data)) }

// Destroy implements driver.Destroyer.
func (b *Buffer) Destroy() {}

// Image implements driver.Image.
type Image struct {
	fmt            driver.PixelFmt
	size           driver.Dim3D
	layers, levels int
	data           []byte
}

// NewView implements driver.Image.
func (im *Image) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	return &ImageView{img: im, typ: typ, layer: layer, layers: layers, level: level, levels: levels}, nil
}

// Destroy implements driver.Destroyer.
func (im *Image) Destroy() {}

// ImageView implements driver.ImageView.
type ImageView struct {
	img                    *Image
	typ                    driver.ViewType
	layer, layers          int
	level, levels          int
}

// Destroy implements driver.Destroyer.
func (v *ImageView) Destroy() {}

// Sampler implements driver.Sampler.
type Sampler struct {
	s driver.Sampling
}

// Destroy implements driver.Destroyer.
func (s *Sampler) Destroy() {}
