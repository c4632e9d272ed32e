// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Package gpu provides a tiler.GraphicsContext rendering on a wgpu HAL
// device.
//
// The context owns an offscreen BGRA8 color texture of a fixed size. Drawing
// calls queue solid-color triangles on the CPU; Flush encodes them into a
// single render pass, submits it and waits for the submission to complete. ReadPixels copies a
// region of the texture into a staging buffer and maps it for reading.
//
// The device is borrowed from a gpucontext.DeviceProvider that also exposes
// HAL types (HalDevice() and HalQueue()), such as the gogpu application
// device.
//
//	gc, err := gpu.New(provider, 1024, 1024)
//	if err != nil {
//	    return err
//	}
//	defer gc.Destroy()
//
//	err = r.Render(gc, func(t tiler.TileInfo) error {
//	    gc.SetTransform(t.Projection())
//	    gc.FillRect(0, 0, 4000, 3000, color.White)
//	    return nil
//	})
package gpu

import (
	_ "embed"
	"fmt"
	"image/color"
	"time"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/tiler"
)

//go:embed shaders/solid.wgsl
var solidShaderWGSL string

const (
	// submitTimeout bounds polling for submission completion before falling
	// back to Device.WaitIdle.
	submitTimeout = 5 * time.Second
	pollInterval  = 100 * time.Microsecond
)

// colorRange is the single subresource of the color texture.
var colorRange = hal.TextureRange{
	Aspect:          gputypes.TextureAspectAll,
	MipLevelCount:   1,
	ArrayLayerCount: 1,
}

// halProvider is implemented by device providers that expose wgpu HAL types.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Context is a GPU graphics context. It implements tiler.GraphicsContext.
//
// Context is not safe for concurrent use.
type Context struct {
	device hal.Device
	queue  hal.Queue

	width, height int

	texture  hal.Texture
	view     hal.TextureView
	shader   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline

	// Viewport in framebuffer coordinates (origin bottom-left).
	vx, vy, vw, vh int

	ctm   matrix.Matrix
	store tiler.PixelStore

	// Pending work for the next Flush.
	clear    *gputypes.Color
	batches  []batch
	vertices []byte
	scratch  []vec.Vec2

	// initialized is set once the texture content has been defined by a
	// clearing render pass.
	initialized bool
	released    bool
}

// New creates a context with a width x height framebuffer on the device of
// provider.
//
// Returns ErrInvalidSize for non-positive sizes and ErrNoHAL if provider
// does not expose hal.Device and hal.Queue.
func New(provider gpucontext.DeviceProvider, width, height int) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	c := newContext(width, height)
	c.device = device
	c.queue = queue
	if err := c.createTarget(); err != nil {
		c.Destroy()
		return nil, err
	}
	if err := c.createPipeline(); err != nil {
		c.Destroy()
		return nil, err
	}
	tiler.Logger().Debug("gpu: context created", "width", width, "height", height)
	return c, nil
}

// newContext returns a context without GPU resources.
func newContext(width, height int) *Context {
	return &Context{
		width:  width,
		height: height,
		vw:     width,
		vh:     height,
		ctm:    matrix.Identity,
		store:  tiler.DefaultPixelStore,
	}
}

// createTarget creates the color texture and its view.
func (c *Context) createTarget() error {
	//nolint:gosec // G115: sizes validated positive
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label: "tiler_color",
		Size: hal.Extent3D{
			Width:              uint32(c.width),
			Height:             uint32(c.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	c.texture = tex

	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           "tiler_color_view",
		Format:          gputypes.TextureFormatBGRA8Unorm,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create color texture view: %w", err)
	}
	c.view = view
	return nil
}

// compileSPIRV compiles WGSL source to SPIR-V words.
func compileSPIRV(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// createPipeline builds the solid color triangle pipeline.
func (c *Context) createPipeline() error {
	code, err := compileSPIRV(solidShaderWGSL)
	if err != nil {
		return err
	}
	shader, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "tiler_solid_shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("create solid shader module: %w", err)
	}
	c.shader = shader

	layout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "tiler_solid_layout",
	})
	if err != nil {
		return fmt.Errorf("create solid pipeline layout: %w", err)
	}
	c.layout = layout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "tiler_solid_pipeline",
		Layout: c.layout,
		Vertex: hal.VertexState{
			Module:     c.shader,
			EntryPoint: "vs_main",
			Buffers:    solidVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     c.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create solid pipeline: %w", err)
	}
	c.pipeline = pipeline
	return nil
}

// Destroy releases all GPU objects in reverse creation order. The borrowed
// device and queue are left alive. Destroy is idempotent.
func (c *Context) Destroy() {
	c.released = true
	if c.device == nil {
		return
	}
	if c.pipeline != nil {
		c.device.DestroyRenderPipeline(c.pipeline)
		c.pipeline = nil
	}
	if c.layout != nil {
		c.device.DestroyPipelineLayout(c.layout)
		c.layout = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
	if c.view != nil {
		c.device.DestroyTextureView(c.view)
		c.view = nil
	}
	if c.texture != nil {
		c.device.DestroyTexture(c.texture)
		c.texture = nil
	}
}

// MaxViewportSize returns the framebuffer size.
func (c *Context) MaxViewportSize() (width, height int) {
	return c.width, c.height
}

// Viewport sets the rectangle subsequent drawing maps onto, in framebuffer
// coordinates. Drawing is clipped to the viewport.
func (c *Context) Viewport(x, y, width, height int) {
	c.vx, c.vy, c.vw, c.vh = x, y, width, height
}

// SetTransform sets the transform from canvas coordinates to viewport
// pixels.
func (c *Context) SetTransform(m matrix.Matrix) {
	c.ctm = m
}

// PixelStore returns the current pack state.
func (c *Context) PixelStore() tiler.PixelStore {
	return c.store
}

// SetPixelStore replaces the pack state.
func (c *Context) SetPixelStore(ps tiler.PixelStore) {
	c.store = ps
}

// Clear fills the whole framebuffer with col at the next Flush. Pending
// triangles are discarded.
func (c *Context) Clear(col color.Color) {
	p := premultiplied(col)
	c.clear = &gputypes.Color{R: float64(p[0]), G: float64(p[1]), B: float64(p[2]), A: float64(p[3])}
	c.batches = c.batches[:0]
	c.vertices = c.vertices[:0]
}

// FillRect fills the canvas rectangle with corner (x, y) and the given size.
func (c *Context) FillRect(x, y, width, height float64, col color.Color) {
	c.FillConvex([]vec.Vec2{
		{X: x, Y: y},
		{X: x + width, Y: y},
		{X: x + width, Y: y + height},
		{X: x, Y: y + height},
	}, col)
}

// FillConvex fills a convex polygon given in canvas coordinates. Polygons
// with fewer than three points are ignored.
func (c *Context) FillConvex(pts []vec.Vec2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	clip, ok := viewportScissor(c.vx, c.vy, c.vw, c.vh, c.width, c.height)
	if !ok {
		return
	}

	c.scratch = fanTriangles(c.scratch[:0], pts)
	rgba := premultiplied(col)
	first := uint32(len(c.vertices) / solidVertexStride) //nolint:gosec // vertex count fits uint32
	for _, p := range c.scratch {
		v := transformPoint(c.ctm, p)
		nx, ny := toNDC(vec.Vec2{X: v.X + float64(c.vx), Y: v.Y + float64(c.vy)}, c.width, c.height)
		off := len(c.vertices)
		c.vertices = append(c.vertices, make([]byte, solidVertexStride)...)
		writeSolidVertex(c.vertices[off:], nx, ny, rgba)
	}
	n := uint32(len(c.scratch)) //nolint:gosec // vertex count fits uint32

	if k := len(c.batches) - 1; k >= 0 && c.batches[k].clip == clip && c.batches[k].first+c.batches[k].count == first {
		c.batches[k].count += n
		return
	}
	c.batches = append(c.batches, batch{clip: clip, first: first, count: n})
}

// Flush encodes pending work into one render pass, submits it and waits for
// completion.
func (c *Context) Flush() error {
	if c.released {
		return ErrReleased
	}
	if c.initialized && c.clear == nil && len(c.batches) == 0 {
		return nil
	}

	var vertBuf hal.Buffer
	if len(c.vertices) > 0 {
		buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "tiler_solid_verts",
			Size:  uint64(len(c.vertices)),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		defer c.device.DestroyBuffer(buf)
		if err := c.queue.WriteBuffer(buf, 0, c.vertices); err != nil {
			return fmt.Errorf("upload vertices: %w", err)
		}
		vertBuf = buf
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "tiler_flush_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("tiler_flush"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpLoad
	var clearValue gputypes.Color
	if c.clear != nil {
		loadOp = gputypes.LoadOpClear
		clearValue = *c.clear
	} else if !c.initialized {
		loadOp = gputypes.LoadOpClear
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "tiler_flush_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       c.view,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearValue,
		}},
	})
	if vertBuf != nil {
		rp.SetPipeline(c.pipeline)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.SetViewport(0, 0, float32(c.width), float32(c.height), 0, 1)
		for _, b := range c.batches {
			rp.SetScissorRect(b.clip.x, b.clip.y, b.clip.width, b.clip.height)
			rp.Draw(b.count, 1, b.first, 0)
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	if err := c.submit(cmdBuf); err != nil {
		return err
	}

	tiler.Logger().Debug("gpu: flushed",
		"batches", len(c.batches), "vertices", len(c.vertices)/solidVertexStride, "clear", c.clear != nil)
	c.initialized = true
	c.clear = nil
	c.batches = c.batches[:0]
	c.vertices = c.vertices[:0]
	return nil
}

// submit submits cmdBuf and waits for it to complete.
func (c *Context) submit(cmdBuf hal.CommandBuffer) error {
	index, err := c.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	deadline := time.Now().Add(submitTimeout)
	for c.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			// The backend does not report progress; block until idle.
			if err := c.device.WaitIdle(); err != nil {
				return fmt.Errorf("wait for GPU: %w", err)
			}
			return nil
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// ReadPixels copies the width x height rectangle at framebuffer position
// (x, y) into dst, lowest row first, laid out according to the pack state
// and converted to attr.Format. Pending work is flushed first.
//
// Returns ErrOutOfBounds for rectangles outside the framebuffer,
// ErrShortBuffer if dst is too small and tiler.ErrUnsupportedFormat for
// formats other than RGBA8, BGRA8 and R8.
func (c *Context) ReadPixels(x, y, width, height int, attr tiler.PixelAttributes, dst []byte) error {
	if width < 0 || height < 0 || x < 0 || y < 0 || x+width > c.width || y+height > c.height {
		return fmt.Errorf("%w: %dx%d at %d,%d, framebuffer %dx%d",
			ErrOutOfBounds, width, height, x, y, c.width, c.height)
	}
	if _, err := tiler.NewPixelAttributes(attr.Format); err != nil {
		return err
	}
	bpp := attr.BytesPerPixel
	need := c.store.ReadSize(width, height, bpp)
	if len(dst) < need {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, need, len(dst))
	}
	if width == 0 || height == 0 {
		return nil
	}
	if err := c.Flush(); err != nil {
		return err
	}

	pitch := alignedRowPitch(width)
	staging, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "tiler_staging",
		Size:  uint64(pitch) * uint64(height), //nolint:gosec // G115: validated positive
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer c.device.DestroyBuffer(staging)

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "tiler_readback_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("tiler_readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.texture,
		Range:   colorRange,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	//nolint:gosec // G115: rectangle validated against the framebuffer
	encoder.CopyTextureToBuffer(c.texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(pitch), RowsPerImage: uint32(height)},
		TextureBase: hal.ImageCopyTexture{
			Texture:  c.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(c.height - y - height), Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		Size: hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: c.texture,
		Range:   colorRange,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	if err := c.submit(cmdBuf); err != nil {
		return err
	}

	size := uint64(pitch) * uint64(height) //nolint:gosec // G115: validated positive
	mapping, err := c.device.MapBuffer(staging, 0, size)
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	readback := unsafe.Slice((*byte)(mapping.Ptr), size)
	scatterRows(dst, readback, width, height, pitch, c.store, attr.Format, bpp)
	if err := c.device.UnmapBuffer(staging); err != nil {
		return fmt.Errorf("unmap staging buffer: %w", err)
	}
	return nil
}

var _ tiler.GraphicsContext = (*Context)(nil)
