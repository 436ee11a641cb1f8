package render

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// primitiveWGSL is the shared shader for point and line batches: a single
// camera uniform and per-vertex color passthrough.
const primitiveWGSL = `
struct Camera {
    view_proj: mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> camera: Camera;

struct VertexIn {
    @location(0) pos: vec3<f32>,
    @location(1) color: vec4<f32>,
};

struct VertexOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(in: VertexIn) -> VertexOut {
    var out: VertexOut;
    out.pos = camera.view_proj * vec4<f32>(in.pos, 1.0);
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return in.color;
}
`

// vertex is the interleaved layout uploaded to the GPU: position + color.
type vertex struct {
	pos   [3]float32
	color [4]float32
}

const vertexStride = 28 // 3*4 position + 4*4 color bytes

// WGPUBackend renders the immediate-mode primitive stream through WebGPU.
// Points and lines issued between BeginFrame and EndFrame are batched into
// CPU-side arrays, uploaded in a single buffer write, and drawn in one render
// pass. Text overlays are not rasterized by this backend (no font atlas);
// embedders read merged labels from the scene instead.
type WGPUBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	linePipeline  *wgpu.RenderPipeline
	pointPipeline *wgpu.RenderPipeline
	cameraBuffer  *wgpu.Buffer
	cameraGroup   *wgpu.BindGroup

	camera *Camera
	width  int
	height int

	// Frame state for batched rendering across multiple draw calls.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Per-frame primitive batches, reused across frames to avoid allocations.
	lineVerts  []vertex
	pointVerts []vertex

	vertexBuffer    *wgpu.Buffer
	vertexBufferCap int

	destroyed bool
}

var _ Backend = &WGPUBackend{}

// NewWGPUBackend creates a WebGPU backend over the given surface descriptor.
// Unlike GPU setup for a full game renderer, failures here are returned
// rather than panicking: the engine degrades to a disabled no-op mode when no
// backend can be initialized.
//
// Parameters:
//   - surfaceDescriptor: the platform surface to present to
//   - width, height: initial surface size in pixels
//
// Returns:
//   - *WGPUBackend: the initialized backend
//   - error: error if adapter, device, or pipeline creation fails
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int) (*WGPUBackend, error) {
	runtime.LockOSThread()

	b := &WGPUBackend{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
		camera:   NewCamera(),
		width:    width,
		height:   height,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Visualizer Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	b.configureSurface(width, height)

	if err := b.initPipelines(); err != nil {
		return nil, err
	}

	return b, nil
}

// Camera returns the backend's orbit camera for input-driven navigation.
//
// Returns:
//   - *Camera: the camera
func (b *WGPUBackend) Camera() *Camera {
	return b.camera
}

// configureSurface (re)configures the swapchain and depth texture for the
// given size and rebuilds the cached render pass descriptor.
func (b *WGPUBackend) configureSurface(width, height int) {
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    nil, // set per-frame to the swapchain view
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 0.3, G: 0.3, B: 0.3, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	b.width = width
	b.height = height
}

// initPipelines builds the line and point render pipelines sharing the camera
// bind group and vertex layout.
func (b *WGPUBackend) initPipelines() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "primitive",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: primitiveWGSL,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}

	cameraLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create camera layout: %w", err)
	}

	b.cameraBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Buffer",
		Size:  64, // mat4x4<f32>
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create camera buffer: %w", err)
	}

	b.cameraGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.cameraBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create camera bind group: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "primitive",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: vertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
		},
	}

	build := func(label string, topology wgpu.PrimitiveTopology) (*wgpu.RenderPipeline, error) {
		return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  label,
			Layout: pipelineLayout,
			Vertex: wgpu.VertexState{
				Module:     module,
				EntryPoint: "vs_main",
				Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
			},
			Fragment: &wgpu.FragmentState{
				Module:     module,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{
						Format:    *b.surfaceFormat,
						Blend:     &wgpu.BlendStateAlphaBlending,
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  topology,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
			DepthStencil: &wgpu.DepthStencilState{
				Format:            wgpu.TextureFormatDepth24Plus,
				DepthWriteEnabled: true,
				DepthCompare:      wgpu.CompareFunctionLess,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			},
		})
	}

	if b.linePipeline, err = build("lines", wgpu.PrimitiveTopologyLineList); err != nil {
		return fmt.Errorf("failed to create line pipeline: %w", err)
	}
	if b.pointPipeline, err = build("points", wgpu.PrimitiveTopologyPointList); err != nil {
		return fmt.Errorf("failed to create point pipeline: %w", err)
	}

	return nil
}

func (b *WGPUBackend) DrawPoint(p common.Vec3, size float32, c common.Color) {
	// WebGPU point lists rasterize at 1px regardless of size.
	_ = size
	b.pointVerts = append(b.pointVerts, vertex{pos: p, color: c})
}

func (b *WGPUBackend) DrawLine(a, p common.Vec3, width float32, c common.Color) {
	_ = width
	b.lineVerts = append(b.lineVerts,
		vertex{pos: a, color: c},
		vertex{pos: p, color: c},
	)
}

func (b *WGPUBackend) DrawText(p common.Vec3, text string, height float32, c common.Color) {
	// Rasterizing text requires a font atlas, which is out of scope for the
	// primitive backend. Labels remain available to embedders via the scene's
	// merged label list.
}

func (b *WGPUBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return fmt.Errorf("backend destroyed")
	}
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	b.lineVerts = b.lineVerts[:0]
	b.pointVerts = b.pointVerts[:0]

	return nil
}

func (b *WGPUBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	// Upload the camera uniform for this frame.
	var viewProj [16]float32
	b.camera.ViewProjection(viewProj[:], b.width, b.height)
	b.queue.WriteBuffer(b.cameraBuffer, 0, common.SliceToBytes(viewProj[:]))

	// Upload both batches into one vertex buffer: lines first, then points.
	total := len(b.lineVerts) + len(b.pointVerts)
	if total > 0 {
		if b.vertexBuffer == nil || b.vertexBufferCap < total {
			if b.vertexBuffer != nil {
				b.vertexBuffer.Release()
			}
			capVerts := total * 2 // headroom so steady growth doesn't realloc every frame
			buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: "Primitive Vertex Buffer",
				Size:  uint64(capVerts * vertexStride),
				Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			})
			if err == nil {
				b.vertexBuffer = buf
				b.vertexBufferCap = capVerts
			}
		}
		if b.vertexBuffer != nil {
			b.queue.WriteBuffer(b.vertexBuffer, 0, common.SliceToBytes(b.lineVerts))
			b.queue.WriteBuffer(b.vertexBuffer, uint64(len(b.lineVerts)*vertexStride), common.SliceToBytes(b.pointVerts))

			b.framePass.SetBindGroup(0, b.cameraGroup, nil)
			b.framePass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
			if len(b.lineVerts) > 0 {
				b.framePass.SetPipeline(b.linePipeline)
				b.framePass.Draw(uint32(len(b.lineVerts)), 1, 0, 0)
			}
			if len(b.pointVerts) > 0 {
				b.framePass.SetPipeline(b.pointPipeline)
				b.framePass.Draw(uint32(len(b.pointVerts)), 1, uint32(len(b.lineVerts)), 0)
			}
		}
	}

	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *WGPUBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *WGPUBackend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed || width <= 0 || height <= 0 {
		return
	}
	b.configureSurface(width, height)
}

func (b *WGPUBackend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.destroyed = true

	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
		b.cameraBuffer = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
}
