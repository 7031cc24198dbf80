package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/textcloud/pointcloud/shaders"
	"github.com/lucasb-eyer/go-colorful"
)

// GradientBlock matches the WGSL Gradient struct.
type GradientBlock struct {
	Inner      [4]float32
	Outer      [4]float32
	Resolution [2]float32
	_          [2]float32
}

const gradientBlockSize = uint64(unsafe.Sizeof(GradientBlock{}))

func NewGradientBlock(inner, outer colorful.Color, width, height float32) GradientBlock {
	return GradientBlock{
		Inner:      [4]float32{float32(inner.R), float32(inner.G), float32(inner.B), 1},
		Outer:      [4]float32{float32(outer.R), float32(outer.G), float32(outer.B), 1},
		Resolution: [2]float32{width, height},
	}
}

// BackgroundPass fills the surface with a radial gradient using one
// fullscreen triangle.
type BackgroundPass struct {
	Pipeline      *wgpu.RenderPipeline
	BindGroup     *wgpu.BindGroup
	UniformBuffer *wgpu.Buffer
}

func NewBackgroundPass(device *wgpu.Device, format wgpu.TextureFormat) (*BackgroundPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "BackgroundShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.BackgroundWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "BackgroundPipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
			CullMode: wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	uniforms, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "BackgroundUniforms",
		Size:  gradientBlockSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "BackgroundBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniforms,
				Size:    gradientBlockSize,
			},
		},
	})
	if err != nil {
		uniforms.Release()
		pipeline.Release()
		return nil, err
	}

	return &BackgroundPass{
		Pipeline:      pipeline,
		BindGroup:     bindGroup,
		UniformBuffer: uniforms,
	}, nil
}

func (p *BackgroundPass) Update(queue *wgpu.Queue, block GradientBlock) error {
	return queue.WriteBuffer(p.UniformBuffer, 0, bytesOf([]GradientBlock{block}))
}

func (p *BackgroundPass) Draw(pass *wgpu.RenderPassEncoder) {
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.Draw(3, 1, 0, 0)
}

func (p *BackgroundPass) Release() {
	p.BindGroup.Release()
	p.UniformBuffer.Release()
	p.Pipeline.Release()
}
