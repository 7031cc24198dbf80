package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/gekko3d/textcloud/pointcloud/shaders"
)

const uniformBlockSize = uint64(unsafe.Sizeof(core.UniformBlock{}))

// ParticlePass draws a point mesh as instanced camera facing quads.
type ParticlePass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	UniformBuffer  *wgpu.Buffer
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	InstanceCount  uint32
	Device         *wgpu.Device

	version  uint64
	uploaded bool
}

func NewParticlePass(device *wgpu.Device, format wgpu.TextureFormat) (*ParticlePass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ParticleShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.ParticlesWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	// Layout auto
	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "ParticlePipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(core.ParticleInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32,
							Offset:         12,
							ShaderLocation: 1,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         16,
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
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
		Label: "ParticleUniforms",
		Size:  uniformBlockSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ParticleUniformsBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniforms,
				Size:    uniformBlockSize,
			},
		},
	})
	if err != nil {
		uniforms.Release()
		pipeline.Release()
		return nil, err
	}

	return &ParticlePass{
		Pipeline:      pipeline,
		BindGroup:     bindGroup,
		UniformBuffer: uniforms,
		Device:        device,
	}, nil
}

// SetGeometry uploads the mesh attributes when the mesh version changed since
// the last upload. It reports whether an upload happened.
func (p *ParticlePass) SetGeometry(queue *wgpu.Queue, mesh *core.Mesh) (bool, error) {
	if p.uploaded && p.version == mesh.Version {
		return false, nil
	}
	p.version = mesh.Version
	p.uploaded = true

	instances := mesh.Geometry.Instances()
	p.InstanceCount = uint32(len(instances))
	if len(instances) == 0 {
		return true, nil
	}

	if p.InstanceBuffer == nil || p.InstanceCap < p.InstanceCount {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		p.InstanceCap = p.InstanceCount + 256
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "ParticleInstanceBuffer",
			Size:  uint64(p.InstanceCap) * uint64(unsafe.Sizeof(core.ParticleInstance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.InstanceBuffer = nil
			p.InstanceCap = 0
			p.uploaded = false
			return false, err
		}
		p.InstanceBuffer = buf
	}

	if err := queue.WriteBuffer(p.InstanceBuffer, 0, bytesOf(instances)); err != nil {
		p.uploaded = false
		return false, err
	}
	return true, nil
}

func (p *ParticlePass) UpdateUniforms(queue *wgpu.Queue, block core.UniformBlock) error {
	return queue.WriteBuffer(p.UniformBuffer, 0, bytesOf([]core.UniformBlock{block}))
}

func (p *ParticlePass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil || p.InstanceCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.InstanceBuffer, 0, p.InstanceBuffer.GetSize())
	pass.Draw(6, p.InstanceCount, 0, 0)
}

func (p *ParticlePass) Release() {
	if p.InstanceBuffer != nil {
		p.InstanceBuffer.Release()
		p.InstanceBuffer = nil
	}
	p.BindGroup.Release()
	p.UniformBuffer.Release()
	p.Pipeline.Release()
}
