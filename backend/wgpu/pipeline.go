//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
)

// Uniform block sizes of the alpha-cutoff shader.
const (
	transformUniformSize = 64 // mat4x4<f32>
	materialUniformSize  = 32 // vec2 + vec2 + f32, padded to 16
)

// pipeline holds the bind group layouts and the render pipeline of the
// alpha-cutoff shader.
type pipeline struct {
	transformLayout hal.BindGroupLayout
	materialLayout  hal.BindGroupLayout
	layout          hal.PipelineLayout
	render          hal.RenderPipeline
}

// textVertexLayouts are the buffer layouts of a text mesh: positions in
// slot 0, UVs in slot 1.
func textVertexLayouts() []gputypes.VertexBufferLayout {
	return textmesh.VertexData{Attributes: []textmesh.VertexAttribute{
		{Name: textmesh.AttributePosition, Components: textmesh.PositionComponents},
		{Name: textmesh.AttributeUV, Components: textmesh.UVComponents},
	}}.Layouts()
}

// RenderPipeline returns the alpha-cutoff render pipeline, building it and
// its layouts on first use.
func (c *Context) RenderPipeline() (hal.RenderPipeline, error) {
	p, err := c.ensurePipeline()
	if err != nil {
		return nil, err
	}
	return p.render, nil
}

func (c *Context) ensurePipeline() (*pipeline, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if c.pipeline != nil {
		return c.pipeline, nil
	}
	if _, err := c.AlphaCutoffShader(); err != nil {
		return nil, err
	}

	p := &pipeline{}
	if err := c.createBindGroupLayouts(p); err != nil {
		p.destroy(c.device)
		return nil, err
	}

	layout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            c.label + "_text_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.transformLayout, p.materialLayout},
	})
	if err != nil {
		p.destroy(c.device)
		return nil, fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	p.layout = layout

	blend := gputypes.BlendStateAlpha()
	render, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  c.label + "_text_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     c.shader.module,
			EntryPoint: VertexEntryPoint,
			Buffers:    textVertexLayouts(),
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
		Fragment: &hal.FragmentState{
			Module:     c.shader.module,
			EntryPoint: FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{{
				Format:    c.format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		p.destroy(c.device)
		return nil, fmt.Errorf("wgpu: create render pipeline: %w", err)
	}
	p.render = render

	c.pipeline = p
	textmesh.Logger().Debug("wgpu: text pipeline created", "format", c.format)
	return p, nil
}

// createBindGroupLayouts creates the transform (group 0) and material
// (group 1) layouts.
func (c *Context) createBindGroupLayouts(p *pipeline) error {
	transformLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: c.label + "_transform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: transformUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create transform bind group layout: %w", err)
	}
	p.transformLayout = transformLayout

	materialLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: c.label + "_material_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStagesVertexFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: materialUniformSize,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create material bind group layout: %w", err)
	}
	p.materialLayout = materialLayout
	return nil
}

func (p *pipeline) destroy(device hal.Device) {
	if p.render != nil {
		device.DestroyRenderPipeline(p.render)
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
	}
	if p.materialLayout != nil {
		device.DestroyBindGroupLayout(p.materialLayout)
	}
	if p.transformLayout != nil {
		device.DestroyBindGroupLayout(p.transformLayout)
	}
}
