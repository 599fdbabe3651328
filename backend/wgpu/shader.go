//go:build !nogpu

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
)

//go:embed alpha_cutoff.wgsl
var alphaCutoffWGSL string

// Entry points of the alpha-cutoff shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Shader is a compiled shader module.
type Shader struct {
	Label  string
	SPIRV  []uint32
	module hal.ShaderModule
}

// Module returns the HAL shader module.
func (s *Shader) Module() hal.ShaderModule { return s.module }

// compileSPIRV compiles WGSL source to SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// AlphaCutoffShader compiles the alpha-cutoff shader on first use and
// returns the cached module afterwards.
func (c *Context) AlphaCutoffShader() (textmesh.Shader, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if c.shader != nil {
		return c.shader, nil
	}
	code, err := compileSPIRV(alphaCutoffWGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: alpha cutoff: %w", err)
	}
	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  c.label + "_alpha_cutoff",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module: %w", err)
	}
	c.shader = &Shader{Label: "alpha_cutoff", SPIRV: code, module: module}
	textmesh.Logger().Debug("wgpu: alpha cutoff shader compiled", "words", len(code))
	return c.shader, nil
}
