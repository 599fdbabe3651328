// Package wgpu implements textmesh.Context on the gogpu/wgpu HAL.
//
// Text meshes are uploaded as two vertex buffers (positions and UVs) and
// drawn by a single render pipeline built from an embedded WGSL shader,
// compiled to SPIR-V with gogpu/naga:
//
//	group 0: model matrix                    (per entity)
//	group 1: UV scale, UV offset, cutoff     (per material)
//	         glyph atlas texture and sampler
//
// # Usage
//
// Open picks a GPU from the registered HAL backends:
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
//	ctx, err := wgpu.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
// Applications that already own a device share it instead:
//
//	ctx, err := wgpu.NewContextFromProvider(app.DeviceProvider())
//
// # Buffers
//
// Models created with textmesh.UsageStatic get exactly sized buffers and
// reject updates. Dynamic models reserve power-of-two capacity and
// reallocate only when new text outgrows it.
//
// # Build Tags
//
// The package is excluded with the nogpu build tag.
package wgpu
