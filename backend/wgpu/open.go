//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
)

// describeAdapter formats an adapter for logs as "name (type, api)".
// Adapters without a name are reported by backend only.
func describeAdapter(info gputypes.AdapterInfo) string {
	if info.Name == "" {
		return info.Backend.String()
	}
	return fmt.Sprintf("%s (%s, %s)", info.Name, info.DeviceType, info.Backend)
}

// Open creates a context on a device of its own, picked from the most
// capable registered HAL backend. Import a HAL backend package (for example
// github.com/gogpu/wgpu/hal/allbackends) to make GPUs available.
func Open(opts ...Option) (*Context, error) {
	b, err := hal.SelectBestBackend()
	if err != nil {
		return nil, fmt.Errorf("wgpu: select backend: %w", err)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := selectAdapter(adapters)
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	c, err := NewContext(openDev.Device, openDev.Queue, opts...)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	c.instance = instance
	c.ownsDevice = true
	c.info = selected.Info

	textmesh.Logger().Info("wgpu: context created", "adapter", describeAdapter(c.info))
	if c.info.Driver != "" {
		textmesh.Logger().Debug("wgpu: driver", "version", c.info.Driver)
	}
	return c, nil
}

// selectAdapter prefers discrete or integrated GPUs over the first adapter.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}
