//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/backend"
)

// Name is the registry name of this backend.
const Name = "wgpu"

// DefaultAlphaCutoff is the alpha below which text texels are discarded.
const DefaultAlphaCutoff float32 = 0.5

// minBufferSize is the smallest buffer the backend allocates. Empty meshes
// still get a valid vertex buffer.
const minBufferSize = 4

// Backend errors.
var (
	// ErrNilDevice is returned when a context is created without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrNilQueue is returned when a context is created without a queue.
	ErrNilQueue = errors.New("wgpu: queue is nil")

	// ErrNoHALDevice is returned when a device provider does not expose
	// hal.Device and hal.Queue.
	ErrNoHALDevice = errors.New("wgpu: provider does not expose HAL types")

	// ErrNoAdapter is returned by Open when no adapter is found.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrAttributeMismatch is returned when an update does not carry the
	// attributes the model was created with.
	ErrAttributeMismatch = errors.New("wgpu: vertex attributes differ from model")
)

func init() {
	backend.Register(Name, func() (backend.Backend, error) {
		return Open()
	})
}

// Option configures a Context.
type Option func(*Context)

// WithLabel prefixes the labels of every GPU resource the context creates.
func WithLabel(label string) Option {
	return func(c *Context) {
		c.label = label
	}
}

// WithTargetFormat sets the color format the render pipeline writes.
func WithTargetFormat(format gputypes.TextureFormat) Option {
	return func(c *Context) {
		c.format = format
	}
}

// WithAlphaCutoff sets the cutoff written into new materials.
func WithAlphaCutoff(cutoff float32) Option {
	return func(c *Context) {
		c.cutoff = cutoff
	}
}

// Stats counts GPU resources and uploads.
type Stats struct {
	// Buffers is the number of live buffers.
	Buffers int

	// BufferBytes is the allocated size of live buffers.
	BufferBytes uint64

	// Textures is the number of live textures.
	Textures int

	// Writes counts queue buffer writes.
	Writes int

	// Reallocations counts vertex buffers replaced by a larger one.
	Reallocations int
}

// Context implements textmesh.Context on a gogpu/wgpu HAL device.
//
// Models own one vertex buffer per attribute, materials and entities own a
// uniform buffer each. A Context is not safe for concurrent use.
type Context struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance

	// ownsDevice is true when Open created the device (destroy on Close)
	ownsDevice bool
	info       gputypes.AdapterInfo

	label  string
	cutoff float32
	format gputypes.TextureFormat

	shader   *Shader
	sampler  hal.Sampler
	pipeline *pipeline

	stats  Stats
	closed bool
}

// NewContext creates a context on an existing device and queue. The caller
// keeps ownership of both.
func NewContext(device hal.Device, queue hal.Queue, opts ...Option) (*Context, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	c := &Context{
		device: device,
		queue:  queue,
		label:  "textmesh",
		cutoff: DefaultAlphaCutoff,
		format: gputypes.TextureFormatBGRA8Unorm,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewContextFromProvider creates a context on the device of a host
// application. Providers exposing HalDevice() any and HalQueue() any are
// preferred; otherwise Device() and Queue() must hold HAL types.
func NewContextFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Context, error) {
	if provider == nil {
		return nil, ErrNoHALDevice
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	var dev, q any
	if hp, ok := provider.(halProvider); ok {
		dev, q = hp.HalDevice(), hp.HalQueue()
	} else {
		dev, q = provider.Device(), provider.Queue()
	}
	device, ok := dev.(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: device is %T", ErrNoHALDevice, dev)
	}
	queue, ok := q.(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: queue is %T", ErrNoHALDevice, q)
	}
	opts = append([]Option{WithTargetFormat(provider.SurfaceFormat())}, opts...)
	c, err := NewContext(device, queue, opts...)
	if err != nil {
		return nil, err
	}
	info := provider.AdapterInfo()
	c.info = gputypes.AdapterInfo{Name: info.Name}
	textmesh.Logger().Info("wgpu: context attached to shared device",
		"adapter", info.Name, "type", info.Type.String())
	return c, nil
}

// Name returns "wgpu".
func (c *Context) Name() string { return Name }

// Info returns the adapter the context runs on, when known.
func (c *Context) Info() gputypes.AdapterInfo { return c.info }

// Stats returns resource counters.
func (c *Context) Stats() Stats { return c.stats }

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// Close destroys the pipeline, shader module and sampler, and the device
// when Open created it. Models, materials, entities and textures must be
// closed before.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.pipeline != nil {
		c.pipeline.destroy(c.device)
		c.pipeline = nil
	}
	if c.sampler != nil {
		c.device.DestroySampler(c.sampler)
		c.sampler = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader.module)
		c.shader = nil
	}
	if c.ownsDevice {
		c.device.Destroy()
		if c.instance != nil {
			c.instance.Destroy()
			c.instance = nil
		}
	}
	textmesh.Logger().Info("wgpu: context closed", "label", c.label)
}

func (c *Context) check() error {
	if c.closed {
		return textmesh.ErrReleased
	}
	return nil
}

// createBuffer allocates a buffer of at least size bytes, rounded up to a
// multiple of four.
func (c *Context) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, uint64, error) {
	size = max(size, minBufferSize)
	size = (size + 3) &^ 3
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: c.label + "_" + label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("wgpu: create %s buffer (%d bytes): %w", label, size, err)
	}
	c.stats.Buffers++
	c.stats.BufferBytes += size
	return buf, size, nil
}

func (c *Context) destroyBuffer(buf hal.Buffer, size uint64) {
	if buf == nil {
		return
	}
	c.device.DestroyBuffer(buf)
	c.stats.Buffers--
	c.stats.BufferBytes -= size
}

func (c *Context) writeBuffer(buf hal.Buffer, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := c.queue.WriteBuffer(buf, 0, data); err != nil {
		return fmt.Errorf("wgpu: write buffer: %w", err)
	}
	c.stats.Writes++
	return nil
}

// Sampler returns the linear clamp-to-edge sampler shared by all
// materials, creating it on first use.
func (c *Context) Sampler() (hal.Sampler, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if c.sampler != nil {
		return c.sampler, nil
	}
	s, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        c.label + "_glyph_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	c.sampler = s
	return s, nil
}
