//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
)

// ErrEmptyImage is returned by MakeTexture for a nil or zero-sized image.
var ErrEmptyImage = errors.New("wgpu: texture image is empty")

// Texture is an RGBA8 sampled texture and its view.
type Texture struct {
	Width, Height int

	ctx     *Context
	texture hal.Texture
	view    hal.TextureView
	closed  bool
}

// MakeTexture uploads img into a new RGBA8 texture.
func (c *Context) MakeTexture(img *image.RGBA) (textmesh.Texture, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if img == nil || img.Rect.Empty() {
		return nil, ErrEmptyImage
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1} //nolint:gosec // image bounds

	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         c.label + "_glyph_atlas",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %dx%d: %w", w, h, err)
	}

	err = c.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		tightRows(img),
		&hal.ImageDataLayout{BytesPerRow: uint32(4 * w), RowsPerImage: uint32(h)}, //nolint:gosec // image bounds
		&size,
	)
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: upload texture: %w", err)
	}

	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         c.label + "_glyph_atlas_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	c.stats.Textures++
	textmesh.Logger().Debug("wgpu: texture uploaded", "width", w, "height", h)
	return &Texture{Width: w, Height: h, ctx: c, texture: tex, view: view}, nil
}

// tightRows returns the pixels of img without stride padding.
func tightRows(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == 4*w && img.Rect.Min == (image.Point{}) {
		return img.Pix[:4*w*h]
	}
	out := make([]byte, 0, 4*w*h)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		i := img.PixOffset(img.Rect.Min.X, y)
		out = append(out, img.Pix[i:i+4*w]...)
	}
	return out
}

// View returns the texture view.
func (t *Texture) View() hal.TextureView { return t.view }

// Close destroys the view and texture.
func (t *Texture) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.ctx.device.DestroyTextureView(t.view)
	t.ctx.device.DestroyTexture(t.texture)
	t.ctx.stats.Textures--
}
