package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/gogpu/textmesh"
)

// PDFOptions configures WritePDF. Lengths are in millimeters.
type PDFOptions struct {
	Width, Height float64
	Margin        float64
	StrokeWidth   float64
	Stroke        color.RGBA
	Title         string
}

// DefaultPDFOptions returns an A4 landscape page with thin black lines.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Width:       297,
		Height:      210,
		Margin:      10,
		StrokeWidth: 0.2,
		Stroke:      color.RGBA{0, 0, 0, 255},
		Title:       "textmesh",
	}
}

// WritePDF draws the triangles of objs as a wireframe on one page, scaled
// uniformly to fit inside the margins. The XY plane maps to the page with
// y pointing up.
func WritePDF(w io.Writer, opts PDFOptions, objs ...Object) error {
	if len(objs) == 0 {
		return ErrNoObjects
	}
	if opts.Width <= 2*opts.Margin || opts.Height <= 2*opts.Margin {
		return fmt.Errorf("export: page %gx%g mm leaves no room inside %g mm margins",
			opts.Width, opts.Height, opts.Margin)
	}

	world := make([][]textmesh.Vec3, len(objs))
	box := emptyBounds()
	for i, o := range objs {
		world[i] = o.WorldPositions()
		for _, p := range world[i] {
			box.add(p)
		}
	}

	c := canvas.New(opts.Width, opts.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI)
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(opts.Stroke)
	ctx.SetStrokeWidth(opts.StrokeWidth)

	triangles := 0
	if !box.empty() {
		scale := fitScale(box, opts.Width-2*opts.Margin, opts.Height-2*opts.Margin)
		for _, positions := range world {
			for j := 0; j+2 < len(positions); j += 3 {
				p := &canvas.Path{}
				for k := range 3 {
					x := (float64(positions[j+k].X) - box.minX) * scale
					y := (float64(positions[j+k].Y) - box.minY) * scale
					if k == 0 {
						p.MoveTo(x, y)
					} else {
						p.LineTo(x, y)
					}
				}
				p.Close()
				ctx.DrawPath(opts.Margin, opts.Margin, p)
				triangles++
			}
		}
	}

	writer := pdf.New(w, opts.Width, opts.Height, nil)
	writer.SetInfo(opts.Title, "", "", "", "textmesh")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	textmesh.Logger().Debug("export: pdf written", "objects", len(objs), "triangles", triangles)
	return nil
}

// fitScale returns the uniform scale that fits box into w x h. Degenerate
// boxes (a single point or line) scale by their larger extent.
func fitScale(box bounds, w, h float64) float64 {
	bw, bh := box.width(), box.height()
	switch {
	case bw <= 0 && bh <= 0:
		return 1
	case bw <= 0:
		return h / bh
	case bh <= 0:
		return w / bw
	}
	return min(w/bw, h/bh)
}
