package textmesh

import "golang.org/x/text/unicode/norm"

// Option configures a Renderer during creation.
//
// Example:
//
//	// Default alpha-cutoff material
//	r, err := textmesh.NewStatic(ctx, glyphs, textmesh.Center, "Hello")
//
//	// Custom material, NFC-normalized input
//	r, err := textmesh.NewDynamic(ctx, glyphs, textmesh.LeftEdge, "",
//	    textmesh.WithMaterial(mat),
//	    textmesh.WithNormalization(norm.NFC))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	material  Material
	normalize func(string) string
	label     string
	position  Vec3
	rotation  Quat
	scale     Vec3
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		rotation: IdentityQuat(),
		scale:    One,
	}
}

// WithMaterial renders the text with m instead of the default
// alpha-cutoff material. The renderer does not close a caller's material.
func WithMaterial(m Material) Option {
	return func(o *options) {
		o.material = m
	}
}

// WithNormalization normalizes text to form before layout, so that a
// decomposed "e" + U+0301 occupies a single cell under norm.NFC. Change
// detection in UpdateText still compares the caller's unnormalized strings.
func WithNormalization(form norm.Form) Option {
	return func(o *options) {
		o.normalize = form.String
	}
}

// WithLabel names the renderer in log records.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithTransform sets the transform applied when the entity is created.
func WithTransform(pos Vec3, rot Quat, scale Vec3) Option {
	return func(o *options) {
		o.position = pos
		o.rotation = rot
		o.scale = scale
	}
}
