package renderer

// RendererBuilderOption is a functional option applied to a renderer by NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode picks vsync or uncapped presentation. It is applied when the
// surface is first configured.
//
// Parameters:
//   - mode: PresentModeVSync (default) or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the sample count of the main color and depth attachments.
// The shadow pass is always single-sampled. Defaults to MSAA4x.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer requests the fallback adapter, e.g. lavapipe on a headless box.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
