package demo

// DemoBuilderOption is a functional option applied to a Demo by New.
type DemoBuilderOption func(*Demo)

// WithBodies replaces the default box and sphere.
//
// Parameters:
//   - bodies: the dynamic objects to place above the ground
//
// Returns:
//   - DemoBuilderOption: option function to apply
func WithBodies(bodies ...BodySpec) DemoBuilderOption {
	return func(d *Demo) {
		d.bodies = append([]BodySpec(nil), bodies...)
	}
}
