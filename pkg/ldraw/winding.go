package ldraw

// parseContext is the per-file parse state. A fresh context is built for
// every file opened, root or sub-part, and never outlives its parse call.
// Only invert is inherited across a sub-part reference; the declared
// winding convention and the pending flag always reset to their defaults.
type parseContext struct {
	// invert records whether winding is currently flipped relative to the
	// file's own declared convention. Fixed for the lifetime of the file.
	invert bool
	// ccw is the file's declared winding convention, mutated by
	// BFC CERTIFY CW/CCW statements. Defaults to counter-clockwise.
	ccw bool
	// pendingInvert is the one-shot flag armed by BFC INVERTNEXT. It is
	// consumed by the next sub-part reference, whether or not that
	// reference resolves.
	pendingInvert bool
	// depth is the recursion depth, for diagnostics only.
	depth int
}

// effectiveCCW reports the winding convention triangles must be emitted
// with: the declared convention, flipped if an inversion is in effect.
func (c *parseContext) effectiveCCW() bool {
	return c.ccw != c.invert
}

// childInvert computes the inversion flag for a sub-part reference with the
// given transform determinant. The armed one-shot flip applies first, then a
// mirroring transform (negative determinant) flips once more; the two cancel
// when both are present. The caller clears pendingInvert unconditionally.
func (c *parseContext) childInvert(pending bool, determinant float64) bool {
	inv := c.invert
	if pending {
		inv = !inv
	}
	if determinant < 0 {
		inv = !inv
	}
	return inv
}
