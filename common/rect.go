package common

import "github.com/jakecoffman/cp"

// Rect builds a box from a top-left corner and size. The y axis points down,
// so B is the top edge and T the bottom edge in screen terms.
func Rect(x, y, w, h float64) cp.BB {
	return cp.BB{L: x, B: y, R: x + w, T: y + h}
}

// Overlaps reports whether two boxes share interior area. Touching edges do
// not count, unlike cp.BB.Intersects.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

func Width(bb cp.BB) float64 {
	return bb.R - bb.L
}

func Height(bb cp.BB) float64 {
	return bb.T - bb.B
}
