// Package pages provides access to a PDF page and its resources.
//
// # Page Access
//
// The [Page] type wraps a page dictionary and its parent Pages node, for
// inheritable attributes:
//
//   - MediaBox - page dimensions
//   - CropBox - visible area (optional)
//   - Rotate - page rotation (0, 90, 180, 270)
//   - Resources - fonts and form XObjects
//   - Contents - content stream data
//
// All objects must be direct; indirect references are not resolved, and
// stream data is used as stored.
//
// # Resources
//
// [Resources] builds fonts on demand from the /Font dictionary and turns
// /XObject form streams into [Form] values:
//
//	f, err := page.Resources().Font("F1")
//	form, ok := page.Resources().XObject("Fm1")
package pages
