// Package model provides the geometric primitives shared by the other
// packages.
//
//   - [Point] - a 2D point
//   - [BBox] - an axis-aligned box in PDF's bottom-up coordinates
//   - [Matrix] - a 2D affine transformation in PDF's [a b c d e f] form
//
// Matrices act on row vectors, so m.Multiply(n) applies m first:
//
//	trm := params.Multiply(textMatrix).Multiply(ctm)
//	p := trm.Transform(model.Point{X: 0, Y: 0})
package model
