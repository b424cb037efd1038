// Package layout turns the glyph runs of a page into plain text that keeps
// the rough shape of the printed page.
//
// # Grid Layout
//
// The [GridAssembler] implements text.Assembler:
//
//	r := text.NewPageTextReceiver(text.WithAssembler(layout.NewGridAssembler()))
//
// Runs are filtered first:
//
//   - runs whose origin is outside the MediaBox
//   - runs with no width
//   - repeated runs painted over each other (fake bold)
//   - runs with no visible text
//
// The remaining glyphs are merged into words along each row. The page is
// then divided into rows one mean font size high and into columns one
// median character wide, and every word is written at the cell nearest
// its origin.
//
// # Configuration
//
//	config := layout.DefaultGridConfig()
//	config.KeepOverlapping = true
//	assembler := layout.NewGridAssemblerWithConfig(config)
//
// # HTML
//
// [RenderHTML] wraps laid-out text in a pre element of a small HTML
// document.
package layout
