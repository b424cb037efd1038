// Package graphicsstate provides the PDF graphics state used while
// interpreting a content stream for text.
//
// # Graphics State
//
// The main type is GraphicsState, which tracks:
//   - CTM (Current Transformation Matrix) for coordinate transformations
//   - Text state (font, size, spacing, rise, matrices)
//   - A stack of saved states for q and Q
//
// Example usage:
//
//	gs := graphicsstate.NewGraphicsState()
//	gs.Save()                  // Push state (q operator)
//	gs.Transform(matrix)       // Modify CTM (cm operator)
//	gs.SetFont("F1", f, 12)    // Set font (Tf operator)
//	gs.Restore()               // Pop state (Q operator)
//
// # Text State
//
// Text rendering uses a separate TextState structure that tracks:
//   - Font name and size (Tf operator)
//   - Character and word spacing (Tc, Tw operators)
//   - Horizontal scaling (Tz operator)
//   - Leading for line spacing (TL operator)
//   - Text and text line matrices (Tm, Td operators)
//
// # Device Space
//
// TransformPoint maps a point in text space through the text rendering
// matrix, and FontSize reports the font size as it appears in device
// space. ProcessGlyphDisplacement moves the text matrix past a glyph or a
// TJ adjustment.
package graphicsstate
