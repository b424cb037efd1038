// Package font maps the character codes of PDF string operands to Unicode
// text and glyph advance widths.
//
// # Font Creation
//
// Fonts are created from font dictionaries or by standard 14 name:
//
//	f, err := font.FromDict("F1", fontDict)
//	f, ok := font.Standard("Helvetica")
//
// # Text Decoding
//
// A string operand is split into character codes with [Font.Decode]; each
// code is turned into text with [Font.GlyphText]:
//
//	for _, code := range f.Decode(raw) {
//		text := f.GlyphText(code)
//	}
//
// Text comes from the ToUnicode CMap when present, then from the font's
// encoding (WinAnsiEncoding, MacRomanEncoding, StandardEncoding or
// PDFDocEncoding, optionally patched by /Differences). Output is NFC.
//
// # Character Widths
//
// [Font.GlyphWidth] returns widths in thousandths of text space, taken from
// /Widths or /W, an embedded TrueType program, the built-in standard 14
// metrics, or /MissingWidth, in that order.
package font
