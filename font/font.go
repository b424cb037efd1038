package font

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFont is returned for font dictionaries this package cannot
// interpret.
var ErrUnsupportedFont = errors.New("font: unsupported font")

// defaultWidth is used for glyphs with no width information at all.
const defaultWidth = 500.0

// Font represents a PDF font
type Font struct {
	Name     string
	BaseFont string
	Subtype  string
	Encoding string

	// ToUnicode CMap for character code to Unicode mapping
	ToUnicode *CMap

	differences map[byte]rune

	// simple font widths from /FirstChar and /Widths
	firstChar    uint32
	widths       []float64
	widthScale   float64
	missingWidth float64

	// composite font widths from the descendant's /W and /DW
	cidWidths   map[uint32]float64
	defaultCIDW float64

	standard *asciiWidths
	embedded *embeddedMetrics
}

// NewFont creates a new simple font with WinAnsiEncoding. Standard 14
// fonts get their built-in widths.
func NewFont(name, baseFont, subtype string) *Font {
	f := &Font{
		Name:       name,
		BaseFont:   baseFont,
		Subtype:    subtype,
		Encoding:   "WinAnsiEncoding",
		widthScale: 1,
	}
	if std, ok := standardName(baseFont); ok {
		f.standard = standardFonts[std]
	}
	return f
}

// Standard returns the standard 14 font called name, or false if name is
// not one of them.
func Standard(name string) (*Font, bool) {
	std, ok := standardName(name)
	if !ok {
		return nil, false
	}
	return NewFont(std, std, "Type1"), true
}

// IsComposite reports whether the font uses multi-byte character codes.
func (f *Font) IsComposite() bool {
	return f.Subtype == "Type0" || strings.HasPrefix(f.Encoding, "Identity-")
}

// Decode splits a string operand into character codes: two bytes per code
// for composite fonts, one otherwise.
func (f *Font) Decode(data []byte) []uint32 {
	n := 1
	if f.IsComposite() {
		n = 2
		if f.ToUnicode != nil && f.ToUnicode.CodeBytes() > 0 {
			n = f.ToUnicode.CodeBytes()
		}
	}
	return splitCodes(data, n)
}

// GlyphText returns the Unicode text of a character code in NFC form.
// The ToUnicode CMap wins; simple fonts then use their encoding, and
// anything left is taken as the code point itself.
func (f *Font) GlyphText(code uint32) string {
	if f.ToUnicode != nil {
		if s, ok := f.ToUnicode.Lookup(code); ok {
			return NormalizeUnicode(s)
		}
	}
	if !f.IsComposite() && code <= 0xFF {
		return NormalizeUnicode(string(f.encoding().Decode(byte(code))))
	}
	if code > utf8.MaxRune {
		return string(utf8.RuneError)
	}
	return string(rune(code))
}

// DecodeString decodes a string operand to Unicode text.
func (f *Font) DecodeString(data []byte) string {
	var sb strings.Builder
	for _, code := range f.Decode(data) {
		sb.WriteString(f.GlyphText(code))
	}
	return sb.String()
}

// GlyphWidth returns the advance width of a character code in glyph space
// (thousandths of text space). Sources are tried in order: /W for
// composite fonts, /Widths, the embedded font program, the standard 14
// metrics, then /MissingWidth.
func (f *Font) GlyphWidth(code uint32) float64 {
	if f.cidWidths != nil || f.Subtype == "Type0" {
		if w, ok := f.cidWidths[code]; ok {
			return w
		}
		if f.defaultCIDW > 0 {
			return f.defaultCIDW
		}
		return 1000
	}

	if code >= f.firstChar {
		if i := int(code - f.firstChar); i < len(f.widths) {
			return f.widths[i] * f.scale()
		}
	}

	if f.embedded != nil {
		if r, _ := utf8.DecodeRuneInString(f.GlyphText(code)); r != utf8.RuneError {
			if w, ok := f.embedded.advance(r); ok {
				return w
			}
		}
	}

	if w, ok := f.standard.lookup(code); ok {
		return w
	}

	if f.missingWidth > 0 {
		return f.missingWidth
	}
	return defaultWidth
}

func (f *Font) scale() float64 {
	if f.widthScale == 0 {
		return 1
	}
	return f.widthScale
}

func (f *Font) encoding() Encoding {
	base := GetEncoding(f.Encoding)
	if len(f.differences) > 0 {
		return NewCustomEncoding(base, f.differences)
	}
	return base
}
