package font

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps single-byte character codes of a simple font to Unicode.
type Encoding interface {
	Name() string
	Decode(b byte) rune
	DecodeString(data []byte) string
}

// charmapEncoding is a base encoding backed by an x/text code page, with
// per-byte overrides where the PDF encoding diverges from it.
type charmapEncoding struct {
	name      string
	table     *charmap.Charmap
	overrides map[byte]rune
}

func (e *charmapEncoding) Name() string { return e.name }

func (e *charmapEncoding) Decode(b byte) rune {
	if r, ok := e.overrides[b]; ok {
		return r
	}
	if e.table == nil {
		if b < utf8.RuneSelf {
			return rune(b)
		}
		return utf8.RuneError
	}
	return e.table.DecodeByte(b)
}

func (e *charmapEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

func decodeBytes(e Encoding, data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.Decode(b))
	}
	return sb.String()
}

// Standard PDF base encodings.
var (
	WinAnsiEncoding Encoding = &charmapEncoding{
		name:  "WinAnsiEncoding",
		table: charmap.Windows1252,
		overrides: map[byte]rune{
			// undefined code points render as bullets in WinAnsi
			0x81: 0x2022, 0x8D: 0x2022, 0x8F: 0x2022, 0x90: 0x2022, 0x9D: 0x2022,
		},
	}

	MacRomanEncoding Encoding = &charmapEncoding{
		name:  "MacRomanEncoding",
		table: charmap.Macintosh,
	}

	PDFDocEncoding Encoding = &charmapEncoding{
		name:      "PDFDocEncoding",
		table:     charmap.ISO8859_1,
		overrides: pdfDocHigh,
	}

	StandardEncodingTable Encoding = &charmapEncoding{
		name:      "StandardEncoding",
		overrides: standardHigh,
	}
)

var pdfDocHigh = map[byte]rune{
	0x80: 0x2022, 0x81: 0x2020, 0x82: 0x2021, 0x83: 0x2026,
	0x84: 0x2014, 0x85: 0x2013, 0x86: 0x0192, 0x87: 0x2044,
	0x88: 0x2039, 0x89: 0x203A, 0x8A: 0x2212, 0x8B: 0x2030,
	0x8C: 0x201E, 0x8D: 0x201C, 0x8E: 0x201D, 0x8F: 0x2018,
	0x90: 0x2019, 0x91: 0x201A, 0x92: 0x2122, 0x93: 0xFB01,
	0x94: 0xFB02, 0x95: 0x0141, 0x96: 0x0152, 0x97: 0x0160,
	0x98: 0x0178, 0x99: 0x017D, 0x9A: 0x0131, 0x9B: 0x0142,
	0x9C: 0x0153, 0x9D: 0x0161, 0x9E: 0x017E, 0xA0: 0x20AC,
}

var standardHigh = map[byte]rune{
	0x27: 0x2019, 0x60: 0x2018,
	0xA1: 0x00A1, 0xA2: 0x00A2, 0xA3: 0x00A3, 0xA4: 0x2044,
	0xA5: 0x00A5, 0xA6: 0x0192, 0xA7: 0x00A7, 0xA8: 0x00A4,
	0xA9: 0x0027, 0xAA: 0x201C, 0xAB: 0x00AB, 0xAC: 0x2039,
	0xAD: 0x203A, 0xAE: 0xFB01, 0xAF: 0xFB02, 0xB1: 0x2013,
	0xB2: 0x2020, 0xB3: 0x2021, 0xB4: 0x00B7, 0xB6: 0x00B6,
	0xB7: 0x2022, 0xB8: 0x201A, 0xB9: 0x201E, 0xBA: 0x201D,
	0xBB: 0x00BB, 0xBC: 0x2026, 0xBD: 0x2030, 0xBF: 0x00BF,
	0xC1: 0x0060, 0xC2: 0x00B4, 0xC3: 0x02C6, 0xC4: 0x02DC,
	0xC5: 0x00AF, 0xC6: 0x02D8, 0xC7: 0x02D9, 0xC8: 0x00A8,
	0xCA: 0x02DA, 0xCB: 0x00B8, 0xCD: 0x02DD, 0xCE: 0x02DB,
	0xCF: 0x02C7, 0xD0: 0x2014, 0xE1: 0x00C6, 0xE3: 0x00AA,
	0xE8: 0x0141, 0xE9: 0x00D8, 0xEA: 0x0152, 0xEB: 0x00BA,
	0xF1: 0x00E6, 0xF5: 0x0131, 0xF8: 0x0142, 0xF9: 0x00F8,
	0xFA: 0x0153, 0xFB: 0x00DF,
}

// GetEncoding returns the base encoding with the given PDF name.
// Unknown names fall back to WinAnsiEncoding.
func GetEncoding(name string) Encoding {
	switch name {
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "PDFDocEncoding":
		return PDFDocEncoding
	case "StandardEncoding":
		return StandardEncodingTable
	default:
		return WinAnsiEncoding
	}
}

// DecodeWithEncoding decodes data with the named base encoding.
func DecodeWithEncoding(data []byte, encodingName string) string {
	return NormalizeUnicode(GetEncoding(encodingName).DecodeString(data))
}

// NormalizeUnicode returns s in Unicode normalization form C.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// CustomEncoding is a base encoding modified by a /Differences array.
type CustomEncoding struct {
	base        Encoding
	differences map[byte]rune
}

// NewCustomEncoding overlays differences on base.
func NewCustomEncoding(base Encoding, differences map[byte]rune) *CustomEncoding {
	return &CustomEncoding{base: base, differences: differences}
}

// NewCustomEncodingFromGlyphs overlays differences given as glyph names.
// Names with no known Unicode value are ignored.
func NewCustomEncodingFromGlyphs(base Encoding, differences map[byte]string) *CustomEncoding {
	runes := make(map[byte]rune, len(differences))
	for code, name := range differences {
		if r, ok := GlyphNameToRune(name); ok {
			runes[code] = r
		}
	}
	return NewCustomEncoding(base, runes)
}

func (e *CustomEncoding) Name() string { return e.base.Name() + "+custom" }

func (e *CustomEncoding) Decode(b byte) rune {
	if r, ok := e.differences[b]; ok {
		return r
	}
	return e.base.Decode(b)
}

func (e *CustomEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}
