package font

import (
	"fmt"

	"github.com/gordonbisnor/pdf-reader/core"
)

// FromDict builds a font from a font dictionary whose entries are direct
// objects. name is the resource name the page uses for the font.
//
// Unreadable ToUnicode CMaps and embedded font programs are ignored; the
// font then falls back to its encoding and declared widths.
func FromDict(name string, d core.Dict) (*Font, error) {
	subtype, _ := d.GetName("Subtype")
	switch subtype {
	case "Type1", "MMType1", "TrueType", "Type3", "Type0":
	default:
		return nil, fmt.Errorf("%w: subtype %q", ErrUnsupportedFont, subtype)
	}

	baseFont, _ := d.GetName("BaseFont")
	f := NewFont(name, string(baseFont), string(subtype))
	if subtype == "Type1" || subtype == "MMType1" {
		f.Encoding = "StandardEncoding"
	}

	switch enc := d.Get("Encoding").(type) {
	case core.Name:
		f.Encoding = string(enc)
	case core.Dict:
		if base, ok := enc.GetName("BaseEncoding"); ok {
			f.Encoding = string(base)
		}
		if diffs, ok := enc.GetArray("Differences"); ok {
			f.differences = parseDifferences(diffs)
		}
	}

	if s, ok := d.GetStream("ToUnicode"); ok {
		if cm, err := ParseCMap(s.Data); err == nil {
			f.ToUnicode = cm
		}
	}

	if subtype == "Type0" {
		loadDescendant(f, d)
		return f, nil
	}

	if first, ok := d.GetInt("FirstChar"); ok && first >= 0 {
		f.firstChar = uint32(first)
	}
	if widths, ok := d.GetArray("Widths"); ok {
		f.widths, _ = widths.Numbers()
	}
	if subtype == "Type3" {
		// Type 3 widths are in glyph space as defined by /FontMatrix
		if m, ok := d.GetArray("FontMatrix"); ok {
			if vals, ok := m.Numbers(); ok && len(vals) == 6 {
				f.widthScale = vals[0] * 1000
			}
		}
	}

	if desc, ok := d.GetDict("FontDescriptor"); ok {
		loadDescriptor(f, desc)
	}
	return f, nil
}

func loadDescriptor(f *Font, desc core.Dict) {
	if mw, ok := desc.GetNumber("MissingWidth"); ok {
		f.missingWidth = mw
	}
	for _, key := range []string{"FontFile2", "FontFile3"} {
		s, ok := desc.GetStream(key)
		if !ok {
			continue
		}
		if m, err := parseEmbedded(s.Data); err == nil {
			f.embedded = m
			return
		}
	}
}

// loadDescendant reads the widths of a Type0 font's CIDFont.
func loadDescendant(f *Font, d core.Dict) {
	f.cidWidths = make(map[uint32]float64)
	f.defaultCIDW = 1000

	descendants, ok := d.GetArray("DescendantFonts")
	if !ok {
		return
	}
	cid, ok := descendants.Get(0).(core.Dict)
	if !ok {
		return
	}
	if dw, ok := cid.GetNumber("DW"); ok {
		f.defaultCIDW = dw
	}
	if w, ok := cid.GetArray("W"); ok {
		parseCIDWidths(f.cidWidths, w)
	}
}

// maxCID is the last code a 2-byte composite font can show.
const maxCID = 0xFFFF

// parseCIDWidths reads a /W array, whose entries take the forms
// "c [w1 w2 ...]" and "cfirst clast w". Codes outside 0..maxCID are
// dropped, as are ranges that run backwards.
func parseCIDWidths(dst map[uint32]float64, w core.Array) {
	for i := 0; i < len(w); {
		first, ok := core.Number(w.Get(i))
		if !ok {
			return
		}
		switch next := w.Get(i + 1).(type) {
		case core.Array:
			if first >= 0 {
				for j, obj := range next {
					c := first + float64(j)
					if c > maxCID {
						break
					}
					if v, ok := core.Number(obj); ok {
						dst[uint32(c)] = v
					}
				}
			}
			i += 2
		default:
			last, ok1 := core.Number(next)
			v, ok2 := core.Number(w.Get(i + 2))
			if !ok1 || !ok2 {
				return
			}
			i += 3
			if first < 0 || last < first || first > maxCID {
				continue
			}
			last = min(last, maxCID)
			for c := int(first); c <= int(last); c++ {
				dst[uint32(c)] = v
			}
		}
	}
}

// parseDifferences reads a /Differences array: a code followed by the
// glyph names for consecutive codes starting there.
func parseDifferences(arr core.Array) map[byte]rune {
	diffs := make(map[byte]rune)
	code := -1
	for _, obj := range arr {
		switch v := obj.(type) {
		case core.Int:
			code = int(v)
		case core.Name:
			if code < 0 || code > 0xFF {
				continue
			}
			if r, ok := GlyphNameToRune(string(v)); ok {
				diffs[byte(code)] = r
			}
			code++
		}
	}
	return diffs
}
