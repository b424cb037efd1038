package font

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gordonbisnor/pdf-reader/core"
)

// TestStandard tests standard 14 font lookup and metrics
func TestStandard(t *testing.T) {
	tests := []struct {
		name     string
		baseFont string
		code     uint32
		want     float64
	}{
		{"Helvetica space", "Helvetica", ' ', 278},
		{"Helvetica A", "Helvetica", 'A', 667},
		{"Helvetica i", "Helvetica", 'i', 222},
		{"Helvetica-Bold via alias", "Arial,Bold", 'b', 611},
		{"Times-Roman at", "Times-Roman", '@', 921},
		{"Times-Bold W", "Times-Bold", 'W', 1000},
		{"Courier is monospaced", "Courier", 'm', 600},
		{"subset tag stripped", "ABCDEF+Helvetica", 'A', 667},
		{"no ASCII metrics", "Symbol", 'a', 500},
		{"outside ASCII", "Helvetica", 0xE9, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Standard(tt.baseFont)
			if !ok {
				t.Fatalf("Standard(%q) not found", tt.baseFont)
			}
			if got := f.GlyphWidth(tt.code); got != tt.want {
				t.Errorf("GlyphWidth(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}

	if _, ok := Standard("Garamond"); ok {
		t.Error("Standard(Garamond) should not be found")
	}
	if !IsStandardFont("TimesNewRomanPSMT") {
		t.Error("TimesNewRomanPSMT should alias a standard font")
	}
}

func TestNewFontDefaults(t *testing.T) {
	f := NewFont("F1", "Garamond", "Type1")
	if f.Encoding != "WinAnsiEncoding" {
		t.Errorf("Encoding = %q, want WinAnsiEncoding", f.Encoding)
	}
	if got := f.GlyphWidth('A'); got != 500 {
		t.Errorf("GlyphWidth() = %v, want default 500", got)
	}
	if got := f.DecodeString([]byte{0x93, 'H', 'i', 0x94}); got != "“Hi”" {
		t.Errorf("DecodeString() = %q", got)
	}
}

// TestFontDecodeStringPriority tests that the ToUnicode CMap wins over the encoding
func TestFontDecodeStringPriority(t *testing.T) {
	cm := NewCMap()
	cm.charMappings[0x41] = "X"

	f := NewFont("F1", "Helvetica", "Type1")
	f.ToUnicode = cm

	if got := f.DecodeString([]byte("AB")); got != "XB" {
		t.Errorf("DecodeString() = %q, want %q (CMap should take priority)", got, "XB")
	}

	f.ToUnicode = nil
	if got := f.DecodeString([]byte("AB")); got != "AB" {
		t.Errorf("DecodeString() = %q, want %q (should use encoding)", got, "AB")
	}
}

func TestFromDictSimple(t *testing.T) {
	d := core.Dict{
		"Type":      core.Name("Font"),
		"Subtype":   core.Name("TrueType"),
		"BaseFont":  core.Name("Garamond"),
		"FirstChar": core.Int(32),
		"Widths":    core.Array{core.Int(250), core.Real(300.5)},
		"FontDescriptor": core.Dict{
			"MissingWidth": core.Int(420),
		},
		"Encoding": core.Dict{
			"BaseEncoding": core.Name("WinAnsiEncoding"),
			"Differences":  core.Array{core.Int(39), core.Name("quoteright"), core.Int(65), core.Name("B"), core.Name("C")},
		},
	}

	f, err := FromDict("F1", d)
	if err != nil {
		t.Fatalf("FromDict() error = %v", err)
	}
	if f.Name != "F1" || f.BaseFont != "Garamond" || f.Subtype != "TrueType" {
		t.Errorf("unexpected font identity %+v", f)
	}

	widths := []struct {
		code uint32
		want float64
	}{
		{32, 250},
		{33, 300.5},
		{34, 420},
		{31, 420},
	}
	for _, tt := range widths {
		if got := f.GlyphWidth(tt.code); got != tt.want {
			t.Errorf("GlyphWidth(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if got := f.DecodeString([]byte("'ABD")); got != "’BCD" {
		t.Errorf("DecodeString() = %q, want %q", got, "’BCD")
	}
	if got := f.GlyphText(0xE9); got != "é" {
		t.Errorf("GlyphText(0xE9) = %q", got)
	}
}

func TestFromDictType1DefaultsToStandardEncoding(t *testing.T) {
	f, err := FromDict("F2", core.Dict{
		"Subtype":  core.Name("Type1"),
		"BaseFont": core.Name("Helvetica"),
	})
	if err != nil {
		t.Fatalf("FromDict() error = %v", err)
	}
	if f.Encoding != "StandardEncoding" {
		t.Errorf("Encoding = %q", f.Encoding)
	}
	if got := f.GlyphText('\''); got != "’" {
		t.Errorf("GlyphText(') = %q, want right quote", got)
	}
	if got := f.GlyphWidth('A'); got != 667 {
		t.Errorf("GlyphWidth(A) = %v, want standard metric 667", got)
	}
}

func TestFromDictType0(t *testing.T) {
	d := core.Dict{
		"Subtype":  core.Name("Type0"),
		"BaseFont": core.Name("ABCDEF+NotoSans"),
		"Encoding": core.Name("Identity-H"),
		"DescendantFonts": core.Array{core.Dict{
			"Subtype": core.Name("CIDFontType2"),
			"DW":      core.Int(800),
			"W": core.Array{
				core.Int(1), core.Array{core.Int(500), core.Int(600)},
				core.Int(10), core.Int(12), core.Int(700),
			},
		}},
		"ToUnicode": &core.Stream{Data: []byte(identityUCS)},
	}

	f, err := FromDict("F3", d)
	if err != nil {
		t.Fatalf("FromDict() error = %v", err)
	}
	if !f.IsComposite() {
		t.Fatal("Type0 font should be composite")
	}

	codes := f.Decode([]byte{0x00, 0x24, 0x00, 0x0B})
	if len(codes) != 2 || codes[0] != 0x24 || codes[1] != 0x0B {
		t.Errorf("Decode() = %v", codes)
	}

	widths := []struct {
		code uint32
		want float64
	}{
		{1, 500},
		{2, 600},
		{10, 700},
		{12, 700},
		{5, 800},
	}
	for _, tt := range widths {
		if got := f.GlyphWidth(tt.code); got != tt.want {
			t.Errorf("GlyphWidth(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if got := f.DecodeString([]byte{0x00, 0x24, 0x00, 0x50}); got != "Afi" {
		t.Errorf("DecodeString() = %q, want %q", got, "Afi")
	}
}

func TestParseCIDWidthsBounds(t *testing.T) {
	tests := []struct {
		name string
		w    core.Array
		want int
		code uint32
	}{
		{"range past code space", core.Array{core.Int(0), core.Int(4294967295), core.Int(500)}, maxCID + 1, maxCID},
		{"large range", core.Array{core.Int(65000), core.Int(1000000000), core.Int(500)}, maxCID - 65000 + 1, 65000},
		{"negative first", core.Array{core.Int(-5), core.Int(3), core.Int(500)}, 0, 0},
		{"negative last", core.Array{core.Int(0), core.Int(-1), core.Int(500)}, 0, 0},
		{"inverted range", core.Array{core.Int(9), core.Int(3), core.Int(500), core.Int(1), core.Int(1), core.Int(500)}, 1, 1},
		{"list past code space", core.Array{core.Int(maxCID), core.Array{core.Int(500), core.Int(600)}}, 1, maxCID},
		{"negative list start", core.Array{core.Int(-1), core.Array{core.Int(500)}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make(map[uint32]float64)
			parseCIDWidths(dst, tt.w)
			if len(dst) != tt.want {
				t.Errorf("parseCIDWidths() stored %d widths, want %d", len(dst), tt.want)
			}
			if tt.want > 0 && dst[tt.code] != 500 {
				t.Errorf("width of %d = %v, want 500", tt.code, dst[tt.code])
			}
		})
	}
}

func TestFromDictType3(t *testing.T) {
	f, err := FromDict("T3", core.Dict{
		"Subtype":    core.Name("Type3"),
		"FirstChar":  core.Int(65),
		"Widths":     core.Array{core.Int(50)},
		"FontMatrix": core.Array{core.Real(0.01), core.Int(0), core.Int(0), core.Real(0.01), core.Int(0), core.Int(0)},
	})
	if err != nil {
		t.Fatalf("FromDict() error = %v", err)
	}
	if got := f.GlyphWidth('A'); math.Abs(got-500) > 1e-9 {
		t.Errorf("GlyphWidth(A) = %v, want 500", got)
	}
}

func TestFromDictUnsupported(t *testing.T) {
	_, err := FromDict("X", core.Dict{"Subtype": core.Name("CIDFontType0")})
	if !errors.Is(err, ErrUnsupportedFont) {
		t.Errorf("FromDict() error = %v, want ErrUnsupportedFont", err)
	}
}

func TestEmbeddedWidths(t *testing.T) {
	f, err := FromDict("F4", core.Dict{
		"Subtype":  core.Name("TrueType"),
		"BaseFont": core.Name("GoRegular"),
		"FontDescriptor": core.Dict{
			"FontFile2": &core.Stream{Data: goregular.TTF},
		},
	})
	if err != nil {
		t.Fatalf("FromDict() error = %v", err)
	}
	if f.embedded == nil {
		t.Fatal("embedded font program not loaded")
	}

	m, i := f.GlyphWidth('M'), f.GlyphWidth('i')
	if m <= i {
		t.Errorf("GlyphWidth(M) = %v should exceed GlyphWidth(i) = %v", m, i)
	}
	if m <= 0 || m >= 1000 || m == defaultWidth {
		t.Errorf("GlyphWidth(M) = %v, want a width from the font program", m)
	}
}

func TestEmbeddedFontGarbageIgnored(t *testing.T) {
	f, err := FromDict("F5", core.Dict{
		"Subtype":  core.Name("TrueType"),
		"BaseFont": core.Name("Broken"),
		"FontDescriptor": core.Dict{
			"FontFile2": &core.Stream{Data: []byte("not a font")},
		},
	})
	if err != nil {
		t.Fatalf("FromDict() error = %v", err)
	}
	if f.embedded != nil {
		t.Error("garbage font program should be ignored")
	}
	if got := f.GlyphWidth('a'); got != defaultWidth {
		t.Errorf("GlyphWidth() = %v, want %v", got, defaultWidth)
	}
}
