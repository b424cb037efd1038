package font

import "strings"

// asciiWidths holds advance widths in glyph space for the printable ASCII
// codes 0x20 through 0x7E.
type asciiWidths [95]float64

func (w *asciiWidths) lookup(code uint32) (float64, bool) {
	if w == nil || code < 0x20 || code > 0x7E {
		return 0, false
	}
	return w[code-0x20], true
}

var helveticaWidths = asciiWidths{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = asciiWidths{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

var timesWidths = asciiWidths{
	250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
	921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
	556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
	333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
	500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
}

var timesBoldWidths = asciiWidths{
	250, 333, 555, 500, 500, 1000, 833, 278, 333, 333, 500, 570, 250, 333, 250, 278,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
	930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
	611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
	333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
	556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
}

var courierWidths asciiWidths

func init() {
	for i := range courierWidths {
		courierWidths[i] = 600
	}
}

// Symbol and ZapfDingbats are standard fonts without ASCII metrics here;
// their glyphs fall back to the missing width.
var standardFonts = map[string]*asciiWidths{
	"Helvetica":             &helveticaWidths,
	"Helvetica-Bold":        &helveticaBoldWidths,
	"Helvetica-Oblique":     &helveticaWidths,
	"Helvetica-BoldOblique": &helveticaBoldWidths,
	"Times-Roman":           &timesWidths,
	"Times-Bold":            &timesBoldWidths,
	"Times-Italic":          &timesWidths,
	"Times-BoldItalic":      &timesBoldWidths,
	"Courier":               &courierWidths,
	"Courier-Bold":          &courierWidths,
	"Courier-Oblique":       &courierWidths,
	"Courier-BoldOblique":   &courierWidths,
	"Symbol":                nil,
	"ZapfDingbats":          nil,
}

// standardAliases maps the names producers commonly use for the standard
// fonts onto their canonical names.
var standardAliases = map[string]string{
	"Arial":                  "Helvetica",
	"Arial,Bold":             "Helvetica-Bold",
	"Arial,Italic":           "Helvetica-Oblique",
	"Arial,BoldItalic":       "Helvetica-BoldOblique",
	"ArialMT":                "Helvetica",
	"Arial-BoldMT":           "Helvetica-Bold",
	"TimesNewRoman":          "Times-Roman",
	"TimesNewRoman,Bold":     "Times-Bold",
	"TimesNewRoman,Italic":   "Times-Italic",
	"TimesNewRomanPSMT":      "Times-Roman",
	"TimesNewRomanPS-BoldMT": "Times-Bold",
	"CourierNew":             "Courier",
	"CourierNew,Bold":        "Courier-Bold",
	"CourierNewPSMT":         "Courier",
}

// standardName returns the canonical standard-14 name for baseFont, with
// any subset tag ("ABCDEF+") removed.
func standardName(baseFont string) (string, bool) {
	if i := strings.IndexByte(baseFont, '+'); i == 6 {
		baseFont = baseFont[i+1:]
	}
	if alias, ok := standardAliases[baseFont]; ok {
		baseFont = alias
	}
	_, ok := standardFonts[baseFont]
	return baseFont, ok
}

// IsStandardFont reports whether baseFont names one of the standard 14 fonts.
func IsStandardFont(baseFont string) bool {
	_, ok := standardName(baseFont)
	return ok
}
