package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// embeddedMetrics reads advance widths from an embedded TrueType or
// OpenType program.
type embeddedMetrics struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	widths map[rune]float64
}

func parseEmbedded(data []byte) (*embeddedMetrics, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse embedded font: %w", err)
	}
	return &embeddedMetrics{font: f, widths: make(map[rune]float64)}, nil
}

// advance returns the advance width of r in 1000-unit glyph space.
func (m *embeddedMetrics) advance(r rune) (float64, bool) {
	if w, ok := m.widths[r]; ok {
		return w, true
	}

	gi, err := m.font.GlyphIndex(&m.buf, r)
	if err != nil || gi == 0 {
		return 0, false
	}
	// at 1000 ppem the scaled advance is already in glyph space units
	adv, err := m.font.GlyphAdvance(&m.buf, gi, fixed.I(1000), xfont.HintingNone)
	if err != nil {
		return 0, false
	}

	w := float64(adv) / 64
	m.widths[r] = w
	return w, true
}
