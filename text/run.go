package text

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

// ErrInvalidMerge is returned when merging runs that are not mergeable.
var ErrInvalidMerge = errors.New("text: runs are not mergeable")

// mergeOverlap is how far a following run may start to the left of a
// run's end and still continue it.
const mergeOverlap = 3.5

// TextRun is a contiguous span of text at one device-space position with
// a uniform font size. Only the estimated character spacing changes after
// construction.
type TextRun struct {
	x, y     float64
	width    float64
	hasWidth bool
	fontSize float64
	text     string

	spacing    float64
	hasSpacing bool
}

// NewTextRun creates a run. The font size is floored so that runs from
// slightly different size computations compare equal.
func NewTextRun(x, y, width, fontSize float64, text string) TextRun {
	return TextRun{
		x:        x,
		y:        y,
		width:    width,
		hasWidth: true,
		fontSize: math.Floor(fontSize),
		text:     text,
	}
}

// newSample creates a run without a width, used only as a spacing sample.
func newSample(x, y, fontSize float64, text string) TextRun {
	return TextRun{x: x, y: y, fontSize: math.Floor(fontSize), text: text}
}

func (r TextRun) X() float64        { return r.x }
func (r TextRun) Y() float64        { return r.y }
func (r TextRun) FontSize() float64 { return r.fontSize }
func (r TextRun) Text() string      { return r.text }

// Width returns the advance width of the run; zero for spacing samples.
func (r TextRun) Width() float64 { return r.width }

// HasWidth reports whether the run carries a width.
func (r TextRun) HasWidth() bool { return r.hasWidth }

// EndX returns the x coordinate where the run ends.
func (r TextRun) EndX() float64 {
	return r.x + r.width
}

// MeanCharacterWidth returns the width per code point. A one-code-point
// run returns its width unchanged; an empty run returns 0.
func (r TextRun) MeanCharacterWidth() float64 {
	n := utf8.RuneCountInString(r.text)
	switch n {
	case 0:
		return 0
	case 1:
		return r.width
	}
	return r.width / float64(n)
}

// EstimatedCharacterSpacing returns the letter spacing estimated for the
// run's text object, if any.
func (r TextRun) EstimatedCharacterSpacing() (float64, bool) {
	return r.spacing, r.hasSpacing
}

// SetEstimatedCharacterSpacing annotates the run with an estimated letter
// spacing, which widens or narrows its merge range.
func (r *TextRun) SetEstimatedCharacterSpacing(spacing float64) {
	r.spacing = spacing
	r.hasSpacing = true
}

// Compare orders runs as read on a printed page: higher rows (larger y)
// first, then left to right. It returns 0 only for runs at the same point.
func (r TextRun) Compare(o TextRun) int {
	switch {
	case r.y == o.y && r.x == o.x:
		return 0
	case r.y < o.y:
		return 1
	case r.y > o.y:
		return -1
	case r.x < o.x:
		return -1
	default:
		return 1
	}
}

// Sort orders runs with Compare, keeping the input order of runs at the
// same point.
func Sort(runs []TextRun) {
	slices.SortStableFunc(runs, TextRun.Compare)
}

// Mergeable reports whether o continues r: both on the same row (y
// truncated to an integer), the same font size, and o starting inside r's
// mergeable range. The check is directional.
func (r TextRun) Mergeable(o TextRun) bool {
	if !r.hasWidth || !o.hasWidth {
		return false
	}
	if int(r.y) != int(o.y) || r.fontSize != o.fontSize {
		return false
	}
	lo, hi := r.mergeableRange()
	return o.x >= lo && o.x <= hi
}

func (r TextRun) mergeableRange() (float64, float64) {
	charWidth := r.fontSize
	if r.hasSpacing {
		charWidth = r.spacing * 2
	}
	return r.EndX() - mergeOverlap, r.EndX() + charWidth
}

// Merge joins o onto the end of r. The texts are joined directly when the
// gap between them is under a fifth of a character, with one space
// otherwise. The result keeps r's estimated spacing.
func (r TextRun) Merge(o TextRun) (TextRun, error) {
	if !r.Mergeable(o) {
		return TextRun{}, fmt.Errorf("%w: %v and %v", ErrInvalidMerge, r, o)
	}

	charWidth := r.fontSize
	if r.hasSpacing {
		charWidth = r.spacing * 5
	}

	text := r.text + " " + o.text
	if o.x-r.EndX() < charWidth*0.2 {
		text = r.text + o.text
	}

	merged := NewTextRun(r.x, r.y, o.EndX()-r.x, r.fontSize, text)
	merged.spacing, merged.hasSpacing = r.spacing, r.hasSpacing
	return merged, nil
}

func (r TextRun) String() string {
	if !r.hasWidth {
		return fmt.Sprintf("%.2f,%.2f fs=%g %q", r.x, r.y, r.fontSize, r.text)
	}
	return fmt.Sprintf("%.2f,%.2f w=%.2f fs=%g %q", r.x, r.y, r.width, r.fontSize, r.text)
}
