package layout

import (
	"math"
	"strings"

	"github.com/gordonbisnor/pdf-reader/model"
	"github.com/gordonbisnor/pdf-reader/text"
)

// withinBox keeps runs whose origin lies inside box, edges included
func withinBox(runs []text.TextRun, box model.BBox) []text.TextRun {
	return keep(runs, func(r text.TextRun) bool {
		return box.Contains(model.Point{X: r.X(), Y: r.Y()})
	})
}

// withoutZeroWidth drops runs that take up no horizontal space
func withoutZeroWidth(runs []text.TextRun) []text.TextRun {
	return keep(runs, func(r text.TextRun) bool {
		return r.HasWidth() && r.Width() != 0
	})
}

// withoutBlank drops runs that are empty or whitespace only
func withoutBlank(runs []text.TextRun) []text.TextRun {
	return keep(runs, func(r text.TextRun) bool {
		return strings.TrimSpace(r.Text()) != ""
	})
}

// withoutOverlapping drops runs that repeat an earlier run's text at
// almost the same spot. Producers fake bold type by painting the same
// glyphs several times with a small offset. tolerance is a fraction of
// the font size.
func withoutOverlapping(runs []text.TextRun, tolerance float64) []text.TextRun {
	type key struct {
		text     string
		fontSize float64
	}
	seen := make(map[key][]text.TextRun)

	return keep(runs, func(r text.TextRun) bool {
		k := key{r.Text(), r.FontSize()}
		limit := r.FontSize() * tolerance
		for _, prev := range seen[k] {
			if math.Abs(prev.X()-r.X()) <= limit && math.Abs(prev.Y()-r.Y()) <= limit {
				return false
			}
		}
		seen[k] = append(seen[k], r)
		return true
	})
}

func keep(runs []text.TextRun, fn func(text.TextRun) bool) []text.TextRun {
	out := make([]text.TextRun, 0, len(runs))
	for _, r := range runs {
		if fn(r) {
			out = append(out, r)
		}
	}
	return out
}
