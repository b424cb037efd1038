package text

import (
	"strings"
	"unicode/utf8"
)

const (
	// minSpacingSamples is the fewest shown strings a text object needs
	// before its letter spacing is estimated.
	minSpacingSamples = 3

	// minSingleCharacterShare is the share of one-character samples below
	// which a text object is not treated as letter-spaced.
	minSingleCharacterShare = 0.5
)

// estimateCharacterSpacing returns the most common horizontal distance
// between consecutive shown strings of a text object that mostly shows
// one character at a time. It reports false when the text object does not
// look letter-spaced.
func estimateCharacterSpacing(samples []TextRun) (float64, bool) {
	if len(samples) < minSpacingSamples {
		return 0, false
	}

	singles := 0
	for _, s := range samples {
		if isSingleCharacter(s) {
			singles++
		}
	}
	if float64(singles) < float64(len(samples))*minSingleCharacterShare {
		return 0, false
	}

	// The tracked sample is dropped when a multi-character sample is
	// reached, but that sample then becomes the tracked one, so the
	// following single character still measures its distance from it.
	var (
		deltas []float64
		last   *TextRun
	)
	for i := range samples {
		s := &samples[i]
		single := isSingleCharacter(*s)
		if !single {
			last = nil
		}
		if single && last != nil {
			deltas = append(deltas, s.x-last.x)
		}
		last = s
	}

	return mode(deltas)
}

// sampleTrailingSpace is stripped from a sample before counting its
// characters. Latin-1 spaces such as 0xA0 count as characters.
const sampleTrailingSpace = " \t\n\v\f\r\x00"

func isSingleCharacter(r TextRun) bool {
	return utf8.RuneCountInString(strings.TrimRight(r.text, sampleTrailingSpace)) == 1
}

// mode returns the most frequent value. Ties go to the value that was
// seen first.
func mode(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	counts := make(map[float64]int, len(values))
	order := make([]float64, 0, len(values))
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}
