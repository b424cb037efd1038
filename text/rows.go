package text

import (
	"strings"

	"github.com/gordonbisnor/pdf-reader/model"
)

// assembleRows is the default layout: runs are merged along each row and
// rows are emitted top to bottom, one per line. It keeps no columns; the
// layout package provides the grid layout.
func assembleRows(runs []TextRun, _ model.BBox) string {
	merged := MergeRuns(runs)

	var sb strings.Builder
	for i, run := range merged {
		if i > 0 {
			if int(merged[i-1].y) != int(run.y) {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(run.text)
	}
	return sb.String()
}

// MergeRuns sorts runs in reading order and folds each run into its
// predecessor on the same row while the two are mergeable. The input is
// not modified.
func MergeRuns(runs []TextRun) []TextRun {
	sorted := make([]TextRun, len(runs))
	copy(sorted, runs)
	Sort(sorted)

	var out []TextRun
	for _, run := range sorted {
		if n := len(out); n > 0 && out[n-1].Mergeable(run) {
			merged, err := out[n-1].Merge(run)
			if err == nil {
				out[n-1] = merged
				continue
			}
		}
		out = append(out, run)
	}
	return out
}
