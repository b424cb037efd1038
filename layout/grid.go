package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/gordonbisnor/pdf-reader/model"
	"github.com/gordonbisnor/pdf-reader/text"
)

// GridConfig holds configuration for grid layout
type GridConfig struct {
	// DefaultFontSize is the row height used when no run has a font size
	// (default: 12)
	DefaultFontSize float64

	// ColumnScale widens the grid beyond one column per median character
	// so that proportional text rarely overwrites itself (default: 1.05)
	ColumnScale float64

	// OverlapTolerance is how close, as a fraction of the font size, a
	// repeated run must be to an earlier one to count as a duplicate
	// (default: 0.15)
	OverlapTolerance float64

	// KeepZeroWidth keeps runs that take up no horizontal space
	KeepZeroWidth bool

	// KeepOverlapping keeps repeated runs painted over each other
	KeepOverlapping bool

	// NoMerge lays out glyph runs as they are, without joining them into
	// words first
	NoMerge bool
}

// DefaultGridConfig returns sensible defaults for grid layout
func DefaultGridConfig() GridConfig {
	return GridConfig{
		DefaultFontSize:  12,
		ColumnScale:      1.05,
		OverlapTolerance: 0.15,
	}
}

// GridAssembler places runs on a fixed character grid sized from the
// page and the text on it, so that the printed page keeps its rough
// shape. It implements text.Assembler.
type GridAssembler struct {
	config GridConfig
}

// NewGridAssembler creates a grid assembler with default configuration
func NewGridAssembler() *GridAssembler {
	return &GridAssembler{
		config: DefaultGridConfig(),
	}
}

// NewGridAssemblerWithConfig creates a grid assembler with custom configuration
func NewGridAssemblerWithConfig(config GridConfig) *GridAssembler {
	return &GridAssembler{
		config: config,
	}
}

// Assemble lays out runs with the default configuration.
func Assemble(runs []text.TextRun, mediabox model.BBox) string {
	return NewGridAssembler().Assemble(runs, mediabox)
}

// Runs returns the runs that would be laid out: those inside the
// mediabox that carry visible text, with duplicates removed and glyphs
// merged into words, in reading order.
func (a *GridAssembler) Runs(runs []text.TextRun, mediabox model.BBox) []text.TextRun {
	runs = withinBox(runs, mediabox)
	if !a.config.KeepZeroWidth {
		runs = withoutZeroWidth(runs)
	}
	if !a.config.KeepOverlapping {
		runs = withoutOverlapping(runs, a.config.OverlapTolerance)
	}
	runs = withoutBlank(runs)
	if a.config.NoMerge {
		text.Sort(runs)
		return runs
	}
	return text.MergeRuns(runs)
}

// Assemble renders runs as lines of text. Blank rows above and below the
// text are dropped, as is trailing space on each line.
func (a *GridAssembler) Assemble(runs []text.TextRun, mediabox model.BBox) string {
	runs = a.Runs(runs, mediabox)
	if len(runs) == 0 {
		return ""
	}

	g := a.newGrid(runs, mediabox)
	if g.rows == 0 || g.cols == 0 {
		return ""
	}

	page := make([][]rune, g.rows)
	for _, r := range runs {
		col, row, ok := g.cell(r)
		if !ok {
			continue
		}
		page[row] = insertAt(page[row], []rune(r.Text()), col)
	}

	lines := make([]string, len(page))
	for i, row := range page {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(trimBlankLines(lines), "\n")
}

// grid maps device space onto rows and columns of characters.
type grid struct {
	rows, cols          int
	rowHeight, colWidth float64
	xOffset, yOffset    float64
}

func (a *GridAssembler) newGrid(runs []text.TextRun, mediabox model.BBox) grid {
	fontSize := mean(runs, text.TextRun.FontSize)
	if fontSize == 0 {
		fontSize = a.config.DefaultFontSize
	}
	charWidth := median(runs, text.TextRun.MeanCharacterWidth)

	g := grid{}
	if fontSize > 0 {
		g.rows = int(math.Floor(mediabox.Height / fontSize))
	}
	if charWidth > 0 {
		g.cols = int(math.Floor(mediabox.Width / charWidth * a.config.ColumnScale))
	}
	if g.rows == 0 || g.cols == 0 {
		return g
	}
	g.rowHeight = mediabox.Height / float64(g.rows)
	g.colWidth = mediabox.Width / float64(g.cols)

	// text starts in the first column, wherever the left margin is
	g.xOffset = runs[0].X()
	g.yOffset = mediabox.Y
	for _, r := range runs {
		g.xOffset = math.Min(g.xOffset, r.X())
		g.yOffset = math.Min(g.yOffset, r.Y())
	}
	return g
}

// cell returns the grid position of r's first character. Row 0 is the
// top of the page.
func (g grid) cell(r text.TextRun) (col, row int, ok bool) {
	col = int(math.Round((r.X() - g.xOffset) / g.colWidth))
	row = g.rows - int(math.Round((r.Y()-g.yOffset)/g.rowHeight))
	if col < 0 || col > g.cols || row < 0 || row > g.rows {
		return 0, 0, false
	}
	// the top edge rounds to row 0; it shares the first line
	return col, max(row-1, 0), true
}

// insertAt writes s over row starting at col, padding with spaces.
func insertAt(row, s []rune, col int) []rune {
	if need := col + len(s); need > len(row) {
		row = append(row, []rune(strings.Repeat(" ", need-len(row)))...)
	}
	copy(row[col:], s)
	return row
}

func trimBlankLines(lines []string) []string {
	first := slices.IndexFunc(lines, isTextLine)
	if first < 0 {
		return nil
	}
	last := len(lines) - 1
	for !isTextLine(lines[last]) {
		last--
	}
	return lines[first : last+1]
}

func isTextLine(s string) bool {
	return strings.TrimSpace(s) != ""
}

func mean(runs []text.TextRun, fn func(text.TextRun) float64) float64 {
	if len(runs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range runs {
		sum += fn(r)
	}
	return sum / float64(len(runs))
}

// median of fn over runs; the mean of the middle pair for even counts
func median(runs []text.TextRun, fn func(text.TextRun) float64) float64 {
	if len(runs) == 0 {
		return 0
	}
	values := make([]float64, len(runs))
	for i, r := range runs {
		values[i] = fn(r)
	}
	slices.Sort(values)

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
