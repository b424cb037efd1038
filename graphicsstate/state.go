package graphicsstate

import (
	"errors"
	"math"

	"github.com/gordonbisnor/pdf-reader/font"
	"github.com/gordonbisnor/pdf-reader/model"
)

// ErrStackUnderflow is returned by Restore when no state was saved.
var ErrStackUnderflow = errors.New("graphicsstate: stack underflow")

// GraphicsState represents the PDF graphics state
type GraphicsState struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// Text state
	Text TextState

	// Graphics state stack (for q/Q operators)
	stack []savedState
}

type savedState struct {
	ctm  model.Matrix
	text TextState
}

// TextState represents text-specific state
type TextState struct {
	// Font and size
	FontName string
	Font     *font.Font
	FontSize float64

	// Character and word spacing
	CharSpacing float64
	WordSpacing float64

	// Horizontal scaling (percentage)
	HorizontalScaling float64

	// Leading (line spacing)
	Leading float64

	// Text rendering mode
	RenderingMode int

	// Text rise
	Rise float64

	// Text matrices
	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix
}

// NewGraphicsState creates a new graphics state with default values
func NewGraphicsState() *GraphicsState {
	return NewGraphicsStateWithCTM(model.Identity())
}

// NewGraphicsStateWithCTM creates a graphics state whose initial CTM maps
// user space onto a device space other than the default.
func NewGraphicsStateWithCTM(ctm model.Matrix) *GraphicsState {
	return &GraphicsState{
		CTM: ctm,
		Text: TextState{
			HorizontalScaling: 100.0,
			TextMatrix:        model.Identity(),
			TextLineMatrix:    model.Identity(),
		},
	}
}

// Save pushes the current graphics state onto the stack (q operator)
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, savedState{ctm: gs.CTM, text: gs.Text})
}

// Restore pops a graphics state from the stack (Q operator)
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return ErrStackUnderflow
	}

	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]

	gs.CTM = saved.ctm
	gs.Text = saved.text
	return nil
}

// Depth returns the number of saved states.
func (gs *GraphicsState) Depth() int {
	return len(gs.stack)
}

// Transform concatenates m with the CTM (cm operator)
func (gs *GraphicsState) Transform(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetFont sets the current font (Tf operator). f may be nil when the
// name does not resolve to a font.
func (gs *GraphicsState) SetFont(name string, f *font.Font, size float64) {
	gs.Text.FontName = name
	gs.Text.Font = f
	gs.Text.FontSize = size
}

// SetCharSpacing sets character spacing (Tc operator)
func (gs *GraphicsState) SetCharSpacing(spacing float64) {
	gs.Text.CharSpacing = spacing
}

// SetWordSpacing sets word spacing (Tw operator)
func (gs *GraphicsState) SetWordSpacing(spacing float64) {
	gs.Text.WordSpacing = spacing
}

// SetHorizontalScaling sets horizontal scaling (Tz operator)
func (gs *GraphicsState) SetHorizontalScaling(scale float64) {
	gs.Text.HorizontalScaling = scale
}

// SetLeading sets text leading (TL operator)
func (gs *GraphicsState) SetLeading(leading float64) {
	gs.Text.Leading = leading
}

// SetRenderingMode sets text rendering mode (Tr operator)
func (gs *GraphicsState) SetRenderingMode(mode int) {
	gs.Text.RenderingMode = mode
}

// SetTextRise sets text rise (Ts operator)
func (gs *GraphicsState) SetTextRise(rise float64) {
	gs.Text.Rise = rise
}

// BeginText initializes text state (BT operator)
func (gs *GraphicsState) BeginText() {
	gs.Text.TextMatrix = model.Identity()
	gs.Text.TextLineMatrix = model.Identity()
}

// EndText ends a text object (ET operator). The text matrices are left as
// they are; they are only meaningful inside a text object.
func (gs *GraphicsState) EndText() {}

// SetTextMatrix sets the text matrix (Tm operator)
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.Text.TextMatrix = m
	gs.Text.TextLineMatrix = m
}

// TranslateText moves to the start of the next line offset by (tx, ty)
// (Td operator): Tlm = T(tx, ty) × Tlm.
func (gs *GraphicsState) TranslateText(tx, ty float64) {
	gs.Text.TextLineMatrix = model.Translate(tx, ty).Multiply(gs.Text.TextLineMatrix)
	gs.Text.TextMatrix = gs.Text.TextLineMatrix
}

// TranslateTextSetLeading translates text and sets leading (TD operator)
func (gs *GraphicsState) TranslateTextSetLeading(tx, ty float64) {
	gs.SetLeading(-ty)
	gs.TranslateText(tx, ty)
}

// NextLine moves to next line (T* operator)
func (gs *GraphicsState) NextLine() {
	gs.TranslateText(0, -gs.Text.Leading)
}

// TextRenderingMatrix maps text space to device space:
// [fs·th 0 0 fs 0 rise] × Tm × CTM.
func (gs *GraphicsState) TextRenderingMatrix() model.Matrix {
	t := gs.Text
	params := model.Matrix{t.FontSize * gs.horizontalScale(), 0, 0, t.FontSize, 0, t.Rise}
	return params.Multiply(t.TextMatrix).Multiply(gs.CTM)
}

// TransformPoint maps a point in text space to device space.
func (gs *GraphicsState) TransformPoint(x, y float64) model.Point {
	return gs.TextRenderingMatrix().Transform(model.Point{X: x, Y: y})
}

// FontSize returns the font size in device space: the vertical distance
// between the images of (0,0) and (1,1) under the text rendering matrix.
func (gs *GraphicsState) FontSize() float64 {
	trm := gs.TextRenderingMatrix()
	zero := trm.Transform(model.Point{X: 0, Y: 0})
	one := trm.Transform(model.Point{X: 1, Y: 1})
	return math.Abs(zero.Y - one.Y)
}

// Font returns the current font, or nil when none is set.
func (gs *GraphicsState) Font() *font.Font {
	return gs.Text.Font
}

// ProcessGlyphDisplacement advances the text matrix after a glyph or a
// TJ position adjustment. w0 is the glyph width in text space units
// (glyph space / 1000) and tj the TJ adjustment in thousandths of a unit.
// Word spacing applies only when wordBoundary is set.
func (gs *GraphicsState) ProcessGlyphDisplacement(w0, tj float64, wordBoundary bool) {
	t := gs.Text
	th := gs.horizontalScale()

	var tx float64
	if tj != 0 {
		tx = (w0 - tj/1000) * t.FontSize * th
	} else {
		tw := 0.0
		if wordBoundary {
			tw = t.WordSpacing
		}
		tx = (w0*t.FontSize + t.CharSpacing + tw) * th
	}

	gs.Text.TextMatrix = model.Translate(tx, 0).Multiply(gs.Text.TextMatrix)
}

func (gs *GraphicsState) horizontalScale() float64 {
	return gs.Text.HorizontalScaling / 100.0
}
