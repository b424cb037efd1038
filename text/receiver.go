package text

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/encoding/charmap"

	"github.com/gordonbisnor/pdf-reader/font"
	"github.com/gordonbisnor/pdf-reader/graphicsstate"
	"github.com/gordonbisnor/pdf-reader/model"
	"github.com/gordonbisnor/pdf-reader/pages"
)

var (
	// ErrNoFont is returned when text is shown before a font is selected.
	ErrNoFont = errors.New("text: no font selected")

	// ErrFormRecursion is returned when form XObjects nest deeper than the
	// receiver allows.
	ErrFormRecursion = errors.New("text: form XObjects nested too deeply")
)

// DefaultMaxFormDepth is the default limit on nested form XObjects.
const DefaultMaxFormDepth = 16

// GraphicsState is the graphics and text state a receiver drives.
// *graphicsstate.GraphicsState implements it; WithGraphicsState swaps in
// another.
type GraphicsState interface {
	Save()
	Restore() error
	Transform(m model.Matrix)

	BeginText()
	EndText()
	SetFont(name string, f *font.Font, size float64)
	SetCharSpacing(spacing float64)
	SetWordSpacing(spacing float64)
	SetHorizontalScaling(scale float64)
	SetLeading(leading float64)
	SetRenderingMode(mode int)
	SetTextRise(rise float64)

	SetTextMatrix(m model.Matrix)
	TranslateText(tx, ty float64)
	TranslateTextSetLeading(tx, ty float64)
	NextLine()

	TransformPoint(x, y float64) model.Point
	FontSize() float64
	Font() *font.Font
	ProcessGlyphDisplacement(w0, tj float64, wordBoundary bool)
}

// Assembler lays out the glyph runs of a page as text.
type Assembler interface {
	Assemble(runs []TextRun, mediabox model.BBox) string
}

// AssemblerFunc adapts a function to the Assembler interface.
type AssemblerFunc func(runs []TextRun, mediabox model.BBox) string

func (f AssemblerFunc) Assemble(runs []TextRun, mediabox model.BBox) string {
	return f(runs, mediabox)
}

// Option configures a PageTextReceiver
type Option func(*PageTextReceiver)

// WithLogger sets the logger for skipped operators and unresolved
// resources. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *PageTextReceiver) {
		r.logger = logger
	}
}

// WithAssembler sets the layout used by Content.
func WithAssembler(a Assembler) Option {
	return func(r *PageTextReceiver) {
		r.assembler = a
	}
}

// WithGraphicsState sets the constructor for the state every new page
// starts from. ctm is the page's initial transformation.
func WithGraphicsState(newState func(ctm model.Matrix) GraphicsState) Option {
	return func(r *PageTextReceiver) {
		r.newState = newState
	}
}

// WithMaxFormDepth sets the maximum nesting of form XObjects (default: 16)
func WithMaxFormDepth(depth int) Option {
	return func(r *PageTextReceiver) {
		r.maxFormDepth = depth
	}
}

// textFrame buffers one text object: the glyph runs waiting to be
// committed and the whole-string samples for spacing estimation.
type textFrame struct {
	characters []TextRun
	samples    []TextRun
}

// PageTextReceiver turns the text-showing operations of one page into
// glyph runs. It is driven by Dispatch or by calling the operator methods
// directly, and is not safe for concurrent use.
type PageTextReceiver struct {
	state      GraphicsState
	characters []TextRun
	mediabox   model.BBox

	frames    []*textFrame
	resources []*pages.Resources
	formDepth int

	logger       *slog.Logger
	assembler    Assembler
	newState     func(ctm model.Matrix) GraphicsState
	maxFormDepth int
}

// NewPageTextReceiver creates a receiver. Call SetPage or Reset before
// dispatching content.
func NewPageTextReceiver(opts ...Option) *PageTextReceiver {
	r := &PageTextReceiver{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		assembler:    AssemblerFunc(assembleRows),
		newState:     newGraphicsState,
		maxFormDepth: DefaultMaxFormDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset(pages.LetterMediaBox, pages.NewResources(nil))
	return r
}

func newGraphicsState(ctm model.Matrix) GraphicsState {
	return graphicsstate.NewGraphicsStateWithCTM(ctm)
}

// SetPage starts a new page: the state, the committed runs and the open
// text objects are reset and the MediaBox is captured. A rotated page is
// turned upright, so runs and MediaBox are in the orientation it is
// viewed in.
func (r *PageTextReceiver) SetPage(page *pages.Page) error {
	mediabox, err := page.MediaBox()
	if err != nil {
		return fmt.Errorf("set page: %w", err)
	}
	ctm, upright := pages.Orient(mediabox, page.Rotate())
	r.reset(ctm, upright, page.Resources())
	return nil
}

// Reset starts a new unrotated page with the given boundary and resources.
func (r *PageTextReceiver) Reset(mediabox model.BBox, res *pages.Resources) {
	r.reset(model.Identity(), mediabox, res)
}

func (r *PageTextReceiver) reset(ctm model.Matrix, mediabox model.BBox, res *pages.Resources) {
	r.state = r.newState(ctm)
	r.characters = nil
	r.mediabox = mediabox
	r.frames = nil
	r.resources = []*pages.Resources{res}
	r.formDepth = 0
}

// Characters returns a copy of the committed glyph runs in paint order.
func (r *PageTextReceiver) Characters() []TextRun {
	out := make([]TextRun, len(r.characters))
	copy(out, r.characters)
	return out
}

// MediaBox returns the boundary of the current page, upright.
func (r *PageTextReceiver) MediaBox() model.BBox {
	return r.mediabox
}

// Content lays out the committed runs. It is computed on every call.
func (r *PageTextReceiver) Content() string {
	return r.assembler.Assemble(r.Characters(), r.mediabox)
}

// BeginText opens a text object (BT). Text objects opened inside a form
// nest on top of any the caller left open.
func (r *PageTextReceiver) BeginText() {
	r.frames = append(r.frames, &textFrame{})
	r.state.BeginText()
}

// EndText closes the innermost text object (ET): its letter spacing is
// estimated and its glyph runs are committed to the page. An ET without
// a matching BT only reaches the graphics state.
func (r *PageTextReceiver) EndText() {
	if len(r.frames) > 0 {
		frame := r.frames[len(r.frames)-1]
		r.frames = r.frames[:len(r.frames)-1]

		if spacing, ok := estimateCharacterSpacing(frame.samples); ok {
			for i := range frame.characters {
				frame.characters[i].SetEstimatedCharacterSpacing(spacing)
			}
		}
		r.characters = append(r.characters, frame.characters...)
	}
	r.state.EndText()
}

// ShowText shows a string (Tj).
func (r *PageTextReceiver) ShowText(s []byte) error {
	return r.show(s)
}

// ShowTextWithPositioning shows strings and applies position
// adjustments in order (TJ).
func (r *PageTextReceiver) ShowTextWithPositioning(items []ShowItem) error {
	for _, item := range items {
		if !item.IsText() {
			r.state.ProcessGlyphDisplacement(0, item.Displacement(), false)
			continue
		}
		if err := r.show(item.Text()); err != nil {
			return err
		}
	}
	return nil
}

// MoveToNextLineAndShowText moves to the next line and shows a string (').
func (r *PageTextReceiver) MoveToNextLineAndShowText(s []byte) error {
	r.state.NextLine()
	return r.show(s)
}

// SetSpacingNextLineShowText sets word and character spacing, moves to the
// next line and shows a string (").
func (r *PageTextReceiver) SetSpacingNextLineShowText(wordSpacing, charSpacing float64, s []byte) error {
	r.state.SetWordSpacing(wordSpacing)
	r.state.SetCharSpacing(charSpacing)
	return r.MoveToNextLineAndShowText(s)
}

// show positions every glyph of s. Visible printable-ASCII glyphs become
// runs; spaces and other glyphs only advance the pen.
func (r *PageTextReceiver) show(s []byte) error {
	f := r.state.Font()
	if f == nil {
		return ErrNoFont
	}

	frame := r.currentFrame()
	if frame != nil {
		origin := r.state.TransformPoint(0, 0)
		frame.samples = append(frame.samples, newSample(origin.X, origin.Y, r.state.FontSize(), rawText(s)))
	}

	for _, code := range f.Decode(s) {
		origin := r.state.TransformPoint(0, 0)
		fontSize := r.state.FontSize()
		glyph := f.GlyphText(code)

		// horizontal scaling is applied by the graphics state only
		w0 := f.GlyphWidth(code) / 1000
		width := w0 * fontSize

		if glyph != " " && isPrintableASCII(glyph) {
			run := NewTextRun(origin.X, origin.Y, width, fontSize, glyph)
			if frame != nil {
				frame.characters = append(frame.characters, run)
			} else {
				r.characters = append(r.characters, run)
			}
		}

		r.state.ProcessGlyphDisplacement(w0, 0, glyph == " ")
	}
	return nil
}

func (r *PageTextReceiver) currentFrame() *textFrame {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// rawText reads string bytes one code point per byte, as sample text.
func rawText(s []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(s)
	if err != nil {
		return string(s)
	}
	return string(out)
}

func isPrintableASCII(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

// SaveGraphicsState saves the graphics state (q).
func (r *PageTextReceiver) SaveGraphicsState() {
	r.state.Save()
}

// RestoreGraphicsState restores the graphics state (Q).
func (r *PageTextReceiver) RestoreGraphicsState() error {
	return r.state.Restore()
}

// ConcatenateMatrix modifies the CTM (cm).
func (r *PageTextReceiver) ConcatenateMatrix(m model.Matrix) {
	r.state.Transform(m)
}

// SetCharacterSpacing sets Tc.
func (r *PageTextReceiver) SetCharacterSpacing(spacing float64) {
	r.state.SetCharSpacing(spacing)
}

// SetWordSpacing sets Tw.
func (r *PageTextReceiver) SetWordSpacing(spacing float64) {
	r.state.SetWordSpacing(spacing)
}

// SetHorizontalScaling sets Tz.
func (r *PageTextReceiver) SetHorizontalScaling(scale float64) {
	r.state.SetHorizontalScaling(scale)
}

// SetTextLeading sets TL.
func (r *PageTextReceiver) SetTextLeading(leading float64) {
	r.state.SetLeading(leading)
}

// SetTextRenderingMode sets Tr.
func (r *PageTextReceiver) SetTextRenderingMode(mode int) {
	r.state.SetRenderingMode(mode)
}

// SetTextRise sets Ts.
func (r *PageTextReceiver) SetTextRise(rise float64) {
	r.state.SetTextRise(rise)
}

// SetTextMatrix sets Tm and Tlm.
func (r *PageTextReceiver) SetTextMatrix(m model.Matrix) {
	r.state.SetTextMatrix(m)
}

// MoveTextPosition moves to the next line with an offset (Td).
func (r *PageTextReceiver) MoveTextPosition(tx, ty float64) {
	r.state.TranslateText(tx, ty)
}

// MoveTextPositionSetLeading moves and sets the leading to -ty (TD).
func (r *PageTextReceiver) MoveTextPositionSetLeading(tx, ty float64) {
	r.state.TranslateTextSetLeading(tx, ty)
}

// MoveToStartOfNextLine moves down by the leading (T*).
func (r *PageTextReceiver) MoveToStartOfNextLine() {
	r.state.NextLine()
}

// SetTextFont selects the font named in the current resources (Tf). An
// unknown name leaves no font selected, so the next show fails.
func (r *PageTextReceiver) SetTextFont(name string, size float64) {
	f, err := r.currentResources().Font(name)
	if err != nil {
		r.logger.Debug("font not resolved", "font", name, "error", err)
		f = nil
	}
	r.state.SetFont(name, f, size)
}

func (r *PageTextReceiver) currentResources() *pages.Resources {
	return r.resources[len(r.resources)-1]
}

// InvokeXObject draws the form XObject called name (Do). The form's
// content runs through this receiver with the form matrix applied and the
// form's resources in scope. Names that are not forms are ignored.
func (r *PageTextReceiver) InvokeXObject(name string) error {
	form, ok := r.currentResources().XObject(name)
	if !ok {
		r.logger.Debug("skipping XObject", "name", name)
		return nil
	}
	if r.formDepth >= r.maxFormDepth {
		return fmt.Errorf("%w: %s at depth %d", ErrFormRecursion, name, r.formDepth)
	}

	r.formDepth++
	r.resources = append(r.resources, form.Resources)
	r.state.Save()
	r.state.Transform(form.Matrix)

	err := r.DispatchBytes(form.Contents)

	r.resources = r.resources[:len(r.resources)-1]
	r.formDepth--
	if rerr := r.state.Restore(); rerr != nil && err == nil {
		err = rerr
	}
	if err != nil {
		return fmt.Errorf("form %s: %w", name, err)
	}
	return nil
}
