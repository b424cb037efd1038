package pages

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gordonbisnor/pdf-reader/core"
	"github.com/gordonbisnor/pdf-reader/font"
	"github.com/gordonbisnor/pdf-reader/model"
)

var (
	// ErrNoMediaBox is returned when neither the page nor its parent has a
	// MediaBox.
	ErrNoMediaBox = errors.New("pages: no MediaBox")

	// ErrResourceNotFound is returned for resource names missing from the
	// resource dictionary.
	ErrResourceNotFound = errors.New("pages: resource not found")
)

// LetterMediaBox is US Letter, used when a page declares no MediaBox.
var LetterMediaBox = model.NewBBox(0, 0, 612, 792)

// Page represents a single PDF page. All entries must be direct objects.
type Page struct {
	dict   core.Dict
	parent core.Dict // Parent Pages node (for inheritable attributes)

	resources *Resources
}

// NewPage creates a new page from a dictionary
func NewPage(dict core.Dict, parent core.Dict) *Page {
	return &Page{
		dict:   dict,
		parent: parent,
	}
}

// Type returns the page type (should be "Page")
func (p *Page) Type() string {
	name, _ := p.dict.GetName("Type")
	return string(name)
}

// inherited looks key up on the page, then on its parent.
func (p *Page) inherited(key string) core.Object {
	if obj := p.dict.Get(key); obj != nil {
		return obj
	}
	if p.parent != nil {
		return p.parent.Get(key)
	}
	return nil
}

// MediaBox returns the page media box
// This is inheritable, so checks parent if not present
func (p *Page) MediaBox() (model.BBox, error) {
	obj := p.inherited("MediaBox")
	if obj == nil {
		return model.BBox{}, ErrNoMediaBox
	}
	return rectangle("MediaBox", obj)
}

// MediaBoxOrDefault returns the media box, or US Letter when the page has
// none or it is malformed.
func (p *Page) MediaBoxOrDefault() model.BBox {
	box, err := p.MediaBox()
	if err != nil {
		return LetterMediaBox
	}
	return box
}

// CropBox returns the page crop box
// This is inheritable, defaults to MediaBox if not present
func (p *Page) CropBox() (model.BBox, error) {
	obj := p.inherited("CropBox")
	if obj == nil {
		return p.MediaBox()
	}
	return rectangle("CropBox", obj)
}

// Rotate returns the clockwise page rotation (0, 90, 180, or 270).
// Negative and over-turned values are normalised; values that are not a
// multiple of 90 count as 0.
// This is inheritable
func (p *Page) Rotate() int {
	rotate, ok := p.inherited("Rotate").(core.Int)
	if !ok || rotate%90 != 0 {
		return 0
	}
	return (int(rotate)%360 + 360) % 360
}

// Orient returns the initial transformation that turns a page with the
// given MediaBox and rotation upright, and the MediaBox as seen upright.
// The upright box keeps the lower-left corner of mediabox.
func Orient(mediabox model.BBox, rotate int) (model.Matrix, model.BBox) {
	x, y, w, h := mediabox.X, mediabox.Y, mediabox.Width, mediabox.Height
	switch rotate {
	case 90:
		return model.Matrix{0, -1, 1, 0, x - y, x + y + w}, model.NewBBox(x, y, h, w)
	case 180:
		return model.Matrix{-1, 0, 0, -1, 2*x + w, 2*y + h}, mediabox
	case 270:
		return model.Matrix{0, 1, -1, 0, x + y + h, y - x}, model.NewBBox(x, y, h, w)
	}
	return model.Identity(), mediabox
}

// Resources returns the page resources. A page without resources gets an
// empty set, so lookups simply fail.
// This is inheritable
func (p *Page) Resources() *Resources {
	if p.resources == nil {
		dict, _ := p.inherited("Resources").(core.Dict)
		p.resources = NewResources(dict)
	}
	return p.resources
}

// Contents returns the page content stream data. An array of streams is
// joined with newlines so that tokens never run together. Stream filters
// are not applied.
func (p *Page) Contents() ([]byte, error) {
	switch v := p.dict.Get("Contents").(type) {
	case nil:
		return nil, nil // Contents is optional
	case *core.Stream:
		return v.Data, nil
	case core.Array:
		parts := make([][]byte, 0, len(v))
		for i, elem := range v {
			s, ok := elem.(*core.Stream)
			if !ok {
				return nil, fmt.Errorf("pages: contents[%d]: invalid type %T", i, elem)
			}
			parts = append(parts, s.Data)
		}
		return bytes.Join(parts, []byte("\n")), nil
	default:
		return nil, fmt.Errorf("pages: invalid Contents type: %T", v)
	}
}

// Fonts returns every font the page resources declare, keyed by resource
// name. Fonts that cannot be built are skipped.
func (p *Page) Fonts() map[string]*font.Font {
	return p.Resources().Fonts()
}

// rectangle converts a PDF rectangle array to a normalised box.
func rectangle(name string, obj core.Object) (model.BBox, error) {
	arr, ok := obj.(core.Array)
	if !ok {
		return model.BBox{}, fmt.Errorf("pages: invalid %s type: %T", name, obj)
	}
	if len(arr) != 4 {
		return model.BBox{}, fmt.Errorf("pages: invalid %s length: %d (expected 4)", name, len(arr))
	}
	v, ok := arr.Numbers()
	if !ok {
		return model.BBox{}, fmt.Errorf("pages: invalid %s element", name)
	}
	return model.NewBBoxFromPoints(model.Point{X: v[0], Y: v[1]}, model.Point{X: v[2], Y: v[3]}), nil
}
