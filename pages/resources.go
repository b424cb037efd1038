package pages

import (
	"fmt"

	"github.com/gordonbisnor/pdf-reader/core"
	"github.com/gordonbisnor/pdf-reader/font"
	"github.com/gordonbisnor/pdf-reader/model"
)

// Resources wraps a resource dictionary. Fonts are built once per name.
type Resources struct {
	dict  core.Dict
	fonts map[string]*font.Font
}

// NewResources wraps dict, which may be nil.
func NewResources(dict core.Dict) *Resources {
	return &Resources{
		dict:  dict,
		fonts: make(map[string]*font.Font),
	}
}

// Font returns the font registered under name in /Font.
func (r *Resources) Font(name string) (*font.Font, error) {
	if f, ok := r.fonts[name]; ok {
		return f, nil
	}

	fonts, _ := r.dict.GetDict("Font")
	d, ok := fonts.GetDict(name)
	if !ok {
		return nil, fmt.Errorf("%w: font %q", ErrResourceNotFound, name)
	}

	f, err := font.FromDict(name, d)
	if err != nil {
		return nil, fmt.Errorf("pages: font %q: %w", name, err)
	}
	r.fonts[name] = f
	return f, nil
}

// Fonts returns every font in /Font that can be built.
func (r *Resources) Fonts() map[string]*font.Font {
	fonts, _ := r.dict.GetDict("Font")
	out := make(map[string]*font.Font, len(fonts))
	for _, name := range fonts.Keys() {
		if f, err := r.Font(name); err == nil {
			out[name] = f
		}
	}
	return out
}

// FontNames returns the names in /Font, sorted.
func (r *Resources) FontNames() []string {
	fonts, _ := r.dict.GetDict("Font")
	return fonts.Keys()
}

// Form is a form XObject: a self-contained content stream drawn by Do.
type Form struct {
	Matrix    model.Matrix
	BBox      model.BBox
	Resources *Resources
	Contents  []byte
}

// XObject returns the form XObject registered under name in /XObject.
// Image XObjects and missing names report false.
func (r *Resources) XObject(name string) (*Form, bool) {
	xobjects, _ := r.dict.GetDict("XObject")
	s, ok := xobjects.GetStream(name)
	if !ok {
		return nil, false
	}
	if subtype, _ := s.Dict.GetName("Subtype"); subtype != "Form" {
		return nil, false
	}

	form := &Form{
		Matrix:    model.Identity(),
		Resources: r,
		Contents:  s.Data,
	}
	if m, ok := s.Dict.GetArray("Matrix"); ok {
		if v, ok := m.Numbers(); ok && len(v) == 6 {
			form.Matrix = model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]}
		}
	}
	if obj := s.Dict.Get("BBox"); obj != nil {
		form.BBox, _ = rectangle("BBox", obj)
	}
	// forms without their own resources use those of the invoking scope
	if res, ok := s.Dict.GetDict("Resources"); ok {
		form.Resources = NewResources(res)
	}
	return form, true
}
