package pages

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gordonbisnor/pdf-reader/core"
	"github.com/gordonbisnor/pdf-reader/font"
	"github.com/gordonbisnor/pdf-reader/model"
)

func helveticaDict() core.Dict {
	return core.Dict{
		"Type":     core.Name("Font"),
		"Subtype":  core.Name("Type1"),
		"BaseFont": core.Name("Helvetica"),
	}
}

// TestPageType tests the page type accessor
func TestPageType(t *testing.T) {
	page := NewPage(core.Dict{"Type": core.Name("Page")}, nil)
	if page.Type() != "Page" {
		t.Errorf("expected Type=Page, got %s", page.Type())
	}
}

// TestPageMediaBox tests MediaBox retrieval and inheritance
func TestPageMediaBox(t *testing.T) {
	tests := []struct {
		name    string
		dict    core.Dict
		parent  core.Dict
		want    model.BBox
		wantErr bool
	}{
		{
			name: "own box",
			dict: core.Dict{"MediaBox": core.Array{core.Int(0), core.Int(0), core.Int(612), core.Int(792)}},
			want: model.NewBBox(0, 0, 612, 792),
		},
		{
			name:   "inherited from parent",
			dict:   core.Dict{},
			parent: core.Dict{"MediaBox": core.Array{core.Int(0), core.Int(0), core.Real(595.5), core.Int(842)}},
			want:   model.NewBBox(0, 0, 595.5, 842),
		},
		{
			name: "unnormalised corners",
			dict: core.Dict{"MediaBox": core.Array{core.Int(612), core.Int(792), core.Int(0), core.Int(0)}},
			want: model.NewBBox(0, 0, 612, 792),
		},
		{
			name:    "wrong length",
			dict:    core.Dict{"MediaBox": core.Array{core.Int(0), core.Int(0), core.Int(612)}},
			wantErr: true,
		},
		{
			name:    "non-numeric element",
			dict:    core.Dict{"MediaBox": core.Array{core.Int(0), core.Int(0), core.Name("x"), core.Int(1)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPage(tt.dict, tt.parent).MediaBox()
			if (err != nil) != tt.wantErr {
				t.Fatalf("MediaBox() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("MediaBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPageMissingMediaBox(t *testing.T) {
	page := NewPage(core.Dict{}, nil)
	if _, err := page.MediaBox(); !errors.Is(err, ErrNoMediaBox) {
		t.Errorf("MediaBox() error = %v, want ErrNoMediaBox", err)
	}
	if got := page.MediaBoxOrDefault(); got != LetterMediaBox {
		t.Errorf("MediaBoxOrDefault() = %+v", got)
	}
}

// TestPageCropBox tests that CropBox falls back to MediaBox
func TestPageCropBox(t *testing.T) {
	media := core.Array{core.Int(0), core.Int(0), core.Int(612), core.Int(792)}

	page := NewPage(core.Dict{"MediaBox": media}, nil)
	box, err := page.CropBox()
	if err != nil || box != model.NewBBox(0, 0, 612, 792) {
		t.Errorf("CropBox() = %+v, %v", box, err)
	}

	page = NewPage(core.Dict{
		"MediaBox": media,
		"CropBox":  core.Array{core.Int(10), core.Int(10), core.Int(600), core.Int(780)},
	}, nil)
	box, err = page.CropBox()
	if err != nil || box != model.NewBBox(10, 10, 590, 770) {
		t.Errorf("CropBox() = %+v, %v", box, err)
	}
}

// TestPageRotate tests rotation inheritance
func TestPageRotate(t *testing.T) {
	if got := NewPage(core.Dict{"Rotate": core.Int(90)}, nil).Rotate(); got != 90 {
		t.Errorf("Rotate() = %d, want 90", got)
	}
	if got := NewPage(core.Dict{}, core.Dict{"Rotate": core.Int(180)}).Rotate(); got != 180 {
		t.Errorf("Rotate() = %d, want 180", got)
	}
	if got := NewPage(core.Dict{}, nil).Rotate(); got != 0 {
		t.Errorf("Rotate() = %d, want 0", got)
	}

	normalised := []struct {
		rotate core.Int
		want   int
	}{
		{-90, 270},
		{450, 90},
		{45, 0},
		{360, 0},
	}
	for _, tt := range normalised {
		if got := NewPage(core.Dict{"Rotate": tt.rotate}, nil).Rotate(); got != tt.want {
			t.Errorf("Rotate() with /Rotate %d = %d, want %d", tt.rotate, got, tt.want)
		}
	}
}

// TestOrient tests that rotated pages are turned upright inside the
// upright MediaBox
func TestOrient(t *testing.T) {
	media := model.NewBBox(10, 20, 200, 300)
	tests := []struct {
		rotate  int
		box     model.BBox
		corners [4]model.Point // lower-left, lower-right, upper-right, upper-left
	}{
		{0, media, [4]model.Point{{X: 10, Y: 20}, {X: 210, Y: 20}, {X: 210, Y: 320}, {X: 10, Y: 320}}},
		// clockwise: lower-left goes to upper-left
		{90, model.NewBBox(10, 20, 300, 200), [4]model.Point{{X: 10, Y: 220}, {X: 10, Y: 20}, {X: 310, Y: 20}, {X: 310, Y: 220}}},
		{180, media, [4]model.Point{{X: 210, Y: 320}, {X: 10, Y: 320}, {X: 10, Y: 20}, {X: 210, Y: 20}}},
		{270, model.NewBBox(10, 20, 300, 200), [4]model.Point{{X: 310, Y: 20}, {X: 310, Y: 220}, {X: 10, Y: 220}, {X: 10, Y: 20}}},
	}

	for _, tt := range tests {
		m, box := Orient(media, tt.rotate)
		if box != tt.box {
			t.Errorf("Orient(%d) box = %+v, want %+v", tt.rotate, box, tt.box)
		}
		src := [4]model.Point{{X: 10, Y: 20}, {X: 210, Y: 20}, {X: 210, Y: 320}, {X: 10, Y: 320}}
		for i, p := range src {
			if got := m.Transform(p); got != tt.corners[i] {
				t.Errorf("Orient(%d) maps %v to %v, want %v", tt.rotate, p, got, tt.corners[i])
			}
		}
	}
}

// TestPageContents tests content stream concatenation
func TestPageContents(t *testing.T) {
	tests := []struct {
		name    string
		dict    core.Dict
		want    string
		wantErr bool
	}{
		{"none", core.Dict{}, "", false},
		{"single stream", core.Dict{"Contents": &core.Stream{Data: []byte("BT ET")}}, "BT ET", false},
		{
			name: "array of streams",
			dict: core.Dict{"Contents": core.Array{
				&core.Stream{Data: []byte("BT /F1 12 Tf")},
				&core.Stream{Data: []byte("(a) Tj ET")},
			}},
			want: "BT /F1 12 Tf\n(a) Tj ET",
		},
		{"array with non-stream", core.Dict{"Contents": core.Array{core.Int(1)}}, "", true},
		{"wrong type", core.Dict{"Contents": core.Name("x")}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPage(tt.dict, nil).Contents()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Contents() error = %v, wantErr %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("Contents() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestResourcesFont tests font lookup, caching and inheritance
func TestResourcesFont(t *testing.T) {
	parent := core.Dict{
		"Resources": core.Dict{
			"Font": core.Dict{
				"F1":  helveticaDict(),
				"Bad": core.Dict{"Subtype": core.Name("Image")},
			},
		},
	}
	page := NewPage(core.Dict{}, parent)
	res := page.Resources()

	f, err := res.Font("F1")
	if err != nil {
		t.Fatalf("Font(F1) error = %v", err)
	}
	if f.BaseFont != "Helvetica" || f.Name != "F1" {
		t.Errorf("unexpected font %s/%s", f.Name, f.BaseFont)
	}
	again, _ := res.Font("F1")
	if again != f {
		t.Error("expected cached font instance")
	}

	if _, err := res.Font("F9"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("Font(F9) error = %v, want ErrResourceNotFound", err)
	}
	if _, err := res.Font("Bad"); !errors.Is(err, font.ErrUnsupportedFont) {
		t.Errorf("Font(Bad) error = %v, want ErrUnsupportedFont", err)
	}

	if diff := cmp.Diff([]string{"Bad", "F1"}, res.FontNames()); diff != "" {
		t.Errorf("FontNames() mismatch (-want +got):\n%s", diff)
	}
	fonts := page.Fonts()
	if len(fonts) != 1 || fonts["F1"] != f {
		t.Errorf("Fonts() = %v", fonts)
	}
}

func TestResourcesEmpty(t *testing.T) {
	res := NewPage(core.Dict{}, nil).Resources()
	if _, err := res.Font("F1"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("Font() error = %v", err)
	}
	if _, ok := res.XObject("X1"); ok {
		t.Error("XObject() on empty resources should fail")
	}
}

// TestResourcesXObject tests form XObject lookup
func TestResourcesXObject(t *testing.T) {
	own := core.Dict{"Font": core.Dict{"F2": helveticaDict()}}
	res := NewResources(core.Dict{
		"Font": core.Dict{"F1": helveticaDict()},
		"XObject": core.Dict{
			"Fm1": &core.Stream{
				Dict: core.Dict{
					"Subtype": core.Name("Form"),
					"BBox":    core.Array{core.Int(0), core.Int(0), core.Int(100), core.Int(50)},
					"Matrix":  core.Array{core.Int(1), core.Int(0), core.Int(0), core.Int(1), core.Int(10), core.Int(20)},
				},
				Data: []byte("BT /F1 9 Tf (x) Tj ET"),
			},
			"Fm2": &core.Stream{
				Dict: core.Dict{"Subtype": core.Name("Form"), "Resources": own},
				Data: []byte("q Q"),
			},
			"Im1": &core.Stream{Dict: core.Dict{"Subtype": core.Name("Image")}},
		},
	})

	form, ok := res.XObject("Fm1")
	if !ok {
		t.Fatal("XObject(Fm1) not found")
	}
	if form.Matrix != (model.Matrix{1, 0, 0, 1, 10, 20}) {
		t.Errorf("Matrix = %v", form.Matrix)
	}
	if form.BBox != model.NewBBox(0, 0, 100, 50) {
		t.Errorf("BBox = %+v", form.BBox)
	}
	if form.Resources != res {
		t.Error("form without resources should use the invoking scope")
	}
	if string(form.Contents) != "BT /F1 9 Tf (x) Tj ET" {
		t.Errorf("Contents = %q", form.Contents)
	}

	form2, ok := res.XObject("Fm2")
	if !ok {
		t.Fatal("XObject(Fm2) not found")
	}
	if !form2.Matrix.IsIdentity() {
		t.Errorf("default Matrix = %v", form2.Matrix)
	}
	if _, err := form2.Resources.Font("F2"); err != nil {
		t.Errorf("form resources lookup failed: %v", err)
	}

	if _, ok := res.XObject("Im1"); ok {
		t.Error("image XObject should not be returned as a form")
	}
	if _, ok := res.XObject("Missing"); ok {
		t.Error("missing XObject should not be found")
	}
}
