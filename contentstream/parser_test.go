package contentstream

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gordonbisnor/pdf-reader/core"
)

func mustParse(t *testing.T, input string) []Operation {
	t.Helper()
	ops, err := NewParser([]byte(input)).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return ops
}

// TestParseSimpleOperator tests parsing a simple operator with no operands
func TestParseSimpleOperator(t *testing.T) {
	ops := mustParse(t, "q")

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].Operator != "q" {
		t.Errorf("expected operator 'q', got %q", ops[0].Operator)
	}
	if len(ops[0].Operands) != 0 {
		t.Errorf("expected 0 operands, got %d", len(ops[0].Operands))
	}
}

// TestParseTextBlock tests a complete text object
func TestParseTextBlock(t *testing.T) {
	ops := mustParse(t, `BT
/F1 12 Tf
1 0 0 1 72.5 700 Tm
(Hello) Tj
ET`)

	want := []Operation{
		{Operator: "BT"},
		{Operator: "Tf", Operands: []core.Object{core.Name("F1"), core.Int(12)}},
		{Operator: "Tm", Operands: []core.Object{core.Int(1), core.Int(0), core.Int(0), core.Int(1), core.Real(72.5), core.Int(700)}},
		{Operator: "Tj", Operands: []core.Object{core.String("Hello")}},
		{Operator: "ET"},
	}

	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

// TestParseQuoteOperators checks that ' and " are read as operators
func TestParseQuoteOperators(t *testing.T) {
	ops := mustParse(t, `(one)' 1 2 (two)" T*`)

	want := []Operation{
		{Operator: "'", Operands: []core.Object{core.String("one")}},
		{Operator: "\"", Operands: []core.Object{core.Int(1), core.Int(2), core.String("two")}},
		{Operator: "T*"},
	}

	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

// TestParseTJArray tests a show-with-positioning array
func TestParseTJArray(t *testing.T) {
	ops := mustParse(t, "[(A) -120 (W) 30.5 <0041>] TJ")

	want := []Operation{
		{Operator: "TJ", Operands: []core.Object{core.Array{
			core.String("A"), core.Int(-120), core.String("W"), core.Real(30.5), core.String("\x00A"),
		}}},
	}

	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "(abc) Tj", "abc"},
		{"nested parens", "(a(b)c) Tj", "a(b)c"},
		{"escaped parens", `(a\(b\)c) Tj`, "a(b)c"},
		{"escapes", `(\n\t\\) Tj`, "\n\t\\"},
		{"octal", `(\101\102\7) Tj`, "AB\x07"},
		{"line continuation", "(ab\\\ncd) Tj", "abcd"},
		{"hex", "<48656C6C6F> Tj", "Hello"},
		{"hex whitespace", "<48 65 6c 6c 6f> Tj", "Hello"},
		{"hex odd", "<414> Tj", "A@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := mustParse(t, tt.input)
			if len(ops) != 1 || len(ops[0].Operands) != 1 {
				t.Fatalf("unexpected operations %v", ops)
			}
			got, ok := ops[0].Operands[0].(core.String)
			if !ok {
				t.Fatalf("expected String operand, got %T", ops[0].Operands[0])
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	ops := mustParse(t, "-12 +3 .5 -.25 4. 0 Td")

	want := []core.Object{core.Int(-12), core.Int(3), core.Real(0.5), core.Real(-0.25), core.Real(4), core.Int(0)}
	if diff := cmp.Diff(want, ops[0].Operands); diff != "" {
		t.Errorf("operands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNameEscapes(t *testing.T) {
	ops := mustParse(t, "/A#20B 1 Tf")
	if got := ops[0].Operands[0]; got != core.Name("A B") {
		t.Errorf("got %v, want /A B", got)
	}
}

func TestParseKeywordsAndDict(t *testing.T) {
	ops := mustParse(t, "/Span <</ActualText (x) /Flag true /None null>> BDC EMC")

	want := []Operation{
		{Operator: "BDC", Operands: []core.Object{
			core.Name("Span"),
			core.Dict{"ActualText": core.String("x"), "Flag": core.Bool(true), "None": core.Null{}},
		}},
		{Operator: "EMC"},
	}

	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

// TestParseWithComments checks that comments do not produce operations
func TestParseWithComments(t *testing.T) {
	ops := mustParse(t, "% header\nBT % begin\n(%not a comment) Tj\nET")

	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
	if s := ops[1].Operands[0].(core.String); string(s) != "%not a comment" {
		t.Errorf("string lost its percent sign: %q", s)
	}
}

// TestParseInlineImage checks that binary image data is not tokenized
func TestParseInlineImage(t *testing.T) {
	ops := mustParse(t, "q BI /W 2 /H 1 /CS /G /IM true ID \x00)(] EI Q")

	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d: %v", len(ops), ops)
	}
	bi := ops[1]
	if bi.Operator != "BI" || len(bi.Operands) != 2 {
		t.Fatalf("unexpected inline image operation %v", bi)
	}
	dict := bi.Operands[0].(core.Dict)
	if w, _ := dict.GetInt("W"); w != 2 {
		t.Errorf("expected /W 2, got %v", dict["W"])
	}
	if dict["IM"] != core.Bool(true) {
		t.Errorf("expected /IM true, got %v", dict["IM"])
	}
	if data := bi.Operands[1].(core.String); string(data) != "\x00)(]" {
		t.Errorf("unexpected image data %q", data)
	}
	if ops[2].Operator != "Q" {
		t.Errorf("expected Q after inline image, got %q", ops[2].Operator)
	}
}

func TestParseOperandsDoNotLeakBetweenParsers(t *testing.T) {
	// a trailing operand with no operator must not show up in another parse
	if _, err := NewParser([]byte("1 2 3")).Parse(); err != nil {
		t.Fatal(err)
	}
	ops := mustParse(t, "Q")
	if len(ops[0].Operands) != 0 {
		t.Errorf("operands leaked from previous parse: %v", ops[0].Operands)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"(unclosed Tj",
		"[1 2 TJ",
		"<4G> Tj",
		"<< /A 1 BDC",
		"BI /W 1 ID abc",
		"} Tj",
	}

	for _, input := range tests {
		if _, err := NewParser([]byte(input)).Parse(); err == nil {
			t.Errorf("Parse(%q) succeeded, expected error", input)
		}
	}
}
