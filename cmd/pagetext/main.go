package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tdewolff/argp"

	"github.com/gordonbisnor/pdf-reader/contentstream"
	"github.com/gordonbisnor/pdf-reader/core"
	"github.com/gordonbisnor/pdf-reader/font"
	"github.com/gordonbisnor/pdf-reader/layout"
	"github.com/gordonbisnor/pdf-reader/pages"
	"github.com/gordonbisnor/pdf-reader/text"
)

type PageText struct {
	MediaBox string `short:"m" default:"0,0,612,792" desc:"Page boundary as llx,lly,urx,ury"`
	Font     string `short:"f" default:"Helvetica" desc:"Standard font used for every font the content selects"`
	Embed    string `short:"e" desc:"TrueType or OpenType file whose advance widths are used instead"`
	Format   string `default:"text" desc:"Output format: text, html, rows or runs"`
	Overlap  bool   `desc:"Keep repeated runs painted over each other"`
	MaxForms int    `default:"16" desc:"Maximum form XObject nesting"`
	Debug    bool   `desc:"Log skipped operators and unresolved fonts"`
	Input    string `index:"0" desc:"Content stream file, - for stdin"`
}

func main() {
	root := argp.NewCmd(&PageText{}, "Lay out the text of a raw PDF page content stream")
	root.Parse()
	root.PrintHelp()
}

func (cmd *PageText) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	level := slog.LevelInfo
	if cmd.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := readInput(cmd.Input)
	if err != nil {
		return err
	}
	return cmd.render(os.Stdout, data, logger)
}

// render lays out one content stream and writes it in the chosen format.
func (cmd *PageText) render(w io.Writer, data []byte, logger *slog.Logger) error {
	fontDict, err := cmd.fontDict()
	if err != nil {
		return err
	}
	mediabox, err := parseMediaBox(cmd.MediaBox)
	if err != nil {
		return err
	}

	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return fmt.Errorf("parse %s: %w", cmd.Input, err)
	}
	page := buildPage(mediabox, fontNames(ops), fontDict, data)

	config := layout.DefaultGridConfig()
	config.KeepOverlapping = cmd.Overlap
	grid := layout.NewGridAssemblerWithConfig(config)

	opts := []text.Option{text.WithLogger(logger), text.WithMaxFormDepth(cmd.MaxForms)}
	if cmd.Format != "rows" {
		opts = append(opts, text.WithAssembler(grid))
	}
	r := text.NewPageTextReceiver(opts...)
	if err := r.SetPage(page); err != nil {
		return err
	}

	contents, err := page.Contents()
	if err != nil {
		return err
	}
	if err := r.DispatchBytes(contents); err != nil {
		return err
	}
	logger.Debug("page processed", "glyphs", len(r.Characters()), "fonts", len(page.Fonts()))

	switch cmd.Format {
	case "text", "rows":
		fmt.Fprintln(w, r.Content())
	case "html":
		out, err := layout.RenderHTML(cmd.Input, r.Content())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	case "runs":
		for _, run := range grid.Runs(r.Characters(), r.MediaBox()) {
			fmt.Fprintln(w, run)
		}
	default:
		return fmt.Errorf("unknown format %q", cmd.Format)
	}
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// fontDict returns the font dictionary every Tf name resolves to.
func (cmd *PageText) fontDict() (core.Dict, error) {
	if cmd.Embed != "" {
		program, err := os.ReadFile(cmd.Embed)
		if err != nil {
			return nil, err
		}
		return embeddedFontDict(program), nil
	}
	if _, ok := font.Standard(cmd.Font); !ok {
		return nil, fmt.Errorf("%q is not a standard font", cmd.Font)
	}
	return core.Dict{
		"Type":     core.Name("Font"),
		"Subtype":  core.Name("Type1"),
		"BaseFont": core.Name(cmd.Font),
		"Encoding": core.Name("WinAnsiEncoding"),
	}, nil
}

func embeddedFontDict(program []byte) core.Dict {
	return core.Dict{
		"Type":     core.Name("Font"),
		"Subtype":  core.Name("TrueType"),
		"BaseFont": core.Name("Embedded"),
		"Encoding": core.Name("WinAnsiEncoding"),
		"FontDescriptor": core.Dict{
			"Type":      core.Name("FontDescriptor"),
			"FontName":  core.Name("Embedded"),
			"FontFile2": &core.Stream{Dict: core.Dict{}, Data: program},
		},
	}
}

// parseMediaBox reads "llx,lly,urx,ury".
func parseMediaBox(s string) (core.Array, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return nil, fmt.Errorf("mediabox %q: want four numbers", s)
	}
	box := make(core.Array, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("mediabox %q: %w", s, err)
		}
		box[i] = core.Real(v)
	}
	return box, nil
}

// fontNames returns the font resource names selected by Tf, in order of
// first use.
func fontNames(ops []contentstream.Operation) []string {
	var names []string
	seen := make(map[string]bool)
	for _, op := range ops {
		if op.Operator != "Tf" || len(op.Operands) != 2 {
			continue
		}
		name, ok := op.Operands[0].(core.Name)
		if !ok || seen[string(name)] {
			continue
		}
		seen[string(name)] = true
		names = append(names, string(name))
	}
	return names
}

// buildPage wraps content in a page whose resources map every font name
// to fontDict.
func buildPage(mediabox core.Array, names []string, fontDict core.Dict, content []byte) *pages.Page {
	fonts := make(core.Dict, len(names))
	for _, name := range names {
		fonts[name] = fontDict
	}
	return pages.NewPage(core.Dict{
		"Type":      core.Name("Page"),
		"MediaBox":  mediabox,
		"Resources": core.Dict{"Font": fonts},
		"Contents":  &core.Stream{Dict: core.Dict{}, Data: content},
	}, nil)
}
