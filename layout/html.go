package layout

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML wraps laid-out page text in a minimal HTML document. The
// text goes in a single pre element so that the grid survives.
func RenderHTML(title, content string) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	if title != "" {
		t := element(atom.Title)
		t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		head.AppendChild(t)
	}

	body := element(atom.Body)
	root.AppendChild(body)
	pre := element(atom.Pre)
	pre.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	body.AppendChild(pre)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("layout: render html: %w", err)
	}
	return buf.String(), nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
