package thread

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bodyContext is the fragment-parse context. Email bodies are body
// content, never full documents, by the time they reach the engine.
func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

// parseFragment parses an HTML fragment into its top-level nodes.
func parseFragment(s string) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(s), bodyContext())
}

// renderNodes serializes nodes back to HTML in order.
func renderNodes(nodes []*html.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return ""
		}
	}
	return buf.String()
}

// PlainText returns the concatenated text content of an HTML fragment,
// in document order, with entities decoded. Markup contributes nothing;
// no whitespace is collapsed. Unparseable input is returned as-is.
func PlainText(s string) string {
	nodes, err := parseFragment(s)
	if err != nil {
		return s
	}

	var sb strings.Builder
	for _, n := range nodes {
		collectText(n, &sb)
	}
	return sb.String()
}

// PlainTextLen returns the number of characters (runes) of text content
// in an HTML fragment.
func PlainTextLen(s string) int {
	return utf8.RuneCountInString(PlainText(s))
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
