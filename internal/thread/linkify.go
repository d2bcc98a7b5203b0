package thread

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Bare URL detection. Parentheses are deliberately not accepted inside
// URLs; behavior parity with the legacy panel beats RFC coverage here.
var reBareURL = regexp.MustCompile(`(?i)\b(?:https?|ftp)://[^\s<>()"']+`)

// trailingPunct is stripped from the end of a detected URL so sentence
// punctuation stays outside the anchor.
const trailingPunct = ".,;:!?"

// Linkify wraps bare URLs in text content with target-blank anchors.
// Text inside existing anchor, script or style elements is left alone,
// which makes the rewrite idempotent. Input without any bare URL, or
// input that cannot be parsed, is returned unchanged.
func Linkify(fragment string) string {
	if fragment == "" || !reBareURL.MatchString(fragment) {
		return fragment
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		return fragment
	}

	// Reparent under a scratch container so top-level text nodes can be
	// replaced like any other.
	root := bodyContext()
	for _, n := range nodes {
		root.AppendChild(n)
	}

	var textNodes []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		collectLinkable(c, &textNodes)
	}

	changed := false
	for _, n := range textNodes {
		if linkifyTextNode(n) {
			changed = true
		}
	}
	if !changed {
		return fragment
	}

	return renderNodes(children(root))
}

// collectLinkable gathers text nodes outside anchors, scripts and styles.
func collectLinkable(n *html.Node, out *[]*html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.A, atom.Script, atom.Style:
			return
		}
	}
	if n.Type == html.TextNode {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLinkable(c, out)
	}
}

// linkifyTextNode replaces a text node with text/anchor/text runs for
// each URL found. Returns true if the node was rewritten.
func linkifyTextNode(n *html.Node) bool {
	matches := reBareURL.FindAllStringIndex(n.Data, -1)
	if matches == nil {
		return false
	}

	parent := n.Parent
	text := n.Data
	last := 0
	for _, loc := range matches {
		url := strings.TrimRight(text[loc[0]:loc[1]], trailingPunct)
		if url == "" {
			continue
		}
		end := loc[0] + len(url)

		if loc[0] > last {
			parent.InsertBefore(textNode(text[last:loc[0]]), n)
		}
		parent.InsertBefore(anchorNode(url), n)
		last = end
	}
	if last == 0 {
		return false
	}
	if last < len(text) {
		parent.InsertBefore(textNode(text[last:]), n)
	}
	parent.RemoveChild(n)
	return true
}

func anchorNode(url string) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "href", Val: url},
			{Key: "target", Val: "_blank"},
			{Key: "rel", Val: "noopener noreferrer"},
		},
	}
	a.AppendChild(textNode(url))
	return a
}
