package thread

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/caseline/caseline/internal/models"
)

const (
	// truncationSuffix marks the cut at the end of the kept content.
	truncationSuffix = "..."

	// historySeparator sits between a truncation tail and a pre-existing
	// history fragment when both are non-empty.
	historySeparator = "<br><hr>"
)

// Truncate splits sanitized HTML into a head that fits the character
// budget and a tail that joins the history fragment. The split walks the
// parsed tree depth-first, duplicating ancestor elements on both sides
// of the cut so neither fragment contains an unbalanced tag. Input that
// already fits the budget (or cannot be parsed) passes through whole.
func Truncate(htmlStr, history string, budget int) models.ParseResult {
	passThrough := models.ParseResult{
		NewContent:     htmlStr,
		HistoryContent: history,
		HasHistory:     strings.TrimSpace(history) != "",
	}

	if budget <= 0 || PlainTextLen(htmlStr) <= budget {
		return passThrough
	}

	nodes, err := parseFragment(htmlStr)
	if err != nil {
		return passThrough
	}

	s := &splitter{budget: budget}
	headRoot := bodyContext()
	tailRoot := bodyContext()
	s.splitInto(nodes, headRoot, tailRoot)

	head := renderNodes(children(headRoot))
	tail := renderNodes(children(tailRoot))

	combined := tail
	if combined != "" && history != "" {
		combined += historySeparator + history
	} else {
		combined += history
	}

	return models.ParseResult{
		NewContent:     head + truncationSuffix,
		HistoryContent: combined,
		HasHistory:     true,
	}
}

// splitter carries the running character count across the walk.
type splitter struct {
	budget  int
	count   int
	reached bool
}

// splitInto distributes top-level fragment nodes between head and tail.
func (s *splitter) splitInto(nodes []*html.Node, head, tail *html.Node) {
	for _, n := range nodes {
		s.splitNode(n, head, tail)
	}
}

func (s *splitter) splitNode(n *html.Node, head, tail *html.Node) {
	switch n.Type {
	case html.TextNode:
		s.splitText(n, head, tail)

	case html.ElementNode:
		wasReached := s.reached
		hc := cloneShallow(n)
		tc := cloneShallow(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.splitNode(c, hc, tc)
		}
		// Attach a clone only if its subtree produced content on that
		// side. Inherently childless elements (br, img, hr) follow the
		// side the cursor was on when they were visited.
		if hc.FirstChild != nil || (n.FirstChild == nil && !wasReached) {
			head.AppendChild(hc)
		}
		if tc.FirstChild != nil || (n.FirstChild == nil && wasReached) {
			tail.AppendChild(tc)
		}

	default:
		// Comments and the like carry no text; they follow the cursor.
		if s.reached {
			tail.AppendChild(cloneShallow(n))
		} else {
			head.AppendChild(cloneShallow(n))
		}
	}
}

func (s *splitter) splitText(n *html.Node, head, tail *html.Node) {
	if s.reached {
		tail.AppendChild(textNode(n.Data))
		return
	}

	remaining := s.budget - s.count
	if remaining <= 0 {
		s.reached = true
		tail.AppendChild(textNode(n.Data))
		return
	}

	runes := []rune(n.Data)
	if len(runes) <= remaining {
		s.count += len(runes)
		head.AppendChild(textNode(n.Data))
		return
	}

	head.AppendChild(textNode(string(runes[:remaining])))
	tail.AppendChild(textNode(string(runes[remaining:])))
	s.count = s.budget
	s.reached = true
}

// cloneShallow copies a node's tag and attributes without its children.
func cloneShallow(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

func textNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
