package richtext

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/wudi/rasteredit/style"
)

// ParseHTML flattens an HTML fragment into styled spans. Recognized tags:
// b/strong (bold), i/em (italic), u (underline), font with a color
// attribute. Everything else contributes its text content in the base style.
func ParseHTML(source string, base style.TextStyle) ([]Span, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	base = base.Normalize()
	var spans []Span
	walkHTML(doc, base, &spans)
	return mergeAdjacent(spans), nil
}

func walkHTML(n *html.Node, st style.TextStyle, spans *[]Span) {
	if n.Type == html.TextNode {
		*spans = append(*spans, Span{Text: n.Data, Style: st})
		return
	}
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.B, atom.Strong:
			st.Weight = style.WeightBold
		case atom.I, atom.Em:
			st.Style = style.StyleItalic
		case atom.U:
			st.Decoration = "underline"
		case atom.Font:
			for _, attr := range n.Attr {
				if attr.Key == "color" {
					st.Color = attr.Val
				}
			}
		case atom.Br:
			*spans = append(*spans, Span{Text: " ", Style: st})
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, st, spans)
	}
}
