package richtext

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wudi/rasteredit/style"
)

// ParseMarkdown flattens markdown inline markup into styled spans. Emphasis
// maps to the italic face, strong emphasis to the bold weight; block
// boundaries become single spaces since a replacement region holds one run
// of text.
func ParseMarkdown(source string, base style.TextStyle) []Span {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	base = base.Normalize()
	var spans []Span
	walkInline(doc, src, base, &spans)
	return mergeAdjacent(spans)
}

func walkInline(node ast.Node, source []byte, st style.TextStyle, spans *[]Span) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			*spans = append(*spans, Span{Text: string(n.Segment.Value(source)), Style: st})
			if n.SoftLineBreak() || n.HardLineBreak() {
				*spans = append(*spans, Span{Text: " ", Style: st})
			}
		case *ast.Emphasis:
			inner := st
			if n.Level >= 2 {
				inner.Weight = style.WeightBold
			} else {
				inner.Style = style.StyleItalic
			}
			walkInline(n, source, inner, spans)
		case *ast.CodeSpan:
			*spans = append(*spans, Span{Text: string(n.Text(source)), Style: st})
		default:
			if child.Type() == ast.TypeBlock {
				if len(*spans) > 0 {
					*spans = append(*spans, Span{Text: " ", Style: st})
				}
				walkInline(child, source, st, spans)
			} else {
				walkInline(child, source, st, spans)
			}
		}
	}
}
