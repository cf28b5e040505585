package diary

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// mdParser parses archive markdown files. Tables show up in a few yearly
// retrospectives, hence the extension.
var mdParser = goldmark.New(goldmark.WithExtensions(extension.Table))

// ExtractHeading returns the text of the first level-1 heading, or the first
// level-2 heading when no level-1 heading exists. Returns "" for documents
// without headings.
func ExtractHeading(content []byte) string {
	doc := mdParser.Parser().Parse(text.NewReader(content))

	var firstH1, firstH2 string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			headingText := nodeText(heading, content)
			if heading.Level == 1 && firstH1 == "" {
				firstH1 = headingText
			} else if heading.Level == 2 && firstH2 == "" && firstH1 == "" {
				firstH2 = headingText
			}
			if firstH1 != "" {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	return firstH2
}

// ExtractText returns the plain text of a markdown document with markup
// stripped, one line per block. Word counts for .md files run over this
// rather than the raw markup.
func ExtractText(content []byte) string {
	doc := mdParser.Parser().Parse(text.NewReader(content))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				sb.Write(t.Segment.Value(content))
			}
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock && sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

// nodeText collects the raw text under a node.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
