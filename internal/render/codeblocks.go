package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced code block found in markdown
type CodeBlock struct {
	Language string
	Code     string
}

var codeParser = goldmark.New().Parser()

// LabeledCodeBlocks returns the fenced code blocks that name a language.
// Untagged fences are usually sample output rather than code to reuse.
func LabeledCodeBlocks(markdown string) []CodeBlock {
	var labeled []CodeBlock
	for _, b := range CodeBlocks(markdown) {
		if b.Language != "" {
			labeled = append(labeled, b)
		}
	}
	return labeled
}

// CodeBlocks returns the fenced code blocks of a markdown document in order.
// The trailing newline of each block is stripped.
func CodeBlocks(markdown string) []CodeBlock {
	src := []byte(markdown)
	doc := codeParser.Parse(text.NewReader(src))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(src))
		}

		blocks = append(blocks, CodeBlock{
			Language: string(fenced.Language(src)),
			Code:     strings.TrimSuffix(sb.String(), "\n"),
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}
