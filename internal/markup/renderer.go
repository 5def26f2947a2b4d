package markup

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Renderer converts blog documents to HTML.
type Renderer struct {
	md goldmark.Markdown
	hl *Highlighter
}

// NewRenderer returns a Renderer with GitHub-flavoured extensions, heading
// anchors and the code-block card renderer.
func NewRenderer(hl *Highlighter) *Renderer {
	if hl == nil {
		hl = NewHighlighter("", "")
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{hl: hl}, 100)),
		),
	)
	return &Renderer{md: md, hl: hl}
}

// Highlighter returns the highlighter used for code blocks.
func (r *Renderer) Highlighter() *Highlighter {
	return r.hl
}

// Render converts source and collects the outline and word count of the
// result.
func (r *Renderer) Render(source []byte) (*Document, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return newDocument(buf.String())
}

// codeBlockRenderer replaces goldmark's <pre><code> output for code blocks.
type codeBlockRenderer struct {
	hl *Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

var cardTmpl = template.Must(template.New("code-block").Parse(
	`<figure class="code-block" data-language="{{.Block.Language}}">` +
		`<figcaption class="code-block-header"><span class="code-block-label">{{.Block.Label}}</span>` +
		`<button type="button" class="copy-button" data-copy="{{.Block.Code}}" aria-label="Copy code">` +
		`<span class="copy-idle">Copy</span><span class="copy-done">Copied!</span></button></figcaption>` +
		`<div class="code-block-body">{{.Body}}</div></figure>` + "\n"))

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var info string
	if n, ok := node.(*ast.FencedCodeBlock); ok && n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}

	var raw bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		raw.Write(seg.Value(source))
	}

	block := ParseCodeBlock(info, raw.String())

	var body bytes.Buffer
	if err := r.hl.Highlight(&body, block); err != nil {
		return ast.WalkStop, err
	}

	err := cardTmpl.Execute(w, struct {
		Block CodeBlock
		Body  template.HTML
	}{block, template.HTML(body.String())})
	if err != nil {
		return ast.WalkStop, fmt.Errorf("writing code block: %w", err)
	}
	return ast.WalkSkipChildren, nil
}
