package markup

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	defaultLightStyle = "github"
	defaultDarkStyle  = "github-dark"
	darkScope         = `[data-theme="dark"]`
	systemScope       = `[data-theme="system"]`
)

// Highlighter turns code into class-annotated HTML. Colours live in the CSS
// returned by CSS so one rendering serves both themes.
type Highlighter struct {
	light *chroma.Style
	dark  *chroma.Style
}

// NewHighlighter returns a Highlighter using the named chroma styles. Unknown
// names fall back to chroma's default style.
func NewHighlighter(light, dark string) *Highlighter {
	if light == "" {
		light = defaultLightStyle
	}
	if dark == "" {
		dark = defaultDarkStyle
	}
	return &Highlighter{light: styles.Get(light), dark: styles.Get(dark)}
}

func (h *Highlighter) formatter(lineNumbers bool) *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(lineNumbers),
		chromahtml.TabWidth(2),
	)
}

// Highlight writes the highlighted block to w. Languages chroma does not know
// are rendered as plain text.
func (h *Highlighter) Highlight(w io.Writer, b CodeBlock) error {
	lexer := lexers.Get(b.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, b.Code)
	if err != nil {
		return fmt.Errorf("tokenising %s block: %w", b.Language, err)
	}
	if err := h.formatter(b.LineNumbers()).Format(w, h.light, it); err != nil {
		return fmt.Errorf("formatting %s block: %w", b.Language, err)
	}
	return nil
}

// CSS returns the stylesheet for highlighted blocks: the light style at top
// level and the dark style scoped under the dark theme attribute, and under
// the system theme when the browser prefers dark.
func (h *Highlighter) CSS() (string, error) {
	f := h.formatter(true)

	var light, dark bytes.Buffer
	if err := f.WriteCSS(&light, h.light); err != nil {
		return "", fmt.Errorf("writing light css: %w", err)
	}
	if err := f.WriteCSS(&dark, h.dark); err != nil {
		return "", fmt.Errorf("writing dark css: %w", err)
	}

	var out strings.Builder
	out.Write(light.Bytes())
	writeScoped(&out, dark.String(), darkScope)
	out.WriteString("@media (prefers-color-scheme: dark) {\n")
	writeScoped(&out, dark.String(), systemScope)
	out.WriteString("}\n")
	return out.String(), nil
}

// writeScoped prefixes every rule selector of css with scope.
func writeScoped(out *strings.Builder, css, scope string) {
	for _, line := range strings.Split(css, "\n") {
		if i := strings.Index(line, "."); i >= 0 && strings.Contains(line, "{") {
			line = line[:i] + scope + " " + line[i:]
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
}
