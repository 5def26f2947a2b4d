package markup

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# Title\n\n" +
	"Some intro words here.\n\n" +
	"## Getting started\n\n" +
	"Install the CLI first.\n\n" +
	"```ts\npath=src/main.ts\nconst a = 1\n```\n\n" +
	"### Running\n\n" +
	"```bash\nnpm run start\n```\n"

func TestRenderCodeBlockCard(t *testing.T) {
	r := NewRenderer(nil)

	doc, err := r.Render([]byte(sampleDoc))
	require.NoError(t, err)
	out := string(doc.HTML)

	assert.Contains(t, out, `<figure class="code-block" data-language="ts">`)
	assert.Contains(t, out, `<span class="code-block-label">src/main.ts</span>`)
	assert.Contains(t, out, `data-copy="const a = 1"`)
	assert.Contains(t, out, `<span class="code-block-label">bash</span>`)
	assert.Contains(t, out, `class="chroma"`)
	assert.NotContains(t, out, "path=src/main.ts")
	assert.Equal(t, 2, strings.Count(out, `class="copy-button"`))
}

func TestRenderOutlineAndWords(t *testing.T) {
	r := NewRenderer(nil)

	doc, err := r.Render([]byte(sampleDoc))
	require.NoError(t, err)

	require.Len(t, doc.Outline, 2)
	assert.Equal(t, Heading{Level: 2, ID: "getting-started", Text: "Getting started"}, doc.Outline[0])
	assert.Equal(t, 3, doc.Outline[1].Level)
	assert.Equal(t, "running", doc.Outline[1].ID)

	// Title(1) + intro(4) + heading(2) + sentence(4) + heading(1); code is excluded.
	assert.Equal(t, 12, doc.Words)
	assert.Equal(t, time.Minute, doc.ReadingTime())
}

func TestReadingTimeRoundsUp(t *testing.T) {
	d := &Document{Words: 201}
	assert.Equal(t, 2*time.Minute, d.ReadingTime())
}

func TestHighlighterCSS(t *testing.T) {
	css, err := NewHighlighter("", "").CSS()
	require.NoError(t, err)

	assert.Contains(t, css, ".chroma")
	assert.Contains(t, css, `[data-theme="dark"] .chroma`)

	media := strings.Index(css, "@media (prefers-color-scheme: dark) {")
	require.GreaterOrEqual(t, media, 0, "system theme follows the browser preference")
	assert.Contains(t, css[media:], `[data-theme="system"] .chroma`)
	assert.Contains(t, css[media:], "#0d1117", "dark palette applies under system theme")
}

func TestSanitize(t *testing.T) {
	out := string(Sanitize(`Led the team.<br/><script>alert(1)</script> Shipped.`))

	assert.Contains(t, out, "Led the team.")
	assert.Contains(t, out, "Shipped.")
	assert.Contains(t, out, "<br")
	assert.NotContains(t, out, "<script>")
}
