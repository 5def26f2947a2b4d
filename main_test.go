package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestPostsCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hello"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello", "page.mdx"), []byte(testPost), 0o644))

	out := runCmd(t, "posts", "--dir", dir)
	assert.Contains(t, out, "Hello World")
	assert.Contains(t, out, "/blog/hello")
	assert.Contains(t, out, "1 posts in "+dir)
}

func TestPostsCommandListsSampleContent(t *testing.T) {
	out := runCmd(t, "posts", "--dir", filepath.Join("content", "blog"))
	assert.Contains(t, out, "/blog/prisma-sql-migration")
	assert.Contains(t, out, "/blog/simple-medium-clone-api")
	assert.Contains(t, out, "5 posts in")
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.mdx")
	require.NoError(t, os.WriteFile(path, []byte(testPost), 0o644))

	out := runCmd(t, "render", path)
	assert.Contains(t, out, `<figure class="code-block" data-language="go">`)
	assert.NotContains(t, out, "publishedAt")

	out = runCmd(t, "render", "--css", path)
	assert.Contains(t, out, "<style>")
}

func TestRenderCommandRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render"})
	assert.Error(t, cmd.Execute())
}
