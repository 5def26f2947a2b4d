package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		info     string
		raw      string
		language string
		filename string
		code     string
	}{
		{
			name:     "path directive on first line",
			info:     "ts",
			raw:      "path=src/main.ts\nconst a = 1\n",
			language: "ts",
			filename: "src/main.ts",
			code:     "const a = 1",
		},
		{
			name:     "filename directive stops at comma",
			info:     "go",
			raw:      "filename=main.go,highlight=3\npackage main\n",
			language: "go",
			filename: "main.go",
			code:     "package main",
		},
		{
			name:     "filename from info suffix",
			info:     "ts:src/app.module.ts",
			raw:      "export class AppModule {}\n",
			language: "ts",
			filename: "src/app.module.ts",
			code:     "export class AppModule {}",
		},
		{
			name:     "first line wins over info suffix",
			info:     "ts:other.ts",
			raw:      "path=first.ts\nlet x\n",
			language: "ts",
			filename: "first.ts",
			code:     "let x",
		},
		{
			name:     "filename later in body is extracted",
			info:     "js",
			raw:      "const x = 1\nfilename=later.js\nconsole.log(x)\n",
			language: "js",
			filename: "later.js",
			code:     "const x = 1\nconsole.log(x)",
		},
		{
			name:     "no info is plain",
			info:     "",
			raw:      "  hello  \n",
			language: "plain",
			code:     "hello",
		},
		{
			name:     "language keeps word characters only",
			info:     "c++",
			raw:      "int main() {}",
			language: "c",
			code:     "int main() {}",
		},
		{
			name:     "empty body",
			info:     "bash",
			raw:      "",
			language: "bash",
			code:     "",
		},
		{
			name:     "empty directive value is left in place",
			info:     "sh",
			raw:      "path=\necho hi",
			language: "sh",
			code:     "path=\necho hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseCodeBlock(tt.info, tt.raw)
			assert.Equal(t, tt.language, b.Language)
			assert.Equal(t, tt.filename, b.Filename)
			assert.Equal(t, tt.code, b.Code)
		})
	}
}

func TestCodeBlockLabel(t *testing.T) {
	assert.Equal(t, "main.go", CodeBlock{Language: "go", Filename: "main.go"}.Label())
	assert.Equal(t, "go", CodeBlock{Language: "go"}.Label())
}

func TestCodeBlockLineNumbers(t *testing.T) {
	assert.False(t, CodeBlock{Language: "bash"}.LineNumbers())
	assert.True(t, CodeBlock{Language: "ts"}.LineNumbers())
	assert.True(t, CodeBlock{Language: "plain"}.LineNumbers())
}
