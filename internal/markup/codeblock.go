// Package markup renders blog documents to HTML. Fenced code blocks are
// post-processed into labelled, highlighted cards that carry their raw source
// for the copy button.
package markup

import (
	"regexp"
	"strings"
)

var (
	languageRe      = regexp.MustCompile(`^(\w+)`)
	infoFilenameRe  = regexp.MustCompile(`^\w+:(.+)`)
	pathLineRe      = regexp.MustCompile(`^path=([^,\s]+)`)
	filenameLineRe  = regexp.MustCompile(`^filename=([^,\s]+)`)
	directiveLineRe = regexp.MustCompile(`^(path|filename)=`)
	filenameAnyRe   = regexp.MustCompile(`filename=([^,\s\n]+)`)
	filenameCutRe   = regexp.MustCompile(`filename=([^,\s\n]+)\n?`)
)

// CodeBlock is a fenced block after directive extraction.
type CodeBlock struct {
	Language string
	Filename string
	Code     string
}

// Label is the text shown in the card header.
func (b CodeBlock) Label() string {
	if b.Filename != "" {
		return b.Filename
	}
	return b.Language
}

// LineNumbers reports whether the block is rendered with a gutter. Shell
// snippets are meant to be copied line by line, so they get none.
func (b CodeBlock) LineNumbers() bool {
	return b.Language != "bash"
}

// ParseCodeBlock derives language, filename and display code from a fence's
// info string and raw body.
//
// The filename comes from a leading "path=" or "filename=" line, or from an
// info string of the form "lang:name". A leading directive line is dropped
// from the code. Failing both, the first "filename=" anywhere in the body is
// used and removed.
func ParseCodeBlock(info, raw string) CodeBlock {
	word := ""
	if fields := strings.Fields(info); len(fields) > 0 {
		word = fields[0]
	}

	b := CodeBlock{Language: "plain", Code: strings.TrimSpace(raw)}
	if m := languageRe.FindStringSubmatch(word); m != nil {
		b.Language = m[1]
	}

	firstLine, _, _ := strings.Cut(b.Code, "\n")

	var m []string
	if firstLine != "" {
		m = pathLineRe.FindStringSubmatch(firstLine)
		if m == nil {
			m = filenameLineRe.FindStringSubmatch(firstLine)
		}
	}
	if m == nil {
		m = infoFilenameRe.FindStringSubmatch(word)
	}

	if m != nil {
		b.Filename = m[1]
		if directiveLineRe.MatchString(firstLine) {
			_, rest, _ := strings.Cut(b.Code, "\n")
			b.Code = strings.TrimSpace(rest)
		}
	}

	if b.Filename == "" && firstLine != "" {
		if m := filenameAnyRe.FindStringSubmatch(b.Code); m != nil {
			b.Filename = m[1]
			loc := filenameCutRe.FindStringIndex(b.Code)
			b.Code = strings.TrimSpace(b.Code[:loc[0]] + b.Code[loc[1]:])
		}
	}

	return b
}
