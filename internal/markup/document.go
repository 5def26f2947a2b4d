package markup

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// wordsPerMinute is the reading speed used for ReadingTime.
const wordsPerMinute = 200

// Heading is an outline entry taken from the rendered document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Document is a rendered blog body.
type Document struct {
	HTML    template.HTML
	Outline []Heading
	Words   int
}

// ReadingTime estimates how long the document takes to read, never less than
// one minute.
func (d *Document) ReadingTime() time.Duration {
	minutes := (d.Words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}

func newDocument(rendered string) (*Document, error) {
	nodes, err := html.ParseFragment(strings.NewReader(rendered), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing rendered html: %w", err)
	}

	doc := &Document{HTML: template.HTML(rendered)}
	for _, n := range nodes {
		doc.scan(n)
	}
	return doc, nil
}

func (d *Document) scan(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H2, atom.H3:
			if id := attr(n, "id"); id != "" {
				level := 2
				if n.DataAtom == atom.H3 {
					level = 3
				}
				d.Outline = append(d.Outline, Heading{Level: level, ID: id, Text: strings.TrimSpace(textOf(n))})
			}
		case atom.Figure:
			// code cards are not prose
			if strings.Contains(attr(n, "class"), "code-block") {
				return
			}
		}
	}
	if n.Type == html.TextNode {
		d.Words += len(strings.Fields(n.Data))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.scan(c)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
