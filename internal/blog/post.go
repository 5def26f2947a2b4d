// Package blog discovers blog posts on disk, keeps a sorted index of them and
// derives per-post page metadata.
package blog

import (
	"fmt"
	"net/url"
	"time"
)

// PostConfig is the per-post configuration kept next to the post body.
type PostConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Slug        string `yaml:"slug"`
	PublishedAt string `yaml:"publishedAt"`
	Author      string `yaml:"author"`
}

// Post is a loaded blog entry.
type Post struct {
	Title       string
	Description string
	Slug        string
	PublishedAt string
	Author      string

	Link string
	UID  string
	Date time.Time

	// Dir is the post directory, Source the body file inside it (empty when
	// the post has only a config).
	Dir    string
	Source string
}

// DateLabel formats the publication date for listings.
func (p *Post) DateLabel() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format("Jan 2, 2006")
}

// Meta is the page metadata of a post.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	OGURL       string
	Published   string
}

// Meta returns the head metadata of the post for a site served at siteURL.
func (p *Post) Meta(siteURL string) Meta {
	return Meta{
		Title:       p.Title,
		Description: p.Description,
		Canonical:   p.Link,
		OGType:      "article",
		OGURL:       siteURL + p.Link,
		Published:   p.PublishedAt,
	}
}

// JSONLD returns the schema.org BlogPosting object of the post.
func (p *Post) JSONLD(siteURL string) map[string]any {
	return map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      p.Title,
		"datePublished": p.PublishedAt,
		"dateModified":  p.PublishedAt,
		"description":   p.Description,
		"image":         fmt.Sprintf("%s/og?title=%s", siteURL, url.QueryEscape(p.Title)),
		"url":           siteURL + p.Link,
		"author": map[string]string{
			"@type": "Person",
			"name":  p.Author,
		},
	}
}
