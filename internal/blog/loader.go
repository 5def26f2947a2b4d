package blog

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// bodyFiles are the accepted post body names, in lookup order.
var bodyFiles = []string{"page.mdx", "page.md", "index.mdx", "index.md"}

var dateFormats = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

var errNoConfig = errors.New("no config.yaml and no front matter")

// Load scans dir for post directories and returns the posts sorted newest
// first. Directories named "(group)" are route groups: their children are
// scanned as post directories. A directory whose config cannot be found or
// decoded is skipped with a warning. An unreadable dir yields no posts.
func Load(dir string) []*Post {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("blog: failed to read blog directory %s: %v", dir, err)
		return []*Post{}
	}

	posts := []*Post{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())

		if isRouteGroup(e.Name()) {
			children, err := os.ReadDir(path)
			if err != nil {
				log.Printf("blog: failed to read route group %s: %v", path, err)
				continue
			}
			for _, c := range children {
				if c.IsDir() {
					posts = appendPost(posts, filepath.Join(path, c.Name()))
				}
			}
			continue
		}
		posts = appendPost(posts, path)
	}

	SortPosts(posts)
	return posts
}

func isRouteGroup(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")")
}

func appendPost(posts []*Post, dir string) []*Post {
	p, err := LoadPost(dir)
	if err != nil {
		log.Printf("blog: failed to load config for blog post %s: %v", dir, err)
		return posts
	}
	return append(posts, p)
}

// LoadPost reads a single post directory.
func LoadPost(dir string) (*Post, error) {
	source := findBody(dir)

	cfg, err := readConfig(dir, source)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(dir)
	if cfg.Slug == "" {
		cfg.Slug = name
	}
	if cfg.Title == "" {
		cfg.Title = titleFromSlug(cfg.Slug)
	}

	p := &Post{
		Title:       cfg.Title,
		Description: cfg.Description,
		Slug:        cfg.Slug,
		PublishedAt: cfg.PublishedAt,
		Author:      cfg.Author,
		Link:        "/blog/" + cfg.Slug,
		UID:         "blog-" + cfg.Slug,
		Dir:         dir,
		Source:      source,
	}

	if cfg.PublishedAt != "" {
		d, ok := parseDate(cfg.PublishedAt)
		if !ok {
			log.Printf("blog: could not parse publishedAt %q for %s, use YYYY-MM-DD or RFC3339", cfg.PublishedAt, dir)
		}
		p.Date = d
	}
	return p, nil
}

func findBody(dir string) string {
	for _, name := range bodyFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func readConfig(dir, source string) (PostConfig, error) {
	var cfg PostConfig

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decoding %s: %w", configFile, err)
		}
		return cfg, nil
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("reading %s: %w", configFile, err)
	}

	if source == "" {
		return cfg, errNoConfig
	}
	body, err := os.ReadFile(source)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", source, err)
	}
	if _, err := frontmatter.MustParse(bytes.NewReader(body), &cfg); err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return cfg, errNoConfig
		}
		return cfg, fmt.Errorf("decoding front matter of %s: %w", source, err)
	}
	return cfg, nil
}

// Body returns the post body without front matter.
func (p *Post) Body() ([]byte, error) {
	if p.Source == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p.Source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Source, err)
	}
	return StripFrontMatter(data), nil
}

// StripFrontMatter returns src without a leading front matter block. Input
// whose front matter cannot be decoded is returned unchanged.
func StripFrontMatter(src []byte) []byte {
	var discard map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader(src), &discard)
	if err != nil {
		return src
	}
	return rest
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}

// SortPosts orders posts newest first. Undated posts go last; ties are broken
// by slug so listings are stable between reloads.
func SortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case a.Date.IsZero() != b.Date.IsZero():
			return b.Date.IsZero()
		case !a.Date.Equal(b.Date):
			return a.Date.After(b.Date)
		default:
			return a.Slug < b.Slug
		}
	})
}
