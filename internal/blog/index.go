package blog

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long Watch waits for edits to settle before reloading.
const reloadDebounce = 500 * time.Millisecond

// Index holds the current post listing for a content directory.
type Index struct {
	dir string

	mu     sync.RWMutex
	posts  []*Post
	bySlug map[string]*Post
}

// NewIndex loads dir and returns an Index over it.
func NewIndex(dir string) *Index {
	idx := &Index{dir: dir}
	idx.Reload()
	return idx
}

// Dir returns the content directory.
func (idx *Index) Dir() string {
	return idx.dir
}

// Reload rescans the content directory.
func (idx *Index) Reload() {
	loaded := Load(idx.dir)
	posts := make([]*Post, 0, len(loaded))
	bySlug := make(map[string]*Post, len(loaded))
	for _, p := range loaded {
		if prev, ok := bySlug[p.Slug]; ok {
			log.Printf("blog: duplicate slug %q in %s, keeping %s", p.Slug, p.Dir, prev.Dir)
			continue
		}
		bySlug[p.Slug] = p
		posts = append(posts, p)
	}

	idx.mu.Lock()
	idx.posts = posts
	idx.bySlug = bySlug
	idx.mu.Unlock()
}

// All returns the posts newest first. The slice must not be modified.
func (idx *Index) All() []*Post {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.posts
}

// BySlug looks a post up by slug.
func (idx *Index) BySlug(slug string) (*Post, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	p, ok := idx.bySlug[slug]
	return p, ok
}

// Watch reloads the index whenever files under the content directory change,
// until ctx is cancelled.
func (idx *Index) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(idx.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("blog: error walking %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				log.Printf("blog: failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", idx.dir, err)
	}
	log.Printf("blog: watching %s for changes", idx.dir)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					log.Printf("blog: failed to watch new directory %s: %v", event.Name, err)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				idx.Reload()
				log.Printf("blog: reloaded %d posts after change to %s", len(idx.All()), event.Name)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("blog: watcher error: %v", err)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
