// Package content reads blog posts from a directory of source files.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/mdxblog/internal/parser"
)

var (
	ErrNotFound    = errors.New("post not found")
	ErrInvalidSlug = errors.New("invalid slug")
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Post is a parsed source file together with its slug.
type Post struct {
	Slug     string
	Filename string
	ModTime  time.Time
	*parser.Document
}

// Store lists and loads posts from a flat directory.
type Store struct {
	fsys fs.FS
}

// NewStore opens dir as a post store.
func NewStore(dir string) *Store {
	return &Store{fsys: os.DirFS(dir)}
}

// NewStoreFS uses an arbitrary file system, mainly for tests.
func NewStoreFS(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// ValidSlug reports whether slug can name a post file. Path separators,
// dot-dot and hidden names are rejected.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug) && !strings.Contains(slug, "..")
}

// Slugs returns the sorted stems of every supported file. Drafts are
// included; callers filter on front matter. When two files share a stem
// the slug is listed once.
func (s *Store) Slugs() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}

	seen := make(map[string]bool)
	var slugs []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		slug := parser.Stem(e.Name())
		if !ValidSlug(slug) || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Resolve finds the source file for slug, trying extensions in
// parser.SupportedExtensions order.
func (s *Store) Resolve(slug string) (string, error) {
	if !ValidSlug(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	for _, ext := range parser.SupportedExtensions {
		name := slug + ext
		if _, err := fs.Stat(s.fsys, name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Load resolves and parses the post for slug.
func (s *Store) Load(slug string) (*Post, error) {
	name, err := s.Resolve(slug)
	if err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	p, err := parser.ForFile(name)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(f, path.Base(name))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return &Post{
		Slug:     slug,
		Filename: name,
		ModTime:  info.ModTime(),
		Document: doc,
	}, nil
}
