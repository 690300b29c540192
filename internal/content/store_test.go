package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func testStore() *Store {
	return NewStoreFS(fstest.MapFS{
		"hello.mdx":     {Data: []byte("---\ntitle: Hello\n---\n# Hi\n")},
		"hello.txt":     {Data: []byte("shadowed by mdx")},
		"archive.html":  {Data: []byte("<title>Archive</title><p>old</p>")},
		"notes.txt":     {Data: []byte("plain")},
		"image.png":     {Data: []byte{0x89}},
		".hidden.md":    {Data: []byte("# secret")},
		"drafts/wip.md": {Data: []byte("# nested")},
		"bad..name.md":  {Data: []byte("# bad")},
	})
}

func TestStore_Slugs(t *testing.T) {
	slugs, err := testStore().Slugs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "archive,hello,notes"
	if got := strings.Join(slugs, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestStore_LoadUsesExtensionPrecedence(t *testing.T) {
	post, err := testStore().Load("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Filename != "hello.mdx" {
		t.Errorf("expected hello.mdx, got %s", post.Filename)
	}
	if post.Title != "Hello" {
		t.Errorf("expected front matter title, got %q", post.Title)
	}
	if post.Slug != "hello" {
		t.Errorf("unexpected slug %q", post.Slug)
	}
}

func TestStore_LoadHTML(t *testing.T) {
	post, err := testStore().Load("archive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "Archive" {
		t.Errorf("expected %q, got %q", "Archive", post.Title)
	}
}

func TestStore_LoadErrors(t *testing.T) {
	s := testStore()

	if _, err := s.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	for _, slug := range []string{"", "../etc/passwd", "drafts/wip", ".hidden", "a\\b", "bad..name"} {
		if _, err := s.Load(slug); !errors.Is(err, ErrInvalidSlug) {
			t.Errorf("%q: expected ErrInvalidSlug, got %v", slug, err)
		}
	}
}
