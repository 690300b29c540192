package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// Parser converts raw post bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// Document is a parsed post: front matter plus a body tree.
type Document struct {
	Title string
	Meta  FrontMatter
	Tree  *hast.Node
}

// SupportedExtensions lists post file extensions, in lookup precedence.
var SupportedExtensions = []string{".mdx", ".md", ".markdown", ".html", ".htm", ".txt", ".docx", ".pdf"}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".mdx", ".markdown":
		return NewMarkdownParser(), nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Stem returns the file name without directory and extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newDocument builds a Document titled after the file stem.
func newDocument(filename string, tree *hast.Node) *Document {
	return &Document{Title: Stem(filename), Tree: tree}
}
