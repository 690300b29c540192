package excerpt

import (
	"strings"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// WordsPerMinute is the reading speed used for ReadingMinutes.
const WordsPerMinute = 200

// Config controls excerpt extraction.
type Config struct {
	MaxWords int // Excerpt length ceiling in words.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxWords: 50}
}

// Summary describes a post for listings.
type Summary struct {
	Words          int    `json:"words"`
	ReadingMinutes int    `json:"reading_minutes"`
	Excerpt        string `json:"excerpt"`
}

// skipped subtrees carry no prose: the TOC, code and injected scripts.
var skipped = map[string]bool{
	"nav":    true,
	"pre":    true,
	"script": true,
	"style":  true,
	"button": true,
}

// Summarize walks a transformed tree and produces its word count, reading
// time and a sentence-bounded excerpt drawn from paragraph text.
func Summarize(tree *hast.Node, cfg Config) Summary {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 50
	}

	var words int
	var paragraphs []string
	hast.Visit(tree, func(n, _ *hast.Node, _ int) hast.Action {
		switch n.Type {
		case hast.ElementNode:
			if skipped[n.Tag] {
				return hast.SkipChildren
			}
			if n.Tag == "p" {
				text := collapse(hast.TextContent(n))
				words += CountWords(text)
				if text != "" {
					paragraphs = append(paragraphs, text)
				}
				return hast.SkipChildren
			}
		case hast.TextNode:
			words += CountWords(n.Value)
		}
		return hast.Continue
	})

	return Summary{
		Words:          words,
		ReadingMinutes: ReadingMinutes(words),
		Excerpt:        buildExcerpt(paragraphs, cfg.MaxWords),
	}
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes rounds up at WordsPerMinute, with a floor of one minute.
func ReadingMinutes(words int) int {
	m := (words + WordsPerMinute - 1) / WordsPerMinute
	if m < 1 {
		m = 1
	}
	return m
}

// buildExcerpt takes whole sentences in document order until the next one
// would pass maxWords. A first sentence that is already too long is cut at
// the word limit.
func buildExcerpt(paragraphs []string, maxWords int) string {
	var current strings.Builder
	currentWords := 0

	for _, para := range paragraphs {
		for _, sent := range splitSentences(para) {
			sentWords := CountWords(sent)
			if currentWords+sentWords > maxWords {
				if currentWords == 0 {
					return strings.Join(strings.Fields(sent)[:maxWords], " ") + "…"
				}
				return current.String()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sent)
			currentWords += sentWords
		}
	}
	return current.String()
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
