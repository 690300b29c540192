package rehype

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/mdxblog/internal/hast"
)

func codeBlock(lang, source string) (*hast.Node, *hast.Node) {
	code := hast.NewElement("code", hast.NewText(source))
	if lang != "" {
		code.AddClass("language-" + lang)
	}
	return hast.NewElement("pre", code), code
}

func TestCodeStage_LinesAndNumbers(t *testing.T) {
	pre, code := codeBlock("go", "package main\n\nfunc main() {}\n")
	tree := hast.NewRoot(pre)

	stage := &CodeStage{IDs: &SequenceGenerator{Prefix: "copy"}, ShowLineNumbers: true}
	if _, err := stage.Apply(tree); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code.Children) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(code.Children))
	}
	for i, line := range code.Children {
		if !line.Props.HasClass("line") {
			t.Errorf("line %d: missing line class", i)
		}
		if want := string(rune('1' + i)); line.Props.Value("data-line-number") != want {
			t.Errorf("line %d: expected number %s, got %q", i, want, line.Props.Value("data-line-number"))
		}
	}
	if !pre.Props.HasClass("line-numbers") {
		t.Error("expected pre.line-numbers")
	}
	if got := hast.TextContent(code); got != "package main\n\nfunc main() {}\n" {
		t.Errorf("expected source text preserved, got %q", got)
	}

	// Keywords are wrapped in chroma class spans.
	first := code.Children[0]
	if len(first.Children) == 0 || !first.Children[0].IsElement("span") || first.Children[0].Props.Value("class") != "kn" {
		t.Errorf("expected keyword span for 'package', got %+v", first.Children)
	}
}

func TestCodeStage_CopyButton(t *testing.T) {
	pre, _ := codeBlock("", "echo hi")
	tree := hast.NewRoot(pre)
	stage := &CodeStage{IDs: &SequenceGenerator{Prefix: "copy"}, CopyButton: true}
	stage.Apply(tree)

	if len(pre.Children) != 3 {
		t.Fatalf("expected code + button + script, got %d", len(pre.Children))
	}
	button := pre.Children[1]
	if button.Props.Value("id") != "copy-1" || !button.Props.HasClass("code-copy-button") {
		t.Errorf("unexpected button %+v", button.Props.Attrs())
	}
	src := decodeScriptSrc(t, pre.Children[2])
	if !strings.Contains(src, `document.getElementById("copy-1")`) || !strings.Contains(src, "navigator.clipboard.writeText") {
		t.Errorf("unexpected copy script %q", src)
	}
	if pre.Props.HasClass("line-numbers") {
		t.Error("expected no line-numbers class when disabled")
	}
}

func TestCodeStage_UnknownLanguage(t *testing.T) {
	pre, _ := codeBlock("klingon", "qapla'")
	_, err := (&CodeStage{IDs: &SequenceGenerator{}}).Apply(hast.NewRoot(pre))
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}

	pre, code := codeBlock("klingon", "qapla'")
	if _, err := (&CodeStage{IDs: &SequenceGenerator{}, IgnoreMissing: true}).Apply(hast.NewRoot(pre)); err != nil {
		t.Fatalf("expected unknown language ignored, got %v", err)
	}
	if hast.TextContent(code) != "qapla'\n" {
		t.Errorf("expected plain text kept, got %q", hast.TextContent(code))
	}
}

func TestCodeStage_IgnoresInlineCode(t *testing.T) {
	p := hast.NewElement("p", hast.NewElement("code", hast.NewText("x := 1")))
	tree := hast.NewRoot(p)
	before := tree.Clone()
	(&CodeStage{IDs: &SequenceGenerator{}, CopyButton: true}).Apply(tree)
	if !hast.Equal(tree, before) {
		t.Error("expected inline code untouched")
	}
}

func TestLanguage(t *testing.T) {
	code := hast.NewElement("code").AddClass("highlight", "language-python")
	if got := Language(code); got != "python" {
		t.Errorf("expected python, got %q", got)
	}
	if got := Language(hast.NewElement("code")); got != "" {
		t.Errorf("expected empty language, got %q", got)
	}
}
