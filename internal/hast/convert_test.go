package hast

import (
	"strings"
	"testing"
)

func TestParseFragment_RoundTrip(t *testing.T) {
	input := `<h1 class="title main" id="top">Hi <em>there</em></h1><!-- toc --><p>text &amp; more</p>`
	root, err := ParseFragment(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Type != RootNode {
		t.Fatalf("expected root, got %s", root.Type)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children))
	}
	h1 := root.Children[0]
	if !h1.IsElement("h1") || !h1.Props.HasClass("main") || h1.Props.Value("id") != "top" {
		t.Errorf("unexpected h1: %+v", h1)
	}
	if c := root.Children[1]; c.Type != CommentNode || strings.TrimSpace(c.Value) != "toc" {
		t.Errorf("expected toc comment, got %+v", c)
	}

	out, err := RenderString(root)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<h1 class="title main" id="top">Hi <em>there</em></h1><!-- toc --><p>text &amp; more</p>`
	if out != want {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", out, want)
	}
}

func TestRender_ScriptSrcAndText(t *testing.T) {
	root := NewRoot(
		NewElement("button", NewText("≡")).Set("type", "button").AddClass("toc-trigger-button").Set("id", "abc"),
		NewElement("script").Set("src", "data:application/javascript;base64,QQ=="),
	)
	out, err := RenderString(root)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<button class="toc-trigger-button" type="button" id="abc">≡</button><script src="data:application/javascript;base64,QQ=="></script>`
	if out != want {
		t.Errorf("unexpected render:\n got %s\nwant %s", out, want)
	}
}

func TestParseFragment_Empty(t *testing.T) {
	root, err := ParseFragment(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
}
