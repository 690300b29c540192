package rehype

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/dgallion1/mdxblog/internal/hast"
)

const wantToggleScript = "\n" +
	`            document.getElementById("btn-1").addEventListener('click', (e) => {` + "\n" +
	`              var btn = e.target;` + "\n" +
	`              var nav = btn.closest('nav');` + "\n" +
	`              var content = nav.querySelector('.toc-level-1');` + "\n" +
	`              content.style.display = content.style.display === 'none' ? '' : 'none';` + "\n" +
	`            });`

func decodeScriptSrc(t *testing.T, script *hast.Node) string {
	t.Helper()
	src := script.Props.Value("src")
	payload, ok := strings.CutPrefix(src, ScriptDataURIPrefix)
	if !ok {
		t.Fatalf("expected data URI src, got %q", src)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return string(raw)
}

func TestTOCTriggerStage_AppendsButtonAndScript(t *testing.T) {
	nav := hast.NewElement("nav", newTOCList(1)).AddClass("toc")
	tree := hast.NewRoot(nav)

	stage := &TOCTriggerStage{IDs: &SequenceGenerator{Prefix: "btn"}}
	if _, err := stage.Apply(tree); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nav.Children) != 3 {
		t.Fatalf("expected list + button + script, got %d children", len(nav.Children))
	}

	button, script := nav.Children[1], nav.Children[2]
	if !button.IsElement("button") || button.Props.Value("id") != "btn-1" {
		t.Errorf("unexpected button %+v", button.Props.Attrs())
	}
	if button.Props.Value("type") != "button" || !button.Props.HasClass("toc-trigger-button") {
		t.Errorf("unexpected button attributes %+v", button.Props.Attrs())
	}
	if hast.TextContent(button) != "≡" {
		t.Errorf("expected glyph label, got %q", hast.TextContent(button))
	}
	if !script.IsElement("script") || len(script.Children) != 0 {
		t.Fatalf("expected empty script element, got %+v", script)
	}

	if got := decodeScriptSrc(t, script); got != wantToggleScript {
		t.Errorf("decoded script mismatch:\n got %q\nwant %q", got, wantToggleScript)
	}
}

func TestTOCTriggerStage_PayloadEncoding(t *testing.T) {
	script := ScriptElement(TOCToggleScript("btn-1"))
	want := ScriptDataURIPrefix + base64.StdEncoding.EncodeToString([]byte(wantToggleScript))
	if got := script.Props.Value("src"); got != want {
		t.Errorf("unexpected src:\n got %s\nwant %s", got, want)
	}
}

func TestTOCTriggerStage_NoTOCIsNoop(t *testing.T) {
	tree := hast.NewRoot(
		hast.NewElement("nav", hast.NewText("site nav")).AddClass("menu"),
		hast.NewElement("h2", hast.NewText("Title")).Set("id", "title"),
	)
	before := tree.Clone()

	out, err := (&TOCTriggerStage{IDs: &SequenceGenerator{Prefix: "x"}}).Apply(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hast.Equal(out, before) {
		t.Error("expected tree unchanged when there is no toc")
	}
}

func TestTOCTriggerStage_MatchesClassAmongOthers(t *testing.T) {
	nav := hast.NewElement("nav").AddClass("sidebar", "toc")
	tree := hast.NewRoot(nav)
	(&TOCTriggerStage{IDs: &SequenceGenerator{Prefix: "b"}, Label: "Contents"}).Apply(tree)
	if len(nav.Children) != 2 || hast.TextContent(nav.Children[0]) != "Contents" {
		t.Errorf("expected custom label button, got %+v", nav.Children)
	}
}
