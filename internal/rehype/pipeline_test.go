package rehype

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/mdxblog/internal/hast"
)

func sampleDoc() *hast.Node {
	return hast.NewRoot(
		hast.NewElement("h1", hast.NewText("My Post")),
		hast.NewElement("p", hast.NewText("Intro.")),
		hast.NewElement("h2", hast.NewText("Install")),
		hast.NewElement("pre", hast.NewElement("code", hast.NewText("go get ./...\n")).AddClass("language-sh")),
		hast.NewElement("h3", hast.NewText("Linux")),
		hast.NewElement("h2", hast.NewText("Install")),
	)
}

func defaultPipeline(t *testing.T, ids IDGenerator) *Pipeline {
	t.Helper()
	p, err := Build(DefaultStages(), ids)
	if err != nil {
		t.Fatalf("build default pipeline: %v", err)
	}
	return p
}

func TestPipeline_DefaultOrder(t *testing.T) {
	p := defaultPipeline(t, nil)
	if got := p.String(); got != "slug -> autolink-headings -> toc -> toc-trigger -> code" {
		t.Errorf("unexpected stage order %q", got)
	}
}

func TestPipeline_RejectsBadOrder(t *testing.T) {
	_, err := NewPipeline(&TOCStage{}, &SlugStage{})
	if !errors.Is(err, ErrStageOrder) {
		t.Fatalf("expected ErrStageOrder, got %v", err)
	}
	_, err = NewPipeline(&SlugStage{}, &TOCTriggerStage{}, &TOCStage{})
	if !errors.Is(err, ErrStageOrder) {
		t.Fatalf("expected ErrStageOrder for trigger before toc, got %v", err)
	}
}

func TestPipeline_TriggerWithoutTOCIsNoop(t *testing.T) {
	p, err := Build([]StageConfig{{Name: "slug"}, {Name: "toc-trigger"}}, &SequenceGenerator{Prefix: "id"})
	if err != nil {
		t.Fatalf("expected trigger without toc to build, got %v", err)
	}
	tree := sampleDoc()
	want := tree.Clone()
	if _, err := (&SlugStage{}).Apply(want); err != nil {
		t.Fatal(err)
	}

	out, err := p.Run(context.Background(), tree)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !hast.Equal(out, want) {
		got, _ := hast.RenderString(out)
		t.Errorf("expected only slugs added, got %s", got)
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	p := defaultPipeline(t, &SequenceGenerator{Prefix: "id"})
	tree := sampleDoc()
	out, err := p.Run(context.Background(), tree)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != tree {
		t.Error("expected the same root back")
	}

	if got := strings.Join(ids(tree), ","); got != "my-post,install,linux,install-1" {
		t.Errorf("unexpected heading ids %q", got)
	}
	if !IsTOC(tree.Children[0]) {
		t.Fatal("expected toc at start")
	}

	html, err := hast.RenderString(tree)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<h2 id="install"><a class="anchor" href="#install">Install</a></h2>`,
		`<a class="toc-link toc-link-h3" href="#linux">Linux</a>`,
		`<button class="toc-trigger-button" type="button" id="id-1">≡</button>`,
		`<button class="code-copy-button" type="button" id="id-2">Copy</button>`,
		`<pre class="line-numbers">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %s\n%s", want, html)
		}
	}
}

func TestPipeline_DeterministicExceptControlIDs(t *testing.T) {
	p := defaultPipeline(t, UUIDGenerator{})

	a, b := sampleDoc(), sampleDoc()
	if _, err := p.Run(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	if strings.Join(ids(a), ",") != strings.Join(ids(b), ",") {
		t.Errorf("expected identical slugs, got %v vs %v", ids(a), ids(b))
	}

	navA, navB := hast.Find(a, IsTOC), hast.Find(b, IsTOC)
	if !hast.Equal(navA.Children[0], navB.Children[0]) {
		t.Error("expected identical toc lists")
	}

	btnA := hast.Find(navA, func(n *hast.Node) bool { return n.IsElement("button") })
	btnB := hast.Find(navB, func(n *hast.Node) bool { return n.IsElement("button") })
	if btnA.Props.Value("id") == btnB.Props.Value("id") {
		t.Errorf("expected distinct trigger ids, both %q", btnA.Props.Value("id"))
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	p := defaultPipeline(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, sampleDoc()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPipeline_EmptyTree(t *testing.T) {
	p := defaultPipeline(t, &SequenceGenerator{Prefix: "e"})
	tree, err := p.Run(context.Background(), hast.NewRoot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsTOC(tree.Children[0]) {
		t.Error("expected an empty toc even without headings")
	}
}

func TestPipeline_ErrorNamesStage(t *testing.T) {
	p, err := NewPipeline(&CodeStage{IDs: &SequenceGenerator{}})
	if err != nil {
		t.Fatal(err)
	}
	pre := hast.NewElement("pre", hast.NewElement("code", hast.NewText("x")).AddClass("language-nope"))
	_, err = p.Run(context.Background(), hast.NewRoot(pre))
	if err == nil || !strings.Contains(err.Error(), "stage code") {
		t.Errorf("expected error naming the stage, got %v", err)
	}
}
