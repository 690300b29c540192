package hast

import (
	"strings"
	"testing"
)

func TestProperties_ClassIsAList(t *testing.T) {
	n := NewElement("nav")
	n.Set("class", "toc  wide")
	n.AddClass("toc", "dark")

	got := n.Props.Classes()
	want := []string{"toc", "wide", "dark"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected classes %v, got %v", want, got)
	}
	if v := n.Props.Value("class"); v != "toc wide dark" {
		t.Errorf("expected joined class %q, got %q", "toc wide dark", v)
	}
	if !n.Props.HasClass("wide") {
		t.Error("expected HasClass(wide)")
	}
}

func TestProperties_SetReplacesAndKeepsOrder(t *testing.T) {
	var p Properties
	p.Set("id", "a")
	p.Set("href", "#x")
	p.Set("ID", "b")

	attrs := p.Attrs()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0] != (Attr{Key: "id", Val: "b"}) {
		t.Errorf("expected id=b first, got %+v", attrs[0])
	}
	p.Delete("id")
	if p.Has("id") {
		t.Error("expected id to be deleted")
	}
}

func TestProperties_KeysAreCaseInsensitive(t *testing.T) {
	var p Properties
	p.Set("ID", "intro")
	if v, ok := p.Get("ID"); !ok || v != "intro" {
		t.Errorf("expected Get(ID) to find intro, got %q %v", v, ok)
	}
	if v := p.Value("id"); v != "intro" {
		t.Errorf("expected Value(id) to find intro, got %q", v)
	}
	p.Set("Class", "toc")
	if !p.HasClass("toc") || !p.Has("CLASS") {
		t.Error("expected class lookup to ignore case")
	}
	p.Delete("Id")
	p.Delete("CLASS")
	if p.Has("id") || len(p.Classes()) != 0 {
		t.Errorf("expected mixed-case deletes to remove attrs, got %+v", p.Attrs())
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		node *Node
		want int
	}{
		{NewElement("h1"), 1},
		{NewElement("H6"), 6},
		{NewElement("h7"), 0},
		{NewElement("hr"), 0},
		{NewElement("p"), 0},
		{NewText("h2"), 0},
	}
	for _, tt := range tests {
		if got := HeadingLevel(tt.node); got != tt.want {
			t.Errorf("HeadingLevel(%s %q) = %d, want %d", tt.node.Type, tt.node.Tag+tt.node.Value, got, tt.want)
		}
	}
}

func TestTextContent_Nested(t *testing.T) {
	h := NewElement("h2",
		NewText("Hello "),
		NewElement("code", NewText("world")),
		NewComment("ignored"),
		NewText("!"),
	)
	if got := TextContent(h); got != "Hello world!" {
		t.Errorf("expected %q, got %q", "Hello world!", got)
	}
}

func TestCloneAndEqual(t *testing.T) {
	orig := NewRoot(NewElement("p", NewText("a")).Set("id", "x"))
	cp := orig.Clone()
	if !Equal(orig, cp) {
		t.Fatal("expected clone to be equal")
	}
	cp.Children[0].Set("id", "y")
	if Equal(orig, cp) {
		t.Error("expected mutation of clone to break equality")
	}
	if orig.Children[0].Props.Value("id") != "x" {
		t.Error("expected original to be untouched")
	}
}

func TestInsertAt(t *testing.T) {
	root := NewRoot(NewText("a"), NewText("c"))
	root.InsertAt(1, NewText("b"))
	root.InsertAt(99, NewText("d"))
	root.InsertAt(-3, NewText("_"))
	if got := TextContent(root); got != "_abcd" {
		t.Errorf("expected %q, got %q", "_abcd", got)
	}
}

func TestVisit_DocumentOrderAndSkip(t *testing.T) {
	root := NewRoot(
		NewElement("h1", NewText("one")),
		NewElement("nav", NewElement("h2", NewText("hidden"))),
		NewElement("h2", NewText("two")),
	)
	var seen []string
	VisitElements(root, IsHeading, func(n, _ *Node, _ int) Action {
		seen = append(seen, TextContent(n))
		return Continue
	})
	if strings.Join(seen, ",") != "one,hidden,two" {
		t.Errorf("unexpected visit order %v", seen)
	}

	seen = nil
	Visit(root, func(n, _ *Node, _ int) Action {
		if n.IsElement("nav") {
			return SkipChildren
		}
		if IsHeading(n) {
			seen = append(seen, TextContent(n))
		}
		return Continue
	})
	if strings.Join(seen, ",") != "one,two" {
		t.Errorf("expected nav subtree skipped, got %v", seen)
	}
}

func TestFind_StopsAtFirst(t *testing.T) {
	root := NewRoot(NewElement("p", NewText("a")), NewElement("p", NewText("b")))
	p := Find(root, func(n *Node) bool { return n.IsElement("p") })
	if p == nil || TextContent(p) != "a" {
		t.Fatalf("expected first paragraph, got %+v", p)
	}
	if Find(root, func(n *Node) bool { return n.IsElement("table") }) != nil {
		t.Error("expected nil for missing element")
	}
}
