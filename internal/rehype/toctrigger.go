package rehype

import (
	"encoding/base64"
	"fmt"

	"github.com/dgallion1/mdxblog/internal/hast"
)

// ScriptDataURIPrefix starts the src of every injected script. Scripts are
// loaded from data URIs instead of inline text so pages keep working under
// a CSP that allows data: scripts but not inline ones.
const ScriptDataURIPrefix = "data:application/javascript;base64,"

// tocToggleScript must stay byte-for-byte stable; published pages and
// their tests compare the encoded payload.
const tocToggleScript = `
            document.getElementById("%s").addEventListener('click', (e) => {
              var btn = e.target;
              var nav = btn.closest('nav');
              var content = nav.querySelector('.toc-level-1');
              content.style.display = content.style.display === 'none' ? '' : 'none';
            });`

// TOCToggleScript returns the click handler source bound to buttonID.
func TOCToggleScript(buttonID string) string {
	return fmt.Sprintf(tocToggleScript, buttonID)
}

// ScriptElement returns a script element that loads source through a
// base64 data URI.
func ScriptElement(source string) *hast.Node {
	src := ScriptDataURIPrefix + base64.StdEncoding.EncodeToString([]byte(source))
	return hast.NewElement("script").Set("src", src)
}

// TOCTriggerStage appends a toggle button and its script to the table of
// contents. Documents without a TOC are left untouched.
type TOCTriggerStage struct {
	IDs IDGenerator
	// Label is the button text.
	Label string
}

func (*TOCTriggerStage) Name() string           { return "toc-trigger" }
func (*TOCTriggerStage) Requires() []Capability { return nil }
func (*TOCTriggerStage) Provides() []Capability { return []Capability{CapTOCTrigger} }
func (*TOCTriggerStage) After() []Capability    { return []Capability{CapTOC} }

func (s *TOCTriggerStage) Apply(tree *hast.Node) (*hast.Node, error) {
	label := s.Label
	if label == "" {
		label = "≡"
	}
	for _, nav := range hast.FindAll(tree, IsTOC) {
		id := s.IDs.NewID()
		button := hast.NewElement("button", hast.NewText(label)).
			Set("type", "button").
			AddClass("toc-trigger-button").
			Set("id", id)
		nav.Append(button, ScriptElement(TOCToggleScript(id)))
	}
	return tree, nil
}
