package rehype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dgallion1/mdxblog/internal/hast"
)

var ErrUnknownLanguage = errors.New("unknown code language")

const copyScript = `
            document.getElementById("%s").addEventListener('click', (e) => {
              var pre = e.target.closest('pre');
              var code = pre.querySelector('code');
              navigator.clipboard.writeText(code.innerText);
            });`

// CopyScript returns the clipboard handler source bound to buttonID.
func CopyScript(buttonID string) string {
	return fmt.Sprintf(copyScript, buttonID)
}

// CodeStage highlights fenced code blocks, splits them into numbered lines
// and adds a copy button.
type CodeStage struct {
	IDs IDGenerator
	// IgnoreMissing treats unknown languages as plain text instead of
	// failing the document.
	IgnoreMissing   bool
	ShowLineNumbers bool
	CopyButton      bool
}

func (*CodeStage) Name() string           { return "code" }
func (*CodeStage) Requires() []Capability { return nil }
func (*CodeStage) Provides() []Capability { return []Capability{CapCode} }

// isCodeBlock matches pre elements wrapping a single code element.
func isCodeBlock(n *hast.Node) bool {
	return n.IsElement("pre") && codeChild(n) != nil
}

func codeChild(pre *hast.Node) *hast.Node {
	var code *hast.Node
	for _, c := range pre.Children {
		switch {
		case c.IsElement("code") && code == nil:
			code = c
		case c.Type == hast.TextNode && strings.TrimSpace(c.Value) == "":
		default:
			return nil
		}
	}
	return code
}

func (s *CodeStage) Apply(tree *hast.Node) (*hast.Node, error) {
	for _, pre := range hast.FindAll(tree, isCodeBlock) {
		if err := s.enhance(pre, codeChild(pre)); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// Language returns the name from a language-* (or lang-*) class.
func Language(code *hast.Node) string {
	for _, c := range code.Props.Classes() {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(c, "lang-"); ok {
			return lang
		}
	}
	return ""
}

func (s *CodeStage) lexer(lang string) (chroma.Lexer, error) {
	if lang == "" {
		return lexers.Fallback, nil
	}
	if l := lexers.Get(lang); l != nil {
		return l, nil
	}
	if s.IgnoreMissing {
		return lexers.Fallback, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}

func (s *CodeStage) enhance(pre, code *hast.Node) error {
	lexer, err := s.lexer(Language(code))
	if err != nil {
		return err
	}
	source := strings.TrimSuffix(hast.TextContent(code), "\n")
	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}

	var lines []*hast.Node
	for _, toks := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := hast.NewElement("span").AddClass("line")
		for _, tok := range toks {
			if tok.Value != "" {
				line.Append(tokenNode(tok))
			}
		}
		if len(line.Children) == 0 {
			continue
		}
		if s.ShowLineNumbers {
			line.Set("data-line-number", strconv.Itoa(len(lines)+1))
		}
		lines = append(lines, line)
	}
	code.Children = lines
	if s.ShowLineNumbers {
		pre.AddClass("line-numbers")
	}

	if s.CopyButton {
		id := s.IDs.NewID()
		button := hast.NewElement("button", hast.NewText("Copy")).
			Set("type", "button").
			AddClass("code-copy-button").
			Set("id", id)
		pre.Append(button, ScriptElement(CopyScript(id)))
	}
	return nil
}

func tokenNode(tok chroma.Token) *hast.Node {
	text := hast.NewText(tok.Value)
	cls := tokenClass(tok.Type)
	if cls == "" {
		return text
	}
	return hast.NewElement("span", text).AddClass(cls)
}

// tokenClass maps a token type to chroma's short CSS class, walking up to
// the parent category when the exact type has none.
func tokenClass(tt chroma.TokenType) string {
	for tt != 0 {
		if cls, ok := chroma.StandardTypes[tt]; ok {
			return cls
		}
		tt = tt.Parent()
	}
	return ""
}
