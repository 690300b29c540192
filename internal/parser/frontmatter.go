package parser

import (
	"fmt"
	"strings"
	"time"
)

// FrontMatter is the metadata block at the top of a post.
type FrontMatter struct {
	Title       string         `json:"title"`
	Date        time.Time      `json:"date,omitzero"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Draft       bool           `json:"draft,omitempty"`
	Extra       map[string]any `json:"-"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FrontMatterFromMap reads the known keys of a decoded YAML block. Unknown
// keys are kept in Extra.
func FrontMatterFromMap(m map[string]any) (FrontMatter, error) {
	var fm FrontMatter
	for k, v := range m {
		switch strings.ToLower(k) {
		case "title":
			fm.Title = fmt.Sprint(v)
		case "description", "summary":
			fm.Description = fmt.Sprint(v)
		case "draft":
			b, ok := v.(bool)
			if !ok {
				return fm, fmt.Errorf("front matter: draft must be a boolean, got %T", v)
			}
			fm.Draft = b
		case "tags":
			fm.Tags = toStrings(v)
		case "date":
			d, err := parseDate(v)
			if err != nil {
				return fm, fmt.Errorf("front matter: %w", err)
			}
			fm.Date = d
		default:
			if fm.Extra == nil {
				fm.Extra = make(map[string]any)
			}
			fm.Extra[k] = v
		}
	}
	return fm, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(d)); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", d)
	}
	return time.Time{}, fmt.Errorf("date must be a string, got %T", v)
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case []string:
		return t
	case string:
		var out []string
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
