package hast

import (
	"slices"
	"strings"
)

// Attr is a single string-valued attribute.
type Attr struct {
	Key string
	Val string
}

// Properties holds element attributes. The class attribute is kept as a
// list of names; every other attribute is a string, in insertion order.
type Properties struct {
	class []string
	attrs []Attr
}

// Get returns the attribute value. For "class" it returns the
// space-joined class list.
func (p *Properties) Get(key string) (string, bool) {
	key = strings.ToLower(key)
	if key == "class" {
		if len(p.class) == 0 {
			return "", false
		}
		return strings.Join(p.class, " "), true
	}
	for _, a := range p.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Value returns the attribute value or "".
func (p *Properties) Value(key string) string {
	v, _ := p.Get(key)
	return v
}

func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Set stores an attribute, replacing any previous value. Setting "class"
// replaces the class list with the whitespace-separated names in value.
func (p *Properties) Set(key, value string) {
	key = strings.ToLower(key)
	if key == "class" {
		p.class = strings.Fields(value)
		return
	}
	for i := range p.attrs {
		if p.attrs[i].Key == key {
			p.attrs[i].Val = value
			return
		}
	}
	p.attrs = append(p.attrs, Attr{Key: key, Val: value})
}

func (p *Properties) Delete(key string) {
	key = strings.ToLower(key)
	if key == "class" {
		p.class = nil
		return
	}
	p.attrs = slices.DeleteFunc(p.attrs, func(a Attr) bool { return a.Key == key })
}

// Classes returns a copy of the class list.
func (p *Properties) Classes() []string {
	return slices.Clone(p.class)
}

func (p *Properties) HasClass(name string) bool {
	return slices.Contains(p.class, name)
}

// AddClass appends names not already present.
func (p *Properties) AddClass(names ...string) {
	for _, name := range names {
		if name != "" && !p.HasClass(name) {
			p.class = append(p.class, name)
		}
	}
}

// Attrs returns every attribute in render order, class first.
func (p *Properties) Attrs() []Attr {
	out := make([]Attr, 0, len(p.attrs)+1)
	if len(p.class) > 0 {
		out = append(out, Attr{Key: "class", Val: strings.Join(p.class, " ")})
	}
	return append(out, p.attrs...)
}

func (p *Properties) Len() int {
	n := len(p.attrs)
	if len(p.class) > 0 {
		n++
	}
	return n
}

func (p Properties) Clone() Properties {
	return Properties{class: slices.Clone(p.class), attrs: slices.Clone(p.attrs)}
}

func (p Properties) Equal(o Properties) bool {
	return slices.Equal(p.class, o.class) && slices.Equal(p.attrs, o.attrs)
}
