package rehype

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// StageConfig names one stage and its options.
type StageConfig struct {
	Name    string         `yaml:"name" json:"name"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// PipelineFile is the YAML layout of a pipeline config file.
type PipelineFile struct {
	Stages []StageConfig `yaml:"stages"`
}

// DefaultComponentStyles is what a components stage applies when its config
// gives no styles.
func DefaultComponentStyles() map[string]string {
	return map[string]string{
		"h1": "background-color: tomato",
		"a":  "color: white",
	}
}

// DefaultStages is the stage list used when no config file is given.
// The components stage is opt-in: list it in a pipeline config to enable
// DefaultComponentStyles.
func DefaultStages() []StageConfig {
	return []StageConfig{
		{Name: "slug"},
		{Name: "autolink-headings", Options: map[string]any{"class": "anchor"}},
		{Name: "toc", Options: map[string]any{"placement": string(PlaceStart)}},
		{Name: "toc-trigger"},
		{Name: "code", Options: map[string]any{
			"ignore_missing":    true,
			"show_line_numbers": true,
			"copy_button":       true,
		}},
	}
}

// ParseStages decodes a pipeline YAML document.
func ParseStages(data []byte) ([]StageConfig, error) {
	var f PipelineFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}
	if len(f.Stages) == 0 {
		return nil, fmt.Errorf("parse pipeline config: no stages listed")
	}
	return f.Stages, nil
}

type stageFactory func(opts options, ids IDGenerator) (Stage, error)

var registry = map[string]stageFactory{
	"slug": func(o options, _ IDGenerator) (Stage, error) {
		return &SlugStage{Prefix: o.str("prefix", "")}, nil
	},
	"autolink-headings": func(o options, _ IDGenerator) (Stage, error) {
		return &AutolinkStage{Class: o.str("class", "anchor")}, nil
	},
	"toc": func(o options, _ IDGenerator) (Stage, error) {
		p, err := ParsePlacement(o.str("placement", ""))
		if err != nil {
			return nil, err
		}
		return &TOCStage{
			Placement: p,
			Marker:    o.str("marker", "toc"),
			Title:     o.str("title", ""),
			MinDepth:  o.integer("min_depth", 1),
			MaxDepth:  o.integer("max_depth", 6),
		}, nil
	},
	"toc-trigger": func(o options, ids IDGenerator) (Stage, error) {
		return &TOCTriggerStage{IDs: ids, Label: o.str("label", "≡")}, nil
	},
	"code": func(o options, ids IDGenerator) (Stage, error) {
		return &CodeStage{
			IDs:             ids,
			IgnoreMissing:   o.boolean("ignore_missing", false),
			ShowLineNumbers: o.boolean("show_line_numbers", false),
			CopyButton:      o.boolean("copy_button", true),
		}, nil
	},
	"components": func(o options, _ IDGenerator) (Stage, error) {
		if _, ok := o["styles"]; !ok {
			return &ComponentsStage{Styles: DefaultComponentStyles()}, nil
		}
		return &ComponentsStage{Styles: o.stringMap("styles")}, nil
	},
}

// StageNames lists the registered stage names.
func StageNames() []string {
	return []string{"slug", "autolink-headings", "toc", "toc-trigger", "code", "components"}
}

// Build resolves configs into a validated pipeline. A nil ids uses
// UUIDGenerator.
func Build(configs []StageConfig, ids IDGenerator) (*Pipeline, error) {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	stages := make([]Stage, 0, len(configs))
	for _, c := range configs {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, c.Name)
		}
		st, err := factory(options(c.Options), ids)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		stages = append(stages, st)
	}
	return NewPipeline(stages...)
}

// options reads loosely typed YAML values with defaults.
type options map[string]any

func (o options) str(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return def
}

func (o options) boolean(key string, def bool) bool {
	switch v := o[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "yes" || v == "1"
	}
	return def
}

func (o options) integer(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func (o options) stringMap(key string) map[string]string {
	out := map[string]string{}
	switch m := o[key].(type) {
	case map[string]any:
		for k, v := range m {
			out[k] = fmt.Sprint(v)
		}
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
