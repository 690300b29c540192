// Package rehype implements the ordered tree transforms applied to every
// post: heading slugs, heading anchors, table of contents, the TOC toggle
// button and code block enhancement.
//
// Stages mutate the tree in place. A stage declares the capabilities it
// needs from earlier stages and the ones it provides, and NewPipeline
// refuses orderings that break those dependencies.
package rehype

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgallion1/mdxblog/internal/hast"
)

var (
	ErrStageOrder   = errors.New("stage order violates dependencies")
	ErrUnknownStage = errors.New("unknown stage")
)

// Capability is a property of the tree that a stage guarantees once it has
// run.
type Capability string

const (
	CapSlugs      Capability = "slugs"
	CapAnchors    Capability = "anchors"
	CapTOC        Capability = "toc"
	CapTOCTrigger Capability = "toc-trigger"
	CapCode       Capability = "code"
	CapComponents Capability = "components"
)

// Stage is one named transform.
type Stage interface {
	Name() string
	Requires() []Capability
	Provides() []Capability
	Apply(tree *hast.Node) (*hast.Node, error)
}

// Follower is implemented by stages that must run after any stage
// providing the listed capabilities, without requiring such a stage to be
// present.
type Follower interface {
	After() []Capability
}

// Pipeline runs stages in a fixed, validated order.
type Pipeline struct {
	stages []Stage
}

// NewPipeline validates that every stage's requirements are provided by a
// stage before it, and that no stage a Follower runs after comes later.
func NewPipeline(stages ...Stage) (*Pipeline, error) {
	have := map[Capability]string{}
	for i, s := range stages {
		if f, ok := s.(Follower); ok {
			for _, later := range stages[i+1:] {
				for _, p := range later.Provides() {
					if slices.Contains(f.After(), p) {
						return nil, fmt.Errorf("%w: stage %d %q must run after %q", ErrStageOrder, i, s.Name(), later.Name())
					}
				}
			}
		}
		for _, req := range s.Requires() {
			if _, ok := have[req]; !ok {
				return nil, fmt.Errorf("%w: stage %d %q requires %q", ErrStageOrder, i, s.Name(), req)
			}
		}
		for _, p := range s.Provides() {
			have[p] = s.Name()
		}
	}
	return &Pipeline{stages: stages}, nil
}

// Names returns the stage names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

func (p *Pipeline) String() string {
	return strings.Join(p.Names(), " -> ")
}

// Run applies every stage to tree. It stops at the first error, or when
// ctx is cancelled between stages.
func (p *Pipeline) Run(ctx context.Context, tree *hast.Node) (*hast.Node, error) {
	if tree == nil {
		return nil, errors.New("nil tree")
	}
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := s.Apply(tree)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		tree = out
	}
	return tree, nil
}
