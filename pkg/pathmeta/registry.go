package pathmeta

import (
	"context"
	"fmt"
	"sort"

	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/metadata"
)

// Input is what a custom parser gets to look at: the full file path, the bare
// filename, and the containing folder.
type Input struct {
	Path     string
	Filename string
	Folder   string
}

// Parser is one pluggable extraction strategy. Applies is a cheap
// applicability test; Extract runs only when Applies returned true.
type Parser interface {
	Name() string
	Priority() int
	Applies(in Input) bool
	Extract(in Input) (metadata.Fragment, error)
}

// Registry holds custom parsers in priority-descending order. It is built up
// front and injected into the pipeline; it is not safe for concurrent
// registration during a run.
type Registry struct {
	parsers []Parser
}

// NewRegistry returns a registry preloaded with the given parsers.
func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register adds a parser, keeping the list sorted by priority descending.
// Ties keep registration order.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
	sort.SliceStable(r.parsers, func(i, j int) bool {
		return r.parsers[i].Priority() > r.parsers[j].Priority()
	})
}

// Parsers returns the parsers in traversal order.
func (r *Registry) Parsers() []Parser {
	return r.parsers
}

// Parse runs the registry against an input. The first applicable parser whose
// extraction yields a non-empty fragment wins; the rest are not consulted. A
// parser that errors or panics is logged and skipped.
func (r *Registry) Parse(ctx context.Context, in Input) metadata.Fragment {
	log := logger.FromContext(ctx)

	for _, p := range r.parsers {
		if !p.Applies(in) {
			continue
		}
		fragment, err := extract(p, in)
		if err != nil {
			log.Warn("custom parser failed", logger.Data{"parser": p.Name(), "path": in.Path, "err": err.Error()})
			continue
		}
		if len(fragment) == 0 {
			continue
		}
		fragment[metadata.FieldParserUsed] = p.Name()
		return fragment
	}

	return nil
}

// extract isolates a parser call so a panic inside one strategy becomes an
// error instead of taking down the run.
func extract(p Parser, in Input) (fragment metadata.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return p.Extract(in)
}
