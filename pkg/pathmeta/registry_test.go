package pathmeta

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyloft/storyloft/pkg/metadata"
	"github.com/stretchr/testify/assert"
)

type fakeParser struct {
	name     string
	priority int
	applies  bool
	fragment metadata.Fragment
	err      error
	panics   bool
	calls    int
}

func (p *fakeParser) Name() string          { return p.name }
func (p *fakeParser) Priority() int         { return p.priority }
func (p *fakeParser) Applies(in Input) bool { return p.applies }

func (p *fakeParser) Extract(in Input) (metadata.Fragment, error) {
	p.calls++
	if p.panics {
		panic("boom")
	}
	return p.fragment, p.err
}

func testContext() context.Context {
	return logger.New().WithContext(context.Background())
}

func TestRegistry_PriorityOrder(t *testing.T) {
	t.Parallel()

	low := &fakeParser{name: "low", priority: 1, applies: true, fragment: metadata.Fragment{"title": "low"}}
	high := &fakeParser{name: "high", priority: 10, applies: true, fragment: metadata.Fragment{"title": "high"}}

	registry := NewRegistry(low, high)
	fragment := registry.Parse(testContext(), Input{Filename: "x.pdf"})

	assert.Equal(t, "high", fragment[metadata.FieldTitle])
	assert.Equal(t, "high", fragment[metadata.FieldParserUsed])
	assert.Zero(t, low.calls)
}

func TestRegistry_StableTies(t *testing.T) {
	t.Parallel()

	first := &fakeParser{name: "first", priority: 5, applies: true, fragment: metadata.Fragment{"title": "first"}}
	second := &fakeParser{name: "second", priority: 5, applies: true, fragment: metadata.Fragment{"title": "second"}}

	registry := NewRegistry(first, second)
	fragment := registry.Parse(testContext(), Input{})

	assert.Equal(t, "first", fragment[metadata.FieldTitle])
}

func TestRegistry_SkipsInapplicableAndEmpty(t *testing.T) {
	t.Parallel()

	inapplicable := &fakeParser{name: "inapplicable", priority: 10, applies: false, fragment: metadata.Fragment{"title": "nope"}}
	empty := &fakeParser{name: "empty", priority: 5, applies: true, fragment: metadata.Fragment{}}
	winner := &fakeParser{name: "winner", priority: 1, applies: true, fragment: metadata.Fragment{"title": "yes"}}

	registry := NewRegistry(inapplicable, empty, winner)
	fragment := registry.Parse(testContext(), Input{})

	assert.Equal(t, "yes", fragment[metadata.FieldTitle])
	assert.Zero(t, inapplicable.calls)
	assert.Equal(t, 1, empty.calls)
}

func TestRegistry_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	panicky := &fakeParser{name: "panicky", priority: 10, applies: true, panics: true}
	fallback := &fakeParser{name: "fallback", priority: 1, applies: true, fragment: metadata.Fragment{"title": "ok"}}

	registry := NewRegistry(panicky, fallback)
	fragment := registry.Parse(testContext(), Input{})

	assert.Equal(t, "ok", fragment[metadata.FieldTitle])
	assert.Equal(t, 1, panicky.calls)
}

func TestRegistry_SkipsErroringParser(t *testing.T) {
	t.Parallel()

	failing := &fakeParser{name: "failing", priority: 10, applies: true, err: errors.New("broken")}
	fallback := &fakeParser{name: "fallback", priority: 1, applies: true, fragment: metadata.Fragment{"title": "ok"}}

	registry := NewRegistry(failing, fallback)
	fragment := registry.Parse(testContext(), Input{})

	assert.Equal(t, "ok", fragment[metadata.FieldTitle])
}

func TestRegistry_NoParserMatches(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(&fakeParser{name: "inapplicable", applies: false})

	assert.Nil(t, registry.Parse(testContext(), Input{}))
}
