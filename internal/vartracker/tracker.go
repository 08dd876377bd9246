// Package vartracker implements the scoped variable allocator described
// in spec §4.6: a monotonic per-type identifier source, a lexical stack
// of visible bindings, and uniform-random selection among in-scope
// candidates via a seedable PRNG.
package vartracker

import "github.com/statemindio/vyzzer-go/internal/vyptype"

// Variable is a single binding: its generated identifier, its type,
// whether it lives in storage scope, and — for locals — the block level
// at which it was registered. Global is tracked explicitly rather than
// inferred from Level, since a function's own parameters are locals
// registered at whatever block level the function body occupies, not
// necessarily a level distinct from 0.
type Variable struct {
	Name   string
	Type   vyptype.Type
	Global bool
	Level  int
}

// Tracker owns the variable-ID counters and the live-binding stack.
type Tracker struct {
	src    RandomSource
	nextID map[vyptype.Tag]int
	global []Variable
	local  []Variable
}

// New returns an empty tracker driven by src.
func New(src RandomSource) *Tracker {
	return &Tracker{
		src:    src,
		nextID: make(map[vyptype.Tag]int),
	}
}

// NextID returns a fresh, never-reused index for t's tag.
func (tr *Tracker) NextID(t vyptype.Type) int {
	id := tr.nextID[t.Tag()]
	tr.nextID[t.Tag()]++
	return id
}

// RegisterGlobal registers a storage-scope variable.
func (tr *Tracker) RegisterGlobal(name string, t vyptype.Type) {
	tr.global = append(tr.global, Variable{Name: name, Type: t, Global: true})
}

// RegisterLocal registers a function-scope variable at the given block
// level.
func (tr *Tracker) RegisterLocal(name string, level int, t vyptype.Type) {
	tr.local = append(tr.local, Variable{Name: name, Type: t, Level: level})
}

// GlobalVars returns every registered global of exactly t's type.
func (tr *Tracker) GlobalVars(t vyptype.Type) []Variable {
	var out []Variable
	key := t.Render()
	for _, v := range tr.global {
		if v.Type.Render() == key {
			out = append(out, v)
		}
	}
	return out
}

// AllowedVars returns every variable of t's type visible at level: all
// globals, plus locals registered at a depth <= level. A nil level means
// only globals are visible.
func (tr *Tracker) AllowedVars(level *int, t vyptype.Type) []Variable {
	out := tr.GlobalVars(t)
	if level == nil {
		return out
	}
	key := t.Render()
	for _, v := range tr.local {
		if v.Level <= *level && v.Type.Render() == key {
			out = append(out, v)
		}
	}
	return out
}

// ExitScope drops every local registered at a strictly greater level
// than the one being returned to — a block's variables never outlive
// it.
func (tr *Tracker) ExitScope(level int) {
	kept := tr.local[:0]
	for _, v := range tr.local {
		if v.Level <= level {
			kept = append(kept, v)
		}
	}
	tr.local = kept
}

// Choose returns a uniformly random variable of t's type visible at
// level, or false if none are in scope.
func (tr *Tracker) Choose(level *int, t vyptype.Type) (Variable, bool) {
	allowed := tr.AllowedVars(level, t)
	if len(allowed) == 0 {
		return Variable{}, false
	}
	return allowed[tr.src.Intn(len(allowed))], true
}
