// Package scope tracks the variables visible inside a query body and each
// nested closure/FOR body through a plain push/pop frame stack.
package scope

import "github.com/ritamzico/gqlc/internal/types"

// VariableInfo describes one bound identifier: its inferred type, whether
// it was narrowed to a single element (e.g. by ::FIRST or a by-id start),
// the variable it was derived from (for diagnostics), and how many times
// it has been read.
type VariableInfo struct {
	Type           types.Type
	IsSingular     bool
	SourceVariable string
	ReferenceCount int
}

// Scope is a stack of variable frames. Each query gets a fresh Scope;
// pushing happens on every closure/FOR body and every nested traversal
// position; popping restores the enclosing frame and
// discards the inner bindings, so a closure parameter can never leak past
// its body.
type Scope struct {
	frames []map[string]*VariableInfo
}

// New returns a Scope with a single empty top-level frame.
func New() *Scope {
	return &Scope{frames: []map[string]*VariableInfo{{}}}
}

// Push opens a new nested frame (closure body, FOR body).
func (s *Scope) Push() {
	s.frames = append(s.frames, map[string]*VariableInfo{})
}

// Pop discards the innermost frame. It panics if called on the root frame,
// which is a programmer error in the analyzer, never a user-facing one.
func (s *Scope) Pop() {
	if len(s.frames) == 1 {
		panic("scope: Pop called on root frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Declare binds name in the innermost frame, shadowing any outer binding
// of the same name for the remainder of that frame's lifetime.
func (s *Scope) Declare(name string, info VariableInfo) {
	s.frames[len(s.frames)-1][name] = &info
}

// Lookup searches frames from innermost to outermost and returns the
// binding for name, incrementing its reference count on success.
func (s *Scope) Lookup(name string) (*VariableInfo, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			v.ReferenceCount++
			return v, true
		}
	}
	return nil, false
}

// Depth reports how many frames are currently pushed, for tests asserting
// balanced Push/Pop pairs.
func (s *Scope) Depth() int {
	return len(s.frames)
}
