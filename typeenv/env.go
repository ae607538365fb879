package typeenv

import (
	"fmt"
	"strings"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/exprutil"
)

// pair holds the two distances tracked for one variable.
type pair struct {
	aligned Distance
	shadow  Distance
}

// Env is Γ: an insertion-ordered map from variable name to its (aligned,
// shadow) distance pair.
type Env struct {
	order   []string
	entries map[string]pair
}

// New returns an empty environment.
func New() *Env {
	return &Env{entries: make(map[string]pair)}
}

// Contains reports whether name has a recorded distance.
func (e *Env) Contains(name string) bool {
	_, ok := e.entries[name]
	return ok
}

// Len reports the number of tracked variables.
func (e *Env) Len() int {
	return len(e.order)
}

// Variables returns the tracked variable names in insertion order.
func (e *Env) Variables() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Set records (or overwrites) the aligned and shadow distances for name,
// appending it to the insertion order the first time it's seen.
func (e *Env) Set(name string, aligned, shadow Distance) {
	if _, ok := e.entries[name]; !ok {
		e.order = append(e.order, name)
	}
	e.entries[name] = pair{aligned: aligned, shadow: shadow}
}

// Get returns the (aligned, shadow) distance pair for name. ok is false
// when name has never been declared in this environment.
func (e *Env) Get(name string) (aligned, shadow Distance, ok bool) {
	p, found := e.entries[name]
	if !found {
		return Distance{}, Distance{}, false
	}
	return p.aligned, p.shadow, true
}

// GetRaw is an alias for Get kept for symmetry with the distance
// generator's terminology ("raw" as in "not yet rendered to source
// text") — every Distance in this package is already the raw AST form,
// since rendering only happens at String().
func (e *Env) GetRaw(name string) (aligned, shadow Distance, ok bool) {
	return e.Get(name)
}

// Copy returns a deep, independent clone of e.
func (e *Env) Copy() *Env {
	clone := &Env{
		order:   make([]string, len(e.order)),
		entries: make(map[string]pair, len(e.entries)),
	}
	copy(clone.order, e.order)
	for name, p := range e.entries {
		clone.entries[name] = pair{aligned: p.aligned.clone(), shadow: p.shadow.clone()}
	}
	return clone
}

// Apply specializes every tracked variable's distance to the branch of
// cond actually taken: any ternary subexpression whose condition equals
// cond collapses to its IfTrue arm (isTrue) or IfFalse arm otherwise, per
// §4.5's post-branch merge step. Star distances are left untouched.
//
// Grounded on _DistanceSimplifier.simplify in typesystem.py, rebuilt atop
// exprutil.ApplyCondition instead of a dedicated NodeVisitor subclass.
func (e *Env) Apply(cond cast.Expr, isTrue bool) {
	for name, p := range e.entries {
		next := p
		if !p.aligned.Star {
			next.aligned = Distance{Expr: exprutil.ApplyCondition(p.aligned.Expr, cond, isTrue)}
		}
		if !p.shadow.Star {
			next.shadow = Distance{Expr: exprutil.ApplyCondition(p.shadow.Expr, cond, isTrue)}
		}
		e.entries[name] = next
	}
}

// Diff reports every (name, isAligned) pair whose distance differs
// between e and other, or that exists in other but not in e (reported
// for both sides). Mirrors TypeSystem.diff: a variable missing from e
// entirely is reported as differing on both its aligned and shadow
// distance, since the caller (an if-merge) must widen both to Star.
func (e *Env) Diff(other *Env) []VarSide {
	var out []VarSide
	for _, name := range other.order {
		otherPair := other.entries[name]
		p, ok := e.entries[name]
		if !ok {
			out = append(out, VarSide{Name: name, Aligned: true}, VarSide{Name: name, Aligned: false})
			continue
		}
		if !p.aligned.Equal(otherPair.aligned) {
			out = append(out, VarSide{Name: name, Aligned: true})
		}
		if !p.shadow.Equal(otherPair.shadow) {
			out = append(out, VarSide{Name: name, Aligned: false})
		}
	}
	return out
}

// VarSide names one side (aligned or shadow) of one variable's distance.
type VarSide struct {
	Name    string
	Aligned bool
}

// Merge widens e in place to be consistent with other: a variable absent
// from e is adopted wholesale from other; a variable present in both
// whose aligned (or shadow) distances disagree is widened to Star.
// Mirrors TypeSystem.merge, used to reconcile the two branches of an if
// statement into the environment that follows it.
func (e *Env) Merge(other *Env) {
	for _, name := range other.order {
		otherPair := other.entries[name]
		p, ok := e.entries[name]
		if !ok {
			e.order = append(e.order, name)
			e.entries[name] = pair{aligned: otherPair.aligned.clone(), shadow: otherPair.shadow.clone()}
			continue
		}
		merged := p
		if !(p.aligned.Star && otherPair.aligned.Star) && !p.aligned.Equal(otherPair.aligned) {
			merged.aligned = StarDistance
		}
		if !(p.shadow.Star && otherPair.shadow.Star) && !p.shadow.Equal(otherPair.shadow) {
			merged.shadow = StarDistance
		}
		e.entries[name] = merged
	}
}

// String renders Γ the way the original's TypeSystem.__str__ does, for
// trace-level logging: `{name: [aligned, shadow], ...}`.
func (e *Env) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range e.order {
		if i > 0 {
			sb.WriteString(", ")
		}
		p := e.entries[name]
		fmt.Fprintf(&sb, "%s: [%s, %s]", name, p.aligned.String(), p.shadow.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
