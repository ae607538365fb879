// Assignment rule: while pc holds, first emits the shadow-side update
// `x^shadow = x + x^shadow - rvalue` for the assigned variable (keeping
// its shadow-distance aux consistent with the divergent branch it sits
// in); then checks whether the assignment invalidates any other
// variable's recorded distance by actually depending on the assigned
// name, promoting that variable's distance to Star and running the
// Instrumentation rule when it does; finally computes the assigned
// variable's own new distance from the right-hand side (T-Asgn).
//
// Grounded on visit_Assignment in core.py.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

func (s *state) visitAssign(block *cast.Block, idx int, assign *cast.Assign) (int, error) {
	name, err := lvalueName(assign.Lvalue)
	if err != nil {
		return 0, &diag.UnsupportedConstruct{Pos: assign.Pos, Detail: err.Error()}
	}

	inserted := 0
	if s.loop == 0 {
		if s.pc {
			shadowVar := shadowDistanceLvalue(assign.Lvalue, name)
			rvalue := &cast.BinaryOp{
				Op:   "-",
				Left: &cast.BinaryOp{Op: "+", Left: assign.Lvalue, Right: shadowVar, Pos: assign.Pos},
				Right: assign.Rvalue, Pos: assign.Pos,
			}
			block.InsertAt(idx, &cast.Assign{Lvalue: shadowVar, Rvalue: rvalue, Pos: assign.Pos})
			inserted++
			idx++
		}

		n, err := s.promoteDependentDistances(block, idx, name, assign.Pos)
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	aligned, shadow, err := distgen.Generate(assign.Rvalue, s.env)
	if err != nil {
		return 0, &diag.UnsupportedConstruct{Pos: assign.Pos, Detail: err.Error()}
	}
	if s.pc {
		s.env.Set(name, typeenv.Distance{Expr: aligned}, typeenv.StarDistance)
	} else {
		s.env.Set(name, typeenv.Distance{Expr: aligned}, typeenv.Distance{Expr: shadow})
	}
	return inserted, nil
}

// promoteDependentDistances walks every in-scope, non-random variable's
// recorded distance looking for a reference to name (the variable about
// to be overwritten); a hit promotes that side's distance to Star (the
// old bound no longer holds once name changes) and, via the
// Instrumentation rule, emits whatever assume/materializing statements
// that promotion requires. Returns how many leading statements it
// inserted into block before idx.
func (s *state) promoteDependentDistances(block *cast.Block, idx int, name string, pos cast.Pos) (int, error) {
	before := s.env.Copy()
	promoted := false
	for _, varName := range s.env.Variables() {
		if s.randomVars[varName] {
			continue
		}
		aligned, shadow, _ := s.env.Get(varName)
		newAligned, newShadow := aligned, shadow
		if !aligned.Star && referencesVar(aligned.Expr, name) {
			newAligned = typeenv.StarDistance
		}
		if !s.noShadow && !shadow.Star && referencesVar(shadow.Expr, name) {
			newShadow = typeenv.StarDistance
		}
		if newAligned != aligned || newShadow != shadow {
			s.env.Set(varName, newAligned, newShadow)
			promoted = true
		}
	}
	if !promoted {
		return 0, nil
	}

	assumes, assigns, err := s.instrumentTransition(before, s.env, s.pc)
	if err != nil {
		return 0, err
	}
	insertAssumesAt(block, assumes)
	front := len(assumes)
	for i, stmt := range assigns {
		block.InsertAt(idx+front+i, stmt)
	}
	return front + len(assigns), nil
}

func referencesVar(expr cast.Expr, name string) bool {
	return cast.Contains(expr, func(e cast.Expr) bool {
		id, ok := e.(*cast.Ident)
		return ok && id.Name == name
	})
}

func lvalueName(lvalue cast.Expr) (string, error) {
	switch l := lvalue.(type) {
	case *cast.Ident:
		return l.Name, nil
	case *cast.ArrayRef:
		return l.Name, nil
	default:
		return "", errUnsupportedLvalue
	}
}

var errUnsupportedLvalue = unsupportedLvalueError{}

type unsupportedLvalueError struct{}

func (unsupportedLvalueError) Error() string { return "unsupported assignment target" }

func shadowDistanceLvalue(lvalue cast.Expr, name string) cast.Expr {
	switch l := lvalue.(type) {
	case *cast.ArrayRef:
		return &cast.ArrayRef{Name: distgen.ShadowAuxName(name), Index: cast.CloneExpr(l.Index), Pos: l.Pos}
	default:
		return shadowAuxVar(name)
	}
}
