// Package shadowbranch synthesizes the shadow branch inserted after an if
// statement whose condition makes the two runs diverge (pc flips from
// false to true): a second copy of the branch, restricted to the
// assignments of dynamically shadow-tracked variables, each rewritten to
// update that variable's shadow-distance auxiliary instead of the
// variable itself.
//
// Grounded directly on _ShadowBranchGenerator in core.py.
package shadowbranch

import (
	"fmt"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/replacer"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

// Generate builds the shadow-branch block from body, keeping only the
// top-level assignments to variables named in shadowVariables (every
// other top-level statement is dropped — the original's TODO that array
// references aren't supported here still applies, since this grammar's
// shadow-distance auxiliaries are always scalars) and rewriting each
// surviving assignment's right-hand side to
// `replace(rvalue, shadow) - lvalue`, renaming the left-hand side to the
// variable's shadow-distance auxiliary.
//
// env is the type environment as it stood entering the branch being
// shadowed; it is read, never mutated.
func Generate(body *cast.Block, shadowVariables map[string]bool, env *typeenv.Env) (*cast.Block, error) {
	if body == nil {
		return &cast.Block{}, nil
	}

	out := &cast.Block{}
	for _, stmt := range body.Stmts {
		assign, ok := stmt.(*cast.Assign)
		if !ok {
			continue
		}
		lvalue, ok := assign.Lvalue.(*cast.Ident)
		if !ok || !shadowVariables[lvalue.Name] {
			continue
		}

		replaced, err := replacer.Replace(assign.Rvalue, env, replacer.Shadow)
		if err != nil {
			return nil, fmt.Errorf("shadowbranch: %s: %w", lvalue.Name, err)
		}

		out.Stmts = append(out.Stmts, &cast.Assign{
			Lvalue: &cast.Ident{Name: distgen.ShadowAuxName(lvalue.Name), Pos: assign.Pos},
			Rvalue: &cast.BinaryOp{
				Op:    "-",
				Left:  replaced,
				Right: &cast.Ident{Name: lvalue.Name, Pos: assign.Pos},
				Pos:   assign.Pos,
			},
			Pos: assign.Pos,
		})
	}
	return out, nil
}

// ShadowTrackedVariables returns the set of variable names whose shadow
// distance is Star in env — the set the original recomputes inline as
// `{name for name, (_, shadow) in self._types.variables() if shadow == '*'}`
// each time a diverging branch is instrumented.
func ShadowTrackedVariables(env *typeenv.Env) map[string]bool {
	out := make(map[string]bool)
	for _, name := range env.Variables() {
		_, shadow, ok := env.Get(name)
		if ok && shadow.Star {
			out[name] = true
		}
	}
	return out
}
