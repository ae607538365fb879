// If rule: updates pc for the duration of both branches, transforms each
// branch under its own copy of Γ, then merges. Once both branches are
// transformed it asserts the aligned condition (or its negation) at the
// front of the branch it guards, synthesizes a parallel shadow branch
// the first time pc newly diverges, and applies the Instrumentation rule
// to both branches against the merged Γ.
//
// Grounded on visit_If in core.py. The aligned-condition capture is
// deliberately asymmetric, matching the original: the true-branch
// condition is captured against Γ right after entering the branch
// (before traversing it), the false-branch condition against whatever Γ
// the false branch traversal left behind.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/replacer"
	"github.com/shadowdp-go/shadowdp/shadowbranch"
	"github.com/shadowdp-go/shadowdp/smtbridge"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

func (s *state) visitIf(block *cast.Block, idx int, ifStmt *cast.If) (int, error) {
	beforePC := s.pc
	s.pc = s.updatePC(ifStmt.Cond)

	beforeTypes := s.env.Copy()

	s.pushAssumeScope()
	s.env.Apply(ifStmt.Cond, true)
	alignedTrueCond, err := replacer.Replace(cast.CloneExpr(ifStmt.Cond), s.env, replacer.Aligned)
	if err != nil {
		return 0, err
	}
	if ifStmt.Then == nil {
		ifStmt.Then = &cast.Block{}
	}
	if err := s.traverseBlock(ifStmt.Then); err != nil {
		return 0, err
	}
	trueTypes := s.env
	trueAssumes := s.popAssumeScope()

	s.pushAssumeScope()
	s.env = beforeTypes.Copy()
	s.env.Apply(ifStmt.Cond, false)
	if ifStmt.Else != nil {
		if err := s.traverseBlock(ifStmt.Else); err != nil {
			return 0, err
		}
	}
	alignedFalseCond, err := replacer.Replace(cast.CloneExpr(ifStmt.Cond), s.env, replacer.Aligned)
	if err != nil {
		return 0, err
	}
	falseTypes := s.env.Copy()
	s.env.Merge(trueTypes)
	falseAssumes := s.popAssumeScope()

	inserted := 0
	if s.loop == 0 {
		if s.pc && !beforePC {
			n, err := s.synthesizeShadowBranch(block, idx, ifStmt)
			if err != nil {
				return 0, err
			}
			inserted += n
		}
		if ifStmt.Else == nil {
			ifStmt.Else = &cast.Block{}
		}

		if err := s.instrumentBranchAssertion(ifStmt.Then, alignedTrueCond, false, trueAssumes, ifStmt.Pos); err != nil {
			return 0, err
		}
		if err := s.instrumentBranchAssertion(ifStmt.Else, alignedFalseCond, true, falseAssumes, ifStmt.Pos); err != nil {
			return 0, err
		}

		// Each branch is compared against the *merged* Γ, not the Γ
		// entering the if: a variable concrete in this branch but
		// widened to Star by the other branch needs materializing here
		// to keep this branch's own concrete value pinned.
		if err := s.instrumentBranchTransition(ifStmt.Then, trueTypes, s.env, trueAssumes); err != nil {
			return 0, err
		}
		if err := s.instrumentBranchTransition(ifStmt.Else, falseTypes, s.env, falseAssumes); err != nil {
			return 0, err
		}
	}

	s.pc = beforePC
	return inserted, nil
}

// updatePC decides whether the branch about to be entered diverges
// between the aligned and shadow runs, short-circuiting to true without
// an SMT query if cond already mentions a Star-shadow-tracked variable or
// pc already holds, and to false unconditionally when shadow tracking is
// disabled for the function.
func (s *state) updatePC(cond cast.Expr) bool {
	if s.noShadow {
		return false
	}
	if s.pc {
		return true
	}
	if mentionsStarShadow(cond, s.env) {
		return true
	}
	aligned, err1 := replacer.Replace(cond, s.env, replacer.Aligned)
	shadow, err2 := replacer.Replace(cond, s.env, replacer.Shadow)
	if err1 != nil || err2 != nil {
		return true
	}
	s.count(metricSMTQueries)
	return smtbridge.BranchDiverges(s.mode(), s.queryParam, aligned, shadow)
}

func mentionsStarShadow(expr cast.Expr, env *typeenv.Env) bool {
	return cast.Contains(expr, func(e cast.Expr) bool {
		id, ok := e.(*cast.Ident)
		if !ok {
			return false
		}
		_, shadow, ok := env.Get(id.Name)
		return ok && shadow.Star
	})
}

// synthesizeShadowBranch builds the parallel shadow-distance-updating
// if/else and inserts it immediately after ifStmt, then emits any
// query-adjacency assumes its condition requires at the front of the
// enclosing block. Returns how many statements it inserted into block.
func (s *state) synthesizeShadowBranch(block *cast.Block, idx int, ifStmt *cast.If) (int, error) {
	shadowCond, err := replacer.Replace(cast.CloneExpr(ifStmt.Cond), s.env, replacer.Shadow)
	if err != nil {
		return 0, err
	}
	shadowVars := shadowbranch.ShadowTrackedVariables(s.env)
	shadowThen, err := shadowbranch.Generate(ifStmt.Then, shadowVars, s.env)
	if err != nil {
		return 0, err
	}
	shadowElse, err := shadowbranch.Generate(ifStmt.Else, shadowVars, s.env)
	if err != nil {
		return 0, err
	}
	block.InsertAt(idx+1, &cast.If{Cond: shadowCond, Then: shadowThen, Else: shadowElse, Pos: ifStmt.Pos})

	front := 0
	for _, qIdx := range materializedQueryIndices(shadowCond, s.queryParam) {
		for _, stmt := range s.queryAdjacencyStmts(qIdx, ifStmt.Pos) {
			at := block.SkipAssumePrefixIndex()
			block.InsertAt(at, stmt)
			front++
		}
	}
	return front + 1, nil
}

// instrumentBranchAssertion inserts `assert(cond)` (or `assert(!cond)`
// when negate is true) at the front of branch, then emits the
// query-adjacency assumes cond's materialized query references require,
// scoped against the set of subscripts already assumed while that branch
// was traversed.
func (s *state) instrumentBranchAssertion(branch *cast.Block, cond cast.Expr, negate bool, scope *assumeScope, pos cast.Pos) error {
	assertCond := cond
	if negate {
		assertCond = &cast.UnaryOp{Op: "!", Operand: cond, Pos: pos}
	}
	at := branch.SkipAssumePrefixIndex()
	branch.InsertAt(at, s.assertStmt(assertCond, pos))

	s.withAssumeScope(scope, func() {
		for _, qIdx := range materializedQueryIndices(cond, s.queryParam) {
			for _, stmt := range s.queryAdjacencyStmts(qIdx, pos) {
				at := branch.SkipAssumePrefixIndex()
				branch.InsertAt(at, stmt)
			}
		}
	})
	return nil
}

// instrumentBranchTransition applies the Instrumentation rule between
// the environment as it stood entering the if (before) and as it stood
// leaving this particular branch (after), splicing the resulting assumes
// at branch's front and the materializing assignments at its end.
func (s *state) instrumentBranchTransition(branch *cast.Block, before, after *typeenv.Env, scope *assumeScope) error {
	var assumes []cast.Stmt
	var assigns []cast.Stmt
	var err error
	s.withAssumeScope(scope, func() {
		assumes, assigns, err = s.instrumentTransition(before, after, s.pc)
	})
	if err != nil {
		return err
	}
	insertAssumesAt(branch, assumes)
	branch.Append(assigns...)
	return nil
}
