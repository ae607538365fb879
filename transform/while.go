// While rule: runs the body to a type-environment fixed point under
// suppressed emission, then re-traverses once for real from the
// converged environment, asserting the aligned loop condition and
// instrumenting both the loop-entry transition (against the block the
// while sits in) and the loop-body transition (against the body the
// second traversal produced).
//
// Grounded on visit_While in core.py. Shadow-branch synthesis for a
// while whose condition newly diverges is left unimplemented, matching
// the original's own `# TODO: while shadow branch` / `pass`.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/replacer"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

func (s *state) visitWhile(block *cast.Block, idx int, whileStmt *cast.While) (int, error) {
	beforePC := s.pc
	s.pc = s.updatePC(whileStmt.Cond)

	beforeTypes := s.env.Copy()

	if whileStmt.Body == nil {
		whileStmt.Body = &cast.Block{}
	}

	s.loop++
	var fixedTypes *typeenv.Env
	for fixedTypes == nil || !envEqual(fixedTypes, s.env) {
		fixedTypes = s.env.Copy()
		s.count(metricLoopIterations)
		if err := s.traverseBlock(whileStmt.Body); err != nil {
			s.loop--
			return 0, err
		}
		s.env.Merge(fixedTypes)
	}
	s.loop--

	inserted := 0
	if s.loop == 0 {
		s.pushAssumeScope()

		alignedCond, err := replacer.Replace(cast.CloneExpr(whileStmt.Cond), s.env, replacer.Aligned)
		if err != nil {
			s.popAssumeScope()
			return 0, err
		}
		whileStmt.Body.Stmts = append([]cast.Stmt{s.assertStmt(alignedCond, whileStmt.Pos)}, whileStmt.Body.Stmts...)

		if err := s.traverseBlock(whileStmt.Body); err != nil {
			s.popAssumeScope()
			return 0, err
		}
		afterVisit := s.env.Copy()
		s.env = beforeTypes.Copy()
		s.env.Merge(fixedTypes)

		assumes, cS, err := s.instrumentTransition(beforeTypes, s.env, s.pc)
		if err != nil {
			s.popAssumeScope()
			return 0, err
		}
		front := len(assumes)
		insertAssumesAt(block, assumes)
		block.InsertManyAt(idx+front, cS...)
		inserted = front + len(cS)

		bodyAssumes, updateStmts, err := s.instrumentTransition(afterVisit, s.env, s.pc)
		if err != nil {
			s.popAssumeScope()
			return 0, err
		}
		insertAssumesAt(whileStmt.Body, bodyAssumes)
		whileStmt.Body.Append(updateStmts...)

		if s.pc && !beforePC {
			// TODO: synthesize a parallel shadow-updating while body for
			// a loop condition that newly diverges between the aligned
			// and shadow runs, mirroring the If rule's shadow branch.
			// The original transformer never implemented this either.
		}

		s.popAssumeScope()
	}

	s.pc = beforePC
	return inserted, nil
}

// envEqual reports whether a and b record exactly the same set of
// variables with pairwise-equal aligned and shadow distances, used to
// detect the While rule's fixed-point convergence.
func envEqual(a, b *typeenv.Env) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, name := range a.Variables() {
		aAligned, aShadow, _ := a.Get(name)
		bAligned, bShadow, ok := b.Get(name)
		if !ok || !aAligned.Equal(bAligned) || !aShadow.Equal(bShadow) {
			return false
		}
	}
	return true
}
