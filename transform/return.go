// Return rule: the returned expression's aligned distance must be
// exactly the zero constant (a returned value must coincide across the
// aligned and shadow runs), and the accumulated privacy cost must not
// exceed the budget epsilon * goal.
//
// Grounded on visit_Return in core.py.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/distgen"
)

func (s *state) visitReturn(block *cast.Block, idx int, ret *cast.Return) (int, error) {
	aligned, _, err := distgen.Generate(ret.Value, s.env)
	if err != nil {
		return 0, &diag.UnsupportedConstruct{Pos: ret.Pos, Detail: err.Error()}
	}
	if !isZeroConst(aligned) {
		return 0, &diag.ReturnDistanceNotZero{
			Pos:      ret.Pos,
			Name:     cast.SprintExpr(ret.Value),
			Distance: cast.SprintExpr(aligned),
		}
	}

	var epsilonNode cast.Expr
	if s.opts.SetEpsilonToOne {
		epsilonNode = intConst(1, ret.Pos)
	} else {
		epsilonNode = &cast.Ident{Name: s.epsilonParam, Pos: ret.Pos}
	}

	budget := epsilonNode
	if goal := s.opts.goal(); goal != 1 {
		budget = bin("*", epsilonNode, intConst(goal, ret.Pos), ret.Pos)
	}

	assertion := s.assertStmt(bin("<=", &cast.Ident{Name: epsilonAuxName, Pos: ret.Pos}, budget, ret.Pos), ret.Pos)
	block.InsertAt(idx, assertion)
	return 1, nil
}

func isZeroConst(e cast.Expr) bool {
	c, ok := e.(*cast.Constant)
	return ok && c.Value == "0"
}
