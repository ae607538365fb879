// Instrumentation helpers: building the assume/assert/havoc call
// statements the transformer inserts, and the query-index assume
// deduplication mirroring the original's `_assume_query`/`_start_index`
// bookkeeping in core.py.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/smtbridge"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

func (s *state) assumeStmt(cond cast.Expr, pos cast.Pos) *cast.ExprStmt {
	return &cast.ExprStmt{X: &cast.Call{Name: s.opts.FuncMap.Assume, Args: []cast.Expr{cond}, Pos: pos}, Pos: pos}
}

func (s *state) assertStmt(cond cast.Expr, pos cast.Pos) *cast.ExprStmt {
	s.count(metricAssertsEmitted)
	return &cast.ExprStmt{X: &cast.Call{Name: s.opts.FuncMap.Assert, Args: []cast.Expr{cond}, Pos: pos}, Pos: pos}
}

func (s *state) havocExpr(pos cast.Pos) cast.Expr {
	return &cast.Call{Name: s.opts.FuncMap.Havoc, Pos: pos}
}

func intConst(v int, pos cast.Pos) *cast.Constant {
	return &cast.Constant{Value: itoa(v), Kind: "int", Pos: pos}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

func bin(op string, left, right cast.Expr, pos cast.Pos) *cast.BinaryOp {
	return &cast.BinaryOp{Op: op, Left: left, Right: right, Pos: pos}
}

// queryAdjacencyStmts returns the sensitivity-guarantee assume
// statements for a single query subscript idx, or nil if idx was already
// assumed in the current scope. Grounded on _assume_query in core.py.
//
// Under ALL_DIFFER every index can differ, so the guarantee is the flat
// "aligned distance is in [-1, 1] and shadow tracks it". Under
// ONE_DIFFER only the single differing index __index may carry a
// nonzero distance, so the guarantee is split: at idx == __index it is
// the ALL_DIFFER guarantee, and everywhere else the aligned distance is
// pinned to exactly 0 (with shadow still tracking aligned).
func (s *state) queryAdjacencyStmts(idx cast.Expr, pos cast.Pos) []cast.Stmt {
	key := cast.SprintExpr(idx)
	scope := s.currentAssumeScope()
	if !scope.Add(key) {
		return nil
	}

	alignedRef := &cast.ArrayRef{Name: distgen.AlignedAuxName(s.queryParam), Index: cast.CloneExpr(idx), Pos: pos}
	shadowRef := &cast.ArrayRef{Name: distgen.ShadowAuxName(s.queryParam), Index: cast.CloneExpr(idx), Pos: pos}
	sameAsShadow := s.assumeStmt(bin("==", shadowRef, cast.CloneExpr(alignedRef), pos), pos)

	boundedAssumes := []cast.Stmt{
		s.assumeStmt(bin("<=", cast.CloneExpr(alignedRef), intConst(1, pos), pos), pos),
		s.assumeStmt(bin(">=", cast.CloneExpr(alignedRef), intConst(-1, pos), pos), pos),
		sameAsShadow,
	}

	if s.mode() != smtbridge.OneDiffer {
		return boundedAssumes
	}

	thenBlock := &cast.Block{Stmts: boundedAssumes}
	elseBlock := &cast.Block{Stmts: []cast.Stmt{
		s.assumeStmt(bin("==", cast.CloneExpr(shadowRef), cast.CloneExpr(alignedRef), pos), pos),
		s.assumeStmt(bin("==", cast.CloneExpr(alignedRef), intConst(0, pos), pos), pos),
	}}
	cond := bin("==", cast.CloneExpr(idx), &cast.Ident{Name: queryIndexParam, Pos: pos}, pos)
	return []cast.Stmt{&cast.If{Cond: cond, Then: thenBlock, Else: elseBlock, Pos: pos}}
}

// emitQueryAssumes inserts query-adjacency assume statements for every
// new query subscript referenced in expr at the front of block (after
// any existing leading assumes).
func (s *state) emitQueryAssumes(block *cast.Block, expr cast.Expr, pos cast.Pos) {
	for _, idx := range smtbridge.QueryIndices(expr, s.queryParam) {
		for _, stmt := range s.queryAdjacencyStmts(idx, pos) {
			at := block.SkipAssumePrefixIndex()
			block.InsertAt(at, stmt)
		}
	}
}

// insertAssumesAt splices stmts into block right after its existing
// leading assume-call prefix, preserving stmts' own order.
func insertAssumesAt(block *cast.Block, stmts []cast.Stmt) {
	at := block.SkipAssumePrefixIndex()
	block.InsertManyAt(at, stmts...)
}

const (
	metricStatementsVisited = "transform.statements.visited"
	metricSMTQueries        = "transform.smt.queries"
	metricAssertsEmitted    = "transform.asserts.emitted"
	metricLoopIterations    = "transform.loop.fixedpoint.iterations"
	metricFunctionsDone     = "transform.functions.transformed"
)

// withAssumeScope runs fn with scope temporarily on top of the
// query-assume dedup stack, mirroring the original's pattern of pushing
// a branch's already-collected `_inserted_query_assumes` entry back
// before reusing it to decide which further assumes are redundant.
func (s *state) withAssumeScope(scope *assumeScope, fn func()) {
	s.insertedQueryAssumes = append(s.insertedQueryAssumes, scope)
	fn()
	s.insertedQueryAssumes = s.insertedQueryAssumes[:len(s.insertedQueryAssumes)-1]
}

// instrumentTransition is the Instrumentation rule: given the type
// environment as it stood before some structural change (a branch, a
// loop) and as it stands after, it returns the query-index assumes and
// materializing assignments needed to keep every variable that newly
// became star-tracked consistent with its prior concrete value.
//
// Grounded on _instrument in core.py: for a variable whose aligned (or
// shadow) distance was concrete in before and widened to Star in after,
// emit assume statements for any query subscripts the concrete
// expression mentioned, and a materializing assignment setting the
// newly-introduced aux variable to that concrete expression — except a
// shadow-side materialization is skipped while pc holds (the shadow
// branch synthesized separately keeps it in sync) or shadow tracking is
// disabled entirely.
func (s *state) instrumentTransition(before, after *typeenv.Env, pc bool) ([]cast.Stmt, []cast.Stmt, error) {
	var assumes []cast.Stmt
	var assigns []cast.Stmt

	for _, name := range before.Variables() {
		if !after.Contains(name) {
			continue
		}
		beforeAligned, beforeShadow, _ := before.Get(name)
		afterAligned, afterShadow, _ := after.Get(name)

		if !beforeAligned.Star && afterAligned.Star {
			for _, idx := range smtbridge.QueryIndices(beforeAligned.Expr, s.queryParam) {
				assumes = append(assumes, s.queryAdjacencyStmts(idx, beforeAligned.Expr.Position())...)
			}
			assigns = append(assigns, &cast.Assign{
				Lvalue: alignedAuxVar(name),
				Rvalue: cast.CloneExpr(beforeAligned.Expr),
			})
		}

		if !beforeShadow.Star && afterShadow.Star {
			for _, idx := range smtbridge.QueryIndices(beforeShadow.Expr, s.queryParam) {
				assumes = append(assumes, s.queryAdjacencyStmts(idx, beforeShadow.Expr.Position())...)
			}
			if !pc && !s.noShadow {
				assigns = append(assigns, &cast.Assign{
					Lvalue: shadowAuxVar(name),
					Rvalue: cast.CloneExpr(beforeShadow.Expr),
				})
			}
		}
	}
	return assumes, assigns, nil
}
