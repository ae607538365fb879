// Statement-level traversal: walks one block's statements by index,
// dispatching to the per-kind visit rule and re-indexing past whatever
// leading instrumentation that rule spliced in ahead of the statement it
// was given. Grounded on visit_Compound in core.py, which re-derives the
// same bookkeeping by mutating block_items while iterating a frozen
// snapshot of it; this port instead has each visit_* function report how
// many statements it inserted so the index can be advanced deterministically.
package transform

import "github.com/shadowdp-go/shadowdp/cast"

func (s *state) traverseBlock(block *cast.Block) error {
	if block == nil {
		return nil
	}
	for i := 0; i < len(block.Stmts); i++ {
		s.count(metricStatementsVisited)
		inserted, err := s.visitStmt(block, i)
		if err != nil {
			return err
		}
		i += inserted
	}
	return nil
}

// visitStmt dispatches on the statement at block.Stmts[idx] and returns
// the number of new leading statements it spliced in before that index.
func (s *state) visitStmt(block *cast.Block, idx int) (int, error) {
	switch n := block.Stmts[idx].(type) {
	case *cast.Decl:
		return s.visitDecl(block, idx, n)
	case *cast.Assign:
		return s.visitAssign(block, idx, n)
	case *cast.If:
		return s.visitIf(block, idx, n)
	case *cast.While:
		return s.visitWhile(block, idx, n)
	case *cast.Return:
		return s.visitReturn(block, idx, n)
	case *cast.ExprStmt:
		// A bare assume/assert/havoc call already in source form; nothing
		// to instrument.
		return 0, nil
	default:
		return 0, nil
	}
}
