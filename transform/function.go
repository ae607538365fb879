// Function rule: the transformation pass's entry point. Parses the two
// leading annotation statements, seeds Γ from the parameter-distance
// annotation, traverses the body, then prepends the preamble every
// transformed function carries (user assumes, the two domain assumes,
// the cost accumulator declaration, the ONE_DIFFER index parameter, and
// a materializing declaration or parameter for every variable Γ still
// records as star-tracked once the body is fully transformed).
//
// Grounded on visit_FuncDef in core.py.
package transform

import (
	"fmt"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/typeenv"
	"go.uber.org/zap"
)

// Transform instruments prog's single function in place. It returns an
// error and leaves prog unmodified on any rejection (a malformed
// annotation, a misplaced sampling command, a non-injective η-distance,
// or a non-zero return distance).
func Transform(prog *cast.Program, opts Options) error {
	fn, err := prog.MainFunction()
	if err != nil {
		return err
	}
	return transformFunc(fn, opts)
}

func transformFunc(fn *cast.FuncDecl, opts Options) error {
	s := newState(opts)
	s.logger.Debug("transforming function", zap.String("name", fn.Name))

	if len(fn.Body.Stmts) < 2 {
		return &diag.MissingParameterAnnotation{Pos: fn.Pos, Found: "function body has fewer than two leading statements"}
	}
	adjLit, ok := stringLiteralOf(fn.Body.Stmts[0])
	if !ok {
		return &diag.MissingParameterAnnotation{Pos: fn.Body.Stmts[0].Position(), Found: fmt.Sprintf("%T", fn.Body.Stmts[0])}
	}
	distLit, ok := stringLiteralOf(fn.Body.Stmts[1])
	if !ok {
		return &diag.MissingParameterAnnotation{Pos: fn.Body.Stmts[1].Position(), Found: fmt.Sprintf("%T", fn.Body.Stmts[1])}
	}

	adj, err := parseAdjacency(adjLit.Value, adjLit.Pos)
	if err != nil {
		return err
	}
	s.oneDiffer = adj.oneDiffer

	pds, err := parseParamDistances(distLit.Value, distLit.Pos)
	if err != nil {
		return err
	}

	for _, p := range fn.Params {
		s.parameters = append(s.parameters, p.Name)
	}
	s.classifyParams(fn)

	for _, pd := range pds {
		aligned := typeenv.StarDistance
		if !pd.alignedIsStar {
			aligned = typeenv.Distance{Expr: pd.aligned}
		}
		shadow := typeenv.StarDistance
		if !pd.shadowIsStar {
			shadow = typeenv.Distance{Expr: pd.shadow}
		}
		s.env.Set(pd.name, aligned, shadow)
	}

	s.noShadow = !mentionsShadowInBody(fn.Body)

	// The two annotation statements have served their purpose; the
	// verifier's own C parser has no notion of a bare string statement.
	fn.Body.Stmts = fn.Body.Stmts[2:]

	if err := s.traverseBlock(fn.Body); err != nil {
		return err
	}

	if err := s.prependPrelude(fn, adj); err != nil {
		return err
	}
	s.count(metricFunctionsDone)
	return nil
}

// classifyParams applies §3's fixed parameter convention: the first
// parameter is the privacy budget ε, the second is the dataset size
// bound, and the (single) array parameter is the query input q.
func (s *state) classifyParams(fn *cast.FuncDecl) {
	if len(fn.Params) > 0 {
		s.epsilonParam = fn.Params[0].Name
	}
	if len(fn.Params) > 1 {
		s.sizeParam = fn.Params[1].Name
	}
	for _, p := range fn.Params {
		if p.IsArray {
			s.queryParam = p.Name
			break
		}
	}
}

func stringLiteralOf(stmt cast.Stmt) (*cast.StringLiteral, bool) {
	es, ok := stmt.(*cast.ExprStmt)
	if !ok {
		return nil, false
	}
	lit, ok := es.X.(*cast.StringLiteral)
	return lit, ok
}

// mentionsShadowInBody reports whether any Lap(...) declaration in body
// (at any nesting depth) carries a selector mentioning SHADOW — the
// Function rule's no_shadow computation. Sampling commands only ever
// appear as a Decl initializer in this grammar, so a statement-level
// walk that descends into If/While bodies finds every one.
func mentionsShadowInBody(body *cast.Block) bool {
	if body == nil {
		return false
	}
	for _, stmt := range body.Stmts {
		switch n := stmt.(type) {
		case *cast.Decl:
			call, ok := n.Init.(*cast.Call)
			if !ok || call.Name != cast.CallLap || len(call.Args) != 2 {
				continue
			}
			lit, ok := call.Args[1].(*cast.StringLiteral)
			if ok && mentionsShadow(lit.Value) {
				return true
			}
		case *cast.If:
			if mentionsShadowInBody(n.Then) || mentionsShadowInBody(n.Else) {
				return true
			}
		case *cast.While:
			if mentionsShadowInBody(n.Body) {
				return true
			}
		}
	}
	return false
}

// prependPrelude inserts the Function rule's postamble-turned-preamble:
// computed only after the body traversal has settled Γ's final shape,
// then spliced at the very front so every materialized aux variable it
// declares is in scope for the whole function.
func (s *state) prependPrelude(fn *cast.FuncDecl, adj adjacency) error {
	var stmts []cast.Stmt

	for _, assumeExpr := range adj.assumes {
		stmts = append(stmts, s.assumeStmt(assumeExpr, fn.Pos))
	}
	stmts = append(stmts,
		s.assumeStmt(bin(">", &cast.Ident{Name: s.epsilonParam}, intConst(0, fn.Pos), fn.Pos), fn.Pos),
		s.assumeStmt(bin(">", &cast.Ident{Name: s.sizeParam}, intConst(0, fn.Pos), fn.Pos), fn.Pos),
		&cast.Decl{Name: epsilonAuxName, Type: "float", Init: intConst(0, fn.Pos), Pos: fn.Pos},
	)

	if s.oneDiffer {
		stmts = append(stmts,
			s.assumeStmt(bin(">=", &cast.Ident{Name: queryIndexParam}, intConst(0, fn.Pos), fn.Pos), fn.Pos),
			s.assumeStmt(bin("<", &cast.Ident{Name: queryIndexParam}, &cast.Ident{Name: s.sizeParam}, fn.Pos), fn.Pos),
		)
		fn.AddParam(&cast.Param{Name: queryIndexParam, Type: "int", Pos: fn.Pos})
	}

	isParam := make(map[string]bool, len(s.parameters))
	for _, p := range s.parameters {
		isParam[p] = true
	}

	for _, name := range s.env.Variables() {
		aligned, shadow, _ := s.env.Get(name)
		if aligned.Star {
			extra, err := s.materializeStar(fn, name, distgenAlignedName(name), isParam[name])
			if err != nil {
				return err
			}
			stmts = append(stmts, extra...)
		}
		if shadow.Star && !s.noShadow {
			extra, err := s.materializeStar(fn, name, distgenShadowName(name), isParam[name])
			if err != nil {
				return err
			}
			stmts = append(stmts, extra...)
		}
	}

	fn.Body.Prepend(stmts...)
	return nil
}

// materializeStar gives a still-star-tracked variable's aux variable a
// concrete home: a zero-initialized local for an ordinary variable, or
// an extra shadow-array parameter for the query parameter, whose
// per-element aligned/shadow distance genuinely isn't known until
// runtime. Mirrors visit_FuncDef's `if name != q: raise
// NotImplementedError` — no other parameter is expected to still be
// star-tracked once the body settles, since its distance is fixed by
// its own annotation.
func (s *state) materializeStar(fn *cast.FuncDecl, name, auxName string, isParam bool) ([]cast.Stmt, error) {
	if !isParam {
		return []cast.Stmt{&cast.Decl{Name: auxName, Type: "float", Init: intConst(0, fn.Pos), Pos: fn.Pos}}, nil
	}
	if name != s.queryParam {
		return nil, &diag.UnsupportedConstruct{
			Pos:    fn.Pos,
			Detail: fmt.Sprintf("parameter %q has an unresolved (star) distance; only the query parameter %q may", name, s.queryParam),
		}
	}
	fn.AddParam(&cast.Param{Name: auxName, Type: "float", IsArray: true, Pos: fn.Pos})
	return nil, nil
}

func distgenAlignedName(name string) string { return alignedAuxVar(name).Name }
func distgenShadowName(name string) string  { return shadowAuxVar(name).Name }
