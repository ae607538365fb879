// Declaration rule: a scalar local's distance either defaults to (0, 0),
// is computed from its initializer via distgen (T-Asgn), or — for a
// Lap(...) sampling declaration — is set from its η-distance annotation
// after an injectivity check, with every other in-scope variable's
// aligned distance updated according to the same annotation's selector
// (T-Laplace).
//
// Grounded on visit_Decl in core.py.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/exprutil"
	"github.com/shadowdp-go/shadowdp/smtbridge"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

func (s *state) visitDecl(block *cast.Block, idx int, decl *cast.Decl) (int, error) {
	switch init := decl.Init.(type) {
	case nil:
		s.env.Set(decl.Name, typeenv.Zero, typeenv.Zero)
		return 0, nil

	case *cast.Call:
		if init.Name != cast.CallLap {
			return 0, &diag.UnsupportedConstruct{Pos: decl.Pos, Detail: "declaration initializer is an unsupported call " + init.Name}
		}
		return s.visitSamplingDecl(block, idx, decl, init)

	default:
		aligned, shadow, err := distgen.Generate(decl.Init, s.env)
		if err != nil {
			return 0, &diag.UnsupportedConstruct{Pos: decl.Pos, Detail: err.Error()}
		}
		if s.pc {
			s.env.Set(decl.Name, typeenv.Distance{Expr: aligned}, typeenv.StarDistance)
		} else {
			s.env.Set(decl.Name, typeenv.Distance{Expr: aligned}, typeenv.Distance{Expr: shadow})
		}
		return 0, nil
	}
}

func (s *state) visitSamplingDecl(block *cast.Block, idx int, decl *cast.Decl, call *cast.Call) (int, error) {
	if s.pc && !s.noShadow {
		return 0, &diag.SamplingMisplaced{Pos: decl.Pos}
	}
	if len(call.Args) != 2 {
		return 0, &diag.MissingSamplingAnnotation{Pos: decl.Pos}
	}
	lit, ok := call.Args[1].(*cast.StringLiteral)
	if !ok {
		return 0, &diag.MissingSamplingAnnotation{Pos: decl.Pos}
	}
	s.randomVars[decl.Name] = true

	sa, err := parseSamplingAnnotation(lit.Value, decl.Pos)
	if err != nil {
		return 0, err
	}

	if err := s.checkSamplingInjective(decl.Name, sa.etaDistance, decl.Pos); err != nil {
		return 0, err
	}

	etaDistance := s.substituteMaterializedDistances(cast.CloneExpr(sa.etaDistance))
	s.env.Set(decl.Name, typeenv.Distance{Expr: etaDistance}, typeenv.Zero)

	s.applySelector(sa.selector, decl.Name)

	if s.loop > 0 {
		return 0, nil
	}

	scale := cast.CloneExpr(call.Args[0])
	if s.opts.SetEpsilonToOne {
		scale = exprutil.SubstituteVar(scale, s.epsilonParam, intConst(1, decl.Pos))
	}

	cost := costOf(etaDistance, scale, decl.Pos)
	selectorPart := exprutil.Simplify(exprutil.SubstituteVar(
		exprutil.SubstituteVar(cast.CloneExpr(sa.selector), "SHADOW", intConst(0, decl.Pos)),
		"ALIGNED", &cast.Ident{Name: epsilonAuxName, Pos: decl.Pos}))
	vEpsilon := exprutil.Simplify(bin("+", selectorPart, cost, decl.Pos))

	updateVEpsilon := &cast.Assign{Lvalue: &cast.Ident{Name: epsilonAuxName, Pos: decl.Pos}, Rvalue: vEpsilon, Pos: decl.Pos}
	block.InsertAt(idx+1, updateVEpsilon)

	front := 0
	for _, qIdx := range materializedQueryIndices(vEpsilon, s.queryParam) {
		for _, stmt := range s.queryAdjacencyStmts(qIdx, decl.Pos) {
			at := block.SkipAssumePrefixIndex()
			block.InsertAt(at, stmt)
			front++
		}
	}

	decl.Init = s.havocExpr(decl.Pos)
	return front + 1, nil
}

// checkSamplingInjective substitutes sampledName's own occurrences in
// etaDistance with two fresh symbolic reals and asks smtbridge whether
// the precondition forces them equal whenever the resulting distances
// coincide — the injectivity side condition T-Laplace requires.
func (s *state) checkSamplingInjective(sampledName string, etaDistance cast.Expr, pos cast.Pos) error {
	const eta1, eta2 smtbridge.Atom = "__SHADOWDP_Z3_eta_1", "__SHADOWDP_Z3_eta_2"
	distance1 := exprutil.SubstituteVar(etaDistance, sampledName, &cast.Ident{Name: string(eta1), Pos: pos})
	distance2 := exprutil.SubstituteVar(etaDistance, sampledName, &cast.Ident{Name: string(eta2), Pos: pos})
	s.count(metricSMTQueries)
	if !smtbridge.SamplingInjective(s.mode(), s.queryParam, eta1, eta2, distance1, distance2) {
		return &diag.NonInjectiveAnnotation{Pos: pos, EtaDistance: cast.SprintExpr(etaDistance)}
	}
	return nil
}

// substituteMaterializedDistances replaces every materialized
// __ALIGNED_DIST_<v>/__SHADOW_DIST_<v> token in expr, for every
// in-scope v other than the query parameter, with v's current concrete
// distance — leaving the token untouched where that distance is still
// Star. Grounded on the regex substitution loop in visit_Decl.
func (s *state) substituteMaterializedDistances(expr cast.Expr) cast.Expr {
	for _, name := range s.env.Variables() {
		if name == s.queryParam {
			continue
		}
		aligned, shadow, _ := s.env.Get(name)
		if !aligned.Star {
			expr = exprutil.SubstituteVar(expr, distgen.AlignedAuxName(name), aligned.Expr)
		}
		if !shadow.Star {
			expr = exprutil.SubstituteVar(expr, distgen.ShadowAuxName(name), shadow.Expr)
		}
	}
	return expr
}

// applySelector updates every non-random, non-parameter variable's
// aligned distance to the selector expression with its own ALIGNED/SHADOW
// tokens replaced by that variable's current (possibly Star-unwrapped)
// aligned and shadow distances — skipping a variable whose aligned and
// shadow distances already coincide, since the selector then has no
// effect.
func (s *state) applySelector(selector cast.Expr, sampledName string) {
	isParam := make(map[string]bool, len(s.parameters))
	for _, p := range s.parameters {
		isParam[p] = true
	}
	for _, name := range s.env.Variables() {
		if s.randomVars[name] || isParam[name] || name == sampledName {
			continue
		}
		aligned, shadow, _ := s.env.Get(name)
		alignedExpr := unwrapStar(aligned, distgen.AlignedAuxName(name))
		shadowExpr := unwrapStar(shadow, distgen.ShadowAuxName(name))
		if exprutil.Equal(alignedExpr, shadowExpr) {
			continue
		}
		newAligned := exprutil.SubstituteVar(
			exprutil.SubstituteVar(cast.CloneExpr(selector), "SHADOW", shadowExpr), "ALIGNED", alignedExpr)
		s.env.Set(name, typeenv.Distance{Expr: newAligned}, shadow)
	}
}

func unwrapStar(d typeenv.Distance, auxName string) cast.Expr {
	if d.Star {
		return &cast.Ident{Name: auxName}
	}
	return d.Expr
}

// costOf builds the Laplace sampling command's per-draw privacy-cost
// term Abs(etaDistance) * (1/scale), matching the #define Abs(x) macro
// the original instruments via FoldAbs.
func costOf(etaDistance, scale cast.Expr, pos cast.Pos) cast.Expr {
	abs := exprutil.FoldAbs(etaDistance, pos)
	return exprutil.Simplify(bin("*", abs, bin("/", intConst(1, pos), scale, pos), pos))
}

// materializedQueryIndices returns the distinct index expressions under
// which expr references the query parameter's materialized aligned or
// shadow distance array (__ALIGNED_DIST_q / __SHADOW_DIST_q), in
// first-appearance order.
func materializedQueryIndices(expr cast.Expr, queryParam string) []cast.Expr {
	aligned := distgen.AlignedAuxName(queryParam)
	shadow := distgen.ShadowAuxName(queryParam)
	var out []cast.Expr
	seen := map[string]bool{}
	cast.Walk(expr, func(e cast.Expr) bool {
		ref, ok := e.(*cast.ArrayRef)
		if !ok || (ref.Name != aligned && ref.Name != shadow) {
			return true
		}
		key := cast.SprintExpr(ref.Index)
		if !seen[key] {
			seen[key] = true
			out = append(out, ref.Index)
		}
		return true
	})
	return out
}
