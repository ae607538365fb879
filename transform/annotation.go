// Annotation parsing: the adjacency string, the parameter-distances
// string, and a Lap call's selector/eta-distance string — §3's DATA
// MODEL and the "Annotation parsing" subsection of SPEC_FULL.md §4.7.
//
// Grounded structurally on docscribe's frontmatter scanner (pulling a
// delimited header out of document text, reporting precise
// line/column errors on malformed input); the actual sub-grammar
// (semicolon-separated clauses, `<dA, dS>` pairs, `ALIGNED`/`SHADOW`
// selector tokens) has no teacher analogue and is new code following
// the restricted C grammar the original transformer parses the same
// strings against in `core.py`.
package transform

import (
	"strings"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/cparse"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/exprutil"
	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// adjacency is the parsed first annotation statement.
type adjacency struct {
	oneDiffer bool
	assumes   []cast.Expr
}

// recognizedAdjacencyTokens is the fixed keyword vocabulary
// exprutil.SuggestToken recovers a misspelling against.
var recognizedAdjacencyTokens = []string{"ALL_DIFFER", "ONE_DIFFER"}

func parseAdjacency(raw string, pos cast.Pos) (adjacency, error) {
	clauses := splitClauses(raw)
	if len(clauses) == 0 {
		return adjacency{}, &diag.AnnotationSyntaxError{Pos: pos, Raw: raw, Reason: "empty adjacency annotation"}
	}

	mode := foldCaser.String(clauses[0])
	var out adjacency
	switch mode {
	case foldCaser.String("ALL_DIFFER"):
		out.oneDiffer = false
	case foldCaser.String("ONE_DIFFER"):
		out.oneDiffer = true
	default:
		suggestions := exprutil.SuggestToken(clauses[0], recognizedAdjacencyTokens, 0.5)
		suggestion := ""
		if len(suggestions) > 0 {
			suggestion = suggestions[0].Value
		}
		return adjacency{}, &diag.AnnotationSyntaxError{
			Pos: pos, Raw: clauses[0],
			Reason:     "expected ALL_DIFFER or ONE_DIFFER",
			Suggestion: suggestion,
		}
	}

	for _, clause := range clauses[1:] {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		inner, ok := stripCall(clause, "assume")
		if !ok {
			return adjacency{}, &diag.AnnotationSyntaxError{Pos: pos, Raw: clause, Reason: "expected assume(<expr>)"}
		}
		expr, err := cparse.ParseExpr(pos.File, inner)
		if err != nil {
			return adjacency{}, &diag.AnnotationSyntaxError{Pos: pos, Raw: clause, Reason: err.Error()}
		}
		out.assumes = append(out.assumes, expr)
	}
	return out, nil
}

// paramDistance is one `name: <dA, dS>` clause of the second annotation.
type paramDistance struct {
	name          string
	aligned       cast.Expr
	alignedIsStar bool
	shadow        cast.Expr
	shadowIsStar  bool
}

func parseParamDistances(raw string, pos cast.Pos) ([]paramDistance, error) {
	clauses := splitClauses(raw)
	out := make([]paramDistance, 0, len(clauses))
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		colon := strings.Index(clause, ":")
		if colon < 0 {
			return nil, &diag.AnnotationSyntaxError{Pos: pos, Raw: clause, Reason: "expected \"name: <dA, dS>\""}
		}
		name := strings.TrimSpace(clause[:colon])
		rest := strings.TrimSpace(clause[colon+1:])
		if !strings.HasPrefix(rest, "<") || !strings.HasSuffix(rest, ">") {
			return nil, &diag.AnnotationSyntaxError{Pos: pos, Raw: clause, Reason: "distance pair must be of the form <dA, dS>"}
		}
		pair := rest[1 : len(rest)-1]
		parts := strings.SplitN(pair, ",", 2)
		if len(parts) != 2 {
			return nil, &diag.AnnotationSyntaxError{Pos: pos, Raw: clause, Reason: "distance pair must have exactly two components"}
		}
		pd := paramDistance{name: name}
		pd.aligned, pd.alignedIsStar, _ = parseDistanceComponent(strings.TrimSpace(parts[0]), pos)
		pd.shadow, pd.shadowIsStar, _ = parseDistanceComponent(strings.TrimSpace(parts[1]), pos)
		out = append(out, pd)
	}
	return out, nil
}

func parseDistanceComponent(text string, pos cast.Pos) (cast.Expr, bool, error) {
	if text == "*" {
		return nil, true, nil
	}
	expr, err := cparse.ParseExpr(pos.File, text)
	if err != nil {
		return nil, false, err
	}
	return expr, false, nil
}

// samplingAnnotation is a Lap(...) call's parsed second argument.
type samplingAnnotation struct {
	selector    cast.Expr
	etaDistance cast.Expr
}

func parseSamplingAnnotation(raw string, pos cast.Pos) (samplingAnnotation, error) {
	clauses := splitClauses(raw)
	if len(clauses) != 2 {
		return samplingAnnotation{}, &diag.AnnotationSyntaxError{
			Pos: pos, Raw: raw, Reason: "expected \"<selector>; <eta_distance>\"",
		}
	}
	selector, err := cparse.ParseExpr(pos.File, strings.TrimSpace(clauses[0]))
	if err != nil {
		return samplingAnnotation{}, &diag.AnnotationSyntaxError{Pos: pos, Raw: clauses[0], Reason: err.Error()}
	}
	eta, err := cparse.ParseExpr(pos.File, strings.TrimSpace(clauses[1]))
	if err != nil {
		return samplingAnnotation{}, &diag.AnnotationSyntaxError{Pos: pos, Raw: clauses[1], Reason: err.Error()}
	}
	return samplingAnnotation{selector: selector, etaDistance: eta}, nil
}

// mentionsShadow reports whether raw, case-folded, contains the literal
// word SHADOW — how §4.7's Function rule sets no_shadow.
func mentionsShadow(raw string) bool {
	return strings.Contains(foldCaser.String(raw), foldCaser.String("SHADOW"))
}

func splitClauses(raw string) []string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripCall reports whether clause is "<name>(<inner>)" and returns
// inner.
func stripCall(clause, name string) (string, bool) {
	clause = strings.TrimSpace(clause)
	prefix := name + "("
	if !strings.HasPrefix(clause, prefix) || !strings.HasSuffix(clause, ")") {
		return "", false
	}
	return clause[len(prefix) : len(clause)-1], true
}
