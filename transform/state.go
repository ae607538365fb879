// Package transform is the core driver: a structural traversal of one
// function definition that applies the typing rules of §4.7 (Function,
// Declaration, Assignment, If, While, Return) over the type environment
// Γ, consulting smtbridge for the two semantic queries and emitting new
// nodes via replacer and shadowbranch as it goes.
//
// Grounded precisely on ShadowDPTransformer in core.py — every field on
// State below has a direct counterpart on that class, and the ordering
// of inserted assume/assert/materializing-assignment statements follows
// the original's insertion-index bookkeeping rather than spec.md's
// higher-level prose, per the instruction to break ties against the
// original transformer for exact placement.
package transform

import (
	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/distgen"
	"github.com/shadowdp-go/shadowdp/logging"
	"github.com/shadowdp-go/shadowdp/smtbridge"
	"github.com/shadowdp-go/shadowdp/telemetry"
	"github.com/shadowdp-go/shadowdp/typeenv"
)

// metricsSink is the narrow slice of telemetry.Emitter the transformer
// actually drives: every counter it reports (statements visited, smt
// queries issued, asserts emitted, fixed-point iterations taken,
// functions transformed) is a plain count, never a duration or a gauge.
type metricsSink interface {
	Counter(name string, value float64, tags map[string]string) error
}

// FuncMap renames the logical assert/assume/havoc commands to whatever
// an external verifier expects them spelled as (e.g. `__VERIFIER_assert`
// for CPAChecker) — ported from the original's constructor argument of
// the same purpose.
type FuncMap struct {
	Assert string
	Assume string
	Havoc  string
}

// DefaultFuncMap is the identity mapping used when no backend-specific
// renaming is requested.
func DefaultFuncMap() FuncMap {
	return FuncMap{Assert: "assert", Assume: "assume", Havoc: "havoc"}
}

// Options configures one transformation pass.
type Options struct {
	FuncMap FuncMap
	// SetEpsilonToOne works around the non-linearity the privacy-cost
	// accumulation introduces when epsilon itself is symbolic, by
	// treating epsilon as the literal constant 1 during cost-term
	// construction. Mirrors the original's set_epsilon flag.
	SetEpsilonToOne bool
	// Goal is the multiplier k in the emitted postcondition
	// `assert(__v_epsilon <= epsilon * Goal)`. Zero means the
	// spec's default of 1.
	Goal int
	Bridge smtbridge.Bridge
	Logger *logging.Logger
	// Telemetry receives the transformer's counters. Nil disables
	// reporting (the default for library callers that don't care).
	Telemetry telemetry.Emitter
}

func (o Options) goal() int {
	if o.Goal == 0 {
		return 1
	}
	return o.Goal
}

func (o Options) bridge() smtbridge.Bridge {
	if o.Bridge == nil {
		return smtbridge.NewFourierMotzkinBridge()
	}
	return o.Bridge
}

func (o Options) logger() *logging.Logger {
	if o.Logger == nil {
		return logging.Nop()
	}
	return o.Logger
}

func (o Options) metricsSink() metricsSink {
	if o.Telemetry == nil {
		return telemetry.Noop{}
	}
	return o.Telemetry
}

// state carries the transformer's mutable bookkeeping across one pass
// over a single function.
type state struct {
	opts Options

	env  *typeenv.Env
	pc   bool
	loop int

	oneDiffer bool
	noShadow  bool

	epsilonParam string
	sizeParam    string
	queryParam   string
	parameters   []string
	randomVars   map[string]bool

	// insertedQueryAssumes mirrors the original's stack of per-scope sets
	// of already-assumed query subscripts, keyed by the subscript's
	// rendered source text for deduplication (_inserted_query_assumes):
	// once a subscript's sensitivity guarantee has been assumed in a
	// scope, a repeat reference to the same subscript emits nothing.
	insertedQueryAssumes []*assumeScope

	metrics metricsSink
	logger  *logging.Logger
}

// assumeScope is one nesting level's set of already-emitted query-index
// subscripts, keyed by rendered source text.
type assumeScope struct {
	seen map[string]bool
}

func newAssumeScope() *assumeScope { return &assumeScope{seen: make(map[string]bool)} }

// Add records key if it is new, reporting whether it was newly added.
func (sc *assumeScope) Add(key string) bool {
	if sc.seen[key] {
		return false
	}
	sc.seen[key] = true
	return true
}

// Contains reports whether key was already recorded.
func (sc *assumeScope) Contains(key string) bool { return sc.seen[key] }

func newState(opts Options) *state {
	return &state{
		opts:                 opts,
		env:                  typeenv.New(),
		randomVars:           make(map[string]bool),
		insertedQueryAssumes: []*assumeScope{newAssumeScope()},
		metrics:              opts.metricsSink(),
		logger:               opts.logger(),
	}
}

func (s *state) pushAssumeScope() {
	s.insertedQueryAssumes = append(s.insertedQueryAssumes, newAssumeScope())
}

func (s *state) popAssumeScope() *assumeScope {
	n := len(s.insertedQueryAssumes)
	top := s.insertedQueryAssumes[n-1]
	s.insertedQueryAssumes = s.insertedQueryAssumes[:n-1]
	return top
}

func (s *state) currentAssumeScope() *assumeScope {
	return s.insertedQueryAssumes[len(s.insertedQueryAssumes)-1]
}

// mode returns the adjacency mode smtbridge queries should use.
func (s *state) mode() smtbridge.Mode {
	if s.oneDiffer {
		return smtbridge.OneDiffer
	}
	return smtbridge.AllDiffer
}

func alignedAuxVar(name string) *cast.Ident { return &cast.Ident{Name: distgen.AlignedAuxName(name)} }
func shadowAuxVar(name string) *cast.Ident  { return &cast.Ident{Name: distgen.ShadowAuxName(name)} }

// epsilonAuxName is the cost accumulator §4.7's Function rule declares
// at function entry and every Laplace annotation updates.
const epsilonAuxName = "__v_epsilon"

// queryIndexParam is the synthetic loop index parameter added to a
// ONE_DIFFER function's signature.
const queryIndexParam = "__index"

// count increments a named counter by one, swallowing any emitter error
// since a telemetry failure must never abort a transformation pass.
func (s *state) count(name string) {
	_ = s.metrics.Counter(name, 1, nil)
}
