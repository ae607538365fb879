package cast

// Expr is the closed set of expression node kinds the restricted grammar
// supports: identifiers, constants, string literals, array references,
// unary/binary/ternary operators and the four permitted call forms
// (Lap, assume, assert, havoc).
type Expr interface {
	exprNode()
	Position() Pos
}

// Ident is a bare variable reference, e.g. `sum` or `epsilon`.
type Ident struct {
	Name string
	Pos  Pos
}

func (*Ident) exprNode()        {}
func (n *Ident) Position() Pos  { return n.Pos }

// Constant is a numeric literal. Kind is "int" or "float", matching the
// restricted grammar's two scalar types.
type Constant struct {
	Value string
	Kind  string
	Pos   Pos
}

func (*Constant) exprNode()       {}
func (n *Constant) Position() Pos { return n.Pos }

// StringLiteral is a quoted string. The only two places it legally appears
// are the function body's two leading annotation statements and a Lap
// call's second argument.
type StringLiteral struct {
	Value string
	Pos   Pos
}

func (*StringLiteral) exprNode()       {}
func (n *StringLiteral) Position() Pos { return n.Pos }

// ArrayRef is `name[index]`. Arrays are read-only query inputs in this
// restricted grammar — no array-valued locals, no pointers.
type ArrayRef struct {
	Name  string
	Index Expr
	Pos   Pos
}

func (*ArrayRef) exprNode()       {}
func (n *ArrayRef) Position() Pos { return n.Pos }

// BinaryOp covers arithmetic (+ - * /), comparison (> >= < <= ==) and
// logical (&& ||) operators.
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (*BinaryOp) exprNode()       {}
func (n *BinaryOp) Position() Pos { return n.Pos }

// UnaryOp covers negation (-) and logical not (!).
type UnaryOp struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (*UnaryOp) exprNode()       {}
func (n *UnaryOp) Position() Pos { return n.Pos }

// TernaryOp is `cond ? ifTrue : ifFalse`.
type TernaryOp struct {
	Cond    Expr
	IfTrue  Expr
	IfFalse Expr
	Pos     Pos
}

func (*TernaryOp) exprNode()       {}
func (n *TernaryOp) Position() Pos { return n.Pos }

// Call names for the four permitted function calls.
const (
	CallLap    = "Lap"
	CallAssume = "assume"
	CallAssert = "assert"
	CallHavoc  = "havoc"
)

// Call is one of Lap(scale, annotation), assume(cond), assert(cond) or
// havoc(). No other function calls are well-formed in this grammar.
type Call struct {
	Name string
	Args []Expr
	Pos  Pos
}

func (*Call) exprNode()       {}
func (n *Call) Position() Pos { return n.Pos }
