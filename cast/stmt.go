package cast

// Stmt is the closed set of statement kinds: declarations, assignments,
// bare expression statements (string annotations, assume/assert/havoc
// calls), if/else, while, and return.
type Stmt interface {
	stmtNode()
	Position() Pos
}

// Decl declares a scalar local, optionally with an initializer. An
// initializer of *Call with Name == CallLap marks a sampling declaration.
type Decl struct {
	Name string
	Type string // "int" or "float"
	Init Expr   // nil, *Constant, *BinaryOp/*UnaryOp, or *Call{Name: CallLap}
	Pos  Pos
}

func (*Decl) stmtNode()        {}
func (n *Decl) Position() Pos  { return n.Pos }

// Assign is `lvalue = rvalue`. Lvalue is *Ident or *ArrayRef.
type Assign struct {
	Lvalue Expr
	Rvalue Expr
	Pos    Pos
}

func (*Assign) stmtNode()       {}
func (n *Assign) Position() Pos { return n.Pos }

// ExprStmt wraps a bare expression used as a statement: the two leading
// *StringLiteral annotations, and assume/assert/havoc *Call statements.
type ExprStmt struct {
	X   Expr
	Pos Pos
}

func (*ExprStmt) stmtNode()       {}
func (n *ExprStmt) Position() Pos { return n.Pos }

// If is `if (Cond) Then [else Else]`. Else is nil when absent; the
// transformer synthesizes an empty one when it needs to insert statements.
type If struct {
	Cond Expr
	Then *Block
	Else *Block
	Pos  Pos
}

func (*If) stmtNode()        {}
func (n *If) Position() Pos  { return n.Pos }

// While is `while (Cond) Body`.
type While struct {
	Cond Expr
	Body *Block
	Pos  Pos
}

func (*While) stmtNode()       {}
func (n *While) Position() Pos { return n.Pos }

// Return is `return Value;`.
type Return struct {
	Value Expr
	Pos   Pos
}

func (*Return) stmtNode()       {}
func (n *Return) Position() Pos { return n.Pos }
