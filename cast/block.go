package cast

// Block is a compound statement: an ordered, mutable list of statements.
// The original transformer tracked a lazily-built node→parent map so it
// could splice statements into "the enclosing block" mid-traversal; this
// port instead threads the enclosing *Block explicitly through the
// traversal (see transform package), so insertion is just a slice
// operation on the Block the caller already has in hand.
type Block struct {
	Stmts []Stmt
}

// NewBlock returns an empty compound statement.
func NewBlock() *Block {
	return &Block{}
}

// IndexOf returns the index of stmt in the block, or -1 if absent.
func (b *Block) IndexOf(stmt Stmt) int {
	for i, s := range b.Stmts {
		if s == stmt {
			return i
		}
	}
	return -1
}

// InsertAt inserts stmt at index idx, shifting later statements right.
func (b *Block) InsertAt(idx int, stmt Stmt) {
	b.Stmts = append(b.Stmts, nil)
	copy(b.Stmts[idx+1:], b.Stmts[idx:])
	b.Stmts[idx] = stmt
}

// InsertManyAt inserts stmts at index idx, preserving their order.
func (b *Block) InsertManyAt(idx int, stmts ...Stmt) {
	for i, s := range stmts {
		b.InsertAt(idx+i, s)
	}
}

// InsertBefore inserts stmt immediately before the first occurrence of
// anchor. It is a no-op if anchor is not found.
func (b *Block) InsertBefore(anchor Stmt, stmt Stmt) {
	idx := b.IndexOf(anchor)
	if idx < 0 {
		return
	}
	b.InsertAt(idx, stmt)
}

// InsertAfter inserts stmt immediately after the first occurrence of
// anchor. It is a no-op if anchor is not found.
func (b *Block) InsertAfter(anchor Stmt, stmt Stmt) {
	idx := b.IndexOf(anchor)
	if idx < 0 {
		return
	}
	b.InsertAt(idx+1, stmt)
}

// Prepend inserts stmts at the start of the block.
func (b *Block) Prepend(stmts ...Stmt) {
	b.InsertManyAt(0, stmts...)
}

// Append adds stmts to the end of the block.
func (b *Block) Append(stmts ...Stmt) {
	b.Stmts = append(b.Stmts, stmts...)
}

// SkipAssumePrefixIndex returns the index of the first statement that is
// not an `assume(...)` call, i.e. the position new non-assume
// instrumentation should be inserted at (so assumes always lead a block).
// It returns 0 if the block is empty or has no leading assumes.
func (b *Block) SkipAssumePrefixIndex() int {
	for i, s := range b.Stmts {
		es, ok := s.(*ExprStmt)
		if !ok {
			return i
		}
		call, ok := es.X.(*Call)
		if !ok || call.Name != CallAssume {
			return i
		}
	}
	return len(b.Stmts)
}
