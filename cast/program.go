package cast

// Param is a function parameter: a scalar, or a one-dimensional array
// (IsArray == true). Arrays are read-only query inputs — the grammar does
// not admit array-valued locals, only array-valued parameters.
type Param struct {
	Name    string
	Type    string // "int" or "float"
	IsArray bool
	Pos     Pos
}

// FuncDecl is the single transformable function definition in the
// translation unit. Params is mutated in place by the transformer when it
// materializes `*`-tracked array parameters (§3) or the `__index`
// parameter (§4.7 ONE_DIFFER case).
type FuncDecl struct {
	Name    string
	Params  []*Param
	Return  string // "int", "float", or "void"
	Body    *Block
	Pos     Pos
}

// ParamIndex returns the index of the parameter named name, or -1.
func (f *FuncDecl) ParamIndex(name string) int {
	for i, p := range f.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// AddParam appends a new parameter to the function signature.
func (f *FuncDecl) AddParam(p *Param) {
	f.Params = append(f.Params, p)
}

// Program is a C translation unit: a sequence of function definitions. The
// reference parser accepts any number of them; MainFunction, which the
// transformer uses, returns an error unless there is exactly one.
type Program struct {
	Functions []*FuncDecl
}

// MainFunction returns the program's only function, erroring if the
// program does not have exactly one.
func (p *Program) MainFunction() (*FuncDecl, error) {
	if len(p.Functions) != 1 {
		return nil, errNotSingleFunction(len(p.Functions))
	}
	return p.Functions[0], nil
}
