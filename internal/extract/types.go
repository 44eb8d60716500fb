// Package extract contains the pattern extractors that scan stripped C/C++
// source text for structural facts: #define statements, magic numbers,
// struct declarations, table (array) declarations, function call edges, and
// struct variable value bindings. All extractors are best-effort lexical
// scanners; absence of matches is never an error.
package extract

// Define is one #define statement, continuation lines already joined and
// normalized. IsMacro is true for function-like macros (name immediately
// followed by an opening parenthesis).
type Define struct {
	Name    string
	Text    string
	Line    int
	IsMacro bool
}

// MagicNumber is one numeric literal found outside comments, strings, and
// identifiers. Column is 1-based.
type MagicNumber struct {
	Line    int
	Column  int
	Literal string
	Context string
}

// StructMember is one member of a struct declaration. Array sizes and
// bit-field widths are folded into the Type text.
type StructMember struct {
	Type string
	Name string
}

// StructDecl is one struct or typedef-struct declaration. Name is the typedef
// alias or the struct tag; Tag may be empty for anonymous typedef structs.
// Member order is declaration order and is significant for value binding.
type StructDecl struct {
	Name    string
	Tag     string
	Line    int
	Members []StructMember
}

// TableDecl is one initialized array declaration, captured as raw text from
// the declaration head through the terminating semicolon.
type TableDecl struct {
	Name string
	Line int
	Text string
}

// CallEdge is one call site: Caller invoked Callee. Repeated calls produce
// one edge each; self-recursion is a valid edge.
type CallEdge struct {
	Caller string
	Callee string
}

// ValueBinding is one (variable, member) pair from a struct variable
// declaration, bound positionally from the initializer. ElementIndex is -1
// for non-array variables.
type ValueBinding struct {
	StructName    string
	VarName       string
	MemberName    string
	Value         string
	ArraySize     string
	DeclarationID int
	ElementIndex  int
}
