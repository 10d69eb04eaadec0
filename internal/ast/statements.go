package ast

import (
	"strings"

	"github.com/cwbudde/pineql/internal/lexer"
)

// Block is an indented sequence of statements.
type Block struct {
	Statements []Statement
}

func (b *Block) String() string {
	var out strings.Builder
	for _, s := range b.Statements {
		out.WriteString("    ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n    "))
		out.WriteString("\n")
	}
	return out.String()
}

// VersionDecl is `//@version=N`.
type VersionDecl struct {
	Token   lexer.Token
	Version int
}

func (v *VersionDecl) statementNode()     {}
func (v *VersionDecl) Pos() lexer.Position { return v.Token.Pos }
func (v *VersionDecl) String() string      { return "//@version=" + itoa(v.Version) }

// ScriptKind enumerates the three script declaration forms.
type ScriptKind int

const (
	ScriptIndicator ScriptKind = iota
	ScriptStrategy
	ScriptLibrary
)

func (k ScriptKind) String() string {
	switch k {
	case ScriptStrategy:
		return "strategy"
	case ScriptLibrary:
		return "library"
	default:
		return "indicator"
	}
}

// ScriptDecl is the `indicator(...)` / `strategy(...)` / `library(...)`
// top-of-file declaration.
type ScriptDecl struct {
	Token lexer.Token
	Kind  ScriptKind
	Args  []Arg
}

func (s *ScriptDecl) statementNode()     {}
func (s *ScriptDecl) Pos() lexer.Position { return s.Token.Pos }
func (s *ScriptDecl) String() string {
	var parts []string
	for _, a := range s.Args {
		parts = append(parts, a.Value.String())
	}
	return s.Kind.String() + "(" + strings.Join(parts, ", ") + ")"
}

// VarDecl declares a variable with `=`, optionally with an explicit
// qualifier/type hint, or as a tuple destructuring `[a, b] = expr`.
type VarDecl struct {
	Token     lexer.Token
	Names     []string // len>1 and IsTuple==true for `[a, b] = ...`
	Qualifier string   // "", "const", "input", "simple", or "series"
	TypeHint  string   // base type name, or "" if inferred
	Value     Expression
	IsTuple   bool
}

func (v *VarDecl) statementNode()     {}
func (v *VarDecl) Pos() lexer.Position { return v.Token.Pos }
func (v *VarDecl) String() string {
	name := strings.Join(v.Names, ", ")
	if v.IsTuple {
		name = "[" + name + "]"
	}
	return name + " = " + v.Value.String()
}

// Assignment is `target := value`, rebinding an existing name.
type Assignment struct {
	Token  lexer.Token
	Target Expression
	Value  Expression
}

func (a *Assignment) statementNode()     {}
func (a *Assignment) Pos() lexer.Position { return a.Token.Pos }
func (a *Assignment) String() string      { return a.Target.String() + " := " + a.Value.String() }

// Param is a function parameter.
type Param struct {
	Name    string
	Type    string // "" if untyped
	Default Expression
}

// FunctionDef declares a function, either as a one-line expression body or
// an indented block body.
type FunctionDef struct {
	Token      lexer.Token
	Name       string
	Params     []Param
	Body       *Block      // nil when InlineBody is set
	InlineBody Expression  // nil when Body is set
	ReturnType string      // "" if inferred
	Exported   bool
	IsMethod   bool
}

func (f *FunctionDef) statementNode()     {}
func (f *FunctionDef) Pos() lexer.Position { return f.Token.Pos }
func (f *FunctionDef) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.Name)
	}
	prefix := ""
	if f.Exported {
		prefix += "export "
	}
	if f.IsMethod {
		prefix += "method "
	}
	head := prefix + f.Name + "(" + strings.Join(params, ", ") + ") =>"
	if f.InlineBody != nil {
		return head + " " + f.InlineBody.String()
	}
	if f.Body != nil {
		return head + "\n" + f.Body.String()
	}
	return head
}

// Field is a TypeDef member.
type Field struct {
	Name string
	Type string
}

// TypeDef declares a user-defined record-like type.
type TypeDef struct {
	Token    lexer.Token
	Name     string
	Fields   []Field
	Exported bool
}

func (t *TypeDef) statementNode()     {}
func (t *TypeDef) Pos() lexer.Position { return t.Token.Pos }
func (t *TypeDef) String() string {
	prefix := ""
	if t.Exported {
		prefix = "export "
	}
	return prefix + "type " + t.Name
}

// ImportDecl declares `import path as alias`.
type ImportDecl struct {
	Token lexer.Token
	Path  string
	Alias string // "" if not aliased
}

func (i *ImportDecl) statementNode()     {}
func (i *ImportDecl) Pos() lexer.Position { return i.Token.Pos }
func (i *ImportDecl) String() string {
	if i.Alias != "" {
		return "import " + i.Path + " as " + i.Alias
	}
	return "import " + i.Path
}

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Token lexer.Token
	Expr  Expression
}

func (e *ExpressionStatement) statementNode()     {}
func (e *ExpressionStatement) Pos() lexer.Position { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expr != nil {
		return e.Expr.String()
	}
	return ""
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
