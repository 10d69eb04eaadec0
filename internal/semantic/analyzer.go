package semantic

import (
	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/catalog"
	"github.com/cwbudde/pineql/internal/diag"
	"github.com/cwbudde/pineql/internal/types"
)

// Analyzer walks a parsed Program, declaring and resolving names against a
// chain of SymbolTables and the built-in catalog, grounded on go-dws's
// analyzer.go/pass.go split: this is the single Pass pine's
// semantics need (no forward-declaration or overload-resolution passes,
// since pine has neither classes nor function overloading).
type Analyzer struct {
	catalog *catalog.Catalog
	sink    *diag.Sink
	scope   *SymbolTable
}

// New creates an Analyzer reporting into sink and resolving built-ins
// against cat.
func New(cat *catalog.Catalog, sink *diag.Sink) *Analyzer {
	return &Analyzer{catalog: cat, sink: sink, scope: NewSymbolTable()}
}

// Analyze walks the whole program: the version/script declarations, then
// every top-level statement, then sweeps the root scope for unused
// variables.
func (a *Analyzer) Analyze(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		a.walkStatement(stmt)
	}
	a.sweepUnused(a.scope)
}

// pushScope enters a new nested scope and returns a function that pops it,
// sweeping it for unused variables first.
func (a *Analyzer) pushScope() func() {
	parent := a.scope
	a.scope = NewEnclosedSymbolTable(parent)
	child := a.scope
	return func() {
		a.sweepUnused(child)
		a.scope = parent
	}
}

func (a *Analyzer) sweepUnused(st *SymbolTable) {
	for _, sym := range st.Locals() {
		if sym.Kind == SymVar && sym.Used == 0 {
			a.sink.Add(diag.Diagnostic{
				Severity: diag.Warning,
				Code:     "W002",
				Message:  "variable '" + sym.Name + "' is declared but never used",
				Line:     sym.Declared.Line,
				Column:   sym.Declared.Column,
			})
		}
	}
}

// declareVar defines name in the current scope, reporting R200 if it
// redeclares a name already defined in this exact scope, or W001 if it
// shadows a declaration from an enclosing scope.
func (a *Analyzer) declareVar(name string, typ types.Type, pos ast.Node) *Symbol {
	if _, ok := a.scope.DefineLocal(name); ok {
		a.sink.Add(diag.Diagnostic{
			Severity: diag.Error,
			Code:     "R200",
			Message:  "'" + name + "' is already declared in this scope",
			Line:     pos.Pos().Line,
			Column:   pos.Pos().Column,
		})
	} else if _, ok := a.scope.ResolveOuter(name); ok {
		a.sink.Add(diag.Diagnostic{
			Severity: diag.Warning,
			Code:     "W001",
			Message:  "'" + name + "' shadows a variable declared in an enclosing scope",
			Line:     pos.Pos().Line,
			Column:   pos.Pos().Column,
		})
	}
	sym := &Symbol{Name: name, Kind: SymVar, Type: typ, Declared: pos.Pos()}
	a.scope.Define(sym)
	return sym
}

func (a *Analyzer) errorAt(code string, pos ast.Node, message string) {
	a.sink.Add(diag.Diagnostic{
		Severity: diag.Error,
		Code:     code,
		Message:  message,
		Line:     pos.Pos().Line,
		Column:   pos.Pos().Column,
	})
}
