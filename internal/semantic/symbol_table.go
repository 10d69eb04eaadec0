// Package semantic walks the parsed tree, resolving identifiers and calls
// against a chain of scopes and the built-in catalog, and checking
// qualifier-lattice assignability. Grounded on go-dws's
// internal/semantic/symbol_table.go scope-chaining shape, generalized from
// DWScript's case-insensitive name resolution to pine's case-sensitive one
// and from nominal-type symbols to qualifier-typed ones.
package semantic

import (
	"github.com/cwbudde/pineql/internal/lexer"
	"github.com/cwbudde/pineql/internal/types"
)

// SymbolKind distinguishes what a Symbol names.
type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymParam
	SymFunc
	SymType
	SymImport
)

// Symbol is one declared name: a variable, function, user type, or import
// alias.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     types.Type
	Declared lexer.Position
	Used     int
	Params   []Param // for SymFunc only
}

// Param mirrors ast.Param's shape without importing the ast package, so
// function symbols can describe their signature without a parse-tree
// dependency.
type Param struct {
	Name    string
	Type    types.Type
	HasType bool
}

// SymbolTable is one lexical scope, chained to its parent via outer:
// scopes nest, and inner declarations may shadow outer ones.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
}

// NewSymbolTable creates a root scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable creates a scope nested inside outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol), outer: outer}
}

// Outer returns the enclosing scope, or nil at the root.
func (st *SymbolTable) Outer() *SymbolTable { return st.outer }

// DefineLocal reports whether name is already declared in this exact
// scope (not an outer one) — used to detect shadowing versus redeclaring.
func (st *SymbolTable) DefineLocal(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Define adds sym to the current scope, overwriting any existing local
// definition of the same name.
func (st *SymbolTable) Define(sym *Symbol) {
	st.symbols[sym.Name] = sym
}

// Resolve looks up name in this scope, then each enclosing scope in turn.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.outer != nil {
		return st.outer.Resolve(name)
	}
	return nil, false
}

// ResolveOuter looks up name starting at the enclosing scope, skipping the
// current one — used to decide whether a new declaration shadows something
// from outside rather than merely redeclaring itself.
func (st *SymbolTable) ResolveOuter(name string) (*Symbol, bool) {
	if st.outer == nil {
		return nil, false
	}
	return st.outer.Resolve(name)
}

// Locals returns every symbol declared directly in this scope, for the
// post-walk unused-variable sweep.
func (st *SymbolTable) Locals() []*Symbol {
	out := make([]*Symbol, 0, len(st.symbols))
	for _, sym := range st.symbols {
		out = append(out, sym)
	}
	return out
}
