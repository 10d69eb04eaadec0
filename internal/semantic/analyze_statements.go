package semantic

import (
	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/types"
)

// walkStatement dispatches on the concrete statement type.
func (a *Analyzer) walkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VersionDecl:
		// Validity (R001/R003) is a rule-engine concern, not a scope one.

	case *ast.ScriptDecl:
		for _, arg := range s.Args {
			a.resolveExpr(arg.Value)
		}

	case *ast.VarDecl:
		a.walkVarDecl(s)

	case *ast.Assignment:
		a.walkAssignment(s)

	case *ast.FunctionDef:
		a.walkFunctionDef(s)

	case *ast.TypeDef:
		a.scope.Define(&Symbol{Name: s.Name, Kind: SymType, Type: types.New(types.Named(s.Name)), Declared: s.Pos()})

	case *ast.ImportDecl:
		name := s.Alias
		if name == "" {
			name = s.Path
		}
		a.scope.Define(&Symbol{Name: name, Kind: SymImport, Type: types.New(types.Any), Declared: s.Pos()})

	case *ast.ExpressionStatement:
		if s.Expr != nil {
			a.resolveExpr(s.Expr)
		}

	case *ast.BreakStatement, *ast.ContinueStatement:
		// No scope effects.

	case *ast.IfExpr:
		a.walkIfExpr(s)

	case *ast.ForExpr:
		a.walkForExpr(s)

	case *ast.WhileExpr:
		a.walkWhileExpr(s)

	case *ast.SwitchExpr:
		a.walkSwitchExpr(s)
	}
}

func (a *Analyzer) walkVarDecl(s *ast.VarDecl) {
	valueType := a.resolveExpr(s.Value)

	if s.IsTuple {
		for _, name := range s.Names {
			a.declareVar(name, valueType, s)
		}
		return
	}

	declType := valueType
	if s.Qualifier != "" || s.TypeHint != "" {
		hint := s.TypeHint
		if s.Qualifier != "" {
			hint = s.Qualifier + " " + hint
		}
		declType = types.ParseHint(hint)
		if !types.Assignable(declType, valueType) {
			a.errorAt("R202", s, "cannot assign "+valueType.String()+" to a variable declared as "+declType.String())
		}
	}
	a.declareVar(s.Names[0], declType, s)
}

func (a *Analyzer) walkAssignment(s *ast.Assignment) {
	valueType := a.resolveExpr(s.Value)

	ident, ok := s.Target.(*ast.Identifier)
	if !ok {
		a.resolveExpr(s.Target)
		return
	}
	sym, ok := a.scope.Resolve(ident.Name)
	if !ok {
		a.errorAt("R201", s, "assignment to undeclared variable '"+ident.Name+"'")
		return
	}
	if !types.Assignable(sym.Type, valueType) {
		a.errorAt("R202", s, "cannot assign "+valueType.String()+" to '"+ident.Name+"' declared as "+sym.Type.String())
	}
}

func (a *Analyzer) walkFunctionDef(s *ast.FunctionDef) {
	params := make([]Param, 0, len(s.Params))
	for _, p := range s.Params {
		pt := Param{Name: p.Name}
		if p.Type != "" {
			pt.Type = types.ParseHint(p.Type)
			pt.HasType = true
		}
		params = append(params, pt)
	}
	retType := types.New(types.Any)
	if s.ReturnType != "" {
		retType = types.ParseHint(s.ReturnType)
	}
	a.scope.Define(&Symbol{Name: s.Name, Kind: SymFunc, Type: retType, Declared: s.Pos(), Params: params})

	pop := a.pushScope()
	defer pop()

	for i, p := range s.Params {
		typ := types.New(types.Any)
		if params[i].HasType {
			typ = params[i].Type
		}
		if p.Default != nil {
			a.resolveExpr(p.Default)
		}
		a.scope.Define(&Symbol{Name: p.Name, Kind: SymParam, Type: typ, Declared: s.Pos()})
	}

	if s.Body != nil {
		for _, stmt := range s.Body.Statements {
			a.walkStatement(stmt)
		}
	}
	if s.InlineBody != nil {
		a.resolveExpr(s.InlineBody)
	}
}

func (a *Analyzer) walkBlock(b *ast.Block) {
	pop := a.pushScope()
	defer pop()
	for _, stmt := range b.Statements {
		a.walkStatement(stmt)
	}
}

func (a *Analyzer) walkIfExpr(s *ast.IfExpr) {
	for _, br := range s.Branches {
		if br.Cond != nil {
			a.resolveExpr(br.Cond)
		}
		a.walkBlock(br.Body)
	}
}

func (a *Analyzer) walkForExpr(s *ast.ForExpr) {
	startType := a.resolveExpr(s.Start)
	a.resolveExpr(s.End)
	if s.Step != nil {
		a.resolveExpr(s.Step)
	}

	pop := a.pushScope()
	defer pop()
	a.scope.Define(&Symbol{Name: s.Var, Kind: SymVar, Type: startType, Declared: s.Pos()})
	for _, stmt := range s.Body.Statements {
		a.walkStatement(stmt)
	}
}

func (a *Analyzer) walkWhileExpr(s *ast.WhileExpr) {
	a.resolveExpr(s.Cond)
	a.walkBlock(s.Body)
}

func (a *Analyzer) walkSwitchExpr(s *ast.SwitchExpr) {
	if s.Subject != nil {
		a.resolveExpr(s.Subject)
	}
	for _, c := range s.Cases {
		if c.Test != nil {
			a.resolveExpr(c.Test)
		}
		a.walkBlock(c.Body)
	}
}
