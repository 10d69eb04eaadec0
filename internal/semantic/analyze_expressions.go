package semantic

import (
	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/catalog"
	"github.com/cwbudde/pineql/internal/types"
)

// resolveExpr computes an expression's qualifier-typed type, resolving
// identifiers and calls against scope and the built-in catalog as it
// goes. It always returns a usable Type, falling back to
// `series any` for anything it cannot pin down precisely, so callers never
// need to special-case a zero value.
func (a *Analyzer) resolveExpr(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return a.resolveLiteral(e)

	case *ast.Identifier:
		return a.resolveIdentifier(e)

	case *ast.BinaryOp:
		return a.resolveBinaryOp(e)

	case *ast.UnaryOp:
		operand := a.resolveExpr(e.Operand)
		base := operand.Base
		if e.Op == "not" {
			base = types.Bool
		}
		return types.Type{Qualifier: operand.Qualifier, Base: base}

	case *ast.FunctionCall:
		return a.resolveCall(e)

	case *ast.TernaryOp:
		a.resolveExpr(e.Cond)
		thenType := a.resolveExpr(e.Then)
		elseType := a.resolveExpr(e.Else)
		q := types.BinaryResultQualifier(thenType.Qualifier, elseType.Qualifier)
		if types.Assignable(thenType, elseType) {
			return types.Type{Qualifier: q, Base: thenType.Base}
		}
		if types.Assignable(elseType, thenType) {
			return types.Type{Qualifier: q, Base: elseType.Base}
		}
		return types.Type{Qualifier: q, Base: types.Any}

	case *ast.ArrayAccess:
		baseType := a.resolveExpr(e.Base)
		for _, idx := range e.Indices {
			a.resolveExpr(idx)
		}
		elem := types.BaseType(types.Any)
		switch bt := baseType.Base.(type) {
		case types.Array:
			elem = bt.Elem
		case types.Matrix:
			elem = bt.Elem
		}
		return types.Type{Qualifier: types.Series, Base: elem}

	case *ast.ArrayLiteral:
		elemBase := types.BaseType(types.Any)
		q := types.Const
		for i, el := range e.Elements {
			t := a.resolveExpr(el)
			q = types.BinaryResultQualifier(q, t.Qualifier)
			if i == 0 {
				elemBase = t.Base
			}
		}
		return types.Type{Qualifier: q, Base: types.Array{Elem: elemBase}}

	case *ast.IfExpr:
		a.walkIfExpr(e)
		return types.New(types.Any)

	case *ast.ForExpr:
		a.walkForExpr(e)
		return types.New(types.Any)

	case *ast.WhileExpr:
		a.walkWhileExpr(e)
		return types.New(types.Any)

	case *ast.SwitchExpr:
		a.walkSwitchExpr(e)
		return types.New(types.Any)

	default:
		return types.New(types.Any)
	}
}

func (a *Analyzer) resolveLiteral(lit *ast.Literal) types.Type {
	switch lit.Kind {
	case ast.LiteralInt:
		return types.Qualified(types.Const, types.Int)
	case ast.LiteralFloat:
		return types.Qualified(types.Const, types.Float)
	case ast.LiteralString:
		return types.Qualified(types.Const, types.String)
	case ast.LiteralBool:
		return types.Qualified(types.Const, types.Bool)
	case ast.LiteralColor:
		return types.Qualified(types.Const, types.Color)
	default: // LiteralNA
		return types.Qualified(types.Const, types.NA)
	}
}

// resolveIdentifier resolves a (possibly dotted) name against the local
// scope chain first, then the built-in catalog, reporting R201 if neither
// knows it.
func (a *Analyzer) resolveIdentifier(id *ast.Identifier) types.Type {
	if sym, ok := a.scope.Resolve(id.Name); ok {
		sym.Used++
		return sym.Type
	}
	if v, ok := a.catalog.LookupVariable(id.Name); ok {
		return types.ParseHint(v.Type)
	}
	a.errorAt("R201", id, "undefined identifier '"+id.Name+"'")
	return types.New(types.Any)
}

func (a *Analyzer) resolveBinaryOp(b *ast.BinaryOp) types.Type {
	left := a.resolveExpr(b.Left)
	right := a.resolveExpr(b.Right)
	q := types.BinaryResultQualifier(left.Qualifier, right.Qualifier)
	base := types.BinaryResultBase(b.Op, left.Base, right.Base)
	return types.Type{Qualifier: q, Base: base}
}

// resolveCall resolves a (possibly dotted, possibly generic) call against
// user-defined functions first, falling back to the built-in catalog, and
// checks argument count/types against the declared signature.
func (a *Analyzer) resolveCall(call *ast.FunctionCall) types.Type {
	if sym, ok := a.scope.Resolve(call.DottedName); ok && sym.Kind == SymFunc {
		sym.Used++
		a.checkUserCallArity(call, sym)
		return sym.Type
	}

	fn, ok := a.catalog.LookupFunction(call.DottedName)
	if !ok {
		for _, arg := range call.Args {
			a.resolveExpr(arg.Value)
		}
		a.errorAt("R201", call, "undefined function '"+call.DottedName+"'")
		return types.New(types.Any)
	}
	a.checkBuiltinArgs(call, fn)
	return types.ParseHint(fn.ReturnType)
}

// checkUserCallArity resolves every argument expression (for usage
// tracking and nested diagnostics) and flags only the condition it can
// assert confidently: more positional arguments than the function
// declares parameters for. Required-argument checking is left to
// checkBuiltinArgs, which has an explicit Required flag per parameter;
// user FunctionDef params carry no such flag beyond "has a default
// expression," which is not threaded through to the call site here.
func (a *Analyzer) checkUserCallArity(call *ast.FunctionCall, sym *Symbol) {
	for _, arg := range call.Args {
		a.resolveExpr(arg.Value)
	}
	if len(call.Args) > len(sym.Params) {
		a.errorAt("R202", call, "too many arguments to '"+call.DottedName+"': expected at most "+itoa(len(sym.Params)))
	}
}

// checkBuiltinArgs validates a built-in call's argument count against its
// catalog signature and, for positional arguments, their assignability
// against the declared parameter type.
func (a *Analyzer) checkBuiltinArgs(call *ast.FunctionCall, fn catalog.Function) {
	argTypes := make([]types.Type, len(call.Args))
	for i, arg := range call.Args {
		argTypes[i] = a.resolveExpr(arg.Value)
	}

	required := 0
	for _, p := range fn.Params {
		if p.Required {
			required++
		}
	}
	if len(call.Args) < required {
		a.errorAt("R202", call, "too few arguments to '"+call.DottedName+"': expected at least "+itoa(required))
		return
	}
	if !fn.Variadic && len(call.Args) > len(fn.Params) {
		a.errorAt("R202", call, "too many arguments to '"+call.DottedName+"': expected at most "+itoa(len(fn.Params)))
		return
	}

	for i, arg := range call.Args {
		if arg.Name != "" || i >= len(fn.Params) {
			continue // named args are not type-checked; variadic tail is untyped
		}
		paramType := types.ParseHint(fn.Params[i].Type)
		if !types.Assignable(paramType, argTypes[i]) {
			a.errorAt("R202", arg.Value, "argument "+itoa(i+1)+" to '"+call.DottedName+"' expects "+paramType.String()+", got "+argTypes[i].String())
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}
