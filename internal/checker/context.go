// Package checker implements the structural type checker of spec §4.3:
// a post-order walk over the AST that threads a scoped environment and
// accumulates diagnostics without aborting on the first error. It is
// grounded on the teacher's internal/semantic pass, whose pass_context
// carries the same kind of "current class / current function" state
// this package's context struct does, rather than global variables
// (spec §9's note that a from-scratch port should avoid C's globals).
package checker

import (
	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/diag"
	"github.com/cwbudde/lark/internal/module"
	"github.com/cwbudde/lark/internal/types"
	"github.com/cwbudde/lark/internal/typeenv"
)

// ImportLoader resolves an import path to a freshly parsed and checked
// file, returning the Simple descriptor of its top-level locals (spec
// §4.3's Import contract). The checker package depends on it as an
// interface rather than on internal/parser directly, so that parser
// can in turn depend on checker-adjacent packages without a cycle. No
// implementation exists in this repository: cmd/lark passes nil, so an
// import whose path is not already in the module cache is reported as
// a diagnostic.
type ImportLoader interface {
	Load(path string) (*types.Simple, error)
}

// Checker drives the post-order walk of spec §4.3.
type Checker struct {
	diags   *diag.Bag
	cache   *module.Cache
	imports ImportLoader
	file    string

	currentClass *types.Simple
	currentFunc  *types.Functor
}

// New builds a Checker. cache should already have LoadBuiltins applied;
// imports may be nil when the caller never exercises the Import
// statement (e.g. unit tests of a single file).
func New(file string, cache *module.Cache, imports ImportLoader) *Checker {
	return &Checker{diags: diag.NewBag(), cache: cache, imports: imports, file: file}
}

// Diagnostics returns every diagnostic accumulated so far.
func (c *Checker) Diagnostics() *diag.Bag { return c.diags }

func (c *Checker) report(pos ast.Node, message string) {
	c.diags.ReportAlways(diag.Diagnostic{
		File:    c.file,
		Pos:     pos.Pos(),
		Message: message,
		Phase:   diag.PhaseCheck,
	})
}

func (c *Checker) warn(pos ast.Node, message string) {
	c.diags.ReportAlways(diag.Diagnostic{
		File:     c.file,
		Pos:      pos.Pos(),
		Message:  message,
		Severity: diag.SeverityWarning,
		Phase:    diag.PhaseCheck,
	})
}

// baseEnvironment seeds a top-level environment with the built-in
// typedefs and builtin-module bindings per spec §4.3's opening
// sentence.
func (c *Checker) baseEnvironment() *typeenv.Environment {
	env := typeenv.New()
	env.DefineTypedef("Number", types.Number)
	env.DefineTypedef("Bool", types.Bool)
	env.DefineTypedef("Nil", types.Nil)
	env.DefineTypedef("Atom", types.Atom)
	env.DefineTypedef("String", types.String)
	env.DefineTypedef("Never", types.Never)
	env.DefineTypedef("Any", types.Any)
	env.DefineTypedef("List", types.List)
	env.DefineTypedef("Map", types.Map)
	env.DefineTypedef("Task", types.Task)

	if c.cache != nil {
		for _, name := range []string{"list", "map", "task"} {
			if t, ok := c.cache.Builtin(name); ok {
				env.DefineLocal(name, t)
			}
		}
	}
	return env
}

// Check type-checks an entire program and returns its diagnostics bag.
func (c *Checker) Check(program *ast.Program) *diag.Bag {
	env := c.baseEnvironment()
	for _, stmt := range program.Statements {
		c.checkStmt(stmt, env)
	}
	return c.diags
}
