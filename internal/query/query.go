// Package query selects outline nodes with boolean expressions such as
// `depth <= 2 && summary != ""`.
package query

import (
	"fmt"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is what an expression sees for each node.
type Env struct {
	Depth    int      `expr:"depth"`
	Row      int      `expr:"row"`
	Columns  int      `expr:"columns"`
	Children int      `expr:"children"`
	Leaf     bool     `expr:"leaf"`
	Title    string   `expr:"title"`
	Summary  string   `expr:"summary"`
	Cells    []string `expr:"cells"`
	Path     []string `expr:"path"`
}

// Filter is a compiled expression.
type Filter struct {
	src     string
	program *vm.Program
}

// Compile checks src against Env and requires a boolean result.
func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.src
}

// EnvFor builds the expression environment of n.
func EnvFor(n outline.Node) Env {
	title, _ := n.Cell(0)
	summary, _ := n.Cell(1)
	return Env{
		Depth:    n.Depth(),
		Row:      n.Row(),
		Columns:  n.ColumnCount(),
		Children: n.ChildCount(),
		Leaf:     n.ChildCount() == 0,
		Title:    title,
		Summary:  summary,
		Cells:    n.Cells(),
		Path:     n.Path(),
	}
}

// Match evaluates the filter for n.
func (f *Filter) Match(n outline.Node) (bool, error) {
	out, err := expr.Run(f.program, EnvFor(n))
	if err != nil {
		return false, fmt.Errorf("run filter %q: %w", f.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.src, out)
	}
	return ok, nil
}

// Select returns the ids of matching nodes in source order.
func Select(t *outline.Tree, f *Filter) ([]outline.NodeID, error) {
	ids := []outline.NodeID{}
	var err error
	t.Walk(func(n outline.Node) bool {
		if err != nil {
			return false
		}
		var ok bool
		ok, err = f.Match(n)
		if ok {
			ids = append(ids, n.ID())
		}
		return err == nil
	})
	return ids, err
}
