// Package script evaluates expr-lang expressions against a workbook, so
// automation steps can be written as one-liners such as
//
//	sheet("Data").Range("A1").End(Down).Address()
package script

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/javajack/xlwrap"
)

// Evaluator runs expressions over a single workbook.
type Evaluator struct {
	wb    *xlwrap.Workbook
	env   map[string]any
	cache sync.Map // expression string → compiled *vm.Program
}

// NewEvaluator creates an evaluator bound to wb.
func NewEvaluator(wb *xlwrap.Workbook) *Evaluator {
	e := &Evaluator{wb: wb}
	e.env = map[string]any{
		"sheet":   wb.Worksheet,
		"sheetAt": wb.WorksheetAt,
		"active":  wb.ActiveSheet,
		"sheets":  e.sheetNames,

		"Up":    xlwrap.Up,
		"Down":  xlwrap.Down,
		"Left":  xlwrap.Left,
		"Right": xlwrap.Right,

		"Ascending":  xlwrap.Ascending,
		"Descending": xlwrap.Descending,
		"ByRows":     xlwrap.ByRows,
		"ByColumns":  xlwrap.ByColumns,
	}
	return e
}

func (e *Evaluator) sheetNames() []string {
	var names []string
	for _, ws := range e.wb.Worksheets() {
		names = append(names, ws.Name())
	}
	return names
}

// Evaluate runs expression. A cell Value result is unwrapped to nil,
// float64, string or time.Time; a Range result is returned as is.
func (e *Evaluator) Evaluate(expression string) (any, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := e.compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	result, err := expr.Run(program, e.env)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression %q: %w", expression, err)
	}
	if v, ok := result.(xlwrap.Value); ok {
		return v.Interface(), nil
	}
	return result, nil
}

// Check compiles expression without running it.
func (e *Evaluator) Check(expression string) error {
	if _, err := e.compile(expression); err != nil {
		return fmt.Errorf("compile expression %q: %w", expression, err)
	}
	return nil
}

func (e *Evaluator) compile(expression string) (*vm.Program, error) {
	if cached, ok := e.cache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.Env(e.env))
	if err != nil {
		return nil, err
	}
	e.cache.Store(expression, program)
	return program, nil
}
