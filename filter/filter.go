// Package filter evaluates expr-lang boolean expressions against result items
// such as bars, tickers and snapshots.
//
// Expressions see the exported fields and methods of the item type directly:
//
//	Close > Open and Volume > 1e6
//	Market == "stocks" and like(Name, "bank")
//	LastPrice() > 100
package filter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
)

const dateLayout = "2006-01-02"

// programs caches compiled programs per item type and expression
var programs = newProgramCache(64)

// Filter is a compiled expression over values of type T. A nil *Filter
// matches everything.
type Filter[T any] struct {
	expression string
	program    *vm.Program
}

// Compile compiles expression for items of type T. The expression must
// evaluate to a boolean.
func Compile[T any](expression string) (*Filter[T], error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	var zero T
	key := reflect.TypeOf(&zero).Elem().String() + "\x00" + expression
	if program, ok := programs.Get(key); ok {
		return &Filter[T]{expression: expression, program: program}, nil
	}

	opts := append([]expr.Option{expr.Env(zero), expr.AsBool()}, helpers()...)
	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, compilationError(expression, err)
	}

	programs.Put(key, program)
	return &Filter[T]{expression: expression, program: program}, nil
}

// Match reports whether item satisfies the expression
func (f *Filter[T]) Match(item T) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, item)
	if err != nil {
		return false, err
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, not bool", out)
	}
	return matched, nil
}

// Apply returns the items that satisfy the expression, preserving order.
// Evaluation stops at the first item that fails with a runtime error.
func (f *Filter[T]) Apply(items []T) ([]T, error) {
	if f == nil {
		return items, nil
	}

	matched := make([]T, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, &EvaluationError{
				Expression: f.expression,
				Index:      i,
				Reason:     err.Error(),
				Err:        err,
			}
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// String returns the original expression
func (f *Filter[T]) String() string {
	if f == nil {
		return ""
	}
	return f.expression
}

func compilationError(expression string, err error) *CompilationError {
	compErr := &CompilationError{
		Expression: expression,
		Reason:     "failed to compile expression",
		Position:   -1,
		Err:        err,
	}

	var fileErr *file.Error
	if errors.As(err, &fileErr) {
		compErr.Reason = fileErr.Message
		compErr.Position = fileErr.Column
	}
	return compErr
}

// helpers are the functions available to every expression in addition to
// the item's own fields and methods.
func helpers() []expr.Option {
	return []expr.Option{
		expr.Function("like", func(params ...any) (any, error) {
			return strings.Contains(strings.ToLower(params[0].(string)), strings.ToLower(params[1].(string))), nil
		}, new(func(string, string) bool)),

		expr.Function("parseDate", func(params ...any) (any, error) {
			t, err := time.Parse(dateLayout, params[0].(string))
			if err != nil {
				return nil, fmt.Errorf("parseDate: %w", err)
			}
			return t, nil
		}, new(func(string) time.Time)),

		expr.Function("daysAgo", func(params ...any) (any, error) {
			return time.Now().AddDate(0, 0, -params[0].(int)), nil
		}, new(func(int) time.Time)),

		expr.Function("daysSince", func(params ...any) (any, error) {
			return int(time.Since(params[0].(time.Time)).Hours() / 24), nil
		}, new(func(time.Time) int)),
	}
}
