package main

import (
	"fmt"
	"github.com/expr-lang/expr"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	todayLayout = "2006-01-02"
	nowLayout   = "2006-01-02 15:04:05"
)

var FunctionArgumentsError = fmt.Errorf("%w: %s", ExpressionError, "invalid function arguments")

var LookupNotFoundError = fmt.Errorf("%w: %s", ExpressionError, "lookup value not found")

type FunctionDefinition struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Template    string `json:"template"`
}

// FunctionDefinitions is the catalog offered to users when inserting a function
var FunctionDefinitions = []FunctionDefinition{
	{Name: "SUM", Category: "Math", Description: "Adds all numbers of the arguments.", Template: "SUM(number1; [number2]; ...)"},
	{Name: "AVERAGE", Category: "Statistical", Description: "Returns the arithmetic mean of the arguments.", Template: "AVERAGE(number1; [number2]; ...)"},
	{Name: "IF", Category: "Logical", Description: "Returns one value if the condition is true and another value if it is false.", Template: "IF(condition; value_if_true; value_if_false)"},
	{Name: "MAX", Category: "Statistical", Description: "Returns the largest value of the arguments.", Template: "MAX(number1; [number2]; ...)"},
	{Name: "MIN", Category: "Statistical", Description: "Returns the smallest value of the arguments.", Template: "MIN(number1; [number2]; ...)"},
	{Name: "COUNT", Category: "Statistical", Description: "Counts the arguments which contain numbers.", Template: "COUNT(value1; [value2]; ...)"},
	{Name: "CONCATENATE", Category: "Text", Description: "Joins several text strings into one.", Template: "CONCATENATE(text1; [text2]; ...)"},
	{Name: "VLOOKUP", Category: "Lookup", Description: "Looks for a value in the first column of a range and returns the value of the same row in the given column.", Template: "VLOOKUP(lookup_value; range; column_index; [approximate])"},
	{Name: "TODAY", Category: "Date and time", Description: "Returns the current date.", Template: "TODAY()"},
	{Name: "NOW", Category: "Date and time", Description: "Returns the current date and time.", Template: "NOW()"},
}

type FormulaFunctions struct {
	now       func() time.Time
	functions map[string]func(args ...any) (any, error)
}

func NewFormulaFunctions(now func() time.Time) *FormulaFunctions {
	f := &FormulaFunctions{now: now}
	f.functions = map[string]func(args ...any) (any, error){
		"SUM":         f.sum,
		"AVERAGE":     f.average,
		"IF":          f.condition,
		"MAX":         f.max,
		"MIN":         f.min,
		"COUNT":       f.count,
		"CONCATENATE": f.concatenate,
		"VLOOKUP":     f.vlookup,
		"TODAY":       f.today,
		"NOW":         f.dateTime,
	}
	return f
}

func (f *FormulaFunctions) Has(name string) bool {
	_, ok := f.functions[name]
	return ok
}

func (f *FormulaFunctions) Options() []expr.Option {
	options := make([]expr.Option, 0, len(f.functions))
	for name, function := range f.functions {
		options = append(options, expr.Function(name, function))
	}
	return options
}

func (f *FormulaFunctions) sum(args ...any) (any, error) {
	total := 0.0
	for _, number := range numbers(args) {
		total += number
	}
	return total, nil
}

func (f *FormulaFunctions) average(args ...any) (any, error) {
	values := numbers(args)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: AVERAGE of no numbers", FunctionArgumentsError)
	}

	total, _ := f.sum(args...)
	return total.(float64) / float64(len(values)), nil
}

func (f *FormulaFunctions) max(args ...any) (any, error) {
	values := numbers(args)
	if len(values) == 0 {
		return 0.0, nil
	}

	result := math.Inf(-1)
	for _, number := range values {
		result = math.Max(result, number)
	}
	return result, nil
}

func (f *FormulaFunctions) min(args ...any) (any, error) {
	values := numbers(args)
	if len(values) == 0 {
		return 0.0, nil
	}

	result := math.Inf(1)
	for _, number := range values {
		result = math.Min(result, number)
	}
	return result, nil
}

func (f *FormulaFunctions) count(args ...any) (any, error) {
	return len(numbers(args)), nil
}

func (f *FormulaFunctions) concatenate(args ...any) (any, error) {
	var builder strings.Builder
	for _, arg := range flatten(args) {
		builder.WriteString(toText(arg))
	}
	return builder.String(), nil
}

func (f *FormulaFunctions) condition(args ...any) (any, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("%w: IF expects 2 or 3 arguments, got %d", FunctionArgumentsError, len(args))
	}

	truthy, err := toBool(args[0])
	if err != nil {
		return nil, err
	}

	if truthy {
		return args[1], nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return false, nil
}

// vlookup: VLOOKUP(value; range; column; [approximate]), exact match unless approximate is true.
// Approximate match expects the first column sorted ascending and returns the last row not greater than value.
func (f *FormulaFunctions) vlookup(args ...any) (any, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, fmt.Errorf("%w: VLOOKUP expects 3 or 4 arguments, got %d", FunctionArgumentsError, len(args))
	}

	table, ok := args[1].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: VLOOKUP expects a range as second argument", FunctionArgumentsError)
	}

	column, ok := toNumber(args[2])
	if !ok || column < 1 || column != math.Trunc(column) {
		return nil, fmt.Errorf("%w: VLOOKUP column index %v", FunctionArgumentsError, args[2])
	}

	approximate := false
	if len(args) == 4 {
		var err error
		if approximate, err = toBool(args[3]); err != nil {
			return nil, err
		}
	}

	found := -1
	for index, item := range table {
		row, ok := item.([]any)
		if !ok || len(row) == 0 {
			continue
		}

		if approximate {
			if compareValues(row[0], args[0]) <= 0 {
				found = index
				continue
			}
			break
		}

		if compareValues(row[0], args[0]) == 0 {
			found = index
			break
		}
	}

	if found == -1 {
		return nil, fmt.Errorf("%w: %v", LookupNotFoundError, args[0])
	}

	row := table[found].([]any)
	if int(column) > len(row) {
		return nil, fmt.Errorf("%w: VLOOKUP column %d is outside of the range", FunctionArgumentsError, int(column))
	}
	return row[int(column)-1], nil
}

func (f *FormulaFunctions) today(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%w: TODAY expects no arguments", FunctionArgumentsError)
	}
	return f.now().Format(todayLayout), nil
}

func (f *FormulaFunctions) dateTime(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%w: NOW expects no arguments", FunctionArgumentsError)
	}
	return f.now().Format(nowLayout), nil
}

// flatten unpacks range arguments (rows of values) into a single list
func flatten(args []any) []any {
	flat := make([]any, 0, len(args))
	for _, arg := range args {
		if nested, ok := arg.([]any); ok {
			flat = append(flat, flatten(nested)...)
		} else {
			flat = append(flat, arg)
		}
	}
	return flat
}

// numbers skips everything which is not a number: text, booleans and empty cells
func numbers(args []any) []float64 {
	values := make([]float64, 0, len(args))
	for _, arg := range flatten(args) {
		if number, ok := toNumber(arg); ok {
			values = append(values, number)
		}
	}
	return values
}

func toNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float64:
		return typed, true
	}
	return 0, false
}

func toText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return formatBool(typed)
	}

	if number, ok := toNumber(value); ok {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

func toBool(value any) (bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case nil:
		return false, nil
	case string:
		switch strings.ToUpper(typed) {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		}
	}

	if number, ok := toNumber(value); ok {
		return number != 0, nil
	}
	return false, fmt.Errorf("%w: `%v` is not a logical value", FunctionArgumentsError, value)
}

// compareValues orders numbers before text, text is compared case-insensitively
func compareValues(left any, right any) int {
	leftNumber, leftIsNumber := toNumber(left)
	rightNumber, rightIsNumber := toNumber(right)

	switch {
	case leftIsNumber && rightIsNumber:
		switch {
		case leftNumber < rightNumber:
			return -1
		case leftNumber > rightNumber:
			return 1
		}
		return 0
	case leftIsNumber:
		return -1
	case rightIsNumber:
		return 1
	}

	return strings.Compare(strings.ToUpper(toText(left)), strings.ToUpper(toText(right)))
}
