package main

import (
	"errors"
	"fmt"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/kirill778/naviserv/contracts"
	"math"
	"strconv"
	"strings"
	"sync"
)

type ExpressionExecutor struct {
	lexer           *FormulaLexer
	functions       *FormulaFunctions
	compilerOptions []expr.Option
	vmPool          sync.Pool
}

var ExpressionError = errors.New("expression error")

var CircularReferenceError = fmt.Errorf("%w: %s", ExpressionError, "circular reference detected")

var MalformedExpressionError = fmt.Errorf("%w: %s", ExpressionError, "malformed expression")

var operatorTranslations = map[string]string{
	"=":  "==",
	"<>": "!=",
	"^":  "**",
}

func NewExpressionExecutor(lexer *FormulaLexer, functions *FormulaFunctions) *ExpressionExecutor {
	return &ExpressionExecutor{
		lexer:     lexer,
		functions: functions,
		compilerOptions: append(
			[]expr.Option{
				expr.Env(map[string]any{}),
				expr.Optimize(false),
				expr.DisableAllBuiltins(),
			},
			functions.Options()...,
		),

		vmPool: sync.Pool{
			New: func() any {
				return new(vm.VM)
			},
		},
	}
}

func (e *ExpressionExecutor) IsFormula(value string) bool {
	return strings.HasPrefix(value, contracts.FormulaPrefix)
}

func (e *ExpressionExecutor) Evaluate(formulaBody string, grid contracts.GridReader) contracts.Value {
	value, _ := e.EvaluateWithError(formulaBody, grid)
	return value
}

// EvaluateWithError is Evaluate which also reports why the result is an error marker
func (e *ExpressionExecutor) EvaluateWithError(formulaBody string, grid contracts.GridReader) (contracts.Value, error) {
	return e.newEvaluation(grid).run(func(ev *evaluation) (contracts.Value, error) {
		return ev.evaluateBody(formulaBody)
	})
}

func (e *ExpressionExecutor) EvaluateCell(ref contracts.CellRef, grid contracts.GridReader) contracts.Value {
	value, _ := e.EvaluateCellWithError(ref, grid)
	return value
}

func (e *ExpressionExecutor) EvaluateCellWithError(ref contracts.CellRef, grid contracts.GridReader) (contracts.Value, error) {
	return e.newEvaluation(grid).run(func(ev *evaluation) (contracts.Value, error) {
		raw := grid.Get(ref)
		if !e.IsFormula(raw) {
			return literalValue(raw), nil
		}
		return ev.resolveCell(ref)
	})
}

func (e *ExpressionExecutor) ExtractDependingOnList(value string) []contracts.CellRef {
	dependingOn := make([]contracts.CellRef, 0)
	if !e.IsFormula(value) {
		return dependingOn
	}

	references, _ := ExtractReferences(e.lexer, strings.TrimPrefix(value, contracts.FormulaPrefix))
	for _, reference := range references {
		if ref, err := ParseReference(reference); err == nil {
			dependingOn = append(dependingOn, ref)
		}
	}
	return dependingOn
}

func (e *ExpressionExecutor) newEvaluation(grid contracts.GridReader) *evaluation {
	return &evaluation{
		executor:  e,
		grid:      grid,
		resolving: map[contracts.CellRef]bool{},
	}
}

func (e *ExpressionExecutor) compileAndRun(source string) (out any, err error) {
	program, err := expr.Compile(source, e.compilerOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", MalformedExpressionError, err)
	}

	v := e.vmPool.Get().(*vm.VM)
	out, err = v.Run(program, nil)
	e.vmPool.Put(v)

	if err != nil {
		return nil, fmt.Errorf("%w: %s", ExpressionError, err)
	}
	return out, nil
}

// evaluation holds the state of one top-level Evaluate call.
// resolving is the set of cells on the current resolution path.
type evaluation struct {
	executor  *ExpressionExecutor
	grid      contracts.GridReader
	resolving map[contracts.CellRef]bool
}

func (ev *evaluation) run(evaluate func(ev *evaluation) (contracts.Value, error)) (value contracts.Value, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value, err = contracts.ErrorValue(), fmt.Errorf("%w: %v", ExpressionError, recovered)
		}
	}()

	value, err = evaluate(ev)
	if err != nil {
		return contracts.ErrorValue(), err
	}
	return value, nil
}

func (ev *evaluation) evaluateBody(formulaBody string) (contracts.Value, error) {
	canonical := strings.TrimSpace(ev.executor.lexer.canonicalizer.Canonicalize(formulaBody))

	// `=A1` returns A1 as is: same type, no rounding
	if IsReference(canonical) {
		ref, err := ParseReference(canonical)
		if err != nil {
			return contracts.Value{}, err
		}
		return ev.resolveScalar(ref)
	}

	tokens, err := ev.executor.lexer.Tokenize(canonical)
	if err != nil {
		return contracts.Value{}, err
	}

	source, err := ev.translate(tokens)
	if err != nil {
		return contracts.Value{}, err
	}

	out, err := ev.executor.compileAndRun(source)
	if err != nil {
		return contracts.Value{}, fmt.Errorf("`%s`: %w", source, err)
	}

	// a formula which is a single function call returns the function result directly
	return outputToValue(out, !isSingleCall(tokens))
}

// resolveCell evaluates the cell content, recursing into formulas
func (ev *evaluation) resolveCell(ref contracts.CellRef) (contracts.Value, error) {
	raw := ev.grid.Get(ref)
	if !ev.executor.IsFormula(raw) {
		return literalValue(raw), nil
	}

	if ev.resolving[ref] {
		return contracts.Value{}, fmt.Errorf("%s: %w", FormatCellRef(ref), CircularReferenceError)
	}

	ev.resolving[ref] = true
	defer delete(ev.resolving, ref)

	value, err := ev.evaluateBody(strings.TrimPrefix(raw, contracts.FormulaPrefix))
	if err != nil {
		return value, fmt.Errorf("%s: %w", FormatCellRef(ref), err)
	}
	return value, nil
}

// resolveScalar is resolveCell where an empty cell counts as 0
func (ev *evaluation) resolveScalar(ref contracts.CellRef) (contracts.Value, error) {
	value, err := ev.resolveCell(ref)
	if err == nil && value.Kind == contracts.ValueEmpty {
		value = contracts.NumberValue(0)
	}
	return value, err
}

// translate builds expr source from tokens, every reference is replaced with its value
func (ev *evaluation) translate(tokens []Token) (string, error) {
	var builder strings.Builder

	parens := make([]bool, 0)
	callDepth := 0
	pendingCall := false

	for index := 0; index < len(tokens); index++ {
		token := tokens[index]
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}

		switch token.Kind {
		case TokenRef:
			if isRangeAt(tokens, index) {
				if callDepth == 0 {
					return "", fmt.Errorf("%w: range `%s:%s` outside of a function", contracts.InvalidRangeError, token.Text, tokens[index+2].Text)
				}
				literal, err := ev.rangeLiteral(token.Text, tokens[index+2].Text)
				if err != nil {
					return "", err
				}
				builder.WriteString(literal)
				index += 2
				continue
			}

			ref, err := ParseReference(token.Text)
			if err != nil {
				return "", err
			}
			value, err := ev.resolveScalar(ref)
			if err != nil {
				return "", err
			}
			builder.WriteString(valueLiteral(value))

		case TokenColon:
			return "", fmt.Errorf("%w: unexpected `:`", contracts.InvalidRangeError)

		case TokenNumber:
			number, ok := parseNumber(token.Text)
			if !ok {
				return "", fmt.Errorf("%w: number `%s`", MalformedExpressionError, token.Text)
			}
			builder.WriteString(numberLiteral(number))

		case TokenString:
			builder.WriteString(strconv.Quote(token.Text))

		case TokenBool:
			builder.WriteString(strings.ToLower(token.Text))

		case TokenFuncName:
			name := strings.ToUpper(token.Text)
			if !ev.executor.functions.Has(name) {
				return "", fmt.Errorf("%w: unknown function `%s`", MalformedExpressionError, token.Text)
			}
			builder.WriteString(name)
			pendingCall = true

		case TokenLParen:
			parens = append(parens, pendingCall)
			if pendingCall {
				callDepth++
			}
			pendingCall = false
			builder.WriteString("(")

		case TokenRParen:
			if len(parens) == 0 {
				return "", fmt.Errorf("%w: unbalanced `)`", MalformedExpressionError)
			}
			if parens[len(parens)-1] {
				callDepth--
			}
			parens = parens[:len(parens)-1]
			builder.WriteString(")")

		case TokenSep:
			if len(parens) == 0 || !parens[len(parens)-1] {
				return "", fmt.Errorf("%w: argument separator outside of a function", MalformedExpressionError)
			}
			builder.WriteString(",")

		case TokenOperator:
			if token.Text == "&" {
				return "", fmt.Errorf("%w: `&` is not supported, use CONCATENATE", MalformedExpressionError)
			}
			builder.WriteString(translateOperator(token))

		case TokenName:
			return "", fmt.Errorf("%w: `%s`", contracts.InvalidReferenceError, token.Text)
		}
	}

	return builder.String(), nil
}

// rangeLiteral renders a range as rows of values; empty cells are nil
func (ev *evaluation) rangeLiteral(startText string, endText string) (string, error) {
	refs, err := ExpandRangeRefs(startText, endText)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("[")
	row := -1
	for _, ref := range refs {
		if ref.Row != row {
			if row != -1 {
				builder.WriteString("], ")
			}
			builder.WriteString("[")
			row = ref.Row
		} else {
			builder.WriteString(", ")
		}

		value, err := ev.resolveCell(ref)
		if err != nil {
			return "", err
		}
		if value.Kind == contracts.ValueEmpty {
			builder.WriteString("nil")
		} else {
			builder.WriteString(valueLiteral(value))
		}
	}
	builder.WriteString("]]")

	return builder.String(), nil
}

func translateOperator(token Token) string {
	if token.Position == OperatorPostfix && token.Text == "%" {
		return "/ 100"
	}

	if translated, ok := operatorTranslations[token.Text]; ok {
		return translated
	}
	return token.Text
}

func isSingleCall(tokens []Token) bool {
	if len(tokens) < 3 || tokens[0].Kind != TokenFuncName || tokens[1].Kind != TokenLParen {
		return false
	}

	depth := 0
	for index := 1; index < len(tokens); index++ {
		switch tokens[index].Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return index == len(tokens)-1
			}
		}
	}
	return false
}

func valueLiteral(value contracts.Value) string {
	switch value.Kind {
	case contracts.ValueNumber:
		return numberLiteral(value.Number)
	case contracts.ValueText:
		return strconv.Quote(value.Text)
	default:
		return "0"
	}
}

// numberLiteral always writes a float literal, integer arithmetic of expr wraps on overflow
func numberLiteral(number float64) string {
	literal := strconv.FormatFloat(number, 'f', -1, 64)
	if !strings.Contains(literal, ".") {
		literal += ".0"
	}
	if number < 0 {
		return "(" + literal + ")"
	}
	return literal
}

// literalValue converts a stored non-formula value
func literalValue(raw string) contracts.Value {
	if raw == "" {
		return contracts.Value{}
	}

	if number, ok := parseNumber(raw); ok {
		return contracts.NumberValue(number)
	}
	return contracts.TextValue(raw)
}

func parseNumber(raw string) (float64, bool) {
	number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func outputToValue(output any, round bool) (contracts.Value, error) {
	switch typed := output.(type) {
	case nil:
		return contracts.NumberValue(0), nil
	case int:
		return contracts.NumberValue(float64(typed)), nil
	case int64:
		return contracts.NumberValue(float64(typed)), nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return contracts.Value{}, fmt.Errorf("%w: result is not a finite number", ExpressionError)
		}
		if round && typed != math.Trunc(typed) {
			typed = math.Round(typed*100) / 100
		}
		return contracts.NumberValue(typed), nil
	case string:
		return contracts.TextValue(typed), nil
	case bool:
		return contracts.TextValue(formatBool(typed)), nil
	}

	return contracts.Value{}, fmt.Errorf("%w: unsupported result %T", ExpressionError, output)
}

func formatBool(value bool) string {
	if value {
		return "TRUE"
	}
	return "FALSE"
}
