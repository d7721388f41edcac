package contracts

type ExpressionExecutor interface {
	// Evaluate a formula body (without the leading "="). Never fails, errors are
	// reported as ErrorMarker value.
	Evaluate(formulaBody string, grid GridReader) Value
	// EvaluateCell evaluates the value stored at ref; literal values are passed through.
	EvaluateCell(ref CellRef, grid GridReader) Value
	IsFormula(value string) bool
	// ExtractDependingOnList lists references used by the formula, ranges expanded
	ExtractDependingOnList(value string) []CellRef
}
