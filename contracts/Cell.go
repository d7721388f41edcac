package contracts

import (
	"errors"
	"fmt"
)

type Cell struct {
	Reference string `json:"reference"`
	Value     string `json:"value"`
	Result    string `json:"result"`
}

// CellList is keyed by cell reference, e.g. "B3"
type CellList map[string]*Cell

// CellRef zero-based grid coordinates
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

const FormulaPrefix = "="

// ErrorMarker is the only error representation shown for a formula result
const ErrorMarker = "#ERROR"

var CellNotFoundError = errors.New("cell not found")

var InvalidReferenceError = errors.New("invalid cell reference")

var InvalidRangeError = fmt.Errorf("%w: invalid range", InvalidReferenceError)
