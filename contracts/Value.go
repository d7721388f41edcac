package contracts

import (
	"strconv"
)

type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueNumber
	ValueText
	ValueError
)

// Value is the result of a formula evaluation
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
}

func NumberValue(number float64) Value {
	return Value{Kind: ValueNumber, Number: number}
}

func TextValue(text string) Value {
	return Value{Kind: ValueText, Text: text}
}

func ErrorValue() Value {
	return Value{Kind: ValueError, Text: ErrorMarker}
}

func (v Value) IsError() bool {
	return v.Kind == ValueError
}

func (v Value) IsNumber() bool {
	return v.Kind == ValueNumber
}

func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueText:
		return v.Text
	case ValueError:
		return ErrorMarker
	default:
		return ""
	}
}
