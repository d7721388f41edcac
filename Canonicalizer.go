package main

import (
	"strings"
	"unicode"
)

const stringDelimiter = '"'

// Canonicalizer normalizes user input before it reaches the formula lexer.
// Formula text is upper-cased outside of string literals, so `=sum(a1;b2)` and `=SUM(A1,B2)` are the same formula.
type Canonicalizer struct {
	separators *strings.Replacer
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		separators: strings.NewReplacer(";", ","),
	}
}

func (c *Canonicalizer) Canonicalize(formulaBody string) string {
	var builder strings.Builder
	builder.Grow(len(formulaBody))

	inString := false
	chunkStart := 0
	flush := func(end int) {
		chunk := formulaBody[chunkStart:end]
		if !inString {
			chunk = c.separators.Replace(strings.ToUpper(chunk))
		}
		builder.WriteString(chunk)
		chunkStart = end
	}

	for index := 0; index < len(formulaBody); index++ {
		if formulaBody[index] != stringDelimiter {
			continue
		}

		if inString {
			// closing quote belongs to the literal
			flush(index + 1)
		} else {
			flush(index)
		}
		inString = !inString
	}
	flush(len(formulaBody))

	return builder.String()
}

// CanonicalizeReference normalizes a cell id coming from outside, e.g. " b3" => "B3"
func (c *Canonicalizer) CanonicalizeReference(cellId string) string {
	return strings.ToUpper(strings.TrimFunc(cellId, unicode.IsSpace))
}
