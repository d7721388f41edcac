package main

import (
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const columnBase = 26

// MaxRangeCells bounds the rectangle a single range may cover
const MaxRangeCells = 1 << 20

// RefErrorMarker replaces a reference whose cell was deleted
const RefErrorMarker = "#REF!"

var referencePattern = regexp.MustCompile(`^[A-Z]+[0-9]+$`)

// markedReferencePattern accepts the absolute markers users may type, `$A$1`
var markedReferencePattern = regexp.MustCompile(`^(\$?)([A-Za-z]+)(\$?)([0-9]+)$`)

func IsReference(text string) bool {
	return referencePattern.MatchString(text)
}

// ParseReference converts "B3" into zero-based {Row: 2, Col: 1}.
// Text is expected in upper case, see Canonicalizer.
func ParseReference(text string) (ref contracts.CellRef, err error) {
	if !IsReference(text) {
		return ref, fmt.Errorf("%w: `%s`", contracts.InvalidReferenceError, text)
	}

	index := 0
	col := 0
	for ; index < len(text) && text[index] >= 'A' && text[index] <= 'Z'; index++ {
		if col > (math.MaxInt-columnBase)/columnBase {
			return ref, fmt.Errorf("%w: `%s` column is too big", contracts.InvalidReferenceError, text)
		}
		col = col*columnBase + int(text[index]-'A'+1)
	}

	row, err := strconv.Atoi(text[index:])
	if err != nil || row < 1 {
		return ref, fmt.Errorf("%w: `%s` row number", contracts.InvalidReferenceError, text)
	}

	ref.Row = row - 1
	ref.Col = col - 1
	return ref, nil
}

// FormatReference is the inverse of ParseReference. Negative coordinates have no text form.
func FormatReference(row int, col int) string {
	if row < 0 || col < 0 {
		return ""
	}

	letters := make([]byte, 0, 4)
	for ; col >= 0; col = col/columnBase - 1 {
		letters = append(letters, byte('A'+col%columnBase))
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters) + strconv.Itoa(row+1)
}

func FormatCellRef(ref contracts.CellRef) string {
	return FormatReference(ref.Row, ref.Col)
}

// ExpandRangeRefs returns every cell of the rectangle between start and end, row-major
func ExpandRangeRefs(startText string, endText string) ([]contracts.CellRef, error) {
	start, err := ParseReference(startText)
	if err == nil {
		var end contracts.CellRef
		end, err = ParseReference(endText)
		if err == nil {
			var refs []contracts.CellRef
			if refs, err = expandBounds(start, end); err == nil {
				return refs, nil
			}
		}
	}

	return nil, fmt.Errorf("%w `%s:%s`: %s", contracts.InvalidRangeError, startText, endText, err)
}

func ExpandRange(startText string, endText string) ([]string, error) {
	refs, err := ExpandRangeRefs(startText, endText)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(refs))
	for index, ref := range refs {
		texts[index] = FormatCellRef(ref)
	}
	return texts, nil
}

func expandBounds(start contracts.CellRef, end contracts.CellRef) ([]contracts.CellRef, error) {
	minRow, maxRow := min(start.Row, end.Row), max(start.Row, end.Row)
	minCol, maxCol := min(start.Col, end.Col), max(start.Col, end.Col)

	// coordinates are not negative, so the differences fit into uint64 without overflow
	rows := uint64(maxRow-minRow) + 1
	cols := uint64(maxCol-minCol) + 1
	if rows > MaxRangeCells || cols > MaxRangeCells || rows*cols > MaxRangeCells {
		return nil, fmt.Errorf("range is larger than %d cells", MaxRangeCells)
	}

	refs := make([]contracts.CellRef, 0, rows*cols)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			refs = append(refs, contracts.CellRef{Row: row, Col: col})
		}
	}
	return refs, nil
}

// ExtractReferences lists references of the formula body in order of appearance without duplicates,
// followed by the cells of every range, plus the ranges themselves ("A1:B2").
// Incomplete formulas are scanned as far as the lexer gets. Ranges above MaxRangeCells
// contribute only their corner cells.
func ExtractReferences(lexer *FormulaLexer, formulaBody string) (references []string, ranges []string) {
	tokens, _ := lexer.Tokenize(formulaBody)

	references = make([]string, 0)
	ranges = make([]string, 0)
	seen := map[string]bool{}
	add := func(reference string) {
		if !seen[reference] {
			seen[reference] = true
			references = append(references, reference)
		}
	}

	rangeCells := make([]string, 0)
	for index, token := range tokens {
		if token.Kind != TokenRef {
			continue
		}
		add(token.Text)

		if isRangeAt(tokens, index) {
			end := tokens[index+2].Text
			expanded, err := ExpandRange(token.Text, end)
			if err == nil {
				ranges = append(ranges, token.Text+":"+end)
				rangeCells = append(rangeCells, expanded...)
			}
		}
	}

	for _, reference := range rangeCells {
		add(reference)
	}

	return references, ranges
}

func isRangeAt(tokens []Token, index int) bool {
	return index+2 < len(tokens) &&
		tokens[index].Kind == TokenRef &&
		tokens[index+1].Kind == TokenColon &&
		tokens[index+2].Kind == TokenRef
}

// ShiftReferences rewrites the references of a formula body after a row or column was inserted or deleted.
// A reference into a deleted row or column becomes #REF!, a range loses the deleted line.
// References that do not move keep their original text.
func ShiftReferences(formulaBody string, edit contracts.GridEdit) string {
	var builder strings.Builder
	builder.Grow(len(formulaBody))

	inString := false
	for index := 0; index < len(formulaBody); {
		char := formulaBody[index]
		if char == stringDelimiter {
			inString = !inString
		}
		if inString || char == stringDelimiter || !isWordChar(char) {
			builder.WriteByte(char)
			index++
			continue
		}

		end := wordEnd(formulaBody, index)
		word := formulaBody[index:end]
		switch {
		case end < len(formulaBody) && formulaBody[end] == '(':
			builder.WriteString(word)
		case end < len(formulaBody) && formulaBody[end] == ':' && wordEnd(formulaBody, end+1) > end+1:
			rangeEnd := wordEnd(formulaBody, end+1)
			builder.WriteString(shiftRange(word, formulaBody[end+1:rangeEnd], edit))
			end = rangeEnd
		default:
			builder.WriteString(shiftSingle(word, edit))
		}
		index = end
	}

	return builder.String()
}

type markedReference struct {
	ref         contracts.CellRef
	absoluteCol bool
	absoluteRow bool
}

func parseMarkedReference(text string) (marked markedReference, ok bool) {
	parts := markedReferencePattern.FindStringSubmatch(text)
	if parts == nil {
		return marked, false
	}

	ref, err := ParseReference(strings.ToUpper(parts[2]) + parts[4])
	if err != nil {
		return marked, false
	}
	return markedReference{ref: ref, absoluteCol: parts[1] != "", absoluteRow: parts[3] != ""}, true
}

func (m markedReference) String() string {
	text := FormatCellRef(m.ref)
	digits := strings.IndexAny(text, "0123456789")
	col, row := text[:digits], text[digits:]
	if m.absoluteCol {
		col = "$" + col
	}
	if m.absoluteRow {
		row = "$" + row
	}
	return col + row
}

// coordinate points at the row or column index the edit works on
func (m *markedReference) coordinate(axis contracts.GridAxis) *int {
	if axis == contracts.GridAxisColumn {
		return &m.ref.Col
	}
	return &m.ref.Row
}

func shiftSingle(text string, edit contracts.GridEdit) string {
	marked, ok := parseMarkedReference(text)
	if !ok {
		return text
	}

	coordinate := marked.coordinate(edit.Axis)
	limit := axisLimit(edit.Axis)
	switch {
	case *coordinate < edit.Index || *coordinate >= limit:
		return text
	case edit.Delete && *coordinate == edit.Index:
		return RefErrorMarker
	case edit.Delete:
		*coordinate--
	case *coordinate+1 >= limit:
		return RefErrorMarker
	default:
		*coordinate++
	}
	return marked.String()
}

func shiftRange(startText string, endText string, edit contracts.GridEdit) string {
	start, startOk := parseMarkedReference(startText)
	end, endOk := parseMarkedReference(endText)
	if !startOk || !endOk {
		return shiftSingle(startText, edit) + ":" + shiftSingle(endText, edit)
	}

	low, high := start.coordinate(edit.Axis), end.coordinate(edit.Axis)
	if *low > *high {
		low, high = high, low
	}

	limit := axisLimit(edit.Axis)
	if *high < edit.Index || *low >= limit {
		return startText + ":" + endText
	}

	if edit.Delete {
		if *low == edit.Index && *high == edit.Index {
			return RefErrorMarker
		}
		if *low > edit.Index {
			*low--
		}
		*high--
	} else {
		if *low >= edit.Index {
			if *low+1 >= limit {
				return RefErrorMarker
			}
			*low++
		}
		if *high < limit {
			*high = min(*high+1, limit-1)
		}
	}

	return start.String() + ":" + end.String()
}

func axisLimit(axis contracts.GridAxis) int {
	if axis == contracts.GridAxisColumn {
		return MaxColumns
	}
	return MaxRows
}

func wordEnd(text string, index int) int {
	for index < len(text) && isWordChar(text[index]) {
		index++
	}
	return index
}

func isWordChar(char byte) bool {
	return char >= 'A' && char <= 'Z' || char >= 'a' && char <= 'z' || char >= '0' && char <= '9' ||
		char == '$' || char == '_' || char == '.'
}
