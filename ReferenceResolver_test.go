package main

import (
	"github.com/kirill778/naviserv/contracts"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseReference(t *testing.T) {
	t.Run("spot values", func(t *testing.T) {
		testCases := map[string]contracts.CellRef{
			"A1":  {Row: 0, Col: 0},
			"Z1":  {Row: 0, Col: 25},
			"AA1": {Row: 0, Col: 26},
			"AZ1": {Row: 0, Col: 51},
			"BA1": {Row: 0, Col: 52},
			"B3":  {Row: 2, Col: 1},
			"ZZ9": {Row: 8, Col: 701},
		}

		for text, expected := range testCases {
			ref, err := ParseReference(text)
			assert.NoError(t, err, text)
			assert.Equal(t, expected, ref, text)
		}
	})

	t.Run("far cell", func(t *testing.T) {
		ref, err := ParseReference("ZZZZ99999999999999")
		assert.NoError(t, err)
		assert.Equal(t, 99999999999998, ref.Row)
		assert.Equal(t, 475253, ref.Col)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, text := range []string{"", "A", "1", "1A", "a1", "A1B", "A-1", "A 1", "A0", "$A$1", "A99999999999999999999999"} {
			_, err := ParseReference(text)
			assert.ErrorIs(t, err, contracts.InvalidReferenceError, text)
		}
	})
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "A1", FormatReference(0, 0))
	assert.Equal(t, "Z1", FormatReference(0, 25))
	assert.Equal(t, "AA1", FormatReference(0, 26))
	assert.Equal(t, "B3", FormatReference(2, 1))
	assert.Equal(t, "ZZ10", FormatReference(9, 701))
	assert.Equal(t, "AAA1", FormatReference(0, 702))

	assert.Equal(t, "", FormatReference(-1, 0))
	assert.Equal(t, "", FormatReference(0, -1))

	assert.Equal(t, "C2", FormatCellRef(contracts.CellRef{Row: 1, Col: 2}))
}

func TestReference_RoundTrip(t *testing.T) {
	for row := 0; row < 120; row += 7 {
		for col := 0; col < 20000; col += 13 {
			ref, err := ParseReference(FormatReference(row, col))
			assert.NoError(t, err)
			if !assert.Equal(t, contracts.CellRef{Row: row, Col: col}, ref) {
				return
			}
		}
	}
}

func TestExpandRange(t *testing.T) {
	t.Run("row-major", func(t *testing.T) {
		refs, err := ExpandRange("A1", "B2")
		assert.NoError(t, err)
		assert.Equal(t, []string{"A1", "B1", "A2", "B2"}, refs)
	})

	t.Run("normalized bounds", func(t *testing.T) {
		expected := []string{"A1", "B1", "A2", "B2"}

		refs, err := ExpandRange("B2", "A1")
		assert.NoError(t, err)
		assert.Equal(t, expected, refs)

		refs, err = ExpandRange("A2", "B1")
		assert.NoError(t, err)
		assert.Equal(t, expected, refs)
	})

	t.Run("single cell", func(t *testing.T) {
		refs, err := ExpandRange("C3", "C3")
		assert.NoError(t, err)
		assert.Equal(t, []string{"C3"}, refs)
	})

	t.Run("column", func(t *testing.T) {
		refs, err := ExpandRangeRefs("A1", "A3")
		assert.NoError(t, err)
		assert.Equal(t, []contracts.CellRef{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}, refs)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ExpandRange("A1", "B")
		assert.ErrorIs(t, err, contracts.InvalidRangeError)
		assert.ErrorIs(t, err, contracts.InvalidReferenceError)

		_, err = ExpandRange("1A", "B2")
		assert.ErrorIs(t, err, contracts.InvalidRangeError)
	})

	t.Run("too large", func(t *testing.T) {
		for _, bounds := range [][2]string{
			{"A1", "ZZ99999999"},
			{"A1", "A9223372036854775807"},
			{"A1", "ZZZZZZZZZZZZ1"},
			{"A1", "B524289"},
		} {
			refs, err := ExpandRangeRefs(bounds[0], bounds[1])
			assert.Nil(t, refs, bounds[1])
			assert.ErrorIs(t, err, contracts.InvalidRangeError, bounds[1])
		}

		refs, err := ExpandRangeRefs("A1", "A1048576")
		assert.NoError(t, err)
		assert.Len(t, refs, MaxRangeCells)
	})
}

func TestExtractReferences(t *testing.T) {
	lexer := NewFormulaLexer(NewCanonicalizer())

	t.Run("references in order", func(t *testing.T) {
		references, ranges := ExtractReferences(lexer, "B2+A1*B2-C10")
		assert.Equal(t, []string{"B2", "A1", "C10"}, references)
		assert.Empty(t, ranges)
	})

	t.Run("range is expanded", func(t *testing.T) {
		references, ranges := ExtractReferences(lexer, "SUM(A1:A3)+B1")
		assert.Equal(t, []string{"A1", "A3", "B1", "A2"}, references)
		assert.Equal(t, []string{"A1:A3"}, ranges)
	})

	t.Run("lower case", func(t *testing.T) {
		references, _ := ExtractReferences(lexer, "a1+b2")
		assert.Equal(t, []string{"A1", "B2"}, references)
	})

	t.Run("absolute markers", func(t *testing.T) {
		references, ranges := ExtractReferences(lexer, "$A$1+SUM($B1:B$2)")
		assert.Equal(t, []string{"A1", "B1", "B2"}, references)
		assert.Equal(t, []string{"B1:B2"}, ranges)
	})

	t.Run("string literals are not references", func(t *testing.T) {
		references, _ := ExtractReferences(lexer, `CONCATENATE("A1", B1)`)
		assert.Equal(t, []string{"B1"}, references)
	})

	t.Run("incomplete formula", func(t *testing.T) {
		references, ranges := ExtractReferences(lexer, "SUM(A1:B2;C")
		assert.Equal(t, []string{"A1", "B2", "B1", "A2"}, references)
		assert.Equal(t, []string{"A1:B2"}, ranges)
	})

	t.Run("too large range keeps its corners", func(t *testing.T) {
		references, ranges := ExtractReferences(lexer, "SUM(A1:ZZ99999999)+B1")
		assert.Equal(t, []string{"A1", "ZZ99999999", "B1"}, references)
		assert.Empty(t, ranges)
	})

	t.Run("empty", func(t *testing.T) {
		references, ranges := ExtractReferences(lexer, "")
		assert.Empty(t, references)
		assert.Empty(t, ranges)
	})
}

func TestShiftReferences(t *testing.T) {
	testCases := map[contracts.GridEdit]map[string]string{
		{Axis: contracts.GridAxisRow, Index: 1}: {
			"A1+A2":             "A1+A3",
			"sum(a2:b5)":        "sum(A3:B6)",
			"$A$2*A$2":          "$A$3*A$3",
			`"A2"&A2`:           `"A2"&A3`,
			"B5:A2":             "B6:A3",
			"A1:A1":             "A1:A1",
			"ZZZZ99999999":      "ZZZZ99999999",
			"1.5E3+TRUE":        "1.5E3+TRUE",
			"A1048576":          RefErrorMarker,
			"A1:A1048576":       "A1:A1048576",
			"A1048576:B1048576": RefErrorMarker,
		},
		{Axis: contracts.GridAxisRow, Index: 1, Delete: true}: {
			"A2":         RefErrorMarker,
			"A3+a1":      "A2+a1",
			"SUM(A2:A2)": "SUM(#REF!)",
			"SUM(A1:A3)": "SUM(A1:A2)",
			"SUM(A2:A4)": "SUM(A2:A3)",
		},
		{Axis: contracts.GridAxisColumn, Index: 0}: {
			"A1+$B$1":        "B1+$C$1",
			"XFD1":           RefErrorMarker,
			"AVERAGE(A1;B2)": "AVERAGE(B1;C2)",
		},
		{Axis: contracts.GridAxisColumn, Index: 1, Delete: true}: {
			"B1:C1": "B1:B1",
			"A1:B1": "A1:A1",
			"C7":    "B7",
		},
	}

	for edit, formulas := range testCases {
		for formula, expected := range formulas {
			assert.Equal(t, expected, ShiftReferences(formula, edit), "%+v %s", edit, formula)
		}
	}
}
