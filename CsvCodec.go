package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"io"
)

var CsvFormatError = errors.New("invalid csv")

// ImportCSV reads rows of cell values. Rows may have different lengths, empty lines are skipped
// by the csv reader itself.
func ImportCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", CsvFormatError, err)
		}

		rows = append(rows, record)
	}

	return NewSheet(rows), nil
}

// ExportCSV writes raw values of the sheet, or evaluated results when executor is not nil
func ExportCSV(w io.Writer, sheet *Sheet, executor contracts.ExpressionExecutor) error {
	writer := csv.NewWriter(w)

	for _, row := range EvaluateRows(sheet, executor) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// EvaluateRows returns the sheet with every cell replaced by its result.
// A nil executor returns the raw values.
func EvaluateRows(sheet *Sheet, executor contracts.ExpressionExecutor) [][]string {
	if executor == nil {
		return sheet.Snapshot()
	}

	rows := sheet.Rows()
	results := make([][]string, len(rows))
	for rowIndex, row := range rows {
		results[rowIndex] = make([]string, len(row))
		for colIndex := range row {
			ref := contracts.CellRef{Row: rowIndex, Col: colIndex}
			results[rowIndex][colIndex] = executor.EvaluateCell(ref, sheet).String()
		}
	}
	return results
}
