package main

import (
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"github.com/xuri/excelize/v2"
	"io"
	"log"
)

const xlsxSheetName = "Sheet1"

const XlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportXLSX writes evaluated results of the sheet as a workbook with a single worksheet.
// Numeric results are stored as numbers, everything else as text.
func ExportXLSX(w io.Writer, sheet *Sheet, executor contracts.ExpressionExecutor) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("[xlsx] close workbook: %s", closeErr)
		}
	}()

	for rowIndex, row := range sheet.Rows() {
		for colIndex, raw := range row {
			if raw == "" {
				continue
			}

			var cellName string
			cellName, err = excelize.CoordinatesToCellName(colIndex+1, rowIndex+1)
			if err != nil {
				return fmt.Errorf("%w: %s", contracts.InvalidReferenceError, err)
			}

			value := executor.EvaluateCell(contracts.CellRef{Row: rowIndex, Col: colIndex}, sheet)
			if value.IsNumber() {
				err = f.SetCellValue(xlsxSheetName, cellName, value.Number)
			} else {
				err = f.SetCellStr(xlsxSheetName, cellName, value.String())
			}
			if err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
