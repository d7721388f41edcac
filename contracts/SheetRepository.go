package contracts

import "errors"

type SheetRepository interface {
	SetCell(sheetId string, cellId string, value string) (*Cell, error)
	GetCell(sheetId string, cellId string) (*Cell, error)
	GetCellList(sheetId string) (CellList, error)
	// GetRawValue returns the stored value without evaluation, "" for an empty cell
	GetRawValue(sheetId string, ref CellRef) (string, error)
	ReplaceSheet(sheetId string, rows [][]string) error
	GetRows(sheetId string) ([][]string, error)
	// EditGrid inserts or deletes a row or column, formulas of the sheet follow the moved cells
	EditGrid(sheetId string, edit GridEdit) error
}

var SheetNotFoundError = errors.New("sheet not found")
