package main

import (
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"github.com/xuri/excelize/v2"
	"slices"
	"strings"
)

// Sheet bounds match the xlsx format, so every stored sheet can be exported
const (
	MaxRows    = excelize.TotalRows
	MaxColumns = excelize.MaxColumns
)

// Sheet is an in-memory ragged grid, rows and columns are created on demand
type Sheet struct {
	rows [][]string
}

func NewSheet(rows [][]string) *Sheet {
	return &Sheet{rows: rows}
}

func (s *Sheet) Get(ref contracts.CellRef) string {
	if ref.Row < 0 || ref.Col < 0 || ref.Row >= len(s.rows) || ref.Col >= len(s.rows[ref.Row]) {
		return ""
	}
	return s.rows[ref.Row][ref.Col]
}

func (s *Sheet) Set(ref contracts.CellRef, value string) error {
	if !isWithinSheet(ref) {
		return fmt.Errorf("%w: row %d, col %d", contracts.InvalidReferenceError, ref.Row, ref.Col)
	}

	for len(s.rows) <= ref.Row {
		s.rows = append(s.rows, nil)
	}
	row := s.rows[ref.Row]
	for len(row) <= ref.Col {
		row = append(row, "")
	}
	row[ref.Col] = value
	s.rows[ref.Row] = row
	return nil
}

// Edit inserts or deletes a row or column and rewrites formulas to follow the moved cells.
// References to a deleted row or column become #REF!.
func (s *Sheet) Edit(edit contracts.GridEdit) error {
	limit := MaxRows
	if edit.Axis == contracts.GridAxisColumn {
		limit = MaxColumns
	} else if edit.Axis != contracts.GridAxisRow {
		return fmt.Errorf("%w: unknown axis `%s`", contracts.InvalidReferenceError, edit.Axis)
	}
	if edit.Index < 0 || edit.Index >= limit {
		return fmt.Errorf("%w: %s %d is outside of the sheet", contracts.InvalidReferenceError, edit.Axis, edit.Index)
	}

	if !edit.Delete && s.isFull(edit.Axis, limit) {
		return fmt.Errorf("%w: the last %s of the sheet is not empty", contracts.InvalidReferenceError, edit.Axis)
	}

	if edit.Axis == contracts.GridAxisRow {
		s.editRows(edit)
	} else {
		s.editColumns(edit)
	}

	for _, row := range s.rows {
		for col, value := range row {
			if strings.HasPrefix(value, "=") {
				row[col] = "=" + ShiftReferences(value[1:], edit)
			}
		}
	}
	return nil
}

func (s *Sheet) editRows(edit contracts.GridEdit) {
	if edit.Index >= len(s.rows) {
		return
	}
	if edit.Delete {
		s.rows = slices.Delete(s.rows, edit.Index, edit.Index+1)
		return
	}

	s.rows = slices.Insert(s.rows, edit.Index, nil)
	// the last row is empty, see isFull
	if len(s.rows) > MaxRows {
		s.rows = s.rows[:MaxRows]
	}
}

func (s *Sheet) editColumns(edit contracts.GridEdit) {
	for index, row := range s.rows {
		if edit.Index >= len(row) {
			continue
		}
		if edit.Delete {
			s.rows[index] = slices.Delete(row, edit.Index, edit.Index+1)
			continue
		}

		row = slices.Insert(row, edit.Index, "")
		if len(row) > MaxColumns {
			row = row[:MaxColumns]
		}
		s.rows[index] = row
	}
}

// isFull reports whether inserting would push a value out of the sheet
func (s *Sheet) isFull(axis contracts.GridAxis, limit int) bool {
	if axis == contracts.GridAxisRow {
		return len(s.rows) == limit && slices.ContainsFunc(s.rows[limit-1], isNotEmpty)
	}
	for _, row := range s.rows {
		if len(row) == limit && isNotEmpty(row[limit-1]) {
			return true
		}
	}
	return false
}

func isNotEmpty(value string) bool {
	return value != ""
}

// Rows returns the underlying rows, callers must not modify them
func (s *Sheet) Rows() [][]string {
	return s.rows
}

// Snapshot returns a deep copy of the rows
func (s *Sheet) Snapshot() [][]string {
	snapshot := make([][]string, len(s.rows))
	for index, row := range s.rows {
		snapshot[index] = append([]string(nil), row...)
	}
	return snapshot
}

// Width is the length of the longest row
func (s *Sheet) Width() int {
	width := 0
	for _, row := range s.rows {
		width = max(width, len(row))
	}
	return width
}

func isWithinSheet(ref contracts.CellRef) bool {
	return ref.Row >= 0 && ref.Col >= 0 && ref.Row < MaxRows && ref.Col < MaxColumns
}
