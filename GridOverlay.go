package main

import "github.com/kirill778/naviserv/contracts"

// GridOverlay reads pending values first and falls back to the base grid.
// Used to evaluate a value before it is committed.
type GridOverlay struct {
	overrides map[contracts.CellRef]string
	base      contracts.GridReader
}

func NewGridOverlay(overrides map[contracts.CellRef]string, base contracts.GridReader) contracts.GridReader {
	if base == nil {
		base = NewSheet(nil)
	}

	if len(overrides) == 0 {
		return base
	}

	return &GridOverlay{overrides: overrides, base: base}
}

func (g *GridOverlay) Get(ref contracts.CellRef) string {
	if value, ok := g.overrides[ref]; ok {
		return value
	}
	return g.base.Get(ref)
}
