package contracts

// GridReader returns an empty string for every cell which was never written,
// including cells past the end of a row or past the last row.
type GridReader interface {
	Get(ref CellRef) string
}

type Grid interface {
	GridReader
	Set(ref CellRef, value string) error
}

type GridAxis string

const (
	GridAxisRow    GridAxis = "row"
	GridAxisColumn GridAxis = "column"
)

// GridEdit inserts an empty row or column before Index, or deletes the one at Index
type GridEdit struct {
	Axis   GridAxis
	Index  int
	Delete bool
}
