package contracts

import "go.etcd.io/bbolt"

type CellDependencyTree interface {
	// SetDependsOn
	/**
	 * Example, for formula `C1 = A1 + SUM(B1:B2)`:
	 * `dependantCellId` depends on `dependingOnCellIds`
	 *  SetDependsOn(tx, sheet, "C1", []string{"A1", "B1", "B2"})
	 * Passing an empty list removes every edge of the dependant.
	 */
	SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantCellId string, dependingOnCellIds []string) error

	// GetDependants
	/**
	 * For formulas
	 *    - `C1 = A1 + B1` => C1 depends on A1 and B1;
	 *    - `D1 = C1 * 2`  => D1 depends on C1, and recursively on A1 and B1
	 * GetDependants("A1") should returns ["C1", "D1"]
	 *
	 * Stored in B+tree with prefixed keys, so dependants of one cell are a single cursor seek.
	 * Used only to know which subscribers to notify; results are never cached.
	 */
	GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnCellId string) []string

	// DropSheet removes every dependency edge of the sheet
	DropSheet(tx *bbolt.Tx, sheetId []byte) error
}
