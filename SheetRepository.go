package main

import (
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"go.etcd.io/bbolt"
	"log"
	"strings"
)

type SheetRepository struct {
	db                *bbolt.DB
	executor          contracts.ExpressionExecutor
	serializer        contracts.CellSerializer
	canonicalizer     *Canonicalizer
	dependencyTree    contracts.CellDependencyTree
	webhookDispatcher contracts.WebhookDispatcher
}

var sheetBucketPrefix = [4]byte{'_', '_', 's', '_'}

func NewSheetRepository(
	db *bbolt.DB, executor contracts.ExpressionExecutor,
	serializer contracts.CellSerializer, canonicalizer *Canonicalizer,
	webhookDispatcher contracts.WebhookDispatcher,
) *SheetRepository {
	return &SheetRepository{
		db:                db,
		executor:          executor,
		serializer:        serializer,
		canonicalizer:     canonicalizer,
		dependencyTree:    &CellDependencyTree{},
		webhookDispatcher: webhookDispatcher,
	}
}

// SetCell stores the value as is, formulas included, and returns it with the evaluated result.
// An empty value clears the cell.
func (s *SheetRepository) SetCell(sheetId string, cellId string, value string) (cell *contracts.Cell, err error) {
	sheetIdByte := s.canonicalSheetId(sheetId)
	reference := s.canonicalizer.CanonicalizeReference(cellId)
	cell = &contracts.Cell{Reference: reference, Value: value}

	ref, err := s.parseStorableReference(reference)
	if err != nil {
		return cell, err
	}

	dependingOn := refsToReferences(s.executor.ExtractDependingOnList(value))
	notifyCells := make([]*contracts.Cell, 0, 1)

	err = s.db.Update(func(tx *bbolt.Tx) (err error) {
		var bucket *bbolt.Bucket
		bucket, err = tx.CreateBucketIfNotExists(s.makeBucketId(sheetIdByte))
		if err != nil {
			return err
		}

		key := s.serializer.MarshalKey(ref)
		if value == "" {
			err = bucket.Delete(key)
		} else {
			err = bucket.Put(key, s.serializer.Marshal(ref, value))
		}
		if err != nil {
			return err
		}

		err = s.dependencyTree.SetDependsOn(tx, sheetIdByte, reference, dependingOn)
		if err != nil {
			return err
		}

		grid := s.makeGrid(bucket)
		cell.Result = s.evaluate(ref, grid)
		notifyCells = append(notifyCells, cell)

		for _, dependant := range s.dependencyTree.GetDependants(tx, sheetIdByte, reference) {
			if dependantCell := s.readCell(grid, dependant); dependantCell != nil {
				notifyCells = append(notifyCells, dependantCell)
			}
		}

		return nil
	})

	if err == nil && s.webhookDispatcher != nil {
		s.webhookDispatcher.Notify(string(sheetIdByte), notifyCells)
	}

	return
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (cell *contracts.Cell, err error) {
	sheetIdByte := s.canonicalSheetId(sheetId)
	reference := s.canonicalizer.CanonicalizeReference(cellId)

	ref, err := s.parseStorableReference(reference)
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.makeBucketId(sheetIdByte))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetIdByte, contracts.SheetNotFoundError)
		}

		grid := s.makeGrid(bucket)
		value := grid.Get(ref)
		if value == "" {
			return fmt.Errorf("%s: %w", reference, contracts.CellNotFoundError)
		}

		cell = &contracts.Cell{
			Reference: reference,
			Value:     value,
			Result:    s.evaluate(ref, grid),
		}
		return nil
	})

	return
}

func (s *SheetRepository) GetCellList(sheetId string) (contracts.CellList, error) {
	sheetIdByte := s.canonicalSheetId(sheetId)
	cellList := contracts.CellList{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.makeBucketId(sheetIdByte))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetIdByte, contracts.SheetNotFoundError)
		}

		grid := s.makeGrid(bucket)
		return bucket.ForEach(func(k, v []byte) error {
			ref, value, err := s.serializer.Unmarshal(v)
			if err != nil {
				log.Printf("[sheet] %s: skip broken cell %v: %s", sheetIdByte, k, err)
				return nil
			}

			reference := FormatCellRef(ref)
			cellList[reference] = &contracts.Cell{
				Reference: reference,
				Value:     value,
				Result:    s.evaluate(ref, grid),
			}
			return nil
		})
	})

	return cellList, err
}

func (s *SheetRepository) GetRawValue(sheetId string, ref contracts.CellRef) (value string, err error) {
	sheetIdByte := s.canonicalSheetId(sheetId)

	err = s.db.View(func(tx *bbolt.Tx) error {
		if bucket := tx.Bucket(s.makeBucketId(sheetIdByte)); bucket != nil {
			value = s.makeGrid(bucket).Get(ref)
		}
		return nil
	})
	return
}

// ReplaceSheet drops every cell of the sheet and stores rows instead, e.g. after a CSV import
func (s *SheetRepository) ReplaceSheet(sheetId string, rows [][]string) error {
	sheetIdByte := s.canonicalSheetId(sheetId)

	return s.db.Update(func(tx *bbolt.Tx) error {
		return s.storeRows(tx, sheetIdByte, rows)
	})
}

// EditGrid inserts or deletes a row or column. Cells after it are re-keyed and formulas of the sheet
// are rewritten to keep pointing at the same cells.
func (s *SheetRepository) EditGrid(sheetId string, edit contracts.GridEdit) error {
	sheetIdByte := s.canonicalSheetId(sheetId)

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.makeBucketId(sheetIdByte))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetIdByte, contracts.SheetNotFoundError)
		}

		sheet, err := s.readSheet(bucket)
		if err != nil {
			return err
		}
		if err = sheet.Edit(edit); err != nil {
			return err
		}

		log.Printf("[sheet] %s: %+v", sheetIdByte, edit)
		return s.storeRows(tx, sheetIdByte, sheet.Rows())
	})
}

// GetRows returns raw values of the sheet as a ragged grid
func (s *SheetRepository) GetRows(sheetId string) (rows [][]string, err error) {
	sheetIdByte := s.canonicalSheetId(sheetId)

	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.makeBucketId(sheetIdByte))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetIdByte, contracts.SheetNotFoundError)
		}

		sheet, err := s.readSheet(bucket)
		if err == nil {
			rows = sheet.Rows()
		}
		return err
	})

	return
}

func (s *SheetRepository) readSheet(bucket *bbolt.Bucket) (*Sheet, error) {
	sheet := NewSheet(nil)
	err := bucket.ForEach(func(k, v []byte) error {
		ref, value, err := s.serializer.Unmarshal(v)
		if err != nil {
			return err
		}
		return sheet.Set(ref, value)
	})
	return sheet, err
}

// storeRows replaces the sheet bucket and its dependencies with non-empty cells of rows
func (s *SheetRepository) storeRows(tx *bbolt.Tx, sheetIdByte []byte, rows [][]string) error {
	bucketId := s.makeBucketId(sheetIdByte)
	if tx.Bucket(bucketId) != nil {
		if err := tx.DeleteBucket(bucketId); err != nil {
			return err
		}
	}
	if err := s.dependencyTree.DropSheet(tx, sheetIdByte); err != nil {
		return err
	}

	bucket, err := tx.CreateBucket(bucketId)
	if err != nil {
		return err
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			if value == "" {
				continue
			}

			ref := contracts.CellRef{Row: rowIndex, Col: colIndex}
			if !isWithinSheet(ref) {
				return fmt.Errorf("%w: `%s` is outside of the sheet", contracts.InvalidReferenceError, FormatCellRef(ref))
			}
			if err = bucket.Put(s.serializer.MarshalKey(ref), s.serializer.Marshal(ref, value)); err != nil {
				return err
			}

			dependingOn := refsToReferences(s.executor.ExtractDependingOnList(value))
			if err = s.dependencyTree.SetDependsOn(tx, sheetIdByte, FormatCellRef(ref), dependingOn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SheetRepository) evaluate(ref contracts.CellRef, grid contracts.GridReader) string {
	return s.executor.EvaluateCell(ref, grid).String()
}

func (s *SheetRepository) readCell(grid contracts.GridReader, reference string) *contracts.Cell {
	ref, err := ParseReference(reference)
	if err != nil {
		return nil
	}

	value := grid.Get(ref)
	if value == "" {
		return nil
	}

	return &contracts.Cell{Reference: reference, Value: value, Result: s.evaluate(ref, grid)}
}

func (s *SheetRepository) makeGrid(bucket *bbolt.Bucket) contracts.GridReader {
	return &boltGrid{bucket: bucket, serializer: s.serializer}
}

func (s *SheetRepository) canonicalSheetId(sheetId string) []byte {
	return []byte(strings.ToLower(sheetId))
}

func (s *SheetRepository) makeBucketId(sheetId []byte) []byte {
	return append(sheetBucketPrefix[:], sheetId...)
}

func (s *SheetRepository) parseStorableReference(reference string) (contracts.CellRef, error) {
	ref, err := ParseReference(reference)
	if err == nil && !isWithinSheet(ref) {
		err = fmt.Errorf("%w: `%s` is outside of the sheet", contracts.InvalidReferenceError, reference)
	}
	return ref, err
}

// boltGrid reads cells of one sheet bucket inside a transaction
type boltGrid struct {
	bucket     *bbolt.Bucket
	serializer contracts.CellSerializer
}

func (g *boltGrid) Get(ref contracts.CellRef) string {
	if !isWithinSheet(ref) {
		return ""
	}

	data := g.bucket.Get(g.serializer.MarshalKey(ref))
	if data == nil {
		return ""
	}

	_, value, err := g.serializer.Unmarshal(data)
	if err != nil {
		return ""
	}
	return value
}

func refsToReferences(refs []contracts.CellRef) []string {
	references := make([]string, len(refs))
	for index, ref := range refs {
		references[index] = FormatCellRef(ref)
	}
	return references
}
