package main

import (
	"bytes"
	"go.etcd.io/bbolt"
)

// CellDependencyTree keeps "formula cell depends on referenced cell" edges per sheet.
// Evaluation never reads it, it only answers who must be notified when a cell changes.
type CellDependencyTree struct{}

const Delimiter = byte(0x00)

var dependencyBucketPrefix = [4]byte{'_', '_', 'd', '_'}

func (t *CellDependencyTree) SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantReference string, dependingOnReferences []string) (err error) {
	dependingListKey := t.makeDependingListKey(dependantReference)

	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		if len(dependingOnReferences) == 0 {
			return nil
		}

		bucket, err = tx.CreateBucketIfNotExists(t.makeBucketId(sheetId))
		if err != nil {
			return err
		}
	}

	staleReferences := map[string]bool{}
	if previous := bucket.Get(dependingListKey); previous != nil {
		for _, reference := range bytes.Split(previous, []byte{Delimiter}) {
			staleReferences[string(reference)] = true
		}
	}

	changed := false
	uniqueReferences := make([][]byte, 0, len(dependingOnReferences))
	seen := map[string]bool{}
	for _, reference := range dependingOnReferences {
		if seen[reference] {
			continue
		}
		seen[reference] = true
		uniqueReferences = append(uniqueReferences, []byte(reference))

		if staleReferences[reference] {
			// edge is already stored
			delete(staleReferences, reference)
			continue
		}

		changed = true
		if err = bucket.Put(t.makeDependantKey(dependantReference, reference), []byte{}); err != nil {
			return err
		}
	}

	if !changed && len(staleReferences) == 0 {
		return nil
	}

	for reference := range staleReferences {
		if err = bucket.Delete(t.makeDependantKey(dependantReference, reference)); err != nil {
			return err
		}
	}

	if len(uniqueReferences) == 0 {
		return bucket.Delete(dependingListKey)
	}
	return bucket.Put(dependingListKey, bytes.Join(uniqueReferences, []byte{Delimiter}))
}

func (t *CellDependencyTree) GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnReference string) []string {
	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	return t.fetchDependantsRecursive(bucket, dependingOnReference, map[string]bool{
		dependingOnReference: true,
	})
}

func (t *CellDependencyTree) DropSheet(tx *bbolt.Tx, sheetId []byte) error {
	bucketId := t.makeBucketId(sheetId)
	if tx.Bucket(bucketId) == nil {
		return nil
	}
	return tx.DeleteBucket(bucketId)
}

func (t *CellDependencyTree) makeBucketId(sheetId []byte) []byte {
	if len(sheetId) == 0 {
		return nil
	}

	return append(dependencyBucketPrefix[:], sheetId...)
}

// alreadyFetched stops cycles
func (t *CellDependencyTree) fetchDependantsRecursive(bucket *bbolt.Bucket, dependingOnReference string, alreadyFetched map[string]bool) []string {
	dependants := make([]string, 0)

	for _, dependant := range t.fetchCellDependants(bucket, dependingOnReference) {
		if !alreadyFetched[dependant] {
			alreadyFetched[dependant] = true
			dependants = append(dependants, dependant)
			dependants = append(dependants, t.fetchDependantsRecursive(bucket, dependant, alreadyFetched)...)
		}
	}

	return dependants
}

func (t *CellDependencyTree) fetchCellDependants(bucket *bbolt.Bucket, dependingOnReference string) []string {
	dependants := make([]string, 0, 5)
	c := bucket.Cursor()

	prefix := t.makeDependingOnPrefixKey(dependingOnReference)
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		dependants = append(dependants, string(k[len(prefix):]))
	}

	return dependants
}

func (t *CellDependencyTree) makeDependingListKey(dependantReference string) []byte {
	return append(
		[]byte{Delimiter, Delimiter},
		[]byte(dependantReference)...,
	)
}

func (t *CellDependencyTree) makeDependingOnPrefixKey(dependingOnReference string) []byte {
	return append([]byte(dependingOnReference), Delimiter)
}

func (t *CellDependencyTree) makeDependantKey(dependantReference string, dependingOnReference string) []byte {
	return append(t.makeDependingOnPrefixKey(dependingOnReference), []byte(dependantReference)...)
}
