package main

import (
	"github.com/kirill778/naviserv/contracts"
	"go.etcd.io/bbolt"
	"os"
	"time"
)

func _createTmpDb() (*bbolt.DB, func()) {
	f, err := os.CreateTemp("", "db_*.db")
	if err != nil {
		panic(err)
	}
	_ = f.Close()

	db, err := bbolt.Open(f.Name(), 0600, nil)
	if err != nil {
		panic(err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(f.Name())
	}
}

// _makeSheet builds a grid from values keyed by reference, e.g. {"A1": "5", "B1": "=A1"}
func _makeSheet(values map[string]string) *Sheet {
	sheet := NewSheet(nil)
	for reference, value := range values {
		ref, err := ParseReference(reference)
		if err != nil {
			panic(err)
		}
		if err = sheet.Set(ref, value); err != nil {
			panic(err)
		}
	}
	return sheet
}

func _ref(reference string) contracts.CellRef {
	ref, err := ParseReference(reference)
	if err != nil {
		panic(err)
	}
	return ref
}

var _fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func _newTestExecutor() *ExpressionExecutor {
	lexer := NewFormulaLexer(NewCanonicalizer())
	return NewExpressionExecutor(lexer, NewFormulaFunctions(func() time.Time {
		return _fixedNow
	}))
}
