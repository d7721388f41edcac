package main

import (
	"github.com/kirill778/naviserv/contracts"
	"strings"
	"sync"
)

// RepositoryGrid exposes one stored sheet as a grid: reads are raw values, writes go through SetCell
type RepositoryGrid struct {
	repository contracts.SheetRepository
	sheetId    string
}

func NewRepositoryGrid(repository contracts.SheetRepository, sheetId string) *RepositoryGrid {
	return &RepositoryGrid{repository: repository, sheetId: sheetId}
}

func (g *RepositoryGrid) Get(ref contracts.CellRef) string {
	value, err := g.repository.GetRawValue(g.sheetId, ref)
	if err != nil {
		return ""
	}
	return value
}

func (g *RepositoryGrid) Set(ref contracts.CellRef, value string) error {
	_, err := g.repository.SetCell(g.sheetId, FormatCellRef(ref), value)
	return err
}

type lockedSession struct {
	mutex   sync.Mutex
	session contracts.AuthoringSession
}

// FormulaSessionRegistry keeps one authoring session per sheet
type FormulaSessionRegistry struct {
	repository contracts.SheetRepository
	lexer      *FormulaLexer
	sessions   map[string]*lockedSession
	mutex      sync.Mutex
}

func NewFormulaSessionRegistry(repository contracts.SheetRepository, lexer *FormulaLexer) *FormulaSessionRegistry {
	return &FormulaSessionRegistry{
		repository: repository,
		lexer:      lexer,
		sessions:   map[string]*lockedSession{},
	}
}

func (r *FormulaSessionRegistry) WithSession(sheetId string, fn func(session contracts.AuthoringSession) error) error {
	locked := r.lockedSession(strings.ToLower(sheetId))

	locked.mutex.Lock()
	defer locked.mutex.Unlock()

	return fn(locked.session)
}

func (r *FormulaSessionRegistry) lockedSession(sheetId string) *lockedSession {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	locked, ok := r.sessions[sheetId]
	if !ok {
		locked = &lockedSession{
			session: NewAuthoringSession(NewRepositoryGrid(r.repository, sheetId), r.lexer),
		}
		r.sessions[sheetId] = locked
	}
	return locked
}
