package main

import (
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"strings"
)

// CaretAtEnd places the caret after the last character
const CaretAtEnd = -1

// AuthoringSession tracks a formula while it is composed. It is Idle until a formula
// is started and writes every change of the formula text through to the grid.
type AuthoringSession struct {
	grid  contracts.Grid
	lexer *FormulaLexer

	active        bool
	source        contracts.CellRef
	text          string
	caret         int
	previousValue string
	references    []contracts.CellRef
}

func NewAuthoringSession(grid contracts.Grid, lexer *FormulaLexer) *AuthoringSession {
	return &AuthoringSession{
		grid:       grid,
		lexer:      lexer,
		references: make([]contracts.CellRef, 0),
	}
}

// Start begins a formula in the source cell. A session open in another cell is committed first.
func (s *AuthoringSession) Start(source contracts.CellRef, initialText string) error {
	if s.active {
		if err := s.Confirm(); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(initialText, contracts.FormulaPrefix) {
		initialText = contracts.FormulaPrefix + initialText
	}

	s.previousValue = s.grid.Get(source)
	s.active = true
	s.source = source

	return s.update(initialText, CaretAtEnd)
}

func (s *AuthoringSession) Edit(ref contracts.CellRef, text string, caret int) error {
	if s.active && ref != s.source {
		// editing another cell is leaving the formula
		if err := s.Confirm(); err != nil {
			return err
		}
	}

	if !s.active {
		if !strings.HasPrefix(text, contracts.FormulaPrefix) {
			return s.grid.Set(ref, text)
		}

		if err := s.Start(ref, text); err != nil {
			return err
		}
		s.caret = s.clampCaret(caret)
		return nil
	}

	if !strings.HasPrefix(text, contracts.FormulaPrefix) {
		// leading "=" removed: the text is a plain value now
		err := s.grid.Set(s.source, text)
		s.reset()
		return err
	}

	return s.update(text, caret)
}

// ClickCell inserts the reference of the clicked cell at the caret
func (s *AuthoringSession) ClickCell(ref contracts.CellRef) error {
	if !s.active {
		return contracts.NoAuthoringSessionError
	}

	if ref == s.source {
		return nil
	}

	return s.insertAtCaret(FormatCellRef(ref))
}

// InsertFunction inserts `NAME(` at the caret and leaves the caret inside the parenthesis.
// Without an open session the formula is started from the active cell content.
func (s *AuthoringSession) InsertFunction(active contracts.CellRef, functionName string) error {
	functionName = strings.ToUpper(strings.TrimSpace(functionName))
	if functionName == "" {
		return fmt.Errorf("%w: empty function name", FunctionArgumentsError)
	}

	if !s.active {
		if err := s.Start(active, s.grid.Get(active)); err != nil {
			return err
		}
	}

	return s.insertAtCaret(functionName + "(")
}

// Confirm keeps the current text as the cell value
func (s *AuthoringSession) Confirm() error {
	if !s.active {
		return contracts.NoAuthoringSessionError
	}

	err := s.grid.Set(s.source, s.text)
	s.reset()
	return err
}

// Cancel restores the value the cell had before the formula was started
func (s *AuthoringSession) Cancel() error {
	if !s.active {
		return contracts.NoAuthoringSessionError
	}

	err := s.grid.Set(s.source, s.previousValue)
	s.reset()
	return err
}

func (s *AuthoringSession) State() contracts.AuthoringState {
	state := contracts.AuthoringState{
		Active:     s.active,
		Text:       s.text,
		Caret:      s.caret,
		References: append(make([]contracts.CellRef, 0, len(s.references)), s.references...),
	}

	if s.active {
		source := s.source
		state.Source = &source
	}
	return state
}

func (s *AuthoringSession) insertAtCaret(insertion string) error {
	text := s.text[:s.caret] + insertion + s.text[s.caret:]
	return s.update(text, s.caret+len(insertion))
}

func (s *AuthoringSession) update(text string, caret int) error {
	s.text = text
	s.caret = s.clampCaret(caret)
	s.references = s.trackReferences(text)

	return s.grid.Set(s.source, text)
}

func (s *AuthoringSession) trackReferences(text string) []contracts.CellRef {
	references, _ := ExtractReferences(s.lexer, strings.TrimPrefix(text, contracts.FormulaPrefix))

	refs := make([]contracts.CellRef, 0, len(references))
	for _, reference := range references {
		if ref, err := ParseReference(reference); err == nil {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (s *AuthoringSession) clampCaret(caret int) int {
	if caret < 0 || caret > len(s.text) {
		return len(s.text)
	}
	return caret
}

func (s *AuthoringSession) reset() {
	s.active = false
	s.source = contracts.CellRef{}
	s.text = ""
	s.caret = 0
	s.previousValue = ""
	s.references = make([]contracts.CellRef, 0)
}
