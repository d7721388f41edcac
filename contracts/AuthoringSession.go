package contracts

import "errors"

var NoAuthoringSessionError = errors.New("no formula is being edited")

// AuthoringState is a snapshot of a live formula authoring session
type AuthoringState struct {
	Active     bool      `json:"active"`
	Source     *CellRef  `json:"source,omitempty"`
	Text       string    `json:"text"`
	Caret      int       `json:"caret"`
	References []CellRef `json:"references"`
}

// AuthoringSession is the live reference tracker of one formula being composed
type AuthoringSession interface {
	Start(source CellRef, initialText string) error
	// Edit is a keystroke in the cell `ref`; typing "=" as the first character starts a session
	Edit(ref CellRef, text string, caret int) error
	ClickCell(ref CellRef) error
	InsertFunction(active CellRef, functionName string) error
	Confirm() error
	Cancel() error
	State() AuthoringState
}

type FormulaSessionRegistry interface {
	// WithSession runs fn with the sheet's authoring session locked; the session is created on first use
	WithSession(sheetId string, fn func(session AuthoringSession) error) error
}
