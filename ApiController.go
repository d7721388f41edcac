package main

import (
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/kirill778/naviserv/contracts"
	"log"
	"net/http"
	"strings"
)

const (
	exportFormatCsv  = "csv"
	exportFormatXlsx = "xlsx"
)

const (
	FormulaActionStart          = "start"
	FormulaActionInput          = "input"
	FormulaActionClick          = "click"
	FormulaActionInsertFunction = "insert_function"
	FormulaActionConfirm        = "confirm"
	FormulaActionCancel         = "cancel"
)

const (
	GridActionInsertRowAbove    = "insert_row_above"
	GridActionInsertRowBelow    = "insert_row_below"
	GridActionDeleteRow         = "delete_row"
	GridActionInsertColumnLeft  = "insert_column_left"
	GridActionInsertColumnRight = "insert_column_right"
	GridActionDeleteColumn      = "delete_column"
)

var UnknownExportFormatError = errors.New("unknown export format")

type ApiController struct {
	SheetRepository    contracts.SheetRepository
	ExpressionExecutor contracts.ExpressionExecutor
	WebhookDispatcher  contracts.WebhookDispatcher
	FormulaSessions    contracts.FormulaSessionRegistry
	canonicalizer      *Canonicalizer
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type SetCellRequest struct {
	Value string `json:"value"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required,url"`
}

type SubscribeResponse struct {
	Reference  string `json:"reference"`
	WebhookUrl string `json:"webhook_url"`
}

type ExportSheetQuery struct {
	Format   string `form:"format"`
	Evaluate bool   `form:"evaluate"`
}

// FormulaSessionRequest is one interaction with the formula being authored in the sheet.
// Cell is the cell the action applies to: the edited cell for start/input, the clicked cell
// for click and the active cell for insert_function.
type FormulaSessionRequest struct {
	Action   string `json:"action" binding:"required,oneof=start input click insert_function confirm cancel"`
	Text     string `json:"text"`
	Caret    *int   `json:"caret"`
	Function string `json:"function"`
}

// GridEditRequest inserts or deletes the row or column of the cell in the path
type GridEditRequest struct {
	Action string `json:"action" binding:"required,oneof=insert_row_above insert_row_below delete_row insert_column_left insert_column_right delete_column"`
}

type FormulaSessionResponse struct {
	contracts.AuthoringState
	Highlighted []string        `json:"highlighted"`
	Cell        *contracts.Cell `json:"cell,omitempty"`
}

func NewApiController(
	sheetRepository contracts.SheetRepository, expressionExecutor contracts.ExpressionExecutor,
	webhookDispatcher contracts.WebhookDispatcher, formulaSessions contracts.FormulaSessionRegistry,
) *ApiController {
	return &ApiController{
		SheetRepository:    sheetRepository,
		ExpressionExecutor: expressionExecutor,
		WebhookDispatcher:  webhookDispatcher,
		FormulaSessions:    formulaSessions,
		canonicalizer:      NewCanonicalizer(),
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidReferenceError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

// SetCellAction stores the value even when it evaluates to an error, the result shows the error marker
func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		response, err = api.SheetRepository.SetCell(params.SheetId, params.CellId, request.Value)
	}

	if err != nil {
		if response == nil {
			response = &contracts.Cell{}
		}
		response.Value = request.Value
		response.Result = err.Error()
		c.JSON(http.StatusUnprocessableEntity, response)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

// GetSheetAction returns every cell of the sheet, or the whole sheet as a file with ?format=csv|xlsx
func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	query := ExportSheetQuery{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindQuery(&query)
	}

	if err == nil && query.Format != "" {
		api.exportSheet(c, params.SheetId, query)
		return
	}

	var response contracts.CellList
	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

// ImportSheetAction replaces the sheet with the CSV request body
func (api *ApiController) ImportSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	var sheet *Sheet
	var response contracts.CellList

	err := c.ShouldBindUri(&params)
	if err == nil {
		sheet, err = ImportCSV(c.Request.Body)
	}

	if err == nil {
		err = api.SheetRepository.ReplaceSheet(params.SheetId, sheet.Rows())
	}

	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if errors.Is(err, CsvFormatError) || errors.Is(err, contracts.InvalidReferenceError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

// GridEditAction inserts or deletes a row or column and returns every cell of the updated sheet
func (api *ApiController) GridEditAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := GridEditRequest{}
	var ref contracts.CellRef
	var response contracts.CellList

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		ref, err = ParseReference(api.canonicalizer.CanonicalizeReference(params.CellId))
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err = api.SheetRepository.EditGrid(params.SheetId, makeGridEdit(request.Action, ref))
	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidReferenceError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	reference := api.canonicalizer.CanonicalizeReference(params.CellId)
	if err == nil {
		_, err = ParseReference(reference)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(strings.ToLower(params.SheetId), reference, request.WebhookUrl)
	c.JSON(http.StatusCreated, SubscribeResponse{Reference: reference, WebhookUrl: request.WebhookUrl})
}

func (api *ApiController) FormulaSessionAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := FormulaSessionRequest{}
	var ref contracts.CellRef
	var state contracts.AuthoringState

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		ref, err = ParseReference(api.canonicalizer.CanonicalizeReference(params.CellId))
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err = api.FormulaSessions.WithSession(params.SheetId, func(session contracts.AuthoringSession) error {
		if err := api.applyFormulaAction(session, ref, request); err != nil {
			return err
		}
		state = session.State()
		return nil
	})

	if errors.Is(err, contracts.NoAuthoringSessionError) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, FunctionArgumentsError) || errors.Is(err, contracts.InvalidReferenceError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, api.makeFormulaSessionResponse(params.SheetId, ref, state))
	}
}

func (api *ApiController) FunctionListAction(c *gin.Context) {
	c.JSON(http.StatusOK, FunctionDefinitions)
}

func (api *ApiController) applyFormulaAction(session contracts.AuthoringSession, ref contracts.CellRef, request FormulaSessionRequest) error {
	caret := CaretAtEnd
	if request.Caret != nil {
		caret = *request.Caret
	}

	switch request.Action {
	case FormulaActionStart:
		return session.Start(ref, request.Text)
	case FormulaActionInput:
		return session.Edit(ref, request.Text, caret)
	case FormulaActionClick:
		return session.ClickCell(ref)
	case FormulaActionInsertFunction:
		return session.InsertFunction(ref, request.Function)
	case FormulaActionConfirm:
		return session.Confirm()
	case FormulaActionCancel:
		return session.Cancel()
	}

	return fmt.Errorf("unknown formula action `%s`", request.Action)
}

func makeGridEdit(action string, ref contracts.CellRef) contracts.GridEdit {
	switch action {
	case GridActionInsertRowBelow:
		return contracts.GridEdit{Axis: contracts.GridAxisRow, Index: ref.Row + 1}
	case GridActionDeleteRow:
		return contracts.GridEdit{Axis: contracts.GridAxisRow, Index: ref.Row, Delete: true}
	case GridActionInsertColumnLeft:
		return contracts.GridEdit{Axis: contracts.GridAxisColumn, Index: ref.Col}
	case GridActionInsertColumnRight:
		return contracts.GridEdit{Axis: contracts.GridAxisColumn, Index: ref.Col + 1}
	case GridActionDeleteColumn:
		return contracts.GridEdit{Axis: contracts.GridAxisColumn, Index: ref.Col, Delete: true}
	}
	return contracts.GridEdit{Axis: contracts.GridAxisRow, Index: ref.Row}
}

// makeFormulaSessionResponse adds the live result of the cell being authored, or of the
// requested cell once the session is closed
func (api *ApiController) makeFormulaSessionResponse(sheetId string, ref contracts.CellRef, state contracts.AuthoringState) FormulaSessionResponse {
	response := FormulaSessionResponse{
		AuthoringState: state,
		Highlighted:    refsToReferences(state.References),
	}

	if state.Source != nil {
		ref = *state.Source
	}

	cell, err := api.SheetRepository.GetCell(sheetId, FormatCellRef(ref))
	if err == nil {
		response.Cell = cell
	}
	return response
}

func (api *ApiController) exportSheet(c *gin.Context, sheetId string, query ExportSheetQuery) {
	rows, err := api.SheetRepository.GetRows(sheetId)
	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sheet := NewSheet(rows)
	fileName := strings.ToLower(sheetId) + "." + query.Format

	switch query.Format {
	case exportFormatCsv:
		var executor contracts.ExpressionExecutor
		if query.Evaluate {
			executor = api.ExpressionExecutor
		}

		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		err = ExportCSV(c.Writer, sheet, executor)

	case exportFormatXlsx:
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
		c.Header("Content-Type", XlsxContentType)
		c.Status(http.StatusOK)
		err = ExportXLSX(c.Writer, sheet, api.ExpressionExecutor)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %s", UnknownExportFormatError, query.Format)})
		return
	}

	if err != nil {
		log.Printf("[api] export %s as %s: %s", sheetId, query.Format, err)
	}
}
