package main

import (
	"bytes"
	"errors"
	"fmt"
	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/kirill778/naviserv/contracts"
	"github.com/kirill778/naviserv/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestApiController_GetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGetCellAction := func(apiController contracts.ApiController) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1/a1", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("should return cell value", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "a1").
			Return(&contracts.Cell{
				Reference: "A1",
				Value:     "=1+2",
				Result:    "3",
			}, nil)

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToGetCellAction(apiController)
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "A1", response["reference"])
		assert.Equal(t, "=1+2", response["value"])
		assert.Equal(t, "3", response["result"])
	})

	testCases := map[string]struct {
		err          error
		expectedCode int
	}{
		"cell not found":    {contracts.CellNotFoundError, http.StatusNotFound},
		"sheet not found":   {contracts.SheetNotFoundError, http.StatusNotFound},
		"invalid reference": {contracts.InvalidReferenceError, http.StatusUnprocessableEntity},
		"custom error":      {errors.New("test"), http.StatusInternalServerError},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			sheetRepository := mocks.NewSheetRepository(t)
			sheetRepository.On("GetCell", "sheet1", "a1").Return(nil, testCase.err)

			apiController := NewApiController(sheetRepository, nil, nil, nil)

			w := requestToGetCellAction(apiController)
			response, err := _parseJsonBody(w)

			assert.NoError(t, err)
			assert.Equal(t, testCase.expectedCode, w.Code)
			assert.Equal(t, testCase.err.Error(), response["error"])
		})
	}
}

func TestApiController_SetCellAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToSetCellAction := func(apiController contracts.ApiController, data map[string]string) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(data)
		bodyReader := bytes.NewReader(jsonBody)

		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/b2", bodyReader)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success write", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "b2", "=A1*2").
			Return(&contracts.Cell{Reference: "B2", Value: "=A1*2", Result: "4"}, nil)

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToSetCellAction(apiController, map[string]string{"value": "=A1*2"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "=A1*2", response["value"])
		assert.Equal(t, "4", response["result"])
	})

	t.Run("error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("SetCell", "sheet1", "b2", "value1").
			Return(nil, errors.New("test"))

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToSetCellAction(apiController, map[string]string{"value": "value1"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "value1", response["value"])
		assert.Equal(t, "test", response["result"])
	})

	t.Run("invalid body", func(t *testing.T) {
		apiController := NewApiController(mocks.NewSheetRepository(t), nil, nil, nil)

		router := SetupRouter(apiController)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/b2", strings.NewReader("{"))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestApiController_GetSheetAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGetSheetAction := func(apiController contracts.ApiController, query string) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1"+query, nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		list := contracts.CellList{
			"A1": {Reference: "A1", Value: "1", Result: "1"},
			"B1": {Reference: "B1", Value: "=A1+1", Result: "2"},
		}

		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCellList", "sheet1").Return(list, nil)

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToGetSheetAction(apiController, "")
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		for key, cell := range list {
			assert.Contains(t, response, key)

			responseCell := response[key].(map[string]any)
			assert.Equal(t, cell.Value, responseCell["value"])
			assert.Equal(t, cell.Result, responseCell["result"])
		}
	})

	t.Run("not_found_sheet", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCellList", "sheet1").Return(nil, contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToGetSheetAction(apiController, "")
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, contracts.SheetNotFoundError.Error(), response["error"])
	})

	t.Run("error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCellList", "sheet1").Return(nil, errors.New("test"))

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToGetSheetAction(apiController, "")
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test", response["error"])
	})

	rows := [][]string{{"3", "4", "=A1*A1+B1*B1"}, {"=C1/9"}}

	t.Run("export_csv_raw", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetRows", "sheet1").Return(rows, nil)

		apiController := NewApiController(sheetRepository, _newTestExecutor(), nil, nil)

		w := requestToGetSheetAction(apiController, "?format=csv")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "sheet1.csv")
		assert.Equal(t, "3,4,=A1*A1+B1*B1\n=C1/9\n", w.Body.String())
	})

	t.Run("export_csv_evaluated", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetRows", "sheet1").Return(rows, nil)

		apiController := NewApiController(sheetRepository, _newTestExecutor(), nil, nil)

		w := requestToGetSheetAction(apiController, "?format=csv&evaluate=true")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3,4,25\n2.78\n", w.Body.String())
	})

	t.Run("export_xlsx", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetRows", "sheet1").Return(rows, nil)

		apiController := NewApiController(sheetRepository, _newTestExecutor(), nil, nil)

		w := requestToGetSheetAction(apiController, "?format=xlsx")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, XlsxContentType, w.Header().Get("Content-Type"))

		f, err := excelize.OpenReader(w.Body)
		assert.NoError(t, err)
		defer f.Close()

		value, err := f.GetCellValue(xlsxSheetName, "C1")
		assert.NoError(t, err)
		assert.Equal(t, "25", value)
	})

	t.Run("export_unknown_format", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetRows", "sheet1").Return(rows, nil)

		apiController := NewApiController(sheetRepository, _newTestExecutor(), nil, nil)

		w := requestToGetSheetAction(apiController, "?format=pdf")
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, response["error"], UnknownExportFormatError.Error())
	})

	t.Run("export_not_found_sheet", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetRows", "sheet1").Return(nil, contracts.SheetNotFoundError)

		apiController := NewApiController(sheetRepository, _newTestExecutor(), nil, nil)

		w := requestToGetSheetAction(apiController, "?format=csv")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApiController_ImportSheetAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToImportSheetAction := func(apiController contracts.ApiController, body io.Reader) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1", body)
		req.Header.Set("Content-Type", "text/csv")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("ReplaceSheet", "sheet1", [][]string{{"1", "=A1+1"}, {"x"}}).Return(nil)
		sheetRepository.On("GetCellList", "sheet1").Return(contracts.CellList{
			"A1": {Reference: "A1", Value: "1", Result: "1"},
			"B1": {Reference: "B1", Value: "=A1+1", Result: "2"},
			"A2": {Reference: "A2", Value: "x", Result: "x"},
		}, nil)

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToImportSheetAction(apiController, strings.NewReader("1,=A1+1\nx\n"))
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, response, 3)
		assert.Equal(t, "2", response["B1"].(map[string]any)["result"])
	})

	t.Run("invalid_csv", func(t *testing.T) {
		apiController := NewApiController(mocks.NewSheetRepository(t), nil, nil, nil)

		w := requestToImportSheetAction(apiController, io.MultiReader(
			strings.NewReader("1,2\n"),
			failingReader{},
		))
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, response["error"], CsvFormatError.Error())
	})

	t.Run("cell_outside_of_sheet", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("ReplaceSheet", "sheet1", mock.Anything).
			Return(fmt.Errorf("%w: `XFE1` is outside of the sheet", contracts.InvalidReferenceError))

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToImportSheetAction(apiController, strings.NewReader("1\n"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("error", func(t *testing.T) {
		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("ReplaceSheet", "sheet1", mock.Anything).Return(errors.New("test"))

		apiController := NewApiController(sheetRepository, nil, nil, nil)

		w := requestToImportSheetAction(apiController, strings.NewReader("1\n"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestApiController_SubscribeAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToSubscribeAction := func(apiController contracts.ApiController, cellId string, data map[string]string) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(data)

		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/Sheet1/"+cellId+"/subscribe", bytes.NewReader(jsonBody))
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		webhookDispatcher := mocks.NewWebhookDispatcher(t)
		webhookDispatcher.On("SetWebhookUrl", "sheet1", "B2", "http://example.com/hook").Return().Once()

		apiController := NewApiController(nil, nil, webhookDispatcher, nil)

		w := requestToSubscribeAction(apiController, "b2", map[string]string{"webhook_url": "http://example.com/hook"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "B2", response["reference"])
		assert.Equal(t, "http://example.com/hook", response["webhook_url"])
	})

	t.Run("invalid_url", func(t *testing.T) {
		apiController := NewApiController(nil, nil, mocks.NewWebhookDispatcher(t), nil)

		w := requestToSubscribeAction(apiController, "b2", map[string]string{"webhook_url": "not a url"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid_reference", func(t *testing.T) {
		apiController := NewApiController(nil, nil, mocks.NewWebhookDispatcher(t), nil)

		w := requestToSubscribeAction(apiController, "cell1", map[string]string{"webhook_url": "http://example.com/hook"})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, response["error"], contracts.InvalidReferenceError.Error())
	})
}

func TestApiController_FormulaSessionAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToFormulaSessionAction := func(apiController contracts.ApiController, cellId string, data map[string]any) *httptest.ResponseRecorder {
		jsonBody, _ := json.Marshal(data)

		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/"+cellId+"/formula", bytes.NewReader(jsonBody))
		router.ServeHTTP(w, req)
		return w
	}

	withSession := func(session contracts.AuthoringSession) func(string, func(contracts.AuthoringSession) error) error {
		return func(_ string, fn func(contracts.AuthoringSession) error) error {
			return fn(session)
		}
	}

	source := _ref("C1")
	activeState := contracts.AuthoringState{
		Active:     true,
		Source:     &source,
		Text:       "=A1+B2",
		Caret:      6,
		References: []contracts.CellRef{_ref("A1"), _ref("B2")},
	}

	t.Run("click", func(t *testing.T) {
		session := mocks.NewAuthoringSession(t)
		session.On("ClickCell", _ref("B2")).Return(nil).Once()
		session.On("State").Return(activeState).Once()

		formulaSessions := mocks.NewFormulaSessionRegistry(t)
		formulaSessions.On("WithSession", "sheet1", mock.Anything).Return(withSession(session))

		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "C1").
			Return(&contracts.Cell{Reference: "C1", Value: "=A1+B2", Result: "3"}, nil)

		apiController := NewApiController(sheetRepository, nil, nil, formulaSessions)

		w := requestToFormulaSessionAction(apiController, "b2", map[string]any{"action": FormulaActionClick})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, response["active"])
		assert.Equal(t, "=A1+B2", response["text"])
		assert.Equal(t, []any{"A1", "B2"}, response["highlighted"])
		assert.Equal(t, "3", response["cell"].(map[string]any)["result"])
	})

	t.Run("input", func(t *testing.T) {
		session := mocks.NewAuthoringSession(t)
		session.On("Edit", _ref("C1"), "=A1+", 2).Return(nil).Once()
		session.On("State").Return(activeState).Once()

		formulaSessions := mocks.NewFormulaSessionRegistry(t)
		formulaSessions.On("WithSession", "sheet1", mock.Anything).Return(withSession(session))

		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "C1").Return(nil, contracts.CellNotFoundError)

		apiController := NewApiController(sheetRepository, nil, nil, formulaSessions)

		w := requestToFormulaSessionAction(apiController, "c1", map[string]any{
			"action": FormulaActionInput, "text": "=A1+", "caret": 2,
		})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, response, "cell")
	})

	t.Run("insert_function", func(t *testing.T) {
		session := mocks.NewAuthoringSession(t)
		session.On("InsertFunction", _ref("C1"), "SUM").Return(nil).Once()
		session.On("State").Return(activeState).Once()

		formulaSessions := mocks.NewFormulaSessionRegistry(t)
		formulaSessions.On("WithSession", "sheet1", mock.Anything).Return(withSession(session))

		sheetRepository := mocks.NewSheetRepository(t)
		sheetRepository.On("GetCell", "sheet1", "C1").Return(nil, contracts.CellNotFoundError)

		apiController := NewApiController(sheetRepository, nil, nil, formulaSessions)

		w := requestToFormulaSessionAction(apiController, "c1", map[string]any{
			"action": FormulaActionInsertFunction, "function": "SUM",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no_session", func(t *testing.T) {
		session := mocks.NewAuthoringSession(t)
		session.On("Confirm").Return(contracts.NoAuthoringSessionError).Once()

		formulaSessions := mocks.NewFormulaSessionRegistry(t)
		formulaSessions.On("WithSession", "sheet1", mock.Anything).Return(withSession(session))

		apiController := NewApiController(nil, nil, nil, formulaSessions)

		w := requestToFormulaSessionAction(apiController, "c1", map[string]any{"action": FormulaActionConfirm})
		response, err := _parseJsonBody(w)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, contracts.NoAuthoringSessionError.Error(), response["error"])
	})

	t.Run("unknown_action", func(t *testing.T) {
		apiController := NewApiController(nil, nil, nil, mocks.NewFormulaSessionRegistry(t))

		w := requestToFormulaSessionAction(apiController, "c1", map[string]any{"action": "undo"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid_reference", func(t *testing.T) {
		apiController := NewApiController(nil, nil, nil, mocks.NewFormulaSessionRegistry(t))

		w := requestToFormulaSessionAction(apiController, "cell1", map[string]any{"action": FormulaActionCancel})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("error", func(t *testing.T) {
		session := mocks.NewAuthoringSession(t)
		session.On("Cancel").Return(errors.New("test")).Once()

		formulaSessions := mocks.NewFormulaSessionRegistry(t)
		formulaSessions.On("WithSession", "sheet1", mock.Anything).Return(withSession(session))

		apiController := NewApiController(nil, nil, nil, formulaSessions)

		w := requestToFormulaSessionAction(apiController, "c1", map[string]any{"action": FormulaActionCancel})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestApiController_GridEditAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	requestToGridEditAction := func(apiController contracts.ApiController, cellId string, body string) *httptest.ResponseRecorder {
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/"+ApiVersion+"/sheet1/"+cellId+"/grid", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	actions := map[string]contracts.GridEdit{
		GridActionInsertRowAbove:    {Axis: contracts.GridAxisRow, Index: 2},
		GridActionInsertRowBelow:    {Axis: contracts.GridAxisRow, Index: 3},
		GridActionDeleteRow:         {Axis: contracts.GridAxisRow, Index: 2, Delete: true},
		GridActionInsertColumnLeft:  {Axis: contracts.GridAxisColumn, Index: 1},
		GridActionInsertColumnRight: {Axis: contracts.GridAxisColumn, Index: 2},
		GridActionDeleteColumn:      {Axis: contracts.GridAxisColumn, Index: 1, Delete: true},
	}

	for action, expectedEdit := range actions {
		t.Run(action, func(t *testing.T) {
			sheetRepository := mocks.NewSheetRepository(t)
			sheetRepository.On("EditGrid", "sheet1", expectedEdit).Return(nil)
			sheetRepository.On("GetCellList", "sheet1").Return(contracts.CellList{
				"A1": {Reference: "A1", Value: "1", Result: "1"},
			}, nil)

			apiController := NewApiController(sheetRepository, nil, nil, nil)

			w := requestToGridEditAction(apiController, "b3", `{"action":"`+action+`"}`)
			response, err := _parseJsonBody(w)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "1", response["A1"].(map[string]any)["result"])
		})
	}

	testCases := map[string]struct {
		err          error
		expectedCode int
	}{
		"sheet not found": {contracts.SheetNotFoundError, http.StatusNotFound},
		"sheet is full":   {contracts.InvalidReferenceError, http.StatusUnprocessableEntity},
		"custom error":    {errors.New("test"), http.StatusInternalServerError},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			sheetRepository := mocks.NewSheetRepository(t)
			sheetRepository.On("EditGrid", "sheet1", mock.Anything).Return(testCase.err)

			apiController := NewApiController(sheetRepository, nil, nil, nil)

			w := requestToGridEditAction(apiController, "a1", `{"action":"delete_row"}`)
			response, err := _parseJsonBody(w)

			assert.NoError(t, err)
			assert.Equal(t, testCase.expectedCode, w.Code)
			assert.Equal(t, testCase.err.Error(), response["error"])
		})
	}

	t.Run("unknown_action", func(t *testing.T) {
		apiController := NewApiController(mocks.NewSheetRepository(t), nil, nil, nil)

		w := requestToGridEditAction(apiController, "a1", `{"action":"merge"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid_reference", func(t *testing.T) {
		apiController := NewApiController(mocks.NewSheetRepository(t), nil, nil, nil)

		w := requestToGridEditAction(apiController, "1a", `{"action":"delete_row"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestApiController_FunctionListAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := SetupRouter(NewApiController(nil, nil, nil, nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/functions", nil)
	router.ServeHTTP(w, req)

	var response []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response, len(FunctionDefinitions))
	assert.Equal(t, FunctionDefinitions[0].Name, response[0]["name"])
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func _parseJsonBody(w *httptest.ResponseRecorder) (response map[string]any, err error) {
	err = json.Unmarshal(w.Body.Bytes(), &response)
	return
}
