package main

import (
	"github.com/gin-gonic/gin"
	"github.com/kirill778/naviserv/contracts"
	"go.etcd.io/bbolt"
	"time"
)

const databaseOpenTimeout = time.Second

type ServiceContainer struct {
	Database           *bbolt.DB
	ApiController      contracts.ApiController
	SheetRepository    contracts.SheetRepository
	ExpressionExecutor contracts.ExpressionExecutor
	WebhookDispatcher  contracts.WebhookDispatcher
	FormulaSessions    contracts.FormulaSessionRegistry
	Router             *gin.Engine
}

// NewFormulaEngine wires the evaluator without any storage, used by the CLI as well
func NewFormulaEngine() (*ExpressionExecutor, *FormulaLexer) {
	lexer := NewFormulaLexer(NewCanonicalizer())
	return NewExpressionExecutor(lexer, NewFormulaFunctions(time.Now)), lexer
}

func BuildServiceContainer(configDbPath string) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(configDbPath, 0600, &bbolt.Options{Timeout: databaseOpenTimeout})
	if err != nil {
		return
	}

	serializer := NewCellBinarySerializer()
	executor, lexer := NewFormulaEngine()

	container.ExpressionExecutor = executor
	container.WebhookDispatcher = NewWebhookDispatcher()
	container.SheetRepository = NewSheetRepository(
		container.Database, container.ExpressionExecutor,
		serializer, lexer.canonicalizer, container.WebhookDispatcher,
	)
	container.FormulaSessions = NewFormulaSessionRegistry(container.SheetRepository, lexer)
	container.ApiController = NewApiController(
		container.SheetRepository, container.ExpressionExecutor,
		container.WebhookDispatcher, container.FormulaSessions,
	)

	container.Router = SetupRouter(container.ApiController)

	return
}
