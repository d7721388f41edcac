package main

import (
	"github.com/gin-gonic/gin"
	"github.com/kirill778/naviserv/contracts"
	"net/http"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"
const formulaPath = "formula"
const gridPath = "grid"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+formulaPath, controller.FormulaSessionAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+gridPath, controller.GridEditAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)
	apiRouterGroup.POST("/:sheet_id", controller.ImportSheetAction)

	router.GET("/functions", controller.FunctionListAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
