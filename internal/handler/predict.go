package handler

import (
	"net/http"

	"stock-dashboard-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Predict 股票走势预测
func Predict(c *gin.Context) {
	symbol := c.Param("symbol")

	result, ok := service.PredictStock(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Prediction not available",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
