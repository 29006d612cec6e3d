package handler

import (
	"net/http"
	"strconv"

	"stock-dashboard-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCompanies 获取公司列表
func GetCompanies(c *gin.Context) {
	refresh := c.Query("refresh") == "true" || c.Query("refresh") == "1"

	limit := 15
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	companies, err := service.GetCompanies(limit, refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取公司列表失败",
		})
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetStockData 获取股票历史行情
func GetStockData(c *gin.Context) {
	symbol := c.Param("symbol")

	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	bars, err := service.FetchStockData(symbol, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	if len(bars) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Stock data not available",
		})
		return
	}

	c.JSON(http.StatusOK, bars)
}

// GetMarketStatus 获取市场开闭状态
func GetMarketStatus(c *gin.Context) {
	c.JSON(http.StatusOK, service.GetMarketStatus())
}
