package service

import (
	"log"
	"strings"
	"time"

	"stock-dashboard-backend/internal/cache"
	"stock-dashboard-backend/internal/model"
	"stock-dashboard-backend/internal/stockdata"
	"stock-dashboard-backend/internal/store"
)

const (
	// 公司列表数据可复用的最少存量
	minStoredCompanies = 10

	companiesCacheKey = "companies:list"
	companiesCacheTTL = 10 * time.Minute
)

// NormalizeSymbol 规范化股票代码，去掉 .NS 后缀
// 统一在服务层入口处理，存储和生成均使用规范化后的代码
func NormalizeSymbol(symbol string) string {
	return strings.TrimSuffix(strings.TrimSpace(symbol), ".NS")
}

// IsFresh 判断已存储的行情条数是否足以覆盖本次请求（非空且至少一半）
func IsFresh(storedCount, requestedCount int) bool {
	return storedCount > 0 && storedCount >= requestedCount/2
}

// HasEnoughCompanies 判断已存储公司数量是否足够直接复用
func HasEnoughCompanies(count int) bool {
	return count >= minStoredCompanies
}

// GetCompanies 获取公司列表，优先使用存量数据，refresh=true 时强制重建
func GetCompanies(limit int, refresh bool) ([]model.Company, error) {
	if limit <= 0 {
		limit = 15
	}

	if !refresh {
		var cached []model.Company
		if err := cache.Get(companiesCacheKey, &cached); err == nil && HasEnoughCompanies(len(cached)) {
			return cached, nil
		}

		stored, err := store.GetCompanies()
		if err == nil && HasEnoughCompanies(len(stored)) {
			return stored, nil
		}
	}

	return fetchAndStoreCompanies(limit)
}

// fetchAndStoreCompanies 从配置目录重建公司列表并全量入库
func fetchAndStoreCompanies(limit int) ([]model.Company, error) {
	companies := stockdata.Companies(limit)

	if err := store.SaveCompanies(companies); err != nil {
		log.Printf("保存公司列表失败: %v", err)
	} else {
		log.Printf("已存储 %d 家公司", len(companies))
	}

	if err := cache.Set(companiesCacheKey, companies, companiesCacheTTL); err != nil && cache.Enabled() {
		log.Printf("缓存公司列表失败: %v", err)
	}

	return companies, nil
}

// FetchStockData 获取指定股票最近days天的行情，按日期升序返回
// 存量不足一半时重新生成并全量替换存储
func FetchStockData(symbol string, days int) ([]model.StockBar, error) {
	cleanSymbol := NormalizeSymbol(symbol)
	if days <= 0 {
		days = 30
	}

	stored, err := store.GetSeries(cleanSymbol, days)
	if err == nil && IsFresh(len(stored), days) {
		return stored, nil
	}
	if err != nil {
		log.Printf("读取 %s 存量行情失败: %v", cleanSymbol, err)
	}

	log.Printf("为 %s 生成 %d 天模拟行情", cleanSymbol, days)
	bars := stockdata.GenerateSeries(cleanSymbol, days)
	if len(bars) == 0 {
		return nil, nil
	}

	if err := store.ReplaceSeries(cleanSymbol, bars); err != nil {
		log.Printf("存储 %s 行情失败: %v", cleanSymbol, err)
	}

	return bars, nil
}

// GetMarketStatus 获取市场开闭状态（9点至15点视为开市）
func GetMarketStatus() model.MarketStatusResponse {
	now := time.Now()
	status := "CLOSED"
	if hour := now.Hour(); hour >= 9 && hour <= 15 {
		status = "OPEN"
	}

	return model.MarketStatusResponse{
		MarketState: []model.MarketState{{MarketStatus: status}},
		Timestamp:   now.Format(time.RFC3339),
	}
}
