package stockdata

import (
	"math"
	"math/rand"
	"time"

	"stock-dashboard-backend/internal/model"
)

// 未配置股票的默认模拟参数
const (
	defaultBasePrice = 1500.0
	defaultMinVolume = 500000
	defaultMaxVolume = 5000000
)

// RandSource 随机数来源，*rand.Rand 天然满足该接口
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// globalRandSource 默认使用 math/rand 的全局源（并发安全）
type globalRandSource struct{}

func (globalRandSource) Float64() float64 { return rand.Float64() }
func (globalRandSource) Intn(n int) int   { return rand.Intn(n) }

var randSource RandSource = globalRandSource{}

// SetRandSource 注入随机数来源，传nil恢复默认（测试用）
func SetRandSource(r RandSource) {
	if r == nil {
		randSource = globalRandSource{}
		return
	}
	randSource = r
}

// uniform 返回 [min, max) 区间的均匀随机数
func uniform(min, max float64) float64 {
	return min + randSource.Float64()*(max-min)
}

// uniformInt 返回 [min, max] 闭区间的均匀随机整数
func uniformInt(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + int64(randSource.Intn(int(max-min+1)))
}

// GenerateSeries 为指定股票生成days天的模拟行情序列，按日期升序返回
// 未配置的股票走默认参数路径，不报错
func GenerateSeries(symbol string, days int) []model.StockBar {
	if days < 1 {
		return nil
	}

	priceCfg, okPrice := LookupPriceConfig(symbol)
	volumeCfg, okVolume := LookupVolumeConfig(symbol)
	if !okPrice || !okVolume {
		return generateDefaultSeries(days)
	}

	bars := make([]model.StockBar, 0, days)
	currentPrice := priceCfg.Base
	now := time.Now()

	// 从今天向过去逐日生成，随机游走跨整个窗口连续
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")

		dailyTrend := priceCfg.Trend + uniform(-0.02, 0.02)
		dailyVolatility := priceCfg.Volatility * uniform(0.5, 1.5)

		open := currentPrice * (1 + uniform(-0.01, 0.01))
		high := open * (1 + uniform(0, dailyVolatility))
		low := open * (1 - uniform(0, dailyVolatility))
		// close 仅由 open 和当日趋势推出，可能落在 [low, high] 之外
		closePrice := open * (1 + dailyTrend)

		bars = append(bars, model.StockBar{
			Date:   date,
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: uniformInt(volumeCfg.Min, volumeCfg.Max),
		})

		currentPrice = closePrice * (1 + uniform(-0.005, 0.005))
	}

	reverseBars(bars)
	return bars
}

// generateDefaultSeries 默认参数路径：逐日随机趋势和波动率
func generateDefaultSeries(days int) []model.StockBar {
	bars := make([]model.StockBar, 0, days)
	currentPrice := defaultBasePrice
	now := time.Now()

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")

		dailyTrend := uniform(-0.03, 0.03)
		volatility := uniform(0.01, 0.04)

		open := currentPrice * (1 + uniform(-0.01, 0.01))
		high := open * (1 + uniform(0, volatility))
		low := open * (1 - uniform(0, volatility))
		closePrice := open * (1 + dailyTrend)

		bars = append(bars, model.StockBar{
			Date:   date,
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: uniformInt(defaultMinVolume, defaultMaxVolume),
		})

		currentPrice = closePrice
	}

	reverseBars(bars)
	return bars
}

func reverseBars(bars []model.StockBar) {
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
