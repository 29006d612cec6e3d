package service

import (
	"log"
	"math"
	"time"

	"stock-dashboard-backend/internal/cache"
	"stock-dashboard-backend/internal/model"
)

const (
	predictionWindowDays = 30
	predictionCacheTTL   = 5 * time.Minute

	minWindowBars = 5  // 低于该条数返回默认预测
	maxWindowBars = 10 // 评分最多使用最近10条
)

// PredictStock 预测指定股票的短期走势
// 返回 ok=false 表示无可用预测（数据不足或计算失败），调用方据此返回404
func PredictStock(symbol string) (model.PredictionResult, bool) {
	cleanSymbol := NormalizeSymbol(symbol)
	cacheKey := "prediction:" + cleanSymbol

	var cached model.PredictionResult
	if err := cache.Get(cacheKey, &cached); err == nil && cached.Trend != "unknown" {
		return cached, true
	}

	window, err := FetchStockData(cleanSymbol, predictionWindowDays)
	if err != nil || len(window) == 0 {
		return model.DefaultPrediction(), false
	}

	// 行情按日期升序存储，评分要求最新在前，先翻转
	reversed := make([]model.StockBar, len(window))
	for i, b := range window {
		reversed[len(window)-1-i] = b
	}

	result, ok := PredictFromWindow(reversed)
	if !ok {
		return result, false
	}

	if err := cache.Set(cacheKey, result, predictionCacheTTL); err != nil && cache.Enabled() {
		log.Printf("缓存 %s 预测结果失败: %v", cleanSymbol, err)
	}

	return result, true
}

// PredictFromWindow 基于最新在前的行情窗口计算预测
// 纯函数：同一窗口输入始终产生同一输出，无隐藏随机性
func PredictFromWindow(window []model.StockBar) (result model.PredictionResult, ok bool) {
	// 计算失败不外泄，统一退化为默认预测
	defer func() {
		if r := recover(); r != nil {
			log.Printf("预测计算异常: %v", r)
			result = model.DefaultPrediction()
			ok = false
		}
	}()

	if len(window) < minWindowBars {
		return model.DefaultPrediction(), false
	}

	n := len(window)
	if n > maxWindowBars {
		n = maxWindowBars
	}

	prices := make([]float64, n)
	volumes := make([]int64, n)
	for i := 0; i < n; i++ {
		prices[i] = window[i].Close
		volumes[i] = window[i].Volume
	}

	currentPrice := prices[0]

	shortSum := 0.0
	for _, p := range prices[:minWindowBars] {
		shortSum += p
	}
	shortAvg := shortSum / float64(minWindowBars)

	longSum := 0.0
	for _, p := range prices {
		longSum += p
	}
	longAvg := longSum / float64(n)

	var volumeSum int64
	for _, v := range volumes {
		volumeSum += v
	}
	avgVolume := float64(volumeSum) / float64(n)
	recentVolume := float64(volumes[0])

	trendScore := 0
	confidence := 50.0

	if shortAvg > longAvg {
		trendScore += 2
		confidence += 15
	} else {
		trendScore -= 1
		confidence += 5
	}

	volumeSignal := "low"
	if recentVolume > avgVolume {
		trendScore += 1
		confidence += 10
		volumeSignal = "high"
	}

	changeSum := 0.0
	changeCount := 0
	for i := 1; i < minWindowBars && i < n; i++ {
		if prices[i] == 0 {
			return model.DefaultPrediction(), false
		}
		changeSum += (prices[i-1] - prices[i]) / prices[i] * 100
		changeCount++
	}
	if changeCount > 0 && changeSum/float64(changeCount) > 0 {
		trendScore += 1
		confidence += 10
	}

	predictedPrice := currentPrice * (1 + float64(trendScore)*0.5/100)
	confidence = math.Min(math.Max(confidence, 40), 85)

	trend := "neutral"
	if trendScore > 0 {
		trend = "bullish"
	} else if trendScore < 0 {
		trend = "bearish"
	}

	return model.PredictionResult{
		PredictedPrice: math.Round(predictedPrice*100) / 100,
		Confidence:     math.Round(confidence*10) / 10,
		Trend:          trend,
		CurrentPrice:   math.Round(currentPrice*100) / 100,
		Factors: model.PredictionFactors{
			TrendScore:   trendScore,
			VolumeSignal: volumeSignal,
		},
	}, true
}
