package model

// PredictionFactors 预测因子
type PredictionFactors struct {
	TrendScore   int    `json:"trend_score"`
	VolumeSignal string `json:"volume_signal"` // high, low, unknown
}

// PredictionResult 预测结果
type PredictionResult struct {
	PredictedPrice float64           `json:"predicted_price"`
	Confidence     float64           `json:"confidence"`
	Trend          string            `json:"trend"` // bullish, bearish, neutral, unknown
	CurrentPrice   float64           `json:"current_price"`
	Factors        PredictionFactors `json:"factors"`
}

// DefaultPrediction 默认预测结果（数据不足或计算失败时返回）
func DefaultPrediction() PredictionResult {
	return PredictionResult{
		PredictedPrice: 0.0,
		Confidence:     0.0,
		Trend:          "unknown",
		CurrentPrice:   0.0,
		Factors: PredictionFactors{
			TrendScore:   0,
			VolumeSignal: "unknown",
		},
	}
}
