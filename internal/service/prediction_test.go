package service

import (
	"reflect"
	"testing"

	"stock-dashboard-backend/internal/model"
)

// makeWindow 构造最新在前的行情窗口
func makeWindow(closes []float64, volumes []int64) []model.StockBar {
	bars := make([]model.StockBar, len(closes))
	for i := range closes {
		bars[i] = model.StockBar{
			Date:   "2025-01-01",
			Open:   closes[i],
			High:   closes[i] * 1.01,
			Low:    closes[i] * 0.99,
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return bars
}

func flatVolumes(n int, v int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestPredictFromWindowTooShort(t *testing.T) {
	window := makeWindow([]float64{100, 101, 102}, flatVolumes(3, 1000000))

	result, ok := PredictFromWindow(window)
	if ok {
		t.Fatal("expected unavailable prediction for window of 3 bars")
	}
	if !reflect.DeepEqual(result, model.DefaultPrediction()) {
		t.Errorf("expected exact default prediction, got %+v", result)
	}
}

func TestPredictFromWindowBearish(t *testing.T) {
	// 价格随时间下跌：最新100，最老109；成交量持平
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}
	window := makeWindow(closes, flatVolumes(10, 1000000))

	result, ok := PredictFromWindow(window)
	if !ok {
		t.Fatal("expected available prediction")
	}
	if result.Trend != "bearish" {
		t.Errorf("expected bearish, got %s", result.Trend)
	}
	if result.Factors.TrendScore != -1 {
		t.Errorf("expected trend score -1, got %d", result.Factors.TrendScore)
	}
	if result.Confidence != 55.0 {
		t.Errorf("expected confidence 55.0, got %v", result.Confidence)
	}
	if result.CurrentPrice != 100.0 {
		t.Errorf("expected current price 100.0, got %v", result.CurrentPrice)
	}
	if result.PredictedPrice != 99.5 {
		t.Errorf("expected predicted price 99.5, got %v", result.PredictedPrice)
	}
	if result.Factors.VolumeSignal != "low" {
		t.Errorf("expected volume signal low, got %s", result.Factors.VolumeSignal)
	}
}

func TestPredictFromWindowBullish(t *testing.T) {
	// 价格随时间上涨且近期放量：全部看涨因子命中
	closes := []float64{110, 109, 108, 107, 106, 105, 104, 103, 102, 101}
	volumes := flatVolumes(10, 1000000)
	volumes[0] = 2000000

	result, ok := PredictFromWindow(makeWindow(closes, volumes))
	if !ok {
		t.Fatal("expected available prediction")
	}
	if result.Trend != "bullish" {
		t.Errorf("expected bullish, got %s", result.Trend)
	}
	if result.Factors.TrendScore != 4 {
		t.Errorf("expected trend score 4, got %d", result.Factors.TrendScore)
	}
	if result.Confidence != 85.0 {
		t.Errorf("expected confidence clamped to 85.0, got %v", result.Confidence)
	}
	if result.PredictedPrice != 112.2 {
		t.Errorf("expected predicted price 112.2, got %v", result.PredictedPrice)
	}
	if result.Factors.VolumeSignal != "high" {
		t.Errorf("expected volume signal high, got %s", result.Factors.VolumeSignal)
	}
}

func TestPredictFromWindowNeutral(t *testing.T) {
	// 短均线低于长均线(-1)但近期日均涨幅为正(+1)，得分归零
	closes := []float64{110, 100, 110, 100, 110, 120, 120, 120, 120, 120}
	window := makeWindow(closes, flatVolumes(10, 1000000))

	result, ok := PredictFromWindow(window)
	if !ok {
		t.Fatal("expected available prediction")
	}
	if result.Factors.TrendScore != 0 {
		t.Fatalf("expected trend score 0, got %d", result.Factors.TrendScore)
	}
	if result.Trend != "neutral" {
		t.Errorf("expected neutral, got %s", result.Trend)
	}
	if result.PredictedPrice != 110.0 {
		t.Errorf("expected predicted price 110.0, got %v", result.PredictedPrice)
	}
	if result.Confidence != 65.0 {
		t.Errorf("expected confidence 65.0, got %v", result.Confidence)
	}
}

func TestPredictFromWindowDeterministic(t *testing.T) {
	closes := []float64{105.5, 104.2, 106.8, 103.1, 107.9, 102.4, 108.6, 101.7, 109.3, 100.9}
	volumes := []int64{1200000, 900000, 1500000, 800000, 1100000, 950000, 1300000, 870000, 1400000, 1000000}
	window := makeWindow(closes, volumes)

	first, ok1 := PredictFromWindow(window)
	second, ok2 := PredictFromWindow(window)
	if ok1 != ok2 || !reflect.DeepEqual(first, second) {
		t.Error("same window should always yield the same prediction")
	}
}

func TestPredictFromWindowConfidenceBounds(t *testing.T) {
	cases := [][]float64{
		{100, 101, 102, 103, 104},
		{104, 103, 102, 101, 100},
		{100, 100, 100, 100, 100},
		{50, 200, 50, 200, 50, 200, 50, 200, 50, 200},
	}
	for i, closes := range cases {
		result, ok := PredictFromWindow(makeWindow(closes, flatVolumes(len(closes), 1000000)))
		if !ok {
			t.Fatalf("case %d: expected available prediction", i)
		}
		if result.Confidence < 40.0 || result.Confidence > 85.0 {
			t.Errorf("case %d: confidence %v outside [40, 85]", i, result.Confidence)
		}
	}
}

func TestPredictFromWindowTrendLabelConsistency(t *testing.T) {
	cases := [][]float64{
		{100, 101, 102, 103, 104, 105, 106, 107, 108, 109},
		{110, 109, 108, 107, 106, 105, 104, 103, 102, 101},
		{110, 100, 110, 100, 110, 120, 120, 120, 120, 120},
		{100, 100, 100, 100, 100},
	}
	for i, closes := range cases {
		result, ok := PredictFromWindow(makeWindow(closes, flatVolumes(len(closes), 1000000)))
		if !ok {
			t.Fatalf("case %d: expected available prediction", i)
		}
		score := result.Factors.TrendScore
		switch {
		case score > 0 && result.Trend != "bullish":
			t.Errorf("case %d: score %d but trend %s", i, score, result.Trend)
		case score < 0 && result.Trend != "bearish":
			t.Errorf("case %d: score %d but trend %s", i, score, result.Trend)
		case score == 0 && result.Trend != "neutral":
			t.Errorf("case %d: score %d but trend %s", i, score, result.Trend)
		}
	}
}

func TestPredictFromWindowDegenerateInput(t *testing.T) {
	// 窗口中出现零价时不崩溃，退化为默认预测
	closes := []float64{100, 0, 100, 100, 100, 100}
	result, ok := PredictFromWindow(makeWindow(closes, flatVolumes(6, 1000000)))
	if ok {
		t.Fatal("expected unavailable prediction for degenerate input")
	}
	if !reflect.DeepEqual(result, model.DefaultPrediction()) {
		t.Errorf("expected exact default prediction, got %+v", result)
	}
}
