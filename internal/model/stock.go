package model

// Company 公司基本信息
type Company struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Sector      string  `json:"sector"`
	Price       float64 `json:"price"`
	Change      float64 `json:"change"`
	PChange     float64 `json:"pchange"`
	Volume      int64   `json:"volume"`
	MarketValue float64 `json:"market_value"`
}

// StockBar 单日行情数据（OHLCV）
type StockBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// MarketStatusResponse 市场状态响应
type MarketStatusResponse struct {
	MarketState []MarketState `json:"marketState"`
	Timestamp   string        `json:"timestamp"`
}

// MarketState 单条市场状态
type MarketState struct {
	MarketStatus string `json:"marketStatus"` // OPEN, CLOSED
}
