package stockdata

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"stock-dashboard-backend/internal/model"
)

// PriceConfig 股票价格模拟参数
type PriceConfig struct {
	Base       float64 `json:"base"`       // 基准价
	Volatility float64 `json:"volatility"` // 日内波动率 (0,1]
	Trend      float64 `json:"trend"`      // 趋势偏置
}

// VolumeConfig 股票成交量模拟参数
type VolumeConfig struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

var (
	catalogMu     sync.RWMutex
	priceConfigs  = defaultPriceConfigs()
	volumeConfigs = defaultVolumeConfigs()
	companyList   = defaultCompanies()
)

// defaultPriceConfigs 内置价格参数（NSE主要成分股）
func defaultPriceConfigs() map[string]PriceConfig {
	return map[string]PriceConfig{
		"RELIANCE":   {Base: 2450.0, Volatility: 0.020, Trend: 0.0010},
		"TCS":        {Base: 3850.0, Volatility: 0.015, Trend: 0.0008},
		"HDFCBANK":   {Base: 1650.0, Volatility: 0.018, Trend: 0.0005},
		"INFY":       {Base: 1480.0, Volatility: 0.022, Trend: -0.0005},
		"ICICIBANK":  {Base: 1150.0, Volatility: 0.019, Trend: 0.0012},
		"HINDUNILVR": {Base: 2380.0, Volatility: 0.012, Trend: 0.0002},
		"ITC":        {Base: 462.0, Volatility: 0.014, Trend: 0.0006},
		"SBIN":       {Base: 820.0, Volatility: 0.025, Trend: 0.0009},
		"BHARTIARTL": {Base: 1540.0, Volatility: 0.017, Trend: 0.0015},
		"KOTAKBANK":  {Base: 1780.0, Volatility: 0.018, Trend: -0.0003},
		"LT":         {Base: 3620.0, Volatility: 0.016, Trend: 0.0011},
		"ASIANPAINT": {Base: 2890.0, Volatility: 0.013, Trend: -0.0008},
		"AXISBANK":   {Base: 1120.0, Volatility: 0.021, Trend: 0.0007},
		"MARUTI":     {Base: 12400.0, Volatility: 0.015, Trend: 0.0004},
		"WIPRO":      {Base: 545.0, Volatility: 0.023, Trend: -0.0010},
	}
}

// defaultVolumeConfigs 内置成交量参数
func defaultVolumeConfigs() map[string]VolumeConfig {
	return map[string]VolumeConfig{
		"RELIANCE":   {Min: 4000000, Max: 12000000},
		"TCS":        {Min: 1500000, Max: 5000000},
		"HDFCBANK":   {Min: 6000000, Max: 18000000},
		"INFY":       {Min: 4500000, Max: 13000000},
		"ICICIBANK":  {Min: 8000000, Max: 22000000},
		"HINDUNILVR": {Min: 900000, Max: 3200000},
		"ITC":        {Min: 7000000, Max: 25000000},
		"SBIN":       {Min: 9000000, Max: 28000000},
		"BHARTIARTL": {Min: 3500000, Max: 11000000},
		"KOTAKBANK":  {Min: 2000000, Max: 7500000},
		"LT":         {Min: 1200000, Max: 4200000},
		"ASIANPAINT": {Min: 800000, Max: 2800000},
		"AXISBANK":   {Min: 5000000, Max: 16000000},
		"MARUTI":     {Min: 300000, Max: 1200000},
		"WIPRO":      {Min: 3800000, Max: 12500000},
	}
}

// defaultCompanies 内置公司列表
func defaultCompanies() []model.Company {
	return []model.Company{
		{Symbol: "RELIANCE", Name: "Reliance Industries Ltd", Sector: "Energy", Price: 2456.75, Change: 12.40, PChange: 0.51, Volume: 6234500, MarketValue: 16620000.0},
		{Symbol: "TCS", Name: "Tata Consultancy Services Ltd", Sector: "Information Technology", Price: 3842.10, Change: -18.25, PChange: -0.47, Volume: 2118400, MarketValue: 14050000.0},
		{Symbol: "HDFCBANK", Name: "HDFC Bank Ltd", Sector: "Financial Services", Price: 1653.30, Change: 6.85, PChange: 0.42, Volume: 9456200, MarketValue: 12580000.0},
		{Symbol: "INFY", Name: "Infosys Ltd", Sector: "Information Technology", Price: 1476.55, Change: -9.10, PChange: -0.61, Volume: 6842100, MarketValue: 6130000.0},
		{Symbol: "ICICIBANK", Name: "ICICI Bank Ltd", Sector: "Financial Services", Price: 1154.20, Change: 8.95, PChange: 0.78, Volume: 12458900, MarketValue: 8110000.0},
		{Symbol: "HINDUNILVR", Name: "Hindustan Unilever Ltd", Sector: "Consumer Goods", Price: 2377.45, Change: 3.15, PChange: 0.13, Volume: 1562300, MarketValue: 5590000.0},
		{Symbol: "ITC", Name: "ITC Ltd", Sector: "Consumer Goods", Price: 461.80, Change: 2.30, PChange: 0.50, Volume: 14235600, MarketValue: 5760000.0},
		{Symbol: "SBIN", Name: "State Bank of India", Sector: "Financial Services", Price: 822.65, Change: 10.20, PChange: 1.26, Volume: 15624800, MarketValue: 7340000.0},
		{Symbol: "BHARTIARTL", Name: "Bharti Airtel Ltd", Sector: "Telecommunication", Price: 1542.90, Change: 14.75, PChange: 0.97, Volume: 5126700, MarketValue: 8720000.0},
		{Symbol: "KOTAKBANK", Name: "Kotak Mahindra Bank Ltd", Sector: "Financial Services", Price: 1778.35, Change: -5.60, PChange: -0.31, Volume: 3254100, MarketValue: 3540000.0},
		{Symbol: "LT", Name: "Larsen & Toubro Ltd", Sector: "Construction", Price: 3624.50, Change: 22.10, PChange: 0.61, Volume: 1845600, MarketValue: 4980000.0},
		{Symbol: "ASIANPAINT", Name: "Asian Paints Ltd", Sector: "Consumer Goods", Price: 2886.20, Change: -12.45, PChange: -0.43, Volume: 1235400, MarketValue: 2770000.0},
		{Symbol: "AXISBANK", Name: "Axis Bank Ltd", Sector: "Financial Services", Price: 1123.85, Change: 7.40, PChange: 0.66, Volume: 8546300, MarketValue: 3470000.0},
		{Symbol: "MARUTI", Name: "Maruti Suzuki India Ltd", Sector: "Automobile", Price: 12412.30, Change: 56.80, PChange: 0.46, Volume: 524600, MarketValue: 3900000.0},
		{Symbol: "WIPRO", Name: "Wipro Ltd", Sector: "Information Technology", Price: 543.60, Change: -4.25, PChange: -0.78, Volume: 6158200, MarketValue: 2840000.0},
	}
}

// LookupPriceConfig 查询股票价格参数，不存在时返回 ok=false
func LookupPriceConfig(symbol string) (PriceConfig, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	cfg, ok := priceConfigs[symbol]
	return cfg, ok
}

// LookupVolumeConfig 查询股票成交量参数，不存在时返回 ok=false
func LookupVolumeConfig(symbol string) (VolumeConfig, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	cfg, ok := volumeConfigs[symbol]
	return cfg, ok
}

// Companies 获取公司列表，limit<=0 时返回全部
func Companies(limit int) []model.Company {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	list := companyList
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	out := make([]model.Company, len(list))
	copy(out, list)
	return out
}

// Symbols 获取全部已配置股票代码
func Symbols() []string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	symbols := make([]string, 0, len(companyList))
	for _, c := range companyList {
		symbols = append(symbols, c.Symbol)
	}
	return symbols
}

// LoadCompaniesFile 从JSON文件加载公司列表，覆盖内置配置
// 文件格式：{"companies": [{"symbol": "...", "name": "...", ...}]}
func LoadCompaniesFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // 文件不存在不算错误
		}
		return fmt.Errorf("读取公司列表文件失败: %v", err)
	}

	var doc struct {
		Companies []model.Company `json:"companies"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("解析公司列表文件失败: %v", err)
	}
	if len(doc.Companies) == 0 {
		return nil
	}

	catalogMu.Lock()
	companyList = doc.Companies
	catalogMu.Unlock()

	log.Printf("[INFO][catalog] 加载公司列表: %d 家公司", len(doc.Companies))
	return nil
}

// LoadTemplatesFile 从JSON文件加载模拟参数模板，覆盖内置配置
// 文件格式：{"price_ranges": {"RELIANCE": {"base": ..., "volatility": ..., "trend": ...}},
//           "volume_ranges": {"RELIANCE": {"min": ..., "max": ...}}}
func LoadTemplatesFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取模拟参数文件失败: %v", err)
	}

	var doc struct {
		PriceRanges  map[string]PriceConfig  `json:"price_ranges"`
		VolumeRanges map[string]VolumeConfig `json:"volume_ranges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("解析模拟参数文件失败: %v", err)
	}

	catalogMu.Lock()
	if len(doc.PriceRanges) > 0 {
		priceConfigs = doc.PriceRanges
	}
	if len(doc.VolumeRanges) > 0 {
		volumeConfigs = doc.VolumeRanges
	}
	catalogMu.Unlock()

	log.Printf("[INFO][catalog] 加载模拟参数: 价格 %d 项, 成交量 %d 项", len(doc.PriceRanges), len(doc.VolumeRanges))
	return nil
}
