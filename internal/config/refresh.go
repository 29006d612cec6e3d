package config

// RefreshConfig 夜间行情刷新配置
type RefreshConfig struct {
	Enabled          bool   `json:"enabled"`
	RunAt            string `json:"run_at"`             // HH:MM，默认每天 18:30
	Days             int    `json:"days"`               // 每只股票重新生成的天数
	RetryCount       int    `json:"retry_count"`        // 失败重试次数
	RetryIntervalMin int    `json:"retry_interval_min"` // 重试间隔（分钟）
}

// GetRefreshConfig 获取夜间行情刷新配置
func GetRefreshConfig() *RefreshConfig {
	cfg := &RefreshConfig{}
	cfg.Enabled = GetEnvBool("SERIES_REFRESH_ENABLED", true)
	cfg.RunAt = GetEnvString("SERIES_REFRESH_TIME", "18:30")
	cfg.Days = GetEnvInt("SERIES_REFRESH_DAYS", 30)
	cfg.RetryCount = GetEnvInt("SERIES_REFRESH_RETRY_COUNT", 3)
	cfg.RetryIntervalMin = GetEnvInt("SERIES_REFRESH_RETRY_INTERVAL", 10)
	return cfg
}
