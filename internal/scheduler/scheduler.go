package scheduler

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"stock-dashboard-backend/internal/config"
	"stock-dashboard-backend/internal/stockdata"
	"stock-dashboard-backend/internal/store"
)

// StartSeriesRefreshScheduler 启动夜间行情刷新定时任务
// 每天在配置时间为全部已配置股票重新生成行情并全量替换存储
func StartSeriesRefreshScheduler() {
	cfg := config.GetRefreshConfig()
	if !cfg.Enabled {
		log.Println("夜间行情刷新任务已禁用")
		return
	}

	hour, minute, err := parseHHMM(cfg.RunAt)
	if err != nil {
		log.Printf("SERIES_REFRESH_TIME 配置无效（%s），使用默认 18:30", cfg.RunAt)
		hour, minute = 18, 30
	}

	log.Printf("[INFO][refresh] 夜间行情刷新任务已启动，刷新时间: %02d:%02d，天数: %d", hour, minute, cfg.Days)

	go func() {
		for {
			now := time.Now()
			nextRun := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			if now.After(nextRun) {
				nextRun = nextRun.Add(24 * time.Hour)
			}

			duration := nextRun.Sub(now)
			log.Printf("[INFO][refresh] 下次行情刷新时间: %s（%v后）",
				nextRun.Format("2006-01-02 15:04:05"), duration.Round(time.Minute))
			time.Sleep(duration)

			refreshWithRetry(cfg)
		}
	}()
}

// refreshWithRetry 带重试的全量刷新
func refreshWithRetry(cfg *config.RefreshConfig) {
	for i := 0; i <= cfg.RetryCount; i++ {
		if i > 0 {
			log.Printf("[INFO][refresh] 第 %d 次重试行情刷新...", i)
		} else {
			log.Println("[INFO][refresh] 开始刷新全部行情...")
		}

		if err := refreshAllSeries(cfg.Days); err != nil {
			log.Printf("[ERROR][refresh] 行情刷新失败: %v", err)
			if i < cfg.RetryCount {
				log.Printf("[INFO][refresh] 将在 %d 分钟后重试", cfg.RetryIntervalMin)
				time.Sleep(time.Duration(cfg.RetryIntervalMin) * time.Minute)
			}
		} else {
			log.Println("[INFO][refresh] 行情刷新完成")
			return
		}
	}
	log.Printf("[ERROR][refresh] 行情刷新失败，已重试 %d 次", cfg.RetryCount)
}

// refreshAllSeries 为全部已配置股票重新生成并替换行情序列
func refreshAllSeries(days int) error {
	symbols := stockdata.Symbols()
	if len(symbols) == 0 {
		log.Println("[INFO][refresh] 没有需要刷新的股票")
		return nil
	}

	start := time.Now()
	failCount := 0
	for _, symbol := range symbols {
		bars := stockdata.GenerateSeries(symbol, days)
		if err := store.ReplaceSeries(symbol, bars); err != nil {
			log.Printf("[ERROR][refresh] 刷新 %s 失败: %v", symbol, err)
			failCount++
		}
	}

	log.Printf("[INFO][refresh] 刷新完成，股票: %d，失败: %d，耗时: %v",
		len(symbols), failCount, time.Since(start).Truncate(time.Millisecond))

	// 失败过半视为本轮失败，触发重试
	if failCount > len(symbols)/2 {
		return fmt.Errorf("刷新失败数量过多: %d/%d", failCount, len(symbols))
	}
	return nil
}

func parseHHMM(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("时间格式无效")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("小时或分钟越界")
	}
	return h, m, nil
}
