package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"stock-dashboard-backend/internal/cache"
	"stock-dashboard-backend/internal/handler"
	"stock-dashboard-backend/internal/scheduler"
	"stock-dashboard-backend/internal/stockdata"
	"stock-dashboard-backend/internal/store"
)

func init() {
	// 手动加载 .env 文件
	file, err := os.Open(".env")
	if err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			os.Setenv(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
}

func main() {
	// 加载自定义配置目录（可选）
	if err := stockdata.LoadCompaniesFile(os.Getenv("COMPANIES_FILE")); err != nil {
		log.Printf("加载公司列表配置失败: %v", err)
	}
	if err := stockdata.LoadTemplatesFile(os.Getenv("STOCK_TEMPLATES_FILE")); err != nil {
		log.Printf("加载模拟参数配置失败: %v", err)
	}

	// 初始化SQLite存储
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/stocks.db"
	}
	if err := store.InitDB(dbPath); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer store.Close()

	// Redis可选，连接失败时降级为无缓存
	if err := cache.InitRedis(); err != nil {
		log.Printf("Redis不可用，结果缓存已禁用: %v", err)
	}
	defer cache.Close()

	// 启动夜间行情刷新任务
	scheduler.StartSeriesRefreshScheduler()

	r := gin.Default()

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// 注册路由
	api := r.Group("/api")
	{
		// 公司与行情
		api.GET("/companies", handler.GetCompanies)
		api.GET("/stock/:symbol", handler.GetStockData)
		api.GET("/market/status", handler.GetMarketStatus)

		// 预测
		api.GET("/predict/:symbol", handler.Predict)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("服务启动在端口 %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
