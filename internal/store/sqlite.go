package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stock-dashboard-backend/internal/model"

	_ "modernc.org/sqlite"
)

var (
	db      *sql.DB
	writeMu sync.Mutex // 全量替换写入需要独占，避免并发交错
)

// InitDB 初始化SQLite存储
func InitDB(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建数据目录失败: %w", err)
		}
	}

	d, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(path)))
	if err != nil {
		return err
	}

	if _, err := d.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = d.Close()
		return err
	}
	if _, err := d.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		_ = d.Close()
		return err
	}
	if err := ensureSchema(d); err != nil {
		_ = d.Close()
		return err
	}

	db = d
	log.Printf("SQLite初始化成功: %s", path)
	return nil
}

func ensureSchema(d *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			symbol TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sector TEXT NOT NULL,
			price REAL NOT NULL,
			change REAL NOT NULL,
			pchange REAL NOT NULL,
			volume INTEGER NOT NULL,
			market_value REAL NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stock_data (
			symbol TEXT NOT NULL,
			date TEXT NOT NULL,
			open REAL NOT NULL,
			high REAL NOT NULL,
			low REAL NOT NULL,
			close REAL NOT NULL,
			volume INTEGER NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_data_symbol_date ON stock_data(symbol, date DESC)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close 关闭数据库连接
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// GetCompanies 获取已存储的公司列表
func GetCompanies() ([]model.Company, error) {
	if db == nil {
		return nil, fmt.Errorf("数据库未初始化")
	}

	rows, err := db.Query(`SELECT symbol, name, sector, price, change, pchange, volume, market_value
		FROM companies ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.Symbol, &c.Name, &c.Sector, &c.Price, &c.Change, &c.PChange, &c.Volume, &c.MarketValue); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// SaveCompanies 全量替换公司列表（先删后插）
func SaveCompanies(companies []model.Company) error {
	if db == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if len(companies) == 0 {
		return nil
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM companies"); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO companies(symbol, name, sector, price, change, pchange, volume, market_value, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, c := range companies {
		if _, err := stmt.Exec(c.Symbol, c.Name, c.Sector, c.Price, c.Change, c.PChange, c.Volume, c.MarketValue, now); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetSeries 获取指定股票最近days天的行情，按日期升序返回；无数据时返回空切片
func GetSeries(symbol string, days int) ([]model.StockBar, error) {
	if db == nil {
		return nil, fmt.Errorf("数据库未初始化")
	}

	rows, err := db.Query(`SELECT date, open, high, low, close, volume
		FROM stock_data WHERE symbol = ? ORDER BY date DESC LIMIT ?`, symbol, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []model.StockBar
	for rows.Next() {
		var b model.StockBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 查询按日期倒序取最近N条，这里翻转为升序
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// ReplaceSeries 全量替换指定股票的行情序列（先删后插，单事务）
func ReplaceSeries(symbol string, bars []model.StockBar) error {
	if db == nil {
		return fmt.Errorf("数据库未初始化")
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM stock_data WHERE symbol = ?", symbol); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO stock_data(symbol, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// CountSeries 统计指定股票已存储的行情条数
func CountSeries(symbol string) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("数据库未初始化")
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM stock_data WHERE symbol = ?", symbol).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
