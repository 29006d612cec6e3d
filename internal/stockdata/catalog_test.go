package stockdata

import (
	"os"
	"path/filepath"
	"testing"
)

func snapshotCatalog(t *testing.T) {
	t.Helper()
	oldPrices := priceConfigs
	oldVolumes := volumeConfigs
	oldCompanies := companyList
	t.Cleanup(func() {
		catalogMu.Lock()
		priceConfigs = oldPrices
		volumeConfigs = oldVolumes
		companyList = oldCompanies
		catalogMu.Unlock()
	})
}

func TestLookupPriceConfig(t *testing.T) {
	cfg, ok := LookupPriceConfig("RELIANCE")
	if !ok {
		t.Fatal("expected config for RELIANCE")
	}
	if cfg.Base <= 0 || cfg.Volatility <= 0 || cfg.Volatility > 1 {
		t.Errorf("implausible config: %+v", cfg)
	}

	if _, ok := LookupPriceConfig("NO_SUCH_SYMBOL"); ok {
		t.Error("expected no config for unknown symbol")
	}
}

func TestLookupVolumeConfig(t *testing.T) {
	cfg, ok := LookupVolumeConfig("SBIN")
	if !ok {
		t.Fatal("expected volume config for SBIN")
	}
	if cfg.Min < 0 || cfg.Max < cfg.Min {
		t.Errorf("implausible volume config: %+v", cfg)
	}

	if _, ok := LookupVolumeConfig("NO_SUCH_SYMBOL"); ok {
		t.Error("expected no volume config for unknown symbol")
	}
}

func TestCompaniesLimit(t *testing.T) {
	all := Companies(0)
	if len(all) == 0 {
		t.Fatal("expected built-in companies")
	}

	limited := Companies(5)
	if len(limited) != 5 {
		t.Errorf("expected 5 companies, got %d", len(limited))
	}

	over := Companies(len(all) + 10)
	if len(over) != len(all) {
		t.Errorf("expected %d companies, got %d", len(all), len(over))
	}
}

func TestLoadTemplatesFile(t *testing.T) {
	snapshotCatalog(t)

	path := filepath.Join(t.TempDir(), "stock_templates.json")
	content := `{
		"price_ranges": {"TESTCO": {"base": 100.0, "volatility": 0.05, "trend": 0.01}},
		"volume_ranges": {"TESTCO": {"min": 1000, "max": 2000}}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadTemplatesFile(path); err != nil {
		t.Fatalf("LoadTemplatesFile failed: %v", err)
	}

	cfg, ok := LookupPriceConfig("TESTCO")
	if !ok {
		t.Fatal("expected config for TESTCO after load")
	}
	if cfg.Base != 100.0 || cfg.Volatility != 0.05 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	volCfg, ok := LookupVolumeConfig("TESTCO")
	if !ok || volCfg.Min != 1000 || volCfg.Max != 2000 {
		t.Errorf("unexpected volume config: %+v (ok=%v)", volCfg, ok)
	}
}

func TestLoadCompaniesFileMissing(t *testing.T) {
	// 文件不存在不算错误，保留内置配置
	if err := LoadCompaniesFile(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
	if len(Companies(0)) == 0 {
		t.Error("built-in companies should survive a missing override file")
	}
}
