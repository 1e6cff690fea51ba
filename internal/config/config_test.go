package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/fatoura/internal/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Invoice.DefaultTVARate != 19 || cfg.Invoice.DueDays != 30 {
		t.Errorf("unexpected invoice defaults %+v", cfg.Invoice)
	}
	if cfg.Invoice.DefaultPaymentMethod != "TRANSFER" {
		t.Errorf("payment method = %q", cfg.Invoice.DefaultPaymentMethod)
	}
}

func TestLoad_OverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
storage:
  driver: leveldb
  path: /tmp/fatoura-ldb
invoice:
  default_tva_rate: 9
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverLevelDB || cfg.Storage.Path != "/tmp/fatoura-ldb" {
		t.Errorf("storage not loaded: %+v", cfg.Storage)
	}
	if cfg.Invoice.DefaultTVARate != 9 {
		t.Errorf("tva = %v, want 9", cfg.Invoice.DefaultTVARate)
	}
	if cfg.Invoice.DueDays != 30 {
		t.Errorf("due days default lost: %d", cfg.Invoice.DueDays)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: postgres\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Driver = DriverMemory
	cfg.Invoice.DefaultPaymentMethod = "CASH"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Storage.Driver != DriverMemory || back.Invoice.DefaultPaymentMethod != "CASH" {
		t.Fatalf("round trip lost settings: %+v", back)
	}
}

func TestFactoryUsesInvoiceDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Invoice.DefaultTVARate = 9
	cfg.Invoice.DueDays = 15
	cfg.Invoice.DefaultPaymentMethod = "check"
	cfg.Invoice.DefaultNotes = "Merci"

	inv := cfg.Factory().NewInvoice(domain.DefaultCompany())
	if inv.TVARate != 9 || inv.PaymentMethod != domain.PaymentCheck || inv.Notes != "Merci" {
		t.Fatalf("factory ignored config: %+v", inv)
	}
	if got := inv.Date.DaysUntil(inv.DueDate); got != 15 {
		t.Fatalf("due in %d days, want 15", got)
	}
}

func TestDefaultFactoryMatchesDomainDefaults(t *testing.T) {
	inv := DefaultConfig().Factory().NewInvoice(domain.CompanyInfo{})
	if inv.TVARate != 19 || inv.PaymentMethod != domain.PaymentTransfer {
		t.Fatalf("unexpected defaults %+v", inv)
	}
	if got := inv.Date.DaysUntil(inv.DueDate); got != 30 {
		t.Fatalf("due in %d days, want 30", got)
	}
}
