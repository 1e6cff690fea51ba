package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/fatoura/internal/domain"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverSQLite  = "sqlite"
	DriverLevelDB = "leveldb"
	DriverMemory  = "memory"
)

type Config struct {
	// Storage backend settings
	Storage StorageConfig `yaml:"storage"`

	// Defaults for new invoices
	Invoice InvoiceConfig `yaml:"invoice"`

	// Log settings
	Log LogConfig `yaml:"log"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, leveldb or memory
	Path   string `yaml:"path"`   // SQLite file or LevelDB directory
}

type InvoiceConfig struct {
	DefaultTVARate       float64 `yaml:"default_tva_rate"`       // Percentage (19 = 19%)
	DueDays              int     `yaml:"due_days"`               // Days from issue date to due date
	DefaultPaymentMethod string  `yaml:"default_payment_method"` // CASH, TRANSFER or CHECK
	DefaultNotes         string  `yaml:"default_notes"`          // Printed under the totals
	OutputDir            string  `yaml:"output_dir"`             // Directory for exported PDFs
}

type LogConfig struct {
	Level string `yaml:"level"` // trace, debug, info, warn, error, critical, off
	File  string `yaml:"file"`
}

// configDir returns ~/.config/fatoura, or ./.config/fatoura without a home directory
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "fatoura")
}

// DefaultConfigPath returns ~/.config/fatoura/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(dir, "fatoura.db"),
		},
		Invoice: InvoiceConfig{
			DefaultTVARate:       domain.DefaultTVARate,
			DueDays:              domain.DefaultDueDays,
			DefaultPaymentMethod: string(domain.DefaultPaymentMethod),
			DefaultNotes:         domain.DefaultNotes,
			OutputDir:            filepath.Join(dir, "invoices"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "logs", "fatoura.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if the file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverLevelDB:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", c.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if _, err := domain.ParsePaymentMethod(c.Invoice.DefaultPaymentMethod); err != nil {
		return fmt.Errorf("invoice.default_payment_method: %w", err)
	}
	if c.Invoice.DueDays < 0 {
		return fmt.Errorf("invoice.due_days cannot be negative")
	}
	return nil
}

// Factory returns an invoice factory configured with the invoice defaults
func (c *Config) Factory() *domain.Factory {
	f := domain.DefaultFactory()
	c.ApplyInvoiceDefaults(f)
	return f
}

// ApplyInvoiceDefaults copies the invoice defaults onto f, leaving its clock
// and id sources alone
func (c *Config) ApplyInvoiceDefaults(f *domain.Factory) {
	f.TVARate = c.Invoice.DefaultTVARate
	f.DueDays = c.Invoice.DueDays
	if pm, err := domain.ParsePaymentMethod(c.Invoice.DefaultPaymentMethod); err == nil {
		f.PaymentMethod = pm
	}
	f.Notes = c.Invoice.DefaultNotes
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (storage, exports, logs)
func (c *Config) EnsureDirectories() error {
	if c.Storage.Driver != DriverMemory {
		if err := os.MkdirAll(filepath.Dir(c.Storage.Path), 0700); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0700); err != nil {
			return err
		}
	}

	return nil
}
