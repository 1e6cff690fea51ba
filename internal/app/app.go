package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/andy/fatoura/internal/config"
	"github.com/andy/fatoura/internal/crypto"
	"github.com/andy/fatoura/internal/db"
	"github.com/andy/fatoura/internal/logging"
	"github.com/andy/fatoura/internal/repository"
	"github.com/andy/fatoura/internal/service"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config

	// ConfigPath is where SaveConfig writes; empty means the default path
	ConfigPath string

	// Store backs every repository; closed by Close
	Store repository.Store

	// Workspace is the session all commands and screens operate on
	Workspace *service.Workspace
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading .env and config
// 2. Starting the log file
// 3. Opening the configured store (asking for the database key if needed)
// 4. Loading the workspace
func New(ctx context.Context) (*App, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.ConfigPath = config.DefaultConfigPath()
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	if cfg.Log.File != "" {
		if err := logging.Init(cfg.Log.File, cfg.Log.Level); err != nil {
			return nil, fmt.Errorf("failed to start logging: %w", err)
		}
	}

	store, err := OpenStore(cfg)
	if err != nil {
		logging.Close()
		return nil, err
	}

	ws := service.NewWorkspace(service.NewRepositories(store), cfg.Factory())
	if err := ws.Open(ctx); err != nil {
		store.Close()
		logging.Close()
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	logging.Log.Infof("Started with %s storage", cfg.Storage.Driver)
	return &App{
		Config:    cfg,
		Store:     store,
		Workspace: ws,
	}, nil
}

// OpenStore opens the storage backend selected by cfg.Storage.Driver
func OpenStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil
	case config.DriverLevelDB:
		return repository.OpenLevelStore(cfg.Storage.Path)
	case config.DriverSQLite:
		return openSQLite(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openSQLite(path string) (repository.Store, error) {
	keyring := crypto.NewKeyring()

	// Try to get existing encryption key
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			// The password still opens the database for this run
			logging.Log.Warnf("Encryption key not stored: %v", err)
			fmt.Printf("Note: %v\n\n", err)
		}
	}

	database, err := db.Open(path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repository.NewSQLiteStore(database), nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	logging.Close()
	return err
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your invoices will be encrypted with a password.")
	fmt.Println("On macOS it is stored in the Keychain; elsewhere set FATOURA_DB_KEY.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	path := a.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return a.Config.Save(path)
}

// UpdateInvoiceDefaults validates and saves new invoice defaults. Invoices
// created afterwards use them; the live invoice keeps its values.
func (a *App) UpdateInvoiceDefaults(inv config.InvoiceConfig) error {
	next := *a.Config
	next.Invoice = inv
	if err := next.Validate(); err != nil {
		return err
	}

	prev := a.Config.Invoice
	a.Config.Invoice = inv
	if err := a.SaveConfig(); err != nil {
		a.Config.Invoice = prev
		logging.Log.Errorf("Failed to save config: %v", err)
		return fmt.Errorf("failed to save config: %w", err)
	}

	a.Workspace.ConfigureFactory(a.Config.ApplyInvoiceDefaults)
	logging.Log.Infof("Invoice defaults updated")
	return nil
}
