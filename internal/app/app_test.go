package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/andy/fatoura/internal/config"
	"github.com/andy/fatoura/internal/domain"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = driver
	cfg.Storage.Path = filepath.Join(dir, "data")
	cfg.Invoice.OutputDir = filepath.Join(dir, "invoices")
	cfg.Log.File = filepath.Join(dir, "logs", "fatoura.log")
	return cfg
}

func TestNewWithConfig_Memory(t *testing.T) {
	a, err := NewWithConfig(context.Background(), testConfig(t, config.DriverMemory))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	defer a.Close()

	cur := a.Workspace.Current()
	if cur.ID == "" || len(cur.Items) != 1 {
		t.Fatalf("expected a fresh draft, got %+v", cur)
	}
}

func TestNewWithConfig_LevelDBPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverLevelDB)

	a, err := NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	c, err := a.Workspace.AddClient(ctx)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if err := a.Workspace.UpdateClient(ctx, c.ID, domain.SetClientName{Value: "Sarl Atlas"}); err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if _, err := a.Workspace.SaveToArchive(ctx); err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	draftID := a.Workspace.Current().ID
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	if got := b.Workspace.Clients(); len(got) != 1 || got[0].Name != "Sarl Atlas" {
		t.Fatalf("clients not persisted: %+v", got)
	}
	if got := b.Workspace.Archive(); len(got) != 1 {
		t.Fatalf("archive not persisted: %d entries", len(got))
	}
	if got := b.Workspace.Current().ID; got != draftID {
		t.Fatalf("draft id = %s, want %s", got, draftID)
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "postgres"
	if _, err := OpenStore(cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
