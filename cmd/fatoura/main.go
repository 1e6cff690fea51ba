package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/fatoura/internal/app"
	"github.com/andy/fatoura/internal/cli"
	"github.com/andy/fatoura/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	// If the user asked for help, avoid initializing the full app (which may prompt)
	skipInit := false
	ephemeral := false
	for _, a := range os.Args[1:] {
		switch a {
		case "-h", "--help", "help", "completion":
			skipInit = true
		case "--ephemeral":
			ephemeral = true
		}
	}

	if !skipInit {
		a, err := newApp(context.Background(), ephemeral)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the app; ephemeral runs keep everything in memory
func newApp(ctx context.Context, ephemeral bool) (*app.App, error) {
	if !ephemeral {
		return app.New(ctx)
	}

	_ = godotenv.Load()
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	driver := cfg.Storage.Driver
	cfg.Storage.Driver = config.DriverMemory
	a, err := app.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Config mirrors the file again, so a saved config keeps its driver
	cfg.Storage.Driver = driver
	a.ConfigPath = config.DefaultConfigPath()
	return a, nil
}
