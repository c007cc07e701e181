// Command schema creates the record namespace and table on the configured store and exits.
// It is safe to run repeatedly, e.g. as an init container before the server starts.
package main

import (
	"context"
	"os"

	"github.com/gogotex/entertext/internal/config"
	"github.com/gogotex/entertext/internal/record/repository"
	"github.com/gogotex/entertext/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to %s: %v", cfg.Store.Backend, err)
	}
	defer func() { _ = repo.Close() }()

	logger.Infof("checking schema %s.%s on %s", cfg.Record.Namespace, cfg.Record.Table, cfg.Store.Backend)
	if err := repo.Init(ctx); err != nil {
		logger.Fatalf("schema initialization failed: %v", err)
	}
	logger.Infof("table %s.%s verified/created", cfg.Record.Namespace, cfg.Record.Table)
}
