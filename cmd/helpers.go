package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dehaleesankr/folio/internal/auth"
	"github.com/dehaleesankr/folio/internal/config"
	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/db"
	"github.com/dehaleesankr/folio/internal/exchange"
	"github.com/dehaleesankr/folio/internal/llm"
	"github.com/dehaleesankr/folio/internal/logging"
)

// app bundles what every modal-facing command needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider llm.Provider
	database *db.DB
	store    *exchange.Store
}

// setup loads config and builds the logger, provider and optional exchange
// store. Callers must Close the result.
func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	provider, err := createLLMProviderFromConfig(ctx, cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, provider: provider}
	if cfg.Database.Enabled {
		a.database, err = db.Open(cfg.Database.Path)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
		a.store = exchange.NewStore(a.database)
	}

	logger.Debug("configured",
		zap.String("provider", provider.Name()),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("history", a.store != nil),
	)
	return a, nil
}

// recorder returns the exchange store as a Recorder, or a nil interface when
// history is disabled.
func (a *app) recorder() conversation.Recorder {
	if a.store == nil {
		return nil
	}
	return a.store
}

func (a *app) profile() conversation.Profile {
	return profileFromConfig(a.cfg)
}

func (a *app) Close() {
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.logger.Warn("closing database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// createLLMProviderFromConfig creates a rate-limited LLM provider from the
// llm block. Keys come from the environment first, then `folio auth`.
func createLLMProviderFromConfig(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(ctx, llm.Options{
		Type:     string(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   auth.GetAPIKey(string(cfg.LLM.Provider)),
		Project:  cfg.LLM.Project,
		Location: cfg.LLM.Location,
	})
	if err != nil {
		return nil, err
	}
	return llm.NewRateLimitedProvider(provider, cfg.LLM.RateLimitRPM), nil
}

func profileFromConfig(cfg *config.Config) conversation.Profile {
	return conversation.Profile{
		Name:     cfg.Owner.Name,
		Skills:   cfg.Owner.Skills,
		Projects: cfg.Owner.Projects,
		Contact:  cfg.Owner.Contact,
	}
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}
