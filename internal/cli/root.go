// Package cli implements the mnemo commands.
package cli

import (
	"fmt"

	"github.com/julianstephens/mnemo/internal/config"
	"github.com/julianstephens/mnemo/internal/keyring"
	"github.com/julianstephens/mnemo/internal/llm"
	"github.com/julianstephens/mnemo/internal/logger"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/storage"
)

type Context struct {
	Config *config.Config
	Store  storage.Provider
}

// NewStore builds the storage provider the configuration selects.
func NewStore(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSONL:
		return storage.NewJSONLStore(cfg.Storage.EventsFile, cfg.Storage.DiaryFile), nil
	case config.BackendSQLite:
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath), nil
	case config.BackendPostgres:
		return storage.NewPostgresStore(cfg.Storage.PostgresDSN), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func scanPolicy(cfg *config.Config) repo.ScanPolicy {
	if cfg.Storage.ScanPolicy == string(repo.ScanSkip) {
		return repo.ScanSkip
	}
	return repo.ScanAbort
}

// apiKey resolves the completion credential: config (which already layers
// OPENAI_API_KEY) first, then the OS keyring.
func apiKey(cfg *config.Config) string {
	if cfg.OpenAI.APIKey != "" {
		return cfg.OpenAI.APIKey
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if err != keyring.ErrNotFound {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return ""
	}
	return key
}

// newCompleter builds the collaborator client, or returns nil when no
// credential is configured so dependents degrade to ErrUnconfigured.
func newCompleter(cfg *config.Config) llm.Completer {
	client, err := llm.NewOpenAIClient(apiKey(cfg),
		llm.WithModel(cfg.OpenAI.Model),
		llm.WithBaseURL(cfg.OpenAI.BaseURL),
	)
	if err != nil {
		logger.Warn("Completion collaborator unconfigured, query endpoints will be unavailable")
		return nil
	}
	return client
}
