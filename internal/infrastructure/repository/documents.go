package repository

import (
	"context"
	"fmt"

	"github.com/wyg1997/VoiceRoute/config"
	"github.com/wyg1997/VoiceRoute/internal/domain"
)

// NewDocumentStore opens the document backend selected by cfg
func NewDocumentStore(ctx context.Context, cfg config.DocumentsConfig) (domain.DocumentStore, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return NewMongoDocumentStore(ctx, cfg.URI, cfg.Database)
	case config.BackendFile:
		return NewFileDocumentStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unsupported document backend: %s", cfg.Backend)
	}
}
