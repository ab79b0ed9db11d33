package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/wyg1997/VoiceRoute/internal/domain"
)

// fileDocumentStore implements DocumentStore with one JSON Lines file per
// collection under dataDir
type fileDocumentStore struct {
	dataDir string
	mu      sync.Mutex
}

// fileRecord wraps a stored document with its generated ID
type fileRecord struct {
	ID       string          `json:"_id"`
	Document json.RawMessage `json:"document"`
}

// NewFileDocumentStore creates a file-backed document store
func NewFileDocumentStore(dataDir string) (domain.DocumentStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &fileDocumentStore{dataDir: dataDir}, nil
}

// SaveTranscript appends a transcript document
func (r *fileDocumentStore) SaveTranscript(ctx context.Context, t *domain.Transcript) (string, error) {
	return r.insert(ctx, domain.CollectionTranscripts, t)
}

// SaveFeedback appends a feedback document
func (r *fileDocumentStore) SaveFeedback(ctx context.Context, f *domain.FeedbackDocument) (string, error) {
	return r.insert(ctx, domain.CollectionFeedback, f)
}

// Close is a no-op; files are closed after every write
func (r *fileDocumentStore) Close(ctx context.Context) error {
	return nil
}

func (r *fileDocumentStore) insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	record := fileRecord{ID: uuid.NewString(), Document: data}
	line, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path(collection), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open collection %s: %w", collection, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return record.ID, nil
}

func (r *fileDocumentStore) path(collection string) string {
	return filepath.Join(r.dataDir, collection+".jsonl")
}
