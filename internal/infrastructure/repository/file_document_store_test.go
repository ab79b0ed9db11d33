package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyg1997/VoiceRoute/config"
	"github.com/wyg1997/VoiceRoute/internal/domain"
)

func TestFileDocumentStore_SaveTranscript(t *testing.T) {
	ds, err := NewFileDocumentStore(t.TempDir())
	require.NoError(t, err)
	store := ds.(*fileDocumentStore)
	ctx := context.Background()

	userID := int64(7)
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	id, err := store.SaveTranscript(ctx, &domain.Transcript{
		UserID:      &userID,
		CommandText: "from Chicago to Boston",
		Source:      "Chicago",
		Destination: "Boston",
		Timestamp:   ts,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	_, err = store.SaveTranscript(ctx, &domain.Transcript{CommandText: "Chicago to Denver", Source: "Chicago", Destination: "Denver", Timestamp: ts})
	require.NoError(t, err)

	records, err := store.load(domain.CollectionTranscripts)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id, records[0].ID)

	var got domain.Transcript
	require.NoError(t, json.Unmarshal(records[0].Document, &got))
	assert.Equal(t, "from Chicago to Boston", got.CommandText)
	assert.Equal(t, int64(7), *got.UserID)
	assert.True(t, ts.Equal(got.Timestamp))

	var anon map[string]interface{}
	require.NoError(t, json.Unmarshal(records[1].Document, &anon))
	assert.Nil(t, anon["user_id"])
}

func TestFileDocumentStore_SaveFeedback(t *testing.T) {
	ds, err := NewFileDocumentStore(t.TempDir())
	require.NoError(t, err)
	store := ds.(*fileDocumentStore)

	id, err := store.SaveFeedback(context.Background(), &domain.FeedbackDocument{
		BusID:         10,
		FeedbackID:    3,
		Rating:        5,
		Cleanliness:   4,
		Punctuality:   3,
		AverageRating: 4,
	})
	require.NoError(t, err)

	records, err := store.load(domain.CollectionFeedback)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)

	transcripts, err := store.load(domain.CollectionTranscripts)
	require.NoError(t, err)
	assert.Empty(t, transcripts)
}

func TestFileDocumentStore_ConcurrentWrites(t *testing.T) {
	ds, err := NewFileDocumentStore(t.TempDir())
	require.NoError(t, err)
	store := ds.(*fileDocumentStore)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SaveTranscript(context.Background(), &domain.Transcript{CommandText: "a to b", Source: "a", Destination: "b"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := store.load(domain.CollectionTranscripts)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestFileDocumentStore_CanceledContext(t *testing.T) {
	ds, err := NewFileDocumentStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ds.SaveTranscript(ctx, &domain.Transcript{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDocumentStore(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		ds, err := NewDocumentStore(context.Background(), config.DocumentsConfig{Backend: config.BackendFile, DataDir: t.TempDir()})
		require.NoError(t, err)
		assert.NoError(t, ds.Close(context.Background()))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewDocumentStore(context.Background(), config.DocumentsConfig{Backend: "s3"})
		assert.Error(t, err)
	})
}

// load reads every record of a collection
func (r *fileDocumentStore) load(collection string) ([]fileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Nothing written yet
		}
		return nil, fmt.Errorf("failed to open collection %s: %w", collection, err)
	}
	defer f.Close()

	var records []fileRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec fileRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return records, nil
}
