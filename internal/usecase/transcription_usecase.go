package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/internal/domain"
	"github.com/wyg1997/VoiceRoute/pkg/cache"
	"github.com/wyg1997/VoiceRoute/pkg/metrics"
)

// TranscriptionResult is what a processed voice command yields
type TranscriptionResult struct {
	DocumentID  string
	Source      string
	Destination string
	Rule        string
	Buses       []*domain.Bus
}

// TranscriptionUseCase turns voice commands into bus lookups
type TranscriptionUseCase interface {
	// Process extracts the route, stores the transcript and finds buses.
	// Returns domain.ErrMissingCommand or domain.ErrExtractionFailed for
	// unusable input.
	Process(ctx context.Context, userID *int64, commandText string) (*TranscriptionResult, error)
}

// TranscriptionUseCaseImpl implements TranscriptionUseCase
type TranscriptionUseCaseImpl struct {
	extractor domain.RouteExtractor
	documents domain.DocumentStore
	buses     domain.BusRepository
	lookups   cache.Cache[[]*domain.Bus]
	ttl       time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewTranscriptionUseCase creates a transcription use case. A nil lookups
// cache or non-positive ttl disables lookup caching.
func NewTranscriptionUseCase(
	routes domain.RouteExtractor,
	documents domain.DocumentStore,
	buses domain.BusRepository,
	lookups cache.Cache[[]*domain.Bus],
	ttl time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *TranscriptionUseCaseImpl {
	return &TranscriptionUseCaseImpl{
		extractor: routes,
		documents: documents,
		buses:     buses,
		lookups:   lookups,
		ttl:       ttl,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Process handles one voice command
func (u *TranscriptionUseCaseImpl) Process(ctx context.Context, userID *int64, commandText string) (*TranscriptionResult, error) {
	if commandText == "" {
		return nil, domain.ErrMissingCommand
	}

	extraction, rule := u.extractor.Extract(commandText)
	u.metrics.RecordExtraction(rule)
	u.logger.Debug("extracted route",
		zap.String("rule", rule),
		zap.Stringp("source", extraction.Source),
		zap.Stringp("destination", extraction.Destination),
	)

	if !extraction.Usable() {
		return nil, domain.ErrExtractionFailed
	}
	source, destination := *extraction.Source, *extraction.Destination

	docID, err := u.documents.SaveTranscript(ctx, &domain.Transcript{
		UserID:      userID,
		CommandText: commandText,
		Source:      source,
		Destination: destination,
		Timestamp:   u.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save transcript: %w", err)
	}
	u.logger.Info("transcript saved", zap.String("document_id", docID))

	buses, err := u.findBuses(ctx, strings.ToLower(source), strings.ToLower(destination))
	if err != nil {
		return nil, err
	}
	u.logger.Info("found matching buses", zap.Int("count", len(buses)))

	return &TranscriptionResult{
		DocumentID:  docID,
		Source:      source,
		Destination: destination,
		Rule:        rule,
		Buses:       buses,
	}, nil
}

// findBuses consults the lookup cache before the repository
func (u *TranscriptionUseCaseImpl) findBuses(ctx context.Context, source, destination string) ([]*domain.Bus, error) {
	caching := u.lookups != nil && u.ttl > 0
	key := source + "\x00" + destination

	if caching {
		if buses, ok := u.lookups.Get(key); ok {
			u.metrics.RecordCacheLookup(true)
			return buses, nil
		}
		u.metrics.RecordCacheLookup(false)
	}

	buses, err := u.buses.FindBuses(ctx, source, destination)
	if err != nil {
		return nil, fmt.Errorf("failed to find buses: %w", err)
	}

	if caching {
		u.lookups.Set(key, buses, u.ttl)
	}
	return buses, nil
}
