package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/internal/domain"
	"github.com/wyg1997/VoiceRoute/pkg/cache"
)

// FeedbackInput is a rider's rating of one bus
type FeedbackInput struct {
	UserID      *int64
	BusID       int64
	Rating      float64
	Cleanliness float64
	Punctuality float64
	Comment     string
}

// FeedbackResult identifies the stored feedback
type FeedbackResult struct {
	FeedbackID    int64
	DocumentID    string
	AverageRating float64
}

// FeedbackUseCase records rider feedback
type FeedbackUseCase interface {
	Submit(ctx context.Context, in FeedbackInput) (*FeedbackResult, error)
}

// FeedbackUseCaseImpl implements FeedbackUseCase
type FeedbackUseCaseImpl struct {
	feedback  domain.FeedbackRepository
	documents domain.DocumentStore
	lookups   cache.Cache[[]*domain.Bus]
	logger    *zap.Logger
	now       func() time.Time
}

// NewFeedbackUseCase creates a feedback use case. lookups may be nil.
func NewFeedbackUseCase(
	feedback domain.FeedbackRepository,
	documents domain.DocumentStore,
	lookups cache.Cache[[]*domain.Bus],
	logger *zap.Logger,
) *FeedbackUseCaseImpl {
	return &FeedbackUseCaseImpl{
		feedback:  feedback,
		documents: documents,
		lookups:   lookups,
		logger:    logger,
		now:       time.Now,
	}
}

// AverageRating is the mean of the three scores
func AverageRating(rating, cleanliness, punctuality float64) float64 {
	return (rating + cleanliness + punctuality) / 3
}

// Submit writes the relational row first; the document carries its ID.
// Non-finite scores return domain.ErrInvalidRating before anything is stored.
func (u *FeedbackUseCaseImpl) Submit(ctx context.Context, in FeedbackInput) (*FeedbackResult, error) {
	for _, score := range []float64{in.Rating, in.Cleanliness, in.Punctuality} {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, domain.ErrInvalidRating
		}
	}
	avg := AverageRating(in.Rating, in.Cleanliness, in.Punctuality)

	feedbackID, err := u.feedback.CreateFeedback(ctx, &domain.Feedback{
		UserID: in.UserID,
		BusID:  in.BusID,
		Rating: avg,
		Text:   in.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	u.logger.Info("feedback stored", zap.Int64("feedback_id", feedbackID), zap.Int64("bus_id", in.BusID))

	// Cached averages are stale now
	if u.lookups != nil {
		u.lookups.Clear()
	}

	docID, err := u.documents.SaveFeedback(ctx, &domain.FeedbackDocument{
		UserID:        in.UserID,
		BusID:         in.BusID,
		Comment:       in.Comment,
		FeedbackID:    feedbackID,
		Rating:        in.Rating,
		Cleanliness:   in.Cleanliness,
		Punctuality:   in.Punctuality,
		AverageRating: avg,
		Timestamp:     u.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback document: %w", err)
	}
	u.logger.Info("feedback document saved", zap.String("document_id", docID))

	return &FeedbackResult{
		FeedbackID:    feedbackID,
		DocumentID:    docID,
		AverageRating: avg,
	}, nil
}
