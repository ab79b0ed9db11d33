package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/internal/domain"
	"github.com/wyg1997/VoiceRoute/pkg/cache"
)

func TestAverageRating(t *testing.T) {
	assert.InDelta(t, 4.0, AverageRating(5, 4, 3), 1e-9)
	assert.InDelta(t, 11.0/3, AverageRating(5, 5, 1), 1e-9)
}

func TestFeedbackUseCase_Submit(t *testing.T) {
	rows := &fakeFeedback{}
	docs := &fakeDocuments{}
	lookups := cache.New[[]*domain.Bus](0)
	defer lookups.Close()
	lookups.Set("chicago\x00boston", []*domain.Bus{{BusID: 10}}, time.Minute)

	uc := NewFeedbackUseCase(rows, docs, lookups, zap.NewNop())
	ts := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return ts }

	userID := int64(9)
	res, err := uc.Submit(context.Background(), FeedbackInput{
		UserID:      &userID,
		BusID:       10,
		Rating:      5,
		Cleanliness: 4,
		Punctuality: 3,
		Comment:     "on time",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.FeedbackID)
	assert.Equal(t, "f-1", res.DocumentID)
	assert.InDelta(t, 4.0, res.AverageRating, 1e-9)

	require.Len(t, rows.rows, 1)
	assert.InDelta(t, 4.0, rows.rows[0].Rating, 1e-9)
	assert.Equal(t, "on time", rows.rows[0].Text)

	require.Len(t, docs.feedback, 1)
	doc := docs.feedback[0]
	assert.Equal(t, int64(1), doc.FeedbackID)
	assert.Equal(t, 5.0, doc.Rating)
	assert.Equal(t, 4.0, doc.Cleanliness)
	assert.Equal(t, 3.0, doc.Punctuality)
	assert.Equal(t, ts, doc.Timestamp)

	assert.Equal(t, 0, lookups.Len(), "feedback should invalidate cached lookups")
}

func TestFeedbackUseCase_Errors(t *testing.T) {
	t.Run("relational failure skips document", func(t *testing.T) {
		docs := &fakeDocuments{}
		uc := NewFeedbackUseCase(&fakeFeedback{err: errors.New("insert failed")}, docs, nil, zap.NewNop())

		_, err := uc.Submit(context.Background(), FeedbackInput{BusID: 1})
		require.Error(t, err)
		assert.Empty(t, docs.feedback)
	})

	t.Run("document failure", func(t *testing.T) {
		rows := &fakeFeedback{}
		uc := NewFeedbackUseCase(rows, &fakeDocuments{err: errors.New("mongo down")}, nil, zap.NewNop())

		_, err := uc.Submit(context.Background(), FeedbackInput{BusID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mongo down")
		assert.Len(t, rows.rows, 1)
	})
}

func TestFeedbackUseCase_RejectsNonFiniteScores(t *testing.T) {
	inputs := map[string]FeedbackInput{
		"positive infinity": {BusID: 1, Rating: math.Inf(1), Cleanliness: 5, Punctuality: 5},
		"negative infinity": {BusID: 1, Rating: 5, Cleanliness: math.Inf(-1), Punctuality: 5},
		"nan":               {BusID: 1, Rating: 5, Cleanliness: 5, Punctuality: math.NaN()},
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			rows := &fakeFeedback{}
			docs := &fakeDocuments{}
			uc := NewFeedbackUseCase(rows, docs, nil, zap.NewNop())

			_, err := uc.Submit(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidRating)
			assert.Empty(t, rows.rows)
			assert.Empty(t, docs.feedback)
		})
	}
}
