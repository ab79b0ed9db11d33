package domain

import (
	"context"
	"time"
)

// Transcript is a voice command as stored in the document store
type Transcript struct {
	UserID      *int64    `json:"user_id" bson:"user_id"`
	CommandText string    `json:"command_text" bson:"command_text"`
	Source      string    `json:"source" bson:"source"`
	Destination string    `json:"destination" bson:"destination"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// FeedbackDocument mirrors a relational feedback row with the raw scores
type FeedbackDocument struct {
	UserID        *int64    `json:"user_id" bson:"user_id"`
	BusID         int64     `json:"bus_id" bson:"bus_id"`
	Comment       string    `json:"comment" bson:"comment"`
	FeedbackID    int64     `json:"feedback_id" bson:"feedback_id"`
	Rating        float64   `json:"rating" bson:"rating"`
	Cleanliness   float64   `json:"cleanliness" bson:"cleanliness"`
	Punctuality   float64   `json:"punctuality" bson:"punctuality"`
	AverageRating float64   `json:"averageRating" bson:"averageRating"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// Document collection names
const (
	CollectionTranscripts = "SpeechToTextData"
	CollectionFeedback    = "FeedBackData"
)

// DocumentStore persists transcripts and feedback documents
type DocumentStore interface {
	// SaveTranscript stores a transcript and returns its document ID
	SaveTranscript(ctx context.Context, t *Transcript) (string, error)

	// SaveFeedback stores a feedback document and returns its document ID
	SaveFeedback(ctx context.Context, f *FeedbackDocument) (string, error)

	// Close releases the underlying connection
	Close(ctx context.Context) error
}
