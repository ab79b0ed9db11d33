package domain

import (
	"context"
)

// Bus is a scheduled bus on a route, with its average feedback rating
type Bus struct {
	BusID         int64   `json:"Bus_Id"`
	BusNumber     string  `json:"Bus_Number"`
	BusType       string  `json:"Bus_Type"`
	Capacity      int     `json:"Capacity"`
	Timing        string  `json:"Timing"`
	StartLocation string  `json:"Start_Location"`
	EndLocation   string  `json:"End_Location"`
	AverageRating float64 `json:"average_rating"`
}

// Feedback is a rating row in the relational store
type Feedback struct {
	ID     int64
	UserID *int64
	BusID  int64
	Rating float64 // average of rating, cleanliness and punctuality
	Text   string
}

// BusRepository looks up buses by route endpoints
type BusRepository interface {
	// FindBuses matches start and end locations case-insensitively.
	// Callers pass lowercased values.
	FindBuses(ctx context.Context, source, destination string) ([]*Bus, error)
}

// FeedbackRepository stores feedback rows
type FeedbackRepository interface {
	// CreateFeedback inserts a row and returns its generated ID
	CreateFeedback(ctx context.Context, f *Feedback) (int64, error)
}
