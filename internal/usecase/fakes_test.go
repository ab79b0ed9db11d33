package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wyg1997/VoiceRoute/internal/domain"
)

type fakeExtractor struct {
	result domain.Extraction
	rule   string
	calls  []string
}

func (f *fakeExtractor) ExtractSourceDestination(commandText string) domain.Extraction {
	result, _ := f.Extract(commandText)
	return result
}

func (f *fakeExtractor) Extract(commandText string) (domain.Extraction, string) {
	f.calls = append(f.calls, commandText)
	return f.result, f.rule
}

type fakeDocuments struct {
	mu          sync.Mutex
	transcripts []*domain.Transcript
	feedback    []*domain.FeedbackDocument
	err         error
}

func (f *fakeDocuments) SaveTranscript(ctx context.Context, t *domain.Transcript) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.transcripts = append(f.transcripts, t)
	return fmt.Sprintf("t-%d", len(f.transcripts)), nil
}

func (f *fakeDocuments) SaveFeedback(ctx context.Context, d *domain.FeedbackDocument) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.feedback = append(f.feedback, d)
	return fmt.Sprintf("f-%d", len(f.feedback)), nil
}

func (f *fakeDocuments) Close(ctx context.Context) error { return nil }

type fakeBuses struct {
	routes map[string][]*domain.Bus // "source|destination"
	calls  []string
	err    error
}

func (f *fakeBuses) FindBuses(ctx context.Context, source, destination string) ([]*domain.Bus, error) {
	key := source + "|" + destination
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	if buses, ok := f.routes[key]; ok {
		return buses, nil
	}
	return []*domain.Bus{}, nil
}

type fakeFeedback struct {
	rows []*domain.Feedback
	err  error
}

func (f *fakeFeedback) CreateFeedback(ctx context.Context, fb *domain.Feedback) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.rows = append(f.rows, fb)
	fb.ID = int64(len(f.rows))
	return fb.ID, nil
}

type fakeUsers struct {
	users map[string]string // email -> password
	err   error
}

func (f *fakeUsers) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if pw, ok := f.users[email]; ok && pw == password {
		return &domain.User{ID: int64(len(email)), Email: strings.ToLower(email)}, nil
	}
	return nil, domain.ErrInvalidCredentials
}
