package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/internal/domain"
	"github.com/wyg1997/VoiceRoute/internal/usecase"
)

// TransitHandler serves login, voice command and feedback endpoints
type TransitHandler struct {
	users          usecase.UserUseCase
	transcriptions usecase.TranscriptionUseCase
	feedback       usecase.FeedbackUseCase
	logger         *zap.Logger
}

// NewTransitHandler creates handler
func NewTransitHandler(
	users usecase.UserUseCase,
	transcriptions usecase.TranscriptionUseCase,
	feedback usecase.FeedbackUseCase,
	logger *zap.Logger,
) *TransitHandler {
	return &TransitHandler{
		users:          users,
		transcriptions: transcriptions,
		feedback:       feedback,
		logger:         logger,
	}
}

// Register mounts the routes on e
func (h *TransitHandler) Register(e *echo.Echo) {
	e.POST("/login", h.Login)
	e.POST("/save-transcription", h.SaveTranscription)
	e.POST("/submit-feedback", h.SubmitFeedback)
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /login
type LoginResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login checks rider credentials
func (h *TransitHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	}
	if err != nil {
		h.logger.Error("login error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	return c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", User: user})
}

// TranscriptionRequest is the body of POST /save-transcription
type TranscriptionRequest struct {
	UserID      *FlexInt `json:"user_id"`
	CommandText string   `json:"command_text"`
}

// ExtractedData echoes the route pulled out of the command
type ExtractedData struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// TranscriptionResponse is the body returned by POST /save-transcription
type TranscriptionResponse struct {
	Message       string        `json:"message"`
	MongoID       string        `json:"mongo_id"`
	ExtractedData ExtractedData `json:"extracted_data"`
	Buses         []*domain.Bus `json:"buses"`
}

// SaveTranscription stores a voice command and returns buses for its route
func (h *TransitHandler) SaveTranscription(c echo.Context) error {
	var req TranscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	h.logger.Debug("received transcription", zap.String("command_text", req.CommandText))

	res, err := h.transcriptions.Process(c.Request().Context(), req.UserID.Int64Ptr(), req.CommandText)
	switch {
	case errors.Is(err, domain.ErrMissingCommand):
		h.logger.Warn("no command_text received")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing command_text"})
	case errors.Is(err, domain.ErrExtractionFailed):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not extract source and destination"})
	case err != nil:
		h.logger.Error("error processing transcription", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process transcription"})
	}

	return c.JSON(http.StatusOK, TranscriptionResponse{
		Message:       "Transcription processed successfully",
		MongoID:       res.DocumentID,
		ExtractedData: ExtractedData{Source: res.Source, Destination: res.Destination},
		Buses:         res.Buses,
	})
}

// FeedbackRequest is the body of POST /submit-feedback. Scores may be
// numbers or numeric strings.
type FeedbackRequest struct {
	UserID      *FlexInt  `json:"user_id"`
	BusID       FlexInt   `json:"bus_id"`
	Rating      *FlexFloat `json:"rating"`
	Cleanliness *FlexFloat `json:"cleanliness"`
	Punctuality *FlexFloat `json:"punctuality"`
	Comment     string    `json:"comment"`
}

// FeedbackResponse is the body returned by POST /submit-feedback
type FeedbackResponse struct {
	Message    string `json:"message"`
	FeedbackID int64  `json:"feedback_id"`
	MongoID    string `json:"mongo_id"`
}

// SubmitFeedback records a rider's rating of a bus
func (h *TransitHandler) SubmitFeedback(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid rating values"})
	}
	if req.Rating == nil || req.Cleanliness == nil || req.Punctuality == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid rating values"})
	}
	if req.BusID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing bus_id"})
	}

	res, err := h.feedback.Submit(c.Request().Context(), usecase.FeedbackInput{
		UserID:      req.UserID.Int64Ptr(),
		BusID:       int64(req.BusID),
		Rating:      float64(*req.Rating),
		Cleanliness: float64(*req.Cleanliness),
		Punctuality: float64(*req.Punctuality),
		Comment:     req.Comment,
	})
	if errors.Is(err, domain.ErrInvalidRating) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid rating values"})
	}
	if err != nil {
		h.logger.Error("error submitting feedback", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit feedback"})
	}

	return c.JSON(http.StatusOK, FeedbackResponse{
		Message:    "Feedback submitted successfully",
		FeedbackID: res.FeedbackID,
		MongoID:    res.DocumentID,
	})
}

// FlexFloat decodes a finite JSON number or numeric string. Empty strings,
// NaN and infinities are rejected; a JSON null leaves a *FlexFloat nil.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("empty number")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("number %q is not finite", s)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt decodes a JSON integer or numeric string
type FlexInt int64

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s, err := unquoteNumber(data)
	if err != nil || s == "" {
		return err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", s, err)
	}
	*i = FlexInt(v)
	return nil
}

// Int64Ptr returns nil for a missing or zero ID
func (i *FlexInt) Int64Ptr() *int64 {
	if i == nil || *i == 0 {
		return nil
	}
	v := int64(*i)
	return &v
}

// unquoteNumber returns the numeric text of a JSON number or string.
// null and "" yield an empty string.
func unquoteNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(data), nil
}
