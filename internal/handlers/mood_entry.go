package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/apierror"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/middleware"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/service"
)

type MoodEntryHandler struct {
	journalService service.JournalService
}

// NewMoodEntryHandler creates a new mood entry handler
func NewMoodEntryHandler(journalService service.JournalService) *MoodEntryHandler {
	return &MoodEntryHandler{
		journalService: journalService,
	}
}

// CreateMoodEntry handles POST /api/v1/mood-entries
func (h *MoodEntryHandler) CreateMoodEntry(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	var req models.CreateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBindingError(requestID, err))
		return
	}

	resp, err := h.journalService.SubmitEntry(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFutureDate):
			apierror.WriteProblem(c, apierror.NewFutureDateError(requestID, "entry_date"))
		case errors.Is(err, service.ErrInvalidDate):
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{{
				Field:   "entry_date",
				Message: "must be a date in YYYY-MM-DD format",
				Code:    "datetime",
			}}))
		default:
			logger.FromContext(c.Request.Context()).Error("save mood entry failed", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMoodEntries handles GET /api/v1/mood-entries
func (h *MoodEntryHandler) GetMoodEntries(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				"days must be a positive integer", "Invalid days parameter"))
			return
		}
		days = n
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), middleware.UserID(c), days)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("list mood entries failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
