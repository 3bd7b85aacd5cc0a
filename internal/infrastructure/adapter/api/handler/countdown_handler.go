package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	usecaseport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CountdownHandler handles countdown-related HTTP requests
type CountdownHandler struct {
	countdownService usecaseport.CountdownUseCase
	logger           coreport.Logger
}

// NewCountdownHandler creates a new countdown handler instance
func NewCountdownHandler(countdownService usecaseport.CountdownUseCase, logger coreport.Logger) *CountdownHandler {
	return &CountdownHandler{
		countdownService: countdownService,
		logger:           logger,
	}
}

// CreateCountdown handles the POST /countdowns endpoint
func (h *CountdownHandler) CreateCountdown(c *gin.Context) {
	var req dto.CreateCountdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidRequest, "Invalid request format: "+err.Error()))
		return
	}

	run, err := h.countdownService.Create(c.Request.Context(), usecaseport.CreateCountdownRequest{
		Duration:      req.Duration,
		GranularityMs: req.GranularityMs,
		AutoStart:     req.AutoStart,
		Label:         req.Label,
	})
	if err != nil {
		h.respondError(c, "Error creating countdown", err, map[string]any{
			"duration": req.Duration,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.NewCountdownResponse(run))
}

// ListCountdowns handles the GET /countdowns endpoint
func (h *CountdownHandler) ListCountdowns(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidRequest, "Invalid limit parameter"))
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidRequest, "Invalid offset parameter"))
		return
	}

	runs, err := h.countdownService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, "Error listing countdowns", err, nil)
		return
	}

	items := make([]dto.CountdownResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, dto.NewCountdownResponse(run))
	}
	c.JSON(http.StatusOK, dto.CountdownListResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	})
}

// GetCountdown handles the GET /countdowns/:id endpoint
func (h *CountdownHandler) GetCountdown(c *gin.Context) {
	id, ok := h.countdownID(c)
	if !ok {
		return
	}

	run, err := h.countdownService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "Error retrieving countdown", err, map[string]any{"countdownId": id})
		return
	}

	c.JSON(http.StatusOK, dto.NewCountdownResponse(run))
}

// StartCountdown handles the POST /countdowns/:id/start endpoint
func (h *CountdownHandler) StartCountdown(c *gin.Context) {
	id, ok := h.countdownID(c)
	if !ok {
		return
	}

	run, err := h.countdownService.Start(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "Error starting countdown", err, map[string]any{"countdownId": id})
		return
	}

	c.JSON(http.StatusOK, dto.NewCountdownResponse(run))
}

// StreamEvents handles the GET /countdowns/:id/events endpoint as a server-sent event stream
func (h *CountdownHandler) StreamEvents(c *gin.Context) {
	id, ok := h.countdownID(c)
	if !ok {
		return
	}

	events, cancel, err := h.countdownService.Subscribe(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "Error subscribing to countdown", err, map[string]any{"countdownId": id})
		return
	}
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return ev.Type != entity.EventStop
		case <-done:
			return false
		}
	})
}

// countdownID reads and validates the :id path parameter, writing a 400 when it is malformed
func (h *CountdownHandler) countdownID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCountdownID),
			Message: "Invalid countdown ID format",
		})
		return "", false
	}
	return id, true
}

// respondError maps a use case error to its HTTP status and logs server-side failures
func (h *CountdownHandler) respondError(c *gin.Context, msg string, err error, fields map[string]any) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["error"] = err.Error()
		h.logger.Error(msg, fields)

		c.JSON(status, dto.NewErrorResponse(err, "Internal server error"))
		return
	}

	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponse(err, ""))
}

// StatusForError returns the HTTP status for a domain error
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidTimeFormat),
		errors.Is(err, domainerr.ErrInvalidGranularity),
		errors.Is(err, domainerr.ErrInvalidCountdownID),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrCountdownNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrCountdownFinished):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrTooManyActive):
		return http.StatusTooManyRequests
	case errors.Is(err, domainerr.ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
