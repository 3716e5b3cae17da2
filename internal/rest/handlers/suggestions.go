package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agency-planner/internal/rest/middleware"
	"agency-planner/internal/service"
	"agency-planner/pkg/rest/response"
)

// Suggestions serves the daily-plan suggestion endpoints.
type Suggestions struct {
	log *logrus.Logger
	svc *service.SuggestionService
}

func NewSuggestionsHandler(svc *service.SuggestionService, log *logrus.Logger) *Suggestions {
	return &Suggestions{log: log, svc: svc}
}

func (h *Suggestions) EnrichRoutes(router gin.IRouter) {
	router.GET("/suggestions", h.generateAction)
	router.POST("/suggestions/accept", h.acceptAction)
}

func (h *Suggestions) generateAction(c *gin.Context) {
	const op = "handlers.Suggestions.generateAction"
	log := h.log.WithField("operation", op)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.HandleError(response.NewUnauthorizedError(), c)
		return
	}

	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		response.HandleError(response.NewBadRequestError("date must be YYYY-MM-DD"), c)
		return
	}

	targetID := user.ID
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.HandleError(response.NewBadRequestError("userId must be numeric"), c)
			return
		}
		targetID = uint(parsed)
	}
	if !user.CanViewUser(targetID) {
		response.HandleError(response.NewForbiddenError(), c)
		return
	}

	suggestions, err := h.svc.GenerateSuggestions(c.Request.Context(), targetID, date)
	if err != nil {
		log.WithError(err).Error("failed to generate suggestions")
		response.HandleError(response.NewInternalError(), c)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

type acceptRequest struct {
	Date    string   `json:"date"`
	TaskIDs []uint   `json:"taskIds"`
	Sources []string `json:"sources"`
}

func (h *Suggestions) acceptAction(c *gin.Context) {
	const op = "handlers.Suggestions.acceptAction"
	log := h.log.WithField("operation", op)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.HandleError(response.NewUnauthorizedError(), c)
		return
	}

	var req acceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(response.NewBadRequestError("malformed body"), c)
		return
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		response.HandleError(response.NewBadRequestError("date must be YYYY-MM-DD"), c)
		return
	}

	created, err := h.svc.AcceptSuggestions(c.Request.Context(), user.ID, date, req.TaskIDs, req.Sources)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.HandleError(response.NewBadRequestError(err.Error()), c)
			return
		}
		log.WithError(err).Error("failed to accept suggestions")
		response.HandleError(response.NewInternalError(), c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"count":   len(created),
		"tasks":   created,
	})
}

// parseDateParam parses YYYY-MM-DD, defaulting to today when empty. An
// unparsable date is an error, never a silent default.
func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.DateOnly, raw)
}
