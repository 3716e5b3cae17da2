package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agency-planner/internal/rest/middleware"
	"agency-planner/internal/service"
	"agency-planner/pkg/rest/response"
)

// Plan serves the daily plan itself: what the UI reads, manual adds, and
// completion marking.
type Plan struct {
	log *logrus.Logger
	svc *service.PlanService
}

func NewPlanHandler(svc *service.PlanService, log *logrus.Logger) *Plan {
	return &Plan{log: log, svc: svc}
}

func (h *Plan) EnrichRoutes(router gin.IRouter) {
	router.GET("/plan", h.listAction)
	router.POST("/plan", h.addAction)
	router.POST("/plan/:entryID/complete", h.completeAction)
}

func (h *Plan) listAction(c *gin.Context) {
	const op = "handlers.Plan.listAction"
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

	entries, err := h.svc.ListDay(c.Request.Context(), user.ID, date)
	if err != nil {
		log.WithError(err).Error("failed to list plan")
		response.HandleError(response.NewInternalError(), c)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type addPlanRequest struct {
	TaskID uint   `json:"taskId"`
	Date   string `json:"date"`
}

func (h *Plan) addAction(c *gin.Context) {
	const op = "handlers.Plan.addAction"
	log := h.log.WithField("operation", op)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.HandleError(response.NewUnauthorizedError(), c)
		return
	}

	var req addPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(response.NewBadRequestError("malformed body"), c)
		return
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		response.HandleError(response.NewBadRequestError("date must be YYYY-MM-DD"), c)
		return
	}

	entry, err := h.svc.AddManual(c.Request.Context(), user.ID, req.TaskID, date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.HandleError(response.NewBadRequestError(err.Error()), c)
			return
		}
		log.WithError(err).Error("failed to add plan entry")
		response.HandleError(response.NewInternalError(), c)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Plan) completeAction(c *gin.Context) {
	const op = "handlers.Plan.completeAction"
	log := h.log.WithField("operation", op)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.HandleError(response.NewUnauthorizedError(), c)
		return
	}

	entryID, err := strconv.ParseUint(c.Param("entryID"), 10, 64)
	if err != nil {
		response.HandleError(response.NewBadRequestError("entryID must be numeric"), c)
		return
	}

	entry, err := h.svc.Complete(c.Request.Context(), user.ID, uint(entryID), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.HandleError(response.NewBadRequestError("plan entry not found"), c)
			return
		}
		log.WithError(err).Error("failed to complete plan entry")
		response.HandleError(response.NewInternalError(), c)
		return
	}
	c.JSON(http.StatusOK, entry)
}
