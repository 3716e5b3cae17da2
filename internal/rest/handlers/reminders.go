package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agency-planner/internal/repository"
	"agency-planner/internal/rest/middleware"
	"agency-planner/internal/service"
	"agency-planner/pkg/rest/response"
)

// Reminders exposes the on-demand sweep trigger. The cron inside the process
// covers the steady cadence; this endpoint lets an external scheduler (or an
// operator) force a sweep.
type Reminders struct {
	log        *logrus.Logger
	svc        *service.ReminderService
	userRepo   *repository.UserRepository
	cronSecret string
}

func NewRemindersHandler(svc *service.ReminderService, userRepo *repository.UserRepository, cronSecret string, log *logrus.Logger) *Reminders {
	return &Reminders{log: log, svc: svc, userRepo: userRepo, cronSecret: cronSecret}
}

func (h *Reminders) EnrichRoutes(router gin.IRouter) {
	router.GET("/reminders", h.sweepAction)
}

func (h *Reminders) sweepAction(c *gin.Context) {
	const op = "handlers.Reminders.sweepAction"
	log := h.log.WithField("operation", op)

	if !h.authorized(c) {
		response.HandleError(response.NewUnauthorizedError(), c)
		return
	}

	result, err := h.svc.RunSweep(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("sweep failed")
		response.HandleError(response.NewInternalError(), c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"tasksChecked":  result.TasksChecked,
		"remindersSent": result.RemindersSent,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// authorized accepts either the shared cron secret or any valid user token.
func (h *Reminders) authorized(c *gin.Context) bool {
	token := middleware.ExtractToken(c)
	if token == "" {
		return false
	}
	if h.cronSecret != "" && token == h.cronSecret {
		return true
	}
	_, err := h.userRepo.FindByToken(c.Request.Context(), token)
	return err == nil
}
