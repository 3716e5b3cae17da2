package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agency-planner/internal/repository"
	"agency-planner/internal/rest/handlers"
	"agency-planner/internal/rest/middleware"
	"agency-planner/internal/service"
)

// Deps collects everything the router wires together.
type Deps struct {
	Log           *logrus.Logger
	UserRepo      *repository.UserRepository
	SuggestionSvc *service.SuggestionService
	PlanSvc       *service.PlanService
	ReminderSvc   *service.ReminderService
	CronSecret    string
}

// NewRouter assembles the gin engine. /reminders handles its own auth (cron
// secret or user token); everything else sits behind the user middleware.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handlers.NewRemindersHandler(deps.ReminderSvc, deps.UserRepo, deps.CronSecret, deps.Log).EnrichRoutes(router)

	authed := router.Group("/", middleware.Authenticate(deps.UserRepo))
	handlers.NewSuggestionsHandler(deps.SuggestionSvc, deps.Log).EnrichRoutes(authed)
	handlers.NewPlanHandler(deps.PlanSvc, deps.Log).EnrichRoutes(authed)

	return router
}
