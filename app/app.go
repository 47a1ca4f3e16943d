package app

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bdl-cms/cache"
	"bdl-cms/config"
	"bdl-cms/handlers"
	"bdl-cms/repositories"
	"bdl-cms/scheduler"
	"bdl-cms/services"
)

// App holds the wired services and the HTTP router built on them.
type App struct {
	Deps      handlers.Deps
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler
}

// New wires repositories, services and handlers on an open database.
func New(db *gorm.DB, c cache.Cache, cfg *config.Config, log logrus.FieldLogger) *App {
	loc := cfg.Location()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	journalRepo := repositories.NewJournalRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	scrutinRepo := repositories.NewScrutinRepository(db)
	surveyRepo := repositories.NewSurveyRepository(db)

	// Initialize services
	deps := handlers.Deps{
		Auth:      services.NewAuthService(userRepo),
		Journal:   services.NewJournalService(journalRepo, c, log, loc),
		News:      services.NewNewsService(newsRepo),
		Events:    services.NewEventService(eventRepo, loc, cfg.SiteURL),
		Documents: services.NewDocumentService(documentRepo),
		Scrutins:  services.NewScrutinService(scrutinRepo, log),
		Surveys:   services.NewSurveyService(surveyRepo),

		Log:            log,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	return &App{
		Deps:      deps,
		Router:    handlers.SetupRouter(deps),
		Scheduler: scheduler.New(deps.Scrutins, log),
	}
}
