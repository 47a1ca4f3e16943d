package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/services"
)

// Deps are the services and settings the router is built from.
type Deps struct {
	Auth      services.AuthService
	Journal   services.JournalService
	News      services.NewsService
	Events    services.EventService
	Documents services.DocumentService
	Scrutins  services.ScrutinService
	Surveys   services.SurveyService

	Log            logrus.FieldLogger
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRouter(deps Deps) *gin.Engine {
	h := helper.NewHTTPHelper()

	authHandler := NewAuthHandler(deps.Auth, h)
	journalHandler := NewJournalHandler(deps.Journal, h)
	newsHandler := NewNewsHandler(deps.News, h)
	eventHandler := NewEventHandler(deps.Events, h)
	documentHandler := NewDocumentHandler(deps.Documents, h)
	scrutinHandler := NewScrutinHandler(deps.Scrutins, h)
	surveyHandler := NewSurveyHandler(deps.Surveys, h)

	limit := middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Log), middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Reading view of the official journal.
	router.GET("/journal/:nor", journalHandler.ConsolidatedPage)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", limit, middleware.OptionalAuth(), authHandler.Register)
			auth.POST("/login", limit, authHandler.Login)
		}

		public := v1.Group("/public")
		{
			public.GET("/journal", journalHandler.GetEntries)
			public.GET("/journal/:id", journalHandler.GetEntry)
			public.GET("/journal/:id/consolidated", journalHandler.GetConsolidated)
			public.GET("/nor/:nor", journalHandler.GetEntryByNor)

			public.GET("/news", newsHandler.GetPublicNews)
			public.GET("/news/:slug", newsHandler.GetPublicNewsBySlug)

			public.GET("/events", eventHandler.GetUpcoming)
			public.GET("/events.ics", eventHandler.GetICS)
			public.GET("/events/:id", eventHandler.GetEvent)
			public.GET("/calendar", eventHandler.GetCalendar)

			public.GET("/documents", documentHandler.GetDocuments)
			public.GET("/documents/:id", documentHandler.GetDocument)
			public.GET("/document-categories", documentHandler.GetCategories)

			public.GET("/scrutins", scrutinHandler.GetScrutins)
			public.GET("/scrutins/:id/results", scrutinHandler.GetResults)

			public.GET("/surveys", surveyHandler.GetSurveys)
			public.GET("/surveys/:id", surveyHandler.GetSurvey)
			public.GET("/surveys/:id/results", surveyHandler.GetResults)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.POST("/surveys/:id/responses", surveyHandler.Respond)

			voter := protected.Group("/", middleware.RequireVoter())
			{
				voter.POST("/scrutins/:id/ballots", limit, scrutinHandler.CastBallot)
			}

			publisher := protected.Group("/", middleware.RequirePublisher())
			{
				publisher.POST("/journal", journalHandler.CreateEntry)
				publisher.PUT("/journal/:id", journalHandler.AmendEntry)

				publisher.GET("/news", newsHandler.GetNews)
				publisher.POST("/news", newsHandler.CreateNews)
				publisher.PUT("/news/:id", newsHandler.UpdateNews)
				publisher.DELETE("/news/:id", newsHandler.DeleteNews)

				publisher.POST("/events", eventHandler.CreateEvent)
				publisher.PUT("/events/:id", eventHandler.UpdateEvent)
				publisher.DELETE("/events/:id", eventHandler.DeleteEvent)

				publisher.POST("/documents", documentHandler.CreateDocument)
				publisher.PUT("/documents/:id", documentHandler.UpdateDocument)
				publisher.DELETE("/documents/:id", documentHandler.DeleteDocument)

				publisher.POST("/scrutins", scrutinHandler.CreateScrutin)
				publisher.POST("/scrutins/:id/close", scrutinHandler.CloseScrutin)

				publisher.GET("/surveys", surveyHandler.GetAllSurveys)
				publisher.POST("/surveys", surveyHandler.CreateSurvey)
				publisher.PATCH("/surveys/:id", surveyHandler.SetActive)
				publisher.DELETE("/surveys/:id", surveyHandler.DeleteSurvey)
			}

			admin := protected.Group("/", middleware.RequireAdmin())
			{
				admin.PUT("/journal/:id/overwrite", journalHandler.OverwriteEntry)
				admin.DELETE("/journal/:id", journalHandler.DeleteEntry)

				admin.GET("/users", authHandler.ListUsers)
				admin.PUT("/users/:id/role", authHandler.SetRole)
			}
		}
	}

	return router
}
