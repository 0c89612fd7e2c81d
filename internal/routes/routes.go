package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EGASHIRAAkihide/karada/internal/config"
	"github.com/EGASHIRAAkihide/karada/internal/handlers"
	"github.com/EGASHIRAAkihide/karada/internal/middleware"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
	"github.com/EGASHIRAAkihide/karada/internal/services"
	activityws "github.com/EGASHIRAAkihide/karada/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) (*services.ActivityLogger, error) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	clientRepo := repository.NewClientRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	trainingRequestRepo := repository.NewTrainingRequestRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activityHub := activityws.NewHub()
	go activityHub.Run()

	auditLogger := services.NewActivityLogger(activityRepo, activityHub)
	generationService := services.NewGenerationService(trainingRequestRepo)
	completionClient := services.NewTogetherClient(cfg.TogetherAPIURL, cfg.TogetherAPIKey, cfg.TogetherModel)

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, auditLogger, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileRepo, auditLogger)
	clientHandler := handlers.NewClientHandler(clientRepo, auditLogger)
	workoutHandler := handlers.NewWorkoutHandler(workoutRepo, clientRepo, auditLogger)
	trainerHandler := handlers.NewTrainerHandler(generationService, completionClient, auditLogger)
	activityHandler := handlers.NewActivityHandler(activityRepo, activityHub, cfg.JWTSecret)
	dashboardHandler := handlers.NewDashboardHandler(clientRepo, activityRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	api.Post("/generate-workout", trainerHandler.GenerateWorkout)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	authProtected.Get("/profile", profileHandler.GetProfile)
	authProtected.Put("/profile", profileHandler.UpdateProfile)

	authProtected.Get("/dashboard", dashboardHandler.GetStats)

	clients := authProtected.Group("/clients")
	clients.Post("", clientHandler.CreateClient)
	clients.Get("", clientHandler.ListClients)
	clients.Get("/:id", clientHandler.GetClient)
	clients.Put("/:id", clientHandler.UpdateClient)
	clients.Delete("/:id", clientHandler.DeleteClient)
	clients.Post("/:id/workouts", workoutHandler.CreateWorkout)
	clients.Get("/:id/workouts", workoutHandler.ListWorkouts)

	workouts := authProtected.Group("/workouts")
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Put("/:id", workoutHandler.UpdateWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)

	trainer := authProtected.Group("/trainer")
	trainer.Post("/requests", trainerHandler.CreateRequest)
	trainer.Get("/requests", trainerHandler.ListRequests)
	trainer.Delete("/requests/:id", trainerHandler.DeleteRequest)

	authProtected.Get("/activities", activityHandler.ListActivities)

	// The feed lives outside the /v1 group: browser WebSocket clients cannot
	// set an Authorization header, so WebSocketAuth must see the request
	// before any header-based middleware rejects it.
	api.Use("/ws/activities", activityHandler.WebSocketAuth)
	api.Get("/ws/activities", websocket.New(activityHandler.HandleWebSocket))

	if err := registerDocsRoutes(app, cfg); err != nil {
		return nil, err
	}

	return auditLogger, nil
}
