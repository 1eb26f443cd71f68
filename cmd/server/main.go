package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/lawrencejr5/habibee/internal/config"
	"github.com/lawrencejr5/habibee/internal/database"
	"github.com/lawrencejr5/habibee/internal/handlers"
	"github.com/lawrencejr5/habibee/internal/jobs"
	"github.com/lawrencejr5/habibee/internal/repository"
	cronjobs "github.com/lawrencejr5/habibee/internal/scheduler"
	"github.com/lawrencejr5/habibee/internal/services"
	"github.com/lawrencejr5/habibee/pkg/dateutil"
	"github.com/lawrencejr5/habibee/pkg/logger"
	"github.com/lawrencejr5/habibee/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	weeklyRepo := repository.NewWeeklyStatRepository(db)
	subRepo := repository.NewSubHabitRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	habitService := services.NewHabitService(habitRepo, entryRepo, subRepo)
	streakService := services.NewStreakService(habitRepo, entryRepo, userRepo, weeklyRepo)
	timerService := services.NewTimerService(habitRepo, streakService)
	subHabitService := services.NewSubHabitService(subRepo, habitRepo, streakService, cfg.SubHabitAutoComplete)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	habitHandler := handlers.NewHabitHandler(habitService)
	streakHandler := handlers.NewStreakHandler(streakService, cfg.Location)
	timerHandler := handlers.NewTimerHandler(timerService, cfg.Location)
	subHabitHandler := handlers.NewSubHabitHandler(subHabitService, cfg.Location)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")

	// Habit routes: CRUD, completion, timer and the sub-habit checklist
	protectedRoutes := router.PathPrefix("/habits").Subrouter()
	protectedRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedRoutes.HandleFunc("", habitHandler.CreateHabitHandler).Methods("POST")
	protectedRoutes.HandleFunc("", habitHandler.GetHabitsHandler).Methods("GET")
	protectedRoutes.HandleFunc("/{id}", habitHandler.GetHabitHandler).Methods("GET")
	protectedRoutes.HandleFunc("/{id}", habitHandler.UpdateHabitHandler).Methods("PATCH")
	protectedRoutes.HandleFunc("/{id}", habitHandler.DeleteHabitHandler).Methods("DELETE")
	protectedRoutes.HandleFunc("/{id}/entries", habitHandler.GetHabitEntriesHandler).Methods("GET")
	protectedRoutes.HandleFunc("/{id}/complete", streakHandler.CompleteHabitHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/timer/start", timerHandler.StartTimerHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/timer/pause", timerHandler.PauseTimerHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/timer/finish", timerHandler.FinishTimerHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/timer", timerHandler.SetTimerHandler).Methods("PATCH")
	protectedRoutes.HandleFunc("/{id}/subhabits", subHabitHandler.CreateSubHabitHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/subhabits", subHabitHandler.GetSubHabitsHandler).Methods("GET")
	protectedRoutes.HandleFunc("/{id}/subhabits/reset", subHabitHandler.ResetSubHabitsHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/subhabits/{subId}/toggle", subHabitHandler.ToggleSubHabitHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}/subhabits/{subId}", subHabitHandler.DeleteSubHabitHandler).Methods("DELETE")

	// Streak routes
	protectedStreakRoutes := router.PathPrefix("/streaks").Subrouter()
	protectedStreakRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedStreakRoutes.HandleFunc("/reconcile", streakHandler.ReconcileStreaksHandler).Methods("POST")

	// Stats routes
	protectedStatsRoutes := router.PathPrefix("/stats").Subrouter()
	protectedStatsRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedStatsRoutes.HandleFunc("/weekly", streakHandler.GetWeeklyStatsHandler).Methods("GET")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Nightly streak decay sweep for users who never foreground the app
	sweeper := jobs.NewStreakSweeper(userRepo, streakService, func() string {
		return dateutil.Today(cfg.Location)
	})
	cronjobs.StartStreakCronJobs(sweeper)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
