package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/hoanglm/quizforge/config"
	"github.com/hoanglm/quizforge/database"
	_ "github.com/hoanglm/quizforge/docs" // Swagger docs - auto-generated
	"github.com/hoanglm/quizforge/internal/controller"
	"github.com/hoanglm/quizforge/internal/logger"
	"github.com/hoanglm/quizforge/internal/model"
	"github.com/hoanglm/quizforge/internal/repository"
	"github.com/hoanglm/quizforge/internal/service"
	"github.com/hoanglm/quizforge/internal/session"
	"github.com/hoanglm/quizforge/internal/trivia"
)

// @title QuizForge API
// @version 1.0
// @description Session-authenticated trivia quiz service: start a quiz, answer, submit for scoring, browse history and the leaderboard.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewTriviaClient,
			NewSessionStore,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewAttemptRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAccountService,
			service.NewStatsService,
			func(client *trivia.Client) service.SelectionService {
				return service.NewSelectionService(client)
			},
			service.NewQuizService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewQuizController,
			controller.NewProfileController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func NewTriviaClient(cfg *config.Config) *trivia.Client {
	return trivia.NewClient(cfg.Trivia.APIURL, cfg.Trivia.Timeout)
}

// NewSessionStore picks Redis when configured, in-memory otherwise.
func NewSessionStore(cfg *config.Config) session.Store {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis session store")
		return session.NewRedisStore(client, cfg.Session.TTL)
	}
	log.Info().Msg("Using in-memory session store")
	return session.NewMemoryStore(cfg.Session.TTL)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	store session.Store,
	authCtrl *controller.AuthController,
	quizCtrl *controller.QuizController,
	profileCtrl *controller.ProfileController,
) {
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)

		authed := api.Group("")
		authed.Use(controller.SessionRequired(store))
		{
			quizGroup := authed.Group("/quiz")
			quizGroup.POST("/start", quizCtrl.StartQuiz)
			quizGroup.POST("/answer", quizCtrl.SubmitAnswer)
			quizGroup.POST("/submit", quizCtrl.SubmitQuiz)
			quizGroup.GET("/result", quizCtrl.GetLastResult)
			quizGroup.POST("/reset", quizCtrl.ResetQuiz)

			authed.GET("/profile/stats", profileCtrl.GetProfileStats)
			authed.GET("/leaderboard", profileCtrl.GetLeaderboard)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizForge server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Attempt{},
		&model.AttemptAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
