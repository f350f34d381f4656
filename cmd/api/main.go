package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizpack-api/internal/config"
	"github.com/yourusername/quizpack-api/internal/handler"
	"github.com/yourusername/quizpack-api/internal/middleware"
	pgRepo "github.com/yourusername/quizpack-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizpack-api/internal/repository/redis"
	"github.com/yourusername/quizpack-api/internal/service"
	ws "github.com/yourusername/quizpack-api/internal/websocket"
	"github.com/yourusername/quizpack-api/pkg/auth"
	"github.com/yourusername/quizpack-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Ошибка загрузки конфигурации: %v", err)
		os.Exit(1)
	}

	// Подключаемся к PostgreSQL и применяем миграции
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		os.Exit(1)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Ошибка применения миграций: %v", err)
		os.Exit(1)
	}

	// Подключаемся к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Ошибка подключения к Redis: %v", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Репозитории
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	notificationRepo := pgRepo.NewNotificationRepo(db)
	userRepo := pgRepo.NewUserRepo(db)
	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Ошибка создания репозитория кеша: %v", err)
		os.Exit(1)
	}

	// JWT и WebSocket-хаб
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Ошибка инициализации JWT: %v", err)
		os.Exit(1)
	}
	hub := ws.NewHub()
	go hub.Run()

	// Email-уведомления отключаются пустым ключом API
	var notifier service.Notifier = service.NoopNotifier{}
	if cfg.Email.ResendAPIKey != "" {
		notifier = service.NewResendNotifier(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)
		log.Println("Email-уведомления включены (Resend)")
	}

	// Сервисы
	feedService := service.NewFeedService(
		quizRepo, questionRepo, answerRepo, cacheRepo,
		time.Duration(cfg.Feed.CacheTTLSec)*time.Second,
	)
	answerService := service.NewAnswerService(
		answerRepo, questionRepo, quizRepo, userRepo, notificationRepo,
		feedService, hub, notifier,
	)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(quizRepo, questionRepo, cacheRepo, hub)
	exportService := service.NewExportService(quizRepo, questionRepo, answerRepo, notificationRepo, userRepo)

	// Обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	quizHandler := handler.NewQuizHandler(quizService, exportService)
	feedHandler := handler.NewFeedHandler(feedService, userService)
	answerHandler := handler.NewAnswerHandler(answerService)
	wsHandler := handler.NewWSHandler(hub, jwtService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.Default()

	if os.Getenv("GIN_MODE") == "release" {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Предупреждение: не удалось настроить trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Предупреждение: не удалось настроить trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081", "http://localhost:19006"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.AuthRateLimitConfig()))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Профиль
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/me", userHandler.UpdateMe)
			users.POST("/me/push-token", userHandler.SetPushToken)
			users.GET("/:id", middleware.ExtractUintParam("id", "userID"), userHandler.GetUser)
		}

		// Каталог паков
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.GET("", quizHandler.GetCatalog)
			quizzes.GET("/:id", middleware.ExtractUintParam("id", "quizID"), quizHandler.GetQuiz)

			admin := quizzes.Group("")
			admin.Use(authMiddleware.AdminOnly())
			{
				admin.POST("", quizHandler.CreateQuiz)
				admin.PATCH("/:id", middleware.ExtractUintParam("id", "quizID"), quizHandler.UpdateQuiz)
				admin.DELETE("/:id", middleware.ExtractUintParam("id", "quizID"), quizHandler.DeleteQuiz)
				admin.GET("/export", quizHandler.ExportCompletions)
			}
		}

		// Лента и ответы
		feed := api.Group("/feed")
		feed.Use(authMiddleware.RequireAuth())
		{
			feed.GET("", feedHandler.GetFeed)
		}

		answers := api.Group("/answers")
		answers.Use(authMiddleware.RequireAuth(), rateLimiter.Limit(middleware.AnswerRateLimitConfig()))
		{
			answers.POST("/self", answerHandler.SubmitSelfAnswer)
			answers.POST("/friend", answerHandler.SubmitFriendAnswer)
		}
	}

	// WebSocket: токен передаётся query-параметром
	router.GET("/ws", wsHandler.HandleConnection)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Сервер запущен на порту %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Ошибка запуска сервера: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Остановка сервера...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Принудительная остановка сервера: %v", err)
		os.Exit(1)
	}

	log.Println("Сервер остановлен")
}
