package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Mawaqit/controllers"
	"github.com/Mawaqit/initializers"
	"github.com/Mawaqit/middlewares"
	"github.com/Mawaqit/services"
)

func main() {
	log.SetReportCaller(true)
	initializers.LoadEnv()

	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	if err := controllers.RegisterBindingValidators(); err != nil {
		log.Fatal("failed to register validators", "err", err)
	}

	ctx := context.Background()

	var fb *initializers.Firebase
	if cfg.NeedsFirebase() || cfg.FirebaseStorageBucket != "" {
		if fb, err = initializers.InitFirebase(ctx, cfg); err != nil {
			log.Fatal("failed to initialize Firebase", "err", err)
		}
	}

	backends, err := initializers.OpenBackends(ctx, cfg, fb)
	if err != nil {
		log.Fatal("failed to open store", "backend", cfg.StoreBackend, "err", err)
	}
	defer backends.Close()

	var verifier middlewares.TokenVerifier
	var messenger services.Messenger
	var resetLinks services.ResetLinkGenerator

	if fb != nil {
		authClient, err := fb.Auth(ctx)
		if err != nil {
			log.Fatal("failed to create auth client", "err", err)
		}
		resetLinks = authClient
		if cfg.AuthMode == initializers.AuthFirebase {
			verifier = middlewares.NewFirebaseVerifier(authClient)
		}

		fcmClient, err := fb.Messaging(ctx)
		if err != nil {
			log.Error("push notifications disabled", "err", err)
		} else {
			messenger = fcmClient
		}
	}
	if cfg.AuthMode == initializers.AuthHMAC {
		verifier = middlewares.NewHMACVerifier(cfg.Secret)
	}

	var generator services.ContentGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := services.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal("failed to create Gemini client", "err", err)
		}
		generator = client.Models
	} else {
		log.Warn("GEMINI_API_KEY not set, verse suggestions disabled")
	}

	email := services.NewEmailService(cfg.ResendAPIKey, cfg.ResendFromEmail)
	if email == nil {
		log.Warn("RESEND_API_KEY not set, password reset emails disabled")
	}

	tips, err := services.NewSalahTipsService()
	if err != nil {
		log.Fatal("failed to load salah tips", "err", err)
	}

	records := services.NewPrayerRecordService(backends.Records, cfg.StrictTransitions)
	stats := services.NewStatisticsService(backends.Records, nil, cfg.Location, services.StatisticsConfig{
		BatchSize:      cfg.StatsBatchSize,
		MaxConcurrency: cfg.StatsMaxConcurrency,
	})
	profiles := services.NewProfileService(backends.Profiles, backends.Images)
	inspirations := services.NewInspirationService(backends.Inspirations)
	push := services.NewPushNotificationService(messenger)
	verses := services.NewVerseSuggestionService(generator, cfg.GeminiModel)
	resets := services.NewPasswordResetService(resetLinks, email)

	prayerController := controllers.NewPrayerController(records, cfg.Today)
	statisticsController := controllers.NewStatisticsController(stats)
	userController := controllers.NewUserController(profiles, push)
	inspirationController := controllers.NewInspirationController(inspirations, tips, verses, cfg.Today)
	notificationController := controllers.NewNotificationController(inspirations, push, cfg.Today)
	passwordResetController := controllers.NewPasswordResetController(resets)

	router := gin.Default()
	limiter := middlewares.NewRateLimiter()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/ping", limiter.Middleware("ping", 2, 2, getKey), controllers.Ping)
	router.POST("/auth/forgot-password", limiter.Middleware("forgot-password", 2, 2, getKey), passwordResetController.ForgotPassword)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth(verifier))
	auth.Use(limiter.Middleware("auth", 10, 10, getKey))
	{
		auth.GET("/inspiration/daily", inspirationController.GetDailyInspiration)
		auth.GET("/salah-tips", inspirationController.GetSalahTips)
		auth.GET("/salah-tips/:tip_id", inspirationController.GetSalahTip)
		auth.POST("/verse-suggestion", limiter.Middleware("verse-suggestion", rate.Limit(0.2), 2, getKey), inspirationController.SuggestVerse)

		users := auth.Group("/users/:user_id")
		users.Use(middlewares.CheckUserAccess)
		{
			users.GET("/prayers/:date", prayerController.GetPrayerRecord)
			users.PATCH("/prayers/:date/:prayer_name", prayerController.UpdatePrayerStatus)
			users.GET("/stats", statisticsController.GetStatistics)

			users.GET("/profile", userController.GetUserProfile)
			users.PATCH("/profile", userController.UpdateUserProfile)
			users.POST("/profile/image", userController.UploadProfileImage)
			users.DELETE("/profile/image/:file_name", userController.DeleteProfileImage)

			users.POST("/push-token", userController.StorePushToken)
		}

		admin := auth.Group("/notifications")
		admin.Use(middlewares.CheckAdmin)
		{
			admin.POST("/daily-inspiration", notificationController.SendDailyInspiration)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
