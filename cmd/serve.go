package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mealplanner/config"
	"mealplanner/controllers"
	"mealplanner/routes"
	"mealplanner/services"
	"mealplanner/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := utils.NewLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		if cfg.GinMode != "" {
			gin.SetMode(cfg.GinMode)
		}

		db, err := config.InitDB(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		hub := services.NewEventHub(log)
		recipes := services.NewMealDBService(cfg.MealDBBaseURL, &http.Client{Timeout: cfg.MealDBTimeout}, log)

		// AWS backed features are optional; without a region they stay off.
		var (
			mailer      services.Mailer
			push        *services.PushService
			export      *services.ExportService
			recognition *services.RecognitionService
			notifier    services.Notifier
		)
		awsCfg, awsErr := utils.LoadAWSConfig(ctx, cfg.AWSRegion)
		if awsErr != nil {
			log.Warn("AWS features disabled", zap.Error(awsErr))
		} else {
			if cfg.SESEmail != "" {
				mailer = utils.NewSESMailerFromConfig(awsCfg, cfg.SESEmail, log)
			}
			if cfg.SNSFCMArn != "" {
				push = services.NewPushServiceFromConfig(db, awsCfg, cfg.SNSFCMArn, log)
				notifier = push
			}
			recognition = services.NewRecognitionServiceFromConfig(awsCfg, recipes)
		}

		plans := services.NewMealPlanService(db, log, hub, notifier)
		if awsErr == nil && cfg.S3Bucket != "" {
			export = services.NewExportService(plans, utils.NewS3UploaderFromConfig(awsCfg, cfg.S3Bucket, cfg.S3PublicURL))
		}
		auth := services.NewAuthService(db, log, cfg.JWTSecret, cfg.JWTTTL, hub, mailer)

		h := routes.Handlers{
			Auth:          controllers.NewAuthController(auth),
			Recipes:       controllers.NewRecipeController(recipes, services.NewSuggestionTracker(), recognition),
			Plans:         controllers.NewMealPlanController(plans, export),
			Todos:         controllers.NewTodoController(services.NewTodoService(db)),
			Favorites:     controllers.NewFavoriteController(services.NewFavoriteService(db)),
			Realtime:      controllers.NewRealtimeController(hub),
			Authenticator: auth,
			Log:           log,
		}
		if push != nil {
			h.Devices = controllers.NewDeviceController(push)
		}

		go purgeRevokedTokens(ctx, auth, log)

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           routes.SetupRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errc := make(chan error, 1)
		go func() {
			log.Info("listening", zap.String("addr", srv.Addr))
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}

func purgeRevokedTokens(ctx context.Context, auth *services.AuthService, log *zap.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := auth.PurgeRevoked(ctx)
			if err != nil {
				log.Warn("purging revoked tokens failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("purged revoked tokens", zap.Int64("count", n))
			}
		}
	}
}
