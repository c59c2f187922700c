package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ameen0saad/TO-DO-List/internal/config"
	httpx "github.com/ameen0saad/TO-DO-List/internal/http"
	"github.com/ameen0saad/TO-DO-List/internal/http/handlers"
	"github.com/ameen0saad/TO-DO-List/internal/http/middleware"
	"github.com/ameen0saad/TO-DO-List/internal/infrastructure/auth"
	"github.com/ameen0saad/TO-DO-List/internal/infrastructure/database"
	"github.com/ameen0saad/TO-DO-List/internal/infrastructure/notifications"
	"github.com/ameen0saad/TO-DO-List/internal/infrastructure/repositories"
	"github.com/ameen0saad/TO-DO-List/internal/services"
)

// Run wires the service together and blocks serving HTTP.
func Run(cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.GinMode)

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.OTPSessionTTL, cfg.ResetTTL)
	mailer := notifications.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	taskRepo := repositories.NewTaskRepository(gdb)
	teamRepo := repositories.NewTeamRepository(gdb)
	teamTaskRepo := repositories.NewTeamTaskRepository(gdb)
	verificationRepo := repositories.NewVerificationTokenRepository(gdb)
	resetRepo := repositories.NewPasswordResetRepository(gdb)

	// Services
	authSvc := services.NewAuthService(userRepo, verificationRepo, resetRepo, passwordSvc, tokenSvc, mailer, rdb, cfg.BaseURL, cfg.FrontendURL)
	taskSvc := services.NewTaskService(taskRepo)
	teamSvc := services.NewTeamService(teamRepo, userRepo)
	teamTaskSvc := services.NewTeamTaskService(teamTaskRepo)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleID,
		ClientSecret: cfg.GoogleSecret,
		RedirectURL:  cfg.OAuthRedirect,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	// Handlers
	authH := handlers.NewAuthHandlers(authSvc, logger, cfg.CookieSecure, cfg.AccessTTL, cfg.OTPSessionTTL, cfg.ResetTTL)
	oauthH := handlers.NewOAuthHandlers(authSvc, oauthCfg, logger, cfg.FrontendURL, cfg.CookieSecure, cfg.AccessTTL)
	taskH := handlers.NewTaskHandlers(taskSvc, logger)
	teamH := handlers.NewTeamHandlers(teamSvc, logger)
	teamTaskH := handlers.NewTeamTaskHandlers(teamTaskSvc, logger)

	// Middleware
	protect := middleware.Protect(tokenSvc, userRepo)
	teamAccess := middleware.TeamAccess(teamSvc)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRPM)

	r := httpx.BuildRouter(logger, authH, oauthH, taskH, teamH, teamTaskH, protect, teamAccess, authLimiter)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
