package httpx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ameen0saad/TO-DO-List/internal/http/handlers"
	"github.com/ameen0saad/TO-DO-List/internal/http/middleware"
)

// BuildRouter wires all routes. protect authenticates the caller; teamAccess
// additionally resolves :teamId and verifies membership.
func BuildRouter(
	logger *zap.Logger,
	authH *handlers.AuthHandlers,
	oauthH *handlers.OAuthHandlers,
	taskH *handlers.TaskHandlers,
	teamH *handlers.TeamHandlers,
	teamTaskH *handlers.TeamTaskHandlers,
	protect gin.HandlerFunc,
	teamAccess gin.HandlerFunc,
	authLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/signup", authLimiter.Handler(), authH.Signup)
	users.POST("/login", authLimiter.Handler(), authH.Login)
	users.GET("/logout", authH.Logout)
	users.POST("/forgetPassword", authLimiter.Handler(), authH.ForgotPassword)
	users.POST("/verifyOtp", authLimiter.Handler(), authH.VerifyOTP)
	users.PATCH("/resetPassword", authH.ResetPassword)
	users.GET("/:id/verifyEmail/:token", authH.VerifyEmail)
	users.GET("/auth/google", oauthH.GoogleLogin)
	users.GET("/auth/google/callback", oauthH.GoogleCallback)
	users.GET("/me", protect, authH.Me)
	users.PATCH("/updatePassword", protect, authH.UpdatePassword)

	tasks := v1.Group("/tasks", protect)
	tasks.GET("", taskH.List)
	tasks.POST("", taskH.Create)
	tasks.GET("/:id", taskH.Get)
	tasks.PATCH("/:id", taskH.Update)
	tasks.DELETE("/:id", taskH.Delete)

	teams := v1.Group("/teams", protect)
	teams.GET("", teamH.List)
	teams.POST("", teamH.Create)

	team := teams.Group("/:teamId", teamAccess)
	team.GET("", teamH.Get)
	team.PATCH("", teamH.Update)
	team.DELETE("", teamH.Delete)
	team.PATCH("/removeMembers", teamH.RemoveMembers)
	team.DELETE("/leave", teamH.Leave)
	team.PATCH("/transferOwnership", teamH.TransferOwnership)

	teamTasks := v1.Group("/teamTasks/:teamId", protect, teamAccess)
	teamTasks.GET("", teamTaskH.List)
	teamTasks.POST("", teamTaskH.Create)
	teamTasks.GET("/:id", teamTaskH.Get)
	teamTasks.PATCH("/:id", teamTaskH.Update)
	teamTasks.DELETE("/:id", teamTaskH.Delete)

	return r
}
