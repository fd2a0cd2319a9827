package routes

import (
	"net/http"

	"mealplanner/controllers"
	"mealplanner/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts. Optional controllers may be
// nil, in which case their routes are not registered.
type Handlers struct {
	Auth      *controllers.AuthController
	Recipes   *controllers.RecipeController
	Plans     *controllers.MealPlanController
	Todos     *controllers.TodoController
	Favorites *controllers.FavoriteController
	Devices   *controllers.DeviceController
	Realtime  *controllers.RealtimeController

	Authenticator middlewares.Authenticator
	Log           *zap.Logger
}

func SetupRouter(h Handlers) *gin.Engine {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(h.Log))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	catalog := r.Group("/catalog")
	{
		catalog.GET("/time-slots", controllers.TimeSlots)
		catalog.GET("/meal-types", controllers.MealTypes)
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(h.Authenticator, h.Log))
	{
		protected.POST("/auth/logout", h.Auth.Logout)

		recipes := protected.Group("/recipes")
		recipes.GET("/suggestion", h.Recipes.Suggestion)
		recipes.GET("/random", h.Recipes.Random)
		recipes.GET("/search", h.Recipes.Search)
		recipes.POST("/recognize", h.Recipes.Recognize)
		recipes.DELETE("/pending", h.Recipes.Abandon)
		recipes.GET("/:id", h.Recipes.Details)

		plans := protected.Group("/plans")
		plans.POST("", h.Plans.AddMeal)
		plans.GET("", h.Plans.GetRange)
		plans.GET("/:date", h.Plans.GetDay)
		plans.POST("/export", h.Plans.ExportRange)

		todos := protected.Group("/todos")
		todos.GET("", h.Todos.List)
		todos.POST("", h.Todos.Add)
		todos.PATCH("/:id/toggle", h.Todos.Toggle)
		todos.DELETE("/:id", h.Todos.Delete)

		favs := protected.Group("/favorites")
		favs.GET("", h.Favorites.List)
		favs.POST("", h.Favorites.Add)
		favs.GET("/:mealId", h.Favorites.Check)
		favs.DELETE("/:mealId", h.Favorites.Remove)

		if h.Devices != nil {
			protected.POST("/devices", h.Devices.Register)
			protected.POST("/devices/notifications", h.Devices.ToggleNotifications)
		}
		if h.Realtime != nil {
			protected.GET("/events/ws", h.Realtime.EventsWS)
		}
	}

	return r
}
