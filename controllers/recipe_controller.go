package controllers

import (
	"context"
	"net/http"
	"strconv"

	"mealplanner/middlewares"
	"mealplanner/services"

	"github.com/gin-gonic/gin"
)

const (
	fetchSuggestion = "suggestion"
	fetchDetail     = "detail"
	fetchRefresh    = "refresh"
)

type RecipeController struct {
	Recipes     *services.MealDBService
	Tracker     *services.SuggestionTracker
	Recognition *services.RecognitionService
}

func NewRecipeController(recipes *services.MealDBService, tracker *services.SuggestionTracker, rec *services.RecognitionService) *RecipeController {
	return &RecipeController{Recipes: recipes, Tracker: tracker, Recognition: rec}
}

func trackerKey(c *gin.Context, kind string) string {
	return middlewares.CurrentSession(c).UserID + "/" + kind
}

// tracked runs fetch as the newest request of its kind for the caller. A
// result that was superseded meanwhile is dropped.
func (rc *RecipeController) tracked(c *gin.Context, kind string, fetch func(ctx context.Context) (any, error)) (any, error) {
	ctx, tk := rc.Tracker.Begin(c.Request.Context(), trackerKey(c, kind))
	out, err := fetch(ctx)
	if ferr := rc.Tracker.Finish(tk); ferr != nil {
		return nil, ferr
	}
	return out, err
}

// GET /recipes/suggestion
func (rc *RecipeController) Suggestion(c *gin.Context) {
	meal, err := rc.tracked(c, fetchSuggestion, func(ctx context.Context) (any, error) {
		return rc.Recipes.FetchRandomMeal(ctx)
	})
	if err != nil {
		respondError(c, err, "Failed to fetch meal suggestion")
		return
	}
	c.JSON(http.StatusOK, meal)
}

// GET /recipes/random?count=6
func (rc *RecipeController) Random(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "6"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a number"})
		return
	}
	meals, err := rc.tracked(c, fetchRefresh, func(ctx context.Context) (any, error) {
		return rc.Recipes.FetchRandomMeals(ctx, count)
	})
	if err != nil {
		respondError(c, err, "Failed to fetch meals. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GET /recipes/:id
func (rc *RecipeController) Details(c *gin.Context) {
	meal, err := rc.tracked(c, fetchDetail, func(ctx context.Context) (any, error) {
		return rc.Recipes.FetchMealDetails(ctx, c.Param("id"))
	})
	if err != nil {
		respondError(c, err, "Failed to fetch meal details")
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /recipes/pending drops every in-flight fetch of the caller, e.g.
// when the suggestion dialog is closed.
func (rc *RecipeController) Abandon(c *gin.Context) {
	abandoned := 0
	for _, kind := range []string{fetchSuggestion, fetchDetail, fetchRefresh} {
		if rc.Tracker.Abandon(trackerKey(c, kind)) {
			abandoned++
		}
	}
	c.JSON(http.StatusOK, gin.H{"abandoned": abandoned})
}

// GET /recipes/search?q=pasta
func (rc *RecipeController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	meals, err := rc.Recipes.SearchMeals(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to search meals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// POST /recipes/recognize  { "image_base64": "data:image/jpeg;base64,..." }
func (rc *RecipeController) Recognize(c *gin.Context) {
	if rc.Recognition == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image recognition not configured"})
		return
	}
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	out, err := rc.Recognition.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		respondError(c, err, "Failed to recognize meal")
		return
	}
	c.JSON(http.StatusOK, out)
}
