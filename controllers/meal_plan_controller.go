package controllers

import (
	"net/http"

	"mealplanner/middlewares"
	"mealplanner/services"

	"github.com/gin-gonic/gin"
)

type MealPlanController struct {
	Plans  *services.MealPlanService
	Export *services.ExportService
}

func NewMealPlanController(plans *services.MealPlanService, export *services.ExportService) *MealPlanController {
	return &MealPlanController{Plans: plans, Export: export}
}

// POST /plans
func (mc *MealPlanController) AddMeal(c *gin.Context) {
	var in services.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middlewares.CurrentSession(c)
	id, err := mc.Plans.Save(c.Request.Context(), sess, in)
	if err != nil {
		respondError(c, err, "Failed to save meal. Please try again.")
		return
	}

	// the day is reloaded rather than patched so the response mirrors storage
	entries, err := mc.Plans.PlanForDate(c.Request.Context(), sess, in.Date)
	if err != nil {
		respondError(c, err, "Failed to load meals")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "date": in.Date, "meals": entries})
}

// GET /plans/:date
func (mc *MealPlanController) GetDay(c *gin.Context) {
	date := c.Param("date")
	entries, err := mc.Plans.PlanForDate(c.Request.Context(), middlewares.CurrentSession(c), date)
	if err != nil {
		respondError(c, err, "Failed to load meals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "meals": entries})
}

// GET /plans?from=2024-06-01&to=2024-06-07
func (mc *MealPlanController) GetRange(c *gin.Context) {
	plans, err := mc.Plans.PlanForRange(c.Request.Context(), middlewares.CurrentSession(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "Failed to load meals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// POST /plans/export  { "from": "...", "to": "..." }
func (mc *MealPlanController) ExportRange(c *gin.Context) {
	if mc.Export == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export not configured"})
		return
	}
	var body struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := mc.Export.Export(c.Request.Context(), middlewares.CurrentSession(c), body.From, body.To)
	if err != nil {
		respondError(c, err, "Failed to export meal plan")
		return
	}
	c.JSON(http.StatusCreated, res)
}
