package controllers

import (
	"net/http"

	"mealplanner/models"
	"mealplanner/utils"

	"github.com/gin-gonic/gin"
)

type timeSlotView struct {
	models.MealTimeInfo
	Label  string `json:"label,omitempty"`
	Accent string `json:"accent,omitempty"`
}

// GET /catalog/time-slots?type=breakfast
func TimeSlots(c *gin.Context) {
	slots := utils.GenerateTimeSlots()
	if q := c.Query("type"); q != "" {
		t, err := models.ParseMealType(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slots = utils.SlotsForType(t)
	}

	out := make([]timeSlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, timeSlotView{MealTimeInfo: s, Label: s.MealType.Label(), Accent: s.MealType.Accent()})
	}
	c.JSON(http.StatusOK, out)
}

// GET /catalog/meal-types
func MealTypes(c *gin.Context) {
	out := make([]gin.H, 0, len(models.MealTypes))
	for _, t := range models.MealTypes {
		out = append(out, gin.H{
			"type":   t,
			"emoji":  t.Emoji(),
			"label":  t.Label(),
			"accent": t.Accent(),
		})
	}
	c.JSON(http.StatusOK, out)
}
