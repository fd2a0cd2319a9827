package controllers

import (
	"net/http"

	"mealplanner/middlewares"
	"mealplanner/models"
	"mealplanner/services"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Favorites *services.FavoriteService
}

func NewFavoriteController(favs *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Favorites: favs}
}

// GET /favorites
func (fc *FavoriteController) List(c *gin.Context) {
	favs, err := fc.Favorites.List(c.Request.Context(), middlewares.CurrentSession(c))
	if err != nil {
		respondError(c, err, "Failed to load favorites")
		return
	}
	c.JSON(http.StatusOK, favs)
}

// POST /favorites
func (fc *FavoriteController) Add(c *gin.Context) {
	var meal models.MealData
	if err := c.ShouldBindJSON(&meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fav, err := fc.Favorites.Add(c.Request.Context(), middlewares.CurrentSession(c), meal)
	if err != nil {
		respondError(c, err, "Failed to add favorite")
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// GET /favorites/:mealId
func (fc *FavoriteController) Check(c *gin.Context) {
	ok, err := fc.Favorites.IsFavorite(c.Request.Context(), middlewares.CurrentSession(c), c.Param("mealId"))
	if err != nil {
		respondError(c, err, "Failed to load favorites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": ok})
}

// DELETE /favorites/:mealId
func (fc *FavoriteController) Remove(c *gin.Context) {
	if err := fc.Favorites.Remove(c.Request.Context(), middlewares.CurrentSession(c), c.Param("mealId")); err != nil {
		respondError(c, err, "Failed to remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}
