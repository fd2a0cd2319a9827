package controllers

import (
	"net/http"

	"mealplanner/middlewares"
	"mealplanner/services"

	"github.com/gin-gonic/gin"
)

type TodoController struct {
	Todos *services.TodoService
}

func NewTodoController(todos *services.TodoService) *TodoController {
	return &TodoController{Todos: todos}
}

// GET /todos
func (tc *TodoController) List(c *gin.Context) {
	todos, err := tc.Todos.List(c.Request.Context(), middlewares.CurrentSession(c))
	if err != nil {
		respondError(c, err, "Failed to load todos")
		return
	}
	c.JSON(http.StatusOK, todos)
}

// POST /todos
func (tc *TodoController) Add(c *gin.Context) {
	var body struct {
		Task string `json:"task" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	todo, err := tc.Todos.Add(c.Request.Context(), middlewares.CurrentSession(c), body.Task)
	if err != nil {
		respondError(c, err, "Failed to add todo")
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// PATCH /todos/:id/toggle
func (tc *TodoController) Toggle(c *gin.Context) {
	todo, err := tc.Todos.Toggle(c.Request.Context(), middlewares.CurrentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to update todo")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DELETE /todos/:id
func (tc *TodoController) Delete(c *gin.Context) {
	if err := tc.Todos.Delete(c.Request.Context(), middlewares.CurrentSession(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete todo")
		return
	}
	c.Status(http.StatusNoContent)
}
