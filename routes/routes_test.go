package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mealplanner/config"
	"mealplanner/controllers"
	"mealplanner/routes"
	"mealplanner/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const omelette = `{"meals":[{"idMeal":"52771","strMeal":"Omelette","strCategory":"Breakfast","strArea":"French",
"strInstructions":"Whisk and fry.","strMealThumb":"https://img/omelette.jpg",
"strIngredient1":"Egg","strMeasure1":"3","strIngredient2":"","strIngredient3":"Butter","strMeasure3":"1 knob"}]}`

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	mealdb *httptest.Server
	down   bool
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	api := &testAPI{t: t}
	api.mealdb = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.down {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/lookup.php" && r.URL.Query().Get("i") != "52771" {
			_, _ = w.Write([]byte(`{"meals":null}`))
			return
		}
		_, _ = w.Write([]byte(omelette))
	}))
	t.Cleanup(api.mealdb.Close)

	hub := services.NewEventHub(nil)
	recipes := services.NewMealDBService(api.mealdb.URL, api.mealdb.Client(), nil)
	plans := services.NewMealPlanService(db, nil, hub, nil)
	auth := services.NewAuthService(db, nil, []byte("test-secret"), time.Hour, hub, nil)

	api.router = routes.SetupRouter(routes.Handlers{
		Auth:          controllers.NewAuthController(auth),
		Recipes:       controllers.NewRecipeController(recipes, services.NewSuggestionTracker(), nil),
		Plans:         controllers.NewMealPlanController(plans, nil),
		Todos:         controllers.NewTodoController(services.NewTodoService(db)),
		Favorites:     controllers.NewFavoriteController(services.NewFavoriteService(db)),
		Realtime:      controllers.NewRealtimeController(hub),
		Authenticator: auth,
	})
	return api
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (a *testAPI) register(email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "Secret1", "confirm_password": "Secret1",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var res services.AuthResult
	decode(a.t, w, &res)
	return res.Token
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/auth/register", "", gin.H{"email": "nope", "password": "abc", "confirm_password": "abd"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	decode(t, w, &body)
	assert.Equal(t, []string{"Please enter a valid email address"}, body.Errors["email"])
	assert.Equal(t, []string{"Passwords do not match"}, body.Errors["confirm_password"])

	api.register("erin@example.com")
	w = api.do(http.MethodPost, "/auth/register", "", gin.H{"email": "erin@example.com", "password": "Secret1", "confirm_password": "Secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/plans/2024-06-01", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/plans/2024-06-01", "not-a-jwt", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", "", nil).Code)
}

func TestPlanFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("frank@example.com")

	w := api.do(http.MethodPost, "/plans", token, gin.H{
		"date":     "2024-06-01",
		"mealName": "Omelette",
		"timeInfo": gin.H{"time": "8:00 AM", "mealType": "breakfast"},
		"mealData": gin.H{"idMeal": "52771", "strMeal": "Omelette", "strCategory": "Breakfast", "strArea": "French"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/plans", token, gin.H{"date": "2024-06-01", "mealName": "Toast"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/plans", token, gin.H{"date": "2024-06-01", "mealName": "Cake", "timeInfo": gin.H{"time": "1:00 AM", "mealType": "brunch"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/plans/2024-06-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var day struct {
		Date  string `json:"date"`
		Meals []struct {
			Description string  `json:"description"`
			MealType    *string `json:"mealType"`
			Accent      string  `json:"accent"`
		} `json:"meals"`
	}
	decode(t, w, &day)
	require.Len(t, day.Meals, 2)
	assert.Equal(t, "🍳 [breakfast] Omelette (Breakfast, French) (8:00 AM)", day.Meals[0].Description)
	assert.Equal(t, "breakfast", *day.Meals[0].MealType)
	assert.Equal(t, "#FFB340", day.Meals[0].Accent)
	assert.Equal(t, "Toast", day.Meals[1].Description)
	assert.Nil(t, day.Meals[1].MealType)

	other := api.register("gina@example.com")
	w = api.do(http.MethodGet, "/plans/2024-06-01", other, nil)
	decode(t, w, &day)
	assert.Empty(t, day.Meals)

	w = api.do(http.MethodGet, "/plans?from=2024-06-01&to=2024-06-07", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rng struct {
		Plans map[string][]json.RawMessage `json:"plans"`
	}
	decode(t, w, &rng)
	assert.Len(t, rng.Plans["2024-06-01"], 2)

	assert.Equal(t, http.StatusServiceUnavailable, api.do(http.MethodPost, "/plans/export", token, gin.H{"from": "2024-06-01", "to": "2024-06-07"}).Code)
}

func TestRecipeRoutes(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("hana@example.com")

	w := api.do(http.MethodGet, "/recipes/suggestion", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var meal struct {
		StrMeal     string `json:"strMeal"`
		Ingredients []struct {
			Ingredient string `json:"ingredient"`
		} `json:"ingredients"`
	}
	decode(t, w, &meal)
	assert.Equal(t, "Omelette", meal.StrMeal)

	w = api.do(http.MethodGet, "/recipes/52771", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &meal)
	require.Len(t, meal.Ingredients, 2)
	assert.Equal(t, "Butter", meal.Ingredients[1].Ingredient)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/recipes/1", token, nil).Code)

	w = api.do(http.MethodGet, "/recipes/random?count=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var batch struct {
		Meals []json.RawMessage `json:"meals"`
	}
	decode(t, w, &batch)
	assert.Len(t, batch.Meals, 3)

	w = api.do(http.MethodDelete, "/recipes/pending", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	api.down = true
	w = api.do(http.MethodGet, "/recipes/suggestion", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch meal suggestion"}`, w.Body.String())

	w = api.do(http.MethodGet, "/recipes/52771", token, nil)
	assert.JSONEq(t, `{"error":"Failed to fetch meal details"}`, w.Body.String())

	assert.Equal(t, http.StatusServiceUnavailable, api.do(http.MethodPost, "/recipes/recognize", token, gin.H{"image_base64": "x"}).Code)
}

func TestTodosAndFavorites(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("ivan@example.com")

	w := api.do(http.MethodGet, "/todos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	w = api.do(http.MethodGet, "/favorites", token, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = api.do(http.MethodPost, "/todos", token, gin.H{"task": "buy eggs"})
	require.Equal(t, http.StatusCreated, w.Code)
	var todo struct {
		ID        string `json:"id"`
		Completed bool   `json:"completed"`
	}
	decode(t, w, &todo)

	w = api.do(http.MethodPatch, "/todos/"+todo.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &todo)
	assert.True(t, todo.Completed)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/todos/"+todo.ID, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/todos/"+todo.ID, token, nil).Code)

	w = api.do(http.MethodPost, "/favorites", token, gin.H{"idMeal": "52771", "strMeal": "Omelette"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = api.do(http.MethodGet, "/favorites/52771", token, nil)
	assert.JSONEq(t, `{"favorite":true}`, w.Body.String())
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/favorites/52771", token, nil).Code)
	w = api.do(http.MethodGet, "/favorites/52771", token, nil)
	assert.JSONEq(t, `{"favorite":false}`, w.Body.String())
}

func TestLogoutRevokesToken(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("jo@example.com")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/todos", token, nil).Code)

	w := api.do(http.MethodPost, "/auth/login", "", gin.H{"email": "jo@example.com", "password": "Secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var res services.AuthResult
	decode(t, w, &res)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/todos", res.Token, nil).Code)
}

func TestCatalog(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/catalog/time-slots", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slots []map[string]any
	decode(t, w, &slots)
	assert.Len(t, slots, 48)
	assert.Equal(t, "12:00 AM", slots[0]["time"])

	w = api.do(http.MethodGet, "/catalog/time-slots?type=lunch", "", nil)
	decode(t, w, &slots)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, "lunch", s["mealType"])
	}

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/catalog/time-slots?type=brunch", "", nil).Code)
}
