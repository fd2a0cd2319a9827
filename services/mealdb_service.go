package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"mealplanner/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxIngredients is how many numbered strIngredientN/strMeasureN pairs a
// TheMealDB meal carries.
const maxIngredients = 20

// MaxRandomMeals caps a single refresh.
const MaxRandomMeals = 20

type MealDBService struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewMealDBService talks to a TheMealDB compatible API rooted at baseURL,
// e.g. "https://www.themealdb.com/api/json/v1/1".
func NewMealDBService(baseURL string, client *http.Client, log *zap.Logger) *MealDBService {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MealDBService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
	}
}

// get fetches path and returns the "meals" array of the response.
func (s *MealDBService) get(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	u := s.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create recipe request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("recipe api call failed", zap.String("path", path), zap.Error(err))
		return gjson.Result{}, fmt.Errorf("%w: failed to call %s: %v", ErrRecipeAPI, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: failed to read %s response: %v", ErrRecipeAPI, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("recipe api returned an error status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return gjson.Result{}, fmt.Errorf("%w: %s returned %d", ErrRecipeAPI, path, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: malformed %s response", ErrRecipeAPI, path)
	}

	return gjson.GetBytes(body, "meals"), nil
}

// FetchRandomMeal returns one random recipe.
func (s *MealDBService) FetchRandomMeal(ctx context.Context) (*models.MealDetails, error) {
	meals, err := s.get(ctx, "random.php", nil)
	if err != nil {
		return nil, err
	}
	first := meals.Get("0")
	if !first.Exists() {
		return nil, fmt.Errorf("%w: random.php returned no meal", ErrRecipeAPI)
	}
	meal := ParseMeal(first)
	return &meal, nil
}

// FetchRandomMeals issues n random requests concurrently. Any failure fails
// the whole batch; there is no partial result.
func (s *MealDBService) FetchRandomMeals(ctx context.Context, n int) ([]models.MealDetails, error) {
	if n <= 0 || n > MaxRandomMeals {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, MaxRandomMeals)
	}

	out := make([]models.MealDetails, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			meal, err := s.FetchRandomMeal(gctx)
			if err != nil {
				return err
			}
			out[i] = *meal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchMealDetails looks a recipe up by id. Unknown ids yield ErrNotFound.
func (s *MealDBService) FetchMealDetails(ctx context.Context, id string) (*models.MealDetails, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: meal id required", ErrInvalidInput)
	}
	meals, err := s.get(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	first := meals.Get("0")
	if !first.Exists() {
		return nil, ErrNotFound
	}
	meal := ParseMeal(first)
	return &meal, nil
}

// SearchMeals finds recipes whose name matches query.
func (s *MealDBService) SearchMeals(ctx context.Context, query string) ([]models.MealDetails, error) {
	meals, err := s.get(ctx, "search.php", url.Values{"s": {query}})
	if err != nil {
		return nil, err
	}
	// "meals": null when nothing matched
	results := make([]models.MealDetails, 0)
	for _, m := range meals.Array() {
		results = append(results, ParseMeal(m))
	}
	return results, nil
}

// ParseMeal maps one TheMealDB meal object.
func ParseMeal(meal gjson.Result) models.MealDetails {
	return models.MealDetails{
		IDMeal:          meal.Get("idMeal").String(),
		StrMeal:         meal.Get("strMeal").String(),
		StrMealThumb:    meal.Get("strMealThumb").String(),
		StrCategory:     meal.Get("strCategory").String(),
		StrArea:         meal.Get("strArea").String(),
		StrInstructions: meal.Get("strInstructions").String(),
		Ingredients:     ExtractIngredients(meal),
	}
}

// ExtractIngredients collects the numbered ingredient/measure pairs, skipping
// blank ingredient names.
func ExtractIngredients(meal gjson.Result) []models.Ingredient {
	out := make([]models.Ingredient, 0, maxIngredients)
	for i := 1; i <= maxIngredients; i++ {
		name := strings.TrimSpace(meal.Get(fmt.Sprintf("strIngredient%d", i)).String())
		if name == "" {
			continue
		}
		out = append(out, models.Ingredient{
			Ingredient: name,
			Measure:    strings.TrimSpace(meal.Get(fmt.Sprintf("strMeasure%d", i)).String()),
		})
	}
	return out
}
