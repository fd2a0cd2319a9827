package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"mealplanner/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionAPI is the part of the Rekognition client used here.
type RekognitionAPI interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RecipeSearcher finds recipes by name.
type RecipeSearcher interface {
	SearchMeals(ctx context.Context, query string) ([]models.MealDetails, error)
}

type RecognitionService struct {
	client  RekognitionAPI
	recipes RecipeSearcher
}

func NewRecognitionService(client RekognitionAPI, recipes RecipeSearcher) *RecognitionService {
	return &RecognitionService{client: client, recipes: recipes}
}

func NewRecognitionServiceFromConfig(cfg aws.Config, recipes RecipeSearcher) *RecognitionService {
	return NewRecognitionService(rekognition.NewFromConfig(cfg), recipes)
}

// decodeDataURI accepts "data:image/...;base64,<data>".
func decodeDataURI(uri string) ([]byte, error) {
	meta, data, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, "data:image") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: invalid data URI", ErrInvalidInput)
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return b, nil
}

// RecognizeLabels returns the top labels for a data URI image.
func (r *RecognitionService) RecognizeLabels(ctx context.Context, dataURI string) ([]string, error) {
	img, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}

// Recognition is the label that produced matches and the recipes found.
type Recognition struct {
	Labels  []string             `json:"labels"`
	Matched string               `json:"matched,omitempty"`
	Meals   []models.MealDetails `json:"meals"`
}

// Recognize labels a dish photo and searches recipes for the first label that
// finds anything.
func (r *RecognitionService) Recognize(ctx context.Context, dataURI string) (*Recognition, error) {
	labels, err := r.RecognizeLabels(ctx, dataURI)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels detected")
	}
	res := &Recognition{Labels: labels, Meals: []models.MealDetails{}}
	for _, l := range labels {
		meals, err := r.recipes.SearchMeals(ctx, l)
		if err != nil {
			return nil, err
		}
		if len(meals) > 0 {
			res.Matched = l
			res.Meals = meals
			break
		}
	}
	return res, nil
}
