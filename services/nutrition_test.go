package services

import (
	"testing"

	"backend/models"
	"backend/utils"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestSumMealFoods(t *testing.T) {
	chicken := models.Food{Calories: 165, Proteins: 31, Carbs: 0, Fats: 3.6}
	rice := models.Food{Calories: 111, Proteins: 2.6, Carbs: 23, Fats: 0.9}

	items := []models.MealFood{
		{Food: chicken, Quantity: 150},
		{Food: rice, Quantity: 100},
	}

	totals := SumMealFoods(items)
	assert.InDelta(t, 358.5, totals.Calories, 1e-9)
	assert.InDelta(t, 49.1, totals.Proteins, 1e-9)
	assert.InDelta(t, 23, totals.Carbs, 1e-9)
	assert.InDelta(t, 6.3, totals.Fats, 1e-9)
}

func TestSumMealFoodsEmpty(t *testing.T) {
	totals := SumMealFoods(nil)
	assert.Equal(t, NutritionTotals{}, totals)
}

func TestSumMealFoodsRounding(t *testing.T) {
	// 33 g of a 1.234 kcal/100g food = 0.40722 -> 0.41
	food := models.Food{Calories: 1.234, Proteins: 0.555, Carbs: 0.1, Fats: 0}
	totals := SumMealFoods([]models.MealFood{{Food: food, Quantity: 33}})
	assert.InDelta(t, 0.41, totals.Calories, 1e-9)
	assert.InDelta(t, 0.18, totals.Proteins, 1e-9)
	assert.InDelta(t, 0.03, totals.Carbs, 1e-9)
	assert.InDelta(t, 0, totals.Fats, 1e-9)
}

func TestSumMeals(t *testing.T) {
	meals := []models.Meal{
		{Calories: 358.5, Proteins: 49.1, Carbs: 23, Fats: 6.3},
		{Calories: 420.25, Proteins: 18.4, Carbs: 55.5, Fats: 12.05},
	}

	totals := SumMeals(meals)
	assert.InDelta(t, 778.75, totals.Calories, 1e-9)
	assert.InDelta(t, 67.5, totals.Proteins, 1e-9)
	assert.InDelta(t, 78.5, totals.Carbs, 1e-9)
	assert.InDelta(t, 18.35, totals.Fats, 1e-9)
}

func TestSumMealsEmptyPlan(t *testing.T) {
	assert.Equal(t, NutritionTotals{}, SumMeals(nil))
}

func TestValidateLimits(t *testing.T) {
	tests := []struct {
		name     string
		limits   *NutritionLimits
		calories float64
		proteins float64
		wantErr  string
	}{
		{"nil limits pass", nil, 600, 10, ""},
		{"empty limits pass", &NutritionLimits{}, 600, 10, ""},
		{"within bounds", &NutritionLimits{MinCalories: f(400), MaxCalories: f(800)}, 600, 10, ""},
		{"below min calories", &NutritionLimits{MinCalories: f(700)}, 600, 10, "calories below minimum of 700"},
		{"above max calories", &NutritionLimits{MaxCalories: f(500)}, 600, 10, "calories above maximum of 500"},
		{"below min protein", &NutritionLimits{MinProtein: f(30)}, 600, 10, "protein below minimum of 30"},
		{"above max protein", &NutritionLimits{MaxProtein: f(5)}, 600, 10, "protein above maximum of 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.Validate(tt.calories, tt.proteins)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, utils.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateLimitsReportsFirstViolationOnly(t *testing.T) {
	limits := &NutritionLimits{
		MinCalories: f(1000), // violated
		MaxProtein:  f(5),    // also violated, but checked later
	}
	err := limits.Validate(600, 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "calories below minimum")
	assert.NotContains(t, err.Error(), "protein")
}
