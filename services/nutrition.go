package services

import (
	"fmt"
	"math"

	"backend/models"
	"backend/utils"
)

// NutritionTotals carries the four aggregated macro values.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// SumMealFoods computes a meal's totals from its food rows. Catalog
// values are per 100 g, so each food contributes nutrient * quantity/100.
// Each total is rounded to 2 decimals; an empty list yields all zeros.
func SumMealFoods(items []models.MealFood) NutritionTotals {
	var t NutritionTotals
	for _, it := range items {
		factor := it.Quantity / 100
		t.Calories += it.Food.Calories * factor
		t.Proteins += it.Food.Proteins * factor
		t.Carbs += it.Food.Carbs * factor
		t.Fats += it.Food.Fats * factor
	}
	t.Calories = round2(t.Calories)
	t.Proteins = round2(t.Proteins)
	t.Carbs = round2(t.Carbs)
	t.Fats = round2(t.Fats)
	return t
}

// SumMeals computes plan-level daily totals from the meals' cached
// values. It reflects whatever is cached right now; it does not detect
// staleness against the food catalog.
func SumMeals(meals []models.Meal) NutritionTotals {
	var t NutritionTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Proteins += m.Proteins
		t.Carbs += m.Carbs
		t.Fats += m.Fats
	}
	t.Calories = round2(t.Calories)
	t.Proteins = round2(t.Proteins)
	t.Carbs = round2(t.Carbs)
	t.Fats = round2(t.Fats)
	return t
}

// NutritionLimits are optional caller-supplied bounds checked after a
// meal or plan recalculation.
type NutritionLimits struct {
	MinCalories *float64 `json:"min_calories,omitempty"`
	MaxCalories *float64 `json:"max_calories,omitempty"`
	MinProtein  *float64 `json:"min_protein,omitempty"`
	MaxProtein  *float64 `json:"max_protein,omitempty"`
}

// Validate checks each bound in order and reports only the first
// violation. A nil receiver means no limits were supplied.
func (l *NutritionLimits) Validate(calories, proteins float64) error {
	if l == nil {
		return nil
	}
	if l.MinCalories != nil && calories < *l.MinCalories {
		return fmt.Errorf("%w: calories below minimum of %g", utils.ErrValidation, *l.MinCalories)
	}
	if l.MaxCalories != nil && calories > *l.MaxCalories {
		return fmt.Errorf("%w: calories above maximum of %g", utils.ErrValidation, *l.MaxCalories)
	}
	if l.MinProtein != nil && proteins < *l.MinProtein {
		return fmt.Errorf("%w: protein below minimum of %g", utils.ErrValidation, *l.MinProtein)
	}
	if l.MaxProtein != nil && proteins > *l.MaxProtein {
		return fmt.Errorf("%w: protein above maximum of %g", utils.ErrValidation, *l.MaxProtein)
	}
	return nil
}
