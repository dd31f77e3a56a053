package services

import (
	"testing"

	"backend/models"
	"backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodListFilters(t *testing.T) {
	fx := setupFixture(t)
	svc := NewFoodService(fx.db)

	foods, total, err := svc.List(FoodFilter{Search: "chicken"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, foods, 1)
	assert.Equal(t, "Chicken breast", foods[0].Name)

	foods, total, err = svc.List(FoodFilter{Category: "Grains"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "White rice", foods[0].Name)

	_, total, err = svc.List(FoodFilter{MinProt: f(20)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total) // only chicken has >= 20 g protein

	_, total, err = svc.List(FoodFilter{MaxCal: f(50)})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestFoodListPagination(t *testing.T) {
	fx := setupFixture(t)
	svc := NewFoodService(fx.db)

	foods, total, err := svc.List(FoodFilter{Take: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, foods, 1)

	second, _, err := svc.List(FoodFilter{Take: 1, Skip: 1})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotEqual(t, foods[0].ID, second[0].ID)
}

func TestFoodCategories(t *testing.T) {
	fx := setupFixture(t)
	svc := NewFoodService(fx.db)

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Grains", "Meat"}, categories)
}

func TestPopularRanksByUsage(t *testing.T) {
	fx := setupFixture(t)
	planSvc := NewMealPlanService(fx.db)
	svc := NewFoodService(fx.db)

	// rice used twice, chicken once
	_, err := planSvc.AddMeal(fx.nutritionist, fx.lunchInput())
	require.NoError(t, err)
	_, err = planSvc.AddMeal(fx.nutritionist, MealInput{
		MealPlanID: fx.plan.ID,
		Type:       models.MealDinner,
		Name:       "Rice again",
		Foods:      []MealFoodInput{{FoodID: fx.rice.ID, Quantity: 80}},
	})
	require.NoError(t, err)

	popular, err := svc.Popular(10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, fx.rice.ID, popular[0].ID)
	assert.Equal(t, int64(2), popular[0].UsageCount)
	assert.Equal(t, fx.chicken.ID, popular[1].ID)
	assert.Equal(t, int64(1), popular[1].UsageCount)
}

func TestSearchByNutrition(t *testing.T) {
	fx := setupFixture(t)
	svc := NewFoodService(fx.db)

	foods, err := svc.SearchByNutrition(NutritionSearch{
		Calories: f(160), CaloriesTolerance: 20,
	})
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Chicken breast", foods[0].Name)

	_, err = svc.SearchByNutrition(NutritionSearch{})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestDeleteFoodBlockedWhileReferenced(t *testing.T) {
	fx := setupFixture(t)
	planSvc := NewMealPlanService(fx.db)
	svc := NewFoodService(fx.db)

	_, err := planSvc.AddMeal(fx.nutritionist, fx.lunchInput())
	require.NoError(t, err)

	err = svc.Delete(fx.nutritionist, fx.chicken.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)

	// once no meal references it any more, deletion goes through
	require.NoError(t, fx.db.Where("food_id = ?", fx.chicken.ID).Delete(&models.MealFood{}).Error)
	assert.NoError(t, svc.Delete(fx.nutritionist, fx.chicken.ID))
}

func TestFoodOwnershipEnforced(t *testing.T) {
	fx := setupFixture(t)
	svc := NewFoodService(fx.db)

	other := Actor{ID: fx.nutritionist.ID + 100, Role: models.RoleNutritionist}
	_, err := svc.Update(other, fx.chicken.ID, FoodInput{Name: "Stolen", Calories: 1})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = svc.Delete(other, fx.chicken.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
