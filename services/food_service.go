package services

import (
	"fmt"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type FoodService struct{ db *gorm.DB }

func NewFoodService(db *gorm.DB) *FoodService { return &FoodService{db: db} }

// FoodFilter mirrors the query parameters of GET /api/foods.
type FoodFilter struct {
	Search   string   `form:"search"`
	Category string   `form:"category"`
	MinCal   *float64 `form:"minCalories"`
	MaxCal   *float64 `form:"maxCalories"`
	MinProt  *float64 `form:"minProteins"`
	MaxProt  *float64 `form:"maxProteins"`
	MinCarbs *float64 `form:"minCarbs"`
	MaxCarbs *float64 `form:"maxCarbs"`
	MinFats  *float64 `form:"minFats"`
	MaxFats  *float64 `form:"maxFats"`
	Skip     int      `form:"skip"`
	Take     int      `form:"take"`
}

// Normalize clamps paging to the served range; controllers call it too
// so the pagination envelope reflects the effective page size.
func (f *FoodFilter) Normalize() {
	if f.Take <= 0 {
		f.Take = 20
	}
	if f.Take > 100 {
		f.Take = 100
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
}

func rangeClause(q *gorm.DB, column string, min, max *float64) *gorm.DB {
	if min != nil {
		q = q.Where(column+" >= ?", *min)
	}
	if max != nil {
		q = q.Where(column+" <= ?", *max)
	}
	return q
}

func (s *FoodService) List(filter FoodFilter) ([]models.Food, int64, error) {
	filter.Normalize()

	q := s.db.Model(&models.Food{})
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = rangeClause(q, "calories", filter.MinCal, filter.MaxCal)
	q = rangeClause(q, "proteins", filter.MinProt, filter.MaxProt)
	q = rangeClause(q, "carbs", filter.MinCarbs, filter.MaxCarbs)
	q = rangeClause(q, "fats", filter.MinFats, filter.MaxFats)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []models.Food
	err := q.Order("name ASC").Offset(filter.Skip).Limit(filter.Take).Find(&foods).Error
	return foods, total, err
}

func (s *FoodService) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Food{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// PopularFood is a catalog row plus how many meals reference it.
type PopularFood struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category,omitempty"`
	Calories   float64 `json:"calories"`
	Proteins   float64 `json:"proteins"`
	Carbs      float64 `json:"carbs"`
	Fats       float64 `json:"fats"`
	Fiber      float64 `json:"fiber,omitempty"`
	UsageCount int64   `json:"usage_count"`
}

// Popular ranks foods by how many meal rows use them.
func (s *FoodService) Popular(limit int) ([]PopularFood, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []PopularFood
	err := s.db.Table("foods").
		Select("foods.id, foods.name, foods.category, foods.calories, foods.proteins, foods.carbs, foods.fats, foods.fiber, COUNT(meal_foods.id) AS usage_count").
		Joins("JOIN meal_foods ON meal_foods.food_id = foods.id AND meal_foods.deleted_at IS NULL").
		Where("foods.deleted_at IS NULL").
		Group("foods.id").
		Order("usage_count DESC, foods.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// NutritionSearch holds target±tolerance pairs; only supplied targets
// constrain the query.
type NutritionSearch struct {
	Calories          *float64 `form:"calories"`
	CaloriesTolerance float64  `form:"caloriesTolerance"`
	Proteins          *float64 `form:"proteins"`
	ProteinsTolerance float64  `form:"proteinsTolerance"`
	Carbs             *float64 `form:"carbs"`
	CarbsTolerance    float64  `form:"carbsTolerance"`
	Fats              *float64 `form:"fats"`
	FatsTolerance     float64  `form:"fatsTolerance"`
}

func betweenClause(q *gorm.DB, column string, target *float64, tolerance float64) *gorm.DB {
	if target == nil {
		return q
	}
	if tolerance < 0 {
		tolerance = 0
	}
	return q.Where(column+" BETWEEN ? AND ?", *target-tolerance, *target+tolerance)
}

// SearchByNutrition finds foods whose profile is close to the target.
func (s *FoodService) SearchByNutrition(search NutritionSearch) ([]models.Food, error) {
	if search.Calories == nil && search.Proteins == nil && search.Carbs == nil && search.Fats == nil {
		return nil, fmt.Errorf("%w: at least one nutrient target is required", utils.ErrValidation)
	}

	q := s.db.Model(&models.Food{})
	q = betweenClause(q, "calories", search.Calories, search.CaloriesTolerance)
	q = betweenClause(q, "proteins", search.Proteins, search.ProteinsTolerance)
	q = betweenClause(q, "carbs", search.Carbs, search.CarbsTolerance)
	q = betweenClause(q, "fats", search.Fats, search.FatsTolerance)

	var foods []models.Food
	err := q.Order("name ASC").Limit(50).Find(&foods).Error
	return foods, err
}

func (s *FoodService) Get(id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		return nil, fmt.Errorf("%w: food", utils.ErrNotFound)
	}
	return &food, nil
}

// FoodInput is the create/update payload.
type FoodInput struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Calories float64 `json:"calories" binding:"min=0"`
	Proteins float64 `json:"proteins" binding:"min=0"`
	Carbs    float64 `json:"carbs" binding:"min=0"`
	Fats     float64 `json:"fats" binding:"min=0"`
	Fiber    float64 `json:"fiber" binding:"min=0"`
}

func (s *FoodService) Create(actor Actor, input FoodInput) (*models.Food, error) {
	food := models.Food{
		Name:      input.Name,
		Category:  input.Category,
		Calories:  input.Calories,
		Proteins:  input.Proteins,
		Carbs:     input.Carbs,
		Fats:      input.Fats,
		Fiber:     input.Fiber,
		CreatedBy: actor.ID,
	}
	if err := s.db.Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) referenceCount(foodID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.MealFood{}).Where("food_id = ?", foodID).Count(&count).Error
	return count, err
}

// Update edits a catalog entry. Only the owning nutritionist may do so;
// meals already referencing the food keep their cached snapshots.
func (s *FoodService) Update(actor Actor, id uint, input FoodInput) (*models.Food, error) {
	food, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !Allowed(actor, ActionEditFood, food) {
		return nil, fmt.Errorf("%w: only the creator can modify this food", utils.ErrForbidden)
	}

	food.Name = input.Name
	food.Category = input.Category
	food.Calories = input.Calories
	food.Proteins = input.Proteins
	food.Carbs = input.Carbs
	food.Fats = input.Fats
	food.Fiber = input.Fiber
	if err := s.db.Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// Delete removes a catalog entry unless some meal still references it.
func (s *FoodService) Delete(actor Actor, id uint) error {
	food, err := s.Get(id)
	if err != nil {
		return err
	}
	if !Allowed(actor, ActionEditFood, food) {
		return fmt.Errorf("%w: only the creator can delete this food", utils.ErrForbidden)
	}

	refs, err := s.referenceCount(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: food is used by %d meal(s)", utils.ErrConflict, refs)
	}

	return s.db.Delete(&models.Food{}, id).Error
}
