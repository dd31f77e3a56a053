package services

import (
	"errors"
	"fmt"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type MealPlanService struct{ db *gorm.DB }

func NewMealPlanService(db *gorm.DB) *MealPlanService { return &MealPlanService{db: db} }

const maxPlanSpan = 366 * 24 * time.Hour // one year, leap-day tolerant

// PlanInput is the create/update payload for a plan.
type PlanInput struct {
	ContractID uint             `json:"contract_id" binding:"required"`
	Title      string           `json:"title" binding:"required"`
	StartDate  time.Time        `json:"start_date" binding:"required"`
	EndDate    time.Time        `json:"end_date" binding:"required"`
	Limits     *NutritionLimits `json:"limits,omitempty"`
}

// MealFoodInput is one (food, quantity-in-grams) pair.
type MealFoodInput struct {
	FoodID   uint    `json:"food_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// MealInput creates or fully replaces a meal.
type MealInput struct {
	MealPlanID    uint             `json:"meal_plan_id" binding:"required"`
	Type          string           `json:"type" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	SuggestedTime string           `json:"suggested_time"`
	Foods         []MealFoodInput  `json:"foods"`
	Limits        *NutritionLimits `json:"limits,omitempty"`
}

// CopyPlanInput clones an existing plan onto another contract.
type CopyPlanInput struct {
	SourcePlanID     uint      `json:"source_plan_id" binding:"required"`
	TargetContractID uint      `json:"target_contract_id" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          time.Time `json:"end_date" binding:"required"`
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validateDates(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", utils.ErrValidation)
	}
	if end.Sub(start) > maxPlanSpan {
		return fmt.Errorf("%w: plan may not span more than one year", utils.ErrValidation)
	}
	return nil
}

// ownedActiveContract loads a contract and checks it belongs to the
// acting nutritionist and is ACTIVE.
func (s *MealPlanService) ownedActiveContract(tx *gorm.DB, actor Actor, contractID uint) (*models.Contract, error) {
	var contract models.Contract
	if err := tx.First(&contract, contractID).Error; err != nil {
		return nil, fmt.Errorf("%w: contract", utils.ErrNotFound)
	}
	if contract.NutritionistID != actor.ID {
		return nil, fmt.Errorf("%w: contract belongs to another nutritionist", utils.ErrForbidden)
	}
	if contract.Status != models.ContractActive {
		return nil, fmt.Errorf("%w: contract is not active", utils.ErrValidation)
	}
	return &contract, nil
}

func (s *MealPlanService) Create(actor Actor, input PlanInput) (*models.MealPlan, error) {
	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	var out *models.MealPlan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedActiveContract(tx, actor, input.ContractID); err != nil {
			return err
		}

		plan := models.MealPlan{
			ContractID:     input.ContractID,
			NutritionistID: actor.ID,
			Title:          input.Title,
			StartDate:      input.StartDate,
			EndDate:        input.EndDate,
			IsActive:       true,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		// A new plan starts without meals, so its daily totals are all
		// zero; limits are still checked so a plan that could never
		// satisfy a minimum bound is rejected up front.
		totals := SumMeals(plan.Meals)
		if err := input.Limits.Validate(totals.Calories, totals.Proteins); err != nil {
			return err
		}
		out = &plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// attachTotals recomputes the plan-level daily totals from the meals'
// cached values. Always done on read, never persisted.
func attachTotals(plan *models.MealPlan) {
	t := SumMeals(plan.Meals)
	plan.TotalCalories = t.Calories
	plan.TotalProteins = t.Proteins
	plan.TotalCarbs = t.Carbs
	plan.TotalFats = t.Fats
}

func (s *MealPlanService) List(actor Actor) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	q := s.db.Preload("Meals").Order("start_date DESC")
	if actor.IsNutritionist() {
		q = q.Where("nutritionist_id = ?", actor.ID)
	} else {
		q = q.Where("contract_id IN (?)",
			s.db.Model(&models.Contract{}).Select("id").Where("client_id = ?", actor.ID))
	}
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	for i := range plans {
		attachTotals(&plans[i])
	}
	return plans, nil
}

// load fetches a plan with meals and foods, checking view access.
func (s *MealPlanService) load(actor Actor, id uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meals.id ASC") }).
		Preload("Meals.Foods.Food").
		First(&plan, id).Error
	if err != nil {
		return nil, fmt.Errorf("%w: meal plan", utils.ErrNotFound)
	}

	if !Allowed(actor, ActionViewPlan, &plan) {
		var contract models.Contract
		if err := s.db.First(&contract, plan.ContractID).Error; err != nil ||
			!Allowed(actor, ActionViewPlan, &contract) {
			return nil, fmt.Errorf("%w: meal plan belongs to another user", utils.ErrForbidden)
		}
	}
	return &plan, nil
}

func (s *MealPlanService) Get(actor Actor, id uint) (*models.MealPlan, error) {
	plan, err := s.load(actor, id)
	if err != nil {
		return nil, err
	}
	attachTotals(plan)
	return plan, nil
}

// owned loads a plan and requires management rights.
func (s *MealPlanService) owned(tx *gorm.DB, actor Actor, id uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := tx.First(&plan, id).Error; err != nil {
		return nil, fmt.Errorf("%w: meal plan", utils.ErrNotFound)
	}
	if !Allowed(actor, ActionManagePlan, &plan) {
		return nil, fmt.Errorf("%w: meal plan belongs to another nutritionist", utils.ErrForbidden)
	}
	return &plan, nil
}

// PlanUpdateInput edits plan metadata; nil fields stay unchanged.
type PlanUpdateInput struct {
	Title     *string    `json:"title,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

func (s *MealPlanService) Update(actor Actor, id uint, input PlanUpdateInput) (*models.MealPlan, error) {
	plan, err := s.owned(s.db, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		plan.Title = *input.Title
	}
	if input.StartDate != nil {
		plan.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		plan.EndDate = *input.EndDate
	}
	if err := validateDates(plan.StartDate, plan.EndDate); err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.db.Save(plan).Error; err != nil {
		return nil, err
	}
	return s.Get(actor, id)
}

// Delete removes the plan with its meals and food rows in one
// transaction.
func (s *MealPlanService) Delete(actor Actor, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		plan, err := s.owned(tx, actor, id)
		if err != nil {
			return err
		}

		if err := tx.Where("meal_id IN (?)",
			tx.Model(&models.Meal{}).Select("id").Where("meal_plan_id = ?", plan.ID)).
			Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_plan_id = ?", plan.ID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		return tx.Delete(plan).Error
	})
}

// recalcMeal recomputes and persists a meal's cached nutrition from its
// current food rows. Zero foods yields all-zero values.
func recalcMeal(tx *gorm.DB, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	if err := tx.First(&meal, mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal", utils.ErrNotFound)
		}
		return nil, err
	}

	var items []models.MealFood
	if err := tx.Preload("Food").Where("meal_id = ?", meal.ID).Find(&items).Error; err != nil {
		return nil, err
	}

	t := SumMealFoods(items)
	meal.Calories = t.Calories
	meal.Proteins = t.Proteins
	meal.Carbs = t.Carbs
	meal.Fats = t.Fats
	if err := tx.Save(&meal).Error; err != nil {
		return nil, err
	}
	meal.Foods = items
	return &meal, nil
}

// createMealFoods validates every referenced food and inserts the rows.
func createMealFoods(tx *gorm.DB, mealID uint, foods []MealFoodInput) error {
	for _, f := range foods {
		var food models.Food
		if err := tx.First(&food, f.FoodID).Error; err != nil {
			return fmt.Errorf("%w: food %d", utils.ErrNotFound, f.FoodID)
		}
		mf := models.MealFood{MealID: mealID, FoodID: f.FoodID, Quantity: f.Quantity}
		if err := tx.Create(&mf).Error; err != nil {
			return err
		}
	}
	return nil
}

// AddMeal creates a meal with its foods, recalculates the cached
// nutrition and checks the optional limits — all in one transaction, so
// a limit breach leaves nothing behind.
func (s *MealPlanService) AddMeal(actor Actor, input MealInput) (*models.Meal, error) {
	if !models.ValidMealType(input.Type) {
		return nil, fmt.Errorf("%w: invalid meal type %q", utils.ErrValidation, input.Type)
	}

	var out *models.Meal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, actor, input.MealPlanID); err != nil {
			return err
		}

		meal := models.Meal{
			MealPlanID:    input.MealPlanID,
			Type:          input.Type,
			Name:          input.Name,
			SuggestedTime: input.SuggestedTime,
		}
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		if err := createMealFoods(tx, meal.ID, input.Foods); err != nil {
			return err
		}

		recalced, err := recalcMeal(tx, meal.ID)
		if err != nil {
			return err
		}
		if err := input.Limits.Validate(recalced.Calories, recalced.Proteins); err != nil {
			return err
		}
		out = recalced
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMeal fully replaces a meal's metadata and food list, then
// recalculates and validates, atomically.
func (s *MealPlanService) UpdateMeal(actor Actor, mealID uint, input MealInput) (*models.Meal, error) {
	if !models.ValidMealType(input.Type) {
		return nil, fmt.Errorf("%w: invalid meal type %q", utils.ErrValidation, input.Type)
	}

	var out *models.Meal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.First(&meal, mealID).Error; err != nil {
			return fmt.Errorf("%w: meal", utils.ErrNotFound)
		}
		if _, err := s.owned(tx, actor, meal.MealPlanID); err != nil {
			return err
		}

		meal.Type = input.Type
		meal.Name = input.Name
		meal.SuggestedTime = input.SuggestedTime
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}

		// full replace: drop the old rows, insert the new list
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		if err := createMealFoods(tx, meal.ID, input.Foods); err != nil {
			return err
		}

		recalced, err := recalcMeal(tx, meal.ID)
		if err != nil {
			return err
		}
		if err := input.Limits.Validate(recalced.Calories, recalced.Proteins); err != nil {
			return err
		}
		out = recalced
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMeal removes one meal and its food rows.
func (s *MealPlanService) DeleteMeal(actor Actor, mealID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.First(&meal, mealID).Error; err != nil {
			return fmt.Errorf("%w: meal", utils.ErrNotFound)
		}
		if _, err := s.owned(tx, actor, meal.MealPlanID); err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}

// Copy clones a plan's meals and food associations onto another
// contract. Cached nutrient values are copied verbatim — recalculation
// is a separate, explicit operation.
func (s *MealPlanService) Copy(actor Actor, input CopyPlanInput) (*models.MealPlan, error) {
	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if input.StartDate.Before(startOfDay(time.Now())) {
		return nil, fmt.Errorf("%w: start date must not be in the past", utils.ErrValidation)
	}

	var newPlanID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		source, err := s.owned(tx, actor, input.SourcePlanID)
		if err != nil {
			return err
		}
		if _, err := s.ownedActiveContract(tx, actor, input.TargetContractID); err != nil {
			return err
		}

		newPlan := models.MealPlan{
			ContractID:     input.TargetContractID,
			NutritionistID: actor.ID,
			Title:          input.Title,
			StartDate:      input.StartDate,
			EndDate:        input.EndDate,
			IsActive:       true,
		}
		if err := tx.Create(&newPlan).Error; err != nil {
			return err
		}

		var meals []models.Meal
		if err := tx.Where("meal_plan_id = ?", source.ID).Order("id ASC").Find(&meals).Error; err != nil {
			return err
		}
		for _, m := range meals {
			copied := models.Meal{
				MealPlanID:    newPlan.ID,
				Type:          m.Type,
				Name:          m.Name,
				SuggestedTime: m.SuggestedTime,
				Calories:      m.Calories,
				Proteins:      m.Proteins,
				Carbs:         m.Carbs,
				Fats:          m.Fats,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}

			var foods []models.MealFood
			if err := tx.Where("meal_id = ?", m.ID).Find(&foods).Error; err != nil {
				return err
			}
			for _, f := range foods {
				mf := models.MealFood{MealID: copied.ID, FoodID: f.FoodID, Quantity: f.Quantity}
				if err := tx.Create(&mf).Error; err != nil {
					return err
				}
			}
		}

		newPlanID = newPlan.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(actor, newPlanID)
}

// Recalculate reruns the meal aggregation for every meal in the plan,
// refreshing stale snapshots against the current food catalog.
func (s *MealPlanService) Recalculate(actor Actor, planID uint) (*models.MealPlan, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		plan, err := s.owned(tx, actor, planID)
		if err != nil {
			return err
		}

		var mealIDs []uint
		if err := tx.Model(&models.Meal{}).Where("meal_plan_id = ?", plan.ID).
			Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		for _, id := range mealIDs {
			if _, err := recalcMeal(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(actor, planID)
}

// MealTypeStat aggregates meals sharing a slot.
type MealTypeStat struct {
	Count    int     `json:"count"`
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// PlanStatistics summarizes a plan for the statistics endpoint.
type PlanStatistics struct {
	PlanID         uint                    `json:"plan_id"`
	MealCount      int                     `json:"meal_count"`
	Totals         NutritionTotals         `json:"totals"`
	AveragePerMeal NutritionTotals         `json:"average_per_meal"`
	ByType         map[string]MealTypeStat `json:"by_type"`
}

func (s *MealPlanService) Statistics(actor Actor, planID uint) (*PlanStatistics, error) {
	plan, err := s.load(actor, planID)
	if err != nil {
		return nil, err
	}

	stats := PlanStatistics{
		PlanID:    plan.ID,
		MealCount: len(plan.Meals),
		Totals:    SumMeals(plan.Meals),
		ByType:    map[string]MealTypeStat{},
	}

	for _, m := range plan.Meals {
		ts := stats.ByType[m.Type]
		ts.Count++
		ts.Calories = round2(ts.Calories + m.Calories)
		ts.Proteins = round2(ts.Proteins + m.Proteins)
		ts.Carbs = round2(ts.Carbs + m.Carbs)
		ts.Fats = round2(ts.Fats + m.Fats)
		stats.ByType[m.Type] = ts
	}

	if n := len(plan.Meals); n > 0 {
		stats.AveragePerMeal = NutritionTotals{
			Calories: round2(stats.Totals.Calories / float64(n)),
			Proteins: round2(stats.Totals.Proteins / float64(n)),
			Carbs:    round2(stats.Totals.Carbs / float64(n)),
			Fats:     round2(stats.Totals.Fats / float64(n)),
		}
	}
	return &stats, nil
}
