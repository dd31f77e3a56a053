package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func TestContractTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.ContractActive, models.ContractPaused, true},
		{models.ContractActive, models.ContractCancelled, true},
		{models.ContractActive, models.ContractCompleted, true},
		{models.ContractPaused, models.ContractActive, true},
		{models.ContractPaused, models.ContractCancelled, true},
		{models.ContractPaused, models.ContractCompleted, false},
		{models.ContractCancelled, models.ContractActive, false},
		{models.ContractCancelled, models.ContractPaused, false},
		{models.ContractCompleted, models.ContractActive, false},
		{models.ContractCompleted, models.ContractCancelled, false},
		{models.ContractActive, models.ContractActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestStatusAuthority(t *testing.T) {
	contract := &models.Contract{ClientID: 1, NutritionistID: 2, Status: models.ContractActive}
	client := Actor{ID: 1, Role: models.RoleClient}
	nutritionist := Actor{ID: 2, Role: models.RoleNutritionist}
	stranger := Actor{ID: 3, Role: models.RoleNutritionist}

	// only the nutritionist may pause, resume or complete
	assert.False(t, Allowed(client, ActionPauseContract, contract))
	assert.False(t, Allowed(client, ActionCompleteContract, contract))
	assert.False(t, Allowed(client, ActionResumeContract, contract))
	assert.True(t, Allowed(nutritionist, ActionPauseContract, contract))
	assert.True(t, Allowed(nutritionist, ActionCompleteContract, contract))
	assert.True(t, Allowed(nutritionist, ActionResumeContract, contract))

	// either party may cancel; outsiders may do nothing
	assert.True(t, Allowed(client, ActionCancelContract, contract))
	assert.True(t, Allowed(nutritionist, ActionCancelContract, contract))
	assert.False(t, Allowed(stranger, ActionCancelContract, contract))
	assert.False(t, Allowed(stranger, ActionPauseContract, contract))
	assert.False(t, Allowed(stranger, ActionViewContract, contract))
}

func TestFoodAndPlanOwnership(t *testing.T) {
	owner := Actor{ID: 5, Role: models.RoleNutritionist}
	other := Actor{ID: 6, Role: models.RoleNutritionist}
	client := Actor{ID: 7, Role: models.RoleClient}

	food := &models.Food{CreatedBy: 5}
	assert.True(t, Allowed(owner, ActionEditFood, food))
	assert.False(t, Allowed(other, ActionEditFood, food))
	assert.False(t, Allowed(client, ActionEditFood, food))

	plan := &models.MealPlan{NutritionistID: 5}
	assert.True(t, Allowed(owner, ActionManagePlan, plan))
	assert.False(t, Allowed(other, ActionManagePlan, plan))
	assert.False(t, Allowed(client, ActionManagePlan, plan))
}

func TestClientProgressRequiresActiveContract(t *testing.T) {
	nutritionist := Actor{ID: 2, Role: models.RoleNutritionist}

	active := &models.Contract{ClientID: 1, NutritionistID: 2, Status: models.ContractActive}
	paused := &models.Contract{ClientID: 1, NutritionistID: 2, Status: models.ContractPaused}
	foreign := &models.Contract{ClientID: 1, NutritionistID: 9, Status: models.ContractActive}

	assert.True(t, Allowed(nutritionist, ActionViewClientProgress, active))
	assert.False(t, Allowed(nutritionist, ActionViewClientProgress, paused))
	assert.False(t, Allowed(nutritionist, ActionViewClientProgress, foreign))
}
