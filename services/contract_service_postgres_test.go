package services

import (
	"testing"
	"time"

	"backend/models"
	"backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContractRejectsDuplicateActive(t *testing.T) {
	fx := setupFixture(t)
	svc := NewContractService(fx.db)

	// fixture already holds an ACTIVE contract for this pair
	_, err := svc.Create(fx.client, fx.nutritionist.ID, 150)
	assert.ErrorIs(t, err, utils.ErrConflict)

	// after cancelling, hiring again is fine
	require.NoError(t, fx.db.Model(&fx.contract).Update("status", models.ContractCancelled).Error)
	contract, err := svc.Create(fx.client, fx.nutritionist.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, models.ContractActive, contract.Status)
}

func TestCreateContractRequiresClientRole(t *testing.T) {
	fx := setupFixture(t)
	svc := NewContractService(fx.db)

	_, err := svc.Create(fx.nutritionist, fx.nutritionist.ID, 150)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestClientCannotPause(t *testing.T) {
	fx := setupFixture(t)
	svc := NewContractService(fx.db)

	_, err := svc.UpdateStatus(fx.client, fx.contract.ID, models.ContractPaused)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	var stored models.Contract
	require.NoError(t, fx.db.First(&stored, fx.contract.ID).Error)
	assert.Equal(t, models.ContractActive, stored.Status)
}

func TestTerminalStatusStampsEndDate(t *testing.T) {
	fx := setupFixture(t)
	svc := NewContractService(fx.db)

	contract, err := svc.UpdateStatus(fx.client, fx.contract.ID, models.ContractCancelled)
	require.NoError(t, err)
	require.NotNil(t, contract.EndDate)
	assert.WithinDuration(t, time.Now(), *contract.EndDate, 5*time.Second)

	// terminal means terminal
	_, err = svc.UpdateStatus(fx.nutritionist, fx.contract.ID, models.ContractActive)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestPauseAndResume(t *testing.T) {
	fx := setupFixture(t)
	svc := NewContractService(fx.db)

	contract, err := svc.UpdateStatus(fx.nutritionist, fx.contract.ID, models.ContractPaused)
	require.NoError(t, err)
	assert.Equal(t, models.ContractPaused, contract.Status)
	assert.Nil(t, contract.EndDate)

	contract, err = svc.UpdateStatus(fx.nutritionist, fx.contract.ID, models.ContractActive)
	require.NoError(t, err)
	assert.Equal(t, models.ContractActive, contract.Status)
}
