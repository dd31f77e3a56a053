package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractService struct{ db *gorm.DB }

func NewContractService(db *gorm.DB) *ContractService { return &ContractService{db: db} }

// contractTransitions lists the reachable statuses per current status.
// CANCELLED and COMPLETED are terminal.
var contractTransitions = map[string][]string{
	models.ContractActive: {models.ContractPaused, models.ContractCancelled, models.ContractCompleted},
	models.ContractPaused: {models.ContractActive, models.ContractCancelled},
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to string) bool {
	for _, s := range contractTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func statusAction(to string) Action {
	switch to {
	case models.ContractPaused:
		return ActionPauseContract
	case models.ContractActive:
		return ActionResumeContract
	case models.ContractCompleted:
		return ActionCompleteContract
	default:
		return ActionCancelContract
	}
}

// Create opens an ACTIVE contract between the acting client and a
// nutritionist. A second ACTIVE contract for the same pair is rejected.
func (s *ContractService) Create(actor Actor, nutritionistID uint, monthlyPrice float64) (*models.Contract, error) {
	if !actor.IsClient() {
		return nil, fmt.Errorf("%w: only clients can hire a nutritionist", utils.ErrForbidden)
	}
	if monthlyPrice < 0 {
		return nil, fmt.Errorf("%w: monthly price must not be negative", utils.ErrValidation)
	}

	var nutritionist models.User
	if err := s.db.Where("id = ? AND role = ?", nutritionistID, models.RoleNutritionist).
		First(&nutritionist).Error; err != nil {
		return nil, fmt.Errorf("%w: nutritionist", utils.ErrNotFound)
	}

	var existing models.Contract
	err := s.db.Where("client_id = ? AND nutritionist_id = ? AND status = ?",
		actor.ID, nutritionistID, models.ContractActive).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: an active contract with this nutritionist already exists", utils.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	contract := models.Contract{
		ClientID:       actor.ID,
		NutritionistID: nutritionistID,
		Status:         models.ContractActive,
		MonthlyPrice:   monthlyPrice,
		StartDate:      time.Now(),
	}
	if err := s.db.Create(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (s *ContractService) List(actor Actor) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.
		Preload("Client").
		Preload("Nutritionist").
		Where("client_id = ? OR nutritionist_id = ?", actor.ID, actor.ID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (s *ContractService) Get(actor Actor, id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.Preload("Client").Preload("Nutritionist").
		First(&contract, id).Error; err != nil {
		return nil, fmt.Errorf("%w: contract", utils.ErrNotFound)
	}
	if !Allowed(actor, ActionViewContract, &contract) {
		return nil, fmt.Errorf("%w: not a party of this contract", utils.ErrForbidden)
	}
	return &contract, nil
}

// UpdateStatus applies one state-machine transition. Either party may
// cancel; pause/resume/complete belong to the nutritionist. Reaching a
// terminal status stamps EndDate when unset. The other party is
// notified by email, best effort.
func (s *ContractService) UpdateStatus(actor Actor, id uint, newStatus string) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.Preload("Client").Preload("Nutritionist").
		First(&contract, id).Error; err != nil {
		return nil, fmt.Errorf("%w: contract", utils.ErrNotFound)
	}

	if !CanTransition(contract.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s",
			utils.ErrValidation, contract.Status, newStatus)
	}
	if !Allowed(actor, statusAction(newStatus), &contract) {
		return nil, fmt.Errorf("%w: not allowed to set status %s", utils.ErrForbidden, newStatus)
	}

	contract.Status = newStatus
	if (newStatus == models.ContractCancelled || newStatus == models.ContractCompleted) &&
		contract.EndDate == nil {
		now := time.Now()
		contract.EndDate = &now
	}
	// Omit the preloaded users, only the contract row changes.
	if err := s.db.Omit(clause.Associations).Save(&contract).Error; err != nil {
		return nil, err
	}

	recipient := contract.Client.Email
	if actor.ID == contract.ClientID {
		recipient = contract.Nutritionist.Email
	}
	if recipient != "" {
		if err := utils.SendContractStatusEmail(recipient, contract.ID, newStatus); err != nil {
			log.Printf("contract %d: status mail not sent: %v", contract.ID, err)
		}
	}

	return &contract, nil
}
