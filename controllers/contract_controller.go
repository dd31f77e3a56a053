package controllers

import (
	"net/http"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ContractController struct {
	Svc *services.ContractService
}

func NewContractController(svc *services.ContractService) *ContractController {
	return &ContractController{Svc: svc}
}

type CreateContractInput struct {
	NutritionistID uint    `json:"nutritionist_id" binding:"required"`
	MonthlyPrice   float64 `json:"monthly_price" binding:"min=0"`
}

func (h *ContractController) Create(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	var input CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	contract, err := h.Svc.Create(actor, input.NutritionistID, input.MonthlyPrice)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, contract)
}

func (h *ContractController) List(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	contracts, err := h.Svc.List(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, contracts)
}

func (h *ContractController) Get(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	contract, err := h.Svc.Get(actor, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, contract)
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE PAUSED CANCELLED COMPLETED"`
}

func (h *ContractController) UpdateStatus(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	contract, err := h.Svc.UpdateStatus(actor, id, input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, contract)
}
