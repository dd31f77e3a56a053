package controllers

import (
	"net/http"
	"strconv"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Svc *services.FoodService
}

func NewFoodController(svc *services.FoodService) *FoodController {
	return &FoodController{Svc: svc}
}

// GET /api/foods
func (h *FoodController) List(c *gin.Context) {
	var filter services.FoodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	filter.Normalize()
	foods, total, err := h.Svc.List(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondPage(c, http.StatusOK, foods, total, filter.Take, filter.Skip)
}

// GET /api/foods/categories
func (h *FoodController) Categories(c *gin.Context) {
	categories, err := h.Svc.Categories()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, categories)
}

// GET /api/foods/popular?limit=10
func (h *FoodController) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	foods, err := h.Svc.Popular(limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, foods)
}

// GET /api/foods/search/nutrition?calories=160&caloriesTolerance=20
func (h *FoodController) SearchNutrition(c *gin.Context) {
	var search services.NutritionSearch
	if err := c.ShouldBindQuery(&search); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	foods, err := h.Svc.SearchByNutrition(search)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, foods)
}

func (h *FoodController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	food, err := h.Svc.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, food)
}

func (h *FoodController) Create(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	var input services.FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	food, err := h.Svc.Create(actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, food)
}

func (h *FoodController) Update(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input services.FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	food, err := h.Svc.Update(actor, id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, food)
}

func (h *FoodController) Delete(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.Delete(actor, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "food deleted")
}
