package controllers

import (
	"net/http"
	"strconv"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	user, token, err := h.Svc.Register(input.Email, input.Password, input.Name, input.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	user, token, err := h.Svc.Login(input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *AuthController) Me(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	user, err := h.Svc.Me(actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, user)
}

// --- helpers shared by all controllers ---

func actorFromCtx(c *gin.Context) (services.Actor, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return services.Actor{}, false
	}
	id, ok := v.(uint)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: c.GetString("role")}, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.APIResponse{Success: false, Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
