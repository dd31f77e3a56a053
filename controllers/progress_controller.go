package controllers

import (
	"net/http"
	"time"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Svc *services.ProgressService
}

func NewProgressController(svc *services.ProgressService) *ProgressController {
	return &ProgressController{Svc: svc}
}

func (h *ProgressController) Create(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	var input services.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	record, err := h.Svc.Create(actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, record)
}

func (h *ProgressController) List(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	var filter services.ProgressFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	filter.Normalize()
	records, total, err := h.Svc.List(actor, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondPage(c, http.StatusOK, records, total, filter.Take, filter.Skip)
}

func (h *ProgressController) Stats(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	stats, err := h.Svc.Stats(actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, stats)
}

// GET /api/progress/chart?metric=weight&from=2026-01-01&to=2026-06-30
func (h *ProgressController) Chart(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}

	metric := c.DefaultQuery("metric", "weight")
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.APIResponse{Success: false, Error: "invalid from date"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.APIResponse{Success: false, Error: "invalid to date"})
			return
		}
		to = &t
	}

	points, err := h.Svc.Chart(actor, metric, from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, points)
}

func (h *ProgressController) Get(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	record, err := h.Svc.Get(actor, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, record)
}

func (h *ProgressController) Update(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input services.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	record, err := h.Svc.Update(actor, id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, record)
}

func (h *ProgressController) Delete(c *gin.Context) {
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
	utils.RespondMessage(c, http.StatusOK, "progress record deleted")
}

// GET /api/progress/client/:clientId — nutritionist view of a client's log.
func (h *ProgressController) ClientRecords(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	clientID, ok := idParam(c, "clientId")
	if !ok {
		return
	}

	var filter services.ProgressFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	filter.Normalize()
	records, total, err := h.Svc.ClientRecords(actor, clientID, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondPage(c, http.StatusOK, records, total, filter.Take, filter.Skip)
}

// POST /api/progress/:id/photos — multipart upload of one photo.
func (h *ProgressController) AddPhoto(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "unauthorized"})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.APIResponse{Success: false, Error: "photo file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer file.Close()

	record, err := h.Svc.AddPhoto(c.Request.Context(), actor, id, file,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, record)
}
