package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type NightAuditController struct {
	service *services.NightAuditService
}

func NewNightAuditController(service *services.NightAuditService) *NightAuditController {
	return &NightAuditController{service: service}
}

type runAuditPayload struct {
	AuditDate string `json:"audit_date" binding:"required"`
	Notes     string `json:"notes"`
}

func (nc *NightAuditController) Preview(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date query param required (YYYY-MM-DD)")
		return
	}
	preview, err := nc.service.Preview(date)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, preview)
}

func (nc *NightAuditController) Run(c *gin.Context) {
	var payload runAuditPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	date, err := utils.ParseDate(payload.AuditDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	run, err := nc.service.Run(date, payload.Notes, middleware.AdminID(c))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, run)
}

func (nc *NightAuditController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "30"))
	runs, err := nc.service.List(page, pageSize)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, runs)
}

func (nc *NightAuditController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid audit run id")
		return
	}
	run, err := nc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, run)
}
