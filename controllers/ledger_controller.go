package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type LedgerController struct {
	service *services.LedgerService
}

func NewLedgerController(service *services.LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

type postLedgerPayload struct {
	CompanyName string  `json:"company_name" binding:"required"`
	BookingID   *uint   `json:"booking_id"`
	EntryType   string  `json:"entry_type" binding:"required,oneof=charge payment adjustment"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

func (lc *LedgerController) Post(c *gin.Context) {
	var payload postLedgerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	entry := models.LedgerEntry{
		CompanyName: payload.CompanyName,
		BookingID:   payload.BookingID,
		EntryType:   payload.EntryType,
		Amount:      payload.Amount,
		Description: payload.Description,
		PostedBy:    middleware.AdminID(c),
	}
	if err := lc.service.Post(&entry); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, entry)
}

func (lc *LedgerController) GetByCompany(c *gin.Context) {
	company := c.Query("company")
	if company == "" {
		utils.JSONError(c, http.StatusBadRequest, "company query param required")
		return
	}
	entries, err := lc.service.ListByCompany(company)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	balance, err := lc.service.Balance(company)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"entries": entries, "balance": balance})
}
