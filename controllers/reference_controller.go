package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/utils"
)

// Reference lookups feed the booking form dropdowns. Only active entries are
// returned.

func GetRateCodes(c *gin.Context) {
	var codes []models.RateCode
	if err := config.DB.Where("is_active = ?", true).Order("code").Find(&codes).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rate codes")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, codes)
}

func GetMarketCodes(c *gin.Context) {
	var codes []models.MarketCode
	if err := config.DB.Where("is_active = ?", true).Order("code").Find(&codes).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load market codes")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, codes)
}

func GetBookingChannels(c *gin.Context) {
	var channels []models.BookingChannel
	if err := config.DB.Where("is_active = ?", true).Order("code").Find(&channels).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking channels")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, channels)
}

func GetPaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := config.DB.Where("is_active = ?", true).Order("code").Find(&methods).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load payment methods")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, methods)
}
