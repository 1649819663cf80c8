package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/utils"
)

func GetHotelSettings(c *gin.Context) {
	var settings models.HotelSetting
	if err := config.DB.First(&settings).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

func UpdateHotelSettings(c *gin.Context) {
	var settings models.HotelSetting
	if err := config.DB.First(&settings).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	var input models.HotelSetting
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	settings.HotelName = input.HotelName
	settings.Address = input.Address
	settings.Phone = input.Phone
	settings.Email = input.Email
	settings.CheckInTime = input.CheckInTime
	settings.CheckOutTime = input.CheckOutTime
	settings.TaxRate = input.TaxRate
	settings.RoomCardDeposit = input.RoomCardDeposit
	settings.Currency = input.Currency
	if err := config.DB.Save(&settings).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}
