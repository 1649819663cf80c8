package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/utils"
)

func GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	if err := config.DB.Order("base_price ASC").Find(&types).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := config.DB.Create(&rt).Error; err != nil {
		utils.JSONError(c, http.StatusConflict, "room type code already exists")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func UpdateRoomType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}
	var rt models.RoomType
	if err := config.DB.First(&rt, uint(id)).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room type not found")
		return
	}
	var input models.RoomType
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	rt.Name = input.Name
	rt.BasePrice = input.BasePrice
	rt.MaxGuests = input.MaxGuests
	rt.IsActive = input.IsActive
	if err := config.DB.Save(&rt).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room type")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}
