package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type GuestController struct {
	service *services.GuestService
}

func NewGuestController(service *services.GuestService) *GuestController {
	return &GuestController{service: service}
}

func (gc *GuestController) Create(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := gc.service.Create(&guest); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (gc *GuestController) GetAll(c *gin.Context) {
	// with_credits=true narrows to guests holding complimentary nights,
	// which is what the credits booking flow needs.
	if c.Query("with_credits") == "true" {
		guests, err := gc.service.GuestsWithCredits()
		if err != nil {
			utils.JSONError(c, httpStatusFor(err), errorMessage(err))
			return
		}
		utils.JSONSuccess(c, http.StatusOK, guests)
		return
	}
	guests, err := gc.service.GetAll()
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
		return
	}
	guest, err := gc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
		return
	}
	var input models.Guest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	input.ID = uint(id)
	if err := gc.service.Update(&input); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	guest, err := gc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
		return
	}
	if err := gc.service.Delete(uint(id)); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONMessage(c, http.StatusOK, "guest deleted")
}

type addCreditsPayload struct {
	RoomTypeID uint   `json:"room_type_id" binding:"required"`
	Nights     int    `json:"nights" binding:"required,gt=0"`
	Notes      string `json:"notes"`
}

func (gc *GuestController) AddCredits(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
		return
	}
	var payload addCreditsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := gc.service.AddCredits(uint(id), payload.RoomTypeID, payload.Nights, payload.Notes); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	guest, err := gc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}
