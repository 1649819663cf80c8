package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type RoomController struct {
	service *services.RoomService
}

func NewRoomController(service *services.RoomService) *RoomController {
	return &RoomController{service: service}
}

func (rc *RoomController) Create(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := rc.service.Create(&room); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// GetAll returns rooms with their effective status and upcoming
// reservation so the front desk board renders from a single call.
func (rc *RoomController) GetAll(c *gin.Context) {
	views, err := rc.service.RoomsWithStatus()
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, views)
}

func (rc *RoomController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	room, err := rc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	var input models.Room
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	input.ID = uint(id)
	if err := rc.service.Update(&input); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	room, err := rc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := rc.service.Delete(uint(id)); err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted")
}

func (rc *RoomController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	var input services.RoomStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	input.ChangedBy = middleware.AdminID(c)
	room, err := rc.service.UpdateStatus(uint(id), input)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	history, err := rc.service.History(uint(id), limit)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, history)
}

func (rc *RoomController) OccupancySummary(c *gin.Context) {
	summary, err := rc.service.OccupancySummary()
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
