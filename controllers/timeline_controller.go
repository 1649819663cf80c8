package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-pms/services"
	"hotel-pms/utils"
)

type TimelineController struct {
	service *services.TimelineService
}

func NewTimelineController(service *services.TimelineService) *TimelineController {
	return &TimelineController{service: service}
}

// Grid serves the reservation timeline. start defaults to today, days to 14.
func (tc *TimelineController) Grid(c *gin.Context) {
	start := utils.Today()
	if raw := c.Query("start"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		start = parsed
	}

	days := 14
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}

	grid, err := tc.service.Grid(start, days)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, grid)
}
