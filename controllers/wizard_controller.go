package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type WizardController struct {
	service *services.WizardService
}

func NewWizardController(service *services.WizardService) *WizardController {
	return &WizardController{service: service}
}

type startWizardPayload struct {
	RoomID *uint `json:"room_id"`
}

// Start opens a wizard session. A room_id means the flow was launched from a
// room card, so the room selection step is skipped.
func (wc *WizardController) Start(c *gin.Context) {
	var payload startWizardPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	session := wc.service.Start(payload.RoomID)
	utils.JSONSuccess(c, http.StatusCreated, session)
}

func (wc *WizardController) Get(c *gin.Context) {
	session, err := wc.service.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

func (wc *WizardController) Update(c *gin.Context) {
	var patch services.WizardUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	session, err := wc.service.Update(c.Param("id"), patch)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

func (wc *WizardController) Next(c *gin.Context) {
	session, err := wc.service.Next(c.Param("id"))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

func (wc *WizardController) Back(c *gin.Context) {
	session, err := wc.service.Back(c.Param("id"))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

func (wc *WizardController) Submit(c *gin.Context) {
	result, err := wc.service.Submit(c.Param("id"), middleware.AdminID(c))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, result)
}
