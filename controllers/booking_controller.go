package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type BookingController struct {
	service *services.BookingService
}

func NewBookingController(service *services.BookingService) *BookingController {
	return &BookingController{service: service}
}

type createBookingPayload struct {
	GuestID      uint   `json:"guest_id" binding:"required"`
	RoomID       uint   `json:"room_id" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`

	RateOverride *float64 `json:"rate_override"`

	Source           string `json:"source"`
	BookingChannel   string `json:"booking_channel"`
	ChannelReference string `json:"channel_reference"`
	MarketCode       string `json:"market_code"`
	RateCode         string `json:"rate_code"`

	PaymentMethod   string  `json:"payment_method"`
	PaymentStatus   string  `json:"payment_status"`
	DepositAmount   float64 `json:"deposit_amount"`
	RoomCardDeposit float64 `json:"room_card_deposit"`

	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Remarks  string `json:"remarks"`
}

func (bc *BookingController) Create(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, err := utils.ParseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in_date must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out_date must be YYYY-MM-DD")
		return
	}

	booking, err := bc.service.Create(services.BookingInput{
		GuestID:          payload.GuestID,
		RoomID:           payload.RoomID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		RateOverride:     payload.RateOverride,
		Source:           payload.Source,
		BookingChannel:   payload.BookingChannel,
		ChannelReference: payload.ChannelReference,
		MarketCode:       payload.MarketCode,
		RateCode:         payload.RateCode,
		PaymentMethod:    payload.PaymentMethod,
		PaymentStatus:    payload.PaymentStatus,
		DepositAmount:    payload.DepositAmount,
		RoomCardDeposit:  payload.RoomCardDeposit,
		Adults:           payload.Adults,
		Children:         payload.Children,
		Remarks:          payload.Remarks,
		CreatedBy:        middleware.AdminID(c),
	})
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

type creditsBookingPayload struct {
	GuestID            uint     `json:"guest_id" binding:"required"`
	RoomID             uint     `json:"room_id" binding:"required"`
	CheckInDate        string   `json:"check_in_date" binding:"required"`
	CheckOutDate       string   `json:"check_out_date" binding:"required"`
	ComplimentaryDates []string `json:"complimentary_dates" binding:"required,min=1"`
	Adults             int      `json:"adults"`
	Children           int      `json:"children"`
	Remarks            string   `json:"remarks"`
}

func (bc *BookingController) CreateWithCredits(c *gin.Context) {
	var payload creditsBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, err := utils.ParseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in_date must be YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out_date must be YYYY-MM-DD")
		return
	}

	booking, err := bc.service.CreateWithCredits(services.CreditsBookingInput{
		GuestID:            payload.GuestID,
		RoomID:             payload.RoomID,
		CheckInDate:        checkIn,
		CheckOutDate:       checkOut,
		ComplimentaryDates: payload.ComplimentaryDates,
		Adults:             payload.Adults,
		Children:           payload.Children,
		Remarks:            payload.Remarks,
		CreatedBy:          middleware.AdminID(c),
	})
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (bc *BookingController) GetAll(c *gin.Context) {
	if raw := c.Query("room_id"); raw != "" {
		roomID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid room_id")
			return
		}
		bookings, err := bc.service.ForRoom(uint(roomID))
		if err != nil {
			utils.JSONError(c, httpStatusFor(err), errorMessage(err))
			return
		}
		utils.JSONSuccess(c, http.StatusOK, bookings)
		return
	}
	bookings, err := bc.service.GetAll()
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) dashboardDate(c *gin.Context) (time.Time, bool) {
	day := utils.Today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return day, false
		}
		day = parsed
	}
	return day, true
}

func (bc *BookingController) Arrivals(c *gin.Context) {
	day, ok := bc.dashboardDate(c)
	if !ok {
		return
	}
	bookings, err := bc.service.ArrivalsOn(day)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) Departures(c *gin.Context) {
	day, ok := bc.dashboardDate(c)
	if !ok {
		return
	}
	bookings, err := bc.service.DeparturesOn(day)
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := bc.service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckIn(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := bc.service.CheckIn(uint(id), middleware.AdminID(c))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckOut(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := bc.service.CheckOut(uint(id), middleware.AdminID(c))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := bc.service.Cancel(uint(id))
	if err != nil {
		utils.JSONError(c, httpStatusFor(err), errorMessage(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
