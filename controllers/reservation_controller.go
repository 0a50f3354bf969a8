package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"motel-backoffice/repository"
	"motel-backoffice/services"
	"motel-backoffice/utils"
)

type ReservationController struct {
	service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{service: service}
}

func reservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, "check-out must not precede check-in")
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "room is not available for the requested dates")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusBadRequest, "illegal status transition")
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

// GET /api/reservations?status=&roomId=&from=&to=
func (rc *ReservationController) List(c *gin.Context) {
	var filter services.ListFilter
	filter.Status = c.Query("status")
	if raw := c.Query("roomId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid roomId")
			return
		}
		filter.RoomID = uint(id)
	}
	if raw := c.Query("from"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from date")
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid to date")
			return
		}
		filter.To = &t
	}

	reservations, err := rc.service.List(filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

// GET /api/reservations/:id
func (rc *ReservationController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := rc.service.Get(id)
	if err != nil {
		reservationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

type createReservationRequest struct {
	RoomID            uint   `json:"roomId" binding:"required"`
	CustomerID        uint   `json:"customerId" binding:"required"`
	CheckIn           string `json:"checkIn" binding:"required"`
	CheckOut          string `json:"checkOut" binding:"required"`
	TotalPrice        int    `json:"totalPrice"`
	ReservationTypeID *uint  `json:"reservationTypeId"`
	AdminMemo         string `json:"adminMemo"`
}

// POST /api/reservations — manual entries, confirmed immediately.
func (rc *ReservationController) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
		return
	}

	r, err := rc.service.CreateManual(req.RoomID, req.CustomerID, checkIn, checkOut,
		req.TotalPrice, req.ReservationTypeID, req.AdminMemo)
	if err != nil {
		reservationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, r)
}

type patchReservationRequest struct {
	AdminMemo                  *string `json:"adminMemo"`
	ReservationTypeID          *uint   `json:"reservationTypeId"`
	GuestCancellationConfirmed *bool   `json:"guestCancellationConfirmed"`
}

// PATCH /api/reservations/:id — display-only fields.
func (rc *ReservationController) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	r, err := rc.service.Update(id, services.UpdatePatch{
		AdminMemo:                  req.AdminMemo,
		ReservationTypeID:          req.ReservationTypeID,
		GuestCancellationConfirmed: req.GuestCancellationConfirmed,
	})
	if err != nil {
		reservationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/reservations/:id/status — fires guest/admin notifications on
// legal transitions.
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	r, err := rc.service.UpdateStatus(id, req.Status)
	if err != nil {
		reservationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

// DELETE /api/reservations/:id
func (rc *ReservationController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := rc.service.Delete(id); err != nil {
		reservationError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
