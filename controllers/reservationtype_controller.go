package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/utils"
)

type ReservationTypeController struct {
	store repository.Store
}

func NewReservationTypeController(store repository.Store) *ReservationTypeController {
	return &ReservationTypeController{store: store}
}

type reservationTypeRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// GET /api/reservation-types
func (tc *ReservationTypeController) List(c *gin.Context) {
	types, err := tc.store.GetReservationTypes()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

// POST /api/reservation-types
func (tc *ReservationTypeController) Create(c *gin.Context) {
	var req reservationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	t := &models.ReservationType{Name: req.Name, Color: req.Color}
	if err := tc.store.CreateReservationType(t); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, t)
}

// PUT /api/reservation-types/:id
func (tc *ReservationTypeController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if id == models.DefaultReservationTypeID {
		utils.JSONError(c, http.StatusConflict, "the default reservation type cannot be edited")
		return
	}
	var req reservationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	patch := map[string]interface{}{"name": req.Name, "color": req.Color}
	if err := tc.store.UpdateReservationType(id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "reservation type not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	t, err := tc.store.GetReservationType(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, t)
}

// DELETE /api/reservation-types/:id
func (tc *ReservationTypeController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if id == models.DefaultReservationTypeID {
		utils.JSONError(c, http.StatusConflict, "the default reservation type cannot be deleted")
		return
	}
	if err := tc.store.DeleteReservationType(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "reservation type not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
