package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motel-backoffice/repository"
	"motel-backoffice/services"
	"motel-backoffice/utils"
)

type InventoryController struct {
	inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

// GET /api/inventory?from=&to= — per-room per-day sold/remaining matrix.
func (ic *InventoryController) Calendar(c *gin.Context) {
	from, err := utils.ParseDate(c.DefaultQuery("from", ""))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := utils.ParseDate(c.DefaultQuery("to", ""))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid to date")
		return
	}

	calendar, err := ic.inventory.Calendar(from, to)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.JSONError(c, http.StatusBadRequest, "to must not precede from")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, calendar)
}

type adjustmentRequest struct {
	RoomID uint   `json:"roomId" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Delta  int    `json:"delta"`
}

// PUT /api/inventory — upsert the (room, date) delta; delta 0 removes it.
func (ic *InventoryController) SetAdjustment(c *gin.Context) {
	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date")
		return
	}

	adjustment, err := ic.inventory.SetAdjustment(req.RoomID, date, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrInventoryBelowSold):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if adjustment == nil {
		utils.JSONSuccess(c, http.StatusOK, gin.H{"removed": true})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, adjustment)
}
