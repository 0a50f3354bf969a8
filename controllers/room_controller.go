package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/utils"
)

type RoomController struct {
	store repository.Store
}

func NewRoomController(store repository.Store) *RoomController {
	return &RoomController{store: store}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

type roomRequest struct {
	Name         string            `json:"name" binding:"required"`
	Prices       models.WeekPrices `json:"prices" binding:"required"`
	Inventory    int               `json:"inventory"`
	DiscountRate *int              `json:"discountRate"`
	SortOrder    int               `json:"sortOrder"`
	ImageURL     string            `json:"imageUrl"`
	CheckInTime  string            `json:"checkInTime"`
	CheckOutTime string            `json:"checkOutTime"`
}

// GET /api/rooms
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.store.GetRooms()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := rc.store.GetRoom(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// POST /api/rooms
func (rc *RoomController) Create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if !req.Prices.Complete() {
		utils.JSONError(c, http.StatusBadRequest, "prices must cover all 7 weekdays")
		return
	}
	if req.Inventory < 0 {
		utils.JSONError(c, http.StatusBadRequest, "inventory must not be negative")
		return
	}

	room := &models.Room{
		Name:         req.Name,
		Prices:       datatypes.NewJSONType(req.Prices),
		Inventory:    req.Inventory,
		DiscountRate: req.DiscountRate,
		SortOrder:    req.SortOrder,
		ImageURL:     req.ImageURL,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
	}
	if err := rc.store.CreateRoom(room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PUT /api/rooms/:id
func (rc *RoomController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if !req.Prices.Complete() {
		utils.JSONError(c, http.StatusBadRequest, "prices must cover all 7 weekdays")
		return
	}

	patch := map[string]interface{}{
		"name":           req.Name,
		"prices":         datatypes.NewJSONType(req.Prices),
		"inventory":      req.Inventory,
		"discount_rate":  req.DiscountRate,
		"sort_order":     req.SortOrder,
		"image_url":      req.ImageURL,
		"check_in_time":  req.CheckInTime,
		"check_out_time": req.CheckOutTime,
	}
	if err := rc.store.UpdateRoom(id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	room, err := rc.store.GetRoom(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/rooms/:id
func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := rc.store.DeleteRoom(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
