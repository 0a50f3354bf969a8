package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motel-backoffice/repository"
	"motel-backoffice/services"
	"motel-backoffice/utils"
)

type CustomerController struct {
	service *services.CustomerService
}

func NewCustomerController(service *services.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func customerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "customer not found")
	case errors.Is(err, services.ErrInvalidPhone):
		utils.JSONError(c, http.StatusBadRequest, "invalid phone number")
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

// GET /api/customers?phone=
func (cc *CustomerController) List(c *gin.Context) {
	if phone := c.Query("phone"); phone != "" {
		customer, err := cc.service.FindByPhone(phone)
		if err != nil {
			customerError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, customer)
		return
	}
	customers, err := cc.service.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customers)
}

// GET /api/customers/:id
func (cc *CustomerController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	customer, err := cc.service.Get(id)
	if err != nil {
		customerError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customer)
}

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Memo  string `json:"memo"`
}

// POST /api/customers
func (cc *CustomerController) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name and phone are required")
		return
	}
	customer, err := cc.service.Create(req.Name, req.Phone, req.Memo)
	if err != nil {
		customerError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, customer)
}

type customerPatchRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Memo  *string `json:"memo"`
}

// PATCH /api/customers/:id
func (cc *CustomerController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req customerPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	customer, err := cc.service.Update(id, req.Name, req.Phone, req.Memo)
	if err != nil {
		customerError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customer)
}
