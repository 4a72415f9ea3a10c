package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/sadriving/sadriving-backend/internal/response"
	"github.com/sadriving/sadriving-backend/internal/service"
	"github.com/sadriving/sadriving-backend/internal/validator"
)

// CatalogHandler serves the course and payment method catalogs.
type CatalogHandler struct {
	registration *service.RegistrationService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(registration *service.RegistrationService) *CatalogHandler {
	return &CatalogHandler{registration: registration}
}

// ListCourses godoc
// GET /api/v1/courses
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"courses": h.registration.Catalog().Courses()})
}

// ListPaymentMethods godoc
// GET /api/v1/payment-methods
func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"payment_methods": h.registration.Catalog().PaymentMethods()})
}

// Quote godoc
// POST /api/v1/quotes
// Prices a course without touching any form.
func (h *CatalogHandler) Quote(c *gin.Context) {
	var req model.QuoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, ok := h.registration.Catalog().Course(req.Course)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownCourse)
		return
	}

	form := model.RegistrationForm{Course: course.ID}
	response.Success(c, http.StatusOK, gin.H{
		"course":       course,
		"total_price":  h.registration.ComputeTotalPrice(form),
		"submit_label": h.registration.SubmitLabel(form),
	})
}
