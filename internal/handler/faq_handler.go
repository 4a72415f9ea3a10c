package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/sadriving/sadriving-backend/internal/response"
)

// FAQHandler serves the frequently asked questions.
type FAQHandler struct {
	faqs []model.FAQ
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(faqs []model.FAQ) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

// ListFAQs godoc
// GET /api/v1/faqs
func (h *FAQHandler) ListFAQs(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"faqs": h.faqs})
}
