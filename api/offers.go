package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/bookingflow/internal/domain"
	"github.com/Domenick1991/bookingflow/internal/offers"
	"github.com/Domenick1991/bookingflow/internal/validate"
)

type OfferHandler struct {
	service offers.SearchUseCase
}

func NewOfferHandler(service offers.SearchUseCase) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
}

func (h *OfferHandler) search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search request", "details": verr.Errors})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, found)
}
