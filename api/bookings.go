package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/bookingflow/internal/domain"
	"github.com/Domenick1991/bookingflow/internal/workflow"
)

type BookingHandler struct {
	service workflow.UseCase
}

type createWorkflowRequest struct {
	Offer          domain.FlightOffer `json:"offer"`
	PassengerCount int                `json:"passenger_count"`
}

type specialRequestsRequest struct {
	SpecialRequests string `json:"special_requests"`
}

type workflowResponse struct {
	ID           string                      `json:"id"`
	Step         string                      `json:"step"`
	Processing   bool                        `json:"processing"`
	Data         domain.BookingData          `json:"data"`
	Confirmation *domain.BookingConfirmation `json:"confirmation,omitempty"`
	UpdatedAt    string                      `json:"updated_at"`
}

func NewBookingHandler(service workflow.UseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.POST("/:id/advance", h.advance)
	router.POST("/:id/back", h.back)
	router.PUT("/:id/passengers/:index", h.updatePassenger)
	router.PUT("/:id/payment", h.updatePayment)
	router.PUT("/:id/requests", h.updateSpecialRequests)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.service.Create(c.Request.Context(), req.Offer, req.PassengerCount)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWorkflowResponse(snap))
}

func (h *BookingHandler) get(c *gin.Context) {
	snap, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkflowResponse(snap))
}

func (h *BookingHandler) advance(c *gin.Context) {
	snap, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkflowResponse(snap))
}

func (h *BookingHandler) back(c *gin.Context) {
	snap, err := h.service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkflowResponse(snap))
}

func (h *BookingHandler) updatePassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger index"})
		return
	}

	var p domain.Passenger
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.service.UpdatePassenger(c.Request.Context(), c.Param("id"), index, p)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkflowResponse(snap))
}

func (h *BookingHandler) updatePayment(c *gin.Context) {
	var p domain.PaymentDetails
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.service.UpdatePayment(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkflowResponse(snap))
}

func (h *BookingHandler) updateSpecialRequests(c *gin.Context) {
	var req specialRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.service.UpdateSpecialRequests(c.Request.Context(), c.Param("id"), req.SpecialRequests)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkflowResponse(snap))
}

func toWorkflowResponse(snap workflow.Snapshot) workflowResponse {
	return workflowResponse{
		ID:           snap.ID,
		Step:         string(snap.Step),
		Processing:   snap.Processing,
		Data:         snap.Data,
		Confirmation: snap.Confirmation,
		UpdatedAt:    snap.UpdatedAt.Format(time.RFC3339),
	}
}

// writeWorkflowError maps workflow errors onto HTTP statuses. Guard denials
// keep their full validation message list in the response body.
func writeWorkflowError(c *gin.Context, err error) {
	var denied *workflow.DeniedError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &denied):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": denied.Reason, "details": denied.Errors})
	case errors.Is(err, workflow.ErrAlreadyProcessing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
