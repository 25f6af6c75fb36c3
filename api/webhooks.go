package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/makersair/fhbridge/internal/domain"
	"github.com/makersair/fhbridge/internal/fareharbor"
	"github.com/makersair/fhbridge/internal/makersuite"
	"github.com/makersair/fhbridge/internal/service/webhook"
)

type WebhookHandler struct {
	service webhook.WebhookUseCase
}

type webhookResponse struct {
	Message            string          `json:"message"`
	Timestamp          string          `json:"timestamp"`
	MakersuiteResponse json.RawMessage `json:"makersuite_response,omitempty"`
	Error              string          `json:"error,omitempty"`
}

func NewWebhookHandler(service webhook.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{service: service}
}

func (h *WebhookHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.receive)
}

func (h *WebhookHandler) receive(c *gin.Context) {
	var envelope domain.WebhookEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, webhookResponse{
			Message:   "Booking received but processing failed",
			Timestamp: now(),
			Error:     err.Error(),
		})
		return
	}

	if envelope.Booking == nil {
		c.JSON(http.StatusOK, webhookResponse{
			Message:   "Webhook received but no booking data found",
			Timestamp: now(),
		})
		return
	}

	res, err := h.service.ProcessBooking(c.Request.Context(), envelope.Booking)
	if err != nil {
		h.fail(c, res, err)
		return
	}

	switch res.Outcome {
	case webhook.OutcomeFirstLegStored:
		c.JSON(http.StatusOK, webhookResponse{
			Message:   fmt.Sprintf("Round trip booking received and stored for order %s. Waiting for second booking.", res.OrderID),
			Timestamp: now(),
		})
	case webhook.OutcomeRoundTripMerged:
		c.JSON(http.StatusOK, webhookResponse{
			Message:            "Round trip booking processed and sent to MakerSuite successfully!",
			Timestamp:          now(),
			MakersuiteResponse: res.Response,
		})
	default:
		c.JSON(http.StatusOK, webhookResponse{
			Message:            "Single trip booking processed and sent to MakerSuite successfully!",
			Timestamp:          now(),
			MakersuiteResponse: res.Response,
		})
	}
}

func (h *WebhookHandler) fail(c *gin.Context, res *webhook.Result, err error) {
	var parseErr *fareharbor.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadRequest, webhookResponse{
			Message:   "Booking received but processing failed",
			Timestamp: now(),
			Error:     err.Error(),
		})
		return
	}

	trip := "Single"
	if res != nil && res.Outcome == webhook.OutcomeRoundTripMerged {
		trip = "Round"
	}

	var apiErr *makersuite.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, webhookResponse{
			Message:   fmt.Sprintf("%s trip booking received but failed to send to MakerSuite", trip),
			Timestamp: now(),
			Error:     err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, webhookResponse{
		Message:   fmt.Sprintf("%s trip booking received but failed to send to MakerSuite", trip),
		Timestamp: now(),
		Error:     err.Error(),
	})
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
