package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritrust/models"
	"agritrust/services/billing"
)

// BillingHandler exposes the card verification endpoint the wizard's
// final step calls before submitting a registration.
type BillingHandler struct {
	Service *billing.Service
}

// VerifyBillingHandler verifies card details against the test allowlist
// and returns synthetic customer and payment-method identifiers.
func (h *BillingHandler) VerifyBillingHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BillingVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.Verify(req)
	if err != nil {
		var verr billing.VerificationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Message})
			return
		}
		logger.Error("Billing verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "verification failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
